package sound

import "log"

// ManagerBuilderOption is a functional option for configuring a Manager via NewManager.
type ManagerBuilderOption func(*manager)

// WithLogger sets the logger plays are written to.
//
// Parameters:
//   - logger: the logger, nil keeps log.Default()
//
// Returns:
//   - ManagerBuilderOption: a function that applies the logger option to a manager
func WithLogger(logger *log.Logger) ManagerBuilderOption {
	return func(m *manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithHistory sets how many recent plays are retained. Zero disables the history.
//
// Parameters:
//   - n: the history length
//
// Returns:
//   - ManagerBuilderOption: a function that applies the history option to a manager
func WithHistory(n int) ManagerBuilderOption {
	return func(m *manager) {
		m.history = max(n, 0)
	}
}

// WithMuted starts the manager muted.
//
// Parameters:
//   - muted: true to suppress logging
//
// Returns:
//   - ManagerBuilderOption: a function that applies the muted option to a manager
func WithMuted(muted bool) ManagerBuilderOption {
	return func(m *manager) {
		m.muted = muted
	}
}
