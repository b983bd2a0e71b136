package sound

import (
	"log"
	"sync"
)

// Play records one PlaySound3D request.
type Play struct {
	Entity  uint64
	SoundID string
	Volume  float32
	Pitch   float32
}

type manager struct {
	mu      sync.Mutex
	logger  *log.Logger
	muted   bool
	history int
	plays   []Play
	counts  map[string]int
}

// Manager defines the interface for the positional sound sink used by animations.
// It logs every request and keeps a bounded history of recent plays; no audio device is opened.
type Manager interface {
	// PlaySound3D plays a sound positioned at an entity.
	//
	// Parameters:
	//   - entity: the entity the sound is attached to
	//   - soundID: the sound identifier
	//   - volume: the volume factor
	//   - pitch: the pitch factor
	PlaySound3D(entity uint64, soundID string, volume, pitch float32)

	// Count returns how many times a sound has been played.
	//
	// Parameters:
	//   - soundID: the sound identifier
	//
	// Returns:
	//   - int: the play count
	Count(soundID string) int

	// Recent returns a copy of the retained play history, oldest first.
	//
	// Returns:
	//   - []Play: the plays
	Recent() []Play

	// SetMuted toggles logging of plays. Muted plays are still counted.
	//
	// Parameters:
	//   - muted: true to stop logging
	SetMuted(muted bool)
}

var _ Manager = &manager{}

// NewManager creates a new sound Manager with the given options.
//
// Parameters:
//   - options: functional options to configure the manager
//
// Returns:
//   - Manager: the new manager
func NewManager(options ...ManagerBuilderOption) Manager {
	m := &manager{
		logger:  log.Default(),
		history: 64,
		counts:  make(map[string]int),
	}
	for _, opt := range options {
		opt(m)
	}
	m.plays = make([]Play, 0, m.history)
	return m
}

func (m *manager) PlaySound3D(entity uint64, soundID string, volume, pitch float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counts[soundID]++
	if m.history > 0 {
		if len(m.plays) == m.history {
			copy(m.plays, m.plays[1:])
			m.plays = m.plays[:len(m.plays)-1]
		}
		m.plays = append(m.plays, Play{Entity: entity, SoundID: soundID, Volume: volume, Pitch: pitch})
	}
	if !m.muted {
		m.logger.Printf("[Sound] entity %d: %s (volume %.2f, pitch %.2f)", entity, soundID, volume, pitch)
	}
}

func (m *manager) Count(soundID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[soundID]
}

func (m *manager) Recent() []Play {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Play, len(m.plays))
	copy(out, m.plays)
	return out
}

func (m *manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}
