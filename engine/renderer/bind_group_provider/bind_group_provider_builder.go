package bind_group_provider

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithMinCapacity sets the smallest buffer the Renderer allocates for a binding. Reserving
// room for a larger skeleton up front avoids reallocating when a reload adds bones.
//
// Parameters:
//   - binding: the binding index
//   - bytes: the minimum buffer size in bytes
//
// Returns:
//   - BindGroupProviderOption: a function that applies the minimum capacity
func WithMinCapacity(binding int, bytes uint64) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.minCapacity[binding] = bytes
	}
}
