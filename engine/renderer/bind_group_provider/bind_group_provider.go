package bind_group_provider

import (
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

// bufferAlignment is the granularity wgpu requires for buffer sizes and copy offsets.
const bufferAlignment = 4

type binding struct {
	buf      *wgpu.Buffer
	capacity uint64
}

type bindGroupProvider struct {
	label       string
	minCapacity map[int]uint64
	bindings    map[int]binding
}

// BindGroupProvider describes the GPU storage behind one actor: a set of buffers keyed by
// binding index (the actor's instance data and its skinning palette). The Renderer allocates
// the buffers, game objects stage BufferWrite values against them and the scene uploads the
// batch once per tick.
type BindGroupProvider interface {
	// Release releases every buffer and forgets every binding.
	Release()

	// Label returns the debug label used for buffer names and errors.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Buffer returns the buffer of a binding.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer, or nil before allocation
	Buffer(binding int) *wgpu.Buffer

	// Capacity returns the allocated size of a binding in bytes.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - uint64: the size, 0 before allocation
	Capacity(binding int) uint64

	// Bindings returns the allocated binding indices in ascending order.
	//
	// Returns:
	//   - []int: the binding indices
	Bindings() []int

	// Reserve returns the size to allocate for a binding that must hold size bytes,
	// honoring the binding's minimum capacity and wgpu's size alignment.
	//
	// Parameters:
	//   - binding: the binding index
	//   - size: the bytes the binding must hold
	//
	// Returns:
	//   - uint64: the allocation size
	Reserve(binding int, size uint64) uint64

	// SetBuffer records the buffer allocated for a binding. Called by the Renderer.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the allocated buffer
	//   - capacity: its size in bytes
	SetBuffer(binding int, buf *wgpu.Buffer, capacity uint64)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: the debug label
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: the new provider, without buffers
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:       label,
		minCapacity: make(map[int]uint64),
		bindings:    make(map[int]binding),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) Buffer(index int) *wgpu.Buffer {
	return p.bindings[index].buf
}

func (p *bindGroupProvider) Capacity(index int) uint64 {
	return p.bindings[index].capacity
}

func (p *bindGroupProvider) Bindings() []int {
	out := make([]int, 0, len(p.bindings))
	for index := range p.bindings {
		out = append(out, index)
	}
	slices.Sort(out)
	return out
}

func (p *bindGroupProvider) Reserve(index int, size uint64) uint64 {
	size = max(size, p.minCapacity[index])
	if rem := size % bufferAlignment; rem != 0 {
		size += bufferAlignment - rem
	}
	return size
}

func (p *bindGroupProvider) SetBuffer(index int, buf *wgpu.Buffer, capacity uint64) {
	p.bindings[index] = binding{buf: buf, capacity: capacity}
}

func (p *bindGroupProvider) Release() {
	for index, b := range p.bindings {
		if b.buf != nil {
			b.buf.Release()
		}
		delete(p.bindings, index)
	}
}
