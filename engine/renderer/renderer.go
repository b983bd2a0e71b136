package renderer

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-actor/engine/renderer/bind_group_provider"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	logger *log.Logger

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool

	bytesWritten atomic.Uint64
	writeCount   atomic.Uint64
}

// Renderer defines the interface for the GPU side of the actor pipeline.
//
// The Renderer owns a headless GPU device. Components describe their GPU storage with a
// BindGroupProvider; the Renderer allocates the buffers behind it and uploads the
// BufferWrite batches staged by the scene every tick (the final skinning palettes).
type Renderer interface {
	// InitBuffer allocates a storage buffer for the binding of a provider. A binding whose
	// buffer already holds size bytes is left untouched; a smaller one is replaced.
	//
	// Parameters:
	//   - provider: the provider that will own the buffer
	//   - binding: the binding index
	//   - size: the buffer size in bytes
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitBuffer(provider bind_group_provider.BindGroupProvider, binding int, size uint64) error

	// WriteBuffers uploads all staged buffer writes to the GPU queue. Writes whose binding has
	// no buffer are skipped; writes past the end of a buffer grow it first.
	//
	// Parameters:
	//   - writes: the staged writes
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BytesWritten returns the total number of bytes uploaded since creation.
	//
	// Returns:
	//   - uint64: the byte count
	BytesWritten() uint64

	// WriteCount returns the total number of buffer writes issued since creation.
	//
	// Returns:
	//   - uint64: the write count
	WriteCount() uint64

	// Release releases the GPU device and every object created from it.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the specified backend type and options.
// The device is requested without a presentation surface.
//
// Parameters:
//   - backendType: the type of GPU backend to use (e.g., WGPU)
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: an error if no adapter or device could be acquired
func NewRenderer(backendType RendererBackendType, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		logger:      log.Default(),
		backendType: backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(r.forceFallbackAdapter)
		if err != nil {
			return nil, fmt.Errorf("create wgpu backend: %w", err)
		}
		r.backend = b
	}
	return r, nil
}

func (r *renderer) InitBuffer(provider bind_group_provider.BindGroupProvider, binding int, size uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ensureCapacity(provider, binding, size)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	if len(writes) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil {
		return
	}

	var total uint64
	for _, w := range writes {
		total += w.Size()
		if w.Provider.Buffer(w.Binding) == nil || w.End() <= w.Provider.Capacity(w.Binding) {
			continue
		}
		if err := r.ensureCapacity(w.Provider, w.Binding, w.End()); err != nil {
			r.logger.Printf("[Renderer] %v", err)
		}
	}
	r.backend.WriteBuffers(writes)
	r.bytesWritten.Add(total)
	r.writeCount.Add(uint64(len(writes)))
}

// ensureCapacity allocates the binding's buffer, or replaces it when it is smaller than size.
// Caller must hold r.mu.
func (r *renderer) ensureCapacity(provider bind_group_provider.BindGroupProvider, binding int, size uint64) error {
	if r.backend == nil {
		return fmt.Errorf("init buffer %s[%d]: renderer released", provider.Label(), binding)
	}
	old := provider.Buffer(binding)
	if old != nil && provider.Capacity(binding) >= size {
		return nil
	}
	reserved := provider.Reserve(binding, size)
	if err := r.backend.InitBuffer(provider, binding, reserved); err != nil {
		return fmt.Errorf("init buffer %s[%d]: %w", provider.Label(), binding, err)
	}
	if old != nil {
		old.Release()
		r.logger.Printf("[Renderer] grew %s[%d] to %d bytes", provider.Label(), binding, reserved)
	}
	return nil
}

func (r *renderer) BytesWritten() uint64 {
	return r.bytesWritten.Load()
}

func (r *renderer) WriteCount() uint64 {
	return r.writeCount.Load()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil {
		return
	}
	r.backend.Release()
	r.backend = nil
	r.logger.Printf("[Renderer] released %s device", r.backendType)
}
