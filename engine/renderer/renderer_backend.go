package renderer

// RendererBackendType selects the GPU API a Renderer uploads poses through.
type RendererBackendType int

const (
	// BackendTypeWGPU uploads through a headless WebGPU device.
	BackendTypeWGPU RendererBackendType = iota
)

func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeWGPU:
		return "wgpu"
	default:
		return "unknown"
	}
}

// RendererBackend is the API-specific half of a Renderer.
type RendererBackend interface {
	wgpuRendererBackend
}
