package game_object

import (
	"encoding/binary"
	"math"
	"unsafe"
)

const (
	// InstanceBinding is the provider binding that holds the actor's GPUActorData.
	InstanceBinding = 0
	// PoseBinding is the provider binding that holds the actor's skinning palette,
	// one column-major mat4x4<f32> per bone of the base skeleton.
	PoseBinding = 1
)

// GPUActorData is the GPU-aligned representation of per-actor data.
// Size: 80 bytes (std430 aligned).
type GPUActorData struct {
	Model     [16]float32 // offset 0, size 64 (mat4x4<f32>)
	BoneCount uint32      // offset 64
	_pad      [3]uint32   // offset 68: pad to 16-byte stride
}

// Size returns the size of the GPUActorData struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (g *GPUActorData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUActorData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (g *GPUActorData) Marshal() []byte {
	buf := make([]byte, 80)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:68], g.BoneCount)
	return buf
}
