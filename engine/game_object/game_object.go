package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-actor/common"
	"github.com/Carmen-Shannon/oxy-actor/engine/animation"
	"github.com/Carmen-Shannon/oxy-actor/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-actor/engine/scene_node"
)

type gameObject struct {
	mu      sync.Mutex
	id      uint64
	enabled atomic.Bool

	node scene_node.Node
	anim animation.Animation

	position [3]float32
	rotation [3]float32

	poseProvider bind_group_provider.BindGroupProvider
	palette      []float32
	stagingPose  []byte
	actorData    GPUActorData
	staged       []bind_group_provider.BufferWrite
}

// GameObject defines the interface for an animated actor in a scene.
// A GameObject owns a scene node and an Animation attached to it. Every Update advances the
// animation, moves the object by the extracted root motion (rotated into world space by
// the object's heading) and stages its final pose for GPU upload.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's unique identifier and rebinds the animation's entity reference.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Enabled returns whether this object is advanced by its scene.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is advanced by its scene.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Node returns the object's scene node.
	//
	// Returns:
	//   - scene_node.Node: the node
	Node() scene_node.Node

	// Animation returns the object's animation state.
	//
	// Returns:
	//   - animation.Animation: the animation
	Animation() animation.Animation

	// Position returns the world position.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// SetPosition sets the world position.
	//
	// Parameters:
	//   - p: the position
	SetPosition(p [3]float32)

	// Rotation returns the Euler rotation in radians.
	//
	// Returns:
	//   - [3]float32: the rotation around X, Y and Z
	Rotation() [3]float32

	// SetRotation sets the Euler rotation in radians.
	//
	// Parameters:
	//   - r: the rotation around X, Y and Z
	SetRotation(r [3]float32)

	// Update advances the animation by dt, applies the root-motion displacement to the
	// world position and stages the pose writes. Disabled objects are left untouched.
	//
	// Parameters:
	//   - dt: the elapsed time in seconds
	//
	// Returns:
	//   - [3]float32: the world-space displacement applied
	Update(dt float32) [3]float32

	// PoseProvider returns the provider receiving the staged pose writes, or nil.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider
	PoseProvider() bind_group_provider.BindGroupProvider

	// BufferSizes returns the byte size each pose binding needs for the current base skeleton.
	//
	// Returns:
	//   - map[int]uint64: sizes keyed by binding
	BufferSizes() map[int]uint64

	// StagedWriteData drains the writes staged by Update.
	// The returned slice is only valid until the next Update.
	//
	// Returns:
	//   - []bind_group_provider.BufferWrite: the staged writes
	StagedWriteData() []bind_group_provider.BufferWrite
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// A node named after the ID and an Animation bound to the ID are created when not supplied.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		staged: make([]bind_group_provider.BufferWrite, 0, 2),
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	if obj.node == nil {
		obj.node = scene_node.NewNode("actor")
	}
	if obj.anim == nil {
		obj.anim = animation.NewAnimation(animation.WithEntity(obj.id))
	}
	obj.node.SetPosition(obj.position)
	return obj
}

func (g *gameObject) ID() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
	g.anim.UpdateEntity(id)
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Node() scene_node.Node {
	return g.node
}

func (g *gameObject) Animation() animation.Animation {
	return g.anim
}

func (g *gameObject) Position() [3]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) SetPosition(p [3]float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = p
	g.node.SetPosition(p)
}

func (g *gameObject) Rotation() [3]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) SetRotation(r [3]float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = r
}

func (g *gameObject) Update(dt float32) [3]float32 {
	if !g.Enabled() {
		return [3]float32{}
	}
	disp := g.anim.Advance(dt)

	g.mu.Lock()
	defer g.mu.Unlock()
	heading := common.QuatFromEuler(g.rotation[0], g.rotation[1], g.rotation[2])
	world := common.QuatRotate(heading, disp)
	g.position = common.Vec3Add(g.position, world)
	g.node.SetPosition(g.position)
	g.stagePose(heading)
	return world
}

func (g *gameObject) PoseProvider() bind_group_provider.BindGroupProvider {
	return g.poseProvider
}

func (g *gameObject) BufferSizes() map[int]uint64 {
	bones := 0
	if base := g.anim.BaseSkeleton(); base != nil {
		bones = len(base.Bones())
	}
	if bones == 0 {
		// storage buffers cannot be empty
		bones = 1
	}
	return map[int]uint64{
		InstanceBinding: uint64(g.actorData.Size()),
		PoseBinding:     uint64(bones * 16 * 4),
	}
}

func (g *gameObject) StagedWriteData() []bind_group_provider.BufferWrite {
	g.mu.Lock()
	defer g.mu.Unlock()
	w := g.staged
	g.staged = g.staged[:0]
	return w
}

// stagePose must be called with g.mu held.
func (g *gameObject) stagePose(heading [4]float32) {
	if g.poseProvider == nil {
		return
	}
	g.staged = g.staged[:0]

	common.ComposeTRS(g.actorData.Model[:], g.position, heading, [3]float32{1, 1, 1})
	g.actorData.BoneCount = 0

	if base := g.anim.BaseSkeleton(); base != nil {
		need := len(base.Bones()) * 16
		if cap(g.palette) < need {
			g.palette = make([]float32, need)
		}
		g.palette = g.palette[:need]
		n := g.anim.Pose(g.palette)
		g.actorData.BoneCount = uint32(n)

		raw := common.SliceToBytes(g.palette[:n*16])
		if cap(g.stagingPose) < len(raw) {
			g.stagingPose = make([]byte, len(raw))
		}
		buf := g.stagingPose[:len(raw)]
		copy(buf, raw)
		if len(buf) > 0 {
			g.staged = append(g.staged, bind_group_provider.BufferWrite{
				Provider: g.poseProvider,
				Binding:  PoseBinding,
				Offset:   0,
				Data:     buf,
			})
		}
	}

	g.staged = append(g.staged, bind_group_provider.BufferWrite{
		Provider: g.poseProvider,
		Binding:  InstanceBinding,
		Offset:   0,
		Data:     g.actorData.Marshal(),
	})
}
