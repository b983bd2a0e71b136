package animation

import (
	"log"

	"github.com/Carmen-Shannon/oxy-actor/engine/controller"
	"github.com/Carmen-Shannon/oxy-actor/engine/model"
	"github.com/Carmen-Shannon/oxy-actor/engine/scene_node"
	"github.com/Carmen-Shannon/oxy-actor/engine/skeleton"
)

// animation is the implementation of the Animation interface.
// It is not safe for concurrent use; one goroutine drives an entity at a time.
type animation struct {
	logger *log.Logger
	loader ModelLoader
	sounds SoundManager
	marker MarkerListener
	entity uint64

	insert     scene_node.Node
	objects    []*objectInfo
	baseObject *objectInfo

	accumRoot    scene_node.Node
	nonAccumRoot *skeleton.Bone
	nonAccumCtrl controller.Controller
	accumulate   [3]float32
	lastPosition [3]float32

	velocity  float32
	speedMult float32

	layers      [MaxLayers]layer
	layerValues [MaxLayers]*layerValue
	clock       *realtimeValue
	active      []controller.Controller
}

// Animation defines the interface for the layered skeletal animation of one entity.
// An Animation owns the object sets attached to the entity, up to MaxLayers independently
// playing timelines, and the root-motion state of layer 0. It is advanced once per
// simulation tick by Advance and is not safe for concurrent use.
type Animation interface {
	// Attach loads a model through the configured ModelLoader and attaches it.
	//
	// Parameters:
	//   - node: the entity's scene node; the shared insertion node is created under it on first attach
	//   - modelID: the model identifier passed to the loader
	//   - baseOnly: load without renderables or particle systems
	//
	// Returns:
	//   - int: the index of the new object set
	//   - error: ErrNoLoader, or the wrapped loader error
	Attach(node scene_node.Node, modelID string, baseOnly bool) (int, error)

	// AttachModel attaches an already loaded model as a new object set.
	// The first object set with a skeleton provides the base skeleton; later skeletons are
	// posed from it. Controllers without an explicit clock are bound to the layer-0 time source.
	//
	// Parameters:
	//   - node: the entity's scene node
	//   - m: the model to attach
	//
	// Returns:
	//   - int: the index of the new object set
	AttachModel(node scene_node.Node, m model.Model) int

	// Detach removes the object set at index. Every layer playing from that set is cleared first.
	//
	// Parameters:
	//   - index: the object set index
	//
	// Returns:
	//   - error: ErrObjectIndex or ErrBaseSkeletonInUse
	Detach(index int) error

	// ObjectCount returns the number of attached object sets.
	//
	// Returns:
	//   - int: the object set count
	ObjectCount() int

	// Release detaches every object set and removes the insertion node from its parent.
	Release()

	// Play arms a layer with an animation group. The object sets are searched in reverse
	// attach order for one whose text keys hold "{group}: {start}" and a later
	// "{group}: {stop}". An empty group clears the layer to idle.
	//
	// Parameters:
	//   - group: the animation group, or empty to clear the layer
	//   - start: the start phase, e.g. "start" or "loop start"
	//   - stop: the stop phase, e.g. "stop" or "loop stop"
	//   - loop: jump back to the loop start whenever the stop key is crossed
	//   - layer: the layer index in [0, MaxLayers)
	//
	// Returns:
	//   - bool: true if the layer was armed (or cleared)
	Play(group, start, stop string, loop bool, layer int) bool

	// Advance moves every non-idle layer forward by dt (scaled by the speed multiplier),
	// dispatches the crossed text keys in time order, evaluates the active controllers and
	// poses the dependent skeletons from the base skeleton.
	//
	// Parameters:
	//   - dt: the elapsed time in seconds
	//
	// Returns:
	//   - [3]float32: the root-motion displacement extracted from layer 0 during this call
	Advance(dt float32) [3]float32

	// HasAnimation reports whether any attached object set has text keys for the group.
	//
	// Parameters:
	//   - group: the animation group
	//
	// Returns:
	//   - bool: true if the group exists
	HasAnimation(group string) bool

	// Layer returns a snapshot of the layer state. Out-of-range indices yield an idle state.
	//
	// Parameters:
	//   - index: the layer index
	//
	// Returns:
	//   - LayerState: the snapshot
	Layer(index int) LayerState

	// Velocity returns the baked root speed of the group playing on layer 0, in units per second.
	//
	// Returns:
	//   - float32: the velocity, 0 if unknown
	Velocity() float32

	// SpeedMultiplier returns the factor applied to dt by Advance.
	//
	// Returns:
	//   - float32: the multiplier
	SpeedMultiplier() float32

	// SetSpeed requests a movement speed. The multiplier becomes speed / Velocity() when the
	// baked velocity exceeds 1 and speed is positive, otherwise 1.
	//
	// Parameters:
	//   - speed: the requested speed in units per second
	SetSpeed(speed float32)

	// SetAccumulation sets the per-axis mask (0 or 1) applied to extracted root motion.
	//
	// Parameters:
	//   - mask: the accumulation mask
	SetAccumulation(mask [3]float32)

	// SetMarkerListener sets the receiver of marker events; nil drops them.
	//
	// Parameters:
	//   - l: the listener
	SetMarkerListener(l MarkerListener)

	// UpdateEntity rebinds the entity reference passed to the SoundManager.
	//
	// Parameters:
	//   - entity: the entity identifier
	UpdateEntity(entity uint64)

	// Entity returns the entity reference passed to the SoundManager.
	//
	// Returns:
	//   - uint64: the entity identifier
	Entity() uint64

	// ActiveControllerCount returns the number of controllers evaluated per Advance.
	//
	// Returns:
	//   - int: the active controller count
	ActiveControllerCount() int

	// CurveValue returns the last value a generic curve of an object set produced.
	//
	// Parameters:
	//   - object: the object set index
	//   - name: the curve name
	//
	// Returns:
	//   - float32: the value
	//   - bool: false if the object set or curve value does not exist
	CurveValue(object int, name string) (float32, bool)

	// Node returns the base skeleton's bone with the given name.
	//
	// Parameters:
	//   - name: the bone name
	//
	// Returns:
	//   - *skeleton.Bone: the bone, or nil
	Node(name string) *skeleton.Bone

	// Insert returns the shared insertion node, or nil before the first attach.
	//
	// Returns:
	//   - scene_node.Node: the insertion node
	Insert() scene_node.Node

	// BaseSkeleton returns the base skeleton instance, or nil if no object set has a skeleton.
	//
	// Returns:
	//   - skeleton.Instance: the base skeleton
	BaseSkeleton() skeleton.Instance

	// Pose writes the base skeleton's skinning matrices into out.
	//
	// Parameters:
	//   - out: destination, 16 floats per bone
	//
	// Returns:
	//   - int: the number of matrices written
	Pose(out []float32) int
}

var _ Animation = &animation{}

// NewAnimation creates a new Animation with the specified options applied.
// The accumulation mask defaults to zero (no root motion is reported).
//
// Parameters:
//   - options: a variadic list of AnimationBuilderOption functions
//
// Returns:
//   - Animation: the new Animation
func NewAnimation(options ...AnimationBuilderOption) Animation {
	a := &animation{
		logger:    log.Default(),
		speedMult: 1,
		active:    make([]controller.Controller, 0, 128),
	}
	for i := range a.layerValues {
		a.layerValues[i] = &layerValue{anim: a, index: i}
	}
	for i := range a.layers {
		a.layers[i].reset()
	}
	a.clock = &realtimeValue{}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *animation) HasAnimation(group string) bool {
	for _, obj := range a.objects {
		if obj.model.TextKeys().HasGroup(group) {
			return true
		}
	}
	return false
}

func (a *animation) Layer(index int) LayerState {
	if index < 0 || index >= MaxLayers {
		return LayerState{Object: -1}
	}
	l := &a.layers[index]
	return LayerState{
		Group:        l.group,
		Time:         l.time,
		Playing:      l.playing,
		Looping:      l.looping,
		Object:       a.objectIndex(l.object),
		StartKey:     l.startKey,
		LoopStartKey: l.loopStartKey,
		NextKey:      l.nextKey,
		StopKey:      l.stopKey,
	}
}

func (a *animation) Velocity() float32 {
	return a.velocity
}

func (a *animation) SpeedMultiplier() float32 {
	return a.speedMult
}

func (a *animation) SetSpeed(speed float32) {
	a.speedMult = 1
	if a.velocity > 1 && speed > 0 {
		a.speedMult = speed / a.velocity
	}
}

func (a *animation) SetAccumulation(mask [3]float32) {
	a.accumulate = mask
}

func (a *animation) SetMarkerListener(l MarkerListener) {
	a.marker = l
}

func (a *animation) UpdateEntity(entity uint64) {
	a.entity = entity
}

func (a *animation) Entity() uint64 {
	return a.entity
}

func (a *animation) ActiveControllerCount() int {
	return len(a.active)
}

func (a *animation) CurveValue(object int, name string) (float32, bool) {
	if object < 0 || object >= len(a.objects) {
		return 0, false
	}
	v, ok := a.objects[object].curveValues[name]
	return v, ok
}

func (a *animation) Node(name string) *skeleton.Bone {
	if a.baseObject == nil {
		return nil
	}
	return a.baseObject.skeleton.Bone(name)
}

func (a *animation) Insert() scene_node.Node {
	return a.insert
}

func (a *animation) BaseSkeleton() skeleton.Instance {
	if a.baseObject == nil {
		return nil
	}
	return a.baseObject.skeleton
}

func (a *animation) Pose(out []float32) int {
	if a.baseObject == nil {
		return 0
	}
	return a.baseObject.skeleton.SkinMatrices(out)
}
