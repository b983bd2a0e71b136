package animation

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-actor/engine/model"
)

// MaxLayers is the number of independently playing animation layers per entity.
// Layer 0 drives root motion.
const MaxLayers = 4

var (
	// ErrObjectIndex is returned when an object set index is out of range.
	ErrObjectIndex = errors.New("animation: object set index out of range")

	// ErrBaseSkeletonInUse is returned when detaching the object set that owns the base
	// skeleton while other object sets are still attached.
	ErrBaseSkeletonInUse = errors.New("animation: base skeleton still shared by other object sets")

	// ErrNoLoader is returned by Attach when no ModelLoader was configured.
	ErrNoLoader = errors.New("animation: no model loader configured")
)

// SoundManager receives one-shot 3D sound cues fired by "sound: " text keys.
type SoundManager interface {
	// PlaySound3D plays a sound positioned at the given entity.
	PlaySound3D(entity uint64, soundID string, volume, pitch float32)
}

// MarkerListener receives the named marker events crossed on the timeline, such as
// "hit" or "release". Markers are reported without the group prefix.
type MarkerListener interface {
	// MarkerEvent is called once per crossed marker key.
	MarkerEvent(time float32, name string)
}

// ModelLoader resolves a model identifier into an object set description.
type ModelLoader interface {
	// LoadObjects loads the named model. With baseOnly set the returned model carries
	// no renderables or particle systems.
	LoadObjects(id string, baseOnly bool) (model.Model, error)
}

// LayerState is a read-only snapshot of one animation layer.
type LayerState struct {
	// Group is the active animation group, or empty when the layer is idle.
	Group string

	// Time is the layer's timeline cursor in seconds.
	Time float32

	// Playing is false once the stop key has been crossed on a non-looping layer.
	Playing bool

	// Looping reports whether crossing the stop key jumps back to the loop start.
	Looping bool

	// Object is the index of the object set providing the layer's timeline, or -1.
	Object int

	// StartKey, LoopStartKey, NextKey and StopKey index into the object set's text keys.
	StartKey, LoopStartKey, NextKey, StopKey int
}
