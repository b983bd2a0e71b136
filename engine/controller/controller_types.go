package controller

import (
	"github.com/Carmen-Shannon/oxy-actor/engine/model"
	"github.com/Carmen-Shannon/oxy-actor/engine/skeleton"
)

// Kind distinguishes the two controller variants. It is fixed at construction.
type Kind int

const (
	// KindBone marks a controller that writes keyframed transforms into a skeleton bone.
	KindBone Kind = iota

	// KindGeneric marks a controller that drives a non-bone property through a ValueSink.
	KindGeneric
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindBone:
		return "bone"
	case KindGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// ValueSource supplies the input time of a controller.
type ValueSource interface {
	// Value returns the current input value in seconds.
	Value() float32
}

// ValueSink receives the evaluated output of generic controllers.
type ValueSink interface {
	// SetCurveValue stores the latest value of the named curve.
	SetCurveValue(name string, v float32)
}

// BoneTarget binds one animation channel to a skeleton bone.
type BoneTarget struct {
	bone    *skeleton.Bone
	channel *model.AnimationChannel
}

// NewBoneTarget creates a BoneTarget for the given channel. bone may be nil until the
// channel is bound to a skeleton instance.
//
// Parameters:
//   - bone: the bone to write to
//   - channel: the keyframes to sample
//
// Returns:
//   - *BoneTarget: the new target
func NewBoneTarget(bone *skeleton.Bone, channel *model.AnimationChannel) *BoneTarget {
	return &BoneTarget{bone: bone, channel: channel}
}

// Bone returns the bone this target writes to.
func (t *BoneTarget) Bone() *skeleton.Bone {
	return t.bone
}

// SetBone retargets the controller to another bone, e.g. the same-named bone of the base skeleton.
func (t *BoneTarget) SetBone(b *skeleton.Bone) {
	t.bone = b
}

// Channel returns the sampled channel.
func (t *BoneTarget) Channel() *model.AnimationChannel {
	return t.channel
}

// Translation samples the channel's translation at time tm, or zero if the channel has
// no translation keys.
func (t *BoneTarget) Translation(tm float32) [3]float32 {
	v, _ := t.channel.Translation(tm)
	return v
}

// Apply samples the channel at time tm and writes every present component into the bone.
func (t *BoneTarget) Apply(tm float32) {
	if t.bone == nil {
		return
	}
	if v, ok := t.channel.Translation(tm); ok {
		t.bone.SetPosition(v)
	}
	if q, ok := t.channel.Rotation(tm); ok {
		t.bone.SetOrientation(q)
	}
	if s, ok := t.channel.Scale(tm); ok {
		t.bone.SetScale(s)
	}
}

// GenericTarget binds a generic curve to a ValueSink.
type GenericTarget struct {
	curve *model.GenericCurve
	sink  ValueSink
}

// NewGenericTarget creates a GenericTarget writing the curve's value into sink.
//
// Parameters:
//   - curve: the curve to sample
//   - sink: the receiver of sampled values (may be nil)
//
// Returns:
//   - *GenericTarget: the new target
func NewGenericTarget(curve *model.GenericCurve, sink ValueSink) *GenericTarget {
	return &GenericTarget{curve: curve, sink: sink}
}

// Curve returns the sampled curve.
func (t *GenericTarget) Curve() *model.GenericCurve {
	return t.curve
}

// Apply samples the curve at time tm and forwards it to the sink.
func (t *GenericTarget) Apply(tm float32) {
	if t.sink == nil {
		return
	}
	t.sink.SetCurveValue(t.curve.Name, t.curve.Sample(tm))
}
