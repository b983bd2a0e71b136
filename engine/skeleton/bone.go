package skeleton

import (
	"github.com/Carmen-Shannon/oxy-actor/common"
	"github.com/Carmen-Shannon/oxy-actor/engine/model"
)

// Bone is a runtime bone of a skeleton Instance. It holds a local transform relative to
// its parent and a derived (model-space) transform. Setters keep the bone's own derived
// transform consistent with its parent's current derived transform; descendants are
// refreshed by Instance.UpdateDerived.
type Bone struct {
	name     string
	index    int
	parent   *Bone
	children []*Bone

	initial     model.Transform
	inverseBind [16]float32

	position    [3]float32
	orientation [4]float32
	scale       [3]float32

	derivedPosition    [3]float32
	derivedOrientation [4]float32
	derivedScale       [3]float32

	manual bool
}

// Name returns the bone's name.
func (b *Bone) Name() string {
	return b.name
}

// Index returns the bone's index within its Instance.
func (b *Bone) Index() int {
	return b.index
}

// Parent returns the parent bone, or nil for a root bone.
func (b *Bone) Parent() *Bone {
	return b.parent
}

// Children returns the bone's direct children.
func (b *Bone) Children() []*Bone {
	return b.children
}

// Position returns the local translation.
func (b *Bone) Position() [3]float32 {
	return b.position
}

// Orientation returns the local rotation quaternion (x, y, z, w).
func (b *Bone) Orientation() [4]float32 {
	return b.orientation
}

// Scale returns the local scale.
func (b *Bone) Scale() [3]float32 {
	return b.scale
}

// DerivedPosition returns the model-space translation.
func (b *Bone) DerivedPosition() [3]float32 {
	return b.derivedPosition
}

// DerivedOrientation returns the model-space rotation.
func (b *Bone) DerivedOrientation() [4]float32 {
	return b.derivedOrientation
}

// DerivedScale returns the model-space scale.
func (b *Bone) DerivedScale() [3]float32 {
	return b.derivedScale
}

// InitialState returns the bind-pose local transform.
func (b *Bone) InitialState() model.Transform {
	return b.initial
}

// SetPosition sets the local translation.
func (b *Bone) SetPosition(p [3]float32) {
	b.position = p
	b.updateDerived()
}

// SetOrientation sets the local rotation.
func (b *Bone) SetOrientation(q [4]float32) {
	b.orientation = q
	b.updateDerived()
}

// SetScale sets the local scale.
func (b *Bone) SetScale(s [3]float32) {
	b.scale = s
	b.updateDerived()
}

// SetDerivedPosition sets the local translation so that the model-space translation
// equals p, given the parent's current derived transform.
//
// Parameters:
//   - p: the desired model-space translation
func (b *Bone) SetDerivedPosition(p [3]float32) {
	if b.parent == nil {
		b.position = p
	} else {
		rel := common.Vec3Sub(p, b.parent.derivedPosition)
		rel = common.QuatRotate(common.QuatConjugate(b.parent.derivedOrientation), rel)
		b.position = common.Vec3Div(rel, b.parent.derivedScale)
	}
	b.updateDerived()
}

// SetDerivedOrientation sets the local rotation so that the model-space rotation
// equals q, given the parent's current derived transform.
//
// Parameters:
//   - q: the desired model-space rotation
func (b *Bone) SetDerivedOrientation(q [4]float32) {
	if b.parent == nil {
		b.orientation = q
	} else {
		b.orientation = common.QuatNormalize(common.QuatMul(common.QuatConjugate(b.parent.derivedOrientation), q))
	}
	b.updateDerived()
}

// ResetToInitialState restores the bind-pose local transform.
func (b *Bone) ResetToInitialState() {
	b.position = b.initial.Translation
	b.orientation = b.initial.Rotation
	b.scale = b.initial.Scale
	b.updateDerived()
}

// ManuallyControlled reports whether the bone is driven externally rather than by
// any built-in animation state. Propagate only poses manually controlled bones.
func (b *Bone) ManuallyControlled() bool {
	return b.manual
}

// SetManuallyControlled marks the bone as externally driven.
func (b *Bone) SetManuallyControlled(manual bool) {
	b.manual = manual
}

func (b *Bone) updateDerived() {
	if b.parent == nil {
		b.derivedPosition = b.position
		b.derivedOrientation = b.orientation
		b.derivedScale = b.scale
		return
	}
	p := b.parent
	b.derivedOrientation = common.QuatNormalize(common.QuatMul(p.derivedOrientation, b.orientation))
	b.derivedScale = common.Vec3Mul(p.derivedScale, b.scale)
	b.derivedPosition = common.Vec3Add(
		common.QuatRotate(p.derivedOrientation, common.Vec3Mul(p.derivedScale, b.position)),
		p.derivedPosition,
	)
}
