package skeleton

import (
	"github.com/Carmen-Shannon/oxy-actor/common"
	"github.com/Carmen-Shannon/oxy-actor/engine/model"
)

// instance is the implementation of the Instance interface.
type instance struct {
	source *model.Skeleton
	bones  []*Bone
	roots  []*Bone
	byName map[string]*Bone
}

// Instance is a posable copy of a model.Skeleton. Each attached object set that carries
// a skeleton gets its own Instance; one of them is designated the base and the others
// are posed from it every frame via Propagate.
type Instance interface {
	// Source returns the skeleton description this instance was built from.
	//
	// Returns:
	//   - *model.Skeleton: the source skeleton
	Source() *model.Skeleton

	// Bone looks up a bone by name.
	//
	// Parameters:
	//   - name: the bone name
	//
	// Returns:
	//   - *Bone: the bone, or nil if the instance has no such bone
	Bone(name string) *Bone

	// HasBone reports whether the instance has a bone with the given name.
	//
	// Parameters:
	//   - name: the bone name
	//
	// Returns:
	//   - bool: true if the bone exists
	HasBone(name string) bool

	// Bones returns all bones in topological order (parents first).
	//
	// Returns:
	//   - []*Bone: the bones
	Bones() []*Bone

	// RootBones returns the bones without a parent.
	//
	// Returns:
	//   - []*Bone: the root bones
	RootBones() []*Bone

	// SetManuallyControlled marks every bone as externally driven (or not).
	//
	// Parameters:
	//   - manual: the flag to apply
	SetManuallyControlled(manual bool)

	// ResetToBindPose restores every bone's bind-pose local transform.
	ResetToBindPose()

	// UpdateDerived recomputes every bone's model-space transform, parents first.
	UpdateDerived()

	// SkinMatrices writes one column-major skinning matrix (derived * inverse bind) per bone.
	//
	// Parameters:
	//   - out: destination slice, at least 16 * len(Bones()) elements
	//
	// Returns:
	//   - int: the number of matrices written
	SkinMatrices(out []float32) int
}

var _ Instance = &instance{}

// NewInstance creates an Instance of the given skeleton in bind pose.
//
// Parameters:
//   - src: the skeleton description (bones sorted parents first)
//
// Returns:
//   - Instance: the new skeleton instance
func NewInstance(src *model.Skeleton) Instance {
	inst := &instance{
		source: src,
		bones:  make([]*Bone, len(src.Bones)),
		byName: make(map[string]*Bone, len(src.Bones)),
	}
	for i, def := range src.Bones {
		b := &Bone{
			name:        def.Name,
			index:       i,
			initial:     def.LocalTransform,
			inverseBind: def.InverseBindMatrix,
		}
		if def.ParentIndex >= 0 && int(def.ParentIndex) < i {
			b.parent = inst.bones[def.ParentIndex]
			b.parent.children = append(b.parent.children, b)
		} else {
			inst.roots = append(inst.roots, b)
		}
		inst.bones[i] = b
		inst.byName[def.Name] = b
		b.ResetToInitialState()
	}
	return inst
}

func (s *instance) Source() *model.Skeleton {
	return s.source
}

func (s *instance) Bone(name string) *Bone {
	return s.byName[name]
}

func (s *instance) HasBone(name string) bool {
	_, ok := s.byName[name]
	return ok
}

func (s *instance) Bones() []*Bone {
	return s.bones
}

func (s *instance) RootBones() []*Bone {
	return s.roots
}

func (s *instance) SetManuallyControlled(manual bool) {
	for _, b := range s.bones {
		b.SetManuallyControlled(manual)
	}
}

func (s *instance) ResetToBindPose() {
	for _, b := range s.bones {
		b.ResetToInitialState()
	}
}

func (s *instance) UpdateDerived() {
	for _, b := range s.bones {
		b.updateDerived()
	}
}

func (s *instance) SkinMatrices(out []float32) int {
	var world [16]float32
	n := 0
	for i, b := range s.bones {
		if len(out) < (i+1)*16 {
			break
		}
		common.ComposeTRS(world[:], b.derivedPosition, b.derivedOrientation, b.derivedScale)
		common.Mul4(out[i*16:(i+1)*16], world[:], b.inverseBind[:])
		n++
	}
	return n
}

// Propagate poses dst from src, bone by bone and matched by name. Root bones (in either
// skeleton) copy the local transform verbatim; other bones copy the model-space
// orientation and position with unit scale; bones src lacks are reset to their bind pose.
// Only manually controlled bones of dst are posed; the others keep their local transform
// and just follow their parent. Data only flows from src to dst. src's derived transforms
// must be current.
//
// Parameters:
//   - src: the base skeleton instance
//   - dst: the dependent skeleton instance to pose
func Propagate(src, dst Instance) {
	for _, b := range dst.RootBones() {
		updateBoneTree(src, b)
	}
}

func updateBoneTree(src Instance, bone *Bone) {
	if !bone.manual {
		bone.updateDerived()
	} else if srcBone := src.Bone(bone.name); srcBone != nil {
		if srcBone.parent == nil || bone.parent == nil {
			bone.orientation = srcBone.orientation
			bone.position = srcBone.position
			bone.scale = srcBone.scale
			bone.updateDerived()
		} else {
			bone.SetDerivedOrientation(srcBone.derivedOrientation)
			bone.SetDerivedPosition(srcBone.derivedPosition)
			bone.SetScale([3]float32{1, 1, 1})
		}
	} else {
		// keep it offset from its parent
		bone.ResetToInitialState()
	}

	for _, child := range bone.children {
		updateBoneTree(src, child)
	}
}
