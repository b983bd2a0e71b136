package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-actor/common"
	"github.com/Carmen-Shannon/oxy-actor/engine/model"
)

// boneDesc describes one bind-pose bone; Parent names another bone, empty for roots.
// Missing rotation and scale default to identity.
type boneDesc struct {
	Name        string      `yaml:"name"`
	Parent      string      `yaml:"parent"`
	Translation [3]float32  `yaml:"translation"`
	Rotation    *[4]float32 `yaml:"rotation"`
	Scale       *[3]float32 `yaml:"scale"`
}

// buildSkeleton sorts the described bones parents-first and computes their inverse bind
// matrices from the bind-pose local transforms.
func buildSkeleton(in []boneDesc) (*model.Skeleton, error) {
	byName := make(map[string]int, len(in))
	for i, b := range in {
		if b.Name == "" {
			return nil, fmt.Errorf("bone %d: missing name", i)
		}
		if _, dup := byName[b.Name]; dup {
			return nil, fmt.Errorf("duplicate bone %q", b.Name)
		}
		byName[b.Name] = i
	}

	children := make(map[int][]int)
	var queue []int
	for i, b := range in {
		if b.Parent == "" {
			queue = append(queue, i)
			continue
		}
		p, ok := byName[b.Parent]
		if !ok {
			return nil, fmt.Errorf("bone %q: unknown parent %q", b.Name, b.Parent)
		}
		children[p] = append(children[p], i)
	}

	// BFS from the roots gives parents before children
	order := make([]int, 0, len(in))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)
		queue = append(queue, children[i]...)
	}
	if len(order) != len(in) {
		return nil, fmt.Errorf("bone hierarchy has a cycle")
	}

	oldToNew := make(map[int]int32, len(in))
	for newIdx, oldIdx := range order {
		oldToNew[oldIdx] = int32(newIdx)
	}

	bones := make([]model.Bone, len(in))
	world := make([][16]float32, len(in))
	for newIdx, oldIdx := range order {
		src := in[oldIdx]
		local := model.IdentityTransform()
		local.Translation = src.Translation
		if src.Rotation != nil {
			local.Rotation = common.QuatNormalize(*src.Rotation)
		}
		if src.Scale != nil {
			local.Scale = *src.Scale
		}

		bone := model.Bone{Name: src.Name, ParentIndex: -1, LocalTransform: local}

		var localM [16]float32
		common.ComposeTRS(localM[:], local.Translation, local.Rotation, local.Scale)
		if src.Parent != "" {
			parent := oldToNew[byName[src.Parent]]
			bone.ParentIndex = parent
			common.Mul4(world[newIdx][:], world[parent][:], localM[:])
		} else {
			world[newIdx] = localM
		}

		if !common.Invert4(bone.InverseBindMatrix[:], world[newIdx][:]) {
			return nil, fmt.Errorf("bone %q: singular bind pose", src.Name)
		}
		bones[newIdx] = bone
	}

	return model.NewSkeleton(bones), nil
}
