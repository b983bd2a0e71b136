package skeleton

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-actor/common"
	"github.com/Carmen-Shannon/oxy-actor/engine/model"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func approxVec(a, b [3]float32) bool {
	return approx(a[0], b[0]) && approx(a[1], b[1]) && approx(a[2], b[2])
}

func bone(name string, parent int32, t [3]float32) model.Bone {
	tr := model.IdentityTransform()
	tr.Translation = t
	return model.Bone{Name: name, ParentIndex: parent, LocalTransform: tr}
}

func chain(names ...string) *model.Skeleton {
	bones := make([]model.Bone, len(names))
	for i, n := range names {
		bones[i] = bone(n, int32(i-1), [3]float32{0, 1, 0})
	}
	return model.NewSkeleton(bones)
}

func TestDerivedTransforms(t *testing.T) {
	inst := NewInstance(chain("Root", "Spine", "Head"))

	cases := []struct {
		name string
		want [3]float32
	}{
		{"Root", [3]float32{0, 1, 0}},
		{"Spine", [3]float32{0, 2, 0}},
		{"Head", [3]float32{0, 3, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := inst.Bone(c.name).DerivedPosition(); !approxVec(got, c.want) {
				t.Fatalf("derived position = %v, want %v", got, c.want)
			}
		})
	}

	// rotating the root by 90 degrees about Z swings the chain onto -X
	inst.Bone("Root").SetOrientation(common.QuatFromEuler(0, 0, math.Pi/2))
	inst.UpdateDerived()
	if got := inst.Bone("Head").DerivedPosition(); !approxVec(got, [3]float32{-2, 1, 0}) {
		t.Fatalf("rotated head position = %v, want [-2 1 0]", got)
	}
}

func TestSetDerivedRoundTrip(t *testing.T) {
	inst := NewInstance(chain("Root", "Spine"))
	root := inst.Bone("Root")
	root.SetOrientation(common.QuatFromEuler(0.3, 0.2, 0.1))
	root.SetScale([3]float32{2, 2, 2})
	inst.UpdateDerived()

	spine := inst.Bone("Spine")
	want := [3]float32{1, 5, -3}
	spine.SetDerivedPosition(want)
	if got := spine.DerivedPosition(); !approxVec(got, want) {
		t.Fatalf("derived position = %v, want %v", got, want)
	}

	q := common.QuatFromEuler(0, 1, 0)
	spine.SetDerivedOrientation(q)
	got := spine.DerivedOrientation()
	// q and -q describe the same rotation
	dot := got[0]*q[0] + got[1]*q[1] + got[2]*q[2] + got[3]*q[3]
	if !approx(float32(math.Abs(float64(dot))), 1) {
		t.Fatalf("derived orientation = %v, want %v", got, q)
	}
}

func TestPropagate(t *testing.T) {
	src := NewInstance(chain("Root", "Spine", "Head"))
	dst := NewInstance(model.NewSkeleton([]model.Bone{
		bone("Root", -1, [3]float32{0, 0, 0}),
		bone("Spine", 0, [3]float32{0, 0, 0}),
		bone("Tail", 1, [3]float32{0, 0, 7}),
	}))

	src.Bone("Root").SetPosition([3]float32{5, 0, 0})
	src.Bone("Spine").SetOrientation(common.QuatFromEuler(0, 0, math.Pi/2))
	src.UpdateDerived()

	dst.SetManuallyControlled(true)
	dst.Bone("Tail").SetPosition([3]float32{9, 9, 9})
	srcSpineBefore := src.Bone("Spine").Position()

	Propagate(src, dst)

	t.Run("root_copied_verbatim", func(t *testing.T) {
		if got := dst.Bone("Root").Position(); !approxVec(got, [3]float32{5, 0, 0}) {
			t.Fatalf("root position = %v", got)
		}
	})
	t.Run("matched_bone_takes_derived", func(t *testing.T) {
		if got := dst.Bone("Spine").DerivedPosition(); !approxVec(got, src.Bone("Spine").DerivedPosition()) {
			t.Fatalf("spine derived position = %v, want %v", got, src.Bone("Spine").DerivedPosition())
		}
		if got := dst.Bone("Spine").Scale(); got != [3]float32{1, 1, 1} {
			t.Fatalf("spine scale = %v, want unit", got)
		}
	})
	t.Run("missing_bone_reset", func(t *testing.T) {
		if got := dst.Bone("Tail").Position(); !approxVec(got, [3]float32{0, 0, 7}) {
			t.Fatalf("tail position = %v, want bind pose", got)
		}
	})
	t.Run("source_untouched", func(t *testing.T) {
		if got := src.Bone("Spine").Position(); got != srcSpineBefore {
			t.Fatalf("source spine moved: %v", got)
		}
	})
}

func TestSkinMatricesBindPoseIsIdentity(t *testing.T) {
	skel := chain("Root", "Spine")
	// inverse bind of the bind pose
	for i := range skel.Bones {
		var world [16]float32
		common.ComposeTRS(world[:], [3]float32{0, float32(i + 1), 0}, common.QuatIdentity(), [3]float32{1, 1, 1})
		common.Invert4(skel.Bones[i].InverseBindMatrix[:], world[:])
	}
	inst := NewInstance(skel)

	out := make([]float32, 32)
	if n := inst.SkinMatrices(out); n != 2 {
		t.Fatalf("wrote %d matrices, want 2", n)
	}
	var ident [16]float32
	common.Identity(ident[:])
	for i, v := range out {
		if !approx(v, ident[i%16]) {
			t.Fatalf("matrix element %d = %v, want %v", i, v, ident[i%16])
		}
	}

	if n := inst.SkinMatrices(make([]float32, 20)); n != 1 {
		t.Fatalf("short buffer wrote %d matrices, want 1", n)
	}
}

func TestPropagateSkipsUnmanagedBones(t *testing.T) {
	src := NewInstance(chain("Root", "Spine", "Head"))
	dst := NewInstance(chain("Root", "Spine", "Head"))
	dst.SetManuallyControlled(true)
	dst.Bone("Spine").SetManuallyControlled(false)
	dst.Bone("Spine").SetPosition([3]float32{0, 0, 3})

	src.Bone("Root").SetPosition([3]float32{5, 0, 0})
	src.UpdateDerived()
	Propagate(src, dst)

	if got := dst.Bone("Spine").Position(); got != [3]float32{0, 0, 3} {
		t.Fatalf("unmanaged spine local position = %v, want [0 0 3]", got)
	}
	if got := dst.Bone("Spine").DerivedPosition(); !approxVec(got, [3]float32{5, 0, 3}) {
		t.Fatalf("unmanaged spine must follow its parent, derived = %v", got)
	}
	if got := dst.Bone("Head").DerivedPosition(); !approxVec(got, src.Bone("Head").DerivedPosition()) {
		t.Fatalf("managed head derived = %v, want %v", got, src.Bone("Head").DerivedPosition())
	}
}

func TestManualControl(t *testing.T) {
	inst := NewInstance(chain("Root", "Spine"))
	inst.SetManuallyControlled(true)
	for _, b := range inst.Bones() {
		if !b.ManuallyControlled() {
			t.Fatalf("bone %s not manually controlled", b.Name())
		}
	}
	if inst.HasBone("Tail") || inst.Bone("Tail") != nil {
		t.Fatalf("unexpected bone Tail")
	}
}
