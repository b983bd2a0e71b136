package controller

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-actor/engine/model"
	"github.com/Carmen-Shannon/oxy-actor/engine/skeleton"
)

type fixedSource float32

func (f fixedSource) Value() float32 { return float32(f) }

type recordingSink map[string]float32

func (r recordingSink) SetCurveValue(name string, v float32) { r[name] = v }

func testSkeleton() skeleton.Instance {
	root := model.IdentityTransform()
	return skeleton.NewInstance(model.NewSkeleton([]model.Bone{
		{Name: "Bip01", ParentIndex: -1, LocalTransform: root},
	}))
}

func TestBoneControllerUpdate(t *testing.T) {
	inst := testSkeleton()
	ch := &model.AnimationChannel{
		BoneName: "Bip01",
		PositionKeys: []model.VectorKeyframe{
			{Time: 0, Value: [3]float32{0, 0, 0}},
			{Time: 1, Value: [3]float32{0, 10, 0}},
		},
	}
	target := NewBoneTarget(inst.Bone("Bip01"), ch)

	cases := []struct {
		name string
		src  ValueSource
		want [3]float32
	}{
		{"no_source_is_noop", nil, [3]float32{0, 0, 0}},
		{"half", fixedSource(0.5), [3]float32{0, 5, 0}},
		{"clamped", fixedSource(3), [3]float32{0, 10, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			inst.ResetToBindPose()
			ctrl := NewBoneController(target, c.src)
			ctrl.Update()
			if got := inst.Bone("Bip01").Position(); got != c.want {
				t.Fatalf("position = %v, want %v", got, c.want)
			}
		})
	}
}

func TestBoneTargetRetarget(t *testing.T) {
	a, b := testSkeleton(), testSkeleton()
	ch := &model.AnimationChannel{
		BoneName:     "Bip01",
		PositionKeys: []model.VectorKeyframe{{Time: 0, Value: [3]float32{1, 2, 3}}},
	}
	ctrl := NewBoneController(NewBoneTarget(a.Bone("Bip01"), ch), fixedSource(0))
	ctrl.BoneTarget().SetBone(b.Bone("Bip01"))
	ctrl.Update()

	if a.Bone("Bip01").Position() != ([3]float32{}) {
		t.Fatalf("original bone must be untouched after retargeting")
	}
	if b.Bone("Bip01").Position() != ([3]float32{1, 2, 3}) {
		t.Fatalf("retargeted bone not written")
	}
	if ctrl.Kind() != KindBone || ctrl.GenericTarget() != nil || ctrl.Name() != "Bip01" {
		t.Fatalf("unexpected bone controller shape")
	}
	if got := ctrl.BoneTarget().Translation(0); got != ([3]float32{1, 2, 3}) {
		t.Fatalf("Translation(0) = %v", got)
	}
}

func TestGenericController(t *testing.T) {
	sink := recordingSink{}
	curve := &model.GenericCurve{Name: "emit", Clock: model.ClockRealtime, Keys: []model.ScalarKeyframe{{Time: 0, Value: 0}, {Time: 2, Value: 4}}}
	ctrl := NewGenericController(NewGenericTarget(curve, sink), fixedSource(1))
	ctrl.Update()

	if sink["emit"] != 2 {
		t.Fatalf("emit = %v, want 2", sink["emit"])
	}
	if ctrl.Kind() != KindGeneric || ctrl.BoneTarget() != nil || ctrl.Clock() != model.ClockRealtime {
		t.Fatalf("unexpected generic controller shape")
	}
	if KindGeneric.String() != "generic" || Kind(9).String() != "unknown" {
		t.Fatalf("unexpected kind names")
	}
}
