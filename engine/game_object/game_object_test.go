package game_object

import (
	"encoding/binary"
	"io"
	"log"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-actor/engine/animation"
	"github.com/Carmen-Shannon/oxy-actor/engine/model"
	"github.com/Carmen-Shannon/oxy-actor/engine/renderer/bind_group_provider"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func approxVec(a, b [3]float32) bool {
	return approx(a[0], b[0]) && approx(a[1], b[1]) && approx(a[2], b[2])
}

// walker moves Bip01 from the origin to (2, 0, 0) over two seconds.
func walker() model.Model {
	return model.NewModel(
		model.WithName("walker"),
		model.WithSkeleton(model.NewSkeleton([]model.Bone{
			{Name: "Root", ParentIndex: -1, LocalTransform: model.IdentityTransform()},
			{Name: "Bip01", ParentIndex: 0, LocalTransform: model.IdentityTransform()},
			{Name: "Spine", ParentIndex: 1, LocalTransform: model.IdentityTransform()},
		})),
		model.WithChannels(model.AnimationChannel{
			BoneName: "Bip01",
			PositionKeys: []model.VectorKeyframe{
				{Time: 0, Value: [3]float32{0, 0, 0}},
				{Time: 2, Value: [3]float32{2, 0, 0}},
			},
		}),
		model.WithTextKeys("Bip01",
			model.TextKey{Time: 0, Label: "Walk: start"},
			model.TextKey{Time: 2, Label: "Walk: stop"},
		),
	)
}

func newWalker(t *testing.T, options ...GameObjectBuilderOption) GameObject {
	t.Helper()
	anim := animation.NewAnimation(
		animation.WithLogger(log.New(io.Discard, "", 0)),
		animation.WithAccumulation([3]float32{1, 1, 1}),
	)
	obj := NewGameObject(append([]GameObjectBuilderOption{WithAnimation(anim)}, options...)...)
	obj.Animation().AttachModel(obj.Node(), walker())
	if !obj.Animation().Play("Walk", "start", "stop", false, 0) {
		t.Fatalf("expected Walk to play")
	}
	return obj
}

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject(WithID(7))
	if !obj.Enabled() {
		t.Fatalf("expected new objects to be enabled")
	}
	if obj.Node() == nil || obj.Animation() == nil {
		t.Fatalf("expected a default node and animation")
	}
	if obj.Animation().Entity() != 7 {
		t.Fatalf("expected animation entity 7, got %d", obj.Animation().Entity())
	}
	obj.SetID(9)
	if obj.ID() != 9 || obj.Animation().Entity() != 9 {
		t.Fatalf("SetID must rebind the animation entity")
	}
}

func TestUpdateAppliesRootMotion(t *testing.T) {
	cases := []struct {
		name     string
		rotation [3]float32
		want     [3]float32
	}{
		{"no_heading", [3]float32{}, [3]float32{1, 0, 0}},
		{"quarter_turn_yaw", [3]float32{0, math.Pi / 2, 0}, [3]float32{0, 0, -1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			obj := newWalker(t, WithPosition([3]float32{10, 0, 0}), WithRotation(c.rotation))
			disp := obj.Update(1)
			if !approxVec(disp, c.want) {
				t.Fatalf("expected displacement %v, got %v", c.want, disp)
			}
			want := [3]float32{10 + c.want[0], c.want[1], c.want[2]}
			if !approxVec(obj.Position(), want) {
				t.Fatalf("expected position %v, got %v", want, obj.Position())
			}
			if !approxVec(obj.Node().Position(), want) {
				t.Fatalf("node must follow the object position, got %v", obj.Node().Position())
			}
		})
	}
}

func TestDisabledObjectDoesNotAdvance(t *testing.T) {
	obj := newWalker(t, WithEnabled(false))
	if disp := obj.Update(1); disp != ([3]float32{}) {
		t.Fatalf("disabled objects must not move, got %v", disp)
	}
	if st := obj.Animation().Layer(0); st.Time != 0 {
		t.Fatalf("disabled objects must not advance their layers, time=%v", st.Time)
	}
}

func TestStagedPoseWrites(t *testing.T) {
	provider := bind_group_provider.NewBindGroupProvider("walker pose")
	obj := newWalker(t, WithPoseProvider(provider))

	sizes := obj.BufferSizes()
	if sizes[PoseBinding] != 3*64 {
		t.Fatalf("expected pose buffer of 3 matrices, got %d bytes", sizes[PoseBinding])
	}
	if sizes[InstanceBinding] != 80 {
		t.Fatalf("expected 80-byte actor data, got %d", sizes[InstanceBinding])
	}

	obj.Update(0.5)
	writes := obj.StagedWriteData()
	if len(writes) != 2 {
		t.Fatalf("expected pose and instance writes, got %d", len(writes))
	}
	byBinding := map[int]bind_group_provider.BufferWrite{}
	for _, w := range writes {
		if w.Provider != provider {
			t.Fatalf("write targets the wrong provider")
		}
		byBinding[w.Binding] = w
	}
	if got := byBinding[PoseBinding].Size(); got != 3*64 {
		t.Fatalf("expected 192 palette bytes, got %d", got)
	}
	inst := byBinding[InstanceBinding].Data
	if got := binary.LittleEndian.Uint32(inst[64:68]); got != 3 {
		t.Fatalf("expected bone count 3, got %d", got)
	}

	if again := obj.StagedWriteData(); len(again) != 0 {
		t.Fatalf("StagedWriteData must drain, got %d writes", len(again))
	}
}

func TestNoProviderStagesNothing(t *testing.T) {
	obj := newWalker(t)
	obj.Update(0.5)
	if w := obj.StagedWriteData(); len(w) != 0 {
		t.Fatalf("expected no writes without a provider, got %d", len(w))
	}
}
