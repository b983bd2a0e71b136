package model

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestTextKeyMapOrdering(t *testing.T) {
	m := NewTextKeyMap(
		TextKey{Time: 1.0, Label: "sound: Footstep"},
		TextKey{Time: 0.0, Label: "Walk: start"},
		TextKey{Time: 1.0, Label: "Walk: hit"},
		TextKey{Time: 0.5, Label: "Walk: loop start"},
	)

	want := []string{"Walk: start", "Walk: loop start", "sound: Footstep", "Walk: hit"}
	if len(m) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(m))
	}
	for i, label := range want {
		if m[i].Label != label {
			t.Fatalf("key %d: expected %q, got %q", i, label, m[i].Label)
		}
	}
}

func TestTextKeyMapFind(t *testing.T) {
	m := NewTextKeyMap(
		TextKey{Time: 0.0, Label: "Idle: start"},
		TextKey{Time: 1.0, Label: "Idle: stop"},
		TextKey{Time: 2.0, Label: "Walk: start"},
		TextKey{Time: 3.0, Label: "Walk: stop"},
	)

	cases := []struct {
		name  string
		label string
		from  int
		want  int
	}{
		{"first", "Idle: start", 0, 0},
		{"from_offset", "Walk: stop", 1, 3},
		{"past_match", "Idle: start", 1, len(m)},
		{"missing", "Run: start", 0, len(m)},
		{"negative_from", "Idle: stop", -3, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := m.Find(c.label, c.from); got != c.want {
				t.Fatalf("Find(%q, %d) = %d, want %d", c.label, c.from, got, c.want)
			}
		})
	}

	if got := m.FindGroupStart("Walk"); got != 2 {
		t.Fatalf("FindGroupStart(Walk) = %d, want 2", got)
	}
	if m.HasGroup("Wal") {
		t.Fatalf("a group name prefix must not match without the ': ' separator")
	}
	if !m.HasGroup("Idle") {
		t.Fatalf("expected Idle group to be present")
	}
}

func TestChannelSampling(t *testing.T) {
	ch := AnimationChannel{
		BoneName: "Bip01",
		PositionKeys: []VectorKeyframe{
			{Time: 0, Value: [3]float32{0, 0, 0}},
			{Time: 2, Value: [3]float32{4, 0, -2}},
		},
	}

	cases := []struct {
		name string
		t    float32
		want [3]float32
	}{
		{"before_range", -1, [3]float32{0, 0, 0}},
		{"midpoint", 1, [3]float32{2, 0, -1}},
		{"quarter", 0.5, [3]float32{1, 0, -0.5}},
		{"after_range", 5, [3]float32{4, 0, -2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ch.Translation(c.t)
			if !ok {
				t.Fatalf("expected translation keys")
			}
			for i := range 3 {
				if !approx(got[i], c.want[i]) {
					t.Fatalf("Translation(%v) = %v, want %v", c.t, got, c.want)
				}
			}
		})
	}

	if _, ok := ch.Rotation(1); ok {
		t.Fatalf("channel without rotation keys must report ok=false")
	}
}

func TestGenericCurveSample(t *testing.T) {
	c := GenericCurve{Name: "glow", Keys: []ScalarKeyframe{{Time: 1, Value: 0}, {Time: 3, Value: 1}}}
	if v := c.Sample(2); !approx(v, 0.5) {
		t.Fatalf("Sample(2) = %v, want 0.5", v)
	}
	if v := c.Sample(0); !approx(v, 0) {
		t.Fatalf("Sample(0) = %v, want 0", v)
	}
	empty := GenericCurve{}
	if v := empty.Sample(1); v != 0 {
		t.Fatalf("empty curve must sample to 0, got %v", v)
	}
}

func TestBaseCopyDropsRenderables(t *testing.T) {
	m := NewModel(
		WithName("npc"),
		WithRenderables(Renderable{Name: "body"}),
		WithParticles(ParticleSystem{Name: "dust"}),
		WithTextKeys("Bip01", TextKey{Time: 0, Label: "Idle: start"}),
	)
	base := m.BaseCopy()
	if !base.BaseOnly() || len(base.Renderables()) != 0 || len(base.Particles()) != 0 {
		t.Fatalf("base copy must have no renderables or particles")
	}
	if base.TextKeyRoot() != "Bip01" || len(base.TextKeys()) != 1 {
		t.Fatalf("base copy must keep text keys")
	}
	if m.BaseOnly() || len(m.Renderables()) != 1 {
		t.Fatalf("original model must be unchanged")
	}
}
