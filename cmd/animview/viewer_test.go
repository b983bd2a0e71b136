package main

import (
	"io"
	"log"
	"testing"

	"github.com/Carmen-Shannon/oxy-actor/common"
	"github.com/Carmen-Shannon/oxy-actor/engine/loader"
	"github.com/Carmen-Shannon/oxy-actor/engine/scene"
	"github.com/Carmen-Shannon/oxy-actor/engine/sound"
)

func testConfig() config {
	return config{
		ModelDir: "assets",
		Model:    "base_anim",
		Attach:   []string{"walker", "torch"},
		Groups:   []string{"Idle", "Walk", "Wave"},
		Overlay:  "Flicker",
		Loop:     true,
		Actors:   3,
		Workers:  2,
		TickRate: 60,
	}
}

func newTestViewer(t *testing.T, cfg config) (*viewer, sound.Manager, scene.Scene) {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	ldr := loader.NewLoader(loader.BackendTypeYAML, loader.WithDirectory(cfg.ModelDir), loader.WithLogger(logger))
	t.Cleanup(func() { _ = ldr.Close() })
	sounds := sound.NewManager(sound.WithLogger(logger), sound.WithMuted(true))
	s := scene.NewScene("test", scene.WithWorkers(cfg.Workers), scene.WithLogger(logger))
	v, err := newViewer(cfg, ldr, sounds, s, logger)
	if err != nil {
		t.Fatalf("newViewer: %v", err)
	}
	t.Cleanup(s.Clear)
	return v, sounds, s
}

func TestViewerSpawnsActors(t *testing.T) {
	v, _, s := newTestViewer(t, testConfig())

	if s.Count() != 3 {
		t.Fatalf("expected 3 actors in the scene, got %d", s.Count())
	}
	for i, obj := range v.actors {
		anim := obj.Animation()
		if anim.ObjectCount() != 3 {
			t.Fatalf("actor %d: expected 3 object sets, got %d", i, anim.ObjectCount())
		}
		if got := anim.Layer(0); got.Group != "Idle" || !got.Looping {
			t.Fatalf("actor %d: layer 0 = %+v, want looping Idle", i, got)
		}
		if got := anim.Layer(1); got.Group != "Flicker" {
			t.Fatalf("actor %d: layer 1 = %+v, want Flicker", i, got)
		}
		if pos := obj.Position(); pos[0] != float32(i)*actorSpacing {
			t.Fatalf("actor %d: position %v", i, pos)
		}
	}
	if v.ActiveControllers() == 0 {
		t.Fatalf("expected active controllers after playing")
	}
}

func TestViewerKeyCommands(t *testing.T) {
	v, _, _ := newTestViewer(t, testConfig())

	cases := []struct {
		name    string
		key     uint32
		group   string
		looping bool
	}{
		{"select_walk", common.Key2, "Walk", true},
		{"next_group", common.KeySpace, "Wave", false},
		{"wrap_around", common.KeySpace, "Idle", true},
		{"toggle_loop", common.KeyL, "Idle", false},
		{"out_of_range_group", common.Key9, "Idle", false},
		{"stop", common.KeyS, "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v.HandleKey(c.key)
			v.Tick(0)
			st := v.actors[0].Animation().Layer(0)
			if st.Group != c.group || st.Looping != c.looping {
				t.Fatalf("layer 0 = %+v, want group %q looping %v", st, c.group, c.looping)
			}
		})
	}
	if got := v.Status(); got != "animview | idle" {
		t.Fatalf("Status() = %q", got)
	}
}

func TestViewerWalkMovesActorsAndPlaysFootsteps(t *testing.T) {
	cfg := testConfig()
	cfg.Overlay = ""
	v, sounds, s := newTestViewer(t, cfg)

	v.Enqueue(cmdGroup0 + 1)
	v.Tick(0)
	start := v.actors[0].Position()
	for range 8 {
		s.Update(0.1)
	}

	if sounds.Count("FootLeft") != len(v.actors) {
		t.Fatalf("expected one FootLeft per actor, got %d", sounds.Count("FootLeft"))
	}
	end := v.actors[0].Position()
	if end[2] <= start[2] {
		t.Fatalf("expected forward root motion on z, start %v end %v", start, end)
	}
	if end[1] != start[1] {
		t.Fatalf("accumulation must ignore the vertical axis, start %v end %v", start, end)
	}
}

func TestViewerReloadReattaches(t *testing.T) {
	v, _, _ := newTestViewer(t, testConfig())
	v.HandleKey(common.Key3)
	v.Tick(0)

	v.Reload("torch")
	v.Tick(0)

	anim := v.actors[0].Animation()
	if anim.ObjectCount() != 3 {
		t.Fatalf("expected 3 object sets after reload, got %d", anim.ObjectCount())
	}
	if got := anim.Layer(0); got.Group != "Wave" {
		t.Fatalf("reload must keep the selected group, got %+v", got)
	}
}
