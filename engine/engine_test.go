package engine

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-actor/engine/animation"
	"github.com/Carmen-Shannon/oxy-actor/engine/game_object"
	"github.com/Carmen-Shannon/oxy-actor/engine/model"
	"github.com/Carmen-Shannon/oxy-actor/engine/scene"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func idleActor(t *testing.T) game_object.GameObject {
	t.Helper()
	anim := animation.NewAnimation(animation.WithLogger(quietLogger()))
	obj := game_object.NewGameObject(game_object.WithAnimation(anim))
	anim.AttachModel(obj.Node(), model.NewModel(
		model.WithName("idler"),
		model.WithSkeleton(model.NewSkeleton([]model.Bone{
			{Name: "Bip01", ParentIndex: -1, LocalTransform: model.IdentityTransform()},
		})),
		model.WithTextKeys("Bip01",
			model.TextKey{Time: 0, Label: "Idle: start"},
			model.TextKey{Time: 10, Label: "Idle: stop"},
		),
	))
	if !anim.Play("Idle", "start", "stop", false, 0) {
		t.Fatalf("expected Idle to play")
	}
	return obj
}

func TestTickAdvancesActiveScenesOnly(t *testing.T) {
	active := scene.NewScene("active", scene.WithActive(true), scene.WithLogger(quietLogger()))
	inactive := scene.NewScene("inactive", scene.WithLogger(quietLogger()))
	a, b := idleActor(t), idleActor(t)
	active.Add(a)
	inactive.Add(b)

	var callbacks int
	e := NewEngine(WithLogger(quietLogger()), WithScene(0, active), WithScene(1, inactive))
	e.SetTickCallback(func(float32) { callbacks++ })

	e.Tick(0.5)
	e.Tick(0.5)

	if callbacks != 2 || e.Ticks() != 2 {
		t.Fatalf("expected 2 ticks and callbacks, got %d/%d", e.Ticks(), callbacks)
	}
	if got := a.Animation().Layer(0).Time; got != 1 {
		t.Fatalf("expected the active scene to advance to 1s, got %v", got)
	}
	if got := b.Animation().Layer(0).Time; got != 0 {
		t.Fatalf("inactive scenes must not advance, got %v", got)
	}
}

func TestRunHeadlessStopsAtTickLimit(t *testing.T) {
	s := scene.NewScene("run", scene.WithActive(true), scene.WithLogger(quietLogger()))
	obj := idleActor(t)
	s.Add(obj)

	e := NewEngine(
		WithLogger(quietLogger()),
		WithTickRate(500),
		WithFixedStep(true),
		WithTickLimit(5),
		WithScene(0, s),
	)

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		e.Quit()
		t.Fatalf("Run did not return after the tick limit")
	}

	if e.Ticks() != 5 {
		t.Fatalf("expected 5 ticks, got %d", e.Ticks())
	}
	want := float32(5 * 0.002)
	if got := obj.Animation().Layer(0).Time; got < want-1e-4 || got > want+1e-4 {
		t.Fatalf("expected fixed-step time %v, got %v", want, got)
	}
}

func TestQuitStopsHeadlessRun(t *testing.T) {
	e := NewEngine(WithLogger(quietLogger()), WithTickRate(1000))
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)
	e.Quit()
	e.Quit()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after Quit")
	}
}

func TestSceneRegistry(t *testing.T) {
	e := NewEngine(WithLogger(quietLogger()))
	s := scene.NewScene("s", scene.WithLogger(quietLogger()))
	e.AddScene(3, s)
	if e.Scene(3) != s || len(e.Scenes()) != 1 {
		t.Fatalf("expected scene registered at 3")
	}
	e.RemoveScene(3)
	if e.Scene(3) != nil {
		t.Fatalf("expected scene removed")
	}
}
