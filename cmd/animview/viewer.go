package main

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-actor/common"
	"github.com/Carmen-Shannon/oxy-actor/engine/animation"
	"github.com/Carmen-Shannon/oxy-actor/engine/game_object"
	"github.com/Carmen-Shannon/oxy-actor/engine/loader"
	"github.com/Carmen-Shannon/oxy-actor/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-actor/engine/scene"
	"github.com/Carmen-Shannon/oxy-actor/engine/sound"
)

const (
	// actorSpacing is the distance between neighbouring actors on the X axis.
	actorSpacing = 2.0
	// poseReserve is the palette room set aside per actor so reloads rarely regrow buffers.
	poseReserve = 64 * 16 * 4
)

// command is a viewer request queued from the window thread and applied on the next tick.
type command int

const (
	cmdNextGroup command = iota
	cmdStop
	cmdToggleLoop
	cmdGroup0 // cmdGroup0 + i selects group i
)

// markerLog reports marker text keys of one actor.
type markerLog struct {
	logger *log.Logger
	actor  int
}

func (m markerLog) MarkerEvent(time float32, name string) {
	m.logger.Printf("[Marker] actor %d: %q at %.2fs", m.actor, name, time)
}

// viewer owns the actors of the animation viewer and translates input into Play calls.
type viewer struct {
	cfg    config
	logger *log.Logger

	loader loader.Loader
	sounds sound.Manager
	scene  scene.Scene
	actors []game_object.GameObject

	mu       sync.Mutex
	queue    []command
	group    int
	loop     bool
	reload   atomic.Bool
}

// newViewer loads the configured models and spawns cfg.Actors actors into s.
func newViewer(cfg config, ldr loader.Loader, sounds sound.Manager, s scene.Scene, logger *log.Logger) (*viewer, error) {
	v := &viewer{
		cfg:    cfg,
		logger: logger,
		loader: ldr,
		sounds: sounds,
		scene:  s,
		loop:   cfg.Loop,
	}
	for i := range cfg.Actors {
		obj, err := v.spawn(i)
		if err != nil {
			return nil, err
		}
		if _, err := s.Add(obj); err != nil {
			return nil, fmt.Errorf("add actor %d: %w", i, err)
		}
		v.actors = append(v.actors, obj)
	}
	v.playAll()
	return v, nil
}

func (v *viewer) spawn(i int) (game_object.GameObject, error) {
	anim := animation.NewAnimation(
		animation.WithLoader(v.loader),
		animation.WithSoundManager(v.sounds),
		animation.WithMarkerListener(markerLog{logger: v.logger, actor: i}),
		animation.WithAccumulation([3]float32{1, 0, 1}),
		animation.WithLogger(v.logger),
	)
	options := []game_object.GameObjectBuilderOption{
		game_object.WithAnimation(anim),
		game_object.WithPosition([3]float32{float32(i) * actorSpacing, 0, 0}),
	}
	if v.cfg.GPU {
		provider := bind_group_provider.NewBindGroupProvider(
			fmt.Sprintf("actor %d pose", i),
			bind_group_provider.WithMinCapacity(game_object.PoseBinding, poseReserve),
		)
		options = append(options, game_object.WithPoseProvider(provider))
	}
	obj := game_object.NewGameObject(options...)
	if err := v.attach(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// attach loads the base model followed by every extra model onto the actor.
func (v *viewer) attach(obj game_object.GameObject) error {
	anim := obj.Animation()
	if _, err := anim.Attach(obj.Node(), v.cfg.Model, true); err != nil {
		return err
	}
	for _, id := range v.cfg.Attach {
		if id == "" {
			continue
		}
		if _, err := anim.Attach(obj.Node(), id, false); err != nil {
			return err
		}
	}
	return nil
}

// Enqueue queues a command for the next tick. Safe to call from any goroutine.
func (v *viewer) Enqueue(c command) {
	v.mu.Lock()
	v.queue = append(v.queue, c)
	v.mu.Unlock()
}

// HandleKey maps a key press to a viewer command.
func (v *viewer) HandleKey(keyCode uint32) {
	switch {
	case keyCode >= common.Key1 && keyCode <= common.Key9:
		v.Enqueue(cmdGroup0 + command(keyCode-common.Key1))
	case keyCode == common.KeySpace:
		v.Enqueue(cmdNextGroup)
	case keyCode == common.KeyS:
		v.Enqueue(cmdStop)
	case keyCode == common.KeyL:
		v.Enqueue(cmdToggleLoop)
	}
}

// Tick applies queued commands and pending reloads. It runs on the engine's tick goroutine
// before the scene advances.
func (v *viewer) Tick(float32) {
	if v.reload.Swap(false) {
		v.reattach()
	}

	v.mu.Lock()
	queue := v.queue
	v.queue = nil
	v.mu.Unlock()

	for _, c := range queue {
		switch c {
		case cmdNextGroup:
			v.group = (v.group + 1) % len(v.cfg.Groups)
			v.playAll()
		case cmdStop:
			for _, obj := range v.actors {
				obj.Animation().Play("", "", "", false, 0)
			}
		case cmdToggleLoop:
			v.loop = !v.loop
			v.playAll()
		default:
			if idx := int(c - cmdGroup0); idx < len(v.cfg.Groups) {
				v.group = idx
				v.playAll()
			}
		}
	}
}

// Reload marks the actors for re-attachment after a description file changed.
func (v *viewer) Reload(id string) {
	v.logger.Printf("[Viewer] %s changed, re-attaching actors", id)
	v.reload.Store(true)
}

func (v *viewer) reattach() {
	for _, obj := range v.actors {
		obj.Animation().Release()
		if err := v.attach(obj); err != nil {
			v.logger.Printf("[Viewer] re-attach: %v", err)
		}
	}
	v.playAll()
}

// playAll starts the selected group on layer 0 and the overlay group on layer 1 of every actor.
// Groups without loop keys play once even when looping is on.
func (v *viewer) playAll() {
	group := v.cfg.Groups[v.group]
	for _, obj := range v.actors {
		anim := obj.Animation()
		played := v.loop && anim.Play(group, "loop start", "loop stop", true, 0)
		if !played && !anim.Play(group, "start", "stop", false, 0) {
			v.logger.Printf("[Viewer] actor %d has no group %q", obj.ID(), group)
		}
		anim.SetSpeed(v.cfg.Speed)
		if v.cfg.Overlay != "" && anim.HasAnimation(v.cfg.Overlay) {
			anim.Play(v.cfg.Overlay, "start", "stop", true, 1)
		}
	}
}

// Status describes the first actor's layer 0 for the window title.
func (v *viewer) Status() string {
	if len(v.actors) == 0 {
		return "animview"
	}
	st := v.actors[0].Animation().Layer(0)
	if st.Group == "" {
		return "animview | idle"
	}
	return fmt.Sprintf("animview | %s %.2fs | x%.2f", st.Group, st.Time, v.actors[0].Animation().SpeedMultiplier())
}

// ActiveControllers sums the active controllers of every actor.
func (v *viewer) ActiveControllers() int {
	n := 0
	for _, obj := range v.actors {
		n += obj.Animation().ActiveControllerCount()
	}
	return n
}
