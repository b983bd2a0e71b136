// Command animview plays the animation groups of a model description on a row of actors.
//
// Configuration comes from ANIMVIEW_* environment variables (see config.go). With a display
// the viewer opens a window; keys 1-9 pick a group, Space cycles groups, S stops layer 0,
// L toggles looping and Esc quits. Without a display, or with ANIMVIEW_HEADLESS set, it runs
// until ANIMVIEW_TICKS ticks have elapsed or it is interrupted.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/oxy-actor/common"
	"github.com/Carmen-Shannon/oxy-actor/engine"
	"github.com/Carmen-Shannon/oxy-actor/engine/loader"
	"github.com/Carmen-Shannon/oxy-actor/engine/renderer"
	"github.com/Carmen-Shannon/oxy-actor/engine/scene"
	"github.com/Carmen-Shannon/oxy-actor/engine/sound"
	"github.com/Carmen-Shannon/oxy-actor/engine/window"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("[Animview] %v", err)
	}
	if err := run(cfg); err != nil {
		log.Fatalf("[Animview] %v", err)
	}
}

func run(cfg config) error {
	logger := log.New(os.Stderr, "", log.LstdFlags)
	if cfg.Quiet {
		logger = log.New(io.Discard, "", 0)
	}

	backend, err := cfg.backend()
	if err != nil {
		return err
	}

	var view *viewer
	ldr := loader.NewLoader(backend,
		loader.WithDirectory(cfg.ModelDir),
		loader.WithLogger(logger),
		loader.WithReloadCallback(func(id string) {
			if view != nil {
				view.Reload(id)
			}
		}),
	)
	defer ldr.Close()

	sceneOpts := []scene.SceneBuilderOption{scene.WithLogger(logger)}
	if cfg.Workers > 0 {
		sceneOpts = append(sceneOpts, scene.WithWorkers(cfg.Workers))
	}

	var r renderer.Renderer
	if cfg.GPU {
		r, err = renderer.NewRenderer(renderer.BackendTypeWGPU, renderer.WithLogger(logger))
		if err != nil {
			logger.Printf("[Animview] no GPU, poses stay on the CPU: %v", err)
			cfg.GPU = false
		} else {
			defer r.Release()
			sceneOpts = append(sceneOpts, scene.WithRenderer(r))
		}
	}

	s := scene.NewScene("actors", sceneOpts...)
	view, err = newViewer(cfg, ldr, sound.NewManager(sound.WithLogger(logger)), s, logger)
	if err != nil {
		return fmt.Errorf("create viewer: %w", err)
	}
	defer s.Clear()

	if cfg.Watch {
		if err := ldr.Watch(); err != nil {
			logger.Printf("[Animview] hot reload disabled: %v", err)
		}
	}

	var w window.Window
	if !cfg.Headless {
		w, err = window.NewWindow(
			window.WithTitle("animview"),
			window.WithSize(960, 540),
			window.WithResizable(true),
		)
		if err != nil {
			logger.Printf("[Animview] no display, running headless: %v", err)
			w = nil
		}
	}

	engineOpts := []engine.EngineBuilderOption{
		engine.WithLogger(logger),
		engine.WithTickRate(cfg.TickRate),
		engine.WithTickLimit(cfg.Ticks),
		engine.WithScene(0, s),
		engine.WithProfiling(cfg.Profile),
	}
	if w != nil {
		engineOpts = append(engineOpts, engine.WithWindow(w))
	}
	e := engine.NewEngine(engineOpts...)

	e.Profiler().AddProbe("actors", func() string { return fmt.Sprint(s.Count()) })
	e.Profiler().AddProbe("controllers", func() string { return fmt.Sprint(view.ActiveControllers()) })
	if r != nil {
		e.Profiler().AddProbe("uploaded", func() string { return fmt.Sprintf("%d KiB", r.BytesWritten()/1024) })
	}

	e.SetTickCallback(func(dt float32) {
		view.Tick(dt)
		if w != nil {
			w.SetTitle(view.Status())
		}
	})

	if w != nil {
		w.SetKeyDownCallback(func(keyCode uint32) {
			if keyCode == common.KeyEsc {
				e.Quit()
				return
			}
			view.HandleKey(keyCode)
		})
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer close(sig)
	defer signal.Stop(sig)
	go func() {
		if _, ok := <-sig; ok {
			e.Quit()
		}
	}()

	e.Run()
	logger.Printf("[Animview] stopped after %d ticks", e.Ticks())
	return nil
}
