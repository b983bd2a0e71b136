package main

import (
	"slices"
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.ModelDir != "assets" || cfg.Model != "base_anim" || cfg.Format != "yaml" {
		t.Fatalf("unexpected model defaults: %+v", cfg)
	}
	if !slices.Equal(cfg.Attach, []string{"walker", "torch"}) {
		t.Fatalf("Attach = %v", cfg.Attach)
	}
	if !slices.Equal(cfg.Groups, []string{"Idle", "Walk", "Wave"}) {
		t.Fatalf("Groups = %v", cfg.Groups)
	}
	if !cfg.Loop || cfg.Actors != 1 || cfg.TickRate != 60 || cfg.Ticks != 0 {
		t.Fatalf("unexpected playback defaults: %+v", cfg)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ANIMVIEW_MODEL", "guard")
	t.Setenv("ANIMVIEW_ATTACH", "helmet,shield,sword")
	t.Setenv("ANIMVIEW_GROUPS", "Attack")
	t.Setenv("ANIMVIEW_ACTORS", "32")
	t.Setenv("ANIMVIEW_SPEED", "3.5")
	t.Setenv("ANIMVIEW_HEADLESS", "true")
	t.Setenv("ANIMVIEW_TICKS", "120")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Model != "guard" || len(cfg.Attach) != 3 || cfg.Groups[0] != "Attack" {
		t.Fatalf("unexpected models: %+v", cfg)
	}
	if cfg.Actors != 32 || cfg.Speed != 3.5 || !cfg.Headless || cfg.Ticks != 120 {
		t.Fatalf("unexpected playback settings: %+v", cfg)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"zero_actors", "ANIMVIEW_ACTORS", "0", "ANIMVIEW_ACTORS"},
		{"negative_speed", "ANIMVIEW_SPEED", "-1", "ANIMVIEW_SPEED"},
		{"zero_tick_rate", "ANIMVIEW_TICK_RATE", "0", "ANIMVIEW_TICK_RATE"},
		{"unparsable", "ANIMVIEW_ACTORS", "many", "parse env"},
		{"unknown_format", "ANIMVIEW_FORMAT", "fbx", "ANIMVIEW_FORMAT"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv(c.key, c.val)
			_, err := loadConfig()
			if err == nil {
				t.Fatalf("expected an error for %s=%s", c.key, c.val)
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("error %q does not mention %q", err, c.want)
			}
		})
	}
}
