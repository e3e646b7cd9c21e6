package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestLoadConfigEmbedded(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Screen.Width <= 0 || cfg.Screen.Height <= 0 {
		t.Fatalf("expected screen size, got %+v", cfg.Screen)
	}
	if len(cfg.Levels) == 0 {
		t.Fatalf("expected levels")
	}
	if cfg.Levels[0].Required != 10 {
		t.Fatalf("expected level 1 to require 10 kills, got %d", cfg.Levels[0].Required)
	}
	if len(cfg.Boss.Phases) != 7 {
		t.Fatalf("expected 7 boss phases, got %d", len(cfg.Boss.Phases))
	}
}

func TestLevelAtClamps(t *testing.T) {
	cfg := &Config{Levels: []LevelSpec{{Required: 10, SpawnDelay: 60}, {Required: 15, SpawnDelay: 50}}}
	cases := []struct {
		name  string
		level int
		want  int
	}{
		{"first", 1, 10},
		{"second", 2, 15},
		{"beyond_table", 9, 15},
		{"below_one", 0, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := cfg.LevelAt(c.level).Required; got != c.want {
				t.Fatalf("LevelAt(%d).Required = %d, want %d", c.level, got, c.want)
			}
		})
	}
}

func TestComboTier(t *testing.T) {
	cfg := &Config{Combo: ComboSpec{Thresholds: []ComboTierSpec{
		{Combo: 1, Multiplier: 1},
		{Combo: 5, Multiplier: 1.5, Text: "NICE"},
		{Combo: 10, Multiplier: 2, Text: "GREAT"},
	}}}
	cases := []struct {
		streak int
		want   float64
	}{
		{0, 1},
		{1, 1},
		{4, 1},
		{5, 1.5},
		{9, 1.5},
		{10, 2},
		{99, 2},
	}
	for _, c := range cases {
		if got := cfg.ComboTier(c.streak).Multiplier; got != c.want {
			t.Fatalf("ComboTier(%d) = %v, want %v", c.streak, got, c.want)
		}
	}
}

func TestChanceSteps(t *testing.T) {
	steps := []ChanceStep{{LivesAtMost: 1, Chance: 0.5}, {LivesAtMost: 3, Chance: 0.1}}
	if Chance(steps, 1) != 0.5 || Chance(steps, 2) != 0.1 || Chance(steps, 4) != 0 {
		t.Fatalf("unexpected step lookup")
	}
}

func validConfig() Config {
	cfg := Config{
		Levels: []LevelSpec{{Required: 10, SpawnDelay: 60}},
		Boss: BossSpec{Phases: []PhaseSpec{
			{Name: "intro", MaxFrames: 10},
			{Name: "hunting", MaxFrames: 10},
		}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"empty_levels", func(c *Config) { c.Levels = nil }, false},
		{"zero_spawn_delay", func(c *Config) { c.Levels[0].SpawnDelay = 0 }, false},
		{"combo_not_increasing", func(c *Config) {
			c.Combo.Thresholds = []ComboTierSpec{{Combo: 5, Multiplier: 1}, {Combo: 5, Multiplier: 2}}
		}, false},
		{"unknown_effect", func(c *Config) { c.Combo.Milestones = []MilestoneSpec{{Every: 5, Effect: "nuke"}} }, false},
		{"unknown_phase", func(c *Config) { c.Boss.Phases[1].Name = "dancing" }, false},
		{"phase_order", func(c *Config) {
			c.Boss.Phases = []PhaseSpec{{Name: "hunting", MaxFrames: 1}, {Name: "intro", MaxFrames: 1}}
		}, false},
		{"thresholds_ascending", func(c *Config) {
			c.Boss.Phases = []PhaseSpec{
				{Name: "hunting", MaxFrames: 1},
				{Name: "summoning", Threshold: 0.5, MaxFrames: 1},
				{Name: "mines", Threshold: 0.75, MaxFrames: 1},
			}
		}, false},
		{"chance_out_of_range", func(c *Config) { c.Pickups.HeartChance = []ChanceStep{{LivesAtMost: 1, Chance: 2}} }, false},
		{"critical_health_above_one", func(c *Config) { c.Boss.CriticalHealth = 1.5 }, false},
		{"start_lives_above_max", func(c *Config) { c.Player.StartLives = c.Player.MaxLives + 1 }, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := validConfig()
			c.mutate(&cfg)
			err := cfg.Validate()
			if c.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"\"#ff0000\"", color.RGBA{R: 255, A: 255}},
		{"yellow", color.RGBA{R: 255, G: 255, A: 255}},
	}
	for _, c := range cases {
		var got YAMLColor
		if err := yaml.Unmarshal([]byte(c.in), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", c.in, err)
		}
		r, g, b, a := got.RGBA()
		if uint8(r>>8) != c.want.R || uint8(g>>8) != c.want.G || uint8(b>>8) != c.want.B || uint8(a>>8) != c.want.A {
			t.Fatalf("color %s = %v, want %v", c.in, got.Color, c.want)
		}
	}
	var bad YAMLColor
	if err := yaml.Unmarshal([]byte("\"#12\""), &bad); err == nil {
		t.Fatalf("expected error for short hex")
	}
}

func TestEmbeddedAssets(t *testing.T) {
	if _, err := LoadPattern("patterns/boss_spiral.xml"); err != nil {
		t.Fatalf("LoadPattern: %v", err)
	}
	if _, err := LoadPattern("boss_spiral.xml"); err != nil {
		t.Fatalf("LoadPattern without dir: %v", err)
	}
	if _, err := LoadScript("boss.tengo"); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if _, err := LoadScript("prefabs/scripts/boss.tengo"); err != nil {
		t.Fatalf("LoadScript with prefix: %v", err)
	}
}

func TestWatcherReloadsConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hellshooter.yaml")
	load := func() (*Config, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParseConfig(data)
	}
	w, err := newWatcher(load, dir)
	if err != nil {
		t.Fatalf("newWatcher: %v", err)
	}
	defer w.Close()

	// Renaming into place hands the watcher whole files only.
	put := func(data []byte) {
		t.Helper()
		tmp := filepath.Join(dir, "staging.tmp")
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Rename(tmp, path); err != nil {
			t.Fatal(err)
		}
	}
	next := func() Reload {
		t.Helper()
		select {
		case r := <-w.Events:
			return r
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for reload")
			return Reload{}
		}
	}

	good, err := Load(ConfigFile)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	put(good)
	r := next()
	if filepath.Base(r.Path) != "hellshooter.yaml" {
		t.Fatalf("unexpected reload for %s", r.Path)
	}
	if r.Err != nil || r.Config == nil || len(r.Config.Levels) == 0 {
		t.Fatalf("expected a validated config, got %+v", r)
	}

	time.Sleep(150 * time.Millisecond)
	put([]byte("screen: [\n"))
	for {
		r = next()
		if r.Err != nil {
			break
		}
	}
	if r.Config != nil {
		t.Fatal("broken config must not be handed out")
	}
}

func TestReloadConfigChecksReferences(t *testing.T) {
	cfg, err := ReloadConfig()
	if err != nil {
		t.Fatalf("ReloadConfig: %v", err)
	}
	if cfg.Boss.Phases == nil {
		t.Fatal("expected boss phases")
	}
}
