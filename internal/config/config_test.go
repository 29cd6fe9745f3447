package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded config invalid: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRunnerConfig()) {
		t.Errorf("embedded YAML drifted from DefaultRunnerConfig:\n got %+v\nwant %+v", cfg, DefaultRunnerConfig())
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultRunnerConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.Player.Lanes = nil
	cfg.Player.StartHealth = 500
	cfg.World.LaneProbability = 1.5
	cfg.World.ObstacleTypes[0].Damage = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"player.lanes", "player.start_health", "world.lane_probability", "world.obstacle_types[0]"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestValidateLaneOrder(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.Player.Lanes = []float64{0, -2, 2}
	if err := cfg.Validate(); err == nil {
		t.Error("unordered lanes should be rejected")
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("clock:\n  base_speed: 20\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Clock.BaseSpeed != 20 {
		t.Errorf("base_speed = %v, want 20", cfg.Clock.BaseSpeed)
	}
	if cfg.Clock.SpeedIncreasePerSecond != 0.5 {
		t.Errorf("unset keys should keep defaults, got rate %v", cfg.Clock.SpeedIncreasePerSecond)
	}
	if len(cfg.Player.Lanes) != 3 {
		t.Errorf("lanes = %v, want defaults", cfg.Player.Lanes)
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	if _, err := Parse([]byte("player: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadRunnerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("player:\n  lanes: [-3, -1, 1, 3]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, src, err := LoadRunner(path, nil)
	if err != nil {
		t.Fatalf("LoadRunner: %v", err)
	}
	if src != path {
		t.Errorf("source = %q, want %q", src, path)
	}
	if cfg.Player.LaneCount() != 4 {
		t.Errorf("lane count = %d, want 4", cfg.Player.LaneCount())
	}
}

func TestLoadRunnerCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := LoadRunner(filepath.Join(dir, "missing.yaml"), nil); err == nil {
		t.Error("missing custom file should error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("clock:\n  base_speed: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := LoadRunner(bad, nil)
	if err == nil {
		t.Error("invalid custom file should error")
	}
	if cfg.Clock.BaseSpeed <= 0 {
		t.Error("error path should still return usable defaults")
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultRunnerConfig()

	tests := []struct {
		preset     DifficultyPreset
		faster     bool
		slower     bool
		accelerate bool
	}{
		{DifficultyEasy, false, true, true},
		{DifficultyNormal, false, false, true},
		{DifficultyHard, true, false, true},
		{DifficultyFixed, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := ApplyPreset(base, tt.preset)
			if err := cfg.Validate(); err != nil {
				t.Fatalf("preset produced invalid config: %v", err)
			}
			if tt.faster && cfg.Clock.BaseSpeed <= base.Clock.BaseSpeed {
				t.Errorf("base speed %v should exceed %v", cfg.Clock.BaseSpeed, base.Clock.BaseSpeed)
			}
			if tt.slower && cfg.Clock.BaseSpeed >= base.Clock.BaseSpeed {
				t.Errorf("base speed %v should be below %v", cfg.Clock.BaseSpeed, base.Clock.BaseSpeed)
			}
			if cfg.Clock.Acceleration != tt.accelerate {
				t.Errorf("acceleration = %v, want %v", cfg.Clock.Acceleration, tt.accelerate)
			}
		})
	}
}

func TestApplyPresetDoesNotAlias(t *testing.T) {
	base := DefaultRunnerConfig()
	cfg := ApplyPreset(base, DifficultyHard)
	cfg.Player.Lanes[0] = 99
	cfg.World.ObstacleTypes[0].Damage = 99

	if base.Player.Lanes[0] == 99 || base.World.ObstacleTypes[0].Damage == 99 {
		t.Error("ApplyPreset must deep copy slices")
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("empty preset = %q, %v; want normal", p, err)
	}
	for _, p := range Presets() {
		got, err := ParsePreset(string(p))
		if err != nil || got != p {
			t.Errorf("ParsePreset(%q) = %q, %v", p, got, err)
		}
		if p.Description() == "" {
			t.Errorf("%q has no description", p)
		}
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("unknown preset should error")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, DefaultYAML(), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("clock:\n  base_speed: 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events:
		if ev.Err != nil {
			t.Fatalf("reload error: %v", ev.Err)
		}
		if ev.Config.Clock.BaseSpeed != 42 {
			t.Errorf("reloaded base_speed = %v, want 42", ev.Config.Clock.BaseSpeed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload event")
	}
}

func TestWatchCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, DefaultYAML(), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("RUNNER_TEST_VALUE", "set")
	if got := GetEnv("RUNNER_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("GetEnv = %q, want set", got)
	}
	if got := GetEnv("RUNNER_TEST_UNSET_VALUE", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, want fallback", got)
	}
}
