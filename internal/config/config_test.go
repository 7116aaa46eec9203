package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

// isolate points HOME and the working directory at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(GetDefaultYAML("tetris"), &cfg); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if cfg != DefaultTetrisConfig() {
		t.Errorf("embedded defaults %+v differ from DefaultTetrisConfig %+v", cfg, DefaultTetrisConfig())
	}
}

func TestLoadTetrisFallsBackToEmbedded(t *testing.T) {
	isolate(t)

	cfg, err := LoadTetris("")
	if err != nil {
		t.Fatalf("LoadTetris: %v", err)
	}
	if cfg != DefaultTetrisConfig() {
		t.Errorf("got %+v, expected defaults", cfg)
	}
}

func TestLoadTetrisCustomPathPartialOverride(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "scoring:\n  win_score: 9000\n")

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris: %v", err)
	}
	if cfg.Scoring.WinScore != 9000 {
		t.Errorf("win_score = %d, expected 9000", cfg.Scoring.WinScore)
	}
	if cfg.Scoring.Tetris != 1500 || cfg.Progression.LinesPerLevel != 8 {
		t.Errorf("unset keys should keep their defaults, got %+v", cfg)
	}
}

func TestLoadTetrisCustomPathErrors(t *testing.T) {
	dir := isolate(t)

	if _, err := LoadTetris(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, expected ErrNotExist", err)
	}

	broken := filepath.Join(dir, "broken.yaml")
	writeFile(t, broken, "scoring: [not, a, map\n")
	if _, err := LoadTetris(broken); err == nil {
		t.Error("broken yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "progression:\n  lines_per_level: 0\n")
	if _, err := LoadTetris(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("invalid values: err = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadTetrisSearchOrder(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "configs", "tetris.yaml"), "scoring:\n  single: 50\n")

	cfg, err := LoadTetris("")
	if err != nil {
		t.Fatalf("LoadTetris: %v", err)
	}
	if cfg.Scoring.Single != 50 {
		t.Errorf("local config should be used, single = %d", cfg.Scoring.Single)
	}

	writeFile(t, filepath.Join(dir, ".arcade", "configs", "tetris.yaml"), "scoring:\n  single: 70\n")

	cfg, err = LoadTetris("")
	if err != nil {
		t.Fatalf("LoadTetris: %v", err)
	}
	if cfg.Scoring.Single != 70 {
		t.Errorf("user config should win over local config, single = %d", cfg.Scoring.Single)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultTetrisConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*TetrisConfig)
	}{
		{"negative win score", func(c *TetrisConfig) { c.Scoring.WinScore = -1 }},
		{"negative points", func(c *TetrisConfig) { c.Scoring.Triple = -500 }},
		{"negative multiplier", func(c *TetrisConfig) { c.Scoring.LevelMultiplier = -1 }},
		{"zero lines per level", func(c *TetrisConfig) { c.Progression.LinesPerLevel = 0 }},
		{"zero drop interval", func(c *TetrisConfig) { c.Progression.BaseDropIntervalMs = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}

	endless := DefaultTetrisConfig()
	endless.Scoring.WinScore = 0
	if err := endless.Validate(); err != nil {
		t.Errorf("win_score 0 is valid: %v", err)
	}
}

func TestRulesConversion(t *testing.T) {
	r := DefaultTetrisConfig().Rules()

	if r.WinScore != 4500 || r.PointsSingle != 100 || r.PointsTetris != 1500 {
		t.Errorf("scoring not carried over: %+v", r)
	}
	if r.BaseDropInterval != time.Second || r.LinesPerLevel != 8 || r.LevelMultiplier != 0.3 {
		t.Errorf("progression not carried over: %+v", r)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("converted rules should validate: %v", err)
	}
}

func TestApplyTetrisPreset(t *testing.T) {
	easy := DefaultTetrisConfig()
	ApplyTetrisPreset(&easy, DifficultyEasy)
	if easy.Progression.BaseDropIntervalMs != 1500 || easy.Scoring.LevelMultiplier != 0.15 {
		t.Errorf("easy preset = %+v", easy)
	}

	hard := DefaultTetrisConfig()
	ApplyTetrisPreset(&hard, DifficultyHard)
	if hard.Progression.BaseDropIntervalMs != 600 {
		t.Errorf("hard base interval = %d, expected 600", hard.Progression.BaseDropIntervalMs)
	}

	fixed := DefaultTetrisConfig()
	ApplyTetrisPreset(&fixed, DifficultyFixed)
	if !fixed.Progression.FixedSpeed || fixed.Scoring.LevelMultiplier != 0.3 {
		t.Errorf("fixed preset = %+v", fixed)
	}

	normal := DefaultTetrisConfig()
	ApplyTetrisPreset(&normal, DifficultyNormal)
	if normal != DefaultTetrisConfig() {
		t.Errorf("normal preset should not change anything: %+v", normal)
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestForMode(t *testing.T) {
	cfg := DefaultTetrisConfig()

	if cfg.ForMode("tetris").Scoring.WinScore != 4500 {
		t.Error("classic mode keeps the win score")
	}
	if cfg.ForMode("tetris_endless").Scoring.WinScore != 0 {
		t.Error("endless mode disables the win score")
	}
	if cfg.Scoring.WinScore != 4500 {
		t.Error("ForMode must not modify the receiver")
	}
}

func TestLoadServerEnv(t *testing.T) {
	t.Setenv("TETRIS_SSH_ADDR", "0.0.0.0:2300")
	t.Setenv("TETRIS_IDLE_TIMEOUT", "5m")
	t.Setenv("TETRIS_METRICS_ADDR", ":9100")

	cfg, err := LoadServerEnv()
	if err != nil {
		t.Fatalf("LoadServerEnv: %v", err)
	}
	if cfg.Addr != "0.0.0.0:2300" || cfg.IdleTimeout != 5*time.Minute || cfg.MetricsAddr != ":9100" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadServerEnvHostKeyUnset(t *testing.T) {
	t.Setenv("TETRIS_HOST_KEY", "")
	os.Unsetenv("TETRIS_HOST_KEY")

	cfg, err := LoadServerEnv()
	if err != nil {
		t.Fatalf("LoadServerEnv: %v", err)
	}
	if cfg.HostKey != "" {
		t.Errorf("HostKey = %q, want empty so the server falls back to ~/.arcade", cfg.HostKey)
	}
}

func TestLoadServerEnvBadDuration(t *testing.T) {
	t.Setenv("TETRIS_IDLE_TIMEOUT", "soon")

	if _, err := LoadServerEnv(); err == nil {
		t.Error("expected a parse error")
	}
}
