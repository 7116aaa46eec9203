package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTetris loads the game rules.
// Search order: customPath -> ~/.arcade/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
//
// Only a custom path reports read and parse errors; the other locations are
// skipped when missing or broken. The result is validated in every case.
func LoadTetris(customPath string) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath("tetris.yaml"), filepath.Join("configs", "tetris.yaml")} {
		if path == "" {
			continue
		}
		if found, ok := readTetris(path); ok {
			return found, found.Validate()
		}
	}

	embedded := DefaultTetrisConfig()
	if err := yaml.Unmarshal(GetDefaultYAML("tetris"), &embedded); err != nil {
		return DefaultTetrisConfig(), nil
	}
	return embedded, embedded.Validate()
}

// readTetris reads one candidate file over the defaults, so a partial file
// only overrides the keys it sets.
func readTetris(path string) (TetrisConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TetrisConfig{}, false
	}
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TetrisConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyTetrisPreset adjusts gravity and scoring for a difficulty preset.
// Normal leaves the configuration untouched.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Progression.BaseDropIntervalMs = cfg.Progression.BaseDropIntervalMs * 3 / 2
		cfg.Scoring.LevelMultiplier /= 2
	case DifficultyHard:
		cfg.Progression.BaseDropIntervalMs = max(1, cfg.Progression.BaseDropIntervalMs*3/5)
	case DifficultyFixed:
		cfg.Progression.FixedSpeed = true
	}
}

// ForMode returns the configuration adjusted for a game mode.
// The endless mode never wins.
func (c TetrisConfig) ForMode(id string) TetrisConfig {
	if id == "tetris_endless" {
		c.Scoring.WinScore = 0
	}
	return c
}
