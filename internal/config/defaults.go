package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the stock rules.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Scoring: TetrisScoring{
			WinScore:        4500,
			Single:          100,
			Double:          200,
			Triple:          500,
			Tetris:          1500,
			LevelMultiplier: 0.3,
		},
		Progression: TetrisProgression{
			LinesPerLevel:      8,
			BaseDropIntervalMs: 1000,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tetris", "tetris_endless":
		return defaultTetrisYAML
	default:
		return nil
	}
}
