// Package config provides YAML-based game configuration, difficulty presets
// and environment overrides for the server.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid tetris config")

// TetrisConfig contains all tunable rules of the game.
type TetrisConfig struct {
	Scoring     TetrisScoring     `yaml:"scoring"`
	Progression TetrisProgression `yaml:"progression"`
}

// TetrisScoring defines points and the win condition.
type TetrisScoring struct {
	WinScore        int     `yaml:"win_score"` // 0 disables winning
	Single          int     `yaml:"single"`
	Double          int     `yaml:"double"`
	Triple          int     `yaml:"triple"`
	Tetris          int     `yaml:"tetris"`
	LevelMultiplier float64 `yaml:"level_multiplier"` // Added per level above 1
}

// TetrisProgression defines levels and gravity.
type TetrisProgression struct {
	LinesPerLevel      int  `yaml:"lines_per_level"`
	BaseDropIntervalMs int  `yaml:"base_drop_interval_ms"` // Gravity at level 1
	FixedSpeed         bool `yaml:"fixed_speed"`           // Keep level-1 gravity at every level
}

// BaseDropInterval returns the level-1 drop interval.
func (p TetrisProgression) BaseDropInterval() time.Duration {
	return time.Duration(p.BaseDropIntervalMs) * time.Millisecond
}

// Validate rejects configurations a session cannot run with.
func (c TetrisConfig) Validate() error {
	s, p := c.Scoring, c.Progression
	switch {
	case s.WinScore < 0:
		return fmt.Errorf("%w: scoring.win_score must not be negative", ErrInvalidConfig)
	case s.Single < 0 || s.Double < 0 || s.Triple < 0 || s.Tetris < 0:
		return fmt.Errorf("%w: scoring points must not be negative", ErrInvalidConfig)
	case s.LevelMultiplier < 0:
		return fmt.Errorf("%w: scoring.level_multiplier must not be negative", ErrInvalidConfig)
	case p.LinesPerLevel <= 0:
		return fmt.Errorf("%w: progression.lines_per_level must be positive", ErrInvalidConfig)
	case p.BaseDropIntervalMs <= 0:
		return fmt.Errorf("%w: progression.base_drop_interval_ms must be positive", ErrInvalidConfig)
	}
	return nil
}

// Rules converts the configuration into engine rules.
func (c TetrisConfig) Rules() engine.Rules {
	return engine.Rules{
		WinScore:         c.Scoring.WinScore,
		PointsSingle:     c.Scoring.Single,
		PointsDouble:     c.Scoring.Double,
		PointsTriple:     c.Scoring.Triple,
		PointsTetris:     c.Scoring.Tetris,
		LinesPerLevel:    c.Progression.LinesPerLevel,
		LevelMultiplier:  c.Scoring.LevelMultiplier,
		BaseDropInterval: c.Progression.BaseDropInterval(),
		FixedSpeed:       c.Progression.FixedSpeed,
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset accepts a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}
