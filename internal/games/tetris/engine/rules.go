package engine

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidRules is returned by Rules.Validate.
var ErrInvalidRules = errors.New("engine: invalid rules")

// Rules holds the constants a session plays by. They never change while a
// session is running.
type Rules struct {
	// WinScore ends the game as won once reached. Zero disables the win condition.
	WinScore int

	// Base points per number of rows cleared in one sweep.
	PointsSingle int
	PointsDouble int
	PointsTriple int
	PointsTetris int

	// LinesPerLevel is how many cleared lines advance one level.
	LinesPerLevel int

	// LevelMultiplier scales points: base * (1 + (level-1) * LevelMultiplier).
	LevelMultiplier float64

	// BaseDropInterval is the automatic drop interval at level 1.
	BaseDropInterval time.Duration

	// FixedSpeed pins the drop interval to BaseDropInterval at every level.
	FixedSpeed bool
}

// DefaultRules returns the stock constants.
func DefaultRules() Rules {
	return Rules{
		WinScore:         4500,
		PointsSingle:     100,
		PointsDouble:     200,
		PointsTriple:     500,
		PointsTetris:     1500,
		LinesPerLevel:    8,
		LevelMultiplier:  0.3,
		BaseDropInterval: time.Second,
	}
}

// Validate checks that the rules can drive a session.
func (r Rules) Validate() error {
	switch {
	case r.WinScore < 0:
		return fmt.Errorf("%w: win score %d is negative", ErrInvalidRules, r.WinScore)
	case r.PointsSingle < 0 || r.PointsDouble < 0 || r.PointsTriple < 0 || r.PointsTetris < 0:
		return fmt.Errorf("%w: points must not be negative", ErrInvalidRules)
	case r.LinesPerLevel <= 0:
		return fmt.Errorf("%w: lines per level %d must be positive", ErrInvalidRules, r.LinesPerLevel)
	case r.LevelMultiplier < 0:
		return fmt.Errorf("%w: level multiplier %v is negative", ErrInvalidRules, r.LevelMultiplier)
	case r.BaseDropInterval <= 0:
		return fmt.Errorf("%w: base drop interval %v must be positive", ErrInvalidRules, r.BaseDropInterval)
	}
	return nil
}

// BasePoints returns the table value for a sweep of the given size.
// Any other row count scores nothing.
func (r Rules) BasePoints(rows int) int {
	switch rows {
	case 1:
		return r.PointsSingle
	case 2:
		return r.PointsDouble
	case 3:
		return r.PointsTriple
	case 4:
		return r.PointsTetris
	default:
		return 0
	}
}

// Points returns floor(base * (1 + (level-1) * LevelMultiplier)) where level is
// the level in effect before the clear is applied.
func (r Rules) Points(rows, level int) int {
	if level < 1 {
		level = 1
	}
	multiplier := 1 + float64(level-1)*r.LevelMultiplier
	return int(math.Floor(float64(r.BasePoints(rows)) * multiplier))
}

// Level returns the level reached after the given number of cleared lines.
func (r Rules) Level(lines int) int {
	return LevelFor(lines, r.LinesPerLevel)
}

// DropInterval returns the automatic drop interval at the given level.
func (r Rules) DropInterval(level int) time.Duration {
	if r.FixedSpeed {
		return r.BaseDropInterval
	}
	return DropInterval(r.BaseDropInterval, level)
}

// LevelFor is floor(lines / perLevel) + 1. Levels start at 1 and never reach 0.
func LevelFor(lines, perLevel int) int {
	if perLevel <= 0 || lines < 0 {
		return 1
	}
	return lines/perLevel + 1
}

// DropInterval is base / level, clamping level to at least 1.
func DropInterval(base time.Duration, level int) time.Duration {
	if level < 1 {
		level = 1
	}
	return base / time.Duration(level)
}
