package core

import "time"

// RuntimeConfig is handed to a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driven by the platform
	Seed     int64 // RNG seed; 0 lets the platform pick one from the clock
}

// DefaultConfig returns an 80x24 screen at 60 frames per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// FrameDuration is the nominal wall time of one frame.
func (c RuntimeConfig) FrameDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState is the summary a game reports to the platform after each step.
type GameState struct {
	Score    int
	Level    int
	Lines    int
	Started  bool // False until the player starts the first round
	Paused   bool
	GameOver bool // Set for both a loss and a win
	Won      bool
	Elapsed  time.Duration // Running time of the current round
	RunID    string        // Identifies the current round for result storage
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
