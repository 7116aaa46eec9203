package engine

import "time"

// Event is emitted synchronously by a Session for collaborators such as
// renderers, effects, audio, metrics and the leaderboard.
// Listeners must not call back into the session.
type Event interface {
	tetrisEvent()
}

// Listener receives session events.
type Listener func(Event)

// StartedEvent is emitted when a session enters Running from a fresh start.
type StartedEvent struct{}

func (StartedEvent) tetrisEvent() {}

// PieceLockedEvent is emitted when the active piece is merged into the board.
type PieceLockedEvent struct {
	Type PieceType
	X, Y int
}

func (PieceLockedEvent) tetrisEvent() {}

// LinesClearedEvent reports rows removed by one sweep, using the row indices
// the board had before the sweep, bottom to top.
type LinesClearedEvent struct {
	Rows  []int
	Count int
}

func (LinesClearedEvent) tetrisEvent() {}

// BigClearEvent follows a LinesClearedEvent with four rows.
type BigClearEvent struct{}

func (BigClearEvent) tetrisEvent() {}

// LevelUpEvent is emitted when a clear raises the level.
type LevelUpEvent struct {
	Level int
}

func (LevelUpEvent) tetrisEvent() {}

// ScoreChangedEvent carries the counters after a scoring clear.
type ScoreChangedEvent struct {
	Score int
	Level int
	Lines int
}

func (ScoreChangedEvent) tetrisEvent() {}

// GameOverEvent is emitted when a freshly spawned piece cannot be placed.
type GameOverEvent struct {
	Score int
	Lines int
}

func (GameOverEvent) tetrisEvent() {}

// WonEvent is emitted once the win score is reached.
type WonEvent struct {
	Elapsed time.Duration
}

func (WonEvent) tetrisEvent() {}

// ElapsedMillis returns the elapsed running time in whole milliseconds.
func (e WonEvent) ElapsedMillis() int64 {
	return e.Elapsed.Milliseconds()
}
