package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// Snapshot captures the complete game state for determinism testing and replay.
// The run ID is left out since it is random by nature.
type Snapshot struct {
	Tick    uint64
	Mode    string
	State   string
	Score   int
	Lines   int
	Level   int
	Elapsed time.Duration
	Board   [engine.Height][engine.Width]engine.Cell

	Active  engine.PieceType // 0 when no piece is falling
	ActiveX int
	ActiveY int
	Next    engine.PieceType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick: g.tick,
		Mode: string(g.mode),
	}
	s := g.session
	if s == nil {
		snap.State = engine.StateNotStarted.String()
		snap.Level = 1
		return snap
	}

	b := s.Board()
	snap.State = s.State().String()
	snap.Score = s.Score()
	snap.Lines = s.Lines()
	snap.Level = s.Level()
	snap.Elapsed = s.Elapsed()
	snap.Board = b.Rows()
	snap.Next = s.Next().Type()
	if p, ok := s.Active(); ok {
		snap.Active = p.Shape.Type()
		snap.ActiveX = p.X
		snap.ActiveY = p.Y
	}
	return snap
}
