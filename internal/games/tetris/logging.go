package tetris

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// LogEvents subscribes a listener that writes every engine event to logger,
// tagged with the mode and the current run ID. Round boundaries go out at
// info level, everything else at debug.
func (g *Game) LogEvents(logger *log.Logger) {
	g.Subscribe(func(e engine.Event) {
		LogEvent(logger, e, "mode", g.ID(), "run", g.runID)
	})
}

// LogEvent writes one event with structured key/values.
func LogEvent(logger *log.Logger, e engine.Event, keyvals ...any) {
	switch ev := e.(type) {
	case engine.StartedEvent:
		logger.Info("round started", keyvals...)
	case engine.PieceLockedEvent:
		logger.Debug("piece locked", append(keyvals, "piece", ev.Type.String(), "x", ev.X, "y", ev.Y)...)
	case engine.LinesClearedEvent:
		logger.Debug("lines cleared", append(keyvals, "count", ev.Count, "rows", ev.Rows)...)
	case engine.BigClearEvent:
		logger.Debug("big clear", keyvals...)
	case engine.LevelUpEvent:
		logger.Info("level up", append(keyvals, "level", ev.Level)...)
	case engine.ScoreChangedEvent:
		logger.Debug("score changed", append(keyvals, "score", ev.Score, "level", ev.Level, "lines", ev.Lines)...)
	case engine.GameOverEvent:
		logger.Info("game over", append(keyvals, "score", ev.Score, "lines", ev.Lines)...)
	case engine.WonEvent:
		logger.Info("round won", append(keyvals, "time", FormatElapsed(ev.Elapsed), "time_ms", ev.ElapsedMillis())...)
	}
}
