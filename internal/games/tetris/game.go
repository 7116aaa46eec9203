// Package tetris adapts the engine to the arcade platform: it registers the
// game modes, maps input frames to engine commands, drives the drop timer
// from frame deltas and draws the board, the side panel and the effects.
package tetris

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode selects the win condition.
type Mode string

const (
	ModeClassic Mode = "tetris"         // Race to the win score
	ModeEndless Mode = "tetris_endless" // No win score
)

var (
	settingsMu sync.RWMutex
	settings   = config.DefaultTetrisConfig()
)

// SetConfig replaces the configuration used by games created afterwards.
func SetConfig(cfg config.TetrisConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	settingsMu.Lock()
	settings = cfg
	settingsMu.Unlock()
	return nil
}

func currentConfig() config.TetrisConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

func init() {
	registry.Register(string(ModeClassic), "Tetris", func() registry.Game {
		return New(ModeClassic)
	})
	registry.Register(string(ModeEndless), "Tetris (Endless)", func() registry.Game {
		return New(ModeEndless)
	})
}

// Game implements registry.Game on top of an engine.Session.
type Game struct {
	mode  Mode
	cfg   config.TetrisConfig
	rules engine.Rules

	rng     *rand.Rand
	session *engine.Session
	effects Effects
	frame   time.Duration
	tick    uint64
	runID   string

	listeners []engine.Listener

	best    time.Duration
	hasBest bool
}

// New creates a game for the mode using the current package configuration.
func New(mode Mode) *Game {
	return NewWithConfig(mode, currentConfig())
}

// NewWithConfig creates a game with an explicit configuration. The endless
// mode always clears the win score.
func NewWithConfig(mode Mode, cfg config.TetrisConfig) *Game {
	cfg = cfg.ForMode(string(mode))
	return &Game{
		mode:  mode,
		cfg:   cfg,
		rules: cfg.Rules(),
		frame: time.Second / 60,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Tetris (Endless)"
	}
	return "Tetris"
}

// Reset builds a fresh session seeded from cfg. Listeners registered with
// Subscribe carry over to the new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.frame = cfg.FrameDuration()
	g.tick = 0
	g.runID = ""
	g.effects = Effects{}

	g.session = engine.NewSession(g.rules, engine.NewCatalog(g.rng))
	g.session.Subscribe(g.onEvent)
	for _, l := range g.listeners {
		g.session.Subscribe(l)
	}
}

// Subscribe registers an engine listener for this and every later session.
func (g *Game) Subscribe(l engine.Listener) {
	if l == nil {
		return
	}
	g.listeners = append(g.listeners, l)
	if g.session != nil {
		g.session.Subscribe(l)
	}
}

// onEvent runs before any external listener.
func (g *Game) onEvent(e engine.Event) {
	if _, ok := e.(engine.StartedEvent); ok {
		g.runID = uuid.NewString()
	}
	g.effects.Observe(e)
}

// Step applies one frame of input and advances the drop timer by the frame delta.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		g.Reset(core.DefaultConfig())
	}
	g.tick++

	dt := in.Delta
	if dt <= 0 {
		dt = g.frame
	}

	s := g.session
	switch s.State() {
	case engine.StateNotStarted, engine.StateGameOver, engine.StateWon:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
			s.Start()
		}
	case engine.StateRunning, engine.StatePaused:
		if in.Has(core.ActionPause) {
			s.TogglePause()
		}
	}

	if s.State() == engine.StateRunning {
		g.applyCommands(in)
		s.Tick(dt)
	}
	g.effects.Advance(dt)

	return core.StepResult{State: g.State()}
}

// applyCommands issues moves before rotations and the soft drop last.
func (g *Game) applyCommands(in core.InputFrame) {
	s := g.session
	if in.Has(core.ActionLeft) {
		s.Move(-1)
	}
	if in.Has(core.ActionRight) {
		s.Move(1)
	}
	if in.Has(core.ActionRotateCW) {
		s.Rotate(1)
	}
	if in.Has(core.ActionRotateCCW) {
		s.Rotate(-1)
	}
	if in.Has(core.ActionDown) {
		s.SoftDrop()
	}
}

// State returns the current game summary.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Level: 1}
	}
	s := g.session
	st := s.State()
	return core.GameState{
		Score:    s.Score(),
		Level:    s.Level(),
		Lines:    s.Lines(),
		Started:  st != engine.StateNotStarted,
		Paused:   st == engine.StatePaused,
		GameOver: st == engine.StateGameOver || st == engine.StateWon,
		Won:      st == engine.StateWon,
		Elapsed:  s.Elapsed(),
		RunID:    g.runID,
	}
}

// Session exposes the underlying engine session, nil before Reset.
func (g *Game) Session() *engine.Session {
	return g.session
}

// RunID identifies the current round. Empty before the first start.
func (g *Game) RunID() string {
	return g.runID
}

// Config returns the configuration the game plays by.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}

// SetBestTime sets the leaderboard record shown in the side panel.
func (g *Game) SetBestTime(best time.Duration) {
	g.best = best
	g.hasBest = true
}
