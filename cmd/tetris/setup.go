package main

import (
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/metrics"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// newLogger creates a logger at level writing to w.
func newLogger(w io.Writer, level, prefix string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          prefix,
	}), nil
}

// openFileLogger logs to the --log-file path, since the TUI owns the terminal.
// An empty path discards logs.
func openFileLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		logger, err := newLogger(io.Discard, flagLogLevel, "tetris")
		return logger, func() {}, err
	}

	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f, flagLogLevel, "tetris")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// loadGameConfig reads the tetris config and checks the difficulty flag.
func loadGameConfig() (config.TetrisConfig, config.DifficultyPreset, error) {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return config.TetrisConfig{}, "", err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.TetrisConfig{}, "", err
	}
	return cfg, preset, nil
}

// newGameFactory builds games from base at the requested difficulty and
// attaches the logger and, when set, the metrics recorder to their events.
func newGameFactory(base config.TetrisConfig, logger *log.Logger, rec *metrics.Recorder) tui.GameFactory {
	return func(mode string, preset config.DifficultyPreset) (registry.Game, error) {
		if !registry.Exists(mode) {
			return nil, fmt.Errorf("unknown mode %q", mode)
		}

		cfg := base
		config.ApplyTetrisPreset(&cfg, preset)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		g := tetris.NewWithConfig(tetris.Mode(mode), cfg)
		if logger != nil {
			g.LogEvents(logger.With("difficulty", string(preset)))
		}
		if rec != nil {
			g.Subscribe(rec.Listener(mode))
			g.Subscribe(func(e engine.Event) {
				if _, ok := e.(engine.WonEvent); ok {
					rec.RecordWinScore(mode, g.State().Score)
				}
			})
		}
		return g, nil
	}
}

// terminalConfig returns the runtime config sized to the terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

// openStore opens the scores database, warning instead of failing.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// port returns the port of a listen address, or the address itself.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
