package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/metrics"
)

func TestGameFactoryAppliesDifficulty(t *testing.T) {
	factory := newGameFactory(config.DefaultTetrisConfig(), nil, nil)

	g, err := factory("tetris", config.DifficultyHard)
	if err != nil {
		t.Fatalf("factory(tetris): %v", err)
	}
	game, ok := g.(*tetris.Game)
	if !ok {
		t.Fatalf("factory returned %T", g)
	}
	if got := game.Config().Progression.BaseDropIntervalMs; got != 600 {
		t.Errorf("hard BaseDropIntervalMs = %d, want 600", got)
	}
	if got := game.Config().Scoring.WinScore; got != 4500 {
		t.Errorf("classic WinScore = %d, want 4500", got)
	}

	g, err = factory("tetris_endless", config.DifficultyFixed)
	if err != nil {
		t.Fatalf("factory(tetris_endless): %v", err)
	}
	game = g.(*tetris.Game)
	if got := game.Config().Scoring.WinScore; got != 0 {
		t.Errorf("endless WinScore = %d, want 0", got)
	}
	if !game.Config().Progression.FixedSpeed {
		t.Error("fixed difficulty did not pin the speed")
	}

	if _, err := factory("pong", config.DifficultyNormal); err == nil {
		t.Error("unknown game id was accepted")
	}
}

func TestGameFactoryWiresListeners(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	rec := metrics.NewRecorder()

	g, err := newGameFactory(config.DefaultTetrisConfig(), logger, rec)("tetris", config.DifficultyNormal)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}

	g.Reset(core.RuntimeConfig{Seed: 7, TickRate: 60})
	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in)

	for _, want := range []string{"round started", "difficulty=normal"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log missing %q:\n%s", want, buf.String())
		}
	}

	families, err := rec.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	var started float64
	for _, f := range families {
		if f.GetName() == "tetris_games_started_total" {
			started = f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	if started != 1 {
		t.Errorf("games started = %v, want 1", started)
	}
}

func TestServerSettingsFlagsOverrideEnv(t *testing.T) {
	cmd := &cobra.Command{Use: "serve"}
	cmd.Flags().AddFlagSet(serveCmd.Flags())
	cmd.Flags().AddFlagSet(rootCmd.PersistentFlags())

	env := config.ServerEnv{
		Addr:        ":3000",
		HostKey:     "/keys/env",
		DBPath:      "/data/env.db",
		IdleTimeout: 5 * time.Minute,
		MetricsAddr: ":9100",
		LogLevel:    "warn",
	}

	cfg, metricsAddr, level := serverSettings(cmd, env)
	if cfg.Address != ":3000" || cfg.DBPath != "/data/env.db" || cfg.IdleTimeout != 5*time.Minute {
		t.Errorf("env not applied: %+v", cfg)
	}
	if metricsAddr != ":9100" || level != "warn" {
		t.Errorf("metrics %q level %q, want :9100 warn", metricsAddr, level)
	}

	if err := cmd.ParseFlags([]string{"--ssh", ":4000", "--idle-timeout", "2", "--log-level", "debug"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	t.Cleanup(func() {
		flagSSHAddr, flagIdleTimeout, flagLogLevel = ":2222", 30, "info"
		cmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	})

	cfg, _, level = serverSettings(cmd, env)
	if cfg.Address != ":4000" {
		t.Errorf("Address = %q, want :4000", cfg.Address)
	}
	if cfg.HostKeyPath != "/keys/env" {
		t.Errorf("HostKeyPath = %q, want /keys/env", cfg.HostKeyPath)
	}
	if cfg.IdleTimeout != 2*time.Minute {
		t.Errorf("IdleTimeout = %v, want 2m", cfg.IdleTimeout)
	}
	if level != "debug" {
		t.Errorf("level = %q, want debug", level)
	}
}

func TestServerSettingsLeavesHostKeyForServerDefault(t *testing.T) {
	cmd := &cobra.Command{Use: "serve"}
	cmd.Flags().AddFlagSet(serveCmd.Flags())
	cmd.Flags().AddFlagSet(rootCmd.PersistentFlags())

	t.Setenv("TETRIS_HOST_KEY", "")
	os.Unsetenv("TETRIS_HOST_KEY")
	env, err := config.LoadServerEnv()
	if err != nil {
		t.Fatalf("LoadServerEnv: %v", err)
	}

	cfg, _, _ := serverSettings(cmd, env)
	if cfg.HostKeyPath != "" {
		t.Errorf("HostKeyPath = %q, want empty so the server picks its home default", cfg.HostKeyPath)
	}
}

func TestPort(t *testing.T) {
	tests := []struct{ addr, want string }{
		{":2222", "2222"},
		{"0.0.0.0:22", "22"},
		{"nonsense", "nonsense"},
	}
	for _, tc := range tests {
		if got := port(tc.addr); got != tc.want {
			t.Errorf("port(%q) = %q, want %q", tc.addr, got, tc.want)
		}
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := newLogger(&bytes.Buffer{}, "loud", "x"); err == nil {
		t.Error("level \"loud\" was accepted")
	}

	logger, err := newLogger(&bytes.Buffer{}, "debug", "x")
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if got := logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("level = %v, want debug", got)
	}
}
