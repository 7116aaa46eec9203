package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/metrics"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tetris SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the mode menu. Scores and the
fastest-wins leaderboard are shared by everyone on the server, and the SSH
user name is offered as the leaderboard name.

Settings come from the environment and are overridden by explicit flags:
  TETRIS_SSH_ADDR       --ssh
  TETRIS_HOST_KEY       --host-key
  TETRIS_DB_PATH        --db
  TETRIS_IDLE_TIMEOUT   --idle-timeout (minutes)
  TETRIS_METRICS_ADDR   --metrics
  TETRIS_LOG_LEVEL      --log-level

Logs go to stderr.

Examples:
  tetris serve                           # Listen on :2222
  tetris serve --ssh :23234              # Listen on port 23234
  tetris serve --host-key ./my_host_key  # Use specific host key
  tetris serve --metrics :9090           # Expose Prometheus metrics

Users can connect with:
  ssh localhost -p 2222`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":2222", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if missing)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Address for the Prometheus /metrics endpoint (empty = off)")
}

// serverSettings merges the environment with flags the user set explicitly.
func serverSettings(cmd *cobra.Command, env config.ServerEnv) (tui.SSHServerConfig, string, string) {
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = env.Addr
	cfg.HostKeyPath = env.HostKey
	cfg.IdleTimeout = env.IdleTimeout
	if env.DBPath != "" {
		cfg.DBPath = env.DBPath
	}
	metricsAddr, logLevel := env.MetricsAddr, env.LogLevel

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = minutes(flagIdleTimeout)
	}
	if flags.Changed("metrics") {
		metricsAddr = flagMetricsAddr
	}
	if flags.Changed("log-level") {
		logLevel = flagLogLevel
	}
	cfg.TickRate = flagFPS
	return cfg, metricsAddr, logLevel
}

func runServe(cmd *cobra.Command, _ []string) {
	env, err := config.LoadServerEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, metricsAddr, logLevel := serverSettings(cmd, env)

	logger, err := newLogger(os.Stderr, logLevel, "tetris-ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	base, preset, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var rec *metrics.Recorder
	if metricsAddr != "" {
		rec = metrics.NewRecorder()
	}

	cfg.Logger = logger
	cfg.Metrics = rec
	cfg.Difficulty = preset
	cfg.NewGame = newGameFactory(base, logger, rec)

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if rec != nil {
		go func() {
			logger.Info("serving metrics", "address", metricsAddr)
			if err := rec.Serve(ctx, metricsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	logger.Info("connect with ssh", "command", "ssh localhost -p "+port(cfg.Address))
	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
