package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerEnv holds server settings read from the environment. Command-line
// flags take precedence when set explicitly.
type ServerEnv struct {
	Addr        string        `env:"TETRIS_SSH_ADDR"      envDefault:":2222"`
	HostKey     string        `env:"TETRIS_HOST_KEY"`
	DBPath      string        `env:"TETRIS_DB_PATH"`
	IdleTimeout time.Duration `env:"TETRIS_IDLE_TIMEOUT"  envDefault:"30m"`
	MetricsAddr string        `env:"TETRIS_METRICS_ADDR"`
	LogLevel    string        `env:"TETRIS_LOG_LEVEL"     envDefault:"info"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServerEnv reads ServerEnv from the process environment.
func LoadServerEnv() (ServerEnv, error) {
	var cfg ServerEnv
	if err := ParseEnv(&cfg); err != nil {
		return ServerEnv{}, err
	}
	return cfg, nil
}
