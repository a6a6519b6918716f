package app

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath   string // optional hcl file with region blocks
	CommandsPath string // directory searched for command manifests

	Token          string
	GuildID        string
	APIURL         string
	RequestTimeout time.Duration

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	WorkerCount     int
	DryRun          bool
	RefuseEmpty     bool
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	var errs []error
	if !cfg.DryRun {
		if cfg.Token == "" {
			errs = append(errs, errors.New("a bot token is required (CMDSYNC_TOKEN)"))
		}
		if cfg.GuildID == "" {
			errs = append(errs, errors.New("a guild id is required (CMDSYNC_GUILD_ID or -guild)"))
		}
	}
	if cfg.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", cfg.RequestTimeout))
	}
	if cfg.WorkerCount < 0 {
		errs = append(errs, fmt.Errorf("worker count must not be negative, got %d", cfg.WorkerCount))
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		errs = append(errs, fmt.Errorf("healthcheck port %d is out of range", cfg.HealthcheckPort))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
