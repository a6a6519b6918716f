package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds the settings supplied by the process environment. Both the token
// and the guild are opaque to the synchronizer.
type Env struct {
	Token          string        `env:"CMDSYNC_TOKEN"`
	GuildID        string        `env:"CMDSYNC_GUILD_ID"`
	APIURL         string        `env:"CMDSYNC_API_URL" envDefault:"https://discord.com/api/v10"`
	RequestTimeout time.Duration `env:"CMDSYNC_REQUEST_TIMEOUT" envDefault:"15s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Env, error) {
	return ParseEnvFrom(env.ToMap(os.Environ()))
}

// ParseEnvFrom is ParseEnv over an explicit variable set instead of os.Environ.
func ParseEnvFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
