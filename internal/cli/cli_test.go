package cli

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, k := range []string{"CMDSYNC_TOKEN", "CMDSYNC_GUILD_ID", "CMDSYNC_API_URL", "CMDSYNC_REQUEST_TIMEOUT"} {
		v, ok := vars[k]
		t.Setenv(k, v)
		if !ok {
			require.NoError(t, os.Unsetenv(k))
		}
	}
}

func TestParse_EnvAndDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"CMDSYNC_TOKEN":           "secret",
		"CMDSYNC_GUILD_ID":        "guild-1",
		"CMDSYNC_API_URL":         "http://localhost:1234",
		"CMDSYNC_REQUEST_TIMEOUT": "4s",
	})

	cfg, exit, err := Parse(nil, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "guild-1", cfg.GuildID)
	assert.Equal(t, "http://localhost:1234", cfg.APIURL)
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "commands", cfg.CommandsPath)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8, cfg.WorkerCount)
	assert.False(t, cfg.DryRun)
}

func TestParse_FlagsOverrideEnv(t *testing.T) {
	setEnv(t, map[string]string{"CMDSYNC_TOKEN": "secret", "CMDSYNC_GUILD_ID": "guild-1"})

	cfg, _, err := Parse([]string{
		"-guild", "guild-2",
		"-timeout", "2s",
		"-config", "cmdsync.hcl",
		"-commands-path", "defs",
		"-log-format", "TEXT",
		"-log-level", "debug",
		"-workers", "0",
		"-healthcheck-port", "8080",
		"-refuse-empty",
	}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "guild-2", cfg.GuildID)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "cmdsync.hcl", cfg.ConfigPath)
	assert.Equal(t, "defs", cfg.CommandsPath)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 0, cfg.WorkerCount)
	assert.Equal(t, 8080, cfg.HealthcheckPort)
	assert.True(t, cfg.RefuseEmpty)
}

func TestParse_Help(t *testing.T) {
	setEnv(t, nil)
	out := &bytes.Buffer{}

	cfg, exit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "CMDSYNC_TOKEN")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		wantMsg string
	}{
		{"unknown flag", nil, []string{"--nope"}, "flag provided but not defined"},
		{"positional", nil, []string{"-dry-run", "extra"}, "unexpected arguments: extra"},
		{"log format", nil, []string{"-dry-run", "-log-format", "xml"}, "invalid log-format"},
		{"log level", nil, []string{"-dry-run", "-log-level", "loud"}, "invalid log-level"},
		{"missing credentials", nil, nil, "token is required"},
		{"bad env duration", map[string]string{"CMDSYNC_REQUEST_TIMEOUT": "later"}, []string{"-dry-run"}, "parse env"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setEnv(t, tc.env)

			_, _, err := Parse(tc.args, &bytes.Buffer{})

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}

func TestParse_DryRunNeedsNoCredentials(t *testing.T) {
	setEnv(t, nil)

	cfg, _, err := Parse([]string{"-dry-run"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, cfg.DryRun)
}
