package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/cmdsync/internal/app"
	"github.com/vk/cmdsync/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments and the CMDSYNC_* environment. It
// returns a populated Config, a boolean indicating if the program should
// exit cleanly, or an ExitError. Flags take precedence over the environment.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("cmdsync", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
cmdsync - Synchronize a guild's slash commands with the compiled-in and
manifest-defined command set.

Usage:
  cmdsync [options]

Environment:
  CMDSYNC_TOKEN            Bot token used to authenticate (required unless -dry-run).
  CMDSYNC_GUILD_ID         Guild whose command set is replaced.
  CMDSYNC_API_URL          API root (default https://discord.com/api/v10).
  CMDSYNC_REQUEST_TIMEOUT  Per-request timeout (default 15s).

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL config file with region blocks.")
	commandsFlag := flagSet.String("commands-path", "commands", "Directory searched for *.cmd.hcl command manifests.")
	guildFlag := flagSet.String("guild", "", "Guild id to synchronize. Overrides CMDSYNC_GUILD_ID.")
	timeoutFlag := flagSet.Duration("timeout", 0, "Per-request timeout. Overrides CMDSYNC_REQUEST_TIMEOUT.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the health check and region lookup server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 8, "Maximum number of command units loaded concurrently. 0 is unbounded.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Build the catalog and log it without contacting the API.")
	refuseEmptyFlag := flagSet.Bool("refuse-empty", false, "Abort instead of removing every command when no unit loads.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))}
	}
	slog.Debug("Arguments parsed successfully.")

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	env, err := config.ParseEnv()
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	guild := env.GuildID
	if *guildFlag != "" {
		guild = *guildFlag
	}
	timeout := env.RequestTimeout
	if *timeoutFlag != 0 {
		timeout = *timeoutFlag
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		ConfigPath:      *configFlag,
		CommandsPath:    *commandsFlag,
		Token:           env.Token,
		GuildID:         guild,
		APIURL:          env.APIURL,
		RequestTimeout:  timeout,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
		WorkerCount:     *workersFlag,
		DryRun:          *dryRunFlag,
		RefuseEmpty:     *refuseEmptyFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "guild", cfg.GuildID, "dry_run", cfg.DryRun)
	return cfg, false, nil
}
