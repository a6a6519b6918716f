package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/cmdsync/internal/config"
	"github.com/vk/cmdsync/internal/ctxlog"
	"github.com/vk/cmdsync/internal/hcl"
	"github.com/vk/cmdsync/internal/region"
	"github.com/vk/cmdsync/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	registry   *registry.Registry
	regions    *region.Directory
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It loads the optional
// config file, registers the compiled-in modules (or the given ones) and the
// command manifests. Startup failures are fatal and panic; the entrypoint
// recovers them.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	regions := region.Default()
	if cfg.ConfigPath != "" {
		model, err := loader.Load(ctx, cfg.ConfigPath)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		if model.Regions != nil {
			regions = model.Regions
		}
	}
	logger.Debug("Region directory ready.", "regions", regions.Regions())

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules(regions)
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	vars := map[string]cty.Value{"regions": hcl.StringList(regions.Regions())}
	n, err := hcl.RegisterManifests(ctx, reg, cfg.CommandsPath, vars)
	if err != nil {
		panic(fmt.Errorf("failed to discover command manifests: %w", err))
	}
	logger.Debug("Command manifests registered.", "count", n, "units", reg.Len())

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		regions:  regions,
	}
}

// Registry returns the application's unit registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Regions returns the active region directory.
func (a *App) Regions() *region.Directory {
	return a.regions
}
