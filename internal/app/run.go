package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/cmdsync/internal/catalog"
	"github.com/vk/cmdsync/internal/ctxlog"
	"github.com/vk/cmdsync/internal/discord"
	"github.com/vk/cmdsync/internal/syncer"
)

// Run performs one synchronization. When the health check port is set, the
// lookup server is started first and kept serving after a successful sync
// until ctx is cancelled.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		if err := a.startHealthcheckServer(a.config.HealthcheckPort); err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, a.closeHealthCheckServer())
		}()
	}

	client := discord.New(discord.Config{
		BaseURL: a.config.APIURL,
		Token:   a.config.Token,
		Timeout: a.config.RequestTimeout,
	})
	defer client.Close()

	s := syncer.New(a.registry, catalog.NewLoader(a.registry), client, syncer.Options{
		Scope:       a.config.GuildID,
		Workers:     a.config.WorkerCount,
		DryRun:      a.config.DryRun,
		RefuseEmpty: a.config.RefuseEmpty,
	})

	a.logger.Info("🚀 Starting command synchronization...", "units", a.registry.Len(), "dry_run", a.config.DryRun)
	report, err := s.Run(ctx)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}
	if len(report.Warnings) > 0 {
		a.logger.Warn("🏁 Synchronization finished with skipped units.", "pushed", len(report.Catalog), "skipped", len(report.Warnings))
	} else {
		a.logger.Info("🏁 Synchronization finished.", "pushed", len(report.Catalog))
	}

	if a.httpServer != nil {
		a.logger.Info("Serving region lookups until shutdown.")
		<-ctx.Done()
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
