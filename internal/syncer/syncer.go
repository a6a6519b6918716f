// Package syncer runs one command registry synchronization: it builds the
// catalog from the discovered units, resolves the application identity and
// replaces the remote command set for the configured scope with the catalog.
//
// The replace is total. Units that failed to load are missing from the
// catalog and therefore get removed remotely; when no unit loads at all the
// scope is purged, unless RefuseEmpty is set.
package syncer

import (
	"context"
	"errors"

	"github.com/vk/cmdsync/internal/catalog"
	"github.com/vk/cmdsync/internal/ctxlog"
	"github.com/vk/cmdsync/internal/discord"
)

// ErrEmptyCatalog is returned when RefuseEmpty is set and no unit loaded.
var ErrEmptyCatalog = errors.New("refusing to push an empty command catalog")

// Authority is the remote command registry.
type Authority interface {
	ResolveIdentity(ctx context.Context) (discord.Identity, error)
	ReplaceCommands(ctx context.Context, identity discord.Identity, scope string, cat catalog.Catalog) error
}

// Discovery enumerates unit references in discovery order.
type Discovery interface {
	Refs() []string
}

// Options tune a Syncer.
type Options struct {
	// Scope is the guild whose command set is replaced.
	Scope string
	// Workers bounds concurrent unit loads; zero means unbounded.
	Workers int
	// DryRun builds the catalog and stops before any remote call.
	DryRun bool
	// RefuseEmpty aborts instead of purging the scope when the catalog is empty.
	RefuseEmpty bool
}

// Report describes a finished run.
type Report struct {
	Identity discord.Identity
	Catalog  catalog.Catalog
	Warnings []*catalog.UnitLoadError
	Pushed   bool
}

// Syncer wires discovery, loading and the remote authority together.
type Syncer struct {
	discovery Discovery
	loader    catalog.UnitLoader
	authority Authority
	opts      Options
}

// New creates a Syncer.
func New(discovery Discovery, loader catalog.UnitLoader, authority Authority, opts Options) *Syncer {
	return &Syncer{discovery: discovery, loader: loader, authority: authority, opts: opts}
}

// Run performs one synchronization. Unit load failures are returned as
// warnings in the report; identity and registration failures end the run and
// are returned unchanged (*discord.IdentityResolutionError,
// *discord.RegistrationError). No call is retried.
func (s *Syncer) Run(ctx context.Context) (*Report, error) {
	ctx, logger := ctxlog.With(ctx, "scope", s.opts.Scope)

	refs := s.discovery.Refs()
	logger.Info("Loading command units.", "units", len(refs))
	cat, failed := catalog.Build(ctx, s.loader, refs, s.opts.Workers)
	report := &Report{Catalog: cat, Warnings: failed}

	for _, f := range failed {
		logger.Warn("Command unit skipped.", "unit", f.Ref, "error", f.Err)
	}
	for _, name := range cat.Duplicates() {
		logger.Warn("Command name declared by more than one unit.", "command", name)
	}
	logger.Info("Command catalog ready.", "commands", len(cat), "skipped", len(failed), "names", cat.Names())

	if s.opts.DryRun {
		logger.Info("Dry run, remote registry left untouched.")
		return report, nil
	}

	if len(cat) == 0 {
		if s.opts.RefuseEmpty {
			return report, ErrEmptyCatalog
		}
		logger.Warn("Catalog is empty, every command in scope will be removed.")
	}

	identity, err := s.authority.ResolveIdentity(ctx)
	if err != nil {
		return report, err
	}
	report.Identity = identity

	if err := s.authority.ReplaceCommands(ctx, identity, s.opts.Scope, cat); err != nil {
		return report, err
	}
	report.Pushed = true

	logger.Info("Synchronization finished.", "application_id", identity.ID, "commands", len(cat))
	return report, nil
}
