package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/cmdsync/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

type slot struct {
	desc Descriptor
	err  *UnitLoadError
}

// Build loads every unit in refs concurrently and waits until all loads have
// settled. The returned catalog holds the successful descriptors in the
// order of refs, whatever order the loads finished in; failed units are
// absent and reported in the second return value, also in refs order.
//
// workers bounds the number of concurrent loads; zero or less means no bound.
// An empty refs yields an empty, non-nil catalog.
func Build(ctx context.Context, loader UnitLoader, refs []string, workers int) (Catalog, []*UnitLoadError) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building command catalog.", "units", len(refs), "workers", workers)

	slots := make([]slot, len(refs))
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, ref := range refs {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					slots[i] = slot{err: &UnitLoadError{Ref: ref, Err: fmt.Errorf("loader panicked: %v", r)}}
				}
			}()
			d, err := loader.Load(ctx, ref)
			if err != nil {
				slots[i].err = asUnitLoadError(ref, err)
				return nil
			}
			slots[i].desc = d
			return nil
		})
	}
	// Loaders never return an error to the group; failures live in the slots.
	_ = g.Wait()

	cat := make(Catalog, 0, len(refs))
	var failed []*UnitLoadError
	for _, s := range slots {
		if s.err != nil {
			failed = append(failed, s.err)
			continue
		}
		cat = append(cat, s.desc)
	}

	logger.Debug("Command catalog built.", "loaded", len(cat), "failed", len(failed))
	return cat, failed
}

func asUnitLoadError(ref string, err error) *UnitLoadError {
	var ule *UnitLoadError
	if errors.As(err, &ule) {
		return ule
	}
	return &UnitLoadError{Ref: ref, Err: err}
}
