package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vk/cmdsync/internal/ctxlog"
	"github.com/vk/cmdsync/internal/registry"
)

// Source resolves unit references to their factories. *registry.Registry
// satisfies it.
type Source interface {
	Lookup(ref string) (registry.Factory, bool)
}

// UnitLoader loads one unit. Build accepts any implementation so that tests
// can inject latency or failures.
type UnitLoader interface {
	Load(ctx context.Context, ref string) (Descriptor, error)
}

// Loader is the default UnitLoader backed by a Source.
type Loader struct {
	source Source
}

// NewLoader creates a Loader over source.
func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// Load materializes the unit behind ref. Any failure, including a panic
// raised by the unit, is returned as a *UnitLoadError.
func (l *Loader) Load(ctx context.Context, ref string) (d Descriptor, err error) {
	ctx, logger := ctxlog.With(ctx, "unit", ref)
	defer func() {
		if r := recover(); r != nil {
			d, err = Descriptor{}, &UnitLoadError{Ref: ref, Err: fmt.Errorf("unit panicked: %v", r)}
		}
	}()

	factory, ok := l.source.Lookup(ref)
	if !ok {
		return Descriptor{}, &UnitLoadError{Ref: ref, Err: ErrUnknownUnit}
	}

	def, err := factory(ctx)
	if err != nil {
		return Descriptor{}, &UnitLoadError{Ref: ref, Err: err}
	}
	if def == nil {
		return Descriptor{}, &UnitLoadError{Ref: ref, Err: errors.New("unit produced no definition")}
	}

	doc, err := document(def.Data())
	if err != nil {
		return Descriptor{}, &UnitLoadError{Ref: ref, Err: err}
	}
	d, err = NewDescriptor(doc)
	if err != nil {
		return Descriptor{}, &UnitLoadError{Ref: ref, Err: err}
	}

	logger.Debug("Loaded command unit.", "command", d.Name())
	return d, nil
}

// document serializes a unit's data field. Raw JSON is taken as is.
func document(data any) ([]byte, error) {
	switch v := data.(type) {
	case nil:
		return nil, errors.New("unit declares no data")
	case json.RawMessage:
		return v, nil
	case []byte:
		return v, nil
	}
	doc, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode data: %w", err)
	}
	return doc, nil
}
