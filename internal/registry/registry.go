package registry

import (
	"context"
	"fmt"
	"log/slog"
)

// Definition is a loaded command definition unit. Data returns the unit's
// declared data document: anything that serializes to a JSON object carrying
// at least a "name" member.
type Definition interface {
	Data() any
}

// Factory materializes a unit. It may fail or panic; callers isolate both.
type Factory func(ctx context.Context) (Definition, error)

// Module is the interface that every compiled-in command module implements.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered units in registration order.
type Registry struct {
	refs      []string
	factories map[string]Factory
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// RegisterUnit registers a factory under ref. Registering the same reference
// twice is a programming error and panics.
func (r *Registry) RegisterUnit(ref string, factory Factory) {
	if ref == "" {
		panic("registry: unit reference must not be empty")
	}
	if factory == nil {
		panic(fmt.Sprintf("registry: unit '%s' registered with a nil factory", ref))
	}
	if _, exists := r.factories[ref]; exists {
		panic(fmt.Sprintf("registry: unit '%s' already registered", ref))
	}
	slog.Debug("Registering command unit.", "unit", ref)
	r.refs = append(r.refs, ref)
	r.factories[ref] = factory
}

// RegisterDefinition registers a unit whose definition is already built.
func (r *Registry) RegisterDefinition(ref string, def Definition) {
	r.RegisterUnit(ref, func(context.Context) (Definition, error) { return def, nil })
}

// Lookup returns the factory registered under ref.
func (r *Registry) Lookup(ref string) (Factory, bool) {
	f, ok := r.factories[ref]
	return f, ok
}

// Refs returns the unit references in discovery order.
func (r *Registry) Refs() []string {
	out := make([]string, len(r.refs))
	copy(out, r.refs)
	return out
}

// Len reports the number of registered units.
func (r *Registry) Len() int {
	return len(r.refs)
}

// DataFunc adapts a plain function to the Definition interface.
type DataFunc func() any

// Data implements Definition.
func (f DataFunc) Data() any { return f() }
