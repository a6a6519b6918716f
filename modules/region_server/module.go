// Package region_server provides the command that shows which game server hosts a
// region. Its choices are taken from the active region directory.
package region_server

import (
	"context"
	"fmt"

	"github.com/vk/cmdsync/internal/registry"
	"github.com/vk/cmdsync/internal/region"
)

// Ref is the unit reference of the region command.
const Ref = "builtin/region.cmd"

// MaxChoices is the most choices an option may carry.
const MaxChoices = 25

const optionTypeString = 3

// Module implements the registry.Module interface for this package.
type Module struct {
	Directory *region.Directory
}

// Data is the command's data document.
type Data struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Options     []Option `json:"options"`
}

// Option is one command option.
type Option struct {
	Type        int      `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Choices     []Choice `json:"choices,omitempty"`
}

// Choice is one allowed option value.
type Choice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Register registers the region unit.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterUnit(Ref, m.build)
}

func (m *Module) build(context.Context) (registry.Definition, error) {
	if m.Directory == nil {
		return nil, fmt.Errorf("region command: no region directory configured")
	}
	ids := m.Directory.Regions()
	if len(ids) == 0 {
		return nil, fmt.Errorf("region command: region directory is empty")
	}
	if len(ids) > MaxChoices {
		return nil, fmt.Errorf("region command: %d regions exceed the limit of %d choices", len(ids), MaxChoices)
	}

	choices := make([]Choice, 0, len(ids))
	for _, id := range ids {
		e, err := m.Directory.Resolve(id)
		if err != nil {
			return nil, err
		}
		choices = append(choices, Choice{Name: fmt.Sprintf("%s (%s)", id, e.Addr()), Value: id})
	}

	data := Data{
		Name:        "region",
		Description: "Show the game server for a region",
		Options: []Option{{
			Type:        optionTypeString,
			Name:        "region",
			Description: "Region identifier",
			Required:    true,
			Choices:     choices,
		}},
	}
	return registry.DataFunc(func() any { return data }), nil
}
