// Package ping provides the liveness command.
package ping

import "github.com/vk/cmdsync/internal/registry"

// Ref is the unit reference of the ping command.
const Ref = "builtin/ping.cmd"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Data is the command's data document.
type Data struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DMPermission bool   `json:"dm_permission"`
}

// Register registers the ping unit.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterDefinition(Ref, registry.DataFunc(func() any {
		return Data{
			Name:         "ping",
			Description:  "Check that the bot is alive",
			DMPermission: true,
		}
	}))
}
