package app

import (
	"github.com/vk/cmdsync/internal/region"
	"github.com/vk/cmdsync/internal/registry"
	"github.com/vk/cmdsync/modules/ping"
	"github.com/vk/cmdsync/modules/region_server"
)

// coreModules is the definitive list of command modules compiled into the
// binary, in discovery order.
func coreModules(regions *region.Directory) []registry.Module {
	return []registry.Module{
		&ping.Module{},
		&region_server.Module{Directory: regions},
	}
}
