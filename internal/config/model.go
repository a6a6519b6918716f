package config

import "github.com/vk/cmdsync/internal/region"

// Model is the unified, format-agnostic content of a configuration file.
type Model struct {
	// Regions replaces the built-in region table when non-nil.
	Regions *region.Directory
}
