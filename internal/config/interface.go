package config

import "context"

// Loader reads a configuration file and translates it into the Model.
type Loader interface {
	Load(ctx context.Context, path string) (*Model, error)
}
