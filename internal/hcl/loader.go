package hcl

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/cmdsync/internal/config"
	"github.com/vk/cmdsync/internal/ctxlog"
	"github.com/vk/cmdsync/internal/region"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// configFile has no remain body: unknown blocks and attributes are decode errors.
type configFile struct {
	Regions []*regionBlock `hcl:"region,block"`
}

type regionBlock struct {
	Region  string `hcl:"region,label"`
	Address string `hcl:"address"`
	Port    int    `hcl:"port"`
}

// Load parses the configuration file at path. A file without region blocks
// leaves the built-in region table in place.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL config loader started.", "path", path)

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("error accessing config file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root configFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	model := &config.Model{}
	if len(root.Regions) > 0 {
		entries := make([]region.Entry, 0, len(root.Regions))
		var errs []error
		for _, b := range root.Regions {
			if b.Port < 1 || b.Port > 65535 {
				errs = append(errs, fmt.Errorf("region %q: port %d is out of range", b.Region, b.Port))
				continue
			}
			entries = append(entries, region.Entry{Region: b.Region, Address: b.Address, Port: uint16(b.Port)})
		}
		if len(errs) > 0 {
			return nil, fmt.Errorf("%s: %w", path, errors.Join(errs...))
		}
		dir, err := region.New(entries...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		model.Regions = dir
	}

	logger.Debug("HCL config loading complete.", "regions", len(root.Regions))
	return model, nil
}
