package hcl

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/cmdsync/internal/ctxlog"
	"github.com/vk/cmdsync/internal/fsutil"
	"github.com/vk/cmdsync/internal/registry"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ManifestSuffix identifies command manifest files.
const ManifestSuffix = ".cmd.hcl"

type manifestFile struct {
	Commands []*commandBlock `hcl:"command,block"`
}

type commandBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// RegisterManifests discovers the manifest files under root and registers one
// unit per file, keyed by its path. Files are parsed when the unit is loaded,
// so a broken manifest only fails its own unit.
func RegisterManifests(ctx context.Context, reg *registry.Registry, root string, vars map[string]cty.Value) (int, error) {
	logger := ctxlog.FromContext(ctx)
	if root == "" {
		return 0, nil
	}

	paths, err := fsutil.FindFilesByExtension(root, ManifestSuffix)
	if err != nil {
		return 0, fmt.Errorf("discover command manifests in %s: %w", root, err)
	}
	if len(paths) == 0 {
		logger.Warn("No command manifests found.", "path", root, "suffix", ManifestSuffix)
		return 0, nil
	}

	for _, path := range paths {
		reg.RegisterUnit(path, func(ctx context.Context) (registry.Definition, error) {
			doc, err := LoadManifest(path, vars)
			if err != nil {
				return nil, err
			}
			return registry.DataFunc(func() any { return doc }), nil
		})
	}
	logger.Debug("Registered command manifests.", "path", root, "count", len(paths))
	return len(paths), nil
}

// LoadManifest parses one manifest file and returns its command's data
// document as JSON.
func LoadManifest(path string, vars map[string]cty.Value) (json.RawMessage, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root manifestFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	if len(root.Commands) != 1 {
		return nil, fmt.Errorf("%s: expected exactly one command block, found %d", path, len(root.Commands))
	}

	return commandDocument(root.Commands[0], &hcl.EvalContext{Variables: vars})
}

func commandDocument(block *commandBlock, evalCtx *hcl.EvalContext) (json.RawMessage, error) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("command %q: %w", block.Name, diags)
	}

	// Evaluate in source order so diagnostics are stable.
	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	members := map[string]cty.Value{"name": cty.StringVal(block.Name)}
	for _, attr := range ordered {
		if attr.Name == "name" {
			return nil, fmt.Errorf("command %q: the name is the block label and cannot be set as an attribute", block.Name)
		}
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("command %q: %w", block.Name, diags)
		}
		if !val.IsWhollyKnown() {
			return nil, fmt.Errorf("command %q: attribute %q is not known", block.Name, attr.Name)
		}
		members[attr.Name] = val
	}

	doc, err := ctyjson.SimpleJSONValue{Value: cty.ObjectVal(members)}.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("command %q: encode data: %w", block.Name, err)
	}
	return doc, nil
}

// StringList converts a list of strings into an HCL list value for use in vars.
func StringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, s := range items {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}
