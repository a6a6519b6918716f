package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Descriptor is the minimal data extracted from a unit that is needed for
// registration: the command name and its metadata document.
type Descriptor struct {
	name     string
	metadata json.RawMessage
}

// NewDescriptor validates a metadata document and builds a Descriptor from
// it. The document must be a JSON object with a non-empty string "name".
func NewDescriptor(doc []byte) (Descriptor, error) {
	if !gjson.ValidBytes(doc) {
		return Descriptor{}, errors.New("data is not valid JSON")
	}
	parsed := gjson.ParseBytes(doc)
	if !parsed.IsObject() {
		return Descriptor{}, fmt.Errorf("data must be a JSON object, got %s", parsed.Type)
	}
	name := parsed.Get("name")
	if name.Type != gjson.String || name.Str == "" {
		return Descriptor{}, errors.New(`data has no "name" string`)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, doc); err != nil {
		return Descriptor{}, fmt.Errorf("compact data: %w", err)
	}
	return Descriptor{name: name.Str, metadata: compact.Bytes()}, nil
}

// Name is the command name.
func (d Descriptor) Name() string { return d.name }

// Metadata returns a copy of the metadata document.
func (d Descriptor) Metadata() json.RawMessage {
	return bytes.Clone(d.metadata)
}

// MarshalJSON emits the metadata document unchanged.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	if d.metadata == nil {
		return []byte("null"), nil
	}
	return bytes.Clone(d.metadata), nil
}

// Catalog is the ordered set of descriptors for one synchronization run.
type Catalog []Descriptor

// Names lists the command names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, d := range c {
		names[i] = d.name
	}
	return names
}

// Duplicates returns names that occur more than once, in order of their
// second occurrence. Uniqueness is not enforced; callers decide what to do.
func (c Catalog) Duplicates() []string {
	seen := make(map[string]int, len(c))
	var dups []string
	for _, d := range c {
		seen[d.name]++
		if seen[d.name] == 2 {
			dups = append(dups, d.name)
		}
	}
	return dups
}
