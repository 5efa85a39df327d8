package primitives

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"shape-viewer/internal/engine"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Factory builds a fresh Shape on every call; two results never share GPU buffers.
type Factory func() *engine.Shape

// Entry is one named catalog item.
type Entry struct {
	Name    string
	Factory Factory
}

// Catalog is the fixed, order-stable list of shapes the viewer offers. It is read-only after New.
type Catalog struct {
	entries []Entry
	byName  map[string]int
}

// ParseDefs decodes and validates a YAML list of primitive definitions. Unknown fields and duplicate names are errors.
func ParseDefs(data []byte) ([]PrimitiveDef, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var defs []PrimitiveDef
	if err := dec.Decode(&defs); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("duplicate primitive name %q", d.Name)
		}
		seen[d.Name] = true
	}
	return defs, nil
}

// Load builds a catalog from YAML definitions whose factories upload through dev.
func Load(data []byte, dev engine.Device) (*Catalog, error) {
	defs, err := ParseDefs(data)
	if err != nil {
		return nil, err
	}
	c := &Catalog{
		entries: make([]Entry, 0, len(defs)),
		byName:  make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		c.byName[d.Name] = len(c.entries)
		c.entries = append(c.entries, Entry{Name: d.Name, Factory: NewFactory(d, dev)})
	}
	return c, nil
}

// New returns the built-in catalog bound to dev. The embedded definition is validated by tests, so a failure here is a build defect.
func New(dev engine.Device) *Catalog {
	c, err := Load(catalogYAML, dev)
	if err != nil {
		panic(fmt.Sprintf("primitives: embedded catalog: %v", err))
	}
	return c
}

// NewFactory returns a factory that generates d's buffer and uploads it through dev.
// d must already be valid; Build errors are impossible for validated definitions.
func NewFactory(d PrimitiveDef, dev engine.Device) Factory {
	return func() *engine.Shape {
		buf, err := d.Build()
		if err != nil {
			panic(fmt.Sprintf("primitives: %v", err))
		}
		return dev.UploadShape(buf)
	}
}

// Entries returns the entries in display order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Lookup returns the entry with the given display name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// At returns the i-th entry in display order.
func (c *Catalog) At(i int) (Entry, bool) {
	if i < 0 || i >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[i], true
}
