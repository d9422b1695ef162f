package blueprint

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes and validates a YAML blueprint.
func Parse(data []byte) (ShipBlueprint, error) {
	var b ShipBlueprint
	if err := yaml.Unmarshal(data, &b); err != nil {
		return b, fmt.Errorf("decode blueprint: %w", err)
	}
	if err := b.Validate(); err != nil {
		return b, err
	}
	return b, nil
}

// Marshal encodes b as YAML.
func Marshal(b ShipBlueprint) ([]byte, error) {
	return yaml.Marshal(b)
}

// LoadFile reads one blueprint file.
func LoadFile(path string) (ShipBlueprint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ShipBlueprint{}, err
	}
	b, err := Parse(raw)
	if err != nil {
		return b, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return b, nil
}

// LoadDir reads every .yaml/.yml file in dir, sorted by file name.
func LoadDir(dir string) ([]ShipBlueprint, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read blueprint dir: %w", err)
	}
	var out []ShipBlueprint
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		b, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Catalog is the set of blueprints a server offers. It is built once at
// startup and read-only afterwards.
type Catalog struct {
	byName      map[string]ShipBlueprint
	defaultName string
}

// NewCatalog validates every blueprint. The first one is the default; with
// no arguments the catalog holds DefaultShip only.
func NewCatalog(blueprints ...ShipBlueprint) (*Catalog, error) {
	if len(blueprints) == 0 {
		blueprints = []ShipBlueprint{DefaultShip()}
	}
	c := &Catalog{byName: make(map[string]ShipBlueprint, len(blueprints))}
	for _, b := range blueprints {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byName[b.Name]; dup {
			return nil, fmt.Errorf("blueprint %q defined twice", b.Name)
		}
		c.byName[b.Name] = b
	}
	c.defaultName = blueprints[0].Name
	return c, nil
}

// Get returns the named blueprint; an empty name selects the default.
func (c *Catalog) Get(name string) (ShipBlueprint, bool) {
	if name == "" {
		name = c.defaultName
	}
	b, ok := c.byName[name]
	return b, ok
}

func (c *Catalog) Default() ShipBlueprint {
	return c.byName[c.defaultName]
}

// Names lists the blueprints alphabetically.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for n := range c.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
