// Package catalog loads the supplication texts that notification bodies are built from.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Supplication is one catalog entry
type Supplication struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Text     string `yaml:"text"`
}

type document struct {
	Supplications []Supplication `yaml:"supplications"`
}

// Catalog is an immutable lookup of supplications by id.
// It implements reminder.SupplicationTexts.
type Catalog struct {
	entries map[string]Supplication
	order   []string
}

// Load reads a catalog file. An empty path loads the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{entries: make(map[string]Supplication, len(doc.Supplications))}
	for i, s := range doc.Supplications {
		s.ID = strings.TrimSpace(s.ID)
		if s.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if _, dup := c.entries[s.ID]; dup {
			return nil, fmt.Errorf("catalog entry %q is defined twice", s.ID)
		}
		s.Text = strings.TrimSpace(s.Text)
		c.entries[s.ID] = s
		c.order = append(c.order, s.ID)
	}
	return c, nil
}

// Text returns the supplication text for id
func (c *Catalog) Text(id string) (string, bool) {
	s, ok := c.entries[id]
	if !ok || s.Text == "" {
		return "", false
	}
	return s.Text, true
}

// Get returns the full entry for id
func (c *Catalog) Get(id string) (Supplication, bool) {
	s, ok := c.entries[id]
	return s, ok
}

// List returns all entries in file order
func (c *Catalog) List() []Supplication {
	out := make([]Supplication, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id])
	}
	return out
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.entries)
}
