package loot

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// Item is the static definition of a collectible.
type Item struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Rarity      Rarity `yaml:"rarity"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

type catalogFile struct {
	Items []Item `yaml:"items"`
}

// Catalog is the read-only item table, in definition order.
type Catalog struct {
	items []Item
	byID  map[string]Item
}

// NewCatalog builds a catalog. Items without an id and repeated ids are dropped.
func NewCatalog(items []Item) *Catalog {
	c := &Catalog{byID: make(map[string]Item, len(items))}
	for _, it := range items {
		if it.ID == "" {
			log.Printf("loot: skipping catalog item %q without id", it.Name)
			continue
		}
		if _, dup := c.byID[it.ID]; dup {
			log.Printf("loot: skipping duplicate catalog id %q", it.ID)
			continue
		}
		c.byID[it.ID] = it
		c.items = append(c.items, it)
	}
	return c
}

// ParseCatalog decodes a YAML document with a top-level items list.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewCatalog(f.Items), nil
}

// LoadCatalog reads and parses a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns a copy of all items in definition order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Find looks up an item by id.
func (c *Catalog) Find(id string) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Has reports whether id names a catalog item.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// IDs returns all item ids in definition order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.items))
	for i, it := range c.items {
		ids[i] = it.ID
	}
	return ids
}

// Known returns the ids that name catalog items, preserving order and dropping repeats.
func (c *Catalog) Known(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !c.Has(id) || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// BuildCandidates draws min(size, Len()) distinct ids uniformly without replacement.
func (c *Catalog) BuildCandidates(size int, rng *rand.Rand) []string {
	ids := c.IDs()
	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	if size < 0 {
		size = 0
	}
	if size < len(ids) {
		ids = ids[:size]
	}
	return ids
}
