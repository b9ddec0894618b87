// Package loot places chests, rolls their rarity, and draws items for them
// from the run's drop pool.
package loot

import (
	"fmt"
	"math/rand"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rarity is an item or chest tier. Tiers are ordered.
type Rarity int

const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
)

// AllRarities lists the tiers from lowest to highest.
func AllRarities() []Rarity {
	return []Rarity{Common, Uncommon, Rare, Epic, Legendary}
}

// String returns the string representation of a rarity
func (r Rarity) String() string {
	switch r {
	case Common:
		return "common"
	case Uncommon:
		return "uncommon"
	case Rare:
		return "rare"
	case Epic:
		return "epic"
	case Legendary:
		return "legendary"
	default:
		return "unknown"
	}
}

// ParseRarity parses a tier name, ignoring case.
func ParseRarity(s string) (Rarity, error) {
	for _, r := range AllRarities() {
		if strings.EqualFold(s, r.String()) {
			return r, nil
		}
	}
	return Common, fmt.Errorf("unknown rarity %q", s)
}

// UnmarshalYAML decodes a rarity written by name.
func (r *Rarity) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseRarity(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*r = parsed
	return nil
}

// Weight is one entry of a rarity table.
type Weight struct {
	Rarity Rarity
	Weight float64
}

// DefaultWeights is the chest rarity table used when none is configured.
var DefaultWeights = []Weight{
	{Common, 60},
	{Uncommon, 25},
	{Rare, 10},
	{Epic, 4},
	{Legendary, 1},
}

// RollRarity picks a tier with probability proportional to its weight.
// Non-positive weights are skipped. An empty table or one without a positive
// weight yields Common.
func RollRarity(weights []Weight, rng *rand.Rand) Rarity {
	total := 0.0
	for _, w := range weights {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	if total <= 0 {
		return Common
	}

	r := rng.Float64() * total
	acc := 0.0
	last := Common
	for _, w := range weights {
		if w.Weight <= 0 {
			continue
		}
		acc += w.Weight
		last = w.Rarity
		if r <= acc {
			return w.Rarity
		}
	}
	// floating point drift past the final boundary
	return last
}
