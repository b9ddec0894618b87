package loot

import "math/rand"

// DropPool is the ordered list of ids chests may still yield this run.
// It only ever shrinks.
type DropPool []string

// NewDropPool copies candidates into a fresh pool.
func NewDropPool(candidates []string) DropPool {
	p := make(DropPool, len(candidates))
	copy(p, candidates)
	return p
}

// Draw picks an item for a chest of the given rarity. Only pool ids whose catalog
// rarity is at least chestRarity are eligible; with none eligible the pool is left
// untouched. The picked id always leaves the pool, but when held reports it as
// already owned the chest yields nothing.
func (p *DropPool) Draw(catalog *Catalog, chestRarity Rarity, held func(id string) bool, rng *rand.Rand) (string, bool) {
	var eligible []string
	for _, id := range *p {
		it, ok := catalog.Find(id)
		if ok && it.Rarity >= chestRarity {
			eligible = append(eligible, id)
		}
	}
	if len(eligible) == 0 {
		return "", false
	}

	picked := eligible[rng.Intn(len(eligible))]
	p.remove(picked)

	if held != nil && held(picked) {
		return "", false
	}
	return picked, true
}

// remove drops every occurrence of id.
func (p *DropPool) remove(id string) {
	kept := (*p)[:0]
	for _, x := range *p {
		if x != id {
			kept = append(kept, x)
		}
	}
	*p = kept
}

// Contains reports whether id is still in the pool.
func (p DropPool) Contains(id string) bool {
	for _, x := range p {
		if x == id {
			return true
		}
	}
	return false
}
