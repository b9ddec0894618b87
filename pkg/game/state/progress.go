package state

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Progress is permanent ownership, kept until a full reset.
type Progress struct {
	owned      []string
	DeathCount int
}

// NewProgress creates empty progress.
func NewProgress() *Progress {
	return &Progress{}
}

// Owned returns the owned ids in acquisition order.
func (p *Progress) Owned() []string {
	return append([]string(nil), p.owned...)
}

// Owns reports whether id is owned.
func (p *Progress) Owns(id string) bool {
	for _, x := range p.owned {
		if x == id {
			return true
		}
	}
	return false
}

// Grant adds id to the owned list. Returns false if it was already owned.
func (p *Progress) Grant(id string) bool {
	if id == "" || p.Owns(id) {
		return false
	}
	p.owned = append(p.owned, id)
	return true
}

// Revoke removes id from the owned list. Returns false if it was not owned.
func (p *Progress) Revoke(id string) bool {
	for i, x := range p.owned {
		if x == id {
			p.owned = append(p.owned[:i], p.owned[i+1:]...)
			return true
		}
	}
	return false
}

// Encyclopedia is the set of item ids ever revealed on this install.
type Encyclopedia struct {
	ids mapset.Set[string]
}

// NewEncyclopedia creates an encyclopedia holding ids.
func NewEncyclopedia(ids ...string) *Encyclopedia {
	e := &Encyclopedia{ids: mapset.New[string]()}
	for _, id := range ids {
		e.Unlock(id)
	}
	return e
}

// Unlock records id. Returns false if it was already unlocked.
func (e *Encyclopedia) Unlock(id string) bool {
	if id == "" || e.ids.Has(id) {
		return false
	}
	e.ids.Put(id)
	return true
}

// IsUnlocked reports whether id has been revealed.
func (e *Encyclopedia) IsUnlocked(id string) bool {
	return e.ids.Has(id)
}

// Len returns the number of unlocked ids.
func (e *Encyclopedia) Len() int {
	return e.ids.Size()
}

// IDs returns the unlocked ids sorted.
func (e *Encyclopedia) IDs() []string {
	out := make([]string, 0, e.ids.Size())
	e.ids.Each(func(id string) {
		out = append(out, id)
	})
	sort.Strings(out)
	return out
}
