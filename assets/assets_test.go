package assets

import (
	"testing"

	"cavedelve/pkg/game/loot"
)

func TestItemsParse(t *testing.T) {
	cat, err := loot.ParseCatalog(Items)
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() < 20 {
		t.Errorf("catalog has %d items, want at least 20", cat.Len())
	}
	seen := make(map[loot.Rarity]bool)
	for _, it := range cat.Items() {
		if it.Name == "" {
			t.Errorf("item %q has no name", it.ID)
		}
		seen[it.Rarity] = true
	}
	for _, r := range loot.AllRarities() {
		if !seen[r] {
			t.Errorf("no %s items", r)
		}
	}
}
