package loot

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

const sampleCatalog = `
items:
  - id: torch
    name: Torch
    rarity: common
  - id: rope
    name: Rope
    rarity: uncommon
  - id: crown
    name: Crown
    rarity: legendary
    description: Heavy.
  - id: torch
    name: Second Torch
    rarity: rare
  - name: Nameless
    rarity: epic
`

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	torch, ok := c.Find("torch")
	if !ok || torch.Name != "Torch" || torch.Rarity != Common {
		t.Errorf("Find(torch) = %+v, %v", torch, ok)
	}
	crown, _ := c.Find("crown")
	if crown.Rarity != Legendary || crown.Description != "Heavy." {
		t.Errorf("Find(crown) = %+v", crown)
	}
	ids := c.IDs()
	want := []string{"torch", "rope", "crown"}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestParseCatalog_UnknownRarity(t *testing.T) {
	_, err := ParseCatalog([]byte("items:\n  - id: x\n    rarity: mythic\n"))
	if err == nil {
		t.Error("ParseCatalog accepted an unknown rarity")
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if !c.Has("rope") {
		t.Error("loaded catalog lacks rope")
	}
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadCatalog(missing) returned nil error")
	}
}

func TestCatalog_Known(t *testing.T) {
	c, _ := ParseCatalog([]byte(sampleCatalog))
	got := c.Known([]string{"rope", "ghost", "rope", "torch"})
	if len(got) != 2 || got[0] != "rope" || got[1] != "torch" {
		t.Errorf("Known = %v, want [rope torch]", got)
	}
}

func TestBuildCandidates(t *testing.T) {
	c, _ := ParseCatalog([]byte(sampleCatalog))
	rng := rand.New(rand.NewSource(5))

	two := c.BuildCandidates(2, rng)
	if len(two) != 2 || two[0] == two[1] {
		t.Errorf("BuildCandidates(2) = %v, want 2 distinct ids", two)
	}
	all := c.BuildCandidates(20, rng)
	if len(all) != 3 {
		t.Errorf("BuildCandidates(20) returned %d ids, want 3", len(all))
	}
	seen := map[string]bool{}
	for _, id := range all {
		if seen[id] || !c.Has(id) {
			t.Errorf("bad or repeated candidate %q", id)
		}
		seen[id] = true
	}
	if got := c.BuildCandidates(0, rng); len(got) != 0 {
		t.Errorf("BuildCandidates(0) = %v", got)
	}
}
