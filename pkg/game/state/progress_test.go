package state

import "testing"

func TestProgress_GrantDedupes(t *testing.T) {
	p := NewProgress()
	if !p.Grant("a") || p.Grant("a") || p.Grant("") {
		t.Error("Grant dedupe mismatch")
	}
	p.Grant("b")
	owned := p.Owned()
	if len(owned) != 2 || owned[0] != "a" || owned[1] != "b" {
		t.Errorf("Owned() = %v, want [a b]", owned)
	}
}

func TestProgress_Revoke(t *testing.T) {
	p := NewProgress()
	p.Grant("a")
	p.Grant("b")
	if !p.Revoke("a") || p.Revoke("a") {
		t.Error("Revoke mismatch")
	}
	if p.Owns("a") || !p.Owns("b") {
		t.Errorf("Owned() = %v after revoking a", p.Owned())
	}
}

func TestEncyclopedia(t *testing.T) {
	e := NewEncyclopedia("b", "a", "b")
	if e.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", e.Len())
	}
	if e.Unlock("a") {
		t.Error("Unlock of a known id returned true")
	}
	ids := e.IDs()
	if ids[0] != "a" || ids[1] != "b" {
		t.Errorf("IDs() = %v, want [a b]", ids)
	}
	if !e.IsUnlocked("b") || e.IsUnlocked("c") {
		t.Error("IsUnlocked mismatch")
	}
}
