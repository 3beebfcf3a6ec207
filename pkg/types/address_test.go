package types

import "testing"

func book(ids ...string) *AddressBook {
	b := &AddressBook{}
	for _, id := range ids {
		b.Add(Address{ID: id, FullName: "Name " + id, Phone: "071", Street: "Street " + id})
	}
	return b
}

func TestAddSelectsFirstAddress(t *testing.T) {
	b := book("a", "b")
	if b.SelectedID != "a" {
		t.Fatalf("expected first address selected, got %q", b.SelectedID)
	}
}

func TestRemoveNonSelectedKeepsSelection(t *testing.T) {
	b := book("a", "b", "c")
	if !b.Select("c") {
		t.Fatal("select failed")
	}

	// Dropping an earlier entry must not shift the selection, which was the
	// index-based defect in the source.
	if !b.Remove("a") {
		t.Fatal("remove failed")
	}
	sel, ok := b.Selected()
	if !ok || sel.ID != "c" {
		t.Fatalf("expected c still selected, got %+v ok=%v", sel, ok)
	}
}

func TestRemoveSelectedFallsBackToFirst(t *testing.T) {
	b := book("a", "b", "c")
	if !b.Remove("a") {
		t.Fatal("remove failed")
	}
	sel, ok := b.Selected()
	if !ok || sel.ID != "b" {
		t.Fatalf("expected fallback to first remaining, got %+v ok=%v", sel, ok)
	}
}

func TestRemoveLastClearsSelection(t *testing.T) {
	b := book("a")
	if !b.Remove("a") {
		t.Fatal("remove failed")
	}
	if _, ok := b.Selected(); ok {
		t.Fatal("expected no selection on empty book")
	}
	if b.SelectedID != "" {
		t.Fatalf("expected empty selected id, got %q", b.SelectedID)
	}
}

func TestUpdateAndSelectUnknownID(t *testing.T) {
	b := book("a")
	if b.Update(Address{ID: "zz"}) {
		t.Fatal("update of unknown id should fail")
	}
	if b.Select("zz") {
		t.Fatal("select of unknown id should fail")
	}
	if !b.Update(Address{ID: "a", FullName: "Edited"}) {
		t.Fatal("update failed")
	}
	if b.Addresses[0].FullName != "Edited" {
		t.Fatalf("update not applied: %+v", b.Addresses[0])
	}
}
