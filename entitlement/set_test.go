package entitlement

import (
	"testing"

	"github.com/quartzlabs/storehelper/product"
)

func TestInsertPreservesOrder(t *testing.T) {
	s := NewSet()

	for _, pid := range []product.ID{"c", "a", "b"} {
		if !s.Insert(pid) {
			t.Errorf("Insert(%q): expected change", pid)
		}
	}

	got := s.Values()
	want := []product.ID{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("len: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInsertDeduplicates(t *testing.T) {
	s := NewSet()

	s.Insert("a")
	if s.Insert("a") {
		t.Error("duplicate insert should be a no-op")
	}
	if s.Len() != 1 {
		t.Errorf("len: got %d, want 1", s.Len())
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := NewSet()
	s.Insert("a")
	s.Insert("b")

	if !s.Remove("a") {
		t.Error("first remove should report a change")
	}
	if s.Remove("a") {
		t.Error("second remove should be a no-op")
	}
	if s.Contains("a") {
		t.Error("removed id should be absent")
	}
	if !s.Contains("b") {
		t.Error("unrelated id should survive removal")
	}
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	s := NewSet()

	s.Insert("p")
	s.Remove("p")
	s.Remove("p")

	if s.Contains("p") || s.Len() != 0 {
		t.Error("insert then remove should leave the set free of the id")
	}
}

func TestValuesReturnsCopy(t *testing.T) {
	s := NewSet()
	s.Insert("a")
	s.Insert("b")

	values := s.Values()
	values[0] = "mutated"

	if got := s.Values()[0]; got != "a" {
		t.Errorf("internal order mutated through Values copy: got %q", got)
	}
}
