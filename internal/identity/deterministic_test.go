package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestLayoutUUIDIsStable(t *testing.T) {
	first := LayoutUUID("dashboard")
	second := LayoutUUID("  Dashboard ")
	if first == uuid.Nil {
		t.Fatalf("expected non-nil id")
	}
	if first != second {
		t.Fatalf("expected %s, got %s", first, second)
	}
}

func TestCellUUIDScopedByLayout(t *testing.T) {
	a := CellUUID(LayoutUUID("a"), "hero")
	b := CellUUID(LayoutUUID("b"), "hero")
	if a == b {
		t.Fatalf("expected distinct ids for different layouts")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("   "); got != uuid.Nil {
		t.Fatalf("expected nil uuid, got %s", got)
	}
}
