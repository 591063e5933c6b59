package ledger_test

import (
	"testing"

	"checkrun/internal/ledger"
	"checkrun/internal/money"
)

func TestResolveEmptyNameUsesDefault(t *testing.T) {
	r := ledger.NewResolver("default-id", nil)

	id, sessionNew := r.Resolve("   ", nil)
	if id != "default-id" {
		t.Fatalf("expected default id, got %s", id)
	}
	if len(sessionNew) != 0 {
		t.Fatalf("empty name must not create a ledger, got %d", len(sessionNew))
	}
}

func TestResolveMatchesExistingCaseInsensitively(t *testing.T) {
	existing := []ledger.Ledger{
		{ID: "op", Name: "Operating", StartingBalance: money.MustParse("1000")},
	}
	r := ledger.NewResolver("default-id", existing)

	for _, name := range []string{"Operating", "operating", "  OPERATING  "} {
		id, sessionNew := r.Resolve(name, nil)
		if id != "op" {
			t.Fatalf("Resolve(%q) = %s, want op", name, id)
		}
		if len(sessionNew) != 0 {
			t.Fatalf("Resolve(%q) created a duplicate ledger", name)
		}
	}
}

func TestResolveCreatesLedgerExactlyOnce(t *testing.T) {
	r := ledger.NewResolver("default-id", nil)

	var sessionNew []ledger.Ledger
	firstID, sessionNew := r.Resolve("Payroll", sessionNew)
	secondID, sessionNew := r.Resolve("  payroll ", sessionNew)

	if firstID != secondID {
		t.Fatalf("case/whitespace variants resolved to different ids: %s vs %s", firstID, secondID)
	}
	if len(sessionNew) != 1 {
		t.Fatalf("expected exactly one created ledger, got %d", len(sessionNew))
	}
	created := sessionNew[0]
	if created.Name != "Payroll" {
		t.Fatalf("created ledger keeps the trimmed original name, got %q", created.Name)
	}
	if !created.StartingBalance.IsZero() {
		t.Fatalf("created ledger must start at zero, got %s", money.String(created.StartingBalance))
	}
}
