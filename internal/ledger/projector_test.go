package ledger_test

import (
	"testing"

	"checkrun/internal/history"
	"checkrun/internal/ledger"
	"checkrun/internal/money"
)

func TestProjectSumsSignedHistory(t *testing.T) {
	l := ledger.Ledger{ID: "op", Name: "Operating", StartingBalance: money.MustParse("1000")}
	records := []history.Record{
		{LedgerID: "op", Type: history.TypeCheck, Amount: money.MustParse("100")},
		{LedgerID: "op", Type: history.TypeDeposit, Amount: money.MustParse("250")},
		{LedgerID: "op", Type: history.TypeAdjustment, Amount: money.MustParse("-50")},
		{LedgerID: "other", Type: history.TypeCheck, Amount: money.MustParse("999")},
	}

	got := ledger.Project(l, records)
	if money.String(got) != "1100.00" {
		t.Fatalf("Project = %s, want 1100.00", money.String(got))
	}
}

func TestProjectSkipsVoidedRecords(t *testing.T) {
	l := ledger.Ledger{ID: "op", StartingBalance: money.MustParse("500")}
	records := []history.Record{
		{LedgerID: "op", Type: history.TypeCheck, Amount: money.MustParse("200"), Void: true},
		{LedgerID: "op", Type: history.TypeCheck, Amount: money.MustParse("100")},
	}

	got := ledger.Project(l, records)
	if money.String(got) != "400.00" {
		t.Fatalf("Project = %s, want 400.00", money.String(got))
	}
}

func TestProjectEmptyHistoryIsStartingBalance(t *testing.T) {
	l := ledger.Ledger{ID: "op", StartingBalance: money.MustParse("42.42")}
	got := ledger.Project(l, nil)
	if !got.Equal(l.StartingBalance) {
		t.Fatalf("Project = %s, want starting balance", money.String(got))
	}
}
