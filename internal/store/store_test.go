package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"checkrun/internal/config"
	"checkrun/internal/history"
	"checkrun/internal/ledger"
	"checkrun/internal/money"
	"checkrun/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	return &cfg
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(testConfig(t))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesDefaultProfile(t *testing.T) {
	s := openStore(t)

	profile, err := s.ActiveProfile(context.Background())
	if err != nil {
		t.Fatalf("ActiveProfile: %v", err)
	}
	if profile.Name != "Default" {
		t.Fatalf("profile name = %q, want Default", profile.Name)
	}
	if profile.NextCheckNumber != 1001 {
		t.Fatalf("next check number = %d, want 1001", profile.NextCheckNumber)
	}
}

func TestQueueRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	item, err := s.Enqueue(ctx, store.QueueItem{
		Date:       "2026-08-01",
		Payee:      "Acme Supply",
		Amount:     money.MustParse("125.40"),
		Memo:       "Invoice 88",
		LedgerName: "Operating",
		LineItems: []store.LineItem{
			{Description: "Widgets", Amount: money.MustParse("100.40")},
			{Description: "Shipping", Amount: money.MustParse("25.00")},
		},
	})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if item.ID == 0 {
		t.Fatal("expected assigned id")
	}

	items, err := s.ListQueue(ctx)
	if err != nil {
		t.Fatalf("ListQueue: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("queue length = %d, want 1", len(items))
	}
	got := items[0]
	if got.Payee != "Acme Supply" || money.String(got.Amount) != "125.40" {
		t.Fatalf("unexpected item: %+v", got)
	}
	if len(got.LineItems) != 2 || got.LineItems[1].Description != "Shipping" {
		t.Fatalf("line items not round-tripped: %+v", got.LineItems)
	}

	removed, err := s.RemoveQueueItems(ctx, item.ID)
	if err != nil {
		t.Fatalf("RemoveQueueItems: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
}

func TestQueuePreservesInsertionOrder(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for _, payee := range []string{"First", "Second", "Third"} {
		if _, err := s.Enqueue(ctx, store.QueueItem{Payee: payee, Amount: money.MustParse("1")}); err != nil {
			t.Fatalf("Enqueue %s: %v", payee, err)
		}
	}

	items, err := s.ListQueue(ctx)
	if err != nil {
		t.Fatalf("ListQueue: %v", err)
	}
	want := []string{"First", "Second", "Third"}
	for i, payee := range want {
		if items[i].Payee != payee {
			t.Fatalf("position %d = %q, want %q", i, items[i].Payee, payee)
		}
	}
}

func TestApplyCommitIsAtomicAndComplete(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	profile, err := s.ActiveProfile(ctx)
	if err != nil {
		t.Fatalf("ActiveProfile: %v", err)
	}
	queued, err := s.Enqueue(ctx, store.QueueItem{Payee: "Acme", Amount: money.MustParse("100")})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	newLedger := ledger.Ledger{ID: uuid.NewString(), Name: "Payroll", StartingBalance: money.Zero}
	rec := history.Record{
		ID:       uuid.NewString(),
		Type:     history.TypeCheck,
		Payee:    "Acme",
		Amount:   money.MustParse("100"),
		LedgerID: newLedger.ID,
		Snapshot: history.LedgerSnapshot{
			PreviousBalance:   money.Zero,
			TransactionAmount: money.MustParse("-100"),
			NewBalance:        money.MustParse("-100"),
		},
	}

	err = s.ApplyCommit(ctx, store.CommitSet{
		NewLedgers:          []ledger.Ledger{newLedger},
		Records:             []history.Record{rec},
		RemoveQueueIDs:      []int64{queued.ID},
		AdvanceCheckNumbers: 1,
		ProfileID:           profile.ID,
	})
	if err != nil {
		t.Fatalf("ApplyCommit: %v", err)
	}

	ledgers, err := s.ListLedgers(ctx)
	if err != nil {
		t.Fatalf("ListLedgers: %v", err)
	}
	if len(ledgers) != 1 || ledgers[0].Name != "Payroll" {
		t.Fatalf("expected committed ledger, got %+v", ledgers)
	}

	records, err := s.ListHistory(ctx)
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(records) != 1 || records[0].Payee != "Acme" {
		t.Fatalf("expected committed record, got %+v", records)
	}

	items, err := s.ListQueue(ctx)
	if err != nil {
		t.Fatalf("ListQueue: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("queue should be empty, got %d items", len(items))
	}

	after, err := s.ActiveProfile(ctx)
	if err != nil {
		t.Fatalf("ActiveProfile after commit: %v", err)
	}
	if after.NextCheckNumber != profile.NextCheckNumber+1 {
		t.Fatalf("next check number = %d, want %d", after.NextCheckNumber, profile.NextCheckNumber+1)
	}
}

func TestApplyCommitEmptyIsNoOp(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.ApplyCommit(ctx, store.CommitSet{}); err != nil {
		t.Fatalf("empty ApplyCommit: %v", err)
	}

	records, err := s.ListHistory(ctx)
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("no records expected, got %d", len(records))
	}
}

func TestVoidRecordAppendsOffsettingAdjustment(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	l := ledger.Ledger{ID: uuid.NewString(), Name: "Operating", StartingBalance: money.MustParse("500")}
	if err := s.InsertLedger(ctx, l); err != nil {
		t.Fatalf("InsertLedger: %v", err)
	}
	original := history.Record{
		ID:       uuid.NewString(),
		Type:     history.TypeCheck,
		Payee:    "Acme",
		Amount:   money.MustParse("200"),
		LedgerID: l.ID,
		Snapshot: history.LedgerSnapshot{
			PreviousBalance:   money.MustParse("500"),
			TransactionAmount: money.MustParse("-200"),
			NewBalance:        money.MustParse("300"),
		},
	}
	if err := s.ApplyCommit(ctx, store.CommitSet{Records: []history.Record{original}}); err != nil {
		t.Fatalf("ApplyCommit: %v", err)
	}

	adjustment, err := s.VoidRecord(ctx, original.ID)
	if err != nil {
		t.Fatalf("VoidRecord: %v", err)
	}
	if adjustment.Type != history.TypeAdjustment {
		t.Fatalf("adjustment type = %s", adjustment.Type)
	}

	records, err := s.ListHistoryForLedger(ctx, l.ID)
	if err != nil {
		t.Fatalf("ListHistoryForLedger: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected original plus adjustment, got %d records", len(records))
	}

	balance := ledger.Project(l, records)
	if money.String(balance) != "500.00" {
		t.Fatalf("balance after void = %s, want 500.00", money.String(balance))
	}
}

func TestSnapshotLoadsEverything(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.InsertLedger(ctx, ledger.Ledger{ID: uuid.NewString(), Name: "Operating", StartingBalance: money.MustParse("100")}); err != nil {
		t.Fatalf("InsertLedger: %v", err)
	}
	if _, err := s.Enqueue(ctx, store.QueueItem{Payee: "Acme", Amount: money.MustParse("10")}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Ledgers) != 1 || len(snap.Queue) != 1 {
		t.Fatalf("snapshot incomplete: %d ledgers, %d queue items", len(snap.Ledgers), len(snap.Queue))
	}
	if snap.Profile.ID == "" {
		t.Fatal("snapshot missing active profile")
	}
}
