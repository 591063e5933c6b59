package testsupport

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"checkrun/internal/config"
	"checkrun/internal/ledger"
	"checkrun/internal/money"
	"checkrun/internal/store"
)

// MustOpenStore opens a store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

// Enqueue adds a pending payment for tests using the provided store.
func Enqueue(t testing.TB, s *store.Store, item store.QueueItem) *store.QueueItem {
	t.Helper()

	queued, err := s.Enqueue(context.Background(), item)
	if err != nil {
		t.Fatalf("store.Enqueue: %v", err)
	}
	return queued
}

// SeedLedger inserts a ledger with the given name and starting balance.
func SeedLedger(t testing.TB, s *store.Store, name, startingBalance string) ledger.Ledger {
	t.Helper()

	l := ledger.Ledger{
		ID:              uuid.NewString(),
		Name:            name,
		StartingBalance: money.MustParse(startingBalance),
	}
	if err := s.InsertLedger(context.Background(), l); err != nil {
		t.Fatalf("store.InsertLedger: %v", err)
	}
	return l
}
