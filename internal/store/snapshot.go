package store

import (
	"context"
	"fmt"

	"checkrun/internal/history"
	"checkrun/internal/ledger"
)

// Snapshot is the read-once view of the store a batch run works against. The
// pipeline reads it at batch start and does not look at the live store again
// until commit.
type Snapshot struct {
	Ledgers []ledger.Ledger
	History []history.Record
	Queue   []QueueItem
	Profile Profile
}

// Snapshot loads ledgers, history, the pending queue, and the active profile
// in one pass.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	ledgers, err := s.ListLedgers(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	queue, err := s.ListQueue(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.ActiveProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return &Snapshot{
		Ledgers: ledgers,
		History: records,
		Queue:   queue,
		Profile: profile,
	}, nil
}
