package store

import (
	"context"
	"database/sql"
	"fmt"

	"checkrun/internal/history"
	"checkrun/internal/ledger"
)

// CommitSet is the diff a completed batch session applies to the store. It is
// the only write path a batch run has; nothing inside it was visible before
// ApplyCommit returns.
type CommitSet struct {
	NewLedgers     []ledger.Ledger
	Records        []history.Record
	RemoveQueueIDs []int64
	// AdvanceCheckNumbers is the number of successfully processed items; the
	// active profile's counter moves forward by this much.
	AdvanceCheckNumbers int
	ProfileID           string
}

// Empty reports whether the commit would change nothing.
func (c CommitSet) Empty() bool {
	return len(c.NewLedgers) == 0 &&
		len(c.Records) == 0 &&
		len(c.RemoveQueueIDs) == 0 &&
		c.AdvanceCheckNumbers == 0
}

// ApplyCommit applies a batch's accumulated results in a single transaction:
// new ledgers are appended, history records are appended, the profile's check
// number counter advances, and consumed queue items are removed. Stored
// ledger rows never receive balance writes; balances stay derived.
func (s *Store) ApplyCommit(ctx context.Context, commit CommitSet) error {
	if commit.Empty() {
		return nil
	}
	ctx = ensureContext(ctx)

	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin commit tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		exec := txExec(tx)

		for _, l := range commit.NewLedgers {
			if err := s.insertLedgerExec(ctx, exec, l); err != nil {
				return err
			}
		}
		for _, rec := range commit.Records {
			if err := s.insertRecordExec(ctx, exec, rec); err != nil {
				return err
			}
		}
		if commit.AdvanceCheckNumbers > 0 && commit.ProfileID != "" {
			if err := exec(
				ctx,
				`UPDATE profiles SET next_check_number = next_check_number + ? WHERE id = ?`,
				commit.AdvanceCheckNumbers,
				commit.ProfileID,
			); err != nil {
				return fmt.Errorf("advance check number counter: %w", err)
			}
		}
		if len(commit.RemoveQueueIDs) > 0 {
			placeholders := makePlaceholders(len(commit.RemoveQueueIDs))
			args := make([]any, 0, len(commit.RemoveQueueIDs))
			for _, id := range commit.RemoveQueueIDs {
				args = append(args, id)
			}
			if err := exec(ctx, `DELETE FROM import_queue WHERE id IN (`+placeholders+`)`, args...); err != nil {
				return fmt.Errorf("remove committed queue items: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit batch results: %w", err)
		}
		return nil
	})
}

func txExec(tx *sql.Tx) execFunc {
	return func(ctx context.Context, query string, args ...any) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	}
}
