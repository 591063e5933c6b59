package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"checkrun/internal/ledger"
	"checkrun/internal/money"
)

// ListLedgers returns every ledger ordered by name.
func (s *Store) ListLedgers(ctx context.Context) ([]ledger.Ledger, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, starting_balance, lock_start FROM ledgers ORDER BY lower(name)`)
	if err != nil {
		return nil, fmt.Errorf("list ledgers: %w", err)
	}
	defer rows.Close()

	var ledgers []ledger.Ledger
	for rows.Next() {
		l, err := scanLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger: %w", err)
		}
		ledgers = append(ledgers, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledgers: %w", err)
	}
	return ledgers, nil
}

// FindLedgerByName matches a ledger name case-insensitively and trimmed.
// Missing ledgers return nil.
func (s *Store) FindLedgerByName(ctx context.Context, name string) (*ledger.Ledger, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, starting_balance, lock_start FROM ledgers WHERE lower(trim(name)) = ? LIMIT 1`,
		ledger.NormalizeName(name))
	l, err := scanLedger(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find ledger: %w", err)
	}
	return &l, nil
}

// InsertLedger adds a new ledger outside any batch run, for the CLI's direct
// ledger management. Batch-created ledgers arrive through ApplyCommit instead.
func (s *Store) InsertLedger(ctx context.Context, l ledger.Ledger) error {
	return s.insertLedgerExec(ctx, s.execWithoutResultRetry, l)
}

type execFunc func(ctx context.Context, query string, args ...any) error

func (s *Store) insertLedgerExec(ctx context.Context, exec execFunc, l ledger.Ledger) error {
	if err := exec(
		ctx,
		`INSERT INTO ledgers (id, name, starting_balance, lock_start, created_at) VALUES (?, ?, ?, ?, ?)`,
		l.ID,
		l.Name,
		money.String(l.StartingBalance),
		boolToInt(l.LockStart),
		time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert ledger %q: %w", l.Name, err)
	}
	return nil
}

func scanLedger(row rowScanner) (ledger.Ledger, error) {
	var (
		l         ledger.Ledger
		balance   string
		lockStart int
	)
	if err := row.Scan(&l.ID, &l.Name, &balance, &lockStart); err != nil {
		return ledger.Ledger{}, err
	}
	parsed, err := money.Parse(balance)
	if err != nil {
		return ledger.Ledger{}, fmt.Errorf("ledger %s starting balance: %w", l.ID, err)
	}
	l.StartingBalance = parsed
	l.LockStart = lockStart != 0
	return l, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
