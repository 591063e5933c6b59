package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"checkrun/internal/history"
	"checkrun/internal/money"
	"checkrun/internal/services"
)

const historyColumns = `id, type, date, payee, amount, ledger_id, profile_id, check_number,
    previous_balance, transaction_amount, new_balance, void, created_at`

// ListHistory returns all committed records, oldest first.
func (s *Store) ListHistory(ctx context.Context) ([]history.Record, error) {
	return s.queryHistory(ctx, `SELECT `+historyColumns+` FROM check_history ORDER BY created_at, id`)
}

// ListHistoryForLedger returns a single ledger's committed records, oldest first.
func (s *Store) ListHistoryForLedger(ctx context.Context, ledgerID string) ([]history.Record, error) {
	return s.queryHistory(ctx,
		`SELECT `+historyColumns+` FROM check_history WHERE ledger_id = ? ORDER BY created_at, id`,
		ledgerID)
}

// VoidRecord writes the offsetting adjustment for an existing record. The
// original row is left untouched; history is append-only.
func (s *Store) VoidRecord(ctx context.Context, recordID string) (*history.Record, error) {
	records, err := s.queryHistory(ctx, `SELECT `+historyColumns+` FROM check_history WHERE id = ?`, recordID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "store", "void record", recordID, nil)
	}
	original := records[0]

	adjustment := history.Record{
		ID:          uuid.NewString(),
		Type:        history.TypeAdjustment,
		Date:        original.Date,
		Payee:       original.Payee,
		Amount:      original.Delta().Neg(),
		LedgerID:    original.LedgerID,
		ProfileID:   original.ProfileID,
		CheckNumber: original.CheckNumber,
		Snapshot: history.LedgerSnapshot{
			PreviousBalance:   original.Snapshot.NewBalance,
			TransactionAmount: original.Delta().Neg(),
			NewBalance:        original.Snapshot.PreviousBalance,
		},
		Timestamp: time.Now().UTC(),
	}
	if err := s.insertRecordExec(ctx, s.execWithoutResultRetry, adjustment); err != nil {
		return nil, err
	}
	return &adjustment, nil
}

func (s *Store) insertRecordExec(ctx context.Context, exec execFunc, rec history.Record) error {
	timestamp := rec.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	if err := exec(
		ctx,
		`INSERT INTO check_history (
            id, type, date, payee, amount, ledger_id, profile_id, check_number,
            previous_balance, transaction_amount, new_balance, void, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		string(rec.Type),
		rec.Date,
		rec.Payee,
		money.String(rec.Amount),
		rec.LedgerID,
		rec.ProfileID,
		rec.CheckNumber,
		money.String(rec.Snapshot.PreviousBalance),
		money.String(rec.Snapshot.TransactionAmount),
		money.String(rec.Snapshot.NewBalance),
		boolToInt(rec.Void),
		timestamp.Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert history record %s: %w", rec.ID, err)
	}
	return nil
}

func (s *Store) queryHistory(ctx context.Context, query string, args ...any) ([]history.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []history.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return records, nil
}

func scanRecord(row rowScanner) (history.Record, error) {
	var (
		rec       history.Record
		recType   string
		amount    string
		prev      string
		txn       string
		next      string
		void      int
		createdAt string
	)
	if err := row.Scan(
		&rec.ID,
		&recType,
		&rec.Date,
		&rec.Payee,
		&amount,
		&rec.LedgerID,
		&rec.ProfileID,
		&rec.CheckNumber,
		&prev,
		&txn,
		&next,
		&void,
		&createdAt,
	); err != nil {
		return history.Record{}, err
	}

	parsedType, ok := history.ParseType(recType)
	if !ok {
		return history.Record{}, fmt.Errorf("record %s has unknown type %q", rec.ID, recType)
	}
	rec.Type = parsedType
	rec.Void = void != 0

	var err error
	if rec.Amount, err = money.Parse(amount); err != nil {
		return history.Record{}, fmt.Errorf("record %s amount: %w", rec.ID, err)
	}
	if rec.Snapshot.PreviousBalance, err = money.Parse(prev); err != nil {
		return history.Record{}, fmt.Errorf("record %s previous balance: %w", rec.ID, err)
	}
	if rec.Snapshot.TransactionAmount, err = money.Parse(txn); err != nil {
		return history.Record{}, fmt.Errorf("record %s transaction amount: %w", rec.ID, err)
	}
	if rec.Snapshot.NewBalance, err = money.Parse(next); err != nil {
		return history.Record{}, fmt.Errorf("record %s new balance: %w", rec.ID, err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.Timestamp = ts
	}
	return rec, nil
}
