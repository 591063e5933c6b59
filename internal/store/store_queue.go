package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"checkrun/internal/money"
)

const queueColumns = `id, date, payee, amount, memo, external_memo, internal_memo,
    line_items_json, ledger_name, check_number, gl_code, gl_description, created_at`

// Enqueue inserts a pending payment at the tail of the import queue.
func (s *Store) Enqueue(ctx context.Context, item QueueItem) (*QueueItem, error) {
	lineItemsJSON := ""
	if len(item.LineItems) > 0 {
		encoded, err := json.Marshal(item.LineItems)
		if err != nil {
			return nil, fmt.Errorf("marshal line items: %w", err)
		}
		lineItemsJSON = string(encoded)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO import_queue (
            date, payee, amount, memo, external_memo, internal_memo,
            line_items_json, ledger_name, check_number, gl_code, gl_description, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Date,
		item.Payee,
		money.String(item.Amount),
		item.Memo,
		item.ExternalMemo,
		item.InternalMemo,
		lineItemsJSON,
		item.LedgerName,
		item.CheckNumber,
		item.GLCode,
		item.GLDescription,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert queue item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetQueueItem(ctx, id)
}

// GetQueueItem fetches a queue item by id. Missing items return nil.
func (s *Store) GetQueueItem(ctx context.Context, id int64) (*QueueItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+queueColumns+` FROM import_queue WHERE id = ?`, id)
	item, err := scanQueueItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get queue item: %w", err)
	}
	return item, nil
}

// ListQueue returns all pending items in FIFO order.
func (s *Store) ListQueue(ctx context.Context) ([]QueueItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+queueColumns+` FROM import_queue ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list queue: %w", err)
	}
	defer rows.Close()

	var items []QueueItem
	for rows.Next() {
		item, err := scanQueueItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan queue item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate queue: %w", err)
	}
	return items, nil
}

// RemoveQueueItems deletes the given items, typically after a batch commit.
func (s *Store) RemoveQueueItems(ctx context.Context, ids ...int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := makePlaceholders(len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := s.execWithRetry(ctx, `DELETE FROM import_queue WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("remove queue items: %w", err)
	}
	return res.RowsAffected()
}

// ClearQueue removes every pending item.
func (s *Store) ClearQueue(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM import_queue`)
	if err != nil {
		return 0, fmt.Errorf("clear queue: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQueueItem(row rowScanner) (*QueueItem, error) {
	var (
		item          QueueItem
		amount        string
		lineItemsJSON string
		createdAt     string
	)
	if err := row.Scan(
		&item.ID,
		&item.Date,
		&item.Payee,
		&amount,
		&item.Memo,
		&item.ExternalMemo,
		&item.InternalMemo,
		&lineItemsJSON,
		&item.LedgerName,
		&item.CheckNumber,
		&item.GLCode,
		&item.GLDescription,
		&createdAt,
	); err != nil {
		return nil, err
	}

	parsed, err := money.Parse(amount)
	if err != nil {
		return nil, fmt.Errorf("queue item %d amount: %w", item.ID, err)
	}
	item.Amount = parsed

	if strings.TrimSpace(lineItemsJSON) != "" {
		if err := json.Unmarshal([]byte(lineItemsJSON), &item.LineItems); err != nil {
			return nil, fmt.Errorf("queue item %d line items: %w", item.ID, err)
		}
	}

	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		item.CreatedAt = ts
	}
	return &item, nil
}

func makePlaceholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
