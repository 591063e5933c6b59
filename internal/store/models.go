package store

import (
	"time"

	"checkrun/internal/money"
)

// LineItem is one invoice line carried by a queue item. Line items are opaque
// to the pipeline; they pass through to the rendered check stub.
type LineItem struct {
	Description string       `json:"description"`
	Amount      money.Amount `json:"amount"`
}

// QueueItem is one pending payment awaiting batch processing. Items are
// produced externally by an import step, are immutable once enqueued, and are
// consumed exactly once: a terminal outcome (success, validation skip, or
// print failure) removes them from the queue at commit.
type QueueItem struct {
	ID            int64
	Date          string
	Payee         string
	Amount        money.Amount
	Memo          string
	ExternalMemo  string
	InternalMemo  string
	LineItems     []LineItem
	LedgerName    string
	CheckNumber   string
	GLCode        string
	GLDescription string
	CreatedAt     time.Time
}

// Profile carries per-profile batch state, most importantly the next check
// number counter that commit advances.
type Profile struct {
	ID              string
	Name            string
	NextCheckNumber int
	Active          bool
}
