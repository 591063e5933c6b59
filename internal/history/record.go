package history

import (
	"strings"
	"time"

	"checkrun/internal/money"
)

// RecordType distinguishes the kinds of committed history entries.
type RecordType string

const (
	TypeCheck      RecordType = "check"
	TypeDeposit    RecordType = "deposit"
	TypeAdjustment RecordType = "adjustment"
)

var recordTypes = map[RecordType]struct{}{
	TypeCheck:      {},
	TypeDeposit:    {},
	TypeAdjustment: {},
}

// ParseType converts a stored string into a known RecordType.
func ParseType(value string) (RecordType, bool) {
	normalized := RecordType(strings.ToLower(strings.TrimSpace(value)))
	_, ok := recordTypes[normalized]
	return normalized, ok
}

// LedgerSnapshot is the before/after balance pair captured at the moment a
// record was processed. It reflects the batch's own running balance, not the
// globally committed balance at print time.
type LedgerSnapshot struct {
	PreviousBalance   money.Amount
	TransactionAmount money.Amount
	NewBalance        money.Amount
}

// Record is one permanent history entry. Records are created only at batch
// commit and never mutated afterwards; corrections are written as new
// adjustment records.
type Record struct {
	ID          string
	Type        RecordType
	Date        string
	Payee       string
	Amount      money.Amount
	LedgerID    string
	ProfileID   string
	CheckNumber string
	Snapshot    LedgerSnapshot
	Void        bool
	Timestamp   time.Time
}

// Delta returns the signed effect of the record on its ledger balance: checks
// subtract, deposits add. Adjustments carry their direction in the amount's
// sign rather than as a separate case.
func (r Record) Delta() money.Amount {
	switch r.Type {
	case TypeCheck:
		return r.Amount.Neg()
	default:
		return r.Amount
	}
}
