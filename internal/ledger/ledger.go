package ledger

import (
	"strings"

	"checkrun/internal/money"
)

// Ledger is a named account with a starting balance. The running balance is
// always derived from committed history; it is never stored authoritatively.
type Ledger struct {
	ID              string
	Name            string
	StartingBalance money.Amount
	LockStart       bool
}

// NormalizeName produces the key used for ledger-name matching: trimmed and
// case-folded.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
