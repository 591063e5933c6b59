package ledger

import (
	"checkrun/internal/history"
	"checkrun/internal/money"
)

// Project computes a ledger's current balance from its committed history:
// starting balance plus deposits minus checks, skipping voided records. The
// stored ledger row carries no authoritative balance, so this is the only
// source of truth.
func Project(l Ledger, records []history.Record) money.Amount {
	balance := l.StartingBalance
	for _, rec := range records {
		if rec.Void || rec.LedgerID != l.ID {
			continue
		}
		balance = balance.Add(rec.Delta())
	}
	return balance
}
