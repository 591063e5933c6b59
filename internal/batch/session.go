package batch

import (
	"strings"

	"checkrun/internal/history"
	"checkrun/internal/ledger"
	"checkrun/internal/money"
	"checkrun/internal/store"
)

// Session is the private working state of one batch run. It is discarded
// after commit or abort and is never visible to the rest of the system while
// the run is in flight.
type Session struct {
	BatchID string
	// DefaultLedgerName is the display name for checks whose item named no
	// ledger.
	DefaultLedgerName string

	Processed    []history.Record
	ProcessedIDs []int64
	FailedIDs    []int64
	SkippedIDs   []int64

	// RunningBalances is seeded once from balance projection at batch start
	// and updated only by the orchestrator's own successful writes. It is
	// never re-derived mid-batch: the store has not observed this batch's
	// pending records, so re-projection would drift.
	RunningBalances map[string]money.Amount

	NewLedgers []ledger.Ledger
	Cancelled  bool
}

// newSession seeds running balances for every ledger the queue's eager
// resolution pass touches, plus the batch default ledger.
func newSession(batchID string, snap *store.Snapshot, resolver *ledger.Resolver) *Session {
	session := &Session{
		BatchID:         batchID,
		RunningBalances: make(map[string]money.Amount),
	}

	byID := make(map[string]ledger.Ledger, len(snap.Ledgers))
	byName := make(map[string]ledger.Ledger, len(snap.Ledgers))
	for _, l := range snap.Ledgers {
		byID[l.ID] = l
		byName[ledger.NormalizeName(l.Name)] = l
	}

	seed := func(l ledger.Ledger) {
		if _, ok := session.RunningBalances[l.ID]; ok {
			return
		}
		session.RunningBalances[l.ID] = ledger.Project(l, snap.History)
	}

	if l, ok := byID[resolver.DefaultID]; ok {
		seed(l)
	}
	for _, item := range snap.Queue {
		name := strings.TrimSpace(item.LedgerName)
		if name == "" {
			continue
		}
		if l, ok := byName[ledger.NormalizeName(name)]; ok {
			seed(l)
		}
	}

	return session
}

// balanceFor returns the current running balance for a ledger, seeding
// ledgers created during this batch from their (zero) starting balance.
func (s *Session) balanceFor(ledgerID string) money.Amount {
	if balance, ok := s.RunningBalances[ledgerID]; ok {
		return balance
	}
	for _, l := range s.NewLedgers {
		if l.ID == ledgerID {
			s.RunningBalances[ledgerID] = l.StartingBalance
			return l.StartingBalance
		}
	}
	s.RunningBalances[ledgerID] = money.Zero
	return money.Zero
}

// commitSet converts the session's accumulated results into the single diff
// applied to the store.
func (s *Session) commitSet(profileID string) store.CommitSet {
	removed := make([]int64, 0, len(s.ProcessedIDs)+len(s.FailedIDs)+len(s.SkippedIDs))
	removed = append(removed, s.ProcessedIDs...)
	removed = append(removed, s.FailedIDs...)
	removed = append(removed, s.SkippedIDs...)

	return store.CommitSet{
		NewLedgers:          s.NewLedgers,
		Records:             s.Processed,
		RemoveQueueIDs:      removed,
		AdvanceCheckNumbers: len(s.Processed),
		ProfileID:           profileID,
	}
}
