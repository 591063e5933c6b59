package ledger

import (
	"strings"

	"github.com/google/uuid"

	"checkrun/internal/money"
)

// Resolver maps free-text ledger names onto ledger ids, creating new ledgers
// on demand. Creation is confined to the session's accumulator; nothing is
// visible to the rest of the system until batch commit.
type Resolver struct {
	// DefaultID is returned for empty names.
	DefaultID string

	existing map[string]string
}

// NewResolver indexes the existing ledgers by normalized name. The defaultID
// is used when a queue item names no ledger at all.
func NewResolver(defaultID string, existing []Ledger) *Resolver {
	index := make(map[string]string, len(existing))
	for _, l := range existing {
		key := NormalizeName(l.Name)
		if key == "" {
			continue
		}
		if _, ok := index[key]; !ok {
			index[key] = l.ID
		}
	}
	return &Resolver{DefaultID: defaultID, existing: index}
}

// Resolve returns the ledger id for a raw name, matching case-insensitively
// and trimmed against existing ledgers and the session's newly created ones.
// Unknown names create a fresh ledger, append it to sessionNew, and return its
// id. The returned slice is the (possibly grown) session accumulator.
func (r *Resolver) Resolve(name string, sessionNew []Ledger) (string, []Ledger) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return r.DefaultID, sessionNew
	}

	key := NormalizeName(trimmed)
	if id, ok := r.existing[key]; ok {
		return id, sessionNew
	}
	for _, l := range sessionNew {
		if NormalizeName(l.Name) == key {
			return l.ID, sessionNew
		}
	}

	created := Ledger{
		ID:              uuid.NewString(),
		Name:            trimmed,
		StartingBalance: money.Zero,
	}
	return created.ID, append(sessionNew, created)
}
