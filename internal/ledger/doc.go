// Package ledger models named accounts and the two pure operations the batch
// pipeline needs from them: resolving free-text names to ledger ids (creating
// accounts on demand inside a batch session) and projecting a balance from
// committed history.
package ledger
