// Package batch implements the batch check-printing pipeline: it drains the
// import queue, resolves destination ledgers (creating them on demand inside
// the session), keeps running balances consistent across the whole run,
// invokes the external print action per item or per sheet, suspends on print
// failure for an operator continue-or-abort decision, and commits every
// successfully processed record to permanent history as one update.
//
// All working state lives in a private Session until commit; the live store
// is read once at batch start and written once at the end, so concurrent
// reads elsewhere observe pre-batch state throughout the run.
package batch
