// Package history models committed check history entries. Entries are
// append-only: the store never updates an existing record, and balance
// corrections are expressed as new adjustment records.
package history
