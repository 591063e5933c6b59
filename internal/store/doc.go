// Package store persists ledgers, check history, the import queue, and
// profiles in SQLite. The batch pipeline uses exactly two entry points:
// Snapshot at batch start and ApplyCommit at batch end; it never writes
// incrementally while a batch is running. Other commands use the finer-grained
// accessors directly.
//
// Schema changes bump the version in schema.go; users clear the database to
// adopt the new schema.
package store
