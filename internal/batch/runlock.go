package batch

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"checkrun/internal/config"
)

// RunLock is the single global batch-in-progress flag. It must be held before
// entering Confirming; a second batch cannot start while one is in flight,
// even from another process.
type RunLock struct {
	lock *flock.Flock
	path string
}

// NewRunLock places the lock file alongside the logs.
func NewRunLock(cfg *config.Config) *RunLock {
	path := filepath.Join(cfg.Paths.LogDir, "batch.lock")
	return &RunLock{lock: flock.New(path), path: path}
}

// Acquire takes the lock or fails immediately when a batch is already running.
func (l *RunLock) Acquire() error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire batch lock: %w", err)
	}
	if !ok {
		return errors.New("another batch is already in progress")
	}
	return nil
}

// Release frees the lock after the run reaches a terminal phase.
func (l *RunLock) Release() error {
	return l.lock.Unlock()
}

// Path returns the lock file location.
func (l *RunLock) Path() string {
	return l.path
}
