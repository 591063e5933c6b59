package testsupport

import (
	"path/filepath"
	"testing"

	"checkrun/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.OutputDir = filepath.Join(base, "output")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithPrintCommand sets the external print command on the test config.
func WithPrintCommand(command string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Printing.Command = command
	}
}

// WithSheetSlots overrides the sheet capacity on the test config.
func WithSheetSlots(slots int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Batch.SheetSlots = slots
	}
}
