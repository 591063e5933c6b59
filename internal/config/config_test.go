package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"checkrun/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected missing file to be reported")
	}
	if resolved != path {
		t.Fatalf("resolved path = %s, want %s", resolved, path)
	}
	if cfg.Batch.SheetSlots != 3 {
		t.Fatalf("default sheet_slots = %d, want 3", cfg.Batch.SheetSlots)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("default log level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"
output_dir = "` + filepath.Join(dir, "out") + `"

[logging]
level = "DEBUG"

[batch]
sheet_slots = 2
default_ledger = "  Operating  "
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level not normalized: %q", cfg.Logging.Level)
	}
	if cfg.Batch.DefaultLedger != "Operating" {
		t.Fatalf("default ledger not trimmed: %q", cfg.Batch.DefaultLedger)
	}
	if cfg.Batch.SheetSlots != 2 {
		t.Fatalf("sheet_slots = %d, want 2", cfg.Batch.SheetSlots)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[batch]
sheet_slots = 0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for sheet_slots = 0")
	}
}

func TestLoadRejectsEmptyDefaultLedger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[batch]
default_ledger = "  "
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for blank default_ledger")
	}
}

func TestValidatePrintOutput(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.OutputDir = ""
	cfg.Printing.Command = ""
	if err := cfg.ValidatePrintOutput(); err == nil {
		t.Fatal("expected error when no print destination is configured")
	}

	cfg.Printing.Command = "lp %f"
	if err := cfg.ValidatePrintOutput(); err != nil {
		t.Fatalf("print command alone should satisfy preflight: %v", err)
	}
}

func TestCreateSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if err := config.CreateSample(path); err == nil {
		t.Fatal("expected error when file exists")
	}
}
