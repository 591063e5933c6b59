package batch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"checkrun/internal/batch"
	"checkrun/internal/history"
	"checkrun/internal/money"
	"checkrun/internal/services"
	"checkrun/internal/testsupport"
)

func sampleDocument() batch.Document {
	return batch.Document{
		BatchID: "batch-1",
		Checks: []batch.RenderedCheck{{
			ItemID:      1,
			CheckNumber: "1001",
			Date:        "2026-08-15",
			Payee:       "Acme Supply",
			Amount:      money.MustParse("125.40"),
			Memo:        "Invoice 88",
			LedgerName:  "Operating",
			Snapshot: history.LedgerSnapshot{
				PreviousBalance:   money.MustParse("1000"),
				TransactionAmount: money.MustParse("-125.40"),
				NewBalance:        money.MustParse("874.60"),
			},
		}},
	}
}

func TestOutputPrinterWritesRenderedDocument(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	printer := batch.NewOutputPrinter(cfg)

	if err := printer.Print(context.Background(), sampleDocument(), "check-1001.txt"); err != nil {
		t.Fatalf("Print: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(cfg.Paths.OutputDir, "check-1001.txt"))
	if err != nil {
		t.Fatalf("read rendered document: %v", err)
	}
	content := string(raw)
	for _, want := range []string{"CHECK 1001", "Acme Supply", "125.40", "1000.00 -> 874.60"} {
		if !strings.Contains(content, want) {
			t.Fatalf("rendered document missing %q:\n%s", want, content)
		}
	}
}

func TestOutputPrinterRunsConfiguredCommand(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	marker := filepath.Join(cfg.Paths.OutputDir, "printed")
	cfg.Printing.Command = "cp %f " + marker
	printer := batch.NewOutputPrinter(cfg)

	if err := printer.Print(context.Background(), sampleDocument(), "check-1001.txt"); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Fatalf("print command did not run: %v", err)
	}
}

func TestOutputPrinterClassifiesCommandFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	cfg.Printing.Command = "false"
	printer := batch.NewOutputPrinter(cfg)

	err := printer.Print(context.Background(), sampleDocument(), "check-1001.txt")
	if err == nil {
		t.Fatal("expected failure from print command")
	}
	if !errors.Is(err, services.ErrPrint) {
		t.Fatalf("error not classified as print failure: %v", err)
	}
}
