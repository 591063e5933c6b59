package batch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"checkrun/internal/config"
	"checkrun/internal/history"
	"checkrun/internal/money"
	"checkrun/internal/services"
	"checkrun/internal/store"
)

var commandContext = exec.CommandContext

// RenderedCheck is one check slot in a printable document, with the ledger
// snapshot fixed at the moment it was processed.
type RenderedCheck struct {
	ItemID      int64
	LedgerID    string
	CheckNumber string
	Date        string
	Payee       string
	Amount      money.Amount
	Memo        string
	LedgerName  string
	LineItems   []store.LineItem
	Snapshot    history.LedgerSnapshot
}

// Document is the unit handed to the print action: a single check in standard
// mode, up to sheet-slot checks in sheet mode.
type Document struct {
	BatchID    string
	SheetIndex int
	Checks     []RenderedCheck
}

// Printer is the external print collaborator. The orchestrator calls Print at
// most once per document; a failure is escalated to the operator, never
// silently retried.
type Printer interface {
	Print(ctx context.Context, doc Document, filename string) error
}

// PrintFunc adapts a function to the Printer interface.
type PrintFunc func(ctx context.Context, doc Document, filename string) error

// Print implements Printer.
func (f PrintFunc) Print(ctx context.Context, doc Document, filename string) error {
	return f(ctx, doc, filename)
}

// OutputPrinter renders documents into the output directory and optionally
// hands them to the configured print command (%f expands to the rendered
// file). With no command configured, writing the file is the print action.
type OutputPrinter struct {
	outputDir string
	command   string
	timeout   time.Duration
}

// NewOutputPrinter constructs the production printer from config.
func NewOutputPrinter(cfg *config.Config) *OutputPrinter {
	return &OutputPrinter{
		outputDir: cfg.Paths.OutputDir,
		command:   cfg.Printing.Command,
		timeout:   time.Duration(cfg.Printing.TimeoutSeconds) * time.Second,
	}
}

// Print implements Printer.
func (p *OutputPrinter) Print(ctx context.Context, doc Document, filename string) error {
	target := filepath.Join(p.outputDir, filename)
	if p.outputDir == "" {
		target = filepath.Join(os.TempDir(), filename)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return services.Wrap(services.ErrPrint, "printer", "prepare output", filename, err)
	}
	if err := os.WriteFile(target, []byte(renderDocument(doc)), 0o644); err != nil {
		return services.Wrap(services.ErrPrint, "printer", "write document", filename, err)
	}

	if p.command == "" {
		return nil
	}

	runCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	parts := strings.Fields(p.command)
	args := make([]string, 0, len(parts))
	replaced := false
	for _, part := range parts {
		if strings.Contains(part, "%f") {
			part = strings.ReplaceAll(part, "%f", target)
			replaced = true
		}
		args = append(args, part)
	}
	if !replaced {
		args = append(args, target)
	}

	cmd := commandContext(runCtx, args[0], args[1:]...)
	if output, err := cmd.CombinedOutput(); err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		return services.Wrap(services.ErrPrint, "printer", "run print command", filename, err)
	}
	return nil
}

func renderDocument(doc Document) string {
	var b strings.Builder
	for i, check := range doc.Checks {
		if i > 0 {
			b.WriteString(strings.Repeat("-", 72) + "\n")
		}
		fmt.Fprintf(&b, "CHECK %s\n", check.CheckNumber)
		fmt.Fprintf(&b, "Date:    %s\n", check.Date)
		fmt.Fprintf(&b, "Pay to:  %s\n", check.Payee)
		fmt.Fprintf(&b, "Amount:  %s\n", money.String(check.Amount))
		if check.Memo != "" {
			fmt.Fprintf(&b, "Memo:    %s\n", check.Memo)
		}
		fmt.Fprintf(&b, "Ledger:  %s\n", check.LedgerName)
		fmt.Fprintf(&b, "Balance: %s -> %s\n",
			money.String(check.Snapshot.PreviousBalance),
			money.String(check.Snapshot.NewBalance))
		for _, line := range check.LineItems {
			fmt.Fprintf(&b, "  %-40s %12s\n", line.Description, money.String(line.Amount))
		}
	}
	return b.String()
}
