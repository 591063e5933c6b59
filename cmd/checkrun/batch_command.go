package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"checkrun/internal/batch"
	"checkrun/internal/config"
	"checkrun/internal/logging"
	"checkrun/internal/money"
	"checkrun/internal/store"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Run batch check printing",
	}

	batchCmd.AddCommand(newBatchRunCommand(ctx))

	return batchCmd
}

func newBatchRunCommand(ctx *commandContext) *cobra.Command {
	var (
		autoNumber  bool
		startNumber int
		sheetMode   bool
		ledgerFlag  string
		dryRun      bool
		assumeYes   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Print every pending check and commit the results",
		Long: "Run one batch: validate each pending item, resolve its ledger, assign\n" +
			"its check number, print it, and commit all outcomes in a single\n" +
			"transaction. On a print failure the run suspends and asks whether to\n" +
			"continue with the remaining items or abort.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				lock := batch.NewRunLock(cfg)
				if err := lock.Acquire(); err != nil {
					return err
				}
				defer lock.Release()

				logger, err := logging.NewFromConfig(cfg)
				if err != nil {
					return err
				}

				runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				out := cmd.OutOrStdout()
				interactive := isInteractive(cmd.InOrStdin())

				if !assumeYes && !dryRun {
					if !interactive {
						return errors.New("refusing to run without confirmation; pass --yes for non-interactive use")
					}
					ok, err := confirmBatch(cmd, st)
					if err != nil || !ok {
						return err
					}
				}

				var decider batch.Decider
				if interactive {
					decider = terminalDecider(cmd.InOrStdin(), out)
				}

				orchestrator := batch.NewOrchestrator(cfg, st, batch.NewOutputPrinter(cfg), decider, logger)
				report, err := orchestrator.Run(runCtx, batch.Options{
					AutoNumber:    autoNumber || startNumber > 0,
					StartNumber:   startNumber,
					SheetMode:     sheetMode,
					DefaultLedger: strings.TrimSpace(ledgerFlag),
					DryRun:        dryRun,
				})
				if err != nil {
					return err
				}
				printReport(out, report)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&autoNumber, "auto-number", false, "Assign sequential check numbers from the profile counter")
	cmd.Flags().IntVar(&startNumber, "start-number", 0, "First check number to assign (implies --auto-number)")
	cmd.Flags().BoolVar(&sheetMode, "sheets", false, "Print consecutive checks together on physical sheets")
	cmd.Flags().StringVar(&ledgerFlag, "ledger", "", "Default ledger for items naming none (overrides config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and report without printing or committing")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// confirmBatch shows what the batch is about to do and asks for a go-ahead.
func confirmBatch(cmd *cobra.Command, st *store.Store) (bool, error) {
	items, err := st.ListQueue(cmd.Context())
	if err != nil {
		return false, err
	}
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "Queue is empty; nothing to print")
		return false, nil
	}

	total := money.Amount{}
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	fmt.Fprintf(out, "About to print %s checks totalling %s\n",
		displayPrinter.Sprintf("%d", len(items)), amountCell(total))
	fmt.Fprint(out, "Proceed? [y/N]: ")

	answer, err := readLine(cmd.InOrStdin())
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(out, "Batch cancelled")
		return false, nil
	}
	return true, nil
}

// terminalDecider escalates a print failure to the operator and blocks until
// they choose. Anything other than an explicit continue aborts.
func terminalDecider(in io.Reader, out io.Writer) batch.Decider {
	reader := bufio.NewReader(in)
	return batch.DecideFunc(func(ctx context.Context, prompt batch.PromptContext) (batch.Decision, error) {
		fmt.Fprintf(out, "\nPrint failed for %s: %v\n", describeFailedItems(prompt), prompt.Err)
		for {
			fmt.Fprint(out, "Continue with remaining checks, or abort? [c/a]: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return batch.DecisionAbort, err
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "c", "continue":
				return batch.DecisionContinue, nil
			case "a", "abort":
				return batch.DecisionAbort, nil
			}
			fmt.Fprintln(out, "Please answer c or a")
		}
	})
}

func describeFailedItems(prompt batch.PromptContext) string {
	if len(prompt.Payees) == 1 {
		label := prompt.Payees[0]
		if len(prompt.CheckNumbers) == 1 && prompt.CheckNumbers[0] != "" {
			label += " (check " + prompt.CheckNumbers[0] + ")"
		}
		return label
	}
	return fmt.Sprintf("sheet of %d checks (%s)", len(prompt.Payees), strings.Join(prompt.Payees, ", "))
}

func readLine(in io.Reader) (string, error) {
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func printReport(out io.Writer, report batch.Report) {
	rows := [][]string{
		{"Batch", report.BatchID},
		{"Processed", strconv.Itoa(report.Processed)},
		{"Failed", strconv.Itoa(report.Failed)},
		{"Skipped", strconv.Itoa(report.Skipped)},
		{"Attempted", strconv.Itoa(report.Attempted)},
		{"Cancelled", yesNo(report.Cancelled)},
		{"Dry run", yesNo(report.DryRun)},
	}
	table := renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft})
	fmt.Fprintln(out, table)
}
