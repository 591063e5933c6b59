package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"checkrun/internal/config"
	"checkrun/internal/history"
	"checkrun/internal/money"
	"checkrun/internal/store"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect committed check history",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryVoidCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var ledgerFilter string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List history records, newest last",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				var records []history.Record
				var err error
				if name := strings.TrimSpace(ledgerFilter); name != "" {
					l, findErr := st.FindLedgerByName(cmd.Context(), name)
					if findErr != nil {
						return findErr
					}
					if l == nil {
						return fmt.Errorf("ledger %q not found", name)
					}
					records, err = st.ListHistoryForLedger(cmd.Context(), l.ID)
				} else {
					records, err = st.ListHistory(cmd.Context())
				}
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "History is empty")
					return nil
				}
				if limit > 0 && len(records) > limit {
					records = records[len(records)-limit:]
				}

				ledgerNames, err := ledgerNameIndex(cmd, st)
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					rows = append(rows, []string{
						rec.ID,
						string(rec.Type),
						rec.Date,
						truncateCell(rec.Payee, 32),
						amountCell(rec.Amount),
						ledgerNames[rec.LedgerID],
						rec.CheckNumber,
						amountCell(rec.Snapshot.NewBalance),
						yesNo(rec.Void),
					})
				}
				table := renderTable(
					[]string{"ID", "Type", "Date", "Payee", "Amount", "Ledger", "Number", "Balance", "Void"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&ledgerFilter, "ledger", "", "Show only records for the named ledger")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the most recent N records")
	return cmd
}

func ledgerNameIndex(cmd *cobra.Command, st *store.Store) (map[string]string, error) {
	ledgers, err := st.ListLedgers(cmd.Context())
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(ledgers))
	for _, l := range ledgers {
		names[l.ID] = l.Name
	}
	return names, nil
}

func newHistoryVoidCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "void <record-id>",
		Short: "Void a record with an offsetting adjustment",
		Long: "Void a committed record. History is append-only, so voiding marks the\n" +
			"original record and appends an offsetting adjustment that restores the\n" +
			"ledger balance. Nothing is ever deleted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				adjustment, err := st.VoidRecord(cmd.Context(), strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Voided record; adjustment %s restores %s\n",
					adjustment.ID, money.String(adjustment.Amount))
				return nil
			})
		},
	}
}
