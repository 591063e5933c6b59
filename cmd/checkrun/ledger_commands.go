package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"checkrun/internal/config"
	"checkrun/internal/ledger"
	"checkrun/internal/money"
	"checkrun/internal/store"
)

func newLedgerCommand(ctx *commandContext) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect and manage ledgers",
	}

	ledgerCmd.AddCommand(newLedgerListCommand(ctx))
	ledgerCmd.AddCommand(newLedgerAddCommand(ctx))

	return ledgerCmd
}

func newLedgerListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ledgers with their derived balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				ledgers, err := st.ListLedgers(cmd.Context())
				if err != nil {
					return err
				}
				if len(ledgers) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No ledgers defined")
					return nil
				}
				records, err := st.ListHistory(cmd.Context())
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(ledgers))
				for _, l := range ledgers {
					rows = append(rows, []string{
						l.Name,
						amountCell(l.StartingBalance),
						amountCell(ledger.Project(l, records)),
						yesNo(l.LockStart),
					})
				}
				table := renderTable(
					[]string{"Ledger", "Starting", "Balance", "Locked"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func newLedgerAddCommand(ctx *commandContext) *cobra.Command {
	var startingFlag string
	var lockStart bool

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return errors.New("ledger name is required")
			}
			starting := money.Amount{}
			if strings.TrimSpace(startingFlag) != "" {
				parsed, err := money.Parse(startingFlag)
				if err != nil {
					return fmt.Errorf("parse --starting-balance: %w", err)
				}
				starting = parsed
			}

			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				existing, err := st.FindLedgerByName(cmd.Context(), name)
				if err != nil {
					return err
				}
				if existing != nil {
					return fmt.Errorf("ledger %q already exists", existing.Name)
				}
				l := ledger.Ledger{
					ID:              uuid.NewString(),
					Name:            name,
					StartingBalance: starting,
					LockStart:       lockStart,
				}
				if err := st.InsertLedger(cmd.Context(), l); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created ledger %s with starting balance %s\n", l.Name, money.String(l.StartingBalance))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&startingFlag, "starting-balance", "", "Starting balance (defaults to 0)")
	cmd.Flags().BoolVar(&lockStart, "lock-start", false, "Freeze the starting balance against later edits")
	return cmd
}
