package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"checkrun/internal/config"
	"checkrun/internal/money"
	"checkrun/internal/store"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the pending check queue",
	}

	queueCmd.AddCommand(newQueueAddCommand(ctx))
	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueRemoveCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))

	return queueCmd
}

func newQueueAddCommand(ctx *commandContext) *cobra.Command {
	var (
		payee       string
		amountFlag  string
		dateFlag    string
		memo        string
		ledgerName  string
		checkNumber string
		glCode      string
		glDesc      string
		lineFlags   []string
		jsonFlag    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Enqueue a check for the next batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			var pending store.QueueItem
			if strings.TrimSpace(jsonFlag) != "" {
				parsed, err := queueItemFromJSON(jsonFlag)
				if err != nil {
					return err
				}
				pending = parsed
			} else {
				if strings.TrimSpace(payee) == "" {
					return errors.New("--payee is required")
				}
				amount, err := money.Parse(amountFlag)
				if err != nil {
					return fmt.Errorf("parse --amount: %w", err)
				}
				lines, err := parseLineItems(lineFlags)
				if err != nil {
					return err
				}
				pending = store.QueueItem{
					Date:          dateFlag,
					Payee:         strings.TrimSpace(payee),
					Amount:        amount,
					Memo:          strings.TrimSpace(memo),
					LineItems:     lines,
					LedgerName:    strings.TrimSpace(ledgerName),
					CheckNumber:   strings.TrimSpace(checkNumber),
					GLCode:        strings.TrimSpace(glCode),
					GLDescription: strings.TrimSpace(glDesc),
				}
			}

			date, err := normalizeDate(pending.Date)
			if err != nil {
				return err
			}
			pending.Date = date

			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				item, err := st.Enqueue(cmd.Context(), pending)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Enqueued item %d: %s %s\n", item.ID, item.Payee, money.String(item.Amount))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&payee, "payee", "", "Payee name (required)")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "Check amount (required)")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Check date as YYYY-MM-DD (defaults to today)")
	cmd.Flags().StringVar(&memo, "memo", "", "Memo printed on the check")
	cmd.Flags().StringVar(&ledgerName, "ledger", "", "Ledger to draw against (defaults to the configured ledger)")
	cmd.Flags().StringVar(&checkNumber, "number", "", "Declared check number (ignored when the batch auto-numbers)")
	cmd.Flags().StringVar(&glCode, "gl-code", "", "General ledger code")
	cmd.Flags().StringVar(&glDesc, "gl-description", "", "General ledger description")
	cmd.Flags().StringArrayVar(&lineFlags, "line", nil, "Invoice line as description=amount (repeatable)")
	cmd.Flags().StringVar(&jsonFlag, "json", "", "Full item as a JSON object (overrides the other flags)")
	return cmd
}

type queueItemPayload struct {
	Date          string `json:"date"`
	Payee         string `json:"payee"`
	Amount        string `json:"amount"`
	Memo          string `json:"memo"`
	ExternalMemo  string `json:"external_memo"`
	InternalMemo  string `json:"internal_memo"`
	Ledger        string `json:"ledger"`
	CheckNumber   string `json:"check_number"`
	GLCode        string `json:"gl_code"`
	GLDescription string `json:"gl_description"`
	LineItems     []struct {
		Description string `json:"description"`
		Amount      string `json:"amount"`
	} `json:"line_items"`
}

func queueItemFromJSON(raw string) (store.QueueItem, error) {
	var payload queueItemPayload
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		return store.QueueItem{}, fmt.Errorf("parse --json: %w", err)
	}
	if strings.TrimSpace(payload.Payee) == "" {
		return store.QueueItem{}, errors.New("--json item is missing a payee")
	}
	amount, err := money.Parse(payload.Amount)
	if err != nil {
		return store.QueueItem{}, fmt.Errorf("parse --json amount: %w", err)
	}
	item := store.QueueItem{
		Date:          payload.Date,
		Payee:         strings.TrimSpace(payload.Payee),
		Amount:        amount,
		Memo:          strings.TrimSpace(payload.Memo),
		ExternalMemo:  strings.TrimSpace(payload.ExternalMemo),
		InternalMemo:  strings.TrimSpace(payload.InternalMemo),
		LedgerName:    strings.TrimSpace(payload.Ledger),
		CheckNumber:   strings.TrimSpace(payload.CheckNumber),
		GLCode:        strings.TrimSpace(payload.GLCode),
		GLDescription: strings.TrimSpace(payload.GLDescription),
	}
	for _, line := range payload.LineItems {
		lineAmount, err := money.Parse(line.Amount)
		if err != nil {
			return store.QueueItem{}, fmt.Errorf("parse --json line item: %w", err)
		}
		item.LineItems = append(item.LineItems, store.LineItem{
			Description: strings.TrimSpace(line.Description),
			Amount:      lineAmount,
		})
	}
	return item, nil
}

func parseLineItems(raw []string) ([]store.LineItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	lines := make([]store.LineItem, 0, len(raw))
	for _, entry := range raw {
		desc, amountStr, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --line %q (expected description=amount)", entry)
		}
		amount, err := money.Parse(amountStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --line %q: %w", entry, err)
		}
		lines = append(lines, store.LineItem{
			Description: strings.TrimSpace(desc),
			Amount:      amount,
		})
	}
	return lines, nil
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending checks in batch order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				items, err := st.ListQueue(cmd.Context())
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}

				rows := make([][]string, 0, len(items))
				for _, item := range items {
					ledgerName := item.LedgerName
					if ledgerName == "" {
						ledgerName = cfg.Batch.DefaultLedger + " (default)"
					}
					rows = append(rows, []string{
						strconv.FormatInt(item.ID, 10),
						item.Date,
						truncateCell(item.Payee, 32),
						amountCell(item.Amount),
						ledgerName,
						item.CheckNumber,
					})
				}
				table := renderTable(
					[]string{"ID", "Date", "Payee", "Amount", "Ledger", "Number"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignRight},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func newQueueRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>...",
		Short: "Remove specific items from the queue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid item id %q", arg)
				}
				ids = append(ids, id)
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				removed, err := st.RemoveQueueItems(cmd.Context(), ids...)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d queue items\n", removed)
				return nil
			})
		},
	}
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every pending item",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				removed, err := st.ClearQueue(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d queue items\n", removed)
				return nil
			})
		},
	}
}
