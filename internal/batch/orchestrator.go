package batch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"checkrun/internal/config"
	"checkrun/internal/history"
	"checkrun/internal/ledger"
	"checkrun/internal/logging"
	"checkrun/internal/money"
	"checkrun/internal/services"
	"checkrun/internal/store"
)

// Options carries the batch parameters the operator confirms before Running.
type Options struct {
	// AutoNumber assigns sequential check numbers instead of using each
	// item's declared number.
	AutoNumber bool
	// StartNumber is the first auto-assigned number. Zero means continue
	// from the active profile's counter.
	StartNumber int
	// SheetMode prints groups of consecutive items as single physical
	// sheets instead of one document per item.
	SheetMode bool
	// DefaultLedger overrides the configured ledger for items naming none.
	DefaultLedger string
	// DryRun validates and reports without printing or committing.
	DryRun bool
}

// Report is the terminal outcome of a batch run, produced regardless of how
// the run ended.
type Report struct {
	BatchID   string
	Processed int
	Failed    int
	Skipped   int
	Attempted int
	Cancelled bool
	DryRun    bool
}

// Orchestrator drives one batch run through its phases. It owns no long-lived
// state: every Run builds a fresh private Session.
type Orchestrator struct {
	cfg     *config.Config
	store   *store.Store
	printer Printer
	decider Decider
	logger  *slog.Logger

	phase Phase
}

// NewOrchestrator wires the pipeline's collaborators together.
func NewOrchestrator(cfg *config.Config, st *store.Store, printer Printer, decider Decider, logger *slog.Logger) *Orchestrator {
	if decider == nil {
		decider = AbortDecider()
	}
	return &Orchestrator{
		cfg:     cfg,
		store:   st,
		printer: printer,
		decider: decider,
		logger:  logging.NewComponentLogger(logger, "orchestrator"),
		phase:   PhaseIdle,
	}
}

// Phase returns the current lifecycle phase.
func (o *Orchestrator) Phase() Phase {
	return o.phase
}

// Preflight validates that a batch may start at all: output configuration
// must be present. This is fatal and non-retryable within a run; the operator
// must fix configuration before Running can begin.
func (o *Orchestrator) Preflight() error {
	if err := o.cfg.ValidatePrintOutput(); err != nil {
		return services.Wrap(services.ErrConfiguration, "batch", "preflight", err.Error(), nil)
	}
	return nil
}

// Run executes one complete batch: Confirming, Running (the per-item or
// per-sheet loop), Committing, and a terminal report. Print failures and
// validation skips are contained here; the only error Run returns before the
// loop starts is a configuration problem, and errors after the loop are
// commit failures.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (Report, error) {
	o.phase = PhaseConfirming
	if err := o.Preflight(); err != nil {
		o.phase = PhaseIdle
		return Report{}, err
	}

	snap, err := o.store.Snapshot(ctx)
	if err != nil {
		o.phase = PhaseIdle
		return Report{}, fmt.Errorf("load batch snapshot: %w", err)
	}
	if len(snap.Queue) == 0 {
		o.phase = PhaseCompleted
		return Report{DryRun: opts.DryRun}, nil
	}

	batchID := uuid.NewString()
	logger := o.logger.With(logging.String(logging.FieldBatchID, batchID))

	resolver, session := o.initSession(batchID, snap, opts)
	startNumber := opts.StartNumber
	if startNumber <= 0 {
		startNumber = snap.Profile.NextCheckNumber
	}
	allocator := NewNumberAllocator(opts.AutoNumber, startNumber)

	o.phase = PhaseRunning
	logger.Info("batch started",
		logging.String(logging.FieldEventType, "batch_start"),
		logging.Int("queue_length", len(snap.Queue)),
		logging.Bool("sheet_mode", opts.SheetMode),
		logging.Bool("auto_number", opts.AutoNumber),
		logging.Bool("dry_run", opts.DryRun),
	)

	if opts.SheetMode {
		o.runSheets(ctx, logger, snap, session, resolver, allocator, opts)
	} else {
		o.runItems(ctx, logger, snap, session, resolver, allocator, opts)
	}

	report := Report{
		BatchID:   batchID,
		Processed: len(session.ProcessedIDs),
		Failed:    len(session.FailedIDs),
		Skipped:   len(session.SkippedIDs),
		Attempted: len(session.ProcessedIDs) + len(session.FailedIDs),
		Cancelled: session.Cancelled,
		DryRun:    opts.DryRun,
	}

	if opts.DryRun {
		o.phase = PhaseCompleted
		logger.Info("dry run finished",
			logging.String(logging.FieldEventType, "batch_dry_run"),
			logging.Int("processed", report.Processed),
			logging.Int("skipped", report.Skipped),
		)
		return report, nil
	}

	o.phase = PhaseCommitting
	if err := o.store.ApplyCommit(ctx, session.commitSet(snap.Profile.ID)); err != nil {
		o.phase = PhaseIdle
		return report, fmt.Errorf("commit batch results: %w", err)
	}

	if session.Cancelled {
		o.phase = PhaseCancelled
	} else {
		o.phase = PhaseCompleted
	}
	logger.Info("batch finished",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("processed", report.Processed),
		logging.Int("failed", report.Failed),
		logging.Int("skipped", report.Skipped),
		logging.Bool("cancelled", report.Cancelled),
	)
	return report, nil
}

// initSession builds the resolver and seeds the session. The default ledger
// is resolved through the same path as item ledgers so a missing default is
// created inside the session rather than up front.
func (o *Orchestrator) initSession(batchID string, snap *store.Snapshot, opts Options) (*ledger.Resolver, *Session) {
	defaultName := strings.TrimSpace(opts.DefaultLedger)
	if defaultName == "" {
		defaultName = o.cfg.Batch.DefaultLedger
	}

	resolver := ledger.NewResolver("", snap.Ledgers)
	var sessionNew []ledger.Ledger
	defaultID, sessionNew := resolver.Resolve(defaultName, sessionNew)
	resolver.DefaultID = defaultID

	displayName := defaultName
	for _, l := range snap.Ledgers {
		if l.ID == defaultID {
			displayName = l.Name
			break
		}
	}

	session := newSession(batchID, snap, resolver)
	session.NewLedgers = sessionNew
	session.DefaultLedgerName = displayName
	return resolver, session
}

// runItems is the standard-mode loop: one queue item per iteration.
func (o *Orchestrator) runItems(ctx context.Context, logger *slog.Logger, snap *store.Snapshot, session *Session, resolver *ledger.Resolver, allocator *NumberAllocator, opts Options) {
	for _, item := range snap.Queue {
		if ctx.Err() != nil {
			session.Cancelled = true
			return
		}

		if err := validateItem(item); err != nil {
			o.recordSkip(logger, session, item, err)
			continue
		}

		check := o.prepareCheck(session, resolver, allocator, item, map[string]money.Amount{})
		doc := Document{BatchID: session.BatchID, Checks: []RenderedCheck{check}}
		filename := documentFilename(session.BatchID, len(session.ProcessedIDs)+len(session.FailedIDs), check.CheckNumber)

		if opts.DryRun {
			o.commitChecks(session, snap.Profile.ID, doc.Checks)
			continue
		}

		if err := o.printer.Print(ctx, doc, filename); err != nil {
			if o.handlePrintFailure(ctx, logger, session, doc, err) == DecisionAbort {
				session.Cancelled = true
				return
			}
			continue
		}

		o.commitChecks(session, snap.Profile.ID, doc.Checks)
		logger.Info("check printed",
			logging.String(logging.FieldEventType, "item_printed"),
			logging.Int64(logging.FieldItemID, item.ID),
			logging.String(logging.FieldPayee, item.Payee),
			logging.String(logging.FieldCheckNumber, check.CheckNumber),
		)
	}
}

// runSheets is the three-up loop: consecutive valid items are packed into
// sheets and each sheet prints as one document. A failed sheet fails every
// item on it. Skips are recorded sheet by sheet, not up front, so an abort
// leaves every item past the aborted sheet in the queue, invalid ones
// included.
func (o *Orchestrator) runSheets(ctx context.Context, logger *slog.Logger, snap *store.Snapshot, session *Session, resolver *ledger.Resolver, allocator *NumberAllocator, opts Options) {
	sheets := packSheets(snap.Queue, o.cfg.Batch.SheetSlots)

	for _, sh := range sheets {
		if ctx.Err() != nil {
			session.Cancelled = true
			return
		}

		for _, skip := range sh.skips {
			o.recordSkip(logger, session, skip.item, skip.reason)
		}
		if len(sh.items) == 0 {
			continue
		}

		// Checks on one sheet chain their balance snapshots through a
		// pending overlay; the session's running balances move only if the
		// whole sheet prints.
		pending := map[string]money.Amount{}
		doc := Document{BatchID: session.BatchID, SheetIndex: sh.index}
		for _, item := range sh.items {
			doc.Checks = append(doc.Checks, o.prepareCheck(session, resolver, allocator, item, pending))
		}
		filename := sheetFilename(session.BatchID, sh.index)

		if opts.DryRun {
			o.commitChecks(session, snap.Profile.ID, doc.Checks)
			continue
		}

		if err := o.printer.Print(ctx, doc, filename); err != nil {
			if o.handlePrintFailure(ctx, logger, session, doc, err) == DecisionAbort {
				session.Cancelled = true
				return
			}
			continue
		}

		o.commitChecks(session, snap.Profile.ID, doc.Checks)
		logger.Info("sheet printed",
			logging.String(logging.FieldEventType, "sheet_printed"),
			logging.Int(logging.FieldSheetIndex, sh.index),
			logging.Int("checks", len(doc.Checks)),
		)
	}
}

// prepareCheck resolves the item's ledger, reads the running balance, and
// fixes the balance snapshot before the print call, so the physical output
// always reflects the balance as of this batch. The check number is consumed
// here: a later print failure does not give it back.
func (o *Orchestrator) prepareCheck(session *Session, resolver *ledger.Resolver, allocator *NumberAllocator, item store.QueueItem, pending map[string]money.Amount) RenderedCheck {
	ledgerID, sessionNew := resolver.Resolve(item.LedgerName, session.NewLedgers)
	session.NewLedgers = sessionNew

	previous, ok := pending[ledgerID]
	if !ok {
		previous = session.balanceFor(ledgerID)
	}
	newBalance := previous.Sub(item.Amount)
	pending[ledgerID] = newBalance

	ledgerName := strings.TrimSpace(item.LedgerName)
	if ledgerName == "" {
		ledgerName = session.DefaultLedgerName
	}

	return RenderedCheck{
		ItemID:      item.ID,
		LedgerID:    ledgerID,
		CheckNumber: allocator.Next(item.CheckNumber),
		Date:        item.Date,
		Payee:       item.Payee,
		Amount:      item.Amount,
		Memo:        item.Memo,
		LedgerName:  ledgerName,
		LineItems:   item.LineItems,
		Snapshot: history.LedgerSnapshot{
			PreviousBalance:   previous,
			TransactionAmount: item.Amount.Neg(),
			NewBalance:        newBalance,
		},
	}
}

// commitChecks accumulates successfully printed checks into the session and
// advances running balances. Nothing touches the live store here.
func (o *Orchestrator) commitChecks(session *Session, profileID string, checks []RenderedCheck) {
	now := time.Now().UTC()
	for _, check := range checks {
		session.Processed = append(session.Processed, history.Record{
			ID:          uuid.NewString(),
			Type:        history.TypeCheck,
			Date:        check.Date,
			Payee:       check.Payee,
			Amount:      check.Amount,
			LedgerID:    check.LedgerID,
			ProfileID:   profileID,
			CheckNumber: check.CheckNumber,
			Snapshot:    check.Snapshot,
			Timestamp:   now,
		})
		session.ProcessedIDs = append(session.ProcessedIDs, check.ItemID)
		session.RunningBalances[check.LedgerID] = check.Snapshot.NewBalance
	}
}

func (o *Orchestrator) handlePrintFailure(ctx context.Context, logger *slog.Logger, session *Session, doc Document, printErr error) Decision {
	prompt := PromptContext{BatchID: session.BatchID, Err: printErr}
	for _, check := range doc.Checks {
		prompt.ItemIDs = append(prompt.ItemIDs, check.ItemID)
		prompt.Payees = append(prompt.Payees, check.Payee)
		prompt.CheckNumbers = append(prompt.CheckNumbers, check.CheckNumber)
	}

	attrs := []logging.Attr{
		logging.Error(printErr),
		logging.String(logging.FieldEventType, "print_failure"),
		logging.String(logging.FieldErrorKind, string(services.KindOf(printErr))),
		logging.Any("item_ids", prompt.ItemIDs),
	}
	if details, ok := services.Details(printErr); ok {
		attrs = append(attrs, logging.String(logging.FieldErrorHint, details.Operation))
	}
	logger.Error("print failed", logging.Args(attrs...)...)

	decision, err := o.decider.Decide(ctx, prompt)
	if err != nil {
		logger.Warn("decision prompt failed, treating as abort", logging.Error(err))
		decision = DecisionAbort
	}
	logger.Info("operator decision",
		logging.String(logging.FieldEventType, "failure_decision"),
		logging.String(logging.FieldDecision, decisionLabel(decision)),
	)

	// The failed item is consumed either way: on abort, only the unattempted
	// remainder stays in the queue.
	session.FailedIDs = append(session.FailedIDs, prompt.ItemIDs...)
	return decision
}

func (o *Orchestrator) recordSkip(logger *slog.Logger, session *Session, item store.QueueItem, reason error) {
	session.SkippedIDs = append(session.SkippedIDs, item.ID)
	logger.Warn("item skipped",
		logging.String(logging.FieldEventType, "item_skipped"),
		logging.Int64(logging.FieldItemID, item.ID),
		logging.Error(reason),
	)
}

func decisionLabel(d Decision) string {
	if d == DecisionAbort {
		return "abort"
	}
	return "continue"
}

func documentFilename(batchID string, index int, checkNumber string) string {
	if checkNumber != "" {
		return fmt.Sprintf("%s-check-%s.txt", batchID, checkNumber)
	}
	return fmt.Sprintf("%s-item-%03d.txt", batchID, index)
}

func sheetFilename(batchID string, index int) string {
	return fmt.Sprintf("%s-sheet-%02d.txt", batchID, index+1)
}
