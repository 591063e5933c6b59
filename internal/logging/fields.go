package logging

// Standardized attribute keys shared across components so log output stays
// greppable regardless of which part of the pipeline emitted it.
const (
	FieldComponent   = "component"
	FieldEventType   = "event_type"
	FieldBatchID     = "batch_id"
	FieldItemID      = "item_id"
	FieldSheetIndex  = "sheet_index"
	FieldLedger      = "ledger"
	FieldLedgerID    = "ledger_id"
	FieldCheckNumber = "check_number"
	FieldPayee       = "payee"
	FieldAmount      = "amount"
	FieldErrorKind   = "error_kind"
	FieldErrorHint   = "error_hint"
	FieldDecision    = "decision"
)
