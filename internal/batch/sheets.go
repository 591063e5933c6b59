package batch

import (
	"strings"

	"checkrun/internal/store"
)

// sheet is one physical page's worth of consecutive valid queue items, plus
// the invalid items encountered while assembling it. Skips ride with their
// sheet so an aborted run never consumes items past the abort point.
type sheet struct {
	index int
	items []store.QueueItem
	skips []itemSkip
}

// itemSkip is an invalid queue item paired with the reason it cannot print.
type itemSkip struct {
	item   store.QueueItem
	reason error
}

// validateItem reports why an item must be skipped, or nil if it is
// printable. Skipped items do not consume a check number and do not prompt
// the operator.
func validateItem(item store.QueueItem) error {
	if strings.TrimSpace(item.Payee) == "" {
		return errBlankPayee
	}
	if !item.Amount.IsPositive() {
		return errNonPositiveAmount
	}
	return nil
}

// packSheets walks the queue in order, packing valid items into sheets of up
// to slots items each. Invalid items attach to the sheet being assembled at
// their position, so the run loop records them as skipped only once it
// actually reaches that sheet. Order is preserved; items are never reordered
// across sheets. "Slot is empty" is the only criterion that leaves a sheet
// partially filled.
func packSheets(items []store.QueueItem, slots int) []sheet {
	if slots < 1 {
		slots = 1
	}
	var sheets []sheet
	current := sheet{index: 0}
	for _, item := range items {
		if err := validateItem(item); err != nil {
			current.skips = append(current.skips, itemSkip{item: item, reason: err})
			continue
		}
		current.items = append(current.items, item)
		if len(current.items) == slots {
			sheets = append(sheets, current)
			current = sheet{index: current.index + 1}
		}
	}
	if len(current.items) > 0 || len(current.skips) > 0 {
		sheets = append(sheets, current)
	}
	return sheets
}
