package batch

import (
	"testing"

	"checkrun/internal/money"
	"checkrun/internal/store"
)

func validItem(id int64, payee string) store.QueueItem {
	return store.QueueItem{ID: id, Payee: payee, Amount: money.MustParse("10")}
}

func TestPackSheetsSplitsSevenItemsIntoThreeSheets(t *testing.T) {
	items := make([]store.QueueItem, 0, 7)
	for i := int64(1); i <= 7; i++ {
		items = append(items, validItem(i, "Payee"))
	}

	sheets := packSheets(items, 3)
	if len(sheets) != 3 {
		t.Fatalf("sheets = %d, want 3", len(sheets))
	}
	for i, want := range []int{3, 3, 1} {
		if len(sheets[i].items) != want {
			t.Fatalf("sheet %d has %d items, want %d", i, len(sheets[i].items), want)
		}
	}
}

func TestPackSheetsPreservesQueueOrder(t *testing.T) {
	items := []store.QueueItem{
		validItem(1, "A"), validItem(2, "B"), validItem(3, "C"), validItem(4, "D"),
	}

	sheets := packSheets(items, 3)
	var got []int64
	for _, sh := range sheets {
		for _, item := range sh.items {
			got = append(got, item.ID)
		}
	}
	for i, id := range []int64{1, 2, 3, 4} {
		if got[i] != id {
			t.Fatalf("position %d = %d, want %d", i, got[i], id)
		}
	}
}

func TestPackSheetsSkipsInvalidItemsWithoutLeavingGaps(t *testing.T) {
	items := []store.QueueItem{
		validItem(1, "A"),
		{ID: 2, Payee: "", Amount: money.MustParse("10")},
		{ID: 3, Payee: "C", Amount: money.MustParse("0")},
		validItem(4, "D"),
		validItem(5, "E"),
	}

	sheets := packSheets(items, 3)
	if len(sheets) != 1 {
		t.Fatalf("sheets = %d, want 1 (valid items pack together)", len(sheets))
	}
	if len(sheets[0].items) != 3 {
		t.Fatalf("sheet 0 has %d items, want 3", len(sheets[0].items))
	}
	var skipped []int64
	for _, skip := range sheets[0].skips {
		skipped = append(skipped, skip.item.ID)
	}
	if len(skipped) != 2 || skipped[0] != 2 || skipped[1] != 3 {
		t.Fatalf("skipped = %v, want [2 3]", skipped)
	}
}

func TestPackSheetsAttachesSkipsToTheSheetInProgress(t *testing.T) {
	items := []store.QueueItem{
		validItem(1, "A"), validItem(2, "B"), validItem(3, "C"),
		{ID: 4, Payee: "", Amount: money.MustParse("10")},
		validItem(5, "E"),
	}

	sheets := packSheets(items, 3)
	if len(sheets) != 2 {
		t.Fatalf("sheets = %d, want 2", len(sheets))
	}
	if len(sheets[0].skips) != 0 {
		t.Fatalf("sheet 0 carries %d skips, want 0", len(sheets[0].skips))
	}
	if len(sheets[1].skips) != 1 || sheets[1].skips[0].item.ID != 4 {
		t.Fatalf("sheet 1 skips = %+v, want item 4", sheets[1].skips)
	}
	if len(sheets[1].items) != 1 || sheets[1].items[0].ID != 5 {
		t.Fatalf("sheet 1 items = %+v, want item 5", sheets[1].items)
	}
}

func TestPackSheetsKeepsTrailingInvalidItems(t *testing.T) {
	items := []store.QueueItem{
		validItem(1, "A"), validItem(2, "B"), validItem(3, "C"),
		{ID: 4, Payee: "", Amount: money.MustParse("10")},
	}

	sheets := packSheets(items, 3)
	if len(sheets) != 2 {
		t.Fatalf("sheets = %d, want 2", len(sheets))
	}
	if len(sheets[1].items) != 0 {
		t.Fatalf("trailing sheet has %d printable items, want 0", len(sheets[1].items))
	}
	if len(sheets[1].skips) != 1 || sheets[1].skips[0].item.ID != 4 {
		t.Fatalf("trailing sheet skips = %+v, want item 4", sheets[1].skips)
	}
}

func TestValidateItem(t *testing.T) {
	cases := []struct {
		name string
		item store.QueueItem
		ok   bool
	}{
		{"valid", validItem(1, "Acme"), true},
		{"blank payee", store.QueueItem{ID: 2, Payee: "   ", Amount: money.MustParse("10")}, false},
		{"zero amount", store.QueueItem{ID: 3, Payee: "Acme", Amount: money.Zero}, false},
		{"negative amount", store.QueueItem{ID: 4, Payee: "Acme", Amount: money.MustParse("-5")}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateItem(tc.item)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
