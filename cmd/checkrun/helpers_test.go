package main

import (
	"testing"

	"checkrun/internal/money"
)

func TestAmountCellGroupsThousands(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"7.5", "7.50"},
		{"999.99", "999.99"},
		{"1000", "1,000.00"},
		{"1234567.89", "1,234,567.89"},
		{"-1234567.89", "-1,234,567.89"},
		{"12345678901234567.89", "12,345,678,901,234,567.89"},
	}
	for _, tc := range cases {
		if got := amountCell(money.MustParse(tc.in)); got != tc.want {
			t.Fatalf("amountCell(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	if _, err := normalizeDate("2026-08-15"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	if _, err := normalizeDate("08/15/2026"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
	got, err := normalizeDate("  ")
	if err != nil {
		t.Fatalf("empty date should default: %v", err)
	}
	if len(got) != len("2006-01-02") {
		t.Fatalf("defaulted date %q is not ISO shaped", got)
	}
}
