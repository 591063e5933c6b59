package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a fixed-point currency value. Balances and check amounts are never
// represented as floats anywhere in the pipeline.
type Amount = decimal.Decimal

// Zero is the additive identity.
var Zero = decimal.Zero

// Parse converts a user-supplied amount string into an Amount. Leading dollar
// signs and grouping commas are tolerated because queue items arrive from
// spreadsheet-shaped sources.
func Parse(raw string) (Amount, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return amount, nil
}

// MustParse is a test and fixture helper; it panics on malformed input.
func MustParse(raw string) Amount {
	amount, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return amount
}

// String renders an amount with two fractional digits, the form stored in the
// database and printed on checks.
func String(a Amount) string {
	return a.StringFixed(2)
}
