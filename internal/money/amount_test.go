package money_test

import (
	"testing"

	"checkrun/internal/money"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		fails bool
	}{
		{name: "plain", input: "100.50", want: "100.50"},
		{name: "dollar sign", input: "$1,250.00", want: "1250.00"},
		{name: "negative", input: "-42.10", want: "-42.10"},
		{name: "whitespace", input: "  12 ", want: "12.00"},
		{name: "empty", input: "", fails: true},
		{name: "garbage", input: "twelve", fails: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := money.Parse(tc.input)
			if tc.fails {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.input, err)
			}
			if money.String(got) != tc.want {
				t.Fatalf("Parse(%q) = %s, want %s", tc.input, money.String(got), tc.want)
			}
		})
	}
}
