package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestRateNormalizer_MonthlyRatePercent(t *testing.T) {
	tests := []struct {
		name    string
		account *TermDepositAccount
		want    decimal.Decimal
	}{
		{
			name: "monthly companion field wins verbatim",
			account: &TermDepositAccount{
				Currency:            CurrencyHTG,
				Term:                TermTwelveMonths,
				InterestRate:        decPtr("18"),
				InterestRateMonthly: decPtr("1.5"),
			},
			want: dec("1.5"),
		},
		{
			name: "annual rate divided by twelve",
			account: &TermDepositAccount{
				Currency:     CurrencyHTG,
				Term:         TermTwelveMonths,
				InterestRate: decPtr("18"),
			},
			want: dec("1.5"),
		},
		{
			name: "zero monthly field falls through to annual",
			account: &TermDepositAccount{
				Currency:            CurrencyHTG,
				Term:                TermSixMonths,
				InterestRate:        decPtr("6"),
				InterestRateMonthly: decPtr("0"),
			},
			want: dec("0.5"),
		},
		{
			name: "no stored rate falls back to the table",
			account: &TermDepositAccount{
				Currency: CurrencyUSD,
				Term:     TermTwelveMonths,
			},
			want: dec("2.25").Div(decimal.NewFromInt(12)),
		},
		{
			name:    "nil account yields zero",
			account: nil,
			want:    decimal.Zero,
		},
		{
			name: "unknown term with no stored rate yields zero",
			account: &TermDepositAccount{
				Currency: CurrencyHTG,
				Term:     TermMonths(9),
			},
			want: decimal.Zero,
		},
	}

	n := NewRateNormalizer(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.MonthlyRatePercent(tt.account)
			if !got.Equal(tt.want) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRateNormalizer_InjectedTable(t *testing.T) {
	table := RateTable{
		TermThreeMonths: {CurrencyHTG: dec("0.9")},
	}
	n := NewRateNormalizer(table)

	got := n.MonthlyRatePercent(&TermDepositAccount{Currency: CurrencyHTG, Term: TermThreeMonths})
	if !got.Equal(dec("0.9")) {
		t.Fatalf("expected injected table rate 0.9, got %s", got)
	}
}
