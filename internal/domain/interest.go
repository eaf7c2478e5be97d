package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	// 30-day-month convention: monthly percent -> daily fraction divides by 100*30.
	threeThousand = decimal.NewFromInt(3000)
)

// ProjectedInterestAtMaturity computes simple interest over the full term:
// principal x monthlyRatePercent/100 x term. No compounding, no rounding.
func ProjectedInterestAtMaturity(principal, monthlyRatePercent decimal.Decimal, term TermMonths) decimal.Decimal {
	return principal.
		Mul(monthlyRatePercent).
		Mul(decimal.NewFromInt(int64(term))).
		Div(hundred)
}

// AccruedInterestByElapsedDays estimates interest earned from openingDate to
// asOf using whole elapsed days and a 30-day-month convention. It is a
// day-count estimate for display, not a final ledger figure.
func AccruedInterestByElapsedDays(principal, monthlyRatePercent decimal.Decimal, openingDate, asOf time.Time) decimal.Decimal {
	days := elapsedDays(openingDate, asOf)
	return principal.
		Mul(monthlyRatePercent).
		Mul(decimal.NewFromInt(days)).
		Div(threeThousand)
}

// elapsedDays returns the whole days between open and asOf, floored at zero.
func elapsedDays(open, asOf time.Time) int64 {
	d := int64(asOf.Sub(open).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
