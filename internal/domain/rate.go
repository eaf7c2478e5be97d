package domain

import "github.com/shopspring/decimal"

// RateTable holds the configured fallback monthly rates (in percent) keyed by
// term and currency, used when an account carries no usable rate of its own.
type RateTable map[TermMonths]map[Currency]decimal.Decimal

var twelve = decimal.NewFromInt(12)

// DefaultRateTable returns the branch-network default grid. Values are the
// published annual percentages divided by twelve.
func DefaultRateTable() RateTable {
	annual := map[TermMonths]map[Currency]float64{
		TermThreeMonths:      {CurrencyHTG: 2.5, CurrencyUSD: 1.25},
		TermSixMonths:        {CurrencyHTG: 3.5, CurrencyUSD: 1.75},
		TermTwelveMonths:     {CurrencyHTG: 4.5, CurrencyUSD: 2.25},
		TermTwentyFourMonths: {CurrencyHTG: 5.5, CurrencyUSD: 2.75},
	}

	table := make(RateTable, len(annual))
	for term, byCurrency := range annual {
		table[term] = make(map[Currency]decimal.Decimal, len(byCurrency))
		for currency, pct := range byCurrency {
			table[term][currency] = decimal.NewFromFloat(pct).Div(twelve)
		}
	}
	return table
}

// RateNormalizer resolves the ambiguous stored rate of an account into one
// canonical monthly percentage. The table is injected so tests and per-branch
// deployments can substitute their own grid.
type RateNormalizer struct {
	table RateTable
}

// NewRateNormalizer creates a RateNormalizer. A nil table selects the default grid.
func NewRateNormalizer(table RateTable) *RateNormalizer {
	if table == nil {
		table = DefaultRateTable()
	}
	return &RateNormalizer{table: table}
}

// MonthlyRatePercent returns the canonical monthly rate in percent.
// Precedence: the monthly-rate companion field verbatim, then the annual-style
// stored rate divided by twelve, then the configured table. Total: missing or
// zero input yields zero, never an error.
func (n *RateNormalizer) MonthlyRatePercent(a *TermDepositAccount) decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}

	if a.InterestRateMonthly != nil && !a.InterestRateMonthly.IsZero() {
		return *a.InterestRateMonthly
	}

	if a.InterestRate != nil && !a.InterestRate.IsZero() {
		return a.InterestRate.Div(twelve)
	}

	if byCurrency, ok := n.table[a.Term]; ok {
		if rate, ok := byCurrency[a.Currency]; ok {
			return rate
		}
	}
	return decimal.Zero
}
