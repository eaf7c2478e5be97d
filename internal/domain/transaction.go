package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CanonicalType is the normalized transaction direction.
type CanonicalType string

const (
	TypeDeposit    CanonicalType = "DEPOSIT"
	TypeWithdrawal CanonicalType = "WITHDRAWAL"
	TypeOther      CanonicalType = "OTHER"
)

// CanonicalStatus is the normalized transaction status. Unrecognized
// upstream values pass through as-is, so callers must treat the type as
// open-ended and compare against the constants below.
type CanonicalStatus string

const (
	StatusPending    CanonicalStatus = "PENDING"
	StatusProcessing CanonicalStatus = "PROCESSING"
	StatusCompleted  CanonicalStatus = "COMPLETED"
	StatusCancelled  CanonicalStatus = "CANCELLED"
	StatusFailed     CanonicalStatus = "FAILED"
)

// TransactionRecord is the canonical form of an upstream ledger movement.
// RawType and RawStatus keep the upstream encoding verbatim; the canonical
// type and status are always recomputed from them by the Classifier, never
// stored, so a vocabulary change takes effect on the next pass.
type TransactionRecord struct {
	ID            string
	Reference     string
	Description   string
	AccountNumber string
	BranchName    string
	PerformedBy   string

	Amount          decimal.Decimal
	Currency        Currency
	TransactionDate time.Time

	RawType   string
	RawStatus string

	BalanceBefore *decimal.Decimal
	BalanceAfter  decimal.Decimal
}

// SortByDateDesc orders records newest first. The upstream feed carries no
// ordering guarantee.
func SortByDateDesc(records []TransactionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TransactionDate.After(records[j].TransactionDate)
	})
}
