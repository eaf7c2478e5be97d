package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency identifies the booking currency of an account.
type Currency string

const (
	CurrencyHTG Currency = "HTG"
	CurrencyUSD Currency = "USD"
)

// ParseCurrency resolves the upstream currency encoding. The core-banking
// system emits either ISO-style strings or enum ordinals (0=HTG, 1=USD).
func ParseCurrency(raw string) (Currency, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "HTG", "0":
		return CurrencyHTG, nil
	case "USD", "1":
		return CurrencyUSD, nil
	default:
		return "", fmt.Errorf("%w: unknown currency %q", ErrInvalidRecord, raw)
	}
}

// TermMonths is the fixed deposit term. Only 3, 6, 12 and 24 months exist.
type TermMonths int

const (
	TermThreeMonths      TermMonths = 3
	TermSixMonths        TermMonths = 6
	TermTwelveMonths     TermMonths = 12
	TermTwentyFourMonths TermMonths = 24
)

// Valid reports whether t is one of the supported term lengths.
func (t TermMonths) Valid() bool {
	switch t {
	case TermThreeMonths, TermSixMonths, TermTwelveMonths, TermTwentyFourMonths:
		return true
	}
	return false
}

// ParseTermMonths resolves the upstream term encoding: enum names with or
// without separators ("THREE_MONTHS", "ThreeMonths") or plain month counts.
func ParseTermMonths(raw string) (TermMonths, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)

	switch s {
	case "THREEMONTHS", "3":
		return TermThreeMonths, nil
	case "SIXMONTHS", "6":
		return TermSixMonths, nil
	case "TWELVEMONTHS", "12":
		return TermTwelveMonths, nil
	case "TWENTYFOURMONTHS", "24":
		return TermTwentyFourMonths, nil
	default:
		return 0, fmt.Errorf("%w: got %q", ErrInvalidTerm, raw)
	}
}

// AccountStatus is the lifecycle state of a term deposit account.
// The states are mutually exclusive; Closed is terminal.
type AccountStatus string

const (
	StatusActive    AccountStatus = "ACTIVE"
	StatusInactive  AccountStatus = "INACTIVE"
	StatusSuspended AccountStatus = "SUSPENDED"
	StatusClosed    AccountStatus = "CLOSED"
)

// ParseAccountStatus resolves the upstream status encoding case-insensitively.
func ParseAccountStatus(raw string) (AccountStatus, error) {
	switch AccountStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	case StatusSuspended:
		return StatusSuspended, nil
	case StatusClosed:
		return StatusClosed, nil
	default:
		return "", fmt.Errorf("%w: unknown account status %q", ErrInvalidRecord, raw)
	}
}

// TermDepositAccount is the canonical form of a fixed-term deposit account,
// produced once at the ingestion boundary. Optional upstream fields
// (rate unit ambiguity, derivable maturity) are carried as pointers and
// resolved by RateNormalizer and ResolveMaturityDate.
type TermDepositAccount struct {
	ID            string
	AccountNumber string
	CustomerName  string
	BranchName    string
	Currency      Currency
	Balance       decimal.Decimal
	Term          TermMonths

	// InterestRate is the rate as persisted upstream; its unit is annual-style
	// and ambiguous at the source. InterestRateMonthly, when present, is an
	// authoritative monthly percentage and takes precedence.
	InterestRate        *decimal.Decimal
	InterestRateMonthly *decimal.Decimal

	OpeningDate  time.Time
	MaturityDate *time.Time
	Status       AccountStatus

	// AccruedInterest is the last figure computed upstream, informational only.
	AccruedInterest decimal.Decimal

	ClosedAt      *time.Time
	ClosedBy      string
	ClosureReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the account accepts lifecycle operations.
func (a *TermDepositAccount) IsActive() bool {
	return a.Status == StatusActive
}
