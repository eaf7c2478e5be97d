package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ClosureKind distinguishes a penalty-free matured closure from an
// early withdrawal.
type ClosureKind string

const (
	ClosureMatured ClosureKind = "MATURED"
	ClosureEarly   ClosureKind = "EARLY_WITHDRAWAL"
)

// ClosurePlan is the decision output presented to the administrator for
// confirmation before the closure is committed to the ledger.
type ClosurePlan struct {
	Kind           ClosureKind
	Reason         string
	DaysRemaining  int
	PenaltyPercent decimal.Decimal
	PenaltyAmount  decimal.Decimal
	NetPayout      decimal.Decimal
}

// PlanClosure validates a closure request against the account state and
// computes the payout breakdown. PenaltyAmount + NetPayout always equals the
// balance exactly. penaltyPercent is required for early withdrawals and
// ignored once the account has matured.
func PlanClosure(a *TermDepositAccount, asOf time.Time, reason string, penaltyPercent *decimal.Decimal) (*ClosurePlan, error) {
	if a.Status != StatusActive {
		return nil, ErrInvalidState
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	maturity := ResolveMaturityDate(a.OpeningDate, a.Term, a.MaturityDate)
	days := DaysRemaining(maturity, asOf)

	plan := &ClosurePlan{
		Reason:        reason,
		DaysRemaining: days,
	}

	if days <= 0 {
		plan.Kind = ClosureMatured
		plan.PenaltyPercent = decimal.Zero
		plan.PenaltyAmount = decimal.Zero
		plan.NetPayout = a.Balance
		return plan, nil
	}

	if penaltyPercent == nil || penaltyPercent.IsNegative() {
		return nil, ErrInvalidPenalty
	}

	plan.Kind = ClosureEarly
	plan.PenaltyPercent = *penaltyPercent
	plan.PenaltyAmount = a.Balance.Mul(*penaltyPercent).Div(hundred)
	plan.NetPayout = a.Balance.Sub(plan.PenaltyAmount)
	return plan, nil
}

// CanRenew reports whether a renewal may be submitted for the account.
func CanRenew(a *TermDepositAccount) error {
	if a.Status != StatusActive {
		return ErrInvalidState
	}
	return nil
}

// CanAccrueInterest guards the maturity-dependent interest computations.
func CanAccrueInterest(a *TermDepositAccount) error {
	if a.Status != StatusActive {
		return ErrInvalidState
	}
	return nil
}

// NextToggleStatus returns the status an administrative suspend-toggle will
// move the account to. Only ACTIVE and SUSPENDED participate; the toggle is
// reversible. CLOSED is terminal and INACTIVE is managed upstream.
func NextToggleStatus(s AccountStatus) (AccountStatus, error) {
	switch s {
	case StatusActive:
		return StatusSuspended, nil
	case StatusSuspended:
		return StatusActive, nil
	default:
		return "", ErrInvalidState
	}
}

// CanDelete reports whether the account may be removed. Deletion is permitted
// only for a drained account that is no longer active.
func CanDelete(a *TermDepositAccount) error {
	if a.Status == StatusActive {
		return ErrConflict
	}
	if !a.Balance.IsZero() {
		return ErrConflict
	}
	return nil
}
