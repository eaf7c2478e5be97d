package domain

import (
	"math"
	"time"
)

// AddMonthsClamped adds calendar months to t, preserving the day of month
// when it exists in the target month and otherwise clamping to that month's
// last day (Jan 31 + 1 month = Feb 29 in a leap year). time.AddDate is not
// used because it normalizes overflow into the following month.
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	month += time.Month(months)

	// Normalize the year/month pair before clamping the day.
	first := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}

	hour, minute, sec := t.Clock()
	return time.Date(first.Year(), first.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ResolveMaturityDate returns the stored maturity date unchanged when
// present, and otherwise derives it by adding the term to the opening date.
func ResolveMaturityDate(openingDate time.Time, term TermMonths, stored *time.Time) time.Time {
	if stored != nil {
		return *stored
	}
	return AddMonthsClamped(openingDate, int(term))
}

// DaysRemaining returns the ceiling of the day difference between asOf and
// the maturity date. Negative values mean the account is overdue.
func DaysRemaining(maturityDate, asOf time.Time) int {
	return int(math.Ceil(maturityDate.Sub(asOf).Hours() / 24))
}

// RenewalSchedule describes the date shift performed by a renewal: the old
// maturity becomes the new opening date and the maturity moves out one more
// term. Rate and balance are untouched; any interest due is assumed to have
// been merged into the balance by the upstream ledger already.
type RenewalSchedule struct {
	OpeningDate  time.Time
	MaturityDate time.Time
}

// PlanRenewal computes the schedule a renewal will produce. It fails with
// ErrInvalidState unless the account is active.
func PlanRenewal(a *TermDepositAccount, asOf time.Time) (*RenewalSchedule, error) {
	if err := CanRenew(a); err != nil {
		return nil, err
	}

	opening := ResolveMaturityDate(a.OpeningDate, a.Term, a.MaturityDate)
	return &RenewalSchedule{
		OpeningDate:  opening,
		MaturityDate: AddMonthsClamped(opening, int(a.Term)),
	}, nil
}
