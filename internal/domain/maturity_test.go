package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{
			name:   "plain addition preserves the day",
			start:  date(2024, 3, 15),
			months: 6,
			want:   date(2024, 9, 15),
		},
		{
			name:   "january 31 clamps to leap-year february 29",
			start:  date(2024, 1, 31),
			months: 1,
			want:   date(2024, 2, 29),
		},
		{
			name:   "january 31 clamps to february 28 outside leap years",
			start:  date(2023, 1, 31),
			months: 1,
			want:   date(2023, 2, 28),
		},
		{
			name:   "may 31 clamps to june 30",
			start:  date(2024, 5, 31),
			months: 1,
			want:   date(2024, 6, 30),
		},
		{
			name:   "year rollover",
			start:  date(2024, 11, 30),
			months: 3,
			want:   date(2025, 2, 28),
		},
		{
			name:   "twenty four months",
			start:  date(2024, 2, 29),
			months: 24,
			want:   date(2026, 2, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonthsClamped(tt.start, tt.months)
			if !got.Equal(tt.want) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestResolveMaturityDate(t *testing.T) {
	opening := date(2024, 1, 31)

	stored := date(2024, 8, 1)
	if got := ResolveMaturityDate(opening, TermThreeMonths, &stored); !got.Equal(stored) {
		t.Fatalf("stored maturity must pass through unchanged, got %s", got)
	}

	if got := ResolveMaturityDate(opening, TermTwelveMonths, nil); !got.Equal(date(2025, 1, 31)) {
		t.Fatalf("expected derived maturity 2025-01-31, got %s", got)
	}
}

func TestDaysRemaining(t *testing.T) {
	maturity := date(2024, 6, 1)

	tests := []struct {
		name string
		asOf time.Time
		want int
	}{
		{name: "ten days out", asOf: date(2024, 5, 22), want: 10},
		{name: "partial day rounds up", asOf: date(2024, 5, 22).Add(6 * time.Hour), want: 10},
		{name: "maturity day", asOf: maturity, want: 0},
		{name: "overdue goes negative", asOf: date(2024, 6, 4), want: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(maturity, tt.asOf); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestDaysRemaining_DecreasesDaily(t *testing.T) {
	maturity := date(2024, 6, 1)
	asOf := date(2024, 5, 1)

	prev := DaysRemaining(maturity, asOf)
	for i := 0; i < 45; i++ {
		asOf = asOf.AddDate(0, 0, 1)
		got := DaysRemaining(maturity, asOf)
		if got != prev-1 {
			t.Fatalf("day %d: expected %d, got %d", i, prev-1, got)
		}
		prev = got
	}
}

func TestPlanRenewal(t *testing.T) {
	account := &TermDepositAccount{
		Status:      StatusActive,
		Term:        TermTwelveMonths,
		OpeningDate: date(2023, 2, 1),
	}

	schedule, err := PlanRenewal(account, date(2024, 2, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !schedule.OpeningDate.Equal(date(2024, 2, 1)) {
		t.Fatalf("new opening must be the old maturity, got %s", schedule.OpeningDate)
	}
	if !schedule.MaturityDate.Equal(date(2025, 2, 1)) {
		t.Fatalf("new maturity must add one more term, got %s", schedule.MaturityDate)
	}
}

func TestPlanRenewal_RejectsNonActive(t *testing.T) {
	for _, status := range []AccountStatus{StatusInactive, StatusSuspended, StatusClosed} {
		account := &TermDepositAccount{Status: status, Term: TermSixMonths, OpeningDate: date(2024, 1, 1)}
		if _, err := PlanRenewal(account, date(2024, 8, 1)); err != ErrInvalidState {
			t.Fatalf("status %s: expected ErrInvalidState, got %v", status, err)
		}
	}
}
