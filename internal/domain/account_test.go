package domain

import (
	"errors"
	"testing"
)

func TestParseTermMonths(t *testing.T) {
	tests := []struct {
		raw     string
		want    TermMonths
		wantErr bool
	}{
		{raw: "THREE_MONTHS", want: TermThreeMonths},
		{raw: "ThreeMonths", want: TermThreeMonths},
		{raw: "3", want: TermThreeMonths},
		{raw: "SIX_MONTHS", want: TermSixMonths},
		{raw: "twelve_months", want: TermTwelveMonths},
		{raw: "12", want: TermTwelveMonths},
		{raw: "TWENTY_FOUR_MONTHS", want: TermTwentyFourMonths},
		{raw: "twenty-four-months", want: TermTwentyFourMonths},
		{raw: "24", want: TermTwentyFourMonths},
		{raw: "9", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "FOREVER", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseTermMonths(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTerm) {
					t.Fatalf("expected ErrInvalidTerm, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestTermMonthsValid(t *testing.T) {
	for _, term := range []TermMonths{TermThreeMonths, TermSixMonths, TermTwelveMonths, TermTwentyFourMonths} {
		if !term.Valid() {
			t.Fatalf("term %d should be valid", term)
		}
	}
	for _, term := range []TermMonths{0, 1, 9, 36} {
		if term.Valid() {
			t.Fatalf("term %d should be invalid", term)
		}
	}
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		raw     string
		want    Currency
		wantErr bool
	}{
		{raw: "HTG", want: CurrencyHTG},
		{raw: "htg", want: CurrencyHTG},
		{raw: "0", want: CurrencyHTG},
		{raw: "USD", want: CurrencyUSD},
		{raw: "1", want: CurrencyUSD},
		{raw: " usd ", want: CurrencyUSD},
		{raw: "EUR", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseCurrency(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRecord) {
					t.Fatalf("expected ErrInvalidRecord, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseAccountStatus(t *testing.T) {
	for raw, want := range map[string]AccountStatus{
		"ACTIVE":    StatusActive,
		"active":    StatusActive,
		"Inactive":  StatusInactive,
		"SUSPENDED": StatusSuspended,
		" closed ":  StatusClosed,
	} {
		got, err := ParseAccountStatus(raw)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("%q: expected %s, got %s", raw, want, got)
		}
	}

	if _, err := ParseAccountStatus("FROZEN"); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}
