package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nalacredit/depositcore/internal/domain"
)

// flexString accepts a JSON string, number or boolean. The branch systems are
// inconsistent about whether enums travel as names or ordinals.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	*f = flexString(strings.Trim(string(data), `"`))
	return nil
}

// dateLayouts covers the formats seen in the feeds: full RFC3339, the
// .NET-style timestamp without zone, and bare dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable date %q", domain.ErrInvalidRecord, raw)
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type accountDTO struct {
	ID                  string           `json:"id"`
	AccountNumber       string           `json:"accountNumber"`
	CustomerName        string           `json:"customerName"`
	BranchName          string           `json:"branchName"`
	Currency            flexString       `json:"currency"`
	Balance             decimal.Decimal  `json:"balance"`
	Term                flexString       `json:"term"`
	InterestRate        *decimal.Decimal `json:"interestRate"`
	InterestRateMonthly *decimal.Decimal `json:"monthlyInterestRate"`
	OpeningDate         string           `json:"openingDate"`
	MaturityDate        *string          `json:"maturityDate"`
	Status              flexString       `json:"status"`
	AccruedInterest     decimal.Decimal  `json:"accruedInterest"`
	ClosedAt            *string          `json:"closedAt"`
	ClosedBy            string           `json:"closedBy"`
	ClosureReason       string           `json:"closureReason"`
	CreatedAt           *string          `json:"createdAt"`
	UpdatedAt           *string          `json:"updatedAt"`
}

func (d accountDTO) toDomain() (*domain.TermDepositAccount, error) {
	currency, err := domain.ParseCurrency(string(d.Currency))
	if err != nil {
		return nil, fmt.Errorf("%w: account %s: %v", domain.ErrInvalidRecord, d.AccountNumber, err)
	}

	term, err := domain.ParseTermMonths(string(d.Term))
	if err != nil {
		return nil, fmt.Errorf("%w: account %s: %v", domain.ErrInvalidRecord, d.AccountNumber, err)
	}

	status, err := domain.ParseAccountStatus(string(d.Status))
	if err != nil {
		return nil, fmt.Errorf("%w: account %s: %v", domain.ErrInvalidRecord, d.AccountNumber, err)
	}

	opening, err := parseDate(d.OpeningDate)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", d.AccountNumber, err)
	}

	maturity, err := parseOptionalDate(d.MaturityDate)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", d.AccountNumber, err)
	}

	closedAt, err := parseOptionalDate(d.ClosedAt)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", d.AccountNumber, err)
	}

	account := &domain.TermDepositAccount{
		ID:                  d.ID,
		AccountNumber:       d.AccountNumber,
		CustomerName:        d.CustomerName,
		BranchName:          d.BranchName,
		Currency:            currency,
		Balance:             d.Balance,
		Term:                term,
		InterestRate:        d.InterestRate,
		InterestRateMonthly: d.InterestRateMonthly,
		OpeningDate:         opening,
		MaturityDate:        maturity,
		Status:              status,
		AccruedInterest:     d.AccruedInterest,
		ClosedAt:            closedAt,
		ClosedBy:            d.ClosedBy,
		ClosureReason:       d.ClosureReason,
	}

	if t, err := parseOptionalDate(d.CreatedAt); err == nil && t != nil {
		account.CreatedAt = *t
	}
	if t, err := parseOptionalDate(d.UpdatedAt); err == nil && t != nil {
		account.UpdatedAt = *t
	}

	return account, nil
}

type transactionDTO struct {
	ID            string           `json:"id"`
	Reference     string           `json:"reference"`
	Description   string           `json:"description"`
	AccountNumber string           `json:"accountNumber"`
	BranchName    string           `json:"branchName"`
	PerformedBy   string           `json:"performedBy"`
	Amount        decimal.Decimal  `json:"amount"`
	Currency      flexString       `json:"currency"`
	Date          string           `json:"transactionDate"`
	Type          flexString       `json:"transactionType"`
	Status        flexString       `json:"status"`
	BalanceBefore *decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal  `json:"balanceAfter"`
}

func (d transactionDTO) toDomain() (domain.TransactionRecord, error) {
	currency, err := domain.ParseCurrency(string(d.Currency))
	if err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("%w: transaction %s: %v", domain.ErrInvalidRecord, d.ID, err)
	}

	date, err := parseDate(d.Date)
	if err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("transaction %s: %w", d.ID, err)
	}

	return domain.TransactionRecord{
		ID:              d.ID,
		Reference:       d.Reference,
		Description:     d.Description,
		AccountNumber:   d.AccountNumber,
		BranchName:      d.BranchName,
		PerformedBy:     d.PerformedBy,
		Amount:          d.Amount,
		Currency:        currency,
		TransactionDate: date,
		RawType:         string(d.Type),
		RawStatus:       string(d.Status),
		BalanceBefore:   d.BalanceBefore,
		BalanceAfter:    d.BalanceAfter,
	}, nil
}

type closeRequestDTO struct {
	Reason         string           `json:"reason"`
	PenaltyPercent *decimal.Decimal `json:"penaltyPercent,omitempty"`
}

type errorResponseDTO struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
