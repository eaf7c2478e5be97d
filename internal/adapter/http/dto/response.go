package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nalacredit/depositcore/internal/domain"
	"github.com/nalacredit/depositcore/internal/usecase"
)

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents a term deposit account in API responses.
type AccountResponse struct {
	ID                 string          `json:"id"`
	AccountNumber      string          `json:"account_number"`
	CustomerName       string          `json:"customer_name"`
	BranchName         string          `json:"branch_name,omitempty"`
	Currency           string          `json:"currency"`
	Balance            decimal.Decimal `json:"balance"`
	TermMonths         int             `json:"term_months"`
	MonthlyRatePercent decimal.Decimal `json:"monthly_rate_percent"`
	OpeningDate        time.Time       `json:"opening_date"`
	MaturityDate       time.Time       `json:"maturity_date"`
	DaysRemaining      int             `json:"days_remaining"`
	Status             string          `json:"status"`

	AccruedInterest   *decimal.Decimal `json:"accrued_interest,omitempty"`
	ProjectedInterest *decimal.Decimal `json:"projected_interest,omitempty"`

	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	ClosedBy      string     `json:"closed_by,omitempty"`
	ClosureReason string     `json:"closure_reason,omitempty"`
}

// AccountFromView converts a use case account view to a response.
func AccountFromView(v *usecase.AccountView) *AccountResponse {
	a := v.Account
	return &AccountResponse{
		ID:                 a.ID,
		AccountNumber:      a.AccountNumber,
		CustomerName:       a.CustomerName,
		BranchName:         a.BranchName,
		Currency:           string(a.Currency),
		Balance:            a.Balance,
		TermMonths:         int(a.Term),
		MonthlyRatePercent: v.MonthlyRatePercent,
		OpeningDate:        a.OpeningDate,
		MaturityDate:       v.MaturityDate,
		DaysRemaining:      v.DaysRemaining,
		Status:             string(a.Status),
		AccruedInterest:    v.AccruedInterest,
		ProjectedInterest:  v.ProjectedInterest,
		ClosedAt:           a.ClosedAt,
		ClosedBy:           a.ClosedBy,
		ClosureReason:      a.ClosureReason,
	}
}

// ClosurePlanResponse is the payout breakdown of a closure or a preview.
type ClosurePlanResponse struct {
	Kind           string          `json:"kind"`
	Reason         string          `json:"reason"`
	DaysRemaining  int             `json:"days_remaining"`
	PenaltyPercent decimal.Decimal `json:"penalty_percent"`
	PenaltyAmount  decimal.Decimal `json:"penalty_amount"`
	NetPayout      decimal.Decimal `json:"net_payout"`
}

// ClosurePlanFromDomain converts a closure plan to a response.
func ClosurePlanFromDomain(p *domain.ClosurePlan) *ClosurePlanResponse {
	return &ClosurePlanResponse{
		Kind:           string(p.Kind),
		Reason:         p.Reason,
		DaysRemaining:  p.DaysRemaining,
		PenaltyPercent: p.PenaltyPercent,
		PenaltyAmount:  p.PenaltyAmount,
		NetPayout:      p.NetPayout,
	}
}

// ToggleStatusResponse reports the status an account moved to.
type ToggleStatusResponse struct {
	Status string `json:"status"`
}

// PortfolioSummaryResponse is the maturity dashboard payload.
type PortfolioSummaryResponse struct {
	TotalAccounts             int             `json:"total_accounts"`
	ActiveAccounts            int             `json:"active_accounts"`
	MaturingIn7Days           int             `json:"maturing_in_7_days"`
	MaturingIn30Days          int             `json:"maturing_in_30_days"`
	Overdue                   int             `json:"overdue"`
	AverageMonthlyRatePercent decimal.Decimal `json:"average_monthly_rate_percent"`
}

// PortfolioSummaryFromUseCase converts the use case summary to a response.
func PortfolioSummaryFromUseCase(s *usecase.PortfolioSummary) *PortfolioSummaryResponse {
	return &PortfolioSummaryResponse{
		TotalAccounts:             s.TotalAccounts,
		ActiveAccounts:            s.ActiveAccounts,
		MaturingIn7Days:           s.MaturingIn7Days,
		MaturingIn30Days:          s.MaturingIn30Days,
		Overdue:                   s.Overdue,
		AverageMonthlyRatePercent: s.AverageMonthlyRatePercent,
	}
}

// TransactionResponse is one classified movement.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Reference     string          `json:"reference,omitempty"`
	Description   string          `json:"description,omitempty"`
	PerformedBy   string          `json:"performed_by,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Date          time.Time       `json:"date"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	DisplayStatus string          `json:"display_status"`
	Reversed      bool            `json:"reversed"`

	BalanceBefore *decimal.Decimal `json:"balance_before,omitempty"`
	BalanceAfter  decimal.Decimal  `json:"balance_after"`
}

// StatementSummaryResponse totals effective movements per currency.
type StatementSummaryResponse struct {
	Deposits    map[string]decimal.Decimal `json:"deposits"`
	Withdrawals map[string]decimal.Decimal `json:"withdrawals"`
	Count       int                        `json:"count"`
}

// StatementResponse is the classified history of one account.
type StatementResponse struct {
	AccountNumber string                   `json:"account_number"`
	Transactions  []TransactionResponse    `json:"transactions"`
	Summary       StatementSummaryResponse `json:"summary"`
}

// StatementFromView converts a use case statement view to a response.
func StatementFromView(v *usecase.StatementView) *StatementResponse {
	out := &StatementResponse{
		AccountNumber: v.AccountNumber,
		Transactions:  make([]TransactionResponse, len(v.Transactions)),
		Summary: StatementSummaryResponse{
			Deposits:    make(map[string]decimal.Decimal, len(v.Summary.Deposits)),
			Withdrawals: make(map[string]decimal.Decimal, len(v.Summary.Withdrawals)),
			Count:       v.Summary.Count,
		},
	}

	for i, tx := range v.Transactions {
		out.Transactions[i] = TransactionResponse{
			ID:            tx.ID,
			Reference:     tx.Reference,
			Description:   tx.Description,
			PerformedBy:   tx.PerformedBy,
			Amount:        tx.Amount,
			Currency:      string(tx.Currency),
			Date:          tx.TransactionDate,
			Type:          string(tx.Type),
			Status:        string(tx.Status),
			DisplayStatus: string(tx.DisplayStatus),
			Reversed:      tx.Reversed,
			BalanceBefore: tx.BalanceBefore,
			BalanceAfter:  tx.BalanceAfter,
		}
	}

	for currency, amount := range v.Summary.Deposits {
		out.Summary.Deposits[string(currency)] = amount
	}
	for currency, amount := range v.Summary.Withdrawals {
		out.Summary.Withdrawals[string(currency)] = amount
	}

	return out
}

// AuditLogResponse is one audit trail entry.
type AuditLogResponse struct {
	ID            string      `json:"id"`
	Actor         string      `json:"actor"`
	Action        string      `json:"action"`
	AccountNumber string      `json:"account_number"`
	Reason        string      `json:"reason,omitempty"`
	BeforeState   domain.JSON `json:"before_state,omitempty"`
	AfterState    domain.JSON `json:"after_state,omitempty"`
	Status        string      `json:"status"`
	ErrorMessage  string      `json:"error_message,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// AuditLogsFromDomain converts audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, len(logs))
	for i, log := range logs {
		out[i] = AuditLogResponse{
			ID:            log.ID,
			Actor:         log.Actor,
			Action:        log.Action,
			AccountNumber: log.AccountNumber,
			Reason:        log.Reason,
			BeforeState:   log.BeforeState,
			AfterState:    log.AfterState,
			Status:        log.Status,
			ErrorMessage:  log.ErrorMessage,
			CreatedAt:     log.CreatedAt,
		}
	}
	return out
}
