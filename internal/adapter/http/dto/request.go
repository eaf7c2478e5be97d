package dto

import "github.com/shopspring/decimal"

// CloseAccountRequest is the payload for closing a term deposit account.
// PenaltyPercent is required for early withdrawals and ignored at maturity.
type CloseAccountRequest struct {
	Reason         string           `json:"reason"`
	PenaltyPercent *decimal.Decimal `json:"penalty_percent,omitempty"`
}
