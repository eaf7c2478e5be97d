package domain

import (
	"encoding/json"
	"time"
)

// AuditLog records one administrator lifecycle action against a deposit
// account, kept locally for compliance review independent of the upstream
// ledger's own journal.
type AuditLog struct {
	ID            string
	Actor         string // administrator who initiated the action
	Action        string // deposit.renew, deposit.close, ...
	AccountID     string
	AccountNumber string
	Reason        string
	BeforeState   JSON
	AfterState    JSON
	Status        string // success, failure
	ErrorMessage  string
	CreatedAt     time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents the auditable lifecycle actions.
type AuditAction string

const (
	AuditActionRenew         AuditAction = "deposit.renew"
	AuditActionClose         AuditAction = "deposit.close"
	AuditActionToggleSuspend AuditAction = "deposit.suspend_toggle"
	AuditActionDelete        AuditAction = "deposit.delete"
)

// AuditStatus represents the outcome of an audited action.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}
