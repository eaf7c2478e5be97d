package domain

import "errors"

var (
	// Lifecycle errors
	ErrInvalidState = errors.New("operation not permitted in the account's current state")
	ErrNotReady     = errors.New("feature not yet available upstream")
	ErrForbidden    = errors.New("operation not authorized")
	ErrConflict     = errors.New("commit-time precondition violated")

	// Transport errors
	ErrUpstreamUnavailable = errors.New("upstream ledger unavailable")
	ErrAccountNotFound     = errors.New("account not found")

	// Input validation errors
	ErrReasonRequired = errors.New("a closure reason is required")
	ErrInvalidPenalty = errors.New("penalty percent must be zero or positive")
	ErrInvalidTerm    = errors.New("term length must be 3, 6, 12 or 24 months")
	ErrInvalidRecord  = errors.New("upstream record failed validation")
)
