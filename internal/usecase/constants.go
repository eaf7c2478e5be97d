package usecase

import "time"

const (
	// accountCacheTTL bounds staleness of cached upstream reads. Mutations
	// invalidate eagerly, so the TTL only covers out-of-band ledger changes.
	accountCacheTTL     = 30 * time.Second
	transactionCacheTTL = 30 * time.Second

	defaultAuditPageSize = 50
	maxAuditPageSize     = 500
)
