package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nalacredit/depositcore/internal/domain"
)

// LedgerGateway is the abstract upstream core-banking ledger. Reads are
// idempotent; mutations are serialized per account by the upstream and are
// never retried here. Failures carry the domain sentinel errors.
type LedgerGateway interface {
	FetchAccount(ctx context.Context, accountNumber string) (*domain.TermDepositAccount, error)
	FetchAccounts(ctx context.Context) ([]*domain.TermDepositAccount, error)
	FetchTransactions(ctx context.Context, accountNumber string) ([]domain.TransactionRecord, error)

	CommitRenew(ctx context.Context, accountID string) (*domain.TermDepositAccount, error)
	CommitClose(ctx context.Context, accountID, reason string, penaltyPercent *decimal.Decimal) error
	CommitToggleSuspend(ctx context.Context, accountID string) error
	CommitDelete(ctx context.Context, accountID string) error
}

// AuditRepository defines persistence for the local audit trail.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListByAccount(ctx context.Context, accountNumber string, limit, offset int) ([]*domain.AuditLog, error)
}

// Cache defines read-side caching of upstream fetches.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
