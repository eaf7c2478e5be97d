package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nalacredit/depositcore/internal/domain"
)

// StubLedgerGateway is a hand-rolled stand-in for LedgerGateway with an
// in-memory account book. Any Func field overrides the default behavior.
type StubLedgerGateway struct {
	mu           sync.RWMutex
	accounts     map[string]*domain.TermDepositAccount
	transactions map[string][]domain.TransactionRecord

	FetchAccountFunc        func(ctx context.Context, accountNumber string) (*domain.TermDepositAccount, error)
	FetchAccountsFunc       func(ctx context.Context) ([]*domain.TermDepositAccount, error)
	FetchTransactionsFunc   func(ctx context.Context, accountNumber string) ([]domain.TransactionRecord, error)
	CommitRenewFunc         func(ctx context.Context, accountID string) (*domain.TermDepositAccount, error)
	CommitCloseFunc         func(ctx context.Context, accountID, reason string, penaltyPercent *decimal.Decimal) error
	CommitToggleSuspendFunc func(ctx context.Context, accountID string) error
	CommitDeleteFunc        func(ctx context.Context, accountID string) error
}

func NewStubLedgerGateway() *StubLedgerGateway {
	return &StubLedgerGateway{
		accounts:     make(map[string]*domain.TermDepositAccount),
		transactions: make(map[string][]domain.TransactionRecord),
	}
}

// Seed registers an account and its movement history.
func (s *StubLedgerGateway) Seed(account *domain.TermDepositAccount, records []domain.TransactionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.AccountNumber] = account
	s.transactions[account.AccountNumber] = records
}

func (s *StubLedgerGateway) FetchAccount(ctx context.Context, accountNumber string) (*domain.TermDepositAccount, error) {
	if s.FetchAccountFunc != nil {
		return s.FetchAccountFunc(ctx, accountNumber)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if acc, ok := s.accounts[accountNumber]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (s *StubLedgerGateway) FetchAccounts(ctx context.Context) ([]*domain.TermDepositAccount, error) {
	if s.FetchAccountsFunc != nil {
		return s.FetchAccountsFunc(ctx)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var accounts []*domain.TermDepositAccount
	for _, acc := range s.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (s *StubLedgerGateway) FetchTransactions(ctx context.Context, accountNumber string) ([]domain.TransactionRecord, error) {
	if s.FetchTransactionsFunc != nil {
		return s.FetchTransactionsFunc(ctx, accountNumber)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactions[accountNumber], nil
}

func (s *StubLedgerGateway) CommitRenew(ctx context.Context, accountID string) (*domain.TermDepositAccount, error) {
	if s.CommitRenewFunc != nil {
		return s.CommitRenewFunc(ctx, accountID)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acc := range s.accounts {
		if acc.ID == accountID {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (s *StubLedgerGateway) CommitClose(ctx context.Context, accountID, reason string, penaltyPercent *decimal.Decimal) error {
	if s.CommitCloseFunc != nil {
		return s.CommitCloseFunc(ctx, accountID, reason, penaltyPercent)
	}
	return nil
}

func (s *StubLedgerGateway) CommitToggleSuspend(ctx context.Context, accountID string) error {
	if s.CommitToggleSuspendFunc != nil {
		return s.CommitToggleSuspendFunc(ctx, accountID)
	}
	return nil
}

func (s *StubLedgerGateway) CommitDelete(ctx context.Context, accountID string) error {
	if s.CommitDeleteFunc != nil {
		return s.CommitDeleteFunc(ctx, accountID)
	}
	return nil
}

// StubAuditRepository keeps audit logs in memory, newest first.
type StubAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc        func(ctx context.Context, log *domain.AuditLog) error
	ListByAccountFunc func(ctx context.Context, accountNumber string, limit, offset int) ([]*domain.AuditLog, error)
}

func NewStubAuditRepository() *StubAuditRepository {
	return &StubAuditRepository{}
}

func (s *StubAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if s.CreateFunc != nil {
		return s.CreateFunc(ctx, log)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append([]*domain.AuditLog{log}, s.logs...)
	return nil
}

func (s *StubAuditRepository) ListByAccount(ctx context.Context, accountNumber string, limit, offset int) ([]*domain.AuditLog, error) {
	if s.ListByAccountFunc != nil {
		return s.ListByAccountFunc(ctx, accountNumber, limit, offset)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*domain.AuditLog
	for _, log := range s.logs {
		if log.AccountNumber == accountNumber {
			out = append(out, log)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Logs returns everything recorded so far, newest first.
func (s *StubAuditRepository) Logs() []*domain.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.AuditLog(nil), s.logs...)
}

// StubCache is an in-memory Cache. TTLs are recorded but never enforced.
type StubCache struct {
	mu   sync.RWMutex
	data map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewStubCache() *StubCache {
	return &StubCache{data: make(map[string]string)}
}

func (s *StubCache) Get(ctx context.Context, key string) (string, error) {
	if s.GetFunc != nil {
		return s.GetFunc(ctx, key)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key], nil
}

func (s *StubCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if s.SetFunc != nil {
		return s.SetFunc(ctx, key, value, ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *StubCache) Delete(ctx context.Context, key string) error {
	if s.DeleteFunc != nil {
		return s.DeleteFunc(ctx, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Contains reports whether a key is present.
func (s *StubCache) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok
}

// StubIDGenerator issues sequential ids.
type StubIDGenerator struct {
	GenerateFunc func() string
	mu           sync.Mutex
	counter      int
}

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{}
}

func (s *StubIDGenerator) Generate() string {
	if s.GenerateFunc != nil {
		return s.GenerateFunc()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	return "stub-id-" + strconv.Itoa(s.counter)
}
