package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nalacredit/depositcore/internal/domain"
)

// DepositUseCase orchestrates term-deposit reads and lifecycle actions
// against the upstream ledger. All financial decisions are taken by the pure
// domain functions; this layer only sequences fetch, decide, commit, audit.
type DepositUseCase struct {
	ledger    LedgerGateway
	auditRepo AuditRepository
	cache     Cache
	idGen     IDGenerator
	rates     *domain.RateNormalizer
}

// NewDepositUseCase creates a new DepositUseCase.
func NewDepositUseCase(
	ledger LedgerGateway,
	auditRepo AuditRepository,
	cache Cache,
	idGen IDGenerator,
	rates *domain.RateNormalizer,
) *DepositUseCase {
	if rates == nil {
		rates = domain.NewRateNormalizer(nil)
	}
	return &DepositUseCase{
		ledger:    ledger,
		auditRepo: auditRepo,
		cache:     cache,
		idGen:     idGen,
		rates:     rates,
	}
}

// AccountView is an account enriched with the derived fields the dashboard
// needs: the resolved maturity, signed days remaining, canonical monthly
// rate and, for active accounts only, the interest figures.
type AccountView struct {
	Account            *domain.TermDepositAccount
	MonthlyRatePercent decimal.Decimal
	MaturityDate       time.Time
	DaysRemaining      int

	// Interest estimates, present only while the account is active.
	AccruedInterest   *decimal.Decimal
	ProjectedInterest *decimal.Decimal
}

// GetAccount fetches an account and derives its computed fields.
func (uc *DepositUseCase) GetAccount(ctx context.Context, accountNumber string) (*AccountView, error) {
	account, err := uc.fetchAccountCached(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	return uc.buildView(account, time.Now().UTC()), nil
}

func (uc *DepositUseCase) buildView(account *domain.TermDepositAccount, asOf time.Time) *AccountView {
	maturity := domain.ResolveMaturityDate(account.OpeningDate, account.Term, account.MaturityDate)
	rate := uc.rates.MonthlyRatePercent(account)

	view := &AccountView{
		Account:            account,
		MonthlyRatePercent: rate,
		MaturityDate:       maturity,
		DaysRemaining:      domain.DaysRemaining(maturity, asOf),
	}

	if domain.CanAccrueInterest(account) == nil {
		accrued := domain.AccruedInterestByElapsedDays(account.Balance, rate, account.OpeningDate, asOf)
		projected := domain.ProjectedInterestAtMaturity(account.Balance, rate, account.Term)
		view.AccruedInterest = &accrued
		view.ProjectedInterest = &projected
	}

	return view
}

// PreviewClosure computes the payout breakdown an administrator must confirm
// before a closure is committed. Nothing is mutated.
func (uc *DepositUseCase) PreviewClosure(ctx context.Context, accountNumber, reason string, penaltyPercent *decimal.Decimal) (*domain.ClosurePlan, error) {
	account, err := uc.fetchAccountCached(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	return domain.PlanClosure(account, time.Now().UTC(), reason, penaltyPercent)
}

// Renew rolls an active account into a new term: the old maturity becomes
// the opening date and the maturity moves out one more term. The mutation is
// performed by the ledger; on failure the error propagates unmodified and no
// local state changes.
func (uc *DepositUseCase) Renew(ctx context.Context, accountNumber, actor string) (*AccountView, error) {
	account, err := uc.fetchAccountCached(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	if err := domain.CanRenew(account); err != nil {
		return nil, err
	}

	updated, err := uc.ledger.CommitRenew(ctx, account.ID)
	uc.recordAudit(ctx, domain.AuditActionRenew, actor, account, "", domain.MarshalState(updated), err)
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, accountNumber)
	return uc.buildView(updated, time.Now().UTC()), nil
}

// Close closes an account, either penalty-free at maturity or as an early
// withdrawal with the administrator-supplied penalty. The returned plan is
// the breakdown that was committed.
func (uc *DepositUseCase) Close(ctx context.Context, accountNumber, actor, reason string, penaltyPercent *decimal.Decimal) (*domain.ClosurePlan, error) {
	account, err := uc.fetchAccountCached(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	plan, err := domain.PlanClosure(account, time.Now().UTC(), reason, penaltyPercent)
	if err != nil {
		return nil, err
	}

	var penalty *decimal.Decimal
	if plan.Kind == domain.ClosureEarly {
		penalty = &plan.PenaltyPercent
	}

	err = uc.ledger.CommitClose(ctx, account.ID, plan.Reason, penalty)
	uc.recordAudit(ctx, domain.AuditActionClose, actor, account, plan.Reason, domain.MarshalState(plan), err)
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, accountNumber)
	return plan, nil
}

// ToggleSuspend flips an account between ACTIVE and SUSPENDED and returns
// the status the account moved to.
func (uc *DepositUseCase) ToggleSuspend(ctx context.Context, accountNumber, actor string) (domain.AccountStatus, error) {
	account, err := uc.fetchAccountCached(ctx, accountNumber)
	if err != nil {
		return "", err
	}

	next, err := domain.NextToggleStatus(account.Status)
	if err != nil {
		return "", err
	}

	err = uc.ledger.CommitToggleSuspend(ctx, account.ID)
	uc.recordAudit(ctx, domain.AuditActionToggleSuspend, actor, account, "", domain.JSON{"status": string(next)}, err)
	if err != nil {
		return "", err
	}

	uc.invalidate(ctx, accountNumber)
	return next, nil
}

// Delete removes a drained, non-active account from the upstream ledger.
func (uc *DepositUseCase) Delete(ctx context.Context, accountNumber, actor string) error {
	account, err := uc.fetchAccountCached(ctx, accountNumber)
	if err != nil {
		return err
	}

	if err := domain.CanDelete(account); err != nil {
		return err
	}

	err = uc.ledger.CommitDelete(ctx, account.ID)
	uc.recordAudit(ctx, domain.AuditActionDelete, actor, account, "", nil, err)
	if err != nil {
		return err
	}

	uc.invalidate(ctx, accountNumber)
	return nil
}

// PortfolioSummary aggregates maturity pressure across the whole book.
type PortfolioSummary struct {
	TotalAccounts    int
	ActiveAccounts   int
	MaturingIn7Days  int
	MaturingIn30Days int
	Overdue          int

	AverageMonthlyRatePercent decimal.Decimal
}

// Summarize computes the maturity dashboard figures over all accounts.
func (uc *DepositUseCase) Summarize(ctx context.Context) (*PortfolioSummary, error) {
	accounts, err := uc.ledger.FetchAccounts(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	summary := &PortfolioSummary{TotalAccounts: len(accounts)}
	rateSum := decimal.Zero

	for _, account := range accounts {
		if account.IsActive() {
			summary.ActiveAccounts++
		}

		maturity := domain.ResolveMaturityDate(account.OpeningDate, account.Term, account.MaturityDate)
		days := domain.DaysRemaining(maturity, now)
		switch {
		case days < 0:
			summary.Overdue++
		case days <= 7:
			summary.MaturingIn7Days++
			summary.MaturingIn30Days++
		case days <= 30:
			summary.MaturingIn30Days++
		}

		rateSum = rateSum.Add(uc.rates.MonthlyRatePercent(account))
	}

	if len(accounts) > 0 {
		summary.AverageMonthlyRatePercent = rateSum.Div(decimal.NewFromInt(int64(len(accounts))))
	}

	return summary, nil
}

// ListAudit returns the local audit trail of an account, newest first.
func (uc *DepositUseCase) ListAudit(ctx context.Context, accountNumber string, limit, offset int) ([]*domain.AuditLog, error) {
	if limit <= 0 {
		limit = defaultAuditPageSize
	}
	if limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return uc.auditRepo.ListByAccount(ctx, accountNumber, limit, offset)
}

func accountCacheKey(accountNumber string) string {
	return "account:" + accountNumber
}

// fetchAccountCached reads through the cache. Cache failures degrade to a
// direct upstream fetch.
func (uc *DepositUseCase) fetchAccountCached(ctx context.Context, accountNumber string) (*domain.TermDepositAccount, error) {
	key := accountCacheKey(accountNumber)

	if cached, err := uc.cache.Get(ctx, key); err == nil && cached != "" {
		var account domain.TermDepositAccount
		if err := json.Unmarshal([]byte(cached), &account); err == nil {
			return &account, nil
		}
	}

	account, err := uc.ledger.FetchAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(account); err == nil {
		_ = uc.cache.Set(ctx, key, string(data), accountCacheTTL)
	}

	return account, nil
}

func (uc *DepositUseCase) invalidate(ctx context.Context, accountNumber string) {
	_ = uc.cache.Delete(ctx, accountCacheKey(accountNumber))
	_ = uc.cache.Delete(ctx, transactionCacheKey(accountNumber))
}

// recordAudit persists the outcome of a committed (or refused) mutation.
// Audit persistence is best effort and never blocks the action itself.
func (uc *DepositUseCase) recordAudit(ctx context.Context, action domain.AuditAction, actor string, account *domain.TermDepositAccount, reason string, after domain.JSON, actionErr error) {
	log := &domain.AuditLog{
		ID:            uc.idGen.Generate(),
		Actor:         actor,
		Action:        string(action),
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		Reason:        reason,
		BeforeState:   domain.MarshalState(account),
		AfterState:    after,
		Status:        string(domain.AuditStatusSuccess),
		CreatedAt:     time.Now().UTC(),
	}

	if actionErr != nil {
		log.Status = string(domain.AuditStatusFailure)
		log.ErrorMessage = actionErr.Error()
		log.AfterState = nil
	}

	_ = uc.auditRepo.Create(ctx, log)
}
