package usecase

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/nalacredit/depositcore/internal/domain"
)

// TransactionUseCase builds classified account statements from the raw
// movement feed.
type TransactionUseCase struct {
	ledger     LedgerGateway
	cache      Cache
	classifier *domain.Classifier
}

// NewTransactionUseCase creates a new TransactionUseCase. A nil classifier
// falls back to the default vocabularies.
func NewTransactionUseCase(ledger LedgerGateway, cache Cache, classifier *domain.Classifier) *TransactionUseCase {
	if classifier == nil {
		classifier = domain.NewClassifier(domain.ClassifierConfig{})
	}
	return &TransactionUseCase{
		ledger:     ledger,
		cache:      cache,
		classifier: classifier,
	}
}

// TransactionView is a raw movement enriched with its canonical
// classification. DisplayStatus is presentation only; Status drives every
// aggregate.
type TransactionView struct {
	domain.TransactionRecord

	Type          domain.CanonicalType
	Status        domain.CanonicalStatus
	DisplayStatus domain.CanonicalStatus
	Reversed      bool
}

// StatementSummary totals the effective movements per currency. Cancelled and
// failed transactions are excluded by canonical status; the display override
// never feeds the totals.
type StatementSummary struct {
	Deposits    map[domain.Currency]decimal.Decimal
	Withdrawals map[domain.Currency]decimal.Decimal
	Count       int
}

// StatementView is the classified history of one account, newest first.
type StatementView struct {
	AccountNumber string
	Transactions  []TransactionView
	Summary       StatementSummary
}

// ListTransactions fetches, classifies and summarizes the movement history of
// an account.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, accountNumber string) (*StatementView, error) {
	records, err := uc.fetchTransactionsCached(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	domain.SortByDateDesc(records)

	view := &StatementView{
		AccountNumber: accountNumber,
		Transactions:  make([]TransactionView, 0, len(records)),
		Summary: StatementSummary{
			Deposits:    make(map[domain.Currency]decimal.Decimal),
			Withdrawals: make(map[domain.Currency]decimal.Decimal),
			Count:       len(records),
		},
	}

	for _, record := range records {
		txType := uc.classifier.ClassifyType(record.RawType)
		status := uc.classifier.NormalizeStatus(record.RawStatus)

		tx := TransactionView{
			TransactionRecord: record,
			Type:              txType,
			Status:            status,
			DisplayStatus:     uc.classifier.DisplayStatus(record, status),
		}
		if txType == domain.TypeDeposit {
			tx.Reversed = uc.classifier.HasReversal(record, records)
		}
		view.Transactions = append(view.Transactions, tx)

		if status == domain.StatusCancelled || status == domain.StatusFailed {
			continue
		}
		switch txType {
		case domain.TypeDeposit:
			view.Summary.Deposits[record.Currency] = view.Summary.Deposits[record.Currency].Add(record.Amount)
		case domain.TypeWithdrawal:
			view.Summary.Withdrawals[record.Currency] = view.Summary.Withdrawals[record.Currency].Add(record.Amount)
		}
	}

	return view, nil
}

func transactionCacheKey(accountNumber string) string {
	return "transactions:" + accountNumber
}

func (uc *TransactionUseCase) fetchTransactionsCached(ctx context.Context, accountNumber string) ([]domain.TransactionRecord, error) {
	key := transactionCacheKey(accountNumber)

	if cached, err := uc.cache.Get(ctx, key); err == nil && cached != "" {
		var records []domain.TransactionRecord
		if err := json.Unmarshal([]byte(cached), &records); err == nil {
			return records, nil
		}
	}

	records, err := uc.ledger.FetchTransactions(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		_ = uc.cache.Set(ctx, key, string(data), transactionCacheTTL)
	}

	return records, nil
}
