package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nalacredit/depositcore/internal/domain"
	"github.com/nalacredit/depositcore/internal/usecase"
	"github.com/nalacredit/depositcore/internal/usecase/mocks"
)

func record(id, rawType, rawStatus string, amount int64, at time.Time) domain.TransactionRecord {
	return domain.TransactionRecord{
		ID:              id,
		Reference:       "REF-" + id,
		AccountNumber:   "TD-100",
		Amount:          decimal.NewFromInt(amount),
		Currency:        domain.CurrencyHTG,
		TransactionDate: at,
		RawType:         rawType,
		RawStatus:       rawStatus,
	}
}

func TestTransactionUseCase_ListTransactions(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	gateway := mocks.NewStubLedgerGateway()
	account := activeAccount()
	gateway.Seed(account, []domain.TransactionRecord{
		record("1", "Versement initial", "", 50000, base),
		record("2", "Retrait", "COMPLETED", 10000, base.Add(48*time.Hour)),
		record("3", "Dépôt", "ANNULÉ", 5000, base.Add(72*time.Hour)),
		record("4", "Frais divers", "2", 200, base.Add(96*time.Hour)),
	})

	uc := usecase.NewTransactionUseCase(gateway, mocks.NewStubCache(), nil)

	view, err := uc.ListTransactions(context.Background(), "TD-100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(view.Transactions) != 4 {
		t.Fatalf("expected 4 transactions, got %d", len(view.Transactions))
	}

	// Newest first.
	for i := 1; i < len(view.Transactions); i++ {
		if view.Transactions[i].TransactionDate.After(view.Transactions[i-1].TransactionDate) {
			t.Fatal("expected newest-first ordering")
		}
	}

	first := view.Transactions[0]
	if first.ID != "4" || first.Type != domain.TypeOther || first.Status != domain.StatusCompleted {
		t.Errorf("unexpected head classification: %+v", first)
	}

	var cancelled usecase.TransactionView
	for _, tx := range view.Transactions {
		if tx.ID == "3" {
			cancelled = tx
		}
	}
	if cancelled.Status != domain.StatusCancelled {
		t.Errorf("expected canonical CANCELLED, got %s", cancelled.Status)
	}
	if cancelled.DisplayStatus != domain.StatusCompleted {
		t.Errorf("expected cancelled deposit displayed as COMPLETED, got %s", cancelled.DisplayStatus)
	}

	// The cancelled deposit stays out of the totals even though its display
	// status reads COMPLETED.
	if !view.Summary.Deposits[domain.CurrencyHTG].Equal(decimal.NewFromInt(50000)) {
		t.Errorf("expected deposit total 50000, got %s", view.Summary.Deposits[domain.CurrencyHTG])
	}
	if !view.Summary.Withdrawals[domain.CurrencyHTG].Equal(decimal.NewFromInt(10000)) {
		t.Errorf("expected withdrawal total 10000, got %s", view.Summary.Withdrawals[domain.CurrencyHTG])
	}
	if view.Summary.Count != 4 {
		t.Errorf("expected count 4, got %d", view.Summary.Count)
	}
}

func TestTransactionUseCase_ListTransactions_ExcludesFailedFromTotals(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	gateway := mocks.NewStubLedgerGateway()
	gateway.Seed(activeAccount(), []domain.TransactionRecord{
		record("1", "Versement", "COMPLETED", 20000, base),
		record("2", "Versement", "Échec", 7000, base.Add(24*time.Hour)),
		record("3", "Retrait", "Échoué", 3000, base.Add(48*time.Hour)),
	})

	uc := usecase.NewTransactionUseCase(gateway, mocks.NewStubCache(), nil)

	view, err := uc.ListTransactions(context.Background(), "TD-100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both French failure spellings normalize to FAILED and stay out of
	// the totals.
	if !view.Summary.Deposits[domain.CurrencyHTG].Equal(decimal.NewFromInt(20000)) {
		t.Errorf("expected deposit total 20000, got %s", view.Summary.Deposits[domain.CurrencyHTG])
	}
	if !view.Summary.Withdrawals[domain.CurrencyHTG].IsZero() {
		t.Errorf("expected withdrawal total 0, got %s", view.Summary.Withdrawals[domain.CurrencyHTG])
	}
	for _, tx := range view.Transactions {
		if (tx.ID == "2" || tx.ID == "3") && tx.Status != domain.StatusFailed {
			t.Errorf("transaction %s: expected FAILED, got %s", tx.ID, tx.Status)
		}
	}
}

func TestTransactionUseCase_ListTransactions_FlagsReversal(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	deposit := record("1", "DEPOSIT", "COMPLETED", 7500, base)
	reversal := record("2", "WITHDRAWAL", "COMPLETED", 7500, base.Add(2*time.Hour))
	reversal.Description = "REVERSAL of REF-1"

	gateway := mocks.NewStubLedgerGateway()
	gateway.Seed(activeAccount(), []domain.TransactionRecord{deposit, reversal})

	uc := usecase.NewTransactionUseCase(gateway, mocks.NewStubCache(), nil)

	view, err := uc.ListTransactions(context.Background(), "TD-100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, tx := range view.Transactions {
		switch tx.ID {
		case "1":
			if !tx.Reversed {
				t.Error("expected the deposit to be flagged as reversed")
			}
		case "2":
			if tx.Reversed {
				t.Error("only deposits carry the reversed flag")
			}
		}
	}
}

func TestTransactionUseCase_ListTransactions_CachesFeed(t *testing.T) {
	gateway := mocks.NewStubLedgerGateway()
	fetches := 0
	gateway.FetchTransactionsFunc = func(ctx context.Context, number string) ([]domain.TransactionRecord, error) {
		fetches++
		return []domain.TransactionRecord{record("1", "DEPOSIT", "", 100, time.Now().UTC())}, nil
	}

	uc := usecase.NewTransactionUseCase(gateway, mocks.NewStubCache(), nil)
	ctx := context.Background()

	if _, err := uc.ListTransactions(ctx, "TD-100"); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if _, err := uc.ListTransactions(ctx, "TD-100"); err != nil {
		t.Fatalf("second read: %v", err)
	}
	if fetches != 1 {
		t.Errorf("expected 1 upstream fetch, got %d", fetches)
	}
}

func TestTransactionUseCase_ListTransactions_UpstreamError(t *testing.T) {
	gateway := mocks.NewStubLedgerGateway()
	gateway.FetchTransactionsFunc = func(ctx context.Context, number string) ([]domain.TransactionRecord, error) {
		return nil, domain.ErrUpstreamUnavailable
	}

	uc := usecase.NewTransactionUseCase(gateway, mocks.NewStubCache(), nil)

	_, err := uc.ListTransactions(context.Background(), "TD-100")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}
