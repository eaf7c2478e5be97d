package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nalacredit/depositcore/internal/adapter/http/dto"
	"github.com/nalacredit/depositcore/internal/domain"
	"github.com/nalacredit/depositcore/internal/usecase"
)

type transactionServiceStub struct {
	listFn func(ctx context.Context, accountNumber string) (*usecase.StatementView, error)
}

func (s *transactionServiceStub) ListTransactions(ctx context.Context, accountNumber string) (*usecase.StatementView, error) {
	return s.listFn(ctx, accountNumber)
}

func TestTransactionHandler_ListByAccount(t *testing.T) {
	view := &usecase.StatementView{
		AccountNumber: "TD-100",
		Transactions: []usecase.TransactionView{
			{
				TransactionRecord: domain.TransactionRecord{
					ID:              "tx-1",
					Amount:          decimal.NewFromInt(5000),
					Currency:        domain.CurrencyHTG,
					TransactionDate: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
					RawType:         "Versement",
					RawStatus:       "ANNULÉ",
				},
				Type:          domain.TypeDeposit,
				Status:        domain.StatusCancelled,
				DisplayStatus: domain.StatusCompleted,
				Reversed:      true,
			},
		},
		Summary: usecase.StatementSummary{
			Deposits:    map[domain.Currency]decimal.Decimal{},
			Withdrawals: map[domain.Currency]decimal.Decimal{},
			Count:       1,
		},
	}

	handler := NewTransactionHandler(&transactionServiceStub{
		listFn: func(ctx context.Context, accountNumber string) (*usecase.StatementView, error) {
			return view, nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/deposits/TD-100/transactions", nil), "accountNumber", "TD-100")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.StatementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(resp.Transactions))
	}

	tx := resp.Transactions[0]
	if tx.Status != string(domain.StatusCancelled) {
		t.Errorf("expected canonical CANCELLED, got %s", tx.Status)
	}
	if tx.DisplayStatus != string(domain.StatusCompleted) {
		t.Errorf("expected display COMPLETED, got %s", tx.DisplayStatus)
	}
	if !tx.Reversed {
		t.Error("expected reversed flag to survive serialization")
	}
}

func TestTransactionHandler_ListByAccount_UpstreamDown(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		listFn: func(ctx context.Context, accountNumber string) (*usecase.StatementView, error) {
			return nil, domain.ErrUpstreamUnavailable
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/deposits/TD-100/transactions", nil), "accountNumber", "TD-100")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}
