package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalacredit/depositcore/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, 5*time.Second, zerolog.Nop(), nil)
	c.retryInitialInterval = time.Millisecond
	c.retryMaxInterval = 2 * time.Millisecond
	c.retryMaxElapsedTime = 100 * time.Millisecond
	return c
}

func TestClient_FetchAccount(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/term-savings/TD-100", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "acc-1",
			"accountNumber": "TD-100",
			"customerName": "Jean Baptiste",
			"currency": 0,
			"balance": "150000.50",
			"term": "TWELVE_MONTHS",
			"interestRate": 18,
			"openingDate": "2025-06-30T00:00:00",
			"status": "Active"
		}`))
	}))

	account, err := client.FetchAccount(context.Background(), "TD-100")
	require.NoError(t, err)

	assert.Equal(t, "acc-1", account.ID)
	assert.Equal(t, domain.CurrencyHTG, account.Currency)
	assert.Equal(t, domain.TermTwelveMonths, account.Term)
	assert.Equal(t, domain.StatusActive, account.Status)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("150000.50")))
	require.NotNil(t, account.InterestRate)
	assert.True(t, account.InterestRate.Equal(decimal.NewFromInt(18)))
	assert.Nil(t, account.MaturityDate)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), account.OpeningDate)
}

func TestClient_FetchAccount_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "no such account"})
	}))

	_, err := client.FetchAccount(context.Background(), "TD-404")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.Contains(t, err.Error(), "no such account")
}

func TestClient_FetchAccount_RetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{
			"id": "acc-1",
			"accountNumber": "TD-100",
			"currency": "HTG",
			"balance": 1000,
			"term": 3,
			"openingDate": "2026-01-15",
			"status": "ACTIVE"
		}`))
	}))

	account, err := client.FetchAccount(context.Background(), "TD-100")
	require.NoError(t, err)
	assert.Equal(t, int32(3), attempts.Load())
	assert.Equal(t, domain.TermThreeMonths, account.Term)
}

func TestClient_FetchAccount_NotReadyIsPermanent(t *testing.T) {
	var attempts atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotImplemented)
	}))

	_, err := client.FetchAccount(context.Background(), "TD-100")
	require.ErrorIs(t, err, domain.ErrNotReady)
	assert.Equal(t, int32(1), attempts.Load(), "501 must not retry")
}

func TestClient_FetchTransactions_SkipsInvalidRecords(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/term-savings/TD-100/transactions", r.URL.Path)
		w.Write([]byte(`[
			{"id": "tx-1", "amount": 500, "currency": 1, "transactionDate": "2026-02-01T10:30:00Z", "transactionType": "Versement", "status": "2"},
			{"id": "tx-2", "amount": 300, "currency": "XOF", "transactionDate": "2026-02-02T10:30:00Z", "transactionType": "Retrait"}
		]`))
	}))

	records, err := client.FetchTransactions(context.Background(), "TD-100")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "tx-1", records[0].ID)
	assert.Equal(t, domain.CurrencyUSD, records[0].Currency)
	assert.Equal(t, "Versement", records[0].RawType)
	assert.Equal(t, "2", records[0].RawStatus)
}

func TestClient_CommitClose_ForwardsPenalty(t *testing.T) {
	var body closeRequestDTO
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/term-savings/acc-1/close", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	}))

	penalty := decimal.RequireFromString("2.5")
	err := client.CommitClose(context.Background(), "acc-1", "client request", &penalty)
	require.NoError(t, err)

	assert.Equal(t, "client request", body.Reason)
	require.NotNil(t, body.PenaltyPercent)
	assert.True(t, body.PenaltyPercent.Equal(penalty))
}

func TestClient_CommitClose_OmitsPenaltyWhenMatured(t *testing.T) {
	var raw map[string]json.RawMessage
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
	}))

	require.NoError(t, client.CommitClose(context.Background(), "acc-1", "term ended", nil))
	_, present := raw["penaltyPercent"]
	assert.False(t, present)
}

func TestClient_CommitToggleSuspend_DoesNotRetry(t *testing.T) {
	var attempts atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := client.CommitToggleSuspend(context.Background(), "acc-1")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Equal(t, int32(1), attempts.Load(), "mutations are sent exactly once")
}

func TestClient_ConflictAndForbidden(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusConflict, domain.ErrConflict},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusUnprocessableEntity, domain.ErrInvalidState},
	}

	for _, tt := range tests {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		err := client.CommitDelete(context.Background(), "acc-1")
		assert.ErrorIs(t, err, tt.want)
	}
}
