package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nalacredit/depositcore/internal/domain"
	"github.com/nalacredit/depositcore/internal/infrastructure/metrics"
)

// Client implements usecase.LedgerGateway against the core-banking REST API.
// Reads retry with exponential backoff; mutations are sent exactly once
// because the upstream serializes them per account and offers no idempotency
// key to make a resend safe.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	metrics    *metrics.Metrics

	retryInitialInterval time.Duration
	retryMaxInterval     time.Duration
	retryMaxElapsedTime  time.Duration
}

// NewClient creates a ledger client. m may be nil.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger, m *metrics.Metrics) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "ledger_client").Logger(),
		metrics:    m,

		retryInitialInterval: 100 * time.Millisecond,
		retryMaxInterval:     2 * time.Second,
		retryMaxElapsedTime:  15 * time.Second,
	}
}

// FetchAccount retrieves one term deposit account by its account number.
func (c *Client) FetchAccount(ctx context.Context, accountNumber string) (account *domain.TermDepositAccount, err error) {
	defer c.observe("fetch_account", time.Now(), &err)

	var dto accountDTO
	path := "/api/term-savings/" + url.PathEscape(accountNumber)
	if err := c.getJSON(ctx, path, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

// FetchAccounts retrieves the whole book. Records that fail validation are
// skipped with a warning so one corrupt row cannot blank the dashboard.
func (c *Client) FetchAccounts(ctx context.Context) (accounts []*domain.TermDepositAccount, err error) {
	defer c.observe("fetch_accounts", time.Now(), &err)

	var dtos []accountDTO
	if err := c.getJSON(ctx, "/api/term-savings", &dtos); err != nil {
		return nil, err
	}

	accounts = make([]*domain.TermDepositAccount, 0, len(dtos))
	for _, dto := range dtos {
		account, err := dto.toDomain()
		if err != nil {
			c.logger.Warn().Err(err).Str("account_number", dto.AccountNumber).Msg("skipping invalid account record")
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// FetchTransactions retrieves the raw movement history of an account.
func (c *Client) FetchTransactions(ctx context.Context, accountNumber string) (records []domain.TransactionRecord, err error) {
	defer c.observe("fetch_transactions", time.Now(), &err)

	var dtos []transactionDTO
	path := "/api/term-savings/" + url.PathEscape(accountNumber) + "/transactions"
	if err := c.getJSON(ctx, path, &dtos); err != nil {
		return nil, err
	}

	records = make([]domain.TransactionRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, err := dto.toDomain()
		if err != nil {
			c.logger.Warn().Err(err).Str("transaction_id", dto.ID).Msg("skipping invalid transaction record")
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// CommitRenew submits a renewal and returns the account as rewritten by the
// ledger.
func (c *Client) CommitRenew(ctx context.Context, accountID string) (account *domain.TermDepositAccount, err error) {
	defer c.observe("commit_renew", time.Now(), &err)
	defer c.recordLifecycle("renew", &err)

	var dto accountDTO
	path := "/api/term-savings/" + url.PathEscape(accountID) + "/renew"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

// CommitClose submits a closure. penaltyPercent is omitted for matured
// closures.
func (c *Client) CommitClose(ctx context.Context, accountID, reason string, penaltyPercent *decimal.Decimal) (err error) {
	defer c.observe("commit_close", time.Now(), &err)
	defer c.recordLifecycle("close", &err)

	body := closeRequestDTO{Reason: reason, PenaltyPercent: penaltyPercent}
	path := "/api/term-savings/" + url.PathEscape(accountID) + "/close"
	return c.doJSON(ctx, http.MethodPost, path, body, nil)
}

// CommitToggleSuspend flips the account between active and suspended.
func (c *Client) CommitToggleSuspend(ctx context.Context, accountID string) (err error) {
	defer c.observe("commit_toggle_status", time.Now(), &err)
	defer c.recordLifecycle("toggle_status", &err)

	path := "/api/term-savings/" + url.PathEscape(accountID) + "/toggle-status"
	return c.doJSON(ctx, http.MethodPost, path, nil, nil)
}

// CommitDelete removes the account record upstream.
func (c *Client) CommitDelete(ctx context.Context, accountID string) (err error) {
	defer c.observe("commit_delete", time.Now(), &err)
	defer c.recordLifecycle("delete", &err)

	path := "/api/term-savings/" + url.PathEscape(accountID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) observe(operation string, start time.Time, err *error) {
	outcome := "success"
	if *err != nil {
		outcome = "error"
	}
	c.metrics.RecordUpstream(operation, outcome, time.Since(start).Seconds())
}

func (c *Client) recordLifecycle(action string, err *error) {
	outcome := "success"
	if *err != nil {
		outcome = "error"
	}
	c.metrics.RecordLifecycle(action, outcome)
}

// getJSON performs an idempotent GET with retries. Transport failures and
// 5xx responses retry; everything else is permanent.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInitialInterval
	b.MaxInterval = c.retryMaxInterval
	b.MaxElapsedTime = c.retryMaxElapsedTime

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := c.doJSON(ctx, http.MethodGet, path, nil, out)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return backoff.Permanent(err)
		}
		c.logger.Warn().Err(err).Str("path", path).Int("attempt", attempt).Msg("retrying upstream read")
		return err
	}, backoff.WithContext(b, ctx))
}

// isRetryable treats only transient upstream failures as retryable. A 501
// means the ledger rejected the operation for this account's state, not that
// it is down, so it maps elsewhere and stays permanent.
func isRetryable(err error) bool {
	return errors.Is(err, domain.ErrUpstreamUnavailable)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapStatus(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrInvalidRecord, err)
	}
	return nil
}

// mapStatus translates upstream HTTP statuses to the domain error taxonomy.
func (c *Client) mapStatus(resp *http.Response) error {
	var payload errorResponseDTO
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload)
	detail := payload.Message
	if detail == "" {
		detail = payload.Error
	}
	if detail == "" {
		detail = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, detail)
	case http.StatusNotImplemented:
		return fmt.Errorf("%w: %s", domain.ErrNotReady, detail)
	case http.StatusForbidden, http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrForbidden, detail)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrConflict, detail)
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrInvalidState, detail)
	default:
		if resp.StatusCode >= 500 {
			return fmt.Errorf("%w: %s", domain.ErrUpstreamUnavailable, detail)
		}
		return fmt.Errorf("upstream ledger: %s", detail)
	}
}
