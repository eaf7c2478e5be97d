package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/nalacredit/depositcore/internal/adapter/http/dto"
	"github.com/nalacredit/depositcore/internal/domain"
	"github.com/nalacredit/depositcore/internal/usecase"
)

// DepositService defines the behavior needed by AccountHandler.
type DepositService interface {
	GetAccount(ctx context.Context, accountNumber string) (*usecase.AccountView, error)
	PreviewClosure(ctx context.Context, accountNumber, reason string, penaltyPercent *decimal.Decimal) (*domain.ClosurePlan, error)
	Renew(ctx context.Context, accountNumber, actor string) (*usecase.AccountView, error)
	Close(ctx context.Context, accountNumber, actor, reason string, penaltyPercent *decimal.Decimal) (*domain.ClosurePlan, error)
	ToggleSuspend(ctx context.Context, accountNumber, actor string) (domain.AccountStatus, error)
	Delete(ctx context.Context, accountNumber, actor string) error
	Summarize(ctx context.Context) (*usecase.PortfolioSummary, error)
	ListAudit(ctx context.Context, accountNumber string, limit, offset int) ([]*domain.AuditLog, error)
}

// AccountHandler handles term deposit account HTTP requests.
type AccountHandler struct {
	depositUC DepositService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(depositUC DepositService) *AccountHandler {
	return &AccountHandler{depositUC: depositUC}
}

// Get retrieves an account with its derived maturity and interest fields.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "accountNumber")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	view, err := h.depositUC.GetAccount(r.Context(), number)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromView(view))
}

// Summary returns the portfolio maturity dashboard.
func (h *AccountHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.depositUC.Summarize(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to summarize portfolio", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PortfolioSummaryFromUseCase(summary))
}

// PreviewClose computes the closure breakdown without committing anything.
func (h *AccountHandler) PreviewClose(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "accountNumber")

	var req dto.CloseAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	plan, err := h.depositUC.PreviewClosure(r.Context(), number, req.Reason, req.PenaltyPercent)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to preview closure", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ClosurePlanFromDomain(plan))
}

// Close closes an account and returns the committed payout breakdown.
func (h *AccountHandler) Close(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "accountNumber")

	var req dto.CloseAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	plan, err := h.depositUC.Close(r.Context(), number, actorFrom(r), req.Reason, req.PenaltyPercent)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to close account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ClosurePlanFromDomain(plan))
}

// Renew rolls the account into a new term.
func (h *AccountHandler) Renew(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "accountNumber")

	view, err := h.depositUC.Renew(r.Context(), number, actorFrom(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to renew account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromView(view))
}

// ToggleSuspend flips the account between active and suspended.
func (h *AccountHandler) ToggleSuspend(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "accountNumber")

	status, err := h.depositUC.ToggleSuspend(r.Context(), number, actorFrom(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to toggle account status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ToggleStatusResponse{Status: string(status)})
}

// Delete removes a drained, non-active account.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "accountNumber")

	if err := h.depositUC.Delete(r.Context(), number, actorFrom(r)); err != nil {
		writeError(w, mapDomainError(err), "failed to delete account", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListAudit returns the local audit trail of an account.
func (h *AccountHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "accountNumber")
	limit := parseIntQuery(r, "limit", 0)
	offset := parseIntQuery(r, "offset", 0)

	logs, err := h.depositUC.ListAudit(r.Context(), number, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list audit trail", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
