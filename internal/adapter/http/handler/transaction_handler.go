package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nalacredit/depositcore/internal/adapter/http/dto"
	"github.com/nalacredit/depositcore/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	ListTransactions(ctx context.Context, accountNumber string) (*usecase.StatementView, error)
}

// TransactionHandler handles classified statement requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// ListByAccount returns the classified movement history of an account.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "accountNumber")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	view, err := h.transactionUC.ListTransactions(r.Context(), number)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromView(view))
}
