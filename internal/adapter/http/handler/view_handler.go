package handler

import (
	"context"
	"encoding/json"
	"iter"
	"net/http"

	"github.com/iho/ledgerview/internal/adapter/http/dto"
	"github.com/iho/ledgerview/internal/domain"
	"github.com/iho/ledgerview/internal/usecase"
)

// ViewService is what the view endpoints need from the engine.
type ViewService interface {
	Refresh(ctx context.Context) error
	Submit(ctx context.Context, input usecase.SubmitInput) (domain.TransactionRecord, error)
	Transactions() iter.Seq[domain.TransactionRecord]
	Account() (domain.AccountView, error)
}

// ViewHandler serves the reconciled view over HTTP.
type ViewHandler struct {
	service ViewService
}

// NewViewHandler creates a new ViewHandler.
func NewViewHandler(service ViewService) *ViewHandler {
	return &ViewHandler{service: service}
}

// ListTransactions returns the reconciled transaction list, newest first.
func (h *ViewHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	responses := make([]dto.TransactionResponse, 0)
	for rec := range h.service.Transactions() {
		responses = append(responses, dto.TransactionFromDomain(rec))
	}

	writeJSON(w, http.StatusOK, responses)
}

// GetAccount returns the bound account and its last observed balance.
func (h *ViewHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Account()
	if err != nil {
		writeError(w, mapDomainError(err), "no account bound", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(view))
}

// SubmitTransfer submits a transfer to the ledger. The 202 mirrors the
// ledger's own asynchronous acceptance; the returned record is QUEUED and
// settles later.
func (h *ViewHandler) SubmitTransfer(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	rec, err := h.service.Submit(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to submit transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, dto.TransactionFromDomain(rec))
}

// Refresh forces an authoritative history fetch.
func (h *ViewHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		writeError(w, mapDomainError(err), "failed to refresh history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}
