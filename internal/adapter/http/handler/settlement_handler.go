package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tripsplit/internal/adapter/http/dto"
	"github.com/iho/tripsplit/internal/domain"
	"github.com/iho/tripsplit/internal/usecase"
)

// SettlementHandler handles settlement-related HTTP requests.
type SettlementHandler struct {
	settlementUC *usecase.SettlementUseCase
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC *usecase.SettlementUseCase) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC}
}

// Get computes and returns the settlement of a trip.
func (h *SettlementHandler) Get(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "id")
	if tripID == "" {
		writeError(w, http.StatusBadRequest, "missing trip ID", "")
		return
	}

	result, err := h.settlementUC.ComputeSettlement(r.Context(), tripID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute settlement", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementFromResult(result))
}

// Breakdown explains the direct debt between two trip members.
func (h *SettlementHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "id")
	if tripID == "" {
		writeError(w, http.StatusBadRequest, "missing trip ID", "")
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "missing from/to query parameters", "")
		return
	}

	currency := r.URL.Query().Get("currency")
	if currency == "" {
		currency = "USD"
	}

	breakdown, err := h.settlementUC.GetTransferBreakdown(r.Context(), tripID, from, to, domain.CurrencyCode(currency))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute breakdown", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BreakdownFromDomain(breakdown))
}
