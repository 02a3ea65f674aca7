package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/tripsplit/internal/adapter/http/dto"
	"github.com/iho/tripsplit/internal/domain"
	"github.com/iho/tripsplit/internal/settlement"
	"github.com/iho/tripsplit/internal/usecase"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrTripNotFound),
		errors.Is(err, domain.ErrExpenseNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrNotTripMember),
		errors.Is(err, usecase.ErrNoMembers),
		errors.Is(err, domain.ErrUnknownCurrency),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidSplitType),
		errors.Is(err, domain.ErrMissingPayer),
		errors.Is(err, domain.ErrNoParticipants),
		errors.Is(err, domain.ErrSharesNotUnit),
		errors.Is(err, domain.ErrNegativeShare),
		errors.Is(err, domain.ErrNoAssignees),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrNegativeUnitPrice),
		errors.Is(err, domain.ErrInvalidExtraType),
		errors.Is(err, domain.ErrInvalidExtraKind),
		errors.Is(err, domain.ErrInvalidPercentBase),
		errors.Is(err, domain.ErrMissingPercentBase),
		errors.Is(err, domain.ErrNegativeValue),
		errors.Is(err, domain.ErrSelfTransfer),
		errors.Is(err, settlement.ErrNoItems):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
