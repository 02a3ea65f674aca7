package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tripsplit/internal/adapter/http/dto"
	"github.com/iho/tripsplit/internal/usecase"
)

// TripHandler handles trip-related HTTP requests.
type TripHandler struct {
	tripUC *usecase.TripUseCase
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripUC *usecase.TripUseCase) *TripHandler {
	return &TripHandler{tripUC: tripUC}
}

// Create creates a new trip.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	trip, err := h.tripUC.CreateTrip(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create trip", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.TripFromDomain(trip))
}

// Get retrieves a trip by ID.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing trip ID", "")
		return
	}

	trip, err := h.tripUC.GetTrip(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get trip", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TripFromDomain(trip))
}

// List lists trips.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	trips, err := h.tripUC.ListTrips(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list trips", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TripsFromDomain(trips))
}
