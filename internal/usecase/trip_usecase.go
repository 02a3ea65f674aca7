package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/tripsplit/internal/domain"
	"github.com/iho/tripsplit/internal/infrastructure/metrics"
)

var (
	// ErrNoMembers is returned when a trip is created without members.
	ErrNoMembers = errors.New("trip requires at least one member")
)

// TripUseCase handles trip business logic.
type TripUseCase struct {
	tripRepo TripRepository
	idGen    IDGenerator
}

// NewTripUseCase creates a new TripUseCase.
func NewTripUseCase(tripRepo TripRepository, idGen IDGenerator) *TripUseCase {
	return &TripUseCase{tripRepo: tripRepo, idGen: idGen}
}

// CreateTripInput represents input for creating a trip.
type CreateTripInput struct {
	Name    string
	Members []string
}

// CreateTrip creates a new trip.
func (uc *TripUseCase) CreateTrip(ctx context.Context, input CreateTripInput) (*domain.Trip, error) {
	if len(input.Members) == 0 {
		return nil, ErrNoMembers
	}

	trip := &domain.Trip{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Members:   input.Members,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	metrics.TripsCreated.Inc()
	return trip, nil
}

// GetTrip retrieves a trip by ID.
func (uc *TripUseCase) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	return uc.tripRepo.GetByID(ctx, id)
}

// ListTrips lists trips.
func (uc *TripUseCase) ListTrips(ctx context.Context, limit, offset int) ([]*domain.Trip, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.tripRepo.List(ctx, limit, offset)
}
