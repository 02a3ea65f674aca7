package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/tripsplit/internal/domain"
	"github.com/iho/tripsplit/internal/infrastructure/postgres/generated"
)

// TripRepository implements usecase.TripRepository.
type TripRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTripRepository creates a new TripRepository.
func NewTripRepository(pool *pgxpool.Pool) *TripRepository {
	return &TripRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create stores a trip and its member list. The member insert order is the
// order members were listed on creation.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	queries := r.queries.WithTx(tx)
	if _, err := queries.CreateTrip(ctx, generated.CreateTripParams{
		ID:        trip.ID,
		Name:      trip.Name,
		CreatedAt: timeToPgTimestamptz(trip.CreatedAt),
	}); err != nil {
		return err
	}

	for i, userID := range trip.Members {
		if err := queries.CreateTripMember(ctx, generated.CreateTripMemberParams{
			TripID:   trip.ID,
			UserID:   userID,
			Position: int32(i),
		}); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a trip with its members.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	row, err := r.queries.GetTripByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTripNotFound
		}

		return nil, err
	}

	members, err := r.queries.GetTripMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	trip := &domain.Trip{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt.Time,
	}
	for _, m := range members {
		trip.Members = append(trip.Members, m.UserID)
	}

	return trip, nil
}

// List retrieves trips ordered by creation time, newest first.
func (r *TripRepository) List(ctx context.Context, limit, offset int) ([]*domain.Trip, error) {
	rows, err := r.queries.ListTrips(ctx, generated.ListTripsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	trips := make([]*domain.Trip, 0, len(rows))
	for _, row := range rows {
		members, err := r.queries.GetTripMembers(ctx, row.ID)
		if err != nil {
			return nil, err
		}

		trip := &domain.Trip{
			ID:        row.ID,
			Name:      row.Name,
			CreatedAt: row.CreatedAt.Time,
		}
		for _, m := range members {
			trip.Members = append(trip.Members, m.UserID)
		}
		trips = append(trips, trip)
	}

	return trips, nil
}
