package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/tripsplit/internal/domain"
	"github.com/iho/tripsplit/internal/usecase"
)

func TestTripUseCase_CreateTrip(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateTripInput
		expectedErr error
	}{
		{
			name:  "valid trip",
			input: usecase.CreateTripInput{Name: "Bali", Members: []string{"alice", "bob"}},
		},
		{
			name:  "single member",
			input: usecase.CreateTripInput{Name: "Solo", Members: []string{"alice"}},
		},
		{
			name:        "no members",
			input:       usecase.CreateTripInput{Name: "Empty"},
			expectedErr: usecase.ErrNoMembers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeTripRepo()
			uc := usecase.NewTripUseCase(repo, &seqIDGen{})

			trip, err := uc.CreateTrip(context.Background(), tt.input)
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if trip.ID == "" {
				t.Error("expected generated trip ID")
			}
			if got, err := repo.GetByID(context.Background(), trip.ID); err != nil || got.Name != tt.input.Name {
				t.Errorf("trip not stored: %v", err)
			}
		})
	}
}

func TestTripUseCase_CreateTrip_RepoError(t *testing.T) {
	repo := newFakeTripRepo()
	wantErr := errors.New("connection reset")
	repo.CreateFunc = func(ctx context.Context, trip *domain.Trip) error {
		return wantErr
	}

	uc := usecase.NewTripUseCase(repo, &seqIDGen{})
	if _, err := uc.CreateTrip(context.Background(), usecase.CreateTripInput{Name: "x", Members: []string{"a"}}); !errors.Is(err, wantErr) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestTripUseCase_GetTrip(t *testing.T) {
	repo := newFakeTripRepo()
	uc := usecase.NewTripUseCase(repo, &seqIDGen{})

	if _, err := uc.GetTrip(context.Background(), "missing"); !errors.Is(err, domain.ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}

	trip, err := uc.CreateTrip(context.Background(), usecase.CreateTripInput{Name: "Bali", Members: []string{"alice"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := uc.GetTrip(context.Background(), trip.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Bali" || !got.HasMember("alice") {
		t.Errorf("unexpected trip %+v", got)
	}
}
