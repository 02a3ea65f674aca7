package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAssignmentValidate(t *testing.T) {
	tests := []struct {
		name        string
		assignment  Assignment
		expectedErr error
	}{
		{
			name:       "even with participants",
			assignment: EvenAssignment("a", "b"),
		},
		{
			name:        "even without participants",
			assignment:  EvenAssignment(),
			expectedErr: ErrNoAssignees,
		},
		{
			name: "custom summing to one",
			assignment: CustomAssignment(
				ShareFraction{UserID: "a", Fraction: d("0.75")},
				ShareFraction{UserID: "b", Fraction: d("0.25")},
			),
		},
		{
			name: "custom under-allocated rejected",
			assignment: CustomAssignment(
				ShareFraction{UserID: "a", Fraction: d("0.5")},
				ShareFraction{UserID: "b", Fraction: d("0.4")},
			),
			expectedErr: ErrSharesNotUnit,
		},
		{
			name: "custom over-allocated rejected",
			assignment: CustomAssignment(
				ShareFraction{UserID: "a", Fraction: d("0.6")},
				ShareFraction{UserID: "b", Fraction: d("0.6")},
			),
			expectedErr: ErrSharesNotUnit,
		},
		{
			name: "negative fraction rejected",
			assignment: CustomAssignment(
				ShareFraction{UserID: "a", Fraction: d("1.5")},
				ShareFraction{UserID: "b", Fraction: d("-0.5")},
			),
			expectedErr: ErrNegativeShare,
		},
		{
			name:        "unknown kind",
			assignment:  Assignment{Kind: "weighted"},
			expectedErr: ErrInvalidAssignment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.assignment.Validate()
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAssignmentFractionFor(t *testing.T) {
	even := EvenAssignment("a", "b", "c", "d")
	if got := even.FractionFor("b"); !got.Equal(d("0.25")) {
		t.Fatalf("even fraction = %s, want 0.25", got)
	}
	if got := even.FractionFor("stranger"); !got.IsZero() {
		t.Fatalf("stranger fraction = %s, want 0", got)
	}

	custom := CustomAssignment(
		ShareFraction{UserID: "a", Fraction: d("0.7")},
		ShareFraction{UserID: "b", Fraction: d("0.3")},
	)
	if got := custom.FractionFor("a"); !got.Equal(d("0.7")) {
		t.Fatalf("custom fraction = %s, want 0.7", got)
	}
}

func TestLineItemTotalAndValidate(t *testing.T) {
	item := LineItem{
		ID:         "it-1",
		Name:       "Pizza",
		Quantity:   d("2"),
		UnitPrice:  d("9.50"),
		Assignment: EvenAssignment("a"),
	}
	if !item.Total().Equal(d("19.00")) {
		t.Fatalf("total = %s, want 19.00", item.Total())
	}
	if err := item.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item.Quantity = decimal.Zero
	if err := item.Validate(); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	item.Quantity = d("1")
	item.UnitPrice = d("-5")
	if err := item.Validate(); !errors.Is(err, ErrNegativeUnitPrice) {
		t.Fatalf("expected ErrNegativeUnitPrice, got %v", err)
	}
}
