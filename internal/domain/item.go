package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AssignmentKind selects how a line item is split among participants.
type AssignmentKind string

const (
	// AssignEven splits the item equally among the listed participants.
	AssignEven AssignmentKind = "even"
	// AssignCustom splits the item by explicit per-participant fractions.
	AssignCustom AssignmentKind = "custom"
)

// ShareFraction is one participant's fraction of a custom-assigned item.
type ShareFraction struct {
	UserID   string
	Fraction decimal.Decimal
}

// Assignment describes who an item belongs to. Even assignments list
// participants; custom assignments carry explicit fractions that must sum
// to 1. Over- or under-allocated custom shares are rejected at construction,
// never silently normalized.
type Assignment struct {
	Kind         AssignmentKind
	Participants []string
	Shares       []ShareFraction
}

// EvenAssignment builds an even split among participants.
func EvenAssignment(participants ...string) Assignment {
	return Assignment{Kind: AssignEven, Participants: participants}
}

// CustomAssignment builds a custom split from explicit fractions.
func CustomAssignment(shares ...ShareFraction) Assignment {
	return Assignment{Kind: AssignCustom, Shares: shares}
}

// Validate checks the assignment before any calculation runs.
func (a Assignment) Validate() error {
	switch a.Kind {
	case AssignEven:
		if len(a.Participants) == 0 {
			return ErrNoAssignees
		}
		return nil

	case AssignCustom:
		if len(a.Shares) == 0 {
			return ErrNoAssignees
		}
		sum := decimal.Zero
		for _, s := range a.Shares {
			if s.Fraction.IsNegative() {
				return fmt.Errorf("%w: %s has %s", ErrNegativeShare, s.UserID, s.Fraction)
			}
			sum = sum.Add(s.Fraction)
		}
		if !sum.Equal(decimal.New(1, 0)) {
			return fmt.Errorf("%w: got %s", ErrSharesNotUnit, sum)
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrInvalidAssignment, a.Kind)
	}
}

// Assignees returns the participant ids the item is assigned to, in input order.
func (a Assignment) Assignees() []string {
	if a.Kind == AssignCustom {
		ids := make([]string, 0, len(a.Shares))
		for _, s := range a.Shares {
			ids = append(ids, s.UserID)
		}
		return ids
	}
	return a.Participants
}

// FractionFor returns the participant's fraction of the item.
func (a Assignment) FractionFor(userID string) decimal.Decimal {
	switch a.Kind {
	case AssignEven:
		for _, p := range a.Participants {
			if p == userID {
				return decimal.New(1, 0).Div(decimal.NewFromInt(int64(len(a.Participants))))
			}
		}
	case AssignCustom:
		for _, s := range a.Shares {
			if s.UserID == userID {
				return s.Fraction
			}
		}
	}
	return decimal.Zero
}

// LineItem is a single purchasable line on a receipt.
type LineItem struct {
	ID         string
	Name       string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	Taxable    bool
	Serviced   bool // subject to tip / service charge
	Assignment Assignment
}

// Total is quantity times unit price, unrounded.
func (li LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Validate checks the line item before any calculation runs.
func (li LineItem) Validate() error {
	if li.Quantity.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: item %s", ErrInvalidQuantity, li.ID)
	}
	if li.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: item %s", ErrNegativeUnitPrice, li.ID)
	}
	if err := li.Assignment.Validate(); err != nil {
		return fmt.Errorf("item %s: %w", li.ID, err)
	}
	return nil
}
