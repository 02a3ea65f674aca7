package domain

import "github.com/shopspring/decimal"

// ItemContribution is one audit-trail entry: how much of one line item was
// allocated to a participant and at what fraction.
type ItemContribution struct {
	ItemID    string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Fraction  decimal.Decimal
	Amount    decimal.Decimal
}

// ParticipantBreakdown is one participant's fully-resolved share of an
// itemized expense. Computed fresh on every call and never mutated after
// construction.
type ParticipantBreakdown struct {
	UserID        string
	ItemsSubtotal decimal.Decimal

	// Extras maps category to the signed amount allocated to this
	// participant: tax/tip/fee positive, discount negative.
	Extras map[ExtraKind]decimal.Decimal

	// RoundingAdjustment absorbs the gap between the final rounded total and
	// the independently rounded components, so the accounting identity
	// Total - ItemsSubtotal - sum(Extras) == RoundingAdjustment holds.
	RoundingAdjustment decimal.Decimal

	Total decimal.Decimal

	// Contributions lists item allocations in receipt order.
	Contributions []ItemContribution
}

// ExtrasTotal returns the signed sum of all extras allocated to the participant.
func (b ParticipantBreakdown) ExtrasTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range b.Extras {
		sum = sum.Add(v)
	}
	return sum
}
