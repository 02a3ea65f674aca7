package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MinimalTransfer is one payer-to-receiver payment in a settlement plan.
type MinimalTransfer struct {
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal
	ComputedAt time.Time
}

// Validate validates a single transfer.
func (t *MinimalTransfer) Validate() error {
	if t.FromUserID == t.ToUserID {
		return ErrSelfTransfer
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveAmount
	}
	return nil
}

// TransferBreakdownEntry explains one expense's direct bilateral contribution
// to a pairwise debt.
type TransferBreakdownEntry struct {
	ExpenseID   string
	Description string
	// Amount is signed: positive increases what "from" owes "to", negative
	// decreases it.
	Amount decimal.Decimal
}

// TransferBreakdown explains the raw pairwise debt between two participants
// in terms of the expenses that produced it. It deliberately ignores
// third-party-paid expenses: those affect the optimized transfer routing,
// not the direct debt between the pair.
type TransferBreakdown struct {
	FromUserID string
	ToUserID   string
	Total      decimal.Decimal
	Entries    []TransferBreakdownEntry
}
