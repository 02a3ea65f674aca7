package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SplitType selects how an expense's amount is divided among participants.
type SplitType string

const (
	// SplitTypeEven divides the amount equally among participants.
	SplitTypeEven SplitType = "even"
	// SplitTypeWeights divides the amount proportionally to participant weights.
	SplitTypeWeights SplitType = "weights"
	// SplitTypeItemized stores per-participant amounts computed by the
	// itemized split calculator.
	SplitTypeItemized SplitType = "itemized"
)

// Valid reports whether the split type is supported.
func (t SplitType) Valid() bool {
	switch t {
	case SplitTypeEven, SplitTypeWeights, SplitTypeItemized:
		return true
	}
	return false
}

// ExpenseParticipant is one participant's stake in an expense. Weight drives
// weighted splits; Amount, when set, is the pre-computed share from an
// itemized breakdown and takes precedence over any recomputation.
type ExpenseParticipant struct {
	UserID string
	Weight decimal.Decimal
	Amount *decimal.Decimal
}

// Expense is one shared payment made by a single payer on behalf of a set of
// participants.
type Expense struct {
	ID           string
	TripID       string
	Description  string
	PayerID      string
	Amount       decimal.Decimal
	Currency     CurrencyCode
	SplitType    SplitType
	Participants []ExpenseParticipant
	CreatedAt    time.Time
}

// Validate validates an expense before it is stored or aggregated.
func (e *Expense) Validate() error {
	if e.PayerID == "" {
		return ErrMissingPayer
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if !e.Currency.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, e.Currency)
	}
	if !e.SplitType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSplitType, e.SplitType)
	}
	if len(e.Participants) == 0 {
		return ErrNoParticipants
	}
	seen := make(map[string]struct{}, len(e.Participants))
	for _, p := range e.Participants {
		if _, dup := seen[p.UserID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, p.UserID)
		}
		seen[p.UserID] = struct{}{}
		if p.Weight.IsNegative() {
			return fmt.Errorf("%w: %s", ErrNegativeShare, p.UserID)
		}
	}
	return nil
}

// ParticipantIDs returns participant ids in input order.
func (e *Expense) ParticipantIDs() []string {
	ids := make([]string, 0, len(e.Participants))
	for _, p := range e.Participants {
		ids = append(ids, p.UserID)
	}
	return ids
}
