package dto

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/tripsplit/internal/domain"
	"github.com/iho/tripsplit/internal/usecase"
)

// CreateTripRequest represents a request to create a trip.
type CreateTripRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTripRequest) ToUseCaseInput() usecase.CreateTripInput {
	return usecase.CreateTripInput{
		Name:    r.Name,
		Members: r.Members,
	}
}

// ParticipantRequest is one participant on a new expense.
type ParticipantRequest struct {
	UserID string          `json:"user_id"`
	Weight decimal.Decimal `json:"weight,omitempty"`
}

// AssignmentRequest describes who an item belongs to. Shares are optional;
// when present they override the even split among the assignees.
type AssignmentRequest struct {
	Assignees []string                   `json:"assignees,omitempty"`
	Shares    map[string]decimal.Decimal `json:"shares,omitempty"`
}

// ToDomain converts to a domain assignment.
func (r *AssignmentRequest) ToDomain() domain.Assignment {
	if len(r.Shares) > 0 {
		// Deterministic order regardless of JSON map iteration.
		userIDs := make([]string, 0, len(r.Shares))
		for userID := range r.Shares {
			userIDs = append(userIDs, userID)
		}
		sort.Strings(userIDs)

		shares := make([]domain.ShareFraction, 0, len(userIDs))
		for _, userID := range userIDs {
			shares = append(shares, domain.ShareFraction{UserID: userID, Fraction: r.Shares[userID]})
		}
		return domain.CustomAssignment(shares...)
	}
	return domain.EvenAssignment(r.Assignees...)
}

// LineItemRequest is one receipt line on an itemized expense.
type LineItemRequest struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Quantity   decimal.Decimal   `json:"quantity"`
	UnitPrice  decimal.Decimal   `json:"unit_price"`
	Taxable    *bool             `json:"taxable,omitempty"`
	Serviced   *bool             `json:"serviced,omitempty"`
	Assignment AssignmentRequest `json:"assignment"`
}

// ToDomain converts to a domain line item. Taxable and serviced default to
// true when omitted.
func (r *LineItemRequest) ToDomain() domain.LineItem {
	item := domain.LineItem{
		ID:         r.ID,
		Name:       r.Name,
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
		Taxable:    true,
		Serviced:   true,
		Assignment: r.Assignment.ToDomain(),
	}
	if r.Taxable != nil {
		item.Taxable = *r.Taxable
	}
	if r.Serviced != nil {
		item.Serviced = *r.Serviced
	}
	return item
}

// ExtraRequest is one tax, tip, fee or discount on an itemized expense.
type ExtraRequest struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
	Base  string          `json:"base,omitempty"`
}

func (r *ExtraRequest) toDomain(kind domain.ExtraKind) (domain.Extra, error) {
	if domain.ExtraType(r.Type) == domain.ExtraPercent {
		return domain.NewPercentExtra(kind, r.Value, domain.PercentBase(r.Base))
	}
	return domain.NewAmountExtra(kind, r.Value)
}

// ExtrasRequest groups the extras of an itemized expense.
type ExtrasRequest struct {
	Tax       *ExtraRequest  `json:"tax,omitempty"`
	Tip       *ExtraRequest  `json:"tip,omitempty"`
	Fees      []ExtraRequest `json:"fees,omitempty"`
	Discounts []ExtraRequest `json:"discounts,omitempty"`
}

// ToDomain converts to a domain extra set.
func (r *ExtrasRequest) ToDomain() (domain.ExtraSet, error) {
	var set domain.ExtraSet
	if r == nil {
		return set, nil
	}

	if r.Tax != nil {
		tax, err := r.Tax.toDomain(domain.ExtraTax)
		if err != nil {
			return set, err
		}
		set.Tax = &tax
	}
	if r.Tip != nil {
		tip, err := r.Tip.toDomain(domain.ExtraTip)
		if err != nil {
			return set, err
		}
		set.Tip = &tip
	}
	for _, f := range r.Fees {
		fee, err := f.toDomain(domain.ExtraFee)
		if err != nil {
			return set, err
		}
		set.Fees = append(set.Fees, fee)
	}
	for _, d := range r.Discounts {
		discount, err := d.toDomain(domain.ExtraDiscount)
		if err != nil {
			return set, err
		}
		set.Discounts = append(set.Discounts, discount)
	}

	return set, nil
}

// ItemizedRequest carries the receipt detail of an itemized expense.
type ItemizedRequest struct {
	Items  []LineItemRequest `json:"items"`
	Extras *ExtrasRequest    `json:"extras,omitempty"`
}

// CreateExpenseRequest represents a request to create an expense.
type CreateExpenseRequest struct {
	Description  string               `json:"description"`
	PayerID      string               `json:"payer_id"`
	Amount       decimal.Decimal      `json:"amount"`
	Currency     string               `json:"currency"`
	SplitType    string               `json:"split_type"`
	Participants []ParticipantRequest `json:"participants"`
	Itemized     *ItemizedRequest     `json:"itemized,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput(tripID string) (usecase.CreateExpenseInput, error) {
	input := usecase.CreateExpenseInput{
		TripID:      tripID,
		Description: r.Description,
		PayerID:     r.PayerID,
		Amount:      r.Amount,
		Currency:    domain.CurrencyCode(r.Currency),
		SplitType:   domain.SplitType(r.SplitType),
	}
	for _, p := range r.Participants {
		input.Participants = append(input.Participants, usecase.ParticipantInput{
			UserID: p.UserID,
			Weight: p.Weight,
		})
	}

	if r.Itemized != nil {
		itemized := &usecase.ItemizedInput{}
		for _, item := range r.Itemized.Items {
			itemized.Items = append(itemized.Items, item.ToDomain())
		}
		extras, err := r.Itemized.Extras.ToDomain()
		if err != nil {
			return input, err
		}
		itemized.Extras = extras
		input.Itemized = itemized
	}

	return input, nil
}
