package settlement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/tripsplit/internal/domain"
)

var (
	// ErrNoItems is returned when an itemized split is requested without items.
	ErrNoItems = errors.New("itemized split requires at least one line item")
)

var hundred = decimal.NewFromInt(100)

// ItemizedInput is everything the itemized split calculator needs: the
// receipt's line items, its extras, and the allocation rule.
type ItemizedInput struct {
	Items  []domain.LineItem
	Extras domain.ExtraSet
	Rule   domain.AllocationRule
}

// ItemizedResult is the balanced outcome of an itemized split. Participants
// holds one breakdown per participant; Order lists participant ids by first
// appearance on the receipt. GrandTotal equals the sum of all participant
// totals exactly.
type ItemizedResult struct {
	Participants map[string]*domain.ParticipantBreakdown
	Order        []string
	GrandTotal   decimal.Decimal
}

// ComputeItemizedSplit turns line items, extras and an allocation rule into a
// complete per-participant breakdown. The result is exactly balanced: each
// extras category sums to its rounded global amount, and participant totals
// sum to the rounded receipt total, with any residual minor units surfaced as
// per-participant rounding adjustments.
func ComputeItemizedSplit(input ItemizedInput) (*ItemizedResult, error) {
	if len(input.Items) == 0 {
		return nil, ErrNoItems
	}
	if err := input.Rule.Validate(); err != nil {
		return nil, err
	}
	for _, item := range input.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if err := input.Extras.Validate(); err != nil {
		return nil, err
	}

	c := newItemizedCalc(input)
	c.allocateItems()
	c.allocateExtras()
	return c.finish()
}

// itemizedCalc holds the working state of one computation. All amounts are
// raw (unrounded) until finish().
type itemizedCalc struct {
	input ItemizedInput

	order []string // participant ids by first appearance

	rawItems    map[string]decimal.Decimal // all items
	rawTaxable  map[string]decimal.Decimal // taxable items only
	rawServiced map[string]decimal.Decimal // service-chargeable items only

	taxableAssigned  map[string]bool
	servicedAssigned map[string]bool

	// rawExtras[kind][user] is the unsigned raw allocation per category.
	rawExtras map[domain.ExtraKind]map[string]decimal.Decimal

	// resolved global extra amounts (unsigned)
	taxAmount decimal.Decimal
	feeTotal  decimal.Decimal

	contributions map[string][]domain.ItemContribution
}

func newItemizedCalc(input ItemizedInput) *itemizedCalc {
	return &itemizedCalc{
		input:            input,
		rawItems:         map[string]decimal.Decimal{},
		rawTaxable:       map[string]decimal.Decimal{},
		rawServiced:      map[string]decimal.Decimal{},
		taxableAssigned:  map[string]bool{},
		servicedAssigned: map[string]bool{},
		rawExtras:        map[domain.ExtraKind]map[string]decimal.Decimal{},
		contributions:    map[string][]domain.ItemContribution{},
	}
}

func (c *itemizedCalc) see(userID string) {
	if _, ok := c.rawItems[userID]; !ok {
		c.rawItems[userID] = decimal.Zero
		c.rawTaxable[userID] = decimal.Zero
		c.rawServiced[userID] = decimal.Zero
		c.order = append(c.order, userID)
	}
}

// allocateItems distributes every line item to its assignees and records the
// audit trail.
func (c *itemizedCalc) allocateItems() {
	for _, item := range c.input.Items {
		total := item.Total()
		for _, userID := range item.Assignment.Assignees() {
			c.see(userID)

			fraction := item.Assignment.FractionFor(userID)
			amount := total.Mul(fraction)

			c.rawItems[userID] = c.rawItems[userID].Add(amount)
			if item.Taxable {
				c.rawTaxable[userID] = c.rawTaxable[userID].Add(amount)
				c.taxableAssigned[userID] = true
			}
			if item.Serviced {
				c.rawServiced[userID] = c.rawServiced[userID].Add(amount)
				c.servicedAssigned[userID] = true
			}

			c.contributions[userID] = append(c.contributions[userID], domain.ItemContribution{
				ItemID:    item.ID,
				Name:      item.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Fraction:  fraction,
				Amount:    amount,
			})
		}
	}
}

func (c *itemizedCalc) sum(m map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, id := range c.order {
		total = total.Add(m[id])
	}
	return total
}

// qualifying returns the per-participant subtotal map and assignment set an
// extra kind is measured against: taxable items for tax, serviced items for
// tip, all items otherwise.
func (c *itemizedCalc) qualifying(kind domain.ExtraKind) (map[string]decimal.Decimal, map[string]bool) {
	switch kind {
	case domain.ExtraTax:
		return c.rawTaxable, c.taxableAssigned
	case domain.ExtraTip:
		return c.rawServiced, c.servicedAssigned
	default:
		all := make(map[string]bool, len(c.order))
		for _, id := range c.order {
			all[id] = true
		}
		return c.rawItems, all
	}
}

// resolveGlobal resolves an extra's global amount: flat value, or percent of
// its base subtotal. Tax and tip percent bases are restricted to their
// qualifying items when computed against the pre-tax items subtotal.
func (c *itemizedCalc) resolveGlobal(e domain.Extra) decimal.Decimal {
	if e.Type == domain.ExtraAmount {
		return e.Value
	}

	base := e.Base
	if base == domain.BaseNone {
		base = c.input.Rule.DefaultBase
	}

	var baseAmount decimal.Decimal
	switch base {
	case domain.BasePreTaxItems:
		qualifying, _ := c.qualifying(e.Kind)
		baseAmount = c.sum(qualifying)
	case domain.BasePostTax:
		baseAmount = c.sum(c.rawItems).Add(c.taxAmount)
	case domain.BasePostFees:
		baseAmount = c.sum(c.rawItems).Add(c.taxAmount).Add(c.feeTotal)
	}

	return e.Value.Div(hundred).Mul(baseAmount)
}

// spread distributes a resolved global extra amount across participants per
// the rule's split mode and records it under the extra's category. A zero
// qualifying base yields zero allocations, never a division by zero.
func (c *itemizedCalc) spread(kind domain.ExtraKind, global decimal.Decimal) {
	alloc := c.rawExtras[kind]
	if alloc == nil {
		alloc = map[string]decimal.Decimal{}
		c.rawExtras[kind] = alloc
	}
	if global.IsZero() {
		return
	}

	qualifying, assigned := c.qualifying(kind)

	switch c.input.Rule.Mode {
	case domain.SplitEven:
		n := 0
		for _, id := range c.order {
			if assigned[id] {
				n++
			}
		}
		if n == 0 {
			return
		}
		each := global.Div(decimal.NewFromInt(int64(n)))
		for _, id := range c.order {
			if assigned[id] {
				alloc[id] = alloc[id].Add(each)
			}
		}

	default: // proportional to the participant's share of the qualifying base
		baseTotal := c.sum(qualifying)
		if baseTotal.IsZero() {
			return
		}
		for _, id := range c.order {
			share := qualifying[id].Div(baseTotal)
			alloc[id] = alloc[id].Add(global.Mul(share))
		}
	}
}

// allocateExtras resolves tax, tip, each fee and each discount independently
// and spreads each across participants.
func (c *itemizedCalc) allocateExtras() {
	extras := c.input.Extras

	// Tax first: post-tax bases depend on it.
	if extras.Tax != nil {
		c.taxAmount = c.resolveGlobal(*extras.Tax)
		c.spread(domain.ExtraTax, c.taxAmount)
	}

	for _, fee := range extras.Fees {
		amount := c.resolveGlobal(fee)
		c.feeTotal = c.feeTotal.Add(amount)
		c.spread(domain.ExtraFee, amount)
	}

	if extras.Tip != nil {
		c.spread(domain.ExtraTip, c.resolveGlobal(*extras.Tip))
	}

	for _, discount := range extras.Discounts {
		c.spread(domain.ExtraDiscount, c.resolveGlobal(discount))
	}
}

// roundCategory rounds one raw allocation map so it sums exactly to the
// rounded global amount of the category.
func (c *itemizedCalc) roundCategory(raw map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	shares := make([]domain.Share, 0, len(c.order))
	for _, id := range c.order {
		shares = append(shares, domain.Share{UserID: id, Amount: raw[id]})
	}
	return domain.DistributeRounded(shares, c.input.Rule.Rounding)
}

// finish rounds every category and the grand totals, then assembles the
// breakdowns. The per-participant rounding adjustment is whatever remains of
// the final total after the independently rounded components.
func (c *itemizedCalc) finish() (*ItemizedResult, error) {
	roundedItems, err := c.roundCategory(c.rawItems)
	if err != nil {
		return nil, err
	}

	kinds := []domain.ExtraKind{domain.ExtraTax, domain.ExtraTip, domain.ExtraFee, domain.ExtraDiscount}
	roundedExtras := map[domain.ExtraKind]map[string]decimal.Decimal{}
	for _, kind := range kinds {
		raw, ok := c.rawExtras[kind]
		if !ok {
			continue
		}
		rounded, err := c.roundCategory(raw)
		if err != nil {
			return nil, fmt.Errorf("rounding %s allocations: %w", kind, err)
		}
		roundedExtras[kind] = rounded
	}

	// Raw grand totals carry full precision so the final rounding pass
	// balances the receipt as a whole.
	rawTotals := map[string]decimal.Decimal{}
	for _, id := range c.order {
		total := c.rawItems[id]
		for _, kind := range kinds {
			raw, ok := c.rawExtras[kind]
			if !ok {
				continue
			}
			total = total.Add(raw[id].Mul(kind.Sign()))
		}
		rawTotals[id] = total
	}
	finalTotals, err := c.roundCategory(rawTotals)
	if err != nil {
		return nil, err
	}

	result := &ItemizedResult{
		Participants: make(map[string]*domain.ParticipantBreakdown, len(c.order)),
		Order:        append([]string(nil), c.order...),
	}

	for _, id := range c.order {
		extras := map[domain.ExtraKind]decimal.Decimal{}
		extrasSum := decimal.Zero
		for _, kind := range kinds {
			rounded, ok := roundedExtras[kind]
			if !ok {
				continue
			}
			signed := rounded[id].Mul(kind.Sign())
			extras[kind] = signed
			extrasSum = extrasSum.Add(signed)
		}

		total := finalTotals[id]
		adjustment := total.Sub(roundedItems[id]).Sub(extrasSum)

		result.Participants[id] = &domain.ParticipantBreakdown{
			UserID:             id,
			ItemsSubtotal:      roundedItems[id],
			Extras:             extras,
			RoundingAdjustment: adjustment,
			Total:              total,
			Contributions:      c.contributions[id],
		}
		result.GrandTotal = result.GrandTotal.Add(total)
	}

	return result, nil
}
