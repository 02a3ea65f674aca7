package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExtraKind is the category of a receipt-level extra.
type ExtraKind string

const (
	ExtraTax      ExtraKind = "tax"
	ExtraTip      ExtraKind = "tip"
	ExtraFee      ExtraKind = "fee"
	ExtraDiscount ExtraKind = "discount"
)

// Valid reports whether the kind is one of the four categories.
func (k ExtraKind) Valid() bool {
	switch k {
	case ExtraTax, ExtraTip, ExtraFee, ExtraDiscount:
		return true
	}
	return false
}

// Signed reports the direction the kind moves a total: discounts subtract,
// everything else adds.
func (k ExtraKind) Sign() decimal.Decimal {
	if k == ExtraDiscount {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// ExtraType is the value representation of an extra.
type ExtraType string

const (
	// ExtraPercent is a percentage of a declared base subtotal.
	ExtraPercent ExtraType = "percent"
	// ExtraAmount is a flat value; no base applies.
	ExtraAmount ExtraType = "amount"
)

// PercentBase selects which running subtotal a percent extra applies to.
type PercentBase string

const (
	BaseNone        PercentBase = ""
	BasePreTaxItems PercentBase = "pre_tax_items"
	BasePostTax     PercentBase = "post_tax"
	BasePostFees    PercentBase = "post_fees"
)

// Valid reports whether the base names a known subtotal.
func (b PercentBase) Valid() bool {
	switch b {
	case BasePreTaxItems, BasePostTax, BasePostFees:
		return true
	}
	return false
}

// Extra is a receipt-level tax, tip, fee or discount. The type tag is closed:
// a percent extra carries a base, an amount extra must not. Both invariants
// are enforced at construction, so calculators can assume validated inputs.
type Extra struct {
	Kind  ExtraKind
	Type  ExtraType
	Value decimal.Decimal
	Base  PercentBase
}

// NewPercentExtra builds a percent-type extra. Value is a percentage
// (8.5 means 8.5%), never negative. Base is required.
func NewPercentExtra(kind ExtraKind, value decimal.Decimal, base PercentBase) (Extra, error) {
	if !kind.Valid() {
		return Extra{}, fmt.Errorf("%w: %q", ErrInvalidExtraKind, kind)
	}
	if value.IsNegative() {
		return Extra{}, fmt.Errorf("%w: %s %s%%", ErrNegativeValue, kind, value)
	}
	if !base.Valid() {
		return Extra{}, fmt.Errorf("%w: %s", ErrMissingPercentBase, kind)
	}
	return Extra{Kind: kind, Type: ExtraPercent, Value: value, Base: base}, nil
}

// NewAmountExtra builds a flat-amount extra. A zero tip is legal and means an
// explicit "no tip".
func NewAmountExtra(kind ExtraKind, value decimal.Decimal) (Extra, error) {
	if !kind.Valid() {
		return Extra{}, fmt.Errorf("%w: %q", ErrInvalidExtraKind, kind)
	}
	if value.IsNegative() {
		return Extra{}, fmt.Errorf("%w: %s %s", ErrNegativeValue, kind, value)
	}
	return Extra{Kind: kind, Type: ExtraAmount, Value: value}, nil
}

// Validate re-checks the invariants for extras built literally.
func (e Extra) Validate() error {
	if !e.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidExtraKind, e.Kind)
	}
	if e.Value.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeValue, e.Kind)
	}
	switch e.Type {
	case ExtraPercent:
		if !e.Base.Valid() {
			return fmt.Errorf("%w: %s", ErrMissingPercentBase, e.Kind)
		}
	case ExtraAmount:
		if e.Base != BaseNone {
			return fmt.Errorf("%w: %s", ErrUnexpectedBase, e.Kind)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidExtraType, e.Type)
	}
	return nil
}

// ExtraSet groups a receipt's extras. Tax and tip are at most one each; fees
// and discounts repeat. Nil tax/tip and empty lists are all no-ops.
type ExtraSet struct {
	Tax       *Extra
	Tip       *Extra
	Fees      []Extra
	Discounts []Extra
}

// Validate validates every present extra and that each slot holds the right kind.
func (s ExtraSet) Validate() error {
	if s.Tax != nil {
		if s.Tax.Kind != ExtraTax {
			return fmt.Errorf("%w: tax slot holds %q", ErrInvalidExtraKind, s.Tax.Kind)
		}
		if err := s.Tax.Validate(); err != nil {
			return err
		}
	}
	if s.Tip != nil {
		if s.Tip.Kind != ExtraTip {
			return fmt.Errorf("%w: tip slot holds %q", ErrInvalidExtraKind, s.Tip.Kind)
		}
		if err := s.Tip.Validate(); err != nil {
			return err
		}
	}
	for _, f := range s.Fees {
		if f.Kind != ExtraFee {
			return fmt.Errorf("%w: fee slot holds %q", ErrInvalidExtraKind, f.Kind)
		}
		if err := f.Validate(); err != nil {
			return err
		}
	}
	for _, d := range s.Discounts {
		if d.Kind != ExtraDiscount {
			return fmt.Errorf("%w: discount slot holds %q", ErrInvalidExtraKind, d.Kind)
		}
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SplitMode selects how a global extra amount is spread across participants.
type SplitMode string

const (
	// SplitProportional spreads by each participant's share of the relevant base.
	SplitProportional SplitMode = "proportional"
	// SplitEven spreads equally across participants assigned to qualifying items.
	SplitEven SplitMode = "even"
)

// Valid reports whether the mode is supported.
func (m SplitMode) Valid() bool {
	return m == SplitProportional || m == SplitEven
}

// AllocationRule configures one itemized split computation: the default
// percent base for extras that do not declare one, the split mode for global
// extra amounts, and the rounding behaviour.
type AllocationRule struct {
	DefaultBase PercentBase
	Mode        SplitMode
	Rounding    RoundingConfig
}

// DefaultAllocationRule returns proportional splitting with half-up rounding
// and largest-share remainder distribution at the currency's precision.
func DefaultAllocationRule(currency CurrencyCode) AllocationRule {
	return AllocationRule{
		DefaultBase: BasePreTaxItems,
		Mode:        SplitProportional,
		Rounding:    RoundingConfigFor(currency),
	}
}

// Validate checks the rule before any calculation runs.
func (r AllocationRule) Validate() error {
	if !r.DefaultBase.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPercentBase, r.DefaultBase)
	}
	if !r.Mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSplitMode, r.Mode)
	}
	return r.Rounding.Validate()
}
