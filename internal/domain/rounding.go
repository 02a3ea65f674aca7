package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RoundingMode selects how a value is rounded to a target precision.
type RoundingMode string

const (
	// RoundHalfUp rounds ties away from zero.
	RoundHalfUp RoundingMode = "half_up"
	// RoundHalfEven rounds exact ties to the nearest even digit (banker's
	// rounding), which minimizes long-run bias across repeated allocations.
	RoundHalfEven RoundingMode = "half_even"
	// RoundFloor rounds toward negative infinity.
	RoundFloor RoundingMode = "floor"
	// RoundCeil rounds toward positive infinity.
	RoundCeil RoundingMode = "ceil"
)

// Valid reports whether the mode is one of the supported modes.
func (m RoundingMode) Valid() bool {
	switch m {
	case RoundHalfUp, RoundHalfEven, RoundFloor, RoundCeil:
		return true
	}
	return false
}

// Round rounds value to precision decimal places under the given mode.
// An unrecognized mode falls back to half-up; construction-time validation
// keeps that path out of production calculations.
func Round(value decimal.Decimal, precision int32, mode RoundingMode) decimal.Decimal {
	switch mode {
	case RoundHalfEven:
		return value.RoundBank(precision)
	case RoundFloor:
		return value.RoundFloor(precision)
	case RoundCeil:
		return value.RoundCeil(precision)
	case RoundHalfUp:
		return value.Round(precision)
	default:
		return value.Round(precision)
	}
}

// RemainderPolicy selects who absorbs leftover minor units after rounding.
type RemainderPolicy string

const (
	// PolicyLargestShare gives remainder units to the participants with the
	// largest raw shares, ties broken by input order.
	PolicyLargestShare RemainderPolicy = "largest_share"
	// PolicyPayer gives all remainder units to the payer. Requires PayerID.
	PolicyPayer RemainderPolicy = "payer"
	// PolicyFirstListed gives remainder units to the first participant by
	// input order.
	PolicyFirstListed RemainderPolicy = "first_listed"
	// PolicyRandom picks recipients pseudo-randomly. Seed makes it
	// reproducible; without a seed a process-default source is used.
	PolicyRandom RemainderPolicy = "random"
)

// Valid reports whether the policy is one of the supported policies.
func (p RemainderPolicy) Valid() bool {
	switch p {
	case PolicyLargestShare, PolicyPayer, PolicyFirstListed, PolicyRandom:
		return true
	}
	return false
}

// RoundingConfig declares how per-participant allocations are rounded and how
// leftover minor units are distributed. Precision is always explicit; the
// engine never assumes two decimal places.
type RoundingConfig struct {
	Precision int32
	Mode      RoundingMode
	Policy    RemainderPolicy

	// PayerID must be set when Policy is PolicyPayer.
	PayerID string

	// Seed makes PolicyRandom deterministic. Ignored by other policies.
	Seed *int64
}

// RoundingConfigFor returns the default config for a currency: half-up with
// remainder to the largest share.
func RoundingConfigFor(currency CurrencyCode) RoundingConfig {
	return RoundingConfig{
		Precision: currency.Precision(),
		Mode:      RoundHalfUp,
		Policy:    PolicyLargestShare,
	}
}

// Validate checks the config before any calculation runs.
func (c RoundingConfig) Validate() error {
	if c.Precision < 0 {
		return fmt.Errorf("%w: precision %d", ErrInvalidPrecision, c.Precision)
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRoundingMode, c.Mode)
	}
	if !c.Policy.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRemainderPolicy, c.Policy)
	}
	if c.Policy == PolicyPayer && c.PayerID == "" {
		return ErrPayerRequired
	}
	return nil
}

// Round applies the config's precision and mode to value.
func (c RoundingConfig) Round(value decimal.Decimal) decimal.Decimal {
	return Round(value, c.Precision, c.Mode)
}
