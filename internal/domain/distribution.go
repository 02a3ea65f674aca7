package domain

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"
)

// Share is one participant's raw (unrounded) portion of an amount being
// distributed. Shares are ordered: first-listed and tie-break semantics depend
// on input order, which a map cannot provide.
type Share struct {
	UserID string
	Amount decimal.Decimal
}

// DistributeRounded rounds every share to cfg.Precision and redistributes the
// leftover minor units per cfg.Policy so that the rounded shares sum exactly
// to the rounding of the raw sum. The invariant holds for every supported
// precision: no fraction of a unit is ever created or destroyed.
func DistributeRounded(shares []Share, cfg RoundingConfig) (map[string]decimal.Decimal, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(shares) == 0 {
		return nil, ErrNoShares
	}

	seen := make(map[string]struct{}, len(shares))
	for _, s := range shares {
		if _, dup := seen[s.UserID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, s.UserID)
		}
		seen[s.UserID] = struct{}{}
	}

	if cfg.Policy == PolicyPayer {
		if _, ok := seen[cfg.PayerID]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrPayerNotParticipant, cfg.PayerID)
		}
	}

	rounded := make(map[string]decimal.Decimal, len(shares))

	// Single participant: the rounded target is theirs, nothing to distribute.
	if len(shares) == 1 {
		rounded[shares[0].UserID] = cfg.Round(shares[0].Amount)
		return rounded, nil
	}

	target := decimal.Zero
	naiveSum := decimal.Zero
	for _, s := range shares {
		target = target.Add(s.Amount)
		r := cfg.Round(s.Amount)
		rounded[s.UserID] = r
		naiveSum = naiveSum.Add(r)
	}
	target = cfg.Round(target)

	remainder := target.Sub(naiveSum)
	if remainder.IsZero() {
		return rounded, nil
	}

	unit := minorUnit(cfg.Precision)
	step := unit
	if remainder.IsNegative() {
		step = unit.Neg()
	}

	order := recipientOrder(shares, cfg)

	// Walk the remainder one minor unit at a time, cycling through the
	// policy-ordered recipients until it is exhausted. A negative remainder
	// (over-rounding) is walked the same way with the step inverted.
	for i := 0; !remainder.IsZero(); i++ {
		id := order[i%len(order)]
		rounded[id] = rounded[id].Add(step)
		remainder = remainder.Sub(step)
	}

	return rounded, nil
}

// RemainderMagnitude returns the absolute pre-distribution remainder: the gap
// between the rounded target and the sum of naively rounded shares. Exposed
// for tests and telemetry.
func RemainderMagnitude(shares []Share, cfg RoundingConfig) decimal.Decimal {
	target := decimal.Zero
	naiveSum := decimal.Zero
	for _, s := range shares {
		target = target.Add(s.Amount)
		naiveSum = naiveSum.Add(cfg.Round(s.Amount))
	}
	return cfg.Round(target).Sub(naiveSum).Abs()
}

// recipientOrder returns participant ids in the order remainder units are
// handed out under the policy.
func recipientOrder(shares []Share, cfg RoundingConfig) []string {
	switch cfg.Policy {
	case PolicyPayer:
		return []string{cfg.PayerID}

	case PolicyFirstListed:
		return []string{shares[0].UserID}

	case PolicyRandom:
		var rng *rand.Rand
		if cfg.Seed != nil {
			rng = rand.New(rand.NewSource(*cfg.Seed))
		} else {
			rng = rand.New(rand.NewSource(rand.Int63()))
		}
		order := make([]string, len(shares))
		for i, s := range shares {
			order[i] = s.UserID
		}
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		return order

	default: // PolicyLargestShare
		idx := make([]int, len(shares))
		for i := range idx {
			idx[i] = i
		}
		// Stable sort keeps input order as the tie-break.
		stableSortByShareDesc(shares, idx)
		order := make([]string, len(idx))
		for i, j := range idx {
			order[i] = shares[j].UserID
		}
		return order
	}
}

func stableSortByShareDesc(shares []Share, idx []int) {
	// Insertion sort: share lists are small and stability matters.
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && shares[idx[j]].Amount.GreaterThan(shares[idx[j-1]].Amount); j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
}
