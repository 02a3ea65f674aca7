package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func cfg2(policy RemainderPolicy) RoundingConfig {
	return RoundingConfig{Precision: 2, Mode: RoundHalfUp, Policy: policy}
}

func thirds(total string, ids ...string) []Share {
	amount := d(total).Div(decimal.NewFromInt(int64(len(ids))))
	shares := make([]Share, len(ids))
	for i, id := range ids {
		shares[i] = Share{UserID: id, Amount: amount}
	}
	return shares
}

func sumOf(m map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}

func TestDistributeRoundedZeroDrift(t *testing.T) {
	// The distributed sum must equal the rounded raw sum exactly, for every
	// supported precision.
	tests := []struct {
		name      string
		precision int32
		total     string
	}{
		{"two decimals", 2, "100"},
		{"zero decimals", 0, "100"},
		{"three decimals", 3, "10"},
		{"two decimals awkward total", 2, "38.55"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares := thirds(tt.total, "a", "b", "c")
			cfg := RoundingConfig{Precision: tt.precision, Mode: RoundHalfUp, Policy: PolicyLargestShare}

			got, err := DistributeRounded(shares, cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			raw := decimal.Zero
			for _, s := range shares {
				raw = raw.Add(s.Amount)
			}
			want := Round(raw, tt.precision, RoundHalfUp)

			if !sumOf(got).Equal(want) {
				t.Fatalf("distributed sum = %s, want %s", sumOf(got), want)
			}
		})
	}
}

func TestDistributeRoundedLargestShare(t *testing.T) {
	shares := []Share{
		{UserID: "a", Amount: d("10.005")},
		{UserID: "b", Amount: d("20.005")},
	}
	got, err := DistributeRounded(shares, cfg2(PolicyLargestShare))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Raw sum 30.01; naive rounding gives 30.02, so the largest share
	// absorbs the negative remainder unit.
	if !got["a"].Equal(d("10.01")) || !got["b"].Equal(d("20.00")) {
		t.Fatalf("got a=%s b=%s, want a=10.01 b=20.00", got["a"], got["b"])
	}
}

func TestDistributeRoundedLargestShareTieBreaksByInputOrder(t *testing.T) {
	shares := thirds("100", "zed", "amy", "bob")
	got, err := DistributeRounded(shares, cfg2(PolicyLargestShare))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 33.333... rounds to 33.33 each, leaving 0.01 for the first listed of
	// the tied shares.
	if !got["zed"].Equal(d("33.34")) {
		t.Fatalf("tie-break winner zed = %s, want 33.34", got["zed"])
	}
	if !got["amy"].Equal(d("33.33")) || !got["bob"].Equal(d("33.33")) {
		t.Fatalf("amy=%s bob=%s, want 33.33 each", got["amy"], got["bob"])
	}
}

func TestDistributeRoundedPayerPolicy(t *testing.T) {
	shares := []Share{
		{UserID: "a", Amount: d("0.335")},
		{UserID: "b", Amount: d("0.335")},
		{UserID: "c", Amount: d("0.33")},
	}
	cfg := cfg2(PolicyPayer)
	cfg.PayerID = "c"

	got, err := DistributeRounded(shares, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Naive rounding overshoots by 0.01; the payer absorbs it.
	if !got["c"].Equal(d("0.32")) {
		t.Fatalf("payer c = %s, want 0.32", got["c"])
	}
	if !sumOf(got).Equal(d("1.00")) {
		t.Fatalf("sum = %s, want 1.00", sumOf(got))
	}
}

func TestDistributeRoundedPayerErrors(t *testing.T) {
	shares := thirds("100", "a", "b", "c")

	cfg := cfg2(PolicyPayer)
	if _, err := DistributeRounded(shares, cfg); !errors.Is(err, ErrPayerRequired) {
		t.Fatalf("expected ErrPayerRequired, got %v", err)
	}

	cfg.PayerID = "stranger"
	if _, err := DistributeRounded(shares, cfg); !errors.Is(err, ErrPayerNotParticipant) {
		t.Fatalf("expected ErrPayerNotParticipant, got %v", err)
	}
}

func TestDistributeRoundedFirstListed(t *testing.T) {
	shares := thirds("100", "first", "second", "third")
	got, err := DistributeRounded(shares, cfg2(PolicyFirstListed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got["first"].Equal(d("33.34")) {
		t.Fatalf("first = %s, want 33.34", got["first"])
	}
}

func TestDistributeRoundedRandomSeeded(t *testing.T) {
	shares := thirds("100", "a", "b", "c")
	seed := int64(42)
	cfg := cfg2(PolicyRandom)
	cfg.Seed = &seed

	first, err := DistributeRounded(shares, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := DistributeRounded(shares, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for id := range first {
		if !first[id].Equal(second[id]) {
			t.Fatalf("seeded runs diverge for %s: %s vs %s", id, first[id], second[id])
		}
	}
	if !sumOf(first).Equal(d("100.00")) {
		t.Fatalf("sum = %s, want 100.00", sumOf(first))
	}
}

func TestDistributeRoundedZeroDecimalCurrency(t *testing.T) {
	shares := thirds("100", "a", "b", "c")
	cfg := RoundingConfig{Precision: 0, Mode: RoundHalfUp, Policy: PolicyLargestShare}

	got, err := DistributeRounded(shares, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got["a"].Equal(d("34")) || !got["b"].Equal(d("33")) || !got["c"].Equal(d("33")) {
		t.Fatalf("got a=%s b=%s c=%s, want 34/33/33", got["a"], got["b"], got["c"])
	}
}

func TestDistributeRoundedSingleParticipant(t *testing.T) {
	got, err := DistributeRounded([]Share{{UserID: "solo", Amount: d("19.995")}}, cfg2(PolicyLargestShare))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got["solo"].Equal(d("20.00")) {
		t.Fatalf("solo = %s, want 20.00", got["solo"])
	}
}

func TestDistributeRoundedInputErrors(t *testing.T) {
	if _, err := DistributeRounded(nil, cfg2(PolicyLargestShare)); !errors.Is(err, ErrNoShares) {
		t.Fatalf("expected ErrNoShares, got %v", err)
	}

	dup := []Share{
		{UserID: "a", Amount: d("1")},
		{UserID: "a", Amount: d("2")},
	}
	if _, err := DistributeRounded(dup, cfg2(PolicyLargestShare)); !errors.Is(err, ErrDuplicateParticipant) {
		t.Fatalf("expected ErrDuplicateParticipant, got %v", err)
	}
}

func TestRemainderMagnitude(t *testing.T) {
	shares := []Share{
		{UserID: "a", Amount: d("0.335")},
		{UserID: "b", Amount: d("0.335")},
		{UserID: "c", Amount: d("0.33")},
	}
	if got := RemainderMagnitude(shares, cfg2(PolicyLargestShare)); !got.Equal(d("0.01")) {
		t.Fatalf("RemainderMagnitude = %s, want 0.01", got)
	}

	exact := []Share{
		{UserID: "a", Amount: d("1.25")},
		{UserID: "b", Amount: d("1.25")},
	}
	if got := RemainderMagnitude(exact, cfg2(PolicyLargestShare)); !got.IsZero() {
		t.Fatalf("RemainderMagnitude = %s, want 0", got)
	}
}
