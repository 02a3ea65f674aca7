package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRound(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		precision int32
		mode      RoundingMode
		want      string
	}{
		{"half up rounds tie away from zero", "2.345", 2, RoundHalfUp, "2.35"},
		{"half up negative tie away from zero", "-2.345", 2, RoundHalfUp, "-2.35"},
		{"half even tie to even digit", "2.345", 2, RoundHalfEven, "2.34"},
		{"half even tie to even digit up", "2.355", 2, RoundHalfEven, "2.36"},
		{"floor truncates toward negative infinity", "2.349", 2, RoundFloor, "2.34"},
		{"floor negative", "-2.341", 2, RoundFloor, "-2.35"},
		{"ceil toward positive infinity", "2.341", 2, RoundCeil, "2.35"},
		{"zero decimal currency", "1234.5", 0, RoundHalfUp, "1235"},
		{"three decimal currency", "1.23456", 3, RoundHalfUp, "1.235"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(d(tt.value), tt.precision, tt.mode)
			if !got.Equal(d(tt.want)) {
				t.Fatalf("Round(%s, %d, %s) = %s, want %s", tt.value, tt.precision, tt.mode, got, tt.want)
			}
		})
	}
}

func TestRoundingConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         RoundingConfig
		expectedErr error
	}{
		{
			name: "valid default",
			cfg:  RoundingConfigFor("USD"),
		},
		{
			name:        "negative precision",
			cfg:         RoundingConfig{Precision: -1, Mode: RoundHalfUp, Policy: PolicyLargestShare},
			expectedErr: ErrInvalidPrecision,
		},
		{
			name:        "unknown mode",
			cfg:         RoundingConfig{Precision: 2, Mode: "nearest", Policy: PolicyLargestShare},
			expectedErr: ErrInvalidRoundingMode,
		},
		{
			name:        "unknown policy",
			cfg:         RoundingConfig{Precision: 2, Mode: RoundHalfUp, Policy: "biggest"},
			expectedErr: ErrInvalidRemainderPolicy,
		},
		{
			name:        "payer policy without payer",
			cfg:         RoundingConfig{Precision: 2, Mode: RoundHalfUp, Policy: PolicyPayer},
			expectedErr: ErrPayerRequired,
		},
		{
			name: "payer policy with payer",
			cfg:  RoundingConfig{Precision: 2, Mode: RoundHalfUp, Policy: PolicyPayer, PayerID: "alice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
