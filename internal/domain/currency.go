package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyCode identifies a currency (ISO 4217).
type CurrencyCode string

// Decimal place counts per currency. Most currencies use 2; a few use 0 or 3.
var currencyPrecision = map[CurrencyCode]int32{
	"USD": 2, "EUR": 2, "GBP": 2, "CHF": 2, "CAD": 2,
	"AUD": 2, "NZD": 2, "SGD": 2, "HKD": 2, "SEK": 2,
	"NOK": 2, "DKK": 2, "PLN": 2, "CZK": 2, "MXN": 2,
	"BRL": 2, "INR": 2, "CNY": 2, "TRY": 2, "ZAR": 2,
	"THB": 2, "MYR": 2, "PHP": 2,

	"JPY": 0, "KRW": 0, "VND": 0, "IDR": 0, "CLP": 0, "ISK": 0,

	"BHD": 3, "KWD": 3, "OMR": 3, "JOD": 3, "TND": 3, "IQD": 3,
}

// DefaultCurrencyPrecision is used for currencies not in the table.
const DefaultCurrencyPrecision int32 = 2

// Normalize returns the upper-cased, trimmed form of the code.
func (c CurrencyCode) Normalize() CurrencyCode {
	return CurrencyCode(strings.ToUpper(strings.TrimSpace(string(c))))
}

// Precision returns the number of decimal places for the currency.
func (c CurrencyCode) Precision() int32 {
	if p, ok := currencyPrecision[c.Normalize()]; ok {
		return p
	}
	return DefaultCurrencyPrecision
}

// Known reports whether the currency is in the precision table.
func (c CurrencyCode) Known() bool {
	_, ok := currencyPrecision[c.Normalize()]
	return ok
}

// MinorUnit returns one unit of the currency's smallest denomination,
// e.g. 0.01 for USD, 1 for JPY, 0.001 for BHD.
func (c CurrencyCode) MinorUnit() decimal.Decimal {
	return minorUnit(c.Precision())
}

func minorUnit(precision int32) decimal.Decimal {
	return decimal.New(1, -precision)
}

// EqualWithinPrecision reports whether two amounts differ by less than one
// minor unit of the currency. Used wherever exact equality would be defeated
// by independent rounding.
func EqualWithinPrecision(a, b decimal.Decimal, currency CurrencyCode) bool {
	return a.Sub(b).Abs().LessThan(currency.MinorUnit())
}
