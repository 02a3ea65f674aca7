package domain

import "github.com/shopspring/decimal"

// PersonSummary is one participant's aggregated position across a set of
// expenses: what they paid, what they owe, and the net of the two.
//
// Conservation of money: the nets of all participants over the same expense
// set sum to approximately zero.
type PersonSummary struct {
	UserID    string
	TotalPaid decimal.Decimal
	TotalOwed decimal.Decimal
	Net       decimal.Decimal // TotalPaid - TotalOwed
}
