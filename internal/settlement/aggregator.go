package settlement

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/tripsplit/internal/domain"
)

// ExpenseShares resolves how much each participant owes for one expense.
// Pre-stored amounts (from an itemized breakdown) take precedence; the
// remainder of the expense amount is split over the other participants by
// weight, or evenly when no weights are given. The shares always sum to the
// expense amount exactly at the expense currency's precision.
func ExpenseShares(e *domain.Expense) (map[string]decimal.Decimal, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	shares := make(map[string]decimal.Decimal, len(e.Participants))

	remaining := e.Amount
	var open []domain.ExpenseParticipant
	for _, p := range e.Participants {
		if p.Amount != nil {
			shares[p.UserID] = *p.Amount
			remaining = remaining.Sub(*p.Amount)
			continue
		}
		open = append(open, p)
	}
	if len(open) == 0 {
		return shares, nil
	}

	weightTotal := decimal.Zero
	for _, p := range open {
		weightTotal = weightTotal.Add(p.Weight)
	}

	raw := make([]domain.Share, 0, len(open))
	for _, p := range open {
		var share decimal.Decimal
		if e.SplitType == domain.SplitTypeWeights && !weightTotal.IsZero() {
			share = remaining.Mul(p.Weight.Div(weightTotal))
		} else {
			share = remaining.Div(decimal.NewFromInt(int64(len(open))))
		}
		raw = append(raw, domain.Share{UserID: p.UserID, Amount: share})
	}

	rounded, err := domain.DistributeRounded(raw, domain.RoundingConfigFor(e.Currency))
	if err != nil {
		return nil, err
	}
	for id, amount := range rounded {
		shares[id] = amount
	}
	return shares, nil
}

// Aggregate reduces a list of expenses into per-participant paid/owed/net
// totals, sorted by user id. Expenses in different currencies are passed
// through as-is: callers segment by currency (see BucketByCurrency) before
// aggregating, and no conversion is attempted here.
func Aggregate(expenses []*domain.Expense) ([]domain.PersonSummary, error) {
	totals := map[string]*domain.PersonSummary{}

	touch := func(userID string) *domain.PersonSummary {
		s, ok := totals[userID]
		if !ok {
			s = &domain.PersonSummary{UserID: userID}
			totals[userID] = s
		}
		return s
	}

	for _, e := range expenses {
		shares, err := ExpenseShares(e)
		if err != nil {
			return nil, err
		}

		touch(e.PayerID).TotalPaid = totals[e.PayerID].TotalPaid.Add(e.Amount)
		for userID, share := range shares {
			s := touch(userID)
			s.TotalOwed = s.TotalOwed.Add(share)
		}
	}

	summaries := make([]domain.PersonSummary, 0, len(totals))
	for _, s := range totals {
		s.Net = s.TotalPaid.Sub(s.TotalOwed)
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UserID < summaries[j].UserID
	})
	return summaries, nil
}

// BucketByCurrency segments expenses by currency. Multi-currency settlement
// runs the whole pipeline once per bucket.
func BucketByCurrency(expenses []*domain.Expense) map[domain.CurrencyCode][]*domain.Expense {
	buckets := map[domain.CurrencyCode][]*domain.Expense{}
	for _, e := range expenses {
		code := e.Currency.Normalize()
		buckets[code] = append(buckets[code], e)
	}
	return buckets
}
