package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/iho/tripsplit/internal/domain"
)

// ComputeTransferBreakdown explains the raw pairwise debt from one
// participant to another in terms of the contributing expenses. Only direct
// bilateral contributions count: expenses paid by a third party are excluded
// even though they may shape the solver's optimized routing. The breakdown
// answers "why does from owe to", not "why did the solver route it this way".
func ComputeTransferBreakdown(fromUserID, toUserID string, expenses []*domain.Expense) (*domain.TransferBreakdown, error) {
	breakdown := &domain.TransferBreakdown{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
	}

	for _, e := range expenses {
		if e.PayerID != fromUserID && e.PayerID != toUserID {
			continue
		}

		shares, err := ExpenseShares(e)
		if err != nil {
			return nil, err
		}

		var contribution decimal.Decimal
		switch e.PayerID {
		case toUserID:
			// to paid: from's share deepens the debt.
			contribution = shares[fromUserID]
		case fromUserID:
			// from paid: to's share works the debt off.
			contribution = shares[toUserID].Neg()
		}

		if contribution.IsZero() {
			continue
		}

		breakdown.Entries = append(breakdown.Entries, domain.TransferBreakdownEntry{
			ExpenseID:   e.ID,
			Description: e.Description,
			Amount:      contribution,
		})
		breakdown.Total = breakdown.Total.Add(contribution)
	}

	return breakdown, nil
}
