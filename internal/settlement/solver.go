package settlement

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tripsplit/internal/domain"
)

// settleEpsilon is the balance below which a party is considered settled.
// It exists to absorb rounding residue, not to forgive real debt.
var settleEpsilon = decimal.RequireFromString("0.01")

// balance is one party's remaining position while the solver runs. Amounts
// are always positive; direction comes from which list the balance sits in.
type balance struct {
	userID string
	amount decimal.Decimal
}

// Settle matches creditors against debtors greedily, largest first, and
// returns the resulting transfer plan. The heuristic does not guarantee a
// provably minimal plan, but it never emits more than n-1 transfers for n
// participants, emits no non-positive or self transfers, and each emitted
// transfer strictly reduces both parties' remaining balances.
func Settle(summaries []domain.PersonSummary, computedAt time.Time) []domain.MinimalTransfer {
	var creditors, debtors []balance
	for _, s := range summaries {
		switch {
		case s.Net.GreaterThan(settleEpsilon):
			creditors = append(creditors, balance{userID: s.UserID, amount: s.Net})
		case s.Net.LessThan(settleEpsilon.Neg()):
			debtors = append(debtors, balance{userID: s.UserID, amount: s.Net.Neg()})
		}
	}

	sortDesc(creditors)
	sortDesc(debtors)

	var transfers []domain.MinimalTransfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.amount, creditor.amount)
		if amount.GreaterThan(decimal.Zero) && debtor.userID != creditor.userID {
			transfers = append(transfers, domain.MinimalTransfer{
				FromUserID: debtor.userID,
				ToUserID:   creditor.userID,
				Amount:     amount,
				ComputedAt: computedAt,
			})
		}

		debtor.amount = debtor.amount.Sub(amount)
		creditor.amount = creditor.amount.Sub(amount)

		if debtor.amount.LessThan(settleEpsilon) {
			i++
		}
		if creditor.amount.LessThan(settleEpsilon) {
			j++
		}
	}

	return transfers
}

// sortDesc orders balances by amount descending, user id ascending on ties,
// so identical inputs always produce identical plans.
func sortDesc(balances []balance) {
	sort.Slice(balances, func(i, j int) bool {
		if !balances[i].amount.Equal(balances[j].amount) {
			return balances[i].amount.GreaterThan(balances[j].amount)
		}
		return balances[i].userID < balances[j].userID
	})
}
