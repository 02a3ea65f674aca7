package settlement

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tripsplit/internal/domain"
)

// Finding codes emitted by the settlement validator.
const (
	FindingConservation    = "conservation_violated"
	FindingUnknownParty    = "unknown_participant"
	FindingSelfTransfer    = "self_transfer"
	FindingDuplicatePair   = "duplicate_pair"
	FindingNonPositive     = "non_positive_amount"
	FindingBalanceMismatch = "balance_mismatch"
)

// Conservation of money is checked tightly; the per-person balance cross-check
// is deliberately looser because the greedy solver trades exactness below the
// settle epsilon for a small transfer count.
var (
	conservationTolerance = decimal.RequireFromString("0.02")
	balanceTolerance      = decimal.RequireFromString("1.00")
)

// Finding is one validator observation. Findings are reported, never raised.
type Finding struct {
	Code    string
	Message string
}

// Report is the structured outcome of validating a settlement.
type Report struct {
	Valid     bool
	Findings  []Finding
	CheckedAt time.Time
}

// ValidateSettlement checks a computed settlement for internal consistency:
// conservation of money across summaries, transfer sanity (known parties, no
// self transfers, no duplicate pairs, positive amounts), and an approximate
// per-person match between transfer flows and net balances. It is pure and
// side-effect-free: imperfect upstream data produces findings, not errors.
func ValidateSettlement(summaries []domain.PersonSummary, transfers []domain.MinimalTransfer) Report {
	report := Report{CheckedAt: time.Now().UTC()}
	add := func(code, format string, args ...any) {
		report.Findings = append(report.Findings, Finding{
			Code:    code,
			Message: fmt.Sprintf(format, args...),
		})
	}

	known := make(map[string]decimal.Decimal, len(summaries))
	netSum := decimal.Zero
	for _, s := range summaries {
		known[s.UserID] = s.Net
		netSum = netSum.Add(s.Net)
	}

	if netSum.Abs().GreaterThan(conservationTolerance) {
		add(FindingConservation, "net balances sum to %s, expected ~0", netSum)
	}

	seen := map[[2]string]bool{}
	flow := map[string]decimal.Decimal{} // incoming minus outgoing per participant
	for _, t := range transfers {
		if _, ok := known[t.FromUserID]; !ok {
			add(FindingUnknownParty, "transfer from unknown participant %s", t.FromUserID)
		}
		if _, ok := known[t.ToUserID]; !ok {
			add(FindingUnknownParty, "transfer to unknown participant %s", t.ToUserID)
		}
		if t.FromUserID == t.ToUserID {
			add(FindingSelfTransfer, "participant %s transfers to themselves", t.FromUserID)
		}

		pair := [2]string{t.FromUserID, t.ToUserID}
		if seen[pair] {
			add(FindingDuplicatePair, "duplicate transfer pair %s -> %s", t.FromUserID, t.ToUserID)
		}
		seen[pair] = true

		if t.Amount.LessThanOrEqual(decimal.Zero) {
			add(FindingNonPositive, "transfer %s -> %s has non-positive amount %s", t.FromUserID, t.ToUserID, t.Amount)
		}

		flow[t.ToUserID] = flow[t.ToUserID].Add(t.Amount)
		flow[t.FromUserID] = flow[t.FromUserID].Sub(t.Amount)
	}

	for _, s := range summaries {
		diff := flow[s.UserID].Sub(s.Net).Abs()
		if diff.GreaterThan(balanceTolerance) {
			add(FindingBalanceMismatch,
				"participant %s: transfer flow %s vs net %s (diff %s)",
				s.UserID, flow[s.UserID], s.Net, diff)
		}
	}

	report.Valid = len(report.Findings) == 0
	return report
}
