package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tripsplit/internal/domain"
	"github.com/iho/tripsplit/internal/settlement"
	"github.com/iho/tripsplit/internal/usecase"
)

// TripResponse represents a trip in API responses.
type TripResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// TripFromDomain converts a domain trip to a response.
func TripFromDomain(t *domain.Trip) *TripResponse {
	return &TripResponse{
		ID:        t.ID,
		Name:      t.Name,
		Members:   t.Members,
		CreatedAt: t.CreatedAt,
	}
}

// TripsFromDomain converts domain trips to responses.
func TripsFromDomain(trips []*domain.Trip) []*TripResponse {
	result := make([]*TripResponse, len(trips))
	for i, t := range trips {
		result[i] = TripFromDomain(t)
	}
	return result
}

// ParticipantResponse is one participant on an expense.
type ParticipantResponse struct {
	UserID string           `json:"user_id"`
	Weight *decimal.Decimal `json:"weight,omitempty"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID           string                `json:"id"`
	TripID       string                `json:"trip_id"`
	Description  string                `json:"description,omitempty"`
	PayerID      string                `json:"payer_id"`
	Amount       decimal.Decimal       `json:"amount"`
	Currency     string                `json:"currency"`
	SplitType    string                `json:"split_type"`
	Participants []ParticipantResponse `json:"participants"`
	CreatedAt    time.Time             `json:"created_at"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:          e.ID,
		TripID:      e.TripID,
		Description: e.Description,
		PayerID:     e.PayerID,
		Amount:      e.Amount,
		Currency:    string(e.Currency),
		SplitType:   string(e.SplitType),
		CreatedAt:   e.CreatedAt,
	}
	for _, p := range e.Participants {
		participant := ParticipantResponse{UserID: p.UserID, Amount: p.Amount}
		if !p.Weight.IsZero() {
			weight := p.Weight
			participant.Weight = &weight
		}
		resp.Participants = append(resp.Participants, participant)
	}
	return resp
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// PersonSummaryResponse is one participant's paid/owed/net totals.
type PersonSummaryResponse struct {
	UserID    string          `json:"user_id"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	TotalOwed decimal.Decimal `json:"total_owed"`
	Net       decimal.Decimal `json:"net"`
}

// TransferResponse is one settlement transfer.
type TransferResponse struct {
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// FindingResponse is one validation finding.
type FindingResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ReportResponse is the validation outcome of a settlement.
type ReportResponse struct {
	Valid     bool              `json:"valid"`
	Findings  []FindingResponse `json:"findings,omitempty"`
	CheckedAt time.Time         `json:"checked_at"`
}

// CurrencySettlementResponse is the settlement of one currency bucket.
type CurrencySettlementResponse struct {
	Currency  string                  `json:"currency"`
	Summaries []PersonSummaryResponse `json:"summaries"`
	Transfers []TransferResponse      `json:"transfers"`
	Report    ReportResponse          `json:"report"`
}

// SettlementResponse represents a trip settlement in API responses.
type SettlementResponse struct {
	TripID     string                       `json:"trip_id"`
	Currencies []CurrencySettlementResponse `json:"currencies"`
	ComputedAt time.Time                    `json:"computed_at"`
}

// SettlementFromResult converts a use case settlement result to a response.
func SettlementFromResult(result *usecase.SettlementResult) *SettlementResponse {
	resp := &SettlementResponse{
		TripID:     result.TripID,
		ComputedAt: result.ComputedAt,
	}
	for _, c := range result.Currencies {
		bucket := CurrencySettlementResponse{
			Currency: string(c.Currency),
			Report:   reportResponse(c.Report),
		}
		for _, s := range c.Summaries {
			bucket.Summaries = append(bucket.Summaries, PersonSummaryResponse{
				UserID:    s.UserID,
				TotalPaid: s.TotalPaid,
				TotalOwed: s.TotalOwed,
				Net:       s.Net,
			})
		}
		for _, t := range c.Transfers {
			bucket.Transfers = append(bucket.Transfers, TransferResponse{
				FromUserID: t.FromUserID,
				ToUserID:   t.ToUserID,
				Amount:     t.Amount,
			})
		}
		resp.Currencies = append(resp.Currencies, bucket)
	}
	return resp
}

func reportResponse(r settlement.Report) ReportResponse {
	resp := ReportResponse{Valid: r.Valid, CheckedAt: r.CheckedAt}
	for _, f := range r.Findings {
		resp.Findings = append(resp.Findings, FindingResponse{Code: f.Code, Message: f.Message})
	}
	return resp
}

// BreakdownEntryResponse is one expense's contribution to a pairwise debt.
type BreakdownEntryResponse struct {
	ExpenseID   string          `json:"expense_id"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// BreakdownResponse explains the direct debt between two participants.
type BreakdownResponse struct {
	FromUserID string                   `json:"from_user_id"`
	ToUserID   string                   `json:"to_user_id"`
	Total      decimal.Decimal          `json:"total"`
	Entries    []BreakdownEntryResponse `json:"entries"`
}

// BreakdownFromDomain converts a domain transfer breakdown to a response.
func BreakdownFromDomain(b *domain.TransferBreakdown) *BreakdownResponse {
	resp := &BreakdownResponse{
		FromUserID: b.FromUserID,
		ToUserID:   b.ToUserID,
		Total:      b.Total,
	}
	for _, e := range b.Entries {
		resp.Entries = append(resp.Entries, BreakdownEntryResponse{
			ExpenseID:   e.ExpenseID,
			Description: e.Description,
			Amount:      e.Amount,
		})
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
