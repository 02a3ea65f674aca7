package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/tripsplit/internal/domain"
	"github.com/iho/tripsplit/internal/infrastructure/postgres/generated"
	"github.com/iho/tripsplit/internal/usecase"
)

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create stores an expense and its participant rows inside the caller's
// transaction. Participant positions preserve the listed order, which the
// remainder distribution depends on.
func (r *ExpenseRepository) Create(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	queries := r.queries.WithTx(tx.(*Tx).PgxTx())

	if _, err := queries.CreateExpense(ctx, generated.CreateExpenseParams{
		ID:          expense.ID,
		TripID:      expense.TripID,
		Description: pgtype.Text{String: expense.Description, Valid: expense.Description != ""},
		PayerID:     expense.PayerID,
		Amount:      decimalToNumeric(expense.Amount),
		Currency:    string(expense.Currency),
		SplitType:   string(expense.SplitType),
		CreatedAt:   timeToPgTimestamptz(expense.CreatedAt),
	}); err != nil {
		return err
	}

	for i, p := range expense.Participants {
		params := generated.CreateExpenseParticipantParams{
			ExpenseID: expense.ID,
			UserID:    p.UserID,
			Position:  int32(i),
		}
		if !p.Weight.IsZero() {
			params.Weight = decimalToNumeric(p.Weight)
		}
		if p.Amount != nil {
			params.Amount = decimalToNumeric(*p.Amount)
		}
		if err := queries.CreateExpenseParticipant(ctx, params); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an expense with its participants.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	row, err := r.queries.GetExpenseByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}

		return nil, err
	}

	participants, err := r.queries.GetExpenseParticipants(ctx, id)
	if err != nil {
		return nil, err
	}

	return rowToExpense(row, participants), nil
}

// ListByTrip retrieves all expenses of a trip in creation order. Participants
// are fetched in one query and grouped in memory.
func (r *ExpenseRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.Expense, error) {
	rows, err := r.queries.ListExpensesByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	participantRows, err := r.queries.ListExpenseParticipantsByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	byExpense := make(map[string][]generated.ExpenseParticipant)
	for _, p := range participantRows {
		byExpense[p.ExpenseID] = append(byExpense[p.ExpenseID], p)
	}

	expenses := make([]*domain.Expense, 0, len(rows))
	for _, row := range rows {
		expenses = append(expenses, rowToExpense(row, byExpense[row.ID]))
	}

	return expenses, nil
}

// Delete removes an expense inside the caller's transaction.
func (r *ExpenseRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	queries := r.queries.WithTx(tx.(*Tx).PgxTx())

	affected, err := queries.DeleteExpense(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

func rowToExpense(row generated.Expense, participants []generated.ExpenseParticipant) *domain.Expense {
	e := &domain.Expense{
		ID:          row.ID,
		TripID:      row.TripID,
		Description: row.Description.String,
		PayerID:     row.PayerID,
		Amount:      numericToDecimal(row.Amount),
		Currency:    domain.CurrencyCode(row.Currency),
		SplitType:   domain.SplitType(row.SplitType),
		CreatedAt:   row.CreatedAt.Time,
	}
	for _, p := range participants {
		participant := domain.ExpenseParticipant{
			UserID: p.UserID,
			Weight: numericToDecimal(p.Weight),
		}
		if p.Amount.Valid {
			amount := numericToDecimal(p.Amount)
			participant.Amount = &amount
		}
		e.Participants = append(e.Participants, participant)
	}

	return e
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
