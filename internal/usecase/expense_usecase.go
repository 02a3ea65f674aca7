package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tripsplit/internal/domain"
	"github.com/iho/tripsplit/internal/infrastructure/metrics"
	"github.com/iho/tripsplit/internal/settlement"
)

var (
	// ErrNotTripMember is returned when an expense references someone
	// outside the trip.
	ErrNotTripMember = errors.New("user is not a member of the trip")
)

// ExpenseUseCase handles expense business logic.
type ExpenseUseCase struct {
	txManager   TransactionManager
	tripRepo    TripRepository
	expenseRepo ExpenseRepository
	cache       Cache
	retrier     Retrier
	idGen       IDGenerator
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(
	txManager TransactionManager,
	tripRepo TripRepository,
	expenseRepo ExpenseRepository,
	cache Cache,
	retrier Retrier,
	idGen IDGenerator,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		txManager:   txManager,
		tripRepo:    tripRepo,
		expenseRepo: expenseRepo,
		cache:       cache,
		retrier:     retrier,
		idGen:       idGen,
	}
}

// ParticipantInput is one participant on a new expense.
type ParticipantInput struct {
	UserID string
	Weight decimal.Decimal
}

// ItemizedInput carries the receipt detail of an itemized expense.
type ItemizedInput struct {
	Items  []domain.LineItem
	Extras domain.ExtraSet
}

// CreateExpenseInput represents input for creating an expense.
type CreateExpenseInput struct {
	TripID       string
	Description  string
	PayerID      string
	Amount       decimal.Decimal
	Currency     domain.CurrencyCode
	SplitType    domain.SplitType
	Participants []ParticipantInput

	// Itemized must be set when SplitType is itemized. The breakdown is
	// computed at write time and the per-participant amounts are stored with
	// the expense, so aggregation never re-splits it differently.
	Itemized *ItemizedInput
}

// CreateExpense validates and stores a new expense. Itemized expenses run
// the split calculator first; the stored amount is the computed grand total.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, input CreateExpenseInput) (*domain.Expense, error) {
	trip, err := uc.tripRepo.GetByID(ctx, input.TripID)
	if err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		ID:          uc.idGen.Generate(),
		TripID:      trip.ID,
		Description: input.Description,
		PayerID:     input.PayerID,
		Amount:      input.Amount,
		Currency:    input.Currency.Normalize(),
		SplitType:   input.SplitType,
		CreatedAt:   time.Now().UTC(),
	}
	for _, p := range input.Participants {
		expense.Participants = append(expense.Participants, domain.ExpenseParticipant{
			UserID: p.UserID,
			Weight: p.Weight,
		})
	}

	if input.SplitType == domain.SplitTypeItemized {
		if err := uc.applyItemized(expense, input.Itemized); err != nil {
			return nil, err
		}
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}
	if !trip.HasMember(expense.PayerID) {
		return nil, fmt.Errorf("%w: payer %s", ErrNotTripMember, expense.PayerID)
	}
	for _, p := range expense.Participants {
		if !trip.HasMember(p.UserID) {
			return nil, fmt.Errorf("%w: %s", ErrNotTripMember, p.UserID)
		}
	}

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.expenseRepo.Create(ctx, tx, expense); err != nil {
			return err
		}
		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	metrics.ExpensesCreated.Inc()
	uc.invalidateSettlement(ctx, trip.ID)

	return expense, nil
}

// applyItemized computes the itemized breakdown and stores the resulting
// per-participant amounts on the expense.
func (uc *ExpenseUseCase) applyItemized(expense *domain.Expense, input *ItemizedInput) error {
	if input == nil {
		return settlement.ErrNoItems
	}

	result, err := settlement.ComputeItemizedSplit(settlement.ItemizedInput{
		Items:  input.Items,
		Extras: input.Extras,
		Rule:   domain.DefaultAllocationRule(expense.Currency),
	})
	if err != nil {
		return err
	}

	expense.Amount = result.GrandTotal
	expense.Participants = expense.Participants[:0]
	for _, id := range result.Order {
		total := result.Participants[id].Total
		expense.Participants = append(expense.Participants, domain.ExpenseParticipant{
			UserID: id,
			Amount: &total,
		})
	}
	return nil
}

// GetExpense retrieves an expense by ID.
func (uc *ExpenseUseCase) GetExpense(ctx context.Context, id string) (*domain.Expense, error) {
	return uc.expenseRepo.GetByID(ctx, id)
}

// ListExpenses lists all expenses of a trip.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, tripID string) ([]*domain.Expense, error) {
	if _, err := uc.tripRepo.GetByID(ctx, tripID); err != nil {
		return nil, err
	}
	return uc.expenseRepo.ListByTrip(ctx, tripID)
}

// DeleteExpense removes an expense and invalidates the trip's cached
// settlement.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, id string) error {
	expense, err := uc.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.expenseRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}

	metrics.ExpensesDeleted.Inc()
	uc.invalidateSettlement(ctx, expense.TripID)
	return nil
}

func (uc *ExpenseUseCase) invalidateSettlement(ctx context.Context, tripID string) {
	if uc.cache == nil {
		return
	}
	// Best effort: a stale entry only survives until its TTL.
	_ = uc.cache.Delete(ctx, settlementCacheKey(tripID))
}
