package usecase_test

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/iho/tripsplit/internal/domain"
	"github.com/iho/tripsplit/internal/usecase"
)

// In-memory fakes shared by the usecase tests. Each Func field overrides the
// default map-backed behavior for a single test case.

type fakeTripRepo struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	CreateFunc  func(ctx context.Context, trip *domain.Trip) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Trip, error)
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[string]*domain.Trip)}
}

func (f *fakeTripRepo) Create(ctx context.Context, trip *domain.Trip) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, trip)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trips[trip.ID] = trip
	return nil
}

func (f *fakeTripRepo) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if trip, ok := f.trips[id]; ok {
		return trip, nil
	}
	return nil, domain.ErrTripNotFound
}

func (f *fakeTripRepo) List(ctx context.Context, limit, offset int) ([]*domain.Trip, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var trips []*domain.Trip
	for _, trip := range f.trips {
		trips = append(trips, trip)
	}
	return trips, nil
}

type fakeExpenseRepo struct {
	mu       sync.RWMutex
	expenses map[string]*domain.Expense
	order    []string

	CreateFunc     func(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error
	ListByTripFunc func(ctx context.Context, tripID string) ([]*domain.Expense, error)
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: make(map[string]*domain.Expense)}
}

func (f *fakeExpenseRepo) Create(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, tx, expense)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expenses[expense.ID] = expense
	f.order = append(f.order, expense.ID)
	return nil
}

func (f *fakeExpenseRepo) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if expense, ok := f.expenses[id]; ok {
		return expense, nil
	}
	return nil, domain.ErrExpenseNotFound
}

func (f *fakeExpenseRepo) ListByTrip(ctx context.Context, tripID string) ([]*domain.Expense, error) {
	if f.ListByTripFunc != nil {
		return f.ListByTripFunc(ctx, tripID)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var expenses []*domain.Expense
	for _, id := range f.order {
		if e := f.expenses[id]; e != nil && e.TripID == tripID {
			expenses = append(expenses, e)
		}
	}
	return expenses, nil
}

func (f *fakeExpenseRepo) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.expenses, id)
	return nil
}

type fakeTx struct{}

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

type fakeTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func (f *fakeTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if f.BeginFunc != nil {
		return f.BeginFunc(ctx)
	}
	return fakeTx{}, nil
}

// passRetrier runs the operation exactly once.
type passRetrier struct{}

func (passRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

type seqIDGen struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGen) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return "id-" + strconv.Itoa(g.n)
}

type fakeCache struct {
	mu      sync.Mutex
	values  map[string]string
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	c.deletes = append(c.deletes, key)
	return nil
}
