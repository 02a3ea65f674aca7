package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/tripsplit/internal/adapter/http/dto"
	"github.com/iho/tripsplit/internal/domain"
	"github.com/iho/tripsplit/internal/usecase"
)

type stubTripRepo struct {
	trips map[string]*domain.Trip
}

func (s *stubTripRepo) Create(ctx context.Context, trip *domain.Trip) error {
	s.trips[trip.ID] = trip
	return nil
}

func (s *stubTripRepo) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	if trip, ok := s.trips[id]; ok {
		return trip, nil
	}
	return nil, domain.ErrTripNotFound
}

func (s *stubTripRepo) List(ctx context.Context, limit, offset int) ([]*domain.Trip, error) {
	var trips []*domain.Trip
	for _, trip := range s.trips {
		trips = append(trips, trip)
	}
	return trips, nil
}

type stubExpenseRepo struct {
	expenses map[string]*domain.Expense
}

func (s *stubExpenseRepo) Create(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	s.expenses[expense.ID] = expense
	return nil
}

func (s *stubExpenseRepo) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	if e, ok := s.expenses[id]; ok {
		return e, nil
	}
	return nil, domain.ErrExpenseNotFound
}

func (s *stubExpenseRepo) ListByTrip(ctx context.Context, tripID string) ([]*domain.Expense, error) {
	var expenses []*domain.Expense
	for _, e := range s.expenses {
		if e.TripID == tripID {
			expenses = append(expenses, e)
		}
	}
	return expenses, nil
}

func (s *stubExpenseRepo) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	delete(s.expenses, id)
	return nil
}

type stubTxManager struct{}

func (stubTxManager) Begin(ctx context.Context) (usecase.Transaction, error) { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit(ctx context.Context) error   { return nil }
func (stubTx) Rollback(ctx context.Context) error { return nil }

type stubRetrier struct{}

func (stubRetrier) Retry(ctx context.Context, operation func() error) error { return operation() }

type stubIDGen struct{ next string }

func (g stubIDGen) Generate() string { return g.next }

type testEnv struct {
	tripRepo    *stubTripRepo
	expenseRepo *stubExpenseRepo
	trips       *TripHandler
	expenses    *ExpenseHandler
	settlement  *SettlementHandler
}

func newTestEnv() *testEnv {
	tripRepo := &stubTripRepo{trips: map[string]*domain.Trip{}}
	expenseRepo := &stubExpenseRepo{expenses: map[string]*domain.Expense{}}
	idGen := stubIDGen{next: "generated-id"}

	tripUC := usecase.NewTripUseCase(tripRepo, idGen)
	expenseUC := usecase.NewExpenseUseCase(stubTxManager{}, tripRepo, expenseRepo, nil, stubRetrier{}, idGen)
	settlementUC := usecase.NewSettlementUseCase(tripRepo, expenseRepo, nil)

	return &testEnv{
		tripRepo:    tripRepo,
		expenseRepo: expenseRepo,
		trips:       NewTripHandler(tripUC),
		expenses:    NewExpenseHandler(expenseUC),
		settlement:  NewSettlementHandler(settlementUC),
	}
}

// routeContext injects a chi URL parameter into the request context.
func routeContext(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestTripHandler_Create(t *testing.T) {
	env := newTestEnv()

	body := `{"name":"Bali","members":["alice","bob"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips", strings.NewReader(body))
	rec := httptest.NewRecorder()

	env.trips.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.TripResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Name != "Bali" || len(resp.Members) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestTripHandler_Create_NoMembers(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips", strings.NewReader(`{"name":"Empty"}`))
	rec := httptest.NewRecorder()

	env.trips.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTripHandler_Get_NotFound(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trips/missing", nil)
	req = routeContext(req, "id", "missing")
	rec := httptest.NewRecorder()

	env.trips.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestExpenseHandler_Create(t *testing.T) {
	env := newTestEnv()
	env.tripRepo.trips["trip-1"] = &domain.Trip{ID: "trip-1", Name: "Bali", Members: []string{"alice", "bob"}}

	body := `{
		"description": "dinner",
		"payer_id": "alice",
		"amount": "59.50",
		"currency": "USD",
		"split_type": "even",
		"participants": [{"user_id": "alice"}, {"user_id": "bob"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/trip-1/expenses", strings.NewReader(body))
	req = routeContext(req, "id", "trip-1")
	rec := httptest.NewRecorder()

	env.expenses.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if !resp.Amount.Equal(decimal.RequireFromString("59.50")) {
		t.Fatalf("unexpected amount %s", resp.Amount)
	}
}

func TestExpenseHandler_Create_PayerOutsideTrip(t *testing.T) {
	env := newTestEnv()
	env.tripRepo.trips["trip-1"] = &domain.Trip{ID: "trip-1", Name: "Bali", Members: []string{"alice"}}

	body := `{
		"payer_id": "mallory",
		"amount": "10",
		"currency": "USD",
		"split_type": "even",
		"participants": [{"user_id": "alice"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/trip-1/expenses", strings.NewReader(body))
	req = routeContext(req, "id", "trip-1")
	rec := httptest.NewRecorder()

	env.expenses.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSettlementHandler_Get(t *testing.T) {
	env := newTestEnv()
	env.tripRepo.trips["trip-1"] = &domain.Trip{ID: "trip-1", Name: "Bali", Members: []string{"alice", "bob"}}
	amount := decimal.RequireFromString("30.00")
	env.expenseRepo.expenses["e-1"] = &domain.Expense{
		ID:        "e-1",
		TripID:    "trip-1",
		PayerID:   "alice",
		Amount:    amount,
		Currency:  "USD",
		SplitType: domain.SplitTypeEven,
		Participants: []domain.ExpenseParticipant{
			{UserID: "alice"}, {UserID: "bob"},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trips/trip-1/settlement", nil)
	req = routeContext(req, "id", "trip-1")
	rec := httptest.NewRecorder()

	env.settlement.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.SettlementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(resp.Currencies) != 1 || len(resp.Currencies[0].Transfers) != 1 {
		t.Fatalf("unexpected settlement %+v", resp)
	}
	transfer := resp.Currencies[0].Transfers[0]
	if transfer.FromUserID != "bob" || transfer.ToUserID != "alice" || !transfer.Amount.Equal(decimal.RequireFromString("15")) {
		t.Fatalf("unexpected transfer %+v", transfer)
	}
}

func TestSettlementHandler_Breakdown_MissingParams(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trips/trip-1/settlement/breakdown", nil)
	req = routeContext(req, "id", "trip-1")
	rec := httptest.NewRecorder()

	env.settlement.Breakdown(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
