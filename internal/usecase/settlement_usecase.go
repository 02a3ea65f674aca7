package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/tripsplit/internal/domain"
	"github.com/iho/tripsplit/internal/infrastructure/metrics"
	"github.com/iho/tripsplit/internal/settlement"
)

// SettlementUseCase computes who-owes-whom for a trip. Settlements are never
// persisted: every call recomputes from the expense store, with a short-TTL
// redis cache in front purely to absorb request bursts.
type SettlementUseCase struct {
	tripRepo    TripRepository
	expenseRepo ExpenseRepository
	cache       Cache
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(tripRepo TripRepository, expenseRepo ExpenseRepository, cache Cache) *SettlementUseCase {
	return &SettlementUseCase{
		tripRepo:    tripRepo,
		expenseRepo: expenseRepo,
		cache:       cache,
	}
}

// CurrencySettlement is the settlement of one currency bucket. Expenses in
// different currencies never net against each other; the pipeline runs once
// per bucket.
type CurrencySettlement struct {
	Currency  domain.CurrencyCode
	Summaries []domain.PersonSummary
	Transfers []domain.MinimalTransfer
	Report    settlement.Report
}

// SettlementResult is the full settlement of a trip.
type SettlementResult struct {
	TripID     string
	Currencies []CurrencySettlement
	ComputedAt time.Time
}

// ComputeSettlement aggregates, solves and validates the trip's expenses per
// currency bucket.
func (uc *SettlementUseCase) ComputeSettlement(ctx context.Context, tripID string) (*SettlementResult, error) {
	if cached := uc.fromCache(ctx, tripID); cached != nil {
		metrics.SettlementCacheHits.Inc()
		return cached, nil
	}

	trip, err := uc.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.expenseRepo.ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	now := start.UTC()
	result := &SettlementResult{TripID: trip.ID, ComputedAt: now}

	buckets := settlement.BucketByCurrency(expenses)
	for currency, bucket := range buckets {
		summaries, err := settlement.Aggregate(bucket)
		if err != nil {
			return nil, err
		}

		transfers := settlement.Settle(summaries, now)
		report := settlement.ValidateSettlement(summaries, transfers)
		for _, f := range report.Findings {
			metrics.ValidationFindings.WithLabelValues(f.Code).Inc()
		}
		if !report.Valid {
			// Reported, never raised: the caller decides how loud to be.
			log.Warn().
				Str("trip_id", trip.ID).
				Str("currency", string(currency)).
				Int("findings", len(report.Findings)).
				Msg("settlement validation produced findings")
		}

		result.Currencies = append(result.Currencies, CurrencySettlement{
			Currency:  currency,
			Summaries: summaries,
			Transfers: transfers,
			Report:    report,
		})
	}
	sortCurrencies(result.Currencies)

	metrics.SettlementsComputed.Inc()
	metrics.SettlementDuration.Observe(time.Since(start).Seconds())

	uc.toCache(ctx, tripID, result)
	return result, nil
}

// GetTransferBreakdown explains the direct debt behind one (from, to) pair
// across the trip's expenses in the given currency.
func (uc *SettlementUseCase) GetTransferBreakdown(ctx context.Context, tripID, fromUserID, toUserID string, currency domain.CurrencyCode) (*domain.TransferBreakdown, error) {
	trip, err := uc.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.expenseRepo.ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	bucket := settlement.BucketByCurrency(expenses)[currency.Normalize()]
	return settlement.ComputeTransferBreakdown(fromUserID, toUserID, bucket)
}

func settlementCacheKey(tripID string) string {
	return "settlement:" + tripID
}

func (uc *SettlementUseCase) fromCache(ctx context.Context, tripID string) *SettlementResult {
	if uc.cache == nil {
		return nil
	}
	raw, err := uc.cache.Get(ctx, settlementCacheKey(tripID))
	if err != nil || raw == "" {
		return nil
	}
	var result SettlementResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil
	}
	return &result
}

func (uc *SettlementUseCase) toCache(ctx context.Context, tripID string, result *SettlementResult) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, settlementCacheKey(tripID), string(raw), SettlementCacheTTL); err != nil {
		log.Warn().Err(err).Str("trip_id", tripID).Msg("failed to cache settlement")
	}
}

func sortCurrencies(buckets []CurrencySettlement) {
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Currency < buckets[j].Currency
	})
}
