package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersRegisteredOnDefaultRegistry(t *testing.T) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	registered := map[string]bool{}
	for _, f := range families {
		registered[f.GetName()] = true
	}

	expected := []string{
		"tripsplit_trips_created_total",
		"tripsplit_expenses_created_total",
		"tripsplit_expenses_deleted_total",
		"tripsplit_settlements_computed_total",
		"tripsplit_settlement_duration_seconds",
		"tripsplit_settlement_cache_hits_total",
	}
	for _, name := range expected {
		if !registered[name] {
			t.Fatalf("expected %s to be registered", name)
		}
	}
}

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(SettlementsComputed)
	SettlementsComputed.Inc()
	if got := testutil.ToFloat64(SettlementsComputed); got != before+1 {
		t.Fatalf("expected settlements counter to increment, got %v -> %v", before, got)
	}

	hitsBefore := testutil.ToFloat64(SettlementCacheHits)
	SettlementCacheHits.Inc()
	if got := testutil.ToFloat64(SettlementCacheHits); got != hitsBefore+1 {
		t.Fatalf("expected cache hit counter to increment, got %v -> %v", hitsBefore, got)
	}
}

func TestValidationFindingsByCode(t *testing.T) {
	counter := ValidationFindings.WithLabelValues("conservation_violated")
	before := testutil.ToFloat64(counter)

	ValidationFindings.WithLabelValues("conservation_violated").Inc()

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Fatalf("expected conservation findings to increment, got %v -> %v", before, got)
	}
}
