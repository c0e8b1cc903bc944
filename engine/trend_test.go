package engine_test

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
)

func TestTrend_OldestFirstEndingAtRequestedMonth(t *testing.T) {
	trend, err := engine.Trend(testSnapshot(), engine.NewPeriod(2025, time.March), 3)
	if err != nil {
		t.Fatalf("Trend error: %v", err)
	}
	if len(trend) != 3 {
		t.Fatalf("expected 3 points, got %d", len(trend))
	}

	expected := []engine.Period{
		engine.NewPeriod(2025, time.January),
		engine.NewPeriod(2025, time.February),
		engine.NewPeriod(2025, time.March),
	}
	for i, want := range expected {
		if got := trend[i].Period(); !got.Equal(want) {
			t.Fatalf("trend[%d] expected %s, got %s", i, want, got)
		}
	}
}

func TestTrend_CrossesYearBoundaryBackward(t *testing.T) {
	trend, err := engine.Trend(testSnapshot(), engine.NewPeriod(2025, time.February), 4)
	if err != nil {
		t.Fatalf("Trend error: %v", err)
	}
	first := trend[0].Period()
	if !first.Equal(engine.NewPeriod(2024, time.November)) {
		t.Fatalf("expected window to start at 2024-11, got %s", first)
	}
}
