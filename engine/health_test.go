package engine_test

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
	"github.com/shopspring/decimal"
)

func healthyReport(costPerHour, breakEven string) *engine.MonthlyReport {
	return &engine.MonthlyReport{
		Year:           2025,
		Month:          time.March,
		TotalCost:      d("100000"),
		OperatingHours: d("200"),
		CostPerHour:    decimal.NewNullDecimal(d(costPerHour)),
		BreakEvenHours: decimal.NewNullDecimal(d(breakEven)),
	}
}

func TestScoreHealth_PerfectMonth(t *testing.T) {
	// At benchmark cost, past break-even, no depreciation in the mix.
	report := healthyReport("400", "100")
	score := engine.ScoreHealth(engine.CategoryExcavation, report)

	if !score.CostEfficiency.Equal(d("100")) {
		t.Fatalf("cost efficiency expected 100, got %s", score.CostEfficiency.String())
	}
	if !score.BreakEvenMargin.Equal(d("100")) {
		t.Fatalf("break-even margin expected 100, got %s", score.BreakEvenMargin.String())
	}
	if !score.DepreciationLoad.Equal(d("100")) {
		t.Fatalf("depreciation load expected 100, got %s", score.DepreciationLoad.String())
	}
	if !score.Overall.Equal(d("100")) {
		t.Fatalf("overall expected 100, got %s", score.Overall.String())
	}
}

func TestScoreHealth_MidRangeMonth(t *testing.T) {
	// Twice the benchmark, half of break-even, depreciation half of total:
	// every component lands on 50 and so does the weighted composite.
	report := healthyReport("800", "400")
	report.Depreciation = d("50000")
	score := engine.ScoreHealth(engine.CategoryExcavation, report)

	if !score.CostEfficiency.Equal(d("50")) {
		t.Fatalf("cost efficiency expected 50, got %s", score.CostEfficiency.String())
	}
	if !score.BreakEvenMargin.Equal(d("50")) {
		t.Fatalf("break-even margin expected 50, got %s", score.BreakEvenMargin.String())
	}
	if !score.DepreciationLoad.Equal(d("50")) {
		t.Fatalf("depreciation load expected 50, got %s", score.DepreciationLoad.String())
	}
	if !score.Overall.Equal(d("50")) {
		t.Fatalf("overall expected 50, got %s", score.Overall.String())
	}
}

func TestScoreHealth_UndefinedMetricsScoreZero(t *testing.T) {
	report := &engine.MonthlyReport{
		Year:      2025,
		Month:     time.March,
		TotalCost: d("100000"),
	}
	score := engine.ScoreHealth(engine.CategoryGeneral, report)

	if !score.CostEfficiency.IsZero() {
		t.Fatalf("undefined cost per hour should score 0, got %s", score.CostEfficiency.String())
	}
	if !score.BreakEvenMargin.IsZero() {
		t.Fatalf("undefined break-even should score 0, got %s", score.BreakEvenMargin.String())
	}
}

func TestScoreHealth_UnknownCategoryUsesGeneralBenchmark(t *testing.T) {
	report := healthyReport("250", "100")
	known := engine.ScoreHealth(engine.CategoryGeneral, report)
	unknown := engine.ScoreHealth(engine.ProjectCategory("mining"), report)

	if !known.Overall.Equal(unknown.Overall) {
		t.Fatalf("unknown category expected general benchmark score %s, got %s",
			known.Overall.String(), unknown.Overall.String())
	}
}
