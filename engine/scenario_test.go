package engine_test

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
	"github.com/shopspring/decimal"
)

func TestAnalyzeScenarios_IdentityProperty(t *testing.T) {
	s := testSnapshot()
	target := engine.NewPeriod(2025, time.March)
	oneMult := decimal.NewFromInt(1)

	results, err := engine.AnalyzeScenarios(s, target, []engine.ScenarioDefinition{
		{Name: "baseline", OperatingHoursMultiplier: &oneMult, CostMultiplier: &oneMult},
		{Name: "defaults"},
	})
	if err != nil {
		t.Fatalf("AnalyzeScenarios error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	baseline, err := engine.GenerateMonthlyReport(s, target)
	if err != nil {
		t.Fatalf("GenerateMonthlyReport error: %v", err)
	}
	for _, result := range results {
		if marshalReport(t, &result.Report) != marshalReport(t, baseline) {
			t.Fatalf("scenario %q with unit multipliers diverged from baseline", result.Name)
		}
		if !result.Deltas.TotalCost.IsZero() || !result.Deltas.VariableCosts.IsZero() {
			t.Fatalf("scenario %q expected zero deltas, got %+v", result.Name, result.Deltas)
		}
	}
}

func TestAnalyzeScenarios_HoursMultiplierOnlyMovesVariableCosts(t *testing.T) {
	s := testSnapshot()
	target := engine.NewPeriod(2025, time.March)
	double := decimal.NewFromInt(2)

	results, err := engine.AnalyzeScenarios(s, target, []engine.ScenarioDefinition{
		{Name: "double shift", OperatingHoursMultiplier: &double},
	})
	if err != nil {
		t.Fatalf("AnalyzeScenarios error: %v", err)
	}
	result := results[0]

	if !result.Report.VariableCosts.Equal(d("20000")) {
		t.Fatalf("variable costs expected 20000, got %s", result.Report.VariableCosts.String())
	}
	if !result.Report.FixedCosts.Equal(d("82000")) {
		t.Fatalf("fixed costs must not move, got %s", result.Report.FixedCosts.String())
	}
	if !result.Report.Depreciation.Equal(d("75000")) {
		t.Fatalf("depreciation must not move, got %s", result.Report.Depreciation.String())
	}
	if !result.Deltas.TotalCost.Equal(d("10000")) {
		t.Fatalf("total cost delta expected 10000, got %s", result.Deltas.TotalCost.String())
	}
	// 10000 / 167000 ≈ 5.99%
	if !result.Deltas.TotalCostPercent.Valid || !result.Deltas.TotalCostPercent.Decimal.Equal(d("5.99")) {
		t.Fatalf("total cost percent expected 5.99, got %+v", result.Deltas.TotalCostPercent)
	}
}

func TestAnalyzeScenarios_CostMultiplierScalesHourlyRatesOnly(t *testing.T) {
	s := testSnapshot()
	target := engine.NewPeriod(2025, time.March)
	half := decimal.RequireFromString("0.5")

	results, err := engine.AnalyzeScenarios(s, target, []engine.ScenarioDefinition{
		{Name: "cheap fuel", CostMultiplier: &half},
	})
	if err != nil {
		t.Fatalf("AnalyzeScenarios error: %v", err)
	}
	result := results[0]

	if !result.Report.VariableCosts.Equal(d("5000")) {
		t.Fatalf("variable costs expected 5000, got %s", result.Report.VariableCosts.String())
	}
	if !result.Report.FixedCosts.Equal(d("82000")) {
		t.Fatalf("fixed costs must not move, got %s", result.Report.FixedCosts.String())
	}
	if !result.Deltas.VariableCosts.Equal(d("-5000")) {
		t.Fatalf("variable cost delta expected -5000, got %s", result.Deltas.VariableCosts.String())
	}
}
