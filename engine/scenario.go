package engine

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// AnalyzeScenarios prices each hypothetical against the same target month
// and diffs it with the baseline report. The hours multiplier scales
// operating hours; the cost multiplier scales the fuel and maintenance
// per-hour rates. Fixed costs and depreciation are not usage-dependent and
// are never adjusted. Results come back in input order.
func AnalyzeScenarios(s *ProjectSnapshot, target Period, scenarios []ScenarioDefinition) ([]ScenarioResult, error) {
	target = target.normalize()
	baseline, err := GenerateMonthlyReport(s, target)
	if err != nil {
		return nil, err
	}
	params, err := s.ResolveParameters(target)
	if err != nil {
		return nil, err
	}

	results := make([]ScenarioResult, 0, len(scenarios))
	for _, sc := range scenarios {
		adjusted := params
		hoursMult := multiplierOrOne(sc.OperatingHoursMultiplier)
		costMult := multiplierOrOne(sc.CostMultiplier)
		adjusted.OperatingHoursPerMonth = params.OperatingHoursPerMonth.Mul(hoursMult)
		adjusted.FuelCostPerHour = params.FuelCostPerHour.Mul(costMult)
		adjusted.MaintenanceCostPerHour = params.MaintenanceCostPerHour.Mul(costMult)

		report, err := generateWithParams(s, target, adjusted)
		if err != nil {
			return nil, err
		}
		results = append(results, ScenarioResult{
			Name:   sc.Name,
			Report: *report,
			Deltas: diffReports(baseline, report),
		})
	}
	return results, nil
}

func multiplierOrOne(m *decimal.Decimal) decimal.Decimal {
	if m == nil {
		return one
	}
	return *m
}

func diffReports(baseline, scenario *MonthlyReport) Deltas {
	d := Deltas{
		TotalCost:     scenario.TotalCost.Sub(baseline.TotalCost),
		VariableCosts: scenario.VariableCosts.Sub(baseline.VariableCosts),
	}
	d.TotalCostPercent = percentDelta(d.TotalCost, baseline.TotalCost)
	d.VariableCostsPercent = percentDelta(d.VariableCosts, baseline.VariableCosts)
	if baseline.CostPerHour.Valid && scenario.CostPerHour.Valid {
		d.CostPerHour = decimal.NewNullDecimal(
			scenario.CostPerHour.Decimal.Sub(baseline.CostPerHour.Decimal))
	}
	return d
}

func percentDelta(diff, base decimal.Decimal) decimal.NullDecimal {
	if base.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(diff.Mul(hundred).DivRound(base, 2))
}
