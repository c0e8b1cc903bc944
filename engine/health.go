package engine

import "github.com/shopspring/decimal"

// Health-score configuration. Weights and benchmarks are deliberate
// constants of the product, kept in one place:
//
//	component           weight
//	cost efficiency      0.40
//	break-even margin    0.35
//	depreciation load    0.25
//
// Cost-per-hour benchmarks by project category:
//
//	general      250
//	excavation   400
//	transport    180
//	lifting      320
var (
	weightCostEfficiency   = decimal.NewFromFloat(0.40)
	weightBreakEvenMargin  = decimal.NewFromFloat(0.35)
	weightDepreciationLoad = decimal.NewFromFloat(0.25)

	categoryBenchmarks = map[ProjectCategory]decimal.Decimal{
		CategoryGeneral:    decimal.NewFromInt(250),
		CategoryExcavation: decimal.NewFromInt(400),
		CategoryTransport:  decimal.NewFromInt(180),
		CategoryLifting:    decimal.NewFromInt(320),
	}

	hundred = decimal.NewFromInt(100)
)

// ScoreHealth condenses one monthly report into a 0-100 composite. Sub-scores
// are each bounded to [0, 100] before weighting, so one runaway metric cannot
// push the overall score out of range.
func ScoreHealth(category ProjectCategory, report *MonthlyReport) *HealthScore {
	costEfficiency := scoreCostEfficiency(category, report)
	breakEvenMargin := scoreBreakEvenMargin(report)
	depreciationLoad := scoreDepreciationLoad(report)

	overall := costEfficiency.Mul(weightCostEfficiency).
		Add(breakEvenMargin.Mul(weightBreakEvenMargin)).
		Add(depreciationLoad.Mul(weightDepreciationLoad)).
		Round(2)

	return &HealthScore{
		Overall:          overall,
		CostEfficiency:   costEfficiency,
		BreakEvenMargin:  breakEvenMargin,
		DepreciationLoad: depreciationLoad,
	}
}

// scoreCostEfficiency compares cost per hour against the category benchmark.
// At or below benchmark scores 100; twice the benchmark scores 50. A month
// with no defined cost per hour (zero operating hours) scores 0.
func scoreCostEfficiency(category ProjectCategory, report *MonthlyReport) decimal.Decimal {
	if !report.CostPerHour.Valid || !report.CostPerHour.Decimal.IsPositive() {
		return decimal.Zero
	}
	benchmark, ok := categoryBenchmarks[category]
	if !ok {
		benchmark = categoryBenchmarks[CategoryGeneral]
	}
	return clampScore(benchmark.Mul(hundred).DivRound(report.CostPerHour.Decimal, 2))
}

// scoreBreakEvenMargin measures how far actual hours reach past break-even.
// Operating exactly at break-even scores 100.
func scoreBreakEvenMargin(report *MonthlyReport) decimal.Decimal {
	if !report.BreakEvenHours.Valid || !report.BreakEvenHours.Decimal.IsPositive() {
		return decimal.Zero
	}
	return clampScore(report.OperatingHours.Mul(hundred).DivRound(report.BreakEvenHours.Decimal, 2))
}

// scoreDepreciationLoad rewards months where depreciation is a small share
// of total cost. A zero-cost month carries no load and scores 100.
func scoreDepreciationLoad(report *MonthlyReport) decimal.Decimal {
	if report.TotalCost.IsZero() {
		return hundred
	}
	load := report.Depreciation.Mul(hundred).DivRound(report.TotalCost, 2)
	return clampScore(hundred.Sub(load))
}

func clampScore(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(hundred) {
		return hundred
	}
	return v
}
