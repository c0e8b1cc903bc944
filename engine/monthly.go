package engine

import "github.com/shopspring/decimal"

// GenerateMonthlyReport prices one calendar month from the snapshot alone.
// Same snapshot and target always produce the same report.
func GenerateMonthlyReport(s *ProjectSnapshot, target Period) (*MonthlyReport, error) {
	target = target.normalize()
	params, err := s.ResolveParameters(target)
	if err != nil {
		return nil, err
	}
	return generateWithParams(s, target, params)
}

// generateWithParams is the shared core for baseline and scenario reports.
// Depreciation always follows the baseline usage of the snapshot, so
// scenario multipliers never rewrite asset history.
func generateWithParams(s *ProjectSnapshot, target Period, params OperatingParameters) (*MonthlyReport, error) {
	fixed := params.InsuranceMonthly.
		Add(params.StaffSalariesMonthly).
		Add(params.FacilityRentMonthly)
	for _, e := range params.OtherExpenses {
		fixed = fixed.Add(e.Amount)
	}

	hourlyRate := params.FuelCostPerHour.Add(params.MaintenanceCostPerHour)
	variable := params.OperatingHoursPerMonth.Mul(hourlyRate)

	depreciation := decimal.Zero
	for _, eq := range s.Equipment {
		if eq.Archived {
			continue
		}
		calc, err := NewDepreciationCalculator(eq)
		if err != nil {
			return nil, err
		}
		depreciation = depreciation.Add(calc.MonthlyAmount(target, s.BaselineUsage))
	}

	total := fixed.Add(variable).Add(depreciation)

	var costPerHour decimal.NullDecimal
	if params.OperatingHoursPerMonth.IsPositive() {
		costPerHour = decimal.NewNullDecimal(total.DivRound(params.OperatingHoursPerMonth, 2))
	}
	var breakEven decimal.NullDecimal
	if hourlyRate.IsPositive() {
		breakEven = decimal.NewNullDecimal(total.DivRound(hourlyRate, 2))
	}

	allocations, err := Allocate(total, s.ActiveMembers(), s.AllocationMethod)
	if err != nil {
		return nil, err
	}

	return &MonthlyReport{
		Year:              target.Year,
		Month:             target.Month,
		TotalCost:         total,
		FixedCosts:        fixed,
		VariableCosts:     variable,
		Depreciation:      depreciation,
		OperatingHours:    params.OperatingHoursPerMonth,
		CostPerHour:       costPerHour,
		BreakEvenHours:    breakEven,
		MemberAllocations: allocations,
	}, nil
}

// BaselineUsage feeds units-of-production depreciation from the resolved
// operating hours of each month.
func (s *ProjectSnapshot) BaselineUsage(p Period) (decimal.Decimal, bool) {
	params, err := s.ResolveParameters(p)
	if err != nil {
		return decimal.Zero, false
	}
	return params.OperatingHoursPerMonth, true
}
