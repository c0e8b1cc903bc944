package engine_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
	"github.com/shopspring/decimal"
)

// testSnapshot is a quarry project with one straight-line excavator
// (75,000/month depreciation through December 2029), default parameters
// worth 82,000 fixed and 10,000 variable per month, and two active members.
func testSnapshot() *engine.ProjectSnapshot {
	return &engine.ProjectSnapshot{
		ProjectId:        1,
		Name:             "Hpakant Quarry",
		Category:         engine.CategoryExcavation,
		AllocationMethod: engine.AllocateEqual,
		Equipment: []engine.Equipment{
			{
				Id:               1,
				Name:             "CAT 320 Excavator",
				PurchasePrice:    d("10000000"),
				AcquisitionDate:  acquiredAt(2020, time.January),
				ServiceLifeYears: 10,
				SalvageValue:     d("1000000"),
				Method:           engine.DepreciationStraightLine,
			},
		},
		Parameters: []engine.OperatingParameters{
			{
				Scope:                  engine.DefaultScope(),
				OperatingHoursPerMonth: d("200"),
				FuelCostPerHour:        d("30"),
				MaintenanceCostPerHour: d("20"),
				InsuranceMonthly:       d("5000"),
				StaffSalariesMonthly:   d("60000"),
				FacilityRentMonthly:    d("15000"),
				OtherExpenses: []engine.OtherExpense{
					{Description: "generator fuel", Amount: d("2000")},
				},
			},
		},
		Members: []engine.Member{
			member(1, "Aye Chan", "60", "120"),
			member(2, "Thiha", "40", "80"),
			{Id: 3, Name: "Zaw Min", Status: engine.MemberInactive},
		},
	}
}

func marshalReport(t *testing.T, r *engine.MonthlyReport) string {
	t.Helper()
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}
	return string(b)
}

func TestGenerateMonthlyReport_Arithmetic(t *testing.T) {
	report, err := engine.GenerateMonthlyReport(testSnapshot(), engine.NewPeriod(2025, time.March))
	if err != nil {
		t.Fatalf("GenerateMonthlyReport error: %v", err)
	}

	if !report.FixedCosts.Equal(d("82000")) {
		t.Fatalf("fixed costs expected 82000, got %s", report.FixedCosts.String())
	}
	if !report.VariableCosts.Equal(d("10000")) {
		t.Fatalf("variable costs expected 10000, got %s", report.VariableCosts.String())
	}
	if !report.Depreciation.Equal(d("75000")) {
		t.Fatalf("depreciation expected 75000, got %s", report.Depreciation.String())
	}
	if !report.TotalCost.Equal(d("167000")) {
		t.Fatalf("total cost expected 167000, got %s", report.TotalCost.String())
	}
	if !report.CostPerHour.Valid || !report.CostPerHour.Decimal.Equal(d("835")) {
		t.Fatalf("cost per hour expected 835, got %+v", report.CostPerHour)
	}
	if !report.BreakEvenHours.Valid || !report.BreakEvenHours.Decimal.Equal(d("3340")) {
		t.Fatalf("break-even hours expected 3340, got %+v", report.BreakEvenHours)
	}
	assertAllocated(t, report.MemberAllocations, []string{"83500", "83500"})
}

func TestGenerateMonthlyReport_MonthOverrideWinsOverDefault(t *testing.T) {
	s := testSnapshot()
	override := s.Parameters[0]
	override.Scope = engine.MonthScope(engine.NewPeriod(2025, time.April))
	override.OperatingHoursPerMonth = d("300")
	s.Parameters = append(s.Parameters, override)

	apr, err := engine.GenerateMonthlyReport(s, engine.NewPeriod(2025, time.April))
	if err != nil {
		t.Fatalf("GenerateMonthlyReport error: %v", err)
	}
	if !apr.VariableCosts.Equal(d("15000")) {
		t.Fatalf("override month variable costs expected 15000, got %s", apr.VariableCosts.String())
	}

	may, err := engine.GenerateMonthlyReport(s, engine.NewPeriod(2025, time.May))
	if err != nil {
		t.Fatalf("GenerateMonthlyReport error: %v", err)
	}
	if !may.VariableCosts.Equal(d("10000")) {
		t.Fatalf("default month variable costs expected 10000, got %s", may.VariableCosts.String())
	}
}

func TestGenerateMonthlyReport_ZeroHoursProducesSentinelNotFailure(t *testing.T) {
	s := testSnapshot()
	s.Parameters[0].OperatingHoursPerMonth = decimal.Zero

	report, err := engine.GenerateMonthlyReport(s, engine.NewPeriod(2025, time.March))
	if err != nil {
		t.Fatalf("zero-hours month must still produce a report, got %v", err)
	}
	if report.CostPerHour.Valid {
		t.Fatalf("cost per hour should be undefined for a zero-hours month, got %s", report.CostPerHour.Decimal.String())
	}
	if !report.VariableCosts.IsZero() {
		t.Fatalf("variable costs expected 0, got %s", report.VariableCosts.String())
	}
	if !report.BreakEvenHours.Valid {
		t.Fatal("break-even hours should still be defined while hourly rates are positive")
	}
}

func TestGenerateMonthlyReport_MissingParameters(t *testing.T) {
	s := testSnapshot()
	s.Parameters = nil

	_, err := engine.GenerateMonthlyReport(s, engine.NewPeriod(2025, time.March))
	if !errors.Is(err, engine.ErrMissingOperatingParameters) {
		t.Fatalf("expected ErrMissingOperatingParameters, got %v", err)
	}
}

func TestGenerateMonthlyReport_ArchivedEquipmentExcluded(t *testing.T) {
	s := testSnapshot()
	s.Equipment = append(s.Equipment, engine.Equipment{
		Id:               2,
		Name:             "Retired dump truck",
		PurchasePrice:    d("5000000"),
		AcquisitionDate:  acquiredAt(2021, time.June),
		ServiceLifeYears: 8,
		SalvageValue:     decimal.Zero,
		Method:           engine.DepreciationStraightLine,
		Archived:         true,
	})

	report, err := engine.GenerateMonthlyReport(s, engine.NewPeriod(2025, time.March))
	if err != nil {
		t.Fatalf("GenerateMonthlyReport error: %v", err)
	}
	if !report.Depreciation.Equal(d("75000")) {
		t.Fatalf("archived equipment leaked into depreciation: got %s", report.Depreciation.String())
	}
}

func TestGenerateMonthlyReport_Purity(t *testing.T) {
	s := testSnapshot()
	target := engine.NewPeriod(2025, time.March)

	first, err := engine.GenerateMonthlyReport(s, target)
	if err != nil {
		t.Fatalf("GenerateMonthlyReport error: %v", err)
	}
	second, err := engine.GenerateMonthlyReport(s, target)
	if err != nil {
		t.Fatalf("GenerateMonthlyReport error: %v", err)
	}
	if marshalReport(t, first) != marshalReport(t, second) {
		t.Fatal("identical inputs produced different reports")
	}
}
