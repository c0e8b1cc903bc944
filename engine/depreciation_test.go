package engine_test

import (
	"errors"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func acquiredAt(year int, month time.Month) time.Time {
	return time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
}

func TestStraightLine_ConcreteVector(t *testing.T) {
	calc, err := engine.NewDepreciationCalculator(engine.Equipment{
		Id:               1,
		Name:             "CAT 320 Excavator",
		PurchasePrice:    d("10000000"),
		AcquisitionDate:  acquiredAt(2020, time.January),
		ServiceLifeYears: 10,
		SalvageValue:     d("1000000"),
		Method:           engine.DepreciationStraightLine,
	})
	if err != nil {
		t.Fatalf("NewDepreciationCalculator error: %v", err)
	}

	cases := []struct {
		period   engine.Period
		expected string
	}{
		{engine.NewPeriod(2020, time.January), "75000"},
		{engine.NewPeriod(2024, time.June), "75000"},
		{engine.NewPeriod(2029, time.December), "75000"},
		{engine.NewPeriod(2030, time.January), "0"},
		{engine.NewPeriod(2019, time.December), "0"},
	}
	for _, tc := range cases {
		got := calc.MonthlyAmount(tc.period, nil)
		if !got.Equal(d(tc.expected)) {
			t.Fatalf("MonthlyAmount(%s) expected %s, got %s", tc.period, tc.expected, got.String())
		}
	}
}

func TestStraightLineSchedule_ConservationWithClampedFinalMonth(t *testing.T) {
	// 110.00 over 12 months rounds up to 9.17/month, so the last month
	// must be clamped down to 9.13 for the schedule to sum exactly.
	calc, err := engine.NewDepreciationCalculator(engine.Equipment{
		Id:               2,
		PurchasePrice:    d("110.00"),
		AcquisitionDate:  acquiredAt(2025, time.January),
		ServiceLifeYears: 1,
		SalvageValue:     decimal.Zero,
		Method:           engine.DepreciationStraightLine,
	})
	if err != nil {
		t.Fatalf("NewDepreciationCalculator error: %v", err)
	}

	schedule := calc.Schedule(nil)
	if len(schedule) != 12 {
		t.Fatalf("expected 12 schedule points, got %d", len(schedule))
	}
	sum := decimal.Zero
	for _, point := range schedule {
		sum = sum.Add(point.Depreciation)
	}
	if !sum.Equal(d("110.00")) {
		t.Fatalf("schedule sum expected 110.00, got %s", sum.String())
	}
	last := schedule[len(schedule)-1]
	if !last.Depreciation.Equal(d("9.13")) {
		t.Fatalf("final month expected 9.13, got %s", last.Depreciation.String())
	}
	if !last.BookValue.IsZero() {
		t.Fatalf("final book value expected 0, got %s", last.BookValue.String())
	}
}

func TestUnitsOfProduction_IdleMonthAccruesNothing(t *testing.T) {
	calc, err := engine.NewDepreciationCalculator(engine.Equipment{
		Id:                    3,
		PurchasePrice:         d("50000"),
		AcquisitionDate:       acquiredAt(2025, time.January),
		ServiceLifeYears:      2,
		SalvageValue:          decimal.Zero,
		Method:                engine.DepreciationUnitsOfProduction,
		ExpectedLifetimeHours: d("1000"),
	})
	if err != nil {
		t.Fatalf("NewDepreciationCalculator error: %v", err)
	}

	usage := func(p engine.Period) (decimal.Decimal, bool) {
		if p.Equal(engine.NewPeriod(2025, time.February)) {
			return decimal.Zero, false
		}
		return d("100"), true
	}

	jan := calc.MonthlyAmount(engine.NewPeriod(2025, time.January), usage)
	if !jan.Equal(d("5000")) {
		t.Fatalf("January expected 5000, got %s", jan.String())
	}
	feb := calc.MonthlyAmount(engine.NewPeriod(2025, time.February), usage)
	if !feb.IsZero() {
		t.Fatalf("idle February expected 0, got %s", feb.String())
	}
	mar := calc.MonthlyAmount(engine.NewPeriod(2025, time.March), usage)
	if !mar.Equal(d("5000")) {
		t.Fatalf("March expected 5000, got %s", mar.String())
	}
}

func TestUnitsOfProduction_ClampsAtDepreciableBase(t *testing.T) {
	calc, err := engine.NewDepreciationCalculator(engine.Equipment{
		Id:                    4,
		PurchasePrice:         d("50000"),
		AcquisitionDate:       acquiredAt(2025, time.January),
		ServiceLifeYears:      2,
		SalvageValue:          decimal.Zero,
		Method:                engine.DepreciationUnitsOfProduction,
		ExpectedLifetimeHours: d("1000"),
	})
	if err != nil {
		t.Fatalf("NewDepreciationCalculator error: %v", err)
	}

	// 300 hours/month burns 15000/month; the base runs out mid-April.
	usage := func(engine.Period) (decimal.Decimal, bool) { return d("300"), true }

	apr := calc.MonthlyAmount(engine.NewPeriod(2025, time.April), usage)
	if !apr.Equal(d("5000")) {
		t.Fatalf("April expected clamped 5000, got %s", apr.String())
	}
	may := calc.MonthlyAmount(engine.NewPeriod(2025, time.May), usage)
	if !may.IsZero() {
		t.Fatalf("May expected 0 after exhaustion, got %s", may.String())
	}

	schedule := calc.Schedule(usage)
	sum := decimal.Zero
	for _, point := range schedule {
		sum = sum.Add(point.Depreciation)
	}
	if !sum.Equal(d("50000")) {
		t.Fatalf("schedule sum expected 50000, got %s", sum.String())
	}
}

func TestNewDepreciationCalculator_RejectsBadConfiguration(t *testing.T) {
	cases := []struct {
		name string
		eq   engine.Equipment
	}{
		{
			name: "zero service life",
			eq: engine.Equipment{
				Id:              5,
				PurchasePrice:   d("1000"),
				AcquisitionDate: acquiredAt(2025, time.January),
				Method:          engine.DepreciationStraightLine,
			},
		},
		{
			name: "salvage above purchase price",
			eq: engine.Equipment{
				Id:               6,
				PurchasePrice:    d("1000"),
				SalvageValue:     d("2000"),
				ServiceLifeYears: 5,
				AcquisitionDate:  acquiredAt(2025, time.January),
				Method:           engine.DepreciationStraightLine,
			},
		},
		{
			name: "units of production without lifetime hours",
			eq: engine.Equipment{
				Id:               7,
				PurchasePrice:    d("1000"),
				ServiceLifeYears: 5,
				AcquisitionDate:  acquiredAt(2025, time.January),
				Method:           engine.DepreciationUnitsOfProduction,
			},
		},
		{
			name: "unknown method",
			eq: engine.Equipment{
				Id:               8,
				PurchasePrice:    d("1000"),
				ServiceLifeYears: 5,
				AcquisitionDate:  acquiredAt(2025, time.January),
				Method:           engine.DepreciationMethod("declining_balance"),
			},
		},
	}
	for _, tc := range cases {
		calc, err := engine.NewDepreciationCalculator(tc.eq)
		if !errors.Is(err, engine.ErrInvalidEquipmentConfiguration) {
			t.Fatalf("%s: expected ErrInvalidEquipmentConfiguration, got %v", tc.name, err)
		}
		if calc != nil {
			t.Fatalf("%s: expected nil calculator on error", tc.name)
		}
	}
}
