package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UsageFunc reports the operating hours recorded for a month. The second
// return is false when no usage figure exists for that month (idle asset:
// no units-of-production depreciation accrues).
type UsageFunc func(Period) (decimal.Decimal, bool)

// DepreciationCalculator computes per-month depreciation and full schedules
// for one piece of equipment. Configuration is validated once at
// construction; bad upstream data fails every call instead of being clamped.
type DepreciationCalculator struct {
	eq         Equipment
	base       decimal.Decimal
	lifeMonths int
	start      Period
}

func NewDepreciationCalculator(eq Equipment) (*DepreciationCalculator, error) {
	if eq.ServiceLifeYears <= 0 {
		return nil, fmt.Errorf("%w: equipment %d: service life must be at least 1 year", ErrInvalidEquipmentConfiguration, eq.Id)
	}
	if eq.PurchasePrice.IsNegative() {
		return nil, fmt.Errorf("%w: equipment %d: purchase price cannot be negative", ErrInvalidEquipmentConfiguration, eq.Id)
	}
	if eq.SalvageValue.IsNegative() {
		return nil, fmt.Errorf("%w: equipment %d: salvage value cannot be negative", ErrInvalidEquipmentConfiguration, eq.Id)
	}
	if eq.SalvageValue.GreaterThan(eq.PurchasePrice) {
		return nil, fmt.Errorf("%w: equipment %d: salvage value exceeds purchase price", ErrInvalidEquipmentConfiguration, eq.Id)
	}
	if !eq.Method.Valid() {
		return nil, fmt.Errorf("%w: equipment %d: unknown depreciation method %q", ErrInvalidEquipmentConfiguration, eq.Id, eq.Method)
	}
	if eq.Method == DepreciationUnitsOfProduction && !eq.ExpectedLifetimeHours.IsPositive() {
		return nil, fmt.Errorf("%w: equipment %d: units_of_production requires a positive expected lifetime hours baseline", ErrInvalidEquipmentConfiguration, eq.Id)
	}

	return &DepreciationCalculator{
		eq:         eq,
		base:       eq.PurchasePrice.Sub(eq.SalvageValue),
		lifeMonths: eq.ServiceLifeYears * 12,
		start:      PeriodOf(eq.AcquisitionDate),
	}, nil
}

// DepreciableBase is purchase price minus salvage value.
func (c *DepreciationCalculator) DepreciableBase() decimal.Decimal {
	return c.base
}

// MonthlyAmount returns the depreciation recognized in the target month.
// Zero before acquisition and after the depreciable base is exhausted.
func (c *DepreciationCalculator) MonthlyAmount(target Period, usage UsageFunc) decimal.Decimal {
	switch c.eq.Method {
	case DepreciationUnitsOfProduction:
		return c.unitsOfProductionAmount(target, usage)
	default:
		return c.straightLineAmount(target)
	}
}

func (c *DepreciationCalculator) straightLineAmount(target Period) decimal.Decimal {
	idx := target.MonthsSince(c.start)
	if idx < 0 || c.base.IsZero() {
		return decimal.Zero
	}
	flat := c.flatMonthly()
	if flat.IsZero() {
		// Base too small to spread; recognize it all in the first month.
		if idx == 0 {
			return c.base
		}
		return decimal.Zero
	}
	consumed := flat.Mul(decimal.NewFromInt(int64(idx)))
	remaining := c.base.Sub(consumed)
	if !remaining.IsPositive() {
		return decimal.Zero
	}
	// The final month is clamped so the cumulative total never exceeds
	// the depreciable base.
	if remaining.LessThan(flat) {
		return remaining
	}
	return flat
}

func (c *DepreciationCalculator) flatMonthly() decimal.Decimal {
	return c.base.DivRound(decimal.NewFromInt(int64(c.lifeMonths)), 2)
}

func (c *DepreciationCalculator) unitsOfProductionAmount(target Period, usage UsageFunc) decimal.Decimal {
	if target.Before(c.start) || c.base.IsZero() {
		return decimal.Zero
	}
	consumed := decimal.Zero
	for p := c.start; p.Before(target); p = p.Next() {
		consumed = consumed.Add(c.unitsStep(p, consumed, usage))
	}
	return c.unitsStep(target, consumed, usage)
}

// unitsStep is the raw usage-proportional amount for one month, clamped to
// the base remaining after everything consumed so far.
func (c *DepreciationCalculator) unitsStep(p Period, consumed decimal.Decimal, usage UsageFunc) decimal.Decimal {
	remaining := c.base.Sub(consumed)
	if !remaining.IsPositive() {
		return decimal.Zero
	}
	if usage == nil {
		return decimal.Zero
	}
	hours, ok := usage(p)
	if !ok || !hours.IsPositive() {
		return decimal.Zero
	}
	raw := c.base.Mul(hours).DivRound(c.eq.ExpectedLifetimeHours, 2)
	if raw.GreaterThan(remaining) {
		return remaining
	}
	return raw
}

// Schedule produces the ordered month-by-month schedule from acquisition.
// Straight-line runs until the base is fully consumed; units-of-production
// runs over the service-life horizon, leaving any unused base as book value.
func (c *DepreciationCalculator) Schedule(usage UsageFunc) []SchedulePoint {
	var points []SchedulePoint
	accumulated := decimal.Zero

	switch c.eq.Method {
	case DepreciationUnitsOfProduction:
		for i, p := 0, c.start; i < c.lifeMonths; i, p = i+1, p.Next() {
			amount := c.unitsStep(p, accumulated, usage)
			accumulated = accumulated.Add(amount)
			points = append(points, c.point(p, amount, accumulated))
		}
	default:
		if c.base.IsZero() {
			return points
		}
		flat := c.flatMonthly()
		if flat.IsZero() {
			return append(points, c.point(c.start, c.base, c.base))
		}
		for p := c.start; accumulated.LessThan(c.base); p = p.Next() {
			amount := flat
			if remaining := c.base.Sub(accumulated); remaining.LessThan(flat) {
				amount = remaining
			}
			accumulated = accumulated.Add(amount)
			points = append(points, c.point(p, amount, accumulated))
		}
	}
	return points
}

func (c *DepreciationCalculator) point(p Period, amount, accumulated decimal.Decimal) SchedulePoint {
	return SchedulePoint{
		Year:         p.Year,
		Month:        p.Month,
		Depreciation: amount,
		Accumulated:  accumulated,
		BookValue:    c.eq.PurchasePrice.Sub(accumulated),
	}
}
