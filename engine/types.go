package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type DepreciationMethod string

const (
	DepreciationStraightLine      DepreciationMethod = "straight_line"
	DepreciationUnitsOfProduction DepreciationMethod = "units_of_production"
)

func (m DepreciationMethod) Valid() bool {
	return m == DepreciationStraightLine || m == DepreciationUnitsOfProduction
}

type AllocationMethod string

const (
	AllocateByHours    AllocationMethod = "by_hours"
	AllocateEqual      AllocationMethod = "equal"
	AllocatePercentage AllocationMethod = "percentage"
)

func (m AllocationMethod) Valid() bool {
	return m == AllocateByHours || m == AllocateEqual || m == AllocatePercentage
}

type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
)

type ProjectCategory string

const (
	CategoryGeneral    ProjectCategory = "general"
	CategoryExcavation ProjectCategory = "excavation"
	CategoryTransport  ProjectCategory = "transport"
	CategoryLifting    ProjectCategory = "lifting"
)

// Equipment is the hydrated view of one asset. The engine receives these
// fully loaded; it never touches storage.
type Equipment struct {
	Id               int
	Name             string
	PurchasePrice    decimal.Decimal
	AcquisitionDate  time.Time
	ServiceLifeYears int
	SalvageValue     decimal.Decimal
	Method           DepreciationMethod
	// ExpectedLifetimeHours is the total-usage baseline for
	// units_of_production; ignored for straight_line.
	ExpectedLifetimeHours decimal.Decimal
	Archived              bool
}

// Scope tags an operating-parameter record as either the project default or
// an override for one specific month.
type Scope struct {
	forMonth bool
	period   Period
}

func DefaultScope() Scope { return Scope{} }

func MonthScope(p Period) Scope { return Scope{forMonth: true, period: p.normalize()} }

func (s Scope) IsDefault() bool { return !s.forMonth }

// ForMonth returns the scoped month when the record is a month override.
func (s Scope) ForMonth() (Period, bool) { return s.period, s.forMonth }

func (s Scope) String() string {
	if s.forMonth {
		return s.period.String()
	}
	return "default"
}

type OtherExpense struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type OperatingParameters struct {
	Scope                  Scope
	OperatingHoursPerMonth decimal.Decimal
	FuelCostPerHour        decimal.Decimal
	MaintenanceCostPerHour decimal.Decimal
	InsuranceMonthly       decimal.Decimal
	StaffSalariesMonthly   decimal.Decimal
	FacilityRentMonthly    decimal.Decimal
	OtherExpenses          []OtherExpense
}

type Member struct {
	Id                     int
	Name                   string
	Role                   string
	OwnershipShare         decimal.Decimal
	OperatingHoursPerMonth decimal.Decimal
	Status                 MemberStatus
}

// ProjectSnapshot is everything the engine needs to price one project:
// hydrated equipment, parameter records, and members. It is a plain value;
// generators hold no state between calls.
type ProjectSnapshot struct {
	ProjectId        int
	Name             string
	Category         ProjectCategory
	AllocationMethod AllocationMethod
	Equipment        []Equipment
	Parameters       []OperatingParameters
	Members          []Member
}

func (s *ProjectSnapshot) ActiveMembers() []Member {
	active := make([]Member, 0, len(s.Members))
	for _, m := range s.Members {
		if m.Status == MemberActive {
			active = append(active, m)
		}
	}
	return active
}

// ResolveParameters applies the lookup rule: prefer the month override,
// fall back to the default record, otherwise the computation cannot proceed.
func (s *ProjectSnapshot) ResolveParameters(target Period) (OperatingParameters, error) {
	var def *OperatingParameters
	for i := range s.Parameters {
		p := &s.Parameters[i]
		if month, ok := p.Scope.ForMonth(); ok {
			if month.Equal(target) {
				return *p, nil
			}
			continue
		}
		if def == nil {
			def = p
		}
	}
	if def != nil {
		return *def, nil
	}
	return OperatingParameters{}, fmt.Errorf("%w: project %d has no parameters for %s and no default", ErrMissingOperatingParameters, s.ProjectId, target)
}

type MemberAllocation struct {
	MemberId      int             `json:"member_id"`
	MemberName    string          `json:"member_name"`
	AllocatedCost decimal.Decimal `json:"allocated_cost"`
}

// MonthlyReport is immutable once produced; a recomputation is a new value.
// CostPerHour and BreakEvenHours are null when their denominator is zero —
// a zero-hours month is a valid report, not a failure.
type MonthlyReport struct {
	Year              int                 `json:"year"`
	Month             time.Month          `json:"month"`
	TotalCost         decimal.Decimal     `json:"total_cost"`
	FixedCosts        decimal.Decimal     `json:"fixed_costs"`
	VariableCosts     decimal.Decimal     `json:"variable_costs"`
	Depreciation      decimal.Decimal     `json:"depreciation"`
	OperatingHours    decimal.Decimal     `json:"operating_hours"`
	CostPerHour       decimal.NullDecimal `json:"cost_per_hour"`
	BreakEvenHours    decimal.NullDecimal `json:"break_even_hours"`
	MemberAllocations []MemberAllocation  `json:"member_allocations"`
}

func (r *MonthlyReport) Period() Period {
	return Period{Year: r.Year, Month: r.Month}
}

// SchedulePoint is one month of a full depreciation schedule.
type SchedulePoint struct {
	Year         int             `json:"year"`
	Month        time.Month      `json:"month"`
	Depreciation decimal.Decimal `json:"depreciation"`
	Accumulated  decimal.Decimal `json:"accumulated"`
	BookValue    decimal.Decimal `json:"book_value"`
}

// ScenarioDefinition describes hypothetical multipliers against the baseline.
// Nil multipliers default to 1.
type ScenarioDefinition struct {
	Name                     string           `json:"name"`
	OperatingHoursMultiplier *decimal.Decimal `json:"operating_hours_multiplier"`
	CostMultiplier           *decimal.Decimal `json:"cost_multiplier"`
}

type Deltas struct {
	TotalCost            decimal.Decimal     `json:"total_cost"`
	TotalCostPercent     decimal.NullDecimal `json:"total_cost_percent"`
	VariableCosts        decimal.Decimal     `json:"variable_costs"`
	VariableCostsPercent decimal.NullDecimal `json:"variable_costs_percent"`
	CostPerHour          decimal.NullDecimal `json:"cost_per_hour"`
}

type ScenarioResult struct {
	Name   string        `json:"name"`
	Report MonthlyReport `json:"report"`
	Deltas Deltas        `json:"deltas"`
}

// HealthScore is the composite 0-100 metric plus its sub-scores.
type HealthScore struct {
	Overall          decimal.Decimal `json:"overall"`
	CostEfficiency   decimal.Decimal `json:"cost_efficiency"`
	BreakEvenMargin  decimal.Decimal `json:"break_even_margin"`
	DepreciationLoad decimal.Decimal `json:"depreciation_load"`
}
