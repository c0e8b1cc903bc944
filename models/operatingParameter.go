package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/fleetcost_backend/config"
	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
	"bitbucket.org/mmdatafocus/fleetcost_backend/utils"
	"github.com/shopspring/decimal"
)

// OperatingParameter is either the project's default cost profile
// (ScopeYear/ScopeMonth null) or an override for one specific month.
type OperatingParameter struct {
	ID                     int             `gorm:"primary_key" json:"id"`
	BusinessId             string          `gorm:"index;not null" json:"business_id"`
	ProjectId              int             `gorm:"index;not null" json:"project_id"`
	ScopeYear              *int            `gorm:"default:null" json:"scope_year"`
	ScopeMonth             *int            `gorm:"default:null" json:"scope_month"`
	OperatingHoursPerMonth decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"operating_hours_per_month"`
	FuelCostPerHour        decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"fuel_cost_per_hour"`
	MaintenanceCostPerHour decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"maintenance_cost_per_hour"`
	InsuranceMonthly       decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"insurance_monthly"`
	StaffSalariesMonthly   decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"staff_salaries_monthly"`
	FacilityRentMonthly    decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"facility_rent_monthly"`
	CreatedAt              time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	OtherExpenses []ParameterExpense `gorm:"foreignKey:OperatingParameterId" json:"other_expenses,omitempty"`
}

type ParameterExpense struct {
	ID                   int             `gorm:"primary_key" json:"id"`
	BusinessId           string          `gorm:"index;not null" json:"business_id"`
	OperatingParameterId int             `gorm:"index;not null" json:"operating_parameter_id"`
	Description          string          `gorm:"size:255;not null" json:"description"`
	Amount               decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
}

type NewOperatingParameter struct {
	ScopeYear              *int            `json:"scope_year"`
	ScopeMonth             *int            `json:"scope_month"`
	OperatingHoursPerMonth decimal.Decimal `json:"operating_hours_per_month"`
	FuelCostPerHour        decimal.Decimal `json:"fuel_cost_per_hour"`
	MaintenanceCostPerHour decimal.Decimal `json:"maintenance_cost_per_hour"`
	InsuranceMonthly       decimal.Decimal `json:"insurance_monthly"`
	StaffSalariesMonthly   decimal.Decimal `json:"staff_salaries_monthly"`
	FacilityRentMonthly    decimal.Decimal `json:"facility_rent_monthly"`
	OtherExpenses          []NewExpense    `json:"other_expenses"`
}

type NewExpense struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
}

// IsDefault reports whether the record is the project-wide fallback.
func (p *OperatingParameter) IsDefault() bool {
	return p.ScopeYear == nil || p.ScopeMonth == nil
}

// ToEngine converts a stored row to the computation view.
func (p *OperatingParameter) ToEngine() engine.OperatingParameters {
	scope := engine.DefaultScope()
	if !p.IsDefault() {
		scope = engine.MonthScope(engine.NewPeriod(*p.ScopeYear, time.Month(*p.ScopeMonth)))
	}
	expenses := make([]engine.OtherExpense, 0, len(p.OtherExpenses))
	for _, e := range p.OtherExpenses {
		expenses = append(expenses, engine.OtherExpense{
			Description: e.Description,
			Amount:      e.Amount,
		})
	}
	return engine.OperatingParameters{
		Scope:                  scope,
		OperatingHoursPerMonth: p.OperatingHoursPerMonth,
		FuelCostPerHour:        p.FuelCostPerHour,
		MaintenanceCostPerHour: p.MaintenanceCostPerHour,
		InsuranceMonthly:       p.InsuranceMonthly,
		StaffSalariesMonthly:   p.StaffSalariesMonthly,
		FacilityRentMonthly:    p.FacilityRentMonthly,
		OtherExpenses:          expenses,
	}
}

func (input *NewOperatingParameter) validate() error {
	if (input.ScopeYear == nil) != (input.ScopeMonth == nil) {
		return errors.New("scope_year and scope_month must be provided together")
	}
	if input.ScopeMonth != nil && (*input.ScopeMonth < 1 || *input.ScopeMonth > 12) {
		return errors.New("scope_month must be between 1 and 12")
	}
	for _, amount := range []decimal.Decimal{
		input.OperatingHoursPerMonth,
		input.FuelCostPerHour,
		input.MaintenanceCostPerHour,
		input.InsuranceMonthly,
		input.StaffSalariesMonthly,
		input.FacilityRentMonthly,
	} {
		if amount.IsNegative() {
			return errors.New("operating parameters cannot be negative")
		}
	}
	for _, e := range input.OtherExpenses {
		if e.Amount.IsNegative() {
			return errors.New("expense amounts cannot be negative")
		}
	}
	return nil
}

// scopeConflict finds an existing record with the same scope. A project may
// carry one default record and one override per month.
func (input *NewOperatingParameter) scopeConflict(ctx context.Context, businessId string, projectId int, exceptId int) error {
	var condition string
	args := []interface{}{}
	if input.ScopeYear == nil {
		condition = "project_id = ? AND scope_year IS NULL AND scope_month IS NULL"
		args = append(args, projectId)
	} else {
		condition = "project_id = ? AND scope_year = ? AND scope_month = ?"
		args = append(args, projectId, *input.ScopeYear, *input.ScopeMonth)
	}
	if exceptId > 0 {
		condition += " AND NOT id = ?"
		args = append(args, exceptId)
	}
	count, err := utils.ResourceCountWhere[OperatingParameter](ctx, businessId, condition, args...)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("parameters already exist for this scope")
	}
	return nil
}

func CreateOperatingParameter(ctx context.Context, projectId int, input *NewOperatingParameter) (*OperatingParameter, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := utils.ValidateResourceId[Project](ctx, businessId, projectId); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := input.scopeConflict(ctx, businessId, projectId, 0); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	parameter := OperatingParameter{
		BusinessId:             businessId,
		ProjectId:              projectId,
		ScopeYear:              input.ScopeYear,
		ScopeMonth:             input.ScopeMonth,
		OperatingHoursPerMonth: input.OperatingHoursPerMonth,
		FuelCostPerHour:        input.FuelCostPerHour,
		MaintenanceCostPerHour: input.MaintenanceCostPerHour,
		InsuranceMonthly:       input.InsuranceMonthly,
		StaffSalariesMonthly:   input.StaffSalariesMonthly,
		FacilityRentMonthly:    input.FacilityRentMonthly,
	}
	if err := tx.WithContext(ctx).Create(&parameter).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for _, e := range input.OtherExpenses {
		expense := ParameterExpense{
			BusinessId:           businessId,
			OperatingParameterId: parameter.ID,
			Description:          e.Description,
			Amount:               e.Amount,
		}
		if err := tx.WithContext(ctx).Create(&expense).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		parameter.OtherExpenses = append(parameter.OtherExpenses, expense)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	if err := InvalidateProjectReports(businessId, projectId); err != nil {
		return nil, err
	}
	return &parameter, nil
}

func UpdateOperatingParameter(ctx context.Context, projectId int, parameterId int, input *NewOperatingParameter) (*OperatingParameter, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := input.scopeConflict(ctx, businessId, projectId, parameterId); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var parameter OperatingParameter
	if err := db.WithContext(ctx).Where("business_id = ? AND project_id = ?", businessId, projectId).
		First(&parameter, parameterId).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	tx := db.Begin()
	updates := map[string]interface{}{
		"ScopeYear":              input.ScopeYear,
		"ScopeMonth":             input.ScopeMonth,
		"OperatingHoursPerMonth": input.OperatingHoursPerMonth,
		"FuelCostPerHour":        input.FuelCostPerHour,
		"MaintenanceCostPerHour": input.MaintenanceCostPerHour,
		"InsuranceMonthly":       input.InsuranceMonthly,
		"StaffSalariesMonthly":   input.StaffSalariesMonthly,
		"FacilityRentMonthly":    input.FacilityRentMonthly,
	}
	if err := tx.WithContext(ctx).Model(&parameter).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// replace expense rows wholesale
	if err := tx.WithContext(ctx).Where("operating_parameter_id = ?", parameter.ID).
		Delete(&ParameterExpense{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	parameter.OtherExpenses = nil
	for _, e := range input.OtherExpenses {
		expense := ParameterExpense{
			BusinessId:           businessId,
			OperatingParameterId: parameter.ID,
			Description:          e.Description,
			Amount:               e.Amount,
		}
		if err := tx.WithContext(ctx).Create(&expense).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		parameter.OtherExpenses = append(parameter.OtherExpenses, expense)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	if err := InvalidateProjectReports(businessId, projectId); err != nil {
		return nil, err
	}
	return &parameter, nil
}

func GetProjectParameters(ctx context.Context, projectId int) ([]*OperatingParameter, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := utils.ValidateResourceId[Project](ctx, businessId, projectId); err != nil {
		return nil, err
	}
	db := config.GetDB()
	var parameters []*OperatingParameter
	if err := db.WithContext(ctx).Preload("OtherExpenses").
		Where("business_id = ? AND project_id = ?", businessId, projectId).
		Order("scope_year IS NOT NULL, scope_year, scope_month").
		Find(&parameters).Error; err != nil {
		return nil, err
	}
	return parameters, nil
}

func DeleteOperatingParameter(ctx context.Context, projectId int, parameterId int) (bool, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return false, errors.New("business id is required")
	}
	db := config.GetDB()
	var parameter OperatingParameter
	if err := db.WithContext(ctx).Where("business_id = ? AND project_id = ?", businessId, projectId).
		First(&parameter, parameterId).Error; err != nil {
		return false, utils.ErrorRecordNotFound
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Where("operating_parameter_id = ?", parameter.ID).
		Delete(&ParameterExpense{}).Error; err != nil {
		tx.Rollback()
		return false, err
	}
	if err := tx.WithContext(ctx).Delete(&parameter).Error; err != nil {
		tx.Rollback()
		return false, err
	}
	if err := tx.Commit().Error; err != nil {
		return false, err
	}
	if err := InvalidateProjectReports(businessId, projectId); err != nil {
		return false, err
	}
	return true, nil
}
