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

type Equipment struct {
	ID                    int                `gorm:"primary_key" json:"id"`
	BusinessId            string             `gorm:"index;not null" json:"business_id"`
	ProjectId             int                `gorm:"index;not null" json:"project_id"`
	Name                  string             `gorm:"size:100;not null" json:"name" binding:"required"`
	PurchasePrice         decimal.Decimal    `gorm:"type:decimal(20,2);not null" json:"purchase_price"`
	AcquisitionDate       time.Time          `gorm:"not null" json:"acquisition_date"`
	ServiceLifeYears      int                `gorm:"not null" json:"service_life_years"`
	SalvageValue          decimal.Decimal    `gorm:"type:decimal(20,2);default:0" json:"salvage_value"`
	DepreciationMethod    DepreciationMethod `gorm:"type:enum('straight_line', 'units_of_production');default:straight_line" json:"depreciation_method"`
	ExpectedLifetimeHours decimal.Decimal    `gorm:"type:decimal(12,2);default:0" json:"expected_lifetime_hours"`
	Archived              *bool              `gorm:"not null;default:false" json:"archived"`
	CreatedAt             time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewEquipment struct {
	Name                  string             `json:"name" binding:"required"`
	PurchasePrice         decimal.Decimal    `json:"purchase_price"`
	AcquisitionDate       time.Time          `json:"acquisition_date" binding:"required"`
	ServiceLifeYears      int                `json:"service_life_years" binding:"required"`
	SalvageValue          decimal.Decimal    `json:"salvage_value"`
	DepreciationMethod    DepreciationMethod `json:"depreciation_method"`
	ExpectedLifetimeHours decimal.Decimal    `json:"expected_lifetime_hours"`
}

// ToEngine converts a stored row to the computation view.
func (e *Equipment) ToEngine() engine.Equipment {
	return engine.Equipment{
		Id:                    e.ID,
		Name:                  e.Name,
		PurchasePrice:         e.PurchasePrice,
		AcquisitionDate:       e.AcquisitionDate,
		ServiceLifeYears:      e.ServiceLifeYears,
		SalvageValue:          e.SalvageValue,
		Method:                engine.DepreciationMethod(e.DepreciationMethod),
		ExpectedLifetimeHours: e.ExpectedLifetimeHours,
		Archived:              utils.DereferencePtr(e.Archived, false),
	}
}

// validate runs the same configuration checks the calculator applies, so
// bad equipment is rejected at write time instead of failing every report.
func (input *NewEquipment) validate() error {
	method := input.DepreciationMethod
	if method == "" {
		method = DepreciationStraightLine
	}
	probe := engine.Equipment{
		PurchasePrice:         input.PurchasePrice,
		AcquisitionDate:       input.AcquisitionDate,
		ServiceLifeYears:      input.ServiceLifeYears,
		SalvageValue:          input.SalvageValue,
		Method:                engine.DepreciationMethod(method),
		ExpectedLifetimeHours: input.ExpectedLifetimeHours,
	}
	if _, err := engine.NewDepreciationCalculator(probe); err != nil {
		return err
	}
	return nil
}

func CreateEquipment(ctx context.Context, projectId int, input *NewEquipment) (*Equipment, error) {
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

	method := input.DepreciationMethod
	if method == "" {
		method = DepreciationStraightLine
	}
	equipment := Equipment{
		BusinessId:            businessId,
		ProjectId:             projectId,
		Name:                  input.Name,
		PurchasePrice:         input.PurchasePrice,
		AcquisitionDate:       input.AcquisitionDate,
		ServiceLifeYears:      input.ServiceLifeYears,
		SalvageValue:          input.SalvageValue,
		DepreciationMethod:    method,
		ExpectedLifetimeHours: input.ExpectedLifetimeHours,
		Archived:              utils.NewFalse(),
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&equipment).Error; err != nil {
		return nil, err
	}
	if err := InvalidateProjectReports(businessId, projectId); err != nil {
		return nil, err
	}
	return &equipment, nil
}

func UpdateEquipment(ctx context.Context, projectId int, equipmentId int, input *NewEquipment) (*Equipment, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var equipment Equipment
	if err := db.WithContext(ctx).Where("business_id = ? AND project_id = ?", businessId, projectId).
		First(&equipment, equipmentId).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	updates := map[string]interface{}{
		"Name":                  input.Name,
		"PurchasePrice":         input.PurchasePrice,
		"AcquisitionDate":       input.AcquisitionDate,
		"ServiceLifeYears":      input.ServiceLifeYears,
		"SalvageValue":          input.SalvageValue,
		"ExpectedLifetimeHours": input.ExpectedLifetimeHours,
	}
	if input.DepreciationMethod != "" {
		updates["DepreciationMethod"] = input.DepreciationMethod
	}
	if err := db.WithContext(ctx).Model(&equipment).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := InvalidateProjectReports(businessId, projectId); err != nil {
		return nil, err
	}
	return &equipment, nil
}

func GetProjectEquipment(ctx context.Context, projectId int) ([]*Equipment, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := utils.ValidateResourceId[Project](ctx, businessId, projectId); err != nil {
		return nil, err
	}
	db := config.GetDB()
	var equipment []*Equipment
	if err := db.WithContext(ctx).Where("business_id = ? AND project_id = ?", businessId, projectId).
		Order("id").Find(&equipment).Error; err != nil {
		return nil, err
	}
	return equipment, nil
}

func GetEquipment(ctx context.Context, projectId int, equipmentId int) (*Equipment, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	db := config.GetDB()
	var equipment Equipment
	if err := db.WithContext(ctx).Where("business_id = ? AND project_id = ?", businessId, projectId).
		First(&equipment, equipmentId).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &equipment, nil
}

// ArchiveEquipment removes an asset from all future computations without
// deleting its purchase history.
func ArchiveEquipment(ctx context.Context, projectId int, equipmentId int) (*Equipment, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	db := config.GetDB()
	var equipment Equipment
	if err := db.WithContext(ctx).Where("business_id = ? AND project_id = ?", businessId, projectId).
		First(&equipment, equipmentId).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := db.WithContext(ctx).Model(&equipment).Update("Archived", utils.NewTrue()).Error; err != nil {
		return nil, err
	}
	if err := InvalidateProjectReports(businessId, projectId); err != nil {
		return nil, err
	}
	return &equipment, nil
}
