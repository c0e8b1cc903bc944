package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/fleetcost_backend/config"
	"bitbucket.org/mmdatafocus/fleetcost_backend/utils"
	"github.com/shopspring/decimal"
)

type Project struct {
	ID                   int              `gorm:"primary_key" json:"id"`
	BusinessId           string           `gorm:"index;not null" json:"business_id"`
	Name                 string           `gorm:"size:100;not null" json:"name" binding:"required"`
	Description          string           `gorm:"type:text" json:"description"`
	Category             ProjectCategory  `gorm:"type:enum('general', 'excavation', 'transport', 'lifting');default:general" json:"category"`
	CostAllocationMethod AllocationMethod `gorm:"type:enum('by_hours', 'equal', 'percentage');default:equal" json:"cost_allocation_method"`
	IsActive             *bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt            time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	Members []ProjectMember `gorm:"foreignKey:ProjectId" json:"members,omitempty"`
}

type NewProject struct {
	Name                 string           `json:"name" binding:"required"`
	Description          string           `json:"description"`
	Category             ProjectCategory  `json:"category"`
	CostAllocationMethod AllocationMethod `json:"cost_allocation_method"`
}

type ProjectMember struct {
	ID                     int             `gorm:"primary_key" json:"id"`
	BusinessId             string          `gorm:"index;not null" json:"business_id"`
	ProjectId              int             `gorm:"index;not null" json:"project_id"`
	Name                   string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Role                   string          `gorm:"size:100" json:"role"`
	OwnershipShare         decimal.Decimal `gorm:"type:decimal(8,4);default:0" json:"ownership_share"`
	OperatingHoursPerMonth decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"operating_hours_per_month"`
	Status                 MemberStatus    `gorm:"type:enum('active', 'inactive');default:active" json:"status"`
	CreatedAt              time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProjectMember struct {
	Name                   string          `json:"name" binding:"required"`
	Role                   string          `json:"role"`
	OwnershipShare         decimal.Decimal `json:"ownership_share"`
	OperatingHoursPerMonth decimal.Decimal `json:"operating_hours_per_month"`
	Status                 MemberStatus    `json:"status"`
}

/*
caches:
	reportKeys:$businessId:$projectId (set of cached report keys)
*/

// InvalidateProjectReports drops every cached report for a project. Called
// after any write that can change a report's inputs.
func InvalidateProjectReports(businessId string, projectId int) error {
	setKey := utils.ReportCacheSetKey(businessId, projectId)
	keys, err := config.GetRedisSetMembers(setKey)
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		if err := config.RemoveRedisKey(keys...); err != nil {
			return err
		}
	}
	return config.RemoveRedisKey(setKey)
}

func (input *NewProject) validate(ctx context.Context, businessId string, exceptId int) error {
	if err := utils.ValidateUnique[Project](ctx, businessId, "name", input.Name, exceptId); err != nil {
		return err
	}
	if input.Category != "" && !input.Category.Valid() {
		return errors.New("invalid project category")
	}
	if input.CostAllocationMethod != "" && !input.CostAllocationMethod.Valid() {
		return errors.New("invalid cost allocation method")
	}
	return nil
}

func CreateProject(ctx context.Context, input *NewProject) (*Project, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId, 0); err != nil {
		return nil, err
	}

	category := input.Category
	if category == "" {
		category = ProjectCategoryGeneral
	}
	method := input.CostAllocationMethod
	if method == "" {
		method = AllocationEqual
	}

	project := Project{
		BusinessId:           businessId,
		Name:                 input.Name,
		Description:          input.Description,
		Category:             category,
		CostAllocationMethod: method,
		IsActive:             utils.NewTrue(),
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func UpdateProject(ctx context.Context, id int, input *NewProject) (*Project, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := utils.ValidateResourceId[Project](ctx, businessId, id); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, businessId, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var project Project
	if err := db.WithContext(ctx).Where("business_id = ?", businessId).First(&project, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"Name":        input.Name,
		"Description": input.Description,
	}
	if input.Category != "" {
		updates["Category"] = input.Category
	}
	if input.CostAllocationMethod != "" {
		updates["CostAllocationMethod"] = input.CostAllocationMethod
	}
	if err := db.WithContext(ctx).Model(&project).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := InvalidateProjectReports(businessId, project.ID); err != nil {
		return nil, err
	}
	return &project, nil
}

func GetProject(ctx context.Context, id int) (*Project, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	db := config.GetDB()
	var project Project
	if err := db.WithContext(ctx).Preload("Members").
		Where("business_id = ?", businessId).First(&project, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &project, nil
}

func GetAllProjects(ctx context.Context) ([]*Project, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	db := config.GetDB()
	var projects []*Project
	if err := db.WithContext(ctx).Where("business_id = ?", businessId).
		Order("name").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func DeactivateProject(ctx context.Context, id int) (*Project, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	db := config.GetDB()
	var project Project
	if err := db.WithContext(ctx).Where("business_id = ?", businessId).First(&project, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := db.WithContext(ctx).Model(&project).Update("IsActive", utils.NewFalse()).Error; err != nil {
		return nil, err
	}
	if err := InvalidateProjectReports(businessId, project.ID); err != nil {
		return nil, err
	}
	return &project, nil
}

func (input *NewProjectMember) validate() error {
	if input.Status != "" && !input.Status.Valid() {
		return errors.New("invalid member status")
	}
	if input.OwnershipShare.IsNegative() || input.OwnershipShare.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("ownership share must be between 0 and 100")
	}
	if input.OperatingHoursPerMonth.IsNegative() {
		return errors.New("operating hours cannot be negative")
	}
	return nil
}

func AddProjectMember(ctx context.Context, projectId int, input *NewProjectMember) (*ProjectMember, error) {
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

	status := input.Status
	if status == "" {
		status = MemberStatusActive
	}
	member := ProjectMember{
		BusinessId:             businessId,
		ProjectId:              projectId,
		Name:                   input.Name,
		Role:                   input.Role,
		OwnershipShare:         input.OwnershipShare,
		OperatingHoursPerMonth: input.OperatingHoursPerMonth,
		Status:                 status,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&member).Error; err != nil {
		return nil, err
	}
	if err := InvalidateProjectReports(businessId, projectId); err != nil {
		return nil, err
	}
	return &member, nil
}

func UpdateProjectMember(ctx context.Context, projectId int, memberId int, input *NewProjectMember) (*ProjectMember, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var member ProjectMember
	if err := db.WithContext(ctx).Where("business_id = ? AND project_id = ?", businessId, projectId).
		First(&member, memberId).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	updates := map[string]interface{}{
		"Name":                   input.Name,
		"Role":                   input.Role,
		"OwnershipShare":         input.OwnershipShare,
		"OperatingHoursPerMonth": input.OperatingHoursPerMonth,
	}
	if input.Status != "" {
		updates["Status"] = input.Status
	}
	if err := db.WithContext(ctx).Model(&member).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := InvalidateProjectReports(businessId, projectId); err != nil {
		return nil, err
	}
	return &member, nil
}
