package models

import (
	"context"
	"errors"

	"bitbucket.org/mmdatafocus/fleetcost_backend/config"
	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
	"bitbucket.org/mmdatafocus/fleetcost_backend/utils"
)

// GetProjectSnapshot hydrates everything the computation layer needs for one
// project. The engine only ever sees this fully loaded value, never the
// database.
func GetProjectSnapshot(ctx context.Context, projectId int) (*engine.ProjectSnapshot, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	var project Project
	if err := db.WithContext(ctx).Where("business_id = ?", businessId).
		First(&project, projectId).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	var equipmentRows []Equipment
	if err := db.WithContext(ctx).Where("business_id = ? AND project_id = ?", businessId, projectId).
		Order("id").Find(&equipmentRows).Error; err != nil {
		return nil, err
	}

	var parameterRows []OperatingParameter
	if err := db.WithContext(ctx).Preload("OtherExpenses").
		Where("business_id = ? AND project_id = ?", businessId, projectId).
		Order("scope_year IS NOT NULL, scope_year, scope_month").
		Find(&parameterRows).Error; err != nil {
		return nil, err
	}

	var memberRows []ProjectMember
	if err := db.WithContext(ctx).Where("business_id = ? AND project_id = ?", businessId, projectId).
		Order("id").Find(&memberRows).Error; err != nil {
		return nil, err
	}

	snapshot := engine.ProjectSnapshot{
		ProjectId:        project.ID,
		Name:             project.Name,
		Category:         engine.ProjectCategory(project.Category),
		AllocationMethod: engine.AllocationMethod(project.CostAllocationMethod),
	}
	for i := range equipmentRows {
		snapshot.Equipment = append(snapshot.Equipment, equipmentRows[i].ToEngine())
	}
	for i := range parameterRows {
		snapshot.Parameters = append(snapshot.Parameters, parameterRows[i].ToEngine())
	}
	for _, m := range memberRows {
		snapshot.Members = append(snapshot.Members, engine.Member{
			Id:                     m.ID,
			Name:                   m.Name,
			Role:                   m.Role,
			OwnershipShare:         m.OwnershipShare,
			OperatingHoursPerMonth: m.OperatingHoursPerMonth,
			Status:                 engine.MemberStatus(m.Status),
		})
	}
	return &snapshot, nil
}
