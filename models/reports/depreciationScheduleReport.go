package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
	"bitbucket.org/mmdatafocus/fleetcost_backend/models"
	"bitbucket.org/mmdatafocus/fleetcost_backend/utils"
)

/*
caches:
	report:$businessId:$projectId:schedule:$equipmentId
*/

func GetDepreciationSchedule(ctx context.Context, projectId int, equipmentId int) ([]engine.SchedulePoint, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	started := time.Now()
	defer logSlowReport(ctx, "depreciation_schedule", started, map[string]any{"project_id": projectId, "equipment_id": equipmentId})

	key := reportKey(businessId, projectId, "schedule", fmt.Sprint(equipmentId))

	var cached []engine.SchedulePoint
	exists, err := cacheGet(key, &cached)
	if err != nil {
		return nil, err
	}
	if exists {
		return cached, nil
	}

	snapshot, err := models.GetProjectSnapshot(ctx, projectId)
	if err != nil {
		return nil, err
	}
	var target *engine.Equipment
	for i := range snapshot.Equipment {
		if snapshot.Equipment[i].Id == equipmentId {
			target = &snapshot.Equipment[i]
			break
		}
	}
	if target == nil {
		return nil, utils.ErrorRecordNotFound
	}

	calc, err := engine.NewDepreciationCalculator(*target)
	if err != nil {
		return nil, err
	}
	schedule := calc.Schedule(snapshot.BaselineUsage)
	if err := cacheSet(businessId, projectId, key, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}
