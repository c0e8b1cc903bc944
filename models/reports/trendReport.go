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

const maxTrendMonths = 60

/*
caches:
	report:$businessId:$projectId:trend:$year-$month:$months
*/

func GetTrendReport(ctx context.Context, projectId int, endYear int, endMonth time.Month, months int) ([]engine.MonthlyReport, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if months <= 0 {
		months = 6
	}
	if months > maxTrendMonths {
		return nil, fmt.Errorf("trend window cannot exceed %d months", maxTrendMonths)
	}
	started := time.Now()
	defer logSlowReport(ctx, "trend_report", started, map[string]any{"project_id": projectId, "months": months})

	end := engine.NewPeriod(endYear, endMonth)
	key := reportKey(businessId, projectId, "trend", fmt.Sprintf("%s:%d", end, months))

	var cached []engine.MonthlyReport
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
	trend, err := engine.Trend(snapshot, end, months)
	if err != nil {
		return nil, err
	}
	if err := cacheSet(businessId, projectId, key, trend); err != nil {
		return nil, err
	}
	return trend, nil
}
