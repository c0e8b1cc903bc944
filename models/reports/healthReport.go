package reports

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
	"bitbucket.org/mmdatafocus/fleetcost_backend/models"
	"bitbucket.org/mmdatafocus/fleetcost_backend/utils"
)

/*
caches:
	report:$businessId:$projectId:health:$year-$month
*/

func GetHealthReport(ctx context.Context, projectId int, year int, month time.Month) (*engine.HealthScore, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	started := time.Now()
	defer logSlowReport(ctx, "health_report", started, map[string]any{"project_id": projectId})

	target := engine.NewPeriod(year, month)
	key := reportKey(businessId, projectId, "health", target.String())

	var cached engine.HealthScore
	exists, err := cacheGet(key, &cached)
	if err != nil {
		return nil, err
	}
	if exists {
		return &cached, nil
	}

	snapshot, err := models.GetProjectSnapshot(ctx, projectId)
	if err != nil {
		return nil, err
	}
	report, err := engine.GenerateMonthlyReport(snapshot, target)
	if err != nil {
		return nil, err
	}
	score := engine.ScoreHealth(snapshot.Category, report)
	if err := cacheSet(businessId, projectId, key, score); err != nil {
		return nil, err
	}
	return score, nil
}
