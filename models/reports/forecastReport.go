package reports

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/fleetcost_backend/config"
	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
	"bitbucket.org/mmdatafocus/fleetcost_backend/models"
	"bitbucket.org/mmdatafocus/fleetcost_backend/utils"
	"github.com/bsm/redislock"
)

/*
caches:
	report:$businessId:$projectId:forecast:$year-$month
*/

func GetForecastReport(ctx context.Context, projectId int, startYear int, startMonth time.Month) ([]engine.MonthlyReport, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	started := time.Now()
	defer logSlowReport(ctx, "forecast_report", started, map[string]any{"project_id": projectId})

	start := engine.NewPeriod(startYear, startMonth)
	key := reportKey(businessId, projectId, "forecast", start.String())

	var cached []engine.MonthlyReport
	exists, err := cacheGet(key, &cached)
	if err != nil {
		return nil, err
	}
	if exists {
		return cached, nil
	}

	// Single-flight the rebuild; concurrent callers behind the lock get the
	// freshly cached value. Lock failure just means we compute it ourselves.
	lock, lockErr := config.GetRedisLock().Obtain(ctx, "lock:"+key, 10*time.Second, nil)
	if lockErr == nil {
		defer lock.Release(ctx)
		exists, err = cacheGet(key, &cached)
		if err != nil {
			return nil, err
		}
		if exists {
			return cached, nil
		}
	} else if lockErr != redislock.ErrNotObtained {
		return nil, lockErr
	}

	snapshot, err := models.GetProjectSnapshot(ctx, projectId)
	if err != nil {
		return nil, err
	}
	forecast, err := engine.Forecast(snapshot, start)
	if err != nil {
		return nil, err
	}
	if err := cacheSet(businessId, projectId, key, forecast); err != nil {
		return nil, err
	}
	return forecast, nil
}
