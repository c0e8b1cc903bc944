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
	report:$businessId:$projectId:monthly:$year-$month
*/

func GetMonthlyReport(ctx context.Context, projectId int, year int, month time.Month) (*engine.MonthlyReport, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	started := time.Now()
	defer logSlowReport(ctx, "monthly_report", started, map[string]any{"project_id": projectId})

	target := engine.NewPeriod(year, month)
	key := reportKey(businessId, projectId, "monthly", target.String())

	var cached engine.MonthlyReport
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
	if err := cacheSet(businessId, projectId, key, report); err != nil {
		return nil, err
	}
	return report, nil
}

// GetCurrentMonthlyReport prices the calendar month of the server clock.
func GetCurrentMonthlyReport(ctx context.Context, projectId int) (*engine.MonthlyReport, error) {
	now := engine.PeriodOf(time.Now())
	return GetMonthlyReport(ctx, projectId, now.Year, now.Month)
}

// ParsePeriodQuery validates year/month query values. Zero values mean the
// current month.
func ParsePeriodQuery(year int, month int) (engine.Period, error) {
	if year == 0 && month == 0 {
		return engine.PeriodOf(time.Now()), nil
	}
	if year < 1970 || year > 9999 {
		return engine.Period{}, fmt.Errorf("invalid year %d", year)
	}
	if month < 1 || month > 12 {
		return engine.Period{}, fmt.Errorf("invalid month %d", month)
	}
	return engine.NewPeriod(year, time.Month(month)), nil
}
