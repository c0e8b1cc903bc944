package reports

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
	"bitbucket.org/mmdatafocus/fleetcost_backend/models"
	"bitbucket.org/mmdatafocus/fleetcost_backend/utils"
)

// AnalyzeScenarios runs hypotheticals against one month. Results depend on
// caller-supplied multipliers, so they are never cached.
func AnalyzeScenarios(ctx context.Context, projectId int, year int, month time.Month, scenarios []engine.ScenarioDefinition) ([]engine.ScenarioResult, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if len(scenarios) == 0 {
		return nil, errors.New("at least one scenario is required")
	}
	started := time.Now()
	defer logSlowReport(ctx, "scenario_report", started, map[string]any{"project_id": projectId, "scenarios": len(scenarios)})

	snapshot, err := models.GetProjectSnapshot(ctx, projectId)
	if err != nil {
		return nil, err
	}
	return engine.AnalyzeScenarios(snapshot, engine.NewPeriod(year, month), scenarios)
}
