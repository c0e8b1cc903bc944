package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
	"bitbucket.org/mmdatafocus/fleetcost_backend/models"
	"bitbucket.org/mmdatafocus/fleetcost_backend/models/reports"
	"bitbucket.org/mmdatafocus/fleetcost_backend/utils"
	"github.com/gin-gonic/gin"
)

const (
	contentTypeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCsv  = "text/csv"
)

// respondError translates the error taxonomy into HTTP statuses: missing
// records are 404, computation errors on bad business data are 422, all
// other input problems are 400.
func respondError(c *gin.Context, err error) {
	c.Error(err)
	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, engine.ErrInvalidEquipmentConfiguration),
		errors.Is(err, engine.ErrMissingOperatingParameters),
		errors.Is(err, engine.ErrNoActiveMembers):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func pathInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}

func queryInt(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}

func queryPeriod(c *gin.Context) (engine.Period, bool) {
	period, err := reports.ParsePeriodQuery(queryInt(c, "year"), queryInt(c, "month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return engine.Period{}, false
	}
	return period, true
}

func attachmentHeaders(c *gin.Context, contentType string, filename string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
}

// auth

type signinInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func signinHandler(c *gin.Context) {
	var input signinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	info, err := models.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

func signoutHandler(c *gin.Context) {
	ok, err := models.Logout(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": ok})
}

// admin

func createBusinessHandler(c *gin.Context) {
	var input models.NewBusiness
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	business, err := models.CreateBusiness(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, business)
}

// projects

func listProjectsHandler(c *gin.Context) {
	projects, err := models.GetAllProjects(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func createProjectHandler(c *gin.Context) {
	var input models.NewProject
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	project, err := models.CreateProject(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func getProjectHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	project, err := models.GetProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func updateProjectHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	var input models.NewProject
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	project, err := models.UpdateProject(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func deactivateProjectHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	project, err := models.DeactivateProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// members

func addProjectMemberHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	var input models.NewProjectMember
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	member, err := models.AddProjectMember(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func updateProjectMemberHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	memberId, ok := pathInt(c, "memberId")
	if !ok {
		return
	}
	var input models.NewProjectMember
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	member, err := models.UpdateProjectMember(c.Request.Context(), id, memberId, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// equipment

func listEquipmentHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	equipment, err := models.GetProjectEquipment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipment)
}

func createEquipmentHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	var input models.NewEquipment
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	equipment, err := models.CreateEquipment(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, equipment)
}

func getEquipmentHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	equipmentId, ok := pathInt(c, "equipmentId")
	if !ok {
		return
	}
	equipment, err := models.GetEquipment(c.Request.Context(), id, equipmentId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipment)
}

func updateEquipmentHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	equipmentId, ok := pathInt(c, "equipmentId")
	if !ok {
		return
	}
	var input models.NewEquipment
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	equipment, err := models.UpdateEquipment(c.Request.Context(), id, equipmentId, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipment)
}

func archiveEquipmentHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	equipmentId, ok := pathInt(c, "equipmentId")
	if !ok {
		return
	}
	equipment, err := models.ArchiveEquipment(c.Request.Context(), id, equipmentId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipment)
}

// operating parameters

func listParametersHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	parameters, err := models.GetProjectParameters(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parameters)
}

func createParameterHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	var input models.NewOperatingParameter
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	parameter, err := models.CreateOperatingParameter(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, parameter)
}

func updateParameterHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	parameterId, ok := pathInt(c, "parameterId")
	if !ok {
		return
	}
	var input models.NewOperatingParameter
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	parameter, err := models.UpdateOperatingParameter(c.Request.Context(), id, parameterId, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parameter)
}

func deleteParameterHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	parameterId, ok := pathInt(c, "parameterId")
	if !ok {
		return
	}
	deleted, err := models.DeleteOperatingParameter(c.Request.Context(), id, parameterId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": deleted})
}

// reports

func monthlyReportHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	period, ok := queryPeriod(c)
	if !ok {
		return
	}
	report, err := reports.GetMonthlyReport(c.Request.Context(), id, period.Year, period.Month)
	if err != nil {
		respondError(c, err)
		return
	}
	switch c.Query("format") {
	case "xlsx":
		attachmentHeaders(c, contentTypeXlsx, fmt.Sprintf("monthly-%s.xlsx", period))
		if err := reports.ExportMonthlyReportExcel(c.Writer, report); err != nil {
			c.Error(err)
		}
	case "csv":
		attachmentHeaders(c, contentTypeCsv, fmt.Sprintf("monthly-%s.csv", period))
		if err := reports.ExportMonthlyReportCsv(c.Writer, report); err != nil {
			c.Error(err)
		}
	default:
		c.JSON(http.StatusOK, report)
	}
}

func forecastReportHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	period, ok := queryPeriod(c)
	if !ok {
		return
	}
	forecast, err := reports.GetForecastReport(c.Request.Context(), id, period.Year, period.Month)
	if err != nil {
		respondError(c, err)
		return
	}
	switch c.Query("format") {
	case "xlsx":
		attachmentHeaders(c, contentTypeXlsx, fmt.Sprintf("forecast-%s.xlsx", period))
		if err := reports.ExportMonthlySeriesExcel(c.Writer, forecast); err != nil {
			c.Error(err)
		}
	case "csv":
		attachmentHeaders(c, contentTypeCsv, fmt.Sprintf("forecast-%s.csv", period))
		if err := reports.ExportMonthlySeriesCsv(c.Writer, forecast); err != nil {
			c.Error(err)
		}
	default:
		c.JSON(http.StatusOK, forecast)
	}
}

type scenarioReportInput struct {
	Year      int                         `json:"year"`
	Month     int                         `json:"month"`
	Scenarios []engine.ScenarioDefinition `json:"scenarios" binding:"required"`
}

func scenarioReportHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	var input scenarioReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	period, err := reports.ParsePeriodQuery(input.Year, input.Month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	results, err := reports.AnalyzeScenarios(c.Request.Context(), id, period.Year, period.Month, input.Scenarios)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func trendReportHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	period, ok := queryPeriod(c)
	if !ok {
		return
	}
	months := queryInt(c, "months")
	trend, err := reports.GetTrendReport(c.Request.Context(), id, period.Year, period.Month, months)
	if err != nil {
		respondError(c, err)
		return
	}
	switch c.Query("format") {
	case "xlsx":
		attachmentHeaders(c, contentTypeXlsx, fmt.Sprintf("trend-%s.xlsx", period))
		if err := reports.ExportMonthlySeriesExcel(c.Writer, trend); err != nil {
			c.Error(err)
		}
	case "csv":
		attachmentHeaders(c, contentTypeCsv, fmt.Sprintf("trend-%s.csv", period))
		if err := reports.ExportMonthlySeriesCsv(c.Writer, trend); err != nil {
			c.Error(err)
		}
	default:
		c.JSON(http.StatusOK, trend)
	}
}

func healthReportHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	period, ok := queryPeriod(c)
	if !ok {
		return
	}
	score, err := reports.GetHealthReport(c.Request.Context(), id, period.Year, period.Month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

func depreciationScheduleHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	equipmentId, ok := pathInt(c, "equipmentId")
	if !ok {
		return
	}
	schedule, err := reports.GetDepreciationSchedule(c.Request.Context(), id, equipmentId)
	if err != nil {
		respondError(c, err)
		return
	}
	switch c.Query("format") {
	case "xlsx":
		attachmentHeaders(c, contentTypeXlsx, fmt.Sprintf("schedule-%d.xlsx", equipmentId))
		if err := reports.ExportScheduleExcel(c.Writer, schedule); err != nil {
			c.Error(err)
		}
	case "csv":
		attachmentHeaders(c, contentTypeCsv, fmt.Sprintf("schedule-%d.csv", equipmentId))
		if err := reports.ExportScheduleCsv(c.Writer, schedule); err != nil {
			c.Error(err)
		}
	default:
		c.JSON(http.StatusOK, schedule)
	}
}
