package reports

import (
	"encoding/csv"
	"io"

	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
)

var seriesHeader = []string{"month", "total_cost", "fixed_costs", "variable_costs", "depreciation", "operating_hours", "cost_per_hour", "break_even_hours"}

func seriesRow(report *engine.MonthlyReport) []string {
	return []string{
		monthLabel(report.Year, report.Month),
		report.TotalCost.String(),
		report.FixedCosts.String(),
		report.VariableCosts.String(),
		report.Depreciation.String(),
		report.OperatingHours.String(),
		nullDecimalCell(report.CostPerHour.Decimal, report.CostPerHour.Valid),
		nullDecimalCell(report.BreakEvenHours.Decimal, report.BreakEvenHours.Valid),
	}
}

// ExportMonthlyReportCsv renders one monthly report plus its member
// allocations as CSV.
func ExportMonthlyReportCsv(w io.Writer, report *engine.MonthlyReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(seriesHeader); err != nil {
		return err
	}
	if err := cw.Write(seriesRow(report)); err != nil {
		return err
	}
	if err := cw.Write([]string{}); err != nil {
		return err
	}
	if err := cw.Write([]string{"member", "allocated_cost"}); err != nil {
		return err
	}
	for _, a := range report.MemberAllocations {
		if err := cw.Write([]string{a.MemberName, a.AllocatedCost.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportMonthlySeriesCsv renders a forecast or trend series as CSV.
func ExportMonthlySeriesCsv(w io.Writer, series []engine.MonthlyReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(seriesHeader); err != nil {
		return err
	}
	for i := range series {
		if err := cw.Write(seriesRow(&series[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportScheduleCsv renders a depreciation schedule as CSV.
func ExportScheduleCsv(w io.Writer, schedule []engine.SchedulePoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "depreciation", "accumulated", "book_value"}); err != nil {
		return err
	}
	for _, point := range schedule {
		if err := cw.Write([]string{
			monthLabel(point.Year, point.Month),
			point.Depreciation.String(),
			point.Accumulated.String(),
			point.BookValue.String(),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
