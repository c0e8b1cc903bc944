package reports

import (
	"fmt"
	"io"
	"time"

	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

func monthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

func nullDecimalCell(v interface{ String() string }, valid bool) string {
	if !valid {
		return "n/a"
	}
	return v.String()
}

// ExportMonthlyReportExcel renders one monthly report plus its member
// allocations to an xlsx workbook.
func ExportMonthlyReportExcel(w io.Writer, report *engine.MonthlyReport) error {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Month", "TotalCost", "FixedCosts", "VariableCosts", "Depreciation", "OperatingHours", "CostPerHour", "BreakEvenHours"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(exportSheet, cell, h)
	}

	f.SetCellValue(exportSheet, "A2", monthLabel(report.Year, report.Month))
	f.SetCellValue(exportSheet, "B2", report.TotalCost.String())
	f.SetCellValue(exportSheet, "C2", report.FixedCosts.String())
	f.SetCellValue(exportSheet, "D2", report.VariableCosts.String())
	f.SetCellValue(exportSheet, "E2", report.Depreciation.String())
	f.SetCellValue(exportSheet, "F2", report.OperatingHours.String())
	f.SetCellValue(exportSheet, "G2", nullDecimalCell(report.CostPerHour.Decimal, report.CostPerHour.Valid))
	f.SetCellValue(exportSheet, "H2", nullDecimalCell(report.BreakEvenHours.Decimal, report.BreakEvenHours.Valid))

	// allocations below the report block
	f.SetCellValue(exportSheet, "A4", "Member")
	f.SetCellValue(exportSheet, "B4", "AllocatedCost")
	for i, a := range report.MemberAllocations {
		row := i + 5
		f.SetCellValue(exportSheet, "A"+fmt.Sprint(row), a.MemberName)
		f.SetCellValue(exportSheet, "B"+fmt.Sprint(row), a.AllocatedCost.String())
	}

	return f.Write(w)
}

// ExportMonthlySeriesExcel renders a forecast or trend series, one row per
// month.
func ExportMonthlySeriesExcel(w io.Writer, series []engine.MonthlyReport) error {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Month", "TotalCost", "FixedCosts", "VariableCosts", "Depreciation", "OperatingHours", "CostPerHour", "BreakEvenHours"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(exportSheet, cell, h)
	}

	for i, report := range series {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(exportSheet, "A"+row, monthLabel(report.Year, report.Month))
		f.SetCellValue(exportSheet, "B"+row, report.TotalCost.String())
		f.SetCellValue(exportSheet, "C"+row, report.FixedCosts.String())
		f.SetCellValue(exportSheet, "D"+row, report.VariableCosts.String())
		f.SetCellValue(exportSheet, "E"+row, report.Depreciation.String())
		f.SetCellValue(exportSheet, "F"+row, report.OperatingHours.String())
		f.SetCellValue(exportSheet, "G"+row, nullDecimalCell(report.CostPerHour.Decimal, report.CostPerHour.Valid))
		f.SetCellValue(exportSheet, "H"+row, nullDecimalCell(report.BreakEvenHours.Decimal, report.BreakEvenHours.Valid))
	}

	return f.Write(w)
}

// ExportScheduleExcel renders a depreciation schedule, one row per month.
func ExportScheduleExcel(w io.Writer, schedule []engine.SchedulePoint) error {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Month", "Depreciation", "Accumulated", "BookValue"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(exportSheet, cell, h)
	}

	for i, point := range schedule {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(exportSheet, "A"+row, monthLabel(point.Year, point.Month))
		f.SetCellValue(exportSheet, "B"+row, point.Depreciation.String())
		f.SetCellValue(exportSheet, "C"+row, point.Accumulated.String())
		f.SetCellValue(exportSheet, "D"+row, point.BookValue.String())
	}

	return f.Write(w)
}
