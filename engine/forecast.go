package engine

// ForecastMonths is the fixed projection horizon.
const ForecastMonths = 12

// Forecast projects twelve consecutive monthly reports starting at the given
// period. Each month is priced independently with the normal parameter
// lookup, so a month override inside the window only affects its own month.
// Any failing month fails the whole forecast.
func Forecast(s *ProjectSnapshot, start Period) ([]MonthlyReport, error) {
	start = start.normalize()
	reports := make([]MonthlyReport, 0, ForecastMonths)
	for i := 0; i < ForecastMonths; i++ {
		report, err := GenerateMonthlyReport(s, start.AddMonths(i))
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, nil
}
