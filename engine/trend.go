package engine

// Trend reports the trailing window of months ending at end, oldest first.
// The window length must be positive; every month inside it must be
// computable or the whole trend fails.
func Trend(s *ProjectSnapshot, end Period, months int) ([]MonthlyReport, error) {
	if months <= 0 {
		months = 1
	}
	end = end.normalize()
	reports := make([]MonthlyReport, 0, months)
	for i := months - 1; i >= 0; i-- {
		report, err := GenerateMonthlyReport(s, end.AddMonths(-i))
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, nil
}
