package engine_test

import (
	"errors"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
)

func TestForecast_ContinuityWithMonthlyReport(t *testing.T) {
	s := testSnapshot()
	start := engine.NewPeriod(2025, time.March)

	forecast, err := engine.Forecast(s, start)
	if err != nil {
		t.Fatalf("Forecast error: %v", err)
	}
	if len(forecast) != engine.ForecastMonths {
		t.Fatalf("expected %d reports, got %d", engine.ForecastMonths, len(forecast))
	}

	direct, err := engine.GenerateMonthlyReport(s, start)
	if err != nil {
		t.Fatalf("GenerateMonthlyReport error: %v", err)
	}
	if marshalReport(t, &forecast[0]) != marshalReport(t, direct) {
		t.Fatal("forecast[0] differs from the directly generated report for the same month")
	}
}

func TestForecast_WrapsYearBoundary(t *testing.T) {
	forecast, err := engine.Forecast(testSnapshot(), engine.NewPeriod(2025, time.November))
	if err != nil {
		t.Fatalf("Forecast error: %v", err)
	}

	third := forecast[2]
	if third.Year != 2026 || third.Month != time.January {
		t.Fatalf("expected third entry 2026-01, got %04d-%02d", third.Year, int(third.Month))
	}
	last := forecast[len(forecast)-1]
	if last.Year != 2026 || last.Month != time.October {
		t.Fatalf("expected last entry 2026-10, got %04d-%02d", last.Year, int(last.Month))
	}
}

func TestForecast_FailsWholeOnMissingParameters(t *testing.T) {
	s := testSnapshot()
	s.Parameters = nil

	forecast, err := engine.Forecast(s, engine.NewPeriod(2025, time.March))
	if !errors.Is(err, engine.ErrMissingOperatingParameters) {
		t.Fatalf("expected ErrMissingOperatingParameters, got %v", err)
	}
	if forecast != nil {
		t.Fatal("partial forecast returned alongside an error")
	}
}
