package engine_test

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
)

func TestPeriod_AddMonthsWrapsYears(t *testing.T) {
	cases := []struct {
		start    engine.Period
		add      int
		expected engine.Period
	}{
		{engine.NewPeriod(2025, time.November), 2, engine.NewPeriod(2026, time.January)},
		{engine.NewPeriod(2025, time.January), -1, engine.NewPeriod(2024, time.December)},
		{engine.NewPeriod(2025, time.March), 24, engine.NewPeriod(2027, time.March)},
	}
	for _, tc := range cases {
		if got := tc.start.AddMonths(tc.add); !got.Equal(tc.expected) {
			t.Fatalf("%s + %d months expected %s, got %s", tc.start, tc.add, tc.expected, got)
		}
	}
}

func TestPeriod_MonthsSinceIsSigned(t *testing.T) {
	a := engine.NewPeriod(2025, time.March)
	b := engine.NewPeriod(2024, time.November)

	if got := a.MonthsSince(b); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	if got := b.MonthsSince(a); got != -4 {
		t.Fatalf("expected -4, got %d", got)
	}
}

func TestPeriodOf_TruncatesToUTCMonth(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	// 2025-01-01 03:00 +07:00 is still 2024-12-31 in UTC.
	p := engine.PeriodOf(time.Date(2025, time.January, 1, 3, 0, 0, 0, loc))
	if !p.Equal(engine.NewPeriod(2024, time.December)) {
		t.Fatalf("expected 2024-12, got %s", p)
	}
}

func TestPeriod_String(t *testing.T) {
	if got := engine.NewPeriod(2025, time.March).String(); got != "2025-03" {
		t.Fatalf("expected 2025-03, got %s", got)
	}
}
