package schedule

import (
	"testing"
	"time"

	"spendwise/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedSource(period models.CyclePeriod, day int) *models.FinancialSource {
	return &models.FinancialSource{
		IsFixed:         true,
		CycleDayOfMonth: day,
		CyclePeriod:     period,
	}
}

func TestIsDueMonthly(t *testing.T) {
	src := fixedSource(models.PeriodMonthly, 5)

	if !IsDue(src, date(2026, time.March, 5)) {
		t.Error("monthly day 5 should be due on March 5")
	}
	if IsDue(src, date(2026, time.March, 6)) {
		t.Error("monthly day 5 should not be due on March 6")
	}
}

func TestIsDueQuarterly(t *testing.T) {
	src := fixedSource(models.PeriodQuarterly, 15)

	dueMonths := []time.Month{time.January, time.April, time.July, time.October}
	for _, m := range dueMonths {
		if !IsDue(src, date(2026, m, 15)) {
			t.Errorf("quarterly day 15 should be due on %s 15", m)
		}
	}
	// matching day but off-quarter months never fire
	for _, m := range []time.Month{time.February, time.March, time.May, time.June,
		time.August, time.September, time.November, time.December} {
		if IsDue(src, date(2026, m, 15)) {
			t.Errorf("quarterly day 15 should not be due on %s 15", m)
		}
	}
	if IsDue(src, date(2026, time.January, 14)) {
		t.Error("quarterly day 15 should not be due on January 14")
	}
}

func TestIsDueYearly(t *testing.T) {
	src := fixedSource(models.PeriodYearly, 1)

	// never scheduled: due on the matching day
	if !IsDue(src, date(2026, time.June, 1)) {
		t.Error("yearly with nil NextDueDate should be due on a matching day")
	}

	// already advanced into the future: matching days that year stay quiet
	next := date(2027, time.June, 1)
	src.NextDueDate = &next
	if IsDue(src, date(2026, time.July, 1)) {
		t.Error("yearly should not re-fire while NextDueDate is in the future")
	}
	if !IsDue(src, date(2027, time.June, 1)) {
		t.Error("yearly should be due once NextDueDate is reached")
	}
}

func TestIsDueNonFixed(t *testing.T) {
	src := &models.FinancialSource{IsFixed: false}
	if IsDue(src, date(2026, time.March, 5)) {
		t.Error("spontaneous sources are never due")
	}
}

func TestNextOccurrenceMonthly(t *testing.T) {
	src := fixedSource(models.PeriodMonthly, 5)

	cases := []struct {
		ref  time.Time
		want time.Time
	}{
		{date(2026, time.March, 1), date(2026, time.March, 5)},   // still ahead this month
		{date(2026, time.March, 5), date(2026, time.April, 5)},   // today does not count
		{date(2026, time.March, 20), date(2026, time.April, 5)},  // passed, next month
		{date(2026, time.December, 10), date(2027, time.January, 5)}, // year rollover
	}
	for _, tc := range cases {
		got := NextOccurrence(src, tc.ref)
		if !got.Equal(tc.want) {
			t.Errorf("NextOccurrence(monthly/5, %s) = %s, want %s",
				tc.ref.Format("2006-01-02"), got.Format("2006-01-02"), tc.want.Format("2006-01-02"))
		}
	}
}

func TestNextOccurrenceQuarterly(t *testing.T) {
	src := fixedSource(models.PeriodQuarterly, 15)

	cases := []struct {
		ref  time.Time
		want time.Time
	}{
		{date(2026, time.January, 10), date(2026, time.January, 15)},
		{date(2026, time.January, 15), date(2026, time.April, 15)},
		{date(2026, time.February, 1), date(2026, time.April, 15)},
		{date(2026, time.November, 1), date(2027, time.January, 15)},
	}
	for _, tc := range cases {
		got := NextOccurrence(src, tc.ref)
		if !got.Equal(tc.want) {
			t.Errorf("NextOccurrence(quarterly/15, %s) = %s, want %s",
				tc.ref.Format("2006-01-02"), got.Format("2006-01-02"), tc.want.Format("2006-01-02"))
		}
	}
}

func TestNextOccurrenceYearly(t *testing.T) {
	src := fixedSource(models.PeriodYearly, 20)

	got := NextOccurrence(src, date(2026, time.June, 10))
	if !got.Equal(date(2026, time.June, 20)) {
		t.Errorf("yearly before the day = %s, want 2026-06-20", got.Format("2006-01-02"))
	}
	got = NextOccurrence(src, date(2026, time.June, 25))
	if !got.Equal(date(2027, time.June, 20)) {
		t.Errorf("yearly after the day = %s, want 2027-06-20", got.Format("2006-01-02"))
	}
}

func TestNextOccurrenceStrictlyAfter(t *testing.T) {
	periods := []models.CyclePeriod{models.PeriodMonthly, models.PeriodQuarterly, models.PeriodYearly}
	days := []int{1, 5, 15, 28, 31}

	ref := date(2026, time.January, 1)
	for i := 0; i < 500; i++ {
		for _, p := range periods {
			for _, d := range days {
				src := fixedSource(p, d)
				next := NextOccurrence(src, ref)
				if !next.After(ref) {
					t.Fatalf("NextOccurrence(%s/%d, %s) = %s, not strictly after",
						p, d, ref.Format("2006-01-02"), next.Format("2006-01-02"))
				}
			}
		}
		ref = ref.AddDate(0, 0, 1)
	}
}

func TestNextOccurrenceDayOverflowNormalizes(t *testing.T) {
	// day 31 in a 30-day month rolls into the next one, per calendar rules
	src := fixedSource(models.PeriodMonthly, 31)
	got := NextOccurrence(src, date(2026, time.April, 1))
	want := date(2026, time.May, 1) // April 31 normalizes to May 1
	if !got.Equal(want) {
		t.Errorf("NextOccurrence(monthly/31, 2026-04-01) = %s, want %s",
			got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2026, time.March, 5, 17, 42, 9, 100, time.UTC)
	got := Midnight(in)
	if !got.Equal(date(2026, time.March, 5)) {
		t.Errorf("Midnight() = %v, want 2026-03-05 00:00", got)
	}
}
