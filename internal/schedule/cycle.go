package schedule

import (
	"time"

	"spendwise/internal/models"
)

// quarterStartMonths are the months a quarterly source may fire in.
var quarterStartMonths = []time.Month{time.January, time.April, time.July, time.October}

// IsDue reports whether a fixed source is due on refDate. The reference
// date is expected to be normalized to midnight by the caller.
func IsDue(src *models.FinancialSource, refDate time.Time) bool {
	if !src.IsFixed {
		return false
	}
	if refDate.Day() != src.CycleDayOfMonth {
		return false
	}

	switch src.CyclePeriod {
	case models.PeriodMonthly:
		return true
	case models.PeriodQuarterly:
		for _, m := range quarterStartMonths {
			if refDate.Month() == m {
				return true
			}
		}
		return false
	case models.PeriodYearly:
		// once advanced, the next due date sits a year out and keeps the
		// source from re-firing on matching days within the same year
		return src.NextDueDate == nil || !src.NextDueDate.After(refDate)
	}
	return false
}

// NextOccurrence computes the nearest date strictly after refDate that
// matches the source's cycle. Days 29-31 fall through to the calendar's
// normalization when the target month is shorter, e.g. Feb 31 becomes
// early March.
func NextOccurrence(src *models.FinancialSource, refDate time.Time) time.Time {
	day := src.CycleDayOfMonth
	loc := refDate.Location()

	switch src.CyclePeriod {
	case models.PeriodQuarterly:
		for _, m := range quarterStartMonths {
			candidate := time.Date(refDate.Year(), m, day, 0, 0, 0, 0, loc)
			if candidate.After(refDate) {
				return candidate
			}
		}
		return time.Date(refDate.Year()+1, time.January, day, 0, 0, 0, 0, loc)

	case models.PeriodYearly:
		candidate := time.Date(refDate.Year(), refDate.Month(), day, 0, 0, 0, 0, loc)
		if candidate.After(refDate) {
			return candidate
		}
		return time.Date(refDate.Year()+1, refDate.Month(), day, 0, 0, 0, 0, loc)

	default: // monthly
		candidate := time.Date(refDate.Year(), refDate.Month(), day, 0, 0, 0, 0, loc)
		if candidate.After(refDate) {
			return candidate
		}
		return time.Date(refDate.Year(), refDate.Month()+1, day, 0, 0, 0, 0, loc)
	}
}

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
