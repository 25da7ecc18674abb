package invariants

import (
	"time"

	"github.com/macrolens/backend/internal/contracts"
)

// Freshness SLA per series frequency. Thresholds are a table so each
// cadence gets its own tolerance instead of a single constant.
const (
	maxDailyBusinessDays = 3
	maxWeeklyDays        = 10
	maxMonthlyDays       = 60
	maxQuarterlyDays     = 150
)

// SeriesFreshness is the last-update record of one stored series.
type SeriesFreshness struct {
	Symbol    string
	Frequency contracts.Frequency
	LastDate  time.Time
}

// IsStale reports whether a series breaches its freshness SLA at now,
// together with the age measured in the unit its SLA is defined in.
func (s SeriesFreshness) IsStale(now time.Time) (stale bool, age int, unit string) {
	switch s.Frequency {
	case contracts.FreqDaily:
		age = businessDaysBetween(s.LastDate, now)
		return age > maxDailyBusinessDays, age, "business days"
	case contracts.FreqWeekly:
		age = calendarDaysBetween(s.LastDate, now)
		return age > maxWeeklyDays, age, "days"
	case contracts.FreqMonthly:
		age = calendarDaysBetween(s.LastDate, now)
		return age > maxMonthlyDays, age, "days"
	case contracts.FreqQuarterly:
		age = calendarDaysBetween(s.LastDate, now)
		return age > maxQuarterlyDays, age, "days"
	default:
		return false, 0, "days"
	}
}

// businessDaysBetween counts weekdays strictly after from, up to and
// including to, comparing dates only. Holidays are not modeled; the
// SLA thresholds leave slack for them.
func businessDaysBetween(from, to time.Time) int {
	fromDay := dateOnly(from)
	toDay := dateOnly(to)
	if !fromDay.Before(toDay) {
		return 0
	}

	count := 0
	for d := fromDay.AddDate(0, 0, 1); !d.After(toDay); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

func calendarDaysBetween(from, to time.Time) int {
	days := int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
