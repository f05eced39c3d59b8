// Package analytics is the derived-data engine of fintrack: pure,
// deterministic transformations from a transaction snapshot (plus
// categories, savings goals, and a time window) to summaries, budget
// progress, goal progress, insights, and export rows. Every function
// here is total over its input domain and free of side effects; the
// reference time is always an explicit parameter.
package analytics

import (
	"fmt"
	"time"

	"fintrack/internal/core"
)

// Range names a recognized time window. Unrecognized values behave as
// RangeAllTime so that a stale or mistyped selector never hides data.
type Range string

const (
	RangeThisWeek  Range = "thisWeek"
	RangeThisMonth Range = "thisMonth"
	RangeLastMonth Range = "lastMonth"
	RangeThisYear  Range = "thisYear"
	RangeCustom    Range = "custom"
	RangeAllTime   Range = "allTime"
)

// Window selects the transaction subset a computation runs over.
// Start and End apply only to RangeCustom; if either is nil the
// window fails open and passes everything through.
type Window struct {
	Range Range
	Start *time.Time
	End   *time.Time
}

// Contains reports whether a transaction dated d falls inside the
// window anchored at now.
func (w Window) Contains(d time.Time, now time.Time) bool {
	switch w.Range {
	case RangeThisMonth:
		return d.Year() == now.Year() && d.Month() == now.Month()
	case RangeLastMonth:
		prev := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		return d.Year() == prev.Year() && d.Month() == prev.Month()
	case RangeThisWeek:
		return !d.Before(now.AddDate(0, 0, -7))
	case RangeThisYear:
		return d.Year() == now.Year()
	case RangeCustom:
		if w.Start == nil || w.End == nil {
			// Fail open: incomplete bounds must never hide data.
			return true
		}
		return !d.Before(*w.Start) && !d.After(endOfDay(*w.End))
	default:
		return true
	}
}

// Filter returns the transactions that fall inside the window. The
// input slice is never mutated.
func Filter(txns []core.Transaction, w Window, now time.Time) []core.Transaction {
	out := make([]core.Transaction, 0, len(txns))
	for _, t := range txns {
		if w.Contains(t.Date.Time, now) {
			out = append(out, t)
		}
	}
	return out
}

// Days returns the day count used for per-day averages: the real
// calendar length for month windows, 365 for year and all-time, the
// inclusive span for custom windows (30 when bounds are missing), and
// 7 for the rolling week.
func (w Window) Days(now time.Time) int {
	switch w.Range {
	case RangeThisMonth:
		return daysInMonth(now.Year(), now.Month())
	case RangeLastMonth:
		prev := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		return daysInMonth(prev.Year(), prev.Month())
	case RangeThisWeek:
		return 7
	case RangeCustom:
		if w.Start == nil || w.End == nil {
			return 30
		}
		span := int(w.End.Sub(*w.Start).Hours()/24) + 1
		if span < 1 {
			return 1
		}
		return span
	default:
		return 365
	}
}

// Label returns the human-readable window name used in views and
// export filenames.
func (w Window) Label() string {
	switch w.Range {
	case RangeThisWeek:
		return "This Week"
	case RangeThisMonth:
		return "This Month"
	case RangeLastMonth:
		return "Last Month"
	case RangeThisYear:
		return "This Year"
	case RangeCustom:
		if w.Start != nil && w.End != nil {
			return fmt.Sprintf("%s - %s", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
		}
		return "Custom Range"
	default:
		return "All Time"
	}
}

// ParseRange maps a request selector onto a Range. Unknown selectors
// fall back to all-time rather than erroring.
func ParseRange(s string) Range {
	switch Range(s) {
	case RangeThisWeek, RangeThisMonth, RangeLastMonth, RangeThisYear, RangeCustom, RangeAllTime:
		return Range(s)
	default:
		return RangeAllTime
	}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
