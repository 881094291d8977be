// Package analytics is the metrics-derivation pipeline: pure functions that
// take the enriched source tables plus a reference instant and produce the
// derived status, volume, variation, ranking and alert records served by
// the dashboard. Nothing in here performs I/O or mutates its inputs.
package analytics

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// NeverCollectedDays is the sentinel for laboratories without a single
	// active gathering; it renders as a dash, never as a literal number.
	NeverCollectedDays = 999

	// Fixed contract thresholds (percent). Moderate flags portfolio-level
	// review rows, severe flags per-laboratory drill-down alerts.
	ModerateDropPct = -10.0
	SevereDropPct   = -30.0

	DaysPerMonthApprox = 30

	NeverCollectedLabel = "Never collected"
	NoDaysDisplay       = "-"

	timestampDisplayLayout = "02/01/2006 15:04"
	dateDisplayLayout      = "02/01/2006"
	monthLayout            = "2006-01"
)

// daysBetween floors the elapsed days from ts to now, clamped at zero so a
// same-day collection with a clock-skewed future time never goes negative.
func daysBetween(now, ts time.Time) int {
	d := int(now.Sub(ts).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func formatTimestamp(ts *time.Time) string {
	if ts == nil || ts.IsZero() {
		return NeverCollectedLabel
	}
	return ts.Format(timestampDisplayLayout)
}

func formatDaysSince(days int) string {
	if days == NeverCollectedDays {
		return NoDaysDisplay
	}
	return strconv.Itoa(days)
}

// MonthKey buckets a timestamp into its calendar-month period key.
func MonthKey(ts time.Time) string {
	return ts.Format(monthLayout)
}

// WeekKey buckets a timestamp into its ISO calendar-week period key.
func WeekKey(ts time.Time) string {
	year, week := ts.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
