package analytics

import (
	"sort"
	"time"

	"github.com/caeptox/labops/internal/domain"
)

// AggregateVolumes buckets the (already filtered) gatherings into weekly
// and monthly period×category counts. Rows with malformed timestamps are
// dropped from both aggregations. Results are ordered by period, then
// category, so callers get chronological series without re-sorting.
func AggregateVolumes(activeGatherings []domain.Gathering) (weekly, monthly []domain.VolumeRow) {
	weekly = bucketVolumes(activeGatherings, WeekKey)
	monthly = bucketVolumes(activeGatherings, MonthKey)
	return weekly, monthly
}

func bucketVolumes(gatherings []domain.Gathering, keyFn func(time.Time) string) []domain.VolumeRow {
	type bucket struct {
		period   string
		category string
	}

	counts := make(map[bucket]int)
	order := make([]bucket, 0)
	for _, g := range gatherings {
		if g.CreatedAt.IsZero() {
			continue
		}
		b := bucket{period: keyFn(g.CreatedAt), category: g.Category}
		if _, ok := counts[b]; !ok {
			order = append(order, b)
		}
		counts[b]++
	}

	rows := make([]domain.VolumeRow, 0, len(order))
	for _, b := range order {
		rows = append(rows, domain.VolumeRow{Period: b.period, Category: b.category, Volume: counts[b]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Period != rows[j].Period {
			return rows[i].Period < rows[j].Period
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// CollapseByPeriod sums volumes across category per period, preserving
// chronological order. Required before computing min/max/avg so that two
// categories in one period never count as two periods.
func CollapseByPeriod(rows []domain.VolumeRow) []domain.VolumeRow {
	totals := make(map[string]int)
	order := make([]string, 0)
	for _, r := range rows {
		if _, ok := totals[r.Period]; !ok {
			order = append(order, r.Period)
		}
		totals[r.Period] += r.Volume
	}
	sort.Strings(order)

	out := make([]domain.VolumeRow, 0, len(order))
	for _, p := range order {
		out = append(out, domain.VolumeRow{Period: p, Volume: totals[p]})
	}
	return out
}

// ComputeKPIs summarizes a monthly volume table: total across everything,
// min/max/avg across per-period combined volumes. All values are integers;
// an empty series yields all zeros.
func ComputeKPIs(monthly []domain.VolumeRow) domain.KPISummary {
	collapsed := CollapseByPeriod(monthly)
	if len(collapsed) == 0 {
		return domain.KPISummary{}
	}

	total := 0
	minV := collapsed[0].Volume
	maxV := collapsed[0].Volume
	for _, r := range collapsed {
		total += r.Volume
		if r.Volume < minV {
			minV = r.Volume
		}
		if r.Volume > maxV {
			maxV = r.Volume
		}
	}

	return domain.KPISummary{
		Total: total,
		Max:   maxV,
		Min:   minV,
		Avg:   total / len(collapsed),
	}
}
