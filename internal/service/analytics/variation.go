package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/caeptox/labops/internal/domain"
)

// variationPct computes (current-previous)/previous*100 rounded for
// display; a zero previous volume resolves to 0. Threshold checks go
// through variationBelow, never through this rounded value.
func variationPct(current, previous int) float64 {
	if previous == 0 {
		return 0
	}
	return variationRatio(current, previous).Round(2).InexactFloat64()
}

// variationBelow reports whether the unrounded variation is below the
// threshold. A variation of -10.004% must flag against -10 even though it
// displays as -10.0.
func variationBelow(current, previous int, thresholdPct float64) bool {
	if previous == 0 {
		return false
	}
	return variationRatio(current, previous).LessThan(decimal.NewFromFloat(thresholdPct))
}

func variationRatio(current, previous int) decimal.Decimal {
	return decimal.NewFromInt(int64(current - previous)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(previous)))
}

// ComputeVariations derives the month-over-month percentage change of the
// portfolio-wide volume series and flags moderate drops (< -10%). Category
// rows are collapsed per period first; the series is processed in
// chronological order. The first period and any period following a zero
// volume get variation 0 and are never flagged.
func ComputeVariations(monthly []domain.VolumeRow) []domain.VariationRow {
	collapsed := CollapseByPeriod(monthly)

	out := make([]domain.VariationRow, 0, len(collapsed))
	for i, r := range collapsed {
		row := domain.VariationRow{Period: r.Period, Volume: r.Volume}
		if i > 0 {
			row.PreviousVolume = collapsed[i-1].Volume
			row.Variation = variationPct(r.Volume, row.PreviousVolume)
			row.IsDrop = variationBelow(r.Volume, row.PreviousVolume, ModerateDropPct)
		}
		out = append(out, row)
	}
	return out
}

// DetectLabDrops finds severe (< -30%) month-over-month volume drops for
// every laboratory of one representative. The optional target period filter
// is applied after variation is computed, since detecting a drop in a
// period requires the preceding period's volume.
func DetectLabDrops(activeGatherings []domain.Gathering, repName string, targetPeriod string) []domain.LabDropRow {
	repLabs := make(map[string]struct{})
	for _, g := range activeGatherings {
		if g.RepCleanName == repName || g.RepName == repName {
			repLabs[g.LaboratoryID] = struct{}{}
		}
	}
	if len(repLabs) == 0 {
		return []domain.LabDropRow{}
	}

	type bucket struct {
		lab    string
		period string
	}
	counts := make(map[bucket]int)
	labInfo := make(map[string]domain.Gathering)
	for _, g := range activeGatherings {
		if _, ok := repLabs[g.LaboratoryID]; !ok {
			continue
		}
		if _, ok := labInfo[g.LaboratoryID]; !ok {
			labInfo[g.LaboratoryID] = g
		}
		if g.CreatedAt.IsZero() {
			continue
		}
		counts[bucket{lab: g.LaboratoryID, period: MonthKey(g.CreatedAt)}]++
	}

	series := make([]domain.LabDropRow, 0, len(counts))
	for b, v := range counts {
		series = append(series, domain.LabDropRow{LaboratoryID: b.lab, Period: b.period, Volume: v})
	}
	sort.SliceStable(series, func(i, j int) bool {
		if series[i].LaboratoryID != series[j].LaboratoryID {
			return series[i].LaboratoryID < series[j].LaboratoryID
		}
		return series[i].Period < series[j].Period
	})

	drops := make([]domain.LabDropRow, 0)
	for i, row := range series {
		if i == 0 || series[i-1].LaboratoryID != row.LaboratoryID {
			continue // first period for this lab, nothing to compare
		}
		row.PreviousVolume = series[i-1].Volume
		row.Variation = variationPct(row.Volume, row.PreviousVolume)
		if !variationBelow(row.Volume, row.PreviousVolume, SevereDropPct) {
			continue
		}
		if targetPeriod != "" && row.Period != targetPeriod {
			continue
		}

		info := labInfo[row.LaboratoryID]
		row.FantasyName = info.FantasyName
		row.CNPJ = info.CNPJ
		row.LabLabel = labDropLabel(row.LaboratoryID, info.FantasyName, info.CNPJ)
		drops = append(drops, row)
	}
	return drops
}

func labDropLabel(labID, fantasyName, cnpj string) string {
	if fantasyName == "" && cnpj == "" {
		return "Laboratory ID: " + labID
	}
	name := fantasyName
	if name == "" {
		name = "Unnamed laboratory"
	}
	tax := cnpj
	if tax == "" {
		tax = "CNPJ unavailable"
	}
	return name + " (" + tax + ")"
}
