package analytics

import (
	"sort"
	"time"

	"github.com/caeptox/labops/internal/domain"
)

// BuildRepresentativeRanking counts active gatherings per (representative,
// category) and orders the result by volume, descending. Gatherings whose
// laboratory is not in the registry are excluded; ties keep input order.
func BuildRepresentativeRanking(
	activeGatherings []domain.Gathering,
	labs []domain.LaboratoryStatus,
) []domain.RepresentativeRankingRow {
	valid := make(map[string]struct{}, len(labs))
	for _, lab := range labs {
		valid[lab.ID] = struct{}{}
	}

	type key struct {
		rep      string
		category string
	}
	counts := make(map[key]int)
	order := make([]key, 0)
	for _, g := range activeGatherings {
		if _, ok := valid[g.LaboratoryID]; !ok {
			continue
		}
		k := key{rep: g.RepCleanName, category: g.Category}
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}

	rows := make([]domain.RepresentativeRankingRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, domain.RepresentativeRankingRow{
			RepName:  k.rep,
			Category: k.category,
			Volume:   counts[k],
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Volume > rows[j].Volume })
	return rows
}

// BuildLaboratoryRanking counts active gatherings per laboratory, joins the
// laboratory's descriptive attributes and last collection, and derives the
// three-state collection status. Descending by volume, stable ties.
func BuildLaboratoryRanking(
	activeGatherings []domain.Gathering,
	labs []domain.LaboratoryStatus,
	lastCollection map[string]time.Time,
	now time.Time,
	windowDays int,
) []domain.LaboratoryRankingRow {
	byID := make(map[string]domain.LaboratoryStatus, len(labs))
	for _, lab := range labs {
		byID[lab.ID] = lab
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, g := range activeGatherings {
		if _, ok := byID[g.LaboratoryID]; !ok {
			continue
		}
		if _, ok := counts[g.LaboratoryID]; !ok {
			order = append(order, g.LaboratoryID)
		}
		counts[g.LaboratoryID]++
	}

	rows := make([]domain.LaboratoryRankingRow, 0, len(order))
	for _, id := range order {
		lab := byID[id]
		row := domain.LaboratoryRankingRow{
			LaboratoryID:          id,
			Volume:                counts[id],
			FantasyName:           lab.FantasyName,
			CNPJ:                  lab.CNPJ,
			IsCredentialed:        lab.IsCredentialed,
			RepName:               lab.RepName,
			RepCleanName:          lab.RepCleanName,
			Category:              lab.Category,
			LastCollectionDisplay: NeverCollectedLabel,
			CollectionStatus:      domain.CollectionStatusNever,
		}

		if ts, ok := lastCollection[id]; ok {
			tsCopy := ts
			row.LastCollection = &tsCopy
			row.LastCollectionDisplay = formatTimestamp(&tsCopy)
			if daysBetween(now, ts) <= windowDays {
				row.CollectionStatus = domain.CollectionStatusActive
			} else {
				row.CollectionStatus = domain.CollectionStatusIdle
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Volume > rows[j].Volume })
	return rows
}
