package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/caeptox/labops/internal/domain"
)

// perfKey is a grouping key of up to three dimension parts (e.g. state
// code, state name, city). Unused parts stay empty.
type perfKey [3]string

type perfAgg struct {
	activeLabs       map[string]struct{}
	totalCollections int
	totalLabs        int
	credentialedLabs int
}

// computePerformance outer-joins the collection-side aggregate (distinct
// active labs, collection count per key) with the accreditation-side
// aggregate (registered and credentialed labs per key). Keys present on
// only one side appear with zero-filled counterparts.
func computePerformance(
	activeGatherings []domain.Gathering,
	labs []domain.LaboratoryStatus,
	gatheringKey func(domain.Gathering) (perfKey, bool),
	labKey func(domain.LaboratoryStatus) (perfKey, bool),
) ([]perfKey, map[perfKey]*perfAgg) {
	aggs := make(map[perfKey]*perfAgg)
	order := make([]perfKey, 0)

	get := func(k perfKey) *perfAgg {
		a, ok := aggs[k]
		if !ok {
			a = &perfAgg{activeLabs: make(map[string]struct{})}
			aggs[k] = a
			order = append(order, k)
		}
		return a
	}

	for _, g := range activeGatherings {
		k, ok := gatheringKey(g)
		if !ok {
			continue
		}
		a := get(k)
		a.activeLabs[g.LaboratoryID] = struct{}{}
		a.totalCollections++
	}

	for _, lab := range labs {
		k, ok := labKey(lab)
		if !ok {
			continue
		}
		a := get(k)
		a.totalLabs++
		if lab.IsCredentialed {
			a.credentialedLabs++
		}
	}

	return order, aggs
}

func (a *perfAgg) metrics() domain.PerformanceMetrics {
	m := domain.PerformanceMetrics{
		ActiveLabs:       len(a.activeLabs),
		TotalCollections: a.totalCollections,
		TotalLabs:        a.totalLabs,
		CredentialedLabs: a.credentialedLabs,
	}
	m.InactiveLabs = m.CredentialedLabs - m.ActiveLabs
	m.ActivationRate = safeRate(m.ActiveLabs*100, m.CredentialedLabs)
	m.Productivity = safeRate(m.TotalCollections, m.ActiveLabs)
	return m
}

// safeRate divides as decimals, resolving a zero denominator to 0.
func safeRate(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(numerator)).
		Div(decimal.NewFromInt(int64(denominator))).
		Round(2).
		InexactFloat64()
}

// ComputeRepresentativeMetrics produces the per-(representative, category)
// performance table, ordered by total collections descending.
func ComputeRepresentativeMetrics(
	activeGatherings []domain.Gathering,
	labs []domain.LaboratoryStatus,
) []domain.RepresentativePerformance {
	order, aggs := computePerformance(activeGatherings, labs,
		func(g domain.Gathering) (perfKey, bool) {
			return perfKey{g.RepCleanName, g.Category}, true
		},
		func(lab domain.LaboratoryStatus) (perfKey, bool) {
			return perfKey{lab.RepCleanName, lab.Category}, true
		},
	)

	rows := make([]domain.RepresentativePerformance, 0, len(order))
	for _, k := range order {
		rows = append(rows, domain.RepresentativePerformance{
			RepName:            k[0],
			Category:           k[1],
			PerformanceMetrics: aggs[k].metrics(),
		})
	}
	sortByCollections(rows, func(r domain.RepresentativePerformance) int { return r.TotalCollections })
	return rows
}

// ComputeCategorySummary produces the Internal vs External summary.
func ComputeCategorySummary(
	activeGatherings []domain.Gathering,
	labs []domain.LaboratoryStatus,
) []domain.CategorySummary {
	order, aggs := computePerformance(activeGatherings, labs,
		func(g domain.Gathering) (perfKey, bool) { return perfKey{g.Category}, true },
		func(lab domain.LaboratoryStatus) (perfKey, bool) { return perfKey{lab.Category}, true },
	)

	rows := make([]domain.CategorySummary, 0, len(order))
	for _, k := range order {
		rows = append(rows, domain.CategorySummary{
			Category:           k[0],
			PerformanceMetrics: aggs[k].metrics(),
		})
	}
	sortByCollections(rows, func(r domain.CategorySummary) int { return r.TotalCollections })
	return rows
}

// ComputeStateMetrics produces per-state performance. When the dataset
// carries no geography the result is empty but well-formed; rows missing
// location values are skipped, not defaulted.
func ComputeStateMetrics(
	activeGatherings []domain.Gathering,
	labs []domain.LaboratoryStatus,
	hasGeography bool,
) []domain.StatePerformance {
	rows := make([]domain.StatePerformance, 0)
	if !hasGeography {
		return rows
	}

	order, aggs := computePerformance(activeGatherings, labs,
		func(g domain.Gathering) (perfKey, bool) {
			return perfKey{g.StateCode, g.StateName}, g.StateCode != "" && g.StateName != ""
		},
		func(lab domain.LaboratoryStatus) (perfKey, bool) {
			return perfKey{lab.StateCode, lab.StateName}, lab.StateCode != "" && lab.StateName != ""
		},
	)

	for _, k := range order {
		rows = append(rows, domain.StatePerformance{
			StateCode:          k[0],
			StateName:          k[1],
			PerformanceMetrics: aggs[k].metrics(),
		})
	}
	sortByCollections(rows, func(r domain.StatePerformance) int { return r.TotalCollections })
	return rows
}

// ComputeCityMetrics produces per-city performance with the same geography
// contract as ComputeStateMetrics.
func ComputeCityMetrics(
	activeGatherings []domain.Gathering,
	labs []domain.LaboratoryStatus,
	hasGeography bool,
) []domain.CityPerformance {
	rows := make([]domain.CityPerformance, 0)
	if !hasGeography {
		return rows
	}

	order, aggs := computePerformance(activeGatherings, labs,
		func(g domain.Gathering) (perfKey, bool) {
			return perfKey{g.StateCode, g.StateName, g.City},
				g.StateCode != "" && g.StateName != "" && g.City != ""
		},
		func(lab domain.LaboratoryStatus) (perfKey, bool) {
			return perfKey{lab.StateCode, lab.StateName, lab.City},
				lab.StateCode != "" && lab.StateName != "" && lab.City != ""
		},
	)

	for _, k := range order {
		rows = append(rows, domain.CityPerformance{
			StateCode:          k[0],
			StateName:          k[1],
			City:               k[2],
			PerformanceMetrics: aggs[k].metrics(),
		})
	}
	sortByCollections(rows, func(r domain.CityPerformance) int { return r.TotalCollections })
	return rows
}

func sortByCollections[T any](rows []T, collections func(T) int) {
	sort.SliceStable(rows, func(i, j int) bool { return collections(rows[i]) > collections(rows[j]) })
}
