package dto

import (
	"sort"
	"time"

	"github.com/caeptox/labops/internal/domain"
)

// Dataset is the session context object: the three source tables loaded and
// enriched once, then passed explicitly into every computation. Tables are
// immutable after construction; parameter-dependent metrics are recomputed
// on every request from these slices.
type Dataset struct {
	SnapshotID string
	Source     string
	LoadedAt   time.Time

	Representatives []domain.Representative
	Laboratories    []domain.Laboratory
	Gatherings      []domain.Gathering

	// capability flags resolved once at load time so aggregation code
	// never probes for optional columns
	HasGeography bool
}

// GatheringsForYear narrows the gathering table to one calendar year.
// Rows with a malformed (zero) timestamp never match any year.
func (d *Dataset) GatheringsForYear(year int) []domain.Gathering {
	out := make([]domain.Gathering, 0, len(d.Gatherings))
	for _, g := range d.Gatherings {
		if !g.CreatedAt.IsZero() && g.CreatedAt.Year() == year {
			out = append(out, g)
		}
	}
	return out
}

// Years lists the calendar years present in the gathering table, ascending.
func (d *Dataset) Years() []int {
	seen := make(map[int]struct{})
	years := make([]int, 0, 8)
	for _, g := range d.Gatherings {
		if g.CreatedAt.IsZero() {
			continue
		}
		y := g.CreatedAt.Year()
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}
