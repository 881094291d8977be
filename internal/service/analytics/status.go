package analytics

import (
	"time"

	"github.com/caeptox/labops/internal/domain"
)

// ComputeAccreditation derives is_credentialed for every laboratory.
//
// Policy decision: accreditation depends on the active flag only. The
// approved flag is operational state and the exclusion date is carried for
// display but neither is a determinant.
func ComputeAccreditation(labs []domain.Laboratory) []domain.LaboratoryStatus {
	out := make([]domain.LaboratoryStatus, len(labs))
	for i, lab := range labs {
		out[i] = domain.LaboratoryStatus{
			Laboratory:            lab,
			IsCredentialed:        lab.Active,
			DaysSinceLast:         NeverCollectedDays,
			DaysSinceLastDisplay:  NoDaysDisplay,
			LastCollectionDisplay: NeverCollectedLabel,
		}
	}
	return out
}

// LastCollections returns the most recent valid timestamp among the given
// gatherings per laboratory. Malformed (zero) timestamps are skipped.
func LastCollections(gatherings []domain.Gathering) map[string]time.Time {
	last := make(map[string]time.Time)
	for _, g := range gatherings {
		if g.CreatedAt.IsZero() {
			continue
		}
		if cur, ok := last[g.LaboratoryID]; !ok || g.CreatedAt.After(cur) {
			last[g.LaboratoryID] = g.CreatedAt
		}
	}
	return last
}

// ComputeCollectionStatus attaches collection recency to every laboratory:
// days since the latest active gathering (sentinel 999 when none), the
// display strings, and the activity flag days <= windowDays. Returns the
// updated rows, the active/inactive counts and the per-lab last-collection
// index for downstream reuse.
func ComputeCollectionStatus(
	labs []domain.LaboratoryStatus,
	activeGatherings []domain.Gathering,
	now time.Time,
	windowDays int,
) ([]domain.LaboratoryStatus, int, int, map[string]time.Time) {
	last := LastCollections(activeGatherings)

	out := make([]domain.LaboratoryStatus, len(labs))
	active := 0
	for i, lab := range labs {
		lab.CollectionActive = false
		lab.DaysSinceLast = NeverCollectedDays
		lab.LastCollection = nil
		lab.LastCollectionDisplay = NeverCollectedLabel
		lab.DaysSinceLastDisplay = NoDaysDisplay

		if ts, ok := last[lab.ID]; ok {
			tsCopy := ts
			lab.LastCollection = &tsCopy
			lab.LastCollectionDisplay = formatTimestamp(&tsCopy)
			lab.DaysSinceLast = daysBetween(now, ts)
			lab.DaysSinceLastDisplay = formatDaysSince(lab.DaysSinceLast)
			lab.CollectionActive = lab.DaysSinceLast <= windowDays
		}

		if lab.CollectionActive {
			active++
		}
		out[i] = lab
	}

	return out, active, len(out) - active, last
}
