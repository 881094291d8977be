package analytics

import "github.com/caeptox/labops/internal/domain"

// FilterActiveGatherings keeps gatherings with active=true and optionally
// drops test and disabled-in-report events. The two exclusions are
// independent toggles; applying either is idempotent and they commute.
func FilterActiveGatherings(gatherings []domain.Gathering, excludeTest, excludeDisabled bool) []domain.Gathering {
	out := make([]domain.Gathering, 0, len(gatherings))
	for _, g := range gatherings {
		if !g.Active {
			continue
		}
		if excludeTest && g.Test {
			continue
		}
		if excludeDisabled && g.DisabledInReport {
			continue
		}
		out = append(out, g)
	}
	return out
}
