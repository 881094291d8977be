package analytics

import (
	"time"

	"github.com/caeptox/labops/internal/domain"
)

func labsOfRepresentative(labs []domain.LaboratoryStatus, repName string) []domain.LaboratoryStatus {
	out := make([]domain.LaboratoryStatus, 0)
	for _, lab := range labs {
		if lab.RepCleanName == repName || lab.RepName == repName {
			out = append(out, lab)
		}
	}
	return out
}

// ComputeRepAccreditations summarizes one representative's portfolio:
// credentialed, newly credentialed (last three months) and decredentialed
// laboratory counts plus the new-accreditation rows.
func ComputeRepAccreditations(
	labs []domain.LaboratoryStatus,
	repName string,
	now time.Time,
) domain.RepAccreditationOverview {
	repLabs := labsOfRepresentative(labs, repName)
	newRows := ComputeNewAccreditations(repLabs, now, 3)

	overview := domain.RepAccreditationOverview{
		NewlyCredentialed: len(newRows),
		NewAccreditations: newRows,
	}
	for _, lab := range repLabs {
		if lab.IsCredentialed {
			overview.Credentialed++
		} else {
			overview.Decredentialed++
		}
	}
	return overview
}

// ComputeRepCollectionStatus recomputes the windowed activity split for one
// representative's laboratories only.
func ComputeRepCollectionStatus(
	labs []domain.LaboratoryStatus,
	activeGatherings []domain.Gathering,
	repName string,
	now time.Time,
	windowDays int,
) domain.RepCollectionStatus {
	repLabs := labsOfRepresentative(labs, repName)
	ids := make(map[string]struct{}, len(repLabs))
	for _, lab := range repLabs {
		ids[lab.ID] = struct{}{}
	}

	repGatherings := make([]domain.Gathering, 0, len(activeGatherings))
	for _, g := range activeGatherings {
		if _, ok := ids[g.LaboratoryID]; ok {
			repGatherings = append(repGatherings, g)
		}
	}

	statuses, active, inactive, _ := ComputeCollectionStatus(repLabs, repGatherings, now, windowDays)
	return domain.RepCollectionStatus{
		Active:       active,
		Inactive:     inactive,
		Laboratories: statuses,
	}
}
