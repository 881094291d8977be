package analytics

import (
	"sort"
	"time"

	"github.com/caeptox/labops/internal/domain"
)

// ComputeNewAccreditations lists credentialed laboratories registered
// within the last monthsBack months, most recent first. Months use the
// fixed 30-day approximation the business thresholds were tuned against,
// not calendar arithmetic.
func ComputeNewAccreditations(
	labs []domain.LaboratoryStatus,
	now time.Time,
	monthsBack int,
) []domain.NewAccreditationRow {
	limit := now.Add(-time.Duration(monthsBack) * DaysPerMonthApprox * 24 * time.Hour)

	rows := make([]domain.NewAccreditationRow, 0)
	for _, lab := range labs {
		if !lab.IsCredentialed || lab.CreatedAt.IsZero() || lab.CreatedAt.Before(limit) {
			continue
		}
		rows = append(rows, domain.NewAccreditationRow{
			RepName:               lab.RepName,
			RepCleanName:          lab.RepCleanName,
			Category:              lab.Category,
			FantasyName:           lab.FantasyName,
			CNPJ:                  lab.CNPJ,
			CredentialedAt:        lab.CreatedAt,
			CredentialedAtDisplay: lab.CreatedAt.Format(dateDisplayLayout),
			DaysCredentialed:      daysBetween(now, lab.CreatedAt),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CredentialedAt.After(rows[j].CredentialedAt)
	})
	return rows
}

// ComputeInactiveLabsAlert flags credentialed laboratories whose last
// collection is older than the threshold. Unlike the windowed activity
// status, it looks at the full multi-year gathering history (test events
// included, report-disabled ones excluded) so billing outreach sees
// collections from any year. Never-collected labs carry the sentinel 999,
// which exceeds any realistic threshold. Descending by days inactive.
func ComputeInactiveLabsAlert(
	labs []domain.LaboratoryStatus,
	allGatherings []domain.Gathering,
	now time.Time,
	inactivityThresholdDays int,
) []domain.InactiveLabRow {
	history := FilterActiveGatherings(allGatherings, false, true)
	last := LastCollections(history)

	rows := make([]domain.InactiveLabRow, 0)
	for _, lab := range labs {
		if !lab.IsCredentialed {
			continue
		}

		days := NeverCollectedDays
		display := NeverCollectedLabel
		if ts, ok := last[lab.ID]; ok {
			days = daysBetween(now, ts)
			display = formatTimestamp(&ts)
		}
		if days <= inactivityThresholdDays {
			continue
		}

		rows = append(rows, domain.InactiveLabRow{
			LaboratoryID:          lab.ID,
			RepName:               lab.RepName,
			RepCleanName:          lab.RepCleanName,
			Category:              lab.Category,
			FantasyName:           lab.FantasyName,
			CNPJ:                  lab.CNPJ,
			LastCollectionDisplay: display,
			DaysInactive:          days,
			DaysInactiveDisplay:   formatDaysSince(days),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].DaysInactive > rows[j].DaysInactive })
	return rows
}
