package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/caeptox/labops/internal/domain"
	"github.com/caeptox/labops/internal/domain/dto"
	"github.com/caeptox/labops/internal/pkg/constants"
	"github.com/caeptox/labops/internal/service/analytics"
)

func testDataset(t *testing.T) *dto.Dataset {
	t.Helper()

	reps := analytics.EnrichRepresentatives([]domain.Representative{
		{ID: "r1", Name: "INT-Ana"},
		{ID: "r2", Name: "EXT-Bia"},
	})
	labs := analytics.EnrichLaboratories(reps, []domain.Laboratory{
		{ID: "l1", FantasyName: "Lab Um", Active: true, RepresentativeID: "r1",
			CreatedAt: mustTime(t, "2025-05-01T10:00:00Z")},
		{ID: "l2", FantasyName: "Lab Dois", Active: true, RepresentativeID: "r2",
			CreatedAt: mustTime(t, "2023-01-01T10:00:00Z")},
		{ID: "l3", FantasyName: "Lab Três", Active: false, RepresentativeID: "r2"},
	})
	gatherings := analytics.MergeGatheringsWithLabs([]domain.Gathering{
		{ID: "g1", LaboratoryID: "l1", Active: true, CreatedAt: mustTime(t, "2025-06-10T10:00:00Z")},
		{ID: "g2", LaboratoryID: "l1", Active: true, CreatedAt: mustTime(t, "2025-05-10T10:00:00Z")},
		{ID: "g3", LaboratoryID: "l2", Active: true, CreatedAt: mustTime(t, "2025-01-05T10:00:00Z")},
		// prior-year gathering, outside the default year scope
		{ID: "g4", LaboratoryID: "l2", Active: true, CreatedAt: mustTime(t, "2024-11-05T10:00:00Z")},
		{ID: "g5", LaboratoryID: "l1", Active: false, CreatedAt: mustTime(t, "2025-06-01T10:00:00Z")},
	}, labs)

	return &dto.Dataset{
		SnapshotID:      "snap-1",
		Source:          "test",
		LoadedAt:        mustTime(t, "2025-06-20T00:00:00Z"),
		Representatives: reps,
		Laboratories:    labs,
		Gatherings:      gatherings,
		HasGeography:    false,
	}
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(nil, 2025, 15, true)
	svc.dataset = testDataset(t)
	svc.SetClock(func() time.Time { return mustTime(t, "2025-06-20T12:00:00Z") })
	return svc
}

func TestSummaryDefaultYear(t *testing.T) {
	svc := newTestService(t)

	summary, err := svc.Summary(context.Background(), Params{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Year != 2025 {
		t.Fatalf("year = %d, want configured default", summary.Year)
	}
	// g4 is 2024 and g5 is inactive
	if summary.TotalGatherings != 3 {
		t.Fatalf("total gatherings = %d, want 3", summary.TotalGatherings)
	}
	if summary.CredentialedLabs != 2 {
		t.Fatalf("credentialed = %d", summary.CredentialedLabs)
	}
	// only l1 collected within the 15-day window
	if summary.ActiveLabs != 1 || summary.InactiveLabs != 2 {
		t.Fatalf("active=%d inactive=%d", summary.ActiveLabs, summary.InactiveLabs)
	}
	if summary.MonthlyKPIs.Total != 3 {
		t.Fatalf("kpis = %+v", summary.MonthlyKPIs)
	}
}

func TestSummaryExplicitYear(t *testing.T) {
	svc := newTestService(t)

	summary, err := svc.Summary(context.Background(), Params{Year: 2024})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Year != 2024 || summary.TotalGatherings != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestSummaryExcludesDisabledByDefault(t *testing.T) {
	svc := newTestService(t)
	svc.dataset.Gatherings = append(svc.dataset.Gatherings, domain.Gathering{
		ID:               "g6",
		LaboratoryID:     "l1",
		Active:           true,
		DisabledInReport: true,
		CreatedAt:        mustTime(t, "2025-06-12T10:00:00Z"),
	})

	summary, err := svc.Summary(context.Background(), Params{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalGatherings != 3 {
		t.Fatalf("total = %d, report-disabled gatherings must be excluded without parameters", summary.TotalGatherings)
	}

	include := false
	summary, err = svc.Summary(context.Background(), Params{ExcludeDisabled: &include})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalGatherings != 4 {
		t.Fatalf("total = %d, explicit exclude_disabled=false must include them", summary.TotalGatherings)
	}
}

func TestNotLoaded(t *testing.T) {
	svc := NewService(nil, 2025, 15, true)
	if _, err := svc.Summary(context.Background(), Params{}); !errors.Is(err, constants.ErrDataNotLoaded) {
		t.Fatalf("err = %v, want ErrDataNotLoaded", err)
	}
}

func TestMonthlyVolumesScopedToYear(t *testing.T) {
	svc := newTestService(t)

	rows, err := svc.MonthlyVolumes(context.Background(), Params{})
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	for _, r := range rows {
		if r.Period < "2025-01" || r.Period > "2025-12" {
			t.Fatalf("period %q outside the requested year", r.Period)
		}
	}
}

func TestRepresentativeOverviewUnknownRep(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.RepresentativeOverview(context.Background(), Params{}, "Nobody", ""); !errors.Is(err, constants.ErrUnknownRep) {
		t.Fatalf("err = %v, want ErrUnknownRep", err)
	}

	overview, err := svc.RepresentativeOverview(context.Background(), Params{}, "Ana", "")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.RepName != "Ana" {
		t.Fatalf("overview = %+v", overview)
	}
	if overview.Accreditations.Credentialed != 1 || overview.Accreditations.NewlyCredentialed != 1 {
		t.Fatalf("accreditations = %+v", overview.Accreditations)
	}
	if overview.CollectionStatus.Active != 1 {
		t.Fatalf("collection status = %+v", overview.CollectionStatus)
	}
}

func TestInactivityAlertUsesFullHistory(t *testing.T) {
	svc := newTestService(t)

	rows, err := svc.InactivityAlert(context.Background(), Params{}, 30)
	if err != nil {
		t.Fatalf("alert: %v", err)
	}

	// l2 last collected in 2025-01, well past 30 days; the 2024 gathering
	// alone would already keep it off the never-collected sentinel
	found := false
	for _, r := range rows {
		if r.LaboratoryID == "l2" {
			found = true
			if r.DaysInactive == 999 {
				t.Fatalf("l2 treated as never collected: %+v", r)
			}
		}
		if r.LaboratoryID == "l1" {
			t.Fatalf("recently active lab flagged: %+v", r)
		}
	}
	if !found {
		t.Fatalf("l2 missing from alert: %+v", rows)
	}
}
