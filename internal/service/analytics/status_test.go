package analytics

import (
	"testing"
	"time"

	"github.com/caeptox/labops/internal/domain"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}

func TestComputeAccreditationDependsOnActiveOnly(t *testing.T) {
	statuses := ComputeAccreditation([]domain.Laboratory{
		{ID: "l1", Active: true, Approved: false},
		{ID: "l2", Active: false, Approved: true},
	})

	if !statuses[0].IsCredentialed {
		t.Fatalf("active unapproved lab must be credentialed")
	}
	if statuses[1].IsCredentialed {
		t.Fatalf("inactive approved lab must not be credentialed")
	}
}

func TestComputeCollectionStatusWindow(t *testing.T) {
	now := mustTime(t, "2025-06-20T12:00:00Z")
	labs := ComputeAccreditation([]domain.Laboratory{
		{ID: "l1", Active: true},
		{ID: "l2", Active: true},
	})
	gs := []domain.Gathering{
		{ID: "g1", LaboratoryID: "l1", Active: true, CreatedAt: mustTime(t, "2025-06-10T12:00:00Z")},
	}

	rows, active, inactive, last := ComputeCollectionStatus(labs, gs, now, 15)
	if active != 1 || inactive != 1 {
		t.Fatalf("active=%d inactive=%d, want 1/1", active, inactive)
	}
	if rows[0].DaysSinceLast != 10 || !rows[0].CollectionActive {
		t.Fatalf("l1 status = %+v", rows[0])
	}
	if _, ok := last["l1"]; !ok {
		t.Fatalf("last-collection index missing l1")
	}

	// same data, tighter window
	rows, active, _, _ = ComputeCollectionStatus(labs, gs, now, 5)
	if active != 0 || rows[0].CollectionActive {
		t.Fatalf("10-day-old collection inside a 5-day window: %+v", rows[0])
	}
}

func TestComputeCollectionStatusNeverCollected(t *testing.T) {
	now := mustTime(t, "2025-06-20T12:00:00Z")
	labs := ComputeAccreditation([]domain.Laboratory{{ID: "l1", Active: true}})

	rows, active, _, _ := ComputeCollectionStatus(labs, nil, now, 15)
	row := rows[0]
	if active != 0 || row.CollectionActive {
		t.Fatalf("never-collected lab counted active")
	}
	if row.DaysSinceLast != NeverCollectedDays {
		t.Fatalf("days = %d, want sentinel %d", row.DaysSinceLast, NeverCollectedDays)
	}
	if row.DaysSinceLastDisplay != NoDaysDisplay {
		t.Fatalf("days display = %q, want %q", row.DaysSinceLastDisplay, NoDaysDisplay)
	}
	if row.LastCollectionDisplay != NeverCollectedLabel {
		t.Fatalf("last display = %q, want %q", row.LastCollectionDisplay, NeverCollectedLabel)
	}
}

func TestComputeCollectionStatusClampsFutureTimestamps(t *testing.T) {
	now := mustTime(t, "2025-06-20T12:00:00Z")
	labs := ComputeAccreditation([]domain.Laboratory{{ID: "l1", Active: true}})
	gs := []domain.Gathering{
		{ID: "g1", LaboratoryID: "l1", Active: true, CreatedAt: now.Add(6 * time.Hour)},
	}

	rows, _, _, _ := ComputeCollectionStatus(labs, gs, now, 15)
	if rows[0].DaysSinceLast != 0 {
		t.Fatalf("future timestamp days = %d, want 0", rows[0].DaysSinceLast)
	}
	if !rows[0].CollectionActive {
		t.Fatalf("same-day collection must be active")
	}
}

func TestLastCollectionsSkipsMalformedTimestamps(t *testing.T) {
	gs := []domain.Gathering{
		{LaboratoryID: "l1", CreatedAt: mustTime(t, "2025-01-10T00:00:00Z")},
		{LaboratoryID: "l1", CreatedAt: mustTime(t, "2025-03-01T00:00:00Z")},
		{LaboratoryID: "l1"},
		{LaboratoryID: "l2"},
	}

	last := LastCollections(gs)
	if len(last) != 1 {
		t.Fatalf("index size = %d, want 1", len(last))
	}
	if got := last["l1"]; !got.Equal(mustTime(t, "2025-03-01T00:00:00Z")) {
		t.Fatalf("l1 last = %v", got)
	}
}
