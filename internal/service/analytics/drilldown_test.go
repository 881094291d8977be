package analytics

import (
	"testing"
	"time"

	"github.com/caeptox/labops/internal/domain"
)

func TestComputeRepAccreditations(t *testing.T) {
	now := mustTime(t, "2025-06-20T12:00:00Z")
	labs := ComputeAccreditation([]domain.Laboratory{
		{ID: "l1", Active: true, RepCleanName: "Ana", CreatedAt: now.Add(-20 * 24 * time.Hour)},
		{ID: "l2", Active: true, RepCleanName: "Ana", CreatedAt: now.Add(-200 * 24 * time.Hour)},
		{ID: "l3", Active: false, RepCleanName: "Ana"},
		{ID: "l4", Active: true, RepCleanName: "Bia", CreatedAt: now.Add(-1 * 24 * time.Hour)},
	})

	o := ComputeRepAccreditations(labs, "Ana", now)
	if o.Credentialed != 2 || o.Decredentialed != 1 {
		t.Fatalf("overview = %+v", o)
	}
	if o.NewlyCredentialed != 1 || len(o.NewAccreditations) != 1 {
		t.Fatalf("new accreditations = %+v", o)
	}
}

func TestComputeRepCollectionStatus(t *testing.T) {
	now := mustTime(t, "2025-06-20T12:00:00Z")
	labs := ComputeAccreditation([]domain.Laboratory{
		{ID: "l1", Active: true, RepCleanName: "Ana"},
		{ID: "l2", Active: true, RepCleanName: "Ana"},
		{ID: "l3", Active: true, RepCleanName: "Bia"},
	})
	gs := []domain.Gathering{
		{LaboratoryID: "l1", Active: true, CreatedAt: mustTime(t, "2025-06-15T12:00:00Z")},
		// another representative's activity must not leak in
		{LaboratoryID: "l3", Active: true, CreatedAt: mustTime(t, "2025-06-15T12:00:00Z")},
	}

	status := ComputeRepCollectionStatus(labs, gs, "Ana", now, 15)
	if status.Active != 1 || status.Inactive != 1 || len(status.Laboratories) != 2 {
		t.Fatalf("status = %+v", status)
	}
}
