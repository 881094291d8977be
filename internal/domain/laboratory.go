package domain

import "time"

type Laboratory struct {
	ID               string     `db:"id"`
	FantasyName      string     `db:"fantasy_name"`
	CNPJ             string     `db:"cnpj"`
	Active           bool       `db:"active"`
	Approved         bool       `db:"approved"`
	ExclusionDate    *time.Time `db:"exclusion_date"`
	RepresentativeID string     `db:"representative_id"`
	Address          string     `db:"address"`
	CreatedAt        time.Time  `db:"created_at"`

	// geography extracted from the address at the boundary
	StateCode string `db:"-"`
	StateName string `db:"-"`
	City      string `db:"-"`

	// enrichment joined from the representative table
	RepName      string `db:"-"`
	RepCleanName string `db:"-"`
	Category     string `db:"-"`
}

// LaboratoryStatus is a per-computation-pass view of a laboratory with the
// derived accreditation and collection-activity fields attached. It is
// recomputed whenever the reference instant or window parameters change.
type LaboratoryStatus struct {
	Laboratory

	IsCredentialed        bool       `json:"is_credentialed"`
	CollectionActive      bool       `json:"collection_active"`
	DaysSinceLast         int        `json:"days_since_last"`
	DaysSinceLastDisplay  string     `json:"days_since_last_display"`
	LastCollection        *time.Time `json:"last_collection,omitempty"`
	LastCollectionDisplay string     `json:"last_collection_display"`
}
