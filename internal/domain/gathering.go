package domain

import "time"

// Gathering is a single collection event performed at a laboratory.
// CreatedAt is the zero time when the source value was malformed; such rows
// are kept but excluded from time-bucketed aggregations.
type Gathering struct {
	ID               string    `db:"id"`
	LaboratoryID     string    `db:"laboratory_id"`
	CreatedAt        time.Time `db:"created_at"`
	Active           bool      `db:"active"`
	Test             bool      `db:"test"`
	DisabledInReport bool      `db:"disabled_in_report"`

	// enrichment joined from the laboratory table
	FantasyName      string     `db:"-"`
	CNPJ             string     `db:"-"`
	LabActive        bool       `db:"-"`
	LabApproved      bool       `db:"-"`
	LabExclusionDate *time.Time `db:"-"`
	RepName          string     `db:"-"`
	RepCleanName     string     `db:"-"`
	Category         string     `db:"-"`
	StateCode        string     `db:"-"`
	StateName        string     `db:"-"`
	City             string     `db:"-"`
}
