package domain

import "time"

// Representative categories derived from the raw name prefix. The prefix
// rule mirrors the categorization used by the pre-existing BI reports and
// must not be changed independently of it.
const (
	CategoryInternal = "Internal"
	CategoryExternal = "External"
)

// PlaceholderNoRepresentative is attached wherever a laboratory or
// gathering cannot be resolved to a representative.
const PlaceholderNoRepresentative = "No Representative"

type Representative struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`

	// derived at load time, append-only
	Category  string `db:"-"`
	CleanName string `db:"-"`
}
