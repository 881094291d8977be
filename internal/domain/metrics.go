package domain

import "time"

// VolumeRow is one period×category bucket of collection volume.
type VolumeRow struct {
	Period   string `json:"period"`
	Category string `json:"category"`
	Volume   int    `json:"volume"`
}

type KPISummary struct {
	Total int `json:"total"`
	Max   int `json:"max"`
	Min   int `json:"min"`
	Avg   int `json:"avg"`
}

// VariationRow is the period-over-period change of a collapsed volume
// series. Variation is 0 (never NaN) for the first period and whenever the
// previous volume is zero; such rows are never flagged as drops.
type VariationRow struct {
	Period         string  `json:"period"`
	Volume         int     `json:"volume"`
	PreviousVolume int     `json:"previous_volume"`
	Variation      float64 `json:"variation_pct"`
	IsDrop         bool    `json:"is_drop"`
}

// LabDropRow flags a severe per-laboratory month-over-month drop.
type LabDropRow struct {
	LaboratoryID   string  `json:"laboratory_id"`
	Period         string  `json:"period"`
	Volume         int     `json:"volume"`
	PreviousVolume int     `json:"previous_volume"`
	Variation      float64 `json:"variation_pct"`
	FantasyName    string  `json:"fantasy_name,omitempty"`
	CNPJ           string  `json:"cnpj,omitempty"`
	LabLabel       string  `json:"lab_label"`
}

type RepresentativeRankingRow struct {
	RepName  string `json:"rep_name"`
	Category string `json:"category"`
	Volume   int    `json:"volume"`
}

// Collection status display states used by the laboratory ranking.
const (
	CollectionStatusActive = "Active"
	CollectionStatusIdle   = "Inactive"
	CollectionStatusNever  = "Never Collected"
)

type LaboratoryRankingRow struct {
	LaboratoryID          string     `json:"laboratory_id"`
	Volume                int        `json:"volume"`
	FantasyName           string     `json:"fantasy_name"`
	CNPJ                  string     `json:"cnpj"`
	IsCredentialed        bool       `json:"is_credentialed"`
	RepName               string     `json:"rep_name"`
	RepCleanName          string     `json:"rep_clean_name"`
	Category              string     `json:"category"`
	LastCollection        *time.Time `json:"last_collection,omitempty"`
	LastCollectionDisplay string     `json:"last_collection_display"`
	CollectionStatus      string     `json:"collection_status"`
}

// PerformanceMetrics is the shared measure block of every segmentation
// (representative, category, state, city). Counterparts missing on one
// side of the outer join are zero-filled, and rates resolve divide-by-zero
// to 0 rather than erroring.
type PerformanceMetrics struct {
	ActiveLabs       int     `json:"labs_ativos"`
	TotalCollections int     `json:"total_coletas"`
	TotalLabs        int     `json:"total_labs"`
	CredentialedLabs int     `json:"labs_credenciados"`
	InactiveLabs     int     `json:"labs_inativos"`
	ActivationRate   float64 `json:"taxa_ativacao"`
	Productivity     float64 `json:"produtividade"`
}

type RepresentativePerformance struct {
	RepName  string `json:"rep_name"`
	Category string `json:"category"`
	PerformanceMetrics
}

type CategorySummary struct {
	Category string `json:"category"`
	PerformanceMetrics
}

type StatePerformance struct {
	StateCode string `json:"state_code"`
	StateName string `json:"state_name"`
	PerformanceMetrics
}

type CityPerformance struct {
	StateCode string `json:"state_code"`
	StateName string `json:"state_name"`
	City      string `json:"city"`
	PerformanceMetrics
}

type NewAccreditationRow struct {
	RepName               string    `json:"rep_name"`
	RepCleanName          string    `json:"rep_clean_name"`
	Category              string    `json:"category"`
	FantasyName           string    `json:"fantasy_name"`
	CNPJ                  string    `json:"cnpj"`
	CredentialedAt        time.Time `json:"credentialed_at"`
	CredentialedAtDisplay string    `json:"credentialed_at_display"`
	DaysCredentialed      int       `json:"days_credentialed"`
}

type InactiveLabRow struct {
	LaboratoryID          string `json:"laboratory_id"`
	RepName               string `json:"rep_name"`
	RepCleanName          string `json:"rep_clean_name"`
	Category              string `json:"category"`
	FantasyName           string `json:"fantasy_name"`
	CNPJ                  string `json:"cnpj"`
	LastCollectionDisplay string `json:"last_collection_display"`
	DaysInactive          int    `json:"days_inactive"`
	DaysInactiveDisplay   string `json:"days_inactive_display"`
}

// RepAccreditationOverview is the accreditation block of the
// per-representative drill-down.
type RepAccreditationOverview struct {
	Credentialed      int                   `json:"credentialed"`
	NewlyCredentialed int                   `json:"newly_credentialed"`
	Decredentialed    int                   `json:"decredentialed"`
	NewAccreditations []NewAccreditationRow `json:"new_accreditations"`
}

type RepCollectionStatus struct {
	Active       int                `json:"active"`
	Inactive     int                `json:"inactive"`
	Laboratories []LaboratoryStatus `json:"laboratories"`
}

type RepresentativeOverview struct {
	RepName          string                   `json:"rep_name"`
	Accreditations   RepAccreditationOverview `json:"accreditations"`
	CollectionStatus RepCollectionStatus      `json:"collection_status"`
	Drops            []LabDropRow             `json:"drops"`
}

type DashboardSummary struct {
	SnapshotID       string     `json:"snapshot_id"`
	Year             int        `json:"year"`
	GeneratedAt      time.Time  `json:"generated_at"`
	CredentialedLabs int        `json:"credentialed_labs"`
	ActiveLabs       int        `json:"active_labs"`
	InactiveLabs     int        `json:"inactive_labs"`
	TotalGatherings  int        `json:"total_gatherings"`
	MonthlyKPIs      KPISummary `json:"monthly_kpis"`
}
