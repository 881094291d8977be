package analytics

import (
	"strings"

	"github.com/caeptox/labops/internal/domain"
)

// Prefix contract shared with the pre-existing BI categorization: a
// representative whose upper-cased name starts with any of these is
// Internal. The list is a hard contract, not a heuristic; keep it in sync
// with the external reports.
var internalPrefixes = []string{
	"INT-",
	"INT -",
	"CAEPTOX - ",
	"CAEPTOX-",
	"CAEPTOX – ", // en dash
	"CAEPTOX–",
	"TLMK - ",
	"TLMK",
	"TMLK - ",
}

// Organizational prefixes stripped from display names, in match order.
var displayPrefixes = []string{
	"EXT-", "EXT -", "INT-", "INT -",
	"CAEPTOX - ", "CAEPTOX-", "CAEPTOX – ", "CAEPTOX–",
	"TLMK - ", "TLMK", "TMLK - ",
	"CAEPTOX -", "CAEPTOX –",
}

// CategorizeRepresentative classifies a raw representative name as
// Internal or External from its prefix.
func CategorizeRepresentative(name string) string {
	upper := strings.ToUpper(name)
	for _, p := range internalPrefixes {
		if strings.HasPrefix(upper, p) {
			return domain.CategoryInternal
		}
	}
	return domain.CategoryExternal
}

// CleanRepresentativeName strips the first matching organizational prefix
// (case-insensitive) from a raw representative name. An empty input maps to
// the no-representative placeholder; a name that becomes empty after
// stripping falls back to the raw value.
func CleanRepresentativeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return domain.PlaceholderNoRepresentative
	}

	upper := strings.ToUpper(trimmed)
	for _, p := range displayPrefixes {
		if strings.HasPrefix(upper, strings.ToUpper(p)) {
			stripped := strings.TrimSpace(trimmed[len(p):])
			if stripped == "" {
				return name
			}
			return stripped
		}
	}

	return trimmed
}

// EnrichRepresentatives computes the append-only derived columns (category,
// cleaned display name) once at load time.
func EnrichRepresentatives(reps []domain.Representative) []domain.Representative {
	out := make([]domain.Representative, len(reps))
	for i, r := range reps {
		r.Category = CategorizeRepresentative(r.Name)
		r.CleanName = CleanRepresentativeName(r.Name)
		out[i] = r
	}
	return out
}

// EnrichLaboratories joins representative attributes onto each laboratory.
// A missing or unresolvable representative reference yields placeholder
// display values; rows are never dropped.
func EnrichLaboratories(reps []domain.Representative, labs []domain.Laboratory) []domain.Laboratory {
	byID := make(map[string]domain.Representative, len(reps))
	for _, r := range reps {
		byID[r.ID] = r
	}

	out := make([]domain.Laboratory, len(labs))
	for i, lab := range labs {
		if rep, ok := byID[lab.RepresentativeID]; ok && lab.RepresentativeID != "" {
			lab.RepName = rep.Name
			lab.RepCleanName = rep.CleanName
			lab.Category = rep.Category
		} else {
			lab.RepName = domain.PlaceholderNoRepresentative
			lab.RepCleanName = domain.PlaceholderNoRepresentative
			lab.Category = domain.CategoryExternal
		}
		out[i] = lab
	}
	return out
}

// MergeGatheringsWithLabs joins laboratory attributes (display name, flags,
// representative, geography) onto each gathering. Gatherings referencing an
// unknown laboratory keep placeholder representative values.
func MergeGatheringsWithLabs(gatherings []domain.Gathering, labs []domain.Laboratory) []domain.Gathering {
	byID := make(map[string]domain.Laboratory, len(labs))
	for _, lab := range labs {
		byID[lab.ID] = lab
	}

	out := make([]domain.Gathering, len(gatherings))
	for i, g := range gatherings {
		if lab, ok := byID[g.LaboratoryID]; ok {
			g.FantasyName = lab.FantasyName
			g.CNPJ = lab.CNPJ
			g.LabActive = lab.Active
			g.LabApproved = lab.Approved
			g.LabExclusionDate = lab.ExclusionDate
			g.RepName = lab.RepName
			g.RepCleanName = lab.RepCleanName
			g.Category = lab.Category
			g.StateCode = lab.StateCode
			g.StateName = lab.StateName
			g.City = lab.City
		} else {
			g.RepName = domain.PlaceholderNoRepresentative
			g.RepCleanName = domain.PlaceholderNoRepresentative
			g.Category = domain.CategoryExternal
		}
		out[i] = g
	}
	return out
}
