package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/caeptox/labops/internal/domain"
	"github.com/caeptox/labops/internal/pkg/utils"
)

// rawTables is the boundary output before enrichment: typed rows plus the
// capability facts needed to build the dataset descriptor.
type rawTables struct {
	reps       []domain.Representative
	labs       []domain.Laboratory
	gatherings []domain.Gathering

	// address column present on the laboratory table
	hasAddress bool
}

// timestamp layouts seen across the exports; values are read as UTC and
// converted to the configured civil timezone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp returns the zero time for malformed values; such rows are
// retained but excluded from time-based aggregations.
func parseTimestamp(raw string, loc *time.Location) time.Time {
	s := utils.CleanCell(raw)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts.In(loc)
		}
	}
	return time.Time{}
}

func parseBool(raw string, def bool) bool {
	switch strings.ToLower(utils.CleanCell(raw)) {
	case "true", "t", "1", "yes":
		return true
	case "false", "f", "0", "no":
		return false
	default:
		return def
	}
}

// header gives case-sensitive column lookup with optional-column support.
type header map[string]int

func (h header) get(record []string, col string) (string, bool) {
	idx, ok := h[col]
	if !ok || idx >= len(record) {
		return "", false
	}
	return record[idx], true
}

func (h header) val(record []string, col string) string {
	v, _ := h.get(record, col)
	return v
}

func (h header) has(col string) bool {
	_, ok := h[col]
	return ok
}

func readTable(r io.Reader) (header, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("csv.ReadAll: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty csv: missing header row")
	}

	h := make(header, len(records[0]))
	for i, col := range records[0] {
		h[strings.TrimSpace(col)] = i
	}
	return h, records[1:], nil
}

func parseRepresentatives(r io.Reader, loc *time.Location) ([]domain.Representative, error) {
	h, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if !h.has("_id") || !h.has("name") {
		return nil, fmt.Errorf("representatives csv: required columns _id, name")
	}

	reps := make([]domain.Representative, 0, len(rows))
	for _, rec := range rows {
		id := utils.NormalizeObjectID(h.val(rec, "_id"))
		if id == "" {
			continue
		}
		reps = append(reps, domain.Representative{
			ID:        id,
			Name:      utils.CleanCell(h.val(rec, "name")),
			CreatedAt: parseTimestamp(h.val(rec, "createdAt"), loc),
		})
	}
	return reps, nil
}

func parseLaboratories(r io.Reader, loc *time.Location) ([]domain.Laboratory, bool, error) {
	h, rows, err := readTable(r)
	if err != nil {
		return nil, false, err
	}
	if !h.has("_id") || !h.has("fantasyName") || !h.has("active") {
		return nil, false, fmt.Errorf("laboratories csv: required columns _id, fantasyName, active")
	}

	labs := make([]domain.Laboratory, 0, len(rows))
	for _, rec := range rows {
		id := utils.NormalizeObjectID(h.val(rec, "_id"))
		if id == "" {
			continue
		}

		lab := domain.Laboratory{
			ID:               id,
			FantasyName:      utils.CleanCell(h.val(rec, "fantasyName")),
			CNPJ:             utils.NormalizeCNPJ(h.val(rec, "cnpj")),
			Active:           parseBool(h.val(rec, "active"), false),
			Approved:         parseBool(h.val(rec, "approved"), false),
			RepresentativeID: utils.NormalizeObjectID(h.val(rec, "_representative")),
			Address:          h.val(rec, "address"),
			CreatedAt:        parseTimestamp(h.val(rec, "createdAt"), loc),
		}
		if excl := parseTimestamp(h.val(rec, "exclusionDate"), loc); !excl.IsZero() {
			lab.ExclusionDate = &excl
		}
		labs = append(labs, lab)
	}
	return labs, h.has("address"), nil
}

func parseGatherings(r io.Reader, loc *time.Location) ([]domain.Gathering, error) {
	h, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if !h.has("_laboratory") || !h.has("createdAt") {
		return nil, fmt.Errorf("gatherings csv: required columns _laboratory, createdAt")
	}

	gatherings := make([]domain.Gathering, 0, len(rows))
	for _, rec := range rows {
		gatherings = append(gatherings, domain.Gathering{
			ID:           utils.NormalizeObjectID(h.val(rec, "_id")),
			LaboratoryID: utils.NormalizeObjectID(h.val(rec, "_laboratory")),
			CreatedAt:    parseTimestamp(h.val(rec, "createdAt"), loc),
			// flags default active=true, test=false, disabled=false when absent
			Active:           parseBool(h.val(rec, "active"), true),
			Test:             parseBool(h.val(rec, "test"), false),
			DisabledInReport: parseBool(h.val(rec, "disabledInReport"), false),
		})
	}
	return gatherings, nil
}
