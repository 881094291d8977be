package loader

import (
	"strings"
	"testing"
	"time"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestParseTimestampConvertsToCivilTimezone(t *testing.T) {
	loc := saoPaulo(t)

	ts := parseTimestamp("2025-06-10 12:00:00", loc)
	if ts.IsZero() {
		t.Fatalf("timestamp not parsed")
	}
	// exports carry UTC wall time; São Paulo is UTC-3
	if ts.Hour() != 9 {
		t.Fatalf("hour = %d, want 9", ts.Hour())
	}

	if !parseTimestamp("not a date", loc).IsZero() {
		t.Fatalf("malformed value must yield the zero time")
	}
	if !parseTimestamp("nan", loc).IsZero() {
		t.Fatalf("literal nan must yield the zero time")
	}
}

func TestParseRepresentatives(t *testing.T) {
	csvData := strings.Join([]string{
		"_id,name,createdAt",
		"ObjectId('5aa61aeeef23e80010b10000'),INT-Ana,2025-01-10 08:00:00",
		",Sem ID,2025-01-10 08:00:00",
	}, "\n")

	reps, err := parseRepresentatives(strings.NewReader(csvData), time.UTC)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(reps) != 1 {
		t.Fatalf("reps = %+v, id-less row must be dropped", reps)
	}
	if reps[0].ID != "5aa61aeeef23e80010b10000" || reps[0].Name != "INT-Ana" {
		t.Fatalf("rep = %+v", reps[0])
	}
}

func TestParseLaboratoriesOptionalColumns(t *testing.T) {
	csvData := strings.Join([]string{
		"_id,fantasyName,active",
		"5aa61aeeef23e80010b10001,Lab Um,true",
		"5aa61aeeef23e80010b10002,Lab Dois,false",
	}, "\n")

	labs, hasAddress, err := parseLaboratories(strings.NewReader(csvData), time.UTC)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if hasAddress {
		t.Fatalf("no address column, hasAddress must be false")
	}
	if len(labs) != 2 || labs[0].Approved || labs[0].ExclusionDate != nil {
		t.Fatalf("labs = %+v, optional columns must default", labs)
	}
	if !labs[0].Active || labs[1].Active {
		t.Fatalf("active flags = %v/%v", labs[0].Active, labs[1].Active)
	}
}

func TestParseGatheringsFlagDefaults(t *testing.T) {
	csvData := strings.Join([]string{
		"_id,_laboratory,createdAt",
		"5aa61aeeef23e80010b10003,5aa61aeeef23e80010b10001,2025-02-01 10:00:00",
	}, "\n")

	gs, err := parseGatherings(strings.NewReader(csvData), time.UTC)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	g := gs[0]
	if !g.Active || g.Test || g.DisabledInReport {
		t.Fatalf("flags = %+v, want active=true test=false disabled=false", g)
	}
}

func TestParseLaboratoriesRequiredColumns(t *testing.T) {
	csvData := "fantasyName,active\nLab Um,true"
	if _, _, err := parseLaboratories(strings.NewReader(csvData), time.UTC); err == nil {
		t.Fatalf("missing _id column must fail")
	}
}
