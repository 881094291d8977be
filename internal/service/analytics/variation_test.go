package analytics

import (
	"testing"

	"github.com/caeptox/labops/internal/domain"
)

func TestComputeVariations(t *testing.T) {
	monthly := []domain.VolumeRow{
		{Period: "2025-01", Category: domain.CategoryInternal, Volume: 60},
		{Period: "2025-01", Category: domain.CategoryExternal, Volume: 40},
		{Period: "2025-02", Category: domain.CategoryInternal, Volume: 60},
		{Period: "2025-03", Category: domain.CategoryInternal, Volume: 57},
	}

	rows := ComputeVariations(monthly)
	if len(rows) != 3 {
		t.Fatalf("rows = %d: %+v", len(rows), rows)
	}

	first := rows[0]
	if first.Variation != 0 || first.IsDrop {
		t.Fatalf("first period = %+v, want variation 0 and no flag", first)
	}

	// 100 -> 60 is a 40% drop, past the moderate threshold
	feb := rows[1]
	if feb.Volume != 60 || feb.PreviousVolume != 100 || feb.Variation != -40 || !feb.IsDrop {
		t.Fatalf("feb = %+v", feb)
	}

	// 60 -> 57 is -5%, inside tolerance
	mar := rows[2]
	if mar.Variation != -5 || mar.IsDrop {
		t.Fatalf("mar = %+v", mar)
	}
}

func TestComputeVariationsThresholdUnrounded(t *testing.T) {
	// -10.004% displays as -10.0 but must still flag
	rows := ComputeVariations([]domain.VolumeRow{
		{Period: "2025-01", Volume: 100000},
		{Period: "2025-02", Volume: 89996},
	})
	feb := rows[1]
	if !feb.IsDrop {
		t.Fatalf("feb = %+v, sub-threshold variation must flag before rounding", feb)
	}
	if feb.Variation != -10 {
		t.Fatalf("display variation = %v, want -10", feb.Variation)
	}

	// exactly -10% is not a drop
	rows = ComputeVariations([]domain.VolumeRow{
		{Period: "2025-01", Volume: 100},
		{Period: "2025-02", Volume: 90},
	})
	if rows[1].IsDrop {
		t.Fatalf("boundary row = %+v, threshold is strict", rows[1])
	}
}

func TestComputeVariationsZeroPrevious(t *testing.T) {
	rows := ComputeVariations([]domain.VolumeRow{
		{Period: "2025-01", Volume: 0},
		{Period: "2025-02", Volume: 50},
	})
	if rows[1].Variation != 0 || rows[1].IsDrop {
		t.Fatalf("zero-previous row = %+v, want variation 0 and no flag", rows[1])
	}
}

func labGatherings(t *testing.T, labID, rep string, perMonth map[string]int) []domain.Gathering {
	t.Helper()
	out := make([]domain.Gathering, 0)
	for month, n := range perMonth {
		ts := mustTime(t, month+"-15T10:00:00Z")
		for i := 0; i < n; i++ {
			out = append(out, domain.Gathering{
				LaboratoryID: labID,
				RepCleanName: rep,
				FantasyName:  "Lab " + labID,
				CNPJ:         "00000000000191",
				Active:       true,
				CreatedAt:    ts,
			})
		}
	}
	return out
}

func TestDetectLabDrops(t *testing.T) {
	gs := labGatherings(t, "l1", "Ana", map[string]int{"2025-01": 100, "2025-02": 60})
	gs = append(gs, labGatherings(t, "l2", "Ana", map[string]int{"2025-01": 100, "2025-02": 80})...)
	gs = append(gs, labGatherings(t, "l3", "Bia", map[string]int{"2025-01": 100, "2025-02": 10})...)

	drops := DetectLabDrops(gs, "Ana", "")
	if len(drops) != 1 {
		t.Fatalf("drops = %+v, want only the severe l1 drop", drops)
	}
	d := drops[0]
	if d.LaboratoryID != "l1" || d.Period != "2025-02" || d.Variation != -40 {
		t.Fatalf("drop = %+v", d)
	}
	if d.LabLabel != "Lab l1 (00000000000191)" {
		t.Fatalf("label = %q", d.LabLabel)
	}
}

func TestDetectLabDropsTargetPeriodAfterVariation(t *testing.T) {
	gs := labGatherings(t, "l1", "Ana", map[string]int{
		"2025-01": 100,
		"2025-02": 50,
		"2025-03": 20,
	})

	all := DetectLabDrops(gs, "Ana", "")
	if len(all) != 2 {
		t.Fatalf("unfiltered drops = %+v", all)
	}

	// filtering to March must still compare against February's volume
	mar := DetectLabDrops(gs, "Ana", "2025-03")
	if len(mar) != 1 || mar[0].Period != "2025-03" || mar[0].PreviousVolume != 50 || mar[0].Variation != -60 {
		t.Fatalf("march drops = %+v", mar)
	}
}

func TestDetectLabDropsThresholdUnrounded(t *testing.T) {
	// exactly -30% does not qualify as severe
	gs := labGatherings(t, "l1", "Ana", map[string]int{"2025-01": 10, "2025-02": 7})
	if drops := DetectLabDrops(gs, "Ana", ""); len(drops) != 0 {
		t.Fatalf("drops = %+v, threshold is strict", drops)
	}

	// -30.004% displays as -30.0 but must still qualify
	gs = labGatherings(t, "l1", "Ana", map[string]int{"2025-01": 25000, "2025-02": 17499})
	drops := DetectLabDrops(gs, "Ana", "")
	if len(drops) != 1 {
		t.Fatalf("drops = %+v, sub-threshold variation must flag before rounding", drops)
	}
	if drops[0].Variation != -30 {
		t.Fatalf("display variation = %v, want -30", drops[0].Variation)
	}
}

func TestDetectLabDropsUnknownRepresentative(t *testing.T) {
	gs := labGatherings(t, "l1", "Ana", map[string]int{"2025-01": 10})
	if drops := DetectLabDrops(gs, "Nobody", ""); len(drops) != 0 {
		t.Fatalf("drops for unknown rep = %+v", drops)
	}
}
