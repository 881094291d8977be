package loader

import "testing"

func TestExtractLocation(t *testing.T) {
	cases := []struct {
		raw       string
		wantState string
		wantCity  string
	}{
		{`{"state": {"code": "SP"}, "city": "Campinas"}`, "SP", "Campinas"},
		{`{"state": "MG", "city": "Uberlândia"}`, "MG", "Uberlândia"},
		// Python-repr rows fall back to the regex path
		{`{'state': {'code': 'RJ', 'name': 'Rio de Janeiro'}, 'city': 'Niterói'}`, "RJ", "Niterói"},
		{"", "", ""},
		{"nan", "", ""},
		{"not an address", "", ""},
	}
	for _, c := range cases {
		state, city := extractLocation(c.raw)
		if state != c.wantState || city != c.wantCity {
			t.Fatalf("extractLocation(%q) = (%q, %q), want (%q, %q)", c.raw, state, city, c.wantState, c.wantCity)
		}
	}
}

func TestStateName(t *testing.T) {
	if got := stateName("SP"); got != "São Paulo" {
		t.Fatalf("SP = %q", got)
	}
	if got := stateName("XX"); got != "" {
		t.Fatalf("unknown code = %q, want empty", got)
	}
}
