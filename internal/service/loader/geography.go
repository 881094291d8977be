package loader

import (
	"encoding/json"
	"regexp"

	"github.com/caeptox/labops/internal/pkg/utils"
)

// stateNames maps Brazilian federative-unit codes to full names.
var stateNames = map[string]string{
	"AC": "Acre", "AL": "Alagoas", "AP": "Amapá", "AM": "Amazonas",
	"BA": "Bahia", "CE": "Ceará", "DF": "Distrito Federal", "ES": "Espírito Santo",
	"GO": "Goiás", "MA": "Maranhão", "MT": "Mato Grosso", "MS": "Mato Grosso do Sul",
	"MG": "Minas Gerais", "PA": "Pará", "PB": "Paraíba", "PR": "Paraná",
	"PE": "Pernambuco", "PI": "Piauí", "RJ": "Rio de Janeiro", "RN": "Rio Grande do Norte",
	"RS": "Rio Grande do Sul", "RO": "Rondônia", "RR": "Roraima", "SC": "Santa Catarina",
	"SP": "São Paulo", "SE": "Sergipe", "TO": "Tocantins",
}

type addressState struct {
	Code string `json:"code"`
}

type addressDoc struct {
	State json.RawMessage `json:"state"`
	City  string          `json:"city"`
}

var (
	stateCodeRe = regexp.MustCompile(`'code':\s*'([A-Z]{2})'`)
	cityRe      = regexp.MustCompile(`'city':\s*'([^']+)'`)
)

// extractLocation pulls the state code and city out of a laboratory address
// value. The export usually carries JSON; some rows carry a Python-repr
// string instead, handled by the regex fallback. Unresolvable addresses
// yield empty values, never errors.
func extractLocation(raw string) (stateCode, city string) {
	s := utils.CleanCell(raw)
	if s == "" {
		return "", ""
	}

	var doc addressDoc
	if err := json.Unmarshal([]byte(s), &doc); err == nil {
		city = doc.City
		if len(doc.State) > 0 {
			var nested addressState
			if err := json.Unmarshal(doc.State, &nested); err == nil {
				stateCode = nested.Code
			} else {
				var plain string
				if err := json.Unmarshal(doc.State, &plain); err == nil {
					stateCode = plain
				}
			}
		}
		return stateCode, city
	}

	if m := stateCodeRe.FindStringSubmatch(s); m != nil {
		stateCode = m[1]
	}
	if m := cityRe.FindStringSubmatch(s); m != nil {
		city = m[1]
	}
	return stateCode, city
}

// stateName resolves a federative-unit code to its full name; unknown
// codes resolve to empty, which excludes the row from geography metrics.
func stateName(code string) string {
	return stateNames[code]
}
