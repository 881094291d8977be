package utils

import (
	"regexp"
	"strings"
)

var (
	nonDigitRe  = regexp.MustCompile(`[^\d]`)
	objectIDRe  = regexp.MustCompile(`[a-fA-F0-9]{24}`)
	literalNaNs = map[string]struct{}{"nan": {}, "NaN": {}, "null": {}, "None": {}}
)

// NormalizeCNPJ strips non-digits and left-pads to the fixed 14-digit
// Brazilian tax-id format. Empty input stays empty.
func NormalizeCNPJ(raw string) string {
	if CleanCell(raw) == "" {
		return ""
	}

	digits := nonDigitRe.ReplaceAllString(raw, "")
	if digits == "" {
		return ""
	}
	if len(digits) >= 14 {
		return digits
	}

	return strings.Repeat("0", 14-len(digits)) + digits
}

// NormalizeObjectID extracts the 24-hex identifier from whatever wrapper
// format the export used (plain, ObjectId(...), quoted). Falls back to the
// trimmed input when no hex id is present.
func NormalizeObjectID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if m := objectIDRe.FindString(s); m != "" {
		return m
	}
	return s
}

// CleanCell trims a raw CSV cell and maps literal null spellings to empty.
func CleanCell(raw string) string {
	s := strings.TrimSpace(raw)
	if _, ok := literalNaNs[s]; ok {
		return ""
	}
	return s
}
