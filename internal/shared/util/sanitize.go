package util

import "strings"

const fallbackSegment = "resume"

// SanitizeKeySegment turns free text into a single storage key segment.
// ASCII letters, digits, '.', '-' and '_' are kept; everything else becomes '_'.
func SanitizeKeySegment(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	s := strings.Trim(b.String(), ".")
	if strings.Trim(s, "_") == "" {
		return fallbackSegment
	}
	return s
}
