package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize strips leading/trailing whitespace and collapses interior
// whitespace runs to single spaces. A whitespace-only input becomes "".
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeName prepares a requester display name for validation and storage.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}
