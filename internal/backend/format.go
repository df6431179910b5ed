package backend

import (
	"strings"
)

// FormatSelector builds the backend's format-selection string from an
// ordered list of preferred format identifiers. Identifiers are tried in
// order; a non-empty fallback is appended as a last resort.
func FormatSelector(formatIDs []string, fallback string) string {
	ids := make([]string, 0, len(formatIDs)+1)
	for _, id := range formatIDs {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	if fallback != "" {
		ids = append(ids, fallback)
	}
	return strings.Join(ids, "/")
}
