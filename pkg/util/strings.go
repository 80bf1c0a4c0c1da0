package util

import "strings"

// OrPlaceholder returns s, or placeholder when s is blank.
func OrPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
