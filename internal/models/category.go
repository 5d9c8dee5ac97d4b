// ABOUTME: Stroke categories accepted by the CLI for swimmers.
// ABOUTME: The roster itself stores any category text.
package models

import "strings"

// Categories lists the recognised stroke categories.
var Categories = []string{"Freestyle", "Backstroke", "Breaststroke", "Butterfly", "Medley"}

// IsValidCategory reports whether s names a known category, ignoring case.
func IsValidCategory(s string) bool {
	for _, c := range Categories {
		if strings.EqualFold(c, s) {
			return true
		}
	}
	return false
}

// NormalizeCategory returns the canonical spelling of a known category,
// or s unchanged.
func NormalizeCategory(s string) string {
	for _, c := range Categories {
		if strings.EqualFold(c, strings.TrimSpace(s)) {
			return c
		}
	}
	return s
}
