// ABOUTME: Shared output helpers for CLI commands.
// ABOUTME: Colored status lines, text truncation and padding.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/swim/internal/models"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

func success(w io.Writer, format string, a ...interface{}) {
	green.Fprintf(w, "✓ "+format+"\n", a...)
}

func warn(w io.Writer, format string, a ...interface{}) {
	yellow.Fprintf(w, format+"\n", a...)
}

func failure(w io.Writer, format string, a ...interface{}) {
	red.Fprintf(w, "✗ "+format+"\n", a...)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// validateCategory accepts a known category in any case and returns its
// canonical spelling.
func validateCategory(category string) (string, error) {
	if !models.IsValidCategory(category) {
		return "", fmt.Errorf("unknown category: %s\nValid categories: %s",
			category, strings.Join(models.Categories, ", "))
	}
	return models.NormalizeCategory(category), nil
}
