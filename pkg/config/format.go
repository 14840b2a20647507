package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned when a format name is not recognized.
var ErrUnknownFormat = errors.New("unknown format")

// ParseOutputFormat converts a case-insensitive name into an OutputFormat.
// "md" and "ansi" are accepted as aliases.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case "md":
		return FormatMarkdown, nil
	case "ansi", "terminal":
		return FormatTerm, nil
	default:
		if f.IsValid() {
			return f, nil
		}
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// ParseReportFormat converts a case-insensitive name into a ReportFormat.
func ParseReportFormat(name string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case ReportText, ReportJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}
