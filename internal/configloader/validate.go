package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/markup/rules"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.paragraph.enabled").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rule names).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			"invalid format %q; must be one of: %s", cfg.Format, formatList())
	}

	if cfg.Report != "" {
		if _, err := config.ParseReportFormat(string(cfg.Report)); err != nil {
			result.addError("report", cfg.Report, "invalid report format %q; must be one of: text, json", cfg.Report)
		}
	}

	if cfg.HeadingMaxLength < 0 {
		result.addError("heading_max_length", cfg.HeadingMaxLength, "heading_max_length must be >= 0 (0 means default)")
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.addError(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}

	validateRules(cfg, result)
	validateFilters(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateRules checks rule toggles and disabled rule names.
func validateRules(cfg *config.Config, result *ValidationResult) {
	known := rules.DefaultOrder()

	for _, name := range sortedKeys(cfg.Rules) {
		toggle := cfg.Rules[name]
		if !slices.Contains(known, name) {
			result.addWarning("rules."+name, name, "unknown rule %q; it will be ignored", name)
			continue
		}
		if rules.IsRequired(name) && toggle.Enabled != nil && !*toggle.Enabled {
			result.addError("rules."+name+".enabled", false, "rule %q cannot be disabled", name)
		}
	}

	for _, name := range cfg.DisableRules {
		switch {
		case !slices.Contains(known, name):
			result.addWarning("disable_rules", name, "unknown rule %q; it will be ignored", name)
		case rules.IsRequired(name):
			result.addError("disable_rules", name, "rule %q cannot be disabled", name)
		}
	}
}

// validateFilters checks filter toggles and disabled filter names.
func validateFilters(cfg *config.Config, result *ValidationResult) {
	known := rules.FilterNames()

	for _, name := range sortedKeys(cfg.Filters) {
		if !slices.Contains(known, name) {
			result.addWarning("filters."+name, name, "unknown filter %q; it will be ignored", name)
		}
	}
	for _, name := range cfg.DisableFilters {
		if !slices.Contains(known, name) {
			result.addWarning("disable_filters", name, "unknown filter %q; it will be ignored", name)
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid doublestar globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

func formatList() string {
	names := make([]string, 0, len(config.OutputFormats()))
	for _, f := range config.OutputFormats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func sortedKeys(m map[string]config.ToggleConfig) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
