// Package config defines core configuration types for gomarkup.
// These types are pure data structures with no dependency on how they are loaded.
package config

import "slices"

// OutputFormat specifies the renderer used for converted documents.
type OutputFormat string

const (
	FormatHTML     OutputFormat = "html"
	FormatTree     OutputFormat = "tree"
	FormatTerm     OutputFormat = "term"
	FormatMarkdown OutputFormat = "markdown"
	FormatEvents   OutputFormat = "events"
)

// OutputFormats returns every known output format.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatHTML, FormatTree, FormatTerm, FormatMarkdown, FormatEvents}
}

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	return slices.Contains(OutputFormats(), f)
}

// Extension returns the file extension used for output files of this format.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatHTML, FormatTree:
		return ".html"
	case FormatMarkdown:
		return ".md"
	case FormatEvents:
		return ".json"
	case FormatTerm:
		return ".ansi"
	default:
		return ".out"
	}
}

// ReportFormat specifies how batch run results are reported.
type ReportFormat string

const (
	ReportText ReportFormat = "text"
	ReportJSON ReportFormat = "json"
)

// ToggleConfig enables or disables a named rule or filter.
// A nil Enabled keeps the built-in default (enabled).
type ToggleConfig struct {
	Enabled *bool `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultHeadingMaxLength is the default longest heading, in runes.
const DefaultHeadingMaxLength = 70

// Config is the root configuration structure for gomarkup.
type Config struct {
	// Format selects the output renderer.
	Format OutputFormat `mapstructure:"format" yaml:"format"`

	// Title is the document title written by renderers that have one.
	Title string `mapstructure:"title" yaml:"title"`

	// HeadingMaxLength is the longest single line classified as a heading.
	HeadingMaxLength int `mapstructure:"heading_max_length" yaml:"heading_max_length"`

	// NormalizeUnicode applies NFC normalization to input before parsing.
	NormalizeUnicode bool `mapstructure:"normalize_unicode" yaml:"normalize_unicode"`

	// Rules enables or disables built-in rules by name.
	Rules map[string]ToggleConfig `mapstructure:"rules" yaml:"rules"`

	// Filters enables or disables built-in inline filters by name.
	Filters map[string]ToggleConfig `mapstructure:"filters" yaml:"filters"`

	// Extensions lists the input file extensions picked up from directories.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// OutDir is where converted files are written. Empty means next to the input.
	OutDir string `mapstructure:"out_dir" yaml:"out_dir"`

	// CLI-level options (not persisted to config files).

	// DryRun converts without writing output files.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// Report selects the run report format.
	Report ReportFormat `mapstructure:"-" yaml:"-"`

	// DisableRules contains rule names to disable for this run.
	DisableRules []string `mapstructure:"-" yaml:"-"`

	// DisableFilters contains filter names to disable for this run.
	DisableFilters []string `mapstructure:"-" yaml:"-"`
}

// DefaultExtensions returns the default input file extensions.
func DefaultExtensions() []string {
	return []string{".txt", ".text"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format:           FormatHTML,
		Title:            "",
		HeadingMaxLength: DefaultHeadingMaxLength,
		Rules:            make(map[string]ToggleConfig),
		Filters:          make(map[string]ToggleConfig),
		Extensions:       DefaultExtensions(),
		Report:           ReportText,
		Jobs:             0, // 0 means use NumCPU
	}
}

// RuleEnabled reports whether the named rule should run.
func (c *Config) RuleEnabled(name string) bool {
	if c == nil {
		return true
	}
	if slices.Contains(c.DisableRules, name) {
		return false
	}
	return toggleEnabled(c.Rules, name)
}

// FilterEnabled reports whether the named filter should run.
func (c *Config) FilterEnabled(name string) bool {
	if c == nil {
		return true
	}
	if slices.Contains(c.DisableFilters, name) {
		return false
	}
	return toggleEnabled(c.Filters, name)
}

// EffectiveExtensions returns Extensions or the defaults if empty.
func (c *Config) EffectiveExtensions() []string {
	if c == nil || len(c.Extensions) == 0 {
		return DefaultExtensions()
	}
	return c.Extensions
}

func toggleEnabled(toggles map[string]ToggleConfig, name string) bool {
	toggle, ok := toggles[name]
	if !ok || toggle.Enabled == nil {
		return true
	}
	return *toggle.Enabled
}
