package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gomarkup/pkg/config"
)

// envVarPrefix is the prefix for all gomarkup environment variables.
const envVarPrefix = "GOMARKUP_"

// envBinding ties one environment variable to the config field it sets.
type envBinding struct {
	suffix      string
	field       string
	description string
	apply       func(cfg *config.Config, value string) error
}

// envBindings are checked in order, so the first bad variable is the one reported.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envBindings = []envBinding{
	{"FORMAT", "format", "Output format: html, tree, term, markdown, or events",
		func(cfg *config.Config, v string) (err error) {
			cfg.Format, err = config.ParseOutputFormat(v)
			return err
		}},
	{"TITLE", "title", "Document title for formats that have one",
		func(cfg *config.Config, v string) error { cfg.Title = v; return nil }},
	{"OUT_DIR", "out_dir", "Directory for converted files",
		func(cfg *config.Config, v string) error { cfg.OutDir = v; return nil }},
	{"REPORT", "report", "Run report format: text or json",
		func(cfg *config.Config, v string) (err error) {
			cfg.Report, err = config.ParseReportFormat(v)
			return err
		}},
	{"HEADING_MAX_LENGTH", "heading_max_length", "Longest single line treated as a heading",
		intSetter(func(cfg *config.Config, n int) { cfg.HeadingMaxLength = n })},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		intSetter(func(cfg *config.Config, n int) { cfg.Jobs = n })},
	{"NORMALIZE_UNICODE", "normalize_unicode", "Apply NFC normalization: true or false",
		boolSetter(func(cfg *config.Config, b bool) { cfg.NormalizeUnicode = b })},
	{"DRY_RUN", "dry_run", "Convert without writing: true or false",
		boolSetter(func(cfg *config.Config, b bool) { cfg.DryRun = b })},
	{"IGNORE", "ignore", "Comma-separated list of ignore globs",
		listSetter(func(cfg *config.Config, l []string) { cfg.Ignore = l })},
	{"EXTENSIONS", "extensions", "Comma-separated list of input extensions",
		listSetter(func(cfg *config.Config, l []string) { cfg.Extensions = l })},
	{"DISABLE_RULES", "disable_rules", "Comma-separated list of rules to disable",
		listSetter(func(cfg *config.Config, l []string) { cfg.DisableRules = l })},
	{"DISABLE_FILTERS", "disable_filters", "Comma-separated list of filters to disable",
		listSetter(func(cfg *config.Config, l []string) { cfg.DisableFilters = l })},
}

func intSetter(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("expected an integer, got %q", v)
		}
		set(cfg, n)
		return nil
	}
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("expected true/false/1/0, got %q", v)
		}
		set(cfg, b)
		return nil
	}
}

func listSetter(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		set(cfg, splitList(v))
		return nil
	}
}

// LoadFromEnv applies GOMARKUP_* environment variables to cfg.
// Unset and empty variables are skipped.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, binding := range envBindings {
		name := envVarPrefix + binding.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := binding.apply(cfg, value); err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank elements.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GetEnvVarName returns the environment variable that sets a config field,
// or "" when the field has none.
func GetEnvVarName(field string) string {
	for _, binding := range envBindings {
		if binding.field == field {
			return envVarPrefix + binding.suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envBindings))
	for _, binding := range envBindings {
		vars[envVarPrefix+binding.suffix] = binding.description
	}
	return vars
}
