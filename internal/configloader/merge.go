package configloader

import (
	"maps"

	"github.com/yaklabco/gomarkup/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Title != "" {
		result.Title = override.Title
	}
	if override.HeadingMaxLength != 0 {
		result.HeadingMaxLength = override.HeadingMaxLength
	}
	if override.OutDir != "" {
		result.OutDir = override.OutDir
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Report != "" {
		result.Report = override.Report
	}

	// Booleans: false is the zero value, so a later source can only switch
	// them on.
	if override.NormalizeUnicode {
		result.NormalizeUnicode = true
	}
	if override.DryRun {
		result.DryRun = true
	}

	result.Rules = mergeToggles(base.Rules, override.Rules)
	result.Filters = mergeToggles(base.Filters, override.Filters)

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.DisableRules != nil {
		result.DisableRules = override.DisableRules
	}
	if override.DisableFilters != nil {
		result.DisableFilters = override.DisableFilters
	}

	return &result
}

// mergeToggles performs a deep merge of rule or filter toggles.
// An override entry only replaces base when it sets Enabled.
func mergeToggles(base, override map[string]config.ToggleConfig) map[string]config.ToggleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.ToggleConfig, len(base)+len(override))
	maps.Copy(result, base)

	for key, val := range override {
		existing, ok := result[key]
		if !ok || val.Enabled != nil {
			result[key] = val
			continue
		}
		result[key] = existing
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
