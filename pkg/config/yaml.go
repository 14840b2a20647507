package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation used when encoding configs.
const yamlIndent = 2

// ToYAML encodes the file-level fields of c. CLI-only fields are omitted.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a config file. Missing rule and filter maps come back empty,
// not nil.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]ToggleConfig)
	}
	if cfg.Filters == nil {
		cfg.Filters = make(map[string]ToggleConfig)
	}

	return cfg, nil
}

// Clone returns a deep copy of c, CLI-only fields included.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	return &Config{
		Format:           c.Format,
		Title:            c.Title,
		HeadingMaxLength: c.HeadingMaxLength,
		NormalizeUnicode: c.NormalizeUnicode,
		Rules:            cloneToggles(c.Rules),
		Filters:          cloneToggles(c.Filters),
		Extensions:       slices.Clone(c.Extensions),
		Ignore:           slices.Clone(c.Ignore),
		OutDir:           c.OutDir,
		DryRun:           c.DryRun,
		Jobs:             c.Jobs,
		Report:           c.Report,
		DisableRules:     slices.Clone(c.DisableRules),
		DisableFilters:   slices.Clone(c.DisableFilters),
	}
}

// cloneToggles deep copies a toggle map, including the Enabled pointers.
func cloneToggles(toggles map[string]ToggleConfig) map[string]ToggleConfig {
	if toggles == nil {
		return nil
	}
	clone := maps.Clone(toggles)
	for name, toggle := range clone {
		if toggle.Enabled != nil {
			enabled := *toggle.Enabled
			clone[name] = ToggleConfig{Enabled: &enabled}
		}
	}
	return clone
}
