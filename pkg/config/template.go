package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every rule and filter with its documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// ItemInfo describes a rule or filter for template generation.
type ItemInfo struct {
	Name        string
	Description string
	Required    bool
}

// ItemInfoProvider returns the built-in rules and filters, in order.
// This allows decoupling from the rules package to avoid circular imports.
type ItemInfoProvider func() (rules, filters []ItemInfo)

// DefaultItemInfoProvider is set by the rules package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultItemInfoProvider ItemInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Output format: html, tree, term, markdown, or events
format: html

# Document title for formats that carry one
# title: ""

# Longest single line, in characters, classified as a heading
# heading_max_length: 70

# Apply Unicode NFC normalization before parsing
# normalize_unicode: false

# Input file extensions picked up from directories
# extensions:
#   - ".txt"
#   - ".text"

# File patterns to ignore (glob patterns)
# ignore:
#   - "drafts/**"

# Output directory (default: next to each input file)
# out_dir: ""

# Rule and filter toggles
# rules:
#   title:
#     enabled: false
# filters:
#   mail:
#     enabled: false
`)

	return buf.Bytes()
}

// generateFullTemplate creates a full template with every rule and filter.
func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# gomarkup configuration - Full Template
# See: https://github.com/yaklabco/gomarkup
#
# This template lists every built-in rule and filter with its defaults.

format: html
title: ""
heading_max_length: 70
normalize_unicode: false
extensions:
  - ".txt"
  - ".text"
ignore: []
out_dir: ""
`)

	rules, filters := itemInfos()

	buf.WriteString("\n# Rules, in precedence order\nrules:\n")
	writeItems(&buf, rules)

	buf.WriteString("\n# Inline filters, in application order\nfilters:\n")
	writeItems(&buf, filters)

	return buf.Bytes()
}

func writeItems(buf *bytes.Buffer, items []ItemInfo) {
	for _, item := range items {
		fmt.Fprintf(buf, "\n  # %s\n", wrapComment(item.Description, commentWrapWidth))
		if item.Required {
			buf.WriteString("  # Required: cannot be disabled\n")
		}
		fmt.Fprintf(buf, "  %s:\n", item.Name)
		buf.WriteString("    enabled: true\n")
	}
}

// itemInfos returns information about all built-in rules and filters.
func itemInfos() (rules, filters []ItemInfo) {
	if DefaultItemInfoProvider != nil {
		return DefaultItemInfoProvider()
	}
	return nil, nil
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	cfg := map[string]any{
		"format":             string(FormatHTML),
		"title":              "",
		"heading_max_length": DefaultHeadingMaxLength,
		"normalize_unicode":  false,
		"extensions":         DefaultExtensions(),
		"ignore":             []string{},
		"out_dir":            "",
	}

	rules, filters := itemInfos()
	cfg["rules"] = toggleMap(rules)
	cfg["filters"] = toggleMap(filters)

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

func toggleMap(items []ItemInfo) map[string]any {
	result := make(map[string]any, len(items))
	for _, item := range items {
		result[item.Name] = map[string]any{"enabled": true}
	}
	return result
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomarkup configuration
# See: https://github.com/yaklabco/gomarkup`
}
