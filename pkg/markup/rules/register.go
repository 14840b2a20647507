package rules

import (
	"fmt"
	"slices"

	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/markup"
)

// Built-in rule names.
const (
	RuleList      = "list"
	RuleListItem  = "listitem"
	RuleTitle     = "title"
	RuleTable     = "table"
	RuleTableRow  = "tablerow"
	RuleHeading   = "heading"
	RuleParagraph = "paragraph"
)

// defaultOrder is the production precedence of the built-in rules.
//
//nolint:gochecknoglobals // Precedence is data, read through DefaultOrder.
var defaultOrder = []string{
	RuleList,
	RuleListItem,
	RuleTitle,
	RuleTable,
	RuleTableRow,
	RuleHeading,
	RuleParagraph,
}

// DefaultOrder returns the built-in rule names in precedence order.
func DefaultOrder() []string {
	return slices.Clone(defaultOrder)
}

// IsRequired reports whether a rule cannot be disabled.
// Paragraph is the fallback every block must be able to reach.
func IsRequired(name string) bool {
	return name == RuleParagraph
}

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *markup.Registry) {
	// Containers
	registry.Register(RuleList, func(o markup.RuleOptions) markup.Rule { return NewListRule(o) })
	registry.Register(RuleTable, func(o markup.RuleOptions) markup.Rule { return NewTableRule(o) })

	// Leaves
	registry.Register(RuleListItem, func(o markup.RuleOptions) markup.Rule { return NewListItemRule(o) })
	registry.Register(RuleTableRow, func(o markup.RuleOptions) markup.Rule { return NewTableRowRule(o) })
	registry.Register(RuleTitle, func(o markup.RuleOptions) markup.Rule { return NewTitleRule(o) })
	registry.Register(RuleHeading, func(o markup.RuleOptions) markup.Rule { return NewHeadingRule(o) })
	registry.Register(RuleParagraph, func(o markup.RuleOptions) markup.Rule { return NewParagraphRule(o) })
}

//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(markup.DefaultRegistry)
	config.DefaultItemInfoProvider = ItemInfos
}

// ItemInfos describes the built-in rules in precedence order and the
// built-in filters in application order.
func ItemInfos() (rules, filters []config.ItemInfo) {
	described, err := markup.DefaultRegistry.Describe(markup.RuleOptions{}, defaultOrder...)
	if err == nil {
		for _, rule := range described {
			rules = append(rules, config.ItemInfo{
				Name:        rule.Name(),
				Description: rule.Description(),
				Required:    IsRequired(rule.Name()),
			})
		}
	}

	for _, filter := range BasicFilters() {
		filters = append(filters, config.ItemInfo{
			Name:        filter.Name,
			Description: FilterDescription(filter.Name),
		})
	}

	return rules, filters
}

// EnabledRules returns the names of DefaultOrder enabled by cfg.
// Required rules are always kept.
func EnabledRules(cfg *config.Config) []string {
	names := make([]string, 0, len(defaultOrder))
	for _, name := range defaultOrder {
		if IsRequired(name) || cfg.RuleEnabled(name) {
			names = append(names, name)
		}
	}
	return names
}

// EnabledFilters returns BasicFilters enabled by cfg, in application order.
func EnabledFilters(cfg *config.Config) []markup.Filter {
	all := BasicFilters()
	filters := make([]markup.Filter, 0, len(all))
	for _, filter := range all {
		if cfg.FilterEnabled(filter.Name) {
			filters = append(filters, filter)
		}
	}
	return filters
}

// NewParser builds the production parser for handler as configured by cfg.
// A nil cfg uses config.NewConfig defaults. Extra options are applied last.
func NewParser(handler markup.Handler, cfg *config.Config, opts ...markup.Option) (*markup.Parser, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	factories, err := markup.DefaultRegistry.Factories(EnabledRules(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("resolve rules: %w", err)
	}

	base := []markup.Option{
		markup.WithRules(factories...),
		markup.WithFilters(EnabledFilters(cfg)...),
		markup.WithRuleOptions(markup.RuleOptions{HeadingMaxLength: cfg.HeadingMaxLength}),
		markup.WithNormalization(cfg.NormalizeUnicode),
	}

	return markup.NewParser(handler, append(base, opts...)...), nil
}
