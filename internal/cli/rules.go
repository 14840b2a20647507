package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomarkup/internal/logging"
	"github.com/yaklabco/gomarkup/pkg/markup/rules"
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// filterInfo represents a filter in JSON output.
type filterInfo struct {
	Name        string `json:"name"`
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
}

// catalog is the JSON form of the rules listing.
type catalog struct {
	Rules   []ruleInfo   `json:"rules"`
	Filters []filterInfo `json:"filters"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List block rules and inline filters",
		Long: `List the block rules in precedence order and the inline filters in
application order. The first rule whose condition matches a block and
whose action completes classifies it. Filters run before the rules.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := buildCatalog()

			if flags.format == formatJSON {
				return outputCatalogJSON(cmd.OutOrStdout(), list)
			}
			if flags.format != "text" {
				return fmt.Errorf("%w: unknown format %q: must be text or json", ErrUsage, flags.format)
			}

			logger := logging.NewInteractive()
			logger.SetOutput(cmd.OutOrStdout())

			logger.Info("rules (precedence order)")
			for _, rule := range list.Rules {
				logger.Info(rule.Name,
					logging.FieldRequired, rule.Required,
					logging.FieldDescription, rule.Description,
				)
			}

			logger.Info("filters (application order)")
			for _, filter := range list.Filters {
				logger.Info(filter.Name,
					logging.FieldPattern, filter.Pattern,
					logging.FieldDescription, filter.Description,
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func buildCatalog() catalog {
	ruleItems, _ := rules.ItemInfos()

	list := catalog{
		Rules:   make([]ruleInfo, 0, len(ruleItems)),
		Filters: make([]filterInfo, 0, len(rules.FilterNames())),
	}
	for _, item := range ruleItems {
		list.Rules = append(list.Rules, ruleInfo{
			Name:        item.Name,
			Description: item.Description,
			Required:    item.Required,
		})
	}
	for _, filter := range rules.BasicFilters() {
		list.Filters = append(list.Filters, filterInfo{
			Name:        filter.Name,
			Pattern:     filter.Pattern.String(),
			Description: rules.FilterDescription(filter.Name),
		})
	}
	return list
}

// outputCatalogJSON writes the rules and filters as JSON.
func outputCatalogJSON(w io.Writer, list catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
