package rules

import (
	"strings"

	"github.com/yaklabco/gomarkup/pkg/markup"
)

// listMarker starts every list item block.
const listMarker = "-"

// ListItemRule classifies blocks starting with a hyphen as list items.
type ListItemRule struct {
	markup.BaseRule
}

// NewListItemRule creates a list item rule.
func NewListItemRule(markup.RuleOptions) *ListItemRule {
	return &ListItemRule{
		BaseRule: markup.NewBaseRule(
			RuleListItem,
			markup.TagListItem,
			"A block whose first character is a hyphen",
		),
	}
}

// Condition reports whether block starts with the list marker.
func (r *ListItemRule) Condition(block markup.Block) bool {
	return strings.HasPrefix(block.Text, listMarker)
}

// Action emits the item body without its marker.
func (r *ListItemRule) Action(block markup.Block, handler markup.Handler) bool {
	body := strings.TrimSpace(strings.TrimPrefix(block.Text, listMarker))
	markup.Emit(handler, r.Tag(), body)
	return true
}

// NewListRule creates the gate wrapping consecutive list items in a list.
func NewListRule(opts markup.RuleOptions) *GateRule {
	return newGateRule(
		RuleList,
		markup.TagList,
		"Wraps consecutive list items in a single list",
		NewListItemRule(opts),
	)
}
