package rules

import "github.com/yaklabco/gomarkup/pkg/markup"

// ParagraphRule classifies every block no earlier rule claimed.
type ParagraphRule struct {
	markup.BaseRule
}

// NewParagraphRule creates the catch-all paragraph rule.
func NewParagraphRule(markup.RuleOptions) *ParagraphRule {
	return &ParagraphRule{
		BaseRule: markup.NewBaseRule(
			RuleParagraph,
			markup.TagParagraph,
			"Any block not matched by an earlier rule",
		),
	}
}

// Condition always matches.
func (r *ParagraphRule) Condition(markup.Block) bool {
	return true
}
