package rules

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gomarkup/pkg/markup"
)

// IsHeadingShape reports whether text is a single non-empty line of at most
// maxLen runes that does not end with a colon.
func IsHeadingShape(text string, maxLen int) bool {
	if text == "" || strings.Contains(text, "\n") {
		return false
	}
	if utf8.RuneCountInString(text) > maxLen {
		return false
	}
	// A trailing colon introduces what follows; it is a label, not a heading.
	return !strings.HasSuffix(text, ":")
}

// HeadingRule classifies short single-line blocks as headings.
type HeadingRule struct {
	markup.BaseRule
	maxLen int
}

// NewHeadingRule creates a heading rule bounded by opts.HeadingMaxLength.
func NewHeadingRule(opts markup.RuleOptions) *HeadingRule {
	return &HeadingRule{
		BaseRule: markup.NewBaseRule(
			RuleHeading,
			markup.TagHeading,
			"A single line of limited length that does not end with a colon",
		),
		maxLen: opts.EffectiveHeadingMaxLength(),
	}
}

// MaxLength returns the longest heading accepted, in runes.
func (r *HeadingRule) MaxLength() int {
	return r.maxLen
}

// Condition reports whether block has heading shape.
func (r *HeadingRule) Condition(block markup.Block) bool {
	return IsHeadingShape(block.Text, r.maxLen)
}

// TitleRule classifies the document title: the first block it evaluates,
// provided that block has heading shape.
//
// The rule is one-shot. Its first evaluation consumes it whether or not the
// block matched, so later heading-shaped blocks fall through to HeadingRule.
type TitleRule struct {
	markup.BaseRule
	shape    *HeadingRule
	consumed bool
}

// NewTitleRule creates a title rule sharing the heading shape of opts.
func NewTitleRule(opts markup.RuleOptions) *TitleRule {
	return &TitleRule{
		BaseRule: markup.NewBaseRule(
			RuleTitle,
			markup.TagTitle,
			"The first evaluated block, if it has heading shape",
		),
		shape: NewHeadingRule(opts),
	}
}

// Consumed reports whether the rule has already spent its evaluation.
func (r *TitleRule) Consumed() bool {
	return r.consumed
}

// Condition matches only on the first evaluation.
func (r *TitleRule) Condition(block markup.Block) bool {
	if r.consumed {
		return false
	}
	r.consumed = true
	return r.shape.Condition(block)
}
