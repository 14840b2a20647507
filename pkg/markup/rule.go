package markup

// DefaultHeadingMaxLength is the longest single line, in runes, that still
// classifies as a heading.
const DefaultHeadingMaxLength = 70

// Rule classifies and renders blocks.
type Rule interface {
	// Name returns the unique identifier of the rule (e.g. "heading").
	Name() string

	// Description returns a human-readable summary of what the rule matches.
	Description() string

	// Condition reports whether the rule applies to block.
	// It must be total: empty and single-character blocks never panic.
	Condition(block Block) bool

	// Action renders block through handler.
	//
	// Returning true marks the block as classified and stops the rule scan.
	// Returning false lets later rules see the same block; gate rules that
	// only open or close a container always return false.
	Action(block Block, handler Handler) bool
}

// Finisher is implemented by rules that hold an element open across blocks.
// Finish is called once after the last block so the element can be closed.
type Finisher interface {
	Finish(handler Handler)
}

// RuleOptions carries tunables shared by rule factories.
type RuleOptions struct {
	// HeadingMaxLength bounds heading length in runes.
	// Zero means DefaultHeadingMaxLength.
	HeadingMaxLength int
}

// EffectiveHeadingMaxLength returns HeadingMaxLength or its default.
func (o RuleOptions) EffectiveHeadingMaxLength() int {
	if o.HeadingMaxLength <= 0 {
		return DefaultHeadingMaxLength
	}
	return o.HeadingMaxLength
}

// Factory builds a fresh rule instance.
// Rules carry per-document state, so every parse uses new instances.
type Factory func(opts RuleOptions) Rule

// Static returns a factory that always yields rule.
// Only use it for stateless rules or single-use parsers.
func Static(rule Rule) Factory {
	return func(RuleOptions) Rule { return rule }
}
