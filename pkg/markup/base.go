package markup

// BaseRule provides the shared parts of the Rule interface.
// Embed it in rule implementations and override methods as needed.
//
// The default Action wraps the whole block in the rule's tag and reports
// the block as classified.
type BaseRule struct {
	name string
	tag  Tag
	desc string
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(name string, tag Tag, desc string) BaseRule {
	return BaseRule{
		name: name,
		tag:  tag,
		desc: desc,
	}
}

// Name returns the unique identifier for this rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Tag returns the element the rule emits.
func (r *BaseRule) Tag() Tag {
	return r.tag
}

// Description returns a summary of what the rule matches.
func (r *BaseRule) Description() string {
	return r.desc
}

// Condition matches nothing; concrete rules override it.
func (r *BaseRule) Condition(Block) bool {
	return false
}

// Action emits the block text wrapped in the rule's tag.
func (r *BaseRule) Action(block Block, handler Handler) bool {
	Emit(handler, r.tag, block.Text)
	return true
}

// Emit writes text as a complete element.
func Emit(handler Handler, tag Tag, text string) {
	handler.Start(tag)
	handler.Feed(text)
	handler.End(tag)
}
