package rules

import "github.com/yaklabco/gomarkup/pkg/markup"

// GateRule wraps runs of consecutive blocks accepted by a leaf rule in a
// single container element.
//
// The gate runs on every block. It starts the container when a matching
// block follows a non-matching one and ends it when a non-matching block
// follows matching ones. It never classifies a block: Action always returns
// false so the leaf rule further down renders the block itself.
type GateRule struct {
	markup.BaseRule
	leaf   markup.Rule
	inside bool
}

func newGateRule(name string, tag markup.Tag, desc string, leaf markup.Rule) *GateRule {
	return &GateRule{
		BaseRule: markup.NewBaseRule(name, tag, desc),
		leaf:     leaf,
	}
}

// Inside reports whether the container is currently open.
func (r *GateRule) Inside() bool {
	return r.inside
}

// Condition always matches.
func (r *GateRule) Condition(markup.Block) bool {
	return true
}

// Action opens or closes the container on shape transitions.
func (r *GateRule) Action(block markup.Block, handler markup.Handler) bool {
	matches := r.leaf.Condition(block)

	switch {
	case !r.inside && matches:
		handler.Start(r.Tag())
		r.inside = true
	case r.inside && !matches:
		handler.End(r.Tag())
		r.inside = false
	}

	return false
}

// Finish closes a container left open by the last block of the document.
func (r *GateRule) Finish(handler markup.Handler) {
	if r.inside {
		handler.End(r.Tag())
		r.inside = false
	}
}
