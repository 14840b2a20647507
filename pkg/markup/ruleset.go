package markup

// RuleSet is an ordered list of rules evaluated with first-match semantics.
//
// The order is the precedence: for each block the rules are scanned from
// the front, and the first rule whose Condition holds runs its Action.
// A non-terminal Action lets the scan continue with the next rule.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet creates a rule set in the given precedence order.
func NewRuleSet(rules ...Rule) *RuleSet {
	rs := &RuleSet{rules: make([]Rule, 0, len(rules))}
	rs.rules = append(rs.rules, rules...)
	return rs
}

// Instantiate builds a rule set from factories using opts.
func Instantiate(opts RuleOptions, factories ...Factory) *RuleSet {
	rs := &RuleSet{rules: make([]Rule, 0, len(factories))}
	for _, factory := range factories {
		rs.rules = append(rs.rules, factory(opts))
	}
	return rs
}

// Rules returns the rules in precedence order.
func (rs *RuleSet) Rules() []Rule {
	result := make([]Rule, len(rs.rules))
	copy(result, rs.rules)
	return result
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Apply classifies block and returns the name of the rule whose Action was
// terminal. It returns "" if no rule terminated the scan.
func (rs *RuleSet) Apply(block Block, handler Handler) string {
	for _, rule := range rs.rules {
		if !rule.Condition(block) {
			continue
		}
		if rule.Action(block, handler) {
			return rule.Name()
		}
	}
	return ""
}

// Finish lets every Finisher close elements still open at document end.
func (rs *RuleSet) Finish(handler Handler) {
	for _, rule := range rs.rules {
		if finisher, ok := rule.(Finisher); ok {
			finisher.Finish(handler)
		}
	}
}
