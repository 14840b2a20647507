package markup

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter is a pattern paired with the semantic name of its substitution.
// The Handler maps the name to output markup.
type Filter struct {
	// Name is the semantic name passed to Handler.Sub (e.g. "emphasis").
	Name string

	// Pattern selects the spans to substitute. Capture groups are passed
	// to the SubFunc so it can reference content without delimiters.
	Pattern *regexp.Regexp
}

// NewFilter compiles pattern into a Filter named name.
func NewFilter(name, pattern string) (Filter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Filter{}, fmt.Errorf("compile filter %q: %w", name, err)
	}
	return Filter{Name: name, Pattern: re}, nil
}

// MustFilter is like NewFilter but panics if pattern does not compile.
func MustFilter(name, pattern string) Filter {
	filter, err := NewFilter(name, pattern)
	if err != nil {
		panic(err)
	}
	return filter
}

// Apply replaces every non-overlapping match in text with the handler's
// substitution for the filter name.
func (f Filter) Apply(text string, handler Handler) string {
	if f.Pattern == nil || handler == nil {
		return text
	}

	sub := handler.Sub(f.Name)
	if sub == nil {
		return text
	}

	matches := f.Pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var builder strings.Builder
	builder.Grow(len(text))

	last := 0
	for _, loc := range matches {
		builder.WriteString(text[last:loc[0]])
		builder.WriteString(sub(submatches(text, loc)))
		last = loc[1]
	}
	builder.WriteString(text[last:])

	return builder.String()
}

// submatches converts an index pair slice into the matched strings.
func submatches(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		start, end := loc[2*i], loc[2*i+1]
		if start >= 0 && end >= 0 {
			groups[i] = text[start:end]
		}
	}
	return groups
}

// FilterChain applies filters in registration order, each one seeing the
// output of the previous.
//
// Order matters: a filter must not be placed after another whose inserted
// markup it could match.
type FilterChain struct {
	filters []Filter
}

// NewFilterChain creates a chain holding filters in the given order.
func NewFilterChain(filters ...Filter) *FilterChain {
	chain := &FilterChain{}
	for _, f := range filters {
		chain.Add(f)
	}
	return chain
}

// Add appends a filter to the end of the chain.
func (c *FilterChain) Add(filter Filter) {
	c.filters = append(c.filters, filter)
}

// Filters returns the filters in application order.
func (c *FilterChain) Filters() []Filter {
	result := make([]Filter, len(c.filters))
	copy(result, c.filters)
	return result
}

// Len returns the number of filters in the chain.
func (c *FilterChain) Len() int {
	return len(c.filters)
}

// Apply runs every filter over the block text and returns the rewritten block.
func (c *FilterChain) Apply(block Block, handler Handler) Block {
	for _, filter := range c.filters {
		block.Text = filter.Apply(block.Text, handler)
	}
	return block
}
