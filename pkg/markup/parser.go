package markup

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/text/unicode/norm"
)

// Parser drives the splitter, the filter chain and the rule set over a
// document and reports structure to a Handler.
//
// The parser keeps no per-document state: every call to Parse builds fresh
// rule instances from its factories, so a Parser may be reused for any
// number of documents, one at a time.
type Parser struct {
	handler   Handler
	factories []Factory
	filters   *FilterChain
	ruleOpts  RuleOptions
	normalize bool
	logger    *log.Logger
	observer  Observer
}

// Observer is called after each block is classified with the block as the
// rules saw it and the name of the terminal rule, or "" if none.
type Observer func(block Block, rule string)

// Option configures a Parser.
type Option func(*Parser)

// WithRules appends rule factories in precedence order.
func WithRules(factories ...Factory) Option {
	return func(p *Parser) {
		p.factories = append(p.factories, factories...)
	}
}

// WithFilters appends inline filters in application order.
func WithFilters(filters ...Filter) Option {
	return func(p *Parser) {
		for _, f := range filters {
			p.filters.Add(f)
		}
	}
}

// WithRuleOptions sets the options passed to rule factories.
func WithRuleOptions(opts RuleOptions) Option {
	return func(p *Parser) {
		p.ruleOpts = opts
	}
}

// WithNormalization enables Unicode NFC normalization of the input.
func WithNormalization(enabled bool) Option {
	return func(p *Parser) {
		p.normalize = enabled
	}
}

// WithLogger sets the logger used for classification tracing.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithObserver registers fn to be called after every classified block.
func WithObserver(fn Observer) Option {
	return func(p *Parser) {
		p.observer = fn
	}
}

// NewParser creates a parser reporting to handler.
func NewParser(handler Handler, opts ...Option) *Parser {
	p := &Parser{
		handler: handler,
		filters: NewFilterChain(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddRule appends a rule factory to the end of the precedence order.
func (p *Parser) AddRule(factory Factory) {
	p.factories = append(p.factories, factory)
}

// AddFilter compiles pattern and appends it to the filter chain.
func (p *Parser) AddFilter(pattern, name string) error {
	filter, err := NewFilter(name, pattern)
	if err != nil {
		return err
	}
	p.filters.Add(filter)
	return nil
}

// Handler returns the handler receiving events.
func (p *Parser) Handler() Handler {
	return p.handler
}

// Filters returns the filter chain.
func (p *Parser) Filters() *FilterChain {
	return p.filters
}

// RuleSet builds a fresh rule set from the parser's factories.
func (p *Parser) RuleSet() *RuleSet {
	return Instantiate(p.ruleOpts, p.factories...)
}

// Parse reads the whole input and converts it.
func (p *Parser) Parse(ctx context.Context, r io.Reader) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return p.ParseString(ctx, string(content))
}

// ParseString converts text.
//
// The handler sees Start(TagDocument), the events of every block, the
// events of rules closing open containers, and End(TagDocument).
func (p *Parser) ParseString(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("parse cancelled: %w", err)
	}

	if p.normalize {
		text = norm.NFC.String(text)
	}

	rules := p.RuleSet()

	p.handler.Start(TagDocument)

	for block := range Blocks(text) {
		select {
		case <-ctx.Done():
			return fmt.Errorf("parse cancelled at block %d: %w", block.Index, ctx.Err())
		default:
		}

		block = p.filters.Apply(block, p.handler)
		rule := rules.Apply(block, p.handler)

		p.logger.Debug("classified block",
			"block", block.Index,
			"line", block.Line,
			"rule", rule,
		)
		if p.observer != nil {
			p.observer(block, rule)
		}
	}

	rules.Finish(p.handler)
	p.handler.End(TagDocument)

	return nil
}
