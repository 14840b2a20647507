package rules

import "github.com/yaklabco/gomarkup/pkg/markup"

// Built-in filter names, as passed to Handler.Sub.
const (
	FilterCurlyBraces = "curly_braces"
	FilterEmphasis    = "emphasis"
	FilterURL         = "url"
	FilterMail        = "mail"
)

// Built-in filter patterns.
const (
	PatternCurlyBraces = `<(.+?)>`
	PatternEmphasis    = `\*(.+?)\*`
	PatternURL         = `(https?://[-._a-zA-Z0-9/]+)`
	PatternMail        = `([._a-zA-Z0-9]+@[._a-zA-Z0-9]+[a-zA-Z]+)`
)

// BasicFilters returns the built-in inline filters in application order.
//
// Angle-bracket spans are handled first so markup inserted by the later
// filters is never matched again.
func BasicFilters() []markup.Filter {
	return []markup.Filter{
		markup.MustFilter(FilterCurlyBraces, PatternCurlyBraces),
		markup.MustFilter(FilterEmphasis, PatternEmphasis),
		markup.MustFilter(FilterURL, PatternURL),
		markup.MustFilter(FilterMail, PatternMail),
	}
}

// FilterNames returns the built-in filter names in application order.
func FilterNames() []string {
	return []string{FilterCurlyBraces, FilterEmphasis, FilterURL, FilterMail}
}

// FilterDescription returns a summary of what the named filter matches.
func FilterDescription(name string) string {
	switch name {
	case FilterCurlyBraces:
		return "Text between angle brackets, kept as literal text"
	case FilterEmphasis:
		return "Text between asterisks"
	case FilterURL:
		return "http and https URLs"
	case FilterMail:
		return "Email addresses"
	default:
		return ""
	}
}
