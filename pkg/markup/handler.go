// Package markup provides the block-classification engine for gomarkup.
//
// A document is split into blank-line separated blocks. Each block is
// rewritten by an ordered chain of inline filters and then classified by an
// ordered list of rules. Rules report structure to a Handler through
// start/end/feed events; the Handler decides what the output looks like.
package markup

// Tag names a structural element reported to a Handler.
type Tag string

// Structural tags emitted by the built-in rules and the parser.
const (
	TagDocument  Tag = "document"
	TagTitle     Tag = "title"
	TagHeading   Tag = "heading"
	TagList      Tag = "list"
	TagListItem  Tag = "listitem"
	TagTable     Tag = "table"
	TagTableRows Tag = "tablerows"
	TagTableHead Tag = "tableh"
	TagTableData Tag = "tabled"
	TagParagraph Tag = "paragraph"
)

// Tags returns every structural tag in document order of appearance.
func Tags() []Tag {
	return []Tag{
		TagDocument,
		TagTitle,
		TagHeading,
		TagList,
		TagListItem,
		TagTable,
		TagTableRows,
		TagTableHead,
		TagTableData,
		TagParagraph,
	}
}

// String returns the tag name.
func (t Tag) String() string {
	return string(t)
}

// SubFunc produces the replacement text for one inline filter match.
// match[0] is the whole match, match[1:] are the capture groups.
// Groups that did not participate in the match are empty strings.
type SubFunc func(match []string) string

// Handler consumes structural events and produces output.
//
// Implementations are stateful and serve a single parse: the parser calls
// Start(TagDocument) first and End(TagDocument) last.
type Handler interface {
	// Start opens the element identified by tag.
	Start(tag Tag)

	// End closes the element identified by tag.
	End(tag Tag)

	// Feed writes block content into the innermost open element.
	Feed(text string)

	// Sub returns the substitution for the inline filter called name.
	// A nil SubFunc leaves matches unchanged.
	Sub(name string) SubFunc
}
