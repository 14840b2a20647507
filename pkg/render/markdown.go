package render

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/yaklabco/gomarkup/pkg/markup"
)

// Markdown renders events as CommonMark with GFM tables.
type Markdown struct {
	bw    *bufio.Writer
	title string
	subs  subTable

	text    strings.Builder
	row     []string
	columns int
	rows    int
	err     error
}

// NewMarkdown creates a Markdown renderer writing to w.
func NewMarkdown(w io.Writer, opts Options) *Markdown {
	return &Markdown{
		bw:    bufio.NewWriterSize(w, bufWriterSize),
		title: opts.Title,
		subs: subTable{
			"emphasis": func(m []string) string {
				return "*" + group(m, 1) + "*"
			},
			"url": func(m []string) string {
				return "<" + group(m, 1) + ">"
			},
			"mail": func(m []string) string {
				return "<" + group(m, 1) + ">"
			},
			"curly_braces": func(m []string) string {
				return "&lt;" + group(m, 1) + "&gt;"
			},
		},
	}
}

// Start implements markup.Handler.
func (r *Markdown) Start(tag markup.Tag) {
	switch tag {
	case markup.TagDocument:
		if r.title != "" {
			r.write("<!-- " + r.title + " -->\n\n")
		}
	case markup.TagTable:
		r.rows = 0
		r.columns = 0
	case markup.TagTableRows:
		r.row = r.row[:0]
	default:
		r.text.Reset()
	}
}

// End implements markup.Handler.
func (r *Markdown) End(tag markup.Tag) {
	text := r.text.String()

	switch tag {
	case markup.TagTitle:
		r.write("# " + escapeClosingHashes(text) + "\n\n")
	case markup.TagHeading:
		r.write("## " + escapeClosingHashes(text) + "\n\n")
	case markup.TagParagraph:
		r.write(escapeBlockStarts(text) + "\n\n")
	case markup.TagListItem:
		r.write("- " + strings.ReplaceAll(escapeBlockStarts(text), "\n", "\n  ") + "\n")
	case markup.TagList, markup.TagTable:
		r.write("\n")
	case markup.TagTableHead, markup.TagTableData:
		r.row = append(r.row, escapeCell(text))
	case markup.TagTableRows:
		r.writeRow()
	case markup.TagDocument:
	}
	r.text.Reset()
}

// Feed implements markup.Handler.
func (r *Markdown) Feed(text string) {
	r.text.WriteString(text)
}

// Sub implements markup.Handler.
func (r *Markdown) Sub(name string) markup.SubFunc {
	return r.subs.lookup(name)
}

// Flush implements Renderer.
func (r *Markdown) Flush() error {
	if r.err != nil {
		return r.err
	}
	r.err = r.bw.Flush()
	return r.err
}

// writeRow writes a table row. GFM requires a delimiter row after the
// first row of every table, so the first row always acts as the header.
func (r *Markdown) writeRow() {
	if r.rows == 0 {
		r.columns = len(r.row)
	}
	for len(r.row) < r.columns {
		r.row = append(r.row, "")
	}

	r.write("| " + strings.Join(r.row, " | ") + " |\n")
	if r.rows == 0 {
		r.write("|" + strings.Repeat(" --- |", r.columns) + "\n")
	}
	r.rows++
}

func (r *Markdown) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = r.bw.WriteString(s)
}

// escapeCell makes text safe inside a single table cell.
func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "|", `\|`)
	return strings.ReplaceAll(text, "\n", " ")
}

//nolint:gochecknoglobals // Compiled once.
var (
	// blockMarker matches line starts CommonMark reads as a block: ATX
	// headings, bullets, ordered items, block quotes and code fences.
	blockMarker = regexp.MustCompile("^(?:#{1,6}(?:[ \t]|$)|[-+*](?:[ \t]|$)|[0-9]{1,9}[.)](?:[ \t]|$)|>|```|~~~)")

	// markerOnly matches lines that can only be thematic breaks, setext
	// underlines or table delimiter rows.
	markerOnly = regexp.MustCompile(`^[-=_*|:+ \t]+$`)

	// autolink matches the angle-bracket links written by the url and mail
	// substitutions.
	autolink = regexp.MustCompile(`^<(?:https?://|[^>\s]*@)[^>\s]*>`)

	closingHashes = regexp.MustCompile(`(^|[ \t])(#+)[ \t]*$`)
)

// escapeBlockStarts backslash-escapes each line of text that would
// otherwise open a Markdown block, so paragraph and list item text stays
// inline content. Leading whitespace is dropped; CommonMark ignores it in
// paragraphs.
func escapeBlockStarts(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = escapeLine(strings.TrimLeft(line, " \t"))
	}
	return strings.Join(lines, "\n")
}

func escapeLine(line string) string {
	switch {
	case line == "":
		return line
	case markerOnly.MatchString(line):
		var b strings.Builder
		for _, c := range line {
			if c != ' ' && c != '\t' {
				b.WriteByte('\\')
			}
			b.WriteRune(c)
		}
		return b.String()
	case blockMarker.MatchString(line):
		if line[0] >= '0' && line[0] <= '9' {
			// "1." and "1)" only open a list with the delimiter intact.
			at := strings.IndexAny(line, ".)")
			return line[:at] + `\` + line[at:]
		}
		return `\` + line
	case line[0] == '<' && !autolink.MatchString(line):
		return `\` + line
	default:
		return line
	}
}

// escapeClosingHashes keeps a trailing run of '#' in heading text from
// being read as an ATX closing sequence.
func escapeClosingHashes(text string) string {
	return closingHashes.ReplaceAllString(text, `${1}\${2}`)
}
