package render

import (
	"bufio"
	"html"
	"io"

	"github.com/yaklabco/gomarkup/pkg/markup"
)

// htmlTag is the pair of strings written around an element.
type htmlTag struct {
	open  string
	close string
}

// htmlTags maps structural tags to their markup. The document tag is
// handled separately because it carries the title.
//
//nolint:gochecknoglobals // Static lookup table.
var htmlTags = map[markup.Tag]htmlTag{
	markup.TagTitle:     {"<h1>", "</h1>\n"},
	markup.TagHeading:   {"<h2>", "</h2>\n"},
	markup.TagParagraph: {"<p>", "</p>\n"},
	markup.TagList:      {"<ul>\n", "</ul>\n"},
	markup.TagListItem:  {"<li>", "</li>\n"},
	markup.TagTable:     {"<table>\n", "</table>\n"},
	markup.TagTableRows: {"<tr>", "</tr>\n"},
	markup.TagTableHead: {"<th>", "</th>"},
	markup.TagTableData: {"<td>", "</td>"},
}

// HTMLTagName returns the element name used for tag, or "" for the
// document and unknown tags.
func HTMLTagName(tag markup.Tag) string {
	return htmlElements[tag]
}

//nolint:gochecknoglobals // Static lookup table.
var htmlElements = map[markup.Tag]string{
	markup.TagTitle:     "h1",
	markup.TagHeading:   "h2",
	markup.TagParagraph: "p",
	markup.TagList:      "ul",
	markup.TagListItem:  "li",
	markup.TagTable:     "table",
	markup.TagTableRows: "tr",
	markup.TagTableHead: "th",
	markup.TagTableData: "td",
}

// HTML renders events as an HTML page using fixed string templates.
// Fed text is written verbatim: inline markup comes from the substitutions.
type HTML struct {
	bw    *bufio.Writer
	title string
	subs  subTable
	err   error
}

// NewHTML creates an HTML renderer writing to w.
func NewHTML(w io.Writer, opts Options) *HTML {
	return &HTML{
		bw:    bufio.NewWriterSize(w, bufWriterSize),
		title: opts.title(),
		subs:  htmlSubs(),
	}
}

// htmlSubs returns the HTML substitutions for the built-in filters.
func htmlSubs() subTable {
	return subTable{
		"emphasis": func(m []string) string {
			return "<em>" + group(m, 1) + "</em>"
		},
		"url": func(m []string) string {
			return `<a href="` + group(m, 1) + `">` + group(m, 1) + "</a>"
		},
		"mail": func(m []string) string {
			return `<a href="mailto:` + group(m, 1) + `">` + group(m, 1) + "</a>"
		},
		"curly_braces": func(m []string) string {
			return "&lt;" + group(m, 1) + "&gt;"
		},
	}
}

// Start implements markup.Handler.
func (r *HTML) Start(tag markup.Tag) {
	if tag == markup.TagDocument {
		r.write("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>" +
			html.EscapeString(r.title) + "</title></head><body>\n")
		return
	}
	if t, ok := htmlTags[tag]; ok {
		r.write(t.open)
	}
}

// End implements markup.Handler.
func (r *HTML) End(tag markup.Tag) {
	if tag == markup.TagDocument {
		r.write("</body></html>\n")
		return
	}
	if t, ok := htmlTags[tag]; ok {
		r.write(t.close)
	}
}

// Feed implements markup.Handler.
func (r *HTML) Feed(text string) {
	r.write(text)
}

// Sub implements markup.Handler.
func (r *HTML) Sub(name string) markup.SubFunc {
	return r.subs.lookup(name)
}

// Flush implements Renderer.
func (r *HTML) Flush() error {
	if r.err != nil {
		return r.err
	}
	r.err = r.bw.Flush()
	return r.err
}

func (r *HTML) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = r.bw.WriteString(s)
}
