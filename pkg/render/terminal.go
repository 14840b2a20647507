package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/yaklabco/gomarkup/pkg/markup"
)

// Terminal layout constants.
const (
	bulletPrefix  = "  • "
	bulletIndent  = "    "
	cellSeparator = "  "
)

// terminalStyles holds the lipgloss styles for the terminal renderer.
type terminalStyles struct {
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Emphasis lipgloss.Style
	Link     lipgloss.Style
	Header   lipgloss.Style
	Rule     lipgloss.Style
}

func newTerminalStyles(color bool) terminalStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return terminalStyles{
			Title: plain, Heading: plain, Emphasis: plain,
			Link: plain, Header: plain, Rule: plain,
		}
	}
	return terminalStyles{
		Title:    lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12")),
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Emphasis: lipgloss.NewStyle().Italic(true),
		Link:     lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("12")),
		Header:   lipgloss.NewStyle().Bold(true),
		Rule:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Terminal renders events as styled text for a terminal.
//
// Leaf text is buffered until its element ends. Tables are buffered until
// the table ends so columns can be aligned.
type Terminal struct {
	bw     *bufio.Writer
	styles terminalStyles
	width  int
	subs   subTable

	text   strings.Builder
	row    []string
	rows   [][]string
	header int // number of leading header rows in rows
	head   bool
	err    error
}

// NewTerminal creates a terminal renderer writing to w.
func NewTerminal(w io.Writer, opts Options) *Terminal {
	styles := newTerminalStyles(opts.Color)
	return &Terminal{
		bw:     bufio.NewWriterSize(w, bufWriterSize),
		styles: styles,
		width:  opts.Width,
		subs: subTable{
			"emphasis": func(m []string) string {
				return styles.Emphasis.Render(group(m, 1))
			},
			"url": func(m []string) string {
				return styles.Link.Render(group(m, 1))
			},
			"mail": func(m []string) string {
				return styles.Link.Render(group(m, 1))
			},
			"curly_braces": func(m []string) string {
				return "<" + group(m, 1) + ">"
			},
		},
	}
}

// Start implements markup.Handler.
func (r *Terminal) Start(tag markup.Tag) {
	switch tag {
	case markup.TagTable:
		r.rows = nil
		r.header = 0
	case markup.TagTableRows:
		r.row = nil
		r.head = false
	case markup.TagTableHead:
		r.head = true
		r.text.Reset()
	default:
		r.text.Reset()
	}
}

// End implements markup.Handler.
func (r *Terminal) End(tag markup.Tag) {
	text := r.text.String()

	switch tag {
	case markup.TagTitle:
		r.write(r.styles.Title.Render(text) + "\n\n")
	case markup.TagHeading:
		r.write(r.styles.Heading.Render(text) + "\n\n")
	case markup.TagParagraph:
		r.write(r.wrap(text, 0) + "\n\n")
	case markup.TagListItem:
		r.write(bulletPrefix + r.indent(r.wrap(text, len(bulletIndent))) + "\n")
	case markup.TagList:
		r.write("\n")
	case markup.TagTableHead, markup.TagTableData:
		r.row = append(r.row, text)
	case markup.TagTableRows:
		if r.head && len(r.rows) == r.header {
			r.header++
		}
		r.rows = append(r.rows, r.row)
	case markup.TagTable:
		r.writeTable()
	case markup.TagDocument:
	}
	r.text.Reset()
}

// Feed implements markup.Handler.
func (r *Terminal) Feed(text string) {
	r.text.WriteString(text)
}

// Sub implements markup.Handler.
func (r *Terminal) Sub(name string) markup.SubFunc {
	return r.subs.lookup(name)
}

// Flush implements Renderer.
func (r *Terminal) Flush() error {
	if r.err != nil {
		return r.err
	}
	r.err = r.bw.Flush()
	return r.err
}

// wrap word-wraps text to the configured width less indent columns. Words
// longer than a line are broken.
func (r *Terminal) wrap(text string, indent int) string {
	limit := r.width - indent
	if limit <= 0 {
		return text
	}
	wrapped := wrap.String(wordwrap.String(text, limit), limit)

	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// indent prefixes continuation lines so they line up under the bullet text.
func (r *Terminal) indent(text string) string {
	return strings.ReplaceAll(text, "\n", "\n"+bulletIndent)
}

// writeTable writes buffered rows with aligned columns.
func (r *Terminal) writeTable() {
	widths := columnWidths(r.rows)

	for i, row := range r.rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			if i < r.header {
				cell = r.styles.Header.Render(cell)
			}
			cells[j] = pad(cell, widths[j])
		}
		r.write(strings.TrimRight(strings.Join(cells, cellSeparator), " ") + "\n")

		if i == r.header-1 {
			r.write(r.styles.Rule.Render(separatorLine(widths)) + "\n")
		}
	}
	r.write("\n")
	r.rows = nil
}

func (r *Terminal) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = r.bw.WriteString(s)
}

// columnWidths returns the display width of the widest cell per column.
func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for j, cell := range row {
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			widths[j] = max(widths[j], lipgloss.Width(cell))
		}
	}
	return widths
}

// pad right-pads s with spaces to width display columns.
func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func separatorLine(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w)
	}
	return strings.Join(parts, cellSeparator)
}
