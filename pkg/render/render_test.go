package render_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"

	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/markup"
	"github.com/yaklabco/gomarkup/pkg/markup/rules"
	"github.com/yaklabco/gomarkup/pkg/render"
)

const sample = `Field Notes

Getting Started

Read *the guide* at https://example.com/guide
or write to help@example.com.

- first item
- still first

- second item

| Name | Value

| alpha | 1

| beta | 2

Closing thoughts:`

func convert(t *testing.T, format config.OutputFormat, opts render.Options, input string) string {
	t.Helper()

	var buf bytes.Buffer
	r, err := render.New(format, &buf, opts)
	require.NoError(t, err)

	p, err := rules.NewParser(r, nil)
	require.NoError(t, err)
	require.NoError(t, p.ParseString(context.Background(), input))
	require.NoError(t, r.Flush())

	return buf.String()
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := render.New("pdf", &bytes.Buffer{}, render.Options{})
	require.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestNew_AllFormats(t *testing.T) {
	t.Parallel()

	for _, format := range config.OutputFormats() {
		r, err := render.New(format, &bytes.Buffer{}, render.Options{})
		require.NoError(t, err, "format %s", format)
		assert.NotNil(t, r)
	}
}

func TestHTML(t *testing.T) {
	t.Parallel()

	out := convert(t, config.FormatHTML, render.Options{Title: "Notes & More"}, sample)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n<html>"))
	assert.Contains(t, out, "<title>Notes &amp; More</title>")
	assert.Contains(t, out, "<h1>Field Notes</h1>")
	assert.Contains(t, out, "<h2>Getting Started</h2>")
	assert.Contains(t, out, "<em>the guide</em>")
	assert.Contains(t, out, `<a href="https://example.com/guide">https://example.com/guide</a>`)
	assert.Contains(t, out, `<a href="mailto:help@example.com">help@example.com</a>`)
	assert.Contains(t, out, "<ul>\n<li>first item\n- still first</li>\n<li>second item</li>\n</ul>")
	assert.Contains(t, out, "<tr><th>Name</th><th>Value</th></tr>")
	assert.Contains(t, out, "<tr><td>alpha</td><td>1</td></tr>")
	assert.Contains(t, out, "<p>Closing thoughts:</p>")
	assert.True(t, strings.HasSuffix(out, "</body></html>\n"))
}

func TestHTML_DefaultTitle(t *testing.T) {
	t.Parallel()

	out := convert(t, config.FormatHTML, render.Options{}, "x")
	assert.Contains(t, out, "<title>Untitled</title>")
}

func TestHTML_UnknownSub(t *testing.T) {
	t.Parallel()

	h := render.NewHTML(&bytes.Buffer{}, render.Options{})
	assert.Nil(t, h.Sub("nonexistent"))
	assert.NotNil(t, h.Sub("emphasis"))
}

// failWriter fails every write.
type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestHTML_StickyWriteError(t *testing.T) {
	t.Parallel()

	h := render.NewHTML(failWriter{}, render.Options{})
	h.Start(markup.TagDocument)
	h.Feed(strings.Repeat("x", 128*1024))
	h.End(markup.TagDocument)

	err := h.Flush()
	require.Error(t, err)
	assert.Equal(t, err, h.Flush())
}

func TestTree_WellFormed(t *testing.T) {
	t.Parallel()

	out := convert(t, config.FormatTree, render.Options{Title: "T"}, sample)

	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	counts := map[string]int{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			counts[n.Data]++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	assert.Equal(t, 1, counts["h1"])
	assert.Equal(t, 1, counts["h2"])
	assert.Equal(t, 1, counts["ul"])
	assert.Equal(t, 2, counts["li"])
	assert.Equal(t, 1, counts["table"])
	assert.Equal(t, 3, counts["tr"])
	assert.Equal(t, 2, counts["th"])
	assert.Equal(t, 4, counts["td"])
	assert.Equal(t, 1, counts["em"])
	assert.Equal(t, 2, counts["a"])
	assert.Contains(t, out, "<title>T</title>")
}

func TestTree_AngleBracketsStayText(t *testing.T) {
	t.Parallel()

	out := convert(t, config.FormatTree, render.Options{}, "Title\n\nuse <b> literally")
	assert.Contains(t, out, "<h2>use &lt;b&gt; literally</h2>")
	assert.NotContains(t, out, "<b>")
}

func TestTree_Document(t *testing.T) {
	t.Parallel()

	tree := render.NewTree(&bytes.Buffer{}, render.Options{})
	tree.Start(markup.TagDocument)
	tree.Start(markup.TagParagraph)
	tree.Feed("hi")
	tree.End(markup.TagParagraph)
	tree.End(markup.TagDocument)

	doc := tree.Document()
	require.NotNil(t, doc)
	assert.Equal(t, html.DocumentNode, doc.Type)
	require.NoError(t, tree.Flush())
	require.NoError(t, tree.Flush(), "second flush is a no-op")
}

func TestMarkdown_RoundTripsThroughGoldmark(t *testing.T) {
	t.Parallel()

	out := convert(t, config.FormatMarkdown, render.Options{}, sample)

	assert.Contains(t, out, "# Field Notes\n\n")
	assert.Contains(t, out, "## Getting Started\n\n")
	assert.Contains(t, out, "- second item\n")
	assert.Contains(t, out, "| Name | Value |\n| --- | --- |\n| alpha | 1 |\n")

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var htmlOut bytes.Buffer
	require.NoError(t, md.Convert([]byte(out), &htmlOut))

	rendered := htmlOut.String()
	assert.Contains(t, rendered, "<h1>Field Notes</h1>")
	assert.Contains(t, rendered, "<h2>Getting Started</h2>")
	assert.Contains(t, rendered, "<em>the guide</em>")
	assert.Contains(t, rendered, `<a href="https://example.com/guide">`)
	assert.Contains(t, rendered, `<a href="mailto:help@example.com">`)
	assert.Contains(t, rendered, "<th>Name</th>")
	assert.Contains(t, rendered, "<td>alpha</td>")
	assert.Contains(t, rendered, "<li>second item</li>")
}

func TestMarkdown_ParagraphsStayParagraphs(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"Title",
		"Prices went up\n- 5% in May",
		"# hashtag trending today\nsecond line",
		"- item\n1. not ordered\n> not quoted",
		"Release notes\n===\n---",
		"Totals\n| a | b\n| --- | ---",
		"Done\n<div unclosed\nsee https://example.com/some_page",
		"Issue 42 ##",
	}, "\n\n")
	out := convert(t, config.FormatMarkdown, render.Options{}, input)

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader([]byte(out)))

	var kinds []ast.NodeKind
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		kinds = append(kinds, n.Kind())
	}
	assert.Equal(t, []ast.NodeKind{
		ast.KindHeading,   // title
		ast.KindParagraph, // "- 5% in May" is a continuation line
		ast.KindParagraph, // "# hashtag" is not a heading
		ast.KindList,      // one item, no nested list or quote
		ast.KindParagraph, // "===" is not a setext underline
		ast.KindParagraph, // no table from a delimiter-looking line
		ast.KindParagraph, // no HTML block
		ast.KindHeading,
	}, kinds, "markdown:\n%s", out)

	list := doc.FirstChild().NextSibling().NextSibling().NextSibling()
	require.Equal(t, 1, list.ChildCount())
	item := list.FirstChild()
	require.Equal(t, 1, item.ChildCount())
	assert.NotEqual(t, ast.KindList, item.FirstChild().Kind())

	var htmlOut bytes.Buffer
	require.NoError(t, md.Convert([]byte(out), &htmlOut))
	rendered := htmlOut.String()
	assert.Contains(t, rendered, "<p>Prices went up\n- 5% in May</p>")
	assert.Contains(t, rendered, "<p># hashtag trending today\nsecond line</p>")
	assert.Contains(t, rendered, "1. not ordered")
	assert.Contains(t, rendered, `<a href="https://example.com/some_page">`)
	assert.Contains(t, rendered, "<h2>Issue 42 ##</h2>")
}

func TestMarkdown_EscapesPipesInCells(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := render.NewMarkdown(&buf, render.Options{})

	m.Start(markup.TagTable)
	m.Start(markup.TagTableRows)
	m.Start(markup.TagTableHead)
	m.Feed("a|b")
	m.End(markup.TagTableHead)
	m.End(markup.TagTableRows)
	m.End(markup.TagTable)
	require.NoError(t, m.Flush())

	assert.Contains(t, buf.String(), `| a\|b |`)
}

func TestTerminal_Plain(t *testing.T) {
	t.Parallel()

	out := convert(t, config.FormatTerm, render.Options{Color: false}, sample)

	assert.Contains(t, out, "Field Notes\n\n")
	assert.Contains(t, out, "  • second item\n")
	assert.Contains(t, out, "Name   Value\n")
	assert.Contains(t, out, "alpha  1\n")
	assert.Contains(t, out, "─────  ─────")
	assert.Contains(t, out, "help@example.com")
	assert.NotContains(t, out, "\x1b[")
}

func TestTerminal_Wrap(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 30)
	out := convert(t, config.FormatTerm, render.Options{Width: 40}, "Title\n\n"+long+"\nmore")

	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		assert.LessOrEqual(t, len(line), 40, "line %q", line)
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}

func TestRecorder_JSON(t *testing.T) {
	t.Parallel()

	out := convert(t, config.FormatEvents, render.Options{Compact: true}, "Title")

	var events []render.Event
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 5)
	assert.Equal(t, render.Event{Kind: render.EventStart, Tag: markup.TagDocument}, events[0])
	assert.Equal(t, render.Event{Kind: render.EventFeed, Text: "Title"}, events[2])
}

func TestRecorder_EmptyJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rec := render.NewRecorderWriter(&buf, render.Options{})
	require.NoError(t, rec.Flush())
	assert.Equal(t, "[]\n", buf.String())
}

func TestRecorder_Balanced(t *testing.T) {
	t.Parallel()

	rec := render.NewRecorder()
	rec.Start(markup.TagList)
	rec.Start(markup.TagListItem)
	assert.False(t, rec.Balanced())
	rec.End(markup.TagList)
	assert.False(t, rec.Balanced())

	rec.Reset()
	assert.Empty(t, rec.Events())
	rec.Start(markup.TagList)
	rec.End(markup.TagList)
	assert.True(t, rec.Balanced())
	assert.NoError(t, rec.Flush())
}

func TestCounter(t *testing.T) {
	t.Parallel()

	rec := render.NewRecorder()
	counter := render.NewCounter(rec)

	p, err := rules.NewParser(counter, nil)
	require.NoError(t, err)
	require.NoError(t, p.ParseString(context.Background(), sample))

	assert.Equal(t, 1, counter.Count(markup.TagTitle))
	assert.Equal(t, 1, counter.Count(markup.TagHeading))
	assert.Equal(t, 2, counter.Count(markup.TagParagraph))
	assert.Equal(t, 2, counter.Count(markup.TagListItem))
	assert.Equal(t, 3, counter.Count(markup.TagTableRows))
	assert.Equal(t, 9, counter.Blocks())
	assert.Equal(t, len(rec.Feeds()), counter.Feeds())
	assert.Equal(t, counter.Count(markup.TagList), counter.Counts()[markup.TagList])

	// Sub delegates to the wrapped handler.
	assert.Equal(t, "[emphasis:x]", counter.Sub("emphasis")([]string{"*x*", "x"}))
}

func TestTerminal_WrapBreaksLongWords(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 50)
	out := convert(t, config.FormatTerm, render.Options{Width: 20}, "Title\n\n"+long+" tail\nmore")

	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		assert.LessOrEqual(t, len(line), 20, "line %q", line)
	}
	assert.Contains(t, out, "tail")
}
