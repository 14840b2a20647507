// Package render provides markup.Handler implementations that turn parser
// events into output documents.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/markup"
)

// ErrUnknownFormat is returned by New for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// defaultTitle is written when no title is configured.
const defaultTitle = "Untitled"

// Renderer is a Handler that writes a document to an io.Writer.
type Renderer interface {
	markup.Handler

	// Flush writes any buffered output and returns the first write error
	// encountered since the renderer was created.
	Flush() error
}

// Options configures renderer construction.
type Options struct {
	// Title is the document title for formats that carry one.
	Title string

	// Color enables ANSI styling in the term format.
	Color bool

	// Width wraps paragraphs in the term format. Zero disables wrapping.
	Width int

	// Compact disables indentation in the events format.
	Compact bool
}

func (o Options) title() string {
	if o.Title == "" {
		return defaultTitle
	}
	return o.Title
}

// New creates the renderer for format writing to w.
func New(format config.OutputFormat, w io.Writer, opts Options) (Renderer, error) {
	switch format {
	case config.FormatHTML, "":
		return NewHTML(w, opts), nil
	case config.FormatTree:
		return NewTree(w, opts), nil
	case config.FormatTerm:
		return NewTerminal(w, opts), nil
	case config.FormatMarkdown:
		return NewMarkdown(w, opts), nil
	case config.FormatEvents:
		return NewRecorderWriter(w, opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// group returns capture group i of match, or "" if it does not exist.
func group(match []string, i int) string {
	if i < len(match) {
		return match[i]
	}
	return ""
}

// subTable maps filter names to substitution functions.
type subTable map[string]markup.SubFunc

// lookup returns the substitution for name, or nil.
func (s subTable) lookup(name string) markup.SubFunc {
	return s[name]
}
