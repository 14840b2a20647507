package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/gomarkup/pkg/markup"
)

// Tree builds an HTML DOM from events and serializes it on Flush.
//
// Fed text is parsed as an HTML fragment in the context of the open
// element, so inline markup from substitutions becomes real nodes and the
// serialized output is always well formed.
type Tree struct {
	w     io.Writer
	doc   *html.Node
	body  *html.Node
	stack []*html.Node
	subs  subTable
	err   error
	done  bool
}

// NewTree creates a DOM renderer writing to w.
func NewTree(w io.Writer, opts Options) *Tree {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	head := element(atom.Head)
	title := element(atom.Title)
	title.AppendChild(&html.Node{Type: html.TextNode, Data: opts.title()})
	head.AppendChild(title)
	body := element(atom.Body)
	root.AppendChild(head)
	root.AppendChild(body)
	doc.AppendChild(root)

	return &Tree{
		w:    w,
		doc:  doc,
		body: body,
		subs: htmlSubs(),
	}
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

// Document returns the root node. It is complete once End(TagDocument)
// has been called.
func (r *Tree) Document() *html.Node {
	return r.doc
}

// current returns the innermost open element.
func (r *Tree) current() *html.Node {
	if len(r.stack) == 0 {
		return r.body
	}
	return r.stack[len(r.stack)-1]
}

// Start implements markup.Handler.
func (r *Tree) Start(tag markup.Tag) {
	name := HTMLTagName(tag)
	if name == "" {
		return
	}
	node := element(atom.Lookup([]byte(name)))
	r.current().AppendChild(node)
	r.stack = append(r.stack, node)
}

// End implements markup.Handler.
func (r *Tree) End(tag markup.Tag) {
	name := HTMLTagName(tag)
	if name == "" || len(r.stack) == 0 {
		return
	}
	// Pop up to and including the innermost element of this kind.
	for i := len(r.stack) - 1; i >= 0; i-- {
		if r.stack[i].Data == name {
			r.stack = r.stack[:i]
			return
		}
	}
}

// Feed implements markup.Handler.
func (r *Tree) Feed(text string) {
	if r.err != nil {
		return
	}
	parent := r.current()
	nodes, err := html.ParseFragment(strings.NewReader(text), parent)
	if err != nil {
		r.err = fmt.Errorf("parse fragment: %w", err)
		return
	}
	for _, node := range nodes {
		parent.AppendChild(node)
	}
}

// Sub implements markup.Handler.
func (r *Tree) Sub(name string) markup.SubFunc {
	return r.subs.lookup(name)
}

// Flush implements Renderer. The document is serialized once.
func (r *Tree) Flush() error {
	if r.err != nil || r.done {
		return r.err
	}
	r.done = true

	bw := bufio.NewWriterSize(r.w, bufWriterSize)
	if err := html.Render(bw, r.doc); err != nil {
		r.err = fmt.Errorf("render tree: %w", err)
		return r.err
	}
	if _, err := bw.WriteString("\n"); err != nil {
		r.err = err
		return r.err
	}
	r.err = bw.Flush()
	return r.err
}
