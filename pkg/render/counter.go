package render

import (
	"maps"

	"github.com/yaklabco/gomarkup/pkg/markup"
)

// Counter decorates a Handler and counts elements per tag.
type Counter struct {
	next   markup.Handler
	counts map[markup.Tag]int
	feeds  int
}

// NewCounter wraps next.
func NewCounter(next markup.Handler) *Counter {
	return &Counter{
		next:   next,
		counts: make(map[markup.Tag]int),
	}
}

// Start implements markup.Handler.
func (c *Counter) Start(tag markup.Tag) {
	c.counts[tag]++
	c.next.Start(tag)
}

// End implements markup.Handler.
func (c *Counter) End(tag markup.Tag) {
	c.next.End(tag)
}

// Feed implements markup.Handler.
func (c *Counter) Feed(text string) {
	c.feeds++
	c.next.Feed(text)
}

// Sub implements markup.Handler.
func (c *Counter) Sub(name string) markup.SubFunc {
	return c.next.Sub(name)
}

// Count returns the number of elements started with tag.
func (c *Counter) Count(tag markup.Tag) int {
	return c.counts[tag]
}

// Counts returns a copy of the per-tag element counts.
func (c *Counter) Counts() map[markup.Tag]int {
	return maps.Clone(c.counts)
}

// Blocks returns the number of classified blocks, one per leaf element
// opened for a block.
func (c *Counter) Blocks() int {
	return c.counts[markup.TagTitle] +
		c.counts[markup.TagHeading] +
		c.counts[markup.TagParagraph] +
		c.counts[markup.TagListItem] +
		c.counts[markup.TagTableRows]
}

// Feeds returns the number of Feed calls.
func (c *Counter) Feeds() int {
	return c.feeds
}
