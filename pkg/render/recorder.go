package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/gomarkup/pkg/markup"
)

// EventKind identifies a handler call.
type EventKind string

const (
	EventStart EventKind = "start"
	EventEnd   EventKind = "end"
	EventFeed  EventKind = "feed"
)

// Event is one recorded handler call.
type Event struct {
	Kind EventKind  `json:"kind"`
	Tag  markup.Tag `json:"tag,omitempty"`
	Text string     `json:"text,omitempty"`
}

// String returns a compact form such as "start:list" or "feed:hello".
func (e Event) String() string {
	if e.Kind == EventFeed {
		return string(e.Kind) + ":" + e.Text
	}
	return string(e.Kind) + ":" + string(e.Tag)
}

// Recorder records handler calls instead of rendering markup.
//
// Substitutions wrap the first capture group in brackets named after the
// filter, e.g. "[emphasis:word]", so tests can see which filter fired.
// With a writer attached, Flush writes the events as JSON.
type Recorder struct {
	events  []Event
	w       io.Writer
	compact bool
	err     error
}

// NewRecorder creates an in-memory recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// NewRecorderWriter creates a recorder that writes its events as JSON on Flush.
func NewRecorderWriter(w io.Writer, opts Options) *Recorder {
	return &Recorder{w: w, compact: opts.Compact}
}

// Start implements markup.Handler.
func (r *Recorder) Start(tag markup.Tag) {
	r.events = append(r.events, Event{Kind: EventStart, Tag: tag})
}

// End implements markup.Handler.
func (r *Recorder) End(tag markup.Tag) {
	r.events = append(r.events, Event{Kind: EventEnd, Tag: tag})
}

// Feed implements markup.Handler.
func (r *Recorder) Feed(text string) {
	r.events = append(r.events, Event{Kind: EventFeed, Text: text})
}

// Sub implements markup.Handler.
func (r *Recorder) Sub(name string) markup.SubFunc {
	return func(m []string) string {
		return "[" + name + ":" + group(m, 1) + "]"
	}
}

// Events returns the recorded events.
func (r *Recorder) Events() []Event {
	result := make([]Event, len(r.events))
	copy(result, r.events)
	return result
}

// Strings returns the recorded events in their compact String form.
func (r *Recorder) Strings() []string {
	result := make([]string, len(r.events))
	for i, e := range r.events {
		result[i] = e.String()
	}
	return result
}

// Tags returns the tags of all start events, in order.
func (r *Recorder) Tags() []markup.Tag {
	var tags []markup.Tag
	for _, e := range r.events {
		if e.Kind == EventStart {
			tags = append(tags, e.Tag)
		}
	}
	return tags
}

// Feeds returns the text of all feed events, in order.
func (r *Recorder) Feeds() []string {
	var feeds []string
	for _, e := range r.events {
		if e.Kind == EventFeed {
			feeds = append(feeds, e.Text)
		}
	}
	return feeds
}

// Reset discards all recorded events.
func (r *Recorder) Reset() {
	r.events = r.events[:0]
}

// Balanced reports whether every start has a matching end in nesting order.
func (r *Recorder) Balanced() bool {
	var stack []markup.Tag
	for _, e := range r.events {
		switch e.Kind {
		case EventStart:
			stack = append(stack, e.Tag)
		case EventEnd:
			if len(stack) == 0 || stack[len(stack)-1] != e.Tag {
				return false
			}
			stack = stack[:len(stack)-1]
		case EventFeed:
		}
	}
	return len(stack) == 0
}

// Flush implements Renderer. Without a writer it does nothing.
func (r *Recorder) Flush() error {
	if r.w == nil || r.err != nil {
		return r.err
	}

	enc := json.NewEncoder(r.w)
	if !r.compact {
		enc.SetIndent("", "  ")
	}
	events := r.events
	if events == nil {
		events = []Event{}
	}
	if err := enc.Encode(events); err != nil {
		r.err = fmt.Errorf("encode events: %w", err)
	}
	return r.err
}

// Dump returns the events one per line, for debugging test failures.
func (r *Recorder) Dump() string {
	return strings.Join(r.Strings(), "\n")
}
