package markup

import (
	"iter"
	"strings"
)

// Block is a blank-line delimited unit of input text.
type Block struct {
	// Index is the 0-based position of the block in the document.
	Index int

	// Line is the 1-based input line on which the block starts.
	Line int

	// Text is the block content. Inline filters replace it as they run.
	Text string
}

// Blocks returns the blocks of text in document order.
//
// A block is a maximal run of non-blank lines joined with "\n" and trimmed
// of surrounding whitespace. A line is blank when it holds only whitespace.
// "\r\n", "\r" and "\n" are all accepted as line terminators. Leading and
// trailing blank runs never produce empty blocks.
//
// The returned sequence may be iterated any number of times.
func Blocks(text string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		lines := splitLines(text)

		index := 0
		start := -1

		emit := func(end int) bool {
			block := Block{
				Index: index,
				Line:  start + 1,
				Text:  strings.TrimSpace(strings.Join(lines[start:end], "\n")),
			}
			index++
			start = -1
			return yield(block)
		}

		for lineIdx, line := range lines {
			if strings.TrimSpace(line) == "" {
				if start >= 0 && !emit(lineIdx) {
					return
				}
				continue
			}
			if start < 0 {
				start = lineIdx
			}
		}

		if start >= 0 {
			emit(len(lines))
		}
	}
}

// Split returns all blocks of text as a slice.
func Split(text string) []Block {
	var blocks []Block
	for block := range Blocks(text) {
		blocks = append(blocks, block)
	}
	return blocks
}

// Join reassembles block texts separated by a single blank line.
// Split(Join(Split(text))) yields the same block texts as Split(text).
func Join(blocks []Block) string {
	texts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		texts = append(texts, block.Text)
	}
	return strings.Join(texts, "\n\n")
}

// splitLines breaks text into lines, accepting mixed line terminators.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
