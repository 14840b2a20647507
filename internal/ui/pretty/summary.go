package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gomarkup/pkg/markup"
	"github.com/yaklabco/gomarkup/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Converted 3 files (42 blocks), 2 written, 1 skipped, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No files to convert") + "\n"
	}

	head := fmt.Sprintf("Converted %d %s", stats.FilesConverted, plural(stats.FilesConverted, wordFile, wordFiles))
	if stats.FilesErrored > 0 {
		head = s.Failure.Render(head)
	} else {
		head = s.Success.Render(head)
	}

	parts := []string{
		head + s.Dim.Render(fmt.Sprintf(" (%d %s)", stats.Blocks, plural(stats.Blocks, "block", "blocks"))),
	}
	if stats.FilesWritten > 0 {
		parts = append(parts, fmt.Sprintf("%d written", stats.FilesWritten))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block with per-element
// counts.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	writeRow := func(label string, value int, style func(...string) string) {
		fmt.Fprintf(&builder, "  %-18s %s\n", label+":", style(strconv.Itoa(value)))
	}

	writeRow("Files discovered", stats.FilesDiscovered, s.SummaryValue.Render)
	writeRow("Files converted", stats.FilesConverted, s.SummaryValue.Render)
	if stats.FilesWritten > 0 {
		writeRow("Files written", stats.FilesWritten, s.Success.Render)
	}
	if stats.FilesSkipped > 0 {
		writeRow("Files skipped", stats.FilesSkipped, s.Warning.Render)
	}
	if stats.FilesErrored > 0 {
		writeRow("Files failed", stats.FilesErrored, s.Failure.Render)
	}

	builder.WriteString("\n")
	writeRow("Blocks", stats.Blocks, s.SummaryValue.Render)

	tags := make([]markup.Tag, 0, len(stats.ByTag))
	for tag, n := range stats.ByTag {
		if n > 0 && tag != markup.TagDocument {
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	for _, tag := range tags {
		fmt.Fprintf(&builder, "    %-16s %s\n", string(tag)+":", s.Dim.Render(strconv.Itoa(stats.ByTag[tag])))
	}

	builder.WriteString("\n")
	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Conversion failed"))
	} else {
		builder.WriteString(s.Success.Render("Conversion complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatFileOutcome formats one file's outcome as a single line:
// "path -> output (n blocks)", "path: skipped: reason" or "path: error: err".
// Paths are shown as given; callers relativize them.
func (s *Styles) FormatFileOutcome(path, output string, outcome runner.FileOutcome, dryRun bool) string {
	switch {
	case outcome.Skipped:
		return fmt.Sprintf("%s: %s\n",
			s.FilePath.Render(path),
			s.Warning.Render(fmt.Sprintf("skipped: %v", outcome.Error)))
	case outcome.Error != nil:
		return fmt.Sprintf("%s: %s\n",
			s.FilePath.Render(path),
			s.Error.Render(fmt.Sprintf("error: %v", outcome.Error)))
	case outcome.Conversion == nil:
		return ""
	}

	conv := outcome.Conversion
	var status string
	switch {
	case dryRun:
		status = s.Dim.Render(" dry run")
	case !conv.Written:
		status = s.Dim.Render(" unchanged")
	}
	return fmt.Sprintf("%s %s %s%s%s\n",
		s.FilePath.Render(path),
		s.Arrow.Render("->"),
		s.Output.Render(output),
		s.Dim.Render(fmt.Sprintf(" (%d %s)", conv.Blocks, plural(conv.Blocks, "block", "blocks"))),
		status,
	)
}
