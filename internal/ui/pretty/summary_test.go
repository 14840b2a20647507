package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomarkup/internal/ui/pretty"
	"github.com/yaklabco/gomarkup/pkg/markup"
	"github.com/yaklabco/gomarkup/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "no files",
			stats: runner.Stats{},
			want:  "No files to convert\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesDiscovered: 1, FilesConverted: 1, FilesWritten: 1, Blocks: 1},
			want:  "Converted 1 file (1 block), 1 written\n",
		},
		{
			name: "mixed outcomes",
			stats: runner.Stats{
				FilesDiscovered: 5,
				FilesConverted:  3,
				FilesWritten:    2,
				FilesSkipped:    1,
				FilesErrored:    1,
				Blocks:          42,
			},
			want: "Converted 3 files (42 blocks), 2 written, 1 skipped, 1 failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered: 4,
		FilesConverted:  3,
		FilesWritten:    3,
		FilesErrored:    1,
		Blocks:          12,
		ByTag: map[markup.Tag]int{
			markup.TagDocument:  3,
			markup.TagParagraph: 7,
			markup.TagHeading:   5,
		},
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files discovered:  4")
	assert.Contains(t, result, "Files converted:   3")
	assert.Contains(t, result, "Files failed:      1")
	assert.Contains(t, result, "Blocks:            12")
	assert.Contains(t, result, "heading:")
	assert.Contains(t, result, "paragraph:")
	assert.NotContains(t, result, "document:")
	assert.NotContains(t, result, "Files skipped:")
	assert.Contains(t, result, "Conversion failed")
	assert.Less(t, strings.Index(result, "heading:"), strings.Index(result, "paragraph:"))
}

func TestFormatSummary_Success(t *testing.T) {
	t.Parallel()

	result := pretty.NewStyles(false).FormatSummary(runner.Stats{FilesDiscovered: 1, FilesConverted: 1})
	assert.Contains(t, result, "Conversion complete")
}

func TestFormatFileOutcome(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	conv := &runner.Conversion{Blocks: 3, Written: true}

	tests := []struct {
		name    string
		outcome runner.FileOutcome
		dryRun  bool
		want    string
	}{
		{
			name:    "written",
			outcome: runner.FileOutcome{Conversion: conv},
			want:    "a.txt -> a.html (3 blocks)\n",
		},
		{
			name:    "unchanged",
			outcome: runner.FileOutcome{Conversion: &runner.Conversion{Blocks: 1}},
			want:    "a.txt -> a.html (1 block) unchanged\n",
		},
		{
			name:    "dry run",
			outcome: runner.FileOutcome{Conversion: &runner.Conversion{Blocks: 1}},
			dryRun:  true,
			want:    "a.txt -> a.html (1 block) dry run\n",
		},
		{
			name:    "skipped",
			outcome: runner.FileOutcome{Skipped: true, Error: runner.ErrBinaryInput},
			want:    "a.txt: skipped: binary input\n",
		},
		{
			name:    "failed",
			outcome: runner.FileOutcome{Error: errors.New("boom")},
			want:    "a.txt: error: boom\n",
		},
		{
			name:    "empty",
			outcome: runner.FileOutcome{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatFileOutcome("a.txt", "a.html", tt.outcome, tt.dryRun))
		})
	}
}
