package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gomarkup/pkg/markup"
	"github.com/yaklabco/gomarkup/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path    string             `json:"path"`
	Output  string             `json:"output,omitempty"`
	Blocks  int                `json:"blocks"`
	Counts  map[markup.Tag]int `json:"counts,omitempty"`
	Written bool               `json:"written"`
	Skipped bool               `json:"skipped,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int                `json:"filesDiscovered"`
	FilesConverted  int                `json:"filesConverted"`
	FilesSkipped    int                `json:"filesSkipped"`
	FilesErrored    int                `json:"filesErrored"`
	FilesWritten    int                `json:"filesWritten"`
	Blocks          int                `json:"blocks"`
	ByTag           map[markup.Tag]int `json:"byTag"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesErrored, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByTag: make(map[markup.Tag]int),
		},
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesConverted:  stats.FilesConverted,
		FilesSkipped:    stats.FilesSkipped,
		FilesErrored:    stats.FilesErrored,
		FilesWritten:    stats.FilesWritten,
		Blocks:          stats.Blocks,
		ByTag:           stats.ByTag,
	}
	if output.Summary.ByTag == nil {
		output.Summary.ByTag = make(map[markup.Tag]int)
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:    relPath(r.opts.WorkingDir, file.Path),
			Skipped: file.Skipped,
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		if conv := file.Conversion; conv != nil {
			fileResult.Output = relPath(r.opts.WorkingDir, conv.OutputPath)
			fileResult.Blocks = conv.Blocks
			fileResult.Counts = conv.Counts
			fileResult.Written = conv.Written
		}
		output.Files = append(output.Files, fileResult)
	}

	return output
}
