package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/gomarkup/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the report format.
	Format config.ReportFormat

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Detailed replaces the one-line summary with a block including
	// per-element counts.
	Detailed bool

	// Compact uses minified output where applicable.
	Compact bool

	// DryRun marks outputs as not written.
	DryRun bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      config.ReportText,
		Color:       "auto",
		ShowSummary: true,
	}
}
