// Package reporter writes batch conversion results.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/runner"
)

// Reporter formats and writes conversion results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of failed files and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	switch opts.Format {
	case config.ReportText, "":
		return NewTextReporter(opts), nil
	case config.ReportJSON:
		return NewJSONReporter(opts), nil
	default:
		return nil, fmt.Errorf("%w: report format %q", config.ErrUnknownFormat, opts.Format)
	}
}

// relPath makes path relative to workDir when possible.
func relPath(workDir, path string) string {
	if workDir == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}
