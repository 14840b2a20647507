package runner

import "github.com/yaklabco/gomarkup/pkg/markup"

// FileOutcome wraps a Conversion with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Conversion contains the conversion result for this file.
	// Nil if the file was skipped or failed.
	Conversion *Conversion

	// Skipped is true if the file was not convertible input.
	Skipped bool

	// Error is set if the file could not be processed. For skipped files it
	// carries the skip reason.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesConverted is the number of files successfully converted.
	FilesConverted int

	// FilesSkipped is the number of files rejected as binary, script or
	// generated input.
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWritten is the number of output files created or changed.
	FilesWritten int

	// Blocks is the total number of classified blocks.
	Blocks int

	// ByTag maps element tags to the number of elements started.
	ByTag map[markup.Tag]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to convert.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Errors returns the errors of failed files in result order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil && !f.Skipped {
			errs = append(errs, f.Error)
		}
	}
	return errs
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		ByTag: make(map[markup.Tag]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Skipped:
		r.Stats.FilesSkipped++
		return
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Conversion == nil:
		return
	}

	r.Stats.FilesConverted++
	if outcome.Conversion.Written {
		r.Stats.FilesWritten++
	}
	r.Stats.Blocks += outcome.Conversion.Blocks
	for tag, n := range outcome.Conversion.Counts {
		r.Stats.ByTag[tag] += n
	}
}
