// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Conversion fields.
	FieldFormat = "format"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"
	FieldWidth  = "width"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesErrored    = "files_errored"
	FieldBlocks          = "blocks"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule and filter fields.
	FieldName        = "name"
	FieldRule        = "rule"
	FieldLine        = "line"
	FieldPattern     = "pattern"
	FieldRequired    = "required"
	FieldDescription = "description"
	FieldEvents      = "events"
)
