// Package runner provides multi-file conversion orchestration.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomarkup/pkg/config"
)

// Options controls multi-file conversion behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// picked up from directories. Defaults to Config.EffectiveExtensions().
	Extensions []string

	// ExcludeGlobs are doublestar patterns used to skip files or directories,
	// relative to WorkingDir. These merge ignore rules from config and CLI.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config

	// Logger receives per-file debug output. Nil discards it.
	Logger *log.Logger
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return o.Config.EffectiveExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// excludeGlobs returns ExcludeGlobs plus the config's ignore patterns.
func (o Options) excludeGlobs() []string {
	globs := append([]string(nil), o.ExcludeGlobs...)
	if o.Config != nil {
		globs = append(globs, o.Config.Ignore...)
	}
	return globs
}
