// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// state holds the process-wide default logger.
//
//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var state struct {
	sync.Mutex
	logger *log.Logger
}

// New creates a stderr logger with the specified level.
// Valid levels: "debug", "info", "warn" (or "warning"), "error".
// Anything else selects info.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger on w with the specified level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
		Level:           ParseLevel(level),
	})
}

// NewInteractive creates an info-level logger on stdout for user-facing
// command output such as listings.
func NewInteractive() *log.Logger {
	return NewWithWriter(os.Stdout, "info")
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel converts a case-insensitive level name, defaulting to info.
func ParseLevel(level string) log.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	parsed, err := log.ParseLevel(name)
	if err != nil || name == "" {
		return log.InfoLevel
	}
	return parsed
}

// Default returns the package-level default logger, creating an info-level
// stderr logger on first use.
func Default() *log.Logger {
	state.Lock()
	defer state.Unlock()

	if state.logger == nil {
		state.logger = New("info")
	}
	return state.logger
}

// SetDefault sets the package-level default logger.
func SetDefault(logger *log.Logger) {
	state.Lock()
	defer state.Unlock()

	state.logger = logger
}

// SetLevel updates the log level of the default logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
