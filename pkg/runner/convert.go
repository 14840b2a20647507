package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/fsutil"
	"github.com/yaklabco/gomarkup/pkg/markup"
	"github.com/yaklabco/gomarkup/pkg/markup/rules"
	"github.com/yaklabco/gomarkup/pkg/render"
	"github.com/yaklabco/gomarkup/pkg/sniff"
)

// Conversion errors. ErrBinaryInput, ErrScriptInput and ErrGeneratedInput
// mark skipped files rather than failures.
var (
	// ErrBinaryInput indicates the file holds binary data.
	ErrBinaryInput = errors.New("binary input")

	// ErrScriptInput indicates the file is an executable script.
	ErrScriptInput = errors.New("script input")

	// ErrGeneratedInput indicates the file was generated by a tool.
	ErrGeneratedInput = errors.New("generated input")

	// ErrSourceChanged indicates the source was modified during conversion.
	ErrSourceChanged = errors.New("source changed during conversion")

	// ErrOutputConflict indicates several inputs of one run map to the same
	// output file.
	ErrOutputConflict = errors.New("output path conflict")
)

// IsSkip reports whether err marks a skipped file.
func IsSkip(err error) bool {
	return errors.Is(err, ErrBinaryInput) ||
		errors.Is(err, ErrScriptInput) ||
		errors.Is(err, ErrGeneratedInput)
}

// Conversion is the result of converting one file.
type Conversion struct {
	// Path is the input file.
	Path string

	// OutputPath is where the output was, or would be, written.
	OutputPath string

	// Output is the rendered document.
	Output []byte

	// Blocks is the number of classified blocks.
	Blocks int

	// Counts is the number of elements started per tag.
	Counts map[markup.Tag]int

	// Written is true if the output file was created or changed.
	Written bool
}

// Converter converts single files with a resolved configuration.
type Converter struct {
	logger *log.Logger
}

// NewConverter creates a Converter. A nil logger discards output.
func NewConverter(logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Converter{logger: logger}
}

// OutputPathFor returns the file the conversion of path is written to.
func OutputPathFor(path string, cfg *config.Config) string {
	return fsutil.OutputPath(path, cfg.OutDir, cfg.Format.Extension())
}

// ConvertFile reads path, renders it in cfg.Format and, unless cfg.DryRun
// is set, writes the output atomically next to the input or into cfg.OutDir.
// Binary, script and generated inputs are rejected with a skip error.
func (c *Converter) ConvertFile(ctx context.Context, path string, cfg *config.Config) (*Conversion, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	content, src, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	switch detected := sniff.Detect(path, content); detected.Kind {
	case sniff.KindBinary:
		return nil, fmt.Errorf("%w: %s", ErrBinaryInput, path)
	case sniff.KindScript:
		return nil, fmt.Errorf("%w: %s (%s)", ErrScriptInput, path, detected.Language)
	case sniff.KindGenerated:
		return nil, fmt.Errorf("%w: %s", ErrGeneratedInput, path)
	case sniff.KindText:
	}

	conv := &Conversion{
		Path:       path,
		OutputPath: OutputPathFor(path, cfg),
	}

	var buf bytes.Buffer
	renderer, err := render.New(cfg.Format, &buf, render.Options{Title: cfg.Title})
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	counter := render.NewCounter(renderer)

	parser, err := rules.NewParser(counter, cfg, markup.WithLogger(c.logger))
	if err != nil {
		return nil, fmt.Errorf("create parser: %w", err)
	}
	if err := parser.Parse(ctx, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	if err := renderer.Flush(); err != nil {
		return nil, fmt.Errorf("render %s: %w", path, err)
	}

	conv.Output = buf.Bytes()
	conv.Blocks = counter.Blocks()
	conv.Counts = counter.Counts()

	if cfg.DryRun {
		return conv, nil
	}

	changed, err := fsutil.Changed(ctx, src)
	if err != nil {
		return nil, err
	}
	if changed {
		return nil, fmt.Errorf("%w: %s", ErrSourceChanged, path)
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, conv.OutputPath, conv.Output, 0)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", conv.OutputPath, err)
	}
	conv.Written = written

	c.logger.Debug("converted file",
		"path", path,
		"output", conv.OutputPath,
		"blocks", conv.Blocks,
		"written", written,
	)

	return conv, nil
}
