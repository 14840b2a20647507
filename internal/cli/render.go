package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomarkup/internal/logging"
	"github.com/yaklabco/gomarkup/internal/ui/pretty"
	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/fsutil"
	"github.com/yaklabco/gomarkup/pkg/markup"
	"github.com/yaklabco/gomarkup/pkg/markup/rules"
	"github.com/yaklabco/gomarkup/pkg/render"
	"github.com/yaklabco/gomarkup/pkg/reporter"
	"github.com/yaklabco/gomarkup/pkg/runner"
)

type renderFlags struct {
	format           string
	title            string
	outDir           string
	output           string
	report           string
	jobs             int
	headingMaxLength int
	ignore           []string
	disableRules     []string
	disableFilters   []string
	dryRun           bool
	normalize        bool
	detailed         bool
	compact          bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:     "render [paths...]",
		Short:   "Convert text files or stdin",
		Long:    renderLongDescription,
		Example: renderExamples,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	addRenderFlags(cmd, flags)

	return cmd
}

const renderLongDescription = `Convert lightweight markup into the selected output format.

With no paths, reads stdin and writes the result to stdout or --output.
With paths, converts every .txt and .text file found (directories are
walked recursively) and writes each output next to its input, or into
--out-dir, then prints a report.`

const renderExamples = `  gomarkup render < notes.txt               # HTML on stdout
  gomarkup render --format term < notes.txt # styled terminal output
  gomarkup render docs/                     # convert a directory
  gomarkup render --format md --out-dir build docs/
  gomarkup render --dry-run --report json docs/`

func addRenderFlags(cmd *cobra.Command, flags *renderFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "html",
		"output format: html, tree, term, markdown, events")
	cmd.Flags().StringVar(&flags.title, "title", "", "document title for formats that have one")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "directory for converted files (default: next to input)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write stdin conversion to this file instead of stdout")
	cmd.Flags().StringVar(&flags.report, "report", "text", "run report format: text, json")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&flags.headingMaxLength, "heading-max-length", 0,
		"longest single line treated as a heading (0 = config or default)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.disableRules, "disable-rule", nil, "rule names to disable")
	cmd.Flags().StringSliceVar(&flags.disableFilters, "disable-filter", nil, "filter names to disable")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "convert without writing output files")
	cmd.Flags().BoolVar(&flags.normalize, "normalize", false, "apply Unicode NFC normalization to input")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "print a detailed summary with per-element counts")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON in the events format and json report")
}

// cliConfig maps explicitly set flags onto a config overlay.
func (f *renderFlags) cliConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{
		Title:            f.title,
		OutDir:           f.outDir,
		Jobs:             f.jobs,
		HeadingMaxLength: f.headingMaxLength,
		Ignore:           f.ignore,
		DisableRules:     f.disableRules,
		DisableFilters:   f.disableFilters,
		DryRun:           f.dryRun,
		NormalizeUnicode: f.normalize,
	}

	if cmd.Flags().Changed("format") {
		format, err := config.ParseOutputFormat(f.format)
		if err != nil {
			return nil, fmt.Errorf("%w: --format: %w", ErrUsage, err)
		}
		cfg.Format = format
	}
	if cmd.Flags().Changed("report") {
		report, err := config.ParseReportFormat(f.report)
		if err != nil {
			return nil, fmt.Errorf("%w: --report: %w", ErrUsage, err)
		}
		cfg.Report = report
	}
	if f.jobs < 0 {
		return nil, fmt.Errorf("%w: --jobs must be >= 0", ErrUsage)
	}
	if f.headingMaxLength < 0 {
		return nil, fmt.Errorf("%w: --heading-max-length must be >= 0", ErrUsage)
	}

	return cfg, nil
}

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	ctx, logger := commandContext(cmd)

	cliCfg, err := flags.cliConfig(cmd)
	if err != nil {
		return err
	}

	cfg, workDir, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		return renderStdin(ctx, cmd, cfg, flags, logger)
	}

	if flags.output != "" {
		return fmt.Errorf("%w: --output applies to stdin input; use --out-dir with paths", ErrUsage)
	}

	return renderPaths(ctx, cmd, args, workDir, cfg, flags, logger)
}

// renderStdin converts stdin to stdout or --output.
func renderStdin(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	flags *renderFlags,
	logger *log.Logger,
) error {
	in, err := openInput(cmd, "")
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	stdout := cmd.OutOrStdout()

	var out io.Writer = stdout
	var buf bytes.Buffer
	if flags.output != "" {
		out = &buf
	}

	opts := render.Options{Title: cfg.Title, Compact: flags.compact}
	if cfg.Format == config.FormatTerm && flags.output == "" {
		opts.Color = pretty.IsColorEnabled(colorMode(cmd), stdout)
		opts.Width = terminalWidth(stdout)
		logger.Debug("terminal output", logging.FieldWidth, opts.Width)
	}

	renderer, err := render.New(cfg.Format, out, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	parser, err := rules.NewParser(renderer, cfg, markup.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create parser: %w", err)
	}

	if err := parser.Parse(ctx, in); err != nil {
		return fmt.Errorf("convert stdin: %w", err)
	}
	if err := renderer.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if flags.output == "" {
		return nil
	}
	if cfg.DryRun {
		logger.Info("dry run; output not written", logging.FieldOutput, flags.output)
		return nil
	}
	if err := fsutil.WriteAtomic(ctx, flags.output, buf.Bytes(), 0); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}
	logger.Debug("wrote output", logging.FieldOutput, flags.output)
	return nil
}

// renderPaths runs the batch converter over paths and reports the result.
func renderPaths(
	ctx context.Context,
	cmd *cobra.Command,
	paths []string,
	workDir string,
	cfg *config.Config,
	flags *renderFlags,
	logger *log.Logger,
) error {
	convRunner := runner.New(runner.NewConverter(logger))

	runOpts := runner.Options{
		Paths:      paths,
		WorkingDir: workDir,
		Jobs:       cfg.Jobs,
		Config:     cfg,
		Logger:     logger,
	}

	logger.Debug("starting conversion run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := convRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("conversion run failed"), err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      cfg.Report,
		Color:       colorMode(cmd),
		ShowSummary: true,
		Detailed:    flags.detailed,
		Compact:     flags.compact,
		DryRun:      cfg.DryRun,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("%w: create reporter: %w", ErrUsage, err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrConversionFailed
	}
	return nil
}
