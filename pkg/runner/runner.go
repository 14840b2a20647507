package runner

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomarkup/pkg/config"
)

// Runner orchestrates multi-file conversion using a Converter.
type Runner struct {
	// Converter handles per-file conversion.
	Converter *Converter
}

// New creates a new Runner with the given converter.
func New(converter *Converter) *Runner {
	if converter == nil {
		converter = NewConverter(nil)
	}
	return &Runner{Converter: converter}
}

// Run discovers files under opts.Paths and converts them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// Every worker builds its own parser and renderer per file, so no rule
// state is shared between goroutines.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	conflicts := outputConflicts(files, cfg)

	outcomes := make(map[string]FileOutcome, len(files))
	work := make([]string, 0, len(files))
	for _, path := range files {
		if err, ok := conflicts[path]; ok {
			outcomes[path] = FileOutcome{Path: path, Error: err}
			continue
		}
		work = append(work, path)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(work))

	logger.Debug("starting conversion", "files", len(work), "conflicts", len(conflicts), "jobs", jobs)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Go(func() { r.worker(ctx, workCh, outCh, cfg) })
	}

	go func() {
		defer close(workCh)
		for _, path := range work {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers may complete out of order.
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker converts files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	cfg *config.Config,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- r.convert(ctx, path, cfg):
		}
	}
}

// convert turns one file into an outcome. Skips are not failures.
func (r *Runner) convert(ctx context.Context, path string, cfg *config.Config) FileOutcome {
	conv, err := r.Converter.ConvertFile(ctx, path, cfg)
	if err != nil {
		return FileOutcome{Path: path, Skipped: IsSkip(err), Error: err}
	}
	return FileOutcome{Path: path, Conversion: conv}
}

// outputConflicts maps every file whose output path is shared with another
// file of the run to an ErrOutputConflict error. None of them is converted,
// so no output overwrites another.
func outputConflicts(files []string, cfg *config.Config) map[string]error {
	byOutput := make(map[string][]string, len(files))
	for _, path := range files {
		out := OutputPathFor(path, cfg)
		byOutput[out] = append(byOutput[out], path)
	}

	conflicts := make(map[string]error)
	for out, inputs := range byOutput {
		if len(inputs) < 2 {
			continue
		}
		for _, path := range inputs {
			others := slices.DeleteFunc(slices.Clone(inputs), func(p string) bool { return p == path })
			conflicts[path] = fmt.Errorf("%w: %s and %s both write %s",
				ErrOutputConflict, path, strings.Join(others, ", "), out)
		}
	}
	return conflicts
}
