package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomarkup/internal/logging"
	"github.com/yaklabco/gomarkup/pkg/markup"
	"github.com/yaklabco/gomarkup/pkg/markup/rules"
	"github.com/yaklabco/gomarkup/pkg/render"
)

type inspectFlags struct {
	json bool
}

// blockInfo describes how one block was classified.
type blockInfo struct {
	Index  int            `json:"index"`
	Line   int            `json:"line"`
	Rule   string         `json:"rule"`
	Text   string         `json:"text"`
	Events []render.Event `json:"events"`
}

// inspection is the JSON form of the inspect output.
type inspection struct {
	Blocks  []blockInfo    `json:"blocks"`
	Closing []render.Event `json:"closing,omitempty"`
}

func newInspectCommand() *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show how each block is classified",
		Long: `Parse a file, or stdin, and print every block with the rule that
classified it and the events it produced. Events emitted at document
end, such as a list closed by the last block, are listed separately.

Examples:
  gomarkup inspect notes.txt
  gomarkup inspect --json < notes.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runInspect(cmd, path, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "output as JSON")

	return cmd
}

func runInspect(cmd *cobra.Command, path string, flags *inspectFlags) error {
	ctx, logger := commandContext(cmd)

	cfg, _, err := loadConfig(ctx, cmd, nil)
	if err != nil {
		return err
	}

	in, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	rec := render.NewRecorder()
	result := inspection{Blocks: []blockInfo{}}
	mark := 0

	observe := func(block markup.Block, rule string) {
		events := rec.Events()
		result.Blocks = append(result.Blocks, blockInfo{
			Index:  block.Index,
			Line:   block.Line,
			Rule:   rule,
			Text:   block.Text,
			Events: withoutDocument(events[mark:]),
		})
		mark = len(events)
	}

	parser, err := rules.NewParser(rec, cfg, markup.WithLogger(logger), markup.WithObserver(observe))
	if err != nil {
		return fmt.Errorf("create parser: %w", err)
	}
	if err := parser.Parse(ctx, in); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}

	events := rec.Events()
	result.Closing = withoutDocument(events[mark:])

	if flags.json {
		return writeInspectionJSON(cmd.OutOrStdout(), result)
	}

	writeInspection(logging.NewWithWriter(cmd.OutOrStdout(), "info"), result)
	return nil
}

// withoutDocument drops document start and end events.
func withoutDocument(events []render.Event) []render.Event {
	kept := make([]render.Event, 0, len(events))
	for _, e := range events {
		if e.Tag == markup.TagDocument {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

func writeInspectionJSON(w io.Writer, result inspection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding inspection: %w", err)
	}
	return nil
}

func writeInspection(logger *log.Logger, result inspection) {
	if len(result.Blocks) == 0 {
		logger.Info("no blocks")
		return
	}

	for _, block := range result.Blocks {
		rule := block.Rule
		if rule == "" {
			rule = "(none)"
		}
		logger.Info(rule,
			logging.FieldLine, block.Line,
			logging.FieldEvents, eventStrings(block.Events),
		)
	}
	if len(result.Closing) > 0 {
		logger.Info("end of document", logging.FieldEvents, eventStrings(result.Closing))
	}
}

func eventStrings(events []render.Event) string {
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}
