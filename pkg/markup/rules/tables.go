package rules

import (
	"strings"

	"github.com/yaklabco/gomarkup/pkg/markup"
)

// columnSeparator starts every table row block and separates its columns.
const columnSeparator = "|"

// TableRowRule classifies blocks starting with a pipe as table rows.
//
// The first row the rule renders uses header cells; every later row uses
// data cells. The switch happens once per rule instance and is never reset,
// so a second table in the same document has no header row.
type TableRowRule struct {
	markup.BaseRule
	cellTag markup.Tag
}

// NewTableRowRule creates a table row rule that starts in header mode.
func NewTableRowRule(markup.RuleOptions) *TableRowRule {
	return &TableRowRule{
		BaseRule: markup.NewBaseRule(
			RuleTableRow,
			markup.TagTableRows,
			"A block whose first character is a pipe; columns are pipe separated",
		),
		cellTag: markup.TagTableHead,
	}
}

// CellTag returns the tag the next row will use for its cells.
func (r *TableRowRule) CellTag() markup.Tag {
	return r.cellTag
}

// Condition reports whether block starts with the column separator.
func (r *TableRowRule) Condition(block markup.Block) bool {
	return strings.HasPrefix(block.Text, columnSeparator)
}

// Action emits one row with a cell per column.
func (r *TableRowRule) Action(block markup.Block, handler markup.Handler) bool {
	handler.Start(r.Tag())

	for _, column := range SplitColumns(block.Text) {
		markup.Emit(handler, r.cellTag, column)
	}
	r.cellTag = markup.TagTableData

	handler.End(r.Tag())
	return true
}

// SplitColumns removes the leading separator of a row and splits the rest
// into trimmed columns.
func SplitColumns(row string) []string {
	body := strings.TrimSpace(strings.TrimPrefix(row, columnSeparator))
	columns := strings.Split(body, columnSeparator)
	for i, column := range columns {
		columns[i] = strings.TrimSpace(column)
	}
	return columns
}

// NewTableRule creates the gate wrapping consecutive rows in a table.
func NewTableRule(opts markup.RuleOptions) *GateRule {
	return newGateRule(
		RuleTable,
		markup.TagTable,
		"Wraps consecutive table rows in a single table",
		NewTableRowRule(opts),
	)
}
