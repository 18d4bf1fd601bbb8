package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
)

// NewTable creates a table writing to w with the CLI's styling.
func NewTable(w io.Writer, headers ...interface{}) table.Table {
	tbl := table.New(headers...)

	tbl.WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
		return BoldStyle.Render(fmt.Sprintf(format, vals...))
	})
	tbl.WithPadding(2)

	// lipgloss.Width ignores ANSI codes when sizing columns.
	tbl.WithWidthFunc(lipgloss.Width)
	tbl.WithWriter(w)

	return tbl
}
