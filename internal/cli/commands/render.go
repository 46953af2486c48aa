package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/wwise-tools/waql/internal/executor"
	"github.com/wwise-tools/waql/internal/resultset"
)

// renderOutcome writes a query outcome in the requested format. Responses
// without tabular data (count-style results, service errors reported in the
// body) are shown as the raw pretty-printed JSON regardless of format.
func renderOutcome(w io.Writer, out *executor.Outcome, format string) error {
	if out.Table == nil {
		_, err := fmt.Fprintln(w, out.RawJSON)
		return err
	}

	switch format {
	case "json":
		_, err := fmt.Fprintln(w, out.RawJSON)
		return err
	case "csv":
		return out.Table.WriteCSV(w)
	case "md", "markdown":
		return renderMarkdown(w, out.Table)
	default:
		return renderTable(w, out.Table)
	}
}

func renderTable(w io.Writer, tbl *resultset.Table) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetAutoIndex(true)

	t.AppendHeader(headerRow(tbl.Columns))
	for _, row := range tbl.Rows {
		t.AppendRow(dataRow(tbl.Columns, row))
	}

	t.Render()
	_, err := fmt.Fprintf(w, "(%d rows)\n", len(tbl.Rows))
	return err
}

func renderMarkdown(w io.Writer, tbl *resultset.Table) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	t.AppendHeader(headerRow(tbl.Columns))
	for _, row := range tbl.Rows {
		t.AppendRow(dataRow(tbl.Columns, row))
	}

	t.RenderMarkdown()
	return nil
}

func headerRow(columns []string) table.Row {
	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	return header
}

func dataRow(columns []string, row map[string]string) table.Row {
	out := make(table.Row, len(columns))
	for i, col := range columns {
		out[i] = row[col]
	}
	return out
}
