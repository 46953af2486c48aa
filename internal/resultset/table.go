// Package resultset converts heterogeneous WAAPI object lists into a
// column-stable table suitable for display and CSV export.
package resultset

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Table holds normalized query results. Columns are unique and appear in
// first-seen order across all rows. Every row has an entry for every
// column; values for keys absent from the source object are "".
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// Value returns the cell for the given row and column, falling back to ""
// so callers never need a missing-key check.
func (t *Table) Value(row int, column string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][column]
}

// WriteCSV serializes the table as RFC 4180 CSV: one header record with the
// columns in order, then one record per row. Output round-trips through any
// conforming CSV reader.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
