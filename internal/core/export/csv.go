package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes a header line then one line per row. Fields containing commas, quotes
// or line breaks are quoted.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(t.Columns))
		}
		for j, col := range t.Columns {
			record[j] = col.Format(row[j])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseCSV reads a file produced by WriteCSV. All cells come back as text columns.
func ParseCSV(r io.Reader) (Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("csv is empty")
	}
	t := Table{Columns: make([]Column, len(records[0])), Rows: make([][]any, 0, len(records)-1)}
	for i, name := range records[0] {
		t.Columns[i] = Column{Name: name}
	}
	for _, rec := range records[1:] {
		row := make([]any, len(rec))
		for i, v := range rec {
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
