// Package export turns metric results into flat tables and writes them as CSV or XLSX.
package export

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ColumnKind controls how a cell is rendered.
type ColumnKind int

const (
	Text ColumnKind = iota
	Integer
	Number
	Money
)

// Column describes one table column. Precision applies to Number and Money columns.
type Column struct {
	Name      string
	Kind      ColumnKind
	Precision int32
}

// Table is a header plus rows. Every row holds one cell per column.
type Table struct {
	Columns []Column
	Rows    [][]any
}

// Header returns the column names.
func (t Table) Header() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Format renders a cell using the column's kind and precision.
func (c Column) Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', int(c.precision()), 64)
	case decimal.Decimal:
		return x.StringFixed(c.precision())
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// value returns the typed cell written to spreadsheets.
func (c Column) value(v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.Round(c.precision()).InexactFloat64()
	case float64:
		p := math.Pow10(int(c.precision()))
		return math.Round(x*p) / p
	case time.Time:
		return x.Format(time.RFC3339)
	}
	return v
}

func (c Column) precision() int32 {
	switch c.Kind {
	case Money, Number:
		if c.Precision > 0 {
			return c.Precision
		}
	}
	return 0
}

// Filename returns "<report>-YYYY-MM-DD.<ext>" for the day of now.
func Filename(report, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", report, now.Format("2006-01-02"), ext)
}
