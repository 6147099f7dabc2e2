package table

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the semantic type inferred for a column.
type Kind int

const (
	KindEmpty Kind = iota
	KindNumeric
	KindBoolean
	KindCategorical
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindBoolean:
		return "boolean"
	case KindCategorical:
		return "categorical"
	default:
		return "empty"
	}
}

// Column is a named sequence of cells. A nil cell marks a missing value.
type Column struct {
	Name   string
	Values []any
}

// Kind reports the semantic type of the column. Any string cell, a mix of
// booleans and numbers, or booleans with missing cells make the column categorical.
func (c *Column) Kind() Kind {
	var num, boolean, other, missing bool
	for _, v := range c.Values {
		if IsMissing(v) {
			missing = true
			continue
		}
		switch v.(type) {
		case float64, float32, int, int64, int32:
			num = true
		case bool:
			boolean = true
		default:
			other = true
		}
	}
	switch {
	case other || (num && boolean) || (boolean && missing):
		return KindCategorical
	case num:
		return KindNumeric
	case boolean:
		return KindBoolean
	default:
		return KindEmpty
	}
}

// Missing counts the missing cells in the column.
func (c *Column) Missing() int {
	n := 0
	for _, v := range c.Values {
		if IsMissing(v) {
			n++
		}
	}
	return n
}

// Table is an ordered set of equally long columns.
type Table struct {
	cols  []*Column
	index map[string]int
	rows  int
}

// New returns an empty table whose columns must each hold rows cells.
func New(rows int) *Table {
	return &Table{index: make(map[string]int), rows: rows}
}

// AddColumn appends a column. The column takes ownership of values.
func (t *Table) AddColumn(name string, values []any) error {
	if _, dup := t.index[name]; dup {
		return fmt.Errorf("duplicate column %q", name)
	}
	if len(values) != t.rows {
		return fmt.Errorf("column %q has %d cells, expected %d", name, len(values), t.rows)
	}
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, &Column{Name: name, Values: values})
	return nil
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// Columns returns the columns in order. Mutating a column's Values mutates the table.
func (t *Table) Columns() []*Column { return t.cols }

// Names returns the column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Column looks up a column by exact name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Has reports whether a column with exactly this name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Row returns row i keyed by column name.
func (t *Table) Row(i int) map[string]any {
	row := make(map[string]any, len(t.cols))
	for _, c := range t.cols {
		row[c.Name] = c.Values[i]
	}
	return row
}

// IsMissing reports whether v is a missing-value marker (nil or NaN).
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

// FormatValue renders a cell as the string used for sorting and encoding.
// Missing cells render as the empty string.
func FormatValue(v any) string {
	if IsMissing(v) {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
