package parser

import (
	"encoding/json"
	"fmt"

	"github.com/KaramelBytes/riskprep-cli/internal/table"
)

// columnsStrategy decodes an object whose members are equally long arrays of cells.
type columnsStrategy struct{}

func (columnsStrategy) Name() string { return "columns" }

func (columnsStrategy) Match(tok json.Token) bool {
	d, ok := tok.(json.Delim)
	return ok && d == '{'
}

func (columnsStrategy) Decode(dec *json.Decoder) (*table.Table, error) {
	type column struct {
		name string
		vals []any
	}
	var cols []column
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if err := expectDelim(dec, '['); err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		vals := []any{}
		for dec.More() {
			v, err := readCell(dec)
			if err != nil {
				return nil, fmt.Errorf("column %q, row %d: %w", name, len(vals), err)
			}
			vals = append(vals, v)
		}
		if err := expectDelim(dec, ']'); err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		cols = append(cols, column{name: name, vals: vals})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}

	rows := 0
	if len(cols) > 0 {
		rows = len(cols[0].vals)
	}
	t := table.New(rows)
	for _, c := range cols {
		if err := t.AddColumn(c.name, c.vals); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotTabular, err)
		}
	}
	return t, nil
}
