package parser

import (
	"encoding/json"
	"fmt"

	"github.com/KaramelBytes/riskprep-cli/internal/table"
)

// rowsStrategy decodes an array of row objects. Column order follows the
// first appearance of each key; keys absent from a row become missing cells.
type rowsStrategy struct{}

func (rowsStrategy) Name() string { return "rows" }

func (rowsStrategy) Match(tok json.Token) bool {
	d, ok := tok.(json.Delim)
	return ok && d == '['
}

func (rowsStrategy) Decode(dec *json.Decoder) (*table.Table, error) {
	var names []string
	seen := map[string]struct{}{}
	var rows []map[string]any
	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("row %d: %w", len(rows), err)
		}
		row := map[string]any{}
		for dec.More() {
			key, err := readKey(dec)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", len(rows), err)
			}
			v, err := readCell(dec)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", len(rows), key, err)
			}
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				names = append(names, key)
			}
			row[key] = v
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, fmt.Errorf("row %d: %w", len(rows), err)
		}
		rows = append(rows, row)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}

	t := table.New(len(rows))
	for _, name := range names {
		vals := make([]any, len(rows))
		for i, r := range rows {
			vals[i] = r[name]
		}
		if err := t.AddColumn(name, vals); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotTabular, err)
		}
	}
	return t, nil
}
