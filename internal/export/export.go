// Package export serializes a cleaned table for downstream consumers.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KaramelBytes/riskprep-cli/internal/table"
	"github.com/KaramelBytes/riskprep-cli/internal/utils"
	"gopkg.in/yaml.v3"
)

// Format is the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Orient is the output table shape.
type Orient string

const (
	// OrientRecords writes an array of row objects.
	OrientRecords Orient = "records"
	// OrientColumns writes an object of column arrays.
	OrientColumns Orient = "columns"
)

// ParseFormat accepts json or yaml (yml).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use json or yaml)", s)
	}
}

// ParseOrient accepts records or columns.
func ParseOrient(s string) (Orient, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "records", "rows":
		return OrientRecords, nil
	case "columns":
		return OrientColumns, nil
	default:
		return "", fmt.Errorf("unsupported orient: %s (use records or columns)", s)
	}
}

// Encode renders the table in the given format and orientation. Column order is preserved.
func Encode(t *table.Table, f Format, o Orient) ([]byte, error) {
	doc := build(t, o)
	switch f {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return utils.PrettyJSON(doc)
	}
}

// WriteFile encodes the table and writes it atomically to path.
func WriteFile(path string, t *table.Table, f Format, o Orient) error {
	b, err := Encode(t, f, o)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, b)
}

// object is a JSON/YAML mapping that keeps its key order.
type object struct {
	keys []string
	vals []any
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(o.vals[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o object) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i, k := range o.keys {
		var v yaml.Node
		if err := v.Encode(o.vals[i]); err != nil {
			return nil, fmt.Errorf("column %q: %w", k, err)
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, &v)
	}
	return n, nil
}

func build(t *table.Table, o Orient) any {
	names := t.Names()
	if o == OrientColumns {
		doc := object{keys: names}
		for _, c := range t.Columns() {
			doc.vals = append(doc.vals, c.Values)
		}
		return doc
	}
	rows := make([]object, t.Rows())
	for i := range rows {
		vals := make([]any, len(names))
		for j, c := range t.Columns() {
			vals[j] = c.Values[i]
		}
		rows[i] = object{keys: names, vals: vals}
	}
	return rows
}
