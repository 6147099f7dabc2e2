package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/KaramelBytes/riskprep-cli/internal/table"
)

// Strategy decodes one top-level JSON shape into a table.
type Strategy interface {
	// Name identifies the shape in logs and errors.
	Name() string
	// Match reports whether the strategy handles a document starting with tok.
	Match(tok json.Token) bool
	// Decode reads the rest of the document after the opening token.
	Decode(dec *json.Decoder) (*table.Table, error)
}

var registry []Strategy

// Register adds a strategy to the registry.
func Register(s Strategy) {
	registry = append(registry, s)
}

// ErrNotTabular indicates valid or invalid JSON that does not describe a rectangular table.
var ErrNotTabular = errors.New("not a tabular JSON document")

// Parse selects a strategy by the document's first token and decodes the table.
func Parse(data []byte) (*table.Table, error) {
	t, _, err := ParseShape(data)
	return t, err
}

// ParseShape is Parse but also reports the name of the strategy used.
func ParseShape(data []byte) (*table.Table, string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, "", fmt.Errorf("%w: empty document", ErrNotTabular)
		}
		return nil, "", fmt.Errorf("read json: %w", err)
	}
	for _, s := range registry {
		if !s.Match(tok) {
			continue
		}
		t, err := s.Decode(dec)
		if err != nil {
			return nil, s.Name(), err
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, s.Name(), fmt.Errorf("%w: trailing data after %s table", ErrNotTabular, s.Name())
		}
		return t, s.Name(), nil
	}
	return nil, "", fmt.Errorf("%w: top-level %v is neither an array of rows nor an object of columns", ErrNotTabular, tok)
}

// readCell reads one scalar cell. Objects and arrays are rejected.
func readCell(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, unexpected(err)
	}
	if d, ok := tok.(json.Delim); ok {
		return nil, fmt.Errorf("%w: nested %s in cell", ErrNotTabular, d)
	}
	if n, ok := tok.(json.Number); ok {
		return number(n)
	}
	return tok, nil
}

// number keeps integers exact as int64 and falls back to float64.
func number(n json.Number) (any, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("%w: number %s out of range", ErrNotTabular, n)
	}
	return f, nil
}

// expectDelim consumes the next token and checks it is d.
func expectDelim(dec *json.Decoder, d json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return unexpected(err)
	}
	if got, ok := tok.(json.Delim); !ok || got != d {
		return fmt.Errorf("%w: expected %s, got %v", ErrNotTabular, d, tok)
	}
	return nil
}

// readKey reads an object key.
func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", unexpected(err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected object key, got %v", ErrNotTabular, tok)
	}
	return key, nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("read json: %w", io.ErrUnexpectedEOF)
	}
	return fmt.Errorf("read json: %w", err)
}

func init() {
	Register(rowsStrategy{})
	Register(columnsStrategy{})
}
