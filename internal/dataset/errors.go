package dataset

import (
	"fmt"
	"strings"
)

// NotFoundError indicates the dataset path does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Path) }

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError indicates the file exists but is not tabular JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error reading JSON from %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError lists every required column absent from the table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing columns: [%s]", strings.Join(e.Missing, ", "))
}
