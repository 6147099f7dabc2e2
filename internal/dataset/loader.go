// Package dataset loads, validates and cleans the loan-applicant dataset
// before it is handed to a model.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/KaramelBytes/riskprep-cli/internal/parser"
	"github.com/KaramelBytes/riskprep-cli/internal/table"
	"github.com/google/uuid"
)

// Options configures a Loader.
type Options struct {
	// Variant defaults to VariantEncoded.
	Variant Variant
	// Logger receives progress messages; nil discards them.
	Logger *slog.Logger
}

// Loader runs the load, validate and clean stages. It holds no per-call state.
type Loader struct {
	schema Schema
	encode bool
	logger *slog.Logger
}

// NewLoader builds a Loader for the given options.
func NewLoader(opts Options) *Loader {
	v := opts.Variant
	if v == "" {
		v = VariantEncoded
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{schema: v.Schema(), encode: v.Encodes(), logger: logger}
}

// Schema returns the column sets this loader validates against.
func (l *Loader) Schema() Schema { return l.schema }

func (l *Loader) run() *slog.Logger {
	return l.logger.With(slog.String("run_id", uuid.NewString()))
}

// Load reads and validates the JSON dataset at path.
func (l *Loader) Load(path string) (*table.Table, error) {
	return l.load(l.run(), path)
}

// Validate checks that every required column is present and logs absent optional ones.
func (l *Loader) Validate(t *table.Table) error {
	return l.validate(l.run(), t)
}

// Clean forward-fills missing values and, for the encoded variant, label-encodes
// categorical columns. The table is modified in place and returned.
func (l *Loader) Clean(t *table.Table) *table.Table {
	return l.clean(l.run(), t)
}

// LoadAndClean is Load followed by Clean. Errors are returned unchanged.
func (l *Loader) LoadAndClean(path string) (*table.Table, error) {
	log := l.run()
	t, err := l.load(log, path)
	if err != nil {
		return nil, err
	}
	return l.clean(log, t), nil
}

func (l *Loader) load(log *slog.Logger, path string) (*table.Table, error) {
	log.Info("loading dataset", slog.String("path", path))
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	t, shape, err := parser.ParseShape(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	log.Debug("parsed dataset", slog.String("shape", shape), slog.Int("rows", t.Rows()), slog.Int("columns", len(t.Columns())))
	if err := l.validate(log, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (l *Loader) validate(log *slog.Logger, t *table.Table) error {
	if missing := Missing(t, l.schema.Required); len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	if missing := Missing(t, l.schema.Optional); len(missing) > 0 {
		log.Warn("optional columns missing", slog.Any("columns", missing))
	} else {
		log.Info("optional columns present", slog.Any("columns", l.schema.Optional))
	}
	log.Info("column validation passed")
	return nil
}

func (l *Loader) clean(log *slog.Logger, t *table.Table) *table.Table {
	log.Info("cleaning dataset")
	// kinds are taken before filling so encoding follows the loaded types
	var categorical []*table.Column
	if l.encode {
		for _, c := range t.Columns() {
			if c.Kind() == table.KindCategorical {
				categorical = append(categorical, c)
			}
		}
	}
	for _, c := range t.Columns() {
		if n := ForwardFill(c.Values); n > 0 {
			log.Debug("filled missing values", slog.String("column", c.Name), slog.Int("cells", n))
		}
	}
	for _, c := range categorical {
		classes := LabelEncode(c.Values)
		log.Debug("encoded column", slog.String("column", c.Name), slog.Int("classes", len(classes)))
	}
	return t
}
