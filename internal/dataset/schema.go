package dataset

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/riskprep-cli/internal/table"
)

// RequiredColumns must all be present in every dataset.
var RequiredColumns = []string{
	"Id", "Income", "Age", "Experience", "Married/Single",
	"House_Ownership", "Car_Ownership", "Profession", "CITY", "STATE",
	"CURRENT_JOB_YRS", "CURRENT_HOUSE_YRS",
}

// TargetColumn is the training label.
const TargetColumn = "Risk_Flag"

// Schema is a fixed pair of column name lists matched by exact string equality.
type Schema struct {
	Required []string
	Optional []string
}

// Missing returns the names in want that t lacks, in the order of want.
func Missing(t *table.Table, want []string) []string {
	var out []string
	for _, name := range want {
		if !t.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

// Variant selects the column sets and whether categoricals are encoded.
type Variant string

const (
	// VariantEncoded has no optional columns and label-encodes categorical columns.
	VariantEncoded Variant = "encoded"
	// VariantTraining tolerates a missing Risk_Flag and leaves strings as-is.
	VariantTraining Variant = "training"
)

// ParseVariant accepts a variant name, case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "encoded", "a":
		return VariantEncoded, nil
	case "training", "b":
		return VariantTraining, nil
	default:
		return "", fmt.Errorf("invalid variant: %s (use encoded or training)", s)
	}
}

// Schema returns the column sets for the variant.
func (v Variant) Schema() Schema {
	s := Schema{Required: append([]string(nil), RequiredColumns...)}
	if v == VariantTraining {
		s.Optional = []string{TargetColumn}
	}
	return s
}

// Encodes reports whether Clean label-encodes categorical columns.
func (v Variant) Encodes() bool { return v != VariantTraining }
