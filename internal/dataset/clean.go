package dataset

import (
	"sort"

	"github.com/KaramelBytes/riskprep-cli/internal/table"
)

// ForwardFill replaces each missing cell with the nearest preceding non-missing
// cell. Leading missing cells stay missing. It returns the number of cells filled.
func ForwardFill(values []any) int {
	var last any
	have := false
	filled := 0
	for i, v := range values {
		if table.IsMissing(v) {
			if have {
				values[i] = last
				filled++
			}
			continue
		}
		last = v
		have = true
	}
	return filled
}

// LabelEncode replaces every cell with the index of its string form in the
// sorted list of distinct string forms, and returns that list.
func LabelEncode(values []any) []string {
	forms := make([]string, len(values))
	distinct := map[string]struct{}{}
	for i, v := range values {
		// a missing cell (only a leading gap survives ForwardFill) renders as ""
		// and therefore always takes code 0
		s := table.FormatValue(v)
		forms[i] = s
		distinct[s] = struct{}{}
	}
	classes := make([]string, 0, len(distinct))
	for s := range distinct {
		classes = append(classes, s)
	}
	sort.Strings(classes)
	codes := make(map[string]int, len(classes))
	for i, s := range classes {
		codes[s] = i
	}
	for i, s := range forms {
		values[i] = codes[s]
	}
	return classes
}
