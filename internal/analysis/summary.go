package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/riskprep-cli/internal/table"
)

// Options controls the dataset summary.
type Options struct {
	// SampleRows determines how many leading rows to include in the report.
	SampleRows int
	// TopValues caps the categories listed per categorical column.
	TopValues int
	// GroupBy computes per-group numeric means for the given column names.
	GroupBy []string
	// Outlier detection via robust Z-score (MAD). If Outliers is true, counts |z|>threshold.
	Outliers         bool
	OutlierThreshold float64
}

// DefaultOptions returns reasonable defaults for dataset summaries.
func DefaultOptions() Options {
	return Options{
		SampleRows:       5,
		TopValues:        5,
		Outliers:         true,
		OutlierThreshold: 3.5,
	}
}

// Report is a markdown-friendly summary of a table.
type Report struct {
	Name     string
	Rows     int
	Cols     []ColumnSummary
	Samples  [][]string
	Groups   []GroupResult
	Warnings []string
}

// ColumnSummary captures the inferred kind and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    table.Kind
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
	// Categorical top values
	TopValues []CategoryCount
}

// CategoryCount is one distinct value and how often it occurs.
type CategoryCount struct {
	Value string
	Count int
}

// GroupResult captures numeric means per group key.
type GroupResult struct {
	Key   string
	Size  int
	Means map[string]float64
}

// Summarize computes a Report for t. The table is not modified.
func Summarize(name string, t *table.Table, opt Options) *Report {
	rep := &Report{Name: name, Rows: t.Rows()}
	for _, c := range t.Columns() {
		rep.Cols = append(rep.Cols, summarizeColumn(c, opt))
	}
	if opt.SampleRows > 0 {
		n := min(opt.SampleRows, t.Rows())
		for i := 0; i < n; i++ {
			row := make([]string, 0, len(t.Columns()))
			for _, c := range t.Columns() {
				row = append(row, table.FormatValue(c.Values[i]))
			}
			rep.Samples = append(rep.Samples, row)
		}
	}
	if len(opt.GroupBy) > 0 {
		rep.Groups, rep.Warnings = groupBy(t, opt.GroupBy)
	}
	for _, c := range rep.Cols {
		if c.Kind == table.KindEmpty && c.Missing > 0 {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("column %s has no values; forward-fill cannot fill it", c.Name))
		} else if c.Missing > 0 && t.Rows() > 0 {
			col, _ := t.Column(c.Name)
			if table.IsMissing(col.Values[0]) {
				rep.Warnings = append(rep.Warnings, fmt.Sprintf("column %s starts with a missing value that forward-fill leaves in place", c.Name))
			}
		}
	}
	return rep
}

func summarizeColumn(c *table.Column, opt Options) ColumnSummary {
	s := ColumnSummary{Name: c.Name, Kind: c.Kind(), Min: math.Inf(1), Max: math.Inf(-1)}
	cats := map[string]int{}
	var nums []float64
	var n int
	var mean, m2 float64
	for _, v := range c.Values {
		if table.IsMissing(v) {
			s.Missing++
			continue
		}
		s.NonNull++
		cats[table.FormatValue(v)]++
		x, ok := toFloat(v)
		if !ok || s.Kind != table.KindNumeric {
			continue
		}
		// Welford update
		n++
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
		delta := x - mean
		mean += delta / float64(n)
		m2 += delta * (x - mean)
		nums = append(nums, x)
	}
	s.Unique = len(cats)
	if n == 0 {
		s.Min, s.Max = 0, 0
	} else {
		s.Mean = mean
		if n > 1 {
			s.Std = math.Sqrt(m2 / float64(n-1))
		}
	}
	if s.Kind == table.KindNumeric && opt.Outliers && opt.OutlierThreshold > 0 && len(nums) > 2 {
		s.OutlierThreshold = opt.OutlierThreshold
		med, mad := medianMAD(nums)
		if mad > 0 {
			for _, x := range nums {
				z := 0.6745 * (x - med) / mad
				if math.Abs(z) > opt.OutlierThreshold {
					s.OutliersCount++
				}
				if math.Abs(z) > s.OutliersMaxAbsZ {
					s.OutliersMaxAbsZ = math.Abs(z)
				}
			}
		}
	}
	if s.Kind == table.KindCategorical || s.Kind == table.KindBoolean {
		s.TopValues = topValues(cats, opt.TopValues)
	}
	return s
}

func topValues(cats map[string]int, limit int) []CategoryCount {
	out := make([]CategoryCount, 0, len(cats))
	for k, v := range cats {
		out = append(out, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func groupBy(t *table.Table, names []string) ([]GroupResult, []string) {
	var keys []*table.Column
	var warnings []string
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("group-by column %s not found", name))
			continue
		}
		keys = append(keys, c)
	}
	if len(keys) == 0 {
		return nil, warnings
	}
	type acc struct {
		size int
		sum  map[string]float64
		cnt  map[string]int
	}
	groups := map[string]*acc{}
	for i := 0; i < t.Rows(); i++ {
		parts := make([]string, len(keys))
		for j, k := range keys {
			parts[j] = fmt.Sprintf("%s=%s", k.Name, safeVal(table.FormatValue(k.Values[i])))
		}
		gkey := strings.Join(parts, " | ")
		g := groups[gkey]
		if g == nil {
			g = &acc{sum: map[string]float64{}, cnt: map[string]int{}}
			groups[gkey] = g
		}
		g.size++
		for _, c := range t.Columns() {
			if c.Kind() != table.KindNumeric {
				continue
			}
			if x, ok := toFloat(c.Values[i]); ok {
				g.sum[c.Name] += x
				g.cnt[c.Name]++
			}
		}
	}
	out := make([]GroupResult, 0, len(groups))
	for k, g := range groups {
		gr := GroupResult{Key: k, Size: g.size, Means: map[string]float64{}}
		for name, sum := range g.sum {
			gr.Means[name] = sum / float64(g.cnt[name])
		}
		out = append(out, gr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, warnings
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x)
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	}
	return 0, false
}

// Markdown renders the report in the bracketed-section layout used for dataset summaries.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case table.KindNumeric:
			b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
			if c.OutlierThreshold > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", c.OutliersCount, c.OutlierThreshold))
			}
		case table.KindCategorical, table.KindBoolean:
			if len(c.TopValues) > 0 {
				b.WriteString(" — top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		}
		b.WriteString("\n")
	}
	if len(r.Groups) > 0 {
		b.WriteString("\n[GROUP-BY SUMMARY]\n")
		for _, g := range r.Groups {
			b.WriteString(fmt.Sprintf("- %s (n=%d)\n", g.Key, g.Size))
			keys := make([]string, 0, len(g.Means))
			for k := range g.Means {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			// print up to 6 metrics
			for _, k := range keys[:min(6, len(keys))] {
				b.WriteString(fmt.Sprintf("  • %s: mean %.4g\n", k, g.Means[k]))
			}
		}
	}
	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c.Name))
		}
		b.WriteString(" |\n| ")
		for i := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i, val := range row {
				if i > 0 {
					b.WriteString(" | ")
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
