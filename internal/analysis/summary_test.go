package analysis

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/riskprep-cli/internal/table"
)

func buildTable(t *testing.T) *table.Table {
	t.Helper()
	tb := table.New(6)
	cols := []struct {
		name string
		vals []any
	}{
		{"Id", []any{1.0, 2.0, 3.0, 4.0, 5.0, 6.0}},
		{"Income", []any{nil, 50.0, 52.0, 51.0, 49.0, 500.0}},
		{"CITY", []any{"Pune", "Pune", "Delhi", nil, "Pune", "Delhi"}},
		{"Risk_Flag", []any{0.0, 1.0, 0.0, 1.0, 0.0, 0.0}},
		{"Notes", []any{nil, nil, nil, nil, nil, nil}},
	}
	for _, c := range cols {
		if err := tb.AddColumn(c.name, c.vals); err != nil {
			t.Fatalf("add %s: %v", c.name, err)
		}
	}
	return tb
}

func TestSummarizeColumns(t *testing.T) {
	rep := Summarize("applicants.json", buildTable(t), DefaultOptions())
	if rep.Rows != 6 || len(rep.Cols) != 5 {
		t.Fatalf("unexpected dims: rows=%d cols=%d", rep.Rows, len(rep.Cols))
	}
	inc := rep.Cols[1]
	if inc.Kind != table.KindNumeric || inc.Missing != 1 || inc.NonNull != 5 {
		t.Fatalf("unexpected income summary: %+v", inc)
	}
	if inc.Min != 49 || inc.Max != 500 {
		t.Fatalf("unexpected income range: %v..%v", inc.Min, inc.Max)
	}
	if inc.OutliersCount != 1 {
		t.Fatalf("expected one outlier, got %d", inc.OutliersCount)
	}
	city := rep.Cols[2]
	if city.Kind != table.KindCategorical || city.Unique != 2 {
		t.Fatalf("unexpected city summary: %+v", city)
	}
	if city.TopValues[0].Value != "Pune" || city.TopValues[0].Count != 3 {
		t.Fatalf("unexpected top value: %+v", city.TopValues[0])
	}
	if rep.Cols[4].Kind != table.KindEmpty {
		t.Fatalf("expected empty kind for Notes, got %s", rep.Cols[4].Kind)
	}
}

func TestMarkdownSections(t *testing.T) {
	opt := DefaultOptions()
	opt.SampleRows = 2
	opt.GroupBy = []string{"Risk_Flag", "Missing"}
	md := Summarize("applicants.json", buildTable(t), opt).Markdown()

	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: applicants.json",
		"Rows: 6",
		"Columns: 5",
		"- Income: numeric (non-null 5, missing 16.7%)",
		"outliers: 1 above |z|>3.5",
		"- CITY: categorical",
		"Pune(3), Delhi(2)",
		"[GROUP-BY SUMMARY]",
		"Risk_Flag=0 (n=4)",
		"Risk_Flag=1 (n=2)",
		"[HEAD AND SAMPLE ROWS]",
		"| Id | Income | CITY | Risk_Flag | Notes |",
		"[NOTES]",
		"group-by column Missing not found",
		"column Income starts with a missing value",
		"column Notes has no values",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Count(md, "\n| 1 |") != 1 {
		t.Fatalf("expected exactly the first sample row once:\n%s", md)
	}
}

func TestMedianMAD(t *testing.T) {
	med, mad := medianMAD([]float64{1, 2, 3, 4, 100})
	if med != 3 || mad != 1 {
		t.Fatalf("median=%v mad=%v", med, mad)
	}
}
