package cmd

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/riskprep-cli/internal/table"
	prettytable "github.com/jedib0t/go-pretty/v6/table"
)

// renderPreview prints the first rows of t as a terminal table.
func renderPreview(w io.Writer, t *table.Table, rows int) {
	if len(t.Columns()) == 0 {
		_, _ = fmt.Fprintln(w, "(0 columns)")
		return
	}
	n := min(max(rows, 0), t.Rows())

	tw := prettytable.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(prettytable.StyleLight)

	header := make(prettytable.Row, 0, len(t.Columns()))
	for _, name := range t.Names() {
		header = append(header, name)
	}
	tw.AppendHeader(header)
	for i := 0; i < n; i++ {
		row := make(prettytable.Row, 0, len(t.Columns()))
		for _, c := range t.Columns() {
			if table.IsMissing(c.Values[i]) {
				row = append(row, "null")
				continue
			}
			row = append(row, table.FormatValue(c.Values[i]))
		}
		tw.AppendRow(row)
	}
	tw.Render()
	_, _ = fmt.Fprintf(w, "(%d of %d rows)\n", n, t.Rows())
}
