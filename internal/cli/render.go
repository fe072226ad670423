package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/shapestone/csv-ingest/pkg/csv"
)

// renderTable prints rows with the first row as header. limit caps the data
// rows printed (0 = all).
func renderTable(w io.Writer, title string, rows csv.Table, limit int, format string) error {
	switch format {
	case "json":
		return renderJSON(w, rows)
	case "csv":
		_, err := w.Write(csv.Render(rows))
		return err
	}
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(filepath.Base(title))

	header := make(table.Row, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = h
	}
	t.AppendHeader(header)

	data := rows[1:]
	if limit > 0 && len(data) > limit {
		data = data[:limit]
	}
	for _, r := range data {
		row := make(table.Row, len(r))
		for i, f := range r {
			row[i] = f
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rows)-1)
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
