// Package model holds the row and table types produced by both parsing modes.
package model

import (
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Row is an ordered sequence of trimmed fields.
type Row []string

// IsBlank reports whether every field of the row is empty or whitespace.
func (r Row) IsBlank() bool {
	for _, f := range r {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Table is an ordered sequence of rows in source order.
type Table []Row

// KeyedRow maps header names to the values of one data row.
type KeyedRow map[string]string

// DropBlank removes blank rows in place and returns the shortened slice.
func DropBlank(rows []Row) []Row {
	kept := rows[:0]
	for _, r := range rows {
		if len(r) == 0 || r.IsBlank() {
			continue
		}
		kept = append(kept, r)
	}
	// Clear the tail so dropped rows can be collected.
	for i := len(kept); i < len(rows); i++ {
		rows[i] = nil
	}
	return kept
}

// Keyed treats the first row as header names and zips every following row
// against it by position. Pairs are truncated to the shorter of header and row,
// so trailing values without a header are dropped.
func (t Table) Keyed() []KeyedRow {
	if len(t) == 0 {
		return []KeyedRow{}
	}
	headers := t[0]
	out := make([]KeyedRow, 0, len(t)-1)
	for _, row := range t[1:] {
		n := min(len(headers), len(row))
		kr := make(KeyedRow, n)
		for i := 0; i < n; i++ {
			kr[headers[i]] = row[i]
		}
		out = append(out, kr)
	}
	return out
}

// Node converts the table into a shape-core AST: an *ast.ArrayDataNode of
// records, each an *ast.ArrayDataNode of *ast.LiteralNode string fields.
func (t Table) Node() ast.SchemaNode {
	records := make([]ast.SchemaNode, 0, len(t))
	for _, row := range t {
		fields := make([]ast.SchemaNode, 0, len(row))
		for _, f := range row {
			fields = append(fields, ast.NewLiteralNode(f, ast.ZeroPosition()))
		}
		records = append(records, ast.NewArrayDataNode(fields, ast.ZeroPosition()))
	}
	return ast.NewArrayDataNode(records, ast.ZeroPosition())
}
