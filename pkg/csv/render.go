package csv

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Render converts a table back to CSV text.
//
// Rendering handles:
//   - Quoting of fields containing commas, quotes, or line breaks
//   - Escaping of quotes (doubled)
//   - Preservation of empty fields
//   - LF line endings, with a final newline
//
// The output is normalized: parsing it yields the same table, but it is not
// a byte-exact copy of the original input.
//
// Example:
//
//	table, _ := csv.Parse("name , age\n\n\"Alice\",30")
//	out := csv.Render(table)
//	// out: name,age\nAlice,30\n
func Render(table Table) []byte {
	// A table node only holds records of string literals.
	out, _ := RenderNode(table.Node())
	return out
}

// RenderNode converts a shape-core AST node, as produced by Table.Node, to
// CSV bytes.
func RenderNode(node ast.SchemaNode) ([]byte, error) {
	if node == nil {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	if err := renderNode(node, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderNode recursively renders an AST node to the buffer.
func renderNode(node ast.SchemaNode, buf *bytes.Buffer) error {
	switch n := node.(type) {
	case *ast.ArrayDataNode:
		return renderArrayData(n, buf)
	case *ast.LiteralNode:
		writeField(buf, literalString(n))
		return nil
	default:
		return fmt.Errorf("unsupported node type for CSV rendering: %T", node)
	}
}

// renderArrayData renders either a table (array of records) or a record
// (array of literals).
func renderArrayData(node *ast.ArrayDataNode, buf *bytes.Buffer) error {
	elements := node.Elements()
	if len(elements) == 0 {
		return nil
	}

	switch elements[0].(type) {
	case *ast.ArrayDataNode:
		for _, elem := range elements {
			if err := renderNode(elem, buf); err != nil {
				return err
			}
			buf.WriteByte('\n')
		}
		return nil

	case *ast.LiteralNode:
		for i, elem := range elements {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := renderNode(elem, buf); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unexpected element type in array: %T", elements[0])
	}
}

func literalString(node *ast.LiteralNode) string {
	switch v := node.Value().(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// writeField writes one field, quoting it when it contains a comma, quote or
// line break.
func writeField(buf *bytes.Buffer, value string) {
	if !strings.ContainsAny(value, ",\"\n\r") {
		buf.WriteString(value)
		return
	}
	buf.WriteByte('"')
	buf.WriteString(strings.ReplaceAll(value, `"`, `""`))
	buf.WriteByte('"')
}
