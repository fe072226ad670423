// Package errs defines the error values shared by the whole-buffer parser,
// the streaming reader and the public csv package.
package errs

import (
	"errors"
	"fmt"
)

// Common ingestion errors
var (
	// ErrEmptyContent indicates the input buffer or file is empty or only whitespace.
	ErrEmptyContent = errors.New("csv content is empty")

	// ErrNoValidRows indicates every parsed row was blank.
	ErrNoValidRows = errors.New("no valid rows found in csv content")

	// ErrInconsistentColumnCount indicates a row whose field count differs from the first row.
	ErrInconsistentColumnCount = errors.New("inconsistent column count")

	// ErrFileNotFound indicates the streaming source path does not exist.
	ErrFileNotFound = errors.New("csv file not found")

	// ErrRowTooLarge indicates a single row exceeded the reader's memory ceiling.
	ErrRowTooLarge = errors.New("row exceeds maximum memory usage")

	// ErrFieldTooLarge indicates a field exceeded MaxFieldSize.
	ErrFieldTooLarge = errors.New("field exceeds maximum size")
)

// ColumnCountError reports the first row whose field count differs from the
// first row of the table.
type ColumnCountError struct {
	// Row is the 1-indexed position of the offending row among the non-blank rows.
	Row int
	// Expected is the field count of the first row.
	Expected int
	// Actual is the field count of the offending row.
	Actual int
}

// Error returns a message naming the row and both counts.
func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("%v: row %d has %d fields, expected %d",
		ErrInconsistentColumnCount, e.Row, e.Actual, e.Expected)
}

// Is reports whether target is ErrInconsistentColumnCount.
func (e *ColumnCountError) Is(target error) bool {
	return target == ErrInconsistentColumnCount
}
