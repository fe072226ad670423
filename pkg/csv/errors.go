package csv

import "github.com/shapestone/csv-ingest/internal/errs"

// Ingestion errors. Compare with errors.Is.
var (
	// ErrEmptyContent indicates the input buffer or file is empty or only whitespace.
	ErrEmptyContent = errs.ErrEmptyContent

	// ErrNoValidRows indicates every parsed row was blank.
	ErrNoValidRows = errs.ErrNoValidRows

	// ErrInconsistentColumnCount matches any *ColumnCountError.
	ErrInconsistentColumnCount = errs.ErrInconsistentColumnCount

	// ErrFileNotFound indicates the source path does not exist.
	ErrFileNotFound = errs.ErrFileNotFound

	// ErrRowTooLarge indicates a streamed row exceeded the memory ceiling.
	ErrRowTooLarge = errs.ErrRowTooLarge

	// ErrFieldTooLarge indicates a field exceeded the configured maximum size.
	ErrFieldTooLarge = errs.ErrFieldTooLarge
)

// ColumnCountError reports the first row (1-indexed, blank rows excluded)
// whose field count differs from the first row. Retrieve it with errors.As.
type ColumnCountError = errs.ColumnCountError
