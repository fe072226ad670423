package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestColumnCountError(t *testing.T) {
	err := &ColumnCountError{Row: 3, Expected: 5, Actual: 4}

	want := "inconsistent column count: row 3 has 4 fields, expected 5"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := fmt.Errorf("parse translations.csv: %w", err)
	if !errors.Is(wrapped, ErrInconsistentColumnCount) {
		t.Error("wrapped error should match ErrInconsistentColumnCount")
	}
	if errors.Is(wrapped, ErrNoValidRows) {
		t.Error("wrapped error should not match ErrNoValidRows")
	}

	var cce *ColumnCountError
	if !errors.As(wrapped, &cce) || cce.Row != 3 {
		t.Errorf("errors.As failed or lost the row: %+v", cce)
	}
}

func TestSentinelsDistinct(t *testing.T) {
	all := []error{
		ErrEmptyContent,
		ErrNoValidRows,
		ErrInconsistentColumnCount,
		ErrFileNotFound,
		ErrRowTooLarge,
		ErrFieldTooLarge,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v matches %v", a, b)
			}
		}
	}
}
