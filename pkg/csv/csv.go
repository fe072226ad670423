// Package csv ingests comma-separated text into an ordered table of rows.
//
// Two parsing modes share one quote-aware state machine:
//
//   - Parse and its variants consume a complete string in memory.
//   - ParseStream and Scanner read a file through a bounded byte window,
//     carrying partial fields and rows across refills.
//
// ParseFile picks the mode from the file size (StreamThreshold).
//
// # Dialect
//
// Fields are separated by commas and rows by \n or \r\n. A field may be
// quoted with double quotes; inside quotes, commas and line breaks are
// content and "" stands for one literal quote. Every field is trimmed of
// surrounding whitespace after it is assembled. Rows whose fields are all
// empty are dropped from every result.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple
// goroutines. Each call owns its own parser or reader. A Scanner is owned by
// one goroutine.
//
// # Example usage with Parse:
//
//	table, err := csv.Parse("name,age\nAlice,30\nBob,25")
//	if err != nil {
//	    // handle error
//	}
//	// table[0] is the header row
//
// # Example usage with ParseFile:
//
//	table, err := csv.ParseFile(ctx, "translations.csv")
//	if errors.Is(err, csv.ErrNoValidRows) {
//	    // every row was blank
//	}
package csv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/shapestone/csv-ingest/internal/model"
	"github.com/shapestone/csv-ingest/internal/parser"
	"github.com/shapestone/csv-ingest/internal/stream"
)

// Row is an ordered sequence of trimmed fields.
type Row = model.Row

// Table is an ordered sequence of non-blank rows in source order.
type Table = model.Table

// KeyedRow maps header names to the values of one data row.
type KeyedRow = model.KeyedRow

// Parse parses a complete CSV document held in memory.
//
// Returns ErrEmptyContent if content is empty or only whitespace, and
// ErrNoValidRows if every row is blank.
//
// Example:
//
//	table, _ := csv.Parse("\"a\",\"b\"\n\"1\",\"2\"\n")
//	// table == csv.Table{{"a", "b"}, {"1", "2"}}
func Parse(content string) (Table, error) {
	return parser.Parse(content, parser.DefaultOptions())
}

// ParseWithValidation parses content and requires every row to have as many
// fields as the first row. The first mismatch is returned as a
// *ColumnCountError.
func ParseWithValidation(content string) (Table, error) {
	return parser.ParseWithValidation(content, parser.DefaultOptions())
}

// ParseToKeyedRows parses and validates content, treats the first row as
// header names and maps every following row onto them by position.
//
// Header and row are zipped to the shorter of the two, so values beyond the
// last header are dropped silently.
//
// Example:
//
//	rows, _ := csv.ParseToKeyedRows("key,en\napp_name,Hello")
//	// rows[0]["en"] == "Hello"
func ParseToKeyedRows(content string) ([]KeyedRow, error) {
	return parser.ParseToKeyedRows(content, parser.DefaultOptions())
}

// ParseReader streams CSV from any io.Reader with the given buffering
// configuration and collects the non-blank rows.
func ParseReader(ctx context.Context, r io.Reader, cfg Config, opts ...Option) (Table, error) {
	o := newOptions(opts)
	reader := stream.NewReader(r, cfg)
	defer reader.Close()

	var table Table
	_, err := stream.StreamFrom(ctx, reader, o.streamOptions(false), func(batch []model.Row) error {
		table = append(table, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// ParseStream reads the file at path through the streaming reader, with a
// buffering preset chosen from the file size unless WithConfig is given.
func ParseStream(ctx context.Context, path string, opts ...Option) (Table, error) {
	o := newOptions(opts)
	return stream.ParseStream(ctx, path, o.streamOptions(false))
}

// ParseStreamWithValidation is ParseStream with a sampled column check: only
// the first 100 non-blank rows are compared against the first row.
func ParseStreamWithValidation(ctx context.Context, path string, opts ...Option) (Table, error) {
	o := newOptions(opts)
	return stream.ParseStreamWithValidation(ctx, path, o.streamOptions(true))
}

// StreamBatches reads path in batches and calls fn with the non-blank rows
// of each batch. The context is checked every LogProgressInterval batches.
func StreamBatches(ctx context.Context, path string, fn func(batch []Row) error, opts ...Option) error {
	o := newOptions(opts)
	_, err := stream.Stream(ctx, path, o.streamOptions(false), func(batch []model.Row) error {
		return fn(batch)
	})
	return err
}

// ParseFile parses the file at path, reading it whole when it is no larger
// than the stream threshold and streaming it otherwise. Files ending in .gz,
// .lz4 or .zst are decompressed; the threshold applies to the size on disk.
func ParseFile(ctx context.Context, path string, opts ...Option) (Table, error) {
	return parseFile(ctx, path, false, newOptions(opts))
}

// ParseFileWithValidation is ParseFile with column validation. Whole-buffer
// parses check every row; streamed parses check the first 100 rows.
func ParseFileWithValidation(ctx context.Context, path string, opts ...Option) (Table, error) {
	return parseFile(ctx, path, true, newOptions(opts))
}

// ParseFileToKeyedRows is ParseFileWithValidation followed by header keying.
func ParseFileToKeyedRows(ctx context.Context, path string, opts ...Option) ([]KeyedRow, error) {
	table, err := ParseFileWithValidation(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	return table.Keyed(), nil
}

func parseFile(ctx context.Context, path string, validate bool, o options) (Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if o.streamThreshold < 0 || info.Size() > o.streamThreshold {
		o.logger.Debug("streaming csv file", "path", path, "size", info.Size())
		return stream.ParseStream(ctx, path, o.streamOptions(validate))
	}

	o.logger.Debug("reading csv file", "path", path, "size", info.Size())
	content, err := readFile(path)
	if err != nil {
		return nil, err
	}
	popts := parser.Options{Logger: o.logger, MaxFieldSize: o.maxFieldSize}
	if validate {
		return parser.ParseWithValidation(string(content), popts)
	}
	return parser.Parse(string(content), popts)
}

// readFile reads a whole, possibly compressed, file.
func readFile(path string) ([]byte, error) {
	src, err := stream.OpenSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, nil
}
