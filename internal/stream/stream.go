package stream

import (
	"context"
	"io"
	"log/slog"

	"github.com/shapestone/csv-ingest/internal/errs"
	"github.com/shapestone/csv-ingest/internal/model"
)

// SampleSize is the number of leading non-blank rows checked by the streaming
// column validator.
const SampleSize = 100

// Options configures a streaming parse.
type Options struct {
	// Config overrides size-based preset selection when non-nil.
	Config *Config
	// BufferHint is a requested buffer size in bytes; 0 for none. A hint of
	// 64 KiB or more selects the high-performance preset.
	BufferHint int
	// Validate enables the sampled column count check.
	Validate bool
	// Logger receives start, progress and finish lines. Nil discards.
	Logger *slog.Logger
}

// Stats summarizes a finished streaming session.
type Stats struct {
	Rows      int
	BlankRows int
	Batches   int
	Bytes     int64
	Config    Config
}

// BatchFunc receives each batch of non-blank rows. The batch is not reused
// after the call returns. Returning an error stops the stream.
type BatchFunc func(batch []model.Row) error

// Stream reads path in batches and hands the non-blank rows of every batch to
// fn. The context is checked before the file is opened and then every
// LogProgressInterval batches. The file is closed on every return path.
func Stream(ctx context.Context, path string, opts Options, fn BatchFunc) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	cfg, err := resolveConfig(path, opts)
	if err != nil {
		return Stats{}, err
	}

	r, err := Open(path, cfg)
	if err != nil {
		return Stats{}, err
	}
	defer r.Close()

	return StreamFrom(ctx, r, opts, fn)
}

// StreamFrom runs the batch loop over an already open Reader. The caller keeps
// ownership of r and must close it.
func StreamFrom(ctx context.Context, r *Reader, opts Options, fn BatchFunc) (Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cfg := r.Config()
	stats := Stats{Config: cfg}

	var validator *SampleValidator
	if opts.Validate {
		validator = NewSampleValidator(SampleSize)
	}

	logger.Debug("starting csv stream",
		"path", r.name,
		"buffer_size", cfg.BufferSize,
		"batch_size", cfg.BatchSize,
	)

	batch := make([]model.Row, 0, cfg.BatchSize)
	flush := func() error {
		raw := len(batch)
		batch = model.DropBlank(batch)
		stats.BlankRows += raw - len(batch)
		stats.Batches++

		if validator != nil {
			if err := validator.Check(batch); err != nil {
				return err
			}
		}
		if len(batch) > 0 {
			stats.Rows += len(batch)
			if err := fn(batch); err != nil {
				return err
			}
		}
		batch = make([]model.Row, 0, cfg.BatchSize)

		if stats.Batches%cfg.LogProgressInterval == 0 {
			logger.Info("csv stream progress",
				"path", r.name,
				"rows", stats.Rows,
				"batches", stats.Batches,
				"bytes", r.BytesRead(),
			)
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		return nil
	}

	for {
		row, err := r.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, err
		}
		batch = append(batch, row)
		if len(batch) >= cfg.BatchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return stats, err
		}
	}
	stats.Bytes = r.BytesRead()

	if stats.Rows == 0 {
		if !r.SawContent() {
			return stats, errs.ErrEmptyContent
		}
		return stats, errs.ErrNoValidRows
	}

	logger.Debug("finished csv stream",
		"path", r.name,
		"rows", stats.Rows,
		"blank_rows", stats.BlankRows,
		"batches", stats.Batches,
		"bytes", stats.Bytes,
	)
	return stats, nil
}

// ParseStream streams path and collects every non-blank row into a table.
func ParseStream(ctx context.Context, path string, opts Options) (model.Table, error) {
	var table model.Table
	_, err := Stream(ctx, path, opts, func(batch []model.Row) error {
		table = append(table, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// ParseStreamWithValidation is ParseStream with the sampled column check:
// only the first SampleSize non-blank rows are compared with the first row.
func ParseStreamWithValidation(ctx context.Context, path string, opts Options) (model.Table, error) {
	opts.Validate = true
	return ParseStream(ctx, path, opts)
}

func resolveConfig(path string, opts Options) (Config, error) {
	if opts.Config != nil {
		return *opts.Config, nil
	}
	return SelectConfigForFile(path, opts.BufferHint)
}

// SampleValidator checks the field count of the first rows of a stream
// against the first row and ignores everything after the sample.
type SampleValidator struct {
	limit    int
	seen     int
	expected int
}

// NewSampleValidator returns a validator that inspects limit rows.
func NewSampleValidator(limit int) *SampleValidator {
	return &SampleValidator{limit: limit}
}

// Check validates the next rows of the stream. Row numbers in the returned
// *errs.ColumnCountError are 1-indexed across all checked batches.
func (v *SampleValidator) Check(rows []model.Row) error {
	for _, row := range rows {
		if v.seen >= v.limit {
			return nil
		}
		v.seen++
		if v.seen == 1 {
			v.expected = len(row)
			continue
		}
		if len(row) != v.expected {
			return &errs.ColumnCountError{Row: v.seen, Expected: v.expected, Actual: len(row)}
		}
	}
	return nil
}
