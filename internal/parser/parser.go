// Package parser implements the whole-buffer CSV parser. The input is split
// into character-level tokens by the shape-core tokenizer and the tokens are
// fed through the quote state machine to assemble rows.
package parser

import (
	"fmt"
	"log/slog"
	"strings"

	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"

	"github.com/shapestone/csv-ingest/internal/errs"
	"github.com/shapestone/csv-ingest/internal/model"
	"github.com/shapestone/csv-ingest/internal/tokenizer"
)

// Options configures the parser behavior.
type Options struct {
	// MaxFieldSize is the maximum allowed size for a single trimmed field in bytes. 0 means no limit.
	MaxFieldSize int
	// Logger receives a debug summary of each parse. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{}
}

// Parser parses one in-memory CSV document.
type Parser struct {
	tokenizer *shapetokenizer.Tokenizer
	machine   *tokenizer.Machine
	opts      Options
	logger    *slog.Logger
}

// NewParser creates a parser for the given input string.
func NewParser(input string) *Parser {
	return NewParserWithOptions(input, DefaultOptions())
}

// NewParserWithOptions creates a parser with custom options.
func NewParserWithOptions(input string, opts Options) *Parser {
	tok := tokenizer.NewTokenizerWithStream(shapetokenizer.NewStream(input))

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Parser{
		tokenizer: &tok,
		machine:   tokenizer.NewMachine(),
		opts:      opts,
		logger:    logger,
	}
}

// Parse runs the state machine over every token and returns the non-blank rows.
func (p *Parser) Parse() (model.Table, error) {
	table := make(model.Table, 0, 16)
	blank := 0

	emit := func(row model.Row) error {
		if row.IsBlank() {
			blank++
			return nil
		}
		if err := p.checkFieldSize(row, len(table)+blank+1); err != nil {
			return err
		}
		table = append(table, row)
		return nil
	}

	for {
		token, ok := p.tokenizer.NextToken()
		if !ok {
			break
		}
		class := tokenizer.KindClass(token.Kind())
		if p.machine.Step(class, []byte(token.ValueString())) {
			if err := emit(p.machine.TakeRow()); err != nil {
				return nil, err
			}
		}
	}
	if row, ok := p.machine.Flush(); ok {
		if err := emit(row); err != nil {
			return nil, err
		}
	}

	p.logger.Debug("parsed csv buffer", "rows", len(table), "blank_rows", blank)

	if len(table) == 0 {
		return nil, errs.ErrNoValidRows
	}
	return table, nil
}

// checkFieldSize enforces MaxFieldSize. line is the 1-indexed row position
// counting blank rows.
func (p *Parser) checkFieldSize(row model.Row, line int) error {
	if p.opts.MaxFieldSize <= 0 {
		return nil
	}
	for i, f := range row {
		if len(f) > p.opts.MaxFieldSize {
			return fmt.Errorf("row %d, field %d: %w (%d > %d)",
				line, i+1, errs.ErrFieldTooLarge, len(f), p.opts.MaxFieldSize)
		}
	}
	return nil
}

// Parse parses content into a table of non-blank rows.
//
// Returns errs.ErrEmptyContent when content is empty or only whitespace, and
// errs.ErrNoValidRows when every row is blank.
func Parse(content string, opts Options) (model.Table, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errs.ErrEmptyContent
	}
	return NewParserWithOptions(content, opts).Parse()
}

// ParseWithValidation parses content and requires every row to have the same
// number of fields as the first row.
func ParseWithValidation(content string, opts Options) (model.Table, error) {
	table, err := Parse(content, opts)
	if err != nil {
		return nil, err
	}
	if err := ValidateColumns(table); err != nil {
		return nil, err
	}
	return table, nil
}

// ParseToKeyedRows parses and validates content, then maps every data row
// onto the header row. See model.Table.Keyed for the pairing rule.
func ParseToKeyedRows(content string, opts Options) ([]model.KeyedRow, error) {
	table, err := ParseWithValidation(content, opts)
	if err != nil {
		return nil, err
	}
	return table.Keyed(), nil
}

// ValidateColumns checks every row of table against the field count of the
// first row and reports the first mismatch.
func ValidateColumns(table model.Table) error {
	if len(table) == 0 {
		return nil
	}
	expected := len(table[0])
	for i, row := range table[1:] {
		if len(row) != expected {
			return &errs.ColumnCountError{Row: i + 2, Expected: expected, Actual: len(row)}
		}
	}
	return nil
}
