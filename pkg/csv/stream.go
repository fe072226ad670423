package csv

import (
	"io"

	"github.com/shapestone/csv-ingest/internal/model"
	"github.com/shapestone/csv-ingest/internal/stream"
)

// Scanner provides a pull interface over the streaming reader, yielding one
// non-blank row at a time with bounded memory.
//
// Example usage:
//
//	scanner, err := csv.NewScanner("data.csv")
//	if err != nil {
//	    // handle error
//	}
//	defer scanner.Close()
//
//	scanner.SetHasHeaders(true)
//	for scanner.Scan() {
//	    fmt.Println(scanner.Keyed()["name"])
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
type Scanner struct {
	reader     *stream.Reader
	hasHeaders bool
	headers    []string
	row        Row
	err        error
}

// NewScanner opens path for streaming. The buffering preset is chosen from
// the file size unless WithConfig is given. The caller must Close the Scanner.
func NewScanner(path string, opts ...Option) (*Scanner, error) {
	o := newOptions(opts)

	var cfg Config
	if o.config != nil {
		cfg = *o.config
	} else {
		var err error
		cfg, err = stream.SelectConfigForFile(path, o.bufferHint)
		if err != nil {
			return nil, err
		}
	}

	r, err := stream.Open(path, cfg)
	if err != nil {
		return nil, err
	}
	return &Scanner{reader: r}, nil
}

// NewReaderScanner creates a Scanner over any io.Reader. Close does not close r.
func NewReaderScanner(r io.Reader, cfg Config) *Scanner {
	return &Scanner{reader: stream.NewReader(r, cfg)}
}

// SetHasHeaders sets whether the first non-blank row holds column names.
// It must be called before the first Scan. Returns the Scanner for chaining.
func (s *Scanner) SetHasHeaders(hasHeaders bool) *Scanner {
	s.hasHeaders = hasHeaders
	return s
}

// Scan advances to the next non-blank row. It returns false at the end of
// the input or on error; Err distinguishes the two.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for {
		row, err := s.reader.ReadRow()
		if err == io.EOF {
			s.row = nil
			return false
		}
		if err != nil {
			s.err = err
			s.row = nil
			return false
		}
		if row.IsBlank() {
			continue
		}
		if s.hasHeaders && s.headers == nil {
			s.headers = row
			continue
		}
		s.row = row
		return true
	}
}

// Row returns the current row. It is only valid after Scan returned true.
func (s *Scanner) Row() Row {
	return s.row
}

// Keyed returns the current row mapped onto the headers, truncated to the
// shorter of the two. Without headers it returns an empty map.
func (s *Scanner) Keyed() KeyedRow {
	if s.headers == nil || s.row == nil {
		return KeyedRow{}
	}
	return model.Table{s.headers, s.row}.Keyed()[0]
}

// Headers returns the header row, or nil before it has been read or when
// SetHasHeaders was not enabled.
func (s *Scanner) Headers() []string {
	return s.headers
}

// Err returns the first non-EOF error encountered by Scan.
func (s *Scanner) Err() error {
	return s.err
}

// Close releases the reader and closes the file.
func (s *Scanner) Close() error {
	return s.reader.Close()
}
