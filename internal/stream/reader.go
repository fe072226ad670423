package stream

import (
	"bytes"
	"fmt"
	"io"

	"github.com/shapestone/csv-ingest/internal/errs"
	"github.com/shapestone/csv-ingest/internal/model"
	"github.com/shapestone/csv-ingest/internal/tokenizer"
)

// Reader reads rows from a file one at a time through a bounded byte window.
//
// The quote state and the partially assembled field and row live in the
// Reader between calls, so a row may span any number of refills. A Reader has
// a single owner and must not be used from more than one goroutine.
type Reader struct {
	name    string
	cfg     Config
	src     io.Reader
	closer  io.Closer
	win     *window
	machine *tokenizer.Machine

	eof        bool
	done       bool
	sawContent bool
	bytesRead  int64
	rows       int
}

// Open opens path for streaming with the given configuration. Zero fields of
// cfg fall back to MemoryConstrainedConfig. The caller must Close the Reader.
func Open(path string, cfg Config) (*Reader, error) {
	src, err := openSource(path)
	if err != nil {
		return nil, err
	}
	r := newReader(path, src, cfg)
	r.closer = src
	return r, nil
}

// NewReader streams rows from an arbitrary reader. Close releases the window
// but does not close src.
func NewReader(src io.Reader, cfg Config) *Reader {
	return newReader("stream", src, cfg)
}

func newReader(name string, src io.Reader, cfg Config) *Reader {
	cfg = cfg.normalized()
	return &Reader{
		name:    name,
		cfg:     cfg,
		src:     src,
		win:     newWindow(cfg.BufferSize),
		machine: tokenizer.NewMachine(),
	}
}

// Config returns the configuration in use.
func (r *Reader) Config() Config {
	return r.cfg
}

// ReadRow returns the next row, or io.EOF when the input is exhausted. Rows
// are returned as assembled, blank rows included.
func (r *Reader) ReadRow() (model.Row, error) {
	if r.done {
		return nil, io.EOF
	}

	for {
		if !r.eof && r.win.needsFill() {
			if err := r.fill(); err != nil {
				return nil, err
			}
		}

		data := r.win.unconsumed()
		if len(data) == 0 {
			if !r.eof {
				continue
			}
			r.done = true
			if row, ok := r.machine.Flush(); ok {
				r.rows++
				return row, nil
			}
			return nil, io.EOF
		}

		n, complete := r.scan(data)
		r.win.consume(n)
		if r.machine.Size() > r.cfg.MaxMemoryUsage {
			return nil, fmt.Errorf("%s: row %d: %w (%d > %d bytes)",
				r.name, r.rows+1, errs.ErrRowTooLarge, r.machine.Size(), r.cfg.MaxMemoryUsage)
		}
		if complete {
			r.rows++
			return r.machine.TakeRow(), nil
		}
	}
}

// scan feeds data to the machine until a row completes. It returns the number
// of bytes consumed and whether a row is ready.
func (r *Reader) scan(data []byte) (int, bool) {
	i := 0
	for i < len(data) {
		j := tokenizer.IndexStructural(data[i:])
		if j < 0 {
			r.machine.Step(tokenizer.ClassOther, data[i:])
			return len(data), false
		}
		if j > 0 {
			r.machine.Step(tokenizer.ClassOther, data[i:i+j])
		}
		pos := i + j
		i = pos + 1
		if r.machine.Step(tokenizer.Classify(data[pos]), data[pos:i]) {
			return i, true
		}
	}
	return i, false
}

// fill refills the window from the source.
func (r *Reader) fill() error {
	chunk, err := r.win.fill(r.src)
	r.bytesRead += int64(len(chunk))
	if !r.sawContent && len(bytes.TrimSpace(chunk)) > 0 {
		r.sawContent = true
	}
	if err == io.EOF {
		r.eof = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", r.name, err)
	}
	return nil
}

// SawContent reports whether any non-whitespace byte has been read so far.
func (r *Reader) SawContent() bool {
	return r.sawContent
}

// BytesRead returns the number of (decompressed) bytes read so far.
func (r *Reader) BytesRead() int64 {
	return r.bytesRead
}

// Close releases the window and closes the underlying file. It is safe to
// call more than once.
func (r *Reader) Close() error {
	r.done = true
	if r.win != nil {
		r.win.release()
		r.win = nil
	}
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}
