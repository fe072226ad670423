package stream

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/shapestone/csv-ingest/internal/errs"
)

// Compression is the encoding of a source file, derived from its extension.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionLZ4
	CompressionZstd
)

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return "none"
	}
}

// DetectCompression maps a file extension to its compression.
func DetectCompression(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".lz4":
		return CompressionLZ4
	case ".zst", ".zstd":
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// source is an open, possibly decompressed, input file.
type source struct {
	io.Reader
	file    *os.File
	closers []func() error
}

// OpenSource opens path for reading, decompressing by extension. The returned
// ReadCloser closes the decompressor and the file.
func OpenSource(path string) (io.ReadCloser, error) {
	return openSource(path)
}

func openSource(path string) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	src := &source{Reader: f, file: f}
	switch DetectCompression(path) {
	case CompressionGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		src.Reader = gz
		src.closers = append(src.closers, gz.Close)
	case CompressionLZ4:
		src.Reader = lz4.NewReader(f)
	case CompressionZstd:
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		src.Reader = dec
		src.closers = append(src.closers, func() error { dec.Close(); return nil })
	}
	return src, nil
}

// Close closes the decompressor, then the file. It is safe to call more than once.
func (s *source) Close() error {
	if s.file == nil {
		return nil
	}
	var errList []error
	for _, c := range s.closers {
		errList = append(errList, c())
	}
	errList = append(errList, s.file.Close())
	s.file = nil
	s.closers = nil
	return errors.Join(errList...)
}
