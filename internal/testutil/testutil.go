// Package testutil provides logging and CSV fixture helpers for tests.
package testutil

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// NewBufferLogger returns an info-level logger writing text lines to buf.
func NewBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// WriteFile writes content to name inside a fresh temp directory and returns
// the path. Names ending in .gz, .lz4 or .zst are compressed accordingly.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	var w io.WriteCloser
	switch filepath.Ext(name) {
	case ".gz":
		w = gzip.NewWriter(f)
	case ".lz4":
		w = lz4.NewWriter(f)
	case ".zst":
		w, err = zstd.NewWriter(f)
		if err != nil {
			t.Fatalf("zstd writer: %v", err)
		}
	default:
		w = nopCloser{f}
	}

	if _, err := io.WriteString(w, content); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer %s: %v", path, err)
	}
	return path
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// GenerateCSV builds a CSV document with a header and n data rows. Every
// tenth row has a quoted field with an embedded comma, quote and newline, and
// every seventh row is followed by a blank line.
func GenerateCSV(n int) string {
	var b strings.Builder
	b.WriteString("id,name,comment\n")
	for i := 0; i < n; i++ {
		comment := fmt.Sprintf("plain %d", i)
		if i%10 == 0 {
			comment = fmt.Sprintf("\"row %d, says \"\"hi\"\"\nagain\"", i)
		}
		fmt.Fprintf(&b, "%d,name-%d,%s\n", i, i, comment)
		if i%7 == 0 {
			b.WriteString(",,\n")
		}
	}
	return b.String()
}
