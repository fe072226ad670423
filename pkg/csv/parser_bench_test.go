package csv_test

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/shapestone/csv-ingest/internal/testutil"
	ingest "github.com/shapestone/csv-ingest/pkg/csv"
)

var benchSizes = []int{100, 10000}

// BenchmarkParse benchmarks the whole-buffer parser.
func BenchmarkParse(b *testing.B) {
	for _, n := range benchSizes {
		data := testutil.GenerateCSV(n)
		b.Run(fmt.Sprintf("rows=%d", n), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := ingest.Parse(data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkParseReader benchmarks the streaming reader per preset.
func BenchmarkParseReader(b *testing.B) {
	presets := map[string]ingest.Config{
		"memory-constrained": ingest.MemoryConstrainedConfig(),
		"default":            ingest.DefaultConfig(),
		"high-performance":   ingest.HighPerformanceConfig(),
	}
	data := testutil.GenerateCSV(10000)

	for name, cfg := range presets {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := ingest.ParseReader(context.Background(), strings.NewReader(data), cfg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkEncodingCSV is the standard library baseline.
func BenchmarkEncodingCSV(b *testing.B) {
	data := testutil.GenerateCSV(10000)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r := csv.NewReader(strings.NewReader(data))
		r.FieldsPerRecord = -1
		if _, err := r.ReadAll(); err != nil {
			b.Fatal(err)
		}
	}
}
