// Package stream implements the bounded-memory CSV reader. A file is read
// through a refillable byte window and tokenized incrementally; the quote
// state and the partially assembled row carry over between refills.
package stream

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shapestone/csv-ingest/internal/errs"
)

// Size units. Buffer sizes and memory ceilings are binary; file size
// thresholds are decimal megabytes.
const (
	KiB = 1 << 10
	MiB = 1 << 20
	MB  = 1000 * 1000
)

// Selection thresholds.
const (
	highPerformanceHint  = 64 * KiB
	highPerformanceBytes = 100 * MB
	defaultBytes         = 50 * MB
)

// Config controls buffering for one streaming session.
type Config struct {
	// BufferSize is the configured capacity of the byte window. Each refill
	// reads up to twice this many bytes.
	BufferSize int
	// MaxMemoryUsage bounds the bytes held for a single in-flight row.
	MaxMemoryUsage int
	// BatchSize is the number of rows handed to the caller at once.
	BatchSize int
	// LogProgressInterval is the number of batches between cancellation
	// checkpoints and progress log lines.
	LogProgressInterval int
}

// DefaultConfig is used for files between 50 MB and 100 MB.
func DefaultConfig() Config {
	return Config{
		BufferSize:          16 * KiB,
		MaxMemoryUsage:      20 * MiB,
		BatchSize:           2000,
		LogProgressInterval: 10,
	}
}

// HighPerformanceConfig is used for files over 100 MB or when a large buffer
// is requested.
func HighPerformanceConfig() Config {
	return Config{
		BufferSize:          128 * KiB,
		MaxMemoryUsage:      100 * MiB,
		BatchSize:           10000,
		LogProgressInterval: 20,
	}
}

// MemoryConstrainedConfig is used for files up to 50 MB.
func MemoryConstrainedConfig() Config {
	return Config{
		BufferSize:          8 * KiB,
		MaxMemoryUsage:      10 * MiB,
		BatchSize:           1000,
		LogProgressInterval: 5,
	}
}

// SelectConfig picks a preset from the file size and an optional buffer size
// hint (0 for none). It is a heuristic based on the size alone.
func SelectConfig(fileSize int64, bufferHint int) Config {
	switch {
	case bufferHint >= highPerformanceHint || fileSize > highPerformanceBytes:
		return HighPerformanceConfig()
	case fileSize > defaultBytes:
		return DefaultConfig()
	default:
		return MemoryConstrainedConfig()
	}
}

// SelectConfigForFile stats path once and selects a preset for it.
func SelectConfigForFile(path string, bufferHint int) (Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", errs.ErrFileNotFound, path)
		}
		return Config{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return SelectConfig(info.Size(), bufferHint), nil
}

// normalized fills zero values from MemoryConstrainedConfig.
func (c Config) normalized() Config {
	d := MemoryConstrainedConfig()
	if c.BufferSize <= 0 {
		c.BufferSize = d.BufferSize
	}
	if c.MaxMemoryUsage <= 0 {
		c.MaxMemoryUsage = d.MaxMemoryUsage
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.LogProgressInterval <= 0 {
		c.LogProgressInterval = d.LogProgressInterval
	}
	return c
}
