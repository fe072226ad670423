package csv

import (
	"log/slog"
	"runtime"

	"github.com/shapestone/csv-ingest/internal/stream"
)

// StreamThreshold is the default file size in bytes above which ParseFile
// switches from the whole-buffer parser to the streaming reader.
const StreamThreshold int64 = 2 * 1000 * 1000

// Config controls buffering of a streaming session. See SelectConfig.
type Config = stream.Config

// Buffering presets.
var (
	DefaultConfig           = stream.DefaultConfig
	HighPerformanceConfig   = stream.HighPerformanceConfig
	MemoryConstrainedConfig = stream.MemoryConstrainedConfig
)

// SelectConfig picks a buffering preset from a file size and an optional
// buffer size hint (0 for none):
//   - hint >= 64 KiB or size > 100 MB: HighPerformanceConfig
//   - size > 50 MB: DefaultConfig
//   - otherwise: MemoryConstrainedConfig
func SelectConfig(fileSize int64, bufferHint int) Config {
	return stream.SelectConfig(fileSize, bufferHint)
}

// Option configures file-based parsing.
type Option func(*options)

type options struct {
	logger          *slog.Logger
	bufferHint      int
	config          *Config
	streamThreshold int64
	workers         int
	maxFieldSize    int
}

func newOptions(opts []Option) options {
	o := options{
		streamThreshold: StreamThreshold,
		workers:         runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// WithLogger sets the structured logger used for progress and summary lines.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBufferHint requests a streaming buffer size in bytes. Hints of 64 KiB or
// more select the high-performance preset.
func WithBufferHint(size int) Option {
	return func(o *options) {
		o.bufferHint = size
	}
}

// WithConfig bypasses preset selection and streams with cfg.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = &cfg
	}
}

// WithStreamThreshold changes the file size above which ParseFile streams.
// A negative threshold streams every file.
func WithStreamThreshold(size int64) Option {
	return func(o *options) {
		o.streamThreshold = size
	}
}

// WithWorkers limits how many files ParseFiles reads at once.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithMaxFieldSize rejects whole-buffer fields longer than size bytes.
func WithMaxFieldSize(size int) Option {
	return func(o *options) {
		o.maxFieldSize = size
	}
}

func (o options) streamOptions(validate bool) stream.Options {
	return stream.Options{
		Config:     o.config,
		BufferHint: o.bufferHint,
		Validate:   validate,
		Logger:     o.logger,
	}
}
