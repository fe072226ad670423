package csv

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOptions_Defaults(t *testing.T) {
	o := newOptions(nil)
	assert.Equal(t, StreamThreshold, o.streamThreshold)
	assert.Equal(t, runtime.GOMAXPROCS(0), o.workers)
	assert.NotNil(t, o.logger)
	assert.Nil(t, o.config)
	assert.Zero(t, o.bufferHint)
}

func TestOptions(t *testing.T) {
	cfg := Config{BufferSize: 1}
	o := newOptions([]Option{
		WithBufferHint(64 * 1024),
		WithConfig(cfg),
		WithStreamThreshold(10),
		WithWorkers(3),
		WithMaxFieldSize(9),
	})
	assert.Equal(t, 64*1024, o.bufferHint)
	assert.Equal(t, &cfg, o.config)
	assert.Equal(t, int64(10), o.streamThreshold)
	assert.Equal(t, 3, o.workers)
	assert.Equal(t, 9, o.maxFieldSize)

	so := o.streamOptions(true)
	assert.True(t, so.Validate)
	assert.Equal(t, 64*1024, so.BufferHint)
	assert.Equal(t, cfg, *so.Config)
}

func TestWithWorkers_IgnoresNonPositive(t *testing.T) {
	o := newOptions([]Option{WithWorkers(0), WithWorkers(-2)})
	assert.Equal(t, runtime.GOMAXPROCS(0), o.workers)
}

func TestSelectConfig(t *testing.T) {
	assert.Equal(t, MemoryConstrainedConfig(), SelectConfig(1000, 0))
	assert.Equal(t, DefaultConfig(), SelectConfig(60*1000*1000, 0))
	assert.Equal(t, HighPerformanceConfig(), SelectConfig(200*1000*1000, 0))
	assert.Equal(t, HighPerformanceConfig(), SelectConfig(1000, 64*1024))
}
