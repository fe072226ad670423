package stream

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_NeedsFill(t *testing.T) {
	w := newWindow(16)
	defer w.release()

	assert.True(t, w.needsFill(), "empty window")

	w.buf = append(w.buf, make([]byte, 10)...)
	assert.False(t, w.needsFill(), "10 of 16 unconsumed")

	w.consume(7)
	assert.True(t, w.needsFill(), "3 below a quarter of 16")
}

func TestWindow_NeedsFillTinyCapacity(t *testing.T) {
	w := newWindow(2)
	defer w.release()

	assert.True(t, w.needsFill())
	w.buf = append(w.buf, 'x')
	assert.False(t, w.needsFill())
	w.consume(1)
	assert.True(t, w.needsFill())
}

func TestWindow_FillReadsTwiceCapacity(t *testing.T) {
	w := newWindow(4)
	defer w.release()

	chunk, err := w.fill(strings.NewReader(strings.Repeat("x", 100)))
	require.NoError(t, err)
	assert.Len(t, chunk, 8)
	assert.Len(t, w.unconsumed(), 8)
}

func TestWindow_FillCompactsConsumedPrefix(t *testing.T) {
	w := newWindow(4)
	defer w.release()

	r := strings.NewReader("abcdefghijklmnop")
	_, err := w.fill(r)
	require.NoError(t, err)

	w.consume(7)
	assert.Equal(t, "h", string(w.unconsumed()))

	_, err = w.fill(r)
	require.NoError(t, err)
	assert.Equal(t, 0, w.start)
	assert.Equal(t, "hijklmnop", string(w.unconsumed()))
}

func TestWindow_FillGrowsForCarryOver(t *testing.T) {
	w := newWindow(4)
	defer w.release()

	// A long partial row keeps the window from being consumed.
	r := iotest.OneByteReader(strings.NewReader(strings.Repeat("y", 64)))
	total := 0
	for {
		chunk, err := w.fill(r)
		total += len(chunk)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, 64, total)
	assert.Len(t, w.unconsumed(), 64)
}

func TestWindow_FillEOF(t *testing.T) {
	w := newWindow(4)
	defer w.release()

	chunk, err := w.fill(strings.NewReader(""))
	assert.Empty(t, chunk)
	assert.ErrorIs(t, err, io.EOF)
}

func TestWindowPool(t *testing.T) {
	buf := getWindowBuffer(64)
	assert.GreaterOrEqual(t, cap(buf), 64)
	assert.Empty(t, buf)
	putWindowBuffer(buf)

	big := getWindowBuffer(1 << 20)
	assert.GreaterOrEqual(t, cap(big), 1<<20)
	putWindowBuffer(big)
	putWindowBuffer(nil)
}
