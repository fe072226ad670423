package stream

import (
	"io"
	"sync"
)

// windowPool recycles window buffers between streaming sessions. A pooled
// buffer that is too small for the requested capacity is replaced.
var windowPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 3*MemoryConstrainedConfig().BufferSize)
		return &b
	},
}

// getWindowBuffer returns an empty buffer with at least the given capacity.
func getWindowBuffer(capacity int) []byte {
	p := windowPool.Get().(*[]byte)
	buf := *p
	if cap(buf) < capacity {
		return make([]byte, 0, capacity)
	}
	return buf[:0]
}

// putWindowBuffer returns buf to the pool.
func putWindowBuffer(buf []byte) {
	// Avoid keeping high-performance sized buffers alive indefinitely.
	const maxCapacity = 3 * 128 * KiB
	if buf == nil || cap(buf) > maxCapacity {
		return
	}
	buf = buf[:0]
	windowPool.Put(&buf)
}

// window is a bounded byte buffer holding input that has not been tokenized
// yet. buf[start:] is unconsumed; buf[:start] has been consumed and is dropped
// on the next refill.
type window struct {
	buf      []byte
	start    int
	capacity int // configured buffer size
}

func newWindow(bufferSize int) *window {
	// Room for the low-water remainder plus a full refill of twice the buffer size.
	return &window{
		buf:      getWindowBuffer(3 * bufferSize),
		capacity: bufferSize,
	}
}

// unconsumed returns the bytes not yet tokenized.
func (w *window) unconsumed() []byte {
	return w.buf[w.start:]
}

// needsFill reports whether the unconsumed portion is empty or dropped below
// a quarter of the configured capacity.
func (w *window) needsFill() bool {
	n := len(w.buf) - w.start
	return n == 0 || n < w.capacity/4
}

// consume marks n more bytes as tokenized.
func (w *window) consume(n int) {
	w.start += n
	if w.start == len(w.buf) {
		w.buf = w.buf[:0]
		w.start = 0
	}
}

// fill compacts the window and reads up to twice the configured capacity from
// r. It returns the bytes read and the reader's error, which may be io.EOF.
func (w *window) fill(r io.Reader) ([]byte, error) {
	if w.start > 0 {
		n := copy(w.buf, w.buf[w.start:])
		w.buf = w.buf[:n]
		w.start = 0
	}

	want := 2 * w.capacity
	if free := cap(w.buf) - len(w.buf); free < want {
		grown := make([]byte, len(w.buf), len(w.buf)+want)
		copy(grown, w.buf)
		w.buf = grown
	}

	begin := len(w.buf)
	n, err := io.ReadAtLeast(r, w.buf[begin:begin+want], 1)
	w.buf = w.buf[:begin+n]
	return w.buf[begin : begin+n], err
}

// release hands the buffer back to the pool.
func (w *window) release() {
	putWindowBuffer(w.buf)
	w.buf = nil
	w.start = 0
}
