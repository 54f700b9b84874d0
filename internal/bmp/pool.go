package bmp

import "sync"

// maxPooledRow caps the size of row buffers kept for reuse (a 16K-wide row).
const maxPooledRow = 16384 * bytesPerPixel

// rowPool manages encoder row buffers.
//
// Buffer Return Policy:
// - Rows wider than maxPooledRow are dropped to avoid pinning large buffers
// - A reused buffer is zeroed so row padding stays zero
var rowPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, 1024)
		return &buf
	},
}

// acquireRow returns a zeroed buffer of exactly stride bytes.
func acquireRow(stride int) []byte {
	bufPtr, ok := rowPool.Get().(*[]byte)
	if !ok || cap(*bufPtr) < stride {
		return make([]byte, stride)
	}
	buf := (*bufPtr)[:stride]
	clear(buf)
	return buf
}

// releaseRow returns a row buffer to the pool.
func releaseRow(buf []byte) {
	if buf == nil || cap(buf) > maxPooledRow {
		return
	}
	buf = buf[:0]
	rowPool.Put(&buf)
}
