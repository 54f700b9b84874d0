package parser

import (
	"sync"

	"github.com/ryanlewis/bmpkit/internal/common"
)

// blobPool manages read buffers for packed font blobs.
//
// Every buffer is exactly FontDataSize bytes, so fonts decoded repeatedly
// (for example one per image in a batch) reuse the same few buffers.
var blobPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, common.FontDataSize)
		return &buf
	},
}

// acquireBlob gets a FontDataSize buffer from the pool
func acquireBlob() []byte {
	bufPtr, ok := blobPool.Get().(*[]byte)
	if !ok || len(*bufPtr) != common.FontDataSize {
		// Fallback: allocate new buffer if type assertion fails
		return make([]byte, common.FontDataSize)
	}
	return *bufPtr
}

// releaseBlob returns a blob buffer to the pool
func releaseBlob(buf []byte) {
	if len(buf) != common.FontDataSize {
		return
	}
	blobPool.Put(&buf)
}
