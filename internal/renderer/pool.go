package renderer

import "sync"

const (
	defaultTokenCapacity = 64

	// Token slices that grew past this are dropped instead of pooled so a
	// single huge render does not pin memory
	maxRetainTokens = 4096
)

// tokenPool manages token slices for Render.
var tokenPool = sync.Pool{
	New: func() interface{} {
		buf := make([]Token, 0, defaultTokenCapacity)
		return &buf
	},
}

// acquireTokens gets an empty token slice from the pool
func acquireTokens() []Token {
	bufPtr, ok := tokenPool.Get().(*[]Token)
	if !ok {
		return make([]Token, 0, defaultTokenCapacity)
	}
	return (*bufPtr)[:0]
}

// releaseTokens returns a token slice to the pool
func releaseTokens(buf []Token) {
	if buf == nil || cap(buf) > maxRetainTokens {
		return
	}
	// Drop string references so pooled slices do not keep input text alive
	clear(buf[:cap(buf)])
	buf = buf[:0]
	tokenPool.Put(&buf)
}
