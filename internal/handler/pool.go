package handler

import (
	"bytes"
	"sync"
)

// Responses are encoded into pooled buffers before being written out, so a
// failed encode never leaves a half-written body on the wire.
var bufferPool = sync.Pool{
	New: func() interface{} {
		// Most wallet and quote payloads fit in 512 bytes
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
