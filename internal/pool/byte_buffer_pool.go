package pool

import "sync"

const (
	// PayloadBufferDefaultSize is the initial capacity of pooled payload buffers.
	PayloadBufferDefaultSize = 1024 * 64 // 64KiB
	// PayloadBufferMaxThreshold caps the capacity of buffers returned to the pool.
	PayloadBufferMaxThreshold = 1024 * 1024 * 8 // 8MiB
)

// ByteBuffer is a growable byte slice used to assemble encoded array payloads.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// Bytes returns the buffered bytes. The slice is only valid until the buffer is reset.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer, keeping its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Extend grows the buffer length by n bytes and returns the new tail for writing.
func (bb *ByteBuffer) Extend(n int) []byte {
	start := len(bb.B)
	if cap(bb.B)-start < n {
		grown := make([]byte, start, start+max(n, cap(bb.B)/4))
		copy(grown, bb.B)
		bb.B = grown
	}
	bb.B = bb.B[:start+n]

	return bb.B[start:]
}

var payloadBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, PayloadBufferDefaultSize)}
	},
}

// GetPayloadBuffer retrieves an empty buffer from the pool.
func GetPayloadBuffer() *ByteBuffer {
	bb, _ := payloadBufferPool.Get().(*ByteBuffer)
	return bb
}

// PutPayloadBuffer returns bb to the pool. Oversized buffers are discarded.
func PutPayloadBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > PayloadBufferMaxThreshold {
		return
	}
	bb.Reset()
	payloadBufferPool.Put(bb)
}
