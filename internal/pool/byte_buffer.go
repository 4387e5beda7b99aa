// Package pool provides pooled byte buffers for codec output staging.
package pool

import "sync"

// PayloadBufferDefaultSize is the initial capacity of buffers handed out by
// the pool; PayloadBufferMaxThreshold is the largest capacity the pool will
// take back, keeping oversized one-off buffers out of the steady state.
const (
	PayloadBufferDefaultSize  = 4 * 1024
	PayloadBufferMaxThreshold = 1024 * 1024
)

// ByteBuffer is a minimal append-oriented byte buffer.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the current length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer but keeps its allocation.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Append appends data to the buffer.
func (bb *ByteBuffer) Append(data ...byte) {
	bb.B = append(bb.B, data...)
}

// CopyOut returns an exact-size copy of the buffer contents, safe to retain
// after the buffer goes back to the pool.
func (bb *ByteBuffer) CopyOut() []byte {
	out := make([]byte, len(bb.B))
	copy(out, bb.B)

	return out
}

var payloadBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(PayloadBufferDefaultSize)
	},
}

// GetPayloadBuffer returns an empty pooled buffer.
func GetPayloadBuffer() *ByteBuffer {
	bb, _ := payloadBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutPayloadBuffer returns a buffer to the pool. Buffers that grew past
// PayloadBufferMaxThreshold are dropped.
func PutPayloadBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > PayloadBufferMaxThreshold {
		return
	}
	payloadBufferPool.Put(bb)
}
