package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer(t *testing.T) {
	bb := NewByteBuffer(16)
	require.Equal(t, 0, bb.Len())

	bb.Append(1, 2, 3)
	require.Equal(t, []byte{1, 2, 3}, bb.Bytes())

	out := bb.CopyOut()
	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Equal(t, []byte{1, 2, 3}, out)
}

func TestPayloadBufferPool(t *testing.T) {
	bb := GetPayloadBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())

	bb.Append(0xAB)
	PutPayloadBuffer(bb)

	// Reused buffers always come back empty.
	again := GetPayloadBuffer()
	require.Equal(t, 0, again.Len())
	PutPayloadBuffer(again)

	// Oversized buffers are dropped rather than pooled.
	big := &ByteBuffer{B: make([]byte, 0, PayloadBufferMaxThreshold+1)}
	PutPayloadBuffer(big)
}
