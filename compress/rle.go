package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/tilecube/tilecube/errs"
	"github.com/tilecube/tilecube/internal/pool"
)

// RLECodec provides run-length encoding over fixed-width values.
//
// The payload is a sequence of runs, each a literal value of valueSize
// bytes followed by a uvarint run length. Long runs of identical cells
// (fill values in dense tiles, repeated coordinates) collapse to a few
// bytes; incompressible data grows by at most one byte per value.
type RLECodec struct {
	valueSize int
}

var _ Codec = (*RLECodec)(nil)

// NewRLECodec creates an RLE codec for values of the given byte width.
//
// Returns errs.ErrInvalidValueSize unless valueSize is 1, 2, 4 or 8.
func NewRLECodec(valueSize int) (RLECodec, error) {
	if err := checkValueSize(valueSize); err != nil {
		return RLECodec{}, err
	}

	return RLECodec{valueSize: valueSize}, nil
}

// Compress run-length encodes the input data.
//
// The input length must be a multiple of the codec's value size.
func (c RLECodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data)%c.valueSize != 0 {
		return nil, fmt.Errorf("%w: payload of %d bytes is not a multiple of value size %d",
			errs.ErrInvalidArgument, len(data), c.valueSize)
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	var temp [binary.MaxVarintLen64]byte

	run := data[:c.valueSize]
	runLen := uint64(1)
	for off := c.valueSize; off < len(data); off += c.valueSize {
		value := data[off : off+c.valueSize]
		if bytes.Equal(value, run) {
			runLen++
			continue
		}

		buf.Append(run...)
		n := binary.PutUvarint(temp[:], runLen)
		buf.Append(temp[:n]...)

		run = value
		runLen = 1
	}

	buf.Append(run...)
	n := binary.PutUvarint(temp[:], runLen)
	buf.Append(temp[:n]...)

	return buf.CopyOut(), nil
}

// Decompress expands a run-length encoded payload.
func (c RLECodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	for off := 0; off < len(data); {
		if off+c.valueSize > len(data) {
			return nil, errs.ErrCompressedTruncated
		}
		value := data[off : off+c.valueSize]
		off += c.valueSize

		runLen, n := binary.Uvarint(data[off:])
		if n <= 0 || runLen == 0 {
			return nil, errs.ErrCompressedTruncated
		}
		off += n

		for i := uint64(0); i < runLen; i++ {
			buf.Append(value...)
		}
	}

	return buf.CopyOut(), nil
}
