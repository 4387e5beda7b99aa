package compress

import (
	"encoding/binary"
	"fmt"

	"github.com/tilecube/tilecube/errs"
	"github.com/tilecube/tilecube/internal/pool"
)

// DoubleDeltaCodec provides delta-of-delta compression over fixed-width
// integer values. It is the default codec for the coordinates column,
// where consecutive cells in the array global order differ by small,
// regular strides.
//
// Payload layout:
//   - uvarint value count
//   - first value, uvarint of its raw bits
//   - second value, zigzag uvarint of the delta to the first
//   - remaining values, zigzag uvarint of the delta-of-delta
//
// Values are widened to uint64 from their little-endian fixed-width form
// and all arithmetic wraps mod 2^64, so every width and signedness decodes
// bit-exactly.
type DoubleDeltaCodec struct {
	valueSize int
}

var _ Codec = (*DoubleDeltaCodec)(nil)

// NewDoubleDeltaCodec creates a delta-of-delta codec for values of the
// given byte width.
//
// Returns errs.ErrInvalidValueSize unless valueSize is 1, 2, 4 or 8.
func NewDoubleDeltaCodec(valueSize int) (DoubleDeltaCodec, error) {
	if err := checkValueSize(valueSize); err != nil {
		return DoubleDeltaCodec{}, err
	}

	return DoubleDeltaCodec{valueSize: valueSize}, nil
}

// Compress delta-of-delta encodes the input data.
//
// The input length must be a multiple of the codec's value size.
func (c DoubleDeltaCodec) Compress(data []byte) ([]byte, error) {
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
	count := uint64(len(data) / c.valueSize)
	n := binary.PutUvarint(temp[:], count)
	buf.Append(temp[:n]...)

	var prev, prevDelta uint64
	for i := uint64(0); i < count; i++ {
		v := c.loadValue(data, int(i))

		switch i {
		case 0:
			// First value: raw bits, no zigzag.
			n = binary.PutUvarint(temp[:], v)
		case 1:
			delta := v - prev
			prevDelta = delta
			n = binary.PutUvarint(temp[:], zigzag(delta))
		default:
			delta := v - prev
			n = binary.PutUvarint(temp[:], zigzag(delta-prevDelta))
			prevDelta = delta
		}

		buf.Append(temp[:n]...)
		prev = v
	}

	return buf.CopyOut(), nil
}

// Decompress expands a delta-of-delta payload.
func (c DoubleDeltaCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	count, off := binary.Uvarint(data)
	if off <= 0 {
		return nil, errs.ErrCompressedTruncated
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	var prev, prevDelta uint64
	for i := uint64(0); i < count; i++ {
		raw, n := binary.Uvarint(data[off:])
		if n <= 0 {
			return nil, errs.ErrCompressedTruncated
		}
		off += n

		switch i {
		case 0:
			prev = raw
		case 1:
			prevDelta = unzigzag(raw)
			prev += prevDelta
		default:
			prevDelta += unzigzag(raw)
			prev += prevDelta
		}

		c.storeValue(buf, prev)
	}
	if off != len(data) {
		return nil, errs.ErrCompressedTruncated
	}

	return buf.CopyOut(), nil
}

// loadValue widens the i-th little-endian value to uint64.
func (c DoubleDeltaCodec) loadValue(data []byte, i int) uint64 {
	var v uint64
	base := i * c.valueSize
	for b := c.valueSize - 1; b >= 0; b-- {
		v = v<<8 | uint64(data[base+b])
	}

	return v
}

// storeValue appends the low valueSize bytes of v in little-endian order.
func (c DoubleDeltaCodec) storeValue(buf *pool.ByteBuffer, v uint64) {
	for b := 0; b < c.valueSize; b++ {
		buf.Append(byte(v >> (8 * b)))
	}
}

func zigzag(v uint64) uint64 {
	s := int64(v)

	return uint64((s << 1) ^ (s >> 63))
}

func unzigzag(v uint64) uint64 {
	return (v >> 1) ^ uint64(-int64(v&1))
}
