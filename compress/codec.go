package compress

import (
	"fmt"

	"github.com/tilecube/tilecube/errs"
	"github.com/tilecube/tilecube/format"
)

// Compressor compresses one tile payload.
//
// Memory management:
//   - The returned slice is newly allocated and owned by the caller
//     (except for the pass-through codec, which returns its input).
//   - The input slice is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// The input must have been produced by the matching Compress; corrupted or
// mismatched payloads surface as errors.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. All tilecube codecs are stateless values
// safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// CodecFor creates the codec matching a compressor descriptor.
//
// Parameters:
//   - compressor: the compressor enumeration value from the metadata
//   - level: compression level; format.DefaultCompressionLevel selects the
//     codec default. Byte-oriented codecs clamp out-of-range levels.
//   - valueSize: byte width of one value (1, 2, 4 or 8). Only RLE and
//     DoubleDelta consult it; pass the attribute's datatype size.
//
// Returns:
//   - Codec: codec for the descriptor
//   - error: errs.ErrUnknownCompressor or errs.ErrInvalidValueSize
func CodecFor(compressor format.Compressor, level int, valueSize int) (Codec, error) {
	switch compressor {
	case format.NoCompression:
		return NewNoOpCodec(), nil
	case format.GZip:
		return NewGZipCodec(level), nil
	case format.Zstd:
		return NewZstdCodec(level), nil
	case format.LZ4:
		return NewLZ4Codec(level), nil
	case format.RLE:
		return NewRLECodec(valueSize)
	case format.BZip2:
		return NewBZip2Codec(level), nil
	case format.DoubleDelta:
		return NewDoubleDeltaCodec(valueSize)
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownCompressor, compressor)
	}
}

func checkValueSize(valueSize int) error {
	switch valueSize {
	case 1, 2, 4, 8:
		return nil
	default:
		return fmt.Errorf("%w: got %d", errs.ErrInvalidValueSize, valueSize)
	}
}
