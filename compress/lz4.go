package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/tilecube/tilecube/format"
)

// lz4CompressorPool pools lz4.Compressor instances; the compressor keeps
// internal match tables that benefit from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec provides LZ4 block compression.
//
// Level 0 (or the default level) selects the fast path; levels 1-9 select
// the high-compression encoder at the matching depth.
type LZ4Codec struct {
	level lz4.CompressionLevel
}

var _ Codec = (*LZ4Codec)(nil)

// NewLZ4Codec creates an LZ4 codec with the given level.
func NewLZ4Codec(level int) LZ4Codec {
	if level <= 0 || level == format.DefaultCompressionLevel {
		return LZ4Codec{level: lz4.Fast}
	}
	if level > 9 {
		level = 9
	}

	// lz4 levels are powers of two: Level1 = 1<<9 ... Level9 = 1<<17.
	return LZ4Codec{level: lz4.CompressionLevel(1 << (8 + level))}
}

// Compress compresses the input data into an LZ4 block.
func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	var (
		n   int
		err error
	)
	if c.level == lz4.Fast {
		lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
		defer lz4CompressorPool.Put(lc)
		n, err = lc.CompressBlock(data, dst)
	} else {
		hc := lz4.CompressorHC{Level: c.level}
		n, err = hc.CompressBlock(data, dst)
	}
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses an LZ4 block.
//
// The block format does not record the decompressed size, so the buffer
// starts at 4x the input and doubles on ErrInvalidSourceShortBuffer, up to
// a 128MB safety limit.
func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := len(data) * 4
	const maxSize = 128 * 1024 * 1024

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
