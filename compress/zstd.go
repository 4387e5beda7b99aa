package compress

import "github.com/tilecube/tilecube/format"

// ZstdCodec provides Zstandard compression.
//
// Two implementations back this type: a cgo binding to libzstd when cgo is
// available, and a pure Go fallback otherwise. Both produce standard
// Zstandard frames, so payloads are interchangeable between builds.
type ZstdCodec struct {
	level int
}

var _ Codec = (*ZstdCodec)(nil)

// zstdDefaultLevel mirrors the upstream libzstd default.
const zstdDefaultLevel = 3

// NewZstdCodec creates a Zstandard codec with the given level.
// DefaultCompressionLevel maps to the upstream default level.
func NewZstdCodec(level int) ZstdCodec {
	if level == format.DefaultCompressionLevel || level == 0 {
		level = zstdDefaultLevel
	}

	return ZstdCodec{level: level}
}
