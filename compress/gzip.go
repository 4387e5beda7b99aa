package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/tilecube/tilecube/format"
)

// GZipCodec provides DEFLATE compression with gzip framing.
//
// Levels 1-9 follow the usual gzip convention; DefaultCompressionLevel maps
// to the library default. Out-of-range levels are clamped.
type GZipCodec struct {
	level int
}

var _ Codec = (*GZipCodec)(nil)

// NewGZipCodec creates a gzip codec with the given level.
func NewGZipCodec(level int) GZipCodec {
	switch {
	case level == format.DefaultCompressionLevel:
		level = gzip.DefaultCompression
	case level < gzip.BestSpeed:
		level = gzip.BestSpeed
	case level > gzip.BestCompression:
		level = gzip.BestCompression
	}

	return GZipCodec{level: level}
}

// Compress compresses the input data with gzip.
func (c GZipCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("gzip writer: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress inflates a gzip payload.
func (c GZipCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}

	return out, nil
}
