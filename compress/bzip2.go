package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"

	"github.com/tilecube/tilecube/format"
)

// BZip2Codec provides bzip2 compression, levels 1-9.
//
// The standard library only ships a bzip2 reader; the dsnet writer fills
// the other direction.
type BZip2Codec struct {
	level int
}

var _ Codec = (*BZip2Codec)(nil)

// NewBZip2Codec creates a bzip2 codec with the given level.
func NewBZip2Codec(level int) BZip2Codec {
	switch {
	case level == format.DefaultCompressionLevel:
		level = bzip2.DefaultCompression
	case level < bzip2.BestSpeed:
		level = bzip2.BestSpeed
	case level > bzip2.BestCompression:
		level = bzip2.BestCompression
	}

	return BZip2Codec{level: level}
}

// Compress compresses the input data with bzip2.
func (c BZip2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: c.level})
	if err != nil {
		return nil, fmt.Errorf("bzip2 writer: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("bzip2 compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("bzip2 compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses a bzip2 payload.
func (c BZip2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := bzip2.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("bzip2 decompression failed: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bzip2 decompression failed: %w", err)
	}

	return out, nil
}
