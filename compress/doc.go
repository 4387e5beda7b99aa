// Package compress provides the compression codecs backing the attribute
// and coordinates compressor descriptors of the array metadata.
//
// The metadata core itself never compresses anything; it only records which
// compressor and level apply to each attribute (and to the coordinates
// column). This package turns those descriptors into working codecs for the
// storage layers that read and write tile payloads.
//
// # Codecs
//
//   - NoCompression: pass-through
//   - GZip: DEFLATE with gzip framing, levels 1-9
//   - Zstd: Zstandard (cgo binding when available, pure Go otherwise)
//   - LZ4: block format, optional high-compression levels 1-9
//   - BZip2: Burrows-Wheeler, levels 1-9
//   - RLE: run-length encoding over fixed-width values
//   - DoubleDelta: delta-of-delta with zigzag + varint packing over
//     fixed-width values, the default coordinates compressor
//
// RLE and DoubleDelta are value-size-aware: they operate on streams of
// fixed-width cells and must be created with the width of one value. The
// byte-oriented codecs ignore the width.
//
// # Usage
//
//	codec, err := compress.CodecFor(attr.Compressor(), attr.CompressionLevel(), int(attr.Datatype().Size()))
//	if err != nil {
//	    return err
//	}
//	payload, err := codec.Compress(tileBytes)
package compress
