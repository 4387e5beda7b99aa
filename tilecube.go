// Package tilecube implements the metadata and geometry core of a tiled
// multi-dimensional array storage engine.
//
// An array's metadata defines its coordinate domain (an ordered set of
// typed dimensions), its tile partitioning (regular extents or a sparse
// cell capacity), its tile and cell linearization orders, and its
// attribute layout. The sealed metadata answers all of the coordinate
// arithmetic the storage layers need: mapping global coordinates to tile
// ids and in-tile positions, walking cells and tiles in order, clipping
// and classifying subarrays, and sizing tile slabs.
//
// # Basic Usage
//
// Building dense 2D metadata and asking geometry questions:
//
//	rows, _ := tilecube.NewDimension("rows", format.Int32, []int32{1, 4}, []int32{2})
//	cols, _ := tilecube.NewDimension("cols", format.Int32, []int32{1, 4}, []int32{2})
//	space, _ := tilecube.NewHyperspace(rows, cols)
//
//	builder := tilecube.NewDenseBuilder("file:///arrays/a1")
//	_ = builder.SetHyperspace(space)
//	attr, _ := tilecube.NewAttribute("a1", format.Int32)
//	_ = builder.AddAttribute(attr)
//	meta, _ := builder.Build()
//
//	id, _ := meta.TileID([]int32{3, 1})   // 2
//	pos, _ := meta.CellPos([]int32{3, 1}) // 0
//
// Persisting and reloading:
//
//	image, _ := meta.Serialize()
//	again, _ := tilecube.Deserialize(image)
//
// # Package Structure
//
// This package re-exports the common entry points of the array package and
// wires attribute descriptors to the compress package. For the full
// surface use those packages directly; metafile handles the on-disk
// metadata file.
package tilecube

import (
	"github.com/tilecube/tilecube/array"
	"github.com/tilecube/tilecube/compress"
	"github.com/tilecube/tilecube/format"
)

// NewDimension creates a dimension; see array.NewDimension.
func NewDimension(name string, dtype format.Datatype, domain, extent any) (*array.Dimension, error) {
	return array.NewDimension(name, dtype, domain, extent)
}

// NewHyperspace creates a hyperspace over the given dimensions; see
// array.NewHyperspace.
func NewHyperspace(dims ...*array.Dimension) (*array.Hyperspace, error) {
	return array.NewHyperspace(dims...)
}

// NewAttribute creates an attribute; see array.NewAttribute.
func NewAttribute(name string, dtype format.Datatype) (*array.Attribute, error) {
	return array.NewAttribute(name, dtype)
}

// NewDenseBuilder creates a metadata builder preconfigured for a dense
// array.
func NewDenseBuilder(uri string) *array.MetadataBuilder {
	return array.NewMetadataBuilder(uri)
}

// NewSparseBuilder creates a metadata builder preconfigured for a sparse
// array.
func NewSparseBuilder(uri string) *array.MetadataBuilder {
	builder := array.NewMetadataBuilder(uri)
	// The builder default is dense; Sparse is always a valid array type.
	_ = builder.SetArrayType(format.Sparse)

	return builder
}

// Deserialize decodes a metadata byte image; see array.Deserialize.
func Deserialize(data []byte) (*array.Metadata, error) {
	return array.Deserialize(data)
}

// CodecForAttribute creates the compression codec matching an attribute's
// compressor descriptor.
func CodecForAttribute(attr *array.Attribute) (compress.Codec, error) {
	return compress.CodecFor(attr.Compressor(), attr.CompressionLevel(), int(attr.Datatype().Size()))
}

// CoordsCodec creates the compression codec for the coordinates column of
// the given metadata.
func CoordsCodec(m *array.Metadata) (compress.Codec, error) {
	return compress.CodecFor(m.CoordsCompressor(), m.CoordsCompressionLevel(), int(m.CoordsType().Size()))
}
