package array

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tilecube/tilecube/errs"
	"github.com/tilecube/tilecube/format"
)

// buildS1 creates the reference 2D dense int32 array: domain [1,4]x[1,4],
// extents 2x2, row-major tile and cell order, one int32 attribute.
func buildS1(t *testing.T) *Metadata {
	t.Helper()

	return buildDense2D(t, format.RowMajor, format.RowMajor)
}

func buildDense2D(t *testing.T, tileOrder, cellOrder format.Layout) *Metadata {
	t.Helper()

	space, err := NewHyperspace(testDim(t, "rows", 1, 4, 2), testDim(t, "cols", 1, 4, 2))
	require.NoError(t, err)

	builder := NewMetadataBuilder("file:///arrays/s1")
	require.NoError(t, builder.SetArrayType(format.Dense))
	require.NoError(t, builder.SetTileOrder(tileOrder))
	require.NoError(t, builder.SetCellOrder(cellOrder))
	require.NoError(t, builder.SetHyperspace(space))

	attr, err := NewAttribute("a1", format.Int32)
	require.NoError(t, err)
	require.NoError(t, builder.AddAttribute(attr))

	m, err := builder.Build()
	require.NoError(t, err)

	return m
}

// buildSparseRegular creates a sparse int32 array with regular 2x2 tiles
// over domain [1,5]x[1,5].
func buildSparseRegular(t *testing.T) *Metadata {
	t.Helper()

	space, err := NewHyperspace(testDim(t, "rows", 1, 5, 2), testDim(t, "cols", 1, 5, 2))
	require.NoError(t, err)

	builder := NewMetadataBuilder("file:///arrays/sparse-regular")
	require.NoError(t, builder.SetArrayType(format.Sparse))
	require.NoError(t, builder.SetHyperspace(space))

	m, err := builder.Build()
	require.NoError(t, err)

	return m
}

// buildSparseIrregular creates a sparse float64 array without tile extents.
func buildSparseIrregular(t *testing.T) *Metadata {
	t.Helper()

	x, err := NewDimension("x", format.Float64, []float64{0, 1}, nil)
	require.NoError(t, err)
	y, err := NewDimension("y", format.Float64, []float64{0, 1}, nil)
	require.NoError(t, err)
	space, err := NewHyperspace(x, y)
	require.NoError(t, err)

	builder := NewMetadataBuilder("file:///arrays/sparse-irregular")
	require.NoError(t, builder.SetArrayType(format.Sparse))
	require.NoError(t, builder.SetHyperspace(space))
	builder.SetCapacity(1000)

	m, err := builder.Build()
	require.NoError(t, err)

	return m
}

func TestMetadataBuilder_Defaults(t *testing.T) {
	m := buildS1(t)

	require.Equal(t, "file:///arrays/s1", m.URI())
	require.Equal(t, format.Dense, m.ArrayType())
	require.True(t, m.Dense())
	require.Equal(t, format.RowMajor, m.TileOrder())
	require.Equal(t, format.RowMajor, m.CellOrder())
	require.Equal(t, DefaultCapacity, m.Capacity())
}

func TestMetadataBuilder_Setters(t *testing.T) {
	builder := NewMetadataBuilder("uri")

	require.ErrorIs(t, builder.SetArrayType(format.ArrayType(7)), errs.ErrUnknownArrayType)
	require.ErrorIs(t, builder.SetTileOrder(format.GlobalOrder), errs.ErrUnsupportedLayout)
	require.ErrorIs(t, builder.SetTileOrder(format.Unordered), errs.ErrUnsupportedLayout)
	require.ErrorIs(t, builder.SetCellOrder(format.GlobalOrder), errs.ErrUnsupportedLayout)
	require.ErrorIs(t, builder.SetHyperspace(nil), errs.ErrNilHyperspace)
	require.ErrorIs(t, builder.AddAttribute(nil), errs.ErrNilAttribute)
}

func TestMetadataBuilder_Invariants(t *testing.T) {
	denseBuilder := func(t *testing.T, space *Hyperspace) *MetadataBuilder {
		t.Helper()
		builder := NewMetadataBuilder("uri")
		require.NoError(t, builder.SetArrayType(format.Dense))
		require.NoError(t, builder.SetHyperspace(space))

		return builder
	}

	t.Run("No hyperspace", func(t *testing.T) {
		_, err := NewMetadataBuilder("uri").Build()
		require.ErrorIs(t, err, errs.ErrNoHyperspace)
	})

	t.Run("No dimensions", func(t *testing.T) {
		space, err := NewHyperspace()
		require.NoError(t, err)
		_, err = denseBuilder(t, space).Build()
		require.ErrorIs(t, err, errs.ErrNoDimensions)
	})

	t.Run("Dense without extents", func(t *testing.T) {
		space, err := NewHyperspace(testDim(t, "d", 1, 4, 0))
		require.NoError(t, err)
		_, err = denseBuilder(t, space).Build()
		require.ErrorIs(t, err, errs.ErrExtentMissing)
	})

	t.Run("Dense float coordinates", func(t *testing.T) {
		x, err := NewDimension("x", format.Float64, []float64{0, 4}, []float64{2})
		require.NoError(t, err)
		space, err := NewHyperspace(x)
		require.NoError(t, err)
		_, err = denseBuilder(t, space).Build()
		require.ErrorIs(t, err, errs.ErrDenseFloatCoords)
	})

	t.Run("Extent does not divide span", func(t *testing.T) {
		space, err := NewHyperspace(testDim(t, "d", 1, 5, 2))
		require.NoError(t, err)
		_, err = denseBuilder(t, space).Build()
		require.ErrorIs(t, err, errs.ErrExtentNotDividing)
	})

	t.Run("Sparse irregular with zero capacity", func(t *testing.T) {
		space, err := NewHyperspace(testDim(t, "d", 1, 5, 0))
		require.NoError(t, err)

		builder := NewMetadataBuilder("uri")
		require.NoError(t, builder.SetArrayType(format.Sparse))
		require.NoError(t, builder.SetHyperspace(space))
		builder.SetCapacity(0)

		_, err = builder.Build()
		require.ErrorIs(t, err, errs.ErrZeroCapacity)
	})

	t.Run("Duplicate attributes", func(t *testing.T) {
		space, err := NewHyperspace(testDim(t, "d", 1, 4, 2))
		require.NoError(t, err)
		builder := denseBuilder(t, space)

		a1, err := NewAttribute("a", format.Int32)
		require.NoError(t, err)
		a2, err := NewAttribute("a", format.Float64)
		require.NoError(t, err)
		require.NoError(t, builder.AddAttribute(a1))
		require.NoError(t, builder.AddAttribute(a2))

		_, err = builder.Build()
		require.ErrorIs(t, err, errs.ErrDuplicateAttribute)
	})

	t.Run("Tile count overflow", func(t *testing.T) {
		// Two dimensions of 2^32 tiles each overflow the uint64 product.
		d1, err := NewDimension("d1", format.Int64, []int64{0, 1<<33 - 1}, []int64{2})
		require.NoError(t, err)
		d2, err := NewDimension("d2", format.Int64, []int64{0, 1<<33 - 1}, []int64{2})
		require.NoError(t, err)
		space, err := NewHyperspace(d1, d2)
		require.NoError(t, err)

		_, err = denseBuilder(t, space).Build()
		require.ErrorIs(t, err, errs.ErrTileCountOverflow)
		require.ErrorIs(t, err, errs.ErrOverflow)
	})

	t.Run("Cell count overflow", func(t *testing.T) {
		// Two 2^33 extents overflow the cells-per-tile product.
		d1, err := NewDimension("d1", format.Int64, []int64{0, 1<<34 - 1}, []int64{1 << 33})
		require.NoError(t, err)
		d2, err := NewDimension("d2", format.Int64, []int64{0, 1<<34 - 1}, []int64{1 << 33})
		require.NoError(t, err)
		space, err := NewHyperspace(d1, d2)
		require.NoError(t, err)

		_, err = denseBuilder(t, space).Build()
		require.ErrorIs(t, err, errs.ErrCellCountOverflow)
	})

	t.Run("Builder reusable after failure", func(t *testing.T) {
		builder := NewMetadataBuilder("uri")
		require.NoError(t, builder.SetArrayType(format.Dense))

		_, err := builder.Build()
		require.ErrorIs(t, err, errs.ErrNoHyperspace)

		space, err := NewHyperspace(testDim(t, "d", 1, 4, 2))
		require.NoError(t, err)
		require.NoError(t, builder.SetHyperspace(space))

		m, err := builder.Build()
		require.NoError(t, err)
		require.Equal(t, 1, m.DimNum())
	})
}

func TestMetadata_DerivedTables(t *testing.T) {
	m := buildS1(t)

	require.Equal(t, format.Int32, m.CoordsType())
	require.Equal(t, 2, m.DimNum())
	require.Equal(t, uint64(8), m.CoordsSize())
	require.Equal(t, uint64(4), m.CellNumPerTile())
	require.Equal(t, []int32{1, 4, 1, 4}, m.Domain())
	require.Equal(t, []int32{2, 2}, m.TileExtents())
	require.Equal(t, []int32{0, 1, 0, 1}, m.TileDomain())

	num, err := m.TileNum()
	require.NoError(t, err)
	require.Equal(t, uint64(4), num)
}

func TestMetadata_AttributeAccessors(t *testing.T) {
	space, err := NewHyperspace(testDim(t, "rows", 1, 4, 2), testDim(t, "cols", 1, 4, 2))
	require.NoError(t, err)

	builder := NewMetadataBuilder("uri")
	require.NoError(t, builder.SetArrayType(format.Dense))
	require.NoError(t, builder.SetHyperspace(space))

	fixed, err := NewAttribute("fixed", format.Int32)
	require.NoError(t, err)
	require.NoError(t, fixed.SetCellValNum(2))
	require.NoError(t, fixed.SetCompressor(format.LZ4, format.DefaultCompressionLevel))

	variable, err := NewAttribute("variable", format.StringASCII)
	require.NoError(t, err)
	require.NoError(t, variable.SetCellValNum(format.VarNum))
	require.NoError(t, variable.SetCompressor(format.GZip, 6))

	require.NoError(t, builder.AddAttribute(fixed))
	require.NoError(t, builder.AddAttribute(variable))

	m, err := builder.Build()
	require.NoError(t, err)

	require.Equal(t, 2, m.AttributeNum())
	require.Equal(t, []string{"fixed", "variable", CoordsName}, m.AttributeNames())

	id, err := m.AttributeID("variable")
	require.NoError(t, err)
	require.Equal(t, 1, id)

	id, err = m.AttributeID(CoordsName)
	require.NoError(t, err)
	require.Equal(t, 2, id)

	_, err = m.AttributeID("missing")
	require.ErrorIs(t, err, errs.ErrAttributeNotFound)

	ids, err := m.AttributeIDs([]string{"variable", "fixed"})
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, ids)

	name, err := m.AttributeName(2)
	require.NoError(t, err)
	require.Equal(t, CoordsName, name)

	// Cell sizes: fixed int32 x2 = 8, var = 8-byte offset, coords = 2x4.
	size, err := m.CellSize(0)
	require.NoError(t, err)
	require.Equal(t, uint64(8), size)
	size, err = m.CellSize(1)
	require.NoError(t, err)
	require.Equal(t, uint64(8), size)
	size, err = m.CellSize(2)
	require.NoError(t, err)
	require.Equal(t, uint64(8), size)

	varSize, err := m.VarSize(1)
	require.NoError(t, err)
	require.True(t, varSize)
	varSize, err = m.VarSize(2)
	require.NoError(t, err)
	require.False(t, varSize)

	dtype, err := m.Type(2)
	require.NoError(t, err)
	require.Equal(t, format.Int32, dtype)

	typeSize, err := m.TypeSize(1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), typeSize)

	comp, err := m.Compression(1)
	require.NoError(t, err)
	require.Equal(t, format.GZip, comp)
	level, err := m.CompressionLevel(1)
	require.NoError(t, err)
	require.Equal(t, 6, level)

	comp, err = m.Compression(2)
	require.NoError(t, err)
	require.Equal(t, CoordsCompression, comp)

	valNum, err := m.CellValNum(1)
	require.NoError(t, err)
	require.Equal(t, format.VarNum, valNum)
	valNum, err = m.CellValNum(2)
	require.NoError(t, err)
	require.Equal(t, uint32(2), valNum)

	_, err = m.Attribute(5)
	require.ErrorIs(t, err, errs.ErrAttributeIDRange)
	_, err = m.CellSize(5)
	require.ErrorIs(t, err, errs.ErrAttributeIDRange)
}

func TestMetadata_SparseIrregular(t *testing.T) {
	m := buildSparseIrregular(t)

	require.False(t, m.Dense())
	require.Nil(t, m.TileExtents())
	require.Nil(t, m.TileDomain())
	require.Equal(t, uint64(0), m.CellNumPerTile())
	require.Equal(t, uint64(1000), m.Capacity())

	_, err := m.TileNum()
	require.ErrorIs(t, err, errs.ErrNoRegularTiles)
	require.ErrorIs(t, err, errs.ErrNotApplicable)
}

func TestMetadata_CloneAndEqual(t *testing.T) {
	m := buildS1(t)

	clone := m.Clone()
	require.True(t, m.Equal(clone))
	require.NotSame(t, m, clone)

	// The clone shares no coordinate buffers with the original.
	clone.domain.([]int32)[0] = 99
	require.Equal(t, []int32{1, 4, 1, 4}, m.Domain())

	other := buildDense2D(t, format.ColMajor, format.RowMajor)
	require.False(t, m.Equal(other))
	require.False(t, m.Equal(nil))
}

func TestMetadata_BuilderInputsCloned(t *testing.T) {
	space, err := NewHyperspace(testDim(t, "d", 1, 4, 2))
	require.NoError(t, err)
	attr, err := NewAttribute("a", format.Int32)
	require.NoError(t, err)

	builder := NewMetadataBuilder("uri")
	require.NoError(t, builder.SetArrayType(format.Dense))
	require.NoError(t, builder.SetHyperspace(space))
	require.NoError(t, builder.AddAttribute(attr))

	m, err := builder.Build()
	require.NoError(t, err)

	// Mutating the inputs after Build must not reach the sealed metadata.
	require.NoError(t, attr.SetCompressor(format.BZip2, 9))
	got, err := m.Attribute(0)
	require.NoError(t, err)
	require.Equal(t, format.NoCompression, got.Compressor())
}

func TestMetadata_DumpTo(t *testing.T) {
	m := buildS1(t)

	var sb strings.Builder
	require.NoError(t, m.DumpTo(&sb))

	out := sb.String()
	require.Contains(t, out, "=== Array metadata ===")
	require.Contains(t, out, "- Array type: dense")
	require.Contains(t, out, "- Cell num per tile: 4")
	require.Contains(t, out, "- Name: rows")
	require.Contains(t, out, "- Domain: [1, 4]")
	require.Contains(t, out, "- Tile extent: 2")
	require.Contains(t, out, "- Name: a1")
}

func TestMetadata_CoordsPolicy(t *testing.T) {
	m := buildSparseIrregular(t)

	require.Equal(t, CoordsCompression, m.CoordsCompressor())
	require.Equal(t, CoordsCompressionLevel, m.CoordsCompressionLevel())
	require.Equal(t, uint64(16), m.CoordsSize())
}

func TestMetadata_Int8FullRangeDomain(t *testing.T) {
	// The int8 domain spanning the full type range exercises the modular
	// difference arithmetic.
	d, err := NewDimension("d", format.Int8, []int8{math.MinInt8, math.MaxInt8}, []int8{4})
	require.NoError(t, err)
	space, err := NewHyperspace(d)
	require.NoError(t, err)

	builder := NewMetadataBuilder("uri")
	require.NoError(t, builder.SetArrayType(format.Dense))
	require.NoError(t, builder.SetHyperspace(space))

	m, err := builder.Build()
	require.NoError(t, err)

	num, err := m.TileNum()
	require.NoError(t, err)
	require.Equal(t, uint64(64), num)
	require.Equal(t, uint64(4), m.CellNumPerTile())

	id, err := m.TileID([]int8{math.MinInt8})
	require.NoError(t, err)
	require.Equal(t, uint64(0), id)

	id, err = m.TileID([]int8{math.MaxInt8})
	require.NoError(t, err)
	require.Equal(t, uint64(63), id)

	pos, err := m.CellPos([]int8{-125})
	require.NoError(t, err)
	require.Equal(t, uint64(3), pos)
}
