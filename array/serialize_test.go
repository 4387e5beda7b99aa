package array

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tilecube/tilecube/errs"
	"github.com/tilecube/tilecube/format"
)

func TestSerialize_GoldenImage(t *testing.T) {
	d, err := NewDimension("d", format.Int8, []int8{0, 3}, []int8{1})
	require.NoError(t, err)
	space, err := NewHyperspace(d)
	require.NoError(t, err)

	builder := NewMetadataBuilder("a")
	require.NoError(t, builder.SetArrayType(format.Dense))
	require.NoError(t, builder.SetHyperspace(space))

	attr, err := NewAttribute("a1", format.Int32)
	require.NoError(t, err)
	require.NoError(t, attr.SetCompressor(format.GZip, 6))
	require.NoError(t, builder.AddAttribute(attr))

	m, err := builder.Build()
	require.NoError(t, err)

	image, err := m.Serialize()
	require.NoError(t, err)

	expected := []byte{
		// uri "a"
		0x01, 0x00, 0x00, 0x00, 0x61,
		// array type, tile order, cell order
		0x00, 0x00, 0x00,
		// capacity 10000
		0x10, 0x27, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		// dim num, coord type int8
		0x01, 0x00, 0x00, 0x00, 0x05,
		// dimension "d", domain [0,3], extent 1
		0x01, 0x00, 0x00, 0x00, 0x64,
		0x00, 0x03,
		0x01, 0x01,
		// attribute num
		0x01, 0x00, 0x00, 0x00,
		// attribute "a1": int32, one value per cell, gzip level 6
		0x02, 0x00, 0x00, 0x00, 0x61, 0x31,
		0x00,
		0x01, 0x00, 0x00, 0x00,
		0x01,
		0x06, 0x00, 0x00, 0x00,
	}
	require.Equal(t, expected, image)
}

func TestSerialize_RoundTrip(t *testing.T) {
	t.Run("Dense int32", func(t *testing.T) {
		m := buildS1(t)

		image, err := m.Serialize()
		require.NoError(t, err)

		back, err := Deserialize(image)
		require.NoError(t, err)
		require.True(t, m.Equal(back))

		// Derived tables are recomputed, not read.
		require.Equal(t, []int32{0, 1, 0, 1}, back.TileDomain())
		require.Equal(t, uint64(4), back.CellNumPerTile())
	})

	t.Run("3D sparse float64 with two attributes", func(t *testing.T) {
		dims := make([]*Dimension, 3)
		for i, name := range []string{"x", "y", "z"} {
			var err error
			dims[i], err = NewDimension(name, format.Float64, []float64{-1, 1}, nil)
			require.NoError(t, err)
		}
		space, err := NewHyperspace(dims...)
		require.NoError(t, err)

		builder := NewMetadataBuilder("file:///arrays/points")
		require.NoError(t, builder.SetArrayType(format.Sparse))
		require.NoError(t, builder.SetTileOrder(format.ColMajor))
		require.NoError(t, builder.SetCellOrder(format.ColMajor))
		require.NoError(t, builder.SetHyperspace(space))
		builder.SetCapacity(512)

		label, err := NewAttribute("label", format.StringASCII)
		require.NoError(t, err)
		require.NoError(t, label.SetCellValNum(format.VarNum))
		require.NoError(t, label.SetCompressor(format.GZip, 6))
		require.NoError(t, builder.AddAttribute(label))

		pair, err := NewAttribute("pair", format.Int32)
		require.NoError(t, err)
		require.NoError(t, pair.SetCellValNum(2))
		require.NoError(t, builder.AddAttribute(pair))

		m, err := builder.Build()
		require.NoError(t, err)

		image, err := m.Serialize()
		require.NoError(t, err)

		back, err := Deserialize(image)
		require.NoError(t, err)
		require.True(t, m.Equal(back))

		require.Equal(t, format.Sparse, back.ArrayType())
		require.Equal(t, format.ColMajor, back.TileOrder())
		require.Equal(t, format.ColMajor, back.CellOrder())
		require.Equal(t, uint64(512), back.Capacity())
		require.Equal(t, format.Float64, back.CoordsType())

		size, err := back.CellSize(0)
		require.NoError(t, err)
		require.Equal(t, uint64(8), size)
		size, err = back.CellSize(1)
		require.NoError(t, err)
		require.Equal(t, uint64(8), size)
		size, err = back.CellSize(2)
		require.NoError(t, err)
		require.Equal(t, uint64(24), size)

		valNum, err := back.CellValNum(0)
		require.NoError(t, err)
		require.Equal(t, format.VarNum, valNum)

		comp, err := back.Compression(0)
		require.NoError(t, err)
		require.Equal(t, format.GZip, comp)
		level, err := back.CompressionLevel(0)
		require.NoError(t, err)
		require.Equal(t, 6, level)

		// The reloaded metadata serializes to the identical image.
		again, err := back.Serialize()
		require.NoError(t, err)
		require.Equal(t, image, again)
	})
}

func TestDeserialize_Truncated(t *testing.T) {
	m := buildS1(t)
	image, err := m.Serialize()
	require.NoError(t, err)

	// Every strict prefix must fail cleanly.
	for i := 0; i < len(image); i++ {
		_, err := Deserialize(image[:i])
		require.Error(t, err, "prefix length %d", i)
		require.ErrorIs(t, err, errs.ErrDeserialize, "prefix length %d", i)
	}

	_, err = Deserialize(nil)
	require.ErrorIs(t, err, errs.ErrNilBuffer)
}

func TestDeserialize_TrailingBytes(t *testing.T) {
	m := buildS1(t)
	image, err := m.Serialize()
	require.NoError(t, err)

	_, err = Deserialize(append(image, 0x00))
	require.ErrorIs(t, err, errs.ErrTrailingBytes)
}

func TestDeserialize_BadEnumBytes(t *testing.T) {
	m := buildS1(t)
	image, err := m.Serialize()
	require.NoError(t, err)

	uriLen := 4 + len(m.URI())

	t.Run("Array type", func(t *testing.T) {
		corrupt := append([]byte(nil), image...)
		corrupt[uriLen] = 0x7F
		_, err := Deserialize(corrupt)
		require.ErrorIs(t, err, errs.ErrBadEnumByte)
	})

	t.Run("Coordinates type", func(t *testing.T) {
		corrupt := append([]byte(nil), image...)
		// dim_num sits after uri + 3 order bytes + capacity.
		corrupt[uriLen+3+8+4] = 0x7F
		_, err := Deserialize(corrupt)
		require.ErrorIs(t, err, errs.ErrBadEnumByte)
	})
}

func TestDeserialize_InconsistentModel(t *testing.T) {
	// A sparse irregular image flipped to dense lacks the required tile
	// extents and must be rejected as a whole.
	m := buildSparseIrregular(t)
	image, err := m.Serialize()
	require.NoError(t, err)

	corrupt := append([]byte(nil), image...)
	corrupt[4+len(m.URI())] = byte(format.Dense)

	_, err = Deserialize(corrupt)
	require.ErrorIs(t, err, errs.ErrInconsistentModel)
	require.ErrorIs(t, err, errs.ErrDeserialize)
}

func TestDeserialize_BadLayoutByte(t *testing.T) {
	m := buildS1(t)
	image, err := m.Serialize()
	require.NoError(t, err)

	corrupt := append([]byte(nil), image...)
	corrupt[4+len(m.URI())+1] = byte(format.GlobalOrder)

	_, err = Deserialize(corrupt)
	require.ErrorIs(t, err, errs.ErrInconsistentModel)
}
