package format

import "math"

type (
	ArrayType  uint8
	Layout     uint8
	Datatype   uint8
	Compressor uint8
)

// Array types.
const (
	Dense  ArrayType = 0 // Dense represents a fully-populated array.
	Sparse ArrayType = 1 // Sparse represents an array storing only written cells.
)

// Tile and cell layouts. The metadata core accepts only RowMajor and
// ColMajor for tile and cell order; GlobalOrder and Unordered exist for
// the query layer.
const (
	RowMajor    Layout = 0 // RowMajor represents C order, last dimension varies fastest.
	ColMajor    Layout = 1 // ColMajor represents Fortran order, first dimension varies fastest.
	GlobalOrder Layout = 2 // GlobalOrder represents the array global cell order.
	Unordered   Layout = 3 // Unordered represents no particular order.
)

// Cell datatypes. The numeric values are part of the on-disk format and
// must not be reordered.
const (
	Int32       Datatype = 0
	Int64       Datatype = 1
	Float32     Datatype = 2
	Float64     Datatype = 3
	Char        Datatype = 4
	Int8        Datatype = 5
	Uint8       Datatype = 6
	Int16       Datatype = 7
	Uint16      Datatype = 8
	Uint32      Datatype = 9
	Uint64      Datatype = 10
	StringASCII Datatype = 11
)

// Compressors.
const (
	NoCompression Compressor = 0
	GZip          Compressor = 1
	Zstd          Compressor = 2
	LZ4           Compressor = 3
	RLE           Compressor = 4
	BZip2         Compressor = 5
	DoubleDelta   Compressor = 6
)

// DefaultCompressionLevel selects each codec's own default level.
const DefaultCompressionLevel = -1

// VarNum is the cell value count sentinel marking a variable-sized attribute.
const VarNum uint32 = math.MaxUint32

func (a ArrayType) String() string {
	switch a {
	case Dense:
		return "dense"
	case Sparse:
		return "sparse"
	default:
		return "unknown"
	}
}

// Valid reports whether a is a known array type.
func (a ArrayType) Valid() bool {
	return a == Dense || a == Sparse
}

func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row-major"
	case ColMajor:
		return "col-major"
	case GlobalOrder:
		return "global-order"
	case Unordered:
		return "unordered"
	default:
		return "unknown"
	}
}

// Valid reports whether l is a known layout.
func (l Layout) Valid() bool {
	return l <= Unordered
}

func (d Datatype) String() string {
	switch d {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Char:
		return "char"
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case StringASCII:
		return "string:ascii"
	default:
		return "unknown"
	}
}

// Valid reports whether d is a known datatype.
func (d Datatype) Valid() bool {
	return d <= StringASCII
}

// Size returns the byte width of one value of the datatype.
func (d Datatype) Size() uint64 {
	switch d {
	case Int8, Uint8, Char, StringASCII:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// IsInteger reports whether d is a signed or unsigned integer type.
func (d Datatype) IsInteger() bool {
	switch d {
	case Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether d is a floating-point type.
func (d Datatype) IsFloat() bool {
	return d == Float32 || d == Float64
}

// IsValidCoordType reports whether d may type array coordinates.
// Integer widths are always allowed; floating point is allowed only for
// sparse arrays, which the metadata check enforces separately.
func (d Datatype) IsValidCoordType() bool {
	return d.IsInteger() || d.IsFloat()
}

func (c Compressor) String() string {
	switch c {
	case NoCompression:
		return "no-compression"
	case GZip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case RLE:
		return "rle"
	case BZip2:
		return "bzip2"
	case DoubleDelta:
		return "double-delta"
	default:
		return "unknown"
	}
}

// Valid reports whether c is a known compressor.
func (c Compressor) Valid() bool {
	return c <= DoubleDelta
}
