package array

import (
	"fmt"

	"github.com/tilecube/tilecube/errs"
	"github.com/tilecube/tilecube/format"
)

// Attribute describes one typed value column stored per cell: a name, a
// datatype, the number of values per cell (fixed or variable), and the
// compressor applied to its tile payloads.
type Attribute struct {
	name       string
	dtype      format.Datatype
	cellValNum uint32
	compressor format.Compressor
	level      int
}

// NewAttribute creates an attribute with one value per cell and no
// compression.
func NewAttribute(name string, dtype format.Datatype) (*Attribute, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: attribute name", errs.ErrEmptyName)
	}
	if name == CoordsName {
		return nil, fmt.Errorf("%w: %q", errs.ErrReservedName, name)
	}
	if !dtype.Valid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownDatatype, dtype)
	}

	return &Attribute{
		name:       name,
		dtype:      dtype,
		cellValNum: 1,
		compressor: format.NoCompression,
		level:      format.DefaultCompressionLevel,
	}, nil
}

// SetCellValNum sets the number of values per cell. Pass format.VarNum for
// variable-sized cells; zero is rejected.
func (a *Attribute) SetCellValNum(num uint32) error {
	if num == 0 {
		return errs.ErrInvalidCellValNum
	}
	a.cellValNum = num

	return nil
}

// SetCompressor sets the compressor and its level for the attribute's tile
// payloads. Pass format.DefaultCompressionLevel for the codec default.
func (a *Attribute) SetCompressor(compressor format.Compressor, level int) error {
	if !compressor.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrUnknownCompressor, compressor)
	}
	a.compressor = compressor
	a.level = level

	return nil
}

// Name returns the attribute name.
func (a *Attribute) Name() string {
	return a.name
}

// Datatype returns the value datatype.
func (a *Attribute) Datatype() format.Datatype {
	return a.dtype
}

// CellValNum returns the number of values per cell, format.VarNum for
// variable-sized attributes.
func (a *Attribute) CellValNum() uint32 {
	return a.cellValNum
}

// VarSize reports whether the attribute stores variable-sized cells.
func (a *Attribute) VarSize() bool {
	return a.cellValNum == format.VarNum
}

// Compressor returns the attribute's compressor.
func (a *Attribute) Compressor() format.Compressor {
	return a.compressor
}

// CompressionLevel returns the attribute's compression level.
func (a *Attribute) CompressionLevel() int {
	return a.level
}

// CellSize returns the byte size of one cell. A variable-sized cell is an
// 8-byte offset into the companion variable-data stream.
func (a *Attribute) CellSize() uint64 {
	if a.VarSize() {
		return 8
	}

	return a.dtype.Size() * uint64(a.cellValNum)
}

// Equal reports whether two attributes are structurally identical.
func (a *Attribute) Equal(other *Attribute) bool {
	return other != nil &&
		a.name == other.name &&
		a.dtype == other.dtype &&
		a.cellValNum == other.cellValNum &&
		a.compressor == other.compressor &&
		a.level == other.level
}

// clone returns a copy.
func (a *Attribute) clone() *Attribute {
	out := *a

	return &out
}
