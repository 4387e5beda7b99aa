// Package errs defines the sentinel errors shared across tilecube packages.
//
// Every fallible operation of the array package returns one of the
// sentinels below, possibly wrapped with extra context; the metafile and
// compress packages also return file-system and compression-library errors
// that carry no sentinel. Each specific sentinel wraps one of
// the five kind sentinels, so callers can classify failures with errors.Is
// against either the exact condition or its kind:
//
//	_, err := builder.Build()
//	if errors.Is(err, errs.ErrInvariant) {
//	    // metadata definition is self-contradictory, fix and retry
//	}
package errs

import (
	"errors"
	"fmt"
)

// Error kinds. Specific sentinels wrap exactly one kind.
var (
	// ErrInvalidArgument indicates a caller-supplied value violating a
	// static precondition.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvariant indicates a metadata definition that contradicts itself.
	ErrInvariant = errors.New("invariant violation")
	// ErrDeserialize indicates a truncated or inconsistent metadata buffer.
	ErrDeserialize = errors.New("deserialize error")
	// ErrNotApplicable indicates a geometry operation that requires regular
	// tiles invoked on metadata without them.
	ErrNotApplicable = errors.New("not applicable")
	// ErrOverflow indicates an intermediate geometry product exceeding the
	// uint64 range.
	ErrOverflow = errors.New("arithmetic overflow")
)

// Invalid arguments.
var (
	ErrEmptyName           = fmt.Errorf("%w: empty name", ErrInvalidArgument)
	ErrNilDimension        = fmt.Errorf("%w: nil dimension", ErrInvalidArgument)
	ErrNilAttribute        = fmt.Errorf("%w: nil attribute", ErrInvalidArgument)
	ErrNilHyperspace       = fmt.Errorf("%w: nil hyperspace", ErrInvalidArgument)
	ErrNilBuffer           = fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	ErrUnknownDatatype     = fmt.Errorf("%w: unknown datatype", ErrInvalidArgument)
	ErrUnknownCompressor   = fmt.Errorf("%w: unknown compressor", ErrInvalidArgument)
	ErrUnknownArrayType    = fmt.Errorf("%w: unknown array type", ErrInvalidArgument)
	ErrUnsupportedLayout   = fmt.Errorf("%w: layout not supported by the metadata core", ErrInvalidArgument)
	ErrInvalidCoordType    = fmt.Errorf("%w: datatype cannot type coordinates", ErrInvalidArgument)
	ErrCoordsTypeMismatch  = fmt.Errorf("%w: coordinate buffer does not match the coordinates type", ErrInvalidArgument)
	ErrCoordsLength        = fmt.Errorf("%w: coordinate buffer has the wrong length", ErrInvalidArgument)
	ErrAttributeNotFound   = fmt.Errorf("%w: attribute not found", ErrInvalidArgument)
	ErrAttributeIDRange    = fmt.Errorf("%w: attribute id out of range", ErrInvalidArgument)
	ErrDimensionIDRange    = fmt.Errorf("%w: dimension id out of range", ErrInvalidArgument)
	ErrInvalidCellValNum   = fmt.Errorf("%w: cell value count must be positive or VarNum", ErrInvalidArgument)
	ErrInvalidValueSize    = fmt.Errorf("%w: value size must be 1, 2, 4 or 8 bytes", ErrInvalidArgument)
	ErrCompressedTruncated = fmt.Errorf("%w: compressed payload truncated", ErrInvalidArgument)
)

// Invariant violations reported by metadata checks.
var (
	ErrNoDimensions        = fmt.Errorf("%w: hyperspace has no dimensions", ErrInvariant)
	ErrNoHyperspace        = fmt.Errorf("%w: metadata has no hyperspace", ErrInvariant)
	ErrCoordTypeMixed      = fmt.Errorf("%w: dimensions carry different coordinate types", ErrInvariant)
	ErrDomainOutOfOrder    = fmt.Errorf("%w: domain low bound exceeds high bound", ErrInvariant)
	ErrDomainNotFinite     = fmt.Errorf("%w: domain bound is NaN or infinite", ErrInvariant)
	ErrExtentNotPositive   = fmt.Errorf("%w: tile extent must be positive", ErrInvariant)
	ErrExtentTooLarge      = fmt.Errorf("%w: tile extent exceeds the domain span", ErrInvariant)
	ErrExtentNotDividing   = fmt.Errorf("%w: tile extent does not divide the domain span", ErrInvariant)
	ErrExtentMissing       = fmt.Errorf("%w: dense arrays require a tile extent on every dimension", ErrInvariant)
	ErrDenseFloatCoords    = fmt.Errorf("%w: dense arrays require integer coordinates", ErrInvariant)
	ErrZeroCapacity        = fmt.Errorf("%w: sparse arrays with irregular tiles require a positive capacity", ErrInvariant)
	ErrDuplicateAttribute  = fmt.Errorf("%w: duplicate attribute name", ErrInvariant)
	ErrDuplicateDimension  = fmt.Errorf("%w: duplicate dimension name", ErrInvariant)
	ErrReservedName        = fmt.Errorf("%w: name is reserved for the coordinates", ErrInvariant)
	ErrDomainSpanOverflow  = fmt.Errorf("%w: domain span does not fit in uint64", ErrOverflow)
	ErrTileCountOverflow   = fmt.Errorf("%w: tile count product does not fit in uint64", ErrOverflow)
	ErrCellCountOverflow   = fmt.Errorf("%w: cells-per-tile product does not fit in uint64", ErrOverflow)
)

// Deserialization failures.
var (
	ErrBufferUnderrun    = fmt.Errorf("%w: buffer too short", ErrDeserialize)
	ErrTrailingBytes     = fmt.Errorf("%w: trailing bytes after metadata", ErrDeserialize)
	ErrBadEnumByte       = fmt.Errorf("%w: unknown enumeration byte", ErrDeserialize)
	ErrInconsistentModel = fmt.Errorf("%w: decoded metadata fails its own checks", ErrDeserialize)
)

// Not-applicable geometry operations.
var (
	ErrNoRegularTiles = fmt.Errorf("%w: operation requires regular tile extents", ErrNotApplicable)
	ErrNotDense       = fmt.Errorf("%w: operation requires a dense array", ErrNotApplicable)
)
