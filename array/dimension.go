package array

import (
	"fmt"

	"github.com/tilecube/tilecube/errs"
	"github.com/tilecube/tilecube/format"
)

// Dimension describes one axis of the coordinate space: a name, a
// coordinate datatype, an inclusive [low, high] domain and an optional
// regular tile extent.
//
// The domain travels as a slice of the coordinate type with two elements
// and the extent as a slice with one element (or nil for no extent).
// A Dimension is immutable after construction.
type Dimension struct {
	name   string
	dtype  format.Datatype
	domain any // []T, length 2
	extent any // []T, length 1, nil when absent
}

// NewDimension creates a dimension.
//
// Parameters:
//   - name: dimension name; non-empty and not the reserved coordinates name
//   - dtype: coordinate datatype (integer widths or floats)
//   - domain: []T of length 2 holding the inclusive [low, high] bounds
//   - extent: []T of length 1 holding the tile extent, or nil for none
//
// Structural preconditions are checked here; value-level constraints
// (ordering, finiteness, divisibility) are verified by Check and by
// MetadataBuilder.Build.
func NewDimension(name string, dtype format.Datatype, domain, extent any) (*Dimension, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: dimension name", errs.ErrEmptyName)
	}
	if name == CoordsName {
		return nil, fmt.Errorf("%w: %q", errs.ErrReservedName, name)
	}
	if !dtype.Valid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownDatatype, dtype)
	}
	if !dtype.IsValidCoordType() {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCoordType, dtype)
	}

	g := geometryFor(dtype)
	if err := g.checkSlice(domain, 2); err != nil {
		return nil, fmt.Errorf("dimension %q domain: %w", name, err)
	}
	if extent != nil {
		if err := g.checkSlice(extent, 1); err != nil {
			return nil, fmt.Errorf("dimension %q tile extent: %w", name, err)
		}
	}

	d := &Dimension{
		name:   name,
		dtype:  dtype,
		domain: g.cloneValues(domain),
	}
	if extent != nil {
		d.extent = g.cloneValues(extent)
	}

	return d, nil
}

// Name returns the dimension name.
func (d *Dimension) Name() string {
	return d.name
}

// Datatype returns the coordinate datatype.
func (d *Dimension) Datatype() format.Datatype {
	return d.dtype
}

// Domain returns the [low, high] bounds as a []T of length 2.
// The slice is borrowed; callers must not modify it.
func (d *Dimension) Domain() any {
	return d.domain
}

// TileExtent returns the tile extent as a []T of length 1, or nil when the
// dimension has no extent. The slice is borrowed; callers must not modify it.
func (d *Dimension) TileExtent() any {
	return d.extent
}

// HasTileExtent reports whether the dimension carries a tile extent.
func (d *Dimension) HasTileExtent() bool {
	return d.extent != nil
}

// Check validates the dimension's value-level constraints: the domain is
// ordered and finite, the span fits in uint64, and the extent (if any) is
// positive and no larger than the span.
func (d *Dimension) Check() error {
	g := geometryFor(d.dtype)
	if err := g.checkDomainValues(d.domain); err != nil {
		return fmt.Errorf("dimension %q: %w", d.name, err)
	}
	if d.extent != nil {
		if err := g.checkExtentValues(d.extent, d.domain); err != nil {
			return fmt.Errorf("dimension %q: %w", d.name, err)
		}
	}

	return nil
}

// Equal reports whether two dimensions are structurally identical.
func (d *Dimension) Equal(other *Dimension) bool {
	if other == nil || d.name != other.name || d.dtype != other.dtype {
		return false
	}

	g := geometryFor(d.dtype)
	if !g.equalValues(d.domain, other.domain) {
		return false
	}
	if (d.extent == nil) != (other.extent == nil) {
		return false
	}
	if d.extent != nil && !g.equalValues(d.extent, other.extent) {
		return false
	}

	return true
}

// clone returns a deep copy.
func (d *Dimension) clone() *Dimension {
	g := geometryFor(d.dtype)
	out := &Dimension{
		name:   d.name,
		dtype:  d.dtype,
		domain: g.cloneValues(d.domain),
	}
	if d.extent != nil {
		out.extent = g.cloneValues(d.extent)
	}

	return out
}
