package array

import (
	"fmt"

	"github.com/tilecube/tilecube/errs"
	"github.com/tilecube/tilecube/format"
)

// Hyperspace is the ordered collection of dimensions spanning the array's
// coordinate space. All dimensions share one coordinate datatype and carry
// either no tile extent (sparse irregular tiling) or one extent each.
type Hyperspace struct {
	dims []*Dimension
}

// NewHyperspace creates a hyperspace over the given dimensions, cloning
// each one.
func NewHyperspace(dims ...*Dimension) (*Hyperspace, error) {
	h := &Hyperspace{}
	for _, d := range dims {
		if err := h.AddDimension(d); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// AddDimension appends a dimension, cloning the input.
func (h *Hyperspace) AddDimension(d *Dimension) error {
	if d == nil {
		return errs.ErrNilDimension
	}
	h.dims = append(h.dims, d.clone())

	return nil
}

// DimNum returns the number of dimensions.
func (h *Hyperspace) DimNum() int {
	return len(h.dims)
}

// Dimension returns the i-th dimension, or an error when i is out of range.
func (h *Hyperspace) Dimension(i int) (*Dimension, error) {
	if i < 0 || i >= len(h.dims) {
		return nil, fmt.Errorf("%w: %d of %d", errs.ErrDimensionIDRange, i, len(h.dims))
	}

	return h.dims[i], nil
}

// CoordsType returns the shared coordinate datatype. Meaningful only after
// Check has passed; with no dimensions it reports format.Int32.
func (h *Hyperspace) CoordsType() format.Datatype {
	if len(h.dims) == 0 {
		return format.Int32
	}

	return h.dims[0].dtype
}

// Check validates the hyperspace: at least one dimension, a single shared
// coordinate type, unique dimension names, all-or-none tile extents, and
// every dimension's own value constraints.
func (h *Hyperspace) Check() error {
	if len(h.dims) == 0 {
		return errs.ErrNoDimensions
	}

	dtype := h.dims[0].dtype
	extents := h.dims[0].HasTileExtent()
	names := make(map[string]struct{}, len(h.dims))
	for _, d := range h.dims {
		if d.dtype != dtype {
			return fmt.Errorf("%w: %q is %s, %q is %s",
				errs.ErrCoordTypeMixed, h.dims[0].name, dtype, d.name, d.dtype)
		}
		if d.HasTileExtent() != extents {
			return fmt.Errorf("%w: dimension %q", errs.ErrExtentMissing, d.name)
		}
		if _, ok := names[d.name]; ok {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateDimension, d.name)
		}
		names[d.name] = struct{}{}

		if err := d.Check(); err != nil {
			return err
		}
	}

	return nil
}

// HasTileExtents reports whether the dimensions carry regular tile extents.
func (h *Hyperspace) HasTileExtents() bool {
	return len(h.dims) > 0 && h.dims[0].HasTileExtent()
}

// Domain returns the concatenated [low, high] pairs of all dimensions as a
// []T of length 2*DimNum. The buffer is freshly allocated.
func (h *Hyperspace) Domain() any {
	return geometryFor(h.CoordsType()).buildDomain(h.dims)
}

// TileExtents returns the tile extents of all dimensions as a []T of
// length DimNum, or nil when the hyperspace has no extents. The buffer is
// freshly allocated.
func (h *Hyperspace) TileExtents() any {
	if !h.HasTileExtents() {
		return nil
	}

	return geometryFor(h.CoordsType()).buildExtents(h.dims)
}

// Equal reports whether two hyperspaces are structurally identical.
func (h *Hyperspace) Equal(other *Hyperspace) bool {
	if other == nil || len(h.dims) != len(other.dims) {
		return false
	}
	for i, d := range h.dims {
		if !d.Equal(other.dims[i]) {
			return false
		}
	}

	return true
}

// clone returns a deep copy.
func (h *Hyperspace) clone() *Hyperspace {
	out := &Hyperspace{dims: make([]*Dimension, len(h.dims))}
	for i, d := range h.dims {
		out.dims[i] = d.clone()
	}

	return out
}
