package array

import "github.com/tilecube/tilecube/format"

// CoordsName is the reserved name of the coordinates pseudo-attribute.
// User attributes and dimensions must not use it.
const CoordsName = "__coords"

// DefaultCapacity is the default cell capacity of a sparse irregular tile.
const DefaultCapacity uint64 = 10000

// Coordinates compression policy. The coordinates column of sparse
// fragments follows the array global order, so consecutive cells differ by
// small regular strides and delta-of-delta packs them tightly. The policy
// is fixed, not persisted, and recomputed on deserialize.
const (
	CoordsCompression      = format.DoubleDelta
	CoordsCompressionLevel = format.DefaultCompressionLevel
)

// Subarray overlap classes returned by Metadata.SubarrayOverlap.
const (
	// OverlapNone: the subarrays are disjoint.
	OverlapNone = 0
	// OverlapFull: the first subarray fully covers the second.
	OverlapFull = 1
	// OverlapPartial: any other partial overlap. This includes regions
	// that are contiguous without spanning the first subarray's full range
	// on the faster-varying dimensions, such as part of a single row.
	OverlapPartial = 2
	// OverlapPartialContig: partial overlap equal to the first subarray's
	// full range on every dimension except the slowest-varying one under
	// the cell order, so the region is contiguous in its linear cell order.
	OverlapPartialContig = 3
)

// maxStackDims bounds the dimension count for which per-call scratch lives
// on the stack. Higher-dimensional arrays fall back to a per-call heap
// slice; the sealed metadata is never written to after Build.
const maxStackDims = 8
