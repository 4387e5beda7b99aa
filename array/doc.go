// Package array implements the array-metadata geometry engine: the
// definition of an array's coordinate domain, tile partitioning,
// linearization orders and attribute layout, plus the arithmetic that maps
// between global coordinates, tile coordinates, in-tile cell positions and
// tile positions.
//
// # Building metadata
//
// Metadata is assembled with a MetadataBuilder and sealed by Build:
//
//	rows, _ := array.NewDimension("rows", format.Int32, []int32{1, 4}, []int32{2})
//	cols, _ := array.NewDimension("cols", format.Int32, []int32{1, 4}, []int32{2})
//	space, _ := array.NewHyperspace(rows, cols)
//
//	builder := array.NewMetadataBuilder("file:///arrays/a1")
//	_ = builder.SetArrayType(format.Dense)
//	_ = builder.SetHyperspace(space)
//	attr, _ := array.NewAttribute("a1", format.Int32)
//	_ = builder.AddAttribute(attr)
//
//	meta, err := builder.Build()
//
// Build validates every invariant and precomputes the derived geometry
// tables (cell sizes, cells per tile, tile domain, tile offsets). The
// sealed Metadata is immutable: every geometry method is a pure function
// of its arguments and the sealed state, so a single instance may be
// shared freely across goroutines without synchronization.
//
// # Coordinate buffers
//
// Coordinate and range buffers travel as `any` values holding a slice of
// the coordinates type: []int32 for format.Int32 coordinates and so on.
// Single coordinates have dimension-count elements; subarrays and domains
// have two elements (low, high) per dimension. A buffer of the wrong type
// or length is rejected with errs.ErrCoordsTypeMismatch or
// errs.ErrCoordsLength. Dispatch to the typed arithmetic happens once at
// seal time; no per-call reflection is involved.
//
// # Persistence
//
// Serialize produces the bit-exact little-endian metadata image and
// Deserialize reverses it, recomputing all derived tables. See the
// metafile package for the on-disk placement contract.
package array
