package array

import (
	"fmt"

	"github.com/tilecube/tilecube/errs"
	"github.com/tilecube/tilecube/format"
)

// MetadataBuilder assembles array metadata. It is a plain mutable value;
// Build validates every invariant and returns the sealed, immutable
// Metadata. A builder may be reused after a failed Build once the
// offending definition is fixed, and building never mutates the inputs.
//
// Builder methods are not safe for concurrent use.
type MetadataBuilder struct {
	uri       string
	arrayType format.ArrayType
	tileOrder format.Layout
	cellOrder format.Layout
	capacity  uint64
	space     *Hyperspace
	attrs     []*Attribute
}

// NewMetadataBuilder creates a builder with the defaults: dense array,
// row-major tile and cell order, default sparse-tile capacity.
func NewMetadataBuilder(uri string) *MetadataBuilder {
	return &MetadataBuilder{
		uri:       uri,
		arrayType: format.Dense,
		tileOrder: format.RowMajor,
		cellOrder: format.RowMajor,
		capacity:  DefaultCapacity,
	}
}

// SetArrayType sets the array type.
func (b *MetadataBuilder) SetArrayType(arrayType format.ArrayType) error {
	if !arrayType.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrUnknownArrayType, arrayType)
	}
	b.arrayType = arrayType

	return nil
}

// SetTileOrder sets the tile order. Only RowMajor and ColMajor are
// accepted; the global and unordered layouts belong to the query layer.
func (b *MetadataBuilder) SetTileOrder(order format.Layout) error {
	if order != format.RowMajor && order != format.ColMajor {
		return fmt.Errorf("%w: tile order %s", errs.ErrUnsupportedLayout, order)
	}
	b.tileOrder = order

	return nil
}

// SetCellOrder sets the cell order. Only RowMajor and ColMajor are
// accepted.
func (b *MetadataBuilder) SetCellOrder(order format.Layout) error {
	if order != format.RowMajor && order != format.ColMajor {
		return fmt.Errorf("%w: cell order %s", errs.ErrUnsupportedLayout, order)
	}
	b.cellOrder = order

	return nil
}

// SetCapacity sets the cell capacity of sparse irregular tiles.
func (b *MetadataBuilder) SetCapacity(capacity uint64) {
	b.capacity = capacity
}

// SetHyperspace sets the hyperspace, cloning the input.
func (b *MetadataBuilder) SetHyperspace(space *Hyperspace) error {
	if space == nil {
		return errs.ErrNilHyperspace
	}
	b.space = space.clone()

	return nil
}

// AddAttribute appends an attribute, cloning the input.
func (b *MetadataBuilder) AddAttribute(attr *Attribute) error {
	if attr == nil {
		return errs.ErrNilAttribute
	}
	b.attrs = append(b.attrs, attr.clone())

	return nil
}

// Build validates the assembled definition and seals it into an immutable
// Metadata, precomputing the derived geometry tables. On failure the
// builder is left untouched for adjustment and retry.
func (b *MetadataBuilder) Build() (*Metadata, error) {
	m := &Metadata{
		uri:       b.uri,
		arrayType: b.arrayType,
		tileOrder: b.tileOrder,
		cellOrder: b.cellOrder,
		capacity:  b.capacity,
	}
	if b.space != nil {
		m.space = b.space.clone()
	}
	m.attrs = make([]*Attribute, len(b.attrs))
	for i, a := range b.attrs {
		m.attrs[i] = a.clone()
	}

	if err := m.check(); err != nil {
		return nil, err
	}
	if err := m.computeDerived(); err != nil {
		return nil, err
	}

	return m, nil
}

// Metadata is the sealed array metadata: the array's policy fields, its
// hyperspace and attributes, and the derived geometry tables. It is
// immutable; every method is safe for concurrent use.
type Metadata struct {
	uri       string
	arrayType format.ArrayType
	tileOrder format.Layout
	cellOrder format.Layout
	capacity  uint64
	space     *Hyperspace
	attrs     []*Attribute

	// Derived at seal time.
	coordsType     format.Datatype
	dimNum         int
	domain         any      // []T, 2*dimNum
	tileExtents    any      // []T, dimNum; nil without regular tiles
	tileDomain     any      // []T, 2*dimNum tile indices; nil without regular tiles
	tileSpans      []uint64 // per-dimension tile counts
	tileOffsetsRow []uint64
	tileOffsetsCol []uint64
	cellSizes      []uint64 // per attribute, coordinates at the back
	coordsSize     uint64
	cellNumPerTile uint64 // dense only
	totalTileNum   uint64 // regular tiles only
	geom           geometry
}

// check validates all metadata invariants, reporting the first violation
// with no partial effects.
func (m *Metadata) check() error {
	if m.space == nil {
		return errs.ErrNoHyperspace
	}
	if err := m.space.Check(); err != nil {
		return err
	}

	coordsType := m.space.CoordsType()
	if coordsType.IsFloat() && m.arrayType == format.Dense {
		return errs.ErrDenseFloatCoords
	}

	switch m.arrayType {
	case format.Dense:
		if !m.space.HasTileExtents() {
			return errs.ErrExtentMissing
		}
		g := geometryFor(coordsType)
		for _, d := range m.space.dims {
			if !g.extentDivides(d.extent, d.domain) {
				return fmt.Errorf("%w: dimension %q", errs.ErrExtentNotDividing, d.name)
			}
		}
	case format.Sparse:
		if !m.space.HasTileExtents() && m.capacity == 0 {
			return errs.ErrZeroCapacity
		}
	default:
		return fmt.Errorf("%w: %d", errs.ErrUnknownArrayType, m.arrayType)
	}

	if m.tileOrder != format.RowMajor && m.tileOrder != format.ColMajor {
		return fmt.Errorf("%w: tile order %s", errs.ErrUnsupportedLayout, m.tileOrder)
	}
	if m.cellOrder != format.RowMajor && m.cellOrder != format.ColMajor {
		return fmt.Errorf("%w: cell order %s", errs.ErrUnsupportedLayout, m.cellOrder)
	}

	names := make(map[string]struct{}, len(m.attrs))
	for _, a := range m.attrs {
		if _, ok := names[a.name]; ok {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateAttribute, a.name)
		}
		names[a.name] = struct{}{}
	}

	return nil
}

// computeDerived fills the derived geometry tables. Called only after
// check has passed.
func (m *Metadata) computeDerived() error {
	m.coordsType = m.space.CoordsType()
	m.dimNum = m.space.DimNum()
	m.geom = geometryFor(m.coordsType)
	m.domain = m.space.Domain()
	m.tileExtents = m.space.TileExtents()

	m.cellSizes = make([]uint64, len(m.attrs)+1)
	for i, a := range m.attrs {
		m.cellSizes[i] = a.CellSize()
	}
	m.coordsSize = m.coordsType.Size() * uint64(m.dimNum)
	m.cellSizes[len(m.attrs)] = m.coordsSize

	if m.tileExtents != nil {
		tileDomain, spans, err := m.geom.tileDomainOf(m.domain, m.tileExtents)
		if err != nil {
			return err
		}
		m.tileDomain = tileDomain
		m.tileSpans = spans
		m.computeTileOffsets()

		m.totalTileNum = 1
		for _, span := range spans {
			m.totalTileNum *= span
		}
	}

	if m.arrayType == format.Dense {
		cellNum, err := m.geom.cellNumPerTileOf(m.tileExtents)
		if err != nil {
			return err
		}
		m.cellNumPerTile = cellNum
	}

	return nil
}

// computeTileOffsets derives the row- and column-major stride tables over
// the tile domain.
func (m *Metadata) computeTileOffsets() {
	n := m.dimNum
	m.tileOffsetsRow = make([]uint64, n)
	m.tileOffsetsCol = make([]uint64, n)

	m.tileOffsetsRow[n-1] = 1
	for i := n - 2; i >= 0; i-- {
		m.tileOffsetsRow[i] = m.tileOffsetsRow[i+1] * m.tileSpans[i+1]
	}

	m.tileOffsetsCol[0] = 1
	for i := 1; i < n; i++ {
		m.tileOffsetsCol[i] = m.tileOffsetsCol[i-1] * m.tileSpans[i-1]
	}
}

// URI returns the array URI.
func (m *Metadata) URI() string {
	return m.uri
}

// ArrayType returns the array type.
func (m *Metadata) ArrayType() format.ArrayType {
	return m.arrayType
}

// Dense reports whether the array is dense.
func (m *Metadata) Dense() bool {
	return m.arrayType == format.Dense
}

// TileOrder returns the tile order.
func (m *Metadata) TileOrder() format.Layout {
	return m.tileOrder
}

// CellOrder returns the cell order.
func (m *Metadata) CellOrder() format.Layout {
	return m.cellOrder
}

// Capacity returns the sparse irregular tile capacity.
func (m *Metadata) Capacity() uint64 {
	return m.capacity
}

// Hyperspace returns the array hyperspace. Borrowed; callers must not
// modify it.
func (m *Metadata) Hyperspace() *Hyperspace {
	return m.space
}

// DimNum returns the number of dimensions.
func (m *Metadata) DimNum() int {
	return m.dimNum
}

// Dimension returns the i-th dimension.
func (m *Metadata) Dimension(i int) (*Dimension, error) {
	return m.space.Dimension(i)
}

// CoordsType returns the coordinates datatype.
func (m *Metadata) CoordsType() format.Datatype {
	return m.coordsType
}

// CoordsSize returns the byte size of one coordinates tuple.
func (m *Metadata) CoordsSize() uint64 {
	return m.coordsSize
}

// CoordsCompressor returns the compressor of the coordinates column.
func (m *Metadata) CoordsCompressor() format.Compressor {
	return CoordsCompression
}

// CoordsCompressionLevel returns the compression level of the coordinates
// column.
func (m *Metadata) CoordsCompressionLevel() int {
	return CoordsCompressionLevel
}

// Domain returns the concatenated [low, high] domain pairs as a []T of
// length 2*DimNum. Borrowed; callers must not modify it.
func (m *Metadata) Domain() any {
	return m.domain
}

// TileExtents returns the tile extents as a []T of length DimNum, or nil
// without regular tiles. Borrowed; callers must not modify it.
func (m *Metadata) TileExtents() any {
	return m.tileExtents
}

// TileDomain returns the tile index space as a []T of length 2*DimNum
// ([0, tiles-1] per dimension), or nil without regular tiles. Borrowed;
// callers must not modify it.
func (m *Metadata) TileDomain() any {
	return m.tileDomain
}

// AttributeNum returns the number of attributes.
func (m *Metadata) AttributeNum() int {
	return len(m.attrs)
}

// Attribute returns the attribute with the given id. The coordinates
// pseudo-attribute is not addressable here.
func (m *Metadata) Attribute(id int) (*Attribute, error) {
	if id < 0 || id >= len(m.attrs) {
		return nil, fmt.Errorf("%w: %d of %d", errs.ErrAttributeIDRange, id, len(m.attrs))
	}

	return m.attrs[id], nil
}

// AttributeName returns the name of the attribute with the given id; the
// id AttributeNum() names the coordinates.
func (m *Metadata) AttributeName(id int) (string, error) {
	if id == len(m.attrs) {
		return CoordsName, nil
	}
	attr, err := m.Attribute(id)
	if err != nil {
		return "", err
	}

	return attr.name, nil
}

// AttributeID resolves an attribute name to its id. The reserved
// coordinates name resolves to AttributeNum().
func (m *Metadata) AttributeID(name string) (int, error) {
	if name == CoordsName {
		return len(m.attrs), nil
	}
	for i, a := range m.attrs {
		if a.name == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrAttributeNotFound, name)
}

// AttributeIDs resolves a list of attribute names to ids.
func (m *Metadata) AttributeIDs(names []string) ([]int, error) {
	ids := make([]int, len(names))
	for i, name := range names {
		id, err := m.AttributeID(name)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	return ids, nil
}

// AttributeNames returns the attribute names with the coordinates name at
// the back.
func (m *Metadata) AttributeNames() []string {
	names := make([]string, 0, len(m.attrs)+1)
	for _, a := range m.attrs {
		names = append(names, a.name)
	}

	return append(names, CoordsName)
}

// CellSize returns the cell size of the attribute with the given id; the
// id AttributeNum() addresses the coordinates.
func (m *Metadata) CellSize(id int) (uint64, error) {
	if id < 0 || id >= len(m.cellSizes) {
		return 0, fmt.Errorf("%w: %d of %d", errs.ErrAttributeIDRange, id, len(m.attrs))
	}

	return m.cellSizes[id], nil
}

// CellValNum returns the cell value count of the attribute with the given
// id; the coordinates id reports DimNum.
func (m *Metadata) CellValNum(id int) (uint32, error) {
	if id == len(m.attrs) {
		return uint32(m.dimNum), nil
	}
	attr, err := m.Attribute(id)
	if err != nil {
		return 0, err
	}

	return attr.cellValNum, nil
}

// VarSize reports whether the attribute with the given id stores
// variable-sized cells; the coordinates id reports false.
func (m *Metadata) VarSize(id int) (bool, error) {
	if id == len(m.attrs) {
		return false, nil
	}
	attr, err := m.Attribute(id)
	if err != nil {
		return false, err
	}

	return attr.VarSize(), nil
}

// Type returns the datatype of the attribute with the given id; the
// coordinates id reports the coordinates type.
func (m *Metadata) Type(id int) (format.Datatype, error) {
	if id == len(m.attrs) {
		return m.coordsType, nil
	}
	attr, err := m.Attribute(id)
	if err != nil {
		return 0, err
	}

	return attr.dtype, nil
}

// TypeSize returns the datatype byte width of the attribute with the given
// id.
func (m *Metadata) TypeSize(id int) (uint64, error) {
	dtype, err := m.Type(id)
	if err != nil {
		return 0, err
	}

	return dtype.Size(), nil
}

// Compression returns the compressor of the attribute with the given id;
// the coordinates id reports the coordinates compression policy.
func (m *Metadata) Compression(id int) (format.Compressor, error) {
	if id == len(m.attrs) {
		return CoordsCompression, nil
	}
	attr, err := m.Attribute(id)
	if err != nil {
		return 0, err
	}

	return attr.compressor, nil
}

// CompressionLevel returns the compression level of the attribute with the
// given id.
func (m *Metadata) CompressionLevel(id int) (int, error) {
	if id == len(m.attrs) {
		return CoordsCompressionLevel, nil
	}
	attr, err := m.Attribute(id)
	if err != nil {
		return 0, err
	}

	return attr.level, nil
}

// CellNumPerTile returns the number of cells in one tile. Meaningful only
// for dense arrays; zero otherwise.
func (m *Metadata) CellNumPerTile() uint64 {
	return m.cellNumPerTile
}

// TileNum returns the number of tiles in the array domain. Requires
// regular tiles.
func (m *Metadata) TileNum() (uint64, error) {
	if m.tileExtents == nil {
		return 0, errs.ErrNoRegularTiles
	}

	return m.totalTileNum, nil
}

// TileNumInDomain returns the number of tiles in the given domain, a []T
// of length 2*DimNum partitioned like the array domain.
func (m *Metadata) TileNumInDomain(domain any) (uint64, error) {
	return m.geom.tileNumInDomain(m, domain)
}

// TileNumInRange returns the number of tiles overlapping the given range.
func (m *Metadata) TileNumInRange(rng any) (uint64, error) {
	return m.geom.tileNumInRange(m, rng)
}

// CellOrderCmp compares two coordinate tuples under the cell order,
// assuming both lie in the same tile. Returns -1, 0 or +1.
func (m *Metadata) CellOrderCmp(a, b any) (int, error) {
	return m.geom.cellOrderCmp(m, a, b)
}

// TileOrderCmp compares the tiles of two coordinate tuples under the tile
// order. Without regular tiles the comparison is 0 by contract.
func (m *Metadata) TileOrderCmp(a, b any) (int, error) {
	return m.geom.tileOrderCmp(m, a, b)
}

// TileCellOrderCmp compares two coordinate tuples by tile order first,
// breaking ties with the cell order. The result is the array global order.
func (m *Metadata) TileCellOrderCmp(a, b any) (int, error) {
	return m.geom.tileCellOrderCmp(m, a, b)
}

// TileID returns the id of the tile the coordinates fall into, i.e. the
// tile's position along the tile order. Requires regular tiles.
func (m *Metadata) TileID(coords any) (uint64, error) {
	return m.geom.tileID(m, coords)
}

// CellPos returns the position of the coordinates inside their tile along
// the cell order. Dense arrays only.
func (m *Metadata) CellPos(coords any) (uint64, error) {
	return m.geom.cellPos(m, coords)
}

// NextCellCoords advances coords in place to its successor in the cell
// order within the given domain. Returns false once the walk exits the
// domain.
func (m *Metadata) NextCellCoords(domain, coords any) (bool, error) {
	return m.geom.nextCellCoords(m, domain, coords)
}

// PrevCellCoords moves coords in place to its predecessor in the cell
// order within the given domain. Returns false once the walk exits the
// domain.
func (m *Metadata) PrevCellCoords(domain, coords any) (bool, error) {
	return m.geom.prevCellCoords(m, domain, coords)
}

// NextTileCoords advances tileCoords in place to the next tile in the tile
// order within the given tile domain.
func (m *Metadata) NextTileCoords(tileDomain, tileCoords any) error {
	return m.geom.nextTileCoords(m, tileDomain, tileCoords)
}

// SubarrayTileDomain writes the array's tile domain to tileDomainOut and
// the subarray clipped into tile indices to subarrayOut. Both outputs are
// []T of length 2*DimNum supplied by the caller. Requires regular tiles.
func (m *Metadata) SubarrayTileDomain(subarray, tileDomainOut, subarrayOut any) error {
	return m.geom.subarrayTileDomain(m, subarray, tileDomainOut, subarrayOut)
}

// TilePos returns the position of the tile coordinates along the tile
// order within the array tile domain. Requires regular tiles.
func (m *Metadata) TilePos(tileCoords any) (uint64, error) {
	return m.geom.tilePos(m, tileCoords)
}

// TilePosIn returns the position of the tile coordinates along the tile
// order within the given tile domain ([low, high] tile-index pairs).
func (m *Metadata) TilePosIn(domain, tileCoords any) (uint64, error) {
	return m.geom.tilePosIn(m, domain, tileCoords)
}

// TileSubarray writes the global-coordinate cell range covered by the tile
// with the given tile coordinates into out ([]T of length 2*DimNum).
func (m *Metadata) TileSubarray(tileCoords, out any) error {
	return m.geom.tileSubarray(m, tileCoords, out)
}

// ExpandDomain snaps the [low, high] pairs of the given domain outward to
// the regular tile grid, in place. Without regular tiles it is a no-op.
func (m *Metadata) ExpandDomain(domain any) error {
	return m.geom.expandDomain(m, domain)
}

// SubarrayOverlap intersects two subarrays into out and classifies the
// overlap: OverlapNone, OverlapFull (a covers b), OverlapPartialContig
// (the overlap is contiguous in a's cell order) or OverlapPartial. The out
// buffer holds a ∩ b whenever the result is not OverlapNone.
func (m *Metadata) SubarrayOverlap(a, b, out any) (int, error) {
	return m.geom.subarrayOverlap(m, a, b, out)
}

// IsContainedInTileSlabRow reports whether the range lies fully in one row
// of tiles (a single tile index on every dimension but the last).
func (m *Metadata) IsContainedInTileSlabRow(rng any) (bool, error) {
	return m.geom.inTileSlabRow(m, rng)
}

// IsContainedInTileSlabCol reports whether the range lies fully in one
// column of tiles (a single tile index on every dimension but the first).
func (m *Metadata) IsContainedInTileSlabCol(rng any) (bool, error) {
	return m.geom.inTileSlabCol(m, rng)
}

// TileSlabRowCellNum returns the number of cells in one row tile slab of
// the subarray.
func (m *Metadata) TileSlabRowCellNum(subarray any) (uint64, error) {
	return m.geom.tileSlabRowCellNum(m, subarray)
}

// TileSlabColCellNum returns the number of cells in one column tile slab
// of the subarray.
func (m *Metadata) TileSlabColCellNum(subarray any) (uint64, error) {
	return m.geom.tileSlabColCellNum(m, subarray)
}

// Equal reports whether two metadata values are structurally identical:
// same policy fields, hyperspace and attributes. Equal sealed inputs imply
// equal derived tables.
func (m *Metadata) Equal(other *Metadata) bool {
	if other == nil ||
		m.uri != other.uri ||
		m.arrayType != other.arrayType ||
		m.tileOrder != other.tileOrder ||
		m.cellOrder != other.cellOrder ||
		m.capacity != other.capacity ||
		len(m.attrs) != len(other.attrs) {
		return false
	}
	if !m.space.Equal(other.space) {
		return false
	}
	for i, a := range m.attrs {
		if !a.Equal(other.attrs[i]) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy sharing no mutable state with the original.
func (m *Metadata) Clone() *Metadata {
	out := &Metadata{
		uri:            m.uri,
		arrayType:      m.arrayType,
		tileOrder:      m.tileOrder,
		cellOrder:      m.cellOrder,
		capacity:       m.capacity,
		space:          m.space.clone(),
		coordsType:     m.coordsType,
		dimNum:         m.dimNum,
		domain:         m.geom.cloneValues(m.domain),
		coordsSize:     m.coordsSize,
		cellNumPerTile: m.cellNumPerTile,
		totalTileNum:   m.totalTileNum,
		geom:           m.geom,
	}
	out.attrs = make([]*Attribute, len(m.attrs))
	for i, a := range m.attrs {
		out.attrs[i] = a.clone()
	}
	if m.tileExtents != nil {
		out.tileExtents = m.geom.cloneValues(m.tileExtents)
		out.tileDomain = m.geom.cloneValues(m.tileDomain)
		out.tileSpans = append([]uint64(nil), m.tileSpans...)
		out.tileOffsetsRow = append([]uint64(nil), m.tileOffsetsRow...)
		out.tileOffsetsCol = append([]uint64(nil), m.tileOffsetsCol...)
	}
	out.cellSizes = append([]uint64(nil), m.cellSizes...)

	return out
}
