package array

import (
	"fmt"
	"math"
	"math/bits"
	"strings"

	"github.com/tilecube/tilecube/endian"
	"github.com/tilecube/tilecube/errs"
	"github.com/tilecube/tilecube/format"
)

// coordValue is the closed set of coordinate types.
type coordValue interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// geometry is the per-coordinate-type arithmetic engine. One monomorphized
// instantiation exists per supported datatype; the matching instance is
// selected once (at dimension construction and at seal time), so the
// public surface stays non-generic and no per-call reflection happens.
//
// Methods taking coordinate buffers receive them as `any` holding []T and
// validate type and length before touching them.
type geometry interface {
	// Construction and validation helpers.
	checkSlice(buf any, want int) error
	checkDomainValues(domain any) error
	checkExtentValues(extent, domain any) error
	extentDivides(extent, domain any) bool
	buildDomain(dims []*Dimension) any
	buildExtents(dims []*Dimension) any
	cloneValues(buf any) any
	equalValues(a, b any) bool
	formatValue(buf any, i int) string

	// Derivation at seal time.
	tileDomainOf(domain, extents any) (any, []uint64, error)
	cellNumPerTileOf(extents any) (uint64, error)

	// Serialization of coordinate values.
	appendValues(engine endian.EndianEngine, buf []byte, values any) []byte
	parseValues(engine endian.EndianEngine, data []byte, n int) (any, int, error)

	// Sealed-state geometry.
	cellOrderCmp(m *Metadata, a, b any) (int, error)
	tileOrderCmp(m *Metadata, a, b any) (int, error)
	tileCellOrderCmp(m *Metadata, a, b any) (int, error)
	tileID(m *Metadata, coords any) (uint64, error)
	cellPos(m *Metadata, coords any) (uint64, error)
	nextCellCoords(m *Metadata, domain, coords any) (bool, error)
	prevCellCoords(m *Metadata, domain, coords any) (bool, error)
	nextTileCoords(m *Metadata, tileDomain, tileCoords any) error
	subarrayTileDomain(m *Metadata, subarray, tileDomainOut, subarrayOut any) error
	tilePos(m *Metadata, tileCoords any) (uint64, error)
	tilePosIn(m *Metadata, domain, tileCoords any) (uint64, error)
	tileSubarray(m *Metadata, tileCoords, out any) error
	expandDomain(m *Metadata, domain any) error
	subarrayOverlap(m *Metadata, a, b, out any) (int, error)
	inTileSlabRow(m *Metadata, rng any) (bool, error)
	inTileSlabCol(m *Metadata, rng any) (bool, error)
	tileSlabRowCellNum(m *Metadata, subarray any) (uint64, error)
	tileSlabColCellNum(m *Metadata, subarray any) (uint64, error)
	tileNumInDomain(m *Metadata, domain any) (uint64, error)
	tileNumInRange(m *Metadata, rng any) (uint64, error)
}

// geometryFor returns the arithmetic engine for a coordinate datatype.
// The datatype must satisfy IsValidCoordType.
func geometryFor(dtype format.Datatype) geometry {
	switch dtype {
	case format.Int8:
		return geom[int8]{}
	case format.Uint8:
		return geom[uint8]{}
	case format.Int16:
		return geom[int16]{}
	case format.Uint16:
		return geom[uint16]{}
	case format.Int32:
		return geom[int32]{}
	case format.Uint32:
		return geom[uint32]{}
	case format.Int64:
		return geom[int64]{}
	case format.Uint64:
		return geom[uint64]{}
	case format.Float32:
		return geom[float32]{}
	case format.Float64:
		return geom[float64]{}
	default:
		panic(fmt.Sprintf("array: no geometry for datatype %s", dtype))
	}
}

type geom[T coordValue] struct{}

// isFloat reports whether T is a floating-point type. The check resolves
// at instantiation; the compiler drops the dead branch.
func isFloat[T coordValue]() bool {
	switch any(T(0)).(type) {
	case float32, float64:
		return true
	default:
		return false
	}
}

// widen converts v to uint64, sign-extending signed integers. The result
// is the value mod 2^64, so differences of in-domain integer coordinates
// computed with widen are exact for every supported width. Must not be
// called for float types.
func widen[T coordValue](v T) uint64 {
	switch x := any(v).(type) {
	case int8:
		return uint64(int64(x))
	case int16:
		return uint64(int64(x))
	case int32:
		return uint64(int64(x))
	case int64:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	default:
		panic("array: widen on float coordinate")
	}
}

// diff returns hi - lo as uint64, exact whenever hi >= lo in T.
// Integer types only.
func diff[T coordValue](hi, lo T) uint64 {
	return widen(hi) - widen(lo)
}

// diffU is diff for any coordinate type; float differences truncate.
func diffU[T coordValue](hi, lo T) uint64 {
	if isFloat[T]() {
		return uint64(float64(hi) - float64(lo))
	}

	return diff(hi, lo)
}

// valueU converts a non-negative coordinate value to uint64; float values
// truncate.
func valueU[T coordValue](v T) uint64 {
	if isFloat[T]() {
		return uint64(float64(v))
	}

	return widen(v)
}

// tileIndex returns the tile index of coordinate c on a dimension with
// domain low bound lo and tile extent ext.
func tileIndex[T coordValue](c, lo, ext T) uint64 {
	if isFloat[T]() {
		return uint64((float64(c) - float64(lo)) / float64(ext))
	}

	return diff(c, lo) / widen(ext)
}

func (geom[T]) checkSlice(buf any, want int) error {
	s, ok := buf.([]T)
	if !ok {
		return fmt.Errorf("%w: want []%T, got %T", errs.ErrCoordsTypeMismatch, *new(T), buf)
	}
	if len(s) != want {
		return fmt.Errorf("%w: want %d values, got %d", errs.ErrCoordsLength, want, len(s))
	}

	return nil
}

// slice asserts a coordinate buffer with the expected element count.
func (g geom[T]) slice(buf any, want int) ([]T, error) {
	if err := g.checkSlice(buf, want); err != nil {
		return nil, err
	}

	return buf.([]T), nil
}

func (geom[T]) checkDomainValues(domain any) error {
	d := domain.([]T)
	lo, hi := d[0], d[1]

	if isFloat[T]() {
		flo, fhi := float64(lo), float64(hi)
		if math.IsNaN(flo) || math.IsNaN(fhi) || math.IsInf(flo, 0) || math.IsInf(fhi, 0) {
			return errs.ErrDomainNotFinite
		}
		if flo > fhi {
			return errs.ErrDomainOutOfOrder
		}

		return nil
	}

	if lo > hi {
		return errs.ErrDomainOutOfOrder
	}
	// Span hi-lo+1 must fit in uint64.
	if diff(hi, lo) == math.MaxUint64 {
		return errs.ErrDomainSpanOverflow
	}

	return nil
}

func (geom[T]) checkExtentValues(extent, domain any) error {
	ext := extent.([]T)[0]
	d := domain.([]T)

	if isFloat[T]() {
		fext := float64(ext)
		if math.IsNaN(fext) || math.IsInf(fext, 0) {
			return errs.ErrDomainNotFinite
		}
		if fext <= 0 {
			return errs.ErrExtentNotPositive
		}
		if fext > float64(d[1])-float64(d[0]) {
			return errs.ErrExtentTooLarge
		}

		return nil
	}

	if ext <= 0 {
		return errs.ErrExtentNotPositive
	}
	if widen(ext) > diff(d[1], d[0])+1 {
		return errs.ErrExtentTooLarge
	}

	return nil
}

func (geom[T]) extentDivides(extent, domain any) bool {
	if isFloat[T]() {
		// Float extents are not required to divide the span.
		return true
	}

	ext := extent.([]T)[0]
	d := domain.([]T)
	span := diff(d[1], d[0]) + 1

	return span%widen(ext) == 0
}

func (geom[T]) buildDomain(dims []*Dimension) any {
	out := make([]T, 0, 2*len(dims))
	for _, d := range dims {
		out = append(out, d.domain.([]T)...)
	}

	return out
}

func (geom[T]) buildExtents(dims []*Dimension) any {
	out := make([]T, 0, len(dims))
	for _, d := range dims {
		out = append(out, d.extent.([]T)[0])
	}

	return out
}

func (geom[T]) cloneValues(buf any) any {
	s := buf.([]T)
	out := make([]T, len(s))
	copy(out, s)

	return out
}

func (geom[T]) equalValues(a, b any) bool {
	as, aok := a.([]T)
	bs, bok := b.([]T)
	if !aok || !bok || len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}

	return true
}

func (geom[T]) formatValue(buf any, i int) string {
	return fmt.Sprintf("%v", buf.([]T)[i])
}

// tileDomainOf computes the tile index space [0, span-1] per dimension and
// the per-dimension tile counts. The total tile count is overflow-checked.
func (geom[T]) tileDomainOf(domain, extents any) (any, []uint64, error) {
	d := domain.([]T)
	ext := extents.([]T)
	dimNum := len(ext)

	out := make([]T, 2*dimNum)
	spans := make([]uint64, dimNum)
	total := uint64(1)
	for i := 0; i < dimNum; i++ {
		span := tileIndex(d[2*i+1], d[2*i], ext[i]) + 1
		spans[i] = span
		out[2*i] = 0
		out[2*i+1] = T(span - 1)

		hi, lo := bits.Mul64(total, span)
		if hi != 0 {
			return nil, nil, errs.ErrTileCountOverflow
		}
		total = lo
	}

	return out, spans, nil
}

// cellNumPerTileOf computes the product of the tile extents,
// overflow-checked. Integer coordinates only.
func (geom[T]) cellNumPerTileOf(extents any) (uint64, error) {
	ext := extents.([]T)

	total := uint64(1)
	for _, e := range ext {
		hi, lo := bits.Mul64(total, widen(e))
		if hi != 0 {
			return 0, errs.ErrCellCountOverflow
		}
		total = lo
	}

	return total, nil
}

func (geom[T]) appendValues(engine endian.EndianEngine, buf []byte, values any) []byte {
	for _, v := range values.([]T) {
		switch x := any(v).(type) {
		case int8:
			buf = append(buf, byte(x))
		case uint8:
			buf = append(buf, x)
		case int16:
			buf = engine.AppendUint16(buf, uint16(x))
		case uint16:
			buf = engine.AppendUint16(buf, x)
		case int32:
			buf = engine.AppendUint32(buf, uint32(x))
		case uint32:
			buf = engine.AppendUint32(buf, x)
		case int64:
			buf = engine.AppendUint64(buf, uint64(x))
		case uint64:
			buf = engine.AppendUint64(buf, x)
		case float32:
			buf = engine.AppendUint32(buf, math.Float32bits(x))
		case float64:
			buf = engine.AppendUint64(buf, math.Float64bits(x))
		}
	}

	return buf
}

func (geom[T]) parseValues(engine endian.EndianEngine, data []byte, n int) (any, int, error) {
	var zero T
	size := 1
	switch any(zero).(type) {
	case int16, uint16:
		size = 2
	case int32, uint32, float32:
		size = 4
	case int64, uint64, float64:
		size = 8
	}
	if len(data) < n*size {
		return nil, 0, errs.ErrBufferUnderrun
	}

	out := make([]T, n)
	for i := 0; i < n; i++ {
		chunk := data[i*size:]
		switch any(zero).(type) {
		case int8:
			out[i] = any(int8(chunk[0])).(T)
		case uint8:
			out[i] = any(chunk[0]).(T)
		case int16:
			out[i] = any(int16(engine.Uint16(chunk))).(T)
		case uint16:
			out[i] = any(engine.Uint16(chunk)).(T)
		case int32:
			out[i] = any(int32(engine.Uint32(chunk))).(T)
		case uint32:
			out[i] = any(engine.Uint32(chunk)).(T)
		case int64:
			out[i] = any(int64(engine.Uint64(chunk))).(T)
		case uint64:
			out[i] = any(engine.Uint64(chunk)).(T)
		case float32:
			out[i] = any(math.Float32frombits(engine.Uint32(chunk))).(T)
		case float64:
			out[i] = any(math.Float64frombits(engine.Uint64(chunk))).(T)
		}
	}

	return out, n * size, nil
}

// tileScratch returns a tile-index scratch slice, stack-allocated for the
// common dimension counts.
func tileScratch(dimNum int) []uint64 {
	if dimNum <= maxStackDims {
		var buf [maxStackDims]uint64

		return buf[:dimNum]
	}

	return make([]uint64, dimNum)
}

func (g geom[T]) cellOrderCmp(m *Metadata, a, b any) (int, error) {
	as, err := g.slice(a, m.dimNum)
	if err != nil {
		return 0, err
	}
	bs, err := g.slice(b, m.dimNum)
	if err != nil {
		return 0, err
	}

	if m.cellOrder == format.RowMajor {
		for i := 0; i < m.dimNum; i++ {
			if as[i] < bs[i] {
				return -1, nil
			}
			if as[i] > bs[i] {
				return 1, nil
			}
		}
	} else {
		for i := m.dimNum - 1; i >= 0; i-- {
			if as[i] < bs[i] {
				return -1, nil
			}
			if as[i] > bs[i] {
				return 1, nil
			}
		}
	}

	return 0, nil
}

func (g geom[T]) tileOrderCmp(m *Metadata, a, b any) (int, error) {
	as, err := g.slice(a, m.dimNum)
	if err != nil {
		return 0, err
	}
	bs, err := g.slice(b, m.dimNum)
	if err != nil {
		return 0, err
	}

	// Without regular tiles every coordinate lives in the same
	// (irregular) tile by contract.
	if m.tileExtents == nil {
		return 0, nil
	}

	domain := m.domain.([]T)
	ext := m.tileExtents.([]T)

	ta := tileScratch(m.dimNum)
	tb := tileScratch(m.dimNum)
	for i := 0; i < m.dimNum; i++ {
		ta[i] = tileIndex(as[i], domain[2*i], ext[i])
		tb[i] = tileIndex(bs[i], domain[2*i], ext[i])
	}

	if m.tileOrder == format.RowMajor {
		for i := 0; i < m.dimNum; i++ {
			if ta[i] < tb[i] {
				return -1, nil
			}
			if ta[i] > tb[i] {
				return 1, nil
			}
		}
	} else {
		for i := m.dimNum - 1; i >= 0; i-- {
			if ta[i] < tb[i] {
				return -1, nil
			}
			if ta[i] > tb[i] {
				return 1, nil
			}
		}
	}

	return 0, nil
}

func (g geom[T]) tileCellOrderCmp(m *Metadata, a, b any) (int, error) {
	cmp, err := g.tileOrderCmp(m, a, b)
	if err != nil || cmp != 0 {
		return cmp, err
	}

	return g.cellOrderCmp(m, a, b)
}

func (g geom[T]) tileID(m *Metadata, coords any) (uint64, error) {
	cs, err := g.slice(coords, m.dimNum)
	if err != nil {
		return 0, err
	}
	if m.tileExtents == nil {
		return 0, errs.ErrNoRegularTiles
	}

	domain := m.domain.([]T)
	ext := m.tileExtents.([]T)
	offsets := m.tileOffsetsRow
	if m.tileOrder == format.ColMajor {
		offsets = m.tileOffsetsCol
	}

	var id uint64
	for i := 0; i < m.dimNum; i++ {
		id += tileIndex(cs[i], domain[2*i], ext[i]) * offsets[i]
	}

	return id, nil
}

func (g geom[T]) cellPos(m *Metadata, coords any) (uint64, error) {
	cs, err := g.slice(coords, m.dimNum)
	if err != nil {
		return 0, err
	}
	if m.arrayType != format.Dense {
		return 0, errs.ErrNotDense
	}

	domain := m.domain.([]T)
	ext := m.tileExtents.([]T)

	var pos uint64
	cellOffset := uint64(1)
	if m.cellOrder == format.RowMajor {
		for i := m.dimNum - 1; i >= 0; i-- {
			extU := widen(ext[i])
			pos += (diff(cs[i], domain[2*i]) % extU) * cellOffset
			cellOffset *= extU
		}
	} else {
		for i := 0; i < m.dimNum; i++ {
			extU := widen(ext[i])
			pos += (diff(cs[i], domain[2*i]) % extU) * cellOffset
			cellOffset *= extU
		}
	}

	return pos, nil
}

func (g geom[T]) nextCellCoords(m *Metadata, domain, coords any) (bool, error) {
	d, err := g.slice(domain, 2*m.dimNum)
	if err != nil {
		return false, err
	}
	cs, err := g.slice(coords, m.dimNum)
	if err != nil {
		return false, err
	}

	// The carry walks compare against the range bounds before stepping, so
	// in-domain steps never wrap at the limits of narrow coordinate types.
	// The final step past the domain (reported as false) moves the
	// slowest-varying coordinate one beyond its bound, which wraps when that
	// bound is the limit of the type.
	if m.cellOrder == format.RowMajor {
		i := m.dimNum - 1
		for i > 0 && cs[i] == d[2*i+1] {
			cs[i] = d[2*i]
			i--
		}
		if i == 0 && cs[0] == d[1] {
			cs[0]++

			return false, nil
		}
		cs[i]++

		return true, nil
	}

	i := 0
	for i < m.dimNum-1 && cs[i] == d[2*i+1] {
		cs[i] = d[2*i]
		i++
	}
	if i == m.dimNum-1 && cs[i] == d[2*i+1] {
		cs[i]++

		return false, nil
	}
	cs[i]++

	return true, nil
}

func (g geom[T]) prevCellCoords(m *Metadata, domain, coords any) (bool, error) {
	d, err := g.slice(domain, 2*m.dimNum)
	if err != nil {
		return false, err
	}
	cs, err := g.slice(coords, m.dimNum)
	if err != nil {
		return false, err
	}

	if m.cellOrder == format.RowMajor {
		i := m.dimNum - 1
		for i > 0 && cs[i] == d[2*i] {
			cs[i] = d[2*i+1]
			i--
		}
		if i == 0 && cs[0] == d[0] {
			cs[0]--

			return false, nil
		}
		cs[i]--

		return true, nil
	}

	i := 0
	for i < m.dimNum-1 && cs[i] == d[2*i] {
		cs[i] = d[2*i+1]
		i++
	}
	if i == m.dimNum-1 && cs[i] == d[2*i] {
		cs[i]--

		return false, nil
	}
	cs[i]--

	return true, nil
}

func (g geom[T]) nextTileCoords(m *Metadata, tileDomain, tileCoords any) error {
	d, err := g.slice(tileDomain, 2*m.dimNum)
	if err != nil {
		return err
	}
	tc, err := g.slice(tileCoords, m.dimNum)
	if err != nil {
		return err
	}

	// Exhausting the domain leaves the slowest-varying index past its high
	// bound, which is how callers detect the end of the walk.
	if m.tileOrder == format.RowMajor {
		i := m.dimNum - 1
		for i > 0 && tc[i] == d[2*i+1] {
			tc[i] = d[2*i]
			i--
		}
		tc[i]++

		return nil
	}

	i := 0
	for i < m.dimNum-1 && tc[i] == d[2*i+1] {
		tc[i] = d[2*i]
		i++
	}
	tc[i]++

	return nil
}

func (g geom[T]) subarrayTileDomain(m *Metadata, subarray, tileDomainOut, subarrayOut any) error {
	sub, err := g.slice(subarray, 2*m.dimNum)
	if err != nil {
		return err
	}
	td, err := g.slice(tileDomainOut, 2*m.dimNum)
	if err != nil {
		return err
	}
	out, err := g.slice(subarrayOut, 2*m.dimNum)
	if err != nil {
		return err
	}
	if m.tileExtents == nil {
		return errs.ErrNoRegularTiles
	}

	domain := m.domain.([]T)
	ext := m.tileExtents.([]T)
	for i := 0; i < m.dimNum; i++ {
		td[2*i] = 0
		td[2*i+1] = T(tileIndex(domain[2*i+1], domain[2*i], ext[i]))

		lo := T(tileIndex(sub[2*i], domain[2*i], ext[i]))
		hi := T(tileIndex(sub[2*i+1], domain[2*i], ext[i]))
		if lo < td[2*i] {
			lo = td[2*i]
		}
		if hi > td[2*i+1] {
			hi = td[2*i+1]
		}
		out[2*i] = lo
		out[2*i+1] = hi
	}

	return nil
}

func (g geom[T]) tilePos(m *Metadata, tileCoords any) (uint64, error) {
	tc, err := g.slice(tileCoords, m.dimNum)
	if err != nil {
		return 0, err
	}
	if m.tileExtents == nil {
		return 0, errs.ErrNoRegularTiles
	}

	offsets := m.tileOffsetsRow
	if m.tileOrder == format.ColMajor {
		offsets = m.tileOffsetsCol
	}

	var pos uint64
	for i := 0; i < m.dimNum; i++ {
		pos += valueU(tc[i]) * offsets[i]
	}

	return pos, nil
}

func (g geom[T]) tilePosIn(m *Metadata, domain, tileCoords any) (uint64, error) {
	d, err := g.slice(domain, 2*m.dimNum)
	if err != nil {
		return 0, err
	}
	tc, err := g.slice(tileCoords, m.dimNum)
	if err != nil {
		return 0, err
	}
	if m.tileExtents == nil {
		return 0, errs.ErrNoRegularTiles
	}

	offsets := tileScratch(m.dimNum)
	if m.tileOrder == format.RowMajor {
		offsets[m.dimNum-1] = 1
		for i := m.dimNum - 2; i >= 0; i-- {
			offsets[i] = offsets[i+1] * (diffU(d[2*(i+1)+1], d[2*(i+1)]) + 1)
		}
	} else {
		offsets[0] = 1
		for i := 1; i < m.dimNum; i++ {
			offsets[i] = offsets[i-1] * (diffU(d[2*(i-1)+1], d[2*(i-1)]) + 1)
		}
	}

	var pos uint64
	for i := 0; i < m.dimNum; i++ {
		pos += diffU(tc[i], d[2*i]) * offsets[i]
	}

	return pos, nil
}

func (g geom[T]) tileSubarray(m *Metadata, tileCoords, out any) error {
	tc, err := g.slice(tileCoords, m.dimNum)
	if err != nil {
		return err
	}
	sub, err := g.slice(out, 2*m.dimNum)
	if err != nil {
		return err
	}
	if m.tileExtents == nil {
		return errs.ErrNoRegularTiles
	}

	domain := m.domain.([]T)
	ext := m.tileExtents.([]T)
	for i := 0; i < m.dimNum; i++ {
		sub[2*i] = domain[2*i] + tc[i]*ext[i]
		sub[2*i+1] = domain[2*i] + (tc[i]+1)*ext[i] - 1
	}

	return nil
}

func (g geom[T]) expandDomain(m *Metadata, domain any) error {
	d, err := g.slice(domain, 2*m.dimNum)
	if err != nil {
		return err
	}
	// No regular tile grid: nothing to snap to.
	if m.tileExtents == nil {
		return nil
	}

	arrayDomain := m.domain.([]T)
	ext := m.tileExtents.([]T)
	for i := 0; i < m.dimNum; i++ {
		lo := arrayDomain[2*i]
		if isFloat[T]() {
			e := float64(ext[i])
			d[2*i] = T(math.Floor(float64(d[2*i]-lo)/e)*e) + lo
			d[2*i+1] = T(math.Ceil(float64(d[2*i+1]-lo)/e)*e) + lo
			continue
		}

		d[2*i] = (d[2*i]-lo)/ext[i]*ext[i] + lo
		d[2*i+1] = ((d[2*i+1]-lo)/ext[i]+1)*ext[i] - 1 + lo
	}

	return nil
}

func (g geom[T]) subarrayOverlap(m *Metadata, a, b, out any) (int, error) {
	as, err := g.slice(a, 2*m.dimNum)
	if err != nil {
		return 0, err
	}
	bs, err := g.slice(b, 2*m.dimNum)
	if err != nil {
		return 0, err
	}
	os, err := g.slice(out, 2*m.dimNum)
	if err != nil {
		return 0, err
	}

	for i := 0; i < m.dimNum; i++ {
		os[2*i] = max(as[2*i], bs[2*i])
		os[2*i+1] = min(as[2*i+1], bs[2*i+1])
		if os[2*i] > os[2*i+1] {
			return OverlapNone, nil
		}
	}

	full := true
	for i := 0; i < 2*m.dimNum; i++ {
		if os[i] != bs[i] {
			full = false
			break
		}
	}
	if full {
		return OverlapFull, nil
	}

	// Contiguous in a's cell order: the overlap must equal a's full range
	// on every dimension except the slowest-varying one.
	contig := true
	if m.cellOrder == format.RowMajor {
		for i := 1; i < m.dimNum; i++ {
			if os[2*i] != as[2*i] || os[2*i+1] != as[2*i+1] {
				contig = false
				break
			}
		}
	} else {
		for i := 0; i < m.dimNum-1; i++ {
			if os[2*i] != as[2*i] || os[2*i+1] != as[2*i+1] {
				contig = false
				break
			}
		}
	}
	if contig {
		return OverlapPartialContig, nil
	}

	return OverlapPartial, nil
}

func (g geom[T]) inTileSlabRow(m *Metadata, rng any) (bool, error) {
	r, err := g.slice(rng, 2*m.dimNum)
	if err != nil {
		return false, err
	}
	if m.tileExtents == nil {
		return false, errs.ErrNoRegularTiles
	}

	domain := m.domain.([]T)
	ext := m.tileExtents.([]T)
	// A row tile slab varies only along the last dimension.
	for i := 0; i < m.dimNum-1; i++ {
		if tileIndex(r[2*i], domain[2*i], ext[i]) != tileIndex(r[2*i+1], domain[2*i], ext[i]) {
			return false, nil
		}
	}

	return true, nil
}

func (g geom[T]) inTileSlabCol(m *Metadata, rng any) (bool, error) {
	r, err := g.slice(rng, 2*m.dimNum)
	if err != nil {
		return false, err
	}
	if m.tileExtents == nil {
		return false, errs.ErrNoRegularTiles
	}

	domain := m.domain.([]T)
	ext := m.tileExtents.([]T)
	// A column tile slab varies only along the first dimension.
	for i := 1; i < m.dimNum; i++ {
		if tileIndex(r[2*i], domain[2*i], ext[i]) != tileIndex(r[2*i+1], domain[2*i], ext[i]) {
			return false, nil
		}
	}

	return true, nil
}

func (g geom[T]) tileSlabRowCellNum(m *Metadata, subarray any) (uint64, error) {
	sub, err := g.slice(subarray, 2*m.dimNum)
	if err != nil {
		return 0, err
	}
	if m.tileExtents == nil {
		return 0, errs.ErrNoRegularTiles
	}

	ext := m.tileExtents.([]T)
	// One row of tiles: the slowest dimension is clipped to a single
	// extent, the others contribute their full subarray span.
	cellNum := min(valueU(ext[0]), diffU(sub[1], sub[0])+1)
	for i := 1; i < m.dimNum; i++ {
		cellNum *= diffU(sub[2*i+1], sub[2*i]) + 1
	}

	return cellNum, nil
}

func (g geom[T]) tileSlabColCellNum(m *Metadata, subarray any) (uint64, error) {
	sub, err := g.slice(subarray, 2*m.dimNum)
	if err != nil {
		return 0, err
	}
	if m.tileExtents == nil {
		return 0, errs.ErrNoRegularTiles
	}

	ext := m.tileExtents.([]T)
	last := m.dimNum - 1
	cellNum := min(valueU(ext[last]), diffU(sub[2*last+1], sub[2*last])+1)
	for i := 0; i < last; i++ {
		cellNum *= diffU(sub[2*i+1], sub[2*i]) + 1
	}

	return cellNum, nil
}

func (g geom[T]) tileNumInDomain(m *Metadata, domain any) (uint64, error) {
	d, err := g.slice(domain, 2*m.dimNum)
	if err != nil {
		return 0, err
	}
	if m.tileExtents == nil {
		return 0, errs.ErrNoRegularTiles
	}

	ext := m.tileExtents.([]T)
	num := uint64(1)
	for i := 0; i < m.dimNum; i++ {
		num *= tileIndex(d[2*i+1], d[2*i], ext[i]) + 1
	}

	return num, nil
}

func (g geom[T]) tileNumInRange(m *Metadata, rng any) (uint64, error) {
	r, err := g.slice(rng, 2*m.dimNum)
	if err != nil {
		return 0, err
	}
	if m.tileExtents == nil {
		return 0, errs.ErrNoRegularTiles
	}

	domain := m.domain.([]T)
	ext := m.tileExtents.([]T)
	num := uint64(1)
	for i := 0; i < m.dimNum; i++ {
		lo := tileIndex(r[2*i], domain[2*i], ext[i])
		hi := tileIndex(r[2*i+1], domain[2*i], ext[i])
		num *= hi - lo + 1
	}

	return num, nil
}

// formatValues renders a coordinate buffer for diagnostics.
func formatValues(g geometry, buf any, n int) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = g.formatValue(buf, i)
	}

	return strings.Join(parts, ", ")
}
