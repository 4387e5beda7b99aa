package array

import (
	"fmt"
	"math"

	"github.com/tilecube/tilecube/endian"
	"github.com/tilecube/tilecube/errs"
	"github.com/tilecube/tilecube/format"
)

// The metadata byte image is little-endian and tightly packed:
//
//	metadata    := uri_len:u32 uri_bytes
//	               array_type:u8 tile_order:u8 cell_order:u8
//	               capacity:u64
//	               hyperspace
//	               attribute_num:u32 attribute*
//	hyperspace  := dim_num:u32 coord_type:u8 dimension*
//	dimension   := name_len:u32 name_bytes lo:T hi:T has_extent:u8 (extent:T)?
//	attribute   := name_len:u32 name_bytes datatype:u8 cell_val_num:u32
//	               compressor:u8 compression_level:i32
//
// Derived tables are never written; deserialization recomputes them.

// Serialize encodes the metadata into its byte image.
func (m *Metadata) Serialize() ([]byte, error) {
	engine := endian.GetLittleEndianEngine()

	buf := make([]byte, 0, 256)
	buf = appendString(engine, buf, m.uri)
	buf = append(buf, byte(m.arrayType), byte(m.tileOrder), byte(m.cellOrder))
	buf = engine.AppendUint64(buf, m.capacity)

	buf = engine.AppendUint32(buf, uint32(m.dimNum))
	buf = append(buf, byte(m.coordsType))
	for _, d := range m.space.dims {
		buf = appendString(engine, buf, d.name)
		buf = m.geom.appendValues(engine, buf, d.domain)
		if d.extent != nil {
			buf = append(buf, 1)
			buf = m.geom.appendValues(engine, buf, d.extent)
		} else {
			buf = append(buf, 0)
		}
	}

	buf = engine.AppendUint32(buf, uint32(len(m.attrs)))
	for _, a := range m.attrs {
		buf = appendString(engine, buf, a.name)
		buf = append(buf, byte(a.dtype))
		buf = engine.AppendUint32(buf, a.cellValNum)
		buf = append(buf, byte(a.compressor))
		buf = engine.AppendUint32(buf, uint32(int32(a.level)))
	}

	return buf, nil
}

// Deserialize decodes a metadata byte image, recomputing every derived
// table. The result is sealed; a buffer that decodes but fails the
// metadata checks is rejected.
func Deserialize(data []byte) (*Metadata, error) {
	if data == nil {
		return nil, errs.ErrNilBuffer
	}

	r := &reader{data: data, engine: endian.GetLittleEndianEngine()}

	uri, err := r.str()
	if err != nil {
		return nil, err
	}

	rawArrayType, err := r.u8()
	if err != nil {
		return nil, err
	}
	arrayType := format.ArrayType(rawArrayType)
	if !arrayType.Valid() {
		return nil, fmt.Errorf("%w: array type %d", errs.ErrBadEnumByte, rawArrayType)
	}

	rawTileOrder, err := r.u8()
	if err != nil {
		return nil, err
	}
	rawCellOrder, err := r.u8()
	if err != nil {
		return nil, err
	}

	capacity, err := r.u64()
	if err != nil {
		return nil, err
	}

	space, err := deserializeHyperspace(r)
	if err != nil {
		return nil, err
	}

	attrNum, err := r.u32()
	if err != nil {
		return nil, err
	}
	attrs := make([]*Attribute, 0, attrNum)
	for i := uint32(0); i < attrNum; i++ {
		attr, err := deserializeAttribute(r)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}

	if r.off != len(r.data) {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrTrailingBytes, len(r.data)-r.off)
	}

	m := &Metadata{
		uri:       uri,
		arrayType: arrayType,
		tileOrder: format.Layout(rawTileOrder),
		cellOrder: format.Layout(rawCellOrder),
		capacity:  capacity,
		space:     space,
		attrs:     attrs,
	}
	if err := m.check(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInconsistentModel, err)
	}
	if err := m.computeDerived(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInconsistentModel, err)
	}

	return m, nil
}

func deserializeHyperspace(r *reader) (*Hyperspace, error) {
	dimNum, err := r.u32()
	if err != nil {
		return nil, err
	}
	rawType, err := r.u8()
	if err != nil {
		return nil, err
	}
	coordsType := format.Datatype(rawType)
	if !coordsType.Valid() || !coordsType.IsValidCoordType() {
		return nil, fmt.Errorf("%w: coordinates type %d", errs.ErrBadEnumByte, rawType)
	}
	g := geometryFor(coordsType)

	space := &Hyperspace{}
	for i := uint32(0); i < dimNum; i++ {
		name, err := r.str()
		if err != nil {
			return nil, err
		}

		domain, err := r.values(g, 2)
		if err != nil {
			return nil, err
		}

		hasExtent, err := r.u8()
		if err != nil {
			return nil, err
		}
		var extent any
		if hasExtent != 0 {
			if extent, err = r.values(g, 1); err != nil {
				return nil, err
			}
		}

		dim, err := NewDimension(name, coordsType, domain, extent)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInconsistentModel, err)
		}
		space.dims = append(space.dims, dim)
	}

	return space, nil
}

func deserializeAttribute(r *reader) (*Attribute, error) {
	name, err := r.str()
	if err != nil {
		return nil, err
	}

	rawType, err := r.u8()
	if err != nil {
		return nil, err
	}
	dtype := format.Datatype(rawType)
	if !dtype.Valid() {
		return nil, fmt.Errorf("%w: attribute datatype %d", errs.ErrBadEnumByte, rawType)
	}

	cellValNum, err := r.u32()
	if err != nil {
		return nil, err
	}

	rawCompressor, err := r.u8()
	if err != nil {
		return nil, err
	}
	compressor := format.Compressor(rawCompressor)
	if !compressor.Valid() {
		return nil, fmt.Errorf("%w: compressor %d", errs.ErrBadEnumByte, rawCompressor)
	}

	rawLevel, err := r.u32()
	if err != nil {
		return nil, err
	}

	attr, err := NewAttribute(name, dtype)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInconsistentModel, err)
	}
	if err := attr.SetCellValNum(cellValNum); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInconsistentModel, err)
	}
	if err := attr.SetCompressor(compressor, int(int32(rawLevel))); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInconsistentModel, err)
	}

	return attr, nil
}

func appendString(engine endian.EndianEngine, buf []byte, s string) []byte {
	buf = engine.AppendUint32(buf, uint32(len(s)))

	return append(buf, s...)
}

// reader walks a metadata byte image, reporting underruns.
type reader struct {
	data   []byte
	off    int
	engine endian.EndianEngine
}

func (r *reader) u8() (byte, error) {
	if r.off+1 > len(r.data) {
		return 0, errs.ErrBufferUnderrun
	}
	v := r.data[r.off]
	r.off++

	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if r.off+4 > len(r.data) {
		return 0, errs.ErrBufferUnderrun
	}
	v := r.engine.Uint32(r.data[r.off:])
	r.off += 4

	return v, nil
}

func (r *reader) u64() (uint64, error) {
	if r.off+8 > len(r.data) {
		return 0, errs.ErrBufferUnderrun
	}
	v := r.engine.Uint64(r.data[r.off:])
	r.off += 8

	return v, nil
}

func (r *reader) str() (string, error) {
	n, err := r.u32()
	if err != nil {
		return "", err
	}
	if n > math.MaxInt32 || r.off+int(n) > len(r.data) {
		return "", errs.ErrBufferUnderrun
	}
	s := string(r.data[r.off : r.off+int(n)])
	r.off += int(n)

	return s, nil
}

func (r *reader) values(g geometry, n int) (any, error) {
	vals, consumed, err := g.parseValues(r.engine, r.data[r.off:], n)
	if err != nil {
		return nil, err
	}
	r.off += consumed

	return vals, nil
}
