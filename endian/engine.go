// Package endian provides byte order utilities for the metadata codec.
//
// It combines the ByteOrder and AppendByteOrder interfaces of the standard
// encoding/binary package into one EndianEngine interface, so the codec can
// both read fixed-width fields and append them to a growing buffer through
// a single value.
//
// The on-disk array metadata format is little-endian on every platform, so
// codec code always uses GetLittleEndianEngine. The big-endian engine and
// the native-order probe exist for diagnostics and tests.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by the
// metadata codec.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// CheckEndianness determines the host byte order from a fixed probe value.
func CheckEndianness() binary.ByteOrder {
	// 0x0100: a big-endian host stores the MSB (0x01) first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}
