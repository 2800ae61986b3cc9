// Package endian provides the byte-order engines used by the dense array encoding.
//
// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so encoders can
// both patch fixed header fields in place and append payload words:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = endian.AppendFloat64s(engine, buf, lane)
//
// All functions are safe for concurrent use; engines are immutable and stateless.
package endian

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
// binary.LittleEndian and binary.BigEndian satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness reports the byte order of the host.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	// lowest-addressed byte is the MSB on big-endian hosts
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

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// PutFloat64s writes values as IEEE-754 words into dst, which must hold
// at least 8*len(values) bytes.
func PutFloat64s(engine EndianEngine, dst []byte, values []float64) {
	if len(values) == 0 {
		return
	}

	_ = dst[8*len(values)-1] // bounds check hint
	for i, v := range values {
		engine.PutUint64(dst[i*8:], math.Float64bits(v))
	}
}

// AppendFloat64s appends values as IEEE-754 words to dst.
func AppendFloat64s(engine EndianEngine, dst []byte, values []float64) []byte {
	for _, v := range values {
		dst = engine.AppendUint64(dst, math.Float64bits(v))
	}

	return dst
}

// Float64s decodes len(dst) IEEE-754 words from src into dst.
// src must hold at least 8*len(dst) bytes.
func Float64s(engine EndianEngine, src []byte, dst []float64) {
	for i := range dst {
		dst[i] = math.Float64frombits(engine.Uint64(src[i*8:]))
	}
}
