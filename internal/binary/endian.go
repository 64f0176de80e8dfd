package binary

import (
	"encoding/binary"
	"math"
)

// SizeOf returns the encoded size of T in bytes.
func SizeOf[T Number]() int {
	var zero T
	switch any(zero).(type) {
	case uint8, int8:
		return 1
	case uint16, int16:
		return 2
	case uint32, int32, float32:
		return 4
	default:
		return 8
	}
}

// DecodeLE decodes a little-endian value from the start of buf.
// buf must hold at least SizeOf[T]() bytes.
func DecodeLE[T Number](buf []byte) T {
	le := binary.LittleEndian
	var v any
	var zero T
	switch any(zero).(type) {
	case uint8:
		v = buf[0]
	case int8:
		v = int8(buf[0])
	case uint16:
		v = le.Uint16(buf)
	case int16:
		v = int16(le.Uint16(buf))
	case uint32:
		v = le.Uint32(buf)
	case int32:
		v = int32(le.Uint32(buf))
	case float32:
		v = math.Float32frombits(le.Uint32(buf))
	case uint64:
		v = le.Uint64(buf)
	case int64:
		v = int64(le.Uint64(buf))
	case float64:
		v = math.Float64frombits(le.Uint64(buf))
	}
	return v.(T)
}

// PutLE encodes v little-endian into the start of buf.
func PutLE[T Number](buf []byte, v T) {
	le := binary.LittleEndian
	switch x := any(v).(type) {
	case uint8:
		buf[0] = x
	case int8:
		buf[0] = byte(x)
	case uint16:
		le.PutUint16(buf, x)
	case int16:
		le.PutUint16(buf, uint16(x))
	case uint32:
		le.PutUint32(buf, x)
	case int32:
		le.PutUint32(buf, uint32(x))
	case float32:
		le.PutUint32(buf, math.Float32bits(x))
	case uint64:
		le.PutUint64(buf, x)
	case int64:
		le.PutUint64(buf, uint64(x))
	case float64:
		le.PutUint64(buf, math.Float64bits(x))
	}
}

// DecodeSliceLE reinterprets src as n consecutive little-endian values.
// src must hold at least n*SizeOf[T]() bytes; extra bytes are ignored.
func DecodeSliceLE[T Number](src []byte, n int) []T {
	dst := make([]T, n)
	le := binary.LittleEndian

	// One type switch per slice, not per element.
	switch d := any(dst).(type) {
	case []uint8:
		copy(d, src[:n])
	case []int8:
		for i := range d {
			d[i] = int8(src[i])
		}
	case []uint16:
		for i := range d {
			d[i] = le.Uint16(src[2*i:])
		}
	case []int16:
		for i := range d {
			d[i] = int16(le.Uint16(src[2*i:]))
		}
	case []uint32:
		for i := range d {
			d[i] = le.Uint32(src[4*i:])
		}
	case []int32:
		for i := range d {
			d[i] = int32(le.Uint32(src[4*i:]))
		}
	case []float32:
		for i := range d {
			d[i] = math.Float32frombits(le.Uint32(src[4*i:]))
		}
	case []uint64:
		for i := range d {
			d[i] = le.Uint64(src[8*i:])
		}
	case []int64:
		for i := range d {
			d[i] = int64(le.Uint64(src[8*i:]))
		}
	case []float64:
		for i := range d {
			d[i] = math.Float64frombits(le.Uint64(src[8*i:]))
		}
	}
	return dst
}
