package native

import "math"

// Scalar is the native single-value union. One 64-bit slot holds a value of
// any numeric element type; it must be read back with the same type tag it
// was written with.
type Scalar struct {
	bits uint64
}

func (s *Scalar) SetInt8(v int8) {
	s.bits = uint64(uint8(v))
}

func (s Scalar) Int8() int8 {
	return int8(uint8(s.bits))
}

func (s *Scalar) SetInt16(v int16) {
	s.bits = uint64(uint16(v))
}

func (s Scalar) Int16() int16 {
	return int16(uint16(s.bits))
}

func (s *Scalar) SetInt32(v int32) {
	s.bits = uint64(uint32(v))
}

func (s Scalar) Int32() int32 {
	return int32(uint32(s.bits))
}

func (s *Scalar) SetFloat32(v float32) {
	s.bits = uint64(math.Float32bits(v))
}

func (s Scalar) Float32() float32 {
	return math.Float32frombits(uint32(s.bits))
}

func (s *Scalar) SetFloat64(v float64) {
	s.bits = math.Float64bits(v)
}

func (s Scalar) Float64() float64 {
	return math.Float64frombits(s.bits)
}
