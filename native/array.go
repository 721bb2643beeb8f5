package native

import "unsafe"

// Array is the native data buffer union. Numeric variables store their
// elements in one flat byte buffer in host byte order; string variables
// store independently allocated byte strings, one per element.
type Array struct {
	Bytes   []byte
	Strings [][]byte
}

// NewArray allocates a buffer for n elements of type t. The numeric backing
// store is allocated in 64-bit units so the typed views stay aligned.
func NewArray(t TypeCode, n int64) Array {
	if t == TypeString {
		return Array{Strings: make([][]byte, n)}
	}
	size := int64(t.Size()) * n
	if size == 0 {
		return Array{}
	}
	words := make([]uint64, (size+7)/8)
	return Array{Bytes: unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size)}
}

// Int8s returns a typed view over the numeric buffer. The view shares the
// buffer's storage; callers that need an owned copy must copy out.
func (a Array) Int8s() []int8 {
	if len(a.Bytes) == 0 {
		return nil
	}
	return unsafe.Slice((*int8)(unsafe.Pointer(&a.Bytes[0])), len(a.Bytes))
}

func (a Array) Int16s() []int16 {
	if len(a.Bytes) == 0 {
		return nil
	}
	return unsafe.Slice((*int16)(unsafe.Pointer(&a.Bytes[0])), len(a.Bytes)/2)
}

func (a Array) Int32s() []int32 {
	if len(a.Bytes) == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&a.Bytes[0])), len(a.Bytes)/4)
}

func (a Array) Float32s() []float32 {
	if len(a.Bytes) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&a.Bytes[0])), len(a.Bytes)/4)
}

func (a Array) Float64s() []float64 {
	if len(a.Bytes) == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&a.Bytes[0])), len(a.Bytes)/8)
}
