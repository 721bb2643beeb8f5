package product

import (
	"math"
	"math/bits"

	"github.com/bruno-rino/harp/errors"
	"github.com/bruno-rino/harp/native"
)

// Data is the value carried by a Variable: a single scalar or an
// n-dimensional array, always of one of the six supported element types.
// The zero Data is invalid and stands for an absent value.
type Data struct {
	kind  native.TypeCode
	array bool
	shape []int
	elems any
}

// Int8 returns a scalar of element type int8.
func Int8(v int8) Data {
	return Data{kind: native.TypeInt8, elems: []int8{v}}
}

// Int16 returns a scalar of element type int16.
func Int16(v int16) Data {
	return Data{kind: native.TypeInt16, elems: []int16{v}}
}

// Int32 returns a scalar of element type int32.
func Int32(v int32) Data {
	return Data{kind: native.TypeInt32, elems: []int32{v}}
}

// Float32 returns a scalar of element type float.
func Float32(v float32) Data {
	return Data{kind: native.TypeFloat, elems: []float32{v}}
}

// Float64 returns a scalar of element type double.
func Float64(v float64) Data {
	return Data{kind: native.TypeDouble, elems: []float64{v}}
}

// String returns a scalar of element type string.
func String(s string) Data {
	return Data{kind: native.TypeString, elems: []string{s}}
}

// Int returns a scalar for v using the narrowest element type that holds
// it without loss, checked in ascending order. Integers too wide for every
// element type are rejected rather than rounded.
func Int(v int64) (Data, error) {
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return Int8(int8(v)), nil
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return Int16(int16(v)), nil
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return Int32(int32(v)), nil
	case significandBits(v) <= 24:
		return Float32(float32(v)), nil
	case significandBits(v) <= 53:
		return Float64(float64(v)), nil
	}
	return Data{}, errors.New(errors.PhaseEncode, errors.KindUnsupportedType).
		HostKind("int64").
		Value(v).
		Detail("integer %d cannot be represented without loss", v).
		Build()
}

// significandBits returns the span from v's highest to lowest set bit, the
// significand width a float type needs to hold v exactly.
func significandBits(v int64) int {
	if v == 0 {
		return 0
	}
	a := uint64(v)
	if v < 0 {
		a = -a
	}
	return bits.Len64(a >> uint(bits.TrailingZeros64(a)))
}

// Number returns a scalar for v, of element type float when v survives the
// round trip through float32 exactly and double otherwise. NaN and the
// infinities count as exact.
func Number(v float64) Data {
	if math.IsNaN(v) || float64(float32(v)) == v {
		return Float32(float32(v))
	}
	return Float64(v)
}

// checkShape resolves the shape for an array of n elements. An empty shape
// means one axis of length n.
func checkShape(n int, shape []int) ([]int, error) {
	if len(shape) == 0 {
		return []int{n}, nil
	}
	total := 1
	for _, l := range shape {
		if l < 0 {
			return nil, errors.ShapeMismatch(errors.PhaseEncode, "negative dimension length %d", l)
		}
		total *= l
	}
	if total != n {
		return nil, errors.ShapeMismatch(errors.PhaseEncode, "shape %v holds %d elements, got %d", shape, total, n)
	}
	out := make([]int, len(shape))
	copy(out, shape)
	return out, nil
}

// Int8Array returns an array over values with the given per-axis lengths.
// With no shape the array is one-dimensional. The Data holds values
// directly, without copying.
func Int8Array(values []int8, shape ...int) (Data, error) {
	sh, err := checkShape(len(values), shape)
	if err != nil {
		return Data{}, err
	}
	return Data{kind: native.TypeInt8, array: true, shape: sh, elems: values}, nil
}

// Int16Array returns an array of element type int.
func Int16Array(values []int16, shape ...int) (Data, error) {
	sh, err := checkShape(len(values), shape)
	if err != nil {
		return Data{}, err
	}
	return Data{kind: native.TypeInt16, array: true, shape: sh, elems: values}, nil
}

// Int32Array returns an array of element type long.
func Int32Array(values []int32, shape ...int) (Data, error) {
	sh, err := checkShape(len(values), shape)
	if err != nil {
		return Data{}, err
	}
	return Data{kind: native.TypeInt32, array: true, shape: sh, elems: values}, nil
}

// Float32Array returns an array of element type float.
func Float32Array(values []float32, shape ...int) (Data, error) {
	sh, err := checkShape(len(values), shape)
	if err != nil {
		return Data{}, err
	}
	return Data{kind: native.TypeFloat, array: true, shape: sh, elems: values}, nil
}

// Float64Array returns an array of element type double.
func Float64Array(values []float64, shape ...int) (Data, error) {
	sh, err := checkShape(len(values), shape)
	if err != nil {
		return Data{}, err
	}
	return Data{kind: native.TypeDouble, array: true, shape: sh, elems: values}, nil
}

// StringArray returns an array of element type string.
func StringArray(values []string, shape ...int) (Data, error) {
	sh, err := checkShape(len(values), shape)
	if err != nil {
		return Data{}, err
	}
	return Data{kind: native.TypeString, array: true, shape: sh, elems: values}, nil
}

// IsValid reports whether d holds a value at all.
func (d Data) IsValid() bool {
	return d.elems != nil
}

// Kind returns the element type. It is only meaningful when d is valid.
func (d Data) Kind() native.TypeCode {
	return d.kind
}

// IsScalar reports whether d is a single bare value rather than an array.
func (d Data) IsScalar() bool {
	return d.elems != nil && !d.array
}

// IsArray reports whether d is an array.
func (d Data) IsArray() bool {
	return d.array
}

// Rank returns the number of axes. Scalars have rank zero.
func (d Data) Rank() int {
	return len(d.shape)
}

// Shape returns a copy of the per-axis lengths, nil for scalars.
func (d Data) Shape() []int {
	if len(d.shape) == 0 {
		return nil
	}
	out := make([]int, len(d.shape))
	copy(out, d.shape)
	return out
}

// Len returns the number of elements. A scalar counts as one.
func (d Data) Len() int {
	if d.elems == nil {
		return 0
	}
	if !d.array {
		return 1
	}
	n := 1
	for _, l := range d.shape {
		n *= l
	}
	return n
}

// Value returns the bare scalar value as one of int8, int16, int32,
// float32, float64 or string, or nil when d is not a scalar.
func (d Data) Value() any {
	if !d.IsScalar() {
		return nil
	}
	switch v := d.elems.(type) {
	case []int8:
		return v[0]
	case []int16:
		return v[0]
	case []int32:
		return v[0]
	case []float32:
		return v[0]
	case []float64:
		return v[0]
	case []string:
		return v[0]
	}
	return nil
}

// Int8s returns the flat elements when d holds int8 data, nil otherwise.
// A scalar yields a one-element slice.
func (d Data) Int8s() []int8 {
	v, _ := d.elems.([]int8)
	return v
}

// Int16s returns the flat elements when d holds int16 data.
func (d Data) Int16s() []int16 {
	v, _ := d.elems.([]int16)
	return v
}

// Int32s returns the flat elements when d holds int32 data.
func (d Data) Int32s() []int32 {
	v, _ := d.elems.([]int32)
	return v
}

// Float32s returns the flat elements when d holds float data.
func (d Data) Float32s() []float32 {
	v, _ := d.elems.([]float32)
	return v
}

// Float64s returns the flat elements when d holds double data.
func (d Data) Float64s() []float64 {
	v, _ := d.elems.([]float64)
	return v
}

// Strings returns the flat elements when d holds string data.
func (d Data) Strings() []string {
	v, _ := d.elems.([]string)
	return v
}

// FloatAt returns element i widened to float64. It is only defined for
// numeric kinds; float64 holds every numeric element type exactly.
func (d Data) FloatAt(i int) float64 {
	switch v := d.elems.(type) {
	case []int8:
		return float64(v[i])
	case []int16:
		return float64(v[i])
	case []int32:
		return float64(v[i])
	case []float32:
		return float64(v[i])
	case []float64:
		return v[i]
	}
	return 0
}

// Scalarize returns d itself when it is a scalar, or the single element of
// a one-element array as a scalar. ok is false for anything larger.
func (d Data) Scalarize() (Data, bool) {
	if d.elems == nil {
		return Data{}, false
	}
	if !d.array {
		return d, true
	}
	if d.Len() != 1 {
		return Data{}, false
	}
	return Data{kind: d.kind, elems: d.elems}, true
}

// Equal reports whether d and other hold the same kind, shape and
// elements. NaN elements never compare equal.
func (d Data) Equal(other Data) bool {
	if (d.elems == nil) != (other.elems == nil) {
		return false
	}
	if d.elems == nil {
		return true
	}
	if d.kind != other.kind || d.array != other.array || len(d.shape) != len(other.shape) {
		return false
	}
	for i := range d.shape {
		if d.shape[i] != other.shape[i] {
			return false
		}
	}
	switch a := d.elems.(type) {
	case []int8:
		b := other.Int8s()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	case []int16:
		b := other.Int16s()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	case []int32:
		b := other.Int32s()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	case []float32:
		b := other.Float32s()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	case []float64:
		b := other.Float64s()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	case []string:
		b := other.Strings()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}
