package transcoder

import (
	"github.com/bruno-rino/harp/charset"
	"github.com/bruno-rino/harp/errors"
	"github.com/bruno-rino/harp/native"
	"github.com/bruno-rino/harp/product"
)

// Encoder populates native product graphs from host products. Variables
// are transferred strictly in the host product's iteration order, and
// array elements in flat row-major order.
type Encoder struct {
	lib   native.Library
	codec *charset.Codec
}

// NewEncoder returns an encoder over lib that resolves the process-wide
// default encoding at each call.
func NewEncoder(lib native.Library) *Encoder {
	return &Encoder{lib: lib}
}

// NewEncoderWithCodec returns an encoder bound to one codec regardless of
// the process-wide default.
func NewEncoderWithCodec(lib native.Library, c *charset.Codec) *Encoder {
	return &Encoder{lib: lib, codec: c}
}

func (e *Encoder) codecNow() *charset.Codec {
	if e.codec != nil {
		return e.codec
	}
	return charset.Default()
}

// EncodeProduct fills the native product np from p. Any failure during a
// given variable's transfer is returned tagged with that variable's name.
// Ownership of np stays with the caller on every path.
func (e *Encoder) EncodeProduct(p *product.Product, np *native.Product) error {
	codec := e.codecNow()

	if p.SourceProduct != "" {
		b, err := codec.Encode(p.SourceProduct)
		if err != nil {
			return err
		}
		if err := e.lib.SetSourceProduct(np, b); err != nil {
			return err
		}
	}
	if p.History != "" {
		b, err := codec.Encode(p.History)
		if err != nil {
			return err
		}
		if err := e.lib.SetHistory(np, b); err != nil {
			return err
		}
	}

	for _, name := range p.Names() {
		v, _ := p.Get(name)
		if err := e.encodeVariable(codec, name, v, np); err != nil {
			return errors.TagVariable(err, name)
		}
	}

	return nil
}

// encodeVariable creates a native variable for v, attaches it to np, and
// fills in its data and attributes. When attachment fails the just-created
// variable is released here; once attached, its lifetime is tied to np.
func (e *Encoder) encodeVariable(codec *charset.Codec, name string, v *product.Variable, np *native.Product) error {
	if v == nil || !v.Data.IsValid() {
		return errors.MissingData(errors.PhaseExport)
	}

	if len(v.Dimensions) == 0 && v.Data.IsArray() && v.Data.Len() != 1 {
		return errors.DimensionsMissing(errors.PhaseExport)
	}
	if len(v.Dimensions) > 0 && (!v.Data.IsArray() || v.Data.Rank() != len(v.Dimensions)) {
		return errors.DimensionsIncorrect(errors.PhaseExport)
	}

	nameBytes, err := codec.Encode(name)
	if err != nil {
		return err
	}

	var dimTypes []native.DimensionType
	var dimLengths []int64
	if len(v.Dimensions) > 0 {
		dimTypes = make([]native.DimensionType, len(v.Dimensions))
		for i, dim := range v.Dimensions {
			t, ok := native.DimensionTypeOf(dim)
			if !ok {
				return errors.UnsupportedDimension(errors.PhaseExport, dim)
			}
			dimTypes[i] = t
		}
		shape := v.Data.Shape()
		dimLengths = make([]int64, len(shape))
		for i, l := range shape {
			dimLengths[i] = int64(l)
		}
	}

	dataType := v.Data.Kind()

	nv, err := e.lib.NewVariable(nameBytes, dataType, dimTypes, dimLengths)
	if err != nil {
		return err
	}
	if err := e.lib.AddVariable(np, nv); err != nil {
		e.lib.DeleteVariable(nv)
		return err
	}

	if err := e.encodeData(codec, v.Data, nv); err != nil {
		return err
	}

	if dataType != native.TypeString {
		if v.ValidMin.IsValid() {
			if err := e.encodeRangeAttribute(v.ValidMin, "valid_min", dataType, &nv.ValidMin); err != nil {
				return err
			}
		}
		if v.ValidMax.IsValid() {
			if err := e.encodeRangeAttribute(v.ValidMax, "valid_max", dataType, &nv.ValidMax); err != nil {
				return err
			}
		}
	}

	if v.Unit != "" {
		b, err := codec.Encode(v.Unit)
		if err != nil {
			return err
		}
		if err := e.lib.SetUnit(nv, b); err != nil {
			return err
		}
	}
	if v.Description != "" {
		b, err := codec.Encode(v.Description)
		if err != nil {
			return err
		}
		if err := e.lib.SetDescription(nv, b); err != nil {
			return err
		}
	}

	return nil
}

// encodeData copies host data into the native variable's buffer. Numeric
// targets take a safe cast of every element; string targets are set one
// element at a time in flat order.
func (e *Encoder) encodeData(codec *charset.Codec, d product.Data, nv *native.Variable) error {
	if !native.CanCast(d.Kind(), nv.DataType) {
		return errors.TypeMismatch(errors.PhaseEncode, nil, d.Kind().String(), nv.DataType.String())
	}
	n := int(nv.NumElements)
	if d.Len() != n {
		return errors.ShapeMismatch(errors.PhaseEncode, "data holds %d elements, variable expects %d", d.Len(), n)
	}

	switch nv.DataType {
	case native.TypeInt8:
		copy(nv.Data.Int8s(), d.Int8s())
	case native.TypeInt16:
		dst := nv.Data.Int16s()
		if src := d.Int16s(); src != nil {
			copy(dst, src)
		} else {
			for i := range dst {
				dst[i] = int16(d.FloatAt(i))
			}
		}
	case native.TypeInt32:
		dst := nv.Data.Int32s()
		if src := d.Int32s(); src != nil {
			copy(dst, src)
		} else {
			for i := range dst {
				dst[i] = int32(d.FloatAt(i))
			}
		}
	case native.TypeFloat:
		dst := nv.Data.Float32s()
		if src := d.Float32s(); src != nil {
			copy(dst, src)
		} else {
			for i := range dst {
				dst[i] = float32(d.FloatAt(i))
			}
		}
	case native.TypeDouble:
		dst := nv.Data.Float64s()
		if src := d.Float64s(); src != nil {
			copy(dst, src)
		} else {
			for i := range dst {
				dst[i] = d.FloatAt(i)
			}
		}
	case native.TypeString:
		for i, s := range d.Strings() {
			b, err := codec.Encode(s)
			if err != nil {
				return err
			}
			if err := e.lib.SetStringElement(nv, int64(i), b); err != nil {
				return err
			}
		}
	default:
		return errors.UnsupportedTypeCode(errors.PhaseEncode, int(nv.DataType))
	}

	return nil
}

// encodeRangeAttribute validates a valid_min or valid_max value against
// the variable's element type and writes it into the native scalar slot. A
// one-element array is accepted in place of a scalar.
func (e *Encoder) encodeRangeAttribute(d product.Data, attr string, dataType native.TypeCode, slot *native.Scalar) error {
	scalar, ok := d.Scalarize()
	if !ok {
		return errors.NonScalarAttribute(errors.PhaseExport, attr)
	}
	if !native.CanCast(scalar.Kind(), dataType) {
		return errors.IncompatibleAttribute(errors.PhaseExport, attr, scalar.Kind().String(), dataType.String())
	}
	return encodeScalar(scalar, dataType, slot)
}

// encodeScalar writes a host scalar into a native scalar slot as the
// given type. The cast is lossless for every pair the type lattice
// admits; float64 carries each of them exactly.
func encodeScalar(d product.Data, t native.TypeCode, s *native.Scalar) error {
	switch t {
	case native.TypeInt8:
		s.SetInt8(int8(d.FloatAt(0)))
	case native.TypeInt16:
		s.SetInt16(int16(d.FloatAt(0)))
	case native.TypeInt32:
		s.SetInt32(int32(d.FloatAt(0)))
	case native.TypeFloat:
		s.SetFloat32(float32(d.FloatAt(0)))
	case native.TypeDouble:
		s.SetFloat64(d.FloatAt(0))
	default:
		return errors.UnsupportedTypeCode(errors.PhaseEncode, int(t))
	}
	return nil
}
