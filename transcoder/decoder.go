package transcoder

import (
	"github.com/bruno-rino/harp/charset"
	"github.com/bruno-rino/harp/errors"
	"github.com/bruno-rino/harp/native"
	"github.com/bruno-rino/harp/product"
)

// Decoder converts native product and variable graphs to their host
// representation. The native graph is owned by the caller and may be
// released as soon as a conversion returns; everything the Decoder
// produces is an independent copy.
type Decoder struct {
	codec *charset.Codec
}

// NewDecoder returns a decoder that resolves the process-wide default
// encoding at each call.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// NewDecoderWithCodec returns a decoder bound to one codec regardless of
// the process-wide default.
func NewDecoderWithCodec(c *charset.Codec) *Decoder {
	return &Decoder{codec: c}
}

func (d *Decoder) codecNow() *charset.Codec {
	if d.codec != nil {
		return d.codec
	}
	return charset.Default()
}

// DecodeProduct converts a native product to a host Product, preserving
// the native variable order.
func (d *Decoder) DecodeProduct(np *native.Product) (*product.Product, error) {
	codec := d.codecNow()
	p := product.NewProduct()

	if len(np.SourceProduct) > 0 {
		s, err := codec.Decode(np.SourceProduct)
		if err != nil {
			return nil, err
		}
		p.SourceProduct = s
	}
	if len(np.History) > 0 {
		s, err := codec.Decode(np.History)
		if err != nil {
			return nil, err
		}
		p.History = s
	}

	for _, nv := range np.Variables {
		name, err := codec.Decode(nv.Name)
		if err != nil {
			return nil, err
		}
		v, err := decodeVariable(codec, nv)
		if err != nil {
			return nil, err
		}
		if err := p.Set(name, v); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// DecodeVariable converts one native variable to a host Variable.
func (d *Decoder) DecodeVariable(nv *native.Variable) (*product.Variable, error) {
	return decodeVariable(d.codecNow(), nv)
}

func decodeVariable(codec *charset.Codec, nv *native.Variable) (*product.Variable, error) {
	data, err := decodeData(codec, nv)
	if err != nil {
		return nil, err
	}
	v := &product.Variable{Data: data}

	if nv.NumDimensions > 0 {
		dims := make([]string, nv.NumDimensions)
		for i := 0; i < nv.NumDimensions; i++ {
			name, ok := native.DimensionName(nv.DimensionType[i])
			if !ok {
				return nil, errors.UnsupportedDimensionCode(errors.PhaseDecode, int(nv.DimensionType[i]))
			}
			dims[i] = name
		}
		v.Dimensions = dims
	}

	if len(nv.Unit) > 0 {
		unit, err := codec.Decode(nv.Unit)
		if err != nil {
			return nil, err
		}
		v.Unit = unit
	}

	// The native layer carries a valid range for every non-string
	// variable; string variables never have one.
	if nv.DataType != native.TypeString {
		vmin, err := decodeScalar(nv.DataType, nv.ValidMin)
		if err != nil {
			return nil, err
		}
		vmax, err := decodeScalar(nv.DataType, nv.ValidMax)
		if err != nil {
			return nil, err
		}
		v.ValidMin = vmin
		v.ValidMax = vmax
	}

	if len(nv.Description) > 0 {
		desc, err := codec.Decode(nv.Description)
		if err != nil {
			return nil, err
		}
		v.Description = desc
	}

	return v, nil
}

// decodeData copies a native variable's buffer into host Data. A variable
// with zero declared axes unwraps to a bare scalar; otherwise the flat
// buffer is reshaped to the declared per-axis lengths.
func decodeData(codec *charset.Codec, nv *native.Variable) (product.Data, error) {
	if nv.NumDimensions == 0 {
		return decodeElement(codec, nv, 0)
	}

	n := int(nv.NumElements)
	shape := make([]int, nv.NumDimensions)
	for i := 0; i < nv.NumDimensions; i++ {
		shape[i] = int(nv.Dimension[i])
	}

	switch nv.DataType {
	case native.TypeInt8:
		vals := make([]int8, n)
		copy(vals, nv.Data.Int8s())
		return product.Int8Array(vals, shape...)
	case native.TypeInt16:
		vals := make([]int16, n)
		copy(vals, nv.Data.Int16s())
		return product.Int16Array(vals, shape...)
	case native.TypeInt32:
		vals := make([]int32, n)
		copy(vals, nv.Data.Int32s())
		return product.Int32Array(vals, shape...)
	case native.TypeFloat:
		vals := make([]float32, n)
		copy(vals, nv.Data.Float32s())
		return product.Float32Array(vals, shape...)
	case native.TypeDouble:
		vals := make([]float64, n)
		copy(vals, nv.Data.Float64s())
		return product.Float64Array(vals, shape...)
	case native.TypeString:
		vals := make([]string, n)
		for i, raw := range nv.Data.Strings {
			s, err := codec.Decode(raw)
			if err != nil {
				return product.Data{}, err
			}
			vals[i] = s
		}
		return product.StringArray(vals, shape...)
	default:
		return product.Data{}, errors.UnsupportedTypeCode(errors.PhaseDecode, int(nv.DataType))
	}
}

// decodeElement converts a single buffer element to a host scalar.
func decodeElement(codec *charset.Codec, nv *native.Variable, i int) (product.Data, error) {
	switch nv.DataType {
	case native.TypeInt8:
		return product.Int8(nv.Data.Int8s()[i]), nil
	case native.TypeInt16:
		return product.Int16(nv.Data.Int16s()[i]), nil
	case native.TypeInt32:
		return product.Int32(nv.Data.Int32s()[i]), nil
	case native.TypeFloat:
		return product.Float32(nv.Data.Float32s()[i]), nil
	case native.TypeDouble:
		return product.Float64(nv.Data.Float64s()[i]), nil
	case native.TypeString:
		s, err := codec.Decode(nv.Data.Strings[i])
		if err != nil {
			return product.Data{}, err
		}
		return product.String(s), nil
	default:
		return product.Data{}, errors.UnsupportedTypeCode(errors.PhaseDecode, int(nv.DataType))
	}
}

// decodeScalar converts a native scalar slot of the given type to host
// Data. Strings never appear in scalar slots.
func decodeScalar(t native.TypeCode, s native.Scalar) (product.Data, error) {
	switch t {
	case native.TypeInt8:
		return product.Int8(s.Int8()), nil
	case native.TypeInt16:
		return product.Int16(s.Int16()), nil
	case native.TypeInt32:
		return product.Int32(s.Int32()), nil
	case native.TypeFloat:
		return product.Float32(s.Float32()), nil
	case native.TypeDouble:
		return product.Float64(s.Float64()), nil
	default:
		return product.Data{}, errors.UnsupportedTypeCode(errors.PhaseDecode, int(t))
	}
}
