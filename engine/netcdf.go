package engine

import (
	"fmt"
	"math"
	"os"
	"reflect"
	"strings"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/util"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/bruno-rino/harp/errors"
	"github.com/bruno-rino/harp/native"
)

const conventions = "HARP-1.0"

// readFile loads a product file into a graph. The graph is registered with
// the tracker and must be released with DeleteProduct.
func (e *Engine) readFile(path string) (*native.Product, error) {
	g, err := netcdf.Open(path)
	if err != nil {
		return nil, classifyOpenError(path, err)
	}
	defer g.Close()

	if err := checkConventions(path, g.Attributes()); err != nil {
		return nil, err
	}
	p := &native.Product{}
	if s, ok := stringAttr(g.Attributes(), "source_product"); ok {
		p.SourceProduct = []byte(s)
	}
	if s, ok := stringAttr(g.Attributes(), "history"); ok {
		p.History = []byte(s)
	}
	for _, name := range g.ListVariables() {
		v, err := readVariable(g, name)
		if err != nil {
			return nil, errors.TagVariable(err, name)
		}
		if err := attach(p, v); err != nil {
			return nil, errors.TagVariable(err, name)
		}
	}
	e.track.addProduct(p)
	Logger().Debug("imported product",
		zap.String("path", path), zap.Int("variables", len(p.Variables)))
	return p, nil
}

func classifyOpenError(path string, err error) error {
	if os.IsNotExist(err) {
		return newErrorf(ErrnoFileNotFound, "could not find %s", path)
	}
	if err == netcdf.ErrUnknown {
		return newErrorf(ErrnoInvalidFormat, "unsupported format for file %s", path)
	}
	if _, ok := err.(*os.PathError); ok {
		return newErrorf(ErrnoFileOpen, "could not open %s (%v)", path, err)
	}
	return newErrorf(ErrnoNetCDF, "%v", err)
}

// checkConventions verifies the file declares the product archive layout.
func checkConventions(path string, attrs api.AttributeMap) error {
	s, ok := stringAttr(attrs, "Conventions")
	if !ok || !strings.HasPrefix(s, "HARP-") {
		return newErrorf(ErrnoProduct, "file %s is not a HARP product", path)
	}
	return nil
}

func stringAttr(attrs api.AttributeMap, name string) (string, bool) {
	if attrs == nil {
		return "", false
	}
	v, ok := attrs.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func readVariable(g api.Group, name string) (*native.Variable, error) {
	fv, err := g.GetVariable(name)
	if err != nil {
		return nil, newErrorf(ErrnoNetCDF, "%v", err)
	}
	t, shape, err := inspectValues(fv.Values)
	if err != nil {
		return nil, err
	}
	v, err := newVariable([]byte(name), t, dimTypesFor(fv.Dimensions, len(shape)), shape)
	if err != nil {
		return nil, err
	}
	if err := fillData(v, fv.Values); err != nil {
		return nil, err
	}
	readAttributes(v, fv.Attributes)
	return v, nil
}

// inspectValues derives the element type and shape from the nested value
// representation the reader produces. The length axis of character data has
// no native counterpart, so a string counts as one element.
func inspectValues(values any) (native.TypeCode, []int64, error) {
	var shape []int64
	rv := reflect.ValueOf(values)
	for rv.Kind() == reflect.Slice {
		shape = append(shape, int64(rv.Len()))
		if rv.Len() == 0 {
			t := rv.Type().Elem()
			for t.Kind() == reflect.Slice {
				shape = append(shape, 0)
				t = t.Elem()
			}
			code, err := typeCodeOf(t)
			return code, shape, err
		}
		rv = rv.Index(0)
	}
	code, err := typeCodeOf(rv.Type())
	return code, shape, err
}

func typeCodeOf(t reflect.Type) (native.TypeCode, error) {
	switch t.Kind() {
	case reflect.Int8:
		return native.TypeInt8, nil
	case reflect.Int16:
		return native.TypeInt16, nil
	case reflect.Int32:
		return native.TypeInt32, nil
	case reflect.Float32:
		return native.TypeFloat, nil
	case reflect.Float64:
		return native.TypeDouble, nil
	case reflect.String:
		return native.TypeString, nil
	}
	return 0, newErrorf(ErrnoProduct, "unsupported storage type %s", t)
}

// dimTypesFor maps file dimension names onto axis types. The trailing
// length dimension of character data is dropped and unknown names map to
// the independent axis.
func dimTypesFor(names []string, rank int) []native.DimensionType {
	types := make([]native.DimensionType, rank)
	for i := range types {
		types[i] = native.DimensionIndependent
		if i < len(names) {
			if dt, ok := native.DimensionTypeOf(names[i]); ok {
				types[i] = dt
			}
		}
	}
	return types
}

// fillData copies the nested value representation into the variable's flat
// buffer in row major order.
func fillData(v *native.Variable, values any) error {
	if v.NumElements == 0 {
		return nil
	}
	rv := reflect.ValueOf(values)
	switch v.DataType {
	case native.TypeInt8:
		return fillNumeric(rv, v.Data.Int8s())
	case native.TypeInt16:
		return fillNumeric(rv, v.Data.Int16s())
	case native.TypeInt32:
		return fillNumeric(rv, v.Data.Int32s())
	case native.TypeFloat:
		return fillNumeric(rv, v.Data.Float32s())
	case native.TypeDouble:
		return fillNumeric(rv, v.Data.Float64s())
	case native.TypeString:
		return fillStrings(rv, v.Data.Strings)
	}
	return newErrorf(ErrnoInvalidType, "invalid data type (%d)", int(v.DataType))
}

func fillNumeric[T int8 | int16 | int32 | float32 | float64](rv reflect.Value, dst []T) error {
	i := 0
	var walk func(rv reflect.Value) error
	walk = func(rv reflect.Value) error {
		if rv.Kind() == reflect.Slice {
			for j := 0; j < rv.Len(); j++ {
				if err := walk(rv.Index(j)); err != nil {
					return err
				}
			}
			return nil
		}
		x, ok := rv.Interface().(T)
		if !ok || i >= len(dst) {
			return newErrorf(ErrnoProduct, "data does not match its declared shape")
		}
		dst[i] = x
		i++
		return nil
	}
	if err := walk(rv); err != nil {
		return err
	}
	if i != len(dst) {
		return newErrorf(ErrnoProduct, "data does not match its declared shape")
	}
	return nil
}

func fillStrings(rv reflect.Value, dst [][]byte) error {
	i := 0
	var walk func(rv reflect.Value) error
	walk = func(rv reflect.Value) error {
		if rv.Kind() == reflect.Slice {
			for j := 0; j < rv.Len(); j++ {
				if err := walk(rv.Index(j)); err != nil {
					return err
				}
			}
			return nil
		}
		s, ok := rv.Interface().(string)
		if !ok || i >= len(dst) {
			return newErrorf(ErrnoProduct, "data does not match its declared shape")
		}
		dst[i] = trimPadding(s)
		i++
		return nil
	}
	if err := walk(rv); err != nil {
		return err
	}
	if i != len(dst) {
		return newErrorf(ErrnoProduct, "data does not match its declared shape")
	}
	return nil
}

// trimPadding drops the NUL fill the character layout pads short strings
// with.
func trimPadding(s string) []byte {
	end := len(s)
	for end > 0 && s[end-1] == 0 {
		end--
	}
	return []byte(s[:end])
}

// readAttributes copies the recognized variable attributes. A range bound
// is taken only when the file stores it in the variable's own type.
func readAttributes(v *native.Variable, attrs api.AttributeMap) {
	if attrs == nil {
		return
	}
	if s, ok := stringAttr(attrs, "units"); ok && s != "" {
		v.Unit = []byte(s)
	}
	if s, ok := stringAttr(attrs, "description"); ok && s != "" {
		v.Description = []byte(s)
	}
	if !v.DataType.IsNumeric() {
		return
	}
	if val, ok := attrs.Get("valid_min"); ok {
		if !setScalar(&v.ValidMin, v.DataType, val) {
			Logger().Debug("dropping valid_min with mismatched type",
				zap.String("variable", string(v.Name)))
		}
	}
	if val, ok := attrs.Get("valid_max"); ok {
		if !setScalar(&v.ValidMax, v.DataType, val) {
			Logger().Debug("dropping valid_max with mismatched type",
				zap.String("variable", string(v.Name)))
		}
	}
}

func setScalar(s *native.Scalar, t native.TypeCode, val any) bool {
	switch t {
	case native.TypeInt8:
		if x, ok := val.(int8); ok {
			s.SetInt8(x)
			return true
		}
	case native.TypeInt16:
		if x, ok := val.(int16); ok {
			s.SetInt16(x)
			return true
		}
	case native.TypeInt32:
		if x, ok := val.(int32); ok {
			s.SetInt32(x)
			return true
		}
	case native.TypeFloat:
		if x, ok := val.(float32); ok {
			s.SetFloat32(x)
			return true
		}
	case native.TypeDouble:
		if x, ok := val.(float64); ok {
			s.SetFloat64(x)
			return true
		}
	}
	return false
}

// writeFile stores a product graph as a netCDF classic file.
func (e *Engine) writeFile(path string, p *native.Product) error {
	for _, v := range p.Variables {
		if v.NumElements == 0 {
			return errors.TagVariable(
				newErrorf(ErrnoNetCDF, "cannot write variable with zero elements"), string(v.Name))
		}
	}
	w, err := cdf.OpenWriter(path)
	if err != nil {
		return newErrorf(ErrnoFileOpen, "could not create %s (%v)", path, err)
	}
	attrs, err := globalAttrs(p)
	if err == nil {
		err = w.AddAttributes(attrs)
	}
	if err != nil {
		return multierr.Append(newErrorf(ErrnoNetCDF, "%v", err), discardWriter(w, path))
	}
	for _, v := range p.Variables {
		fv, err := exportVariable(v)
		if err != nil {
			return multierr.Append(errors.TagVariable(err, string(v.Name)), discardWriter(w, path))
		}
		if err := w.AddVar(string(v.Name), fv); err != nil {
			return multierr.Append(
				errors.TagVariable(newErrorf(ErrnoNetCDF, "%v", err), string(v.Name)),
				discardWriter(w, path))
		}
	}
	if err := w.Close(); err != nil {
		return newErrorf(ErrnoFileWrite, "error writing %s (%v)", path, err)
	}
	Logger().Debug("exported product",
		zap.String("path", path), zap.Int("variables", len(p.Variables)))
	return nil
}

// discardWriter closes a writer whose output is already known to be bad.
func discardWriter(w api.Writer, path string) error {
	if err := w.Close(); err != nil {
		return newErrorf(ErrnoFileClose, "could not close %s (%v)", path, err)
	}
	return nil
}

func globalAttrs(p *native.Product) (api.AttributeMap, error) {
	keys := []string{"Conventions"}
	values := map[string]any{"Conventions": conventions}
	if len(p.SourceProduct) > 0 {
		keys = append(keys, "source_product")
		values["source_product"] = string(p.SourceProduct)
	}
	if len(p.History) > 0 {
		keys = append(keys, "history")
		values["history"] = string(p.History)
	}
	return util.NewOrderedMap(keys, values)
}

// exportVariable shapes one variable for the writer: nested values, file
// dimension names and the attribute list.
func exportVariable(v *native.Variable) (api.Variable, error) {
	values, err := exportValues(v)
	if err != nil {
		return api.Variable{}, err
	}
	attrs, err := exportAttrs(v)
	if err != nil {
		return api.Variable{}, newErrorf(ErrnoNetCDF, "%v", err)
	}
	return api.Variable{
		Values:     values,
		Dimensions: exportDims(v),
		Attributes: attrs,
	}, nil
}

// exportDims names the file dimensions. Shared axes use their canonical
// names, independent axes encode their length so equal lengths share one
// file dimension, and character data gets a trailing length dimension named
// after the variable.
func exportDims(v *native.Variable) []string {
	names := make([]string, 0, v.NumDimensions+1)
	for i := 0; i < v.NumDimensions; i++ {
		if name, ok := native.DimensionName(v.DimensionType[i]); ok && name != "" {
			names = append(names, name)
		} else {
			names = append(names, fmt.Sprintf("independent_%d", v.Dimension[i]))
		}
	}
	if v.DataType == native.TypeString {
		names = append(names, "string_"+string(v.Name))
	}
	if len(names) == 0 {
		return nil
	}
	return names
}

func exportValues(v *native.Variable) (any, error) {
	shape := v.Dimension[:v.NumDimensions]
	switch v.DataType {
	case native.TypeInt8:
		return nestNumeric(v.Data.Int8s(), shape), nil
	case native.TypeInt16:
		return nestNumeric(v.Data.Int16s(), shape), nil
	case native.TypeInt32:
		return nestNumeric(v.Data.Int32s(), shape), nil
	case native.TypeFloat:
		return nestNumeric(v.Data.Float32s(), shape), nil
	case native.TypeDouble:
		return nestNumeric(v.Data.Float64s(), shape), nil
	case native.TypeString:
		return nestStrings(v), nil
	}
	return nil, newErrorf(ErrnoInvalidType, "invalid data type (%d)", int(v.DataType))
}

// nestNumeric rebuilds the nested representation the writer expects from a
// flat row major buffer. Scalars stay scalar.
func nestNumeric[T int8 | int16 | int32 | float32 | float64](flat []T, shape []int64) any {
	if len(shape) == 0 {
		return flat[0]
	}
	if len(shape) == 1 {
		return flat
	}
	return nestValue(reflect.ValueOf(flat), shape).Interface()
}

// nestStrings converts the per element byte strings into the nested string
// representation. An all-empty array substitutes one NUL so the character
// dimension keeps a nonzero length; import trims the padding back off.
func nestStrings(v *native.Variable) any {
	elems := make([]string, v.NumElements)
	maxLen := 0
	for i, b := range v.Data.Strings {
		elems[i] = string(b)
		if len(b) > maxLen {
			maxLen = len(b)
		}
	}
	if maxLen == 0 && len(elems) > 0 {
		elems[0] = "\x00"
	}
	if v.NumDimensions == 0 {
		return elems[0]
	}
	if v.NumDimensions == 1 {
		return elems
	}
	return nestValue(reflect.ValueOf(elems), v.Dimension[:v.NumDimensions]).Interface()
}

func nestValue(flat reflect.Value, shape []int64) reflect.Value {
	if len(shape) == 1 {
		return flat
	}
	inner := int64(1)
	for _, n := range shape[1:] {
		inner *= n
	}
	out := reflect.MakeSlice(reflect.SliceOf(nestedType(flat.Type().Elem(), len(shape)-1)), int(shape[0]), int(shape[0]))
	for i := int64(0); i < shape[0]; i++ {
		out.Index(int(i)).Set(nestValue(flat.Slice(int(i*inner), int((i+1)*inner)), shape[1:]))
	}
	return out
}

func nestedType(elem reflect.Type, rank int) reflect.Type {
	t := elem
	for ; rank > 0; rank-- {
		t = reflect.SliceOf(t)
	}
	return t
}

// exportAttrs builds the attribute list. Range bounds still at their type
// defaults are not written; a fresh variable gets the same defaults back on
// import.
func exportAttrs(v *native.Variable) (api.AttributeMap, error) {
	var keys []string
	values := make(map[string]any)
	if len(v.Unit) > 0 {
		keys = append(keys, "units")
		values["units"] = string(v.Unit)
	}
	if len(v.Description) > 0 {
		keys = append(keys, "description")
		values["description"] = string(v.Description)
	}
	if v.DataType.IsNumeric() {
		if val, ok := rangeValue(v.DataType, v.ValidMin, rangeMin); ok {
			keys = append(keys, "valid_min")
			values["valid_min"] = val
		}
		if val, ok := rangeValue(v.DataType, v.ValidMax, rangeMax); ok {
			keys = append(keys, "valid_max")
			values["valid_max"] = val
		}
	}
	return util.NewOrderedMap(keys, values)
}

type rangeBound int

const (
	rangeMin rangeBound = iota
	rangeMax
)

// rangeValue extracts a range bound as its Go value, reporting false when
// the bound still holds the widest representable value.
func rangeValue(t native.TypeCode, s native.Scalar, b rangeBound) (any, bool) {
	switch t {
	case native.TypeInt8:
		x := s.Int8()
		if b == rangeMin && x == math.MinInt8 || b == rangeMax && x == math.MaxInt8 {
			return nil, false
		}
		return x, true
	case native.TypeInt16:
		x := s.Int16()
		if b == rangeMin && x == math.MinInt16 || b == rangeMax && x == math.MaxInt16 {
			return nil, false
		}
		return x, true
	case native.TypeInt32:
		x := s.Int32()
		if b == rangeMin && x == math.MinInt32 || b == rangeMax && x == math.MaxInt32 {
			return nil, false
		}
		return x, true
	case native.TypeFloat:
		x := s.Float32()
		if b == rangeMin && math.IsInf(float64(x), -1) || b == rangeMax && math.IsInf(float64(x), 1) {
			return nil, false
		}
		return x, true
	case native.TypeDouble:
		x := s.Float64()
		if b == rangeMin && math.IsInf(x, -1) || b == rangeMax && math.IsInf(x, 1) {
			return nil, false
		}
		return x, true
	}
	return nil, false
}
