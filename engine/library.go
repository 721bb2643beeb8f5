package engine

import (
	"bytes"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/bruno-rino/harp/errors"
	"github.com/bruno-rino/harp/native"
)

// LibraryVersion is the version string reported by Version.
const LibraryVersion = "0.6.0"

// Engine implements the native library contract in process. The zero value
// is not usable; call New. Graph structs handed out by the engine are owned
// by the caller and must not be shared across goroutines while mutated.
type Engine struct {
	mu          sync.RWMutex
	initialized bool
	track       *tracker
}

// New returns an engine that still needs Init.
func New() *Engine {
	return &Engine{track: newTracker()}
}

// Init marks the engine ready. Calling it again is a no-op.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		e.initialized = true
		Logger().Debug("engine initialized", zap.String("version", LibraryVersion))
	}
	return nil
}

func (e *Engine) ready() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.initialized {
		return errors.NotInitialized("engine")
	}
	return nil
}

// Version reports the engine version. It works before Init.
func (e *Engine) Version() []byte {
	return []byte(LibraryVersion)
}

// Live reports how many products and detached variables are held by callers.
// Both counts return to zero when every graph has been deleted.
func (e *Engine) Live() (products, variables int) {
	return e.track.liveProducts(), e.track.liveVariables()
}

// Import reads a product file, auto-detecting the storage format. The
// returned graph must be released with DeleteProduct.
func (e *Engine) Import(path []byte) (*native.Product, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.readFile(string(path))
}

// Ingest converts a product file into a product graph. The engine carries
// no ingestion modules, so only files already in a supported product format
// can be ingested: options are validated and then ignored, and a non-empty
// action list is rejected.
func (e *Engine) Ingest(path, actions, options []byte) (*native.Product, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	opts, err := ParseOptions(string(options))
	if err != nil {
		return nil, err
	}
	if opts.Len() > 0 {
		Logger().Debug("ignoring ingestion options", zap.String("options", opts.String()))
	}
	if err := checkActions(actions); err != nil {
		return nil, err
	}
	return e.readFile(string(path))
}

// Export writes a product to a file. The empty format selects netCDF.
func (e *Engine) Export(path, format []byte, p *native.Product) error {
	if err := e.ready(); err != nil {
		return err
	}
	if p == nil {
		return newErrorf(ErrnoInvalidArgument, "product argument is empty")
	}
	switch f := string(format); f {
	case "", "netcdf":
		return e.writeFile(string(path), p)
	case "hdf4":
		return newError(ErrnoNoHDF4Support)
	case "hdf5":
		return newError(ErrnoNoHDF5Support)
	default:
		return newErrorf(ErrnoInvalidArgument, "invalid file format %q", f)
	}
}

// ExecuteActions applies an action list to a product. Only the empty list
// is supported.
func (e *Engine) ExecuteActions(p *native.Product, actions []byte) error {
	if err := e.ready(); err != nil {
		return err
	}
	if p == nil {
		return newErrorf(ErrnoInvalidArgument, "product argument is empty")
	}
	return checkActions(actions)
}

func checkActions(actions []byte) error {
	if len(bytes.TrimSpace(actions)) == 0 {
		return nil
	}
	return newErrorf(ErrnoScript, "product operations are not supported")
}

// IsEmpty reports whether the product has no variables or only variables
// without data.
func (e *Engine) IsEmpty(p *native.Product) bool {
	if p == nil {
		return true
	}
	for _, v := range p.Variables {
		if v != nil && v.NumElements > 0 {
			return false
		}
	}
	return true
}

// NewProduct creates an empty product graph.
func (e *Engine) NewProduct() (*native.Product, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	p := &native.Product{}
	e.track.addProduct(p)
	return p, nil
}

// NewVariable creates a detached variable with a zeroed data buffer and the
// widest valid range its data type can express.
func (e *Engine) NewVariable(name []byte, t native.TypeCode, dimTypes []native.DimensionType, dimLengths []int64) (*native.Variable, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	v, err := newVariable(name, t, dimTypes, dimLengths)
	if err != nil {
		return nil, err
	}
	e.track.addVariable(v)
	return v, nil
}

func newVariable(name []byte, t native.TypeCode, dimTypes []native.DimensionType, dimLengths []int64) (*native.Variable, error) {
	if !validIdentifier(name) {
		return nil, newErrorf(ErrnoInvalidName, "variable name %q is not a valid identifier", name)
	}
	if !t.Valid() {
		return nil, newErrorf(ErrnoInvalidType, "invalid data type (%d)", int(t))
	}
	if len(dimTypes) != len(dimLengths) {
		return nil, newErrorf(ErrnoInvalidArgument,
			"number of dimension types (%d) does not match number of dimension lengths (%d)",
			len(dimTypes), len(dimLengths))
	}
	if len(dimTypes) > native.MaxDimensions {
		return nil, newErrorf(ErrnoInvalidArgument, "invalid number of dimensions (%d)", len(dimTypes))
	}
	n := int64(1)
	for i, d := range dimTypes {
		if !d.Valid() {
			return nil, newErrorf(ErrnoInvalidArgument, "invalid dimension type (%d)", int(d))
		}
		if dimLengths[i] < 0 {
			return nil, newErrorf(ErrnoInvalidArgument, "invalid dimension length (%d)", dimLengths[i])
		}
		n *= dimLengths[i]
	}
	v := &native.Variable{
		Name:          append([]byte(nil), name...),
		DataType:      t,
		NumDimensions: len(dimTypes),
		NumElements:   n,
		Data:          native.NewArray(t, n),
	}
	copy(v.DimensionType[:], dimTypes)
	copy(v.Dimension[:], dimLengths)
	initValidRange(v)
	return v, nil
}

// initValidRange seeds valid_min and valid_max with the widest range the
// data type can hold, the range a fresh native variable carries.
func initValidRange(v *native.Variable) {
	switch v.DataType {
	case native.TypeInt8:
		v.ValidMin.SetInt8(math.MinInt8)
		v.ValidMax.SetInt8(math.MaxInt8)
	case native.TypeInt16:
		v.ValidMin.SetInt16(math.MinInt16)
		v.ValidMax.SetInt16(math.MaxInt16)
	case native.TypeInt32:
		v.ValidMin.SetInt32(math.MinInt32)
		v.ValidMax.SetInt32(math.MaxInt32)
	case native.TypeFloat:
		v.ValidMin.SetFloat32(float32(math.Inf(-1)))
		v.ValidMax.SetFloat32(float32(math.Inf(1)))
	case native.TypeDouble:
		v.ValidMin.SetFloat64(math.Inf(-1))
		v.ValidMax.SetFloat64(math.Inf(1))
	}
}

func validIdentifier(name []byte) bool {
	if len(name) == 0 || !isAlpha(name[0]) {
		return false
	}
	for _, b := range name[1:] {
		if b != '_' && !isAlpha(b) && !isDigit(b) {
			return false
		}
	}
	return true
}

// AddVariable attaches v to p. The product takes ownership on success; the
// variable is then released by DeleteProduct.
func (e *Engine) AddVariable(p *native.Product, v *native.Variable) error {
	if err := e.ready(); err != nil {
		return err
	}
	if p == nil || v == nil {
		return newErrorf(ErrnoInvalidArgument, "product or variable argument is empty")
	}
	if err := attach(p, v); err != nil {
		return err
	}
	e.track.removeVariable(v)
	return nil
}

func attach(p *native.Product, v *native.Variable) error {
	name := string(v.Name)
	for _, have := range p.Variables {
		if string(have.Name) == name {
			return newErrorf(ErrnoInvalidArgument, "product already contains a variable named %q", name)
		}
	}
	if err := checkDimensions(p, v); err != nil {
		return err
	}
	p.Variables = append(p.Variables, v)
	return nil
}

// checkDimensions verifies that v agrees with the product about the length
// of every shared axis. Independent axes are exempt.
func checkDimensions(p *native.Product, v *native.Variable) error {
	for i := 0; i < v.NumDimensions; i++ {
		dt := v.DimensionType[i]
		if dt == native.DimensionIndependent {
			continue
		}
		for j := i + 1; j < v.NumDimensions; j++ {
			if v.DimensionType[j] == dt && v.Dimension[j] != v.Dimension[i] {
				return newErrorf(ErrnoInvalidArgument,
					"lengths %d and %d of repeated dimension of type %q do not match",
					v.Dimension[i], v.Dimension[j], dt)
			}
		}
		for _, have := range p.Variables {
			for j := 0; j < have.NumDimensions; j++ {
				if have.DimensionType[j] != dt {
					continue
				}
				if have.Dimension[j] != v.Dimension[i] {
					return newErrorf(ErrnoInvalidArgument,
						"length %d of dimension of type %q does not match length %d used by the product",
						v.Dimension[i], dt, have.Dimension[j])
				}
			}
		}
	}
	return nil
}

// DeleteVariable releases a variable that was never attached to a product.
func (e *Engine) DeleteVariable(v *native.Variable) {
	if v == nil {
		return
	}
	if !e.track.removeVariable(v) {
		Logger().Warn("delete of unknown variable", zap.String("name", string(v.Name)))
	}
}

// DeleteProduct releases a product and every variable attached to it.
func (e *Engine) DeleteProduct(p *native.Product) {
	if p == nil {
		return
	}
	if !e.track.removeProduct(p) {
		Logger().Warn("delete of unknown product")
	}
}

// SetUnit stores a copy of unit on the variable. An empty unit clears it.
func (e *Engine) SetUnit(v *native.Variable, unit []byte) error {
	if err := e.ready(); err != nil {
		return err
	}
	if v == nil {
		return newErrorf(ErrnoInvalidArgument, "variable argument is empty")
	}
	v.Unit = copyBytes(unit)
	return nil
}

// SetDescription stores a copy of description on the variable. An empty
// description clears it.
func (e *Engine) SetDescription(v *native.Variable, description []byte) error {
	if err := e.ready(); err != nil {
		return err
	}
	if v == nil {
		return newErrorf(ErrnoInvalidArgument, "variable argument is empty")
	}
	v.Description = copyBytes(description)
	return nil
}

// SetSourceProduct stores a copy of source on the product.
func (e *Engine) SetSourceProduct(p *native.Product, source []byte) error {
	if err := e.ready(); err != nil {
		return err
	}
	if p == nil {
		return newErrorf(ErrnoInvalidArgument, "product argument is empty")
	}
	p.SourceProduct = copyBytes(source)
	return nil
}

// SetHistory stores a copy of history on the product.
func (e *Engine) SetHistory(p *native.Product, history []byte) error {
	if err := e.ready(); err != nil {
		return err
	}
	if p == nil {
		return newErrorf(ErrnoInvalidArgument, "product argument is empty")
	}
	p.History = copyBytes(history)
	return nil
}

// SetStringElement stores a copy of data as the string element at the given
// flat index.
func (e *Engine) SetStringElement(v *native.Variable, index int64, data []byte) error {
	if err := e.ready(); err != nil {
		return err
	}
	if v == nil {
		return newErrorf(ErrnoInvalidArgument, "variable argument is empty")
	}
	if v.DataType != native.TypeString {
		return newErrorf(ErrnoInvalidType, "variable %q does not have storage type string", v.Name)
	}
	if index < 0 || index >= v.NumElements {
		return newErrorf(ErrnoInvalidIndex, "data element index (%d) is not in the range [0,%d)", index, v.NumElements)
	}
	v.Data.Strings[index] = append([]byte(nil), data...)
	return nil
}

func copyBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}
