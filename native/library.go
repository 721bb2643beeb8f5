package native

// Variable is the native fixed-layout variable struct. Data holds
// NumElements values of DataType; the first NumDimensions entries of
// DimensionType and Dimension describe the axes. Unit and Description are
// nil when unset. ValidMin and ValidMax are always present for numeric
// types and meaningless for string variables.
type Variable struct {
	Name          []byte
	DataType      TypeCode
	NumDimensions int
	DimensionType [MaxDimensions]DimensionType
	Dimension     [MaxDimensions]int64
	NumElements   int64
	Data          Array
	Unit          []byte
	Description   []byte
	ValidMin      Scalar
	ValidMax      Scalar
}

// Product is the native fixed-layout product struct. SourceProduct and
// History are nil when unset. Variables keeps attachment order.
type Product struct {
	SourceProduct []byte
	History       []byte
	Variables     []*Variable
}

// Library is the contract with the native data-product engine. Every call
// is blocking and synchronous; results are owned by the caller only until
// the graph they belong to is deleted.
type Library interface {
	// Init performs process-wide setup. It must succeed before any other
	// call and is safe to call more than once.
	Init() error

	// Version returns the native library version string, encoded.
	Version() []byte

	// Import reads a product from a file, auto-detecting its format.
	// The returned graph is owned by the caller and must be released
	// with DeleteProduct.
	Import(path []byte) (*Product, error)

	// Ingest converts a non-native product file into a product, applying
	// the given actions and ingestion options. Both are opaque
	// semicolon-delimited strings interpreted by the engine.
	Ingest(path, actions, options []byte) (*Product, error)

	// Export writes a product to a file in the named format.
	Export(path, format []byte, p *Product) error

	// ExecuteActions applies an action list to an imported product.
	ExecuteActions(p *Product, actions []byte) error

	// IsEmpty reports whether the product has no variables, or only
	// variables without data.
	IsEmpty(p *Product) bool

	// NewProduct creates an empty product graph owned by the caller.
	NewProduct() (*Product, error)

	// NewVariable creates a variable sized for the given axes, with its
	// data buffer allocated and zeroed. len(dimTypes) and len(dimLengths)
	// must match and stay within MaxDimensions.
	NewVariable(name []byte, t TypeCode, dimTypes []DimensionType, dimLengths []int64) (*Variable, error)

	// AddVariable attaches v to p. On success the variable's lifetime is
	// tied to the product; it is released by DeleteProduct, not
	// DeleteVariable.
	AddVariable(p *Product, v *Variable) error

	// DeleteVariable releases a variable that is not attached to a product.
	DeleteVariable(v *Variable)

	// DeleteProduct releases a product and every variable attached to it.
	DeleteProduct(p *Product)

	SetUnit(v *Variable, unit []byte) error
	SetDescription(v *Variable, description []byte) error
	SetSourceProduct(p *Product, source []byte) error
	SetHistory(p *Product, history []byte) error

	// SetStringElement stores one encoded string element at the given flat
	// index of a string-typed variable.
	SetStringElement(v *Variable, index int64, data []byte) error
}
