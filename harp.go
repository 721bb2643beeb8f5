package harp

import (
	"sync"

	"github.com/bruno-rino/harp/charset"
	"github.com/bruno-rino/harp/engine"
	"github.com/bruno-rino/harp/product"
)

// Product, Variable and Data are the host-facing data types, defined in
// the product package and aliased here so the package-level surface is
// usable on its own.
type (
	Product  = product.Product
	Variable = product.Variable
	Data     = product.Data
)

// NewProduct returns an empty host product.
func NewProduct() *Product {
	return product.NewProduct()
}

// NewVariable builds a host variable over data, with one dimension name
// per axis.
func NewVariable(data Data, dimensions ...string) *Variable {
	return product.NewVariable(data, dimensions...)
}

var (
	defaultBinding *Binding
	defaultOnce    sync.Once
)

// DefaultBinding returns the process-wide binding over the in-process
// engine, creating it on first use. The package-level operations all go
// through it.
func DefaultBinding() *Binding {
	defaultOnce.Do(func() {
		defaultBinding = NewBinding(engine.New())
	})
	return defaultBinding
}

// ImportProduct reads a product file through the default binding. See
// Binding.ImportProduct.
func ImportProduct(path, actions string) (*Product, error) {
	return DefaultBinding().ImportProduct(path, actions)
}

// IngestProduct converts a non-native product file through the default
// binding. See Binding.IngestProduct.
func IngestProduct(path, actions, options string) (*Product, error) {
	return DefaultBinding().IngestProduct(path, actions, options)
}

// ExportProduct writes a product file through the default binding. See
// Binding.ExportProduct.
func ExportProduct(p *Product, path string, format FileFormat) error {
	return DefaultBinding().ExportProduct(p, path, format)
}

// Version reports the binding and engine versions of the default binding.
func Version() string {
	return DefaultBinding().Version()
}

// Encoding returns the name of the process-wide string encoding.
func Encoding() string {
	return charset.DefaultName()
}

// SetEncoding switches the process-wide string encoding. It affects
// conversions that start after the call; conversions already under way
// keep the codec they resolved.
func SetEncoding(name string) error {
	return charset.SetDefault(name)
}
