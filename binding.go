package harp

import (
	"fmt"
	"sync"

	"github.com/bruno-rino/harp/charset"
	"github.com/bruno-rino/harp/errors"
	"github.com/bruno-rino/harp/native"
	"github.com/bruno-rino/harp/product"
	"github.com/bruno-rino/harp/transcoder"
)

// bindingVersion identifies this binding, independent of the engine
// version reported by the library underneath.
const bindingVersion = "1.0.0"

// Binding exposes the host-facing operations over one native library.
// The library is initialized once, on first use. Every native graph a
// call creates is released before the call returns, on success and on
// failure alike.
type Binding struct {
	lib      native.Library
	initOnce sync.Once
	initErr  error
}

// NewBinding wraps lib. Initialization is deferred to the first operation
// that needs it, so constructing a Binding never fails.
func NewBinding(lib native.Library) *Binding {
	return &Binding{lib: lib}
}

func (b *Binding) ensure() error {
	b.initOnce.Do(func() {
		b.initErr = b.lib.Init()
	})
	return b.initErr
}

// ImportProduct reads a product file, applies the optional action list,
// and converts the result to its host form. An empty actions string
// applies nothing. A product left without data is reported as a no-data
// error rather than returned empty.
func (b *Binding) ImportProduct(path, actions string) (*product.Product, error) {
	if err := b.ensure(); err != nil {
		return nil, err
	}
	rawPath, err := charset.EncodeString(path)
	if err != nil {
		return nil, err
	}
	np, err := b.lib.Import(rawPath)
	if err != nil {
		return nil, err
	}
	defer b.lib.DeleteProduct(np)

	if actions != "" {
		rawActions, err := charset.EncodeString(actions)
		if err != nil {
			return nil, err
		}
		if err := b.lib.ExecuteActions(np, rawActions); err != nil {
			return nil, err
		}
	}
	if b.lib.IsEmpty(np) {
		return nil, errors.NoData(errors.PhaseImport)
	}
	return transcoder.NewDecoder().DecodeProduct(np)
}

// IngestProduct converts a non-native product file into a host product.
// Actions and ingestion options are passed to the library verbatim; both
// may be empty.
func (b *Binding) IngestProduct(path, actions, options string) (*product.Product, error) {
	if err := b.ensure(); err != nil {
		return nil, err
	}
	rawPath, err := charset.EncodeString(path)
	if err != nil {
		return nil, err
	}
	rawActions, err := charset.EncodeString(actions)
	if err != nil {
		return nil, err
	}
	rawOptions, err := charset.EncodeString(options)
	if err != nil {
		return nil, err
	}
	np, err := b.lib.Ingest(rawPath, rawActions, rawOptions)
	if err != nil {
		return nil, err
	}
	defer b.lib.DeleteProduct(np)

	if b.lib.IsEmpty(np) {
		return nil, errors.NoData(errors.PhaseIngest)
	}
	return transcoder.NewDecoder().DecodeProduct(np)
}

// ExportProduct writes p to a file in the given format. A native graph is
// built for the call and released before returning. Exporting a product
// without data fails with a no-data error, before anything is written.
func (b *Binding) ExportProduct(p *product.Product, path string, format FileFormat) error {
	if p == nil {
		return errors.InvalidInput(errors.PhaseExport, "product must not be nil")
	}
	if err := b.ensure(); err != nil {
		return err
	}
	np, err := b.lib.NewProduct()
	if err != nil {
		return err
	}
	defer b.lib.DeleteProduct(np)

	if err := transcoder.NewEncoder(b.lib).EncodeProduct(p, np); err != nil {
		return err
	}
	if b.lib.IsEmpty(np) {
		return errors.NoData(errors.PhaseExport)
	}
	rawPath, err := charset.EncodeString(path)
	if err != nil {
		return err
	}
	return b.lib.Export(rawPath, []byte(format.String()), np)
}

// Version reports the binding version together with the version of the
// library underneath.
func (b *Binding) Version() string {
	v, err := charset.DecodeString(b.lib.Version())
	if err != nil || v == "" {
		return bindingVersion
	}
	return fmt.Sprintf("%s (library %s)", bindingVersion, v)
}
