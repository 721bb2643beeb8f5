// Package product defines the host-side data model: typed values,
// variables, and ordered products.
//
// # Data
//
// Data is a closed tagged union, either a scalar or an n-dimensional
// array of one of the six supported element types:
//
//	Element type    Canonical name    Go element
//	──────────────────────────────────────────────
//	int8            byte              int8
//	int16           int               int16
//	int32           long              int32
//	float32         float             float32
//	float64         double            float64
//	string          string            string
//
// Exact constructors (Int8, Float64, StringArray, ...) fix the element
// type. The narrowing constructors pick it from the value:
//
//	d, err := product.Int(300)    // int16, the narrowest lossless type
//	d := product.Number(1.5)      // float32, exact under float32
//	d := product.Number(0.1)      // float64, inexact under float32
//
// Arrays are flat slices in row-major order plus a shape:
//
//	d, err := product.Float64Array(values, 3, 4)  // shape {3, 4}
//
// The zero Data is invalid and stands for an absent value, which is how
// optional attributes mark absence.
//
// # Variables and Products
//
// A Variable carries Data, one dimension name per axis, and the optional
// unit, valid_min, valid_max and description attributes. A Product is an
// ordered name-to-Variable mapping plus the two reserved product
// attributes, source_product and history. Variable names starting with an
// underscore, or colliding with a reserved attribute, are rejected.
//
//	p := product.NewProduct()
//	err := p.Set("altitude", product.NewVariable(d, "time", "vertical"))
//	for _, name := range p.Names() { ... }  // insertion order
//
// # Formatting
//
// Variable.String and Product.String render the same layouts the
// command line tools print:
//
//	double altitude {time=3, vertical=4} [m]
//
// FormatDimensions renders "{<invalid>}" when a dimension list cannot be
// reconciled with the data's actual shape, rather than failing.
package product
