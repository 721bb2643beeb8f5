// Package harp reads, converts and writes Earth observation data products
// through a native product library.
//
// Products cross the boundary as plain Go values: a Product is an ordered
// collection of named Variables, each carrying typed scalar or array data,
// optional unit, description and valid-range attributes, and a list of
// dimension names. The binding moves whole products in and out of the
// native library in a single call; nothing is lazy and nothing keeps
// native state alive after a call returns.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	harp/            Root package with the host-facing operations
//	├── product/     Host data model: Data union, Variable, Product
//	├── native/      Native contract: type codes, dimensions, Library
//	├── charset/     String codec and the process-wide default encoding
//	├── transcoder/  Decoder (native to host) and Encoder (host to native)
//	├── engine/      In-process reference library backed by netCDF files
//	├── errors/      Structured error types shared by every layer
//	├── cmd/harpdump/    Inspection CLI with an interactive browser
//	└── cmd/harpconvert/ Conversion CLI
//
// # Quick Start
//
// Import a product, look at a variable, write it back out:
//
//	p, err := harp.ImportProduct("s5p_o3.nc", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if o3, ok := p.Get("O3_column_number_density"); ok {
//	    fmt.Println(o3.Unit, o3.Data.Shape())
//	}
//
//	if err := harp.ExportProduct(p, "out.nc", harp.FormatNetCDF); err != nil {
//	    log.Fatal(err)
//	}
//
// The package-level functions operate through a process-wide binding over
// the in-process engine. To run against a different library implementation,
// construct a Binding directly:
//
//	b := harp.NewBinding(myLibrary)
//	p, err := b.IngestProduct("input.h5", "", "detector=nominal")
//
// # String Encoding
//
// Strings cross the native boundary as encoded bytes. The process-wide
// encoding defaults to ASCII and can be switched with SetEncoding; bytes
// that do not decode are carried through as private-use code points so a
// decode/encode round trip always reproduces the original bytes.
//
// # Ownership and Concurrency
//
// Calls are synchronous and blocking. Each operation builds its native
// graph, uses it, and releases it before returning on every path, so no
// call leaks native state. A Binding may be shared between goroutines as
// long as the library underneath allows it; the in-process engine does.
package harp
