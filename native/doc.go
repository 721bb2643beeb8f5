// Package native defines the data model shared with the native library: the
// element type codes, dimension type tags, the fixed-layout variable and
// product structs, and the Library contract through which the binding talks
// to an implementation.
//
// The tables in this package are pure lookups. They report unsupported
// inputs through ok-booleans; callers attach phase context when turning a
// miss into an error.
//
// All strings cross the Library contract as encoded byte slices. Encoding
// and decoding happen on the host side of the boundary, never inside an
// implementation.
package native
