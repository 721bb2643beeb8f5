// Package errors provides structured error types for the harp binding.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: attribute path, host kind
// and native type names, the offending variable, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("valid_min").
//		HostKind("float64").
//		NativeType("long").
//		Detail("value cannot be cast without loss").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnsupportedDimension(errors.PhaseDecode, "altitude")
//	err := errors.DimensionsMissing(errors.PhaseExport)
//
// Failures reported by the native library itself are NativeError values
// carrying the library's error code and message verbatim.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
