// Package transcoder moves products between the host representation in
// package product and the native representation in package native.
//
// The two directions are handled by two types. A Decoder turns a native
// product, as returned by a library import or ingest, into a host product.
// An Encoder writes a host product into a native product ahead of export,
// allocating native variables through the library so the buffers live in
// native-owned storage.
//
// # Ownership
//
// Decoding copies. The host product returned by DecodeProduct owns its
// element storage outright; the native product can be deleted immediately
// afterwards without invalidating anything the decoder produced.
//
// Encoding writes into buffers the library allocated. The host product is
// never mutated; it can be encoded again, into another native product or
// after changing the process encoding, with no residue from earlier runs.
//
// # Text
//
// Every variable name, unit, description, attribute and string element
// crosses the boundary through a charset.Codec. NewDecoder and NewEncoder
// resolve the process default codec once per call, so a SetDefault between
// two conversions affects the later one only. The WithCodec constructors
// pin a specific codec instead.
//
// # Export protocol
//
// For each variable, in product insertion order, the encoder performs:
//
//	NewVariable     allocate name, type, dimensions and buffer
//	AddVariable     attach to the product (freed again on failure)
//	data transfer   flat element copy, string elements one at a time
//	valid_min       scalar attribute, cast to the element type
//	valid_max       scalar attribute, cast to the element type
//	unit            only when set
//	description     only when set
//
// A failure in any step aborts the whole export and is tagged with the
// name of the variable being transferred.
//
// # Casting
//
// Element transfer widens but never narrows. The allowed conversions are
// exactly those of native.CanCast; an attribute whose type cannot be cast
// to the variable's element type is rejected rather than truncated.
package transcoder
