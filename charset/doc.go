// Package charset converts between host strings and the encoded byte
// strings that cross the native library boundary.
//
// Conversions preserve bytes that are invalid under the selected encoding:
// an undecodable byte b becomes the private code point U+F700+b on decode,
// and that range maps back to the original bytes on encode, so a
// decode/encode round trip reproduces the input exactly. The escape
// strategy covers ASCII, UTF-8, and every single-byte character map; other
// encodings fall back to strict conversion that fails on unrepresentable
// input.
//
// A process-wide default encoding, initially "ascii", is used by every
// conversion that does not name a codec explicitly. The default is read at
// call time; changing it never affects completed conversions.
package charset
