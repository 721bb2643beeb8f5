package charset

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/bruno-rino/harp/errors"
)

// escapeBase anchors the private code-point range used to carry
// undecodable bytes through a decode/encode round trip. Byte b maps to
// rune escapeBase+b.
const escapeBase rune = 0xF700

type codecKind uint8

const (
	kindASCII codecKind = iota
	kindUTF8
	kindCharmap
	kindStrict
)

// Codec converts between host strings and encoded byte strings under one
// named encoding.
type Codec struct {
	name string
	kind codecKind
	cm   *charmap.Charmap
	enc  encoding.Encoding
}

// Name returns the encoding name the codec was looked up with.
func (c *Codec) Name() string {
	return c.name
}

// aliases maps normalized encoding names to the IANA name to query.
// Covers the spellings the original binding's users relied on.
var aliases = map[string]string{
	"latin":        "ISO-8859-1",
	"latin1":       "ISO-8859-1",
	"latin_1":      "ISO-8859-1",
	"l1":           "ISO-8859-1",
	"iso8859_1":    "ISO-8859-1",
	"iso_8859_1":   "ISO-8859-1",
	"cp819":        "ISO-8859-1",
	"8859":         "ISO-8859-1",
	"cp1252":       "windows-1252",
	"windows_1252": "windows-1252",
}

// normalize lowercases the name and collapses runs of non-alphanumeric
// characters to single underscores, mirroring how encoding names are
// matched in practice ("Latin-1", "latin_1" and "latin1" all resolve).
func normalize(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
		} else {
			pending = true
		}
	}
	return b.String()
}

// Lookup resolves an encoding name to a codec. Unknown names fail here,
// before any conversion is attempted.
func Lookup(name string) (*Codec, error) {
	switch normalize(name) {
	case "ascii", "us_ascii", "646", "ansi_x3_4_1968":
		return &Codec{name: name, kind: kindASCII}, nil
	case "utf8", "utf_8", "u8":
		return &Codec{name: name, kind: kindUTF8}, nil
	}

	query := name
	if iana, ok := aliases[normalize(name)]; ok {
		query = iana
	}

	enc, err := ianaindex.IANA.Encoding(query)
	if err != nil || enc == nil {
		return nil, errors.UnknownEncoding(errors.PhaseConfig, name)
	}

	if cm, ok := enc.(*charmap.Charmap); ok {
		return &Codec{name: name, kind: kindCharmap, cm: cm}, nil
	}
	return &Codec{name: name, kind: kindStrict, enc: enc}, nil
}

// Decode converts an encoded byte string to a host string. Under the
// escape strategy undecodable bytes become private code points; under the
// strict fallback they fail.
func (c *Codec) Decode(data []byte) (string, error) {
	switch c.kind {
	case kindASCII:
		var b strings.Builder
		b.Grow(len(data))
		for _, by := range data {
			if by < 0x80 {
				b.WriteByte(by)
			} else {
				b.WriteRune(escapeBase + rune(by))
			}
		}
		return b.String(), nil

	case kindUTF8:
		var b strings.Builder
		b.Grow(len(data))
		for i := 0; i < len(data); {
			r, size := utf8.DecodeRune(data[i:])
			if r == utf8.RuneError && size <= 1 {
				b.WriteRune(escapeBase + rune(data[i]))
				i++
				continue
			}
			b.WriteRune(r)
			i += size
		}
		return b.String(), nil

	case kindCharmap:
		var b strings.Builder
		b.Grow(len(data))
		for _, by := range data {
			r := c.cm.DecodeByte(by)
			if r == utf8.RuneError {
				r = escapeBase + rune(by)
			}
			b.WriteRune(r)
		}
		return b.String(), nil

	default:
		out, err := c.enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", errors.DecodeFailed(data, c.name, err)
		}
		if strings.ContainsRune(string(out), utf8.RuneError) {
			return "", errors.DecodeFailed(data, c.name, nil)
		}
		return string(out), nil
	}
}

// Encode converts a host string to an encoded byte string. Code points in
// the private escape range turn back into their original bytes; any other
// unrepresentable character fails.
func (c *Codec) Encode(s string) ([]byte, error) {
	switch c.kind {
	case kindASCII:
		out := make([]byte, 0, len(s))
		for _, r := range s {
			switch {
			case r < 0x80:
				out = append(out, byte(r))
			case r >= escapeBase && r <= escapeBase+0xFF:
				out = append(out, byte(r-escapeBase))
			default:
				return nil, errors.EncodeFailed(s, c.name, nil)
			}
		}
		return out, nil

	case kindUTF8:
		out := make([]byte, 0, len(s))
		for _, r := range s {
			if r >= escapeBase && r <= escapeBase+0xFF {
				out = append(out, byte(r-escapeBase))
				continue
			}
			out = utf8.AppendRune(out, r)
		}
		return out, nil

	case kindCharmap:
		out := make([]byte, 0, len(s))
		for _, r := range s {
			if r >= escapeBase && r <= escapeBase+0xFF {
				out = append(out, byte(r-escapeBase))
				continue
			}
			by, ok := c.cm.EncodeRune(r)
			if !ok {
				return nil, errors.EncodeFailed(s, c.name, nil)
			}
			out = append(out, by)
		}
		return out, nil

	default:
		out, err := c.enc.NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, errors.EncodeFailed(s, c.name, err)
		}
		return out, nil
	}
}
