package charset

import (
	"bytes"
	"testing"

	"github.com/bruno-rino/harp/errors"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "ascii"},
		{name: "ASCII"},
		{name: "US-ASCII"},
		{name: "ansi_x3.4-1968"},
		{name: "utf-8"},
		{name: "UTF8"},
		{name: "iso-8859-1"},
		{name: "latin-1"},
		{name: "ISO-8859-7"},
		{name: "shift_jis"},
		{name: "windows-1252"},
		{name: "klingon", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Lookup(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Lookup(%q) succeeded, want error", tt.name)
				}
				herr, ok := err.(*errors.Error)
				if !ok || herr.Kind != errors.KindEncoding {
					t.Errorf("Lookup(%q) error = %v, want encoding kind", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(%q) failed: %v", tt.name, err)
			}
			if c.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", c.Name(), tt.name)
			}
		})
	}
}

func mustLookup(t *testing.T, name string) *Codec {
	t.Helper()
	c, err := Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", name, err)
	}
	return c
}

func TestASCIIRoundTripAllBytes(t *testing.T) {
	c := mustLookup(t, "ascii")
	for i := 0; i < 256; i++ {
		in := []byte{byte(i)}
		s, err := c.Decode(in)
		if err != nil {
			t.Fatalf("Decode(0x%02x) failed: %v", i, err)
		}
		out, err := c.Encode(s)
		if err != nil {
			t.Fatalf("Encode(Decode(0x%02x)) failed: %v", i, err)
		}
		if !bytes.Equal(out, in) {
			t.Errorf("byte 0x%02x round-tripped to % x", i, out)
		}
	}
}

func TestASCIIEncode(t *testing.T) {
	c := mustLookup(t, "ascii")

	out, err := c.Encode("hello world")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(out) != "hello world" {
		t.Errorf("Encode = %q, want %q", out, "hello world")
	}

	if _, err := c.Encode("héllo"); err == nil {
		t.Error("Encode of non-ASCII text succeeded, want error")
	}
}

func TestUTF8(t *testing.T) {
	c := mustLookup(t, "utf-8")

	s, err := c.Decode([]byte("héllo wörld"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if s != "héllo wörld" {
		t.Errorf("Decode = %q, want %q", s, "héllo wörld")
	}
	out, err := c.Encode(s)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(out) != "héllo wörld" {
		t.Errorf("Encode = %q, want %q", out, "héllo wörld")
	}
}

func TestUTF8InvalidSequenceRoundTrip(t *testing.T) {
	c := mustLookup(t, "utf-8")

	// 0xC3 starts a two-byte sequence but 0x28 cannot continue it, and
	// 0xFF is never valid. Both must survive a decode/encode cycle.
	in := []byte{'a', 0xC3, 0x28, 'b', 0xFF}
	s, err := c.Decode(in)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	out, err := c.Encode(s)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Errorf("round trip = % x, want % x", out, in)
	}
}

func TestLatin1RoundTripAllBytes(t *testing.T) {
	c := mustLookup(t, "latin-1")
	for i := 0; i < 256; i++ {
		in := []byte{byte(i)}
		s, err := c.Decode(in)
		if err != nil {
			t.Fatalf("Decode(0x%02x) failed: %v", i, err)
		}
		out, err := c.Encode(s)
		if err != nil {
			t.Fatalf("Encode(Decode(0x%02x)) failed: %v", i, err)
		}
		if !bytes.Equal(out, in) {
			t.Errorf("byte 0x%02x round-tripped to % x", i, out)
		}
	}
	s, err := c.Decode([]byte{0xE9})
	if err != nil {
		t.Fatalf("Decode(0xE9) failed: %v", err)
	}
	if s != "é" {
		t.Errorf("Decode(0xE9) = %q, want %q", s, "é")
	}
}

func TestCharmapUnassignedByteRoundTrip(t *testing.T) {
	// ISO-8859-7 leaves 0xD2 unassigned, so the escape strategy has to
	// carry it.
	c := mustLookup(t, "ISO-8859-7")
	in := []byte{0xD1, 0xD2, 0xD3}
	s, err := c.Decode(in)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	out, err := c.Encode(s)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Errorf("round trip = % x, want % x", out, in)
	}
}

func TestCrossCodecEscape(t *testing.T) {
	ascii := mustLookup(t, "ascii")
	u8 := mustLookup(t, "utf-8")

	s, err := ascii.Decode([]byte{0xFF})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	out, err := u8.Encode(s)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(out, []byte{0xFF}) {
		t.Errorf("escaped byte re-encoded to % x, want ff", out)
	}
}

func TestStrictEncoding(t *testing.T) {
	c := mustLookup(t, "shift_jis")

	out, err := c.Encode("日本語")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []byte{0x93, 0xFA, 0x96, 0x7B, 0x8C, 0xEA}
	if !bytes.Equal(out, want) {
		t.Errorf("Encode = % x, want % x", out, want)
	}
	s, err := c.Decode(want)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if s != "日本語" {
		t.Errorf("Decode = %q, want %q", s, "日本語")
	}

	if _, err := c.Encode("€"); err == nil {
		t.Error("Encode of unrepresentable rune succeeded, want error")
	}
}

func TestDefault(t *testing.T) {
	if DefaultName() != "ascii" {
		t.Fatalf("initial DefaultName() = %q, want %q", DefaultName(), "ascii")
	}
	defer func() {
		if err := SetDefault("ascii"); err != nil {
			t.Fatalf("restoring default failed: %v", err)
		}
	}()

	if err := SetDefault("utf-8"); err != nil {
		t.Fatalf("SetDefault(utf-8) failed: %v", err)
	}
	if DefaultName() != "utf-8" {
		t.Errorf("DefaultName() = %q, want %q", DefaultName(), "utf-8")
	}
	out, err := EncodeString("héllo")
	if err != nil {
		t.Fatalf("EncodeString failed: %v", err)
	}
	s, err := DecodeString(out)
	if err != nil {
		t.Fatalf("DecodeString failed: %v", err)
	}
	if s != "héllo" {
		t.Errorf("round trip = %q, want %q", s, "héllo")
	}

	if err := SetDefault("klingon"); err == nil {
		t.Fatal("SetDefault(klingon) succeeded, want error")
	}
	if DefaultName() != "utf-8" {
		t.Errorf("failed SetDefault changed default to %q", DefaultName())
	}
}
