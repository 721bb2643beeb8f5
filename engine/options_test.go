package engine

import (
	"reflect"
	"testing"

	"github.com/bruno-rino/harp/errors"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		names []string
		want  map[string]string
	}{
		{
			name: "empty",
			in:   "",
			want: map[string]string{},
		},
		{
			name:  "single",
			in:    "detector=nominal",
			names: []string{"detector"},
			want:  map[string]string{"detector": "nominal"},
		},
		{
			name:  "multiple",
			in:    "detector=nominal;band=uv",
			names: []string{"detector", "band"},
			want:  map[string]string{"detector": "nominal", "band": "uv"},
		},
		{
			name:  "whitespace",
			in:    "  detector = nominal ;\tband = uv ",
			names: []string{"detector", "band"},
			want:  map[string]string{"detector": "nominal", "band": "uv"},
		},
		{
			name:  "trailing semicolon",
			in:    "band=uv;",
			names: []string{"band"},
			want:  map[string]string{"band": "uv"},
		},
		{
			name:  "replace keeps position",
			in:    "band_1=uv;detector=nominal;band_1=ir",
			names: []string{"band_1", "detector"},
			want:  map[string]string{"band_1": "ir", "detector": "nominal"},
		},
		{
			name:  "value with punctuation",
			in:    "wavelength=338.5nm",
			names: []string{"wavelength"},
			want:  map[string]string{"wavelength": "338.5nm"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseOptions(tt.in)
			if err != nil {
				t.Fatalf("ParseOptions(%q): %v", tt.in, err)
			}
			if got := opts.Names(); !reflect.DeepEqual(got, tt.names) {
				t.Errorf("names = %v, want %v", got, tt.names)
			}
			if opts.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", opts.Len(), len(tt.want))
			}
			for name, want := range tt.want {
				got, ok := opts.Get(name)
				if !ok || got != want {
					t.Errorf("Get(%q) = %q, %v, want %q, true", name, got, ok, want)
				}
			}
		})
	}
}

func TestParseOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"missing name", "=nominal", "syntax error: expected option name"},
		{"name starts with digit", "1band=uv", "syntax error: expected option name"},
		{"empty segment", "a=1;;b=2", "syntax error: expected option name"},
		{"blank tail segment", "a=1; ", "syntax error: expected option name"},
		{"missing equals", "detector", "syntax error: expected '='"},
		{"missing value", "detector=", "syntax error: expected option value"},
		{"missing value before separator", "detector=;band=uv", "syntax error: expected option value"},
		{"trailing characters", "detector=a b", "syntax error: trailing characters after option value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOptions(tt.in)
			ne, ok := err.(*errors.NativeError)
			if !ok {
				t.Fatalf("ParseOptions(%q) error = %v, want a native error", tt.in, err)
			}
			if ne.Code != ErrnoIngestionOptionSyntax {
				t.Errorf("code = %d, want %d", ne.Code, ErrnoIngestionOptionSyntax)
			}
			if ne.Message != tt.want {
				t.Errorf("message = %q, want %q", ne.Message, tt.want)
			}
		})
	}
}

func TestOptionsString(t *testing.T) {
	opts := NewOptions()
	opts.Set("detector", "nominal")
	opts.Set("band", "uv")
	opts.Set("detector", "backup")
	if got, want := opts.String(), "detector=backup;band=uv"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	reparsed, err := ParseOptions(opts.String())
	if err != nil {
		t.Fatalf("ParseOptions(String()): %v", err)
	}
	if !reflect.DeepEqual(reparsed.Names(), opts.Names()) {
		t.Errorf("reparsed names = %v, want %v", reparsed.Names(), opts.Names())
	}
}
