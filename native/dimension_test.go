package native

import "testing"

func TestDimensionTypeString(t *testing.T) {
	tests := []struct {
		want string
		dim  DimensionType
	}{
		{"independent", DimensionIndependent},
		{"time", DimensionTime},
		{"latitude", DimensionLatitude},
		{"longitude", DimensionLongitude},
		{"vertical", DimensionVertical},
		{"spectral", DimensionSpectral},
		{"unknown", DimensionType(99)},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.dim.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDimensionRoundTrip(t *testing.T) {
	for d := DimensionIndependent; d <= DimensionSpectral; d++ {
		name, ok := DimensionName(d)
		if !ok {
			t.Fatalf("DimensionName(%s) failed", d)
		}
		back, ok := DimensionTypeOf(name)
		if !ok {
			t.Fatalf("DimensionTypeOf(%q) failed", name)
		}
		if back != d {
			t.Errorf("round trip of %s gave %s", d, back)
		}
	}
}

func TestDimensionNameIndependent(t *testing.T) {
	name, ok := DimensionName(DimensionIndependent)
	if !ok || name != "" {
		t.Errorf("DimensionName(independent) = %q, %v; want empty string", name, ok)
	}
}

func TestDimensionTypeOfUnknown(t *testing.T) {
	// The explicit name "independent" is not a host axis name; only the
	// empty string maps to the independent axis.
	for _, name := range []string{"independent", "altitude", "Time", "TIME"} {
		if _, ok := DimensionTypeOf(name); ok {
			t.Errorf("DimensionTypeOf(%q) should fail", name)
		}
	}
}

func TestDimensionNameUnknownCode(t *testing.T) {
	if _, ok := DimensionName(DimensionType(42)); ok {
		t.Error("DimensionName(42) should fail")
	}
}
