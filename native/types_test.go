package native

import "testing"

func TestTypeCodeString(t *testing.T) {
	tests := []struct {
		want string
		code TypeCode
	}{
		{"byte", TypeInt8},
		{"int", TypeInt16},
		{"long", TypeInt32},
		{"float", TypeFloat},
		{"double", TypeDouble},
		{"string", TypeString},
		{"unknown", TypeCode(255)},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.code.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTypeCodeSize(t *testing.T) {
	tests := []struct {
		code TypeCode
		want int
	}{
		{TypeInt8, 1},
		{TypeInt16, 2},
		{TypeInt32, 4},
		{TypeFloat, 4},
		{TypeDouble, 8},
		{TypeString, 0},
	}

	for _, tc := range tests {
		t.Run(tc.code.String(), func(t *testing.T) {
			if got := tc.code.Size(); got != tc.want {
				t.Errorf("Size() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTypeCodeValid(t *testing.T) {
	for c := TypeInt8; c <= TypeString; c++ {
		if !c.Valid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if TypeCode(6).Valid() {
		t.Error("code 6 should not be valid")
	}

	numeric := []TypeCode{TypeInt8, TypeInt16, TypeInt32, TypeFloat, TypeDouble}
	for _, c := range numeric {
		if !c.IsNumeric() {
			t.Errorf("%s should be numeric", c)
		}
	}
	if TypeString.IsNumeric() {
		t.Error("string should not be numeric")
	}
}

// TestCanCast checks the full source by destination grid. int32 to float
// and double to float are lossy and must stay excluded.
func TestCanCast(t *testing.T) {
	codes := []TypeCode{TypeInt8, TypeInt16, TypeInt32, TypeFloat, TypeDouble, TypeString}

	want := map[TypeCode]map[TypeCode]bool{
		TypeInt8:   {TypeInt8: true, TypeInt16: true, TypeInt32: true, TypeFloat: true, TypeDouble: true},
		TypeInt16:  {TypeInt16: true, TypeInt32: true, TypeFloat: true, TypeDouble: true},
		TypeInt32:  {TypeInt32: true, TypeDouble: true},
		TypeFloat:  {TypeFloat: true, TypeDouble: true},
		TypeDouble: {TypeDouble: true},
		TypeString: {TypeString: true},
	}

	for _, src := range codes {
		for _, dst := range codes {
			got := CanCast(src, dst)
			if got != want[src][dst] {
				t.Errorf("CanCast(%s, %s) = %v, want %v", src, dst, got, want[src][dst])
			}
		}
	}
}

func TestCanCastReflexive(t *testing.T) {
	for c := TypeInt8; c <= TypeString; c++ {
		if !CanCast(c, c) {
			t.Errorf("CanCast(%s, %s) should be true", c, c)
		}
	}
}

func TestCanCastInvalidCode(t *testing.T) {
	if CanCast(TypeInt8, TypeCode(42)) {
		t.Error("cast to an invalid code should be false")
	}
}
