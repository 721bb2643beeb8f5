package native

// TypeCode identifies the element type of native variable data.
type TypeCode uint8

const (
	TypeInt8 TypeCode = iota
	TypeInt16
	TypeInt32
	TypeFloat
	TypeDouble
	TypeString
)

var typeNames = [...]string{
	TypeInt8:   "byte",
	TypeInt16:  "int",
	TypeInt32:  "long",
	TypeFloat:  "float",
	TypeDouble: "double",
	TypeString: "string",
}

// String returns the canonical native name of the type code.
func (t TypeCode) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

func (t TypeCode) Valid() bool {
	return t <= TypeString
}

func (t TypeCode) IsNumeric() bool {
	return t <= TypeDouble
}

var typeSizes = [...]int{
	TypeInt8:   1,
	TypeInt16:  2,
	TypeInt32:  4,
	TypeFloat:  4,
	TypeDouble: 8,
	TypeString: 0,
}

// Size returns the storage width in bytes of one element. String elements
// are element-indexed rather than byte-addressed and report zero.
func (t TypeCode) Size() int {
	if int(t) < len(typeSizes) {
		return typeSizes[t]
	}
	return 0
}

// CanCast reports whether a value of type src can be converted to type dst
// without losing precision or range. int32 values do not fit in a float
// exactly, so int32 to float stays excluded, as does any narrowing between
// the float widths.
func CanCast(src, dst TypeCode) bool {
	switch dst {
	case TypeInt8:
		return src == TypeInt8
	case TypeInt16:
		return src == TypeInt8 || src == TypeInt16
	case TypeInt32:
		return src == TypeInt8 || src == TypeInt16 || src == TypeInt32
	case TypeFloat:
		return src == TypeInt8 || src == TypeInt16 || src == TypeFloat
	case TypeDouble:
		return src == TypeInt8 || src == TypeInt16 || src == TypeInt32 ||
			src == TypeFloat || src == TypeDouble
	case TypeString:
		return src == TypeString
	default:
		return false
	}
}
