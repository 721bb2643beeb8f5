package native

// MaxDimensions is the largest number of axes a native variable can carry.
const MaxDimensions = 8

// DimensionType classifies the physical meaning of one array axis.
type DimensionType uint8

const (
	DimensionIndependent DimensionType = iota
	DimensionTime
	DimensionLatitude
	DimensionLongitude
	DimensionVertical
	DimensionSpectral
)

var dimensionNames = [...]string{
	DimensionIndependent: "independent",
	DimensionTime:        "time",
	DimensionLatitude:    "latitude",
	DimensionLongitude:   "longitude",
	DimensionVertical:    "vertical",
	DimensionSpectral:    "spectral",
}

// String returns the canonical native name of the dimension type.
func (d DimensionType) String() string {
	if int(d) < len(dimensionNames) {
		return dimensionNames[d]
	}
	return "unknown"
}

func (d DimensionType) Valid() bool {
	return d <= DimensionSpectral
}

// DimensionName maps a dimension type to the host-side axis name. An
// independent axis has no host name and maps to the empty string.
func DimensionName(d DimensionType) (string, bool) {
	if !d.Valid() {
		return "", false
	}
	if d == DimensionIndependent {
		return "", true
	}
	return dimensionNames[d], true
}

// DimensionTypeOf maps a host-side axis name to the dimension type. The
// empty string maps to the independent axis; the explicit name
// "independent" is not part of the host table.
func DimensionTypeOf(name string) (DimensionType, bool) {
	switch name {
	case "":
		return DimensionIndependent, true
	case "time":
		return DimensionTime, true
	case "latitude":
		return DimensionLatitude, true
	case "longitude":
		return DimensionLongitude, true
	case "vertical":
		return DimensionVertical, true
	case "spectral":
		return DimensionSpectral, true
	default:
		return 0, false
	}
}
