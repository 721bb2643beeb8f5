package harp

import (
	"strings"

	"github.com/bruno-rino/harp/errors"
)

// FileFormat selects the on-disk representation for an exported product.
// The zero value is netCDF, the format every engine supports.
type FileFormat int

const (
	FormatNetCDF FileFormat = iota
	FormatHDF4
	FormatHDF5
)

var formatNames = [...]string{"netcdf", "hdf4", "hdf5"}

func (f FileFormat) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "unknown"
}

// ParseFileFormat resolves a format name as given on a command line. The
// empty string selects the default, netCDF.
func ParseFileFormat(name string) (FileFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "netcdf":
		return FormatNetCDF, nil
	case "hdf4":
		return FormatHDF4, nil
	case "hdf5":
		return FormatHDF5, nil
	}
	return 0, errors.InvalidInput(errors.PhaseExport, "unknown file format %q", name)
}
