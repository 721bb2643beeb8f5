package engine

import (
	"fmt"

	"github.com/bruno-rino/harp/errors"
)

// Errno codes identify engine failures. The engine reports every failure as
// a native error carrying one of these codes and either the default message
// for the code or a more specific one.
const (
	ErrnoSuccess     = 0
	ErrnoOutOfMemory = -1

	ErrnoHDF4          = -10
	ErrnoNoHDF4Support = -11
	ErrnoHDF5          = -12
	ErrnoNoHDF5Support = -13
	ErrnoNetCDF        = -14
	ErrnoCODA          = -15

	ErrnoFileNotFound = -20
	ErrnoFileOpen     = -21
	ErrnoFileClose    = -22
	ErrnoFileRead     = -23
	ErrnoFileWrite    = -24

	ErrnoInvalidArgument = -100
	ErrnoInvalidIndex    = -101
	ErrnoInvalidName     = -102
	ErrnoInvalidFormat   = -103
	ErrnoInvalidDateTime = -104
	ErrnoInvalidType     = -105

	ErrnoArrayNumDimsMismatch = -110
	ErrnoArrayOutOfBounds     = -111
	ErrnoVariableNotFound     = -112

	ErrnoUnitConversion = -120

	ErrnoProduct = -130

	ErrnoScript       = -140
	ErrnoScriptSyntax = -141

	ErrnoIngestion                   = -150
	ErrnoIngestionOptionSyntax       = -151
	ErrnoInvalidIngestionOption      = -152
	ErrnoInvalidIngestionOptionValue = -153

	ErrnoNoData = -160
)

// ErrnoMessage returns the default description for an errno code. Unknown
// codes map to the empty string.
func ErrnoMessage(code int) string {
	switch code {
	case ErrnoSuccess:
		return "success (no error)"
	case ErrnoOutOfMemory:
		return "out of memory"
	case ErrnoHDF4:
		return "HDF4 error"
	case ErrnoNoHDF4Support:
		return "no HDF4 support"
	case ErrnoHDF5:
		return "HDF5 error"
	case ErrnoNoHDF5Support:
		return "no HDF5 support"
	case ErrnoNetCDF:
		return "netCDF error"
	case ErrnoCODA:
		return "CODA error"
	case ErrnoFileNotFound:
		return "file not found"
	case ErrnoFileOpen:
		return "error opening file"
	case ErrnoFileClose:
		return "error closing file"
	case ErrnoFileRead:
		return "error reading file"
	case ErrnoFileWrite:
		return "error writing file"
	case ErrnoInvalidArgument:
		return "invalid argument"
	case ErrnoInvalidIndex:
		return "invalid index"
	case ErrnoInvalidName:
		return "invalid name"
	case ErrnoInvalidFormat:
		return "invalid format"
	case ErrnoInvalidDateTime:
		return "invalid date/time"
	case ErrnoInvalidType:
		return "invalid type"
	case ErrnoArrayNumDimsMismatch:
		return "incorrect number of dimensions"
	case ErrnoArrayOutOfBounds:
		return "array index out of bounds"
	case ErrnoVariableNotFound:
		return "variable not found"
	case ErrnoUnitConversion:
		return "unit conversion error"
	case ErrnoProduct:
		return "product error"
	case ErrnoScript:
		return "script error"
	case ErrnoScriptSyntax:
		return "syntax error in script"
	case ErrnoIngestion:
		return "ingestion error"
	case ErrnoIngestionOptionSyntax:
		return "syntax error in ingestion option"
	case ErrnoInvalidIngestionOption:
		return "invalid ingestion option"
	case ErrnoInvalidIngestionOptionValue:
		return "invalid ingestion option value"
	case ErrnoNoData:
		return "no data left after operation"
	}
	return ""
}

func newError(code int) *errors.NativeError {
	return errors.Native(code, ErrnoMessage(code))
}

func newErrorf(code int, format string, args ...any) *errors.NativeError {
	return errors.Native(code, fmt.Sprintf(format, args...))
}
