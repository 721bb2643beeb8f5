package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseInit   Phase = "init"   // library initialization
	PhaseImport Phase = "import" // product import orchestration
	PhaseIngest Phase = "ingest" // product ingestion orchestration
	PhaseExport Phase = "export" // product export orchestration
	PhaseEncode Phase = "encode" // host to native transfer
	PhaseDecode Phase = "decode" // native to host transfer
	PhaseConfig Phase = "config" // host-side or process-wide configuration
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch         Kind = "type_mismatch"
	KindUnsupportedType      Kind = "unsupported_type"
	KindUnsupportedDimension Kind = "unsupported_dimension"
	KindShape                Kind = "shape"
	KindAttribute            Kind = "attribute"
	KindNoData               Kind = "no_data"
	KindEncoding             Kind = "encoding"
	KindInvalidInput         Kind = "invalid_input"
	KindNotInitialized       Kind = "not_initialized"
)

// Error is the structured error type used throughout the binding
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	HostKind   string // host-side kind name, e.g. "float64"
	NativeType string // canonical native type name, e.g. "double"
	Detail     string
	Path       []string
	Variable   string // set when re-raised from a per-variable export step
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.HostKind != "" || e.NativeType != "" {
		b.WriteString(": ")
		if e.HostKind != "" && e.NativeType != "" {
			b.WriteString("host kind ")
			b.WriteString(e.HostKind)
			b.WriteString(", native type ")
			b.WriteString(e.NativeType)
		} else if e.HostKind != "" {
			b.WriteString("host kind ")
			b.WriteString(e.HostKind)
		} else {
			b.WriteString("native type ")
			b.WriteString(e.NativeType)
		}
	}

	if e.Detail != "" {
		if e.HostKind != "" || e.NativeType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	if e.Variable != "" {
		b.WriteString(" (variable ")
		b.WriteString(fmt.Sprintf("%q", e.Variable))
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// HostKind sets the host-side kind name
func (b *Builder) HostKind(k string) *Builder {
	b.err.HostKind = k
	return b
}

// NativeType sets the canonical native type name
func (b *Builder) NativeType(t string) *Builder {
	b.err.NativeType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// NativeError is a failure reported by the native library itself. The code
// and message are surfaced verbatim, the way the library reported them.
type NativeError struct {
	Code     int
	Message  string
	Variable string
}

// Native creates a NativeError from a native status code and message
func Native(code int, message string) *NativeError {
	return &NativeError{Code: code, Message: message}
}

func (e *NativeError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("%s (variable %q)", e.Message, e.Variable)
	}
	return e.Message
}

// Is reports whether target matches this error. A zero-code target matches
// any NativeError; a nonzero code must match exactly.
func (e *NativeError) Is(target error) bool {
	if t, ok := target.(*NativeError); ok {
		return t.Code == 0 || e.Code == t.Code
	}
	return false
}

// TagVariable re-raises err tagged with the name of the variable whose
// transfer failed. The error keeps its type and kind so callers can still
// match it; only the rendered message gains the variable suffix.
func TagVariable(err error, name string) error {
	switch e := err.(type) {
	case *Error:
		tagged := *e
		tagged.Variable = name
		return &tagged
	case *NativeError:
		tagged := *e
		tagged.Variable = name
		return &tagged
	default:
		return fmt.Errorf("%w (variable %q)", err, name)
	}
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, hostKind, nativeType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindTypeMismatch,
		Path:       path,
		HostKind:   hostKind,
		NativeType: nativeType,
	}
}

// UnsupportedType creates an unsupported host type error
func UnsupportedType(phase Phase, hostKind string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindUnsupportedType,
		HostKind: hostKind,
		Detail:   fmt.Sprintf("unsupported type %q", hostKind),
	}
}

// UnsupportedTypeCode creates an unsupported native type code error
func UnsupportedTypeCode(phase Phase, code int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedType,
		Detail: fmt.Sprintf("unsupported native data type code '%d'", code),
		Value:  code,
	}
}

// UnsupportedDimension creates an unsupported dimension name error
func UnsupportedDimension(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedDimension,
		Detail: fmt.Sprintf("unsupported dimension %q", name),
		Value:  name,
	}
}

// UnsupportedDimensionCode creates an unsupported native dimension tag error
func UnsupportedDimensionCode(phase Phase, code int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedDimension,
		Detail: fmt.Sprintf("unsupported native dimension type code '%d'", code),
		Value:  code,
	}
}

// NoData creates the no-data error raised when a conversion yields no
// usable variables
func NoData(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNoData,
		Detail: "product contains no variables, or variables without data",
	}
}

// MissingData creates the error for a variable exported without data
func MissingData(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNoData,
		Detail: "no data or data is not set",
	}
}

// DimensionsMissing creates a missing/incomplete dimension list error
func DimensionsMissing(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindShape,
		Detail: "dimensions missing or incomplete",
	}
}

// DimensionsIncorrect creates a rank mismatch error
func DimensionsIncorrect(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindShape,
		Detail: "dimensions incorrect",
	}
}

// ShapeMismatch creates a shape consistency error
func ShapeMismatch(phase Phase, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindShape,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// NonScalarAttribute creates the error for an attribute that must be scalar
func NonScalarAttribute(phase Phase, attr string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAttribute,
		Path:   []string{attr},
		Detail: fmt.Sprintf("%s attribute should be scalar", attr),
	}
}

// IncompatibleAttribute creates the error for an attribute whose type cannot
// be safely cast to the variable's element type
func IncompatibleAttribute(phase Phase, attr, attrType, dataType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindAttribute,
		Path:       []string{attr},
		NativeType: dataType,
		Detail: fmt.Sprintf("type %q of %s attribute incompatible with type %q of data",
			attrType, attr, dataType),
	}
}

// UnknownEncoding creates an unknown encoding name error
func UnknownEncoding(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindEncoding,
		Detail: fmt.Sprintf("unknown encoding %q", name),
		Value:  name,
	}
}

// EncodeFailed creates the error for text not representable under an encoding
func EncodeFailed(text, encoding string, cause error) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindEncoding,
		Detail: fmt.Sprintf("cannot encode %q using encoding %q", text, encoding),
		Value:  text,
		Cause:  cause,
	}
}

// DecodeFailed creates the error for bytes not decodable under an encoding
func DecodeFailed(data []byte, encoding string, cause error) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindEncoding,
		Detail: fmt.Sprintf("cannot decode % x using encoding %q", preview, encoding),
		Cause:  cause,
	}
}

// NotInitialized creates a not-initialized error for a library used before Init
func NotInitialized(component string) *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: fmt.Sprintf(detail, args...),
	}
}
