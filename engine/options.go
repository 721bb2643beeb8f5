package engine

import (
	"strings"

	"github.com/bruno-rino/harp/errors"
)

// Options is an ordered set of ingestion options. Setting a name that is
// already present replaces its value without moving it.
type Options struct {
	names  []string
	values map[string]string
}

// NewOptions returns an empty option set.
func NewOptions() *Options {
	return &Options{values: make(map[string]string)}
}

// ParseOptions parses a semicolon separated list of name=value ingestion
// options. Option names start with a letter and continue with letters,
// digits and underscores; values run to the next whitespace or semicolon.
// Whitespace around names, around the '=' and after values is allowed, as
// is one trailing semicolon. The empty string parses to an empty set.
func ParseOptions(s string) (*Options, error) {
	opts := NewOptions()
	for len(s) > 0 {
		var seg string
		if i := strings.IndexByte(s, ';'); i >= 0 {
			seg, s = s[:i], s[i+1:]
		} else {
			seg, s = s, ""
		}
		if err := opts.setFromString(seg); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

func (o *Options) setFromString(seg string) error {
	i := skipSpace(seg, 0)
	start := i
	i = skipName(seg, i)
	if i == start {
		return errors.Native(ErrnoIngestionOptionSyntax, "syntax error: expected option name")
	}
	name := seg[start:i]
	i = skipSpace(seg, i)
	if i >= len(seg) || seg[i] != '=' {
		return errors.Native(ErrnoIngestionOptionSyntax, "syntax error: expected '='")
	}
	i = skipSpace(seg, i+1)
	start = i
	i = skipValue(seg, i)
	if i == start {
		return errors.Native(ErrnoIngestionOptionSyntax, "syntax error: expected option value")
	}
	value := seg[start:i]
	if skipSpace(seg, i) != len(seg) {
		return errors.Native(ErrnoIngestionOptionSyntax, "syntax error: trailing characters after option value")
	}
	o.Set(name, value)
	return nil
}

// Set stores value under name. An existing option keeps its position.
func (o *Options) Set(name, value string) {
	if _, ok := o.values[name]; !ok {
		o.names = append(o.names, name)
	}
	o.values[name] = value
}

// Get returns the value stored under name.
func (o *Options) Get(name string) (string, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Names returns the option names in first-set order.
func (o *Options) Names() []string {
	return append([]string(nil), o.names...)
}

// Len returns the number of options.
func (o *Options) Len() int {
	return len(o.names)
}

// String renders the options back to semicolon separated name=value pairs.
func (o *Options) String() string {
	var b strings.Builder
	for i, n := range o.names {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(n)
		b.WriteByte('=')
		b.WriteString(o.values[n])
	}
	return b.String()
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func skipName(s string, i int) int {
	if i >= len(s) || !isAlpha(s[i]) {
		return i
	}
	i++
	for i < len(s) && (s[i] == '_' || isAlpha(s[i]) || isDigit(s[i])) {
		i++
	}
	return i
}

func skipValue(s string, i int) int {
	for i < len(s) && s[i] != ';' && !isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isAlpha(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
