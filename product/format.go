package product

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDataType returns the canonical element type name for d, or the
// invalid marker when d holds nothing.
func FormatDataType(d Data) string {
	if !d.IsValid() {
		return "<invalid>"
	}
	return d.Kind().String()
}

// FormatDimensions renders a dimension list against the data's actual
// shape as "{name=length, length, ...}", with unlabeled axes bare. When
// the data is not an array whose rank matches the list, the whole list
// renders as the invalid marker.
func FormatDimensions(dimensions []string, d Data) string {
	if !d.IsArray() || d.Rank() != len(dimensions) {
		return "{<invalid>}"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range dimensions {
		if i > 0 {
			b.WriteString(", ")
		}
		if name != "" {
			b.WriteString(name)
			b.WriteByte('=')
		}
		b.WriteString(strconv.Itoa(d.shape[i]))
	}
	b.WriteByte('}')
	return b.String()
}

// FormatValue renders a data value: scalars as bare literals with strings
// quoted, arrays as their nested element list.
func FormatValue(d Data) string {
	if !d.IsValid() {
		return "<invalid>"
	}
	if d.IsScalar() {
		return formatScalar(d.Value())
	}
	var b strings.Builder
	next := 0
	formatAxis(&b, d, 0, &next)
	return b.String()
}

func formatScalar(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v", v)
}

func elementAt(d Data, i int) any {
	switch v := d.elems.(type) {
	case []int8:
		return v[i]
	case []int16:
		return v[i]
	case []int32:
		return v[i]
	case []float32:
		return v[i]
	case []float64:
		return v[i]
	case []string:
		return v[i]
	}
	return nil
}

// formatAxis writes one axis of a flat array in row-major order, consuming
// elements through next.
func formatAxis(b *strings.Builder, d Data, axis int, next *int) {
	b.WriteByte('[')
	if axis == d.Rank()-1 {
		for i := 0; i < d.shape[axis]; i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(formatScalar(elementAt(d, *next)))
			*next++
		}
	} else {
		for i := 0; i < d.shape[axis]; i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			formatAxis(b, d, axis+1, next)
		}
	}
	b.WriteByte(']')
}

// String renders the variable as one attribute per line followed by its
// data.
func (v *Variable) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "type = %s\n", FormatDataType(v.Data))

	if len(v.Dimensions) > 0 {
		fmt.Fprintf(&b, "dimension = %s\n", FormatDimensions(v.Dimensions, v.Data))
	}
	if v.Unit != "" {
		fmt.Fprintf(&b, "unit = %q\n", v.Unit)
	}
	if v.ValidMin.IsValid() {
		fmt.Fprintf(&b, "valid_min = %s\n", FormatValue(v.ValidMin))
	}
	if v.ValidMax.IsValid() {
		fmt.Fprintf(&b, "valid_max = %s\n", FormatValue(v.ValidMax))
	}
	if v.Description != "" {
		fmt.Fprintf(&b, "description = %q\n", v.Description)
	}

	if v.Data.IsValid() {
		switch {
		case v.Data.IsScalar():
			fmt.Fprintf(&b, "data = %s\n", formatScalar(v.Data.Value()))
		case len(v.Dimensions) == 0 && v.Data.Len() == 1:
			fmt.Fprintf(&b, "data = %s\n", formatScalar(elementAt(v.Data, 0)))
		case v.Data.Len() == 0:
			b.WriteString("data = <empty>\n")
		default:
			b.WriteString("data =\n")
			b.WriteString(FormatValue(v.Data))
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// String renders the product attributes followed by a one-line summary per
// variable.
func (p *Product) String() string {
	var b strings.Builder

	hasAttributes := false
	if p.SourceProduct != "" {
		fmt.Fprintf(&b, "source product = %q\n", p.SourceProduct)
		hasAttributes = true
	}
	if p.History != "" {
		fmt.Fprintf(&b, "history = %q\n", p.History)
		hasAttributes = true
	}

	if len(p.names) == 0 {
		return b.String()
	}
	if hasAttributes {
		b.WriteByte('\n')
	}

	for _, name := range p.names {
		v := p.vars[name]
		if v == nil || !v.Data.IsValid() {
			fmt.Fprintf(&b, "<non-compliant variable %q>\n", name)
			continue
		}
		if v.Data.IsArray() && v.Data.Len() == 0 {
			fmt.Fprintf(&b, "<empty variable %q>\n", name)
			continue
		}

		b.WriteString(FormatDataType(v.Data))
		b.WriteByte(' ')
		b.WriteString(name)

		if len(v.Dimensions) > 0 {
			b.WriteByte(' ')
			b.WriteString(FormatDimensions(v.Dimensions, v.Data))
		}
		if v.Unit != "" {
			fmt.Fprintf(&b, " [%s]", v.Unit)
		}
		b.WriteByte('\n')
	}

	return b.String()
}
