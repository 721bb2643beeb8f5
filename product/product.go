package product

import (
	"strings"

	"github.com/bruno-rino/harp/errors"
)

// reservedNames are product attribute names that can never name a
// variable.
var reservedNames = map[string]bool{
	"source_product": true,
	"history":        true,
}

// IsReservedName reports whether name is reserved for a product attribute
// or otherwise unusable as a variable name.
func IsReservedName(name string) bool {
	return strings.HasPrefix(name, "_") || reservedNames[name]
}

// Product is an ordered collection of named variables plus the two
// reserved product attributes. The zero Product is empty and ready to use.
type Product struct {
	SourceProduct string
	History       string

	names []string
	vars  map[string]*Variable
}

// NewProduct returns an empty product.
func NewProduct() *Product {
	return &Product{vars: make(map[string]*Variable)}
}

// Set inserts or replaces the variable under name. A replaced entry keeps
// its position; a new one is appended. Reserved names are rejected.
func (p *Product) Set(name string, v *Variable) error {
	if IsReservedName(name) {
		return errors.InvalidInput(errors.PhaseConfig, "variable name %q is reserved", name)
	}
	if p.vars == nil {
		p.vars = make(map[string]*Variable)
	}
	if _, ok := p.vars[name]; !ok {
		p.names = append(p.names, name)
	}
	p.vars[name] = v
	return nil
}

// Get returns the variable under name.
func (p *Product) Get(name string) (*Variable, bool) {
	v, ok := p.vars[name]
	return v, ok
}

// Has reports whether a variable exists under name.
func (p *Product) Has(name string) bool {
	_, ok := p.vars[name]
	return ok
}

// Delete removes the variable under name, reporting whether it was
// present.
func (p *Product) Delete(name string) bool {
	if _, ok := p.vars[name]; !ok {
		return false
	}
	delete(p.vars, name)
	for i, n := range p.names {
		if n == name {
			p.names = append(p.names[:i], p.names[i+1:]...)
			break
		}
	}
	return true
}

// Names returns the variable names in insertion order.
func (p *Product) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Len returns the number of variables.
func (p *Product) Len() int {
	return len(p.names)
}

// AppendHistory adds one line to the history attribute, separated from any
// existing history by a newline.
func (p *Product) AppendHistory(line string) {
	if p.History == "" {
		p.History = line
		return
	}
	p.History += "\n" + line
}

// ToMap flattens the product to a plain map holding each variable's data
// under its own name and, when the variable carries a unit, the unit under
// name + "_unit". All other attributes are dropped. Iteration order stays
// available through Names.
func (p *Product) ToMap() map[string]any {
	out := make(map[string]any, len(p.names))
	for _, name := range p.names {
		v := p.vars[name]
		if v == nil {
			continue
		}
		out[name] = v.Data
		if v.Unit != "" {
			out[name+"_unit"] = v.Unit
		}
	}
	return out
}
