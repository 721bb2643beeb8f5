package product

// Variable pairs data with the dimension names labeling each axis and a
// set of optional attributes. String-valued attributes are absent when
// empty; ValidMin and ValidMax are absent when they hold the zero Data.
type Variable struct {
	Data        Data
	Dimensions  []string
	Unit        string
	ValidMin    Data
	ValidMax    Data
	Description string
}

// NewVariable returns a Variable over data. Each dimension name labels one
// axis in order; an empty name leaves that axis unlabeled.
func NewVariable(data Data, dimensions ...string) *Variable {
	return &Variable{Data: data, Dimensions: dimensions}
}
