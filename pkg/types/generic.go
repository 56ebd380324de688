package types

// TypeParameter is a generic type parameter such as `T extends string`.
// Used both in declarations (Signature.TypeParams) and as a type inside the
// generic body.
type TypeParameter struct {
	Name       string
	Constraint Type // nil if unconstrained
}

// NewTypeParameter creates a type parameter.
func NewTypeParameter(name string, constraint Type) *TypeParameter {
	return &TypeParameter{Name: name, Constraint: constraint}
}

func (tp *TypeParameter) String() string         { return tp.Name }
func (tp *TypeParameter) typeNode()              {}
func (tp *TypeParameter) Equals(other Type) bool { return EqualIgnoreSpan(tp, other) }

// Declaration renders the parameter as written in a type parameter list.
func (tp *TypeParameter) Declaration() string {
	if tp.Constraint != nil {
		return tp.Name + " extends " + tp.Constraint.String()
	}
	return tp.Name
}
