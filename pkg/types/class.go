package types

// ClassType represents a declared class. Members holds the class's
// structural shape as seen from outside: properties, methods and its
// construct signature(s).
type ClassType struct {
	Name       string
	TypeParams []*TypeParameter
	Members    []Member
	Super      Type // superclass, nil when the class does not extend anything
}

func (ct *ClassType) String() string         { return "class " + ct.Name }
func (ct *ClassType) typeNode()              {}
func (ct *ClassType) Equals(other Type) bool { return EqualIgnoreSpan(ct, other) }

// ConstructSignatures returns the class's construct signatures in declaration order.
func (ct *ClassType) ConstructSignatures() []*Signature {
	var sigs []*Signature
	for _, m := range ct.Members {
		if cs, ok := m.(*ConstructSignature); ok {
			sigs = append(sigs, cs.Signature)
		}
	}
	return sigs
}
