// Package types implements the static type algebra: the recursive Type sum,
// structural equality, literal widening, narrowing helpers and the
// structural assignability relation.
//
// Types are immutable values. Nothing in this package mutates a Type after it
// has been constructed, and no Type carries source positions, so two types
// built from different syntax compare equal whenever their structure does.
package types

// Type is the interface implemented by all type representations.
type Type interface {
	// String returns a TypeScript-like rendering of the type, used in diagnostics.
	String() string
	// Equals checks if this type is structurally equivalent to another type,
	// comparing identifier names (see EqualIgnoreSpan).
	Equals(other Type) bool

	// typeNode() is a marker method to ensure only types defined in this package
	// can be assigned to the Type interface. This keeps the sum closed so every
	// switch over it can report the shapes it does not handle.
	typeNode()
}

// OtherType is the escape hatch for syntactic forms the algebra does not
// normalize (type references, conditional or mapped types, ...). Raw holds
// the source rendering; two OtherTypes are equal when their renderings are.
type OtherType struct {
	Raw string
}

func (o *OtherType) String() string         { return o.Raw }
func (o *OtherType) typeNode()              {}
func (o *OtherType) Equals(other Type) bool { return EqualIgnoreSpan(o, other) }

// RegExp is the type of regular expression literals.
var RegExp = &OtherType{Raw: "RegExp"}

// ThisType is the polymorphic `this` type.
type ThisType struct{}

func (t *ThisType) String() string         { return "this" }
func (t *ThisType) typeNode()              {}
func (t *ThisType) Equals(other Type) bool { return EqualIgnoreSpan(t, other) }

// This is the shared ThisType instance.
var This = &ThisType{}

// IndexedAccessType is `Object[Index]`, produced by member access expressions.
// It is not resolved against Object's members.
type IndexedAccessType struct {
	Object Type
	Index  Type
}

func (ia *IndexedAccessType) String() string {
	return parenthesize(ia.Object) + "[" + ia.Index.String() + "]"
}
func (ia *IndexedAccessType) typeNode()              {}
func (ia *IndexedAccessType) Equals(other Type) bool { return EqualIgnoreSpan(ia, other) }

// parenthesize wraps types whose rendering would be ambiguous in postfix
// position (T[] or T[K]).
func parenthesize(t Type) string {
	if t == nil {
		return "<nil>"
	}
	switch t.(type) {
	case *UnionType, *IntersectionType, *FunctionType, *ConstructorType:
		return "(" + t.String() + ")"
	}
	return t.String()
}

// orAny returns t, or Any when t is nil (a missing annotation).
func orAny(t Type) Type {
	if t == nil {
		return Any
	}
	return t
}
