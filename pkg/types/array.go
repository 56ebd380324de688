package types

import "strings"

// ArrayType represents the type of an array.
type ArrayType struct {
	ElementType Type
}

// NewArrayType returns `elem[]`.
func NewArrayType(elem Type) *ArrayType {
	return &ArrayType{ElementType: elem}
}

func (at *ArrayType) String() string         { return parenthesize(at.ElementType) + "[]" }
func (at *ArrayType) typeNode()              {}
func (at *ArrayType) Equals(other Type) bool { return EqualIgnoreSpan(at, other) }

// TupleType represents a tuple type with fixed-length, ordered elements.
type TupleType struct {
	ElementTypes []Type
}

// NewTupleType returns `[elems...]`.
func NewTupleType(elems ...Type) *TupleType {
	return &TupleType{ElementTypes: elems}
}

func (tt *TupleType) String() string {
	var elements strings.Builder
	elements.WriteString("[")
	for i, elemType := range tt.ElementTypes {
		if i > 0 {
			elements.WriteString(", ")
		}
		if elemType != nil {
			elements.WriteString(elemType.String())
		} else {
			elements.WriteString("<nil>")
		}
	}
	elements.WriteString("]")
	return elements.String()
}
func (tt *TupleType) typeNode()              {}
func (tt *TupleType) Equals(other Type) bool { return EqualIgnoreSpan(tt, other) }
