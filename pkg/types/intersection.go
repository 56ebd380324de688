package types

import "strings"

// --- Intersection Types ---

// IntersectionType represents an intersection of multiple types (e.g., A & B).
// A value of intersection type must satisfy ALL constituent types simultaneously.
type IntersectionType struct {
	Types []Type
}

func (it *IntersectionType) String() string {
	if len(it.Types) == 0 {
		return "unknown"
	}
	parts := make([]string, len(it.Types))
	for i, t := range it.Types {
		switch t.(type) {
		case *UnionType, *FunctionType:
			parts[i] = "(" + t.String() + ")"
		default:
			parts[i] = t.String()
		}
	}
	return strings.Join(parts, " & ")
}
func (it *IntersectionType) typeNode()              {}
func (it *IntersectionType) Equals(other Type) bool { return EqualIgnoreSpan(it, other) }

// NewIntersectionType creates a new intersection type from the given types.
// It flattens nested intersections and handles simplifications:
// any absorbs the intersection, never propagates through it.
func NewIntersectionType(ts ...Type) Type {
	members := make([]Type, 0, len(ts))

	var collect func(t Type)
	collect = func(t Type) {
		if t == nil {
			return
		}
		if intersection, ok := t.(*IntersectionType); ok {
			for _, member := range intersection.Types {
				collect(member)
			}
			return
		}
		for _, m := range members {
			if m.Equals(t) {
				return
			}
		}
		members = append(members, t)
	}
	for _, t := range ts {
		collect(t)
	}

	switch len(members) {
	case 0:
		return Any
	case 1:
		return members[0]
	}
	for _, member := range members {
		if IsKeyword(member, KindAny) {
			return Any
		}
	}
	for _, member := range members {
		if IsNever(member) {
			return Never
		}
	}
	return &IntersectionType{Types: members}
}
