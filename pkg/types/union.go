package types

import "strings"

// --- Union Types ---

// UnionType represents a union of multiple types (e.g., string | number).
// Branch order is preserved as written; equality ignores it.
type UnionType struct {
	Types []Type
}

func (ut *UnionType) String() string {
	if len(ut.Types) == 0 {
		return "never"
	}
	parts := make([]string, len(ut.Types))
	for i, t := range ut.Types {
		if _, isFn := t.(*FunctionType); isFn {
			parts[i] = "(" + t.String() + ")"
		} else {
			parts[i] = t.String()
		}
	}
	return strings.Join(parts, " | ")
}
func (ut *UnionType) typeNode()              {}
func (ut *UnionType) Equals(other Type) bool { return EqualIgnoreSpan(ut, other) }

// NewUnionType creates a new union type from the given types.
// It flattens nested unions, drops `never` and removes duplicate types using
// structural equality, keeping the first occurrence of each.
// Zero remaining members yield never; one yields that member.
func NewUnionType(ts ...Type) Type {
	members := make([]Type, 0, len(ts))

	var collect func(t Type)
	collect = func(t Type) {
		if t == nil {
			return
		}
		if union, ok := t.(*UnionType); ok {
			for _, member := range union.Types {
				collect(member)
			}
			return
		}
		if IsNever(t) {
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
		return Never
	case 1:
		return members[0]
	}
	return &UnionType{Types: members}
}
