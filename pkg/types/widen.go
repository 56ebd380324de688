package types

// --- Type Widening ---

// GeneralizeLit converts a literal type to its primitive base keyword
// (`true` -> boolean, `42` -> number, `"a"` -> string). Every other shape,
// including unions of literals, is returned unchanged.
func GeneralizeLit(t Type) Type {
	lit, ok := t.(*LiteralType)
	if !ok {
		return t
	}
	switch lit.Kind {
	case BooleanLiteral:
		return Boolean
	case NumberLiteral:
		return Number
	case StringLiteral:
		return String
	}
	return t
}

// --- Predicates ---
// All predicates look through union branches (true if any branch matches)
// and treat the polymorphic `this` type as matching nothing.

// IsAny reports whether t is `any`. A nil type is a missing annotation and
// counts as `any`.
func IsAny(t Type) bool {
	if t == nil {
		return true
	}
	return anyBranch(t, func(b Type) bool { return IsKeyword(b, KindAny) })
}

// IsUnknown reports whether t is (or has a branch that is) `unknown`. A
// missing annotation may hold anything, so nil counts.
func IsUnknown(t Type) bool {
	if t == nil {
		return true
	}
	return anyBranch(t, func(b Type) bool { return IsKeyword(b, KindUnknown) })
}

// ContainsUndefined reports whether t is, or has a branch that is,
// `undefined`. Like IsAny and IsUnknown it is true for nil.
func ContainsUndefined(t Type) bool {
	if t == nil {
		return true
	}
	return anyBranch(t, func(b Type) bool { return IsKeyword(b, KindUndefined) })
}

// ContainsVoid reports whether t is, or has a branch that is, `void`.
func ContainsVoid(t Type) bool {
	return anyBranch(t, func(b Type) bool { return IsKeyword(b, KindVoid) })
}

func anyBranch(t Type, pred func(Type) bool) bool {
	switch t := t.(type) {
	case nil, *ThisType:
		return false
	case *UnionType:
		for _, b := range t.Types {
			if anyBranch(b, pred) {
				return true
			}
		}
		return false
	}
	return pred(t)
}
