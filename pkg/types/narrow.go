package types

// RemoveFalsy returns t with the branches that can only be falsy removed:
// `undefined`, `null` and the literal `false` become never. Union branches
// that become never are dropped; an intersection containing a never branch
// collapses to never.
func RemoveFalsy(t Type) Type {
	return removeBranches(t, func(b Type) bool {
		if IsKeyword(b, KindUndefined) || IsKeyword(b, KindNull) {
			return true
		}
		lit, ok := b.(*LiteralType)
		return ok && lit.Kind == BooleanLiteral && !lit.Bool
	})
}

// RemoveTruthy is the dual of RemoveFalsy: the literal `true` becomes never.
func RemoveTruthy(t Type) Type {
	return removeBranches(t, func(b Type) bool {
		lit, ok := b.(*LiteralType)
		return ok && lit.Kind == BooleanLiteral && lit.Bool
	})
}

// RemoveNullUndefined drops `null` and `undefined` from t, as a non-null
// assertion does. Unlike RemoveFalsy it keeps `false`.
func RemoveNullUndefined(t Type) Type {
	return removeBranches(t, func(b Type) bool {
		return IsKeyword(b, KindUndefined) || IsKeyword(b, KindNull)
	})
}

func removeBranches(t Type, drop func(Type) bool) Type {
	switch t := t.(type) {
	case *UnionType:
		kept := make([]Type, 0, len(t.Types))
		for _, b := range t.Types {
			if nb := removeBranches(b, drop); !IsNever(nb) {
				kept = append(kept, nb)
			}
		}
		return NewUnionType(kept...)
	case *IntersectionType:
		branches := make([]Type, 0, len(t.Types))
		for _, b := range t.Types {
			nb := removeBranches(b, drop)
			if IsNever(nb) {
				return Never
			}
			branches = append(branches, nb)
		}
		return NewIntersectionType(branches...)
	}
	if drop(t) {
		return Never
	}
	return t
}

// Negate returns the type of `!x` given the type of x. For a literal the
// result is the boolean literal of its negated truthiness (`!0` is true,
// `!"a"` is false); any other type yields boolean.
func Negate(t Type) Type {
	lit, ok := t.(*LiteralType)
	if !ok {
		return Boolean
	}
	return NewBooleanLiteral(!lit.Truthy())
}
