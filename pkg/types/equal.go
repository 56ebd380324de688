package types

// MaxEqualDepth bounds the nesting depth structural comparison will walk.
// Deeper graphs compare unequal rather than overflowing the stack. Cycles are
// caught earlier: a pair met again while it is still being compared is
// assumed equal.
const MaxEqualDepth = 256

// EqualIgnoreSpan reports whether a and b are structurally identical.
// Types carry no position metadata, so this is plain structural equality:
// identifier names (member keys, parameter names, type parameter and
// declaration names) must match. Union and intersection branches, and the
// members of object shapes, are compared as multisets.
func EqualIgnoreSpan(a, b Type) bool {
	return (&comparer{names: true}).types(a, b, 0)
}

// EqualIgnoreNameAndSpan is EqualIgnoreSpan with identifier names erased from
// both sides first. It answers "are these two independently declared shapes
// interchangeable": `{ a: number }` and `{ b: number }` compare equal, as do
// `(x: string) => void` and `(y: string) => void`.
func EqualIgnoreNameAndSpan(a, b Type) bool {
	return (&comparer{names: false}).types(a, b, 0)
}

// MemberEqualIgnoreNameAndSpan compares two members with names erased.
func MemberEqualIgnoreNameAndSpan(a, b Member) bool {
	return (&comparer{names: false}).member(a, b, 0)
}

// comparer is one structural traversal. names selects whether identifier
// names take part in the comparison.
type comparer struct {
	names      bool
	inProgress map[[2]Type]bool
}

func (c *comparer) name(a, b string) bool {
	return !c.names || a == b
}

func (c *comparer) key(a, b PropKey) bool {
	return a.Computed == b.Computed && c.name(a.Name, b.Name)
}

func (c *comparer) types(a, b Type, depth int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if depth > MaxEqualDepth {
		return false
	}
	if a == b {
		return true
	}
	pair := [2]Type{a, b}
	if c.inProgress[pair] {
		return true
	}
	if c.inProgress == nil {
		c.inProgress = make(map[[2]Type]bool)
	}
	c.inProgress[pair] = true
	defer delete(c.inProgress, pair)
	depth++

	switch x := a.(type) {
	case *Keyword:
		y, ok := b.(*Keyword)
		return ok && x.Kind == y.Kind
	case *LiteralType:
		y, ok := b.(*LiteralType)
		return ok && x.sameValue(y)
	case *ArrayType:
		y, ok := b.(*ArrayType)
		return ok && c.types(x.ElementType, y.ElementType, depth)
	case *TupleType:
		y, ok := b.(*TupleType)
		return ok && c.typeList(x.ElementTypes, y.ElementTypes, depth)
	case *UnionType:
		y, ok := b.(*UnionType)
		return ok && matchAll(x.Types, y.Types, func(l, r Type) bool { return c.types(l, r, depth) })
	case *IntersectionType:
		y, ok := b.(*IntersectionType)
		return ok && matchAll(x.Types, y.Types, func(l, r Type) bool { return c.types(l, r, depth) })
	case *TypeLiteral:
		y, ok := b.(*TypeLiteral)
		return ok && c.members(x.Members, y.Members, depth)
	case *InterfaceType:
		y, ok := b.(*InterfaceType)
		return ok && c.name(x.Name, y.Name) &&
			c.typeParams(x.TypeParams, y.TypeParams, depth) &&
			c.members(x.Members, y.Members, depth) &&
			c.typeList(x.Extends, y.Extends, depth)
	case *FunctionType:
		y, ok := b.(*FunctionType)
		return ok && c.signature(x.Signature, y.Signature, depth)
	case *ConstructorType:
		y, ok := b.(*ConstructorType)
		return ok && c.signature(x.Signature, y.Signature, depth)
	case *ClassType:
		y, ok := b.(*ClassType)
		return ok && c.name(x.Name, y.Name) &&
			c.typeParams(x.TypeParams, y.TypeParams, depth) &&
			c.members(x.Members, y.Members, depth) &&
			c.types(x.Super, y.Super, depth)
	case *EnumType:
		y, ok := b.(*EnumType)
		if !ok || !c.name(x.Name, y.Name) || x.IsConst != y.IsConst || len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if !c.name(x.Members[i], y.Members[i]) {
				return false
			}
		}
		return true
	case *EnumVariantType:
		y, ok := b.(*EnumVariantType)
		return ok && c.name(x.EnumName, y.EnumName) && c.name(x.MemberName, y.MemberName)
	case *TypeParameter:
		y, ok := b.(*TypeParameter)
		return ok && c.name(x.Name, y.Name) && c.types(x.Constraint, y.Constraint, depth)
	case *ThisType:
		_, ok := b.(*ThisType)
		return ok
	case *IndexedAccessType:
		y, ok := b.(*IndexedAccessType)
		return ok && c.types(x.Object, y.Object, depth) && c.types(x.Index, y.Index, depth)
	case *OtherType:
		y, ok := b.(*OtherType)
		return ok && x.Raw == y.Raw
	}
	return false
}

func (c *comparer) typeList(a, b []Type, depth int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !c.types(a[i], b[i], depth) {
			return false
		}
	}
	return true
}

func (c *comparer) typeParams(a, b []*TypeParameter, depth int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !c.name(a[i].Name, b[i].Name) || !c.types(a[i].Constraint, b[i].Constraint, depth) {
			return false
		}
	}
	return true
}

func (c *comparer) signature(a, b *Signature, depth int) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !c.typeParams(a.TypeParams, b.TypeParams, depth) || len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !c.pattern(a.Params[i].Pattern, b.Params[i].Pattern) ||
			!c.types(a.Params[i].Type, b.Params[i].Type, depth) {
			return false
		}
	}
	return c.types(a.ReturnType, b.ReturnType, depth)
}

func (c *comparer) pattern(a, b Pattern) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *IdentPattern:
		y, ok := b.(*IdentPattern)
		return ok && x.Optional == y.Optional && c.name(x.Name, y.Name)
	case *ArrayPattern:
		y, ok := b.(*ArrayPattern)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !c.pattern(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case *ObjectPattern:
		y, ok := b.(*ObjectPattern)
		if !ok || len(x.Props) != len(y.Props) || !c.pattern(x.Rest, y.Rest) {
			return false
		}
		for i := range x.Props {
			if !c.key(x.Props[i].Key, y.Props[i].Key) || !c.pattern(x.Props[i].Value, y.Props[i].Value) {
				return false
			}
		}
		return true
	case *RestPattern:
		y, ok := b.(*RestPattern)
		return ok && c.pattern(x.Arg, y.Arg)
	}
	return false
}

func (c *comparer) members(a, b []Member, depth int) bool {
	return matchAll(a, b, func(l, r Member) bool { return c.member(l, r, depth) })
}

func (c *comparer) member(a, b Member, depth int) bool {
	switch x := a.(type) {
	case *PropertySignature:
		y, ok := b.(*PropertySignature)
		return ok && c.key(x.Name, y.Name) && x.Optional == y.Optional &&
			x.Readonly == y.Readonly && c.types(x.Type, y.Type, depth)
	case *MethodSignature:
		y, ok := b.(*MethodSignature)
		return ok && c.key(x.Name, y.Name) && x.Optional == y.Optional &&
			c.signature(x.Signature, y.Signature, depth)
	case *CallSignature:
		y, ok := b.(*CallSignature)
		return ok && c.signature(x.Signature, y.Signature, depth)
	case *ConstructSignature:
		y, ok := b.(*ConstructSignature)
		return ok && c.signature(x.Signature, y.Signature, depth)
	case *IndexSignature:
		y, ok := b.(*IndexSignature)
		return ok && c.name(x.Param, y.Param) && x.Readonly == y.Readonly &&
			c.types(x.KeyType, y.KeyType, depth) && c.types(x.Type, y.Type, depth)
	}
	return false
}

// matchAll reports whether xs and ys are equal as multisets under eq.
func matchAll[T any](xs, ys []T, eq func(a, b T) bool) bool {
	if len(xs) != len(ys) {
		return false
	}
	used := make([]bool, len(ys))
	for _, x := range xs {
		found := false
		for j, y := range ys {
			if !used[j] && eq(x, y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
