package types

import (
	"strings"
)

// --- Members of object shapes ---

// PropKey names a member. Two keys match when both the name and the
// computed-ness agree: `a` and `[a]` are different keys.
type PropKey struct {
	Name     string
	Computed bool
}

func (k PropKey) String() string {
	if k.Computed {
		return "[" + k.Name + "]"
	}
	return k.Name
}

// Member is one element of a TypeLiteral or InterfaceType body.
type Member interface {
	// Key returns the member's key, or false for unnamed members
	// (call, construct and index signatures).
	Key() (PropKey, bool)
	String() string
	memberNode()
}

// PropertySignature is `key?: Type`. A nil Type means the property has no
// annotation and is treated as any.
type PropertySignature struct {
	Name     PropKey
	Type     Type
	Optional bool
	Readonly bool
}

func (p *PropertySignature) Key() (PropKey, bool) { return p.Name, true }
func (p *PropertySignature) memberNode()          {}
func (p *PropertySignature) String() string {
	var b strings.Builder
	if p.Readonly {
		b.WriteString("readonly ")
	}
	b.WriteString(p.Name.String())
	if p.Optional {
		b.WriteString("?")
	}
	if p.Type != nil {
		b.WriteString(": ")
		b.WriteString(p.Type.String())
	}
	return b.String()
}

// MethodSignature is `key(params): Return`.
type MethodSignature struct {
	Name      PropKey
	Optional  bool
	Signature *Signature
}

func (m *MethodSignature) Key() (PropKey, bool) { return m.Name, true }
func (m *MethodSignature) memberNode()          {}
func (m *MethodSignature) String() string {
	opt := ""
	if m.Optional {
		opt = "?"
	}
	return m.Name.String() + opt + m.Signature.render(": ")
}

// CallSignature is `(params): Return` inside an object shape.
type CallSignature struct {
	Signature *Signature
}

func (c *CallSignature) Key() (PropKey, bool) { return PropKey{}, false }
func (c *CallSignature) memberNode()          {}
func (c *CallSignature) String() string       { return c.Signature.render(": ") }

// ConstructSignature is `new (params): Return` inside an object shape.
type ConstructSignature struct {
	Signature *Signature
}

func (c *ConstructSignature) Key() (PropKey, bool) { return PropKey{}, false }
func (c *ConstructSignature) memberNode()          {}
func (c *ConstructSignature) String() string       { return "new " + c.Signature.render(": ") }

// IndexSignature is `[param: KeyType]: Type`.
type IndexSignature struct {
	Param    string
	KeyType  Type
	Type     Type
	Readonly bool
}

func (is *IndexSignature) Key() (PropKey, bool) { return PropKey{}, false }
func (is *IndexSignature) memberNode()          {}
func (is *IndexSignature) String() string {
	ro := ""
	if is.Readonly {
		ro = "readonly "
	}
	return ro + "[" + is.Param + ": " + orAny(is.KeyType).String() + "]: " + orAny(is.Type).String()
}

func renderMembers(members []Member) string {
	if len(members) == 0 {
		return "{}"
	}
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = m.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// --- Object shapes ---

// TypeLiteral is an anonymous structural object type.
type TypeLiteral struct {
	Members []Member
}

// NewTypeLiteral creates a type literal with the given members.
func NewTypeLiteral(members ...Member) *TypeLiteral {
	return &TypeLiteral{Members: members}
}

func (tl *TypeLiteral) String() string         { return renderMembers(tl.Members) }
func (tl *TypeLiteral) typeNode()              {}
func (tl *TypeLiteral) Equals(other Type) bool { return EqualIgnoreSpan(tl, other) }

// The With* builders return a new TypeLiteral; the receiver is not modified.

func (tl *TypeLiteral) with(m Member) *TypeLiteral {
	members := make([]Member, 0, len(tl.Members)+1)
	members = append(members, tl.Members...)
	return &TypeLiteral{Members: append(members, m)}
}

// WithProperty adds a required property.
func (tl *TypeLiteral) WithProperty(name string, propType Type) *TypeLiteral {
	return tl.with(&PropertySignature{Name: PropKey{Name: name}, Type: propType})
}

// WithOptionalProperty adds an optional property.
func (tl *TypeLiteral) WithOptionalProperty(name string, propType Type) *TypeLiteral {
	return tl.with(&PropertySignature{Name: PropKey{Name: name}, Type: propType, Optional: true})
}

// WithReadOnlyProperty adds a readonly property.
func (tl *TypeLiteral) WithReadOnlyProperty(name string, propType Type) *TypeLiteral {
	return tl.with(&PropertySignature{Name: PropKey{Name: name}, Type: propType, Readonly: true})
}

// WithMethod adds a method signature.
func (tl *TypeLiteral) WithMethod(name string, sig *Signature) *TypeLiteral {
	return tl.with(&MethodSignature{Name: PropKey{Name: name}, Signature: sig})
}

// WithCallSignature adds a call signature.
func (tl *TypeLiteral) WithCallSignature(sig *Signature) *TypeLiteral {
	return tl.with(&CallSignature{Signature: sig})
}

// WithConstructSignature adds a construct signature.
func (tl *TypeLiteral) WithConstructSignature(sig *Signature) *TypeLiteral {
	return tl.with(&ConstructSignature{Signature: sig})
}

// InterfaceType is a named object shape declared with `interface`.
type InterfaceType struct {
	Name       string
	TypeParams []*TypeParameter
	Members    []Member
	Extends    []Type
}

func (it *InterfaceType) String() string         { return it.Name }
func (it *InterfaceType) typeNode()              {}
func (it *InterfaceType) Equals(other Type) bool { return EqualIgnoreSpan(it, other) }

// Body renders the interface's members, for diagnostics that need more than the name.
func (it *InterfaceType) Body() string { return renderMembers(it.Members) }

// MembersOf returns the member list of an object-shaped type and whether t
// is one (type literal, interface or class).
func MembersOf(t Type) ([]Member, bool) {
	switch o := t.(type) {
	case *TypeLiteral:
		return o.Members, true
	case *InterfaceType:
		return o.Members, true
	case *ClassType:
		return o.Members, true
	}
	return nil, false
}

// FindMembers returns the members of members whose key equals key, in
// declaration order.
func FindMembers(members []Member, key PropKey) []Member {
	var found []Member
	for _, m := range members {
		if k, ok := m.Key(); ok && k == key {
			found = append(found, m)
		}
	}
	return found
}

// AllMembers is MembersOf plus the members an interface inherits through
// extends or a class through its superclass. Own members come first.
func AllMembers(t Type) ([]Member, bool) {
	return allMembers(t, 0)
}

func allMembers(t Type, depth int) ([]Member, bool) {
	members, ok := MembersOf(t)
	if !ok || depth > DefaultMaxDepth {
		return members, ok
	}
	var bases []Type
	switch t := t.(type) {
	case *InterfaceType:
		bases = t.Extends
	case *ClassType:
		if t.Super != nil {
			bases = []Type{t.Super}
		}
	}
	if len(bases) == 0 {
		return members, true
	}
	all := append([]Member(nil), members...)
	for _, b := range bases {
		if inherited, ok := allMembers(b, depth+1); ok {
			all = append(all, inherited...)
		}
	}
	return all, true
}
