package types

import "strings"

// EnumType represents an enum declaration (e.g., Color with members Red, Green, Blue)
type EnumType struct {
	Name    string
	Members []string // member names in declaration order
	IsConst bool     // True for const enums
}

func (e *EnumType) String() string         { return e.Name }
func (e *EnumType) typeNode()              {}
func (e *EnumType) Equals(other Type) bool { return EqualIgnoreSpan(e, other) }

// TypeString renders the enum as the union of its members.
func (e *EnumType) TypeString() string {
	parts := make([]string, len(e.Members))
	for i, m := range e.Members {
		parts[i] = e.Name + "." + m
	}
	return strings.Join(parts, " | ")
}

// Variant returns the variant type for member, or false if the enum has no such member.
func (e *EnumType) Variant(member string) (*EnumVariantType, bool) {
	for _, m := range e.Members {
		if m == member {
			return &EnumVariantType{EnumName: e.Name, MemberName: m}, true
		}
	}
	return nil, false
}

// EnumVariantType represents a specific enum member literal type (e.g., Color.Red)
type EnumVariantType struct {
	EnumName   string
	MemberName string
}

func (em *EnumVariantType) String() string         { return em.EnumName + "." + em.MemberName }
func (em *EnumVariantType) typeNode()              {}
func (em *EnumVariantType) Equals(other Type) bool { return EqualIgnoreSpan(em, other) }
