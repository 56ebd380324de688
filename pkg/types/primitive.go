package types

import (
	"math"
	"strconv"
)

// --- Keyword Types ---

// KeywordKind enumerates the keyword types.
type KeywordKind int

const (
	KindAny KeywordKind = iota
	KindUnknown
	KindString
	KindNumber
	KindBoolean
	KindBigInt
	KindSymbol
	KindVoid
	KindNull
	KindUndefined
	KindObject
	KindNever
)

var keywordNames = [...]string{
	KindAny:       "any",
	KindUnknown:   "unknown",
	KindString:    "string",
	KindNumber:    "number",
	KindBoolean:   "boolean",
	KindBigInt:    "bigint",
	KindSymbol:    "symbol",
	KindVoid:      "void",
	KindNull:      "null",
	KindUndefined: "undefined",
	KindObject:    "object",
	KindNever:     "never",
}

func (k KeywordKind) String() string {
	if int(k) >= 0 && int(k) < len(keywordNames) {
		return keywordNames[k]
	}
	return "keyword(" + strconv.Itoa(int(k)) + ")"
}

// Keyword represents a keyword type such as `number` or `never`.
type Keyword struct {
	Kind KeywordKind
}

func (k *Keyword) String() string         { return k.Kind.String() }
func (k *Keyword) typeNode()              {}
func (k *Keyword) Equals(other Type) bool { return EqualIgnoreSpan(k, other) }

// Pre-defined instances for every keyword type
var (
	Any       = &Keyword{Kind: KindAny}
	Unknown   = &Keyword{Kind: KindUnknown}
	String    = &Keyword{Kind: KindString}
	Number    = &Keyword{Kind: KindNumber}
	Boolean   = &Keyword{Kind: KindBoolean}
	BigInt    = &Keyword{Kind: KindBigInt}
	Symbol    = &Keyword{Kind: KindSymbol}
	Void      = &Keyword{Kind: KindVoid}
	Null      = &Keyword{Kind: KindNull}
	Undefined = &Keyword{Kind: KindUndefined}
	Object    = &Keyword{Kind: KindObject}
	Never     = &Keyword{Kind: KindNever}
)

var keywordsByKind = [...]*Keyword{
	KindAny: Any, KindUnknown: Unknown, KindString: String, KindNumber: Number,
	KindBoolean: Boolean, KindBigInt: BigInt, KindSymbol: Symbol, KindVoid: Void,
	KindNull: Null, KindUndefined: Undefined, KindObject: Object, KindNever: Never,
}

// KeywordOf returns the shared instance for kind.
func KeywordOf(kind KeywordKind) *Keyword {
	if int(kind) >= 0 && int(kind) < len(keywordsByKind) {
		return keywordsByKind[kind]
	}
	return &Keyword{Kind: kind}
}

// KeywordByName looks up a keyword type by its TypeScript spelling.
func KeywordByName(name string) (*Keyword, bool) {
	for kind, n := range keywordNames {
		if n == name {
			return keywordsByKind[kind], true
		}
	}
	return nil, false
}

// IsKeyword reports whether t is the keyword type of the given kind.
func IsKeyword(t Type, kind KeywordKind) bool {
	k, ok := t.(*Keyword)
	return ok && k.Kind == kind
}

// IsNever reports whether t is `never`.
func IsNever(t Type) bool { return IsKeyword(t, KindNever) }

// --- Literal Types ---

// LiteralKind distinguishes boolean, number and string literal types.
type LiteralKind int

const (
	BooleanLiteral LiteralKind = iota
	NumberLiteral
	StringLiteral
)

// LiteralType represents a specific literal value used as a type. It is
// always a leaf: it never contains nested types.
type LiteralType struct {
	Kind   LiteralKind
	Bool   bool    // valid when Kind == BooleanLiteral
	Number float64 // valid when Kind == NumberLiteral
	Str    string  // valid when Kind == StringLiteral
}

// NewBooleanLiteral returns the literal type `true` or `false`.
func NewBooleanLiteral(v bool) *LiteralType {
	return &LiteralType{Kind: BooleanLiteral, Bool: v}
}

// NewNumberLiteral returns a numeric literal type.
func NewNumberLiteral(v float64) *LiteralType {
	return &LiteralType{Kind: NumberLiteral, Number: v}
}

// NewStringLiteral returns a string literal type.
func NewStringLiteral(v string) *LiteralType {
	return &LiteralType{Kind: StringLiteral, Str: v}
}

func (lt *LiteralType) String() string {
	switch lt.Kind {
	case BooleanLiteral:
		return strconv.FormatBool(lt.Bool)
	case NumberLiteral:
		return formatNumber(lt.Number)
	default:
		return strconv.Quote(lt.Str)
	}
}
func (lt *LiteralType) typeNode()              {}
func (lt *LiteralType) Equals(other Type) bool { return EqualIgnoreSpan(lt, other) }

// Truthy reports whether the literal's value is truthy at runtime.
func (lt *LiteralType) Truthy() bool {
	switch lt.Kind {
	case BooleanLiteral:
		return lt.Bool
	case NumberLiteral:
		return lt.Number != 0 && !math.IsNaN(lt.Number)
	default:
		return lt.Str != ""
	}
}

// sameValue compares two literal values of the same kind. NaN literals are
// equal to each other as types.
func (lt *LiteralType) sameValue(o *LiteralType) bool {
	if lt.Kind != o.Kind {
		return false
	}
	switch lt.Kind {
	case BooleanLiteral:
		return lt.Bool == o.Bool
	case NumberLiteral:
		if math.IsNaN(lt.Number) && math.IsNaN(o.Number) {
			return true
		}
		return lt.Number == o.Number
	default:
		return lt.Str == o.Str
	}
}

// IsLiteral returns true if the type is a literal type
func IsLiteral(t Type) bool {
	_, ok := t.(*LiteralType)
	return ok
}

func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
