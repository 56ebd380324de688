package types

import (
	"strings"
)

// --- Parameter patterns ---

// Pattern is the binding form of a signature parameter.
type Pattern interface {
	String() string
	patternNode()
}

// IdentPattern binds a single name.
type IdentPattern struct {
	Name     string
	Optional bool
}

func (p *IdentPattern) patternNode() {}
func (p *IdentPattern) String() string {
	if p.Optional {
		return p.Name + "?"
	}
	return p.Name
}

// ArrayPattern is `[a, , b]`. Nil elements are holes.
type ArrayPattern struct {
	Elements []Pattern
}

func (p *ArrayPattern) patternNode() {}
func (p *ArrayPattern) String() string {
	parts := make([]string, len(p.Elements))
	for i, e := range p.Elements {
		if e != nil {
			parts[i] = e.String()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectPatternProp is one `key: value` entry of an object pattern.
type ObjectPatternProp struct {
	Key   PropKey
	Value Pattern
}

// ObjectPattern is `{ a, b: c, ...rest }`.
type ObjectPattern struct {
	Props []ObjectPatternProp
	Rest  Pattern // nil without a rest element
}

func (p *ObjectPattern) patternNode() {}
func (p *ObjectPattern) String() string {
	parts := make([]string, len(p.Props))
	for i, prop := range p.Props {
		if ident, ok := prop.Value.(*IdentPattern); ok && !prop.Key.Computed && ident.Name == prop.Key.Name {
			parts[i] = prop.Key.String()
			continue
		}
		parts[i] = prop.Key.String() + ": " + prop.Value.String()
	}
	if p.Rest != nil {
		parts = append(parts, "..."+p.Rest.String())
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// RestPattern is `...arg`.
type RestPattern struct {
	Arg Pattern
}

func (p *RestPattern) patternNode()   {}
func (p *RestPattern) String() string { return "..." + p.Arg.String() }

// --- Signatures ---

// Param is one parameter of a signature. Type is nil when unannotated.
type Param struct {
	Pattern Pattern
	Type    Type
}

// NewParam returns a simple named parameter.
func NewParam(name string, t Type) Param {
	return Param{Pattern: &IdentPattern{Name: name}, Type: t}
}

// NewRestParam returns `...name: t`.
func NewRestParam(name string, t Type) Param {
	return Param{Pattern: &RestPattern{Arg: &IdentPattern{Name: name}}, Type: t}
}

// IsRest reports whether p is a rest parameter.
func (p Param) IsRest() bool {
	_, ok := p.Pattern.(*RestPattern)
	return ok
}

// IsOptional reports whether p may be omitted by callers.
func (p Param) IsOptional() bool {
	ident, ok := p.Pattern.(*IdentPattern)
	return ok && ident.Optional
}

func (p Param) String() string {
	name := "_"
	if p.Pattern != nil {
		name = p.Pattern.String()
	}
	if p.Type == nil {
		return name
	}
	return name + ": " + p.Type.String()
}

// Signature represents a function, method, call or construct signature.
type Signature struct {
	TypeParams []*TypeParameter
	Params     []Param
	ReturnType Type
}

// NewSignature builds a signature with the given parameters returning void.
// Chain Returns / WithTypeParams to complete it.
func NewSignature(params ...Param) *Signature {
	return &Signature{Params: params, ReturnType: Void}
}

// Returns sets the return type.
func (sig *Signature) Returns(returnType Type) *Signature {
	sig.ReturnType = returnType
	return sig
}

// WithTypeParams sets the type parameter list.
func (sig *Signature) WithTypeParams(params ...*TypeParameter) *Signature {
	sig.TypeParams = params
	return sig
}

func (sig *Signature) String() string { return sig.render(" => ") }

func (sig *Signature) render(arrow string) string {
	var b strings.Builder
	if len(sig.TypeParams) > 0 {
		b.WriteString("<")
		for i, tp := range sig.TypeParams {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(tp.Declaration())
		}
		b.WriteString(">")
	}
	b.WriteString("(")
	for i, p := range sig.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(")")
	b.WriteString(arrow)
	b.WriteString(orAny(sig.ReturnType).String())
	return b.String()
}

// --- Function and constructor types ---

// FunctionType is `(params) => Return`.
type FunctionType struct {
	Signature *Signature
}

// NewFunctionType wraps sig as a function type.
func NewFunctionType(sig *Signature) *FunctionType {
	return &FunctionType{Signature: sig}
}

func (ft *FunctionType) String() string         { return ft.Signature.String() }
func (ft *FunctionType) typeNode()              {}
func (ft *FunctionType) Equals(other Type) bool { return EqualIgnoreSpan(ft, other) }

// ConstructorType is `new (params) => Instance`.
type ConstructorType struct {
	Signature *Signature
}

// NewConstructorType wraps sig as a constructor type.
func NewConstructorType(sig *Signature) *ConstructorType {
	return &ConstructorType{Signature: sig}
}

func (ct *ConstructorType) String() string         { return "new " + ct.Signature.String() }
func (ct *ConstructorType) typeNode()              {}
func (ct *ConstructorType) Equals(other Type) bool { return EqualIgnoreSpan(ct, other) }
