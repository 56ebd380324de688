package ast

import (
	"bytes"
	"strings"

	"tsinfer/pkg/source"
	"tsinfer/pkg/types"
)

// --- Binding patterns ---

// BasePattern carries the span shared by pattern nodes.
type BasePattern struct {
	Span source.Span
}

func (bp *BasePattern) Pos() source.Span { return bp.Span }
func (bp *BasePattern) patternNode()     {}

// ArrayPattern is `[a, , b]`. Nil elements are holes.
type ArrayPattern struct {
	BasePattern
	Elements []Pattern
}

func (ap *ArrayPattern) String() string {
	parts := make([]string, len(ap.Elements))
	for i, e := range ap.Elements {
		if e != nil {
			parts[i] = e.String()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectPatternProperty is one `key: value` entry of an object pattern.
// Key is an Identifier, StringLiteral or NumberLiteral, or any expression
// when Computed.
type ObjectPatternProperty struct {
	Key      Expression
	Value    Pattern
	Computed bool
}

// ObjectPattern is `{ a, b: c, ...rest }`.
type ObjectPattern struct {
	BasePattern
	Properties []*ObjectPatternProperty
	Rest       Pattern // nil when there is no rest element
}

func (op *ObjectPattern) String() string {
	parts := make([]string, 0, len(op.Properties)+1)
	for _, p := range op.Properties {
		key := p.Key.String()
		if p.Computed {
			key = "[" + key + "]"
		}
		parts = append(parts, key+": "+p.Value.String())
	}
	if op.Rest != nil {
		parts = append(parts, "..."+op.Rest.String())
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// RestElement is `...arg` in a parameter list or array pattern.
type RestElement struct {
	BasePattern
	Argument Pattern
}

func (re *RestElement) String() string { return "..." + re.Argument.String() }

// AssignPattern is a pattern with a default value: `x = 1`.
type AssignPattern struct {
	BasePattern
	Left    Pattern
	Default Expression
}

func (ap *AssignPattern) String() string { return ap.Left.String() + " = " + ap.Default.String() }

// --- Functions ---

// Parameter is one entry of a parameter list. Accessibility and Readonly
// are set on constructor parameter properties (`constructor(private x)`).
type Parameter struct {
	Span           source.Span
	Pattern        Pattern
	TypeAnnotation types.Type // nil when unannotated
	Optional       bool
	Accessibility  string // "", "public", "private" or "protected"
	Readonly       bool
}

func (p *Parameter) Pos() source.Span { return p.Span }

// IsParameterProperty reports whether the parameter also declares a class
// property.
func (p *Parameter) IsParameterProperty() bool {
	return p.Accessibility != "" || p.Readonly
}

func (p *Parameter) String() string {
	var out bytes.Buffer
	if p.Accessibility != "" {
		out.WriteString(p.Accessibility + " ")
	}
	if p.Readonly {
		out.WriteString("readonly ")
	}
	out.WriteString(p.Pattern.String())
	if p.Optional {
		out.WriteString("?")
	}
	if p.TypeAnnotation != nil {
		out.WriteString(": ")
		out.WriteString(p.TypeAnnotation.String())
	}
	return out.String()
}

func joinParams(params []*Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// FunctionLiteral is a function expression or the function part of a
// declaration or method.
// function <Name><TypeParams>(<Parameters>): <ReturnTypeAnnotation> { <Body> }
type FunctionLiteral struct {
	BaseExpression
	Name                 *Identifier // nil for anonymous functions
	TypeParams           []*types.TypeParameter
	Parameters           []*Parameter
	ReturnTypeAnnotation types.Type // nil when the return type is inferred
	Body                 *BlockStatement
	IsAsync              bool
	IsGenerator          bool
}

func (fl *FunctionLiteral) String() string {
	var out bytes.Buffer
	if fl.IsAsync {
		out.WriteString("async ")
	}
	out.WriteString("function")
	if fl.IsGenerator {
		out.WriteString("*")
	}
	if fl.Name != nil {
		out.WriteString(" ")
		out.WriteString(fl.Name.String())
	}
	out.WriteString("(")
	out.WriteString(joinParams(fl.Parameters))
	out.WriteString(")")
	if fl.ReturnTypeAnnotation != nil {
		out.WriteString(": ")
		out.WriteString(fl.ReturnTypeAnnotation.String())
	}
	if fl.Body != nil {
		out.WriteString(" ")
		out.WriteString(fl.Body.String())
	}
	return out.String()
}

// ArrowFunctionLiteral is `(params) => body`. Body is an Expression or a
// *BlockStatement.
type ArrowFunctionLiteral struct {
	BaseExpression
	Parameters           []*Parameter
	ReturnTypeAnnotation types.Type
	Body                 Node
	IsAsync              bool
}

func (afl *ArrowFunctionLiteral) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(joinParams(afl.Parameters))
	out.WriteString(")")
	if afl.ReturnTypeAnnotation != nil {
		out.WriteString(": ")
		out.WriteString(afl.ReturnTypeAnnotation.String())
	}
	out.WriteString(" => ")
	if afl.Body != nil {
		out.WriteString(afl.Body.String())
	}
	return out.String()
}

// --- Classes ---

// ClassMember is one element of a class body.
type ClassMember interface {
	Node
	classMemberNode()
}

// ClassProperty is a field declaration: `readonly key?: T = value`.
type ClassProperty struct {
	Span           source.Span
	Key            Expression
	Computed       bool
	TypeAnnotation types.Type // nil when unannotated
	Value          Expression // nil without an initializer
	Optional       bool
	Readonly       bool
	IsStatic       bool
}

func (cp *ClassProperty) Pos() source.Span { return cp.Span }
func (cp *ClassProperty) classMemberNode() {}
func (cp *ClassProperty) String() string {
	var out bytes.Buffer
	if cp.IsStatic {
		out.WriteString("static ")
	}
	if cp.Readonly {
		out.WriteString("readonly ")
	}
	key := cp.Key.String()
	if cp.Computed {
		key = "[" + key + "]"
	}
	out.WriteString(key)
	if cp.Optional {
		out.WriteString("?")
	}
	if cp.TypeAnnotation != nil {
		out.WriteString(": " + cp.TypeAnnotation.String())
	}
	if cp.Value != nil {
		out.WriteString(" = " + cp.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// MethodKind distinguishes constructors, methods and accessors.
type MethodKind int

const (
	MethodKindMethod MethodKind = iota
	MethodKindConstructor
	MethodKindGetter
	MethodKindSetter
)

// ClassMethod is a constructor, method or accessor.
type ClassMethod struct {
	Span     source.Span
	Kind     MethodKind
	Key      Expression // nil for constructors
	Computed bool
	Function *FunctionLiteral
	IsStatic bool
}

func (cm *ClassMethod) Pos() source.Span { return cm.Span }
func (cm *ClassMethod) classMemberNode() {}
func (cm *ClassMethod) String() string {
	var out bytes.Buffer
	if cm.IsStatic {
		out.WriteString("static ")
	}
	switch cm.Kind {
	case MethodKindConstructor:
		out.WriteString("constructor")
	case MethodKindGetter:
		out.WriteString("get ")
	case MethodKindSetter:
		out.WriteString("set ")
	}
	if cm.Key != nil {
		key := cm.Key.String()
		if cm.Computed {
			key = "[" + key + "]"
		}
		out.WriteString(key)
	}
	out.WriteString("(" + joinParams(cm.Function.Parameters) + ")")
	if cm.Function.Body != nil {
		out.WriteString(" " + cm.Function.Body.String())
	}
	return out.String()
}

// ClassIndexSignature is `[key: string]: T` inside a class body.
type ClassIndexSignature struct {
	Span      source.Span
	Signature *types.IndexSignature
}

func (ci *ClassIndexSignature) Pos() source.Span { return ci.Span }
func (ci *ClassIndexSignature) classMemberNode() {}
func (ci *ClassIndexSignature) String() string   { return ci.Signature.String() + ";" }

// ClassExpression is `class Name extends Super { body }`.
type ClassExpression struct {
	BaseExpression
	Name       *Identifier // nil for anonymous classes
	SuperClass Expression  // nil without extends
	Body       []ClassMember
}

func (ce *ClassExpression) String() string {
	var out bytes.Buffer
	out.WriteString("class")
	if ce.Name != nil {
		out.WriteString(" " + ce.Name.String())
	}
	if ce.SuperClass != nil {
		out.WriteString(" extends " + ce.SuperClass.String())
	}
	out.WriteString(" {\n")
	for _, m := range ce.Body {
		out.WriteString("\t" + m.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}
