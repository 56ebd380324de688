package ast

import (
	"bytes"
	"strconv"
	"strings"

	"tsinfer/pkg/types"
)

// --- Literals ---

// Identifier is a name reference. It is also a binding pattern.
type Identifier struct {
	BaseExpression
	Value string
}

func (i *Identifier) patternNode()   {}
func (i *Identifier) String() string { return i.Value }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	BaseExpression
	Value bool
}

func (b *BooleanLiteral) String() string { return strconv.FormatBool(b.Value) }

// NumberLiteral is a numeric literal.
type NumberLiteral struct {
	BaseExpression
	Value float64
}

func (n *NumberLiteral) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// StringLiteral is a quoted string.
type StringLiteral struct {
	BaseExpression
	Value string
}

func (s *StringLiteral) String() string { return strconv.Quote(s.Value) }

// NullLiteral is `null`.
type NullLiteral struct {
	BaseExpression
}

func (nl *NullLiteral) String() string { return "null" }

// RegexLiteral is `/pattern/flags`.
type RegexLiteral struct {
	BaseExpression
	Pattern string
	Flags   string
}

func (rl *RegexLiteral) String() string { return "/" + rl.Pattern + "/" + rl.Flags }

// TemplateLiteral is a backtick string. Quasis holds the literal chunks and
// always has one more element than Expressions.
type TemplateLiteral struct {
	BaseExpression
	Quasis      []string
	Expressions []Expression
}

func (tl *TemplateLiteral) String() string {
	var out bytes.Buffer
	out.WriteString("`")
	for i, q := range tl.Quasis {
		out.WriteString(q)
		if i < len(tl.Expressions) {
			out.WriteString("${")
			out.WriteString(tl.Expressions[i].String())
			out.WriteString("}")
		}
	}
	out.WriteString("`")
	return out.String()
}

// ThisExpression is `this`.
type ThisExpression struct {
	BaseExpression
}

func (te *ThisExpression) String() string { return "this" }

// SuperExpression is `super`, only valid as a callee or member object.
type SuperExpression struct {
	BaseExpression
}

func (se *SuperExpression) String() string { return "super" }

// ArrayLiteral is `[a, , ...b]`. Nil elements are holes.
type ArrayLiteral struct {
	BaseExpression
	Elements []Expression
}

func (al *ArrayLiteral) String() string {
	return "[" + joinExpressions(al.Elements, ", ") + "]"
}

// SpreadElement is `...expr` inside an array, call or object literal.
type SpreadElement struct {
	BaseExpression
	Argument Expression
}

func (se *SpreadElement) String() string { return "..." + se.Argument.String() }

// ObjectProperty is one entry of an object literal. Key is an Identifier,
// StringLiteral or NumberLiteral, or any expression when Computed. A spread
// entry has a nil Key and a *SpreadElement Value. Shorthand `{x}` has Key
// and Value both set to the identifier.
type ObjectProperty struct {
	Key       Expression
	Value     Expression
	Computed  bool
	Shorthand bool
}

func (op *ObjectProperty) String() string {
	if op.Key == nil {
		return op.Value.String()
	}
	if op.Shorthand {
		return op.Key.String()
	}
	key := op.Key.String()
	if op.Computed {
		key = "[" + key + "]"
	}
	return key + ": " + op.Value.String()
}

// ObjectLiteral is `{ key: value, ... }`, in source order.
type ObjectLiteral struct {
	BaseExpression
	Properties []*ObjectProperty
}

func (ol *ObjectLiteral) String() string {
	props := make([]string, len(ol.Properties))
	for i, p := range ol.Properties {
		props[i] = p.String()
	}
	return "{" + strings.Join(props, ", ") + "}"
}

// --- Operators ---

// ParenthesizedExpression is `(expr)`.
type ParenthesizedExpression struct {
	BaseExpression
	Expression Expression
}

func (pe *ParenthesizedExpression) String() string { return "(" + pe.Expression.String() + ")" }

// PrefixExpression is a unary operator: `!x`, `-x`, `+x`, `~x`, `delete x`.
type PrefixExpression struct {
	BaseExpression
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) String() string {
	sep := ""
	if pe.Operator == "delete" {
		sep = " "
	}
	return "(" + pe.Operator + sep + pe.Right.String() + ")"
}

// TypeofExpression is `typeof operand`.
type TypeofExpression struct {
	BaseExpression
	Operand Expression
}

func (te *TypeofExpression) String() string { return "typeof " + te.Operand.String() }

// VoidExpression is `void operand`.
type VoidExpression struct {
	BaseExpression
	Operand Expression
}

func (ve *VoidExpression) String() string { return "void " + ve.Operand.String() }

// UpdateExpression is `++x`, `x--` and friends.
type UpdateExpression struct {
	BaseExpression
	Operator string // "++" or "--"
	Argument Expression
	Prefix   bool
}

func (ue *UpdateExpression) String() string {
	if ue.Prefix {
		return ue.Operator + ue.Argument.String()
	}
	return ue.Argument.String() + ue.Operator
}

// InfixExpression is a binary or logical operator: `a + b`, `a && b`, `a ?? b`.
type InfixExpression struct {
	BaseExpression
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// TernaryExpression is `cond ? a : b`.
type TernaryExpression struct {
	BaseExpression
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (te *TernaryExpression) String() string {
	return "(" + te.Condition.String() + " ? " + te.Consequence.String() + " : " + te.Alternative.String() + ")"
}

// AssignmentExpression is `left op= value`.
type AssignmentExpression struct {
	BaseExpression
	Operator string // "=", "+=", ...
	Left     Expression
	Value    Expression
}

func (ae *AssignmentExpression) String() string {
	return "(" + ae.Left.String() + " " + ae.Operator + " " + ae.Value.String() + ")"
}

// SequenceExpression is `a, b, c`.
type SequenceExpression struct {
	BaseExpression
	Expressions []Expression
}

func (se *SequenceExpression) String() string {
	return "(" + joinExpressions(se.Expressions, ", ") + ")"
}

// --- Calls and member access ---

// CallExpression is `callee<TypeArgs>(args)`.
type CallExpression struct {
	BaseExpression
	Function      Expression
	TypeArguments []types.Type
	Arguments     []Expression
}

func (ce *CallExpression) String() string {
	return ce.Function.String() + typeArgs(ce.TypeArguments) + "(" + joinExpressions(ce.Arguments, ", ") + ")"
}

// NewExpression is `new callee<TypeArgs>(args)`.
type NewExpression struct {
	BaseExpression
	Constructor   Expression
	TypeArguments []types.Type
	Arguments     []Expression
}

func (ne *NewExpression) String() string {
	return "new " + ne.Constructor.String() + typeArgs(ne.TypeArguments) + "(" + joinExpressions(ne.Arguments, ", ") + ")"
}

// MemberExpression is `object.property`.
type MemberExpression struct {
	BaseExpression
	Object   Expression
	Property *Identifier
}

func (me *MemberExpression) String() string {
	return me.Object.String() + "." + me.Property.String()
}

// IndexExpression is the computed member access `left[index]`.
type IndexExpression struct {
	BaseExpression
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) String() string {
	return ie.Left.String() + "[" + ie.Index.String() + "]"
}

// --- Type-level expressions ---

// TypeAssertionExpression is the angle-bracket assertion `<T>expr`.
type TypeAssertionExpression struct {
	BaseExpression
	Expression Expression
	Type       types.Type
}

func (ta *TypeAssertionExpression) String() string {
	return "<" + ta.Type.String() + ">" + ta.Expression.String()
}

// AsExpression is the cast `expr as T`.
type AsExpression struct {
	BaseExpression
	Expression Expression
	Type       types.Type
}

func (ae *AsExpression) String() string {
	return "(" + ae.Expression.String() + " as " + ae.Type.String() + ")"
}

// NonNullExpression is the assertion `expr!`.
type NonNullExpression struct {
	BaseExpression
	Expression Expression
}

func (nn *NonNullExpression) String() string { return nn.Expression.String() + "!" }

// --- Shapes the checker does not infer ---

// AwaitExpression is `await expr`.
type AwaitExpression struct {
	BaseExpression
	Argument Expression
}

func (ae *AwaitExpression) String() string { return "await " + ae.Argument.String() }

// YieldExpression is `yield expr` or `yield* expr`.
type YieldExpression struct {
	BaseExpression
	Argument Expression // nil for a bare yield
	Delegate bool
}

func (ye *YieldExpression) String() string {
	kw := "yield"
	if ye.Delegate {
		kw = "yield*"
	}
	if ye.Argument == nil {
		return kw
	}
	return kw + " " + ye.Argument.String()
}

// MetaProperty is `new.target` or `import.meta`.
type MetaProperty struct {
	BaseExpression
	Meta     string
	Property string
}

func (mp *MetaProperty) String() string { return mp.Meta + "." + mp.Property }
