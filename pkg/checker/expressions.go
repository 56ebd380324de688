package checker

import (
	"slices"
	"strconv"

	"github.com/dlclark/regexp2"

	"tsinfer/pkg/ast"
	"tsinfer/pkg/source"
	"tsinfer/pkg/types"
)

// TypeOf infers the static type of expr. It never mutates the scope.
func (c *Checker) TypeOf(expr ast.Expression) (types.Type, error) {
	if expr == nil {
		return nil, types.Unsupportedf(source.Span{}, "missing expression")
	}
	if err := c.enter(expr.Pos()); err != nil {
		return nil, err
	}
	defer c.leave()

	typ, err := c.typeOf(expr)
	if c.tracing() {
		if err != nil {
			c.log.Debug("typeOf failed", "expr", expr.String(), "err", err)
		} else {
			c.log.Debug("typeOf", "expr", expr.String(), "type", typ.String())
		}
	}
	return typ, err
}

func (c *Checker) typeOf(expr ast.Expression) (types.Type, error) {
	span := expr.Pos()
	switch node := expr.(type) {
	// --- Literals ---
	case *ast.BooleanLiteral:
		return types.NewBooleanLiteral(node.Value), nil
	case *ast.NumberLiteral:
		return types.NewNumberLiteral(node.Value), nil
	case *ast.StringLiteral:
		return types.NewStringLiteral(node.Value), nil
	case *ast.NullLiteral:
		return types.Null, nil
	case *ast.RegexLiteral:
		if err := validateRegex(node); err != nil {
			return nil, err
		}
		return types.RegExp, nil
	case *ast.TemplateLiteral:
		return types.String, nil
	case *ast.ThisExpression:
		return types.This, nil

	case *ast.Identifier:
		return c.identifierType(node)

	case *ast.ArrayLiteral:
		return c.arrayLiteralType(node)
	case *ast.ObjectLiteral:
		return c.objectLiteralType(node)

	case *ast.ParenthesizedExpression:
		return c.TypeOf(node.Expression)

	// --- Operators ---
	case *ast.PrefixExpression:
		return c.prefixType(node)
	case *ast.TypeofExpression:
		return types.String, nil
	case *ast.VoidExpression:
		return types.Undefined, nil
	case *ast.UpdateExpression:
		return types.Number, nil
	case *ast.InfixExpression:
		return c.infixType(node)
	case *ast.TernaryExpression:
		cons, err := c.TypeOf(node.Consequence)
		if err != nil {
			return nil, err
		}
		alt, err := c.TypeOf(node.Alternative)
		if err != nil {
			return nil, err
		}
		if types.EqualIgnoreSpan(cons, alt) {
			return cons, nil
		}
		return types.NewUnionType(cons, alt), nil
	case *ast.AssignmentExpression:
		return c.TypeOf(node.Value)
	case *ast.SequenceExpression:
		if len(node.Expressions) == 0 {
			return nil, types.Unsupportedf(span, "empty sequence expression")
		}
		var last types.Type
		for _, e := range node.Expressions {
			t, err := c.TypeOf(e)
			if err != nil {
				return nil, err
			}
			last = t
		}
		return last, nil

	// --- Access ---
	case *ast.MemberExpression:
		if _, ok := node.Object.(*ast.SuperExpression); ok {
			return types.Any, nil
		}
		obj, err := c.TypeOf(node.Object)
		if err != nil {
			return nil, err
		}
		return &types.IndexedAccessType{Object: obj, Index: types.String}, nil
	case *ast.IndexExpression:
		obj, err := c.TypeOf(node.Left)
		if err != nil {
			return nil, err
		}
		idx, err := c.TypeOf(node.Index)
		if err != nil {
			return nil, err
		}
		return &types.IndexedAccessType{Object: obj, Index: idx}, nil

	// --- Calls ---
	case *ast.CallExpression:
		return c.callType(node)
	case *ast.NewExpression:
		return c.calleeResult(node.Constructor, NewKind, node.Arguments, node.TypeArguments, span)

	// --- Type-level expressions ---
	case *ast.TypeAssertionExpression:
		return node.Type, nil
	case *ast.AsExpression:
		return node.Type, nil
	case *ast.NonNullExpression:
		inner, err := c.TypeOf(node.Expression)
		if err != nil {
			return nil, err
		}
		return types.RemoveNullUndefined(inner), nil

	// --- Declarations in expression position ---
	case *ast.FunctionLiteral:
		return c.functionType(node)
	case *ast.ClassExpression:
		return c.classType(node)

	case *ast.ArrowFunctionLiteral:
		return nil, types.Unsupportedf(span, "arrow function")
	case *ast.AwaitExpression:
		return nil, types.Unsupportedf(span, "await expression")
	case *ast.YieldExpression:
		return nil, types.Unsupportedf(span, "yield expression")
	case *ast.MetaProperty:
		return nil, types.Unsupportedf(span, "meta property '%s'", node.String())
	case *ast.SuperExpression:
		return nil, types.Unsupportedf(span, "bare super")
	case *ast.SpreadElement:
		return nil, types.Unsupportedf(span, "spread outside a call or literal")
	}
	return nil, types.Unsupportedf(span, "expression %T", expr)
}

// --- Identifiers ---

// identifierType resolves a name: value bindings, then imports, then
// type-level declarations, then configured and built-in globals.
func (c *Checker) identifierType(ident *ast.Identifier) (types.Type, error) {
	span := ident.Pos()
	name := ident.Value
	if name == "require" {
		return nil, types.Unsupportedf(span, "require used as a value")
	}
	if t, ok := c.scope.FindVarType(name); ok {
		return t, nil
	}
	if info, ok := c.scope.ResolvedImport(name); ok {
		return expandExport(info, span)
	}
	if info, ok := c.scope.FindType(name); ok {
		return expandExport(info, span)
	}
	if t, ok := c.opts.Globals[name]; ok {
		return t, nil
	}
	if t, ok := defaultGlobal(name); ok {
		return t, nil
	}
	return nil, &types.UndefinedSymbolError{Span: span, Name: name}
}

// expandExport turns a type-level declaration into the type used when its
// name appears in expression position.
func expandExport(info *TypeExportInfo, span source.Span) (types.Type, error) {
	if info.Type != nil {
		return info.Type, nil
	}
	switch extra := info.Extra.(type) {
	case *InterfaceExport:
		return types.NewTypeLiteral(extra.Decl.Members...), nil
	case *AliasExport:
		return extra.Aliased, nil
	case *EnumExport:
		return extra.Decl, nil
	case *NamespaceExport:
		return nil, types.Unsupportedf(span, "namespace '%s' used as a value", extra.Name)
	}
	return nil, types.Unsupportedf(span, "export without a type")
}

// --- Literals ---

// validateRegex checks a regex literal with an ECMAScript-compatible engine.
// Flags that only affect matching (g, y, d, u, v, s) are accepted without
// changing the compile options.
func validateRegex(node *ast.RegexLiteral) error {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	seen := make(map[rune]bool, len(node.Flags))
	for _, f := range node.Flags {
		if seen[f] {
			return types.Unsupportedf(node.Pos(), "duplicate regex flag '%c'", f)
		}
		seen[f] = true
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 'g', 'y', 'd', 'u', 'v', 's':
		default:
			return types.Unsupportedf(node.Pos(), "unknown regex flag '%c'", f)
		}
	}
	if _, err := regexp2.Compile(node.Pattern, opts); err != nil {
		return types.Unsupportedf(node.Pos(), "invalid regex %s: %v", node.String(), err)
	}
	return nil
}

// arrayLiteralType joins the widened element types. Holes read as undefined.
func (c *Checker) arrayLiteralType(node *ast.ArrayLiteral) (types.Type, error) {
	var elems []types.Type
	add := func(t types.Type) {
		for _, e := range elems {
			if types.EqualIgnoreSpan(e, t) {
				return
			}
		}
		elems = append(elems, t)
	}
	for _, el := range node.Elements {
		if el == nil {
			add(types.Undefined)
			continue
		}
		if spread, ok := el.(*ast.SpreadElement); ok {
			return nil, types.Unsupportedf(spread.Pos(), "spread in array literal")
		}
		t, err := c.TypeOf(el)
		if err != nil {
			return nil, err
		}
		add(types.GeneralizeLit(t))
	}
	switch len(elems) {
	case 0:
		return types.NewArrayType(types.Any), nil
	case 1:
		return types.NewArrayType(elems[0]), nil
	}
	return types.NewArrayType(types.NewUnionType(elems...)), nil
}

// objectLiteralType builds a type literal with one property per key. Values
// keep their literal types; a later duplicate key replaces the earlier one.
func (c *Checker) objectLiteralType(node *ast.ObjectLiteral) (types.Type, error) {
	members := make([]types.Member, 0, len(node.Properties))
	index := make(map[types.PropKey]int, len(node.Properties))
	for _, prop := range node.Properties {
		if prop.Key == nil {
			return nil, types.Unsupportedf(node.Pos(), "spread in object literal")
		}
		key, err := propKey(prop.Key, prop.Computed)
		if err != nil {
			return nil, err
		}
		valType, err := c.TypeOf(prop.Value)
		if err != nil {
			return nil, err
		}
		member := &types.PropertySignature{Name: key, Type: valType}
		if i, dup := index[key]; dup {
			members[i] = member
			continue
		}
		index[key] = len(members)
		members = append(members, member)
	}
	return types.NewTypeLiteral(members...), nil
}

// propKey normalizes a property key. Computed string and number literals
// are the same key as their non-computed spelling.
func propKey(key ast.Expression, computed bool) (types.PropKey, error) {
	switch k := key.(type) {
	case *ast.Identifier:
		if !computed {
			return types.PropKey{Name: k.Value}, nil
		}
	case *ast.StringLiteral:
		return types.PropKey{Name: k.Value}, nil
	case *ast.NumberLiteral:
		return types.PropKey{Name: strconv.FormatFloat(k.Value, 'g', -1, 64)}, nil
	}
	if !computed {
		return types.PropKey{}, types.Unsupportedf(key.Pos(), "property key %s", key.String())
	}
	return types.PropKey{Name: key.String(), Computed: true}, nil
}

// --- Operators ---

func (c *Checker) prefixType(node *ast.PrefixExpression) (types.Type, error) {
	switch node.Operator {
	case "!":
		operand, err := c.TypeOf(node.Right)
		if err != nil {
			return nil, err
		}
		return types.Negate(operand), nil
	case "-":
		if num, ok := node.Right.(*ast.NumberLiteral); ok {
			return types.NewNumberLiteral(-num.Value), nil
		}
		return types.Number, nil
	case "+", "~":
		return types.Number, nil
	case "delete":
		return types.Boolean, nil
	}
	return nil, types.Unsupportedf(node.Pos(), "prefix operator '%s'", node.Operator)
}

var (
	numericOperators = []string{"+", "-", "*", "/", "%", "**", "&", "|", "^", "<<", ">>", ">>>"}
	booleanOperators = []string{"==", "!=", "===", "!==", "<", "<=", ">", ">=", "in", "instanceof"}
)

func (c *Checker) infixType(node *ast.InfixExpression) (types.Type, error) {
	op := node.Operator
	switch {
	case op == "&&" || op == "||":
		// The left operand's type is not part of the result.
		return c.TypeOf(node.Right)
	case op == "??":
		left, err := c.TypeOf(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.TypeOf(node.Right)
		if err != nil {
			return nil, err
		}
		return types.NewUnionType(types.RemoveNullUndefined(left), right), nil
	case slices.Contains(numericOperators, op):
		return types.Number, nil
	case slices.Contains(booleanOperators, op):
		return types.Boolean, nil
	}
	return nil, types.Unsupportedf(node.Pos(), "infix operator '%s'", op)
}
