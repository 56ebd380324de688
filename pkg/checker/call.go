package checker

import (
	"tsinfer/pkg/ast"
	"tsinfer/pkg/source"
	"tsinfer/pkg/types"
)

// --- Call and construct resolution ---

func (c *Checker) callType(node *ast.CallExpression) (types.Type, error) {
	switch callee := node.Function.(type) {
	case *ast.SuperExpression:
		return types.Any, nil
	case *ast.Identifier:
		if callee.Value == "require" {
			return c.requireType(node)
		}
	}
	return c.calleeResult(node.Function, CallKind, node.Arguments, node.TypeArguments, node.Pos())
}

// calleeResult resolves `callee(args)` or `new callee(args)`. Member callees
// are resolved against the named member so that methods are found.
func (c *Checker) calleeResult(callee ast.Expression, kind ExtractKind, args []ast.Expression, typeArgs []types.Type, span source.Span) (types.Type, error) {
	switch fn := callee.(type) {
	case *ast.MemberExpression:
		if _, ok := fn.Object.(*ast.SuperExpression); ok {
			return types.Any, nil
		}
		obj, err := c.TypeOf(fn.Object)
		if err != nil {
			return nil, err
		}
		return c.extractMember(obj, types.PropKey{Name: fn.Property.Value}, kind, args, typeArgs, span)
	case *ast.IndexExpression:
		obj, err := c.TypeOf(fn.Left)
		if err != nil {
			return nil, err
		}
		var key types.PropKey
		switch idx := fn.Index.(type) {
		case *ast.StringLiteral, *ast.NumberLiteral:
			key, err = propKey(idx, true)
			if err != nil {
				return nil, err
			}
		default:
			key = types.PropKey{Name: idx.String(), Computed: true}
		}
		return c.extractMember(obj, key, kind, args, typeArgs, span)
	}

	calleeType, err := c.TypeOf(callee)
	if err != nil {
		return nil, err
	}
	return c.Extract(calleeType, kind, args, typeArgs, span)
}

// Extract resolves a call (CallKind) or construction (NewKind) of a value of
// type callee and returns the result type.
func (c *Checker) Extract(callee types.Type, kind ExtractKind, args []ast.Expression, typeArgs []types.Type, span source.Span) (types.Type, error) {
	if err := c.enter(span); err != nil {
		return nil, err
	}
	defer c.leave()

	if members, ok := types.AllMembers(callee); ok {
		var sigs []*types.Signature
		for _, m := range members {
			switch m := m.(type) {
			case *types.CallSignature:
				if kind == CallKind {
					sigs = append(sigs, m.Signature)
				}
			case *types.ConstructSignature:
				if kind == NewKind {
					sigs = append(sigs, m.Signature)
				}
			}
		}
		ret, err := c.pickSignature(sigs, callee, kind, args, typeArgs, span)
		if err != nil {
			return nil, err
		}
		if ret == nil {
			if class, ok := callee.(*types.ClassType); ok && kind == NewKind {
				return class, nil
			}
			return types.Any, nil
		}
		return ret, nil
	}

	switch t := callee.(type) {
	case *types.FunctionType:
		if kind == CallKind {
			return c.instantiateOrAny(t.Signature, args, typeArgs, span)
		}
	case *types.ConstructorType:
		if kind == NewKind {
			return c.instantiateOrAny(t.Signature, args, typeArgs, span)
		}
	case *types.UnionType:
		var errs []error
		for _, branch := range t.Types {
			ret, err := c.Extract(branch, kind, args, typeArgs, span)
			if err == nil {
				return ret, nil
			}
			errs = append(errs, err)
		}
		if len(errs) > 0 {
			return nil, &types.UnionError{Span: span, Errors: errs}
		}
	case *types.IntersectionType:
		for _, branch := range t.Types {
			if ret, err := c.Extract(branch, kind, args, typeArgs, span); err == nil {
				return ret, nil
			}
		}
	case *types.TypeParameter:
		if t.Constraint != nil {
			return c.Extract(t.Constraint, kind, args, typeArgs, span)
		}
	default:
		if types.IsAny(callee) {
			return types.Any, nil
		}
	}
	return nil, noSignature(kind, span, callee)
}

// extractMember resolves a call or construction of obj[key].
func (c *Checker) extractMember(obj types.Type, key types.PropKey, kind ExtractKind, args []ast.Expression, typeArgs []types.Type, span source.Span) (types.Type, error) {
	if err := c.enter(span); err != nil {
		return nil, err
	}
	defer c.leave()

	if members, ok := types.AllMembers(obj); ok {
		var methods []*types.Signature
		for _, m := range types.FindMembers(members, key) {
			switch m := m.(type) {
			case *types.PropertySignature:
				if m.Type == nil {
					return types.Any, nil
				}
				return c.Extract(m.Type, kind, args, typeArgs, span)
			case *types.MethodSignature:
				if kind == CallKind {
					methods = append(methods, m.Signature)
				}
			}
		}
		ret, err := c.pickSignature(methods, memberCallee(obj, key), kind, args, typeArgs, span)
		if err != nil {
			return nil, err
		}
		return orAny(ret), nil
	}

	switch t := obj.(type) {
	case *types.UnionType:
		var errs []error
		for _, branch := range t.Types {
			ret, err := c.extractMember(branch, key, kind, args, typeArgs, span)
			if err == nil {
				return ret, nil
			}
			errs = append(errs, err)
		}
		if len(errs) > 0 {
			return nil, &types.UnionError{Span: span, Errors: errs}
		}
	case *types.IntersectionType:
		for _, branch := range t.Types {
			if ret, err := c.extractMember(branch, key, kind, args, typeArgs, span); err == nil {
				return ret, nil
			}
		}
	case *types.TypeParameter:
		if t.Constraint != nil {
			return c.extractMember(t.Constraint, key, kind, args, typeArgs, span)
		}
	default:
		if types.IsAny(obj) {
			return types.Any, nil
		}
		if key.Computed {
			return nil, types.Unsupportedf(span, "computed member %s of '%s'", key, obj)
		}
	}
	return nil, noSignature(kind, span, memberCallee(obj, key))
}

// memberCallee is the callee reported when obj[key] cannot be called.
func memberCallee(obj types.Type, key types.PropKey) types.Type {
	if key.Computed {
		return &types.IndexedAccessType{Object: obj, Index: &types.OtherType{Raw: key.Name}}
	}
	return &types.IndexedAccessType{Object: obj, Index: types.NewStringLiteral(key.Name)}
}

// pickSignature chooses among overloads. A single candidate is used as is.
// Otherwise the candidate whose parameter count equals the argument count
// wins and a tie is reported as unsupported; without one, the candidates
// that can take that many arguments are tried in declaration order. The result
// is nil when the chosen signature declares no return type.
func (c *Checker) pickSignature(sigs []*types.Signature, callee types.Type, kind ExtractKind, args []ast.Expression, typeArgs []types.Type, span source.Span) (types.Type, error) {
	switch len(sigs) {
	case 0:
		return nil, noSignature(kind, span, callee)
	case 1:
		return c.instantiate(sigs[0], args, typeArgs, span)
	}

	var exact []*types.Signature
	for _, sig := range sigs {
		if len(sig.Params) == len(args) && !hasRestParam(sig) {
			exact = append(exact, sig)
		}
	}
	switch {
	case len(exact) == 1:
		return c.instantiate(exact[0], args, typeArgs, span)
	case len(exact) > 1:
		return nil, types.Unsupportedf(span, "ambiguous overload of '%s' with %d arguments", callee, len(args))
	}

	for _, sig := range sigs {
		if !hasRestParam(sig) && len(args) > len(sig.Params) {
			continue
		}
		if ret, err := c.instantiate(sig, args, typeArgs, span); err == nil {
			return ret, nil
		}
	}
	return nil, noSignature(kind, span, callee)
}

func (c *Checker) instantiateOrAny(sig *types.Signature, args []ast.Expression, typeArgs []types.Type, span source.Span) (types.Type, error) {
	ret, err := c.instantiate(sig, args, typeArgs, span)
	if err != nil {
		return nil, err
	}
	return orAny(ret), nil
}

// instantiate checks the arity of a call against sig and returns its
// declared return type. Type arguments are counted but not substituted.
func (c *Checker) instantiate(sig *types.Signature, args []ast.Expression, typeArgs []types.Type, span source.Span) (types.Type, error) {
	if len(typeArgs) > len(sig.TypeParams) {
		return nil, &types.WrongTypeParamsError{
			Span:     span,
			Expected: types.Range{Min: 0, Max: len(sig.TypeParams)},
			Actual:   len(typeArgs),
		}
	}
	// Optional and rest parameters count too; only arguments beyond the
	// declared parameters are left to checkArguments.
	if len(sig.Params) > len(args) {
		return nil, wrongParams(sig, len(args), span)
	}
	if c.opts.CheckArguments {
		if err := c.checkArguments(sig, args, span); err != nil {
			return nil, err
		}
	}
	return sig.ReturnType, nil
}

// checkArguments assigns every argument to its parameter. Checking stops at
// the first spread argument since later positions are unknown.
func (c *Checker) checkArguments(sig *types.Signature, args []ast.Expression, span source.Span) error {
	rest := -1
	if hasRestParam(sig) {
		rest = len(sig.Params) - 1
	}
	for i, arg := range args {
		if _, ok := arg.(*ast.SpreadElement); ok {
			return nil
		}
		var paramType types.Type
		switch {
		case rest >= 0 && i >= rest:
			paramType = restElementType(sig.Params[rest].Type)
		case i < len(sig.Params):
			paramType = sig.Params[i].Type
		default:
			return wrongParams(sig, len(args), span)
		}
		argType, err := c.TypeOf(arg)
		if err != nil {
			return err
		}
		if paramType == nil {
			continue
		}
		if err := c.Assign(paramType, argType, arg.Pos()); err != nil {
			return err
		}
	}
	return nil
}

func wrongParams(sig *types.Signature, actual int, span source.Span) error {
	expected := types.Range{Min: len(sig.Params), Max: len(sig.Params)}
	if hasRestParam(sig) {
		expected.Max = -1
	}
	return &types.WrongParamsError{Span: span, Expected: expected, Actual: actual}
}

func hasRestParam(sig *types.Signature) bool {
	return len(sig.Params) > 0 && sig.Params[len(sig.Params)-1].IsRest()
}

// restElementType is the type each argument bound to a rest parameter must have.
func restElementType(t types.Type) types.Type {
	if arr, ok := t.(*types.ArrayType); ok {
		return arr.ElementType
	}
	return nil
}

// requireType handles `require("specifier")`. Module types are not modeled,
// so a resolved module is reported as unsupported.
func (c *Checker) requireType(node *ast.CallExpression) (types.Type, error) {
	span := node.Pos()
	if len(node.Arguments) == 0 {
		return nil, types.Unsupportedf(span, "require without a module specifier")
	}
	switch arg := node.Arguments[0].(type) {
	case *ast.SpreadElement:
		return nil, types.Unsupportedf(span, "spread argument to require")
	case *ast.StringLiteral:
		if _, ok := c.scope.ResolvedImport(arg.Value); ok {
			return nil, types.Unsupportedf(span, "type of required module '%s'", arg.Value)
		}
		return nil, &types.UndefinedSymbolError{Span: arg.Pos(), Name: arg.Value}
	}
	return nil, types.Unsupportedf(span, "dynamic require")
}

func noSignature(kind ExtractKind, span source.Span, callee types.Type) error {
	if kind == NewKind {
		return &types.NoNewSignatureError{Span: span, Callee: callee}
	}
	return &types.NoCallSignatureError{Span: span, Callee: callee}
}

func orAny(t types.Type) types.Type {
	if t == nil {
		return types.Any
	}
	return t
}
