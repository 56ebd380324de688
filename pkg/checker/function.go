package checker

import (
	"tsinfer/pkg/ast"
	"tsinfer/pkg/types"
)

// --- Function literals ---

func (c *Checker) functionType(fn *ast.FunctionLiteral) (types.Type, error) {
	sig, err := c.signatureOf(fn)
	if err != nil {
		return nil, err
	}
	return types.NewFunctionType(sig), nil
}

// signatureOf builds the signature of a function literal. Without a return
// annotation the return type is inferred from the reachable return statements.
func (c *Checker) signatureOf(fn *ast.FunctionLiteral) (*types.Signature, error) {
	if fn.ReturnTypeAnnotation == nil && (fn.IsAsync || fn.IsGenerator) {
		return nil, types.Unsupportedf(fn.Pos(), "return type of an unannotated async or generator function")
	}
	params, err := c.params(fn.Parameters)
	if err != nil {
		return nil, err
	}
	ret := fn.ReturnTypeAnnotation
	if ret == nil {
		ret, err = c.inferReturnType(fn)
		if err != nil {
			return nil, err
		}
	}
	return &types.Signature{TypeParams: fn.TypeParams, Params: params, ReturnType: ret}, nil
}

func (c *Checker) params(params []*ast.Parameter) ([]types.Param, error) {
	out := make([]types.Param, 0, len(params))
	for _, p := range params {
		pat, err := toPattern(p.Pattern, p.Optional)
		if err != nil {
			return nil, err
		}
		out = append(out, types.Param{Pattern: pat, Type: p.TypeAnnotation})
	}
	return out, nil
}

// toPattern converts a binding pattern to its signature form. Defaults are
// dropped; a defaulted identifier becomes optional.
func toPattern(pat ast.Pattern, optional bool) (types.Pattern, error) {
	switch p := pat.(type) {
	case *ast.Identifier:
		return &types.IdentPattern{Name: p.Value, Optional: optional}, nil
	case *ast.AssignPattern:
		return toPattern(p.Left, true)
	case *ast.RestElement:
		arg, err := toPattern(p.Argument, false)
		if err != nil {
			return nil, err
		}
		return &types.RestPattern{Arg: arg}, nil
	case *ast.ArrayPattern:
		elems := make([]types.Pattern, len(p.Elements))
		for i, e := range p.Elements {
			if e == nil {
				continue
			}
			el, err := toPattern(e, false)
			if err != nil {
				return nil, err
			}
			elems[i] = el
		}
		return &types.ArrayPattern{Elements: elems}, nil
	case *ast.ObjectPattern:
		out := &types.ObjectPattern{Props: make([]types.ObjectPatternProp, 0, len(p.Properties))}
		for _, prop := range p.Properties {
			key, err := propKey(prop.Key, prop.Computed)
			if err != nil {
				return nil, err
			}
			val, err := toPattern(prop.Value, false)
			if err != nil {
				return nil, err
			}
			out.Props = append(out.Props, types.ObjectPatternProp{Key: key, Value: val})
		}
		if p.Rest != nil {
			rest, err := toPattern(p.Rest, false)
			if err != nil {
				return nil, err
			}
			out.Rest = rest
		}
		return out, nil
	case nil:
		return nil, types.Unsupportedf(nilSpan, "missing parameter pattern")
	}
	return nil, types.Unsupportedf(pat.Pos(), "parameter pattern %s", pat.String())
}

// --- Return type inference ---

func (c *Checker) inferReturnType(fn *ast.FunctionLiteral) (types.Type, error) {
	if fn.Body == nil {
		return nil, types.Unsupportedf(fn.Pos(), "function without a body")
	}
	var returns []*ast.ReturnStatement
	collectReturns(fn.Body.Statements, &returns)

	var ts []types.Type
	for _, ret := range returns {
		if ret.ReturnValue == nil {
			ts = append(ts, types.Undefined)
			continue
		}
		t, err := c.TypeOf(ret.ReturnValue)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	switch len(ts) {
	case 0:
		return types.Undefined, nil
	case 1:
		return ts[0], nil
	}
	return types.NewUnionType(ts...), nil
}

// collectReturns appends the return statements reachable in stmts and
// reports whether the list always completes abruptly. Statements after such
// a point are unreachable and skipped. Nested functions and classes have
// their own returns.
func collectReturns(stmts []ast.Statement, out *[]*ast.ReturnStatement) bool {
	for _, s := range stmts {
		if collectStatement(s, out) {
			return true
		}
	}
	return false
}

func collectStatement(stmt ast.Statement, out *[]*ast.ReturnStatement) bool {
	switch s := stmt.(type) {
	case *ast.ReturnStatement:
		*out = append(*out, s)
		return true
	case *ast.ThrowStatement, *ast.BreakStatement, *ast.ContinueStatement:
		return true
	case *ast.BlockStatement:
		return collectReturns(s.Statements, out)
	case *ast.IfStatement:
		thenExits := collectStatement(s.Consequence, out)
		elseExits := false
		if s.Alternative != nil {
			elseExits = collectStatement(s.Alternative, out)
		}
		return thenExits && elseExits
	case *ast.WhileStatement:
		collectStatement(s.Body, out)
	case *ast.DoWhileStatement:
		collectStatement(s.Body, out)
	case *ast.ForStatement:
		collectStatement(s.Body, out)
	case *ast.SwitchStatement:
		for _, cs := range s.Cases {
			collectReturns(cs.Body, out)
		}
	case *ast.TryStatement:
		tryExits := s.Block != nil && collectReturns(s.Block.Statements, out)
		catchExits := true
		if s.Handler != nil {
			catchExits = collectReturns(s.Handler.Statements, out)
		}
		finallyExits := s.Finalizer != nil && collectReturns(s.Finalizer.Statements, out)
		return finallyExits || (tryExits && catchExits)
	}
	return false
}
