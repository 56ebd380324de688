package checker

import (
	"errors"
	"testing"

	"tsinfer/pkg/ast"
	"tsinfer/pkg/types"
)

// Small AST builders so tests read close to the source they stand for.

func ident(name string) *ast.Identifier            { return &ast.Identifier{Value: name} }
func num(v float64) *ast.NumberLiteral             { return &ast.NumberLiteral{Value: v} }
func str(v string) *ast.StringLiteral              { return &ast.StringLiteral{Value: v} }
func boolean(v bool) *ast.BooleanLiteral           { return &ast.BooleanLiteral{Value: v} }
func array(el ...ast.Expression) *ast.ArrayLiteral { return &ast.ArrayLiteral{Elements: el} }

func call(fn ast.Expression, args ...ast.Expression) *ast.CallExpression {
	return &ast.CallExpression{Function: fn, Arguments: args}
}

func newExpr(ctor ast.Expression, args ...ast.Expression) *ast.NewExpression {
	return &ast.NewExpression{Constructor: ctor, Arguments: args}
}

func member(obj ast.Expression, prop string) *ast.MemberExpression {
	return &ast.MemberExpression{Object: obj, Property: ident(prop)}
}

func infix(left ast.Expression, op string, right ast.Expression) *ast.InfixExpression {
	return &ast.InfixExpression{Left: left, Operator: op, Right: right}
}

func object(kv ...any) *ast.ObjectLiteral {
	obj := &ast.ObjectLiteral{}
	for i := 0; i+1 < len(kv); i += 2 {
		obj.Properties = append(obj.Properties, &ast.ObjectProperty{
			Key:   ident(kv[i].(string)),
			Value: kv[i+1].(ast.Expression),
		})
	}
	return obj
}

func param(name string, t types.Type) *ast.Parameter {
	return &ast.Parameter{Pattern: ident(name), TypeAnnotation: t}
}

func ret(e ast.Expression) *ast.ReturnStatement { return &ast.ReturnStatement{ReturnValue: e} }

func block(stmts ...ast.Statement) *ast.BlockStatement {
	return &ast.BlockStatement{Statements: stmts}
}

// expectType infers expr in env and compares the result ignoring spans.
func expectType(t *testing.T, env *Environment, expr ast.Expression, want types.Type) {
	t.Helper()
	got, err := NewChecker(env, Options{}).TypeOf(expr)
	if err != nil {
		t.Fatalf("TypeOf(%s) failed: %v", expr, err)
	}
	if !types.EqualIgnoreSpan(got, want) {
		t.Errorf("TypeOf(%s) = %s, want %s", expr, got, want)
	}
}

// expectError infers expr and checks the error is of type E.
func expectError[E error](t *testing.T, c *Checker, expr ast.Expression) E {
	t.Helper()
	got, err := c.TypeOf(expr)
	var target E
	if err == nil {
		t.Fatalf("TypeOf(%s) = %s, want %T", expr, got, target)
	}
	if !errors.As(err, &target) {
		t.Fatalf("TypeOf(%s) error = %v (%T), want %T", expr, err, err, target)
	}
	return target
}
