package typeyaml

import (
	"fmt"

	"tsinfer/pkg/ast"
	"tsinfer/pkg/checker"
	"tsinfer/pkg/errors"
	"tsinfer/pkg/source"
	"tsinfer/pkg/types"
)

// Result is the outcome of one case.
type Result struct {
	Case   *Case
	Passed bool
	Got    string // what the check produced, for reports
	Err    error  // the diagnostic, when the check failed
}

// Run executes every case. Each case gets its own Checker over an
// environment holding the scenario's types and globals plus opts.Globals.
func (s *Scenario) Run(opts checker.Options) []Result {
	env := checker.NewEnvironment()
	for _, b := range s.Types {
		env.DefineType(b.Name, &checker.TypeExportInfo{Type: b.Type})
	}
	for _, b := range s.Globals {
		env.Define(b.Name, b.Type)
	}

	results := make([]Result, 0, len(s.Cases))
	for _, c := range s.Cases {
		results = append(results, runCase(env, c, opts, s.File))
	}
	return results
}

func runCase(env *checker.Environment, c *Case, opts checker.Options, file *source.SourceFile) Result {
	span := source.Span{File: file, Line: c.Line, Column: 1}
	var got types.Type
	var err error
	switch c.Kind {
	case AssignCase:
		err = checker.NewChecker(env, opts).Assign(c.To, c.From, span)
	case ExtractCase:
		got, err = extract(env, c, opts, span)
	default:
		err = fmt.Errorf("unknown case kind %q", c.Kind)
	}

	r := Result{Case: c, Err: err}
	switch {
	case err != nil:
		r.Got = "error " + kindOf(err)
		r.Passed = c.Expect.Error != "" && HasKind(err, c.Expect.Error)
	case got != nil:
		r.Got = got.String()
		r.Passed = c.Expect.OK || (c.Expect.Type != nil && types.EqualIgnoreSpan(got, c.Expect.Type))
	default:
		r.Got = "ok"
		r.Passed = c.Expect.OK
	}
	return r
}

// extract binds the arguments (and an anonymous callee) to synthetic names
// in a nested scope and resolves the call through the checker.
func extract(env *checker.Environment, c *Case, opts checker.Options, span source.Span) (types.Type, error) {
	scope := checker.NewEnclosedEnvironment(env)
	args := make([]ast.Expression, len(c.Args))
	for i, t := range c.Args {
		name := fmt.Sprintf("$%d", i)
		scope.Define(name, t)
		args[i] = &ast.Identifier{BaseExpression: ast.BaseExpression{Span: span}, Value: name}
	}
	ck := checker.NewChecker(scope, opts)
	kind := checker.CallKind
	if c.New {
		kind = checker.NewKind
	}
	if c.Member == "" && c.CalleeName == "" {
		return ck.Extract(c.Callee, kind, args, c.TypeArgs, span)
	}

	name := c.CalleeName
	if name == "" {
		name = "$callee"
		scope.Define(name, c.Callee)
	}
	var callee ast.Expression = &ast.Identifier{BaseExpression: ast.BaseExpression{Span: span}, Value: name}
	if c.Member != "" {
		callee = &ast.MemberExpression{
			BaseExpression: ast.BaseExpression{Span: span},
			Object:         callee,
			Property:       &ast.Identifier{BaseExpression: ast.BaseExpression{Span: span}, Value: c.Member},
		}
	}
	if c.New {
		return ck.TypeOf(&ast.NewExpression{BaseExpression: ast.BaseExpression{Span: span}, Constructor: callee, Arguments: args, TypeArguments: c.TypeArgs})
	}
	return ck.TypeOf(&ast.CallExpression{BaseExpression: ast.BaseExpression{Span: span}, Function: callee, Arguments: args, TypeArguments: c.TypeArgs})
}

// HasKind reports whether a diagnostic of the given kind appears anywhere in
// the error tree rooted at err.
func HasKind(err error, kind string) bool {
	if d, ok := err.(errors.Diagnostic); ok && d.Kind() == kind {
		return true
	}
	for _, cause := range errors.Causes(err) {
		if HasKind(cause, kind) {
			return true
		}
	}
	return false
}

func kindOf(err error) string {
	if d, ok := err.(errors.Diagnostic); ok {
		return d.Kind()
	}
	return err.Error()
}
