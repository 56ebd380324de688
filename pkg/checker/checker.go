// Package checker infers the static type of expressions and resolves calls
// against call and construct signatures. It consumes a read-only Scope and
// delegates assignability to package types.
package checker

import (
	"context"
	"log/slog"

	"tsinfer/pkg/ast"
	"tsinfer/pkg/source"
	"tsinfer/pkg/types"
)

// DefaultMaxExpressionDepth bounds how deeply TypeOf recurses into nested
// expressions when Options.MaxExpressionDepth is unset.
const DefaultMaxExpressionDepth = 512

// ExtractKind selects which signatures a callee is resolved against.
type ExtractKind int

const (
	CallKind ExtractKind = iota // f(...)
	NewKind                     // new F(...)
)

func (k ExtractKind) String() string {
	if k == NewKind {
		return "new"
	}
	return "call"
}

// Options configures a Checker. The zero value is usable.
type Options struct {
	// MaxDepth bounds recursion over nested types during assignability.
	MaxDepth int
	// MaxExpressionDepth bounds recursion over nested expressions.
	MaxExpressionDepth int
	// CheckArguments makes call resolution check each argument against its
	// parameter type.
	CheckArguments bool
	// Globals are extra identifiers with a fixed type, consulted after the
	// scope and before the built-in defaults.
	Globals map[string]types.Type
	// Logger receives debug traces. Nil discards them.
	Logger *slog.Logger
}

// Checker infers expression types against one Scope. It keeps a recursion
// counter, so a Checker must not be shared between goroutines; create one
// per file.
type Checker struct {
	scope    Scope
	opts     Options
	assigner *types.Assigner
	log      *slog.Logger
	depth    int
}

// NewChecker creates a checker reading from scope.
func NewChecker(scope Scope, opts Options) *Checker {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.MaxExpressionDepth <= 0 {
		opts.MaxExpressionDepth = DefaultMaxExpressionDepth
	}
	return &Checker{
		scope:    scope,
		opts:     opts,
		assigner: &types.Assigner{MaxDepth: opts.MaxDepth},
		log:      logger.With("component", "checker"),
	}
}

// TypeOf infers the type of expr against scope with default options.
func TypeOf(expr ast.Expression, scope Scope) (types.Type, error) {
	return NewChecker(scope, Options{}).TypeOf(expr)
}

// Assign checks that a value of type from may be used where to is expected.
func (c *Checker) Assign(to, from types.Type, span source.Span) error {
	err := c.assigner.Assign(to, from, span)
	if err != nil {
		c.log.Debug("assign failed", "to", to, "from", from, "err", err)
	}
	return err
}

// enter guards recursion. Every successful enter must be paired with leave.
func (c *Checker) enter(span source.Span) error {
	if c.depth >= c.opts.MaxExpressionDepth {
		return types.Unsupportedf(span, "expression is too deeply nested")
	}
	c.depth++
	return nil
}

func (c *Checker) leave() { c.depth-- }

func (c *Checker) tracing() bool {
	return c.log.Enabled(context.Background(), slog.LevelDebug)
}
