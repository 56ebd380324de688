// Package ast defines the expression and statement tree consumed by the
// checker. Trees are produced by an external parser; every node records the
// span of source it was built from. Type annotations are already resolved to
// types.Type values.
package ast

import (
	"bytes"
	"strings"

	"tsinfer/pkg/source"
	"tsinfer/pkg/types"
)

// --- Interfaces ---

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() source.Span // Source location of the node
	String() string   // Returns a string representation of the node (for debugging)
}

// Statement represents a statement node in the AST.
type Statement interface {
	Node
	statementNode() // Dummy method for distinguishing statement types
}

// Expression represents an expression node in the AST.
type Expression interface {
	Node
	expressionNode() // Dummy method for distinguishing expression types
}

// Pattern is a binding target: a parameter or the left side of a
// destructuring declaration.
type Pattern interface {
	Node
	patternNode()
}

// BaseExpression carries the span shared by every expression node.
type BaseExpression struct {
	Span source.Span
}

func (be *BaseExpression) Pos() source.Span { return be.Span }
func (be *BaseExpression) expressionNode()  {}

// BaseStatement carries the span shared by every statement node.
type BaseStatement struct {
	Span source.Span
}

func (bs *BaseStatement) Pos() source.Span { return bs.Span }
func (bs *BaseStatement) statementNode()   {}

// Program is the root node of a parsed file.
type Program struct {
	Span       source.Span
	Statements []Statement
}

func (p *Program) Pos() source.Span { return p.Span }
func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

func joinExpressions(exprs []Expression, sep string) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		if e == nil {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, e.String())
	}
	return strings.Join(parts, sep)
}

func typeArgs(ts []types.Type) string {
	if len(ts) == 0 {
		return ""
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
