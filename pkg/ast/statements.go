package ast

import (
	"bytes"
	"strings"

	"tsinfer/pkg/types"
)

// BlockStatement is `{ statements }`.
type BlockStatement struct {
	BaseStatement
	Statements []Statement
}

func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range bs.Statements {
		if s == nil {
			continue
		}
		lines := strings.Split(s.String(), "\n")
		for _, line := range lines {
			out.WriteString("\t" + line + "\n")
		}
	}
	out.WriteString("}")
	return out.String()
}

// ExpressionStatement is an expression evaluated for its effects.
type ExpressionStatement struct {
	BaseStatement
	Expression Expression
}

func (es *ExpressionStatement) String() string { return es.Expression.String() + ";" }

// ReturnStatement is `return value;`. ReturnValue is nil for a bare return.
type ReturnStatement struct {
	BaseStatement
	ReturnValue Expression
}

func (rs *ReturnStatement) String() string {
	if rs.ReturnValue == nil {
		return "return;"
	}
	return "return " + rs.ReturnValue.String() + ";"
}

// ThrowStatement is `throw value;`.
type ThrowStatement struct {
	BaseStatement
	Value Expression
}

func (ts *ThrowStatement) String() string { return "throw " + ts.Value.String() + ";" }

// BreakStatement is `break label;`.
type BreakStatement struct {
	BaseStatement
	Label *Identifier
}

func (bs *BreakStatement) String() string {
	if bs.Label != nil {
		return "break " + bs.Label.String() + ";"
	}
	return "break;"
}

// ContinueStatement is `continue label;`.
type ContinueStatement struct {
	BaseStatement
	Label *Identifier
}

func (cs *ContinueStatement) String() string {
	if cs.Label != nil {
		return "continue " + cs.Label.String() + ";"
	}
	return "continue;"
}

// IfStatement is `if (cond) consequence else alternative`.
type IfStatement struct {
	BaseStatement
	Condition   Expression
	Consequence Statement
	Alternative Statement // nil without else
}

func (is *IfStatement) String() string {
	s := "if (" + is.Condition.String() + ") " + is.Consequence.String()
	if is.Alternative != nil {
		s += " else " + is.Alternative.String()
	}
	return s
}

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	BaseStatement
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}

// DoWhileStatement is `do body while (cond);`.
type DoWhileStatement struct {
	BaseStatement
	Body      Statement
	Condition Expression
}

func (dws *DoWhileStatement) String() string {
	return "do " + dws.Body.String() + " while (" + dws.Condition.String() + ");"
}

// ForStatement is the C-style `for (init; cond; update) body`. Any of the
// header parts may be nil.
type ForStatement struct {
	BaseStatement
	Initializer Statement
	Condition   Expression
	Update      Expression
	Body        Statement
}

func (fs *ForStatement) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if fs.Initializer != nil {
		out.WriteString(strings.TrimSuffix(fs.Initializer.String(), ";"))
	}
	out.WriteString("; ")
	if fs.Condition != nil {
		out.WriteString(fs.Condition.String())
	}
	out.WriteString("; ")
	if fs.Update != nil {
		out.WriteString(fs.Update.String())
	}
	out.WriteString(") ")
	out.WriteString(fs.Body.String())
	return out.String()
}

// SwitchCase is one `case` or `default` clause.
type SwitchCase struct {
	Condition Expression // nil for default
	Body      []Statement
}

// SwitchStatement is `switch (discriminant) { cases }`.
type SwitchStatement struct {
	BaseStatement
	Discriminant Expression
	Cases        []*SwitchCase
}

func (ss *SwitchStatement) String() string {
	var out bytes.Buffer
	out.WriteString("switch (" + ss.Discriminant.String() + ") {\n")
	for _, c := range ss.Cases {
		if c.Condition != nil {
			out.WriteString("case " + c.Condition.String() + ":\n")
		} else {
			out.WriteString("default:\n")
		}
		for _, s := range c.Body {
			out.WriteString("\t" + s.String() + "\n")
		}
	}
	out.WriteString("}")
	return out.String()
}

// TryStatement is `try block catch (param) handler finally finalizer`.
type TryStatement struct {
	BaseStatement
	Block      *BlockStatement
	CatchParam Pattern         // nil for `catch {` or no catch clause
	Handler    *BlockStatement // nil without catch
	Finalizer  *BlockStatement // nil without finally
}

func (ts *TryStatement) String() string {
	s := "try " + ts.Block.String()
	if ts.Handler != nil {
		s += " catch "
		if ts.CatchParam != nil {
			s += "(" + ts.CatchParam.String() + ") "
		}
		s += ts.Handler.String()
	}
	if ts.Finalizer != nil {
		s += " finally " + ts.Finalizer.String()
	}
	return s
}

// VarDeclarator is one `pattern: T = init` binding of a declaration.
type VarDeclarator struct {
	Target         Pattern
	TypeAnnotation types.Type
	Init           Expression
}

// VarStatement is a `var`, `let` or `const` declaration.
type VarStatement struct {
	BaseStatement
	Kind         string // "var", "let" or "const"
	Declarations []*VarDeclarator
}

func (vs *VarStatement) String() string {
	parts := make([]string, len(vs.Declarations))
	for i, d := range vs.Declarations {
		s := d.Target.String()
		if d.TypeAnnotation != nil {
			s += ": " + d.TypeAnnotation.String()
		}
		if d.Init != nil {
			s += " = " + d.Init.String()
		}
		parts[i] = s
	}
	return vs.Kind + " " + strings.Join(parts, ", ") + ";"
}

// FunctionDeclaration is a named function statement.
type FunctionDeclaration struct {
	BaseStatement
	Function *FunctionLiteral
}

func (fd *FunctionDeclaration) String() string { return fd.Function.String() }

// ClassDeclaration is a named class statement.
type ClassDeclaration struct {
	BaseStatement
	Class *ClassExpression
}

func (cd *ClassDeclaration) String() string { return cd.Class.String() }

// EmptyStatement is a lone `;`.
type EmptyStatement struct {
	BaseStatement
}

func (es *EmptyStatement) String() string { return ";" }
