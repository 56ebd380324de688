package types

import (
	"fmt"
	"strings"

	"tsinfer/pkg/errors"
	"tsinfer/pkg/source"
)

// Diagnostics produced by inference, signature resolution and assignability.
// Every kind implements errors.Diagnostic; composite kinds also implement
// Unwrap() []error so errors.As and errors.Causes can walk the cause tree.

var (
	_ errors.Diagnostic = (*UndefinedSymbolError)(nil)
	_ errors.Diagnostic = (*NoCallSignatureError)(nil)
	_ errors.Diagnostic = (*NoNewSignatureError)(nil)
	_ errors.Diagnostic = (*WrongTypeParamsError)(nil)
	_ errors.Diagnostic = (*WrongParamsError)(nil)
	_ errors.Diagnostic = (*AssignFailedError)(nil)
	_ errors.Diagnostic = (*UnionError)(nil)
	_ errors.Diagnostic = (*IntersectionError)(nil)
	_ errors.Diagnostic = (*MissingFieldsError)(nil)
	_ errors.Diagnostic = (*CannotAssignToThisError)(nil)
	_ errors.Diagnostic = (*UnsupportedError)(nil)
)

func format(span source.Span, msg string) string {
	if span.IsZero() {
		return msg
	}
	return fmt.Sprintf("%s: %s", span, msg)
}

// Range is an inclusive count range used by arity diagnostics. A negative
// Max means there is no upper bound.
type Range struct {
	Min, Max int
}

func (r Range) String() string {
	if r.Max < 0 {
		return fmt.Sprintf("at least %d", r.Min)
	}
	if r.Min == r.Max {
		return fmt.Sprint(r.Min)
	}
	return fmt.Sprintf("%d..%d", r.Min, r.Max)
}

// UndefinedSymbolError reports an identifier that resolves to nothing.
type UndefinedSymbolError struct {
	Span source.Span
	Name string
}

func (e *UndefinedSymbolError) Pos() source.Span { return e.Span }
func (e *UndefinedSymbolError) Kind() string     { return "UndefinedSymbol" }
func (e *UndefinedSymbolError) Message() string {
	return fmt.Sprintf("undefined symbol '%s'", e.Name)
}
func (e *UndefinedSymbolError) Error() string { return format(e.Span, e.Message()) }

// NoCallSignatureError reports a call on a type that cannot be called.
type NoCallSignatureError struct {
	Span   source.Span
	Callee Type
}

func (e *NoCallSignatureError) Pos() source.Span { return e.Span }
func (e *NoCallSignatureError) Kind() string     { return "NoCallSignature" }
func (e *NoCallSignatureError) Message() string {
	if e.Callee == nil {
		return "no matching call signature"
	}
	return fmt.Sprintf("type '%s' has no matching call signature", e.Callee)
}
func (e *NoCallSignatureError) Error() string { return format(e.Span, e.Message()) }

// NoNewSignatureError reports a `new` on a type that cannot be constructed.
type NoNewSignatureError struct {
	Span   source.Span
	Callee Type
}

func (e *NoNewSignatureError) Pos() source.Span { return e.Span }
func (e *NoNewSignatureError) Kind() string     { return "NoNewSignature" }
func (e *NoNewSignatureError) Message() string {
	if e.Callee == nil {
		return "no matching construct signature"
	}
	return fmt.Sprintf("type '%s' has no matching construct signature", e.Callee)
}
func (e *NoNewSignatureError) Error() string { return format(e.Span, e.Message()) }

// WrongTypeParamsError reports too many explicit type arguments.
type WrongTypeParamsError struct {
	Span     source.Span
	Expected Range
	Actual   int
}

func (e *WrongTypeParamsError) Pos() source.Span { return e.Span }
func (e *WrongTypeParamsError) Kind() string     { return "WrongTypeParams" }
func (e *WrongTypeParamsError) Message() string {
	return fmt.Sprintf("expected %s type arguments, got %d", e.Expected, e.Actual)
}
func (e *WrongTypeParamsError) Error() string { return format(e.Span, e.Message()) }

// WrongParamsError reports too few arguments for a signature.
type WrongParamsError struct {
	Span     source.Span
	Expected Range
	Actual   int
}

func (e *WrongParamsError) Pos() source.Span { return e.Span }
func (e *WrongParamsError) Kind() string     { return "WrongParams" }
func (e *WrongParamsError) Message() string {
	return fmt.Sprintf("expected %s arguments, got %d", e.Expected, e.Actual)
}
func (e *WrongParamsError) Error() string { return format(e.Span, e.Message()) }

// AssignFailedError is the root of an assignability failure: Right is not
// assignable to Left, for the reasons in Cause.
type AssignFailedError struct {
	Span  source.Span
	Left  Type
	Right Type
	Cause []error
}

func (e *AssignFailedError) Pos() source.Span { return e.Span }
func (e *AssignFailedError) Kind() string     { return "AssignFailed" }
func (e *AssignFailedError) Message() string {
	return fmt.Sprintf("type '%s' is not assignable to type '%s'", e.Right, e.Left)
}
func (e *AssignFailedError) Error() string   { return format(e.Span, e.Message()) }
func (e *AssignFailedError) Unwrap() []error { return e.Cause }

// UnionError aggregates the failure of every branch of a union.
type UnionError struct {
	Span   source.Span
	Errors []error
}

func (e *UnionError) Pos() source.Span { return e.Span }
func (e *UnionError) Kind() string     { return "UnionError" }
func (e *UnionError) Message() string {
	return fmt.Sprintf("%d union branch(es) failed", len(e.Errors))
}
func (e *UnionError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		parts[i] = err.Error()
	}
	return format(e.Span, e.Message()+": "+strings.Join(parts, "; "))
}
func (e *UnionError) Unwrap() []error { return e.Errors }

// IntersectionError wraps the first failing branch of an intersection.
type IntersectionError struct {
	Span source.Span
	Err  error
}

func (e *IntersectionError) Pos() source.Span { return e.Span }
func (e *IntersectionError) Kind() string     { return "IntersectionError" }
func (e *IntersectionError) Message() string  { return "intersection branch failed" }
func (e *IntersectionError) Error() string {
	return format(e.Span, e.Message()+": "+e.Err.Error())
}
func (e *IntersectionError) Unwrap() []error { return []error{e.Err} }

// MissingFieldsError lists the target members that the source lacks.
type MissingFieldsError struct {
	Span   source.Span
	Fields []Member
}

func (e *MissingFieldsError) Pos() source.Span { return e.Span }
func (e *MissingFieldsError) Kind() string     { return "MissingFields" }
func (e *MissingFieldsError) Message() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.String()
	}
	return "missing fields: " + strings.Join(names, ", ")
}
func (e *MissingFieldsError) Error() string { return format(e.Span, e.Message()) }

// CannotAssignToThisError reports an assignment whose target is `this`.
type CannotAssignToThisError struct {
	Span source.Span
}

func (e *CannotAssignToThisError) Pos() source.Span { return e.Span }
func (e *CannotAssignToThisError) Kind() string     { return "CannotAssignToThis" }
func (e *CannotAssignToThisError) Message() string  { return "cannot assign to 'this'" }
func (e *CannotAssignToThisError) Error() string    { return format(e.Span, e.Message()) }

// UnsupportedError reports an input shape the checker does not handle.
type UnsupportedError struct {
	Span        source.Span
	Description string
}

func (e *UnsupportedError) Pos() source.Span { return e.Span }
func (e *UnsupportedError) Kind() string     { return "Unsupported" }
func (e *UnsupportedError) Message() string  { return "unsupported: " + e.Description }
func (e *UnsupportedError) Error() string    { return format(e.Span, e.Message()) }

// Unsupportedf builds an UnsupportedError with a formatted description.
func Unsupportedf(span source.Span, format string, args ...any) *UnsupportedError {
	return &UnsupportedError{Span: span, Description: fmt.Sprintf(format, args...)}
}
