package checker

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"tsinfer/pkg/ast"
	"tsinfer/pkg/source"
	"tsinfer/pkg/types"
)

func TestDebugTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := NewChecker(NewEnvironment(), Options{Logger: logger})

	if _, err := c.TypeOf(infix(num(1), "+", num(2))); err != nil {
		t.Fatal(err)
	}
	if _, err := c.TypeOf(ident("missing")); err == nil {
		t.Fatal("expected an undefined symbol")
	}
	if err := c.Assign(types.Number, types.String, source.Span{}); err == nil {
		t.Fatal("expected string not assignable to number")
	}
	class := &ast.ClassExpression{Body: []ast.ClassMember{
		&ast.ClassProperty{Key: ident("count"), IsStatic: true},
	}}
	if _, err := c.TypeOf(class); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"component=checker",
		`expr="(1 + 2)" type=number`,
		`msg="typeOf failed"`,
		"expr=missing",
		`msg="assign failed"`,
		`msg="class member skipped"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestNoTraceByDefault(t *testing.T) {
	c := NewChecker(NewEnvironment(), Options{})
	if c.tracing() {
		t.Error("a checker without a logger should not trace")
	}
}

func TestExtractKindString(t *testing.T) {
	if CallKind.String() != "call" || NewKind.String() != "new" {
		t.Errorf("kinds render as %q and %q", CallKind, NewKind)
	}
}
