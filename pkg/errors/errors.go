package errors

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tsinfer/pkg/source"
)

// Diagnostic is the interface implemented by every error the type system
// reports.
type Diagnostic interface {
	error // Embed the standard error interface
	Pos() source.Span
	Kind() string // e.g., "UndefinedSymbol", "MissingFields", "Unsupported"
	// Message returns the specific error message without position info.
	Message() string
}

// multiCause is implemented by composite diagnostics (union/intersection
// failures, failed assignments) that carry nested causes.
type multiCause interface {
	Unwrap() []error
}

// Causes returns the nested causes of err, or nil for a leaf.
func Causes(err error) []error {
	if mc, ok := err.(multiCause); ok {
		return mc.Unwrap()
	}
	return nil
}

// Count returns the number of diagnostics in the tree rooted at err.
func Count(err error) int {
	if err == nil {
		return 0
	}
	n := 1
	for _, c := range Causes(err) {
		n += Count(c)
	}
	return n
}

// Printer formats numbers in user-facing messages.
var Printer = message.NewPrinter(language.English)

// DisplayErrors prints a list of diagnostics in a user-friendly format,
// including the source line, a position marker and the tree of causes.
func DisplayErrors(w io.Writer, errs []error) {
	if len(errs) == 0 {
		return
	}
	total := 0
	for _, err := range errs {
		total += Count(err)
	}
	for _, err := range errs {
		displayOne(w, err, 0)
		fmt.Fprintln(w)
	}
	Printer.Fprintf(w, "%d diagnostic(s) in %d tree(s)\n", total, len(errs))
}

func displayOne(w io.Writer, err error, depth int) {
	indent := strings.Repeat("  ", depth)
	d, ok := err.(Diagnostic)
	if !ok {
		fmt.Fprintf(w, "%s%v\n", indent, err)
		for _, c := range Causes(err) {
			displayOne(w, c, depth+1)
		}
		return
	}

	pos := d.Pos()
	if pos.IsZero() {
		fmt.Fprintf(w, "%s%s: %s\n", indent, d.Kind(), d.Message())
	} else {
		fmt.Fprintf(w, "%s%s at %s: %s\n", indent, d.Kind(), pos, d.Message())
		// Only the root of a tree shows the source line; causes usually share it.
		if depth == 0 && pos.File != nil {
			if line := pos.File.Line(pos.Line); line != "" {
				fmt.Fprintf(w, "%s  %s\n", indent, strings.TrimRight(line, "\t "))
				col := pos.Column - 1
				if col < 0 {
					col = 0
				}
				width := pos.Len()
				if col+width > len(line) {
					width = len(line) - col
				}
				if width < 1 {
					width = 1
				}
				fmt.Fprintf(w, "%s  %s^%s\n", indent, strings.Repeat(" ", col), strings.Repeat("~", width-1))
			}
		}
	}
	for _, c := range Causes(err) {
		displayOne(w, c, depth+1)
	}
}
