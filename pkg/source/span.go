package source

import "fmt"

// Span locates a region of source text. It is position metadata only: two
// types or diagnostics that differ only in their spans describe the same thing.
//
// The zero Span is a valid "no position" value.
type Span struct {
	File   *SourceFile // may be nil for synthesized nodes
	Line   int         // 1-based line number of Start
	Column int         // 1-based column number (rune index within the line)
	Start  int         // 0-based byte offset of the first byte
	End    int         // 0-based byte offset after the last byte
}

// IsZero reports whether s carries no position.
func (s Span) IsZero() bool {
	return s.Line == 0 && s.Start == 0 && s.End == 0
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

func (s Span) String() string {
	if s.IsZero() {
		return "<unknown>"
	}
	if s.File != nil {
		return fmt.Sprintf("%s:%d:%d", s.File.DisplayPath(), s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}
