// Package source holds the text that spans point into.
package source

import (
	"path/filepath"
	"strings"
)

// SourceFile is a named piece of source text. Diagnostics use it to print
// the line a span starts on.
type SourceFile struct {
	Name    string // short name shown in positions, e.g. "index.ts"
	Path    string // location on disk, empty for inline text
	Content string

	lines []string // split on first use
}

// NewSourceFile returns a file with the given display name, path and text.
func NewSourceFile(name, path, content string) *SourceFile {
	return &SourceFile{Name: name, Path: path, Content: content}
}

// NewEvalSource wraps inline text that did not come from disk.
func NewEvalSource(content string) *SourceFile {
	return NewSourceFile("<eval>", "", content)
}

// FromFile names the file after the last element of filePath.
func FromFile(filePath, content string) *SourceFile {
	return NewSourceFile(filepath.Base(filePath), filePath, content)
}

// Line returns the 1-based line n without its terminator, or "" when n is
// out of range.
func (sf *SourceFile) Line(n int) string {
	if sf.lines == nil {
		sf.lines = strings.Split(sf.Content, "\n")
	}
	if n < 1 || n > len(sf.lines) {
		return ""
	}
	return strings.TrimSuffix(sf.lines[n-1], "\r")
}

// DisplayPath is the path when there is one, else the name.
func (sf *SourceFile) DisplayPath() string {
	if sf.Path == "" {
		return sf.Name
	}
	return sf.Path
}
