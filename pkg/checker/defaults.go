package checker

import (
	"tsinfer/pkg/source"
	"tsinfer/pkg/types"
)

var nilSpan = source.Span{}

// defaultGlobal returns the type of the value globals every scope has.
func defaultGlobal(name string) (types.Type, bool) {
	switch name {
	case "undefined":
		return types.Undefined, true
	case "NaN", "Infinity":
		return types.Number, true
	}
	return nil, false
}
