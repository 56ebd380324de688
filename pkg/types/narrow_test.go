package types

import (
	"math"
	"testing"
)

func TestRemoveFalsy(t *testing.T) {
	tests := []struct {
		name     string
		input    Type
		expected Type
	}{
		{"undefined", Undefined, Never},
		{"null", Null, Never},
		{"false", NewBooleanLiteral(false), Never},
		{"true", NewBooleanLiteral(true), NewBooleanLiteral(true)},
		{"string", String, String},
		{"string | undefined", NewUnionType(String, Undefined), String},
		{"string | null | number", NewUnionType(String, Null, Number), NewUnionType(String, Number)},
		{"null | undefined", NewUnionType(Null, Undefined), Never},
		{"nested union", &UnionType{Types: []Type{&UnionType{Types: []Type{Null, String}}, Number}}, NewUnionType(String, Number)},
		{"intersection with null", &IntersectionType{Types: []Type{String, Null}}, Never},
		{"intersection kept", &IntersectionType{Types: []Type{String, Number}}, &IntersectionType{Types: []Type{String, Number}}},
		{"intersection collapses", &IntersectionType{Types: []Type{String, NewUnionType(String, Null)}}, String},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveFalsy(tt.input)
			if !got.Equals(tt.expected) {
				t.Errorf("RemoveFalsy(%s) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRemoveTruthy(t *testing.T) {
	tests := []struct {
		name     string
		input    Type
		expected Type
	}{
		{"true", NewBooleanLiteral(true), Never},
		{"false", NewBooleanLiteral(false), NewBooleanLiteral(false)},
		{"true | undefined", NewUnionType(NewBooleanLiteral(true), Undefined), Undefined},
		{"intersection with true", &IntersectionType{Types: []Type{NewBooleanLiteral(true), Boolean}}, Never},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveTruthy(tt.input)
			if !got.Equals(tt.expected) {
				t.Errorf("RemoveTruthy(%s) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRemoveNullUndefined(t *testing.T) {
	in := NewUnionType(NewBooleanLiteral(false), Null, Undefined)
	got := RemoveNullUndefined(in)
	if !got.Equals(NewBooleanLiteral(false)) {
		t.Errorf("RemoveNullUndefined(%s) = %s, want false", in, got)
	}
}

func TestNegate(t *testing.T) {
	tests := []struct {
		name     string
		input    Type
		expected Type
	}{
		{"!true", NewBooleanLiteral(true), NewBooleanLiteral(false)},
		{"!false", NewBooleanLiteral(false), NewBooleanLiteral(true)},
		{"!0", NewNumberLiteral(0), NewBooleanLiteral(true)},
		{"!NaN", NewNumberLiteral(math.NaN()), NewBooleanLiteral(true)},
		{"!1", NewNumberLiteral(1), NewBooleanLiteral(false)},
		{"!\"\"", NewStringLiteral(""), NewBooleanLiteral(true)},
		{"!\"a\"", NewStringLiteral("a"), NewBooleanLiteral(false)},
		{"!string", String, Boolean},
		{"!object", NewTypeLiteral(), Boolean},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Negate(tt.input)
			if !got.Equals(tt.expected) {
				t.Errorf("Negate(%s) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}
