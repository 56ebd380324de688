package types

import (
	"math"
	"testing"
)

func point(x, y string) *TypeLiteral {
	return NewTypeLiteral().WithProperty(x, Number).WithProperty(y, Number)
}

func TestEqualIgnoreSpan(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Type
		equal bool
	}{
		{"same keyword", Number, KeywordOf(KindNumber), true},
		{"different keyword", Number, String, false},
		{"literal", NewNumberLiteral(1), NewNumberLiteral(1), true},
		{"NaN literal", NewNumberLiteral(math.NaN()), NewNumberLiteral(math.NaN()), true},
		{"literal kinds", NewNumberLiteral(1), NewStringLiteral("1"), false},
		{"array", NewArrayType(String), NewArrayType(String), true},
		{"tuple order", NewTupleType(String, Number), NewTupleType(Number, String), false},
		{"union order", NewUnionType(String, Number), NewUnionType(Number, String), true},
		{"union multiset", &UnionType{Types: []Type{String, String}}, &UnionType{Types: []Type{String, Number}}, false},
		{"intersection order", &IntersectionType{Types: []Type{point("x", "y"), String}}, &IntersectionType{Types: []Type{String, point("x", "y")}}, true},
		{"member order", point("x", "y"), point("y", "x"), true},
		{"member names", point("x", "y"), point("a", "b"), false},
		{"optional differs", NewTypeLiteral().WithProperty("a", Number), NewTypeLiteral().WithOptionalProperty("a", Number), false},
		{"param names", NewFunctionType(NewSignature(NewParam("a", Number))), NewFunctionType(NewSignature(NewParam("b", Number))), false},
		{"function vs constructor", NewFunctionType(NewSignature()), NewConstructorType(NewSignature()), false},
		{"enum variant", &EnumVariantType{EnumName: "E", MemberName: "A"}, &EnumVariantType{EnumName: "E", MemberName: "A"}, true},
		{"this", This, &ThisType{}, true},
		{"other", &OtherType{Raw: "Foo"}, &OtherType{Raw: "Foo"}, true},
		{"nil vs type", nil, String, false},
		{"nil vs nil", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EqualIgnoreSpan(tt.a, tt.b); got != tt.equal {
				t.Errorf("EqualIgnoreSpan(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.equal)
			}
			if got := EqualIgnoreSpan(tt.b, tt.a); got != tt.equal {
				t.Errorf("EqualIgnoreSpan is not symmetric for %v, %v", tt.a, tt.b)
			}
		})
	}
}

func TestEqualIgnoreNameAndSpan(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Type
		equal bool
	}{
		{"member names erased", point("x", "y"), point("a", "b"), true},
		{"member types kept", NewTypeLiteral().WithProperty("a", Number), NewTypeLiteral().WithProperty("a", String), false},
		{"computed keys kept", NewTypeLiteral(&PropertySignature{Name: PropKey{Name: "k", Computed: true}, Type: Number}),
			NewTypeLiteral().WithProperty("k", Number), false},
		{"param names erased", NewFunctionType(NewSignature(NewParam("a", Number))), NewFunctionType(NewSignature(NewParam("b", Number))), true},
		{"param count kept", NewFunctionType(NewSignature(NewParam("a", Number))), NewFunctionType(NewSignature()), false},
		{"interface names erased",
			&InterfaceType{Name: "A", Members: []Member{&PropertySignature{Name: PropKey{Name: "x"}, Type: Number}}},
			&InterfaceType{Name: "B", Members: []Member{&PropertySignature{Name: PropKey{Name: "y"}, Type: Number}}}, true},
		{"enum names erased", &EnumType{Name: "E", Members: []string{"A"}}, &EnumType{Name: "F", Members: []string{"B"}}, true},
		{"enum size kept", &EnumType{Name: "E", Members: []string{"A"}}, &EnumType{Name: "E", Members: []string{"A", "B"}}, false},
		{"keywords kept", String, Number, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EqualIgnoreNameAndSpan(tt.a, tt.b); got != tt.equal {
				t.Errorf("EqualIgnoreNameAndSpan(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.equal)
			}
		})
	}
}

func TestEqualityModesAreIndependent(t *testing.T) {
	a, b := point("x", "y"), point("a", "b")
	if !EqualIgnoreNameAndSpan(a, b) {
		t.Fatal("expected name-insensitive equality")
	}
	// Running the name-insensitive comparison must not affect later strict ones.
	if EqualIgnoreSpan(a, b) {
		t.Error("expected strict comparison to still see the names")
	}
	if a.Members[0].(*PropertySignature).Name.Name != "x" {
		t.Error("comparison mutated its input")
	}
}

func TestEqualDepthGuard(t *testing.T) {
	var a, b Type = Number, Number
	for i := 0; i < MaxEqualDepth+10; i++ {
		a, b = NewArrayType(a), NewArrayType(b)
	}
	if EqualIgnoreSpan(a, b) {
		t.Error("expected comparison beyond MaxEqualDepth to report unequal")
	}
}

// selfRef returns a shape whose members all point back at the shape itself.
func selfRef(names ...string) *TypeLiteral {
	tl := NewTypeLiteral()
	for _, n := range names {
		tl.Members = append(tl.Members, &PropertySignature{Name: PropKey{Name: n}, Type: tl})
	}
	return tl
}

func TestEqualCyclicShapes(t *testing.T) {
	a, b := selfRef("x", "y", "z"), selfRef("x", "y", "z")
	if !EqualIgnoreSpan(a, b) {
		t.Error("identically built cyclic shapes should compare equal")
	}
	if !EqualIgnoreNameAndSpan(a, selfRef("p", "q", "r")) {
		t.Error("cyclic shapes differing only in names should compare equal without names")
	}
	if EqualIgnoreSpan(a, selfRef("x", "y", "w")) {
		t.Error("cyclic shapes with different keys should differ")
	}
	if EqualIgnoreNameAndSpan(a, selfRef("x", "y")) {
		t.Error("cyclic shapes with different member counts should differ")
	}
}
