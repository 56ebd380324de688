package types

import (
	"errors"
	"testing"

	"tsinfer/pkg/source"
)

var noSpan = source.Span{}

// sampleTypes is a spread of shapes used by the algebraic property tests.
func sampleTypes() []Type {
	tp := NewTypeParameter("T", String)
	enum := &EnumType{Name: "Color", Members: []string{"Red", "Green"}}
	return []Type{
		String, Number, Boolean, Null, Undefined, Void, Never, Object, BigInt, Symbol,
		NewStringLiteral("x"), NewNumberLiteral(42), NewBooleanLiteral(true),
		NewArrayType(Number),
		NewTupleType(NewNumberLiteral(1), String),
		NewUnionType(String, Number),
		&IntersectionType{Types: []Type{point("x", "y"), NewTypeLiteral().WithProperty("z", String)}},
		point("x", "y"),
		NewTypeLiteral(),
		&InterfaceType{Name: "Named", Members: []Member{&PropertySignature{Name: PropKey{Name: "name"}, Type: String}}},
		NewFunctionType(NewSignature(NewParam("a", Number)).Returns(String)),
		NewConstructorType(NewSignature().Returns(point("x", "y"))),
		&ClassType{Name: "Foo", Members: []Member{&PropertySignature{Name: PropKey{Name: "foo"}, Type: Number}}},
		enum,
		&EnumVariantType{EnumName: "Color", MemberName: "Red"},
		tp,
		&IndexedAccessType{Object: point("x", "y"), Index: String},
		&OtherType{Raw: "Promise<string>"},
	}
}

func TestAssignReflexive(t *testing.T) {
	for _, typ := range sampleTypes() {
		if err := Assign(typ, typ, noSpan); err != nil {
			t.Errorf("assign(%s, %s) failed: %v", typ, typ, err)
		}
	}
}

func TestAssignThisAlwaysFails(t *testing.T) {
	for _, from := range []Type{This, Never, Any, NewUnionType(This, String)} {
		err := Assign(This, from, noSpan)
		var target *CannotAssignToThisError
		if !errors.As(err, &target) {
			t.Errorf("assign(this, %s): expected CannotAssignToThis, got %v", from, err)
		}
	}
}

func TestAssignAbsorbingElements(t *testing.T) {
	for _, typ := range sampleTypes() {
		if err := Assign(Any, typ, noSpan); err != nil {
			t.Errorf("assign(any, %s) failed: %v", typ, err)
		}
		if err := Assign(typ, Any, noSpan); err != nil {
			t.Errorf("assign(%s, any) failed: %v", typ, err)
		}
		if err := Assign(Unknown, typ, noSpan); err != nil {
			t.Errorf("assign(unknown, %s) failed: %v", typ, err)
		}
		err := Assign(typ, Unknown, noSpan)
		wantOK := IsKeyword(typ, KindAny) || IsKeyword(typ, KindUndefined)
		if wantOK && err != nil {
			t.Errorf("assign(%s, unknown) failed: %v", typ, err)
		}
		if !wantOK && err == nil {
			t.Errorf("assign(%s, unknown) unexpectedly succeeded", typ)
		}
	}
}

func TestAssignUnionTargetExistential(t *testing.T) {
	samples := sampleTypes()
	pairs := [][2]Type{
		{String, Number},
		{NewArrayType(Number), NewTupleType(String)},
		{point("x", "y"), Null},
		{NewStringLiteral("x"), Boolean},
	}
	for _, pair := range pairs {
		union := NewUnionType(pair[0], pair[1])
		for _, c := range samples {
			if _, ok := c.(*UnionType); ok {
				// A union source is split first; see TestAssignUnionSourceUniversal.
				continue
			}
			want := IsAssignable(pair[0], c) || IsAssignable(pair[1], c)
			if got := IsAssignable(union, c); got != want {
				t.Errorf("assign(%s, %s) = %v, want %v", union, c, got, want)
			}
		}
	}
}

func TestAssignUnionSourceUniversal(t *testing.T) {
	samples := sampleTypes()
	pairs := [][2]Type{
		{NewStringLiteral("a"), NewStringLiteral("b")},
		{String, Number},
		{NewNumberLiteral(1), Null},
		{point("x", "y"), NewTypeLiteral()},
	}
	for _, pair := range pairs {
		union := &UnionType{Types: []Type{pair[0], pair[1]}}
		for _, a := range samples {
			want := IsAssignable(a, pair[0]) && IsAssignable(a, pair[1])
			if got := IsAssignable(a, union); got != want {
				t.Errorf("assign(%s, %s) = %v, want %v", a, union, got, want)
			}
		}
	}
}

func TestAssignUnionSourceCollectsEveryBranch(t *testing.T) {
	from := &UnionType{Types: []Type{Number, String, Boolean}}
	err := Assign(String, from, noSpan)
	var ue *UnionError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnionError, got %v", err)
	}
	if len(ue.Errors) != 2 {
		t.Errorf("expected 2 branch errors, got %d: %v", len(ue.Errors), ue.Errors)
	}
}

func TestAssignMissingFields(t *testing.T) {
	to := NewTypeLiteral().WithProperty("a", Number)
	err := Assign(to, NewTypeLiteral(), noSpan)
	var mf *MissingFieldsError
	if !errors.As(err, &mf) {
		t.Fatalf("expected MissingFields, got %v", err)
	}
	if len(mf.Fields) != 1 {
		t.Fatalf("expected 1 missing field, got %d", len(mf.Fields))
	}
	if key, _ := mf.Fields[0].Key(); key.Name != "a" {
		t.Errorf("expected missing field 'a', got %s", mf.Fields[0])
	}
	var af *AssignFailedError
	if !errors.As(err, &af) || !af.Left.Equals(to) {
		t.Errorf("expected root AssignFailed naming the target, got %v", err)
	}
}

func TestAssignStructural(t *testing.T) {
	tests := []struct {
		name   string
		to     Type
		from   Type
		wantOK bool
	}{
		{"extra fields", point("x", "y"), point("x", "y").WithProperty("z", String), true},
		{"property type mismatch", point("x", "y"), NewTypeLiteral().WithProperty("x", String).WithProperty("y", Number), false},
		{"literal property", point("x", "y"), NewTypeLiteral().WithProperty("x", NewNumberLiteral(1)).WithProperty("y", NewNumberLiteral(2)), true},
		{"optional target member", NewTypeLiteral().WithOptionalProperty("a", Number), NewTypeLiteral(), true},
		{"untyped property is any", NewTypeLiteral(&PropertySignature{Name: PropKey{Name: "a"}}), NewTypeLiteral().WithProperty("a", String), true},
		{"computed key differs", NewTypeLiteral(&PropertySignature{Name: PropKey{Name: "a", Computed: true}, Type: Number}), NewTypeLiteral().WithProperty("a", Number), false},
		{"tuple to object", NewTypeLiteral(), NewTupleType(), false},
		{"array to object", point("x", "y"), NewArrayType(Number), false},
		{"literal to object", NewTypeLiteral().WithProperty("length", Number), NewStringLiteral("x"), false},
		{"interface from literal", &InterfaceType{Name: "P", Members: point("x", "y").Members}, point("x", "y"), true},
		{"class from literal", &ClassType{Name: "C", Members: point("x", "y").Members}, point("x", "y"), true},
		{"inherited member", &InterfaceType{Name: "P3", Members: []Member{&PropertySignature{Name: PropKey{Name: "z"}, Type: Number}}, Extends: []Type{point("x", "y")}}, point("x", "y"), false},
		{"method by return type",
			NewTypeLiteral().WithMethod("m", NewSignature().Returns(String)),
			NewTypeLiteral().WithMethod("m", NewSignature(NewParam("a", Number)).Returns(NewStringLiteral("s"))), true},
		{"method return mismatch",
			NewTypeLiteral().WithMethod("m", NewSignature().Returns(String)),
			NewTypeLiteral().WithMethod("m", NewSignature().Returns(Number)), false},
		{"method from function property",
			NewTypeLiteral().WithMethod("m", NewSignature().Returns(String)),
			NewTypeLiteral().WithProperty("m", NewFunctionType(NewSignature().Returns(String))), true},
		{"call signature matched structurally",
			NewTypeLiteral().WithCallSignature(NewSignature(NewParam("a", Number)).Returns(String)),
			NewTypeLiteral().WithCallSignature(NewSignature(NewParam("b", Number)).Returns(String)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Assign(tt.to, tt.from, noSpan)
			if tt.wantOK && err != nil {
				t.Errorf("assign(%s, %s) failed: %v", tt.to, tt.from, err)
			}
			if !tt.wantOK && err == nil {
				t.Errorf("assign(%s, %s) unexpectedly succeeded", tt.to, tt.from)
			}
		})
	}
}

func TestAssignArrayTupleCovariance(t *testing.T) {
	if err := Assign(NewArrayType(Number), NewTupleType(NewNumberLiteral(1), NewNumberLiteral(2)), noSpan); err != nil {
		t.Errorf("number[] should accept [1, 2]: %v", err)
	}
	if err := Assign(NewArrayType(String), NewTupleType(NewNumberLiteral(1)), noSpan); err == nil {
		t.Error("string[] should reject [1]")
	}
	if err := Assign(NewArrayType(Number), NewArrayType(NewNumberLiteral(3)), noSpan); err != nil {
		t.Errorf("number[] should accept 3[]: %v", err)
	}
	if err := Assign(NewArrayType(Number), NewArrayType(String), noSpan); err == nil {
		t.Error("number[] should reject string[]")
	}
}

func TestAssignTuple(t *testing.T) {
	to := NewTupleType(Number, String)
	tests := []struct {
		name   string
		from   Type
		wantOK bool
	}{
		{"exact", NewTupleType(NewNumberLiteral(1), NewStringLiteral("a")), true},
		{"undefined placeholders", NewTupleType(Undefined, Undefined), true},
		{"mismatch", NewTupleType(String, String), false},
		{"length", NewTupleType(Number), false},
		{"array", NewArrayType(Number), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Assign(to, tt.from, noSpan)
			if (err == nil) != tt.wantOK {
				t.Errorf("assign(%s, %s) = %v, wantOK %v", to, tt.from, err, tt.wantOK)
			}
		})
	}
}

func TestAssignKeywordsAndLiterals(t *testing.T) {
	tests := []struct {
		name   string
		to     Type
		from   Type
		wantOK bool
	}{
		{"number from literal", Number, NewNumberLiteral(42), true},
		{"string from literal", String, NewStringLiteral("x"), true},
		{"boolean from literal", Boolean, NewBooleanLiteral(false), true},
		{"number from string literal", Number, NewStringLiteral("x"), false},
		{"literal from keyword", NewNumberLiteral(1), Number, false},
		{"literal identity", NewStringLiteral("a"), NewStringLiteral("a"), true},
		{"literal value", NewStringLiteral("a"), NewStringLiteral("b"), false},
		{"void from undefined", Void, Undefined, true},
		{"null from undefined", Null, Undefined, false},
		{"object from string", Object, String, true},
		{"object from number", Object, Number, true},
		{"object from boolean", Object, Boolean, false},
		{"object from function", Object, NewFunctionType(NewSignature()), true},
		{"object from type literal", Object, point("x", "y"), true},
		{"never from string", Never, String, false},
		{"string from never", String, Never, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Assign(tt.to, tt.from, noSpan)
			if (err == nil) != tt.wantOK {
				t.Errorf("assign(%s, %s) = %v, wantOK %v", tt.to, tt.from, err, tt.wantOK)
			}
		})
	}
}

func TestAssignUnionAndIntersectionTargets(t *testing.T) {
	if err := Assign(NewUnionType(String, Number), NewStringLiteral("x"), noSpan); err != nil {
		t.Errorf("string | number should accept \"x\": %v", err)
	}
	if err := Assign(NewUnionType(String, Number), Boolean, noSpan); err == nil {
		t.Error("string | number should reject boolean")
	}
	if err := Assign(&UnionType{}, String, noSpan); err == nil {
		t.Error("an empty union accepts nothing")
	}
	if err := Assign(&IntersectionType{}, String, noSpan); err != nil {
		t.Errorf("an empty intersection accepts everything: %v", err)
	}

	both := &IntersectionType{Types: []Type{
		NewTypeLiteral().WithProperty("a", Number),
		NewTypeLiteral().WithProperty("b", String),
	}}
	if err := Assign(both, NewTypeLiteral().WithProperty("a", Number).WithProperty("b", String), noSpan); err != nil {
		t.Errorf("intersection should accept a value with both members: %v", err)
	}
	err := Assign(both, NewTypeLiteral().WithProperty("a", Number), noSpan)
	var ie *IntersectionError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IntersectionError, got %v", err)
	}
	var mf *MissingFieldsError
	if !errors.As(ie.Err, &mf) {
		t.Errorf("expected the failing branch to report missing fields, got %v", ie.Err)
	}
}

func TestAssignEnums(t *testing.T) {
	color := &EnumType{Name: "Color", Members: []string{"Red", "Green"}}
	red := &EnumVariantType{EnumName: "Color", MemberName: "Red"}
	green := &EnumVariantType{EnumName: "Color", MemberName: "Green"}
	other := &EnumVariantType{EnumName: "Shape", MemberName: "Red"}

	if err := Assign(color, red, noSpan); err != nil {
		t.Errorf("Color should accept Color.Red: %v", err)
	}
	if err := Assign(color, other, noSpan); err == nil {
		t.Error("Color should reject Shape.Red")
	}
	if err := Assign(red, green, noSpan); err == nil {
		t.Error("Color.Red should reject Color.Green")
	}
	if err := Assign(color, Number, noSpan); err == nil {
		t.Error("Color should reject number")
	}
}

func TestAssignTypeParameters(t *testing.T) {
	constrained := NewTypeParameter("T", NewStringLiteral("a"))
	if err := Assign(String, constrained, noSpan); err != nil {
		t.Errorf("string should accept T extends \"a\": %v", err)
	}
	if err := Assign(Number, constrained, noSpan); err == nil {
		t.Error("number should reject T extends \"a\"")
	}
	free := NewTypeParameter("U", nil)
	if err := Assign(NewTypeLiteral(), free, noSpan); err != nil {
		t.Errorf("{} should accept an unconstrained parameter: %v", err)
	}
	if err := Assign(String, free, noSpan); err == nil {
		t.Error("string should reject an unconstrained parameter")
	}
}

func TestAssignFunctions(t *testing.T) {
	to := NewFunctionType(NewSignature().Returns(String))
	if err := Assign(to, NewFunctionType(NewSignature(NewParam("x", Number)).Returns(NewStringLiteral("s"))), noSpan); err != nil {
		t.Errorf("return covariance should accept: %v", err)
	}
	if err := Assign(to, NewFunctionType(NewSignature().Returns(Number)), noSpan); err == nil {
		t.Error("mismatched return should be rejected")
	}
	if err := Assign(to, NewConstructorType(NewSignature().Returns(String)), noSpan); err == nil {
		t.Error("constructor should not be assignable to a function")
	}
	ctor := NewConstructorType(NewSignature().Returns(point("x", "y")))
	if err := Assign(ctor, NewConstructorType(NewSignature().Returns(point("x", "y").WithProperty("z", Number))), noSpan); err != nil {
		t.Errorf("constructor return covariance should accept: %v", err)
	}
}

func TestAssignFallback(t *testing.T) {
	a := &OtherType{Raw: "Promise<string>"}
	err := Assign(a, &OtherType{Raw: "Promise<number>"}, noSpan)
	var unsupported *UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected Unsupported, got %v", err)
	}
	if unsupported.Description == "" {
		t.Error("expected the description to name both types")
	}

	ia := &IndexedAccessType{Object: point("x", "y"), Index: String}
	if err := Assign(ia, &IndexedAccessType{Object: point("a", "b"), Index: String}, noSpan); err != nil {
		t.Errorf("name-insensitive equal shapes should be accepted: %v", err)
	}
}

func TestAssignDepthLimit(t *testing.T) {
	var to, from Type = Number, String
	for i := 0; i < 20; i++ {
		to, from = NewArrayType(to), NewArrayType(from)
	}
	err := (&Assigner{MaxDepth: 5}).Assign(to, from, noSpan)
	var unsupported *UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected Unsupported from the depth limit, got %v", err)
	}
}

func TestAssignFailedIsNotDoubleWrapped(t *testing.T) {
	err := Assign(Number, String, noSpan)
	af, ok := err.(*AssignFailedError)
	if !ok {
		t.Fatalf("expected *AssignFailedError, got %T", err)
	}
	if len(af.Cause) != 0 {
		t.Errorf("leaf failure should carry no causes, got %v", af.Cause)
	}
}

func TestAssignCyclicShapes(t *testing.T) {
	a, b := selfRef("x", "y", "z"), selfRef("x", "y", "z")
	if err := Assign(a, b, noSpan); err != nil {
		t.Error("cyclic shape should accept its twin")
	}
	if err := Assign(selfRef("x"), b, noSpan); err != nil {
		t.Error("cyclic shape with extra members should be accepted")
	}
	if err := Assign(a, selfRef("x"), noSpan); err == nil {
		t.Error("missing members should still be rejected")
	}

	// Generic signatures go through the name-insensitive fallback.
	fa := NewFunctionType(NewSignature().WithTypeParams(NewTypeParameter("T", nil)).Returns(a))
	fb := NewFunctionType(NewSignature().WithTypeParams(NewTypeParameter("U", nil)).Returns(selfRef("p", "q", "r")))
	if err := Assign(fa, fb, noSpan); err != nil {
		t.Error("generic functions returning equal cyclic shapes should be accepted")
	}
}
