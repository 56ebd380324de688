package typeyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tsinfer/pkg/types"
)

func decodeString(t *testing.T, d *Decoder, src string) types.Type {
	t.Helper()
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	typ, err := d.Decode(&node)
	require.NoError(t, err)
	return typ
}

func assertType(t *testing.T, want, got types.Type) {
	t.Helper()
	assert.Truef(t, types.EqualIgnoreSpan(want, got), "want %s, got %s", want, got)
}

func TestParseTypeScalars(t *testing.T) {
	tests := []struct {
		src  string
		want types.Type
	}{
		{"number", types.Number},
		{"never", types.Never},
		{`"hi"`, types.NewStringLiteral("hi")},
		{"42", types.NewNumberLiteral(42)},
		{"-1.5", types.NewNumberLiteral(-1.5)},
		{"true", types.NewBooleanLiteral(true)},
		{"this", types.This},
		{"RegExp", types.RegExp},
		{"string[]", types.NewArrayType(types.String)},
		{"string[][]", types.NewArrayType(types.NewArrayType(types.String))},
		{"[number, string]", types.NewTupleType(types.Number, types.String)},
		{"[]", types.NewTupleType()},
		{"string | number", &types.UnionType{Types: []types.Type{types.String, types.Number}}},
		{"| 1 | 2", &types.UnionType{Types: []types.Type{types.NewNumberLiteral(1), types.NewNumberLiteral(2)}}},
		{"(string | null)[]", types.NewArrayType(&types.UnionType{Types: []types.Type{types.String, types.Null}})},
		{"A & B | C", nil},
	}
	d := NewDecoder()
	a := types.NewTypeLiteral().WithProperty("a", types.Number)
	b := types.NewTypeLiteral().WithProperty("b", types.String)
	d.Declare("A", a)
	d.Declare("B", b)
	d.Declare("C", types.Boolean)
	tests[len(tests)-1].want = &types.UnionType{Types: []types.Type{
		&types.IntersectionType{Types: []types.Type{a, b}}, types.Boolean,
	}}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := d.ParseType(tt.src)
			require.NoError(t, err)
			assertType(t, tt.want, got)
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	for _, src := range []string{"", "Nope", "string |", "(number", "number]", "- x", "[1, 2"} {
		_, err := ParseType(src)
		assert.Errorf(t, err, "ParseType(%q) should fail", src)
	}
}

func TestDecodeShapes(t *testing.T) {
	d := NewDecoder()

	assertType(t, types.NewNumberLiteral(7), decodeString(t, d, "7"))
	assertType(t, types.NewBooleanLiteral(false), decodeString(t, d, "false"))
	assertType(t, types.Null, decodeString(t, d, "null"))
	assertType(t, types.NewStringLiteral("42"), decodeString(t, d, "{literal: '42'}"))
	assertType(t, types.NewTupleType(types.Number, types.NewNumberLiteral(1)), decodeString(t, d, "[number, 1]"))
	assertType(t, &types.OtherType{Raw: "Map<K, V>"}, decodeString(t, d, "{other: 'Map<K, V>'}"))

	fn := decodeString(t, d, `
fn:
  typeParams: [T, "K extends string"]
  params:
    - x: T
    - "y?: K"
    - {name: rest, type: "number[]", rest: true}
  returns: T[]
`)
	tp := types.NewTypeParameter("T", nil)
	kp := types.NewTypeParameter("K", types.String)
	want := types.NewFunctionType(types.NewSignature(
		types.NewParam("x", tp),
		types.Param{Pattern: &types.IdentPattern{Name: "y", Optional: true}, Type: kp},
		types.NewRestParam("rest", types.NewArrayType(types.Number)),
	).Returns(types.NewArrayType(tp)).WithTypeParams(tp, kp))
	assertType(t, want, fn)
	assert.Equal(t, "<T, K extends string>(x: T, y?: K, ...rest: number[]) => T[]", fn.String())

	obj := decodeString(t, d, `
object:
  a: number
  b?: string
  readonly c: boolean
  d:
  "[k]": 1
  m: {method: {params: ["x: number"], returns: string}}
calls:
  - {returns: number}
constructs:
  - {}
indexes:
  - {param: key, key: string, type: any}
`)
	members, ok := types.MembersOf(obj)
	require.True(t, ok)
	assert.Len(t, members, 9)
	want2 := types.NewTypeLiteral(
		&types.PropertySignature{Name: types.PropKey{Name: "a"}, Type: types.Number},
		&types.PropertySignature{Name: types.PropKey{Name: "b"}, Type: types.String, Optional: true},
		&types.PropertySignature{Name: types.PropKey{Name: "c"}, Type: types.Boolean, Readonly: true},
		&types.PropertySignature{Name: types.PropKey{Name: "d"}},
		&types.PropertySignature{Name: types.PropKey{Name: "k", Computed: true}, Type: types.NewNumberLiteral(1)},
		&types.MethodSignature{Name: types.PropKey{Name: "m"}, Signature: types.NewSignature(types.NewParam("x", types.Number)).Returns(types.String)},
		&types.CallSignature{Signature: types.NewSignature().Returns(types.Number)},
		&types.ConstructSignature{Signature: types.NewSignature()},
		&types.IndexSignature{Param: "key", KeyType: types.String, Type: types.Any},
	)
	assertType(t, want2, obj)
}

func TestDecodeNamedDeclarations(t *testing.T) {
	d := NewDecoder()
	d.Declare("Color", decodeString(t, d, "{enum: Color, members: [Red, Green]}"))
	base := decodeString(t, d, "{interface: Base, members: {id: number}}")
	d.Declare("Base", base)

	assertType(t, &types.EnumVariantType{EnumName: "Color", MemberName: "Red"}, decodeString(t, d, "Color.Red"))
	assertType(t, &types.EnumVariantType{EnumName: "Color", MemberName: "Green"}, decodeString(t, d, "{variant: Color.Green}"))
	_, err := d.ParseType("Color.Blue")
	assert.Error(t, err)

	derived := decodeString(t, d, "{interface: Derived, extends: [Base], members: {name: string}}")
	it, ok := derived.(*types.InterfaceType)
	require.True(t, ok)
	require.Len(t, it.Extends, 1)
	assert.Same(t, base, it.Extends[0])

	class := decodeString(t, d, `
class: Point
typeParams: [T]
members: {x: T}
constructs: [{params: ["x: T"]}]
`)
	ct, ok := class.(*types.ClassType)
	require.True(t, ok)
	require.Len(t, ct.ConstructSignatures(), 1)
	assert.Equal(t, "T", ct.TypeParams[0].Name)
}

func TestDecodeErrors(t *testing.T) {
	d := NewDecoder()
	for _, src := range []string{
		"{array: number, tuple: [number]}",
		"{unknown: 1}",
		"{union: number}",
		"{literal: [1]}",
		"{variant: Red}",
		"{indexed: [number]}",
		"{fn: {params: [{type: number, optional: true}]}}",
		"{fn: {params: number}}",
	} {
		var node yaml.Node
		require.NoError(t, yaml.Unmarshal([]byte(src), &node))
		_, err := d.Decode(&node)
		assert.Errorf(t, err, "decoding %s should fail", src)
	}
}

func TestDecodeAliases(t *testing.T) {
	typ := decodeString(t, NewDecoder(), "{tuple: [&n {array: number}, *n]}")
	assertType(t, types.NewTupleType(types.NewArrayType(types.Number), types.NewArrayType(types.Number)), typ)

	for _, src := range []string{
		"&a {array: *a}",
		"&a {union: [string, {array: *a}]}",
	} {
		var node yaml.Node
		require.NoError(t, yaml.Unmarshal([]byte(src), &node))
		_, err := DecodeType(&node)
		if assert.Errorf(t, err, "decoding %s should fail", src) {
			assert.Contains(t, err.Error(), "refers to itself")
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	tp := types.NewTypeParameter("T", types.String)
	samples := []types.Type{
		types.Number,
		types.Null,
		types.This,
		types.RegExp,
		types.NewStringLiteral("null"),
		types.NewNumberLiteral(-2.5),
		types.NewBooleanLiteral(true),
		types.NewArrayType(&types.UnionType{Types: []types.Type{types.String, types.Undefined}}),
		types.NewTupleType(types.Number, types.NewStringLiteral("a")),
		&types.IntersectionType{Types: []types.Type{types.NewTypeLiteral().WithProperty("a", types.Number), types.Object}},
		types.NewFunctionType(types.NewSignature(types.NewParam("x", tp)).Returns(tp).WithTypeParams(tp)),
		types.NewConstructorType(types.NewSignature(types.NewRestParam("xs", types.NewArrayType(types.Any)))),
		types.NewTypeLiteral().
			WithOptionalProperty("a", types.Number).
			WithReadOnlyProperty("b", types.String).
			WithMethod("m", types.NewSignature().Returns(types.Boolean)).
			WithCallSignature(types.NewSignature()),
		&types.InterfaceType{Name: "I", Members: []types.Member{&types.PropertySignature{Name: types.PropKey{Name: "k", Computed: true}}}},
		&types.ClassType{Name: "C", Super: &types.OtherType{Raw: "Base"}},
		&types.EnumType{Name: "E", Members: []string{"A"}, IsConst: true},
		&types.EnumVariantType{EnumName: "E", MemberName: "A"},
		&types.IndexedAccessType{Object: types.Any, Index: types.String},
	}
	for _, want := range samples {
		t.Run(want.String(), func(t *testing.T) {
			// Through text, so quoting and tags are exercised too.
			out, err := yaml.Marshal(EncodeType(want))
			require.NoError(t, err)
			got := decodeString(t, NewDecoder(), string(out))
			assertType(t, want, got)
		})
	}
}
