// Package typeyaml reads and writes types as YAML, and runs check scenarios
// written in that form.
//
// A type is either a scalar in the syntax accepted by ParseType, or a
// mapping with one of the keys array, tuple, union, intersection, literal,
// fn, new, object, interface, class, enum, variant, param, indexed or other.
package typeyaml

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"tsinfer/pkg/types"
)

// Decoder turns YAML nodes into types. Named holds the declarations bare
// names resolve to; type parameters of an enclosing signature shadow them.
type Decoder struct {
	Named   map[string]types.Type
	params  []map[string]*types.TypeParameter
	globals map[string]types.Type // value bindings of the scenario being parsed
	aliases map[*yaml.Node]bool   // anchors being expanded
}

// NewDecoder returns a decoder with no declarations.
func NewDecoder() *Decoder {
	return &Decoder{Named: make(map[string]types.Type)}
}

// DecodeType decodes node with no declarations in scope.
func DecodeType(node *yaml.Node) (types.Type, error) {
	return NewDecoder().Decode(node)
}

// Declare makes name resolve to t in later decodes.
func (d *Decoder) Declare(name string, t types.Type) {
	d.Named[name] = t
}

func (d *Decoder) lookup(name string) (types.Type, error) {
	for i := len(d.params) - 1; i >= 0; i-- {
		if tp, ok := d.params[i][name]; ok {
			return tp, nil
		}
	}
	switch name {
	case "true":
		return types.NewBooleanLiteral(true), nil
	case "false":
		return types.NewBooleanLiteral(false), nil
	case "this":
		return types.This, nil
	case "RegExp":
		return types.RegExp, nil
	}
	if kw, ok := types.KeywordByName(name); ok {
		return kw, nil
	}
	if t, ok := d.Named[name]; ok {
		return t, nil
	}
	if enumName, member, ok := strings.Cut(name, "."); ok {
		if enum, ok := d.Named[enumName].(*types.EnumType); ok {
			if v, ok := enum.Variant(member); ok {
				return v, nil
			}
			return nil, fmt.Errorf("enum %s has no member %s", enumName, member)
		}
	}
	return nil, fmt.Errorf("unknown type name %q", name)
}

// Decode converts node to a type.
func (d *Decoder) Decode(node *yaml.Node) (types.Type, error) {
	if node == nil {
		return nil, fmt.Errorf("missing type")
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("empty document")
		}
		return d.Decode(node.Content[0])
	case yaml.AliasNode:
		if d.aliases[node.Alias] {
			return nil, fmt.Errorf("line %d: alias *%s refers to itself", node.Line, node.Value)
		}
		if d.aliases == nil {
			d.aliases = make(map[*yaml.Node]bool)
		}
		d.aliases[node.Alias] = true
		defer delete(d.aliases, node.Alias)
		return d.Decode(node.Alias)
	case yaml.ScalarNode:
		return d.scalar(node)
	case yaml.SequenceNode:
		// A bare sequence is a tuple.
		elems, err := d.decodeList(node)
		if err != nil {
			return nil, err
		}
		return types.NewTupleType(elems...), nil
	case yaml.MappingNode:
		return d.mapping(node)
	}
	return nil, fmt.Errorf("line %d: unexpected YAML node", node.Line)
}

func (d *Decoder) scalar(node *yaml.Node) (types.Type, error) {
	switch node.ShortTag() {
	case "!!null":
		return types.Null, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return types.NewBooleanLiteral(b), nil
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err
		}
		return types.NewNumberLiteral(f), nil
	}
	t, err := d.ParseType(node.Value)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", node.Line, err)
	}
	return t, nil
}

// fields returns the key/value pairs of a mapping in document order.
func fields(node *yaml.Node) ([]string, map[string]*yaml.Node, error) {
	if node.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("line %d: expected a mapping but found %s", node.Line, node.ShortTag())
	}
	keys := make([]string, 0, len(node.Content)/2)
	values := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := strings.TrimSpace(node.Content[i].Value)
		if _, dup := values[key]; dup {
			return nil, nil, fmt.Errorf("line %d: duplicate key %q", node.Content[i].Line, key)
		}
		keys = append(keys, key)
		values[key] = node.Content[i+1]
	}
	return keys, values, nil
}

var shapeKeys = []string{
	"array", "tuple", "union", "intersection", "literal", "fn", "new",
	"object", "interface", "class", "enum", "variant", "param", "indexed", "other",
}

func (d *Decoder) mapping(node *yaml.Node) (types.Type, error) {
	_, f, err := fields(node)
	if err != nil {
		return nil, err
	}
	var shape string
	for _, k := range shapeKeys {
		if _, ok := f[k]; ok {
			if shape != "" {
				return nil, fmt.Errorf("line %d: type has both %q and %q", node.Line, shape, k)
			}
			shape = k
		}
	}
	v := f[shape]

	switch shape {
	case "array":
		elem, err := d.Decode(v)
		if err != nil {
			return nil, err
		}
		return types.NewArrayType(elem), nil
	case "tuple":
		elems, err := d.decodeList(v)
		if err != nil {
			return nil, err
		}
		return types.NewTupleType(elems...), nil
	case "union":
		ts, err := d.decodeList(v)
		if err != nil {
			return nil, err
		}
		return &types.UnionType{Types: ts}, nil
	case "intersection":
		ts, err := d.decodeList(v)
		if err != nil {
			return nil, err
		}
		return &types.IntersectionType{Types: ts}, nil
	case "literal":
		return literal(v)
	case "fn":
		sig, err := d.signature(v)
		if err != nil {
			return nil, err
		}
		return types.NewFunctionType(sig), nil
	case "new":
		sig, err := d.signature(v)
		if err != nil {
			return nil, err
		}
		return types.NewConstructorType(sig), nil
	case "object":
		members, err := d.members(v, f)
		if err != nil {
			return nil, err
		}
		return types.NewTypeLiteral(members...), nil
	case "interface":
		return d.interfaceType(v.Value, f)
	case "class":
		return d.classType(v.Value, f)
	case "enum":
		enum := &types.EnumType{Name: v.Value}
		if m, ok := f["members"]; ok {
			if err := m.Decode(&enum.Members); err != nil {
				return nil, fmt.Errorf("enum %s: %w", enum.Name, err)
			}
		}
		if c, ok := f["const"]; ok {
			if err := c.Decode(&enum.IsConst); err != nil {
				return nil, fmt.Errorf("enum %s: %w", enum.Name, err)
			}
		}
		return enum, nil
	case "variant":
		enumName, member, ok := strings.Cut(v.Value, ".")
		if !ok {
			return nil, fmt.Errorf("line %d: variant %q must be Enum.Member", v.Line, v.Value)
		}
		return &types.EnumVariantType{EnumName: enumName, MemberName: member}, nil
	case "param":
		tp := &types.TypeParameter{Name: v.Value}
		if c, ok := f["extends"]; ok {
			if tp.Constraint, err = d.Decode(c); err != nil {
				return nil, err
			}
		}
		return tp, nil
	case "indexed":
		pair, err := d.decodeList(v)
		if err != nil {
			return nil, err
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("line %d: indexed takes [object, index]", v.Line)
		}
		return &types.IndexedAccessType{Object: pair[0], Index: pair[1]}, nil
	case "other":
		return &types.OtherType{Raw: v.Value}, nil
	}
	return nil, fmt.Errorf("line %d: mapping is not a type (expected one of %s)", node.Line, strings.Join(shapeKeys, ", "))
}

func literal(node *yaml.Node) (types.Type, error) {
	switch node.ShortTag() {
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return types.NewBooleanLiteral(b), nil
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err
		}
		return types.NewNumberLiteral(f), nil
	case "!!str":
		return types.NewStringLiteral(node.Value), nil
	}
	return nil, fmt.Errorf("line %d: literal must be a boolean, number or string", node.Line)
}

func (d *Decoder) decodeList(node *yaml.Node) ([]types.Type, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a sequence but found %s", node.Line, node.ShortTag())
	}
	out := make([]types.Type, 0, len(node.Content))
	for _, item := range node.Content {
		t, err := d.Decode(item)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// --- Signatures ---

// signature decodes {typeParams: [...], params: [...], returns: T}. Missing
// returns means void.
func (d *Decoder) signature(node *yaml.Node) (*types.Signature, error) {
	if node.Kind == yaml.ScalarNode && node.Value == "" {
		return types.NewSignature(), nil
	}
	_, f, err := fields(node)
	if err != nil {
		return nil, err
	}
	sig := types.NewSignature()
	if tps, ok := f["typeParams"]; ok {
		if sig.TypeParams, err = d.typeParams(tps); err != nil {
			return nil, err
		}
		d.pushParams(sig.TypeParams)
		defer d.popParams()
	}
	if ps, ok := f["params"]; ok {
		if ps.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("line %d: params must be a sequence", ps.Line)
		}
		for _, item := range ps.Content {
			p, err := d.param(item)
			if err != nil {
				return nil, err
			}
			sig.Params = append(sig.Params, p)
		}
	}
	if r, ok := f["returns"]; ok {
		if sig.ReturnType, err = d.Decode(r); err != nil {
			return nil, err
		}
	}
	return sig, nil
}

// param decodes "name: T", "name?: T", "...name: T", a bare name,
// {name: T} or {name, type, optional, rest}.
func (d *Decoder) param(node *yaml.Node) (types.Param, error) {
	var name, typ string
	var optional, rest bool
	var typeNode *yaml.Node
	switch node.Kind {
	case yaml.ScalarNode:
		name, typ, _ = strings.Cut(node.Value, ":")
		name = strings.TrimSpace(name)
		typ = strings.TrimSpace(typ)
	case yaml.MappingNode:
		keys, f, err := fields(node)
		if err != nil {
			return types.Param{}, err
		}
		if _, ok := f["name"]; !ok && len(keys) == 1 {
			// `- x: number` in a block sequence
			name, typeNode = keys[0], f[keys[0]]
			break
		}
		if n, ok := f["name"]; ok {
			name = n.Value
		}
		typeNode = f["type"]
		if o, ok := f["optional"]; ok {
			if err := o.Decode(&optional); err != nil {
				return types.Param{}, err
			}
		}
		if r, ok := f["rest"]; ok {
			if err := r.Decode(&rest); err != nil {
				return types.Param{}, err
			}
		}
	default:
		return types.Param{}, fmt.Errorf("line %d: parameter must be a string or mapping", node.Line)
	}

	if strings.HasPrefix(name, "...") {
		name, rest = strings.TrimPrefix(name, "..."), true
	}
	if strings.HasSuffix(name, "?") {
		name, optional = strings.TrimSuffix(name, "?"), true
	}
	if name == "" {
		return types.Param{}, fmt.Errorf("line %d: parameter without a name", node.Line)
	}

	var p types.Param
	var pat types.Pattern = &types.IdentPattern{Name: name, Optional: optional}
	if rest {
		pat = &types.RestPattern{Arg: &types.IdentPattern{Name: name}}
	}
	p.Pattern = pat

	var err error
	switch {
	case typeNode != nil:
		p.Type, err = d.Decode(typeNode)
	case typ != "":
		p.Type, err = d.ParseType(typ)
	}
	if err != nil {
		return types.Param{}, fmt.Errorf("parameter %s: %w", name, err)
	}
	return p, nil
}

// typeParams decodes ["T", "K extends string", {name: U, extends: T}].
// Constraints may refer to earlier parameters of the same list.
func (d *Decoder) typeParams(node *yaml.Node) ([]*types.TypeParameter, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: typeParams must be a sequence", node.Line)
	}
	scope := make(map[string]*types.TypeParameter, len(node.Content))
	d.params = append(d.params, scope)
	defer d.popParams()

	out := make([]*types.TypeParameter, 0, len(node.Content))
	for _, item := range node.Content {
		tp := &types.TypeParameter{}
		var constraint string
		var constraintNode *yaml.Node
		switch item.Kind {
		case yaml.ScalarNode:
			name, c, _ := strings.Cut(item.Value, " extends ")
			tp.Name, constraint = strings.TrimSpace(name), strings.TrimSpace(c)
		case yaml.MappingNode:
			_, f, err := fields(item)
			if err != nil {
				return nil, err
			}
			if n, ok := f["name"]; ok {
				tp.Name = n.Value
			}
			constraintNode = f["extends"]
		default:
			return nil, fmt.Errorf("line %d: type parameter must be a string or mapping", item.Line)
		}
		if tp.Name == "" {
			return nil, fmt.Errorf("line %d: type parameter without a name", item.Line)
		}
		var err error
		switch {
		case constraintNode != nil:
			tp.Constraint, err = d.Decode(constraintNode)
		case constraint != "":
			tp.Constraint, err = d.ParseType(constraint)
		}
		if err != nil {
			return nil, fmt.Errorf("type parameter %s: %w", tp.Name, err)
		}
		scope[tp.Name] = tp
		out = append(out, tp)
	}
	return out, nil
}

func (d *Decoder) pushParams(tps []*types.TypeParameter) {
	scope := make(map[string]*types.TypeParameter, len(tps))
	for _, tp := range tps {
		scope[tp.Name] = tp
	}
	d.params = append(d.params, scope)
}

func (d *Decoder) popParams() {
	d.params = d.params[:len(d.params)-1]
}

// --- Object shapes ---

// members decodes a member mapping plus the indexes, calls and constructs
// siblings of the shape key. Member keys are `name`, `name?`,
// `readonly name` or `[name]`; a value of {method: sig} declares a method.
func (d *Decoder) members(node *yaml.Node, siblings map[string]*yaml.Node) ([]types.Member, error) {
	var out []types.Member
	if node != nil && !(node.Kind == yaml.ScalarNode && node.Value == "") {
		keys, f, err := fields(node)
		if err != nil {
			return nil, err
		}
		for _, raw := range keys {
			m, err := d.member(raw, f[raw])
			if err != nil {
				return nil, fmt.Errorf("member %s: %w", raw, err)
			}
			out = append(out, m)
		}
	}
	if list, ok := siblings["indexes"]; ok {
		if list.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("line %d: indexes must be a sequence", list.Line)
		}
		for _, item := range list.Content {
			idx, err := d.indexSignature(item)
			if err != nil {
				return nil, err
			}
			out = append(out, idx)
		}
	}
	for _, kind := range []string{"calls", "constructs"} {
		list, ok := siblings[kind]
		if !ok {
			continue
		}
		if list.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("line %d: %s must be a sequence", list.Line, kind)
		}
		for _, item := range list.Content {
			sig, err := d.signature(item)
			if err != nil {
				return nil, err
			}
			if kind == "calls" {
				out = append(out, &types.CallSignature{Signature: sig})
			} else {
				out = append(out, &types.ConstructSignature{Signature: sig})
			}
		}
	}
	return out, nil
}

// indexSignature decodes {param: k, key: T, type: T, readonly: bool}.
func (d *Decoder) indexSignature(node *yaml.Node) (*types.IndexSignature, error) {
	_, f, err := fields(node)
	if err != nil {
		return nil, err
	}
	idx := &types.IndexSignature{Param: "key"}
	if p, ok := f["param"]; ok {
		idx.Param = p.Value
	}
	if k, ok := f["key"]; ok {
		if idx.KeyType, err = d.Decode(k); err != nil {
			return nil, err
		}
	}
	if t, ok := f["type"]; ok {
		if idx.Type, err = d.Decode(t); err != nil {
			return nil, err
		}
	}
	if r, ok := f["readonly"]; ok {
		if err := r.Decode(&idx.Readonly); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func (d *Decoder) member(raw string, value *yaml.Node) (types.Member, error) {
	name := raw
	readonly := false
	if rest, ok := strings.CutPrefix(name, "readonly "); ok {
		name, readonly = strings.TrimSpace(rest), true
	}
	optional := false
	if strings.HasSuffix(name, "?") {
		name, optional = strings.TrimSuffix(name, "?"), true
	}
	key := types.PropKey{Name: name}
	if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
		key = types.PropKey{Name: name[1 : len(name)-1], Computed: true}
	}

	if value.Kind == yaml.MappingNode {
		_, f, err := fields(value)
		if err != nil {
			return nil, err
		}
		if m, ok := f["method"]; ok {
			sig, err := d.signature(m)
			if err != nil {
				return nil, err
			}
			return &types.MethodSignature{Name: key, Optional: optional, Signature: sig}, nil
		}
	}
	var t types.Type
	// A null member value means an unannotated property; the null type is
	// spelled "null" (quoted).
	if !(value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null") {
		var err error
		if t, err = d.Decode(value); err != nil {
			return nil, err
		}
	}
	return &types.PropertySignature{Name: key, Type: t, Optional: optional, Readonly: readonly}, nil
}

func (d *Decoder) interfaceType(name string, f map[string]*yaml.Node) (types.Type, error) {
	it := &types.InterfaceType{Name: name}
	var err error
	if tps, ok := f["typeParams"]; ok {
		if it.TypeParams, err = d.typeParams(tps); err != nil {
			return nil, err
		}
		d.pushParams(it.TypeParams)
		defer d.popParams()
	}
	if it.Members, err = d.members(f["members"], f); err != nil {
		return nil, fmt.Errorf("interface %s: %w", name, err)
	}
	if ext, ok := f["extends"]; ok {
		if it.Extends, err = d.decodeList(ext); err != nil {
			return nil, fmt.Errorf("interface %s: %w", name, err)
		}
	}
	return it, nil
}

func (d *Decoder) classType(name string, f map[string]*yaml.Node) (types.Type, error) {
	ct := &types.ClassType{Name: name}
	var err error
	if tps, ok := f["typeParams"]; ok {
		if ct.TypeParams, err = d.typeParams(tps); err != nil {
			return nil, err
		}
		d.pushParams(ct.TypeParams)
		defer d.popParams()
	}
	if ct.Members, err = d.members(f["members"], f); err != nil {
		return nil, fmt.Errorf("class %s: %w", name, err)
	}
	if super, ok := f["super"]; ok {
		if ct.Super, err = d.Decode(super); err != nil {
			return nil, fmt.Errorf("class %s: %w", name, err)
		}
	}
	return ct, nil
}
