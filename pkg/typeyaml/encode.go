package typeyaml

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"tsinfer/pkg/types"
)

// EncodeType renders t as a YAML node that Decode reads back as an equal
// type. Named interfaces, classes and enums are written in full.
func EncodeType(t types.Type) *yaml.Node {
	switch t := t.(type) {
	case nil:
		return scalarNode("!!null", "")
	case *types.Keyword:
		return scalarNode("!!str", t.String())
	case *types.ThisType:
		return scalarNode("!!str", "this")
	case *types.LiteralType:
		return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
			scalarNode("!!str", "literal"), literalNode(t),
		}}
	case *types.ArrayType:
		return mapNode("array", EncodeType(t.ElementType))
	case *types.TupleType:
		return mapNode("tuple", listNode(t.ElementTypes))
	case *types.UnionType:
		return mapNode("union", listNode(t.Types))
	case *types.IntersectionType:
		return mapNode("intersection", listNode(t.Types))
	case *types.FunctionType:
		return mapNode("fn", signatureNode(t.Signature))
	case *types.ConstructorType:
		return mapNode("new", signatureNode(t.Signature))
	case *types.TypeLiteral:
		return membersNode(mapNode("object", nil), t.Members)
	case *types.InterfaceType:
		n := mapNode("interface", scalarNode("!!str", t.Name))
		appendTypeParams(n, t.TypeParams)
		n = membersNode(appendPair(n, "members", nil), t.Members)
		if len(t.Extends) > 0 {
			appendPair(n, "extends", listNode(t.Extends))
		}
		return n
	case *types.ClassType:
		n := mapNode("class", scalarNode("!!str", t.Name))
		appendTypeParams(n, t.TypeParams)
		n = membersNode(appendPair(n, "members", nil), t.Members)
		if t.Super != nil {
			appendPair(n, "super", EncodeType(t.Super))
		}
		return n
	case *types.EnumType:
		n := mapNode("enum", scalarNode("!!str", t.Name))
		members := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, m := range t.Members {
			members.Content = append(members.Content, scalarNode("!!str", m))
		}
		appendPair(n, "members", members)
		if t.IsConst {
			appendPair(n, "const", scalarNode("!!bool", "true"))
		}
		return n
	case *types.EnumVariantType:
		return mapNode("variant", scalarNode("!!str", t.String()))
	case *types.TypeParameter:
		n := mapNode("param", scalarNode("!!str", t.Name))
		if t.Constraint != nil {
			appendPair(n, "extends", EncodeType(t.Constraint))
		}
		return n
	case *types.IndexedAccessType:
		return mapNode("indexed", listNode([]types.Type{t.Object, t.Index}))
	case *types.OtherType:
		if t == types.RegExp {
			return scalarNode("!!str", "RegExp")
		}
		return mapNode("other", scalarNode("!!str", t.Raw))
	}
	return mapNode("other", scalarNode("!!str", t.String()))
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func mapNode(key string, value *yaml.Node) *yaml.Node {
	return appendPair(&yaml.Node{Kind: yaml.MappingNode}, key, value)
}

func appendPair(n *yaml.Node, key string, value *yaml.Node) *yaml.Node {
	if value == nil {
		value = &yaml.Node{Kind: yaml.MappingNode}
	}
	n.Content = append(n.Content, scalarNode("!!str", key), value)
	return n
}

func listNode(ts []types.Type) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode}
	for _, t := range ts {
		n.Content = append(n.Content, EncodeType(t))
	}
	return n
}

func literalNode(lit *types.LiteralType) *yaml.Node {
	switch lit.Kind {
	case types.BooleanLiteral:
		return scalarNode("!!bool", strconv.FormatBool(lit.Bool))
	case types.NumberLiteral:
		return scalarNode("!!float", strconv.FormatFloat(lit.Number, 'g', -1, 64))
	}
	return scalarNode("!!str", lit.Str)
}

func appendTypeParams(n *yaml.Node, tps []*types.TypeParameter) {
	if len(tps) == 0 {
		return
	}
	list := &yaml.Node{Kind: yaml.SequenceNode}
	for _, tp := range tps {
		item := &yaml.Node{Kind: yaml.MappingNode}
		appendPair(item, "name", scalarNode("!!str", tp.Name))
		if tp.Constraint != nil {
			appendPair(item, "extends", EncodeType(tp.Constraint))
		}
		list.Content = append(list.Content, item)
	}
	appendPair(n, "typeParams", list)
}

func signatureNode(sig *types.Signature) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	appendTypeParams(n, sig.TypeParams)
	params := &yaml.Node{Kind: yaml.SequenceNode}
	for _, p := range sig.Params {
		params.Content = append(params.Content, paramNode(p))
	}
	appendPair(n, "params", params)
	if sig.ReturnType != nil {
		appendPair(n, "returns", EncodeType(sig.ReturnType))
	}
	return n
}

// paramNode writes the {name, type, optional, rest} form. Destructuring
// patterns are flattened to their rendering.
func paramNode(p types.Param) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	pat := p.Pattern
	rest := false
	if r, ok := pat.(*types.RestPattern); ok {
		pat, rest = r.Arg, true
	}
	name := "_"
	optional := false
	if ident, ok := pat.(*types.IdentPattern); ok {
		name, optional = ident.Name, ident.Optional
	} else if pat != nil {
		name = pat.String()
	}
	appendPair(n, "name", scalarNode("!!str", name))
	if p.Type != nil {
		appendPair(n, "type", EncodeType(p.Type))
	}
	if optional {
		appendPair(n, "optional", scalarNode("!!bool", "true"))
	}
	if rest {
		appendPair(n, "rest", scalarNode("!!bool", "true"))
	}
	return n
}

// membersNode fills the value of n's last key with the named members and
// adds calls, constructs and indexes lists for the unnamed ones.
func membersNode(n *yaml.Node, members []types.Member) *yaml.Node {
	named := n.Content[len(n.Content)-1]
	var calls, constructs, indexes []*yaml.Node
	for _, m := range members {
		switch m := m.(type) {
		case *types.PropertySignature:
			key := memberKey(m.Name, m.Optional)
			if m.Readonly {
				key = "readonly " + key
			}
			value := scalarNode("!!null", "")
			if m.Type != nil {
				value = EncodeType(m.Type)
			}
			appendPair(named, key, value)
		case *types.MethodSignature:
			appendPair(named, memberKey(m.Name, m.Optional), mapNode("method", signatureNode(m.Signature)))
		case *types.CallSignature:
			calls = append(calls, signatureNode(m.Signature))
		case *types.ConstructSignature:
			constructs = append(constructs, signatureNode(m.Signature))
		case *types.IndexSignature:
			idx := &yaml.Node{Kind: yaml.MappingNode}
			appendPair(idx, "param", scalarNode("!!str", m.Param))
			appendPair(idx, "key", EncodeType(m.KeyType))
			appendPair(idx, "type", EncodeType(m.Type))
			if m.Readonly {
				appendPair(idx, "readonly", scalarNode("!!bool", "true"))
			}
			indexes = append(indexes, idx)
		}
	}
	if len(calls) > 0 {
		appendPair(n, "calls", &yaml.Node{Kind: yaml.SequenceNode, Content: calls})
	}
	if len(constructs) > 0 {
		appendPair(n, "constructs", &yaml.Node{Kind: yaml.SequenceNode, Content: constructs})
	}
	if len(indexes) > 0 {
		appendPair(n, "indexes", &yaml.Node{Kind: yaml.SequenceNode, Content: indexes})
	}
	return n
}

func memberKey(k types.PropKey, optional bool) string {
	key := k.Name
	if k.Computed {
		key = "[" + key + "]"
	}
	if optional {
		key += "?"
	}
	return key
}
