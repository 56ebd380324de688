package typeyaml

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tsinfer/pkg/source"
	"tsinfer/pkg/types"
)

// Scenario is a file of check cases:
//
//	types:              # named types, in order; later entries may use earlier ones
//	  Point: {interface: Point, members: {x: number}}
//	globals:            # value bindings visible to every case
//	  origin: Point
//	cases:
//	  - name: literal widening
//	    assign: {to: number, from: 42}
//	    expect: ok
//	  - name: method call
//	    extract: {callee: Point, member: x, kind: call}
//	    expect: NoCallSignature
type Scenario struct {
	Path    string
	File    *source.SourceFile // spans of case diagnostics point into File
	Types   []Binding
	Globals []Binding
	Cases   []*Case
}

// Binding is one named entry of the types or globals section.
type Binding struct {
	Name string
	Type types.Type
}

// CaseKind is what a case exercises.
type CaseKind string

const (
	AssignCase  CaseKind = "assign"
	ExtractCase CaseKind = "extract"
)

// Case is a single check. Assign cases use To and From; extract cases use
// Callee, Member, New, Args and TypeArgs. CalleeName is set when the callee
// names a global, which is then resolved as an identifier.
type Case struct {
	Name string
	Line int
	Kind CaseKind

	To, From types.Type

	Callee     types.Type
	CalleeName string
	Member     string
	New        bool
	Args       []types.Type
	TypeArgs   []types.Type

	Expect Expectation
}

// Expectation is the outcome a case asserts: success, a result type, or a
// diagnostic kind somewhere in the error tree.
type Expectation struct {
	OK    bool
	Type  types.Type
	Error string
}

func (e Expectation) String() string {
	switch {
	case e.Error != "":
		return "error " + e.Error
	case e.Type != nil:
		return e.Type.String()
	}
	return "ok"
}

// errorKinds are the diagnostic kinds an expect scalar may name.
var errorKinds = map[string]bool{
	"UndefinedSymbol": true, "NoCallSignature": true, "NoNewSignature": true,
	"WrongTypeParams": true, "WrongParams": true, "AssignFailed": true,
	"UnionError": true, "IntersectionError": true, "MissingFields": true,
	"CannotAssignToThis": true, "Unsupported": true,
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data, path)
}

// ParseScenario parses scenario YAML. path is used in error messages.
func ParseScenario(data []byte, path string) (*Scenario, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	s := &Scenario{Path: path, File: source.FromFile(path, string(data))}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return s, nil
	}
	keys, f, err := fields(doc.Content[0])
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, k := range keys {
		switch k {
		case "types", "globals", "cases":
		default:
			return nil, fmt.Errorf("parsing %s: unknown section %q", path, k)
		}
	}

	d := NewDecoder()
	if node, ok := f["types"]; ok {
		if s.Types, err = d.bindings(node, true); err != nil {
			return nil, fmt.Errorf("parsing %s: types: %w", path, err)
		}
	}
	if node, ok := f["globals"]; ok {
		if s.Globals, err = d.bindings(node, false); err != nil {
			return nil, fmt.Errorf("parsing %s: globals: %w", path, err)
		}
	}
	if node, ok := f["cases"]; ok {
		if node.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("parsing %s: cases must be a sequence", path)
		}
		for i, item := range node.Content {
			c, err := d.testCase(item)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: case %d: %w", path, i+1, err)
			}
			if c.Name == "" {
				c.Name = fmt.Sprintf("case %d", i+1)
			}
			s.Cases = append(s.Cases, c)
		}
	}
	return s, nil
}

// bindings decodes a name → type mapping in order. With declare set, each
// name becomes usable in the types that follow it.
func (d *Decoder) bindings(node *yaml.Node, declare bool) ([]Binding, error) {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return nil, nil
	}
	keys, f, err := fields(node)
	if err != nil {
		return nil, err
	}
	out := make([]Binding, 0, len(keys))
	for _, name := range keys {
		t, err := d.Decode(f[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if declare {
			d.Declare(name, t)
		} else {
			if d.globals == nil {
				d.globals = make(map[string]types.Type)
			}
			d.globals[name] = t
		}
		out = append(out, Binding{Name: name, Type: t})
	}
	return out, nil
}

func (d *Decoder) testCase(node *yaml.Node) (*Case, error) {
	_, f, err := fields(node)
	if err != nil {
		return nil, err
	}
	c := &Case{Line: node.Line}
	if n, ok := f["name"]; ok {
		c.Name = strings.TrimSpace(n.Value)
	}
	_, isAssign := f["assign"]
	_, isExtract := f["extract"]
	switch {
	case isAssign && isExtract:
		return nil, fmt.Errorf("line %d: a case is either assign or extract", node.Line)
	case isAssign:
		c.Kind = AssignCase
		err = d.assignCase(c, f["assign"])
	case isExtract:
		c.Kind = ExtractCase
		err = d.extractCase(c, f["extract"])
	default:
		return nil, fmt.Errorf("line %d: case needs assign or extract", node.Line)
	}
	if err != nil {
		return nil, err
	}

	exp, ok := f["expect"]
	if !ok {
		c.Expect = Expectation{OK: true}
		return c, nil
	}
	c.Expect, err = d.expectation(exp, c.Kind)
	return c, err
}

func (d *Decoder) assignCase(c *Case, node *yaml.Node) error {
	_, f, err := fields(node)
	if err != nil {
		return err
	}
	to, ok1 := f["to"]
	from, ok2 := f["from"]
	if !ok1 || !ok2 {
		return fmt.Errorf("line %d: assign needs to and from", node.Line)
	}
	if c.To, err = d.Decode(to); err != nil {
		return fmt.Errorf("to: %w", err)
	}
	if c.From, err = d.Decode(from); err != nil {
		return fmt.Errorf("from: %w", err)
	}
	return nil
}

func (d *Decoder) extractCase(c *Case, node *yaml.Node) error {
	_, f, err := fields(node)
	if err != nil {
		return err
	}
	callee, ok := f["callee"]
	if !ok {
		return fmt.Errorf("line %d: extract needs a callee", node.Line)
	}
	if t, ok := d.globals[callee.Value]; ok && callee.Kind == yaml.ScalarNode {
		c.CalleeName, c.Callee = callee.Value, t
	} else if c.Callee, err = d.Decode(callee); err != nil {
		return fmt.Errorf("callee: %w", err)
	}
	if m, ok := f["member"]; ok {
		c.Member = m.Value
	}
	if k, ok := f["kind"]; ok {
		switch k.Value {
		case "call":
		case "new":
			c.New = true
		default:
			return fmt.Errorf("line %d: kind must be call or new", k.Line)
		}
	}
	if a, ok := f["args"]; ok {
		if c.Args, err = d.decodeList(a); err != nil {
			return fmt.Errorf("args: %w", err)
		}
	}
	if ta, ok := f["typeArgs"]; ok {
		if c.TypeArgs, err = d.decodeList(ta); err != nil {
			return fmt.Errorf("typeArgs: %w", err)
		}
	}
	return nil
}

// expectation decodes `ok`, a diagnostic kind, {error: Kind}, {type: T}, or,
// for extract cases, a bare result type.
func (d *Decoder) expectation(node *yaml.Node, kind CaseKind) (Expectation, error) {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str" {
		v := strings.TrimSpace(node.Value)
		if v == "ok" {
			return Expectation{OK: true}, nil
		}
		if errorKinds[v] {
			return Expectation{Error: v}, nil
		}
	}
	if node.Kind == yaml.MappingNode {
		_, f, err := fields(node)
		if err != nil {
			return Expectation{}, err
		}
		if e, ok := f["error"]; ok {
			if !errorKinds[e.Value] {
				return Expectation{}, fmt.Errorf("line %d: unknown diagnostic kind %q", e.Line, e.Value)
			}
			return Expectation{Error: e.Value}, nil
		}
		if t, ok := f["type"]; ok {
			typ, err := d.Decode(t)
			if err != nil {
				return Expectation{}, fmt.Errorf("expect: %w", err)
			}
			return Expectation{Type: typ}, nil
		}
	}
	if kind != ExtractCase {
		return Expectation{}, fmt.Errorf("line %d: assign expects ok or a diagnostic kind", node.Line)
	}
	typ, err := d.Decode(node)
	if err != nil {
		return Expectation{}, fmt.Errorf("expect: %w", err)
	}
	return Expectation{Type: typ}, nil
}
