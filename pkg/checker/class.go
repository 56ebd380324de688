package checker

import (
	"context"
	"log/slog"
	"strings"

	"tsinfer/pkg/ast"
	"tsinfer/pkg/types"
)

// --- Class expressions ---

// classType describes a class expression as an object shape: its instance
// properties plus one construct signature per constructor. A class without
// a constructor gets an implicit zero-parameter one.
func (c *Checker) classType(class *ast.ClassExpression) (types.Type, error) {
	var members []types.Member
	hasConstructor := false
	for _, m := range class.Body {
		switch m := m.(type) {
		case *ast.ClassProperty:
			if m.IsStatic || isPrivateName(m.Key) {
				c.skipMember(m)
				continue
			}
			prop, err := c.classProperty(m)
			if err != nil {
				return nil, err
			}
			members = append(members, prop)
		case *ast.ClassMethod:
			if m.Kind != ast.MethodKindConstructor {
				c.skipMember(m)
				continue
			}
			hasConstructor = true
			params, err := c.params(m.Function.Parameters)
			if err != nil {
				return nil, err
			}
			members = append(members, &types.ConstructSignature{Signature: &types.Signature{Params: params}})
			members = append(members, parameterProperties(m.Function.Parameters)...)
		default:
			c.skipMember(m)
		}
	}
	if !hasConstructor {
		members = append(members, &types.ConstructSignature{Signature: &types.Signature{}})
	}
	return types.NewTypeLiteral(members...), nil
}

func (c *Checker) classProperty(p *ast.ClassProperty) (*types.PropertySignature, error) {
	key, err := propKey(p.Key, p.Computed)
	if err != nil {
		return nil, err
	}
	typ := p.TypeAnnotation
	if typ == nil && p.Value != nil {
		typ, err = c.TypeOf(p.Value)
		if err != nil {
			return nil, err
		}
	}
	return &types.PropertySignature{Name: key, Type: orAny(typ), Optional: p.Optional, Readonly: p.Readonly}, nil
}

// parameterProperties returns the properties declared by constructor
// parameters such as `private readonly x: T`.
func parameterProperties(params []*ast.Parameter) []types.Member {
	var props []types.Member
	for _, p := range params {
		if !p.IsParameterProperty() {
			continue
		}
		pat := p.Pattern
		if assign, ok := pat.(*ast.AssignPattern); ok {
			pat = assign.Left
		}
		ident, ok := pat.(*ast.Identifier)
		if !ok {
			continue
		}
		props = append(props, &types.PropertySignature{
			Name:     types.PropKey{Name: ident.Value},
			Type:     orAny(p.TypeAnnotation),
			Optional: p.Optional,
			Readonly: p.Readonly,
		})
	}
	return props
}

func isPrivateName(key ast.Expression) bool {
	ident, ok := key.(*ast.Identifier)
	return ok && strings.HasPrefix(ident.Value, "#")
}

// skipMember logs class members that are not part of the inferred shape.
func (c *Checker) skipMember(m ast.ClassMember) {
	if c.tracing() {
		c.log.LogAttrs(context.Background(), slog.LevelDebug, "class member skipped",
			slog.String("member", m.String()), slog.String("pos", m.Pos().String()))
	}
}
