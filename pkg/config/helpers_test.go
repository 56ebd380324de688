package config

import "tsinfer/pkg/ast"

func identifier(name string) *ast.Identifier { return &ast.Identifier{Value: name} }
