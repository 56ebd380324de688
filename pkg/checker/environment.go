package checker

import (
	"tsinfer/pkg/types"
)

// Scope is the read-only symbol lookup inference runs against. It is
// populated before inference by whatever walks declarations and imports;
// the checker never mutates it.
type Scope interface {
	// FindVarType returns the declared type of a value binding.
	FindVarType(name string) (types.Type, bool)
	// FindType returns a type-level declaration (interface, alias, enum,
	// namespace) visible under name.
	FindType(name string) (*TypeExportInfo, bool)
	// ResolvedImport returns what an import binding, or a module specifier
	// passed to require, resolved to.
	ResolvedImport(name string) (*TypeExportInfo, bool)
}

// TypeExportInfo describes a named type-level declaration. When Type is set
// it is used as is; otherwise Extra is expanded one step.
type TypeExportInfo struct {
	Type  types.Type
	Extra ExportExtra
}

// ExportExtra is the declaration behind a TypeExportInfo without a
// precomputed type.
type ExportExtra interface {
	exportExtra()
}

// InterfaceExport is an interface declaration. It expands to a type literal
// of its own members.
type InterfaceExport struct {
	Decl *types.InterfaceType
}

// AliasExport is `type Name<TypeParams> = Aliased`.
type AliasExport struct {
	Name       string
	TypeParams []*types.TypeParameter
	Aliased    types.Type
}

// EnumExport is an enum declaration.
type EnumExport struct {
	Decl *types.EnumType
}

// NamespaceExport is a namespace or module declaration. Namespaces have no
// value type in this checker.
type NamespaceExport struct {
	Name string
}

func (*InterfaceExport) exportExtra() {}
func (*AliasExport) exportExtra()     {}
func (*EnumExport) exportExtra()      {}
func (*NamespaceExport) exportExtra() {}

// Environment manages type information within scopes. It is the in-repo
// Scope implementation; nested environments see their outer scopes.
type Environment struct {
	symbols   map[string]types.Type      // Stores type bindings for variables/constants
	typeDecls map[string]*TypeExportInfo // Stores type-level declarations
	imports   map[string]*TypeExportInfo // Stores resolved imports, by local name or specifier
	outer     *Environment               // Pointer to the enclosing environment
}

var _ Scope = (*Environment)(nil)

// NewEnvironment creates a new top-level type environment.
func NewEnvironment() *Environment {
	return NewEnclosedEnvironment(nil)
}

// NewEnclosedEnvironment creates a new environment nested within an outer one.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{
		symbols:   make(map[string]types.Type),
		typeDecls: make(map[string]*TypeExportInfo),
		imports:   make(map[string]*TypeExportInfo),
		outer:     outer,
	}
}

// Outer returns the enclosing environment, or nil at the top level.
func (e *Environment) Outer() *Environment { return e.outer }

// Define adds a variable binding to the current scope. Returns false if the
// name is already bound in this scope.
func (e *Environment) Define(name string, typ types.Type) bool {
	if _, exists := e.symbols[name]; exists {
		return false
	}
	e.symbols[name] = typ
	return true
}

// DefineType adds a type-level declaration to the current scope. Returns
// false if a type with that name already exists in this scope.
func (e *Environment) DefineType(name string, info *TypeExportInfo) bool {
	if _, exists := e.typeDecls[name]; exists {
		return false
	}
	e.typeDecls[name] = info
	return true
}

// DefineTypeAlias is DefineType for `type name = typ`.
func (e *Environment) DefineTypeAlias(name string, typ types.Type) bool {
	return e.DefineType(name, &TypeExportInfo{Extra: &AliasExport{Name: name, Aliased: typ}})
}

// DefineImport records what an import binding or module specifier resolved to.
func (e *Environment) DefineImport(name string, info *TypeExportInfo) {
	e.imports[name] = info
}

// FindVarType looks up a variable in the current environment and its outer scopes.
func (e *Environment) FindVarType(name string) (types.Type, bool) {
	for env := e; env != nil; env = env.outer {
		if typ, ok := env.symbols[name]; ok {
			return typ, true
		}
	}
	return nil, false
}

// FindType looks up a type-level declaration in the current environment and
// its outer scopes.
func (e *Environment) FindType(name string) (*TypeExportInfo, bool) {
	for env := e; env != nil; env = env.outer {
		if info, ok := env.typeDecls[name]; ok {
			return info, true
		}
	}
	return nil, false
}

// ResolvedImport looks up an import. Imports are file-level, so outer scopes
// are searched too.
func (e *Environment) ResolvedImport(name string) (*TypeExportInfo, bool) {
	for env := e; env != nil; env = env.outer {
		if info, ok := env.imports[name]; ok {
			return info, true
		}
	}
	return nil, false
}
