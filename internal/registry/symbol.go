package registry

import (
	"github.com/toyz/autoimpl/internal/symbols"
	"github.com/toyz/autoimpl/internal/syntax"
)

// typeSymbol is a type merged from all of its partial declarations
type typeSymbol struct {
	name         string
	namespace    string
	fullName     string
	metadataName string
	kind         syntax.TypeKind
	arity        int
	properties   []symbols.Property
	attributes   []string
	declarations []*syntax.TypeDecl
}

var _ symbols.Type = (*typeSymbol)(nil)

func newTypeSymbol(decl *syntax.TypeDecl) *typeSymbol {
	sym := &typeSymbol{
		name:         decl.Name,
		namespace:    decl.Namespace,
		fullName:     decl.FullName(),
		metadataName: decl.MetadataName(),
		kind:         decl.Kind,
		arity:        len(decl.TypeParameters),
	}
	sym.merge(decl)
	return sym
}

// merge appends a partial declaration; members keep file then source order
func (t *typeSymbol) merge(decl *syntax.TypeDecl) {
	t.declarations = append(t.declarations, decl)
	for _, attr := range decl.Attributes {
		t.attributes = append(t.attributes, attr.SimpleName())
	}
	for _, p := range decl.Properties {
		t.properties = append(t.properties, symbols.Property{
			Type:      p.Type,
			Name:      p.Name,
			Static:    p.Static,
			HasSetter: p.HasSetter(),
			InitOnly:  p.HasAccessor("init"),
			File:      decl.File,
		})
	}
}

func (t *typeSymbol) Name() string {
	return t.name
}

func (t *typeSymbol) Namespace() string {
	return t.namespace
}

func (t *typeSymbol) FullName() string {
	return t.fullName
}

func (t *typeSymbol) Kind() syntax.TypeKind {
	return t.kind
}

func (t *typeSymbol) Properties() []symbols.Property {
	return t.properties
}

func (t *typeSymbol) AttributeNames() []string {
	return t.attributes
}

func (t *typeSymbol) DeclaringFile() *syntax.File {
	if len(t.declarations) == 0 {
		return nil
	}
	return t.declarations[0].File
}
