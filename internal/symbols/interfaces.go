// Package symbols defines the symbol-resolution contract the generation
// pipeline consumes. The pipeline never inspects a namespace table directly;
// it asks a Resolver.
package symbols

import (
	"github.com/toyz/autoimpl/internal/models"
	"github.com/toyz/autoimpl/internal/syntax"
)

// Type is a resolved type symbol
type Type interface {
	// Name returns the simple name
	Name() string
	// Namespace returns the containing namespace, empty for the global namespace
	Namespace() string
	// FullName returns the dotted, namespace-qualified name without type parameters
	FullName() string
	// Kind returns the declaration kind
	Kind() syntax.TypeKind
	// Properties returns the declared properties in member order across all partial parts
	Properties() []Property
	// AttributeNames returns the simple names of the attributes attached to the type
	AttributeNames() []string
	// DeclaringFile returns the first file that declares the type
	DeclaringFile() *syntax.File
}

// Property is a property member of a type symbol
type Property struct {
	Type      string
	Name      string
	Static    bool
	HasSetter bool
	InitOnly  bool
	File      *syntax.File // file declaring this member
}

// Resolver resolves metadata names (Namespace.Outer+Inner`N) to type symbols
type Resolver interface {
	LookupType(metadataName string) models.Lookup[Type]
}

// Qualifier rewrites a type spelling into its fully-qualified form
type Qualifier interface {
	// QualifyType qualifies every resolvable name in display, as seen from
	// namespace with the given imports in scope. It reports false when some
	// name was left as written.
	QualifyType(display, namespace string, usings []syntax.UsingDirective) (string, bool)
}

// Compilation is the read-only program snapshot handed to a generation pass
type Compilation interface {
	Resolver
	Qualifier
	// GlobalUsings returns the global using directives of the whole program
	GlobalUsings() []syntax.UsingDirective
}
