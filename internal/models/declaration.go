package models

import (
	"strings"

	"github.com/toyz/autoimpl/internal/syntax"
)

// InterfaceReference is one requested interface as written at the annotation site
type InterfaceReference string

// String returns the raw reference text
func (r InterfaceReference) String() string {
	return string(r)
}

// IsBlank reports whether the reference is empty or whitespace only
func (r InterfaceReference) IsBlank() bool {
	return strings.TrimSpace(string(r)) == ""
}

// SimpleName returns the last dotted segment of the reference
func (r InterfaceReference) SimpleName() string {
	s := string(r)
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}
	return s
}

// ContainingType is a partial type wrapping a nested generation target
type ContainingType struct {
	Keyword        string // class, struct, record, record struct, interface
	Name           string
	TypeParameters string // rendered list such as <T>, empty when not generic
}

// AnnotatedDeclaration is a generation target discovered in one pass
type AnnotatedDeclaration struct {
	Namespace      string               // enclosing namespace path
	Name           string               // simple name
	Keyword        string               // declaration keyword used by the target
	TypeParameters string               // rendered type parameter list
	Containers     []ContainingType     // enclosing types, outermost first
	References     []InterfaceReference // requested interfaces in order
	Imports        []string             // visible import paths in order
	File           string               // declaring file path
}

// Key returns the structural identity of the declaration
func (d AnnotatedDeclaration) Key() string {
	var b strings.Builder
	b.WriteString(d.Namespace)
	b.WriteString("|")
	for _, c := range d.Containers {
		b.WriteString(c.Name)
		b.WriteString(".")
	}
	b.WriteString(d.Name)
	b.WriteString(d.TypeParameters)
	return b.String()
}

// InterfaceProperty is one projected interface property
type InterfaceProperty struct {
	Type      string // type spelling valid in the generated unit
	Name      string
	HasSetter bool
	InitOnly  bool // the setter is an init accessor
}

// Accessors renders the accessor list body, e.g. "get; set;"
func (p InterfaceProperty) Accessors() string {
	switch {
	case p.InitOnly:
		return "get; init;"
	case p.HasSetter:
		return "get; set;"
	default:
		return "get;"
	}
}

// ResolvedInterface is an interface reference bound to its definition
type ResolvedInterface struct {
	Name       string                  // display name as requested
	SimpleName string                  // declared simple name
	FullName   string                  // dotted namespace-qualified name
	Namespace  string                  // containing namespace
	Usings     []syntax.UsingDirective // imports of the interface's first declaring file
	Properties []InterfaceProperty     // in member declaration order
}
