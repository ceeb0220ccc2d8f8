package syntax

import (
	"fmt"
	"strings"
)

// Position is a location inside a source file
type Position struct {
	File   string // file path
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}

// String returns a file:line:column representation of the position
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// File is the parsed view of one source file
type File struct {
	Path   string           // path the file was read from
	Usings []UsingDirective // import directives in declaration order
	Types  []*TypeDecl      // every type declaration, nested ones included, in source order
}

// UsingDirective is an import directive such as `using System;`
type UsingDirective struct {
	Global bool   // `global using`
	Static bool   // `using static`
	Alias  string // alias name for `using A = B;`
	Name   string // imported namespace or type path
	Pos    Position
}

// String renders the directive back to source form
func (u UsingDirective) String() string {
	var b strings.Builder
	if u.Global {
		b.WriteString("global ")
	}
	b.WriteString("using ")
	if u.Static {
		b.WriteString("static ")
	}
	if u.Alias != "" {
		b.WriteString(u.Alias)
		b.WriteString(" = ")
	}
	b.WriteString(u.Name)
	b.WriteString(";")
	return b.String()
}

// Local returns a copy of the directive without the global modifier
func (u UsingDirective) Local() UsingDirective {
	u.Global = false
	return u
}

// TypeKind identifies the declaration keyword of a type
type TypeKind int

const (
	KindClass TypeKind = iota
	KindStruct
	KindInterface
	KindRecord
	KindRecordStruct
	KindEnum
)

// Keyword returns the declaration keyword(s) for the kind
func (k TypeKind) Keyword() string {
	switch k {
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	case KindRecord:
		return "record"
	case KindRecordStruct:
		return "record struct"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// String returns the keyword of the kind
func (k TypeKind) String() string {
	return k.Keyword()
}

// IsClassLike reports whether the kind can carry instance properties and be a generation target
func (k TypeKind) IsClassLike() bool {
	switch k {
	case KindClass, KindStruct, KindRecord, KindRecordStruct:
		return true
	}
	return false
}

// ContainerRef identifies a type that lexically encloses another type
type ContainerRef struct {
	Kind           TypeKind
	Name           string
	TypeParameters []string
}

// TypeDecl is a class, struct, record, interface or enum declaration
type TypeDecl struct {
	Kind           TypeKind
	Modifiers      []string       // e.g. public, partial, sealed
	Name           string         // simple name without type parameters
	TypeParameters []string       // generic parameter names in order
	Namespace      string         // dotted namespace path, empty for the global namespace
	Containers     []ContainerRef // enclosing types, outermost first
	Attributes     []Attribute
	BaseList       []BaseType
	Properties     []PropertyDecl
	File           *File
	Pos            Position
}

// HasModifier reports whether the declaration carries the given modifier
func (t *TypeDecl) HasModifier(modifier string) bool {
	for _, m := range t.Modifiers {
		if m == modifier {
			return true
		}
	}
	return false
}

// IsPartial reports whether the declaration is marked partial
func (t *TypeDecl) IsPartial() bool {
	return t.HasModifier("partial")
}

// MetadataName returns the name used for symbol lookup: Namespace.Outer+Inner`N
func (t *TypeDecl) MetadataName() string {
	var b strings.Builder
	if t.Namespace != "" {
		b.WriteString(t.Namespace)
		b.WriteString(".")
	}
	for _, c := range t.Containers {
		b.WriteString(metadataSegment(c.Name, len(c.TypeParameters)))
		b.WriteString("+")
	}
	b.WriteString(metadataSegment(t.Name, len(t.TypeParameters)))
	return b.String()
}

// FullName returns the dotted display name without type parameters
func (t *TypeDecl) FullName() string {
	parts := make([]string, 0, len(t.Containers)+2)
	if t.Namespace != "" {
		parts = append(parts, t.Namespace)
	}
	for _, c := range t.Containers {
		parts = append(parts, c.Name)
	}
	parts = append(parts, t.Name)
	return strings.Join(parts, ".")
}

// FindAttribute returns the first attribute whose simple name matches name
func (t *TypeDecl) FindAttribute(name string) (Attribute, bool) {
	want := TrimAttributeSuffix(name)
	for _, a := range t.Attributes {
		if a.SimpleName() == want {
			return a, true
		}
	}
	return Attribute{}, false
}

func metadataSegment(name string, arity int) string {
	if arity == 0 {
		return name
	}
	return fmt.Sprintf("%s`%d", name, arity)
}

// FormatTypeParameters renders a type parameter list such as <T, U>
func FormatTypeParameters(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

// Attribute is one attribute application inside an attribute list
type Attribute struct {
	Name      string // name as written, possibly qualified
	Arguments []AttributeArgument
	Pos       Position
}

// SimpleName returns the attribute name without qualifier and without the Attribute suffix
func (a Attribute) SimpleName() string {
	name := a.Name
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return TrimAttributeSuffix(name)
}

// TrimAttributeSuffix strips a trailing "Attribute" from a type name
func TrimAttributeSuffix(name string) string {
	if name != "Attribute" && strings.HasSuffix(name, "Attribute") {
		return strings.TrimSuffix(name, "Attribute")
	}
	return name
}

// AttributeArgument is a single argument of an attribute application
type AttributeArgument struct {
	Name string // set for named arguments (`X = ...` or `x: ...`)
	Text string // expression source text, trimmed
	Pos  Position
}

// BaseKind classifies the syntax of a base-list entry
type BaseKind int

const (
	BaseIdentifier BaseKind = iota // IFoo
	BaseQualified                  // Ns.IFoo
	BaseGeneric                    // IFoo<T>
	BaseOther                      // alias-qualified or otherwise unsupported forms
)

// BaseType is one entry of a type's inheritance list
type BaseType struct {
	Text string
	Kind BaseKind
	Pos  Position
}

// PropertyDecl is a property member declaration
type PropertyDecl struct {
	Type      string   // type as written, whitespace-normalized
	Name      string
	Static    bool
	Accessors []string // get, set, init in declaration order
	Pos       Position
}

// HasAccessor reports whether the property declares the given accessor
func (p PropertyDecl) HasAccessor(name string) bool {
	for _, a := range p.Accessors {
		if a == name {
			return true
		}
	}
	return false
}

// HasSetter reports whether the property can be assigned (set or init)
func (p PropertyDecl) HasSetter() bool {
	return p.HasAccessor("set") || p.HasAccessor("init")
}
