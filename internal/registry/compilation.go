// Package registry holds the symbol table built from parsed source files.
package registry

import (
	"strconv"
	"strings"

	"github.com/toyz/autoimpl/internal/models"
	"github.com/toyz/autoimpl/internal/symbols"
	"github.com/toyz/autoimpl/internal/syntax"
	"github.com/toyz/autoimpl/internal/utils"
)

const globalAlias = "global::"

// Compilation is a read-only snapshot of every type declared by a set of
// files. It is safe for concurrent reads once built.
type Compilation struct {
	files        []*syntax.File
	types        *utils.Registry[string, *typeSymbol] // by metadata name
	byDottedName *utils.Registry[string, *typeSymbol] // Ns.Outer.Inner`N
	globalUsings []syntax.UsingDirective
}

var _ symbols.Compilation = (*Compilation)(nil)

// NewCompilation indexes the declarations of files. Partial declarations of
// the same type are merged in file order.
func NewCompilation(files []*syntax.File) *Compilation {
	c := &Compilation{
		types:        utils.NewRegistry[string, *typeSymbol]("symbol", utils.NotEmptyKey("metadata name")),
		byDottedName: utils.NewRegistry[string, *typeSymbol]("dotted name", utils.NotEmptyKey("dotted name")),
	}

	for _, f := range files {
		if f == nil {
			continue
		}
		c.files = append(c.files, f)
		for _, decl := range f.Types {
			c.add(decl)
		}
	}
	c.globalUsings = syntax.GlobalUsings(c.files)
	return c
}

func (c *Compilation) add(decl *syntax.TypeDecl) {
	if decl.Name == "" {
		return
	}
	key := decl.MetadataName()
	if existing, ok := c.types.Get(key); ok {
		// a partial part declared with another kind is not the same type
		if existing.kind == decl.Kind {
			existing.merge(decl)
		}
		return
	}

	sym := newTypeSymbol(decl)
	if err := c.types.Register(key, sym); err != nil {
		return
	}
	_ = c.byDottedName.Register(dottedKey(sym.fullName, sym.arity), sym)
}

// Files returns the files of the compilation in input order
func (c *Compilation) Files() []*syntax.File {
	return c.files
}

// TypeCount returns the number of distinct types
func (c *Compilation) TypeCount() int {
	return c.types.Size()
}

// LookupType resolves a metadata name such as Ns.Outer+Inner`1
func (c *Compilation) LookupType(metadataName string) models.Lookup[symbols.Type] {
	metadataName = strings.TrimPrefix(strings.TrimSpace(metadataName), globalAlias)
	if sym, ok := c.types.Get(metadataName); ok {
		return models.Found[symbols.Type](sym)
	}
	return models.NotFound[symbols.Type]()
}

// GlobalUsings returns the global using directives of all files, first occurrence wins
func (c *Compilation) GlobalUsings() []syntax.UsingDirective {
	return c.globalUsings
}

func (c *Compilation) lookupDotted(name string, arity int) (*typeSymbol, bool) {
	return c.byDottedName.Get(dottedKey(name, arity))
}

func dottedKey(name string, arity int) string {
	if arity == 0 {
		return name
	}
	return name + "`" + strconv.Itoa(arity)
}
