package generator

import (
	"strings"

	"github.com/toyz/autoimpl/internal/models"
	"github.com/toyz/autoimpl/internal/symbols"
	"github.com/toyz/autoimpl/internal/syntax"
)

const globalAlias = "global::"

// ResolveInterface binds a reference to an interface symbol. Candidates are
// tried in order: the reference as written, then each import prefixed to
// it. The first interface found wins; types of any other kind are passed
// over.
func ResolveInterface(resolver symbols.Resolver, ref models.InterfaceReference, imports []string) models.Lookup[symbols.Type] {
	if ref.IsBlank() {
		return models.NotFound[symbols.Type]()
	}

	for _, name := range candidateNames(ref, imports) {
		sym, ok := resolver.LookupType(name).Get()
		if ok && sym.Kind() == syntax.KindInterface {
			return models.Found(sym)
		}
	}
	return models.NotFound[symbols.Type]()
}

// candidateNames lists the metadata names tried for a reference
func candidateNames(ref models.InterfaceReference, imports []string) []string {
	raw := strings.TrimSpace(ref.String())
	if strings.HasPrefix(raw, globalAlias) {
		return []string{strings.TrimPrefix(raw, globalAlias)}
	}

	names := make([]string, 0, 1+len(imports))
	names = append(names, raw)
	for _, imp := range imports {
		names = append(names, strings.TrimPrefix(imp, globalAlias)+"."+raw)
	}
	return names
}
