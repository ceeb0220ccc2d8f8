package generator

import (
	"github.com/toyz/autoimpl/internal/annotations"
	"github.com/toyz/autoimpl/internal/models"
	"github.com/toyz/autoimpl/internal/symbols"
	"github.com/toyz/autoimpl/internal/syntax"
)

// ProjectInterface reduces an interface symbol to what emission needs.
// Static properties are skipped. Under the qualified policy the interface
// name and every property type are rewritten to global:: form and no
// imports are carried, except the usings of a file whose property type
// kept a name that could not be qualified.
func ProjectInterface(sym symbols.Type, ref models.InterfaceReference, policy models.TypePolicy, qualifier symbols.Qualifier) models.ResolvedInterface {
	resolved := models.ResolvedInterface{
		Name:       ref.String(),
		SimpleName: sym.Name(),
		FullName:   sym.FullName(),
		Namespace:  sym.Namespace(),
	}

	if policy == models.PolicyQualified {
		resolved.Name = globalAlias + sym.FullName()
	} else if f := sym.DeclaringFile(); f != nil {
		resolved.Usings = f.Usings
	}

	for _, p := range sym.Properties() {
		if p.Static {
			continue
		}
		typeName := p.Type
		if policy == models.PolicyQualified {
			usings := fileUsings(p.File)
			qualified, complete := qualifier.QualifyType(p.Type, sym.Namespace(), usings)
			typeName = qualified
			if !complete {
				resolved.Usings = appendUsings(resolved.Usings, usings)
			}
		}
		resolved.Properties = append(resolved.Properties, models.InterfaceProperty{
			Type:      typeName,
			Name:      p.Name,
			HasSetter: p.HasSetter,
			InitOnly:  p.InitOnly,
		})
	}
	return resolved
}

// IsEligible reports whether an interface carries the marker
func IsEligible(sym symbols.Type, marker annotations.Marker) bool {
	for _, name := range sym.AttributeNames() {
		if marker.Matches(syntax.Attribute{Name: name}) {
			return true
		}
	}
	return false
}

func fileUsings(f *syntax.File) []syntax.UsingDirective {
	if f == nil {
		return nil
	}
	return f.Usings
}

// appendUsings adds the local directives of usings not already present
func appendUsings(dst, usings []syntax.UsingDirective) []syntax.UsingDirective {
	for _, u := range usings {
		if u.Global || containsUsing(dst, u) {
			continue
		}
		dst = append(dst, u)
	}
	return dst
}

func containsUsing(usings []syntax.UsingDirective, u syntax.UsingDirective) bool {
	for _, existing := range usings {
		if existing.String() == u.String() {
			return true
		}
	}
	return false
}
