package generator

import (
	"slices"

	"github.com/toyz/autoimpl/internal/annotations"
	"github.com/toyz/autoimpl/internal/models"
	"github.com/toyz/autoimpl/internal/syntax"
)

// candidate is a declaration that may receive generated units
type candidate struct {
	decl       *syntax.TypeDecl
	references []models.InterfaceReference
}

// selectCandidates finds the declarations a strategy considers, in file and
// declaration order. Named and qualified strategies pick class-like types
// carrying the marker; the inherited strategy picks class-like types with a
// non-empty base list.
func selectCandidates(files []*syntax.File, strategy models.Strategy, marker annotations.Marker) []candidate {
	var result []candidate
	for _, f := range files {
		if f == nil {
			continue
		}
		for _, decl := range f.Types {
			if !decl.Kind.IsClassLike() {
				continue
			}
			if c, ok := extractReferences(decl, strategy, marker); ok {
				result = append(result, c)
			}
		}
	}
	return result
}

// extractReferences reads the requested interfaces of one declaration
func extractReferences(decl *syntax.TypeDecl, strategy models.Strategy, marker annotations.Marker) (candidate, bool) {
	if strategy.MarksInterfaces() {
		if len(decl.BaseList) == 0 {
			return candidate{}, false
		}
		return candidate{decl: decl, references: annotations.BaseListReferences(decl.BaseList)}, true
	}

	attr, ok := marker.Find(decl)
	if !ok {
		return candidate{}, false
	}
	return candidate{decl: decl, references: annotations.AttributeReferences(attr)}, true
}

// importContext returns the file imports followed by program-wide global usings
func importContext(file *syntax.File, globals []syntax.UsingDirective) []string {
	imports := file.ImportContext()
	for _, path := range syntax.ImportPaths(globals) {
		if !slices.Contains(imports, path) {
			imports = append(imports, path)
		}
	}
	return imports
}

// annotatedDeclaration captures the target shape needed for emission.
// Targets outside any namespace are emitted into fallbackNamespace.
func annotatedDeclaration(c candidate, imports []string, fallbackNamespace string) models.AnnotatedDeclaration {
	decl := c.decl
	namespace := decl.Namespace
	if namespace == "" {
		namespace = fallbackNamespace
	}

	containers := make([]models.ContainingType, 0, len(decl.Containers))
	for _, ref := range decl.Containers {
		containers = append(containers, models.ContainingType{
			Keyword:        ref.Kind.Keyword(),
			Name:           ref.Name,
			TypeParameters: syntax.FormatTypeParameters(ref.TypeParameters),
		})
	}

	var path string
	if decl.File != nil {
		path = decl.File.Path
	}

	return models.AnnotatedDeclaration{
		Namespace:      namespace,
		Name:           decl.Name,
		Keyword:        decl.Kind.Keyword(),
		TypeParameters: syntax.FormatTypeParameters(decl.TypeParameters),
		Containers:     containers,
		References:     c.references,
		Imports:        imports,
		File:           path,
	}
}
