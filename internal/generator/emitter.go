package generator

import (
	"fmt"
	"strings"

	"github.com/toyz/autoimpl/internal/annotations"
	"github.com/toyz/autoimpl/internal/errors"
	"github.com/toyz/autoimpl/internal/models"
	"github.com/toyz/autoimpl/internal/templates"
)

const (
	targetsTypes      = "AttributeTargets.Class | AttributeTargets.Struct"
	targetsInterfaces = "AttributeTargets.Interface"
)

// EmitUnit renders the partial declaration of decl implementing iface.
// The returned unit has no FileName; names are allocated per pass.
func EmitUnit(decl models.AnnotatedDeclaration, iface models.ResolvedInterface, strategy models.Strategy) (models.GenerationUnit, error) {
	imports := templates.NewImportManager(decl.Namespace)
	for _, u := range iface.Usings {
		imports.AddUsing(u)
	}
	if strategy.Policy() == models.PolicyDisplay {
		imports.AddNamespace(iface.Namespace)
	}

	containers := make([]string, 0, len(decl.Containers))
	for _, c := range decl.Containers {
		containers = append(containers, fmt.Sprintf("partial %s %s%s", c.Keyword, c.Name, c.TypeParameters))
	}

	declaration := fmt.Sprintf("partial %s %s%s", decl.Keyword, decl.Name, decl.TypeParameters)
	if !strategy.MarksInterfaces() {
		declaration += " : " + iface.Name
	}

	properties := make([]templates.PropertyData, 0, len(iface.Properties))
	for _, p := range iface.Properties {
		properties = append(properties, templates.PropertyData{
			Type:      p.Type,
			Name:      p.Name,
			Accessors: p.Accessors(),
		})
	}

	data := templates.BuildUnitData(decl.Namespace, imports.Usings(), containers, declaration, properties)
	source, err := templates.GenerateUnit(data)
	if err != nil {
		return models.GenerationUnit{}, errors.WrapGenerateError(decl.Name, err).WithStage("emit")
	}

	return models.GenerationUnit{
		TypeName:      decl.Name,
		Namespace:     decl.Namespace,
		InterfaceName: iface.SimpleName,
		Key:           models.UnitKey(decl.Name, iface.SimpleName),
		Source:        source,
	}, nil
}

// EmitMarker renders the marker attribute declaration for a strategy
func EmitMarker(marker annotations.Marker, strategy models.Strategy) (models.GenerationUnit, error) {
	targets := targetsTypes
	if strategy.MarksInterfaces() {
		targets = targetsInterfaces
	}

	source, err := templates.GenerateMarker(templates.MarkerData{
		Namespace: marker.Namespace,
		ClassName: marker.ClassName(),
		Targets:   targets,
	})
	if err != nil {
		return models.GenerationUnit{}, errors.WrapGenerateError(marker.ClassName(), err).WithStage("marker")
	}

	return models.GenerationUnit{
		TypeName:  marker.ClassName(),
		Namespace: marker.Namespace,
		Key:       marker.ClassName(),
		FileName:  marker.HintName(),
		Source:    source,
	}, nil
}

// fileNameAllocator hands out output file names that are unique within a pass
type fileNameAllocator struct {
	taken map[string]bool
}

func newFileNameAllocator(reserved ...string) *fileNameAllocator {
	a := &fileNameAllocator{taken: make(map[string]bool)}
	for _, name := range reserved {
		a.taken[strings.TrimSuffix(name, models.GeneratedFileSuffix)] = true
	}
	return a
}

// allocate prefers the unit key, then the namespace-qualified key, then a
// key built from the interface full name, then numbered variants of the key
func (a *fileNameAllocator) allocate(unit models.GenerationUnit, ifaceFullName string) string {
	names := []string{unit.Key}
	if unit.Namespace != "" {
		names = append(names, unit.Namespace+"."+unit.Key)
	}
	names = append(names, models.UnitKey(unit.TypeName, strings.ReplaceAll(ifaceFullName, ".", "_")))

	for _, name := range names {
		if !a.taken[name] {
			a.taken[name] = true
			return name + models.GeneratedFileSuffix
		}
	}
	for n := 2; ; n++ {
		name := fmt.Sprintf("%s_%d", unit.Key, n)
		if !a.taken[name] {
			a.taken[name] = true
			return name + models.GeneratedFileSuffix
		}
	}
}
