// Package templates renders generated C# source from prepared data.
package templates

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/toyz/autoimpl/internal/errors"
)

const indentUnit = "    "

// UnitData is the template input of one generated partial type
type UnitData struct {
	Usings      []string
	Namespace   string
	Containers  []DeclarationData // enclosing partial types, outermost first
	Indent      string
	Declaration string // e.g. "partial class Foo : IBar"
	Properties  []PropertyData
	Closers     []string // indents of the container closing braces, innermost first
}

// DeclarationData is one indented declaration line
type DeclarationData struct {
	Indent      string
	Declaration string
}

// PropertyData is one generated property
type PropertyData struct {
	Type      string
	Name      string
	Accessors string // e.g. "get; set;"
}

// MarkerData is the template input of the marker attribute declaration
type MarkerData struct {
	Namespace string
	ClassName string
	Targets   string // AttributeTargets expression
}

// BuildUnitData lays out a declaration nested inside its container declarations
func BuildUnitData(namespace string, usings, containers []string, declaration string, properties []PropertyData) UnitData {
	data := UnitData{
		Usings:      usings,
		Namespace:   namespace,
		Declaration: declaration,
		Properties:  properties,
		Indent:      strings.Repeat(indentUnit, len(containers)),
	}
	for i, c := range containers {
		data.Containers = append(data.Containers, DeclarationData{
			Indent:      strings.Repeat(indentUnit, i),
			Declaration: c,
		})
	}
	for i := len(containers) - 1; i >= 0; i-- {
		data.Closers = append(data.Closers, strings.Repeat(indentUnit, i))
	}
	return data
}

// GenerateUnit renders a generated partial type
func GenerateUnit(data UnitData) (string, error) {
	return executeTemplate("unit", DefaultTemplateRegistry.MustGet("unit"), data)
}

// GenerateMarker renders the marker attribute declaration
func GenerateMarker(data MarkerData) (string, error) {
	return executeTemplate("marker", DefaultTemplateRegistry.MustGet("marker"), data)
}

// executeTemplate executes a Go template with the given data
func executeTemplate(name, templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(templateStr)
	if err != nil {
		return "", errors.WrapTemplateError(name, "parse", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}

	return buf.String(), nil
}
