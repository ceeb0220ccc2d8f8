package templates

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerUnitTemplates()
	registry.registerMarkerTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// registerUnitTemplates registers the partial type template
func (tr *TemplateRegistry) registerUnitTemplates() {
	tr.templates["unit"] = `// <auto-generated/>
#nullable enable
{{if .Usings}}
{{range .Usings}}{{.}}
{{end}}{{end}}
namespace {{.Namespace}};
{{range .Containers}}
{{.Indent}}{{.Declaration}}
{{.Indent}}{{"{"}}{{end}}
{{.Indent}}{{.Declaration}}
{{.Indent}}{{"{"}}
{{range .Properties}}{{$.Indent}}    public {{.Type}} {{.Name}} { {{.Accessors}} }
{{end}}{{.Indent}}{{"}"}}
{{range .Closers}}{{.}}{{"}"}}
{{end}}`
}

// registerMarkerTemplates registers the marker attribute declaration template
func (tr *TemplateRegistry) registerMarkerTemplates() {
	tr.templates["marker"] = `// <auto-generated/>
using System;

namespace {{.Namespace}};

[AttributeUsage({{.Targets}}, Inherited = false, AllowMultiple = false)]
sealed class {{.ClassName}} : Attribute
{
    public string[] InterfacesNames { get; }

    public {{.ClassName}}(params string[] interfacesNames)
    {
        InterfacesNames = interfacesNames;
    }
}
`
}

// DefaultTemplateRegistry is the registry used by the generate functions
var DefaultTemplateRegistry = NewTemplateRegistry()
