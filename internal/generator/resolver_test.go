package generator

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/toyz/autoimpl/internal/annotations"
	"github.com/toyz/autoimpl/internal/models"
	"github.com/toyz/autoimpl/internal/symbols"
	"github.com/toyz/autoimpl/internal/syntax"
)

// fakeType is a symbol with a fixed shape
type fakeType struct {
	name       string
	namespace  string
	kind       syntax.TypeKind
	properties []symbols.Property
	attributes []string
	file       *syntax.File
}

func (f *fakeType) Name() string                   { return f.name }
func (f *fakeType) Namespace() string              { return f.namespace }
func (f *fakeType) Kind() syntax.TypeKind          { return f.kind }
func (f *fakeType) Properties() []symbols.Property { return f.properties }
func (f *fakeType) AttributeNames() []string       { return f.attributes }
func (f *fakeType) DeclaringFile() *syntax.File    { return f.file }

func (f *fakeType) FullName() string {
	if f.namespace == "" {
		return f.name
	}
	return f.namespace + "." + f.name
}

// fakeResolver answers lookups from a map and records every name it is asked for
type fakeResolver struct {
	types   map[string]symbols.Type
	lookups []string
}

func (r *fakeResolver) LookupType(name string) models.Lookup[symbols.Type] {
	r.lookups = append(r.lookups, name)
	if t, ok := r.types[name]; ok {
		return models.Found(t)
	}
	return models.NotFound[symbols.Type]()
}

func iface(namespace, name string) *fakeType {
	return &fakeType{name: name, namespace: namespace, kind: syntax.KindInterface}
}

func TestResolveInterface_LookupOrder(t *testing.T) {
	r := &fakeResolver{types: map[string]symbols.Type{}}

	result := ResolveInterface(r, "IFoo", []string{"System", "global::MyNs"})

	assert.False(t, result.IsFound())
	assert.Equal(t, []string{
		"IFoo",
		"System.IFoo",
		"MyNs.IFoo",
	}, r.lookups, "enclosing namespaces are never searched")
}

func TestResolveInterface(t *testing.T) {
	global := iface("", "IFoo")
	imported := iface("MyNs", "IFoo")
	other := iface("Other", "IFoo")
	app := iface("App", "IFoo")
	class := &fakeType{name: "IFoo", namespace: "First", kind: syntax.KindClass}

	tests := []struct {
		name     string
		types    map[string]symbols.Type
		ref      models.InterfaceReference
		imports  []string
		expected symbols.Type
	}{
		{
			name:     "bare name wins over two matching imports",
			types:    map[string]symbols.Type{"IFoo": global, "MyNs.IFoo": imported, "Other.IFoo": other},
			ref:      "IFoo",
			imports:  []string{"MyNs", "Other"},
			expected: global,
		},
		{
			name:     "first import wins",
			types:    map[string]symbols.Type{"MyNs.IFoo": imported, "App.IFoo": app},
			ref:      "IFoo",
			imports:  []string{"Missing", "MyNs", "App"},
			expected: imported,
		},
		{
			name:     "enclosing namespace is not searched",
			types:    map[string]symbols.Type{"App.IFoo": app},
			ref:      "IFoo",
			expected: nil,
		},
		{
			name:     "non-interface is passed over",
			types:    map[string]symbols.Type{"First.IFoo": class, "MyNs.IFoo": imported},
			ref:      "IFoo",
			imports:  []string{"First", "MyNs"},
			expected: imported,
		},
		{
			name:     "global alias skips imports",
			types:    map[string]symbols.Type{"MyNs.IFoo": imported},
			ref:      "global::IFoo",
			imports:  []string{"MyNs"},
			expected: nil,
		},
		{
			name:     "qualified reference",
			types:    map[string]symbols.Type{"MyNs.IFoo": imported},
			ref:      "MyNs.IFoo",
			expected: imported,
		},
		{
			name:     "blank reference",
			types:    map[string]symbols.Type{"": global},
			ref:      "  ",
			imports:  []string{"MyNs"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeResolver{types: tt.types}
			result := ResolveInterface(r, tt.ref, tt.imports)
			assert.Equal(t, tt.expected, result.OrElse(nil))
		})
	}
}

func TestResolveInterfaceProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("a bare match wins over every import", prop.ForAll(
		func(name string, imports []string) bool {
			bare := iface("", name)
			types := map[string]symbols.Type{name: bare}
			for _, imp := range imports {
				types[imp+"."+name] = iface(imp, name)
			}
			r := &fakeResolver{types: types}
			got, ok := ResolveInterface(r, models.InterfaceReference(name), imports).Get()
			return ok && got == bare && len(r.lookups) == 1
		},
		gen.Identifier(),
		gen.SliceOf(gen.Identifier()),
	))

	properties.Property("the first matching import wins", prop.ForAll(
		func(name string, imports []string) bool {
			if len(imports) == 0 {
				return true
			}
			types := map[string]symbols.Type{}
			for _, imp := range imports {
				if _, ok := types[imp+"."+name]; !ok {
					types[imp+"."+name] = iface(imp, name)
				}
			}
			r := &fakeResolver{types: types}
			got, ok := ResolveInterface(r, models.InterfaceReference(name), imports).Get()
			return ok && got.Namespace() == imports[0]
		},
		gen.Identifier(),
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}

func TestProjectInterface(t *testing.T) {
	file := &syntax.File{Path: "IBar.cs", Usings: []syntax.UsingDirective{{Name: "System"}}}
	sym := &fakeType{
		name:      "IBar",
		namespace: "MyNs",
		kind:      syntax.KindInterface,
		file:      file,
		properties: []symbols.Property{
			{Type: "int", Name: "Id", HasSetter: true, File: file},
			{Type: "Guid", Name: "Key", File: file},
			{Type: "int", Name: "Count", Static: true, File: file},
			{Type: "string", Name: "Code", HasSetter: true, InitOnly: true, File: file},
		},
	}

	t.Run("display", func(t *testing.T) {
		resolved := ProjectInterface(sym, "IBar", models.PolicyDisplay, nil)

		assert.Equal(t, "IBar", resolved.Name)
		assert.Equal(t, "MyNs.IBar", resolved.FullName)
		assert.Equal(t, "MyNs", resolved.Namespace)
		assert.Equal(t, []string{"System"}, syntax.ImportPaths(resolved.Usings))
		assert.Equal(t, []models.InterfaceProperty{
			{Type: "int", Name: "Id", HasSetter: true},
			{Type: "Guid", Name: "Key"},
			{Type: "string", Name: "Code", HasSetter: true, InitOnly: true},
		}, resolved.Properties)
	})

	t.Run("qualified", func(t *testing.T) {
		resolved := ProjectInterface(sym, "IBar", models.PolicyQualified, prefixQualifier{})

		assert.Equal(t, "global::MyNs.IBar", resolved.Name)
		assert.Empty(t, resolved.Usings)
		assert.Equal(t, "q(int@MyNs/1)", resolved.Properties[0].Type)
		assert.Equal(t, "q(Guid@MyNs/1)", resolved.Properties[1].Type)
	})

	t.Run("qualified with unknown names keeps local usings", func(t *testing.T) {
		withGlobal := &syntax.File{Path: "IBar.cs", Usings: []syntax.UsingDirective{
			{Global: true, Name: "System.Linq"},
			{Name: "System.Net.Http"},
			{Alias: "Json", Name: "System.Text.Json"},
		}}
		partial := &fakeType{
			name:      "IBar",
			namespace: "MyNs",
			kind:      syntax.KindInterface,
			file:      withGlobal,
			properties: []symbols.Property{
				{Type: "int", Name: "Id", File: withGlobal},
				{Type: "HttpClient", Name: "Client", File: withGlobal},
				{Type: "HttpClient", Name: "Backup", File: withGlobal},
			},
		}

		resolved := ProjectInterface(partial, "IBar", models.PolicyQualified, prefixQualifier{unknown: "HttpClient"})

		assert.Equal(t, []syntax.UsingDirective{
			{Name: "System.Net.Http"},
			{Alias: "Json", Name: "System.Text.Json"},
		}, resolved.Usings)
		assert.Equal(t, "HttpClient", resolved.Properties[1].Type)
	})
}

// prefixQualifier makes qualification visible in results. The unknown
// spelling is returned as written and reported incomplete.
type prefixQualifier struct {
	unknown string
}

func (q prefixQualifier) QualifyType(display, namespace string, usings []syntax.UsingDirective) (string, bool) {
	if q.unknown != "" && display == q.unknown {
		return display, false
	}
	return "q(" + display + "@" + namespace + "/" + string(rune('0'+len(usings))) + ")", true
}

func TestIsEligible(t *testing.T) {
	sym := &fakeType{attributes: []string{"Serializable", "AutoImplement"}}
	assert.True(t, IsEligible(sym, annotations.DefaultMarker()))
	assert.True(t, IsEligible(sym, annotations.Marker{Name: "AutoImplementAttribute", Namespace: "Gen"}))
	assert.False(t, IsEligible(sym, annotations.Marker{Name: "Other", Namespace: "Gen"}))
	assert.False(t, IsEligible(&fakeType{}, annotations.DefaultMarker()))
}
