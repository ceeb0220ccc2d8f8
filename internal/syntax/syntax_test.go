package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsingDirective_String(t *testing.T) {
	tests := []struct {
		name     string
		using    UsingDirective
		expected string
	}{
		{"plain", UsingDirective{Name: "System"}, "using System;"},
		{"static", UsingDirective{Static: true, Name: "System.Math"}, "using static System.Math;"},
		{"alias", UsingDirective{Alias: "Col", Name: "System.Collections.Generic"}, "using Col = System.Collections.Generic;"},
		{"global", UsingDirective{Global: true, Name: "System.Linq"}, "global using System.Linq;"},
		{"global made local", UsingDirective{Global: true, Name: "System.Linq"}.Local(), "using System.Linq;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.using.String())
		})
	}
}

func TestFile_ImportContext(t *testing.T) {
	t.Run("nil file", func(t *testing.T) {
		var f *File
		assert.Empty(t, f.ImportContext())
	})

	t.Run("no usings", func(t *testing.T) {
		f := &File{}
		assert.NotNil(t, f.ImportContext())
		assert.Empty(t, f.ImportContext())
	})

	t.Run("ordered and distinct", func(t *testing.T) {
		f := &File{Usings: []UsingDirective{
			{Name: "System"},
			{Name: "MyNs"},
			{Alias: "X", Name: "Other.Ns"},
			{Name: "System"},
			{Static: true, Name: "System.Math"},
		}}
		assert.Equal(t, []string{"System", "MyNs", "Other.Ns", "System.Math"}, f.ImportContext())
	})
}

func TestGlobalUsings(t *testing.T) {
	a := &File{Usings: []UsingDirective{{Global: true, Name: "System"}, {Name: "Local"}}}
	b := &File{Usings: []UsingDirective{{Global: true, Name: "System"}, {Global: true, Name: "System.Linq"}}}

	result := GlobalUsings([]*File{a, nil, b})
	assert.Len(t, result, 2)
	assert.Equal(t, "System", result[0].Name)
	assert.Equal(t, "System.Linq", result[1].Name)
}

func TestEnclosingNamespaces(t *testing.T) {
	assert.Equal(t, []string{"A.B.C", "A.B", "A"}, EnclosingNamespaces("A.B.C"))
	assert.Nil(t, EnclosingNamespaces(""))
}

func TestTypeDecl_Names(t *testing.T) {
	decl := &TypeDecl{
		Kind:           KindClass,
		Name:           "Inner",
		TypeParameters: []string{"T"},
		Namespace:      "App.Models",
		Containers:     []ContainerRef{{Kind: KindClass, Name: "Outer"}},
	}

	assert.Equal(t, "App.Models.Outer+Inner`1", decl.MetadataName())
	assert.Equal(t, "App.Models.Outer.Inner", decl.FullName())

	global := &TypeDecl{Kind: KindInterface, Name: "IFoo"}
	assert.Equal(t, "IFoo", global.MetadataName())
	assert.Equal(t, "IFoo", global.FullName())
}

func TestAttribute_SimpleName(t *testing.T) {
	tests := map[string]string{
		"AutoImplement":                            "AutoImplement",
		"AutoImplementAttribute":                   "AutoImplement",
		"AttributeGenerator.AutoImplement":         "AutoImplement",
		"global::AttributeGenerator.AutoImplement": "AutoImplement",
		"Attribute":                                "Attribute",
	}
	for name, expected := range tests {
		assert.Equal(t, expected, Attribute{Name: name}.SimpleName(), name)
	}
}

func TestTypeDecl_FindAttribute(t *testing.T) {
	decl := &TypeDecl{Attributes: []Attribute{
		{Name: "Serializable"},
		{Name: "AutoImplementAttribute", Arguments: []AttributeArgument{{Text: `"IFoo"`}}},
	}}

	attr, ok := decl.FindAttribute("AutoImplement")
	assert.True(t, ok)
	assert.Len(t, attr.Arguments, 1)

	_, ok = decl.FindAttribute("Missing")
	assert.False(t, ok)
}

func TestPropertyDecl_HasSetter(t *testing.T) {
	assert.True(t, PropertyDecl{Accessors: []string{"get", "set"}}.HasSetter())
	assert.True(t, PropertyDecl{Accessors: []string{"get", "init"}}.HasSetter())
	assert.False(t, PropertyDecl{Accessors: []string{"get"}}.HasSetter())
}

func TestFormatTypeParameters(t *testing.T) {
	assert.Equal(t, "", FormatTypeParameters(nil))
	assert.Equal(t, "<T, U>", FormatTypeParameters([]string{"T", "U"}))
}
