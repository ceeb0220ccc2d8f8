package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	found := Found("IEntity")
	v, ok := found.Get()
	assert.True(t, ok)
	assert.Equal(t, "IEntity", v)
	assert.True(t, found.IsFound())
	assert.Equal(t, "IEntity", found.OrElse("fallback"))

	missing := NotFound[string]()
	v, ok = missing.Get()
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.Equal(t, "fallback", missing.OrElse("fallback"))

	var zero Lookup[int]
	assert.False(t, zero.IsFound())
}

func TestStrategy(t *testing.T) {
	tests := []struct {
		input      string
		strategy   Strategy
		name       string
		policy     TypePolicy
		interfaces bool
	}{
		{"named", StrategyNamed, "named", PolicyDisplay, false},
		{"1", StrategyNamed, "named", PolicyDisplay, false},
		{"qualified", StrategyQualified, "qualified", PolicyQualified, false},
		{"2", StrategyQualified, "qualified", PolicyQualified, false},
		{"inherited", StrategyInherited, "inherited", PolicyDisplay, true},
		{"3", StrategyInherited, "inherited", PolicyDisplay, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := ParseStrategy(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.strategy, s)
			assert.Equal(t, tt.name, s.String())
			assert.Equal(t, tt.policy, s.Policy())
			assert.Equal(t, tt.interfaces, s.MarksInterfaces())
		})
	}

	_, err := ParseStrategy("Named")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Strategy(42).String())
}

func TestInterfaceReference(t *testing.T) {
	assert.Equal(t, "IEntity", InterfaceReference("Contracts.IEntity").SimpleName())
	assert.Equal(t, "IEntity", InterfaceReference("IEntity").SimpleName())
	assert.True(t, InterfaceReference(" \t").IsBlank())
	assert.False(t, InterfaceReference("I").IsBlank())
}

func TestAnnotatedDeclaration_Key(t *testing.T) {
	outer := AnnotatedDeclaration{Namespace: "Shop", Name: "Line"}
	nested := AnnotatedDeclaration{
		Namespace:  "Shop",
		Name:       "Line",
		Containers: []ContainingType{{Keyword: "class", Name: "Order"}},
	}
	generic := AnnotatedDeclaration{Namespace: "Shop", Name: "Line", TypeParameters: "<T>"}

	assert.Equal(t, "Shop|Line", outer.Key())
	assert.Equal(t, "Shop|Order.Line", nested.Key())
	assert.Equal(t, "Shop|Line<T>", generic.Key())
	assert.NotEqual(t, outer.Key(), AnnotatedDeclaration{Namespace: "Other", Name: "Line"}.Key())
}

func TestInterfaceProperty_Accessors(t *testing.T) {
	assert.Equal(t, "get;", InterfaceProperty{}.Accessors())
	assert.Equal(t, "get; set;", InterfaceProperty{HasSetter: true}.Accessors())
	assert.Equal(t, "get; init;", InterfaceProperty{HasSetter: true, InitOnly: true}.Accessors())
}

func TestPassResult_Files(t *testing.T) {
	result := &PassResult{
		Marker: GenerationUnit{FileName: "AutoImplementAttribute.g.cs"},
		Units: []GenerationUnit{
			{Key: UnitKey("Person", "IEntity"), FileName: "Person_IEntity.g.cs"},
		},
	}

	files := result.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "AutoImplementAttribute.g.cs", files[0].FileName)
	assert.Equal(t, "Person_IEntity", files[1].Key)

	assert.Empty(t, (&PassResult{}).Files())
}

func TestPassResult_Clone(t *testing.T) {
	result := &PassResult{
		Units:      []GenerationUnit{{Key: "Person_IEntity", Source: "a"}},
		Unresolved: []UnresolvedReference{{Reference: "IMissing"}},
		Targets:    2,
	}

	clone := result.Clone()
	assert.Equal(t, result, clone)

	clone.Units[0].Source = "b"
	clone.Unresolved[0].Reference = "IOther"
	assert.Equal(t, "a", result.Units[0].Source)
	assert.Equal(t, InterfaceReference("IMissing"), result.Unresolved[0].Reference)
}
