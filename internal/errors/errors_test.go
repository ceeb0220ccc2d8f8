package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		name     string
		loc      SourceLocation
		expected string
	}{
		{"empty", SourceLocation{}, "unknown location"},
		{"file only", SourceLocation{File: "Foo.cs"}, "Foo.cs"},
		{"file and line", SourceLocation{File: "Foo.cs", Line: 3}, "Foo.cs:3"},
		{"full", SourceLocation{File: "Foo.cs", Line: 3, Column: 7}, "Foo.cs:3:7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.loc.String())
		})
	}
}

func TestBaseError(t *testing.T) {
	cause := fs.ErrNotExist
	err := WrapFileSystemError("read", "Foo.cs", cause)

	assert.Equal(t, FileSystemErrorCode, err.ErrorCode())
	assert.Contains(t, err.Error(), "failed to read file 'Foo.cs'")
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
	assert.Equal(t, "read", err.Context()["operation"])
}

func TestWrapParseError(t *testing.T) {
	err := WrapParseError("Foo.cs", stderrors.New("boom"))

	assert.Equal(t, SyntaxErrorCode, err.ErrorCode())
	assert.Equal(t, "Foo.cs: failed to parse Foo.cs: boom", err.Error())
}

func TestResolutionError(t *testing.T) {
	err := NewResolutionError("Foo", "IMissing", SourceLocation{File: "Foo.cs", Line: 4, Column: 2})

	assert.Equal(t, ResolutionErrorCode, err.ErrorCode())
	assert.Equal(t, "Foo.cs:4:2: interface 'IMissing' referenced by 'Foo' could not be resolved", err.Error())
	assert.NotEmpty(t, err.Suggestions())
}

func TestMultipleErrors(t *testing.T) {
	multi := NewMultipleErrors()
	assert.True(t, multi.IsEmpty())
	assert.Equal(t, "no errors", multi.Error())

	parseErr := WrapParseError("A.cs", stderrors.New("bad"))
	multi.Add(parseErr)
	assert.Equal(t, parseErr.Error(), multi.Error())

	multi.Add(WrapGenerateError("Foo", stderrors.New("template failed")).WithStage("emit"))
	assert.False(t, multi.IsEmpty())
	assert.Contains(t, multi.Error(), "multiple errors (2 total)")

	var target *SyntaxError
	assert.True(t, stderrors.As(multi, &target))
	assert.Same(t, parseErr, target)

	var genErr *GenerationError
	require.True(t, stderrors.As(multi, &genErr))
	assert.Equal(t, "emit", genErr.Stage)
	assert.Equal(t, "Foo", genErr.TargetFile)
	assert.Equal(t, GenerationErrorCode, genErr.ErrorCode())
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "ResolutionError", ResolutionErrorCode.String())
	assert.Equal(t, "UnknownError", ErrorCode(99).String())
}
