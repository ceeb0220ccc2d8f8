package parser

import "github.com/toyz/autoimpl/internal/syntax"

// SourceParser turns source text into the syntax model consumed by the generator
type SourceParser interface {
	ParseSource(path, source string) (*syntax.File, error)
	ParseFile(path string) (*syntax.File, error)
}

var _ SourceParser = (*Parser)(nil)
