package generator

import (
	"context"

	"github.com/toyz/autoimpl/internal/models"
	"github.com/toyz/autoimpl/internal/symbols"
	"github.com/toyz/autoimpl/internal/syntax"
)

// CodeGenerator runs generation passes over parsed source files
type CodeGenerator interface {
	Run(ctx context.Context, files []*syntax.File) (*models.PassResult, error)
	RunCompilation(ctx context.Context, compilation symbols.Compilation, files []*syntax.File) (*models.PassResult, error)
}

// SourceGenerator runs passes over raw source texts, memoizing repeated inputs
type SourceGenerator interface {
	Generate(ctx context.Context, sources []Source) (*Outcome, error)
	Stats() SessionStats
}

var (
	_ CodeGenerator   = (*Generator)(nil)
	_ SourceGenerator = (*Session)(nil)
)
