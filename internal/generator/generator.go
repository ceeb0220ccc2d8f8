package generator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/autoimpl/internal/models"
	"github.com/toyz/autoimpl/internal/registry"
	"github.com/toyz/autoimpl/internal/symbols"
	"github.com/toyz/autoimpl/internal/syntax"
)

// Generator implements the CodeGenerator interface
type Generator struct {
	opts Options
}

// NewGenerator creates a generator for the given options
func NewGenerator(opts Options) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Generator{opts: opts}, nil
}

// Options returns the validated options of the generator
func (g *Generator) Options() Options {
	return g.opts
}

// targetResult is the outcome of transforming one candidate
type targetResult struct {
	declKey    string
	units      []models.GenerationUnit
	fullNames  []string // interface full name per unit
	unresolved []models.UnresolvedReference
}

// Run builds a compilation over files and runs one pass
func (g *Generator) Run(ctx context.Context, files []*syntax.File) (*models.PassResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	compilation := registry.NewCompilation(files)
	return g.RunCompilation(ctx, compilation, compilation.Files())
}

// RunCompilation runs one pass over files, resolving names against compilation.
// Targets are transformed concurrently; units are returned in file and
// declaration order. A cancelled context yields no result.
func (g *Generator) RunCompilation(ctx context.Context, compilation symbols.Compilation, files []*syntax.File) (*models.PassResult, error) {
	marker, err := EmitMarker(g.opts.Marker, g.opts.Strategy)
	if err != nil {
		return nil, err
	}

	candidates := selectCandidates(files, g.opts.Strategy, g.opts.Marker)
	globals := compilation.GlobalUsings()
	results := make([]targetResult, len(candidates))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.opts.Concurrency)
	for i, c := range candidates {
		i, c := i, c
		group.Go(func() error {
			r, err := g.transform(groupCtx, compilation, c, globals)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pass := &models.PassResult{Marker: marker, Targets: len(candidates)}
	names := newFileNameAllocator(marker.FileName)
	seen := make(map[string]bool)
	for _, r := range results {
		pass.Unresolved = append(pass.Unresolved, r.unresolved...)
		for i, unit := range r.units {
			identity := r.declKey + "|" + r.fullNames[i]
			if seen[identity] {
				continue
			}
			seen[identity] = true
			unit.FileName = names.allocate(unit, r.fullNames[i])
			pass.Units = append(pass.Units, unit)
		}
	}
	return pass, nil
}

// transform resolves, projects and emits every reference of one candidate
func (g *Generator) transform(ctx context.Context, compilation symbols.Compilation, c candidate, globals []syntax.UsingDirective) (targetResult, error) {
	imports := importContext(c.decl.File, globals)
	decl := annotatedDeclaration(c, imports, g.opts.Marker.Namespace)
	result := targetResult{declKey: decl.Key()}

	emitted := make(map[string]bool)
	for _, ref := range c.references {
		if err := ctx.Err(); err != nil {
			return targetResult{}, err
		}

		sym, ok := ResolveInterface(compilation, ref, imports).Get()
		if !ok {
			// base lists also name classes and foreign interfaces
			if g.opts.Strategy.MarksInterfaces() {
				continue
			}
			result.unresolved = append(result.unresolved, models.UnresolvedReference{
				Declaration: c.decl.FullName(),
				Reference:   ref,
				File:        decl.File,
			})
			continue
		}
		if g.opts.Strategy.MarksInterfaces() && !IsEligible(sym, g.opts.Marker) {
			continue
		}
		if emitted[sym.FullName()] {
			continue
		}
		emitted[sym.FullName()] = true

		iface := ProjectInterface(sym, ref, g.opts.Strategy.Policy(), compilation)
		unit, err := EmitUnit(decl, iface, g.opts.Strategy)
		if err != nil {
			return targetResult{}, err
		}
		result.units = append(result.units, unit)
		result.fullNames = append(result.fullNames, sym.FullName())
	}
	return result, nil
}
