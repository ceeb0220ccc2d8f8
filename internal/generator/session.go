package generator

import (
	"bytes"
	"context"
	"io"
	"sort"

	"golang.org/x/mod/sumdb/dirhash"

	"github.com/toyz/autoimpl/internal/errors"
	"github.com/toyz/autoimpl/internal/models"
	"github.com/toyz/autoimpl/internal/parser"
	"github.com/toyz/autoimpl/internal/syntax"
	"github.com/toyz/autoimpl/internal/utils"
)

// Source is one input file of a session pass
type Source struct {
	Path    string
	Content []byte
}

// Outcome is the result of a session pass
type Outcome struct {
	*models.PassResult
	ParseErrors *errors.MultipleErrors // files that failed to parse and were left out
	Cached      bool                   // the pass was served from the memo
}

// SessionStats reports cache usage of a session
type SessionStats struct {
	Files  utils.CacheStats
	Passes utils.CacheStats
}

// Session runs repeated passes over evolving inputs. Parsed files are cached
// by content and whole passes are memoized by the hash of every input, so an
// unchanged program yields the previous result without work.
type Session struct {
	generator *Generator
	parser    parser.SourceParser
	files     *utils.Cache[string, *syntax.File]
	passes    *utils.Cache[string, *Outcome]
}

// NewSession creates a session whose caches hold at most cacheSize entries
func NewSession(opts Options, cacheSize int) (*Session, error) {
	g, err := NewGenerator(opts)
	if err != nil {
		return nil, err
	}
	if cacheSize <= 0 {
		cacheSize = utils.DefaultCacheSize
	}
	files, err := utils.NewCacheWithSize[string, *syntax.File](cacheSize)
	if err != nil {
		return nil, err
	}
	passes, err := utils.NewCacheWithSize[string, *Outcome](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Session{
		generator: g,
		parser:    parser.NewParser(),
		files:     files,
		passes:    passes,
	}, nil
}

// Generator returns the generator used for passes
func (s *Session) Generator() *Generator {
	return s.generator
}

// Stats returns cache statistics
func (s *Session) Stats() SessionStats {
	return SessionStats{Files: s.files.GetStats(), Passes: s.passes.GetStats()}
}

// Generate runs a pass over sources. Sources are ordered by path; a repeated
// path keeps its first content. Files that fail to parse are reported in the
// outcome and the pass continues without them.
func (s *Session) Generate(ctx context.Context, sources []Source) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ordered := normalizeSources(sources)
	key, err := s.passKey(ordered)
	if err != nil {
		return nil, err
	}
	if cached, ok := s.passes.Get(key); ok {
		hit := cached.clone()
		hit.Cached = true
		return hit, nil
	}

	parseErrors := errors.NewMultipleErrors()
	files := make([]*syntax.File, 0, len(ordered))
	for _, src := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := s.parse(src)
		if err != nil {
			if ge, ok := err.(errors.GeneratorError); ok {
				parseErrors.Add(ge)
			} else {
				parseErrors.Add(errors.WrapParseError(src.Path, err))
			}
			continue
		}
		files = append(files, f)
	}

	result, err := s.generator.Run(ctx, files)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{PassResult: result, ParseErrors: parseErrors}
	s.passes.Set(key, outcome.clone())
	return outcome, nil
}

// clone copies the outcome so callers never share slices with the memo
func (o *Outcome) clone() *Outcome {
	c := &Outcome{PassResult: o.PassResult.Clone(), Cached: o.Cached}
	if o.ParseErrors != nil {
		c.ParseErrors = &errors.MultipleErrors{Errors: append([]errors.GeneratorError(nil), o.ParseErrors.Errors...)}
	}
	return c
}

// parse returns the cached syntax of a source, parsing it on a miss
func (s *Session) parse(src Source) (*syntax.File, error) {
	key, err := contentHash(src)
	if err != nil {
		return nil, err
	}
	if f, ok := s.files.Get(key); ok {
		return f, nil
	}
	f, err := s.parser.ParseSource(src.Path, string(src.Content))
	if err != nil {
		return nil, err
	}
	s.files.Set(key, f)
	return f, nil
}

// passKey hashes every source together with the options that shape output
func (s *Session) passKey(sources []Source) (string, error) {
	byPath := make(map[string][]byte, len(sources))
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		byPath[src.Path] = src.Content
		names = append(names, src.Path)
	}
	sum, err := dirhash.Hash1(names, func(name string) (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(byPath[name])), nil
	})
	if err != nil {
		return "", errors.Wrap(errors.GenerationErrorCode, "failed to hash sources", err)
	}
	return sum + "|" + s.generator.opts.fingerprint(), nil
}

func contentHash(src Source) (string, error) {
	sum, err := dirhash.Hash1([]string{src.Path}, func(string) (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(src.Content)), nil
	})
	if err != nil {
		return "", errors.Wrap(errors.GenerationErrorCode, "failed to hash "+src.Path, err)
	}
	return sum, nil
}

func normalizeSources(sources []Source) []Source {
	seen := make(map[string]bool, len(sources))
	result := make([]Source, 0, len(sources))
	for _, src := range sources {
		if seen[src.Path] {
			continue
		}
		seen[src.Path] = true
		result = append(result, src)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result
}
