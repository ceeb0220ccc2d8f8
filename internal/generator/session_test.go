package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autoimpl/internal/models"
)

func newTestSession(t *testing.T, strategy models.Strategy) *Session {
	t.Helper()
	opts := DefaultOptions()
	opts.Strategy = strategy
	s, err := NewSession(opts, 16)
	require.NoError(t, err)
	return s
}

func TestSession_MemoizesPasses(t *testing.T) {
	s := newTestSession(t, models.StrategyNamed)
	sources := []Source{
		{Path: "IBar.cs", Content: []byte(barSource)},
		{Path: "Foo.cs", Content: []byte(fooSource)},
	}

	first, err := s.Generate(context.Background(), sources)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.True(t, first.ParseErrors.IsEmpty())
	require.Len(t, first.Units, 1)

	reordered := []Source{sources[1], sources[0]}
	second, err := s.Generate(context.Background(), reordered)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.PassResult, second.PassResult)

	stats := s.Stats()
	assert.Equal(t, 1, stats.Passes.Size)
	assert.Equal(t, int64(1), stats.Passes.Hits)
	assert.Equal(t, 2, stats.Files.Size)
}

func TestSession_CachedOutcomesAreIndependent(t *testing.T) {
	s := newTestSession(t, models.StrategyNamed)
	sources := []Source{
		{Path: "IBar.cs", Content: []byte(barSource)},
		{Path: "Foo.cs", Content: []byte(fooSource)},
	}

	first, err := s.Generate(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, first.Units, 1)
	original := first.Units[0].Source

	first.Units[0].Source = "changed"
	first.Units = append(first.Units, models.GenerationUnit{Key: "extra"})

	second, err := s.Generate(context.Background(), sources)
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Len(t, second.Units, 1)
	assert.Equal(t, original, second.Units[0].Source)

	second.Units[0].Source = "changed again"
	third, err := s.Generate(context.Background(), sources)
	require.NoError(t, err)
	assert.Equal(t, original, third.Units[0].Source)
}

func TestSession_ReparsesOnlyChangedFiles(t *testing.T) {
	s := newTestSession(t, models.StrategyNamed)
	sources := []Source{
		{Path: "Foo.cs", Content: []byte(fooSource)},
		{Path: "IBar.cs", Content: []byte(barSource)},
	}

	_, err := s.Generate(context.Background(), sources)
	require.NoError(t, err)

	sources[1].Content = []byte(`namespace MyNs;
public interface IBar { long Version { get; } }
`)
	outcome, err := s.Generate(context.Background(), sources)
	require.NoError(t, err)
	assert.False(t, outcome.Cached)
	require.Len(t, outcome.Units, 1)
	assert.Contains(t, outcome.Units[0].Source, "public long Version { get; }")

	stats := s.Stats()
	assert.Equal(t, 3, stats.Files.Size)
	assert.Equal(t, int64(1), stats.Files.Hits)
}

func TestSession_OptionsShapeOutput(t *testing.T) {
	sources := []Source{
		{Path: "Foo.cs", Content: []byte(fooSource)},
		{Path: "IBar.cs", Content: []byte(barSource)},
	}

	named, err := newTestSession(t, models.StrategyNamed).Generate(context.Background(), sources)
	require.NoError(t, err)
	qualified, err := newTestSession(t, models.StrategyQualified).Generate(context.Background(), sources)
	require.NoError(t, err)

	assert.NotEqual(t, named.Units[0].Source, qualified.Units[0].Source)
	assert.NotEqual(t, DefaultOptions().fingerprint(), Options{Strategy: models.StrategyQualified, Marker: DefaultOptions().Marker}.fingerprint())
}

func TestSession_DuplicatePathsKeepFirst(t *testing.T) {
	s := newTestSession(t, models.StrategyNamed)
	outcome, err := s.Generate(context.Background(), []Source{
		{Path: "IBar.cs", Content: []byte(barSource)},
		{Path: "Foo.cs", Content: []byte(fooSource)},
		{Path: "Foo.cs", Content: []byte("class Ignored { }")},
	})
	require.NoError(t, err)
	require.Len(t, outcome.Units, 1)
	assert.Equal(t, "Foo_IBar", outcome.Units[0].Key)
}

func TestSession_Cancellation(t *testing.T) {
	s := newTestSession(t, models.StrategyNamed)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := s.Generate(ctx, []Source{{Path: "Foo.cs", Content: []byte(fooSource)}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, outcome)
	assert.Zero(t, s.Stats().Passes.Size)
}

func TestNewSession_InvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Marker.Namespace = "1bad"
	_, err := NewSession(opts, 0)
	assert.Error(t, err)
}
