package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autoimpl/internal/utils"
)

const (
	entitySource = `using System;

namespace Contracts;

public interface IEntity
{
    Guid Id { get; }
}
`
	personSource = `using Contracts;

namespace Shop.Models;

[AutoImplement("IEntity")]
public partial class Person { }

[AutoImplement("IMissing")]
public partial class Ghost { }
`
	expectedPerson = `// <auto-generated/>
#nullable enable

using System;
using Contracts;

namespace Shop.Models;

partial class Person : IEntity
{
    public Guid Id { get; }
}
`
)

type testRun struct {
	gen    *Generator
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestGenerator builds a generator over a project directory that becomes the working directory
func newTestGenerator(t *testing.T, root string, mutate func(*Config)) testRun {
	t.Helper()
	chdir(t, root)

	cfg := DefaultConfig()
	cfg.Directories = []string{"./..."}
	if mutate != nil {
		mutate(&cfg)
	}

	var stdout, stderr bytes.Buffer
	diagnostics := utils.NewVerboseDiagnostics()
	diagnostics.SetOutput(&stdout, &stderr)

	gen, err := NewGeneratorWithDiagnostics(cfg, diagnostics, NewDiagnosticReporterTo(false, &stderr))
	require.NoError(t, err)
	return testRun{gen: gen, stdout: &stdout, stderr: &stderr}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestGenerator_Generate(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"Contracts/IEntity.cs": entitySource,
		"Models/Person.cs":     personSource,
	})

	run := newTestGenerator(t, root, nil)
	require.NoError(t, run.gen.Generate(context.Background()))

	assert.Equal(t, expectedPerson, readFile(t, filepath.Join(root, "Generated", "Person_IEntity.g.cs")))
	assert.Contains(t, readFile(t, filepath.Join(root, "Generated", "AutoImplementAttribute.g.cs")), "namespace AttributeGenerator;")

	summary := run.gen.GetSummary()
	_, err := uuid.Parse(summary.RunID)
	assert.NoError(t, err)
	assert.Equal(t, "named", summary.Strategy)
	assert.Equal(t, 2, summary.SourceFiles)
	assert.Equal(t, 2, summary.Targets)
	assert.Equal(t, 1, summary.Units)
	assert.Equal(t, 2, summary.FilesWritten)
	assert.Equal(t, 1, summary.Unresolved)
	assert.False(t, summary.Cached)
	assert.Equal(t, []string{"Generated/AutoImplementAttribute.g.cs", "Generated/Person_IEntity.g.cs"}, summary.GeneratedFiles)

	assert.Contains(t, run.stdout.String(), "Run ID: "+summary.RunID)
	assert.NotContains(t, run.stderr.String(), "IMissing", "unresolved references are skipped silently")
	assert.NotContains(t, summary.Stats(), "Unresolved interfaces")
}

func TestGenerator_VerboseReportsUnresolved(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"Contracts/IEntity.cs": entitySource,
		"Models/Person.cs":     personSource,
	})

	run := newTestGenerator(t, root, func(c *Config) { c.Verbose = true })
	require.NoError(t, run.gen.Generate(context.Background()))

	assert.Contains(t, run.stderr.String(), "Models/Person.cs: interface 'IMissing' referenced by 'Shop.Models.Ghost' could not be resolved; skipped")
	assert.Equal(t, 1, run.gen.GetSummary().Stats()["Unresolved interfaces"])
}

func TestGenerator_SecondRunIsCachedAndUnchanged(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"Contracts/IEntity.cs": entitySource,
		"Models/Person.cs":     personSource,
	})

	run := newTestGenerator(t, root, nil)
	require.NoError(t, run.gen.Generate(context.Background()))
	firstID := run.gen.GetSummary().RunID

	require.NoError(t, run.gen.Generate(context.Background()))
	summary := run.gen.GetSummary()
	assert.NotEqual(t, firstID, summary.RunID)
	assert.True(t, summary.Cached)
	assert.Equal(t, 0, summary.FilesWritten)
	assert.Equal(t, 2, summary.FilesUnchanged)
	assert.Equal(t, int64(1), run.gen.Session().Stats().Passes.Hits)
}

func TestGenerator_RemovesStaleFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"Contracts/IEntity.cs":       entitySource,
		"Models/Person.cs":           personSource,
		"Generated/Old_IEntity.g.cs": "// <auto-generated/>\npartial class Old { }\n",
		"Generated/Manual.g.cs":      "// kept\n",
	})

	run := newTestGenerator(t, root, nil)
	require.NoError(t, run.gen.Generate(context.Background()))

	assert.Equal(t, 1, run.gen.GetSummary().FilesRemoved)
	assert.NoFileExists(t, filepath.Join(root, "Generated", "Old_IEntity.g.cs"))
	assert.FileExists(t, filepath.Join(root, "Generated", "Manual.g.cs"))
}

func TestGenerator_DryRun(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"Contracts/IEntity.cs": entitySource,
		"Models/Person.cs":     personSource,
	})

	run := newTestGenerator(t, root, func(c *Config) { c.DryRun = true })
	require.NoError(t, run.gen.Generate(context.Background()))

	summary := run.gen.GetSummary()
	assert.True(t, summary.DryRun)
	assert.Len(t, summary.GeneratedFiles, 2)
	assert.Equal(t, 0, summary.FilesWritten)
	assert.NoDirExists(t, filepath.Join(root, "Generated"))
	assert.Contains(t, run.stdout.String(), "Would write Generated/Person_IEntity.g.cs")
	assert.Contains(t, run.stdout.String(), "[WARN] Dry run: nothing is written to Generated")
}

func TestGenerator_QualifiedStrategyAndCustomOutput(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"Contracts/IEntity.cs": entitySource,
		"Models/Person.cs":     personSource,
	})

	run := newTestGenerator(t, root, func(c *Config) {
		c.Strategy = "qualified"
		c.Output = "obj/autoimpl"
	})
	require.NoError(t, run.gen.Generate(context.Background()))

	content := readFile(t, filepath.Join(root, "obj", "autoimpl", "Person_IEntity.g.cs"))
	assert.Contains(t, content, "partial class Person : global::Contracts.IEntity\n")
	assert.Contains(t, content, "    public global::System.Guid Id { get; }\n")
	assert.NotContains(t, content, "using ")
}

func TestGenerator_ToleratesBrokenSources(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"Contracts/IEntity.cs": entitySource,
		"Models/Person.cs":     personSource,
		"Broken.cs":            "namespace Broken; public class {",
	})

	run := newTestGenerator(t, root, nil)
	require.NoError(t, run.gen.Generate(context.Background()))

	summary := run.gen.GetSummary()
	assert.Equal(t, 3, summary.SourceFiles)
	assert.Equal(t, 0, summary.ParseErrors)
	assert.Equal(t, 1, summary.Units)
}

func TestGenerator_NoSources(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"README.md": "# empty"})

	run := newTestGenerator(t, root, nil)
	err := run.gen.Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no C# source files found")
}

func TestGenerator_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"Models/Person.cs": personSource})

	run := newTestGenerator(t, root, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run.gen.Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoDirExists(t, filepath.Join(root, "Generated"))
}

func TestNewGenerator_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = "magic"

	_, err := NewGenerator(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strategy")
}

func TestGenerationSummary_Stats(t *testing.T) {
	stats := GenerationSummary{SourceFiles: 3, Units: 2, Unresolved: 1}.Stats()
	assert.Equal(t, 3, stats["Source files"])
	assert.Equal(t, 2, stats["Units generated"])
	assert.Len(t, stats, 7)

	stats = GenerationSummary{Unresolved: 1, Verbose: true}.Stats()
	assert.Equal(t, 1, stats["Unresolved interfaces"])
	assert.Len(t, stats, 8)
}
