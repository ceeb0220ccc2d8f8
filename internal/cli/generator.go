package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/toyz/autoimpl/internal/errors"
	"github.com/toyz/autoimpl/internal/generator"
	"github.com/toyz/autoimpl/internal/models"
	"github.com/toyz/autoimpl/internal/utils"
)

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	RunID          string
	Strategy       string
	SourceFiles    int
	Targets        int
	Units          int
	FilesWritten   int
	FilesUnchanged int
	FilesRemoved   int
	Unresolved     int
	ParseErrors    int
	Cached         bool
	DryRun         bool
	Verbose        bool
	Duration       time.Duration
	GeneratedFiles []string
}

// Stats returns the summary as the key/value map printed at the end of a run.
// Unresolved interfaces are counted in verbose runs only.
func (s GenerationSummary) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"Source files":        s.SourceFiles,
		"Targets":             s.Targets,
		"Units generated":     s.Units,
		"Files written":       s.FilesWritten,
		"Files unchanged":     s.FilesUnchanged,
		"Stale files removed": s.FilesRemoved,
		"Files with errors":   s.ParseErrors,
	}
	if s.Verbose {
		stats["Unresolved interfaces"] = s.Unresolved
	}
	return stats
}

// Generator runs the scan, generate and write phases for the command line
type Generator struct {
	config        Config
	scanner       *DirectoryScanner
	fileProcessor *utils.FileProcessor
	session       *generator.Session
	diagnostics   *utils.DiagnosticSystem
	reporter      *DiagnosticReporter
	summary       GenerationSummary
}

// NewGenerator creates a CLI generator with default diagnostics
func NewGenerator(config Config) (*Generator, error) {
	level := utils.DiagnosticInfo
	if config.Verbose {
		level = utils.DiagnosticVerbose
	}
	return NewGeneratorWithDiagnostics(config, utils.NewDiagnosticSystem(level), NewDiagnosticReporter(config.Verbose))
}

// NewGeneratorWithDiagnostics creates a CLI generator reporting through the given systems
func NewGeneratorWithDiagnostics(config Config, diagnostics *utils.DiagnosticSystem, reporter *DiagnosticReporter) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	opts, err := config.GeneratorOptions()
	if err != nil {
		return nil, err
	}
	session, err := generator.NewSession(opts, config.CacheSize)
	if err != nil {
		return nil, err
	}

	fp := utils.NewFileProcessor()
	return &Generator{
		config:        config,
		scanner:       NewDirectoryScannerWithPatterns(fp, config.Include, config.Exclude),
		fileProcessor: fp,
		session:       session,
		diagnostics:   diagnostics,
		reporter:      reporter,
	}, nil
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Session exposes the underlying session, mainly for cache statistics
func (g *Generator) Session() *generator.Session {
	return g.session
}

// Generate scans the configured directories, runs a pass and writes the
// generated files into the output directory
func (g *Generator) Generate(ctx context.Context) error {
	start := time.Now()
	g.summary = GenerationSummary{
		RunID:          uuid.NewString(),
		Strategy:       g.config.Strategy,
		DryRun:         g.config.DryRun,
		Verbose:        g.config.Verbose,
		GeneratedFiles: make([]string, 0),
	}
	defer func() { g.summary.Duration = time.Since(start) }()

	g.diagnostics.Verbose("Run ID: %s", g.summary.RunID)

	g.diagnostics.StartProgress("Scanning directories for C# sources")
	paths, err := g.scanner.ScanDirectories(g.config.Directories)
	if err != nil {
		g.diagnostics.EndProgress(false, "")
		return err
	}
	if len(paths) == 0 {
		g.diagnostics.EndProgress(false, "")
		return errors.New(errors.ConfigurationErrorCode, "no C# source files found in the specified directories").
			WithContext("directories", g.config.Directories).
			WithSuggestion("Ensure the directories contain .cs files").
			WithSuggestion("Use './...' to scan subdirectories recursively").
			WithSuggestion("Check the include and exclude patterns")
	}
	g.diagnostics.EndProgress(true, "")
	g.summary.SourceFiles = len(paths)

	g.diagnostics.Verbose("Found %d source files", len(paths))
	g.diagnostics.Indent()
	for _, p := range paths {
		g.diagnostics.Debug("%s", g.displayPath(p))
	}
	g.diagnostics.Unindent()

	sources, err := g.readSources(paths)
	if err != nil {
		return err
	}

	g.diagnostics.StartProgress("Generating implementations (" + g.config.Strategy + " strategy)")
	outcome, err := g.session.Generate(ctx, sources)
	if err != nil {
		g.diagnostics.EndProgress(false, "")
		return err
	}
	g.diagnostics.EndProgress(true, "")

	g.summary.Cached = outcome.Cached
	g.summary.Targets = outcome.Targets
	g.summary.Units = len(outcome.Units)
	g.summary.Unresolved = len(outcome.Unresolved)
	if outcome.ParseErrors != nil {
		g.summary.ParseErrors = len(outcome.ParseErrors.Errors)
	}

	g.reporter.ReportParseErrors(outcome.ParseErrors)
	if g.config.Verbose {
		g.reporter.ReportUnresolved(outcome.Unresolved)
	}

	return g.writeOutputs(outcome.Files())
}

// readSources loads file contents, keyed by the path shown to the user
func (g *Generator) readSources(paths []string) ([]generator.Source, error) {
	reader := g.fileProcessor.GetFileReader()
	sources := make([]generator.Source, 0, len(paths))
	for _, p := range paths {
		content, err := reader.ReadFile(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, generator.Source{Path: g.displayPath(p), Content: content})
	}
	return sources, nil
}

// writeOutputs writes every generated file and removes generated files that
// the pass no longer produces
func (g *Generator) writeOutputs(units []models.GenerationUnit) error {
	outDir, err := filepath.Abs(g.config.Output)
	if err != nil {
		return errors.WrapFileSystemError("resolve", g.config.Output, err)
	}

	verb := "Writing"
	if g.config.DryRun {
		verb = "Would write"
		g.diagnostics.Warn("Dry run: nothing is written to %s", g.config.Output)
	}

	produced := make(map[string]bool, len(units))
	for _, unit := range units {
		path := filepath.Join(outDir, unit.FileName)
		produced[path] = true
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, g.displayPath(path))

		if g.config.DryRun {
			g.diagnostics.Verbose("%s %s", verb, g.displayPath(path))
			continue
		}

		written, err := g.fileProcessor.WriteFileIfChanged(path, []byte(unit.Source))
		if err != nil {
			return err
		}
		if written {
			g.summary.FilesWritten++
			g.diagnostics.Verbose("%s %s", verb, g.displayPath(path))
		} else {
			g.summary.FilesUnchanged++
		}
	}

	return g.removeStale(outDir, produced)
}

// removeStale deletes generated files in the output directory that were not produced by this run
func (g *Generator) removeStale(outDir string, produced map[string]bool) error {
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		return nil
	}

	existing, err := g.fileProcessor.WalkFiles(outDir, utils.FileWalkOptions{
		Include:    []string{"*" + models.GeneratedFileSuffix},
		SkipErrors: true,
	})
	if err != nil {
		return err
	}

	for _, path := range existing {
		if produced[path] {
			continue
		}
		generated, err := g.fileProcessor.IsGeneratedFile(path)
		if err != nil {
			return err
		}
		if !generated {
			continue
		}
		if g.config.DryRun {
			g.diagnostics.Verbose("Would remove %s", g.displayPath(path))
		} else {
			if err := os.Remove(path); err != nil {
				return errors.WrapFileSystemError("remove", path, err)
			}
			g.fileProcessor.GetFileReader().InvalidateFile(path)
			g.diagnostics.Verbose("Removed %s", g.displayPath(path))
		}
		g.summary.FilesRemoved++
	}
	return nil
}

// displayPath returns path relative to the working directory when it lies below it
func (g *Generator) displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
