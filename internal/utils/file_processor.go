package utils

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/toyz/autoimpl/internal/errors"
)

// GeneratedHeader is the first line of every file the tool writes
const GeneratedHeader = "// <auto-generated/>"

// FileProcessor provides utilities for common file processing operations
type FileProcessor struct {
	fileReader *FileReader
}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{
		fileReader: NewFileReader(),
	}
}

// NewFileProcessorWithReader creates a file processor with an existing FileReader
func NewFileProcessorWithReader(reader *FileReader) *FileProcessor {
	return &FileProcessor{
		fileReader: reader,
	}
}

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info fs.DirEntry) bool

// FileWalkOptions configures file walking behavior. Patterns use doublestar
// syntax and match slash-separated paths relative to the walk root.
type FileWalkOptions struct {
	Include         []string
	Exclude         []string
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
}

// DefaultSourcePatterns selects C# sources
func DefaultSourcePatterns() []string {
	return []string{"**/*.cs"}
}

// DefaultExcludePatterns skips generated files and build output
func DefaultExcludePatterns() []string {
	return []string{"**/*.g.cs", "**/bin/**", "**/obj/**"}
}

// DefaultDirectoryFilter skips common directories that shouldn't contain source code
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"node_modules": true,
		"bin":          true,
		"obj":          true,
		"packages":     true,
		"TestResults":  true,
	}

	return func(path string, info fs.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}
		return !skipDirs[name]
	}
}

// ValidatePatterns reports the first malformed pattern
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return errors.ConfigurationError("pattern", "invalid glob pattern '"+p+"'")
		}
	}
	return nil
}

// WalkFiles walks a directory tree and returns the files selected by the
// include and exclude patterns, sorted by path
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	if err := ValidatePatterns(append(append([]string{}, options.Include...), options.Exclude...)); err != nil {
		return nil, err
	}

	var matchedFiles []string
	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return errors.WrapFileSystemError("walk", path, err)
		}

		if entry.IsDir() {
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return errors.WrapFileSystemError("resolve", path, err)
		}
		rel = filepath.ToSlash(rel)
		if matchAny(options.Include, rel) && !matchAny(options.Exclude, rel) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})

	sort.Strings(matchedFiles)
	return matchedFiles, err
}

// IsGeneratedFile reports whether a file starts with the generated header
func (fp *FileProcessor) IsGeneratedFile(path string) (bool, error) {
	content, err := fp.fileReader.ReadFile(path)
	if err != nil {
		return false, err
	}
	return hasGeneratedHeader(content), nil
}

// CleanGenerated removes generated .g.cs files below the given directories.
// Files without the generated header are left alone.
func (fp *FileProcessor) CleanGenerated(baseDirs []string) ([]string, error) {
	var removedFiles []string

	for _, baseDir := range baseDirs {
		files, err := fp.WalkFiles(baseDir, FileWalkOptions{
			Include:    []string{"**/*.g.cs"},
			SkipErrors: true,
		})
		if err != nil {
			return removedFiles, err
		}

		for _, file := range files {
			generated, err := fp.IsGeneratedFile(file)
			if err != nil {
				return removedFiles, err
			}
			if !generated {
				continue
			}
			if err := os.Remove(file); err != nil {
				return removedFiles, errors.WrapFileSystemError("remove", file, err)
			}
			fp.fileReader.InvalidateFile(file)
			removedFiles = append(removedFiles, file)
		}
	}

	return removedFiles, nil
}

// WriteFileIfChanged writes content unless the file already holds it.
// It reports whether the file was written.
func (fp *FileProcessor) WriteFileIfChanged(path string, content []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, errors.WrapFileSystemError("create directory for", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, errors.WrapFileSystemError("write", path, err)
	}
	fp.fileReader.InvalidateFile(path)
	return true, nil
}

// GetFileReader returns the underlying FileReader for advanced operations
func (fp *FileProcessor) GetFileReader() *FileReader {
	return fp.fileReader
}

func matchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}

func hasGeneratedHeader(content []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	if !scanner.Scan() {
		return false
	}
	return strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff")) == GeneratedHeader
}
