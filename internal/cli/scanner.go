package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/autoimpl/internal/errors"
	"github.com/toyz/autoimpl/internal/utils"
)

// recursiveSuffix marks a directory argument that is scanned with all its subdirectories
const recursiveSuffix = "/..."

// ScanRoot is a resolved directory argument
type ScanRoot struct {
	Path      string // absolute path
	Recursive bool
}

// DirectoryScanner finds C# sources below directory arguments
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
	include       []string
	exclude       []string
}

// NewDirectoryScanner creates a scanner with the default source and exclude patterns
func NewDirectoryScanner() *DirectoryScanner {
	return NewDirectoryScannerWithPatterns(utils.NewFileProcessor(), utils.DefaultSourcePatterns(), utils.DefaultExcludePatterns())
}

// NewDirectoryScannerWithPatterns creates a scanner with custom include and exclude patterns
func NewDirectoryScannerWithPatterns(fp *utils.FileProcessor, include, exclude []string) *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: fp,
		include:       include,
		exclude:       exclude,
	}
}

// ResolveRoots turns directory arguments into absolute roots.
// Supports Go-style patterns like "./..." for recursive scanning.
func (s *DirectoryScanner) ResolveRoots(rootDirs []string) ([]ScanRoot, error) {
	roots := make([]ScanRoot, 0, len(rootDirs))
	seen := make(map[ScanRoot]bool)

	for _, rootDir := range rootDirs {
		dir := filepath.ToSlash(rootDir)
		recursive := strings.HasSuffix(dir, recursiveSuffix) || dir == "..."
		if recursive {
			dir = strings.TrimSuffix(strings.TrimSuffix(dir, "..."), "/")
			if dir == "" {
				dir = "."
			}
		}

		cleanPath, err := filepath.Abs(filepath.FromSlash(dir))
		if err != nil {
			return nil, errors.WrapFileSystemError("resolve", rootDir, err)
		}

		root := ScanRoot{Path: cleanPath, Recursive: recursive}
		if !seen[root] {
			seen[root] = true
			roots = append(roots, root)
		}
	}

	return roots, nil
}

// ScanDirectories returns every source file selected below the directory
// arguments, sorted and without duplicates. A plain directory is scanned
// without its subdirectories; a file argument is taken as is.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	roots, err := s.ResolveRoots(rootDirs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	for _, root := range roots {
		found, err := s.scanRoot(root)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func (s *DirectoryScanner) scanRoot(root ScanRoot) ([]string, error) {
	info, err := os.Stat(root.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileSystemError("scan", root.Path, "directory does not exist").
				WithSuggestion("Check that the directory path is correct")
		}
		return nil, errors.WrapFileSystemError("scan", root.Path, err)
	}

	if !info.IsDir() {
		return []string{root.Path}, nil
	}

	filter := utils.DefaultDirectoryFilter()
	if !root.Recursive {
		filter = func(string, fs.DirEntry) bool { return false }
	}

	files, err := s.fileProcessor.WalkFiles(root.Path, utils.FileWalkOptions{
		Include:         s.include,
		Exclude:         s.exclude,
		DirectoryFilter: filter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root.Path, err)
	}
	return files, nil
}
