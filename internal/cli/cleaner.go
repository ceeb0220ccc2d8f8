package cli

import (
	"fmt"

	"github.com/toyz/autoimpl/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	scanner       *DirectoryScanner
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	fp := utils.NewFileProcessor()
	return &Cleaner{
		scanner:       NewDirectoryScannerWithPatterns(fp, utils.DefaultSourcePatterns(), utils.DefaultExcludePatterns()),
		fileProcessor: fp,
	}
}

// CleanGeneratedFiles removes every .g.cs file carrying the generated header
// below the specified directories and returns the removed paths. Directories
// are always cleaned recursively; missing ones are skipped.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	roots, err := c.scanner.ResolveRoots(directories)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(roots))
	for i, root := range roots {
		paths[i] = root.Path
	}

	removed, err := c.fileProcessor.CleanGenerated(paths)
	if err != nil {
		return removed, fmt.Errorf("failed to clean generated files: %w", err)
	}
	return removed, nil
}
