package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// generatedFileName is the file strut writes into each output package
const generatedFileName = "strut_gen.go"

// Cleaner handles cleaning up generated files
type Cleaner struct{}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// CleanGeneratedFiles removes all strut_gen.go files from the specified
// directories and returns the removed paths
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	var removedFiles []string

	for _, dir := range directories {
		if err := c.cleanDirectory(dir, &removedFiles); err != nil {
			return removedFiles, fmt.Errorf("failed to clean directory %s: %w", dir, err)
		}
	}

	return removedFiles, nil
}

// cleanDirectory cleans a single directory, handling Go-style "./..."
// patterns recursively
func (c *Cleaner) cleanDirectory(dir string, removedFiles *[]string) error {
	if strings.HasSuffix(dir, "/...") {
		baseDir := strings.TrimSuffix(dir, "/...")
		if baseDir == "" {
			baseDir = "."
		}
		return filepath.Walk(baseDir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				// Skip directories that can't be accessed.
				return nil
			}
			if info.IsDir() {
				if cleanErr := c.cleanSingleDirectory(path, removedFiles); cleanErr != nil {
					return cleanErr
				}
			}
			return nil
		})
	}

	return c.cleanSingleDirectory(dir, removedFiles)
}

func (c *Cleaner) cleanSingleDirectory(dir string, removedFiles *[]string) error {
	generatedFile := filepath.Join(dir, generatedFileName)

	if _, err := os.Stat(generatedFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to check file %s: %w", generatedFile, err)
	}

	if err := os.Remove(generatedFile); err != nil {
		return fmt.Errorf("failed to remove file %s: %w", generatedFile, err)
	}

	*removedFiles = append(*removedFiles, generatedFile)
	return nil
}
