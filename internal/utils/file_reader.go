package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileReader provides file reading with modification-time-validated caching,
// so repeated reads of the same manifest or go.mod during one run hit disk
// once
type FileReader struct {
	cache map[string]cachedFile
}

type cachedFile struct {
	content string
	modTime time.Time
}

// NewFileReader creates a new FileReader instance
func NewFileReader() *FileReader {
	return &FileReader{cache: make(map[string]cachedFile)}
}

// ReadFile reads a file and returns its contents as a string with caching
func (fr *FileReader) ReadFile(filePath string) (string, error) {
	cleanPath := filepath.Clean(filePath)

	info, err := os.Stat(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to stat file %s: %w", filepath.Base(cleanPath), err)
	}

	if cached, ok := fr.cache[cleanPath]; ok && cached.modTime.Equal(info.ModTime()) {
		return cached.content, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filepath.Base(cleanPath), err)
	}

	fr.cache[cleanPath] = cachedFile{content: string(content), modTime: info.ModTime()}
	return string(content), nil
}

// ClearCache clears all cached files
func (fr *FileReader) ClearCache() {
	fr.cache = make(map[string]cachedFile)
}
