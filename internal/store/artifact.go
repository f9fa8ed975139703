// Package store persists discovery artifacts: rendered documents on
// the filesystem and user inputs in a SQLite history database.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ArtifactStore writes rendered discovery documents to a directory.
type ArtifactStore struct {
	dir string
}

// NewArtifactStore creates a store rooted at dir. The directory is
// created on first write.
func NewArtifactStore(dir string) *ArtifactStore {
	if dir == "" {
		dir = "."
	}
	return &ArtifactStore{dir: dir}
}

// SanitizeLocation maps a location string to a filesystem-safe token:
// every non-alphanumeric rune becomes an underscore.
func SanitizeLocation(location string) string {
	return unsafeChars.ReplaceAllString(location, "_")
}

// SaveTable persists the text table for a location and returns the
// file path.
func (s *ArtifactStore) SaveTable(location, table string) (string, error) {
	return s.save(fmt.Sprintf("agri_vendors_%s.txt", SanitizeLocation(location)), []byte(table))
}

// SavePDF persists the PDF report for a location and returns the
// file path.
func (s *ArtifactStore) SavePDF(location string, pdf []byte) (string, error) {
	return s.save(fmt.Sprintf("agri_vendors_%s.pdf", SanitizeLocation(location)), pdf)
}

func (s *ArtifactStore) save(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}
