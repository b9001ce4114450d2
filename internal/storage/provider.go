// Package storage defines the file-system abstraction documents are discovered and read through.
package storage

import "github.com/starford/doclinks/internal/models"

// Verify *FS satisfies Provider at compile time.
var _ Provider = (*FS)(nil)

// Provider is the interface for scan-root file operations.
type Provider interface {
	// Root returns the absolute, cleaned scan root.
	Root() string
	// List returns every markdown document under dir (relative to the root),
	// sorted by path, plus the subtrees that could not be walked.
	List(dir string) ([]models.DocumentMetadata, []models.DocumentError, error)
	// Read returns the raw bytes of the file at path (relative to the root).
	Read(path string) ([]byte, error)
	// Exists reports whether the absolute path exists, following symlinks.
	Exists(abs string) bool
	// IsDocument reports whether path has a markdown extension.
	IsDocument(path string) bool
	// Rel returns abs relative to the root in slash form, "" when outside it.
	Rel(abs string) string
}
