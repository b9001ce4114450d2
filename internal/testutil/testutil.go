// Package testutil provides shared test helpers for building markdown trees on disk.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/doclinks/internal/storage"
)

// WriteTree creates a temporary directory holding files (slash-separated
// relative path -> content) and returns its path.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		WriteFile(t, root, rel, content)
	}
	return root
}

// WriteFile writes content to rel under root, creating parent directories.
func WriteFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestRoot creates a temporary tree with a storage.Provider rooted at it.
func TestRoot(t *testing.T, files map[string]string) (string, storage.Provider) {
	t.Helper()
	root := WriteTree(t, files)
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return store.Root(), store
}
