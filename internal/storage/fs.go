package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/starford/doclinks/internal/apperr"
	"github.com/starford/doclinks/internal/models"
)

// DefaultExtensions are the file extensions treated as markdown documents.
var DefaultExtensions = []string{".md", ".markdown"}

// DefaultIgnore lists directory names that are never descended into.
var DefaultIgnore = []string{".git", "node_modules", "vendor"}

// FS implements Provider backed by the local file system.
type FS struct {
	root       string // absolute path to the scan root
	extensions []string
	ignore     []string
}

// Option configures an FS.
type Option func(*FS)

// WithExtensions overrides the markdown extensions. Values are matched
// case-insensitively and may be given with or without the leading dot.
func WithExtensions(exts ...string) Option {
	return func(f *FS) {
		if len(exts) == 0 {
			return
		}
		f.extensions = f.extensions[:0]
		for _, e := range exts {
			e = strings.ToLower(strings.TrimSpace(e))
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			f.extensions = append(f.extensions, e)
		}
	}
}

// WithIgnore overrides the ignored directory names.
func WithIgnore(names ...string) Option {
	return func(f *FS) {
		f.ignore = names
	}
}

// NewFS creates a new FS provider rooted at the given directory.
// A missing root or one that is not a directory is a configuration error.
func NewFS(root string, opts ...Option) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve root %q: %v", apperr.ErrConfiguration, root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: root does not exist: %s", apperr.ErrConfiguration, abs)
		}
		return nil, fmt.Errorf("%w: stat root: %v", apperr.ErrConfiguration, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: root is not a directory: %s", apperr.ErrConfiguration, abs)
	}
	f := &FS{
		root:       abs,
		extensions: slices.Clone(DefaultExtensions),
		ignore:     slices.Clone(DefaultIgnore),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Root returns the absolute scan root.
func (f *FS) Root() string {
	return f.root
}

// safePath resolves a relative path against the root and rejects
// any result that escapes it (directory traversal).
func (f *FS) safePath(rel string) (string, error) {
	if rel == "" {
		return f.root, nil
	}
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s", rel)
	}
	abs := filepath.Join(f.root, cleaned)
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return "", fmt.Errorf("storage: path escapes root: %s", rel)
	}
	return abs, nil
}

// List walks dir (relative to root) and returns metadata for every markdown
// file. Subdirectories that cannot be read are skipped and reported.
func (f *FS) List(dir string) ([]models.DocumentMetadata, []models.DocumentError, error) {
	base, err := f.safePath(dir)
	if err != nil {
		return nil, nil, err
	}
	var (
		out     []models.DocumentMetadata
		skipped []models.DocumentError
	)
	err = filepath.WalkDir(base, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == base {
				return walkErr
			}
			skipped = append(skipped, models.DocumentError{
				Path:  f.rel(p),
				Error: fmt.Sprintf("%v: %v", apperr.ErrDocumentRead, walkErr),
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != base && slices.Contains(f.ignore, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !f.IsDocument(d.Name()) {
			return nil
		}
		var size int64
		if info, err := d.Info(); err == nil {
			size = info.Size()
		}
		out = append(out, models.DocumentMetadata{
			Path:    f.rel(p),
			AbsPath: p,
			Size:    size,
		})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("storage: list: %w", err)
	}
	slices.SortFunc(out, func(a, b models.DocumentMetadata) int {
		return strings.Compare(a.Path, b.Path)
	})
	return out, skipped, nil
}

// Read returns the raw bytes of a file under the root.
func (f *FS) Read(path string) ([]byte, error) {
	abs, err := f.safePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return data, nil
}

// Exists reports whether abs exists. Symlinks are followed.
func (f *FS) Exists(abs string) bool {
	_, err := os.Stat(abs)
	return err == nil
}

// IsDocument reports whether path carries one of the markdown extensions.
func (f *FS) IsDocument(path string) bool {
	return slices.Contains(f.extensions, strings.ToLower(filepath.Ext(path)))
}

// Rel returns abs relative to the root in slash form, or "" when abs lies
// outside the root.
func (f *FS) Rel(abs string) string {
	rel, err := filepath.Rel(f.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return ""
	}
	return filepath.ToSlash(rel)
}

func (f *FS) rel(p string) string {
	if r := f.Rel(p); r != "" {
		return r
	}
	return filepath.ToSlash(p)
}
