// Package resolver classifies link targets and maps internal ones onto the file system.
package resolver

import (
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/starford/doclinks/internal/models"
	"github.com/starford/doclinks/internal/storage"
)

// DefaultSchemes are the URL schemes classified as external.
var DefaultSchemes = []string{
	"http", "https", "mailto", "ftp", "ftps", "tel", "irc", "ssh", "git", "news", "data",
}

// Resolution is the outcome of resolving one target.
type Resolution struct {
	Class models.Classification
	// Path is the normalized absolute path for internal targets.
	Path string
	// RelPath is Path relative to the scan root, "" when outside it.
	RelPath    string
	IsDocument bool
	Reason     string
}

// Resolver resolves link targets against a scan root. It holds no mutable
// state and is safe for concurrent use.
type Resolver struct {
	store   storage.Provider
	schemes []string
}

// New creates a Resolver over store. A nil or empty schemes list selects
// DefaultSchemes.
func New(store storage.Provider, schemes []string) *Resolver {
	if len(schemes) == 0 {
		schemes = DefaultSchemes
	}
	norm := make([]string, 0, len(schemes))
	for _, s := range schemes {
		s = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), ":"))
		if s != "" {
			norm = append(norm, s)
		}
	}
	return &Resolver{store: store, schemes: norm}
}

// Resolve classifies target as written in the document at source (a path
// relative to the scan root).
func (r *Resolver) Resolve(target, source string) Resolution {
	p := StripSuffixes(target)

	if r.IsExternal(p) {
		return Resolution{Class: models.External}
	}
	if p == "" {
		return Resolution{
			Class:  models.InternalBroken,
			Reason: fmt.Sprintf("Empty link path in target '%s'", target),
		}
	}

	abs := r.join(p, source)
	if !r.store.Exists(abs) && strings.Contains(p, "%") {
		if unescaped, err := url.PathUnescape(p); err == nil {
			if alt := r.join(unescaped, source); r.store.Exists(alt) {
				abs = alt
			}
		}
	}

	res := Resolution{
		Path:       abs,
		RelPath:    r.store.Rel(abs),
		IsDocument: r.store.IsDocument(abs),
	}
	if r.store.Exists(abs) {
		res.Class = models.InternalValid
		return res
	}
	res.Class = models.InternalBroken
	res.Reason = fmt.Sprintf("File not found: %s", abs)
	return res
}

// join resolves p against the root (leading '/') or against the directory
// of source, then collapses '.' and '..' lexically.
func (r *Resolver) join(p, source string) string {
	p = filepath.FromSlash(p)
	if strings.HasPrefix(p, string(filepath.Separator)) {
		return filepath.Join(r.store.Root(), p)
	}
	dir := filepath.Dir(filepath.Join(r.store.Root(), filepath.FromSlash(source)))
	return filepath.Join(dir, p)
}

// IsExternal reports whether p starts with a recognized URL scheme or is
// protocol-relative ("//host/...").
func (r *Resolver) IsExternal(p string) bool {
	if strings.HasPrefix(p, "//") {
		return true
	}
	scheme, ok := schemeOf(p)
	return ok && slices.Contains(r.schemes, scheme)
}

// schemeOf extracts the lowercased URL scheme of p, if p has one.
func schemeOf(p string) (string, bool) {
	colon := strings.IndexByte(p, ':')
	if colon < 1 {
		return "", false
	}
	for i := 0; i < colon; i++ {
		c := p[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return "", false
		}
	}
	return strings.ToLower(p[:colon]), true
}

// StripSuffixes removes a trailing fragment and then a trailing query.
func StripSuffixes(target string) string {
	p := strings.TrimSpace(target)
	if i := strings.IndexByte(p, '#'); i >= 0 {
		p = p[:i]
	}
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}
