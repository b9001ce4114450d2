package analyzer

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/starford/doclinks/internal/apperr"
	"github.com/starford/doclinks/internal/models"
	"github.com/starford/doclinks/internal/parser"
)

var (
	utf8BOM            = []byte("\xef\xbb\xbf")
	errInvalidEncoding = errors.New("invalid UTF-8 encoding")
)

type docResult struct {
	doc   models.Document
	links []models.ResolvedLink
	err   *models.DocumentError
}

// analyzeDocument reads, extracts, and resolves one document. It touches no
// state shared with other documents.
func (a *Analyzer) analyzeDocument(meta models.DocumentMetadata) docResult {
	data, err := a.store.Read(meta.Path)
	if err != nil {
		return a.readFailure(meta.Path, err)
	}
	if !utf8.Valid(data) {
		return a.readFailure(meta.Path, errInvalidEncoding)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	parsed := parser.Parse(meta.Path, data)
	links := make([]models.ResolvedLink, 0, len(parsed.Links))
	for _, l := range parsed.Links {
		if l.Kind == models.LinkKindReferenceDefinition {
			continue
		}
		links = append(links, a.resolveLink(l, parsed.Definitions))
	}

	a.logger.Debug("analyzed document",
		slog.String("path", meta.Path),
		slog.Int("links", len(links)))

	return docResult{
		doc: models.Document{
			Path:    meta.Path,
			AbsPath: meta.AbsPath,
			Title:   parsed.Title,
			Links:   parsed.Links,
		},
		links: links,
	}
}

// resolveLink classifies l. Reference uses are first bound to a definition
// from the same document.
func (a *Analyzer) resolveLink(l models.Link, refs parser.References) models.ResolvedLink {
	rl := models.ResolvedLink{Link: l, Effective: l.Target}

	if l.Kind == models.LinkKindReferenceUse {
		def, ok := refs.Lookup(l.Target)
		if !ok {
			rl.Class = models.Unresolvable
			rl.Reason = fmt.Sprintf("No reference definition for '%s'", l.Target)
			return rl
		}
		rl.Effective = def.Target
		rl.Definition = def.Raw
	}

	res := a.resolver.Resolve(rl.Effective, l.Source)
	rl.Class = res.Class
	rl.Path = res.Path
	rl.RelPath = res.RelPath
	rl.IsDocument = res.IsDocument
	rl.Reason = res.Reason
	return rl
}

func (a *Analyzer) readFailure(path string, err error) docResult {
	a.logger.Warn("document skipped",
		slog.String("path", path),
		slog.String("error", err.Error()))
	return docResult{err: &models.DocumentError{
		Path:  path,
		Error: fmt.Errorf("%w: %w", apperr.ErrDocumentRead, err).Error(),
	}}
}
