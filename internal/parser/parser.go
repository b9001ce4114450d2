// Package parser extracts links, reference definitions, and titles from Markdown content.
//
// Markdown is scanned as plain text, line by line. Code spans and fenced
// code blocks are not special: a link-shaped sequence inside them is
// reported like any other.
package parser

import (
	"slices"

	"github.com/starford/doclinks/internal/models"
)

// Result holds the output of parsing one Markdown document.
type Result struct {
	Frontmatter map[string]any
	Title       string
	Links       []models.Link
	Definitions References
}

// Parse extracts every link record, the document-scoped reference
// definitions, and the title from content. source is the document path
// stamped on each link.
func Parse(source string, content []byte) *Result {
	text := string(content)
	fm, body := splitFrontmatter(content)

	return &Result{
		Frontmatter: fm,
		Title:       deriveTitle(fm, body),
		Links:       slices.Collect(Links(source, text)),
		Definitions: Definitions(text),
	}
}
