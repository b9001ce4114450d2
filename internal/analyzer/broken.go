package analyzer

import (
	"cmp"
	"slices"
	"strings"

	"github.com/starford/doclinks/internal/models"
)

// DetectBroken returns the broken and unresolvable links ordered by
// document, line, then column. With verbose set each report carries the
// markdown it came from, plus the definition line for reference uses.
func DetectBroken(links []models.ResolvedLink, verbose bool) []models.BrokenLink {
	out := []models.BrokenLink{}
	for _, l := range links {
		if !l.Class.IsBroken() {
			continue
		}
		b := models.BrokenLink{
			Document: l.Source,
			Line:     l.Line,
			Column:   l.Column,
			Text:     l.Text,
			Target:   l.Effective,
			Kind:     l.Kind,
			Class:    l.Class,
			Reason:   l.Reason,
		}
		if verbose {
			b.Context = l.Raw
			if l.Definition != "" {
				b.Context += "\n" + l.Definition
			}
		}
		out = append(out, b)
	}
	slices.SortStableFunc(out, func(x, y models.BrokenLink) int {
		if c := strings.Compare(x.Document, y.Document); c != 0 {
			return c
		}
		if c := cmp.Compare(x.Line, y.Line); c != 0 {
			return c
		}
		return cmp.Compare(x.Column, y.Column)
	})
	return out
}
