// Package report renders analysis results as styled text or JSON.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/starford/doclinks/internal/models"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Renderer writes one report per call to w.
type Renderer struct {
	w       io.Writer
	format  string
	theme   Theme
	verbose bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFormat selects text or JSON output.
func WithFormat(format string) Option {
	return func(r *Renderer) {
		r.format = format
	}
}

// WithColor enables ANSI styling of text output.
func WithColor(color bool) Option {
	return func(r *Renderer) {
		r.theme = NewTheme(r.w, color)
	}
}

// WithVerbose includes link context in the broken-link report.
func WithVerbose(verbose bool) Option {
	return func(r *Renderer) {
		r.verbose = verbose
	}
}

// New creates a Renderer writing to w. Text without color is the default.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{w: w, format: FormatText}
	r.theme = NewTheme(w, false)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type checkReport struct {
	BrokenCount int                    `json:"broken_count"`
	Broken      []models.BrokenLink    `json:"broken_links"`
	Errors      []models.DocumentError `json:"errors,omitempty"`
}

// Check writes the broken-link report.
func (r *Renderer) Check(res *models.AnalysisResult) error {
	if r.format == FormatJSON {
		return writeJSON(r.w, checkReport{
			BrokenCount: len(res.Broken),
			Broken:      res.Broken,
			Errors:      res.Errors,
		})
	}

	var b strings.Builder
	r.writeErrors(&b, res.Errors)
	if len(res.Broken) == 0 {
		fmt.Fprintf(&b, "%s No broken links found!\n", r.theme.OK.Render("✓"))
		return r.flush(&b)
	}

	fmt.Fprintf(&b, "%s Found %d broken links:\n", r.theme.Error.Render("✗"), len(res.Broken))
	for _, bl := range res.Broken {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s:%d\n", r.theme.Label.Render("File:"), r.theme.Path.Render(bl.Document), bl.Line)
		fmt.Fprintf(&b, "  %s %s\n", r.theme.Label.Render("Link:"), bl.Text)
		fmt.Fprintf(&b, "  %s %s\n", r.theme.Label.Render("Target:"), bl.Target)
		fmt.Fprintf(&b, "  %s %s\n", r.theme.Error.Render("Reason:"), bl.Reason)
		if r.verbose && bl.Context != "" {
			for i, line := range strings.Split(bl.Context, "\n") {
				label := "Markdown:"
				if i > 0 {
					label = "Defined:"
				}
				fmt.Fprintf(&b, "  %s %s\n", r.theme.Muted.Render(label), line)
			}
		}
	}
	return r.flush(&b)
}

// Stats writes the aggregate and per-document statistics.
func (r *Renderer) Stats(res *models.AnalysisResult) error {
	st := res.Stats
	if r.format == FormatJSON {
		return writeJSON(r.w, st)
	}

	var b strings.Builder
	r.writeErrors(&b, res.Errors)
	fmt.Fprintf(&b, "%s\n\n", r.theme.Title.Render("Document Link Statistics"))
	fmt.Fprintf(&b, "%s %d\n", r.theme.Label.Render("Total Documents:"), st.TotalDocuments)
	fmt.Fprintf(&b, "%s %d\n", r.theme.Label.Render("Total Links:"), st.TotalLinks)
	fmt.Fprintf(&b, "%s %d (%d%%)\n", r.theme.Label.Render("Internal Links:"), st.InternalLinks, percent(st.InternalLinks, st.TotalLinks))
	fmt.Fprintf(&b, "%s %d (%d%%)\n", r.theme.Label.Render("External Links:"), st.ExternalLinks, percent(st.ExternalLinks, st.TotalLinks))
	fmt.Fprintf(&b, "%s %d\n", r.countStyle(st.BrokenLinks, r.theme.Error).Render("Broken Links:"), st.BrokenLinks)
	if st.UnresolvableLinks > 0 {
		fmt.Fprintf(&b, "%s %d\n", r.theme.Error.Render("Unresolvable References:"), st.UnresolvableLinks)
	}
	fmt.Fprintf(&b, "%s %d\n", r.countStyle(st.OrphanedDocuments, r.theme.Warning).Render("Orphaned Documents:"), st.OrphanedDocuments)

	if len(st.Documents) > 0 {
		titles := make(map[string]string, len(res.Documents))
		for _, d := range res.Documents {
			titles[d.Path] = d.Title
		}

		paths := make([]string, 0, len(st.Documents))
		for p := range st.Documents {
			paths = append(paths, p)
		}
		slices.Sort(paths)

		fmt.Fprintf(&b, "\n%s\n", r.theme.Title.Render("Per-Document Statistics:"))
		for _, p := range paths {
			ds := st.Documents[p]
			fmt.Fprintf(&b, "  %s %d links (%d internal, %d external",
				r.theme.Path.Render(p), ds.TotalLinks, ds.InternalLinks, ds.ExternalLinks)
			if ds.BrokenLinks > 0 {
				fmt.Fprintf(&b, ", %d broken", ds.BrokenLinks)
			}
			b.WriteString(")")
			if t := titles[p]; t != "" {
				fmt.Fprintf(&b, " %s", r.theme.Muted.Render(t))
			}
			b.WriteString("\n")
		}
	}
	return r.flush(&b)
}

type orphanReport struct {
	EntryPoint  string   `json:"entry_point,omitempty"`
	Orphans     []string `json:"orphaned_documents"`
	Unreachable []string `json:"unreachable_documents,omitempty"`
}

// Orphans writes the orphaned documents and, when an entry point is set,
// the documents unreachable from it.
func (r *Renderer) Orphans(res *models.AnalysisResult) error {
	if r.format == FormatJSON {
		return writeJSON(r.w, orphanReport{
			EntryPoint:  res.EntryPoint,
			Orphans:     res.Orphans,
			Unreachable: res.Unreachable,
		})
	}

	var b strings.Builder
	r.writeErrors(&b, res.Errors)
	if len(res.Orphans) == 0 {
		fmt.Fprintf(&b, "%s No orphaned documents found!\n", r.theme.OK.Render("✓"))
	} else {
		fmt.Fprintf(&b, "%s Found %d orphaned documents:\n", r.theme.Warning.Render("⚠"), len(res.Orphans))
		for _, p := range res.Orphans {
			fmt.Fprintf(&b, "  %s\n", r.theme.Error.Render(p))
		}
	}

	if res.EntryPoint != "" && len(res.Unreachable) > 0 {
		fmt.Fprintf(&b, "\n%s %d documents unreachable from %s:\n",
			r.theme.Warning.Render("⚠"), len(res.Unreachable), r.theme.Path.Render(res.EntryPoint))
		for _, p := range res.Unreachable {
			fmt.Fprintf(&b, "  %s\n", p)
		}
	}
	return r.flush(&b)
}

type graphReport struct {
	Documents []string      `json:"documents"`
	Edges     []models.Edge `json:"edges"`
}

// Graph writes the document link graph as one edge per line.
func (r *Renderer) Graph(res *models.AnalysisResult) error {
	if r.format == FormatJSON {
		docs := make([]string, 0, len(res.Documents))
		for _, d := range res.Documents {
			docs = append(docs, d.Path)
		}
		return writeJSON(r.w, graphReport{Documents: docs, Edges: res.Edges})
	}

	var b strings.Builder
	for _, e := range res.Edges {
		fmt.Fprintf(&b, "%s %s %s\n", r.theme.Path.Render(e.Source), r.theme.Muted.Render("->"), r.theme.Path.Render(e.Target))
	}
	return r.flush(&b)
}

func (r *Renderer) writeErrors(b *strings.Builder, errs []models.DocumentError) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(b, "%s Skipped %d unreadable documents:\n", r.theme.Warning.Render("⚠"), len(errs))
	for _, e := range errs {
		fmt.Fprintf(b, "  %s: %s\n", r.theme.Path.Render(e.Path), e.Error)
	}
	b.WriteString("\n")
}

func (r *Renderer) countStyle(n int, bad lipgloss.Style) lipgloss.Style {
	if n > 0 {
		return bad
	}
	return r.theme.OK
}

func (r *Renderer) flush(b *strings.Builder) error {
	_, err := io.WriteString(r.w, b.String())
	return err
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return part * 100 / total
}
