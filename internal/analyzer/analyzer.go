// Package analyzer runs the link analysis pipeline: discovery, extraction,
// resolution, graph construction, and detection of broken links and orphans.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/starford/doclinks/internal/apperr"
	"github.com/starford/doclinks/internal/graph"
	"github.com/starford/doclinks/internal/models"
	"github.com/starford/doclinks/internal/resolver"
	"github.com/starford/doclinks/internal/storage"
)

// Options controls a single analysis run.
type Options struct {
	// Verbose attaches the raw markdown of each broken link to its report.
	Verbose bool
	// EntryPoint is a document path relative to the root (or absolute)
	// that is never reported as an orphan.
	EntryPoint string
	// Workers bounds per-document parallelism. Zero means runtime.NumCPU().
	Workers int
	// Extensions overrides the markdown file extensions.
	Extensions []string
	// Ignore overrides the directory names skipped during discovery.
	Ignore []string
	// ExternalSchemes overrides the URL schemes classified as external.
	ExternalSchemes []string
	Logger          *slog.Logger
}

// Analyzer runs the pipeline over one storage provider.
type Analyzer struct {
	store    storage.Provider
	resolver *resolver.Resolver
	logger   *slog.Logger
	workers  int
	verbose  bool
}

// New creates an Analyzer over store.
func New(store storage.Provider, opts Options) *Analyzer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Analyzer{
		store:    store,
		resolver: resolver.New(store, opts.ExternalSchemes),
		logger:   logger,
		workers:  workers,
		verbose:  opts.Verbose,
	}
}

// Analyze scans root and returns the complete result. A missing or
// non-directory root, or a missing entry point, fails with
// apperr.ErrConfiguration before any document is read.
func Analyze(ctx context.Context, root string, opts Options) (*models.AnalysisResult, error) {
	var fsOpts []storage.Option
	if len(opts.Extensions) > 0 {
		fsOpts = append(fsOpts, storage.WithExtensions(opts.Extensions...))
	}
	if opts.Ignore != nil {
		fsOpts = append(fsOpts, storage.WithIgnore(opts.Ignore...))
	}
	store, err := storage.NewFS(root, fsOpts...)
	if err != nil {
		return nil, err
	}
	return New(store, opts).Run(ctx, opts.EntryPoint)
}

// Run analyzes every document under the provider's root.
func (a *Analyzer) Run(ctx context.Context, entryPoint string) (*models.AnalysisResult, error) {
	entry, err := a.entryPoint(entryPoint)
	if err != nil {
		return nil, err
	}

	metas, skipped, err := a.store.List("")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrConfiguration, err)
	}
	a.logger.Debug("discovered documents",
		slog.String("root", a.store.Root()),
		slog.Int("count", len(metas)))

	results := make([]docResult, len(metas))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, m := range metas {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = a.analyzeDocument(m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	res := a.merge(results, skipped, entry)
	a.logger.Info("analysis complete",
		slog.Int("documents", res.Stats.TotalDocuments),
		slog.Int("links", res.Stats.TotalLinks),
		slog.Int("broken", res.Stats.BrokenLinks),
		slog.Int("orphans", res.Stats.OrphanedDocuments))
	return res, nil
}

// merge is the single-threaded aggregation step over per-document results.
func (a *Analyzer) merge(results []docResult, skipped []models.DocumentError, entry string) *models.AnalysisResult {
	res := &models.AnalysisResult{
		Root:       a.store.Root(),
		EntryPoint: entry,
		Documents:  []models.Document{},
		Links:      []models.ResolvedLink{},
		Errors:     slices.Clone(skipped),
	}
	var paths []string
	for _, r := range results {
		if r.err != nil {
			res.Errors = append(res.Errors, *r.err)
			continue
		}
		res.Documents = append(res.Documents, r.doc)
		res.Links = append(res.Links, r.links...)
		paths = append(paths, r.doc.Path)
	}
	slices.SortFunc(res.Errors, func(x, y models.DocumentError) int {
		return strings.Compare(x.Path, y.Path)
	})

	g := graph.Build(paths, res.Links)
	res.Broken = DetectBroken(res.Links, a.verbose)
	res.Orphans = nonNil(g.Orphans(paths, entry))
	if entry != "" {
		res.Unreachable = g.Unreachable(paths, entry)
	}
	res.Edges = nonNil(g.Edges())
	res.Stats = ComputeStats(res.Documents, res.Links, res.Orphans)
	return res
}

// entryPoint validates the configured entry point and returns it relative
// to the root in slash form.
func (a *Analyzer) entryPoint(ep string) (string, error) {
	ep = strings.TrimSpace(ep)
	if ep == "" {
		return "", nil
	}
	root := a.store.Root()
	abs := ep
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, filepath.FromSlash(ep))
	}
	rel := a.store.Rel(filepath.Clean(abs))
	if rel == "" || rel == "." {
		return "", fmt.Errorf("%w: entry point %q is not a file inside %s", apperr.ErrConfiguration, ep, root)
	}
	if !a.store.Exists(abs) {
		return "", fmt.Errorf("%w: entry point not found: %s", apperr.ErrConfiguration, abs)
	}
	return path.Clean(rel), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
