// Package graph builds the directed document graph and answers orphan and
// reachability queries over it.
package graph

import (
	"slices"
	"strings"

	"github.com/starford/doclinks/internal/models"
)

// Graph maps each document to the set of documents it links to.
type Graph struct {
	nodes map[string]struct{}
	out   map[string]map[string]struct{}
	in    map[string]map[string]struct{}
}

// New creates a graph whose node set is documents. Nodes can still be
// added later by edges pointing outside the scanned set.
func New(documents []string) *Graph {
	g := &Graph{
		nodes: make(map[string]struct{}, len(documents)),
		out:   make(map[string]map[string]struct{}),
		in:    make(map[string]map[string]struct{}),
	}
	for _, d := range documents {
		g.nodes[d] = struct{}{}
	}
	return g
}

// Build creates the graph for documents from resolved links. Only valid
// internal links whose target is a markdown document inside the root
// produce edges.
func Build(documents []string, links []models.ResolvedLink) *Graph {
	g := New(documents)
	for _, l := range links {
		if l.Class != models.InternalValid || !l.IsDocument || l.RelPath == "" {
			continue
		}
		g.AddEdge(l.Source, l.RelPath)
	}
	return g
}

// AddEdge records a link from one document to another. Duplicates collapse.
func (g *Graph) AddEdge(from, to string) {
	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}
	if g.out[from] == nil {
		g.out[from] = make(map[string]struct{})
	}
	g.out[from][to] = struct{}{}
	if g.in[to] == nil {
		g.in[to] = make(map[string]struct{})
	}
	g.in[to][from] = struct{}{}
}

// Targets returns the documents from links to, sorted.
func (g *Graph) Targets(from string) []string {
	return sortedKeys(g.out[from])
}

// Backlinks returns the documents linking to target, sorted. Self-links are
// included.
func (g *Graph) Backlinks(target string) []string {
	return sortedKeys(g.in[target])
}

// Referenced returns the set of documents with at least one incoming edge
// from a different document.
func (g *Graph) Referenced() map[string]struct{} {
	ref := make(map[string]struct{})
	for to, sources := range g.in {
		for from := range sources {
			if from != to {
				ref[to] = struct{}{}
				break
			}
		}
	}
	return ref
}

// Orphans returns the documents among all that no other document links to,
// sorted by path. entry, when non-empty, is never an orphan.
func (g *Graph) Orphans(all []string, entry string) []string {
	ref := g.Referenced()
	var out []string
	for _, d := range all {
		if d == entry {
			continue
		}
		if _, ok := ref[d]; !ok {
			out = append(out, d)
		}
	}
	slices.Sort(out)
	return out
}

// Reachable returns every node reachable from start by following edges,
// start included, sorted.
func (g *Graph) Reachable(start string) []string {
	seen := map[string]struct{}{start: {}}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range g.out[cur] {
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return sortedKeys(seen)
}

// Unreachable returns the documents among all that cannot be reached from
// entry, sorted.
func (g *Graph) Unreachable(all []string, entry string) []string {
	reach := make(map[string]struct{})
	for _, d := range g.Reachable(entry) {
		reach[d] = struct{}{}
	}
	var out []string
	for _, d := range all {
		if _, ok := reach[d]; !ok {
			out = append(out, d)
		}
	}
	slices.Sort(out)
	return out
}

// Edges returns every edge sorted by source, then target.
func (g *Graph) Edges() []models.Edge {
	var out []models.Edge
	for from, targets := range g.out {
		for to := range targets {
			out = append(out, models.Edge{Source: from, Target: to})
		}
	}
	slices.SortFunc(out, func(a, b models.Edge) int {
		if c := strings.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return strings.Compare(a.Target, b.Target)
	})
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
