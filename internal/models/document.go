// Package models defines the domain types for doclinks.
package models

// Document is a markdown file discovered under the scan root.
type Document struct {
	Path    string `json:"path"` // relative to the scan root, slash separated
	AbsPath string `json:"-"`
	Title   string `json:"title,omitempty"`
	Links   []Link `json:"-"`
}

// DocumentMetadata is the lightweight record returned by discovery.
type DocumentMetadata struct {
	Path    string `json:"path"`
	AbsPath string `json:"-"`
	Size    int64  `json:"size"`
}

// DocumentError records a document that could not be analyzed.
type DocumentError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// DocumentStats is the per-document link breakdown.
type DocumentStats struct {
	TotalLinks    int `json:"total_links"`
	InternalLinks int `json:"internal_links"`
	ExternalLinks int `json:"external_links"`
	BrokenLinks   int `json:"broken_links"`
}

// Statistics aggregates counts over a whole analysis run.
type Statistics struct {
	TotalDocuments    int                      `json:"total_documents"`
	TotalLinks        int                      `json:"total_links"`
	InternalLinks     int                      `json:"internal_links"`
	ExternalLinks     int                      `json:"external_links"`
	BrokenLinks       int                      `json:"broken_links"`
	UnresolvableLinks int                      `json:"unresolvable_links"`
	OrphanedDocuments int                      `json:"orphaned_documents"`
	Documents         map[string]DocumentStats `json:"document_stats"`
}

// Edge is a directed link between two documents.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// AnalysisResult is everything a single run produces.
type AnalysisResult struct {
	Root        string          `json:"root"`
	EntryPoint  string          `json:"entry_point,omitempty"`
	Documents   []Document      `json:"documents"`
	Links       []ResolvedLink  `json:"links"`
	Broken      []BrokenLink    `json:"broken_links"`
	Orphans     []string        `json:"orphaned_documents"`
	Unreachable []string        `json:"unreachable_documents,omitempty"`
	Errors      []DocumentError `json:"errors,omitempty"`
	Edges       []Edge          `json:"edges"`
	Stats       Statistics      `json:"statistics"`
}

// HasBroken reports whether any broken or unresolvable link was found.
func (r *AnalysisResult) HasBroken() bool {
	return len(r.Broken) > 0
}
