package analyzer

import "github.com/starford/doclinks/internal/models"

// ComputeStats aggregates link counts overall and per document. Reference
// definitions are not links; unresolvable references count toward the
// total and the broken count but are neither internal nor external.
func ComputeStats(docs []models.Document, links []models.ResolvedLink, orphans []string) models.Statistics {
	st := models.Statistics{
		TotalDocuments:    len(docs),
		OrphanedDocuments: len(orphans),
		Documents:         make(map[string]models.DocumentStats, len(docs)),
	}
	for _, d := range docs {
		st.Documents[d.Path] = models.DocumentStats{}
	}
	for _, l := range links {
		ds := st.Documents[l.Source]
		st.TotalLinks++
		ds.TotalLinks++
		switch {
		case l.Class == models.External:
			st.ExternalLinks++
			ds.ExternalLinks++
		case l.Class.IsInternal():
			st.InternalLinks++
			ds.InternalLinks++
		}
		if l.Class.IsBroken() {
			st.BrokenLinks++
			ds.BrokenLinks++
		}
		if l.Class == models.Unresolvable {
			st.UnresolvableLinks++
		}
		st.Documents[l.Source] = ds
	}
	return st
}
