package parser

import (
	"strings"

	"github.com/yuin/goldmark/util"
	"golang.org/x/text/cases"
)

// Definition is a reference definition `[label]: target`.
type Definition struct {
	Label  string
	Target string
	Line   int
	Raw    string
	column int
}

// References maps normalized labels to the definitions of one document.
type References map[string]Definition

// Lookup finds the definition for a reference identifier as written.
func (r References) Lookup(id string) (Definition, bool) {
	d, ok := r[NormalizeLabel(id)]
	return d, ok
}

// NormalizeLabel folds a reference label into its matching key: trimmed,
// inner whitespace collapsed, Unicode case folded.
func NormalizeLabel(label string) string {
	// Casers hold state and must not be shared across goroutines.
	return cases.Fold().String(util.ToLinkReference([]byte(label)))
}

// Definitions collects the reference definitions of content. When a label
// is defined more than once the first definition wins.
func Definitions(content string) References {
	refs := make(References)
	for i, line := range splitLines(content) {
		def, ok := parseDefinition(line)
		if !ok {
			continue
		}
		key := NormalizeLabel(def.Label)
		if _, dup := refs[key]; dup {
			continue
		}
		def.Line = i + 1
		refs[key] = def
	}
	return refs
}

// parseDefinition recognizes `[label]: target "optional title"` with at
// most three spaces of indentation. Footnotes (`[^1]: ...`) are rejected.
func parseDefinition(line string) (Definition, bool) {
	indent := len(line) - len(strings.TrimLeft(line, " "))
	if indent > 3 {
		return Definition{}, false
	}
	rest := line[indent:]
	if !strings.HasPrefix(rest, "[") || strings.HasPrefix(rest, "[^") {
		return Definition{}, false
	}
	end := strings.IndexByte(rest, ']')
	if end < 0 || end+1 >= len(rest) || rest[end+1] != ':' {
		return Definition{}, false
	}
	label := rest[1:end]
	if strings.TrimSpace(label) == "" || strings.ContainsRune(label, '[') {
		return Definition{}, false
	}
	target := cleanDestination(rest[end+2:])
	if target == "" {
		return Definition{}, false
	}
	return Definition{
		Label:  label,
		Target: target,
		Raw:    strings.TrimSpace(line),
		column: indent + 1,
	}, true
}
