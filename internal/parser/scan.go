package parser

import (
	"iter"
	"strings"

	"github.com/starford/doclinks/internal/models"
)

// Links returns the link records of content in document order: by line,
// then by column. The sequence is lazy and can be ranged over repeatedly;
// each iteration rescans content from the start.
func Links(source, content string) iter.Seq[models.Link] {
	return func(yield func(models.Link) bool) {
		for i, line := range splitLines(content) {
			lineNo := i + 1
			if def, ok := parseDefinition(line); ok {
				link := models.Link{
					Kind:   models.LinkKindReferenceDefinition,
					Text:   def.Label,
					Target: def.Target,
					Ref:    NormalizeLabel(def.Label),
					Line:   lineNo,
					Column: def.column,
					Source: source,
					Raw:    def.Raw,
				}
				if !yield(link) {
					return
				}
				continue
			}
			if !scanLine(source, line, lineNo, yield) {
				return
			}
		}
	}
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// scanLine yields the inline links and reference uses on a single line.
// It returns false once yield asks to stop.
func scanLine(source, line string, lineNo int, yield func(models.Link) bool) bool {
	for i := 0; i < len(line); i++ {
		if line[i] != '[' {
			continue
		}
		closeRel := strings.IndexByte(line[i+1:], ']')
		if closeRel < 0 {
			// No ']' left on the line, so no later '[' can close either.
			return true
		}
		closeIdx := i + 1 + closeRel
		next := closeIdx + 1
		if next >= len(line) {
			return true
		}

		start := i
		image := i > 0 && line[i-1] == '!'
		if image {
			start = i - 1
		}
		text := line[i+1 : closeIdx]

		switch line[next] {
		case '(':
			end := matchParen(line, next)
			if end < 0 {
				continue
			}
			link := models.Link{
				Kind:   models.LinkKindInline,
				Text:   text,
				Target: cleanDestination(line[next+1 : end]),
				Line:   lineNo,
				Column: start + 1,
				Source: source,
				Image:  image,
				Raw:    line[start : end+1],
			}
			if !yield(link) {
				return false
			}
			i = end

		case '[':
			refRel := strings.IndexByte(line[next+1:], ']')
			if refRel < 0 {
				continue
			}
			refEnd := next + 1 + refRel
			id := line[next+1 : refEnd]
			if strings.TrimSpace(id) == "" {
				id = text
			}
			if strings.TrimSpace(id) == "" {
				continue
			}
			link := models.Link{
				Kind:   models.LinkKindReferenceUse,
				Text:   text,
				Target: id,
				Ref:    NormalizeLabel(id),
				Line:   lineNo,
				Column: start + 1,
				Source: source,
				Image:  image,
				Raw:    line[start : refEnd+1],
			}
			if !yield(link) {
				return false
			}
			i = refEnd
		}
	}
	return true
}

// matchParen returns the index of the ')' closing the '(' at open, or -1
// when the parentheses do not balance before the end of the line.
func matchParen(line string, open int) int {
	depth := 0
	for j := open; j < len(line); j++ {
		switch line[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// cleanDestination trims s, unwraps <...> destinations, and drops a
// trailing quoted title.
func cleanDestination(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<") {
		if end := strings.IndexByte(s, '>'); end > 0 {
			return strings.TrimSpace(s[1:end])
		}
	}
	return stripTitle(s)
}

func stripTitle(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			continue
		}
		rest := strings.TrimLeft(s[i:], " \t")
		if len(rest) < 2 {
			continue
		}
		q := rest[0]
		if (q == '"' || q == '\'') && rest[len(rest)-1] == q {
			return strings.TrimSpace(s[:i])
		}
	}
	return s
}
