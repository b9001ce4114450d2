package parser

import (
	"slices"
	"testing"

	"github.com/starford/doclinks/internal/models"
)

func collect(content string) []models.Link {
	return slices.Collect(Links("doc.md", content))
}

func TestLinks_Inline(t *testing.T) {
	links := collect("Check out [Go](https://go.dev) for more info.")
	if len(links) != 1 {
		t.Fatalf("len(links) = %d, want 1", len(links))
	}
	l := links[0]
	if l.Kind != models.LinkKindInline || l.Text != "Go" || l.Target != "https://go.dev" {
		t.Errorf("link = %+v", l)
	}
	if l.Line != 1 || l.Column != 11 {
		t.Errorf("position = %d:%d, want 1:11", l.Line, l.Column)
	}
	if l.Source != "doc.md" {
		t.Errorf("source = %q", l.Source)
	}
}

func TestLinks_LineNumbers(t *testing.T) {
	links := collect("First [link1](url1)\n\nSecond [link2](url2)\nThird [link3](url3)")
	if len(links) != 3 {
		t.Fatalf("len(links) = %d, want 3", len(links))
	}
	for i, want := range []int{1, 3, 4} {
		if links[i].Line != want {
			t.Errorf("links[%d].Line = %d, want %d", i, links[i].Line, want)
		}
	}
}

func TestLinks_DocumentOrderWithinLine(t *testing.T) {
	links := collect("[a][x] then [b](./b.md) then [c][]")
	if len(links) != 3 {
		t.Fatalf("len(links) = %d, want 3", len(links))
	}
	kinds := []models.LinkKind{models.LinkKindReferenceUse, models.LinkKindInline, models.LinkKindReferenceUse}
	for i, k := range kinds {
		if links[i].Kind != k {
			t.Errorf("links[%d].Kind = %s, want %s", i, links[i].Kind, k)
		}
	}
	if links[0].Column >= links[1].Column || links[1].Column >= links[2].Column {
		t.Errorf("columns not increasing: %d %d %d", links[0].Column, links[1].Column, links[2].Column)
	}
}

func TestLinks_TitleStripped(t *testing.T) {
	for _, in := range []string{
		`[x](./a.md "Title here")`,
		`[x](./a.md 'Title')`,
		`[x]( ./a.md )`,
		`[x](<./a.md>)`,
	} {
		links := collect(in)
		if len(links) != 1 || links[0].Target != "./a.md" {
			t.Errorf("%s: links = %+v", in, links)
		}
	}
}

func TestLinks_TargetWithSpacesKept(t *testing.T) {
	links := collect("[manual](./User Manual.md)")
	if len(links) != 1 || links[0].Target != "./User Manual.md" {
		t.Errorf("links = %+v", links)
	}
}

func TestLinks_BalancedParens(t *testing.T) {
	links := collect("[wiki](https://en.wikipedia.org/wiki/Go_(language)) tail")
	if len(links) != 1 || links[0].Target != "https://en.wikipedia.org/wiki/Go_(language)" {
		t.Errorf("links = %+v", links)
	}
}

func TestLinks_MalformedSkipped(t *testing.T) {
	cases := map[string]string{
		"[open](./a.md and [ok](./b.md)": "ok",
		"[spaced] (./x.md) [ok](./b.md)": "ok",
	}
	for in, wantText := range cases {
		links := collect(in)
		if len(links) != 1 || links[0].Text != wantText || links[0].Target != "./b.md" {
			t.Errorf("%q: links = %+v", in, links)
		}
	}
}

func TestLinks_FirstClosingBracketWins(t *testing.T) {
	links := collect(`[a [b](./c.md)`)
	if len(links) != 1 || links[0].Text != "a [b" || links[0].Target != "./c.md" {
		t.Errorf("links = %+v", links)
	}

	links = collect(`[a\]b](./c.md)`)
	// No escape processing: the text ends at the first ']'.
	if len(links) != 0 {
		t.Errorf("escaped bracket should not form a link, got %+v", links)
	}
}

func TestLinks_ReferenceUse(t *testing.T) {
	links := collect("See [Text][] and [Other][Some  Ref].")
	if len(links) != 2 {
		t.Fatalf("len(links) = %d, want 2", len(links))
	}
	if links[0].Target != "Text" || links[0].Ref != "text" {
		t.Errorf("collapsed reference = %+v", links[0])
	}
	if links[1].Target != "Some  Ref" || links[1].Ref != "some ref" {
		t.Errorf("full reference = %+v", links[1])
	}
}

func TestLinks_EmptyReferenceIgnored(t *testing.T) {
	if links := collect("[][]"); len(links) != 0 {
		t.Errorf("links = %+v", links)
	}
}

func TestLinks_ShortcutAndCheckboxIgnored(t *testing.T) {
	if links := collect("- [ ] todo\n- [x] done\nplain [word] here"); len(links) != 0 {
		t.Errorf("links = %+v", links)
	}
}

func TestLinks_Image(t *testing.T) {
	links := collect("![logo](./img/logo.png)")
	if len(links) != 1 || !links[0].Image || links[0].Column != 1 {
		t.Fatalf("links = %+v", links)
	}
	if links[0].Raw != "![logo](./img/logo.png)" {
		t.Errorf("raw = %q", links[0].Raw)
	}
}

func TestLinks_CodeNotExcluded(t *testing.T) {
	links := collect("```\n[in code](./x.md)\n```\n`[span](./y.md)`")
	if len(links) != 2 {
		t.Errorf("len(links) = %d, want 2", len(links))
	}
}

func TestLinks_EmptyTargetKept(t *testing.T) {
	links := collect("[x]()")
	if len(links) != 1 || links[0].Target != "" {
		t.Errorf("links = %+v", links)
	}
}

func TestLinks_DefinitionRecord(t *testing.T) {
	links := collect("[go]: https://go.dev \"Go\"\n")
	if len(links) != 1 {
		t.Fatalf("len(links) = %d, want 1", len(links))
	}
	l := links[0]
	if l.Kind != models.LinkKindReferenceDefinition || l.Target != "https://go.dev" || l.Ref != "go" {
		t.Errorf("definition = %+v", l)
	}
}

func TestLinks_Restartable(t *testing.T) {
	content := "[a](./a.md)\n[b][c]\n[c]: ./c.md\n"
	seq := Links("doc.md", content)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Errorf("iterations differ:\n%+v\n%+v", first, second)
	}
}

func TestLinks_EarlyStop(t *testing.T) {
	n := 0
	for range Links("doc.md", "[a](1) [b](2) [c](3)") {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("n = %d", n)
	}
}

func TestLinks_CRLF(t *testing.T) {
	links := collect("[a](./a.md)\r\n[b](./b.md)\r\n")
	if len(links) != 2 || links[1].Line != 2 || links[1].Target != "./b.md" {
		t.Errorf("links = %+v", links)
	}
}

func TestParse_FrontmatterTitle(t *testing.T) {
	r := Parse("a.md", []byte("---\ntitle: Hello\n---\n# Other\n[b](./b.md)\n"))
	if r.Title != "Hello" {
		t.Errorf("title = %q, want %q", r.Title, "Hello")
	}
	if len(r.Links) != 1 || r.Links[0].Line != 5 {
		t.Errorf("links = %+v", r.Links)
	}
}

func TestParse_H1Fallback(t *testing.T) {
	r := Parse("a.md", []byte("intro\n# My Heading\nmore"))
	if r.Title != "My Heading" {
		t.Errorf("title = %q", r.Title)
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	r := Parse("a.md", []byte("---\n: invalid: yaml: {{{\n---\nBody\n"))
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
}
