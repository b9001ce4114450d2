package models

// LinkKind is the markdown syntax a link was written in.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindReferenceUse        LinkKind = "reference_use"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is one occurrence of a markdown link inside a document.
//
// For reference uses Target holds the reference identifier as written
// (or the link text for the collapsed form `[text][]`), and Ref holds the
// normalized identifier used for matching definitions.
type Link struct {
	Kind   LinkKind `json:"kind"`
	Text   string   `json:"text"`
	Target string   `json:"target"`
	Ref    string   `json:"ref,omitempty"`
	Line   int      `json:"line"`
	Column int      `json:"column"`
	Source string   `json:"source"`
	Image  bool     `json:"image,omitempty"`
	Raw    string   `json:"-"`
}

// Classification is the outcome of resolving a link.
type Classification string

const (
	External       Classification = "external"
	InternalValid  Classification = "internal_valid"
	InternalBroken Classification = "internal_broken"
	Unresolvable   Classification = "unresolvable"
)

// IsInternal reports whether c refers to a local file, valid or not.
func (c Classification) IsInternal() bool {
	return c == InternalValid || c == InternalBroken
}

// IsBroken reports whether c is a finding.
func (c Classification) IsBroken() bool {
	return c == InternalBroken || c == Unresolvable
}

// ResolvedLink is a Link plus its classification.
type ResolvedLink struct {
	Link
	Class Classification `json:"class"`
	// Effective is the target that was resolved: the definition target for
	// reference uses, Target otherwise.
	Effective string `json:"effective_target"`
	// Path is the absolute resolved path for internal links.
	Path string `json:"path,omitempty"`
	// RelPath is Path relative to the scan root, empty when outside it.
	RelPath    string `json:"rel_path,omitempty"`
	IsDocument bool   `json:"is_document,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Definition string `json:"-"`
}

// BrokenLink is a broken or unresolvable link as reported to users.
type BrokenLink struct {
	Document string         `json:"document"`
	Line     int            `json:"line"`
	Column   int            `json:"column"`
	Text     string         `json:"text"`
	Target   string         `json:"target"`
	Kind     LinkKind       `json:"kind"`
	Class    Classification `json:"class"`
	Reason   string         `json:"reason"`
	Context  string         `json:"context,omitempty"`
}
