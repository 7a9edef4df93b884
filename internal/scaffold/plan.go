package scaffold

import (
	"fmt"

	"github.com/officegen-labs/officegen/internal/jsondoc"
)

// Kind says how the merge engine must treat a planned file.
type Kind string

const (
	// KindStatic files are copied verbatim from the embedded templates.
	KindStatic Kind = "static"
	// KindRendered files are produced by executing a template.
	KindRendered Kind = "rendered"
	// KindMerge files are JSON documents merged into any existing copy.
	KindMerge Kind = "merge"
	// KindLines files are line lists such as .gitignore; lines an existing
	// copy lacks are appended to it.
	KindLines Kind = "lines"
	// KindManifest is the add-in manifest, always rewritten in full.
	KindManifest Kind = "manifest"
)

// Entry is one planned file.
type Entry struct {
	Path   string // slash-separated, relative to the project root
	Kind   Kind
	Source string // embedded template path; empty for the manifest

	// Content holds the bytes to write for static, rendered, lines and
	// manifest entries.
	Content []byte

	// Defaults and Required hold the two layers of a merge entry. Defaults
	// only fill keys the target lacks; Required keys are added or updated.
	Defaults *jsondoc.Object
	Required *jsondoc.Object
}

// Document returns the document a merge entry produces when no target exists.
func (e *Entry) Document() *jsondoc.Object {
	doc := jsondoc.NewObject()
	if e.Defaults != nil {
		jsondoc.Merge(doc, e.Defaults)
	}
	if e.Required != nil {
		jsondoc.Merge(doc, e.Required)
	}
	return doc
}

// Plan is the ordered list of files a generation produces.
type Plan struct {
	Entries []Entry
}

// Add appends e. Planning the same path twice is a programming error.
func (p *Plan) Add(e Entry) error {
	if p.Find(e.Path) != nil {
		return fmt.Errorf("path %s planned twice", e.Path)
	}
	p.Entries = append(p.Entries, e)
	return nil
}

// Find returns the entry for path, or nil.
func (p *Plan) Find(path string) *Entry {
	for i := range p.Entries {
		if p.Entries[i].Path == path {
			return &p.Entries[i]
		}
	}
	return nil
}

// Paths returns every planned path in order.
func (p *Plan) Paths() []string {
	out := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		out = append(out, e.Path)
	}
	return out
}

// Count returns how many entries have kind k.
func (p *Plan) Count(k Kind) int {
	n := 0
	for _, e := range p.Entries {
		if e.Kind == k {
			n++
		}
	}
	return n
}
