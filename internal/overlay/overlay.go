// Package overlay applies and removes highlight tags on a buffer while
// leaving structural tags alone.
package overlay

import (
	"sort"
	"strings"

	"github.com/bethropolis/codeview/internal/buffer"
	"github.com/bethropolis/codeview/internal/token"
	"github.com/bethropolis/codeview/internal/types"
)

// ConstructTag marks text covered by a token that spans a line break. It is
// structural: highlight passes never strip it except when re-deriving it.
const ConstructTag = "Construct"

// IsHighlightTag reports whether a tag belongs to the highlight family.
func IsHighlightTag(name string) bool {
	return strings.HasPrefix(name, token.HighlightPrefix+".")
}

// IsStructural reports whether a tag is one a highlight pass must preserve.
func IsStructural(name string) bool {
	return name == buffer.SelectionTag || name == ConstructTag
}

// Overlay writes highlight tags to a buffer.
type Overlay struct {
	buf buffer.Buffer
}

// New returns an Overlay over buf.
func New(buf buffer.Buffer) *Overlay {
	return &Overlay{buf: buf}
}

// ClearHighlights removes every highlight-family tag from span and nothing
// outside it. It returns the number of tags it touched.
func (o *Overlay) ClearHighlights(span types.Range) (int, error) {
	if span.Empty() {
		return 0, nil
	}
	n := 0
	for _, name := range o.buf.TagNames() {
		if !IsHighlightTag(name) || !intersects(o.buf.TagRanges(name), span) {
			continue
		}
		if err := o.buf.TagRemove(name, span); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Apply tags r with the kind's highlight tag. Plain and unmapped kinds and
// empty ranges are skipped; the return value reports whether a tag was added.
func (o *Overlay) Apply(kind token.Kind, r types.Range) (bool, error) {
	if !kind.Tagged() || r.Empty() {
		return false, nil
	}
	return true, o.buf.TagAdd(kind.TagName(), r)
}

// ClearConstructs removes construct markers from span.
func (o *Overlay) ClearConstructs(span types.Range) error {
	if span.Empty() || !intersects(o.buf.TagRanges(ConstructTag), span) {
		return nil
	}
	return o.buf.TagRemove(ConstructTag, span)
}

// MarkConstruct records r as one multi-line construct.
func (o *Overlay) MarkConstruct(r types.Range) error {
	if r.Empty() {
		return nil
	}
	return o.buf.TagAdd(ConstructTag, r)
}

// Constructs returns the construct markers touching span.
func (o *Overlay) Constructs(span types.Range) []types.Range {
	var out []types.Range
	for _, r := range o.buf.TagRanges(ConstructTag) {
		if r.Overlaps(span) {
			out = append(out, r)
		}
	}
	return out
}

// KindAt returns the highlight kind covering p, or Unmapped.
func (o *Overlay) KindAt(p types.Position) token.Kind {
	for _, name := range o.buf.TagNames() {
		k, ok := token.KindFromTag(name)
		if !ok {
			continue
		}
		for _, r := range o.buf.TagRanges(name) {
			if r.Contains(p) {
				return k
			}
		}
	}
	return token.Unmapped
}

// Span is one tagged range in a State snapshot.
type Span struct {
	Tag   string
	Range types.Range
}

// State snapshots every tag of the buffer, sorted by position then name.
func State(buf buffer.Buffer) []Span {
	var out []Span
	for _, name := range buf.TagNames() {
		for _, r := range buf.TagRanges(name) {
			out = append(out, Span{Tag: name, Range: r})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Range.Start.Compare(out[j].Range.Start); c != 0 {
			return c < 0
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// Highlights is State restricted to the highlight family.
func Highlights(buf buffer.Buffer) []Span {
	all := State(buf)
	out := all[:0]
	for _, s := range all {
		if IsHighlightTag(s.Tag) {
			out = append(out, s)
		}
	}
	return out
}

func intersects(rs []types.Range, span types.Range) bool {
	for _, r := range rs {
		if r.Overlaps(span) {
			return true
		}
	}
	return false
}
