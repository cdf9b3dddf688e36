// Package dirty computes the regions a highlight pass must re-tokenize after
// a mutation or a viewport change.
package dirty

import (
	"fmt"
	"strings"

	"github.com/bethropolis/codeview/internal/buffer"
	"github.com/bethropolis/codeview/internal/types"
)

// Kind discriminates Region variants.
type Kind int

const (
	None Kind = iota
	Line
	Lines
	WholeBuffer
	Viewport
)

// Region is a dirty region: a single line, an inclusive line range, the
// whole buffer or a viewport. The zero value is None.
type Region struct {
	Kind      Kind
	StartLine int
	EndLine   int
	Bounds    types.Range // Viewport only
}

// LineRegion is the region Line(n).
func LineRegion(n int) Region {
	return Region{Kind: Line, StartLine: n, EndLine: n}
}

// RangeRegion is the region Range(start, end), lines inclusive.
func RangeRegion(start, end int) Region {
	if end < start {
		start, end = end, start
	}
	return Region{Kind: Lines, StartLine: start, EndLine: end}
}

// WholeBufferRegion is the region covering everything.
func WholeBufferRegion() Region {
	return Region{Kind: WholeBuffer}
}

// ViewportRegion is the region Viewport(bounds).
func ViewportRegion(bounds types.Range) Region {
	return Region{Kind: Viewport, Bounds: bounds.Normalize()}
}

// IsZero reports whether r is None.
func (r Region) IsZero() bool {
	return r.Kind == None
}

func (r Region) String() string {
	switch r.Kind {
	case Line:
		return fmt.Sprintf("Line(%d)", r.StartLine)
	case Lines:
		return fmt.Sprintf("Range(%d, %d)", r.StartLine, r.EndLine)
	case WholeBuffer:
		return "WholeBuffer"
	case Viewport:
		return fmt.Sprintf("Viewport(%s, %s)", r.Bounds.Start, r.Bounds.End)
	}
	return "None"
}

// LineSpan is the first and last line a mutation's arguments resolved to
// before the mutation was applied.
type LineSpan struct {
	Start int
	End   int
}

// FromMutation computes the region a mutation dirtied. pre holds the lines
// the arguments resolved to before the mutation; startCol is the column of
// the first argument.
//
// An insert touching one line is Line(n). An insert of k line breaks is
// Range(n, n+k), except that at column 0 a trailing line break does not
// touch line n+k: the old line only moves down. Delete and replace are
// Line(n) when both ends are on one line and Range otherwise; replace also
// covers the line breaks of its new text.
func FromMutation(pre LineSpan, m buffer.Mutation, startCol int) Region {
	n := pre.Start
	switch m.Op {
	case buffer.OpInsert:
		last := n + strings.Count(m.Text, "\n")
		if last > n && startCol == 0 && strings.HasSuffix(m.Text, "\n") {
			last--
		}
		return span(n, last)
	case buffer.OpDelete:
		return span(n, pre.End)
	case buffer.OpReplace:
		return span(n, max(pre.End, n+strings.Count(m.Text, "\n")))
	}
	return Region{}
}

// FromEdit computes the region of an applied edit as the buffer reports it,
// which is how undo and redo are tracked.
func FromEdit(e buffer.Edit) Region {
	return span(e.Start.Line, e.End.Line)
}

func span(start, end int) Region {
	if end <= start {
		return LineRegion(start)
	}
	return RangeRegion(start, end)
}

// FromViewportChange reports Viewport(newVP) unless both the bounds and the
// visible text are unchanged.
func FromViewportChange(oldVP, newVP types.Range, oldText, newText string) (Region, bool) {
	if oldVP == newVP && oldText == newText {
		return Region{}, false
	}
	return ViewportRegion(newVP), true
}
