package dirty

import (
	"fmt"

	"github.com/bethropolis/codeview/internal/buffer"
	"github.com/bethropolis/codeview/internal/types"
)

// Span resolves a region to the text span to re-tokenize, clamped to buf.
// Line and Range spans run from column 0 of their first line through the
// line break ending their last line, so that a construct left open at the
// end of the span shows in the kind of that line break. WholeBuffer is
// 1.0 to end; Viewport is its bounds.
func Span(r Region, buf buffer.Buffer) (types.Range, error) {
	switch r.Kind {
	case Line, Lines:
		return lineSpan(r.StartLine, r.EndLine, buf)
	case WholeBuffer:
		end, err := buf.Index("end")
		if err != nil {
			return types.Range{}, err
		}
		return types.Range{Start: types.Pos(1, 0), End: end}, nil
	case Viewport:
		start, err := buf.Index(r.Bounds.Start.String())
		if err != nil {
			return types.Range{}, err
		}
		end, err := buf.Index(r.Bounds.End.String())
		if err != nil {
			return types.Range{}, err
		}
		return types.NewRange(start, end), nil
	}
	return types.Range{}, fmt.Errorf("no span for region %s", r)
}

func lineSpan(first, last int, buf buffer.Buffer) (types.Range, error) {
	lines := buf.LineCount()
	first = min(max(first, 1), lines)
	last = min(max(last, first), lines)

	end := types.Pos(last+1, 0)
	if last == lines {
		var err error
		if end, err = buf.Index(fmt.Sprintf("%d.end", last)); err != nil {
			return types.Range{}, err
		}
	}
	return types.Range{Start: types.Pos(first, 0), End: end}, nil
}
