// Package highlight keeps a buffer's highlight tags in step with its text.
//
// An Engine runs synchronous highlight passes over dirty regions: it resolves
// the region to a text span, strips highlight tags from exactly that span,
// tokenizes it and tags every styled token where the buffer's own position
// arithmetic places it. The engine owns no text; it only remembers the last
// viewport it highlighted.
package highlight

import (
	"fmt"
	"strings"

	"github.com/bethropolis/codeview/internal/buffer"
	"github.com/bethropolis/codeview/internal/dirty"
	"github.com/bethropolis/codeview/internal/event"
	"github.com/bethropolis/codeview/internal/logger"
	"github.com/bethropolis/codeview/internal/overlay"
	"github.com/bethropolis/codeview/internal/token"
	"github.com/bethropolis/codeview/internal/types"
)

// Engine runs highlight passes. It is not safe for concurrent use; every
// call must come from the goroutine that owns the buffer.
type Engine struct {
	buf     buffer.Buffer
	adapter *token.Adapter
	overlay *overlay.Overlay
	events  *event.Manager

	memo viewportMemo
}

// viewportMemo is the key of the last successful viewport pass.
type viewportMemo struct {
	valid  bool
	bounds types.Range
	text   string
}

// New creates an engine over buf. events may be nil. No pass runs until the
// caller asks for one.
func New(buf buffer.Buffer, tk token.Tokenizer, events *event.Manager) *Engine {
	return &Engine{
		buf:     buf,
		adapter: token.NewAdapter(tk),
		overlay: overlay.New(buf),
		events:  events,
	}
}

// Tokenizer returns the current tokenizer.
func (e *Engine) Tokenizer() token.Tokenizer {
	return e.adapter.Tokenizer()
}

// SetTokenizer swaps the tokenizer and re-highlights the whole buffer.
func (e *Engine) SetTokenizer(tk token.Tokenizer) error {
	e.adapter = token.NewAdapter(tk)
	e.Invalidate()
	logger.DebugTagf("highlight", "tokenizer set to %s", tk.Name())
	return e.HighlightAll()
}

// Invalidate forgets the viewport memo so the next viewport change runs a
// pass even if nothing visible changed.
func (e *Engine) Invalidate() {
	e.memo = viewportMemo{}
}

// HighlightAll re-highlights the whole buffer.
func (e *Engine) HighlightAll() error {
	return e.Rehighlight(dirty.WholeBufferRegion())
}

// Rehighlight runs one pass over region. Constructs left open at the end of
// the region extend the pass to the end of the buffer.
func (e *Engine) Rehighlight(region dirty.Region) error {
	span, err := dirty.Span(region, e.buf)
	if err != nil {
		return err
	}
	limit, err := e.buf.Index("end")
	if err != nil {
		return err
	}
	return e.pass(region, span, limit)
}

// OnViewportChange re-highlights the visible range unless its bounds and
// text are the same as at the last viewport pass. It reports whether a pass
// ran.
func (e *Engine) OnViewportChange() (bool, error) {
	bounds := e.buf.ViewportBounds()
	text, err := e.buf.Get(bounds)
	if err != nil {
		return false, err
	}
	if e.memo.valid {
		if _, changed := dirty.FromViewportChange(e.memo.bounds, bounds, e.memo.text, text); !changed {
			logger.DebugTagf("highlight", "viewport %s unchanged, skipping", bounds)
			return false, nil
		}
	}

	region := dirty.ViewportRegion(bounds)
	span, err := dirty.Span(region, e.buf)
	if err != nil {
		return false, err
	}
	if err := e.pass(region, span, span.End); err != nil {
		return false, err
	}
	e.memo = viewportMemo{valid: true, bounds: bounds, text: text}
	return true, nil
}

// pass highlights span, growing it over known constructs and, once, up to
// limit when the span ends inside an open construct.
func (e *Engine) pass(region dirty.Region, span types.Range, limit types.Position) error {
	span, err := e.widen(span)
	if err != nil {
		return err
	}

	text, tokens, err := e.tokenize(span)
	if err != nil {
		return err
	}
	if span.End.Before(limit) && endsOpen(text, tokens) {
		logger.DebugTagf("highlight", "%s ends inside %s, extending to %s",
			span, tokens[len(tokens)-1].Kind, limit)
		span.End = limit
		if _, tokens, err = e.tokenize(span); err != nil {
			return err
		}
	}

	if _, err := e.overlay.ClearHighlights(span); err != nil {
		return err
	}
	if err := e.overlay.ClearConstructs(span); err != nil {
		return err
	}

	cursor := span.Start
	tagged := 0
	for _, tok := range tokens {
		after := e.buf.Advance(cursor, tok.Text)
		r := types.Range{Start: cursor, End: after}
		added, err := e.overlay.Apply(tok.Kind, r)
		if err != nil {
			return err
		}
		if added {
			tagged++
			if spansLines(tok.Text) {
				if err := e.overlay.MarkConstruct(r); err != nil {
					return err
				}
			}
		}
		cursor = after
	}
	if cursor != span.End {
		return fmt.Errorf("%w: tokens end at %s, span ends at %s", token.ErrCoverage, cursor, span.End)
	}

	logger.DebugTagf("highlight", "%s: span %s, %d tokens, %d tagged", region, span, len(tokens), tagged)
	e.events.Dispatch(event.TypeHighlighted, event.HighlightedData{
		Region: region.String(),
		Span:   span,
		Tokens: len(tokens),
		Tagged: tagged,
	})
	return nil
}

// widen grows span until it fully contains every construct it touches.
// Each growth snaps the span to whole lines, which can reach further
// constructs, so the two repeat until neither changes the span.
func (e *Engine) widen(span types.Range) (types.Range, error) {
	for {
		grown := span
		for _, c := range e.overlay.Constructs(grown) {
			grown = grown.Union(c)
		}
		if grown == span {
			return span, nil
		}
		snapped, err := e.snapLines(grown)
		if err != nil {
			return span, err
		}
		logger.DebugTagf("highlight", "widened %s to %s over constructs", span, snapped)
		span = snapped
	}
}

// snapLines extends span to start at column 0 and end after the line break
// of its last line.
func (e *Engine) snapLines(span types.Range) (types.Range, error) {
	span.Start.Col = 0
	if span.End.Col > 0 {
		end, err := e.buf.Index(fmt.Sprintf("%d.end +1 indices", span.End.Line))
		if err != nil {
			return span, err
		}
		span.End = end
	}
	return span, nil
}

func (e *Engine) tokenize(span types.Range) (string, []token.Token, error) {
	text, err := e.buf.Get(span)
	if err != nil {
		return "", nil, err
	}
	var tokens []token.Token
	for tok, err := range e.adapter.Tokenize(text) {
		if err != nil {
			return text, nil, err
		}
		tokens = append(tokens, tok)
	}
	return text, tokens, nil
}

// endsOpen reports whether the line break closing text belongs to a token
// that continues past it.
func endsOpen(text string, tokens []token.Token) bool {
	if len(tokens) == 0 || !strings.HasSuffix(text, "\n") {
		return false
	}
	return tokens[len(tokens)-1].Kind.Continues()
}

// spansLines reports whether text crosses a line break other than a final one.
func spansLines(text string) bool {
	return strings.Contains(strings.TrimSuffix(text, "\n"), "\n")
}
