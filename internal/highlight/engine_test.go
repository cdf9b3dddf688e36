package highlight

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bethropolis/codeview/internal/buffer"
	"github.com/bethropolis/codeview/internal/dirty"
	"github.com/bethropolis/codeview/internal/event"
	"github.com/bethropolis/codeview/internal/lexer"
	"github.com/bethropolis/codeview/internal/overlay"
	"github.com/bethropolis/codeview/internal/token"
	"github.com/bethropolis/codeview/internal/types"
)

func rng(l1, c1, l2, c2 int) types.Range {
	return types.Range{Start: types.Pos(l1, c1), End: types.Pos(l2, c2)}
}

// countingBuffer counts tag mutations.
type countingBuffer struct {
	*buffer.SliceBuffer
	tagCalls int
}

func (c *countingBuffer) TagAdd(name string, r types.Range) error {
	c.tagCalls++
	return c.SliceBuffer.TagAdd(name, r)
}

func (c *countingBuffer) TagRemove(name string, r types.Range) error {
	c.tagCalls++
	return c.SliceBuffer.TagRemove(name, r)
}

// passRecorder collects TypeHighlighted events.
type passRecorder struct {
	passes []event.HighlightedData
}

func record(m *event.Manager) *passRecorder {
	pr := &passRecorder{}
	m.Subscribe(event.TypeHighlighted, func(e event.Event) bool {
		pr.passes = append(pr.passes, e.Data.(event.HighlightedData))
		return false
	})
	return pr
}

func python(t testing.TB) token.Tokenizer {
	tk, err := lexer.Get("python")
	require.NoError(t, err)
	return tk
}

func kindAt(buf buffer.Buffer, p types.Position) token.Kind {
	return overlay.New(buf).KindAt(p)
}

func TestEngine_HighlightAllUsesNativeColumns(t *testing.T) {
	buf := buffer.NewSliceBufferFromString("x = 'héllo' # ö\nprint(x)")
	e := New(buf, python(t), nil)
	require.NoError(t, e.HighlightAll())

	assert.Equal(t, []types.Range{rng(1, 4, 1, 11)}, buf.TagRanges("Token.Literal.String.Single"))
	assert.Equal(t, []types.Range{rng(1, 12, 1, 15)}, buf.TagRanges("Token.Comment.Single"))
	assert.Equal(t, []types.Range{rng(2, 0, 2, 5)}, buf.TagRanges("Token.Name.Builtin"))
	for _, name := range buf.TagNames() {
		assert.NotEqual(t, "Token.Text", name)
		assert.NotEqual(t, "Token.Text.Whitespace", name)
	}
}

func TestEngine_RehighlightTouchesOnlyItsSpan(t *testing.T) {
	buf := buffer.NewSliceBufferFromString("print(1)\nprint(2)\nprint(3)")
	e := New(buf, python(t), nil)
	require.NoError(t, e.HighlightAll())

	// Stale tag on line 3 survives a pass over line 2.
	require.NoError(t, buf.TagAdd("Token.Keyword", rng(3, 6, 3, 7)))
	require.NoError(t, buf.TagAdd("Token.Keyword", rng(2, 6, 2, 7)))
	require.NoError(t, e.Rehighlight(dirty.LineRegion(2)))

	assert.Equal(t, []types.Range{rng(3, 6, 3, 7)}, buf.TagRanges("Token.Keyword"))
	assert.Equal(t, token.LiteralNumberInteger, kindAt(buf, types.Pos(2, 6)))
}

func TestEngine_PreservesStructuralTags(t *testing.T) {
	buf := buffer.NewSliceBufferFromString("print(1)\nprint(2)")
	require.NoError(t, buf.TagAdd(buffer.SelectionTag, rng(1, 2, 2, 3)))
	e := New(buf, python(t), nil)
	require.NoError(t, e.HighlightAll())
	require.NoError(t, e.Rehighlight(dirty.RangeRegion(1, 2)))

	assert.Equal(t, []types.Range{rng(1, 2, 2, 3)}, buf.TagRanges(buffer.SelectionTag))
}

func TestEngine_ViewportMemo(t *testing.T) {
	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, fmt.Sprintf("v%d = len('%d')", i, i))
	}
	sb := buffer.NewSliceBufferFromString(strings.Join(lines, "\n"))
	cb := &countingBuffer{SliceBuffer: sb}
	events := event.NewManager()
	pr := record(events)
	e := New(cb, python(t), events)

	sb.SetViewport(5, 10)
	ran, err := e.OnViewportChange()
	require.NoError(t, err)
	require.True(t, ran)
	require.Len(t, pr.passes, 1)
	assert.Equal(t, rng(5, 0, 14, 15), pr.passes[0].Span)
	assert.Equal(t, token.NameBuiltin, kindAt(sb, types.Pos(5, 5)))
	assert.Equal(t, token.Unmapped, kindAt(sb, types.Pos(20, 6)))

	before := cb.tagCalls
	ran, err = e.OnViewportChange()
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Equal(t, before, cb.tagCalls, "unchanged viewport must not touch tags")
	assert.Len(t, pr.passes, 1)

	// Same bounds, different text.
	_, err = sb.Apply(buffer.Insert("6.0", "#"))
	require.NoError(t, err)
	ran, err = e.OnViewportChange()
	require.NoError(t, err)
	assert.True(t, ran)

	// Scrolled.
	sb.SetViewport(6, 10)
	ran, err = e.OnViewportChange()
	require.NoError(t, err)
	assert.True(t, ran)

	e.Invalidate()
	ran, err = e.OnViewportChange()
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestEngine_WidensOverConstruct(t *testing.T) {
	buf := buffer.NewSliceBufferFromString("x = 1\n\"\"\"doc\nmore\n\"\"\"\ny = 2")
	events := event.NewManager()
	pr := record(events)
	e := New(buf, python(t), events)
	require.NoError(t, e.HighlightAll())
	require.NotEmpty(t, buf.TagRanges(overlay.ConstructTag))

	_, err := buf.Apply(buffer.Replace("3.1", "3.2", "x"))
	require.NoError(t, err)
	require.NoError(t, e.Rehighlight(dirty.LineRegion(3)))

	last := pr.passes[len(pr.passes)-1]
	assert.Equal(t, "Line(3)", last.Region)
	assert.Equal(t, rng(2, 0, 5, 0), last.Span)
	assert.True(t, kindAt(buf, types.Pos(3, 1)).Continues())
}

func TestEngine_WidensOverConstructsSharingALine(t *testing.T) {
	src := "y = b\"\"\"a\nb\"\"\" ; x = \"\"\"c\nd\"\"\"\nz = 2"
	want := buffer.NewSliceBufferFromString(src)
	require.NoError(t, New(want, python(t), nil).HighlightAll())
	require.Len(t, want.TagRanges(overlay.ConstructTag), 2)

	buf := buffer.NewSliceBufferFromString(src)
	events := event.NewManager()
	pr := record(events)
	e := New(buf, python(t), events)
	require.NoError(t, e.HighlightAll())
	require.NoError(t, e.Rehighlight(dirty.LineRegion(3)))

	last := pr.passes[len(pr.passes)-1]
	assert.Equal(t, rng(1, 0, 4, 0), last.Span)
	if diff := cmp.Diff(overlay.Highlights(want), overlay.Highlights(buf)); diff != "" {
		t.Errorf("line pass differs from a full pass (-want +got):\n%s", diff)
	}
}

func TestEngine_InvalidUTF8Columns(t *testing.T) {
	buf := buffer.NewSliceBufferFromString("x = 'caf\xe9'\nprint(x)")
	e := New(buf, python(t), nil)
	require.NoError(t, e.HighlightAll())

	assert.Equal(t, []types.Range{rng(1, 4, 1, 10)}, buf.TagRanges("Token.Literal.String.Single"))
	assert.Equal(t, []types.Range{rng(2, 0, 2, 5)}, buf.TagRanges("Token.Name.Builtin"))
}

func TestEngine_ExtendsOpenConstructToBufferEnd(t *testing.T) {
	buf := buffer.NewSliceBufferFromString("a = 1\nb = 2\nc = 3")
	events := event.NewManager()
	pr := record(events)
	e := New(buf, python(t), events)
	require.NoError(t, e.HighlightAll())
	assert.False(t, kindAt(buf, types.Pos(3, 0)).Continues())

	_, err := buf.Apply(buffer.Insert("1.0", "x = \"\"\""))
	require.NoError(t, err)
	require.NoError(t, e.Rehighlight(dirty.LineRegion(1)))

	last := pr.passes[len(pr.passes)-1]
	assert.Equal(t, rng(1, 0, 3, 5), last.Span)
	assert.True(t, kindAt(buf, types.Pos(3, 0)).Continues())
	assert.NotEmpty(t, buf.TagRanges(overlay.ConstructTag))
}

func TestEngine_SetTokenizerRehighlightsEverything(t *testing.T) {
	buf := buffer.NewSliceBufferFromString("print(1)")
	e := New(buf, python(t), nil)
	require.NoError(t, e.HighlightAll())
	require.NotEmpty(t, overlay.Highlights(buf))

	require.NoError(t, e.SetTokenizer(lexer.Plain{}))
	assert.Empty(t, overlay.Highlights(buf))
	assert.Equal(t, lexer.PlainName, e.Tokenizer().Name())
}

type brokenTokenizer struct{ err error }

func (b brokenTokenizer) Name() string { return "broken" }

func (b brokenTokenizer) Tokenize(text string) (iter.Seq[token.Raw], error) {
	if b.err != nil {
		return nil, b.err
	}
	// Drops the first byte.
	return func(yield func(token.Raw) bool) {
		if len(text) > 1 {
			yield(token.Raw{Kind: "Keyword", Text: text[1:]})
		}
	}, nil
}

func TestEngine_TokenizerFailuresPropagate(t *testing.T) {
	buf := buffer.NewSliceBufferFromString("abc")

	boom := errors.New("boom")
	err := New(buf, brokenTokenizer{err: boom}, nil).HighlightAll()
	require.ErrorIs(t, err, boom)

	err = New(buf, brokenTokenizer{}, nil).HighlightAll()
	require.ErrorIs(t, err, token.ErrCoverage)
	assert.Empty(t, buf.TagNames(), "no tags are applied by a failed pass")
}

// recordingTokenizer remembers every text it was asked to tokenize.
type recordingTokenizer struct {
	token.Tokenizer
	inputs []string
}

func (r *recordingTokenizer) Tokenize(text string) (iter.Seq[token.Raw], error) {
	r.inputs = append(r.inputs, text)
	return r.Tokenizer.Tokenize(text)
}

var pythonLines = []string{
	"x = 1",
	"print('a', x)",
	"# comment ö",
	"def f(a, b):",
	"    return a + b",
	"",
	"s = \"héllo\"",
	"class K: pass",
	"y = [1, 2.5, 0x1f]",
}

func TestEngine_PassProperties(t *testing.T) {
	tk := python(t)
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.SampledFrom(pythonLines), 1, 12).Draw(t, "lines")
		buf := buffer.NewSliceBufferFromString(strings.Join(lines, "\n"))
		rec := &recordingTokenizer{Tokenizer: tk}
		events := event.NewManager()
		pr := record(events)
		e := New(buf, rec, events)
		if err := e.HighlightAll(); err != nil {
			t.Fatalf("highlight all: %v", err)
		}

		first := rapid.IntRange(1, len(lines)).Draw(t, "first")
		last := rapid.IntRange(first, len(lines)).Draw(t, "last")
		region := dirty.RangeRegion(first, last)

		if err := e.Rehighlight(region); err != nil {
			t.Fatalf("rehighlight: %v", err)
		}
		once := overlay.State(buf)

		// Coverage: the pass tokenized exactly the text of its span.
		pass := pr.passes[len(pr.passes)-1]
		want, err := buf.Get(pass.Span)
		if err != nil {
			t.Fatal(err)
		}
		if got := rec.inputs[len(rec.inputs)-1]; got != want {
			t.Fatalf("tokenized %q, span text %q", got, want)
		}

		// Disjointness across the whole highlight family.
		hl := overlay.Highlights(buf)
		for i := 0; i < len(hl); i++ {
			for j := i + 1; j < len(hl); j++ {
				if hl[i].Range.Overlaps(hl[j].Range) {
					t.Fatalf("%s %s overlaps %s %s", hl[i].Tag, hl[i].Range, hl[j].Tag, hl[j].Range)
				}
			}
		}

		// Idempotence.
		if err := e.Rehighlight(region); err != nil {
			t.Fatalf("second rehighlight: %v", err)
		}
		if diff := cmp.Diff(once, overlay.State(buf)); diff != "" {
			t.Fatalf("second pass changed tags (-once +twice):\n%s", diff)
		}
	})
}
