// Package codeview wires a buffer, a tokenizer and a color scheme into one
// highlighted editing surface.
package codeview

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/codeview/internal/buffer"
	"github.com/bethropolis/codeview/internal/clipboard"
	"github.com/bethropolis/codeview/internal/edit"
	"github.com/bethropolis/codeview/internal/event"
	"github.com/bethropolis/codeview/internal/highlight"
	"github.com/bethropolis/codeview/internal/lexer"
	"github.com/bethropolis/codeview/internal/logger"
	"github.com/bethropolis/codeview/internal/overlay"
	"github.com/bethropolis/codeview/internal/scheme"
	"github.com/bethropolis/codeview/internal/token"
	"github.com/bethropolis/codeview/internal/types"
)

// DefaultTabWidth is used when Options.TabWidth is zero.
const DefaultTabWidth = 4

// Buffer is what a CodeView edits: the highlighting buffer contract plus
// cursor placement.
type Buffer interface {
	buffer.Buffer
	SetMark(name string, p types.Position)
}

// Options configures a CodeView. Zero fields take defaults in New and are
// left alone by Configure.
type Options struct {
	// Tokenizer defaults to plain text.
	Tokenizer token.Tokenizer
	// Scheme names a catalog scheme. Ignored when SchemeValue is set.
	Scheme      string
	SchemeValue *scheme.Scheme
	// Catalog defaults to the bundled schemes.
	Catalog   *scheme.Catalog
	Clipboard clipboard.Clipboard
	Events    *event.Manager
	TabWidth  int
}

// CodeView is a highlighted view over a buffer.
type CodeView struct {
	buf         Buffer
	engine      *highlight.Engine
	interceptor *edit.Interceptor
	overlay     *overlay.Overlay
	events      *event.Manager
	catalog     *scheme.Catalog
	clip        clipboard.Clipboard

	scheme   *scheme.Scheme
	editor   scheme.EditorStyle
	tags     scheme.TagStyles
	tabWidth int
}

// New builds a CodeView over buf and highlights the whole buffer.
func New(buf Buffer, opts Options) (*CodeView, error) {
	cv := &CodeView{
		buf:      buf,
		overlay:  overlay.New(buf),
		events:   opts.Events,
		catalog:  opts.Catalog,
		clip:     opts.Clipboard,
		tabWidth: opts.TabWidth,
	}
	if cv.events == nil {
		cv.events = event.NewManager()
	}
	if cv.clip == nil {
		cv.clip = clipboard.New(false)
	}
	if cv.tabWidth <= 0 {
		cv.tabWidth = DefaultTabWidth
	}
	if cv.catalog == nil {
		c, err := scheme.NewBundledCatalog()
		if err != nil {
			return nil, fmt.Errorf("loading bundled schemes: %w", err)
		}
		cv.catalog = c
	}

	tk := opts.Tokenizer
	if tk == nil {
		tk = lexer.Plain{}
	}
	cv.engine = highlight.New(buf, tk, cv.events)
	cv.interceptor = edit.NewInterceptor(buf, cv.engine, cv.events)

	name := opts.Scheme
	if name == "" && opts.SchemeValue == nil {
		name = scheme.DefaultName
	}
	if err := cv.setScheme(name, opts.SchemeValue); err != nil {
		return nil, err
	}
	if err := cv.engine.HighlightAll(); err != nil {
		return nil, err
	}
	return cv, nil
}

// Configure replaces the tokenizer and/or the scheme. A new tokenizer
// re-highlights the whole buffer; a new scheme only restyles the existing
// tags. The scheme is checked first, so a bad one leaves everything as is.
func (cv *CodeView) Configure(opts Options) error {
	if opts.Scheme != "" || opts.SchemeValue != nil {
		if err := cv.setScheme(opts.Scheme, opts.SchemeValue); err != nil {
			return err
		}
	}
	if opts.TabWidth > 0 {
		cv.tabWidth = opts.TabWidth
	}
	if opts.Tokenizer != nil {
		return cv.engine.SetTokenizer(opts.Tokenizer)
	}
	return nil
}

func (cv *CodeView) setScheme(name string, s *scheme.Scheme) error {
	if s == nil {
		var err error
		if s, err = cv.catalog.Load(name); err != nil {
			return err
		}
	}
	ed, tags, err := scheme.Resolve(s)
	if err != nil {
		return err
	}
	cv.scheme, cv.editor, cv.tags = s, ed, tags
	logger.Infof("Color scheme set to: %s", s.Name)
	cv.events.Dispatch(event.TypeSchemeChanged, event.SchemeChangedData{Name: s.Name})
	return nil
}

// Insert, Delete, Replace, Undo and Redo go through the edit interceptor.

func (cv *CodeView) Insert(at, text string) (edit.Result, error) {
	return cv.interceptor.Insert(at, text)
}

func (cv *CodeView) Delete(from, to string) (edit.Result, error) {
	return cv.interceptor.Delete(from, to)
}

func (cv *CodeView) Replace(from, to, text string) (edit.Result, error) {
	return cv.interceptor.Replace(from, to, text)
}

func (cv *CodeView) Undo() (edit.Result, error) { return cv.interceptor.Undo() }

func (cv *CodeView) Redo() (edit.Result, error) { return cv.interceptor.Redo() }

// MoveCursor places the insertion cursor at an index expression.
func (cv *CodeView) MoveCursor(expr string) error {
	p, err := cv.buf.Index(expr)
	if err != nil {
		return err
	}
	cv.buf.SetMark(buffer.InsertMark, p)
	return nil
}

// Cursor returns the insertion cursor.
func (cv *CodeView) Cursor() types.Position {
	p, _ := cv.buf.Index(buffer.InsertMark)
	return p
}

// SelectAll selects the whole buffer and moves the cursor to its end.
func (cv *CodeView) SelectAll() error {
	end, err := cv.buf.Index("end")
	if err != nil {
		return err
	}
	if err := cv.buf.TagAdd(buffer.SelectionTag, types.NewRange(types.Pos(1, 0), end)); err != nil {
		return err
	}
	cv.buf.SetMark(buffer.InsertMark, end)
	return nil
}

// ClearSelection removes the selection.
func (cv *CodeView) ClearSelection() error {
	end, err := cv.buf.Index("end")
	if err != nil {
		return err
	}
	return cv.buf.TagRemove(buffer.SelectionTag, types.NewRange(types.Pos(1, 0), end))
}

// Selection returns the selected text. ok is false without a selection.
func (cv *CodeView) Selection() (string, bool, error) {
	text, err := cv.span("sel.first", "sel.last")
	if errors.Is(err, buffer.ErrNoSelection) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, text != "", nil
}

// Copy puts the selection on the clipboard, or the cursor's line when
// nothing is selected, and returns what it copied.
func (cv *CodeView) Copy() (string, error) {
	text, ok, err := cv.Selection()
	if err != nil {
		return "", err
	}
	if !ok {
		if text, err = cv.span("insert linestart", "insert lineend"); err != nil {
			return "", err
		}
	}
	if err := cv.clip.WriteAll(text); err != nil {
		return "", fmt.Errorf("copy to clipboard: %w", err)
	}
	logger.Debugf("CodeView: copied %d bytes", len(text))
	return text, nil
}

// Paste replaces the selection with the clipboard text, or inserts it at the
// cursor when nothing is selected.
func (cv *CodeView) Paste() (edit.Result, error) {
	text, err := cv.clip.ReadAll()
	if err != nil {
		return edit.Result{}, fmt.Errorf("paste from clipboard: %w", err)
	}
	if text == "" {
		return edit.Result{}, nil
	}
	if _, ok, err := cv.Selection(); err != nil {
		return edit.Result{}, err
	} else if ok {
		if _, err := cv.Delete("sel.first", "sel.last"); err != nil {
			return edit.Result{}, err
		}
	}
	if err := cv.ClearSelection(); err != nil {
		return edit.Result{}, err
	}
	res, err := cv.Insert(buffer.InsertMark, text)
	logger.Debugf("CodeView: pasted %d bytes", len(text))
	return res, err
}

func (cv *CodeView) span(from, to string) (string, error) {
	start, err := cv.buf.Index(from)
	if err != nil {
		return "", err
	}
	end, err := cv.buf.Index(to)
	if err != nil {
		return "", err
	}
	return cv.buf.Get(types.NewRange(start, end))
}

// OnViewportChange re-highlights the visible range if it changed.
func (cv *CodeView) OnViewportChange() error {
	ran, err := cv.engine.OnViewportChange()
	if err != nil {
		return err
	}
	if ran {
		cv.events.Dispatch(event.TypeViewportChanged, event.ViewportChangedData{Bounds: cv.buf.ViewportBounds()})
	}
	return nil
}

// SchemeName returns the active scheme's name.
func (cv *CodeView) SchemeName() string { return cv.scheme.Name }

// EditorStyle returns the active scheme's editor settings.
func (cv *CodeView) EditorStyle() scheme.EditorStyle { return cv.editor }

// TagStyle returns the style bound to kind or its nearest bound ancestor.
func (cv *CodeView) TagStyle(kind token.Kind) (tcell.Style, bool) {
	return cv.tags.Lookup(kind)
}

// StyleAt returns the style the character at p is drawn with: the
// selection style inside the selection, else its highlight kind's
// foreground and attributes over the editor background.
func (cv *CodeView) StyleAt(p types.Position) tcell.Style {
	for _, r := range cv.buf.TagRanges(buffer.SelectionTag) {
		if r.Contains(p) {
			return cv.editor.Selection()
		}
	}
	base := cv.editor.Base()
	st, ok := cv.tags.Lookup(cv.overlay.KindAt(p))
	if !ok {
		return base
	}
	fg, bg, attrs := st.Decompose()
	if fg != tcell.ColorDefault {
		base = base.Foreground(fg)
	}
	if bg != tcell.ColorDefault {
		base = base.Background(bg)
	}
	return base.Attributes(attrs)
}

// TabWidth returns the configured tab width in cells.
func (cv *CodeView) TabWidth() int { return cv.tabWidth }

// Events returns the manager the view dispatches on.
func (cv *CodeView) Events() *event.Manager { return cv.events }

// Engine returns the highlight engine.
func (cv *CodeView) Engine() *highlight.Engine { return cv.engine }

// Catalog returns the scheme catalog.
func (cv *CodeView) Catalog() *scheme.Catalog { return cv.catalog }
