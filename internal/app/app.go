// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/codeview/internal/buffer"
	"github.com/bethropolis/codeview/internal/clipboard"
	"github.com/bethropolis/codeview/internal/codeview"
	"github.com/bethropolis/codeview/internal/config"
	"github.com/bethropolis/codeview/internal/event"
	"github.com/bethropolis/codeview/internal/input"
	"github.com/bethropolis/codeview/internal/lexer"
	"github.com/bethropolis/codeview/internal/logger"
	"github.com/bethropolis/codeview/internal/scheme"
	"github.com/bethropolis/codeview/internal/statusbar"
	"github.com/bethropolis/codeview/internal/token"
	"github.com/bethropolis/codeview/internal/tui"
)

// Options configures an App.
type Options struct {
	Config   *config.Config
	FilePath string
	// UI defaults to the real terminal.
	UI *tui.TUI
	// Clipboard defaults to the one the config asks for.
	Clipboard clipboard.Clipboard
}

// App is the terminal viewer: it owns the screen, the buffer and its code
// view, and turns key presses into edits.
type App struct {
	ui        *tui.TUI
	buf       *buffer.SliceBuffer
	view      *codeview.CodeView
	statusBar *statusbar.StatusBar
	input     *input.InputProcessor
	events    *event.Manager
	cfg       *config.Config

	schemeFile string
	watcher    *SchemeWatcher

	top, left int
	quit      bool
}

// NewApp loads the file and builds the view over it.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	ui := opts.UI
	if ui == nil {
		var err error
		if ui, err = tui.New(); err != nil {
			return nil, fmt.Errorf("TUI initialization failed: %w", err)
		}
	}

	buf := buffer.NewSliceBuffer()
	if opts.FilePath != "" {
		if err := buf.Load(opts.FilePath); err != nil {
			return nil, err
		}
	}

	events := event.NewManager()
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.New(cfg.Editor.SystemClipboard)
	}
	view, schemeFile, err := NewView(cfg, buf, events, clip)
	if err != nil {
		return nil, err
	}

	a := &App{
		ui:         ui,
		buf:        buf,
		view:       view,
		statusBar:  statusbar.New(statusbar.ConfigFromEditor(view.EditorStyle())),
		input:      input.NewInputProcessor(),
		events:     events,
		cfg:        cfg,
		schemeFile: schemeFile,
		top:        1,
	}
	events.Subscribe(event.TypeContentChanged, a.handleContentChanged)
	events.Subscribe(event.TypeSchemeChanged, a.handleSchemeChanged)
	events.Subscribe(event.TypeHighlighted, a.handleHighlighted)

	a.updateStatusBarContent()
	a.applyScheme()
	if err := a.syncViewport(); err != nil {
		return nil, err
	}
	return a, nil
}

// NewView builds a code view over buf from the configuration. It returns the
// scheme file path when the configured scheme is a file rather than a name.
func NewView(cfg *config.Config, buf *buffer.SliceBuffer, events *event.Manager, clip clipboard.Clipboard) (*codeview.CodeView, string, error) {
	tk, err := Tokenizer(cfg.Editor, buf.FilePath(), buf.Text())
	if err != nil {
		return nil, "", err
	}

	catalog, err := scheme.NewBundledCatalog()
	if err != nil {
		return nil, "", err
	}
	if dir := cfg.SchemeDirPath(); dir != "" {
		if catalog, err = catalog.WithDir(dir); err != nil {
			logger.Warnf("Ignoring scheme directory: %v", err)
			catalog, _ = scheme.NewBundledCatalog()
		}
	}

	opts := codeview.Options{
		Tokenizer: tk,
		Catalog:   catalog,
		Clipboard: clip,
		Events:    events,
		TabWidth:  cfg.Editor.TabWidth,
	}
	var schemeFile string
	if isFile(cfg.Editor.Scheme) {
		s, err := scheme.LoadFile(cfg.Editor.Scheme)
		if err != nil {
			return nil, "", err
		}
		opts.SchemeValue = s
		schemeFile = cfg.Editor.Scheme
	} else {
		opts.Scheme = cfg.Editor.Scheme
	}

	view, err := codeview.New(buf, opts)
	if err != nil {
		return nil, "", err
	}
	return view, schemeFile, nil
}

// Tokenizer picks the tokenizer the editor config asks for. "auto" matches
// the file name and content.
func Tokenizer(ed config.EditorConfig, path, content string) (token.Tokenizer, error) {
	if ed.Lexer != "" && ed.Lexer != config.DefaultLexer {
		return lexer.Get(ed.Lexer)
	}
	mode, err := lexer.ParseMode(ed.HighlightMode)
	if err != nil {
		return nil, err
	}
	return lexer.ForFile(path, content, mode), nil
}

func isFile(name string) bool {
	switch filepath.Ext(name) {
	case ".toml", ".yaml", ".yml":
	default:
		return false
	}
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}

// View returns the code view.
func (a *App) View() *codeview.CodeView { return a.view }

// Buffer returns the buffer being edited.
func (a *App) Buffer() *buffer.SliceBuffer { return a.buf }

// Run draws and handles events until the user quits.
func (a *App) Run() error {
	defer a.ui.Close()
	defer a.stopWatch()

	a.statusBar.SetTemporaryMessage("Ctrl+Q Quit | Ctrl+S Save | Ctrl+T Next scheme")
	for !a.quit {
		a.draw()
		ev := a.ui.PollEvent()
		if ev == nil {
			return nil
		}
		a.HandleEvent(ev)
	}
	if a.buf.IsModified() {
		logger.Warnf("Exited with unsaved changes.")
	}
	logger.Infof("Exiting application.")
	return nil
}

// HandleEvent processes one screen event. It reports whether the screen
// needs a redraw.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.ui.Sync()
		a.report(a.syncViewport())
		return true
	case *tcell.EventKey:
		action := a.input.ProcessEvent(ev)
		if action.Action == input.ActionUnknown {
			return false
		}
		a.report(a.perform(action))
		a.report(a.syncViewport())
		return true
	case *schemeReloadEvent:
		a.report(a.reloadScheme(ev.path))
		return true
	}
	return false
}

// report surfaces an action error on the status bar.
func (a *App) report(err error) {
	if err == nil {
		return
	}
	logger.Warnf("App: %v", err)
	a.statusBar.SetTemporaryMessage("Error: %v", err)
}

// Quitting reports whether the user asked to quit.
func (a *App) Quitting() bool { return a.quit }

// viewHeight is the number of text rows.
func (a *App) viewHeight() int {
	_, height := a.ui.Size()
	h := height - 1
	if a.cfg.Editor.ViewportHeight > 0 && a.cfg.Editor.ViewportHeight < h {
		h = a.cfg.Editor.ViewportHeight
	}
	return max(h, 1)
}

// syncViewport scrolls to keep the cursor visible, publishes the viewport to
// the buffer and lets the engine re-highlight it if it changed.
func (a *App) syncViewport() error {
	height := a.viewHeight()
	cursor := a.view.Cursor()
	if cursor.Line < a.top {
		a.top = cursor.Line
	}
	if cursor.Line >= a.top+height {
		a.top = cursor.Line - height + 1
	}
	a.top = max(1, min(a.top, a.buf.LineCount()))

	width, _ := a.ui.Size()
	textWidth := width - tui.GutterWidth(a.buf.LineCount(), width)
	if line, err := a.buf.Line(cursor.Line); err == nil && textWidth > 0 {
		col := tui.VisualColumn(line, cursor.Col, a.view.TabWidth())
		if col < a.left {
			a.left = col
		}
		if col >= a.left+textWidth {
			a.left = col - textWidth + 1
		}
	}

	a.buf.SetViewport(a.top, height)
	a.statusBar.SetCursorInfo(cursor)
	return a.view.OnViewportChange()
}

func (a *App) tuiView() tui.View {
	return tui.View{
		Top:      a.top,
		Left:     a.left,
		Height:   a.viewHeight(),
		TabWidth: a.view.TabWidth(),
		Cursor:   a.view.Cursor(),
	}
}

var errNoFile = errors.New("no file name; start codeview with a path to save")
