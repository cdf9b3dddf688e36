package app

import (
	"github.com/bethropolis/codeview/internal/logger"
	"github.com/bethropolis/codeview/internal/statusbar"
	"github.com/bethropolis/codeview/internal/tui"
)

// draw clears the screen and redraws all components.
func (a *App) draw() {
	width, height := a.ui.Frame()
	logger.DebugTagf("draw", "screen %dx%d, top line %d", width, height, a.top)

	v := a.tuiView()
	tui.DrawBuffer(a.ui, a.buf, a.view, v)
	a.statusBar.Draw(a.ui.Screen(), width, height)
	tui.DrawCursor(a.ui, a.buf, v)
	a.ui.Flush()
}

// updateStatusBarContent pushes the current view state to the status bar.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetFileInfo(a.buf.FilePath(), a.buf.IsModified())
	a.statusBar.SetCursorInfo(a.view.Cursor())
	a.statusBar.SetHighlightInfo(a.view.SchemeName(), a.view.Engine().Tokenizer().Name())
}

// applyScheme restyles the screen and status bar for the active scheme.
func (a *App) applyScheme() {
	a.ui.SetBase(a.view.EditorStyle().Base())
	a.statusBar.SetConfig(statusbar.ConfigFromEditor(a.view.EditorStyle()))
	a.updateStatusBarContent()
}
