package app

import (
	"github.com/bethropolis/codeview/internal/event"
	"github.com/bethropolis/codeview/internal/logger"
)

// handleContentChanged refreshes the modified flag and cursor.
func (a *App) handleContentChanged(e event.Event) bool {
	a.updateStatusBarContent()
	return false
}

// handleSchemeChanged restyles the screen.
func (a *App) handleSchemeChanged(e event.Event) bool {
	a.applyScheme()
	return false
}

func (a *App) handleHighlighted(e event.Event) bool {
	if data, ok := e.Data.(event.HighlightedData); ok {
		logger.DebugTagf("draw", "highlighted %s %s: %d tokens, %d tagged",
			data.Region, data.Span, data.Tokens, data.Tagged)
	}
	return false
}
