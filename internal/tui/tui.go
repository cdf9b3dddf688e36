// Package tui owns the terminal screen and draws buffers onto it.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TUI is the terminal screen the viewer draws on.
type TUI struct {
	screen tcell.Screen
}

// New opens the real terminal.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s)
}

// NewWithScreen initializes s, usually a tcell.SimulationScreen in tests.
func NewWithScreen(s tcell.Screen) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	return &TUI{screen: s}, nil
}

// Close restores the terminal.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// SetBase sets the style blank cells are painted with.
func (t *TUI) SetBase(st tcell.Style) {
	t.screen.SetStyle(st)
}

// Frame clears the screen for a redraw and returns its size.
func (t *TUI) Frame() (width, height int) {
	t.screen.Clear()
	return t.screen.Size()
}

// Flush shows everything drawn since Frame.
func (t *TUI) Flush() { t.screen.Show() }

// Sync repaints the whole terminal, after a resize for instance.
func (t *TUI) Sync() { t.screen.Sync() }

// Size returns the screen size in cells.
func (t *TUI) Size() (int, int) { return t.screen.Size() }

// PollEvent blocks for the next event. It returns nil once the screen is
// closed.
func (t *TUI) PollEvent() tcell.Event { return t.screen.PollEvent() }

// PostEvent queues ev for PollEvent. It is safe from any goroutine.
func (t *TUI) PostEvent(ev tcell.Event) error { return t.screen.PostEvent(ev) }

// Screen exposes the underlying screen to components that draw themselves.
func (t *TUI) Screen() tcell.Screen { return t.screen }
