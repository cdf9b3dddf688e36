package buffer

import (
	"github.com/bethropolis/codeview/internal/logger"
	"github.com/bethropolis/codeview/internal/types"
)

// DefaultMaxHistory bounds the undo stack.
const DefaultMaxHistory = 100

// change is one reversible edit: at Start, Removed was replaced by Inserted.
type change struct {
	Start    types.Position
	Removed  string
	Inserted string
}

// history is a linear undo/redo stack.
type history struct {
	changes      []change
	currentIndex int // index of the next change to redo
	maxHistory   int
}

func newHistory(maxHistory int) *history {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &history{
		changes:    make([]change, 0, 16),
		maxHistory: maxHistory,
	}
}

// record adds a change, clearing any redo history.
func (h *history) record(c change) {
	if h.currentIndex < len(h.changes) {
		h.changes = h.changes[:h.currentIndex]
	}
	h.changes = append(h.changes, c)
	if len(h.changes) > h.maxHistory {
		h.changes = h.changes[len(h.changes)-h.maxHistory:]
	}
	h.currentIndex = len(h.changes)
	logger.DebugTagf("history", "recorded change at %s, index %d of %d", c.Start, h.currentIndex, len(h.changes))
}

// undo returns the change to revert.
func (h *history) undo() (change, error) {
	if h.currentIndex <= 0 {
		return change{}, ErrNothingToUndo
	}
	h.currentIndex--
	return h.changes[h.currentIndex], nil
}

// redo returns the change to reapply.
func (h *history) redo() (change, error) {
	if h.currentIndex >= len(h.changes) {
		return change{}, ErrNothingToRedo
	}
	c := h.changes[h.currentIndex]
	h.currentIndex++
	return c, nil
}

func (h *history) reset() {
	h.changes = h.changes[:0]
	h.currentIndex = 0
}
