// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/codeview/internal/logger"
	"github.com/bethropolis/codeview/internal/scheme"
	"github.com/bethropolis/codeview/internal/types"
)

// Document is the text being drawn. Lines are 1-based.
type Document interface {
	LineCount() int
	Line(n int) (string, error)
}

// Styler decides how each character is drawn.
type Styler interface {
	StyleAt(p types.Position) tcell.Style
	EditorStyle() scheme.EditorStyle
}

// View is the scroll state of the text area.
type View struct {
	Top      int // first visible line, 1-based
	Left     int // leftmost visible cell
	Height   int // text rows, excluding the status bar
	TabWidth int
	Cursor   types.Position
}

// GutterWidth is the width of the line number column for a document of
// lineCount lines on a screen width cells wide, or 0 when it does not fit.
func GutterWidth(lineCount, width int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	maxDigits := int(math.Log10(float64(lineCount))) + 1
	gutterWidth := maxDigits + 1
	if gutterWidth >= width {
		return 0
	}
	return gutterWidth
}

// VisualColumn returns the cell offset of rune index col in line, with tabs
// expanded to tabWidth.
func VisualColumn(line string, col, tabWidth int) int {
	visual, runeIndex := 0, 0
	gr := uniseg.NewGraphemes(line)
	for runeIndex < col && gr.Next() {
		runes := gr.Runes()
		if runes[0] == '\t' {
			visual += tabWidth - visual%tabWidth
		} else {
			visual += gr.Width()
		}
		runeIndex += len(runes)
	}
	return visual
}

// DrawBuffer draws the visible part of doc with a line number gutter.
func DrawBuffer(t *TUI, doc Document, st Styler, v View) {
	width, _ := t.Size()
	if v.Height <= 0 || width <= 0 {
		return
	}
	if v.TabWidth <= 0 {
		v.TabWidth = 4
	}

	ed := st.EditorStyle()
	defaultStyle := ed.Base()
	lineNumberStyle := defaultStyle.Dim(true)

	lineCount := doc.LineCount()
	maxDigits := int(math.Log10(float64(max(lineCount, 1)))) + 1
	gutterWidth := GutterWidth(lineCount, width)
	textAreaWidth := width - gutterWidth

	for screenY := 0; screenY < v.Height; screenY++ {
		lineNum := v.Top + screenY

		for fillX := 0; fillX < width; fillX++ {
			t.screen.SetContent(fillX, screenY, ' ', nil, defaultStyle)
		}
		if lineNum > lineCount {
			continue
		}

		if gutterWidth > 0 {
			style := lineNumberStyle
			if v.Cursor.Line == lineNum {
				style = defaultStyle.Bold(true)
			}
			for i, r := range fmt.Sprintf("%*d", maxDigits, lineNum) {
				t.screen.SetContent(i, screenY, r, nil, style)
			}
		}

		line, err := doc.Line(lineNum)
		if err != nil {
			logger.DebugTagf("draw", "DrawBuffer: error getting line %d: %v", lineNum, err)
			continue
		}

		gr := uniseg.NewGraphemes(line)
		visualX, runeIndex := 0, 0
		for gr.Next() {
			runes := gr.Runes()
			clusterWidth := gr.Width()
			if runes[0] == '\t' {
				clusterWidth = v.TabWidth - visualX%v.TabWidth
			}
			style := st.StyleAt(types.Pos(lineNum, runeIndex))

			for cw := 0; cw < clusterWidth; cw++ {
				screenX := visualX + cw - v.Left + gutterWidth
				if screenX < gutterWidth || screenX >= width {
					continue
				}
				switch {
				case runes[0] == '\t' || cw > 0:
					t.screen.SetContent(screenX, screenY, ' ', nil, style)
				default:
					t.screen.SetContent(screenX, screenY, runes[0], runes[1:], style)
				}
			}

			visualX += clusterWidth
			runeIndex += len(runes)
			if visualX >= v.Left+textAreaWidth {
				break
			}
		}
	}
}

// DrawCursor positions the terminal cursor, hiding it when it is scrolled
// out of view.
func DrawCursor(t *TUI, doc Document, v View) {
	width, _ := t.Size()
	gutterWidth := GutterWidth(doc.LineCount(), width)

	cursorVisualCol := 0
	if line, err := doc.Line(v.Cursor.Line); err == nil {
		cursorVisualCol = VisualColumn(line, v.Cursor.Col, max(v.TabWidth, 1))
	}
	screenX := cursorVisualCol - v.Left + gutterWidth
	screenY := v.Cursor.Line - v.Top

	if screenX < gutterWidth || screenX >= width || screenY < 0 || screenY >= v.Height {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(screenX, screenY)
}
