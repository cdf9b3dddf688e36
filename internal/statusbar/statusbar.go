// Package statusbar renders the viewer's bottom line: file, cursor and
// highlighting state, or a short-lived message.
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/codeview/internal/scheme"
	"github.com/bethropolis/codeview/internal/types"
)

const noName = "[No Name]"

// Config holds the status bar styles and how long messages stay up.
type Config struct {
	StyleDefault   tcell.Style
	StyleMessage   tcell.Style
	MessageTimeout time.Duration
}

// DefaultConfig is used when the scheme leaves the editor colors unset.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// ConfigFromEditor inverts the scheme's editor colors for the bar and bolds
// messages.
func ConfigFromEditor(ed scheme.EditorStyle) Config {
	cfg := DefaultConfig()
	if ed.Foreground == tcell.ColorDefault || ed.Background == tcell.ColorDefault {
		return cfg
	}
	cfg.StyleDefault = tcell.StyleDefault.Foreground(ed.Background).Background(ed.Foreground)
	cfg.StyleMessage = cfg.StyleDefault.Bold(true)
	return cfg
}

type message struct {
	text    string
	expires time.Time
}

// StatusBar is safe for concurrent use; watchers may post messages while
// the UI loop draws.
type StatusBar struct {
	mu  sync.Mutex
	cfg Config
	now func() time.Time

	path     string
	modified bool
	cursor   types.Position
	scheme   string
	lexer    string
	msg      *message
}

// New returns a status bar showing an unnamed buffer at 1.0.
func New(cfg Config) *StatusBar {
	return &StatusBar{cfg: cfg, cursor: types.Pos(1, 0), now: time.Now}
}

// SetConfig swaps the styles, e.g. after a scheme change.
func (sb *StatusBar) SetConfig(cfg Config) {
	sb.mu.Lock()
	sb.cfg = cfg
	sb.mu.Unlock()
}

// SetFileInfo sets the file path and modified flag.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	sb.path, sb.modified = path, modified
	sb.mu.Unlock()
}

// SetCursorInfo sets the cursor position.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	sb.cursor = pos
	sb.mu.Unlock()
}

// SetHighlightInfo sets the scheme and lexer names.
func (sb *StatusBar) SetHighlightInfo(schemeName, lexerName string) {
	sb.mu.Lock()
	sb.scheme, sb.lexer = schemeName, lexerName
	sb.mu.Unlock()
}

// SetTemporaryMessage shows a message instead of the status until the
// configured timeout passes.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.msg = &message{
		text:    fmt.Sprintf(format, args...),
		expires: sb.now().Add(sb.cfg.MessageTimeout),
	}
}

// Text returns the line Draw would render.
func (sb *StatusBar) Text() string {
	text, _ := sb.line()
	return text
}

func (sb *StatusBar) line() (string, tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.msg != nil {
		if !sb.now().After(sb.msg.expires) {
			return sb.msg.text, sb.cfg.StyleMessage
		}
		sb.msg = nil
	}

	var b strings.Builder
	if sb.path == "" {
		b.WriteString(noName)
	} else {
		b.WriteString(sb.path)
	}
	if sb.modified {
		b.WriteString(" [Modified]")
	}
	fmt.Fprintf(&b, " -- %s -- %s/%s", sb.cursor, sb.lexer, sb.scheme)
	return b.String(), sb.cfg.StyleDefault
}

// Draw fills the last row of a width x height screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	y := height - 1
	text, style := sb.line()

	x := 0
	state := -1
	for rest := text; rest != "" && x < width; {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if x+w > width {
			break
		}
		runes := []rune(cluster)
		screen.SetContent(x, y, runes[0], runes[1:], style)
		if w == 0 {
			w = 1
		}
		x += w
	}
	for ; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}
