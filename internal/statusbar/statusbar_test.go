package statusbar

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/codeview/internal/scheme"
	"github.com/bethropolis/codeview/internal/types"
)

func TestStatusBar_Text(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetFileInfo("main.py", true)
	sb.SetCursorInfo(types.Pos(3, 4))
	sb.SetHighlightInfo("dracula", "Python")
	assert.Equal(t, "main.py [Modified] -- 3.4 -- Python/dracula", sb.Text())
}

func TestStatusBar_MessageExpires(t *testing.T) {
	now := time.Unix(0, 0)
	sb := New(DefaultConfig())
	sb.now = func() time.Time { return now }

	sb.SetTemporaryMessage("copied %d bytes", 12)
	assert.Equal(t, "copied 12 bytes", sb.Text())

	now = now.Add(5 * time.Second)
	assert.Equal(t, "[No Name] -- 1.0 -- /", sb.Text())
}

func TestStatusBar_Draw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 3)

	sb := New(DefaultConfig())
	sb.SetFileInfo("a.go", false)
	sb.Draw(screen, 40, 3)
	screen.Show()

	cells, width, _ := screen.GetContents()
	var got []rune
	for x := 0; x < 4; x++ {
		got = append(got, cells[2*width+x].Runes[0])
	}
	assert.Equal(t, "a.go", string(got))
}

func TestConfigFromEditor(t *testing.T) {
	assert.Equal(t, DefaultConfig(), ConfigFromEditor(scheme.EditorStyle{
		Foreground: tcell.ColorDefault,
		Background: tcell.ColorDefault,
	}))

	cfg := ConfigFromEditor(scheme.EditorStyle{Foreground: tcell.ColorWhite, Background: tcell.ColorBlack})
	fg, bg, _ := cfg.StyleDefault.Decompose()
	assert.Equal(t, tcell.ColorBlack, fg)
	assert.Equal(t, tcell.ColorWhite, bg)
}
