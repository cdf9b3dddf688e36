package scheme

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor converts "#rgb", "#rrggbb", a color name known to tcell, or the
// keywords "default" and "reset" into a tcell.Color.
func ParseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return tcell.ColorDefault, fmt.Errorf("%w: empty color", ErrMalformed)
	case s == "default":
		return tcell.ColorDefault, nil
	case s == "reset":
		return tcell.ColorReset, nil
	case strings.HasPrefix(s, "#"):
		if len(s) != 4 && len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("%w: invalid hex color '%s', must be #RGB or #RRGGBB", ErrMalformed, s)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("%w: invalid hex color '%s': %v", ErrMalformed, s, err)
		}
		r, g, b := c.RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
	}
	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("%w: unknown color '%s'", ErrMalformed, s)
}

// Hex renders a color as "#rrggbb", or its keyword for the special values.
func Hex(c tcell.Color) string {
	switch c {
	case tcell.ColorDefault:
		return "default"
	case tcell.ColorReset:
		return "reset"
	}
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
