package scheme

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/codeview/internal/logger"
	"github.com/bethropolis/codeview/internal/token"
)

// EditorStyle holds the editor surface settings of a scheme. Unset colors
// are tcell.ColorDefault and unset widths are nil.
type EditorStyle struct {
	Background               tcell.Color
	Foreground               tcell.Color
	SelectBackground         tcell.Color
	SelectForeground         tcell.Color
	InactiveSelectBackground tcell.Color
	Caret                    tcell.Color

	CaretWidth       *int
	BorderWidth      *int
	FocusBorderWidth *int
}

// Base is the style plain text is drawn with.
func (e EditorStyle) Base() tcell.Style {
	return tcell.StyleDefault.Foreground(e.Foreground).Background(e.Background)
}

// Selection is the style selected text is drawn with.
func (e EditorStyle) Selection() tcell.Style {
	st := e.Base()
	if e.SelectBackground != tcell.ColorDefault {
		st = st.Background(e.SelectBackground)
	}
	if e.SelectForeground != tcell.ColorDefault {
		st = st.Foreground(e.SelectForeground)
	}
	return st
}

// TagStyles maps each bound kind to its style. Kinds without an entry are
// drawn with the editor foreground.
type TagStyles map[token.Kind]tcell.Style

// Lookup returns the style for k, walking to the nearest bound ancestor.
func (t TagStyles) Lookup(k token.Kind) (tcell.Style, bool) {
	for {
		if st, ok := t[k]; ok {
			return st, true
		}
		parent, ok := k.Parent()
		if !ok {
			return tcell.StyleDefault, false
		}
		k = parent
	}
}

// Resolve turns a scheme into editor settings and per-kind styles.
//
// Cross-cutting kinds bind straight to general values. Every category
// subkind takes its table value, else general.<category>, else stays
// unbound. An unset value never overrides an earlier binding.
func Resolve(s *Scheme) (EditorStyle, TagStyles, error) {
	var ed EditorStyle
	if s == nil || s.General == nil {
		return ed, nil, ErrMissingGeneral
	}

	ed, err := resolveEditor(s.Editor)
	if err != nil {
		return EditorStyle{}, nil, fmt.Errorf("scheme %s: %w", s.Name, err)
	}

	styles := make(TagStyles)
	bind := func(k token.Kind, v any, where string) error {
		if v == nil {
			return nil
		}
		st, err := parseStyle(v)
		if err != nil {
			return fmt.Errorf("scheme %s: %s: %w", s.Name, where, err)
		}
		styles[k] = st
		return nil
	}

	for _, b := range crossCutting {
		if err := bind(b.kind, s.General[b.key], "general."+b.key); err != nil {
			return EditorStyle{}, nil, err
		}
	}
	for _, category := range Categories {
		tbl := s.Tables[category]
		fallback := s.General[category]
		for _, b := range categoryTables[category] {
			v, where := lookup(tbl, b.key), category+"."+b.key
			if v == nil {
				v, where = fallback, "general."+category
			}
			if err := bind(b.kind, v, where); err != nil {
				return EditorStyle{}, nil, err
			}
		}
	}

	logger.Debugf("Resolved scheme '%s': %d kinds bound", s.Name, len(styles))
	return ed, styles, nil
}

func lookup(tbl map[string]any, key string) any {
	if v, ok := tbl[key]; ok {
		return v
	}
	if alias, ok := keyAliases[key]; ok {
		return tbl[alias]
	}
	return nil
}

func resolveEditor(tbl map[string]any) (EditorStyle, error) {
	ed := EditorStyle{
		Background:               tcell.ColorDefault,
		Foreground:               tcell.ColorDefault,
		SelectBackground:         tcell.ColorDefault,
		SelectForeground:         tcell.ColorDefault,
		InactiveSelectBackground: tcell.ColorDefault,
		Caret:                    tcell.ColorDefault,
	}
	colors := []*tcell.Color{
		&ed.Background, &ed.Foreground, &ed.SelectBackground,
		&ed.SelectForeground, &ed.InactiveSelectBackground, &ed.Caret,
	}
	for i, key := range editorColorKeys {
		v, ok := tbl[key]
		if !ok {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return ed, fmt.Errorf("%w: editor.%s is a %T, not a color", ErrMalformed, key, v)
		}
		c, err := ParseColor(str)
		if err != nil {
			return ed, fmt.Errorf("editor.%s: %w", key, err)
		}
		*colors[i] = c
	}

	widths := []**int{&ed.CaretWidth, &ed.BorderWidth, &ed.FocusBorderWidth}
	for i, key := range editorWidthKeys {
		v, ok := tbl[key]
		if !ok {
			continue
		}
		n, err := toInt(v)
		if err != nil {
			return ed, fmt.Errorf("editor.%s: %w", key, err)
		}
		*widths[i] = &n
	}
	return ed, nil
}

// toInt accepts the integer shapes the TOML and YAML decoders produce.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		if n >= 0 {
			return n, nil
		}
	case int64:
		if n >= 0 && n <= math.MaxInt32 {
			return int(n), nil
		}
	case uint64:
		if n <= math.MaxInt32 {
			return int(n), nil
		}
	case float64:
		if n >= 0 && n == math.Trunc(n) && n <= math.MaxInt32 {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("%w: %v is not a width", ErrMalformed, v)
}

// parseStyle accepts a color string (the foreground) or a table with fg, bg,
// bold, italic, underline and reverse.
func parseStyle(v any) (tcell.Style, error) {
	st := tcell.StyleDefault
	switch val := v.(type) {
	case string:
		c, err := ParseColor(val)
		if err != nil {
			return st, err
		}
		return st.Foreground(c), nil
	case map[string]any:
		for key, field := range val {
			switch key {
			case "fg", "bg":
				str, ok := field.(string)
				if !ok {
					return st, fmt.Errorf("%w: %s is a %T, not a color", ErrMalformed, key, field)
				}
				c, err := ParseColor(str)
				if err != nil {
					return st, err
				}
				if key == "fg" {
					st = st.Foreground(c)
				} else {
					st = st.Background(c)
				}
			case "bold", "italic", "underline", "reverse":
				on, ok := field.(bool)
				if !ok {
					return st, fmt.Errorf("%w: %s is a %T, not a boolean", ErrMalformed, key, field)
				}
				switch key {
				case "bold":
					st = st.Bold(on)
				case "italic":
					st = st.Italic(on)
				case "underline":
					st = st.Underline(on)
				case "reverse":
					st = st.Reverse(on)
				}
			default:
				return st, fmt.Errorf("%w: unknown style attribute %q", ErrMalformed, key)
			}
		}
		return st, nil
	}
	return st, fmt.Errorf("%w: %T is not a color", ErrMalformed, v)
}
