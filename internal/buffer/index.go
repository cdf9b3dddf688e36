package buffer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/codeview/internal/types"
	"github.com/rivo/uniseg"
)

// Index resolves an index expression into a clamped position.
//
// Bases: "L.C", "L.end", "end", "insert" (or any mark name), "sel.first",
// "sel.last". Modifiers, applied left to right: "+N lines", "-N lines",
// "+N chars" (grapheme clusters), "+N indices" (runes), "linestart",
// "lineend". The sign may be separated from the count and the unit may be
// abbreviated to its first letter ("insert -1c").
func (sb *SliceBuffer) Index(expr string) (types.Position, error) {
	fields := splitIndexFields(expr)
	if len(fields) == 0 {
		return types.Position{}, fmt.Errorf("empty index expression: %w", ErrBadIndex)
	}
	pos, err := sb.indexBase(fields[0])
	if err != nil {
		return types.Position{}, err
	}

	rest := fields[1:]
	for len(rest) > 0 {
		f := rest[0]
		rest = rest[1:]
		switch {
		case f == "linestart":
			pos.Col = 0
		case f == "lineend":
			pos.Col = sb.lineLen(pos.Line)
		case f[0] == '+' || f[0] == '-':
			sign := 1
			if f[0] == '-' {
				sign = -1
			}
			body := f[1:]
			if body == "" {
				if len(rest) == 0 {
					return types.Position{}, fmt.Errorf("dangling %q in %q: %w", f, expr, ErrBadIndex)
				}
				body, rest = rest[0], rest[1:]
			}
			digits := strings.TrimRightFunc(body, func(r rune) bool { return r < '0' || r > '9' })
			unit := body[len(digits):]
			if unit == "" {
				if len(rest) == 0 {
					return types.Position{}, fmt.Errorf("missing unit in %q: %w", expr, ErrBadIndex)
				}
				unit, rest = rest[0], rest[1:]
			}
			n, err := strconv.Atoi(digits)
			if err != nil {
				return types.Position{}, fmt.Errorf("bad count %q in %q: %w", body, expr, ErrBadIndex)
			}
			pos, err = sb.applyOffset(pos, sign*n, unit)
			if err != nil {
				return types.Position{}, fmt.Errorf("%q: %w", expr, err)
			}
		default:
			return types.Position{}, fmt.Errorf("unknown modifier %q in %q: %w", f, expr, ErrBadIndex)
		}
	}
	return sb.clamp(pos), nil
}

// splitIndexFields splits on whitespace and also before an attached sign,
// so "insert-1c" and "insert -1c" parse the same way.
func splitIndexFields(expr string) []string {
	var fields []string
	for _, f := range strings.Fields(expr) {
		for len(f) > 1 {
			i := strings.IndexAny(f[1:], "+-")
			if i < 0 {
				break
			}
			fields = append(fields, f[:i+1])
			f = f[i+1:]
		}
		fields = append(fields, f)
	}
	return fields
}

func (sb *SliceBuffer) indexBase(base string) (types.Position, error) {
	switch base {
	case "end":
		return sb.End(), nil
	case "sel.first", "sel.last":
		sel := sb.tags.get(SelectionTag)
		if len(sel) == 0 {
			return types.Position{}, ErrNoSelection
		}
		if base == "sel.first" {
			return sel[0].Start, nil
		}
		return sel[len(sel)-1].End, nil
	}
	if p, ok := sb.marks[base]; ok {
		return sb.clamp(p), nil
	}

	lineStr, colStr, ok := strings.Cut(base, ".")
	if !ok {
		return types.Position{}, fmt.Errorf("unknown index %q: %w", base, ErrBadIndex)
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return types.Position{}, fmt.Errorf("bad line in index %q: %w", base, ErrBadIndex)
	}
	if line > len(sb.lines) {
		return sb.End(), nil
	}
	p := sb.clamp(types.Pos(line, 0))
	if colStr == "end" {
		p.Col = sb.lineLen(p.Line)
		return p, nil
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return types.Position{}, fmt.Errorf("bad column in index %q: %w", base, ErrBadIndex)
	}
	p.Col = col
	return sb.clamp(p), nil
}

func (sb *SliceBuffer) applyOffset(p types.Position, n int, unit string) (types.Position, error) {
	switch {
	case unitMatches(unit, "lines"):
		// Counts beyond the buffer saturate instead of overflowing.
		limit := len(sb.lines)
		p.Line += max(-limit, min(n, limit))
		return sb.clamp(p), nil
	case unitMatches(unit, "chars"):
		return sb.moveChars(p, n), nil
	case unitMatches(unit, "indices"):
		return sb.moveIndices(p, n), nil
	}
	return p, fmt.Errorf("unknown unit %q: %w", unit, ErrBadIndex)
}

func unitMatches(unit, full string) bool {
	return unit != "" && strings.HasPrefix(full, unit)
}

// moveIndices moves n runes, a line break counting as one.
func (sb *SliceBuffer) moveIndices(p types.Position, n int) types.Position {
	p = sb.clamp(p)
	for ; n > 0; n-- {
		if p.Col < sb.lineLen(p.Line) {
			p.Col++
		} else if p.Line < len(sb.lines) {
			p = types.Pos(p.Line+1, 0)
		} else {
			break
		}
	}
	for ; n < 0; n++ {
		if p.Col > 0 {
			p.Col--
		} else if p.Line > 1 {
			p = types.Pos(p.Line-1, sb.lineLen(p.Line-1))
		} else {
			break
		}
	}
	return p
}

// moveChars moves n user-perceived characters (grapheme clusters).
func (sb *SliceBuffer) moveChars(p types.Position, n int) types.Position {
	p = sb.clamp(p)
	for ; n > 0; n-- {
		line := sb.lines[p.Line-1]
		off := runeIndexToByteOffset(line, p.Col)
		if off >= len(line) {
			if p.Line == len(sb.lines) {
				break
			}
			p = types.Pos(p.Line+1, 0)
			continue
		}
		cluster, _, _, _ := uniseg.FirstGraphemeCluster(line[off:], -1)
		p.Col += utf8.RuneCount(cluster)
	}
	for ; n < 0; n++ {
		if p.Col == 0 {
			if p.Line == 1 {
				break
			}
			p = types.Pos(p.Line-1, sb.lineLen(p.Line-1))
			continue
		}
		line := sb.lines[p.Line-1]
		limit := runeIndexToByteOffset(line, p.Col)
		// Start of the cluster that ends at or straddles the current column.
		prev, col := 0, 0
		state := -1
		rest := line[:limit]
		for len(rest) > 0 {
			var cluster []byte
			cluster, rest, _, state = uniseg.FirstGraphemeCluster(rest, state)
			prev = col
			col += utf8.RuneCount(cluster)
		}
		p.Col = prev
	}
	return p
}
