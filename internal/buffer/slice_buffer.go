// internal/buffer/slice_buffer.go
package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/codeview/internal/logger"
	"github.com/bethropolis/codeview/internal/types"
)

// SliceBuffer stores text as a slice of lines (without newlines) and carries
// the tag store, marks, undo history and viewport of one editor view.
// Columns are rune indices.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	modified bool

	marks   map[string]types.Position
	tags    *tagStore
	history *history

	viewTop    int
	viewHeight int
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		lines:      [][]byte{{}},
		marks:      map[string]types.Position{InsertMark: types.Pos(1, 0)},
		tags:       newTagStore(),
		history:    newHistory(DefaultMaxHistory),
		viewTop:    1,
		viewHeight: 0,
	}
}

// NewSliceBufferFromString creates a buffer holding text.
func NewSliceBufferFromString(text string) *SliceBuffer {
	b := NewSliceBuffer()
	b.SetText(text)
	return b
}

// SetText replaces the whole content, dropping tags, marks and history.
func (sb *SliceBuffer) SetText(text string) {
	parts := strings.Split(text, "\n")
	lines := make([][]byte, len(parts))
	for i, p := range parts {
		lines[i] = []byte(p)
	}
	sb.lines = lines
	sb.tags.clear()
	sb.history.reset()
	sb.marks = map[string]types.Position{InsertMark: types.Pos(1, 0)}
	sb.modified = false
}

// Load reads a file into the buffer. A missing file yields an empty buffer.
func (sb *SliceBuffer) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.SetText("")
			sb.filePath = filePath
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	sb.SetText(strings.ReplaceAll(string(data), "\r\n", "\n"))
	sb.filePath = filePath
	logger.Debugf("SliceBuffer: loaded %d lines from %s", len(sb.lines), filePath)
	return nil
}

// Save writes the content to filePath, or to the path it was loaded from
// when filePath is empty.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}
	if err := os.WriteFile(path, []byte(sb.Text()), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	sb.filePath = path
	sb.modified = false
	return nil
}

// FilePath returns the path the buffer was loaded from.
func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// IsModified returns true if the buffer changed since it was loaded.
func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

// Text returns the whole content.
func (sb *SliceBuffer) Text() string {
	return string(bytes.Join(sb.lines, []byte("\n")))
}

// LineCount returns the number of lines (at least 1).
func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns the content of 1-based line n.
func (sb *SliceBuffer) Line(n int) (string, error) {
	if n < 1 || n > len(sb.lines) {
		return "", fmt.Errorf("line %d out of bounds (1-%d): %w", n, len(sb.lines), ErrBadIndex)
	}
	return string(sb.lines[n-1]), nil
}

func (sb *SliceBuffer) lineLen(n int) int {
	return utf8.RuneCount(sb.lines[n-1])
}

// End returns the position after the last character.
func (sb *SliceBuffer) End() types.Position {
	n := len(sb.lines)
	return types.Pos(n, sb.lineLen(n))
}

// clamp moves p to the nearest valid position.
func (sb *SliceBuffer) clamp(p types.Position) types.Position {
	if p.Line < 1 {
		return types.Pos(1, 0)
	}
	if p.Line > len(sb.lines) {
		return sb.End()
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := sb.lineLen(p.Line); p.Col > n {
		p.Col = n
	}
	return p
}

// Get returns the text in r, clamped to the buffer.
func (sb *SliceBuffer) Get(r types.Range) (string, error) {
	r = r.Normalize()
	start, end := sb.clamp(r.Start), sb.clamp(r.End)
	if start == end {
		return "", nil
	}
	startLine := sb.lines[start.Line-1]
	startOff := runeIndexToByteOffset(startLine, start.Col)
	if start.Line == end.Line {
		return string(startLine[startOff:runeIndexToByteOffset(startLine, end.Col)]), nil
	}
	var out bytes.Buffer
	out.Write(startLine[startOff:])
	for l := start.Line + 1; l < end.Line; l++ {
		out.WriteByte('\n')
		out.Write(sb.lines[l-1])
	}
	endLine := sb.lines[end.Line-1]
	out.WriteByte('\n')
	out.Write(endLine[:runeIndexToByteOffset(endLine, end.Col)])
	return out.String(), nil
}

// Advance walks text from p one rune at a time.
func (sb *SliceBuffer) Advance(p types.Position, text string) types.Position {
	for _, r := range text {
		if r == '\n' {
			p.Line++
			p.Col = 0
			continue
		}
		p.Col++
	}
	return p
}

// Apply performs a mutation, records it for undo and keeps tags and marks
// attached to the text they cover.
func (sb *SliceBuffer) Apply(m Mutation) (Edit, error) {
	switch m.Op {
	case OpInsert:
		at, err := sb.Index(m.From)
		if err != nil {
			return Edit{}, err
		}
		end := sb.replace(at, at, m.Text, true)
		return Edit{Op: m.Op, Start: at, End: end}, nil

	case OpDelete, OpReplace:
		from, to, err := sb.resolveSpan(m.From, m.To)
		if err != nil {
			return Edit{}, err
		}
		text := ""
		if m.Op == OpReplace {
			text = m.Text
		}
		end := sb.replace(from, to, text, true)
		return Edit{Op: m.Op, Start: from, End: end}, nil

	case OpUndo:
		c, err := sb.history.undo()
		if err != nil {
			return Edit{}, err
		}
		end := sb.replace(c.Start, sb.Advance(c.Start, c.Inserted), c.Removed, false)
		sb.marks[InsertMark] = end
		return Edit{Op: m.Op, Start: c.Start, End: end}, nil

	case OpRedo:
		c, err := sb.history.redo()
		if err != nil {
			return Edit{}, err
		}
		end := sb.replace(c.Start, sb.Advance(c.Start, c.Removed), c.Inserted, false)
		sb.marks[InsertMark] = end
		return Edit{Op: m.Op, Start: c.Start, End: end}, nil
	}
	return Edit{}, fmt.Errorf("unsupported buffer operation %v", m.Op)
}

// resolveSpan resolves the [from, to) arguments of a delete or replace.
// An empty `to` means one index unit after `from`.
func (sb *SliceBuffer) resolveSpan(fromExpr, toExpr string) (types.Position, types.Position, error) {
	from, err := sb.Index(fromExpr)
	if err != nil {
		return from, from, err
	}
	var to types.Position
	if toExpr == "" {
		to = sb.moveIndices(from, 1)
	} else if to, err = sb.Index(toExpr); err != nil {
		return from, from, err
	}
	r := types.NewRange(from, to)
	return r.Start, r.End, nil
}

// replace swaps [from, to) for text and returns the end of the new text.
func (sb *SliceBuffer) replace(from, to types.Position, text string, record bool) types.Position {
	removed, _ := sb.Get(types.Range{Start: from, End: to})
	if removed == "" && text == "" {
		return from
	}
	if removed != "" {
		sb.deleteSpan(from, to)
		sb.tags.shiftDelete(from, to)
		for name, p := range sb.marks {
			sb.marks[name] = shiftDelete(p, from, to)
		}
	}
	end := from
	if text != "" {
		end = sb.insertAt(from, text)
		sb.tags.shiftInsert(from, end)
		for name, p := range sb.marks {
			sb.marks[name] = shiftInsert(p, from, end, true)
		}
	}
	if record {
		sb.history.record(change{Start: from, Removed: removed, Inserted: text})
	}
	sb.modified = true
	return end
}

// insertAt splices text into the line slice and returns the end position.
func (sb *SliceBuffer) insertAt(pos types.Position, text string) types.Position {
	idx := pos.Line - 1
	line := sb.lines[idx]
	off := runeIndexToByteOffset(line, pos.Col)

	head := append([]byte(nil), line[:off]...)
	tail := append([]byte(nil), line[off:]...)
	parts := strings.Split(text, "\n")

	if len(parts) == 1 {
		merged := append(head, parts[0]...)
		sb.lines[idx] = append(merged, tail...)
		return types.Pos(pos.Line, pos.Col+utf8.RuneCountInString(parts[0]))
	}

	newLines := make([][]byte, len(parts))
	newLines[0] = append(head, parts[0]...)
	for i := 1; i < len(parts)-1; i++ {
		newLines[i] = []byte(parts[i])
	}
	last := parts[len(parts)-1]
	newLines[len(parts)-1] = append([]byte(last), tail...)

	lines := make([][]byte, 0, len(sb.lines)+len(parts)-1)
	lines = append(lines, sb.lines[:idx]...)
	lines = append(lines, newLines...)
	lines = append(lines, sb.lines[idx+1:]...)
	sb.lines = lines
	return types.Pos(pos.Line+len(parts)-1, utf8.RuneCountInString(last))
}

// deleteSpan removes [start, end), both already clamped and ordered.
func (sb *SliceBuffer) deleteSpan(start, end types.Position) {
	startLine := sb.lines[start.Line-1]
	endLine := sb.lines[end.Line-1]
	merged := append([]byte(nil), startLine[:runeIndexToByteOffset(startLine, start.Col)]...)
	merged = append(merged, endLine[runeIndexToByteOffset(endLine, end.Col):]...)

	lines := make([][]byte, 0, len(sb.lines)-(end.Line-start.Line))
	lines = append(lines, sb.lines[:start.Line-1]...)
	lines = append(lines, merged)
	lines = append(lines, sb.lines[end.Line:]...)
	sb.lines = lines
}

// SetMark places a named mark.
func (sb *SliceBuffer) SetMark(name string, p types.Position) {
	sb.marks[name] = sb.clamp(p)
}

// Mark returns a named mark.
func (sb *SliceBuffer) Mark(name string) (types.Position, bool) {
	p, ok := sb.marks[name]
	return p, ok
}

// TagAdd applies a tag over r.
func (sb *SliceBuffer) TagAdd(name string, r types.Range) error {
	r = r.Normalize()
	sb.tags.add(name, types.Range{Start: sb.clamp(r.Start), End: sb.clamp(r.End)})
	return nil
}

// TagRemove strips a tag from r.
func (sb *SliceBuffer) TagRemove(name string, r types.Range) error {
	r = r.Normalize()
	sb.tags.remove(name, types.Range{Start: sb.clamp(r.Start), End: sb.clamp(r.End)})
	return nil
}

// TagNames lists the tags covering at least one position, sorted.
func (sb *SliceBuffer) TagNames() []string {
	return sb.tags.names()
}

// TagRanges returns a copy of the ranges of a tag.
func (sb *SliceBuffer) TagRanges(name string) []types.Range {
	return sb.tags.get(name)
}

// SetViewport records the visible window: height lines starting at top.
func (sb *SliceBuffer) SetViewport(top, height int) {
	if top < 1 {
		top = 1
	}
	if top > len(sb.lines) {
		top = len(sb.lines)
	}
	if height < 0 {
		height = 0
	}
	sb.viewTop = top
	sb.viewHeight = height
}

// ViewportBounds returns the visible range. A zero height means the whole
// buffer is visible.
func (sb *SliceBuffer) ViewportBounds() types.Range {
	if sb.viewHeight == 0 {
		return types.Range{Start: types.Pos(1, 0), End: sb.End()}
	}
	top := sb.viewTop
	if top > len(sb.lines) {
		top = len(sb.lines)
	}
	last := top + sb.viewHeight - 1
	if last > len(sb.lines) {
		last = len(sb.lines)
	}
	return types.Range{Start: types.Pos(top, 0), End: types.Pos(last, sb.lineLen(last))}
}

// runeIndexToByteOffset converts a rune index to a byte offset, clamping to
// the line length.
func runeIndexToByteOffset(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	offset := 0
	for i := 0; i < runeIndex && offset < len(line); i++ {
		_, size := utf8.DecodeRune(line[offset:])
		offset += size
	}
	return offset
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
