// internal/types/position.go
package types

import "fmt"

// Position represents an address within the buffer.
// Line is the 1-based line number.
// Col is the 0-based column, counted in the buffer's native unit (runes for
// SliceBuffer) so multi-byte characters never shift tag anchoring.
type Position struct {
	Line int
	Col  int
}

// Pos is shorthand for building a Position.
func Pos(line, col int) Position {
	return Position{Line: line, Col: col}
}

// Compare returns -1, 0 or +1 depending on whether p sorts before, equal to
// or after other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Col < other.Col:
		return -1
	case p.Col > other.Col:
		return 1
	}
	return 0
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// String formats the position as "line.col", the same form index
// expressions accept.
func (p Position) String() string {
	return fmt.Sprintf("%d.%d", p.Line, p.Col)
}
