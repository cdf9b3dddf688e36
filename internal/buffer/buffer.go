// internal/buffer/buffer.go
package buffer

import (
	"fmt"

	"github.com/bethropolis/codeview/internal/types"
)

// SelectionTag is the structural tag marking the active selection.
const SelectionTag = "sel"

// InsertMark is the mark tracking the insertion cursor.
const InsertMark = "insert"

// Op identifies a buffer mutation.
type Op int

const (
	OpInsert Op = iota
	OpDelete
	OpReplace
	OpUndo
	OpRedo
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	case OpUndo:
		return "undo"
	case OpRedo:
		return "redo"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Mutation describes one request against the buffer. From and To are index
// expressions (see SliceBuffer.Index). Insert uses From and Text; Delete uses
// From and an optional To (one index unit when empty); Replace uses all three.
// Undo and Redo ignore the arguments.
type Mutation struct {
	Op   Op
	From string
	To   string
	Text string
}

// Insert builds an insert mutation.
func Insert(at, text string) Mutation {
	return Mutation{Op: OpInsert, From: at, Text: text}
}

// Delete builds a delete mutation over [from, to).
func Delete(from, to string) Mutation {
	return Mutation{Op: OpDelete, From: from, To: to}
}

// Replace builds a replace mutation over [from, to).
func Replace(from, to, text string) Mutation {
	return Mutation{Op: OpReplace, From: from, To: to, Text: text}
}

// Edit reports what an applied mutation changed. Start..End spans the text
// now occupying the edited place (empty for a pure deletion).
type Edit struct {
	Op    Op
	Start types.Position
	End   types.Position
}

// Buffer is the mutable text store the highlighting core works against.
// Positions use 1-based lines and 0-based columns in the buffer's native unit.
type Buffer interface {
	// Get returns the text in r.
	Get(r types.Range) (string, error)
	// Apply is the single mutation entry point.
	Apply(m Mutation) (Edit, error)
	// Index resolves an index expression such as "insert", "3.end" or
	// "1.0 +2 lines".
	Index(expr string) (types.Position, error)
	// Advance returns the position reached by walking text from p, counted in
	// the buffer's native unit.
	Advance(p types.Position, text string) types.Position

	TagAdd(name string, r types.Range) error
	TagRemove(name string, r types.Range) error
	// TagNames lists tags currently covering at least one position.
	TagNames() []string
	// TagRanges returns the sorted, disjoint ranges of a tag.
	TagRanges(name string) []types.Range

	// ViewportBounds returns the range currently visible to the user.
	ViewportBounds() types.Range
	LineCount() int
}
