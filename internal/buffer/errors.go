package buffer

import "errors"

// Benign conditions: callers at the edit boundary treat these as "nothing
// happened" rather than failures.
var (
	// ErrNoSelection is returned when a selection-scoped index or operation is
	// used while no text is tagged "sel".
	ErrNoSelection = errors.New("text doesn't contain any characters tagged with \"sel\"")
	// ErrNothingToUndo is returned by an undo with an empty history.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is returned by a redo with nothing undone.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// ErrBadIndex reports an index expression the buffer cannot resolve.
var ErrBadIndex = errors.New("bad text index")

// IsBenign reports whether err is one of the conditions the edit boundary
// swallows.
func IsBenign(err error) bool {
	return errors.Is(err, ErrNoSelection) ||
		errors.Is(err, ErrNothingToUndo) ||
		errors.Is(err, ErrNothingToRedo)
}
