// internal/event/events.go
package event

import (
	"github.com/bethropolis/codeview/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// TypeContentChanged fires after every successful buffer mutation.
	TypeContentChanged
	// TypeHighlighted fires after each completed highlight pass.
	TypeHighlighted
	// TypeSchemeChanged fires after a color scheme was resolved and installed.
	TypeSchemeChanged
	// TypeViewportChanged fires when the host scrolls or resizes the view.
	TypeViewportChanged
)

func (t Type) String() string {
	switch t {
	case TypeContentChanged:
		return "ContentChanged"
	case TypeHighlighted:
		return "Highlighted"
	case TypeSchemeChanged:
		return "SchemeChanged"
	case TypeViewportChanged:
		return "ViewportChanged"
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// ContentChangedData describes the mutation that changed the buffer.
type ContentChangedData struct {
	Op    string
	Start types.Position
	End   types.Position
}

// HighlightedData reports one highlight pass.
type HighlightedData struct {
	Region string      // dirty region that triggered the pass
	Span   types.Range // text span actually re-tokenized
	Tokens int         // number of tokens walked
	Tagged int         // number of tags applied
}

// SchemeChangedData names the newly installed scheme.
type SchemeChangedData struct {
	Name string
}

// ViewportChangedData carries the new visible range.
type ViewportChangedData struct {
	Bounds types.Range
}
