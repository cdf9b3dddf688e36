package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_DispatchInOrder(t *testing.T) {
	m := NewManager()
	var got []string
	m.Subscribe(TypeContentChanged, func(e Event) bool {
		got = append(got, "first:"+e.Data.(ContentChangedData).Op)
		return false
	})
	m.Subscribe(TypeContentChanged, func(e Event) bool {
		got = append(got, "second")
		return false
	})
	m.Subscribe(TypeHighlighted, func(e Event) bool {
		got = append(got, "wrong type")
		return false
	})

	m.Dispatch(TypeContentChanged, ContentChangedData{Op: "insert"})
	assert.Equal(t, []string{"first:insert", "second"}, got)
}

func TestManager_ConsumedStopsPropagation(t *testing.T) {
	m := NewManager()
	calls := 0
	m.Subscribe(TypeSchemeChanged, func(Event) bool { calls++; return true })
	m.Subscribe(TypeSchemeChanged, func(Event) bool { calls++; return false })

	m.Dispatch(TypeSchemeChanged, SchemeChangedData{Name: "dracula"})
	assert.Equal(t, 1, calls)
}

func TestManager_NilIsNoop(t *testing.T) {
	var m *Manager
	assert.NotPanics(t, func() { m.Dispatch(TypeHighlighted, nil) })
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "ViewportChanged", TypeViewportChanged.String())
	assert.Equal(t, "Unknown", Type(99).String())
}
