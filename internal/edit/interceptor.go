// Package edit is the buffer-mutation boundary: every insert, delete,
// replace, undo and redo goes through an Interceptor, which forwards it to the
// buffer, re-highlights the dirtied region and announces the change.
package edit

import (
	"github.com/bethropolis/codeview/internal/buffer"
	"github.com/bethropolis/codeview/internal/dirty"
	"github.com/bethropolis/codeview/internal/event"
	"github.com/bethropolis/codeview/internal/highlight"
	"github.com/bethropolis/codeview/internal/logger"
	"github.com/bethropolis/codeview/internal/types"
)

// Result describes an applied mutation. The zero Result means nothing
// happened.
type Result struct {
	Applied bool
	Region  dirty.Region
	Edit    buffer.Edit
}

// Interceptor wraps the buffer's single mutation entry point.
type Interceptor struct {
	buf    buffer.Buffer
	engine *highlight.Engine
	events *event.Manager
}

// NewInterceptor creates an interceptor. events may be nil.
func NewInterceptor(buf buffer.Buffer, engine *highlight.Engine, events *event.Manager) *Interceptor {
	return &Interceptor{buf: buf, engine: engine, events: events}
}

// Mutate applies m, re-highlights what it dirtied and dispatches
// TypeContentChanged.
//
// A missing selection and an empty undo or redo history are not failures:
// they yield the zero Result and a nil error. Any other error is returned as
// the buffer or highlighter reported it.
func (i *Interceptor) Mutate(m buffer.Mutation) (Result, error) {
	pre, col, err := i.resolve(m)
	if err != nil {
		return i.classify(m, err)
	}

	ed, err := i.buf.Apply(m)
	if err != nil {
		return i.classify(m, err)
	}

	var region dirty.Region
	switch m.Op {
	case buffer.OpUndo, buffer.OpRedo:
		region = dirty.FromEdit(ed)
	default:
		region = dirty.FromMutation(pre, m, col)
	}
	res := Result{Applied: true, Region: region, Edit: ed}
	logger.DebugTagf("edit", "%s applied at %s, dirty %s", m.Op, ed.Start, region)

	if err := i.engine.Rehighlight(region); err != nil {
		return res, err
	}
	i.events.Dispatch(event.TypeContentChanged, event.ContentChangedData{
		Op:    m.Op.String(),
		Start: ed.Start,
		End:   ed.End,
	})
	return res, nil
}

// resolve reads the lines the mutation's arguments point at before it is
// applied, and the column of its first argument.
func (i *Interceptor) resolve(m buffer.Mutation) (dirty.LineSpan, int, error) {
	switch m.Op {
	case buffer.OpInsert:
		p, err := i.buf.Index(m.From)
		if err != nil {
			return dirty.LineSpan{}, 0, err
		}
		return dirty.LineSpan{Start: p.Line, End: p.Line}, p.Col, nil

	case buffer.OpDelete, buffer.OpReplace:
		from, err := i.buf.Index(m.From)
		if err != nil {
			return dirty.LineSpan{}, 0, err
		}
		to := from
		if m.To != "" {
			if to, err = i.buf.Index(m.To); err != nil {
				return dirty.LineSpan{}, 0, err
			}
		}
		r := types.NewRange(from, to)
		return dirty.LineSpan{Start: r.Start.Line, End: r.End.Line}, r.Start.Col, nil
	}
	return dirty.LineSpan{}, 0, nil
}

func (i *Interceptor) classify(m buffer.Mutation, err error) (Result, error) {
	if buffer.IsBenign(err) {
		logger.DebugTagf("edit", "%s ignored: %v", m.Op, err)
		return Result{}, nil
	}
	return Result{}, err
}

// Insert inserts text at the index expression at.
func (i *Interceptor) Insert(at, text string) (Result, error) {
	return i.Mutate(buffer.Insert(at, text))
}

// Delete deletes [from, to). An empty to deletes one index unit.
func (i *Interceptor) Delete(from, to string) (Result, error) {
	return i.Mutate(buffer.Delete(from, to))
}

// Replace replaces [from, to) with text.
func (i *Interceptor) Replace(from, to, text string) (Result, error) {
	return i.Mutate(buffer.Replace(from, to, text))
}

// Undo reverts the last change.
func (i *Interceptor) Undo() (Result, error) {
	return i.Mutate(buffer.Mutation{Op: buffer.OpUndo})
}

// Redo reapplies the last undone change.
func (i *Interceptor) Redo() (Result, error) {
	return i.Mutate(buffer.Mutation{Op: buffer.OpRedo})
}
