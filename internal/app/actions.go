package app

import (
	"fmt"

	"github.com/bethropolis/codeview/internal/buffer"
	"github.com/bethropolis/codeview/internal/codeview"
	"github.com/bethropolis/codeview/internal/edit"
	"github.com/bethropolis/codeview/internal/input"
	"github.com/bethropolis/codeview/internal/logger"
)

// perform executes a decoded key action.
func (a *App) perform(ev input.ActionEvent) error {
	logger.DebugTagf("input", "action %s", ev.Action)
	switch ev.Action {
	case input.ActionQuit:
		a.quit = true
		return nil
	case input.ActionSave:
		if a.buf.FilePath() == "" {
			return errNoFile
		}
		if err := a.buf.Save(""); err != nil {
			return err
		}
		a.updateStatusBarContent()
		a.statusBar.SetTemporaryMessage("Saved %s", a.buf.FilePath())
		return nil

	case input.ActionMoveUp:
		return a.move("insert -1 lines")
	case input.ActionMoveDown:
		return a.move("insert +1 lines")
	case input.ActionMoveLeft:
		return a.move("insert -1 chars")
	case input.ActionMoveRight:
		return a.move("insert +1 chars")
	case input.ActionMoveHome:
		return a.move("insert linestart")
	case input.ActionMoveEnd:
		return a.move("insert lineend")
	case input.ActionMovePageUp:
		return a.move(fmt.Sprintf("insert -%d lines", a.viewHeight()))
	case input.ActionMovePageDown:
		return a.move(fmt.Sprintf("insert +%d lines", a.viewHeight()))

	case input.ActionInsertRune:
		return a.typeText(string(ev.Rune))
	case input.ActionInsertNewLine:
		return a.typeText("\n")
	case input.ActionInsertTab:
		return a.typeText("\t")
	case input.ActionDeleteCharBackward:
		return a.erase("insert -1 chars", "insert")
	case input.ActionDeleteCharForward:
		return a.erase("insert", "insert +1 chars")

	case input.ActionUndo:
		return a.history(a.view.Undo, "Nothing to undo")
	case input.ActionRedo:
		return a.history(a.view.Redo, "Nothing to redo")
	case input.ActionSelectAll:
		return a.view.SelectAll()
	case input.ActionCopy:
		text, err := a.view.Copy()
		if err != nil {
			return err
		}
		a.statusBar.SetTemporaryMessage("Copied %d bytes", len(text))
		return nil
	case input.ActionCut:
		if _, err := a.view.Copy(); err != nil {
			return err
		}
		if _, ok, _ := a.view.Selection(); ok {
			_, err := a.view.Delete("sel.first", "sel.last")
			return err
		}
		_, err := a.view.Delete("insert linestart", "insert lineend +1 chars")
		return err
	case input.ActionPaste:
		_, err := a.view.Paste()
		return err
	case input.ActionNextScheme:
		return a.nextScheme()
	}
	return nil
}

func (a *App) move(expr string) error {
	if err := a.view.ClearSelection(); err != nil {
		return err
	}
	return a.view.MoveCursor(expr)
}

// typeText replaces the selection with text, or inserts it at the cursor.
func (a *App) typeText(text string) error {
	if _, ok, err := a.view.Selection(); err != nil {
		return err
	} else if ok {
		_, err := a.view.Replace("sel.first", "sel.last", text)
		return err
	}
	_, err := a.view.Insert(buffer.InsertMark, text)
	return err
}

// erase deletes the selection, or [from, to) when nothing is selected.
func (a *App) erase(from, to string) error {
	if _, ok, err := a.view.Selection(); err != nil {
		return err
	} else if ok {
		from, to = "sel.first", "sel.last"
	}
	_, err := a.view.Delete(from, to)
	return err
}

func (a *App) history(op func() (edit.Result, error), empty string) error {
	res, err := op()
	if err != nil {
		return err
	}
	if !res.Applied {
		a.statusBar.SetTemporaryMessage(empty)
		return nil
	}
	return a.view.MoveCursor(res.Edit.End.String())
}

func (a *App) nextScheme() error {
	names := a.view.Catalog().Names()
	if len(names) == 0 {
		return nil
	}
	next := names[0]
	for i, name := range names {
		if name == a.view.SchemeName() {
			next = names[(i+1)%len(names)]
			break
		}
	}
	a.schemeFile = ""
	if err := a.view.Configure(codeview.Options{Scheme: next}); err != nil {
		return err
	}
	a.statusBar.SetTemporaryMessage("Scheme: %s", next)
	return nil
}
