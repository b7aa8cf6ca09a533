// Package input routes editing shortcuts to the document owner.
package input

import (
	"github.com/charmbracelet/bubbles/key"

	"cardsmith/internal/selection"
)

// Focus is the kind of control that has keyboard focus when a key arrives.
type Focus int

const (
	FocusCanvas Focus = iota
	// FocusTextInput covers text fields, text areas and editable regions.
	// Shortcuts never fire while one of these has focus.
	FocusTextInput
)

// KeyEvent is one key press as seen by the router.
type KeyEvent struct {
	Key   string
	Focus Focus
}

func (k KeyEvent) String() string { return k.Key }

// Target is the owner of the document. The router reads it at event time
// and never caches its state.
type Target interface {
	Selection() selection.Set
	Undo() bool
	Redo() bool
	DeleteSelection() int
	NudgeSelection(dx, dy float64) bool
}

type Action int

const (
	ActionNone Action = iota
	ActionUndo
	ActionRedo
	ActionDelete
	ActionNudge
)

func (a Action) String() string {
	switch a {
	case ActionUndo:
		return "undo"
	case ActionRedo:
		return "redo"
	case ActionDelete:
		return "delete"
	case ActionNudge:
		return "nudge"
	default:
		return "none"
	}
}

// Router is the single keyboard listener of the editor.
type Router struct {
	target Target
	keys   KeyMap
}

func NewRouter(target Target, keys KeyMap) *Router {
	return &Router{target: target, keys: keys}
}

func (r *Router) KeyMap() KeyMap { return r.keys }

// Handle dispatches ev. It reports which action the key maps to and
// whether the key was consumed; unconsumed keys are left to the caller.
func (r *Router) Handle(ev KeyEvent) (Action, bool) {
	if ev.Focus == FocusTextInput || r.target == nil {
		return ActionNone, false
	}

	switch {
	case key.Matches(ev, r.keys.Undo):
		r.target.Undo()
		return ActionUndo, true
	case key.Matches(ev, r.keys.Redo):
		r.target.Redo()
		return ActionRedo, true
	case key.Matches(ev, r.keys.Delete):
		if r.target.Selection().Empty() {
			return ActionDelete, false
		}
		r.target.DeleteSelection()
		return ActionDelete, true
	}

	if dx, dy, ok := r.keys.nudge(ev); ok {
		if r.target.Selection().Empty() {
			return ActionNudge, false
		}
		r.target.NudgeSelection(dx, dy)
		return ActionNudge, true
	}
	return ActionNone, false
}
