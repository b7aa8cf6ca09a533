package input

import "github.com/charmbracelet/bubbles/key"

const (
	NudgeStep    = 1.0
	NudgeStepFar = 10.0
)

// KeyMap holds the editing shortcuts handled by the Router.
type KeyMap struct {
	Undo   key.Binding
	Redo   key.Binding
	Delete key.Binding

	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	UpFar    key.Binding
	DownFar  key.Binding
	LeftFar  key.Binding
	RightFar key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+shift+z", "ctrl+y"),
			key.WithHelp("ctrl+y", "redo"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "backspace"),
			key.WithHelp("del", "delete"),
		),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑↓←→", "nudge")),
		Down:  key.NewBinding(key.WithKeys("down")),
		Left:  key.NewBinding(key.WithKeys("left")),
		Right: key.NewBinding(key.WithKeys("right")),

		UpFar:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑↓←→", "nudge 10")),
		DownFar:  key.NewBinding(key.WithKeys("shift+down")),
		LeftFar:  key.NewBinding(key.WithKeys("shift+left")),
		RightFar: key.NewBinding(key.WithKeys("shift+right")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Undo, k.Redo, k.Delete, k.Up}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Undo, k.Redo, k.Delete},
		{k.Up, k.UpFar},
	}
}

// nudge returns the canvas delta bound to the key, if any.
func (k KeyMap) nudge(ev KeyEvent) (float64, float64, bool) {
	switch {
	case key.Matches(ev, k.Up):
		return 0, -NudgeStep, true
	case key.Matches(ev, k.Down):
		return 0, NudgeStep, true
	case key.Matches(ev, k.Left):
		return -NudgeStep, 0, true
	case key.Matches(ev, k.Right):
		return NudgeStep, 0, true
	case key.Matches(ev, k.UpFar):
		return 0, -NudgeStepFar, true
	case key.Matches(ev, k.DownFar):
		return 0, NudgeStepFar, true
	case key.Matches(ev, k.LeftFar):
		return -NudgeStepFar, 0, true
	case key.Matches(ev, k.RightFar):
		return NudgeStepFar, 0, true
	}
	return 0, 0, false
}
