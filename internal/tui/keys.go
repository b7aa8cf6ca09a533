package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"cardsmith/internal/input"
)

// KeyMap holds the application shortcuts. Editing shortcuts (undo, redo,
// delete, nudge) belong to the input router and are only shown in help.
type KeyMap struct {
	Edit key.Binding

	AddText     key.Binding
	AddBox      key.Binding
	AddIcon     key.Binding
	AddProgress key.Binding
	AddChart    key.Binding

	Lower        key.Binding
	Raise        key.Binding
	SendToBack   key.Binding
	BringToFront key.Binding

	Copy      key.Binding
	Paste     key.Binding
	Duplicate key.Binding

	ResetView key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	PanMode   key.Binding

	ExportPNG  key.Binding
	ExportPDF  key.Binding
	ExportText key.Binding

	Commit key.Binding
	Cancel key.Binding
	Help   key.Binding
	Quit   key.Binding

	Editing input.KeyMap
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Edit: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit text")),

		AddText:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "add text")),
		AddBox:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "add box")),
		AddIcon:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "add icon")),
		AddProgress: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "add progress")),
		AddChart:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "add chart")),

		Lower:        key.NewBinding(key.WithKeys("["), key.WithHelp("[", "lower")),
		Raise:        key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "raise")),
		SendToBack:   key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "to back")),
		BringToFront: key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "to front")),

		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Paste:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "paste")),
		Duplicate: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "duplicate")),

		ResetView: key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset view")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		PanMode:   key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "pan mode")),

		ExportPNG:  key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "export png")),
		ExportPDF:  key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "export pdf")),
		ExportText: key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "export txt")),

		Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Editing: input.DefaultKeyMap(),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.AddBox, k.Editing.Undo, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return append(k.Editing.FullHelp(),
		[]key.Binding{k.Edit, k.AddText, k.AddBox, k.AddIcon, k.AddProgress, k.AddChart},
		[]key.Binding{k.Lower, k.Raise, k.SendToBack, k.BringToFront, k.Duplicate},
		[]key.Binding{k.Copy, k.Paste, k.ResetView, k.ZoomIn, k.ZoomOut, k.PanMode},
		[]key.Binding{k.ExportPNG, k.ExportPDF, k.ExportText, k.Help, k.Quit},
	)
}
