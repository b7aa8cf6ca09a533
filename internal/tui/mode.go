package tui

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModePan
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeEditing:
		return "EDIT"
	case ModePan:
		return "PAN"
	case ModeHelp:
		return "HELP"
	default:
		return "NORMAL"
	}
}

// One terminal cell of keyboard panning moves the view this many screen
// pixels; shift pans faster.
const (
	panStepX     = 8.0
	panStepY     = 16.0
	panFastSpeed = 4.0
)
