package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"cardsmith/internal/render"
	"cardsmith/internal/transform"
	"cardsmith/internal/viewport"
)

// handleMouse turns terminal mouse reports into pointer events. Alt is the
// precision modifier and ctrl adds to the selection or, on the wheel, zooms.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.mode == ModeHelp || m.mode == ModeEditing {
		return
	}
	ev := tea.MouseEvent(msg)
	if ev.IsWheel() {
		m.handleWheel(ev)
		return
	}

	eng := m.ctrl.Engine()
	pt := render.CellPoint(ev.X, ev.Y)
	mods := transform.Modifiers{Precision: ev.Alt, MultiSelect: ev.Ctrl}

	switch ev.Action {
	case tea.MouseActionPress:
		if ev.Button != tea.MouseButtonLeft || ev.Y >= m.canvasHeight() {
			return
		}
		layout := m.layout()
		eng.SetMeasurer(layout)
		hit := layout.HitTest(ev.X, ev.Y)
		switch hit.Kind {
		case render.HitHandle:
			eng.PointerDownHandle(hit.ID, hit.Handle, pt, mods)
		case render.HitElement:
			eng.PointerDownElement(hit.ID, pt, mods)
		default:
			eng.PointerDownBackground(pt, mods)
		}
	case tea.MouseActionMotion:
		eng.PointerMove(pt, mods)
	case tea.MouseActionRelease:
		// Release ends the gesture wherever it happens.
		eng.PointerUp()
	}
}

func (m *Model) handleWheel(ev tea.MouseEvent) {
	var dx, dy float64
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		dy = -render.CellHeight
	case tea.MouseButtonWheelDown:
		dy = render.CellHeight
	case tea.MouseButtonWheelLeft:
		dx = -render.CellWidth
	case tea.MouseButtonWheelRight:
		dx = render.CellWidth
	}
	m.ctrl.Viewport().Wheel(viewport.WheelEvent{DeltaX: dx, DeltaY: dy, Zoom: ev.Ctrl})
}
