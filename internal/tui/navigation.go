package tui

// handlePan moves the view in keyboard pan mode. Arrows move the content
// the way the arrow points.
func (m *Model) handlePan(key string, speed float64) {
	view := m.ctrl.Viewport()
	switch key {
	case "h", "left", "H", "shift+left":
		view.Pan(-panStepX*speed, 0)
	case "l", "right", "L", "shift+right":
		view.Pan(panStepX*speed, 0)
	case "k", "up", "K", "shift+up":
		view.Pan(0, -panStepY*speed)
	case "j", "down", "J", "shift+down":
		view.Pan(0, panStepY*speed)
	}
}

// panSpeed reports whether key pans and how fast.
func panSpeed(key string) (float64, bool) {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return panFastSpeed, true
	case "h", "l", "k", "j", "left", "right", "up", "down":
		return 1, true
	default:
		return 0, false
	}
}
