package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cardsmith/internal/render"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	modeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpTitle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.mode == ModeHelp {
		return m.helpView()
	}

	lines := m.layout().Render()

	var b strings.Builder
	b.WriteString(strings.Join(lines, "\n"))
	if m.mode == ModeEditing {
		b.WriteString("\n")
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m *Model) statusLine() string {
	view := m.ctrl.Viewport()
	parts := []string{fmt.Sprintf("zoom %d%%", int(view.Scale*100+0.5))}

	sel := m.ctrl.Selection()
	if id, ok := sel.Primary(); ok {
		if e, ok := m.ctrl.Element(id); ok {
			st := e.Style
			info := fmt.Sprintf("%s %g,%g %gx%g", e.Kind, st.Left, st.Top, st.Width, st.Height)
			if st.Rotation != 0 {
				info += fmt.Sprintf(" %g°", st.Rotation)
			}
			if sel.Len() > 1 {
				info += fmt.Sprintf(" (+%d)", sel.Len()-1)
			}
			parts = append(parts, info)
		}
	}
	if eng := m.ctrl.Engine(); eng.Active() {
		parts = append(parts, eng.Mode().String())
	}

	status := modeStyle.Render(m.mode.String()) + " " + statusStyle.Render(strings.Join(parts, " | "))
	if m.noticeShown {
		style := noticeStyle
		if m.notice.Err {
			style = errorStyle
		}
		status += " " + style.Render(m.notice.Text)
	} else {
		status += " " + m.help.View(m.keys)
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(status)
}

func (m *Model) helpView() string {
	title := helpTitle.Render("cardsmith")
	body := m.help.View(m.keys)
	mouse := statusStyle.Render(strings.Join([]string{
		"mouse: drag to move, drag handles to resize, drag " + string(render.RotateHandleRune) + " to rotate",
		"alt: snap to 1px / 15°   ctrl+click: add to selection   ctrl+wheel: zoom",
		"press ? or esc to close",
	}, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, title, body, "", mouse)
}
