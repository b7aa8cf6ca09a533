// Package tui is the terminal host of the card editor.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cardsmith/internal/card"
	"cardsmith/internal/config"
	"cardsmith/internal/editor"
	"cardsmith/internal/input"
	"cardsmith/internal/render"
)

type noticeExpiredMsg struct {
	seq int
}

// Model is the bubbletea model. It owns the editor controller and forwards
// pointer and key events to it.
type Model struct {
	ctrl  *editor.Controller
	cfg   *config.Config
	keys  KeyMap
	help  help.Model
	input textinput.Model

	mode    Mode
	editing string
	width   int
	height  int

	notice      editor.Notice
	noticeSeq   int
	noticeShown bool
	noticeDirty bool

	now func() time.Time
}

// New builds the model around doc. Extra options are passed to the
// controller.
func New(doc card.Document, cfg *config.Config, opts ...editor.Option) *Model {
	if cfg == nil {
		cfg = config.Default()
	}
	keys := DefaultKeyMap()

	ti := textinput.New()
	ti.Prompt = "text: "
	ti.CharLimit = 200

	m := &Model{
		cfg:   cfg,
		keys:  keys,
		help:  help.New(),
		input: ti,
		now:   time.Now,
	}
	base := []editor.Option{
		editor.WithKeyMap(keys.Editing),
		editor.WithZoomStep(cfg.ZoomStep),
		editor.WithNoticeHandler(m.pushNotice),
	}
	m.ctrl = editor.New(doc, append(base, opts...)...)
	return m
}

// Controller exposes the document owner, mainly for tests.
func (m *Model) Controller() *editor.Controller { return m.ctrl }

func (m *Model) Mode() Mode { return m.mode }

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - len(m.input.Prompt) - 1

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.noticeShown = false
		}
	}
	if tick := m.noticeCmd(); tick != nil {
		cmd = tea.Batch(cmd, tick)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.mode == ModeHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
			m.mode = ModeNormal
			m.help.ShowAll = false
		}
		return nil
	}

	if m.mode == ModePan {
		if speed, ok := panSpeed(msg.String()); ok {
			m.handlePan(msg.String(), speed)
			return nil
		}
	}

	// The router sees every other key first; text focus makes it step aside.
	if _, handled := m.ctrl.HandleKey(input.KeyEvent{Key: msg.String(), Focus: m.focus()}); handled {
		return nil
	}
	if m.mode == ModeEditing {
		return m.handleEditKey(msg)
	}

	view := m.ctrl.Viewport()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		m.help.ShowAll = true
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.Engine().Cancel()
		m.ctrl.Select(nil)
		m.mode = ModeNormal
	case key.Matches(msg, m.keys.Edit):
		return m.startEditing()
	case key.Matches(msg, m.keys.AddText):
		m.ctrl.AddElement(card.KindText)
	case key.Matches(msg, m.keys.AddBox):
		m.ctrl.AddElement(card.KindBox)
	case key.Matches(msg, m.keys.AddIcon):
		m.ctrl.AddElement(card.KindIcon)
	case key.Matches(msg, m.keys.AddProgress):
		m.ctrl.AddElement(card.KindProgress)
	case key.Matches(msg, m.keys.AddChart):
		m.ctrl.AddElement(card.KindChart)
	case key.Matches(msg, m.keys.Lower):
		m.withPrimary(m.ctrl.Lower)
	case key.Matches(msg, m.keys.Raise):
		m.withPrimary(m.ctrl.Raise)
	case key.Matches(msg, m.keys.SendToBack):
		m.withPrimary(m.ctrl.SendToBack)
	case key.Matches(msg, m.keys.BringToFront):
		m.withPrimary(m.ctrl.BringToFront)
	case key.Matches(msg, m.keys.Copy):
		if err := m.ctrl.Copy(); err != nil {
			editor.Logger().Warn("copy failed", "err", err)
		}
	case key.Matches(msg, m.keys.Paste):
		if _, err := m.ctrl.Paste(); err != nil {
			editor.Logger().Warn("paste failed", "err", err)
		}
	case key.Matches(msg, m.keys.Duplicate):
		m.ctrl.Duplicate()
	case key.Matches(msg, m.keys.ResetView):
		view.Reset()
	case key.Matches(msg, m.keys.ZoomIn):
		view.Zoom(view.ZoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		view.Zoom(-view.ZoomStep)
	case key.Matches(msg, m.keys.PanMode):
		if m.mode == ModePan {
			m.mode = ModeNormal
		} else {
			m.mode = ModePan
		}
	case key.Matches(msg, m.keys.ExportPNG):
		m.export(render.FormatPNG)
	case key.Matches(msg, m.keys.ExportPDF):
		m.export(render.FormatPDF)
	case key.Matches(msg, m.keys.ExportText):
		m.export(render.FormatText)
	}
	return nil
}

func (m *Model) focus() input.Focus {
	if m.mode == ModeEditing {
		return input.FocusTextInput
	}
	return input.FocusCanvas
}

func (m *Model) withPrimary(fn func(id string) bool) {
	if id, ok := m.ctrl.Selection().Primary(); ok {
		fn(id)
	}
}

func (m *Model) startEditing() tea.Cmd {
	id, ok := m.ctrl.Selection().Primary()
	if !ok {
		return nil
	}
	e, ok := m.ctrl.Element(id)
	if !ok {
		return nil
	}
	value := e.Text()
	if e.Kind == card.KindProgress {
		value = e.Data["value"]
	}
	m.editing = id
	m.mode = ModeEditing
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Commit):
		m.ctrl.SetText(m.editing, m.input.Value())
		m.stopEditing()
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) stopEditing() {
	m.input.Blur()
	m.input.Reset()
	m.editing = ""
	m.mode = ModeNormal
}

func (m *Model) export(format render.Format) {
	name := fmt.Sprintf("card-%s%s", m.now().Format("20060102-150405"), format.Ext())
	path, err := m.cfg.ExportPath(name)
	if err == nil {
		err = render.Export(path, format, m.ctrl.Document())
	}
	if err != nil {
		editor.Logger().Error("export failed", "format", format, "err", err)
		m.ctrl.Notify("Export failed: "+err.Error(), true)
		return
	}
	editor.Logger().Info("exported card", "path", path)
	m.ctrl.Notify("Exported "+path, false)
}

func (m *Model) pushNotice(n editor.Notice) {
	m.notice = n
	m.noticeSeq++
	m.noticeShown = true
	m.noticeDirty = true
}

// noticeCmd schedules hiding the latest notice.
func (m *Model) noticeCmd() tea.Cmd {
	if !m.noticeDirty {
		return nil
	}
	m.noticeDirty = false
	seq := m.noticeSeq
	return tea.Tick(m.cfg.NoticeDuration(), func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// canvasHeight leaves the last row for the status line.
func (m *Model) canvasHeight() int {
	if m.mode == ModeEditing {
		return max(1, m.height-2)
	}
	return max(1, m.height-1)
}

func (m *Model) layout() *render.Layout {
	return render.NewLayout(m.ctrl.Document(), m.ctrl.Viewport(), max(1, m.width), m.canvasHeight())
}
