package editor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardsmith/internal/card"
	"cardsmith/internal/input"
	"cardsmith/internal/transform"
	"cardsmith/internal/viewport"
)

type memClipboard struct {
	text string
	err  error
}

func (m *memClipboard) ReadAll() (string, error) { return m.text, m.err }

func (m *memClipboard) WriteAll(text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

func newTestController(t *testing.T, ids ...string) (*Controller, *[]Notice) {
	t.Helper()
	doc := card.Document{Canvas: card.DefaultCanvas()}
	for i, id := range ids {
		e := card.NewElement(card.KindBox)
		e.ID = id
		e.Style.Left = 20 + float64(i)*200
		e.Style.Top = 20
		e.Style.Width, e.Style.Height = 100, 100
		doc.Append(e)
	}
	var notices []Notice
	c := New(doc,
		WithClipboard(&memClipboard{}),
		WithNoticeHandler(func(n Notice) { notices = append(notices, n) }),
		WithClock(func() time.Time { return time.Unix(0, 0) }),
	)
	return c, &notices
}

func elementAt(t *testing.T, c *Controller, id string) card.Style {
	t.Helper()
	e, ok := c.Element(id)
	require.True(t, ok, "element %q missing", id)
	return e.Style
}

func TestController_DragIsOneUndoStep(t *testing.T) {
	c, _ := newTestController(t, "a")
	eng := c.Engine()

	require.True(t, eng.PointerDownElement("a", transform.Point{X: 50, Y: 50}, transform.Modifiers{}))
	for i := 1; i <= 10; i++ {
		eng.PointerMove(transform.Point{X: 50 + float64(i)*7, Y: 50}, transform.Modifiers{})
	}
	eng.PointerUp()

	assert.Equal(t, 1, c.History().Past())
	assert.Equal(t, float64(90), elementAt(t, c, "a").Left)

	require.True(t, c.Undo())
	assert.Equal(t, float64(20), elementAt(t, c, "a").Left)
	assert.Equal(t, 0, c.History().Past())
}

func TestController_TwentyFiveActionsKeepTwenty(t *testing.T) {
	c, _ := newTestController(t, "a")
	c.Select([]string{"a"})
	for i := 0; i < 25; i++ {
		require.True(t, c.NudgeSelection(1, 0))
	}
	assert.Equal(t, 20, c.History().Past())
	assert.Equal(t, float64(45), elementAt(t, c, "a").Left)

	for c.Undo() {
	}
	assert.Equal(t, float64(25), elementAt(t, c, "a").Left, "five oldest steps were evicted")
}

func TestController_DeleteSelectionPrunesAndIsOneStep(t *testing.T) {
	c, notices := newTestController(t, "a", "b", "c")
	c.Select([]string{"a", "c"})

	assert.Equal(t, 2, c.DeleteSelection())

	doc := c.Document()
	assert.Len(t, doc.Elements, 1)
	assert.True(t, doc.Selection.Empty())
	assert.Equal(t, 1, c.History().Past())
	require.NotEmpty(t, *notices)
	assert.Equal(t, "Deleted 2 element(s)", (*notices)[len(*notices)-1].Text)

	require.True(t, c.Undo())
	doc = c.Document()
	assert.Len(t, doc.Elements, 3)
	assert.Equal(t, []string{"a", "c"}, doc.Selection.IDs())
}

func TestController_SelectionNeverDangles(t *testing.T) {
	c, _ := newTestController(t, "a", "b")
	c.Select([]string{"a", "b", "ghost"})
	assert.Equal(t, []string{"a", "b"}, c.Selection().IDs())

	c.Delete("b")
	for _, id := range c.Selection() {
		_, ok := c.Element(id)
		assert.True(t, ok, "dangling id %q", id)
	}
	assert.Equal(t, []string{"a"}, c.Selection().IDs())
}

func TestController_MissingIdsAreNoops(t *testing.T) {
	c, _ := newTestController(t, "a")
	before := c.Document()

	c.Update("ghost", card.StylePatch{Left: card.Float(1)})
	c.Delete("ghost")
	assert.False(t, c.SetText("ghost", "x"))
	assert.False(t, c.Raise("ghost"))
	assert.False(t, c.NudgeSelection(5, 5), "nothing selected")

	assert.Equal(t, before, c.Document())
	assert.Equal(t, 0, c.History().Past())
}

func TestController_UndoRedoNotifies(t *testing.T) {
	c, notices := newTestController(t, "a")
	c.Select([]string{"a"})
	c.NudgeSelection(0, 10)

	assert.True(t, c.Undo())
	assert.True(t, c.Redo())
	assert.False(t, c.Redo())

	var texts []string
	for _, n := range *notices {
		texts = append(texts, n.Text)
	}
	assert.Equal(t, []string{"Undo", "Redo"}, texts)
	assert.Equal(t, "Redo", c.Notice().Text)
}

func TestController_KeyboardThroughRouter(t *testing.T) {
	c, _ := newTestController(t, "a", "b")
	c.Select([]string{"a", "b"})

	_, handled := c.HandleKey(input.KeyEvent{Key: "shift+right"})
	require.True(t, handled)
	assert.Equal(t, float64(30), elementAt(t, c, "a").Left)
	assert.Equal(t, float64(230), elementAt(t, c, "b").Left)
	assert.Equal(t, 1, c.History().Past(), "one entry per keypress")

	_, handled = c.HandleKey(input.KeyEvent{Key: "ctrl+z", Focus: input.FocusTextInput})
	assert.False(t, handled)
	assert.Equal(t, float64(30), elementAt(t, c, "a").Left)

	_, handled = c.HandleKey(input.KeyEvent{Key: "ctrl+z"})
	require.True(t, handled)
	assert.Equal(t, float64(20), elementAt(t, c, "a").Left)

	_, handled = c.HandleKey(input.KeyEvent{Key: "ctrl+y"})
	require.True(t, handled)
	assert.Equal(t, float64(30), elementAt(t, c, "a").Left)

	_, handled = c.HandleKey(input.KeyEvent{Key: "backspace"})
	require.True(t, handled)
	assert.Empty(t, c.Document().Elements)
}

func TestController_AddElementAndText(t *testing.T) {
	c, _ := newTestController(t)

	id, ok := c.AddElement(card.KindText)
	require.True(t, ok)
	assert.Equal(t, []string{id}, c.Selection().IDs())

	require.True(t, c.SetText(id, "Revenue"))
	assert.False(t, c.SetText(id, "Revenue"), "unchanged text records nothing")
	assert.Equal(t, 2, c.History().Past())

	e, _ := c.Element(id)
	assert.Equal(t, "Revenue", e.Text())

	_, ok = c.AddElement(card.Kind("nope"))
	assert.False(t, ok)
}

func TestController_Reorder(t *testing.T) {
	c, _ := newTestController(t, "a", "b", "c")

	require.True(t, c.BringToFront("a"))
	doc := c.Document()
	assert.Equal(t, "a", doc.Elements[2].ID)
	assert.Equal(t, 2, doc.Elements[2].Style.ZIndex)

	assert.False(t, c.Raise("a"))
	require.True(t, c.SendToBack("a"))
	require.True(t, c.Raise("a"))
	require.True(t, c.Lower("a"))
	assert.Equal(t, 0, c.Document().Index("a"))
	assert.Equal(t, 4, c.History().Past())
}

func TestController_UpdateCanvasMerges(t *testing.T) {
	c, _ := newTestController(t)
	require.True(t, c.UpdateCanvas(card.CanvasPatch{Background: card.String("#000000")}))
	assert.False(t, c.UpdateCanvas(card.CanvasPatch{Background: card.String("#000000")}))

	doc := c.Document()
	assert.Equal(t, "#000000", doc.Canvas.Background)
	assert.Equal(t, card.DefaultCanvas().Width, doc.Canvas.Width)
	assert.Equal(t, 1, c.History().Past())
}

func TestController_CopyPaste(t *testing.T) {
	c, notices := newTestController(t, "a")
	c.Select([]string{"a"})
	require.NoError(t, c.Copy())

	n, err := c.Paste()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	doc := c.Document()
	require.Len(t, doc.Elements, 2)
	pasted := doc.Elements[1]
	assert.NotEqual(t, "a", pasted.ID)
	assert.Equal(t, float64(30), pasted.Style.Left)
	assert.Equal(t, []string{pasted.ID}, doc.Selection.IDs())
	assert.Equal(t, "Pasted 1 element(s)", (*notices)[len(*notices)-1].Text)
}

func TestController_PasteErrors(t *testing.T) {
	c, _ := newTestController(t, "a")

	c.clip = &memClipboard{text: " \n\t"}
	_, err := c.Paste()
	assert.Error(t, err)
	assert.True(t, c.Notice().Err)

	c.clip = &memClipboard{err: errors.New("no clipboard")}
	_, err = c.Paste()
	assert.Error(t, err)
	assert.Equal(t, 0, c.History().Past())
}

func TestController_Duplicate(t *testing.T) {
	c, _ := newTestController(t, "a", "b")
	c.Select([]string{"a", "b"})

	assert.Equal(t, 2, c.Duplicate())
	doc := c.Document()
	assert.Len(t, doc.Elements, 4)
	assert.Len(t, doc.Selection, 2)
	assert.Equal(t, 1, c.History().Past())
}

func TestController_UndoCancelsGesture(t *testing.T) {
	c, _ := newTestController(t, "a")
	c.AddElement(card.KindBox)
	c.Engine().PointerDownElement("a", transform.Point{}, transform.Modifiers{})

	c.Undo()
	assert.Equal(t, transform.Idle, c.Engine().Mode())
}

func TestController_WheelZoomScenario(t *testing.T) {
	c, _ := newTestController(t, "a")
	for i := 0; i < 3; i++ {
		c.Viewport().Wheel(viewport.WheelEvent{DeltaY: -1, Zoom: true})
	}
	assert.Equal(t, 1.3, c.Viewport().Scale)

	st := elementAt(t, c, "a")
	assert.Equal(t, float64(20), st.Left)
	assert.Equal(t, float64(100), st.Width, "zoom never rewrites stored coordinates")
}

func TestController_LoadResetsHistory(t *testing.T) {
	c, _ := newTestController(t, "a")
	c.Select([]string{"a"})
	c.NudgeSelection(1, 1)

	c.Load(card.DefaultDocument())
	assert.Equal(t, 0, c.History().Past())
	assert.True(t, c.Selection().Empty())
}

func TestController_PastePlainText(t *testing.T) {
	c, notices := newTestController(t, "a")

	c.clip = &memClipboard{text: "Churn 2.1%\r\n"}
	n, err := c.Paste()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	doc := c.Document()
	require.Len(t, doc.Elements, 2)
	pasted := doc.Elements[1]
	assert.Equal(t, card.KindText, pasted.Kind)
	assert.Equal(t, "Churn 2.1%", pasted.Text())
	assert.Equal(t, []string{pasted.ID}, doc.Selection.IDs())
	assert.Equal(t, 1, c.History().Past())
	assert.Equal(t, "Pasted text", (*notices)[len(*notices)-1].Text)
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "hello", "hello"},
		{"rtf", `{\rtf1\ansi{\fonttbl\f0\fswiss Helvetica;}\f0\pard Hello\par World}`, "Hello\nWorld"},
		{"rtf escapes", `{\rtf1 \'41BC \{x\}}`, "ABC {x}"},
		{"html", "<html><body><p>Q3 &amp; Q4</p></body></html>", "Q3 & Q4"},
		{"decomposed accent", "cafe\u0301", "caf\u00e9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plainText(tt.in))
		})
	}
}

func TestCleanClipboardText(t *testing.T) {
	assert.Equal(t, "a\nb\nc", cleanClipboardText("a\r\nb\rc\x00"))
	assert.Equal(t, "", cleanClipboardText(""))
}
