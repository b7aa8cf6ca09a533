// Package editor owns the card document. The Controller is the only writer:
// the transform engine, the keyboard router and the UI propose changes
// through its methods and it applies them.
package editor

import (
	"errors"
	"fmt"
	"time"

	"cardsmith/internal/card"
	"cardsmith/internal/history"
	"cardsmith/internal/input"
	"cardsmith/internal/selection"
	"cardsmith/internal/transform"
	"cardsmith/internal/viewport"
)

// PasteOffset shifts pasted and duplicated elements so they do not cover
// their source.
const PasteOffset = 10.0

// Notice is a transient message for the user.
type Notice struct {
	Text string
	Err  bool
	At   time.Time
}

type Option func(*Controller)

func WithClipboard(c Clipboard) Option {
	return func(ctl *Controller) { ctl.clip = c }
}

func WithHistoryDepth(depth int) Option {
	return func(ctl *Controller) { ctl.depth = depth }
}

func WithZoomStep(step float64) Option {
	return func(ctl *Controller) {
		if step > 0 {
			ctl.view.ZoomStep = step
		}
	}
}

// WithNoticeHandler registers a callback for every notice.
func WithNoticeHandler(fn func(Notice)) Option {
	return func(ctl *Controller) { ctl.onNotice = fn }
}

func WithClock(now func() time.Time) Option {
	return func(ctl *Controller) { ctl.now = now }
}

func WithKeyMap(km input.KeyMap) Option {
	return func(ctl *Controller) { ctl.keys = km }
}

// Controller holds the current document and applies every change to it.
type Controller struct {
	doc     card.Document
	history *history.Manager
	view    *viewport.Viewport
	engine  *transform.Engine
	router  *input.Router

	clip     Clipboard
	depth    int
	keys     input.KeyMap
	notice   Notice
	onNotice func(Notice)
	now      func() time.Time
}

func New(doc card.Document, opts ...Option) *Controller {
	c := &Controller{
		doc:   doc.Clone(),
		view:  viewport.New(),
		clip:  SystemClipboard{},
		depth: history.DefaultDepth,
		keys:  input.DefaultKeyMap(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.doc.Reindex()
	c.doc.PruneSelection()
	c.history = history.New(c.depth, func(msg string) { c.notify(msg, false) })
	c.engine = transform.New(c, c.view, nil)
	c.router = input.NewRouter(c, c.keys)
	return c
}

func (c *Controller) Engine() *transform.Engine    { return c.engine }
func (c *Controller) Router() *input.Router        { return c.router }
func (c *Controller) Viewport() *viewport.Viewport { return c.view }
func (c *Controller) History() *history.Manager    { return c.history }
func (c *Controller) Notice() Notice               { return c.notice }

// Document returns a copy of the current document.
func (c *Controller) Document() card.Document {
	return c.doc.Clone()
}

// Load replaces the document and forgets all history.
func (c *Controller) Load(doc card.Document) {
	c.engine.Cancel()
	c.doc = doc.Clone()
	c.doc.Reindex()
	c.doc.PruneSelection()
	c.history.Reset()
	Logger().Info("document loaded", "elements", len(c.doc.Elements))
}

// HandleKey passes a key press to the router.
func (c *Controller) HandleKey(ev input.KeyEvent) (input.Action, bool) {
	return c.router.Handle(ev)
}

// Element implements transform.Host.
func (c *Controller) Element(id string) (card.Element, bool) {
	return c.doc.Element(id)
}

// Selection implements transform.Host and input.Target.
func (c *Controller) Selection() selection.Set {
	return selection.Set(c.doc.Selection.IDs())
}

// Update applies a partial style. Unknown ids are ignored. It records no
// history; gestures open their entry with InteractionStart.
func (c *Controller) Update(id string, patch card.StylePatch) {
	c.doc.UpdateStyle(id, patch)
}

// Select replaces the selection. Ids that do not exist are dropped.
func (c *Controller) Select(ids []string) {
	c.doc.Selection = c.doc.Selection.Replace(ids...)
	c.doc.PruneSelection()
}

// InteractionStart records the current document as one undo step.
func (c *Controller) InteractionStart() {
	c.history.BeginInteraction(c.doc)
	Logger().Debug("interaction started", "past", c.history.Past())
}

// Delete removes one element as its own undo step.
func (c *Controller) Delete(id string) {
	if !c.doc.Has(id) {
		return
	}
	c.commit(func(d *card.Document) bool { return d.Remove(id) })
	c.notify("Deleted 1 element", false)
}

// Undo restores the previous snapshot.
func (c *Controller) Undo() bool {
	prev, ok := c.history.Undo(c.doc)
	if !ok {
		return false
	}
	c.engine.Cancel()
	c.doc = prev
	return true
}

// Redo re-applies the last undone snapshot.
func (c *Controller) Redo() bool {
	next, ok := c.history.Redo(c.doc)
	if !ok {
		return false
	}
	c.engine.Cancel()
	c.doc = next
	return true
}

// DeleteSelection removes every selected element as one undo step and
// clears the selection.
func (c *Controller) DeleteSelection() int {
	ids := c.doc.Selection.IDs()
	removed := 0
	c.commit(func(d *card.Document) bool {
		for _, id := range ids {
			if d.Remove(id) {
				removed++
			}
		}
		d.Selection = d.Selection.Clear()
		return removed > 0
	})
	if removed > 0 {
		c.notify(fmt.Sprintf("Deleted %d element(s)", removed), false)
		Logger().Info("deleted selection", "count", removed)
	}
	return removed
}

// NudgeSelection moves every selected element by (dx, dy) canvas pixels as
// one undo step.
func (c *Controller) NudgeSelection(dx, dy float64) bool {
	ids := c.doc.Selection.IDs()
	return c.commit(func(d *card.Document) bool {
		changed := false
		for _, id := range ids {
			e, ok := d.Element(id)
			if !ok {
				continue
			}
			patch := card.StylePatch{
				Left: card.Float(e.Style.Left + dx),
				Top:  card.Float(e.Style.Top + dy),
			}
			if d.UpdateStyle(id, patch) {
				changed = true
			}
		}
		return changed
	})
}

// AddElement puts a new element of kind on top of the card and selects it.
func (c *Controller) AddElement(kind card.Kind) (string, bool) {
	if !kind.Valid() {
		return "", false
	}
	e := card.NewElement(kind)
	c.commit(func(d *card.Document) bool {
		d.Append(e)
		d.Selection = d.Selection.Replace(e.ID)
		return true
	})
	return e.ID, true
}

// SetText commits an edited text payload as one undo step.
func (c *Controller) SetText(id, text string) bool {
	e, ok := c.doc.Element(id)
	if !ok {
		return false
	}
	field := "text"
	switch e.Kind {
	case card.KindIcon:
		field = "icon"
	case card.KindProgress:
		field = "value"
	}
	return c.commit(func(d *card.Document) bool { return d.SetData(id, field, text) })
}

// UpdateCanvas merges a canvas patch as one undo step.
func (c *Controller) UpdateCanvas(patch card.CanvasPatch) bool {
	return c.commit(func(d *card.Document) bool {
		next := card.MergeCanvas(d.Canvas, patch)
		if next == d.Canvas {
			return false
		}
		d.Canvas = next
		return true
	})
}

// Restyle applies a style patch to the selection as one undo step.
func (c *Controller) Restyle(patch card.StylePatch) bool {
	ids := c.doc.Selection.IDs()
	return c.commit(func(d *card.Document) bool {
		changed := false
		for _, id := range ids {
			if d.UpdateStyle(id, patch) {
				changed = true
			}
		}
		return changed
	})
}

func (c *Controller) Raise(id string) bool {
	return c.commit(func(d *card.Document) bool { return d.Raise(id) })
}

func (c *Controller) Lower(id string) bool {
	return c.commit(func(d *card.Document) bool { return d.Lower(id) })
}

func (c *Controller) BringToFront(id string) bool {
	return c.commit(func(d *card.Document) bool { return d.BringToFront(id) })
}

func (c *Controller) SendToBack(id string) bool {
	return c.commit(func(d *card.Document) bool { return d.SendToBack(id) })
}

// Duplicate copies the selected elements, offset by PasteOffset, and
// selects the copies.
func (c *Controller) Duplicate() int {
	return c.insertCopies(c.doc.SelectedElements())
}

// Copy writes the selected elements to the clipboard.
func (c *Controller) Copy() error {
	selected := c.doc.SelectedElements()
	if len(selected) == 0 {
		return nil
	}
	data, err := card.MarshalElements(selected)
	if err != nil {
		return fmt.Errorf("failed to encode selection: %w", err)
	}
	if err := c.clip.WriteAll(string(data)); err != nil {
		c.notify("Copy failed: "+err.Error(), true)
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	c.notify(fmt.Sprintf("Copied %d element(s)", len(selected)), false)
	return nil
}

// Paste inserts elements from the clipboard as one undo step. Clipboard
// content that is not an element list becomes a new text element.
func (c *Controller) Paste() (int, error) {
	text, err := c.clip.ReadAll()
	if err != nil {
		c.notify("Paste failed: "+err.Error(), true)
		return 0, fmt.Errorf("failed to read clipboard: %w", err)
	}
	elements, err := card.UnmarshalElements([]byte(cleanClipboardText(text)))
	if err != nil || len(elements) == 0 {
		return c.pasteText(text)
	}
	n := c.insertCopies(elements)
	c.notify(fmt.Sprintf("Pasted %d element(s)", n), false)
	return n, nil
}

func (c *Controller) pasteText(raw string) (int, error) {
	text := plainText(raw)
	if text == "" {
		c.notify("Clipboard is empty", true)
		return 0, errors.New("clipboard holds no text")
	}
	e := card.NewElement(card.KindText)
	e.Data["text"] = text
	c.commit(func(d *card.Document) bool {
		d.Append(e)
		d.Selection = d.Selection.Replace(e.ID)
		return true
	})
	Logger().Debug("pasted text", "id", e.ID, "len", len(text))
	c.notify("Pasted text", false)
	return 1, nil
}

func (c *Controller) insertCopies(src []card.Element) int {
	if len(src) == 0 {
		return 0
	}
	ids := make([]string, 0, len(src))
	c.commit(func(d *card.Document) bool {
		for _, e := range src {
			cp := e.Clone()
			cp.ID = card.NewID()
			cp.Style.Left += PasteOffset
			cp.Style.Top += PasteOffset
			if cp.Data == nil {
				cp.Data = map[string]string{}
			}
			d.Append(cp)
			ids = append(ids, cp.ID)
		}
		d.Selection = d.Selection.Replace(ids...)
		return true
	})
	return len(ids)
}

// commit runs one discrete action against a copy of the document. When the
// action changed something the old document becomes an undo step and the
// copy becomes current; otherwise nothing is recorded.
func (c *Controller) commit(apply func(d *card.Document) bool) bool {
	next := c.doc.Clone()
	if !apply(&next) {
		return false
	}
	c.history.BeginInteraction(c.doc)
	next.PruneSelection()
	c.doc = next
	return true
}

func (c *Controller) notify(text string, isErr bool) {
	c.notice = Notice{Text: text, Err: isErr, At: c.now()}
	if c.onNotice != nil {
		c.onNotice(c.notice)
	}
}

// Notify surfaces a message from the host, such as an export result.
func (c *Controller) Notify(text string, isErr bool) {
	c.notify(text, isErr)
}
