package card

import (
	"cardsmith/internal/selection"
)

// CanvasSettings describes the card frame.
type CanvasSettings struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Background  string  `yaml:"background"`
	BorderColor string  `yaml:"border_color,omitempty"`
	BorderWidth float64 `yaml:"border_width,omitempty"`
	Radius      float64 `yaml:"radius,omitempty"`
}

// CanvasPatch is merged into CanvasSettings as one record.
type CanvasPatch struct {
	Width       *float64
	Height      *float64
	Background  *string
	BorderColor *string
	BorderWidth *float64
	Radius      *float64
}

// MergeCanvas returns c with every set field of p written over it.
func MergeCanvas(c CanvasSettings, p CanvasPatch) CanvasSettings {
	if p.Width != nil && *p.Width > 0 {
		c.Width = *p.Width
	}
	if p.Height != nil && *p.Height > 0 {
		c.Height = *p.Height
	}
	if p.Background != nil {
		c.Background = *p.Background
	}
	if p.BorderColor != nil {
		c.BorderColor = *p.BorderColor
	}
	if p.BorderWidth != nil {
		c.BorderWidth = *p.BorderWidth
	}
	if p.Radius != nil {
		c.Radius = *p.Radius
	}
	return c
}

func DefaultCanvas() CanvasSettings {
	return CanvasSettings{
		Width:       320,
		Height:      180,
		Background:  "#ffffff",
		BorderColor: "#d1d5db",
		BorderWidth: 1,
		Radius:      12,
	}
}

// Document is the whole editable state: elements in stacking order, the
// card frame and the current selection.
//
// Invariants: element ids are unique, ZIndex equals array position, and
// every selected id names an existing element.
type Document struct {
	Elements  []Element      `yaml:"elements"`
	Canvas    CanvasSettings `yaml:"canvas"`
	Selection selection.Set  `yaml:"-"`
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := Document{Canvas: d.Canvas}
	if d.Selection != nil {
		out.Selection = selection.Set(d.Selection.IDs())
	}
	if d.Elements != nil {
		out.Elements = make([]Element, len(d.Elements))
		for i, e := range d.Elements {
			out.Elements[i] = e.Clone()
		}
	}
	return out
}

// Index returns the position of id in Elements, or -1.
func (d Document) Index(id string) int {
	for i := range d.Elements {
		if d.Elements[i].ID == id {
			return i
		}
	}
	return -1
}

func (d Document) Has(id string) bool {
	return d.Index(id) >= 0
}

// Element returns a copy of the element with the given id.
func (d Document) Element(id string) (Element, bool) {
	i := d.Index(id)
	if i < 0 {
		return Element{}, false
	}
	return d.Elements[i].Clone(), true
}

// Primary returns the primary selected element.
func (d Document) Primary() (Element, bool) {
	id, ok := d.Selection.Primary()
	if !ok {
		return Element{}, false
	}
	return d.Element(id)
}

// SelectedElements returns copies of the selected elements in selection order.
func (d Document) SelectedElements() []Element {
	var out []Element
	for _, id := range d.Selection {
		if e, ok := d.Element(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// UpdateStyle applies p to the element. It reports false when the id is
// unknown or the patch changes nothing.
func (d *Document) UpdateStyle(id string, p StylePatch) bool {
	i := d.Index(id)
	if i < 0 || !p.Changes(d.Elements[i].Style) {
		return false
	}
	d.Elements[i].Style = p.Apply(d.Elements[i].Style)
	d.Elements[i].Style.ZIndex = i
	return true
}

// SetData writes one payload field.
func (d *Document) SetData(id, key, value string) bool {
	i := d.Index(id)
	if i < 0 {
		return false
	}
	if d.Elements[i].Data == nil {
		d.Elements[i].Data = map[string]string{}
	}
	if cur, ok := d.Elements[i].Data[key]; ok && cur == value {
		return false
	}
	d.Elements[i].Data[key] = value
	return true
}

// Append adds e on top of the stack.
func (d *Document) Append(e Element) {
	d.Elements = append(d.Elements, e)
	d.Reindex()
}

// Remove deletes the element and prunes it from the selection in the same
// step.
func (d *Document) Remove(id string) bool {
	i := d.Index(id)
	if i < 0 {
		return false
	}
	d.Elements = append(d.Elements[:i], d.Elements[i+1:]...)
	d.Selection = d.Selection.Prune(d.Has)
	d.Reindex()
	return true
}

// PruneSelection drops selected ids that no longer exist.
func (d *Document) PruneSelection() {
	d.Selection = d.Selection.Prune(d.Has)
}

// Reindex rewrites every ZIndex from array position.
func (d *Document) Reindex() {
	for i := range d.Elements {
		d.Elements[i].Style.ZIndex = i
	}
}

// Raise moves the element one step up the stack.
func (d *Document) Raise(id string) bool {
	i := d.Index(id)
	if i < 0 || i == len(d.Elements)-1 {
		return false
	}
	return d.move(i, i+1)
}

// Lower moves the element one step down the stack.
func (d *Document) Lower(id string) bool {
	i := d.Index(id)
	if i <= 0 {
		return false
	}
	return d.move(i, i-1)
}

func (d *Document) BringToFront(id string) bool {
	i := d.Index(id)
	if i < 0 || i == len(d.Elements)-1 {
		return false
	}
	return d.move(i, len(d.Elements)-1)
}

func (d *Document) SendToBack(id string) bool {
	i := d.Index(id)
	if i <= 0 {
		return false
	}
	return d.move(i, 0)
}

func (d *Document) move(from, to int) bool {
	e := d.Elements[from]
	d.Elements = append(d.Elements[:from], d.Elements[from+1:]...)
	d.Elements = append(d.Elements[:to], append([]Element{e}, d.Elements[to:]...)...)
	d.Reindex()
	return true
}
