// Package render draws a card document: to a terminal cell grid for the
// editor, and to PNG, PDF or plain text for export.
package render

import (
	"math"

	"cardsmith/internal/card"
	"cardsmith/internal/transform"
	"cardsmith/internal/viewport"
)

// A terminal cell covers this many screen pixels.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// CellRect is a rectangle in terminal cells.
type CellRect struct {
	X, Y, W, H int
}

func (r CellRect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Item is one element placed on the terminal grid.
type Item struct {
	Element  card.Element
	Cells    CellRect
	Screen   transform.Rect
	Selected bool
}

// HitKind says what a cell hit landed on.
type HitKind int

const (
	HitBackground HitKind = iota
	HitElement
	HitHandle
)

type Hit struct {
	Kind   HitKind
	ID     string
	Handle transform.Handle
}

type handleCell struct {
	x, y   int
	handle transform.Handle
}

// Layout is a document placed through a viewport onto a grid of cells. It
// is rebuilt for every frame and is read-only once built.
type Layout struct {
	Width, Height int
	Frame         CellRect
	Items         []Item

	primary string
	handles []handleCell
	index   map[string]int
}

// NewLayout places doc onto a width x height grid. Items keep document
// order, so later items are drawn on top.
func NewLayout(doc card.Document, view *viewport.Viewport, width, height int) *Layout {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if view == nil {
		view = viewport.New()
	}

	l := &Layout{
		Width:  width,
		Height: height,
		Frame:  cellsFor(view, 0, 0, doc.Canvas.Width, doc.Canvas.Height),
		index:  make(map[string]int, len(doc.Elements)),
	}

	for _, e := range doc.Elements {
		st := e.Style
		sx, sy := view.CanvasToScreen(st.Left, st.Top)
		ex, ey := view.CanvasToScreen(st.Left+st.Width, st.Top+st.Height)
		l.index[e.ID] = len(l.Items)
		l.Items = append(l.Items, Item{
			Element:  e,
			Cells:    cellsFor(view, st.Left, st.Top, st.Width, st.Height),
			Screen:   transform.Rect{X: sx, Y: sy, W: ex - sx, H: ey - sy},
			Selected: doc.Selection.Contains(e.ID),
		})
	}

	if primary, ok := doc.Primary(); ok {
		l.primary = primary.ID
		l.handles = handlesFor(l.Items[l.index[primary.ID]].Cells)
	}
	return l
}

func cellsFor(view *viewport.Viewport, left, top, w, h float64) CellRect {
	sx, sy := view.CanvasToScreen(left, top)
	ex, ey := view.CanvasToScreen(left+w, top+h)
	x0 := int(math.Floor(sx / CellWidth))
	y0 := int(math.Floor(sy / CellHeight))
	x1 := int(math.Ceil(ex / CellWidth))
	y1 := int(math.Ceil(ey / CellHeight))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return CellRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// handlesFor places the eight resize handles on the border of r and the
// rotate handle one row above its top edge. Corners come first so they win
// when a small box makes handles overlap.
func handlesFor(r CellRect) []handleCell {
	left, top := r.X, r.Y
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	midX, midY := r.X+r.W/2, r.Y+r.H/2
	return []handleCell{
		{left, top, transform.ResizeHandle(transform.NW)},
		{right, top, transform.ResizeHandle(transform.NE)},
		{right, bottom, transform.ResizeHandle(transform.SE)},
		{left, bottom, transform.ResizeHandle(transform.SW)},
		{midX, top, transform.ResizeHandle(transform.N)},
		{right, midY, transform.ResizeHandle(transform.E)},
		{midX, bottom, transform.ResizeHandle(transform.S)},
		{left, midY, transform.ResizeHandle(transform.W)},
		{midX, top - 1, transform.HandleRotate},
	}
}

// Primary is the element that carries the handles, empty when nothing is
// selected.
func (l *Layout) Primary() string {
	return l.primary
}

// HitTest reports what is under cell (x, y). Handles of the primary
// selection win over element bodies, and topmost elements win over lower
// ones.
func (l *Layout) HitTest(x, y int) Hit {
	for _, h := range l.handles {
		if h.x == x && h.y == y {
			return Hit{Kind: HitHandle, ID: l.primary, Handle: h.handle}
		}
	}
	for i := len(l.Items) - 1; i >= 0; i-- {
		if l.Items[i].Cells.Contains(x, y) {
			return Hit{Kind: HitElement, ID: l.Items[i].Element.ID}
		}
	}
	return Hit{Kind: HitBackground}
}

// Bounds implements transform.Measurer with the unrotated screen box of
// the element. Rotation is about the center, so the center is exact.
func (l *Layout) Bounds(id string) (transform.Rect, bool) {
	i, ok := l.index[id]
	if !ok {
		return transform.Rect{}, false
	}
	return l.Items[i].Screen, true
}

// CellPoint converts a cell position into the screen pixel the engine
// works in.
func CellPoint(x, y int) transform.Point {
	return transform.Point{X: float64(x) * CellWidth, Y: float64(y) * CellHeight}
}
