// Package transform turns pointer gestures into element moves, resizes and
// rotations.
//
// The engine never writes to the document. It reads the current state from
// its Host and proposes changes through the Host callbacks; the host is the
// single writer.
package transform

import (
	"math"

	"cardsmith/internal/card"
	"cardsmith/internal/selection"
	"cardsmith/internal/viewport"
)

const (
	// SnapStep is the coordinate grid used while dragging and resizing.
	SnapStep = 5.0
	// PrecisionSnapStep is used while the precision modifier is held.
	PrecisionSnapStep = 1.0
	// RotationSnap is the angle grid used while the precision modifier is held.
	RotationSnap = 15.0
	// MinSize is the smallest width or height a resize can produce.
	MinSize = 10.0
)

// Host is the owner of the document as seen by the engine.
type Host interface {
	Element(id string) (card.Element, bool)
	Selection() selection.Set

	Update(id string, patch card.StylePatch)
	Select(ids []string)
	InteractionStart()
}

// Measurer reports the rendered bounding box of an element in screen
// pixels. The engine asks once per gesture, at pointer-down.
type Measurer interface {
	Bounds(id string) (Rect, bool)
}

type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Modifiers are the keyboard modifiers held during a pointer event.
type Modifiers struct {
	Precision   bool
	MultiSelect bool
}

func (m Modifiers) snapStep() float64 {
	if m.Precision {
		return PrecisionSnapStep
	}
	return SnapStep
}

type Mode int

const (
	Idle Mode = iota
	Dragging
	Resizing
	Rotating
	Panning
)

func (m Mode) String() string {
	switch m {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	case Rotating:
		return "rotating"
	case Panning:
		return "panning"
	default:
		return "idle"
	}
}

// Engine is the per-gesture state machine.
type Engine struct {
	host    Host
	view    *viewport.Viewport
	measure Measurer

	mode   Mode
	dir    Direction
	target string

	startPointer Point
	lastPointer  Point
	startStyle   card.Style
	center       Point
	startAngle   float64

	dispatching bool
}

// New returns an idle engine. measure may be nil, in which case bounds are
// derived from the element style and the viewport.
func New(host Host, view *viewport.Viewport, measure Measurer) *Engine {
	if view == nil {
		view = viewport.New()
	}
	return &Engine{host: host, view: view, measure: measure}
}

// SetMeasurer replaces the bounds source, typically after each render.
func (e *Engine) SetMeasurer(m Measurer) {
	e.measure = m
}

func (e *Engine) Mode() Mode { return e.mode }

// Direction is the active resize direction while Resizing.
func (e *Engine) Direction() Direction { return e.dir }

// Target is the element of the active gesture, empty when idle or panning.
func (e *Engine) Target() string { return e.target }

// Active reports whether a gesture is in progress.
func (e *Engine) Active() bool { return e.mode != Idle }

// PointerDownElement handles a press on an element body. It updates the
// selection and starts a drag. It reports whether a gesture started.
func (e *Engine) PointerDownElement(id string, pt Point, mods Modifiers) bool {
	if !e.enter() {
		return false
	}
	defer e.leave()
	e.reset()

	el, ok := e.host.Element(id)
	if !ok {
		return false
	}

	if mods.MultiSelect {
		next := e.host.Selection().Toggle(id)
		e.host.Select(next.IDs())
		if !next.Contains(id) {
			return false
		}
	} else {
		e.host.Select([]string{id})
	}

	e.host.InteractionStart()
	e.mode = Dragging
	e.target = id
	e.startPointer = pt
	e.lastPointer = pt
	e.startStyle = el.Style
	return true
}

// PointerDownHandle handles a press on one of the selection handles of the
// element. It reports whether a gesture started.
func (e *Engine) PointerDownHandle(id string, h Handle, pt Point, mods Modifiers) bool {
	if !e.enter() {
		return false
	}
	defer e.leave()
	e.reset()

	el, ok := e.host.Element(id)
	if !ok {
		return false
	}

	var dir Direction
	rotate := h == HandleRotate
	if !rotate {
		if dir, ok = h.Direction(); !ok {
			return false
		}
	}

	e.host.InteractionStart()
	e.target = id
	e.startPointer = pt
	e.lastPointer = pt
	e.startStyle = el.Style

	if rotate {
		e.mode = Rotating
		e.center = e.bounds(el).Center()
		e.startAngle = math.Atan2(pt.Y-e.center.Y, pt.X-e.center.X)
		return true
	}
	e.mode = Resizing
	e.dir = dir
	return true
}

// PointerDownBackground handles a press on empty canvas. It clears the
// selection unless the multi-select modifier is held and starts panning.
func (e *Engine) PointerDownBackground(pt Point, mods Modifiers) {
	if !e.enter() {
		return
	}
	defer e.leave()
	e.reset()

	if !mods.MultiSelect && !e.host.Selection().Empty() {
		e.host.Select(nil)
	}
	e.mode = Panning
	e.startPointer = pt
	e.lastPointer = pt
}

// PointerMove advances the active gesture. Each call proposes at most one
// update. Moves for an element that no longer exists are ignored.
func (e *Engine) PointerMove(pt Point, mods Modifiers) {
	if !e.enter() {
		return
	}
	defer e.leave()

	switch e.mode {
	case Idle:
		return
	case Panning:
		e.view.Pan(pt.X-e.lastPointer.X, pt.Y-e.lastPointer.Y)
		e.lastPointer = pt
		return
	}

	el, ok := e.host.Element(e.target)
	if !ok {
		return
	}
	e.lastPointer = pt

	var patch card.StylePatch
	switch e.mode {
	case Dragging:
		patch = e.drag(pt, mods)
	case Resizing:
		patch = e.resize(pt, mods)
	case Rotating:
		patch = e.rotate(pt, mods)
	}
	if patch.Changes(el.Style) {
		e.host.Update(e.target, patch)
	}
}

// PointerUp ends whatever gesture is active, wherever the pointer is.
func (e *Engine) PointerUp() {
	e.reset()
}

// Cancel ends the gesture without further updates.
func (e *Engine) Cancel() {
	e.reset()
}

func (e *Engine) drag(pt Point, mods Modifiers) card.StylePatch {
	dx, dy := e.view.ToCanvasDelta(pt.X-e.startPointer.X, pt.Y-e.startPointer.Y)
	step := mods.snapStep()
	return card.StylePatch{
		Left: card.Float(Snap(e.startStyle.Left+dx, step)),
		Top:  card.Float(Snap(e.startStyle.Top+dy, step)),
	}
}

func (e *Engine) resize(pt Point, mods Modifiers) card.StylePatch {
	dx, dy := e.view.ToCanvasDelta(pt.X-e.startPointer.X, pt.Y-e.startPointer.Y)
	step := mods.snapStep()
	left, width := resizeAxis(e.startStyle.Left, e.startStyle.Width, dx, step, e.dir.West(), e.dir.East())
	top, height := resizeAxis(e.startStyle.Top, e.startStyle.Height, dy, step, e.dir.North(), e.dir.South())
	return card.StylePatch{
		Left:   card.Float(left),
		Top:    card.Float(top),
		Width:  card.Float(width),
		Height: card.Float(height),
	}
}

// resizeAxis applies a pointer delta to one axis and snaps the result. The
// far edge grows the size; the near edge shrinks it and shifts the position.
// Once the size is pinned at MinSize the position comes from the start far
// edge and is not snapped, so that edge does not move.
func resizeAxis(pos, size, delta, step float64, near, far bool) (float64, float64) {
	switch {
	case far:
		return Snap(pos, step), math.Max(MinSize, Snap(size+delta, step))
	case near:
		if size-delta > MinSize {
			return Snap(pos+delta, step), math.Max(MinSize, Snap(size-delta, step))
		}
		return pos + size - MinSize, MinSize
	default:
		return Snap(pos, step), math.Max(MinSize, Snap(size, step))
	}
}

func (e *Engine) rotate(pt Point, mods Modifiers) card.StylePatch {
	angle := math.Atan2(pt.Y-e.center.Y, pt.X-e.center.X)
	deg := e.startStyle.Rotation + (angle-e.startAngle)*180/math.Pi
	if mods.Precision {
		deg = Snap(deg, RotationSnap)
	}
	return card.StylePatch{Rotation: card.Float(card.NormalizeDegrees(deg))}
}

// bounds returns the measured screen box of el, falling back to its style
// mapped through the viewport.
func (e *Engine) bounds(el card.Element) Rect {
	if e.measure != nil {
		if r, ok := e.measure.Bounds(el.ID); ok {
			return r
		}
	}
	x, y := e.view.CanvasToScreen(el.Style.Left, el.Style.Top)
	s := e.view.Scale
	if s <= 0 {
		s = 1
	}
	return Rect{X: x, Y: y, W: el.Style.Width * s, H: el.Style.Height * s}
}

func (e *Engine) reset() {
	e.mode = Idle
	e.dir = ""
	e.target = ""
}

func (e *Engine) enter() bool {
	if e.dispatching {
		return false
	}
	e.dispatching = true
	return true
}

func (e *Engine) leave() {
	e.dispatching = false
}

// Snap rounds v to the nearest multiple of step.
func Snap(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}
