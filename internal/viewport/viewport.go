// Package viewport owns the zoom scale and pan offset of the canvas and
// converts between screen pixels and canvas-local pixels.
package viewport

import "math"

const (
	MinScale = 0.1
	MaxScale = 4.0

	// DefaultZoomStep is the scale change per wheel notch.
	DefaultZoomStep = 0.1

	// scale is kept on a 1e-4 grid so repeated steps do not drift.
	scalePrecision = 1e4
)

// Viewport maps canvas-local coordinates onto the screen:
//
//	screen = canvas*Scale + Offset
//
// It only affects how the canvas is drawn. Stored element coordinates are
// never rewritten by zooming or panning.
type Viewport struct {
	Scale    float64
	OffsetX  float64
	OffsetY  float64
	ZoomStep float64
}

func New() *Viewport {
	return &Viewport{Scale: 1, ZoomStep: DefaultZoomStep}
}

// Zoom adds delta to the scale and clamps the result to [MinScale, MaxScale].
func (v *Viewport) Zoom(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	v.Scale = clampScale(v.scale() + delta)
}

// Pan moves the offset. The canvas is unbounded so nothing is clamped.
func (v *Viewport) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// Reset restores scale 1 and offset (0,0).
func (v *Viewport) Reset() {
	v.Scale = 1
	v.OffsetX = 0
	v.OffsetY = 0
}

// ToCanvasDelta converts a pointer movement in screen pixels into
// canvas-local pixels.
func (v *Viewport) ToCanvasDelta(screenDx, screenDy float64) (float64, float64) {
	s := v.scale()
	return screenDx / s, screenDy / s
}

// ScreenToCanvas converts an absolute screen point into canvas-local pixels.
func (v *Viewport) ScreenToCanvas(x, y float64) (float64, float64) {
	s := v.scale()
	return (x - v.OffsetX) / s, (y - v.OffsetY) / s
}

// CanvasToScreen converts a canvas-local point into screen pixels.
func (v *Viewport) CanvasToScreen(x, y float64) (float64, float64) {
	s := v.scale()
	return x*s + v.OffsetX, y*s + v.OffsetY
}

// WheelEvent is one wheel notch or trackpad scroll in screen pixels.
// Negative DeltaY scrolls up.
type WheelEvent struct {
	DeltaX float64
	DeltaY float64
	Zoom   bool // zoom modifier held
}

// Wheel pans by the scroll delta, or zooms by one step when the zoom
// modifier is held. Zoom is centered on the canvas origin, not on the
// pointer.
func (v *Viewport) Wheel(ev WheelEvent) {
	if ev.Zoom {
		step := v.ZoomStep
		if step <= 0 {
			step = DefaultZoomStep
		}
		switch {
		case ev.DeltaY < 0:
			v.Zoom(step)
		case ev.DeltaY > 0:
			v.Zoom(-step)
		}
		return
	}
	v.Pan(-ev.DeltaX, -ev.DeltaY)
}

// scale guards against a zero-value Viewport.
func (v *Viewport) scale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}

func clampScale(s float64) float64 {
	s = math.Round(s*scalePrecision) / scalePrecision
	return math.Max(MinScale, math.Min(MaxScale, s))
}
