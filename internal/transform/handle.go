package transform

import "strings"

// Direction names the edges a resize handle moves.
type Direction string

const (
	N  Direction = "n"
	S  Direction = "s"
	E  Direction = "e"
	W  Direction = "w"
	NE Direction = "ne"
	NW Direction = "nw"
	SE Direction = "se"
	SW Direction = "sw"
)

// Directions lists the eight resize handles clockwise from the top.
var Directions = []Direction{N, NE, E, SE, S, SW, W, NW}

func (d Direction) North() bool { return strings.Contains(string(d), "n") }
func (d Direction) South() bool { return strings.Contains(string(d), "s") }
func (d Direction) East() bool  { return strings.Contains(string(d), "e") }
func (d Direction) West() bool  { return strings.Contains(string(d), "w") }

func (d Direction) Valid() bool {
	for _, known := range Directions {
		if d == known {
			return true
		}
	}
	return false
}

// Handle is a control point on the selection box: one of the eight resize
// directions or the rotate handle.
type Handle string

const HandleRotate Handle = "rotate"

// ResizeHandle returns the handle for a resize direction.
func ResizeHandle(d Direction) Handle {
	return Handle(d)
}

// Direction returns the resize direction of h.
func (h Handle) Direction() (Direction, bool) {
	d := Direction(h)
	return d, d.Valid()
}
