package card

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var rotateRe = regexp.MustCompile(`rotate\(\s*(-?[0-9]*\.?[0-9]+)\s*(deg|rad|turn)?\s*\)`)

// Transform renders the rotation as a presentation transform string. This
// is the only place rotation is turned into text.
func (s Style) Transform() string {
	if s.Rotation == 0 {
		return ""
	}
	return "rotate(" + strconv.FormatFloat(s.Rotation, 'f', -1, 64) + "deg)"
}

// ParseRotation recovers a rotation in degrees from a legacy transform
// string such as "translate(4px, 2px) rotate(30deg)". Anything it cannot
// read counts as 0.
func ParseRotation(transform string) float64 {
	m := rotateRe.FindStringSubmatch(strings.TrimSpace(transform))
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	switch m[2] {
	case "rad":
		return v * 180 / math.Pi
	case "turn":
		return v * 360
	default:
		return v
	}
}

// NormalizeDegrees folds an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg == 360 || deg == 0 {
		return 0
	}
	return deg
}
