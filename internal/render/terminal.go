package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"cardsmith/internal/card"
	"cardsmith/internal/transform"
)

const (
	HandleRune       = '■'
	RotateHandleRune = '↻'
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Grid draws the layout into a rune grid, one row per terminal line.
func (l *Layout) Grid() [][]rune {
	grid := make([][]rune, l.Height)
	for i := range grid {
		grid[i] = make([]rune, l.Width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	drawFrame(grid, l.Frame)
	for _, item := range l.Items {
		drawItem(grid, item)
	}
	for _, h := range l.handles {
		r := HandleRune
		if h.handle == transform.HandleRotate {
			r = RotateHandleRune
		}
		set(grid, h.x, h.y, r)
	}
	return grid
}

// Render returns the grid as strings.
func (l *Layout) Render() []string {
	grid := l.Grid()
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}

func set(grid [][]rune, x, y int, r rune) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = r
}

func drawFrame(grid [][]rune, r CellRect) {
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < right; x++ {
		set(grid, x, r.Y, '─')
		set(grid, x, bottom, '─')
	}
	for y := r.Y + 1; y < bottom; y++ {
		set(grid, r.X, y, '│')
		set(grid, right, y, '│')
	}
	set(grid, r.X, r.Y, '╭')
	set(grid, right, r.Y, '╮')
	set(grid, r.X, bottom, '╰')
	set(grid, right, bottom, '╯')
}

func drawItem(grid [][]rune, item Item) {
	r := item.Cells
	e := item.Element

	// Plain text has no border unless selected. Boxes too small for a
	// border show their content only.
	inner := r
	if (item.Selected || e.Kind != card.KindText) && r.W >= 3 && r.H >= 3 {
		drawBorder(grid, r, item.Selected)
		inner = CellRect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
	}
	for y := inner.Y; y < inner.Y+inner.H; y++ {
		for x := inner.X; x < inner.X+inner.W; x++ {
			set(grid, x, y, ' ')
		}
	}

	lines := contentLines(e, inner.W, inner.H)
	for i, line := range lines {
		if i >= inner.H {
			break
		}
		x := inner.X
		for _, ch := range line {
			if x >= inner.X+inner.W {
				break
			}
			set(grid, x, inner.Y+i, ch)
			x++
		}
	}
}

func drawBorder(grid [][]rune, r CellRect, selected bool) {
	corner, horizontal, vertical := '+', '-', '|'
	if selected {
		corner, horizontal, vertical = '#', '#', '#'
	}
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for x := r.X; x <= right; x++ {
		set(grid, x, r.Y, horizontal)
		set(grid, x, bottom, horizontal)
	}
	for y := r.Y; y <= bottom; y++ {
		set(grid, r.X, y, vertical)
		set(grid, right, y, vertical)
	}
	for _, c := range [][2]int{{r.X, r.Y}, {right, r.Y}, {r.X, bottom}, {right, bottom}} {
		set(grid, c[0], c[1], corner)
	}
}

// contentLines renders the payload of e into at most h lines of width w.
func contentLines(e card.Element, w, h int) []string {
	if w <= 0 || h <= 0 {
		return nil
	}
	var lines []string
	switch e.Kind {
	case card.KindProgress:
		lines = []string{progressBar(e, w)}
	case card.KindChart:
		lines = []string{sparkline(e.Data["series"], w)}
	case card.KindTable:
		for _, row := range tableRows(e) {
			lines = append(lines, strings.Join(row, " "))
		}
	case card.KindImage:
		lines = []string{"[" + e.Text() + "]"}
	default:
		lines = strings.Split(wordwrap.String(e.Text(), w), "\n")
	}

	if e.Style.Rotation != 0 && len(lines) < h {
		lines = append(lines, fmt.Sprintf("%s%g°", string(RotateHandleRune), e.Style.Rotation))
	}
	for i, line := range lines {
		lines[i] = truncate.String(line, uint(w))
	}
	return lines
}

func progressBar(e card.Element, w int) string {
	if w <= 0 {
		return ""
	}
	filled := min(max(int(math.Round(progressRatio(e)*float64(w))), 0), w)
	return strings.Repeat("█", filled) + strings.Repeat("░", w-filled)
}

func sparkline(series string, w int) string {
	values := parseSeries(series)
	if len(values) == 0 {
		return ""
	}
	if len(values) > w {
		values = values[len(values)-w:]
	}
	lo, hi := seriesRange(values)
	var b strings.Builder
	for _, v := range values {
		level := len(sparkRunes) - 1
		if hi > lo {
			level = int((v - lo) / (hi - lo) * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[level])
	}
	return b.String()
}
