package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"cardsmith/internal/card"
	"cardsmith/internal/viewport"
)

// Snapshot draws the card at scale 1 with nothing selected, sized to fit
// the card frame.
func Snapshot(doc card.Document) []string {
	doc.Selection = nil
	view := viewport.New()
	frame := cellsFor(view, 0, 0, doc.Canvas.Width, doc.Canvas.Height)
	lines := NewLayout(doc, view, frame.W, frame.H).Render()
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}

// WriteText writes the snapshot of doc, one line per terminal row.
func WriteText(w io.Writer, doc card.Document) error {
	bw := bufio.NewWriter(w)
	for _, line := range Snapshot(doc) {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
