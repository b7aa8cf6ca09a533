package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"cardsmith/internal/card"
)

// ExportPadding is the white margin around exported cards, in canvas pixels.
const ExportPadding = 8.0

type pngPainter struct {
	dc    *gg.Context
	font  *truetype.Font
	faces map[float64]font.Face
}

// WritePNG draws doc at the given scale and encodes it as PNG.
func WritePNG(w io.Writer, doc card.Document, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	cv := doc.Canvas
	if cv.Width <= 0 || cv.Height <= 0 {
		return fmt.Errorf("nothing to export")
	}

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}

	imageWidth := int(math.Ceil((cv.Width + 2*ExportPadding) * scale))
	imageHeight := int(math.Ceil((cv.Height + 2*ExportPadding) * scale))
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()
	dc.Scale(scale, scale)
	dc.Translate(ExportPadding, ExportPadding)

	p := &pngPainter{dc: dc, font: ttfFont, faces: map[float64]font.Face{}}
	p.drawCanvas(cv)
	for _, e := range doc.Elements {
		p.drawElement(e)
	}
	return dc.EncodePNG(w)
}

// ExportPNG writes doc to a PNG file.
func ExportPNG(filename string, doc card.Document, scale float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WritePNG(file, doc, scale); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (p *pngPainter) face(size float64) font.Face {
	if f, ok := p.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(p.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	p.faces[size] = f
	return f
}

func (p *pngPainter) setColor(value, fallback string, a float64) {
	c := parseColor(value, fallback)
	p.dc.SetRGBA(c.R, c.G, c.B, a)
}

func (p *pngPainter) shape(x, y, w, h, radius float64) {
	radius = math.Min(radius, math.Min(w, h)/2)
	if radius <= 0 {
		p.dc.DrawRectangle(x, y, w, h)
		return
	}
	p.dc.DrawRoundedRectangle(x, y, w, h, radius)
}

func (p *pngPainter) drawCanvas(cv card.CanvasSettings) {
	dc := p.dc
	p.setColor(cv.Background, "#ffffff", 1)
	p.shape(0, 0, cv.Width, cv.Height, cv.Radius)
	dc.Fill()
	if cv.BorderWidth > 0 && cv.BorderColor != "" {
		p.setColor(cv.BorderColor, "#d1d5db", 1)
		dc.SetLineWidth(cv.BorderWidth)
		p.shape(0, 0, cv.Width, cv.Height, cv.Radius)
		dc.Stroke()
	}
}

func (p *pngPainter) drawElement(e card.Element) {
	dc := p.dc
	st := e.Style
	a := alpha(st)

	dc.Push()
	defer dc.Pop()
	if st.Rotation != 0 {
		cx, cy := st.Center()
		dc.RotateAbout(gg.Radians(st.Rotation), cx, cy)
	}

	if st.Background != "" && e.Kind != card.KindProgress {
		p.setColor(st.Background, "#ffffff", a)
		p.shape(st.Left, st.Top, st.Width, st.Height, st.Radius)
		dc.Fill()
	}
	if st.BorderWidth > 0 && st.BorderColor != "" {
		p.setColor(st.BorderColor, "#000000", a)
		dc.SetLineWidth(st.BorderWidth)
		p.shape(st.Left, st.Top, st.Width, st.Height, st.Radius)
		dc.Stroke()
	}

	switch e.Kind {
	case card.KindBox:
	case card.KindIcon:
		p.setColor(st.Color, defaultTextColor, a)
		dc.SetFontFace(p.face(math.Max(1, math.Min(st.Width, st.Height)*0.8)))
		cx, cy := st.Center()
		dc.DrawStringAnchored(e.Text(), cx, cy, 0.5, 0.5)
	case card.KindImage:
		p.drawImage(e, a)
	case card.KindChart:
		p.drawChart(e, a)
	case card.KindTable:
		p.drawTable(e, a)
	case card.KindProgress:
		p.setColor(st.Background, "#e5e7eb", a)
		p.shape(st.Left, st.Top, st.Width, st.Height, st.Height/2)
		dc.Fill()
		if ratio := progressRatio(e); ratio > 0 {
			p.setColor(st.Color, "#10b981", a)
			p.shape(st.Left, st.Top, st.Width*ratio, st.Height, st.Height/2)
			dc.Fill()
		}
	default:
		p.setColor(st.Color, defaultTextColor, a)
		dc.SetFontFace(p.face(fontSize(st)))
		dc.DrawStringWrapped(e.Text(), st.Left, st.Top, 0, 0, st.Width, 1.2, gg.AlignLeft)
	}
}

func (p *pngPainter) drawImage(e card.Element, a float64) {
	dc := p.dc
	st := e.Style
	if src := e.Data["src"]; src != "" {
		if img, err := gg.LoadImage(src); err == nil {
			b := img.Bounds()
			if b.Dx() > 0 && b.Dy() > 0 {
				dc.Push()
				dc.Translate(st.Left, st.Top)
				dc.Scale(st.Width/float64(b.Dx()), st.Height/float64(b.Dy()))
				dc.DrawImage(img, 0, 0)
				dc.Pop()
				return
			}
		}
	}

	// Placeholder: a crossed frame.
	p.setColor(st.Color, "#9ca3af", a)
	dc.SetLineWidth(1)
	dc.DrawRectangle(st.Left, st.Top, st.Width, st.Height)
	dc.DrawLine(st.Left, st.Top, st.Left+st.Width, st.Top+st.Height)
	dc.DrawLine(st.Left+st.Width, st.Top, st.Left, st.Top+st.Height)
	dc.Stroke()
}

func (p *pngPainter) drawChart(e card.Element, a float64) {
	values := parseSeries(e.Data["series"])
	if len(values) < 2 {
		return
	}
	dc := p.dc
	st := e.Style
	lo, hi := seriesRange(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	stepX := st.Width / float64(len(values)-1)
	for i, v := range values {
		x := st.Left + float64(i)*stepX
		y := st.Top + st.Height - (v-lo)/span*st.Height
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	p.setColor(st.Color, "#2563eb", a)
	dc.SetLineWidth(2)
	dc.Stroke()
}

func (p *pngPainter) drawTable(e card.Element, a float64) {
	rows := tableRows(e)
	if len(rows) == 0 {
		return
	}
	dc := p.dc
	st := e.Style
	size := fontSize(st)
	dc.SetFontFace(p.face(size))
	p.setColor(st.Color, defaultTextColor, a)

	rowHeight := size * 1.4
	for r, row := range rows {
		y := st.Top + float64(r)*rowHeight
		if y+rowHeight > st.Top+st.Height {
			break
		}
		colWidth := st.Width / float64(len(row))
		for c, cell := range row {
			dc.DrawStringAnchored(cell, st.Left+float64(c)*colWidth+2, y+rowHeight/2, 0, 0.35)
		}
	}
}
