package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"cardsmith/internal/card"
)

// WritePDF writes doc as a single PDF page the size of the card, one point
// per canvas pixel.
func WritePDF(w io.Writer, doc card.Document) error {
	cv := doc.Canvas
	if cv.Width <= 0 || cv.Height <= 0 {
		return fmt.Errorf("nothing to export")
	}

	pageW, pageH := cv.Width+2*ExportPadding, cv.Height+2*ExportPadding
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	p := &pdfPainter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	p.drawCanvas(cv)
	for _, e := range doc.Elements {
		p.drawElement(e)
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return pdf.Output(w)
}

// ExportPDF writes doc to a PDF file.
func ExportPDF(filename string, doc card.Document) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WritePDF(file, doc); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

type pdfPainter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (p *pdfPainter) fill(value, fallback string) {
	r, g, b := parseColor(value, fallback).RGB255()
	p.pdf.SetFillColor(int(r), int(g), int(b))
}

func (p *pdfPainter) stroke(value, fallback string) {
	r, g, b := parseColor(value, fallback).RGB255()
	p.pdf.SetDrawColor(int(r), int(g), int(b))
}

func (p *pdfPainter) text(value, fallback string) {
	r, g, b := parseColor(value, fallback).RGB255()
	p.pdf.SetTextColor(int(r), int(g), int(b))
}

func (p *pdfPainter) drawCanvas(cv card.CanvasSettings) {
	p.fill(cv.Background, "#ffffff")
	style := "F"
	if cv.BorderWidth > 0 && cv.BorderColor != "" {
		p.stroke(cv.BorderColor, "#d1d5db")
		p.pdf.SetLineWidth(cv.BorderWidth)
		style = "FD"
	}
	p.pdf.Rect(ExportPadding, ExportPadding, cv.Width, cv.Height, style)
}

func (p *pdfPainter) drawElement(e card.Element) {
	pdf := p.pdf
	st := e.Style
	x, y := st.Left+ExportPadding, st.Top+ExportPadding

	pdf.TransformBegin()
	defer pdf.TransformEnd()
	if st.Rotation != 0 {
		cx, cy := st.Center()
		// gofpdf rotates counter-clockwise.
		pdf.TransformRotate(-st.Rotation, cx+ExportPadding, cy+ExportPadding)
	}
	pdf.SetAlpha(alpha(st), "Normal")
	defer pdf.SetAlpha(1, "Normal")

	if st.Background != "" && e.Kind != card.KindProgress {
		p.fill(st.Background, "#ffffff")
		pdf.Rect(x, y, st.Width, st.Height, "F")
	}
	if st.BorderWidth > 0 && st.BorderColor != "" {
		p.stroke(st.BorderColor, "#000000")
		pdf.SetLineWidth(st.BorderWidth)
		pdf.Rect(x, y, st.Width, st.Height, "D")
	}

	switch e.Kind {
	case card.KindBox:
	case card.KindIcon:
		size := math.Min(st.Width, st.Height) * 0.8
		pdf.SetFont("Helvetica", "", size)
		p.text(st.Color, defaultTextColor)
		pdf.SetXY(x, y)
		pdf.CellFormat(st.Width, st.Height, p.tr(e.Text()), "", 0, "CM", false, 0, "")
	case card.KindImage:
		p.drawImage(e, x, y)
	case card.KindChart:
		p.drawChart(e, x, y)
	case card.KindTable:
		p.drawTable(e, x, y)
	case card.KindProgress:
		p.fill(st.Background, "#e5e7eb")
		pdf.Rect(x, y, st.Width, st.Height, "F")
		if ratio := progressRatio(e); ratio > 0 {
			p.fill(st.Color, "#10b981")
			pdf.Rect(x, y, st.Width*ratio, st.Height, "F")
		}
	default:
		size := fontSize(st)
		pdf.SetFont("Helvetica", "", size)
		p.text(st.Color, defaultTextColor)
		pdf.SetXY(x, y)
		pdf.MultiCell(st.Width, size*1.2, p.tr(e.Text()), "", "L", false)
	}
}

func (p *pdfPainter) drawImage(e card.Element, x, y float64) {
	st := e.Style
	src := e.Data["src"]
	switch strings.ToLower(filepath.Ext(src)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		if _, err := os.Stat(src); err == nil {
			p.pdf.ImageOptions(src, x, y, st.Width, st.Height, false, gofpdf.ImageOptions{ReadDpi: false}, 0, "")
			return
		}
	}
	p.stroke(st.Color, "#9ca3af")
	p.pdf.SetLineWidth(1)
	p.pdf.Rect(x, y, st.Width, st.Height, "D")
	p.pdf.Line(x, y, x+st.Width, y+st.Height)
	p.pdf.Line(x+st.Width, y, x, y+st.Height)
}

func (p *pdfPainter) drawChart(e card.Element, x, y float64) {
	values := parseSeries(e.Data["series"])
	if len(values) < 2 {
		return
	}
	st := e.Style
	lo, hi := seriesRange(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	stepX := st.Width / float64(len(values)-1)
	p.stroke(st.Color, "#2563eb")
	p.pdf.SetLineWidth(2)
	prevX, prevY := 0.0, 0.0
	for i, v := range values {
		px := x + float64(i)*stepX
		py := y + st.Height - (v-lo)/span*st.Height
		if i > 0 {
			p.pdf.Line(prevX, prevY, px, py)
		}
		prevX, prevY = px, py
	}
}

func (p *pdfPainter) drawTable(e card.Element, x, y float64) {
	rows := tableRows(e)
	if len(rows) == 0 {
		return
	}
	st := e.Style
	size := fontSize(st)
	p.pdf.SetFont("Helvetica", "", size)
	p.text(st.Color, defaultTextColor)

	rowHeight := size * 1.4
	for r, row := range rows {
		top := y + float64(r)*rowHeight
		if top+rowHeight > y+st.Height {
			break
		}
		colWidth := st.Width / float64(len(row))
		for c, cell := range row {
			p.pdf.SetXY(x+float64(c)*colWidth, top)
			p.pdf.CellFormat(colWidth, rowHeight, p.tr(cell), "", 0, "LM", false, 0, "")
		}
	}
}
