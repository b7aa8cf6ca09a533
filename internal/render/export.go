package render

import (
	"fmt"
	"os"
	"strings"

	"cardsmith/internal/card"
)

type Format int

const (
	FormatPNG Format = iota
	FormatPDF
	FormatText
)

// ParseFormat accepts png, pdf, txt or text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "pdf":
		return FormatPDF, nil
	case "txt", "text":
		return FormatText, nil
	}
	return 0, fmt.Errorf("unknown export format %q", s)
}

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatText:
		return "txt"
	default:
		return "png"
	}
}

// Ext is the file extension for the format, with the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// Export writes doc to filename in the given format. PNG is drawn at scale 1.
func Export(filename string, format Format, doc card.Document) error {
	switch format {
	case FormatPDF:
		return ExportPDF(filename, doc)
	case FormatText:
		file, err := os.Create(filename)
		if err != nil {
			return err
		}
		if err := WriteText(file, doc); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	default:
		return ExportPNG(filename, doc, 1)
	}
}
