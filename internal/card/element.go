// Package card holds the document model edited by cardsmith: a card frame
// and an ordered list of positioned elements.
package card

import (
	"maps"

	"github.com/google/uuid"
)

type Kind string

const (
	KindText     Kind = "text"
	KindBox      Kind = "box"
	KindIcon     Kind = "icon"
	KindImage    Kind = "image"
	KindChart    Kind = "chart"
	KindTable    Kind = "table"
	KindProgress Kind = "progress"
)

// Kinds lists every element kind in menu order.
var Kinds = []Kind{KindText, KindBox, KindIcon, KindImage, KindChart, KindTable, KindProgress}

// Valid reports whether k is a known element kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Style positions an element in canvas-local pixels. Pan and zoom never
// touch these values.
type Style struct {
	Left     float64 `yaml:"left"`
	Top      float64 `yaml:"top"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	ZIndex   int     `yaml:"z_index"`
	Rotation float64 `yaml:"rotation"`

	Background  string  `yaml:"background,omitempty"`
	Color       string  `yaml:"color,omitempty"`
	BorderColor string  `yaml:"border_color,omitempty"`
	BorderWidth float64 `yaml:"border_width,omitempty"`
	Radius      float64 `yaml:"radius,omitempty"`
	FontSize    float64 `yaml:"font_size,omitempty"`
	Opacity     float64 `yaml:"opacity,omitempty"`
}

// Center returns the midpoint of the element's unrotated box.
func (s Style) Center() (float64, float64) {
	return s.Left + s.Width/2, s.Top + s.Height/2
}

// StylePatch is a partial style update. Nil fields are left unchanged.
type StylePatch struct {
	Left     *float64
	Top      *float64
	Width    *float64
	Height   *float64
	Rotation *float64

	Background  *string
	Color       *string
	BorderColor *string
	FontSize    *float64
	Opacity     *float64
}

// Apply returns s with every set field of p written over it.
func (p StylePatch) Apply(s Style) Style {
	if p.Left != nil {
		s.Left = *p.Left
	}
	if p.Top != nil {
		s.Top = *p.Top
	}
	if p.Width != nil {
		s.Width = *p.Width
	}
	if p.Height != nil {
		s.Height = *p.Height
	}
	if p.Rotation != nil {
		s.Rotation = *p.Rotation
	}
	if p.Background != nil {
		s.Background = *p.Background
	}
	if p.Color != nil {
		s.Color = *p.Color
	}
	if p.BorderColor != nil {
		s.BorderColor = *p.BorderColor
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.Opacity != nil {
		s.Opacity = *p.Opacity
	}
	return s
}

// IsZero reports whether the patch changes nothing.
func (p StylePatch) IsZero() bool {
	return p == StylePatch{}
}

// Changes reports whether applying p to s yields a different style.
func (p StylePatch) Changes(s Style) bool {
	return p.Apply(s) != s
}

// Float returns a pointer to v for building patches.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v for building patches.
func String(v string) *string { return &v }

// Element is one positioned item on the card.
type Element struct {
	ID    string            `yaml:"id"`
	Kind  Kind              `yaml:"kind"`
	Style Style             `yaml:"style"`
	Data  map[string]string `yaml:"data,omitempty"`
}

// Text returns the element's text payload.
func (e Element) Text() string {
	switch e.Kind {
	case KindIcon:
		return e.Data["icon"]
	case KindProgress:
		if label := e.Data["label"]; label != "" {
			return label
		}
		return e.Data["value"] + "%"
	default:
		return e.Data["text"]
	}
}

// Clone returns a copy that shares no maps with e.
func (e Element) Clone() Element {
	e.Data = maps.Clone(e.Data)
	return e
}

// NewID returns a fresh element identifier.
func NewID() string {
	return uuid.NewString()
}

// NewElement builds an element of the given kind with default size and
// payload at (20,20).
func NewElement(kind Kind) Element {
	e := Element{
		ID:   NewID(),
		Kind: kind,
		Style: Style{
			Left:    20,
			Top:     20,
			Width:   120,
			Height:  40,
			Opacity: 1,
		},
		Data: map[string]string{},
	}

	switch kind {
	case KindText:
		e.Data["text"] = "Label"
		e.Style.Color = "#1f2937"
		e.Style.FontSize = 14
	case KindBox:
		e.Style.Width, e.Style.Height = 100, 100
		e.Style.Background = "#e5e7eb"
		e.Style.Radius = 8
	case KindIcon:
		e.Style.Width, e.Style.Height = 40, 40
		e.Data["icon"] = "★"
		e.Style.Color = "#f59e0b"
	case KindImage:
		e.Style.Width, e.Style.Height = 80, 80
		e.Data["src"] = ""
		e.Data["text"] = "image"
		e.Style.Background = "#d1d5db"
	case KindChart:
		e.Style.Width, e.Style.Height = 160, 80
		e.Data["series"] = "3,5,4,7,6,9"
		e.Style.Color = "#2563eb"
	case KindTable:
		e.Style.Width, e.Style.Height = 160, 80
		e.Data["rows"] = "Q1,12|Q2,18"
		e.Style.Color = "#111827"
	case KindProgress:
		e.Style.Width, e.Style.Height = 160, 10
		e.Data["value"] = "60"
		e.Data["max"] = "100"
		e.Style.Background = "#e5e7eb"
		e.Style.Color = "#10b981"
	}
	return e
}
