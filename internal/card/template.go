package card

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// template is the on-disk layout of a card template.
type template struct {
	Canvas   *CanvasSettings   `yaml:"canvas"`
	Elements []templateElement `yaml:"elements"`
}

type templateElement struct {
	ID    string            `yaml:"id"`
	Kind  Kind              `yaml:"kind"`
	Style yaml.Node         `yaml:"style"`
	Data  map[string]string `yaml:"data"`
}

// legacyStyle picks up the fields older templates used for rotation.
type legacyStyle struct {
	Rotation  *float64 `yaml:"rotation"`
	Transform string   `yaml:"transform"`
}

// LoadTemplate reads a YAML card template into a fresh Document. Elements
// without an id get one; a missing rotation falls back to the legacy
// transform string.
func LoadTemplate(r io.Reader) (Document, error) {
	var t template
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, fmt.Errorf("empty template")
		}
		return Document{}, fmt.Errorf("failed to parse template: %w", err)
	}

	doc := Document{Canvas: DefaultCanvas()}
	if t.Canvas != nil {
		doc.Canvas = *t.Canvas
	}
	if doc.Canvas.Width <= 0 || doc.Canvas.Height <= 0 {
		return Document{}, fmt.Errorf("canvas size must be positive, got %gx%g", doc.Canvas.Width, doc.Canvas.Height)
	}

	seen := make(map[string]bool, len(t.Elements))
	for i, te := range t.Elements {
		if !te.Kind.Valid() {
			return Document{}, fmt.Errorf("element %d: unknown kind %q", i, te.Kind)
		}
		e := Element{ID: te.ID, Kind: te.Kind, Data: te.Data}
		if e.ID == "" {
			e.ID = NewID()
		}
		if seen[e.ID] {
			return Document{}, fmt.Errorf("element %d: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true

		if !te.Style.IsZero() {
			if err := te.Style.Decode(&e.Style); err != nil {
				return Document{}, fmt.Errorf("element %q: bad style: %w", e.ID, err)
			}
			var legacy legacyStyle
			if err := te.Style.Decode(&legacy); err == nil && legacy.Rotation == nil {
				e.Style.Rotation = ParseRotation(legacy.Transform)
			}
		}
		if e.Style.Opacity == 0 {
			e.Style.Opacity = 1
		}
		if e.Data == nil {
			e.Data = map[string]string{}
		}
		doc.Elements = append(doc.Elements, e)
	}
	doc.Reindex()
	return doc, nil
}

// MarshalElements encodes elements as YAML, the format used on the clipboard.
func MarshalElements(elements []Element) ([]byte, error) {
	return yaml.Marshal(struct {
		Elements []Element `yaml:"elements"`
	}{elements})
}

// UnmarshalElements decodes elements written by MarshalElements.
func UnmarshalElements(data []byte) ([]Element, error) {
	var payload struct {
		Elements []Element `yaml:"elements"`
	}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	for i, e := range payload.Elements {
		if !e.Kind.Valid() {
			return nil, fmt.Errorf("element %d: unknown kind %q", i, e.Kind)
		}
	}
	return payload.Elements, nil
}

// DefaultDocument is the starter KPI card.
func DefaultDocument() Document {
	doc := Document{Canvas: DefaultCanvas()}

	panel := NewElement(KindBox)
	panel.Style.Left, panel.Style.Top = 10, 10
	panel.Style.Width, panel.Style.Height = 300, 160
	panel.Style.Background = "#f9fafb"

	title := NewElement(KindText)
	title.Style.Left, title.Style.Top = 25, 20
	title.Style.Width, title.Style.Height = 160, 20
	title.Data["text"] = "Monthly revenue"
	title.Style.Color = "#6b7280"

	value := NewElement(KindText)
	value.Style.Left, value.Style.Top = 25, 50
	value.Style.Width, value.Style.Height = 200, 50
	value.Style.FontSize = 32
	value.Data["text"] = "$48,200"

	icon := NewElement(KindIcon)
	icon.Style.Left, icon.Style.Top = 255, 20

	bar := NewElement(KindProgress)
	bar.Style.Left, bar.Style.Top = 25, 130
	bar.Style.Width, bar.Style.Height = 270, 15
	bar.Data["value"] = "72"

	for _, e := range []Element{panel, title, value, icon, bar} {
		doc.Append(e)
	}
	return doc
}
