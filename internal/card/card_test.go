package card

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardsmith/internal/selection"
)

func testDoc(ids ...string) Document {
	doc := Document{Canvas: DefaultCanvas()}
	for _, id := range ids {
		e := NewElement(KindBox)
		e.ID = id
		doc.Append(e)
	}
	return doc
}

func TestDocument_RemovePrunesSelection(t *testing.T) {
	doc := testDoc("a", "b", "c")
	doc.Selection = selection.Set{"a", "b"}

	require.True(t, doc.Remove("b"))

	assert.Equal(t, []string{"a"}, doc.Selection.IDs())
	for _, id := range doc.Selection {
		assert.True(t, doc.Has(id), "dangling id %q in selection", id)
	}
	assert.False(t, doc.Remove("missing"))
}

func TestDocument_ReorderRewritesZIndex(t *testing.T) {
	tests := []struct {
		name string
		op   func(d *Document) bool
		want []string
	}{
		{"raise", func(d *Document) bool { return d.Raise("a") }, []string{"b", "a", "c"}},
		{"lower", func(d *Document) bool { return d.Lower("c") }, []string{"a", "c", "b"}},
		{"front", func(d *Document) bool { return d.BringToFront("a") }, []string{"b", "c", "a"}},
		{"back", func(d *Document) bool { return d.SendToBack("c") }, []string{"c", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDoc("a", "b", "c")
			require.True(t, tt.op(&doc))

			var got []string
			for i, e := range doc.Elements {
				got = append(got, e.ID)
				assert.Equal(t, i, e.Style.ZIndex)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocument_ReorderAtBoundsIsNoop(t *testing.T) {
	doc := testDoc("a", "b")
	assert.False(t, doc.Raise("b"))
	assert.False(t, doc.BringToFront("b"))
	assert.False(t, doc.Lower("a"))
	assert.False(t, doc.SendToBack("a"))
	assert.False(t, doc.Raise("missing"))
}

func TestDocument_CloneIsDeep(t *testing.T) {
	doc := testDoc("a")
	doc.Elements[0].Data["text"] = "before"
	doc.Selection = selection.Set{"a"}

	snap := doc.Clone()
	doc.Elements[0].Data["text"] = "after"
	doc.Elements[0].Style.Left = 99
	doc.Selection[0] = "zzz"

	assert.Equal(t, "before", snap.Elements[0].Data["text"])
	assert.Equal(t, float64(20), snap.Elements[0].Style.Left)
	assert.Equal(t, []string{"a"}, snap.Selection.IDs())
}

func TestDocument_UpdateStyle(t *testing.T) {
	doc := testDoc("a")

	assert.True(t, doc.UpdateStyle("a", StylePatch{Left: Float(45)}))
	assert.Equal(t, float64(45), doc.Elements[0].Style.Left)

	assert.False(t, doc.UpdateStyle("a", StylePatch{Left: Float(45)}), "unchanged patch")
	assert.False(t, doc.UpdateStyle("missing", StylePatch{Left: Float(1)}))
}

func TestMergeCanvas(t *testing.T) {
	c := DefaultCanvas()
	got := MergeCanvas(c, CanvasPatch{Background: String("#000000"), Width: Float(400)})
	assert.Equal(t, "#000000", got.Background)
	assert.Equal(t, float64(400), got.Width)
	assert.Equal(t, c.Height, got.Height)

	got = MergeCanvas(c, CanvasPatch{Width: Float(-5)})
	assert.Equal(t, c.Width, got.Width)
}

func TestParseRotation(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"rotate(30deg)", 30},
		{"translate(4px, 2px) rotate(-12.5deg)", -12.5},
		{"rotate(0.5turn)", 180},
		{"rotate(45)", 45},
		{"", 0},
		{"rotate(abc)", 0},
		{"scale(2)", 0},
		{"rotate(", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseRotation(tt.in), 1e-9)
		})
	}
}

func TestStyle_TransformRoundTrip(t *testing.T) {
	s := Style{Rotation: 42.5}
	assert.Equal(t, "rotate(42.5deg)", s.Transform())
	assert.Equal(t, 42.5, ParseRotation(s.Transform()))
	assert.Equal(t, "", Style{}.Transform())
}

func TestNormalizeDegrees(t *testing.T) {
	assert.Equal(t, float64(0), NormalizeDegrees(360))
	assert.Equal(t, float64(330), NormalizeDegrees(-30))
	assert.Equal(t, float64(45), NormalizeDegrees(405))
}

func TestLoadTemplate(t *testing.T) {
	src := `
canvas:
  width: 300
  height: 150
  background: "#101010"
elements:
  - id: title
    kind: text
    style: {left: 10, top: 10, width: 100, height: 20, transform: "rotate(15deg)"}
    data: {text: Revenue}
  - kind: progress
    style: {left: 10, top: 100, width: 200, height: 10, rotation: 5}
`
	doc, err := LoadTemplate(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, float64(300), doc.Canvas.Width)
	require.Len(t, doc.Elements, 2)
	assert.Equal(t, "title", doc.Elements[0].ID)
	assert.Equal(t, float64(15), doc.Elements[0].Style.Rotation)
	assert.Equal(t, "Revenue", doc.Elements[0].Text())
	assert.NotEmpty(t, doc.Elements[1].ID)
	assert.Equal(t, float64(5), doc.Elements[1].Style.Rotation)
	assert.Equal(t, 1, doc.Elements[1].Style.ZIndex)
	assert.Equal(t, float64(1), doc.Elements[1].Style.Opacity)
}

func TestLoadTemplate_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"empty", "", "empty template"},
		{"unknown kind", "elements:\n  - kind: blob\n", "unknown kind"},
		{"duplicate id", "elements:\n  - {id: a, kind: box}\n  - {id: a, kind: text}\n", "duplicate id"},
		{"bad canvas", "canvas: {width: 0, height: 10}\n", "canvas size"},
		{"not yaml", "elements: [", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTemplate(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestElementsClipboardPayload(t *testing.T) {
	e := NewElement(KindText)
	e.Style.Rotation = 30
	data, err := MarshalElements([]Element{e})
	require.NoError(t, err)

	got, err := UnmarshalElements(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)
	assert.Equal(t, e.Style, got[0].Style)

	_, err = UnmarshalElements([]byte("elements:\n  - kind: nope\n"))
	assert.Error(t, err)
}

func TestDefaultDocument(t *testing.T) {
	doc := DefaultDocument()
	require.NotEmpty(t, doc.Elements)
	seen := map[string]bool{}
	for i, e := range doc.Elements {
		assert.False(t, seen[e.ID])
		seen[e.ID] = true
		assert.Equal(t, i, e.Style.ZIndex)
	}
}
