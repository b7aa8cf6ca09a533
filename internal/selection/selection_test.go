package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_MultiSelectScenario(t *testing.T) {
	var s Set
	s = s.Replace("A")
	s = s.Toggle("B")
	assert.Equal(t, []string{"A", "B"}, s.IDs())

	s = s.Toggle("A")
	assert.Equal(t, []string{"B"}, s.IDs())

	primary, ok := s.Primary()
	assert.True(t, ok)
	assert.Equal(t, "B", primary)
}

func TestSet_Replace(t *testing.T) {
	tests := []struct {
		name string
		in   Set
		ids  []string
		want []string
	}{
		{"exclusive", Set{"a", "b"}, []string{"c"}, []string{"c"}},
		{"drops duplicates", nil, []string{"a", "a", "b"}, []string{"a", "b"}},
		{"drops empty ids", nil, []string{"", "a"}, []string{"a"}},
		{"empty replace clears", Set{"a"}, nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Replace(tt.ids...).IDs())
		})
	}
}

func TestSet_OperationsDoNotAlias(t *testing.T) {
	orig := Set{"a", "b"}
	_ = orig.Toggle("c")
	_ = orig.Toggle("a")
	_ = orig.Clear()
	assert.Equal(t, Set{"a", "b"}, orig)

	ids := orig.IDs()
	ids[0] = "z"
	assert.Equal(t, "a", orig[0])
}

func TestSet_PrimaryIsLastAdded(t *testing.T) {
	s := Set{}.Replace("a").Toggle("b").Toggle("c")
	primary, ok := s.Primary()
	assert.True(t, ok)
	assert.Equal(t, "c", primary)

	_, ok = Set{}.Primary()
	assert.False(t, ok)
}

func TestSet_Prune(t *testing.T) {
	live := map[string]bool{"a": true, "c": true}
	s := Set{"a", "b", "c"}.Prune(func(id string) bool { return live[id] })
	assert.Equal(t, []string{"a", "c"}, s.IDs())
	assert.False(t, s.Contains("b"))
}
