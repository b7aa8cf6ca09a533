// Package selection tracks which card elements are selected.
package selection

// Set is the ordered list of selected element ids. Insertion order is
// priority order: the last id is the primary selection, used for
// single-target property editing.
//
// Set is a value type. Every operation returns a new Set and leaves the
// receiver untouched, so a Set embedded in a history snapshot can never be
// changed behind the snapshot's back.
type Set []string

// Replace returns an exclusive selection of ids, dropping duplicates.
func (s Set) Replace(ids ...string) Set {
	out := make(Set, 0, len(ids))
	for _, id := range ids {
		if id == "" || out.Contains(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Toggle adds id when it is not selected and removes it when it is.
func (s Set) Toggle(id string) Set {
	if id == "" {
		return s.clone()
	}
	if s.Contains(id) {
		return s.Without(id)
	}
	out := s.clone()
	return append(out, id)
}

// Clear returns an empty selection.
func (s Set) Clear() Set {
	return Set{}
}

// Without returns the selection minus id.
func (s Set) Without(id string) Set {
	out := make(Set, 0, len(s))
	for _, existing := range s {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

// Prune drops every id for which exists returns false. Callers prune after
// deleting elements; the set itself never checks the document.
func (s Set) Prune(exists func(id string) bool) Set {
	out := make(Set, 0, len(s))
	for _, id := range s {
		if exists(id) {
			out = append(out, id)
		}
	}
	return out
}

// Primary returns the most recently added id.
func (s Set) Primary() (string, bool) {
	if len(s) == 0 {
		return "", false
	}
	return s[len(s)-1], true
}

func (s Set) Contains(id string) bool {
	for _, existing := range s {
		if existing == id {
			return true
		}
	}
	return false
}

// IDs returns a copy of the ids in selection order.
func (s Set) IDs() []string {
	return []string(s.clone())
}

func (s Set) Len() int { return len(s) }

func (s Set) Empty() bool { return len(s) == 0 }

func (s Set) clone() Set {
	out := make(Set, len(s))
	copy(out, s)
	return out
}
