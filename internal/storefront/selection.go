package storefront

import (
	"errors"
	"slices"
)

// MaxCompare is the most products shown side by side
const MaxCompare = 3

// ErrSelectionFull is returned when adding to a full selection
var ErrSelectionFull = errors.New("selection is full")

// Selection is an insertion-ordered set of product IDs with a size cap
type Selection struct {
	ids []string
	max int
}

func NewSelection(max int) *Selection {
	return &Selection{max: max}
}

// Toggle adds id when checked and removes it otherwise. Adding to a full
// selection fails and leaves the set unchanged.
func (s *Selection) Toggle(id string, checked bool) error {
	if !checked {
		s.ids = slices.DeleteFunc(s.ids, func(v string) bool { return v == id })
		return nil
	}
	if s.Has(id) {
		return nil
	}
	if len(s.ids) >= s.max {
		return ErrSelectionFull
	}
	s.ids = append(s.ids, id)
	return nil
}

func (s *Selection) Has(id string) bool {
	return slices.Contains(s.ids, id)
}

func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns a copy in insertion order
func (s *Selection) IDs() []string {
	return slices.Clone(s.ids)
}

func (s *Selection) Clear() {
	s.ids = nil
}
