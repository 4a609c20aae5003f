package uischema

import "sort"

// Store keeps the parsed overlays keyed by form ID. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	forms map[string]FormOverlay
}

// FormOverlay describes the overrides for one form.
type FormOverlay struct {
	ID          string                  `json:"-"`
	Source      string                  `json:"-"`
	Title       string                  `json:"title,omitempty"`
	Description string                  `json:"description,omitempty"`
	ActionLabel string                  `json:"actionLabel,omitempty"`
	Groups      map[string]string       `json:"groups,omitempty"`
	Fields      map[string]FieldOverlay `json:"fields,omitempty"`
}

// FieldOverlay customises a single field. Extensions only apply to file
// fields and replace the allow-list entirely.
type FieldOverlay struct {
	Label       string   `json:"label,omitempty"`
	Description string   `json:"description,omitempty"`
	Group       *string  `json:"group,omitempty"`
	Extensions  []string `json:"extensions,omitempty"`
}

type documentFile struct {
	Forms map[string]FormOverlay `json:"forms"`
}

// Form returns the overlay for the supplied form ID.
func (s *Store) Form(id string) (FormOverlay, bool) {
	if s == nil {
		return FormOverlay{}, false
	}
	overlay, ok := s.forms[id]
	return overlay, ok
}

// IDs lists the form IDs with an overlay, sorted.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any overlays.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}
