package formdef

import (
	"github.com/goliatone/go-formsync/pkg/field"
)

// Form is a named set of controls.
type Form struct {
	ID          string
	Title       string
	Description string
	Action      string
	Method      string
	Source      string
	Fields      []field.Field
}

// Store holds forms keyed by id.
type Store struct {
	forms map[string]Form
	order []string
}

// NewStore builds a store from forms. Later forms win on duplicate ids.
func NewStore(forms ...Form) *Store {
	store := &Store{forms: make(map[string]Form, len(forms))}
	for _, form := range forms {
		store.add(form)
	}
	return store
}

func (s *Store) add(form Form) {
	if _, exists := s.forms[form.ID]; !exists {
		s.order = append(s.order, form.ID)
	}
	form.Fields = field.Clone(form.Fields)
	s.forms[form.ID] = form
}

// Form returns the form registered under id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[id]
	if !ok {
		return Form{}, false
	}
	form.Fields = field.Clone(form.Fields)
	return form, true
}

// IDs lists form ids in load order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}
