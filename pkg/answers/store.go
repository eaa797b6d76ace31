package answers

import (
	"sort"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Key addresses one field of one step.
type Key struct {
	Step  string
	Field string
}

// Store holds every answer of a session in a flat map keyed by (step, field).
// Nested access is offered through Step and Snapshot. A Store is not safe for
// concurrent mutation; the wizard controller owns it.
type Store struct {
	values    map[Key]Value
	exclusive map[Key][]string
}

var _ schema.Answers = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		values:    make(map[Key]Value),
		exclusive: make(map[Key][]string),
	}
}

// DeclareExclusive registers the exclusive keys of a multi-choice field so
// that normal selections strip them.
func (s *Store) DeclareExclusive(stepID, fieldID string, keys ...string) {
	k := Key{Step: stepID, Field: fieldID}
	for _, key := range keys {
		if key != "" && !containsKey(s.exclusive[k], key) {
			s.exclusive[k] = append(s.exclusive[k], key)
		}
	}
}

// Update applies one user edit.
//
// Single-valued kinds are replaced wholesale. Multi-choice kinds toggle raw
// after removing any exclusive key already selected. When exclusiveKey is set
// (or raw names a declared exclusive key) the exclusive key is toggled off if
// present, otherwise the set becomes exactly {exclusiveKey}.
func (s *Store) Update(stepID, fieldID, raw string, kind schema.FieldKind, exclusiveKey string) {
	k := Key{Step: stepID, Field: fieldID}
	if !kind.IsMultiChoice() {
		s.values[k] = Single(raw)
		return
	}

	if exclusiveKey == "" && containsKey(s.exclusive[k], raw) {
		exclusiveKey = raw
	}

	current := s.values[k].Keys()
	if exclusiveKey != "" {
		s.DeclareExclusive(stepID, fieldID, exclusiveKey)
		if containsKey(current, exclusiveKey) {
			s.values[k] = Set(without(current, []string{exclusiveKey})...)
			return
		}
		s.values[k] = Set(exclusiveKey)
		return
	}

	next := without(current, s.exclusive[k])
	if containsKey(next, raw) {
		next = without(next, []string{raw})
	} else {
		next = append(next, raw)
	}
	s.values[k] = Set(next...)
}

// Get returns the stored value.
func (s *Store) Get(stepID, fieldID string) (Value, bool) {
	v, ok := s.values[Key{Step: stepID, Field: fieldID}]
	return v, ok
}

// Text returns the scalar answer or "".
func (s *Store) Text(stepID, fieldID string) string {
	v, _ := s.Get(stepID, fieldID)
	return v.Text()
}

// Selected returns the answer as a list of tokens.
func (s *Store) Selected(stepID, fieldID string) []string {
	v, _ := s.Get(stepID, fieldID)
	return v.Strings()
}

// Has reports whether a non-empty answer exists.
func (s *Store) Has(stepID, fieldID string) bool {
	v, ok := s.Get(stepID, fieldID)
	return ok && !v.Empty()
}

// Step returns the answers of one step keyed by field id.
func (s *Store) Step(stepID string) map[string]Value {
	out := make(map[string]Value)
	for k, v := range s.values {
		if k.Step == stepID {
			out[k.Field] = v
		}
	}
	return out
}

// Snapshot returns a nested copy (step -> field -> string | []any) suited
// to rule evaluation. Mutating the result does not affect the store.
func (s *Store) Snapshot() map[string]any {
	out := make(map[string]any)
	for k, v := range s.values {
		step, ok := out[k.Step].(map[string]any)
		if !ok {
			step = make(map[string]any)
			out[k.Step] = step
		}
		step[k.Field] = v.snapshot()
	}
	return out
}

// Keys lists every stored key sorted by step then field.
func (s *Store) Keys() []Key {
	keys := make([]Key, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Step != keys[j].Step {
			return keys[i].Step < keys[j].Step
		}
		return keys[i].Field < keys[j].Field
	})
	return keys
}

// Len is the number of stored answers, including emptied ones.
func (s *Store) Len() int {
	return len(s.values)
}
