package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyID is returned when a step, field or option has a blank identifier.
	ErrEmptyID = errors.New("schema: identifier is required")
	// ErrDuplicateID is returned when identifiers collide within their scope.
	ErrDuplicateID = errors.New("schema: duplicate identifier")
	// ErrInvalidKind is returned for field kinds outside the closed set.
	ErrInvalidKind = errors.New("schema: invalid field kind")
	// ErrExclusiveOnSingle is returned when unknown/needsHelp options are
	// declared on a field that does not hold a set of answers.
	ErrExclusiveOnSingle = errors.New("schema: exclusive options require a multi-choice field")
)

// Answers is the read-only view of collected answers that conditions and
// report builders consume. Implementations must be safe to call repeatedly and
// must reflect the latest state on every call.
type Answers interface {
	Text(stepID, fieldID string) string
	Selected(stepID, fieldID string) []string
	Has(stepID, fieldID string) bool
	Snapshot() map[string]any
}

// Condition decides whether a field is shown. It receives the whole answer
// store because conditions may reference other steps.
type Condition func(Answers) bool

// Option is one enumerated answer. Bare-string options use the same value for
// Key and Text.
type Option struct {
	Key           string `json:"key"`
	Text          string `json:"text"`
	CustomTrigger bool   `json:"customTrigger,omitempty"`
}

// Exclusive describes a special multi-choice option that cannot coexist with
// any other selection ("don't know", "need help").
type Exclusive struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Field is a single question.
type Field struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	Kind        FieldKind  `json:"type"`
	Options     []Option   `json:"options,omitempty"`
	Required    bool       `json:"required,omitempty"`
	Placeholder string     `json:"placeholder,omitempty"`
	Unknown     *Exclusive `json:"unknown,omitempty"`
	NeedsHelp   *Exclusive `json:"needsHelp,omitempty"`

	// Condition hides the field while it returns false. Nil means always
	// visible.
	Condition Condition `json:"-"`
	// Rule keeps the declarative source of Condition when it was compiled
	// from a rule string.
	Rule string `json:"condition,omitempty"`
}

// Step is one page of the wizard.
type Step struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Schema is the ordered, immutable description of a wizard.
type Schema struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	// Formats lists the export formats that make sense for the answers of
	// this wizard. Empty means any registered format.
	Formats []string `json:"formats,omitempty"`
	Steps   []Step   `json:"steps"`
}

// AllowsFormat reports whether answers of this schema may be exported as
// format.
func (s Schema) AllowsFormat(format string) bool {
	if len(s.Formats) == 0 {
		return true
	}
	for _, f := range s.Formats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

// Step returns the step with the given id.
func (s Schema) Step(id string) (Step, bool) {
	idx := s.StepIndex(id)
	if idx < 0 {
		return Step{}, false
	}
	return s.Steps[idx], true
}

// StepIndex returns the position of the step or -1.
func (s Schema) StepIndex(id string) int {
	for i, step := range s.Steps {
		if step.ID == id {
			return i
		}
	}
	return -1
}

// Field finds a field by id within a step.
func (s Schema) Field(stepID, fieldID string) (Field, bool) {
	step, ok := s.Step(stepID)
	if !ok {
		return Field{}, false
	}
	return step.Field(fieldID)
}

// FieldCount is the number of (step, field) pairs in the schema.
func (s Schema) FieldCount() int {
	total := 0
	for _, step := range s.Steps {
		total += len(step.Fields)
	}
	return total
}

// Field finds a field by id within the step.
func (s Step) Field(id string) (Field, bool) {
	for _, field := range s.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return Field{}, false
}

// Option returns the enumerated option with the given key. Exclusive options
// are not part of Options and are not returned here.
func (f Field) Option(key string) (Option, bool) {
	for _, opt := range f.Options {
		if opt.Key == key {
			return opt, true
		}
	}
	return Option{}, false
}

// OptionText resolves a key to its display text, covering exclusive options.
// Unknown keys resolve to themselves.
func (f Field) OptionText(key string) string {
	if opt, ok := f.Option(key); ok {
		return opt.Text
	}
	if f.Unknown != nil && f.Unknown.Key == key {
		return f.Unknown.Text
	}
	if f.NeedsHelp != nil && f.NeedsHelp.Key == key {
		return f.NeedsHelp.Text
	}
	return key
}

// HasCustomTrigger reports whether any option unlocks free-text entries.
func (f Field) HasCustomTrigger() bool {
	for _, opt := range f.Options {
		if opt.CustomTrigger {
			return true
		}
	}
	return false
}

// ExclusiveKeys lists the unknown and needsHelp keys declared on the field.
func (f Field) ExclusiveKeys() []string {
	var keys []string
	if f.Unknown != nil && f.Unknown.Key != "" {
		keys = append(keys, f.Unknown.Key)
	}
	if f.NeedsHelp != nil && f.NeedsHelp.Key != "" {
		keys = append(keys, f.NeedsHelp.Key)
	}
	return keys
}

// IsExclusive reports whether key is one of the field's exclusive keys.
func (f Field) IsExclusive(key string) bool {
	for _, k := range f.ExclusiveKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// AcceptsKey reports whether key is a valid choice for the field.
func (f Field) AcceptsKey(key string) bool {
	if _, ok := f.Option(key); ok {
		return true
	}
	return f.IsExclusive(key)
}

// Validate checks the identity invariants: ids present and unique in their
// scope, kinds drawn from the closed set, option keys unique per field.
func (s Schema) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: schema id", ErrEmptyID)
	}
	seenFormats := make(map[string]struct{}, len(s.Formats))
	for i, format := range s.Formats {
		name := strings.ToLower(strings.TrimSpace(format))
		if name == "" {
			return fmt.Errorf("%w: format at index %d", ErrEmptyID, i)
		}
		if _, dup := seenFormats[name]; dup {
			return fmt.Errorf("%w: format %q", ErrDuplicateID, format)
		}
		seenFormats[name] = struct{}{}
	}
	seenSteps := make(map[string]struct{}, len(s.Steps))
	for i, step := range s.Steps {
		if strings.TrimSpace(step.ID) == "" {
			return fmt.Errorf("%w: step at index %d", ErrEmptyID, i)
		}
		if _, dup := seenSteps[step.ID]; dup {
			return fmt.Errorf("%w: step %q", ErrDuplicateID, step.ID)
		}
		seenSteps[step.ID] = struct{}{}

		seenFields := make(map[string]struct{}, len(step.Fields))
		for j, field := range step.Fields {
			if strings.TrimSpace(field.ID) == "" {
				return fmt.Errorf("%w: field at index %d of step %q", ErrEmptyID, j, step.ID)
			}
			if _, dup := seenFields[field.ID]; dup {
				return fmt.Errorf("%w: field %q in step %q", ErrDuplicateID, field.ID, step.ID)
			}
			seenFields[field.ID] = struct{}{}
			if err := field.validate(); err != nil {
				return fmt.Errorf("step %q field %q: %w", step.ID, field.ID, err)
			}
		}
	}
	return nil
}

func (f Field) validate() error {
	if !f.Kind.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidKind, f.Kind)
	}
	if len(f.ExclusiveKeys()) > 0 && !f.Kind.IsMultiChoice() {
		return ErrExclusiveOnSingle
	}
	keys := make(map[string]struct{}, len(f.Options)+2)
	for i, opt := range f.Options {
		if strings.TrimSpace(opt.Key) == "" {
			return fmt.Errorf("%w: option at index %d", ErrEmptyID, i)
		}
		if _, dup := keys[opt.Key]; dup {
			return fmt.Errorf("%w: option %q", ErrDuplicateID, opt.Key)
		}
		keys[opt.Key] = struct{}{}
	}
	for _, key := range f.ExclusiveKeys() {
		if _, dup := keys[key]; dup {
			return fmt.Errorf("%w: option %q", ErrDuplicateID, key)
		}
		keys[key] = struct{}{}
	}
	return nil
}
