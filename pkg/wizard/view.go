package wizard

import (
	"github.com/goliatone/go-formwizard/pkg/answers"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/visibility"
)

// OptionState is one selectable option as a renderer should draw it.
type OptionState struct {
	Key       string
	Text      string
	Selected  bool
	Disabled  bool
	Exclusive bool
}

// FieldView is a visible field with its current answer.
type FieldView struct {
	Field   schema.Field
	Value   answers.Value
	Options []OptionState
	// Custom lists the free-text entries recorded for the field.
	Custom []string
	// CustomEnabled is true when the field declares a custom-trigger option.
	// On multi-choice fields the trigger itself is not listed in Options.
	CustomEnabled bool
}

// StepView is the renderable state of the active step.
type StepView struct {
	Index   int
	Count   int
	StepID  string
	Title   string
	IsFirst bool
	IsLast  bool
	Fields  []FieldView
}

// View builds the state of the active step. Fields whose condition is false
// are left out; their answers stay in the store.
func (c *Controller) View() StepView {
	step := c.CurrentStep()
	view := StepView{
		Index:   c.current,
		Count:   len(c.schema.Steps),
		StepID:  step.ID,
		Title:   step.Title,
		IsFirst: c.IsFirst(),
		IsLast:  c.IsLast(),
	}
	for _, field := range visibility.VisibleFields(step, c.answers) {
		view.Fields = append(view.Fields, c.fieldView(step.ID, field))
	}
	return view
}

func (c *Controller) fieldView(stepID string, field schema.Field) FieldView {
	value, _ := c.answers.Get(stepID, field.ID)
	fv := FieldView{
		Field:         field,
		Value:         value,
		Custom:        c.custom.List(stepID, field.ID),
		CustomEnabled: field.HasCustomTrigger(),
	}
	if !field.Kind.IsChoice() {
		return fv
	}

	selected := func(key string) bool {
		if value.IsSet() {
			return value.Contains(key)
		}
		return value.Text() == key
	}

	locked := false
	for _, key := range field.ExclusiveKeys() {
		if selected(key) {
			locked = true
		}
	}

	for _, opt := range field.Options {
		if opt.CustomTrigger && field.Kind.IsMultiChoice() {
			continue
		}
		fv.Options = append(fv.Options, OptionState{
			Key:      opt.Key,
			Text:     opt.Text,
			Selected: selected(opt.Key),
			Disabled: locked,
		})
	}
	for _, ex := range []*schema.Exclusive{field.Unknown, field.NeedsHelp} {
		if ex == nil || ex.Key == "" {
			continue
		}
		fv.Options = append(fv.Options, OptionState{
			Key:       ex.Key,
			Text:      ex.Text,
			Selected:  selected(ex.Key),
			Exclusive: true,
		})
	}
	return fv
}

// FieldState returns the view of a single field of any step, or false when
// the field does not exist or is hidden.
func (c *Controller) FieldState(stepID, fieldID string) (FieldView, bool) {
	field, ok := c.schema.Field(stepID, fieldID)
	if !ok || !visibility.Visible(field, c.answers) {
		return FieldView{}, false
	}
	return c.fieldView(stepID, field), true
}
