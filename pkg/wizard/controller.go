package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/answers"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Option customises a Controller.
type Option func(*Controller)

// WithLogger attaches a logger for mutation tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns the step cursor and both answer stores of one session.
// Every mutation goes through its methods; collaborators get read-only
// views. It is not safe for concurrent use.
type Controller struct {
	schema  schema.Schema
	answers *answers.Store
	custom  *answers.Custom
	current int
	logger  *zap.Logger
}

// New validates s and returns a controller positioned on the first step.
func New(s schema.Schema, options ...Option) (*Controller, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if len(s.Steps) == 0 {
		return nil, ErrNoSteps
	}

	c := &Controller{
		schema:  s,
		answers: answers.New(),
		custom:  answers.NewCustom(),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}

	for _, step := range s.Steps {
		for _, field := range step.Fields {
			if keys := field.ExclusiveKeys(); len(keys) > 0 {
				c.answers.DeclareExclusive(step.ID, field.ID, keys...)
			}
		}
	}
	return c, nil
}

// Schema returns the schema the controller was built from.
func (c *Controller) Schema() schema.Schema { return c.schema }

// Answers exposes the answer store read-only.
func (c *Controller) Answers() schema.Answers { return c.answers }

// Value returns the raw stored value of a field.
func (c *Controller) Value(stepID, fieldID string) (answers.Value, bool) {
	return c.answers.Get(stepID, fieldID)
}

// Custom exposes the custom-entry store read-only.
func (c *Controller) Custom() answers.CustomReader { return c.custom }

// Current is the zero-based index of the active step.
func (c *Controller) Current() int { return c.current }

// CurrentStep returns the active step.
func (c *Controller) CurrentStep() schema.Step { return c.schema.Steps[c.current] }

// StepCount is the number of steps.
func (c *Controller) StepCount() int { return len(c.schema.Steps) }

// IsFirst reports whether the cursor is on the first step.
func (c *Controller) IsFirst() bool { return c.current == 0 }

// IsLast reports whether the cursor is on the last step.
func (c *Controller) IsLast() bool { return c.current == len(c.schema.Steps)-1 }

// Next advances one step, staying on the last step.
func (c *Controller) Next() int { return c.GoTo(c.current + 1) }

// Prev goes back one step, staying on the first step.
func (c *Controller) Prev() int { return c.GoTo(c.current - 1) }

// GoTo moves the cursor to idx clamped to the valid range. There is no
// validation gate: required fields may be left empty.
func (c *Controller) GoTo(idx int) int {
	last := len(c.schema.Steps) - 1
	switch {
	case idx < 0:
		idx = 0
	case idx > last:
		idx = last
	}
	if idx != c.current {
		c.logger.Debug("wizard step changed",
			zap.Int("from", c.current),
			zap.Int("to", idx),
			zap.String("step", c.schema.Steps[idx].ID),
		)
	}
	c.current = idx
	return idx
}

// Edit applies raw to a field of the active step.
func (c *Controller) Edit(fieldID, raw string) error {
	return c.EditAt(c.CurrentStep().ID, fieldID, raw)
}

// EditAt applies raw to any field. Choice fields take option keys;
// multi-choice fields toggle the key, and exclusive keys are routed through
// the exclusive rule. On multi-choice fields the custom-trigger key only
// unlocks free-text entries and is rejected with ErrUnknownOption.
func (c *Controller) EditAt(stepID, fieldID, raw string) error {
	field, err := c.field(stepID, fieldID)
	if err != nil {
		return err
	}

	update := func(value, exclusive string) error {
		c.answers.Update(stepID, fieldID, value, field.Kind, exclusive)
		c.logger.Debug("wizard answer updated",
			zap.String("step", stepID),
			zap.String("field", fieldID),
			zap.String("kind", string(field.Kind)),
			zap.Strings("value", c.answers.Selected(stepID, fieldID)),
		)
		return nil
	}
	choice := func() error {
		if _, ok := field.Option(raw); !ok {
			return fmt.Errorf("%w %q for %s.%s", ErrUnknownOption, raw, stepID, fieldID)
		}
		return update(raw, "")
	}

	handled, err := schema.Dispatch(field.Kind, schema.KindHandlers[error]{
		Select: choice,
		Radio:  choice,
		Checkbox: func() error {
			if field.IsExclusive(raw) {
				return update(raw, raw)
			}
			if opt, ok := field.Option(raw); ok && opt.CustomTrigger {
				return fmt.Errorf("%w %q for %s.%s", ErrUnknownOption, raw, stepID, fieldID)
			}
			return choice()
		},
		Text:     func() error { return update(raw, "") },
		TextArea: func() error { return update(raw, "") },
		Number: func() error {
			trimmed := strings.TrimSpace(raw)
			if trimmed != "" {
				if _, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", "."), 64); err != nil {
					return fmt.Errorf("%w: %q", ErrNotNumeric, raw)
				}
			}
			return update(trimmed, "")
		},
	})
	if err != nil {
		return err
	}
	return handled
}

// SelectExclusive applies the "don't know" / "need help" click on a
// multi-choice field.
func (c *Controller) SelectExclusive(stepID, fieldID, key string) error {
	field, err := c.field(stepID, fieldID)
	if err != nil {
		return err
	}
	if !field.IsExclusive(key) {
		return fmt.Errorf("%w: %q on %s.%s", ErrNotExclusive, key, stepID, fieldID)
	}
	return c.EditAt(stepID, fieldID, key)
}

// AddCustom records a free-text entry next to a field's options. Blank or
// duplicate text is ignored and reported as false.
func (c *Controller) AddCustom(stepID, fieldID, text string) (bool, error) {
	if _, err := c.customField(stepID, fieldID); err != nil {
		return false, err
	}
	added := c.custom.Add(stepID, fieldID, text)
	if added {
		c.logger.Debug("wizard custom entry added", zap.String("step", stepID), zap.String("field", fieldID))
	}
	return added, nil
}

// RemoveCustom deletes a free-text entry; absent entries are ignored.
func (c *Controller) RemoveCustom(stepID, fieldID, text string) (bool, error) {
	if _, err := c.customField(stepID, fieldID); err != nil {
		return false, err
	}
	removed := c.custom.Remove(stepID, fieldID, text)
	if removed {
		c.logger.Debug("wizard custom entry removed", zap.String("step", stepID), zap.String("field", fieldID))
	}
	return removed, nil
}

func (c *Controller) field(stepID, fieldID string) (schema.Field, error) {
	field, ok := c.schema.Field(stepID, fieldID)
	if !ok {
		return schema.Field{}, fmt.Errorf("%w: %s.%s", ErrUnknownField, stepID, fieldID)
	}
	return field, nil
}

func (c *Controller) customField(stepID, fieldID string) (schema.Field, error) {
	field, err := c.field(stepID, fieldID)
	if err != nil {
		return schema.Field{}, err
	}
	if !field.HasCustomTrigger() {
		return schema.Field{}, fmt.Errorf("%w: %s.%s", ErrNoCustomEntry, stepID, fieldID)
	}
	return field, nil
}
