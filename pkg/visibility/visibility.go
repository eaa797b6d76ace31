package visibility

import "github.com/goliatone/go-formwizard/pkg/schema"

// Context is the input of a compiled rule. Values holds the nested answer
// snapshot (step -> field -> value).
type Context struct {
	Values map[string]any
}

// ContextFor builds an evaluation context from a fresh snapshot of answers.
func ContextFor(answers schema.Answers) Context {
	if answers == nil {
		return Context{Values: map[string]any{}}
	}
	return Context{Values: answers.Snapshot()}
}

// Visible evaluates the field condition against the current answers. Fields
// without a condition are always visible. Nothing is cached: every call sees
// the latest answers.
func Visible(field schema.Field, answers schema.Answers) bool {
	if field.Condition == nil {
		return true
	}
	return field.Condition(answers)
}

// VisibleFields returns the fields of step whose condition currently holds,
// preserving schema order.
func VisibleFields(step schema.Step, answers schema.Answers) []schema.Field {
	out := make([]schema.Field, 0, len(step.Fields))
	for _, field := range step.Fields {
		if Visible(field, answers) {
			out = append(out, field)
		}
	}
	return out
}

// Hidden lists the ids of fields in step whose condition currently fails.
// Their answers stay in the store and are still exported.
func Hidden(step schema.Step, answers schema.Answers) []string {
	var out []string
	for _, field := range step.Fields {
		if !Visible(field, answers) {
			out = append(out, field.ID)
		}
	}
	return out
}
