package visibility_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/answers"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/visibility"
	"github.com/goliatone/go-formwizard/pkg/visibility/expr"
)

func outsourcedOnly(t *testing.T) schema.Condition {
	t.Helper()
	cond, err := expr.Compile(`systemDetails.installationType == "terceirizado"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return cond
}

func TestVisibleFieldsTracksCrossStepAnswers(t *testing.T) {
	t.Parallel()

	// The condition lives on a later step and reads an earlier one.
	step := schema.Step{
		ID: "provider",
		Fields: []schema.Field{
			{ID: "notes", Kind: schema.KindText},
			{ID: "providerName", Kind: schema.KindText, Condition: outsourcedOnly(t)},
		},
	}
	store := answers.New()

	ids := func() []string {
		var out []string
		for _, f := range visibility.VisibleFields(step, store) {
			out = append(out, f.ID)
		}
		return out
	}

	if diff := cmp.Diff([]string{"notes"}, ids()); diff != "" {
		t.Fatalf("initial visibility mismatch (-want +got):\n%s", diff)
	}

	store.Update("systemDetails", "installationType", "terceirizado", schema.KindRadio, "")
	if diff := cmp.Diff([]string{"notes", "providerName"}, ids()); diff != "" {
		t.Fatalf("visibility after answer mismatch (-want +got):\n%s", diff)
	}

	store.Update("systemDetails", "installationType", "local", schema.KindRadio, "")
	if diff := cmp.Diff([]string{"notes"}, ids()); diff != "" {
		t.Fatalf("visibility after change mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"providerName"}, visibility.Hidden(step, store)); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}
}

func TestVisibleWithoutCondition(t *testing.T) {
	t.Parallel()

	if !visibility.Visible(schema.Field{ID: "x"}, nil) {
		t.Fatalf("expected field without condition to be visible")
	}
	ctx := visibility.ContextFor(nil)
	if ctx.Values == nil {
		t.Fatalf("expected non-nil values map")
	}
}
