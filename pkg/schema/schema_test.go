package schema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleSchema() Schema {
	return Schema{
		ID: "sample",
		Steps: []Step{
			{
				ID:    "intro",
				Title: "Intro",
				Fields: []Field{
					{ID: "campus", Label: "Campus", Kind: KindSelect, Options: []Option{{Key: "A", Text: "A"}}},
					{
						ID:    "rooms",
						Label: "Rooms",
						Kind:  KindCheckbox,
						Options: []Option{
							{Key: "labs", Text: "Labs"},
							{Key: "other", Text: "Other rooms", CustomTrigger: true},
						},
						Unknown: &Exclusive{Key: "naoSei", Text: "Don't know"},
					},
				},
			},
			{ID: "details", Title: "Details", Fields: []Field{{ID: "notes", Label: "Notes", Kind: KindTextArea}}},
		},
	}
}

func TestSchemaLookups(t *testing.T) {
	t.Parallel()

	s := sampleSchema()

	if idx := s.StepIndex("details"); idx != 1 {
		t.Fatalf("StepIndex(details) = %d, want 1", idx)
	}
	if _, ok := s.Step("missing"); ok {
		t.Fatalf("expected missing step lookup to fail")
	}

	field, ok := s.Field("intro", "rooms")
	if !ok {
		t.Fatalf("expected intro.rooms to exist")
	}
	if got := field.OptionText("labs"); got != "Labs" {
		t.Fatalf("OptionText(labs) = %q", got)
	}
	if got := field.OptionText("naoSei"); got != "Don't know" {
		t.Fatalf("OptionText(naoSei) = %q", got)
	}
	if got := field.OptionText("ghost"); got != "ghost" {
		t.Fatalf("OptionText(ghost) = %q, want key fallback", got)
	}
	if !field.HasCustomTrigger() {
		t.Fatalf("expected custom trigger")
	}
	if !field.IsExclusive("naoSei") || field.IsExclusive("labs") {
		t.Fatalf("unexpected exclusivity classification")
	}
	if !field.AcceptsKey("naoSei") || field.AcceptsKey("ghost") {
		t.Fatalf("unexpected AcceptsKey result")
	}
	if diff := cmp.Diff([]string{"naoSei"}, field.ExclusiveKeys()); diff != "" {
		t.Fatalf("exclusive keys mismatch (-want +got):\n%s", diff)
	}
	if got := s.FieldCount(); got != 3 {
		t.Fatalf("FieldCount = %d, want 3", got)
	}
}

func TestSchemaValidate(t *testing.T) {
	t.Parallel()

	if err := sampleSchema().Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Schema)
		want   error
	}{
		{
			name:   "duplicate step",
			mutate: func(s *Schema) { s.Steps[1].ID = "intro" },
			want:   ErrDuplicateID,
		},
		{
			name:   "duplicate field",
			mutate: func(s *Schema) { s.Steps[0].Fields[1].ID = "campus" },
			want:   ErrDuplicateID,
		},
		{
			name: "duplicate option key",
			mutate: func(s *Schema) {
				s.Steps[0].Fields[1].Options = append(s.Steps[0].Fields[1].Options, Option{Key: "labs", Text: "again"})
			},
			want: ErrDuplicateID,
		},
		{
			name:   "exclusive key collides with option",
			mutate: func(s *Schema) { s.Steps[0].Fields[1].Unknown.Key = "labs" },
			want:   ErrDuplicateID,
		},
		{
			name:   "invalid kind",
			mutate: func(s *Schema) { s.Steps[1].Fields[0].Kind = "slider" },
			want:   ErrInvalidKind,
		},
		{
			name: "exclusive on radio",
			mutate: func(s *Schema) {
				s.Steps[0].Fields[0].Kind = KindRadio
				s.Steps[0].Fields[0].NeedsHelp = &Exclusive{Key: "help", Text: "Help"}
			},
			want: ErrExclusiveOnSingle,
		},
		{
			name:   "duplicate format",
			mutate: func(s *Schema) { s.Formats = []string{"csv", "CSV"} },
			want:   ErrDuplicateID,
		},
		{
			name:   "blank format",
			mutate: func(s *Schema) { s.Formats = []string{" "} },
			want:   ErrEmptyID,
		},
		{
			name:   "empty field id",
			mutate: func(s *Schema) { s.Steps[1].Fields[0].ID = " " },
			want:   ErrEmptyID,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := sampleSchema()
			tc.mutate(&s)
			if err := s.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("Validate error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDispatchCoversEveryKind(t *testing.T) {
	t.Parallel()

	handlers := KindHandlers[string]{
		Select:   func() string { return "select" },
		Radio:    func() string { return "radio" },
		Checkbox: func() string { return "checkbox" },
		Text:     func() string { return "text" },
		Number:   func() string { return "number" },
		TextArea: func() string { return "textarea" },
	}
	for _, kind := range Kinds() {
		got, err := Dispatch(kind, handlers)
		if err != nil {
			t.Fatalf("Dispatch(%q) returned error: %v", kind, err)
		}
		if got != string(kind) {
			t.Fatalf("Dispatch(%q) = %q", kind, got)
		}
	}

	if _, err := Dispatch("slider", handlers); err == nil {
		t.Fatalf("expected error for unsupported kind")
	}
	if _, err := Dispatch(KindText, KindHandlers[string]{}); err == nil {
		t.Fatalf("expected error for missing handler")
	}
}

func TestKindClassification(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		if !kind.Valid() {
			t.Fatalf("kind %q should be valid", kind)
		}
	}
	if !KindCheckbox.IsMultiChoice() || KindRadio.IsMultiChoice() {
		t.Fatalf("unexpected multi-choice classification")
	}
	if !KindSelect.IsChoice() || KindNumber.IsChoice() {
		t.Fatalf("unexpected choice classification")
	}
}
