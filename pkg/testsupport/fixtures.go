package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/uischema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// LoadSchema parses a schema fixture, resolving optionsFrom tables through the
// catalog. Testing helpers fail the test on error to keep callers concise.
func LoadSchema(t *testing.T, path string) schema.Schema {
	t.Helper()

	form, err := LoadSchemaFromPath(path)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return form
}

// LoadSchemaFromPath returns a schema without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadSchemaFromPath(path string) (schema.Schema, error) {
	if path == "" {
		return schema.Schema{}, errors.New("testsupport: schema path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("testsupport: read schema: %w", err)
	}
	form, err := uischema.Parse(data, path, uischema.WithLookup(catalog.Lookup))
	if err != nil {
		return schema.Schema{}, fmt.Errorf("testsupport: parse schema: %w", err)
	}
	return form, nil
}

// Edit is one scripted answer applied by Apply.
type Edit struct {
	Step   string
	Field  string
	Value  string
	Custom []string
}

// NewController builds a controller for one of the embedded forms.
func NewController(t *testing.T, formID string) *wizard.Controller {
	t.Helper()

	form, err := catalog.Load(formID)
	if err != nil {
		t.Fatalf("load form %q: %v", formID, err)
	}
	ctrl, err := wizard.New(form)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl
}

// Apply replays edits against the controller. Edits with an empty Value only
// add their custom entries.
func Apply(t *testing.T, ctrl *wizard.Controller, edits ...Edit) {
	t.Helper()

	for _, e := range edits {
		if e.Value != "" {
			if err := ctrl.EditAt(e.Step, e.Field, e.Value); err != nil {
				t.Fatalf("edit %s.%s=%q: %v", e.Step, e.Field, e.Value, err)
			}
		}
		for _, entry := range e.Custom {
			if _, err := ctrl.AddCustom(e.Step, e.Field, entry); err != nil {
				t.Fatalf("custom %s.%s=%q: %v", e.Step, e.Field, entry, err)
			}
		}
	}
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
