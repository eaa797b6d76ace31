package uischema_test

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/answers"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/uischema"
)

const yamlForm = `
id: demo
title: Demo
formats: [CSV, " markdown "]
steps:
  - id: intro
    title: Intro
    fields:
      - id: site
        label: Site
        type: select
        optionsFrom: sites
      - id: rooms
        label: Rooms
        type: checkbox
        options:
          - labs
          - { key: other, text: Other rooms, customTrigger: true }
        unknown: { key: naoSei }
  - id: details
    title: Details
    fields:
      - id: provider
        label: Provider
        type: text
        condition: 'intro.rooms has "labs"'
`

const jsonForm = `{
  "id": "json-demo",
  "steps": [
    {"id": "s1", "title": "One", "fields": [
      {"id": "kind", "label": "Kind", "type": "radio", "options": ["a", {"key": "b", "text": "Bee"}]}
    ]}
  ]
}`

func sites(name string) ([]string, bool) {
	if name != "sites" {
		return nil, false
	}
	return []string{"North", "South"}, true
}

func TestLoadFSParsesYAMLAndJSON(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"forms/demo.yaml":      {Data: []byte(yamlForm)},
		"forms/json-demo.json": {Data: []byte(jsonForm)},
		"forms/README.md":      {Data: []byte("ignored")},
	}

	store, err := uischema.LoadFS(fsys, uischema.WithLookup(sites))
	if err != nil {
		t.Fatalf("LoadFS returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"demo", "json-demo"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	demo, _ := store.Form("demo")
	rooms, ok := demo.Field("intro", "rooms")
	if !ok {
		t.Fatalf("rooms field missing")
	}
	wantOptions := []schema.Option{
		{Key: "labs", Text: "labs"},
		{Key: "other", Text: "Other rooms", CustomTrigger: true},
	}
	if diff := cmp.Diff(wantOptions, rooms.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if rooms.Unknown == nil || rooms.Unknown.Text != "naoSei" {
		t.Fatalf("unknown text should default to key: %#v", rooms.Unknown)
	}

	if diff := cmp.Diff([]string{"csv", "markdown"}, demo.Formats); diff != "" {
		t.Fatalf("formats mismatch (-want +got):\n%s", diff)
	}
	if !demo.AllowsFormat("csv") || demo.AllowsFormat("ripd") {
		t.Fatalf("format gate mismatch for %v", demo.Formats)
	}

	site, _ := demo.Field("intro", "site")
	if len(site.Options) != 2 || site.Options[1].Key != "South" {
		t.Fatalf("lookup options not resolved: %#v", site.Options)
	}

	jsonDemo, _ := store.Form("json-demo")
	if len(jsonDemo.Formats) != 0 || !jsonDemo.AllowsFormat("ripd") {
		t.Fatalf("forms without formats accept every exporter: %v", jsonDemo.Formats)
	}
	kind, _ := jsonDemo.Field("s1", "kind")
	if kind.OptionText("b") != "Bee" || kind.OptionText("a") != "a" {
		t.Fatalf("json options not parsed: %#v", kind.Options)
	}
}

func TestConditionsAreCompiled(t *testing.T) {
	t.Parallel()

	form, err := uischema.Parse([]byte(yamlForm), "demo.yaml", uischema.WithLookup(sites))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	provider, _ := form.Field("details", "provider")
	if provider.Rule != `intro.rooms has "labs"` {
		t.Fatalf("rule not preserved: %q", provider.Rule)
	}

	store := answers.New()
	if provider.Condition(store) {
		t.Fatalf("expected provider hidden before rooms answered")
	}
	store.Update("intro", "rooms", "labs", schema.KindCheckbox, "")
	if !provider.Condition(store) {
		t.Fatalf("expected provider visible once labs selected")
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		opts []uischema.Option
		want string
	}{
		{name: "empty", data: "  ", want: "is empty"},
		{name: "garbage", data: "steps: [", want: "invalid JSON or YAML"},
		{name: "missing lookup", data: yamlForm, want: "requires a lookup"},
		{
			name: "unknown table",
			data: strings.Replace(yamlForm, "optionsFrom: sites", "optionsFrom: planets", 1),
			opts: []uischema.Option{uischema.WithLookup(sites)},
			want: `unknown optionsFrom table "planets"`,
		},
		{
			name: "bad rule",
			data: strings.Replace(yamlForm, `intro.rooms has "labs"`, `intro.rooms ==`, 1),
			opts: []uischema.Option{uischema.WithLookup(sites)},
			want: "condition",
		},
		{
			name: "invalid kind",
			data: strings.Replace(yamlForm, "type: text", "type: slider", 1),
			opts: []uischema.Option{uischema.WithLookup(sites)},
			want: "invalid field kind",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := uischema.Parse([]byte(tc.data), "form.yaml", tc.opts...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want substring %q", err, tc.want)
			}
		})
	}
}

func TestLoadFSRejectsDuplicateForms(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.json": {Data: []byte(jsonForm)},
		"b.json": {Data: []byte(jsonForm)},
	}
	_, err := uischema.LoadFS(fsys)
	if err == nil || !strings.Contains(err.Error(), "duplicate form") {
		t.Fatalf("expected duplicate form error, got %v", err)
	}
}

func TestCustomConditionCompiler(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("no rules allowed")
	_, err := uischema.Parse([]byte(yamlForm), "demo.yaml",
		uischema.WithLookup(sites),
		uischema.WithConditionCompiler(func(string) (schema.Condition, error) { return nil, sentinel }),
	)
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected compiler error to propagate, got %v", err)
	}
}

func TestNilFSIsEmpty(t *testing.T) {
	t.Parallel()

	store, err := uischema.LoadFS(nil)
	if err != nil || !store.Empty() {
		t.Fatalf("expected empty store, got %v / %v", store, err)
	}
	files, err := fs.Glob(uischema.EmbeddedFS(), "*.yaml")
	if err != nil || len(files) == 0 {
		t.Fatalf("expected embedded schemas, got %v / %v", files, err)
	}
}
