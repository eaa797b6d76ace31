package gotemplate_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-formwizard/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formwizard/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templatesFS)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "  Ada "}, w)
	})
	if want := "Olá, Ada!"; result != want || written != want {
		t.Fatalf("render mismatch: result=%q written=%q want=%q", result, written, want)
	}
}

func TestEngine_GoTemplateOptionsDoNotChangeRendering(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGoTemplateOptions())

	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if want := "Olá, Ada!"; got != want {
		t.Fatalf("render mismatch: got=%q want=%q", got, want)
	}
}

func TestEngine_RenderEscapesData(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.Render("{{ value }}", map[string]any{"value": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "&lt;b&gt;x&lt;/b&gt;" {
		t.Fatalf("expected escaped output, got %q", got)
	}
}

func TestEngine_SectionFilterKeepsAllowedMarkup(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("section", map[string]any{
		"body": `<p><strong>Rede:</strong> VLAN</p><script>x()</script>`,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<p><strong>Rede:</strong> VLAN</p>" {
		t.Fatalf("unexpected section output %q", got)
	}
}

func TestEngine_DateFilter(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderString("{{ when|ptdate }}", map[string]any{
		"when": time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "09/03/2024" {
		t.Fatalf("unexpected date %q", got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	got, err := engine.RenderTemplate("use-global.tpl", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "staging" {
		t.Fatalf("unexpected global output %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t, gotemplate.WithFilter("grito", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	}))

	got, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("unexpected filter output %q", got)
	}
	if err := engine.RegisterFilter("grito", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}
