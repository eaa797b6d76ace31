package export

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formwizard/pkg/render/template"
	"github.com/goliatone/go-formwizard/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formwizard/pkg/report"
)

// ReportTemplate is the template path rendered by the document exporter.
const ReportTemplate = "templates/report.tmpl"

// DocxOption configures the document exporter.
type DocxOption func(*docxConfig)

type docxConfig struct {
	templateFS fs.FS
	renderer   template.TemplateRenderer
	converter  Converter
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) DocxOption {
	return func(cfg *docxConfig) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) DocxOption {
	return func(cfg *docxConfig) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer template.TemplateRenderer) DocxOption {
	return func(cfg *docxConfig) {
		if renderer != nil {
			cfg.renderer = renderer
		}
	}
}

// WithConverter replaces the HTML-to-document converter. Passing nil leaves
// the exporter without a backend; Export then fails with
// ErrBackendUnavailable.
func WithConverter(converter Converter) DocxOption {
	return func(cfg *docxConfig) {
		cfg.converter = converter
	}
}

// Docx renders the report sections to HTML and converts them to a .docx.
type Docx struct {
	templates template.TemplateRenderer
	converter Converter
}

// NewDocx constructs the document exporter. The default converter is
// AltChunkConverter.
func NewDocx(options ...DocxOption) (*Docx, error) {
	cfg := docxConfig{templateFS: TemplatesFS(), converter: AltChunkConverter{}}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	renderer := cfg.renderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("export: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Docx{templates: renderer, converter: cfg.converter}, nil
}

func (*Docx) Name() string      { return "docx" }
func (*Docx) Extension() string { return ".docx" }

// HTML renders the report document without converting it.
func (d *Docx) HTML(in Input) (string, error) {
	in = in.normalised()
	sections := report.Compose(in.Schema, in.Answers, in.Custom)

	ordered := sections.Ordered()
	items := make([]map[string]any, 0, len(ordered))
	for _, sec := range ordered {
		items = append(items, map[string]any{
			"name":    sec.Name,
			"heading": sec.Heading,
			"body":    sec.Body,
			"block":   sec.Block,
		})
	}

	html, err := d.templates.RenderTemplate(ReportTemplate, map[string]any{
		"title":        "Relatório de Segurança Biométrica - " + campusName(in.Answers),
		"campus":       campusName(in.Answers),
		"generated_at": in.generatedAt(),
		"sections":     items,
		"help_topics":  sections.HelpTopics,
	})
	if err != nil {
		return "", fmt.Errorf("export: render report template: %w", err)
	}
	return html, nil
}

// Export renders and converts the report.
func (d *Docx) Export(ctx context.Context, in Input) (Artifact, error) {
	if d.converter == nil {
		return Artifact{}, fmt.Errorf("%w: no document converter", ErrBackendUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}

	html, err := d.HTML(in)
	if err != nil {
		return Artifact{}, err
	}
	data, err := d.converter.Convert(ctx, []byte(html))
	if err != nil {
		return Artifact{}, fmt.Errorf("export: convert document: %w", err)
	}
	return Artifact{
		Filename:    safeFilename(fmt.Sprintf("Relatorio_Biometria_%s%s", campusName(in.Answers), d.Extension())),
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Data:        data,
	}, nil
}
